package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"nexgen/riskops/internal/api/modules/mdassess"
	"nexgen/riskops/internal/api/repo/rporder"
	"nexgen/riskops/internal/api/server/handlers/order"
	"nexgen/riskops/internal/api/server/routers"
	"nexgen/riskops/internal/api/services/svorder"
	"nexgen/riskops/pkg/config"
	"nexgen/riskops/pkg/infra/mysql"
	"nexgen/riskops/pkg/infra/redis"
	"nexgen/riskops/pkg/lmstfy"
	"nexgen/riskops/pkg/logger"
)

// App 应用实例
type App struct {
	Engine *gin.Engine
}

// InitializeApp 手工装配依赖，返回应用与资源清理函数
func InitializeApp(cfg *config.Config, log logger.Logger) (*App, func(), error) {
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql failed: %w", err)
	}

	redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		mysql.Close(db)
		return nil, nil, fmt.Errorf("connect redis failed: %w", err)
	}

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		redisClient.Close()
		mysql.Close(db)
		return nil, nil, fmt.Errorf("create lmstfy client failed: %w", err)
	}

	orderRepo := rporder.NewOrderRepository(db)
	assessModule := mdassess.NewAssessModule(lmstfyClient, redisClient, cfg.Lmstfy.Queue)
	orderService := svorder.NewOrderService(orderRepo, assessModule, log)
	orderHandler := order.NewOrderHandler(orderService)

	engine := routers.SetupRoutes(orderHandler)

	cleanup := func() {
		redisClient.Close()
		mysql.Close(db)
	}

	return &App{Engine: engine}, cleanup, nil
}
