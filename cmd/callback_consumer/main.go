package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexgen/riskops/internal/api/consumer"
	"nexgen/riskops/internal/api/repo/rporder"
	"nexgen/riskops/internal/api/services/svcallback"
	"nexgen/riskops/pkg/config"
	"nexgen/riskops/pkg/infra/mysql"
	"nexgen/riskops/pkg/infra/redis"
	"nexgen/riskops/pkg/lmstfy"
	"nexgen/riskops/pkg/logger"
)

var (
	configPath = flag.String("config", "./config/apiserver.yaml", "配置文件路径")
)

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. 初始化依赖
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to open mysql: %v", err)
	}
	defer mysql.Close(db)

	redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	// 4. 装配消费者
	orderRepo := rporder.NewOrderRepository(db)
	callbackService := svcallback.NewCallbackService(orderRepo, redisClient, zapLogger)
	callbackConsumer := consumer.NewCallbackConsumer(lmstfyClient, callbackService, &consumer.Config{
		QueueName:    cfg.Lmstfy.CallbackQueue,
		Timeout:      3 * time.Second,
		TTR:          30 * time.Second,
		PollInterval: time.Second,
	}, zapLogger)

	// 5. 启动消费循环（后台 goroutine）
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting callback consumer...")
		errChan <- callbackConsumer.Start(ctx)
	}()

	// 6. 等待退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down...", sig)
		cancel()
		time.Sleep(time.Second) // 等待当前消息处理完
	case err := <-errChan:
		if err != nil && err != context.Canceled {
			log.Fatalf("Consumer error: %v", err)
		}
	}

	log.Println("Callback consumer stopped")
}
