package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"nexgen/riskops/internal/risk/decision"
	"nexgen/riskops/internal/risk/feature"
	"nexgen/riskops/internal/risk/pipeline"
)

// Config 全局配置
// apiserver / worker / callback_consumer 共用一份配置结构，各取所需
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	MySQL      MySQLConfig      `mapstructure:"mysql"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Lmstfy     LmstfyConfig     `mapstructure:"lmstfy"`
	Models     ModelsConfig     `mapstructure:"models"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Workers    []WorkerConfig   `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Namespace     string `mapstructure:"namespace"`
	Token         string `mapstructure:"token"`
	Queue         string `mapstructure:"queue"`          // 评估任务队列
	CallbackQueue string `mapstructure:"callback_queue"` // 回调队列
}

// ModelsConfig 模型工件路径配置
type ModelsConfig struct {
	DelayPath    string `mapstructure:"delay_path"`
	CustomerPath string `mapstructure:"customer_path"`
}

// AssessmentConfig 评估核心配置
// 核心不读全局配置，这些值由入口装配时显式传入
type AssessmentConfig struct {
	DelayHigh      float64       `mapstructure:"delay_high"`      // 高延误风险阈值（排他下界）
	DelayMedium    float64       `mapstructure:"delay_medium"`    // 中延误风险阈值（排他下界）
	CustomerRisk   float64       `mapstructure:"customer_risk"`   // 客户不满风险阈值（排他下界）
	LookbackWindow int           `mapstructure:"lookback_window"` // 客户历史回看窗口（最近 N 单）
	BatchWorkers   int           `mapstructure:"batch_workers"`   // 批量评估并发数
	BatchTimeout   time.Duration `mapstructure:"batch_timeout"`   // 批量超时，0 不限时
}

// Thresholds 转换为决策引擎阈值，未配置项回落到文档化默认值
func (a AssessmentConfig) Thresholds() decision.Thresholds {
	th := decision.DefaultThresholds()
	if a.DelayHigh > 0 {
		th.DelayHigh = a.DelayHigh
	}
	if a.DelayMedium > 0 {
		th.DelayMedium = a.DelayMedium
	}
	if a.CustomerRisk > 0 {
		th.CustomerRisk = a.CustomerRisk
	}
	return th
}

// FeatureConfig 转换为特征构建器配置
func (a AssessmentConfig) FeatureConfig() feature.Config {
	cfg := feature.DefaultConfig()
	if a.LookbackWindow > 0 {
		cfg.LookbackWindow = a.LookbackWindow
	}
	return cfg
}

// PipelineConfig 转换为编排器配置
func (a AssessmentConfig) PipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if a.BatchWorkers > 0 {
		cfg.Workers = a.BatchWorkers
	}
	cfg.BatchTimeout = a.BatchTimeout
	return cfg
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	return &cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Lmstfy.CallbackQueue == "" {
		return fmt.Errorf("lmstfy.callback_queue is required")
	}
	return nil
}

// ValidateWorker worker 进程的附加校验
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Models.DelayPath == "" || c.Models.CustomerPath == "" {
		return fmt.Errorf("models.delay_path and models.customer_path are required")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	return nil
}

// ValidateServer apiserver / callback_consumer 进程的附加校验
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Lmstfy.Queue == "" {
		return fmt.Errorf("lmstfy.queue is required")
	}
	return nil
}
