package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: riskops-worker
  env: test
  log_level: debug

server:
  port: "9090"

mysql:
  dsn: "user:pass@tcp(127.0.0.1:3306)/riskops"

redis:
  addr: 127.0.0.1:6379

lmstfy:
  host: 127.0.0.1
  port: 7777
  namespace: riskops
  token: tok
  queue: order_assess
  callback_queue: order_assess_callback

models:
  delay_path: ./models/delay_risk.json
  customer_path: ./models/customer_risk.json

assessment:
  delay_high: 0.9
  lookback_window: 5
  batch_workers: 8
  batch_timeout: 30s

workers:
  - name: w1
    queue_name: order_assess
    subscriber:
      threads: 2
      rate: 100ms
      timeout: 3s
      ttr: 30s
      error_backoff: 1s
    processor:
      threads: 4
      buffer_size: 16
      timeout: 10s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "riskops-worker", cfg.App.Name)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 7777, cfg.Lmstfy.Port)
	require.Equal(t, "order_assess_callback", cfg.Lmstfy.CallbackQueue)
	require.Len(t, cfg.Workers, 1)
	require.Equal(t, 100*time.Millisecond, cfg.Workers[0].Subscriber.Rate)
	require.Equal(t, 10*time.Second, cfg.Workers[0].Processor.Timeout)

	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidateWorker())
	require.NoError(t, cfg.ValidateServer())
}

func TestLoadDefaultsServerPort(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	cfg.Lmstfy.CallbackQueue = ""
	require.Error(t, cfg.Validate())

	cfg, _ = Load(writeConfig(t, sampleYAML))
	cfg.Models.DelayPath = ""
	require.Error(t, cfg.ValidateWorker())

	cfg, _ = Load(writeConfig(t, sampleYAML))
	cfg.Workers = nil
	require.Error(t, cfg.ValidateWorker())

	cfg, _ = Load(writeConfig(t, sampleYAML))
	cfg.Redis.Addr = ""
	require.Error(t, cfg.ValidateServer())
}

func TestAssessmentConfigConverters(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	th := cfg.Assessment.Thresholds()
	require.Equal(t, 0.9, th.DelayHigh)
	// 未配置项回落默认值
	require.Equal(t, 0.60, th.DelayMedium)
	require.Equal(t, 0.50, th.CustomerRisk)

	fc := cfg.Assessment.FeatureConfig()
	require.Equal(t, 5, fc.LookbackWindow)

	pc := cfg.Assessment.PipelineConfig()
	require.Equal(t, 8, pc.Workers)
	require.Equal(t, 30*time.Second, pc.BatchTimeout)
}
