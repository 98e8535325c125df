package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"nexgen/riskops/internal/business"
	"nexgen/riskops/internal/domains"
	"nexgen/riskops/internal/framework"
	"nexgen/riskops/internal/risk/decision"
	"nexgen/riskops/internal/risk/feature"
	"nexgen/riskops/internal/risk/inference"
	"nexgen/riskops/internal/risk/pipeline"
	"nexgen/riskops/pkg/config"
	"nexgen/riskops/pkg/infra/mysql"
	"nexgen/riskops/pkg/lmstfy"
	"nexgen/riskops/pkg/logger"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager 实例
// 启动期装配评估核心（模型工件加载 + 参考目录加载 + 编排器构造）：
// 任一环节失败即启动失败——没有可用模型就没有任何推理可做，不延迟到逐单暴露
type ManagerInstance struct {
	ctx           context.Context
	cfg           *config.Config
	lmstfyClient  *lmstfy.Client
	orchestrator  *pipeline.Orchestrator
	assessService *business.AssessmentService
	workers       []Worker
	closing       *atomic.Bool
	shutdownCh    chan struct{}
	wg            sync.WaitGroup
	logger        logger.Logger
}

// NewManagerInstance 创建 Manager
func NewManagerInstance(cfg *config.Config, log logger.Logger) (Manager, error) {
	ctx := context.Background()

	// 初始化 lmstfy 客户端
	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create lmstfy client: %w", err)
	}

	// 加载模型工件（启动期致命）
	delayModel, err := inference.Load(cfg.Models.DelayPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load delay model: %w", err)
	}
	customerModel, err := inference.Load(cfg.Models.CustomerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer model: %w", err)
	}
	log.Infof(ctx, "[Manager] Models loaded: delay=%s, customer=%s", delayModel.Version(), customerModel.Version())

	// 构造评估核心（构造期完成模式兼容性校验）
	builder := feature.NewBuilder(cfg.Assessment.FeatureConfig())
	engine := decision.NewEngine(cfg.Assessment.Thresholds())
	orchestrator, err := pipeline.NewOrchestrator(builder, delayModel, customerModel, engine, cfg.Assessment.PipelineConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build orchestrator: %w", err)
	}

	// 加载参考数据目录（启动后只读，worker 并发共享）
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	catalog, err := mysql.NewReferenceDAO(db).LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference catalog: %w", err)
	}
	routes, vehicles, customers := catalog.Size()
	log.Infof(ctx, "[Manager] Reference catalog loaded: routes=%d, vehicles=%d, customers=%d",
		routes, vehicles, customers)

	assessService := business.NewAssessmentService(
		orchestrator, catalog, lmstfyClient, cfg.Lmstfy.CallbackQueue, log)

	return &ManagerInstance{
		ctx:           ctx,
		cfg:           cfg,
		lmstfyClient:  lmstfyClient,
		orchestrator:  orchestrator,
		assessService: assessService,
		closing:       atomic.NewBool(false),
		shutdownCh:    make(chan struct{}),
		workers:       make([]Worker, 0),
		logger:        log,
	}, nil
}

// Start 启动 Manager
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	// 1. 加载所有 Worker
	if err := m.loadWorkers(); err != nil {
		return fmt.Errorf("failed to load workers: %w", err)
	}

	m.logger.Infof(m.ctx, "[Manager] All workers loaded, count: %d", len(m.workers))

	// 2. 启动所有 Worker（每个 Worker 在独立 goroutine）
	for _, worker := range m.workers {
		w := worker
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}

	m.logger.Infof(m.ctx, "[Manager] Start success")

	// 3. 阻塞等待退出信号
	<-m.shutdownCh

	return nil
}

// Shutdown 优雅退出
func (m *ManagerInstance) Shutdown() {
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	// 原子操作，保证并发安全
	if m.closing.CAS(false, true) {
		// 1. 所有 Worker 安全退出
		for _, worker := range m.workers {
			m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", worker.GetName())
			worker.Shutdown()
		}

		// 2. 等待所有 Worker 退出
		m.wg.Wait()

		// 3. 关闭信号通道
		close(m.shutdownCh)

		assessed, failed := m.orchestrator.Stats()
		m.logger.Infof(m.ctx, "[Manager] Shutdown complete: assessed=%d, failed=%d", assessed, failed)
	}
}

// loadWorkers 加载所有 Worker
func (m *ManagerInstance) loadWorkers() error {
	// 遍历配置中的所有 Worker
	for _, workerCfg := range m.cfg.Workers {
		subCfg := &framework.SubscriberConfig{
			QueueName:    workerCfg.QueueName,
			Concurrency:  workerCfg.Subscriber.Threads,
			Rate:         workerCfg.Subscriber.Rate,
			Timeout:      workerCfg.Subscriber.Timeout,
			TTR:          workerCfg.Subscriber.TTR,
			ErrorBackoff: workerCfg.Subscriber.ErrorBackoff,
		}

		procCfg := &framework.ProcessorConfig{
			Concurrency: workerCfg.Processor.Threads,
			BufferSize:  workerCfg.Processor.BufferSize,
			Timeout:     workerCfg.Processor.Timeout,
		}

		// 获取 GetProcess 函数
		getProcess := domains.GetProcess(m.logger, m.assessService)

		worker, err := NewWorkerInstance(
			m.ctx,
			workerCfg.Name,
			subCfg,
			procCfg,
			m.lmstfyClient, // MessageSource
			getProcess,     // lmstfyx.Proc
			m.logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create worker %s: %w", workerCfg.Name, err)
		}

		m.workers = append(m.workers, worker)
	}

	return nil
}
