package main

import (
	"log"

	"github.com/blues/ffs/internal/config"
	"github.com/blues/ffs/internal/ethereum"
	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/logic"
	"github.com/blues/ffs/internal/router"
	"github.com/blues/ffs/internal/store"
	"github.com/blues/ffs/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg)

	// 初始化存储适配器
	adapter, err := initAdapter(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 初始化链写入器（可选，缺失配置时降级为纯本地模式）
	writer := initChainWriter(cfg)

	// 初始化业务逻辑
	campaignLogic, err := logic.NewCampaignLogic(adapter, writer)
	if err != nil {
		log.Fatalf("Failed to initialize campaign store: %v", err)
	}
	ledger, err := logic.NewLedgerLogic(adapter)
	if err != nil {
		log.Fatalf("Failed to initialize contribution ledger: %v", err)
	}
	tipLogic, err := logic.NewTipLogic(campaignLogic, ledger, writer, cfg.Task.PoolSize)
	if err != nil {
		log.Fatalf("Failed to initialize tip flow: %v", err)
	}
	portfolioLogic := logic.NewPortfolioLogic(ledger)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(campaignLogic, ledger, tipLogic, portfolioLogic)

	// 启动定时任务
	task.Start(campaignLogic, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化默认日志器
func initLogger(cfg *config.Config) {
	level := logger.ParseLogLevel(cfg.Log.Level)

	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			log.Fatalf("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}

// initAdapter 按配置选择存储后端
func initAdapter(cfg *config.Config) (store.Adapter, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return store.NewDBStore(cfg.Database)
	default:
		return store.NewLocalStore(cfg.Storage.Path)
	}
}

// initChainWriter 按配置初始化链写入器
// 配置缺失或连接失败都降级为 nil（纯本地模式），不阻止启动
func initChainWriter(cfg *config.Config) ethereum.Writer {
	if !cfg.Chain.ChainEnabled() {
		logger.Info("Chain writes disabled, running in local-only mode")
		return nil
	}

	if cfg.Chain.Mode == "mock" {
		logger.Info("Using mock chain writer")
		return ethereum.NewMockWriter()
	}

	client, err := ethereum.Init(cfg.Chain)
	if err != nil {
		logger.Warn("Failed to initialize ethereum client, falling back to local-only mode: %v", err)
		return nil
	}
	logger.Info("Ethereum client initialized, account %s", client.GetAccountAddress().Hex())
	return client
}
