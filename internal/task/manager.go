package task

import (
	"github.com/blues/ffs/internal/config"
	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// TaskManager 任务管理器
type TaskManager struct {
	scheduler     gocron.Scheduler
	campaignLogic *logic.CampaignLogic
	config        *config.Config
}

// NewTaskManager 创建新的任务管理器
func NewTaskManager(campaignLogic *logic.CampaignLogic, cfg *config.Config) *TaskManager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &TaskManager{
		scheduler:     s,
		campaignLogic: campaignLogic,
		config:        cfg,
	}
}

// Start 启动任务管理器
func Start(campaignLogic *logic.CampaignLogic, cfg *config.Config) *TaskManager {
	manager := NewTaskManager(campaignLogic, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *TaskManager) RegisterJobs() {
	// 注册claim重试任务
	m.RegisterClaimRetryJob()
}

// RegisterClaimRetryJob 注册claim重试任务
func (m *TaskManager) RegisterClaimRetryJob() {
	job := NewClaimRetryJob(m.campaignLogic, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *TaskManager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
