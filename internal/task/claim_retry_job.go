package task

import (
	"context"
	"time"

	"github.com/blues/ffs/internal/config"
	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// ClaimRetryJob claim重试任务
// 周期性重试 local_only 活动的链上claim；只更新claim结果字段，
// 不触碰isActive，也不重试打赏
type ClaimRetryJob struct {
	campaignLogic *logic.CampaignLogic
	config        *config.Config
}

// NewClaimRetryJob 创建claim重试任务
func NewClaimRetryJob(campaignLogic *logic.CampaignLogic, cfg *config.Config) *ClaimRetryJob {
	return &ClaimRetryJob{
		campaignLogic: campaignLogic,
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *ClaimRetryJob) GetName() string {
	return "claim_retry"
}

// GetSchedule 获取调度配置
func (j *ClaimRetryJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ClaimRetryJob) Execute() {
	confirmed := j.campaignLogic.RetryPendingClaims(context.Background())
	if confirmed > 0 {
		logger.Info("Claim retry task confirmed %d campaigns", confirmed)
	}
}
