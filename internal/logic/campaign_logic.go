package logic

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/blues/ffs/internal/ethereum"
	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/model"
	"github.com/blues/ffs/internal/store"
	"github.com/blues/ffs/internal/utils"
	"github.com/shopspring/decimal"
)

// CampaignLogic 活动业务逻辑
// 进程内权威视图：内存列表 + 持久化适配器，所有变更经单一互斥锁串行化。
// 跨进程对同一数据文件的并发写仍是后写覆盖，不做保护。
type CampaignLogic struct {
	mu        sync.Mutex
	adapter   store.Adapter
	writer    ethereum.Writer // nil 表示纯本地模式
	campaigns []model.Campaign
}

// CreateCampaignInput 创建活动的输入字段
type CreateCampaignInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	SongUrl      string          `json:"songUrl"`
	ArtistWallet string          `json:"artistWallet"`
	ArtistName   string          `json:"artistName"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// NewCampaignLogic 创建活动业务逻辑，从适配器加载当前数据
func NewCampaignLogic(adapter store.Adapter, writer ethereum.Writer) (*CampaignLogic, error) {
	campaigns, err := adapter.LoadAll()
	if err != nil {
		return nil, err
	}
	return &CampaignLogic{
		adapter:   adapter,
		writer:    writer,
		campaigns: campaigns,
	}, nil
}

// List 返回当前内存快照的副本
func (l *CampaignLogic) List() []model.Campaign {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Campaign, len(l.campaigns))
	copy(out, l.campaigns)
	return out
}

// Get 按ID查找活动
func (l *CampaignLogic) Get(id string) (*model.Campaign, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.campaigns {
		if l.campaigns[i].Id == id {
			c := l.campaigns[i]
			return &c, true
		}
	}
	return nil, false
}

// Create 创建活动
// 校验通过后本地保存总是执行；链上claim是尽力而为，
// 失败只降级为 local_only 结果，不阻塞创建
func (l *CampaignLogic) Create(ctx context.Context, input CreateCampaignInput, creatorAddress string) (*model.Campaign, error) {
	if err := l.validateCreate(input, creatorAddress); err != nil {
		return nil, err
	}

	campaign := model.Campaign{
		Id:           utils.NewCampaignId(),
		CreatedAt:    time.Now(),
		Title:        input.Title,
		Description:  input.Description,
		SongUrl:      input.SongUrl,
		ArtistWallet: input.ArtistWallet,
		ArtistName:   input.ArtistName,
		TargetAmount: input.TargetAmount,
		RaisedAmount: decimal.Zero,
		IsActive:     true,
	}

	// 链上claim活动NFT（配置了链写入器时）
	campaign.Claim = l.attemptClaim(ctx, creatorAddress)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.campaigns = append(l.campaigns, campaign)
	if err := l.adapter.SaveAll(l.campaigns); err != nil {
		return nil, err
	}

	logger.Info("Campaign %s created (claim status: %s)", campaign.Id, campaign.Claim.Status)
	return &campaign, nil
}

// UpdateRaisedAmount 替换活动的已筹金额并保存
// 不校验单调性，也不校验目标上限；未知ID只记日志，不向调用方抛错
func (l *CampaignLogic) UpdateRaisedAmount(id, newAmount string) error {
	amount, err := decimal.NewFromString(newAmount)
	if err != nil {
		return model.NewValidationError("invalid amount %q", newAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.campaigns {
		if l.campaigns[i].Id == id {
			l.campaigns[i].RaisedAmount = amount
			return l.adapter.SaveAll(l.campaigns)
		}
	}

	logger.Warn("UpdateRaisedAmount: campaign %s not found, store unchanged", id)
	return nil
}

// RetryPendingClaims 重试所有 local_only 活动的链上claim
// claim重试任务调用；返回本轮确认的数量
func (l *CampaignLogic) RetryPendingClaims(ctx context.Context) int {
	if l.writer == nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	confirmed := 0
	changed := false
	for i := range l.campaigns {
		if l.campaigns[i].Claim.Status != model.ClaimStatusLocalOnly {
			continue
		}

		txHash, err := l.writer.ClaimCampaignToken(ctx, l.campaigns[i].ArtistWallet)
		if err != nil {
			logger.Warn("Claim retry for campaign %s failed: %v", l.campaigns[i].Id, err)
			l.campaigns[i].Claim.Reason = err.Error()
			changed = true
			continue
		}

		l.campaigns[i].Claim = model.ClaimOutcome{
			Status: model.ClaimStatusConfirmed,
			TxHash: txHash,
		}
		confirmed++
		changed = true
		logger.Info("Claim retry for campaign %s confirmed: %s", l.campaigns[i].Id, txHash)
	}

	if changed {
		if err := l.adapter.SaveAll(l.campaigns); err != nil {
			logger.Error("Failed to save campaigns after claim retry: %v", err)
		}
	}
	return confirmed
}

// Stats 全部活动的汇总统计
func (l *CampaignLogic) Stats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	totalRaised := decimal.Zero
	active := 0
	completed := 0
	for i := range l.campaigns {
		totalRaised = totalRaised.Add(l.campaigns[i].RaisedAmount)
		if l.campaigns[i].IsActive {
			active++
		}
		if l.campaigns[i].TargetAmount.IsPositive() &&
			l.campaigns[i].RaisedAmount.GreaterThanOrEqual(l.campaigns[i].TargetAmount) {
			completed++
		}
	}

	return map[string]interface{}{
		"totalCampaigns":     len(l.campaigns),
		"activeCampaigns":    active,
		"completedCampaigns": completed,
		"totalRaised":        totalRaised,
	}
}

// attemptClaim 尽力而为的链上claim
func (l *CampaignLogic) attemptClaim(ctx context.Context, creatorAddress string) model.ClaimOutcome {
	if l.writer == nil {
		return model.ClaimOutcome{
			Status: model.ClaimStatusLocalOnly,
			Reason: "chain disabled",
		}
	}

	txHash, err := l.writer.ClaimCampaignToken(ctx, creatorAddress)
	if err != nil {
		remoteErr := model.NewRemoteCallError("campaign claim failed, saved locally", err)
		logger.Warn("Create campaign: %v", remoteErr)
		return model.ClaimOutcome{
			Status: model.ClaimStatusLocalOnly,
			Reason: err.Error(),
		}
	}

	return model.ClaimOutcome{
		Status: model.ClaimStatusConfirmed,
		TxHash: txHash,
	}
}

// validateCreate 校验创建活动的输入
func (l *CampaignLogic) validateCreate(input CreateCampaignInput, creatorAddress string) error {
	if creatorAddress == "" {
		return model.NewValidationError("no account connected")
	}
	if strings.TrimSpace(input.Title) == "" {
		return model.NewValidationError("title is required")
	}
	if strings.TrimSpace(input.SongUrl) == "" {
		return model.NewValidationError("song url is required")
	}
	if strings.TrimSpace(input.ArtistName) == "" {
		return model.NewValidationError("artist name is required")
	}
	if !utils.IsValidAddress(input.ArtistWallet) {
		return model.NewValidationError("invalid artist wallet address %q", input.ArtistWallet)
	}
	if input.TargetAmount.IsNegative() {
		return model.NewValidationError("target amount must not be negative")
	}
	return nil
}
