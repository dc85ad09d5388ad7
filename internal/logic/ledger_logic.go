package logic

import (
	"sync"

	"github.com/blues/ffs/internal/model"
	"github.com/blues/ffs/internal/store"
	"github.com/shopspring/decimal"
)

// LedgerLogic 打赏记录业务逻辑
// 追加式账本，驱动活动统计和粉丝组合视图
type LedgerLogic struct {
	mu      sync.Mutex
	adapter store.Adapter
	records []model.ContributionRecordModel
}

// NewLedgerLogic 创建账本逻辑，从适配器加载已有记录
func NewLedgerLogic(adapter store.Adapter) (*LedgerLogic, error) {
	records, err := adapter.LoadContributions()
	if err != nil {
		return nil, err
	}
	return &LedgerLogic{adapter: adapter, records: records}, nil
}

// Append 追加一条打赏记录并保存
func (c *LedgerLogic) Append(record model.ContributionRecordModel) error {
	if record.CampaignId == "" {
		return model.NewValidationError("campaign id is required")
	}
	if record.FanAddress == "" {
		return model.NewValidationError("fan address is required")
	}
	if !record.Amount.IsPositive() {
		return model.NewValidationError("amount must be positive")
	}
	if record.TxHash == "" {
		return model.NewValidationError("tx hash is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, record)
	return c.adapter.SaveContributions(c.records)
}

// ListByCampaign 获取活动的打赏记录（倒序分页）
func (c *LedgerLogic) ListByCampaign(campaignId string, page, pageSize int) ([]model.ContributionRecordModel, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []model.ContributionRecordModel
	for i := len(c.records) - 1; i >= 0; i-- {
		if c.records[i].CampaignId == campaignId {
			matched = append(matched, c.records[i])
		}
	}

	total := int64(len(matched))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []model.ContributionRecordModel{}, total
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total
}

// ListByFan 获取粉丝的全部打赏记录
func (c *LedgerLogic) ListByFan(fanAddress string) []model.ContributionRecordModel {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []model.ContributionRecordModel
	for i := range c.records {
		if c.records[i].FanAddress == fanAddress {
			matched = append(matched, c.records[i])
		}
	}
	return matched
}

// CampaignStats 获取活动的打赏统计信息
func (c *LedgerLogic) CampaignStats(campaignId string) map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalAmount := decimal.Zero
	count := 0
	contributors := make(map[string]struct{})
	for i := range c.records {
		if c.records[i].CampaignId != campaignId {
			continue
		}
		count++
		totalAmount = totalAmount.Add(c.records[i].Amount)
		contributors[c.records[i].FanAddress] = struct{}{}
	}

	averageAmount := decimal.Zero
	if count > 0 {
		averageAmount = totalAmount.Div(decimal.NewFromInt(int64(count)))
	}

	return map[string]interface{}{
		"total_contributions": count,
		"total_amount":        totalAmount,
		"unique_contributors": len(contributors),
		"average_amount":      averageAmount,
	}
}
