package store

import (
	"github.com/blues/ffs/internal/model"
)

// 本地存储中固定的槽位键名
const (
	CampaignsKey     = "campaigns"
	ContributionsKey = "contributions"
)

// Adapter 持久化适配器
// 两个实现：LocalStore（单文件JSON，默认）和 DBStore（postgres）
// LoadAll / LoadContributions 在数据缺失或损坏时返回空集，不向调用方抛错
type Adapter interface {
	LoadAll() ([]model.Campaign, error)
	SaveAll(campaigns []model.Campaign) error
	LoadContributions() ([]model.ContributionRecordModel, error)
	SaveContributions(records []model.ContributionRecordModel) error
}
