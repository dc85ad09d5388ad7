package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionRecordModel 打赏/投资记录
type ContributionRecordModel struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	CampaignId   string          `json:"campaignId" gorm:"not null;index"`
	FanAddress   string          `json:"fanAddress" gorm:"not null;index"`
	ArtistWallet string          `json:"artistWallet" gorm:"not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric;not null"`
	Message      string          `json:"message,omitempty"`
	TxHash       string          `json:"txHash" gorm:"uniqueIndex"`
}

// TableName 自定义表名
func (ContributionRecordModel) TableName() string {
	return "contribution_record"
}

// TipState 单次打赏流程状态
type TipState string

const (
	TipStateIdle    TipState = "idle"    // 待提交
	TipStateSending TipState = "sending" // 发送中
	TipStateSuccess TipState = "success" // 成功（终态）
	TipStateError   TipState = "error"   // 失败（可重置回idle）
)

// TipAttempt 单次打赏尝试
// 不持久化，只在一次交互期间存活
type TipAttempt struct {
	Id         string          `json:"id"`
	CampaignId string          `json:"campaignId"`
	FanAddress string          `json:"fanAddress"`
	Amount     decimal.Decimal `json:"amount"`
	Message    string          `json:"message,omitempty"`
	State      TipState        `json:"state"`
	TxHash     string          `json:"txHash,omitempty"`
	ErrMessage string          `json:"errMessage,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
