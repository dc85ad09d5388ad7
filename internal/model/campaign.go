package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign 歌曲众筹活动
// JSON字段名与本地存储中的持久化格式保持一致
type Campaign struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	// 基本信息
	Title        string `json:"title" gorm:"not null" binding:"required"`
	Description  string `json:"description" gorm:"type:text"`
	SongUrl      string `json:"songUrl" gorm:"not null"`
	ArtistWallet string `json:"artistWallet" gorm:"not null"`
	ArtistName   string `json:"artistName" gorm:"not null"`

	// 众筹信息
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:numeric"`
	RaisedAmount decimal.Decimal `json:"raisedAmount" gorm:"type:numeric"`

	// 状态
	IsActive bool `json:"isActive"`

	// 链上claim结果
	Claim ClaimOutcome `json:"claim" gorm:"embedded;embeddedPrefix:claim_"`
}

// TableName 自定义表名
func (Campaign) TableName() string {
	return "campaign"
}

// ClaimStatus 链上claim状态
type ClaimStatus string

const (
	ClaimStatusConfirmed ClaimStatus = "confirmed"  // 链上claim成功
	ClaimStatusLocalOnly ClaimStatus = "local_only" // 仅本地保存（链不可用或claim失败）
)

// ClaimOutcome 活动创建时链上claim的结果
// 本地保存总是成功，链上结果只作为附加状态记录
type ClaimOutcome struct {
	Status ClaimStatus `json:"status"`
	TxHash string      `json:"txHash,omitempty"`
	Reason string      `json:"reason,omitempty"` // local_only 时的原因
}
