package logic

import (
	"github.com/blues/ffs/internal/model"
	"github.com/shopspring/decimal"
)

// PerkTier 粉丝权益等级
type PerkTier struct {
	Name            string          `json:"name"`
	MinContribution decimal.Decimal `json:"minContribution"`
	Benefits        []string        `json:"benefits"`
	NftTier         string          `json:"nftTier"`
}

// DefaultPerkTiers 默认权益等级阶梯
var DefaultPerkTiers = []PerkTier{
	{
		Name:            "Supporter",
		MinContribution: decimal.NewFromInt(50),
		Benefits:        []string{"Badge NFT", "Shoutout on social"},
		NftTier:         "bronze",
	},
	{
		Name:            "Backer",
		MinContribution: decimal.NewFromInt(200),
		Benefits:        []string{"Exclusive demo access", "Behind-the-scenes content"},
		NftTier:         "silver",
	},
	{
		Name:            "Patron",
		MinContribution: decimal.NewFromInt(500),
		Benefits:        []string{"Concert ticket priority", "Merch discounts", "Royalty share"},
		NftTier:         "gold",
	},
	{
		Name:            "Executive",
		MinContribution: decimal.NewFromInt(1000),
		Benefits:        []string{"1-on-1 video call", "Co-writing session", "Executive producer credit"},
		NftTier:         "platinum",
	},
}

// FanPortfolio 粉丝组合视图
type FanPortfolio struct {
	Address           string                          `json:"address"`
	TotalSent         decimal.Decimal                 `json:"totalSent"`
	ContributionCount int                             `json:"contributionCount"`
	CurrentTier       *PerkTier                       `json:"currentTier,omitempty"`
	NextTier          *PerkTier                       `json:"nextTier,omitempty"`
	NextTierProgress  decimal.Decimal                 `json:"nextTierProgress"` // 百分比，封顶100
	Contributions     []model.ContributionRecordModel `json:"contributions"`
}

// PortfolioLogic 粉丝组合业务逻辑
type PortfolioLogic struct {
	ledger *LedgerLogic
	tiers  []PerkTier
}

// NewPortfolioLogic 创建粉丝组合逻辑
func NewPortfolioLogic(ledger *LedgerLogic) *PortfolioLogic {
	return &PortfolioLogic{ledger: ledger, tiers: DefaultPerkTiers}
}

// Portfolio 计算粉丝的打赏总额和权益等级
func (p *PortfolioLogic) Portfolio(fanAddress string) FanPortfolio {
	contributions := p.ledger.ListByFan(fanAddress)

	total := decimal.Zero
	for i := range contributions {
		total = total.Add(contributions[i].Amount)
	}

	current, next := p.TierFor(total)

	progress := decimal.NewFromInt(100)
	if next != nil && next.MinContribution.IsPositive() {
		progress = total.Div(next.MinContribution).Mul(decimal.NewFromInt(100))
		if progress.GreaterThan(decimal.NewFromInt(100)) {
			progress = decimal.NewFromInt(100)
		}
	}

	if contributions == nil {
		contributions = []model.ContributionRecordModel{}
	}

	return FanPortfolio{
		Address:           fanAddress,
		TotalSent:         total,
		ContributionCount: len(contributions),
		CurrentTier:       current,
		NextTier:          next,
		NextTierProgress:  progress,
		Contributions:     contributions,
	}
}

// TierFor 按累计打赏金额返回当前等级和下一个等级
func (p *PortfolioLogic) TierFor(total decimal.Decimal) (current, next *PerkTier) {
	for i := range p.tiers {
		if total.GreaterThanOrEqual(p.tiers[i].MinContribution) {
			tier := p.tiers[i]
			current = &tier
			continue
		}
		tier := p.tiers[i]
		next = &tier
		break
	}
	return current, next
}
