package logic

import (
	"context"
	"sync"
	"time"

	"github.com/blues/ffs/internal/ethereum"
	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/model"
	"github.com/blues/ffs/internal/utils"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

// TipLogic 打赏流程
// 状态机 idle -> sending -> success|error，error可经Reset回到idle重试。
// 校验失败的提交停留在idle，不触发任何外部调用。
// 发送阶段在协程池上执行：先approve再transfer，两步都经链写入器完成；
// 成功后用本地缓存的活动快照计算 prev + amount 回写已筹金额
// （不重读存储，多端并发打赏存在后写覆盖，与源系统一致）。
type TipLogic struct {
	campaignLogic *CampaignLogic
	ledger        *LedgerLogic
	writer        ethereum.Writer
	pool          *ants.Pool

	mu       sync.RWMutex
	attempts map[string]*model.TipAttempt
}

// NewTipLogic 创建打赏流程
func NewTipLogic(campaignLogic *CampaignLogic, ledger *LedgerLogic, writer ethereum.Writer, poolSize int) (*TipLogic, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &TipLogic{
		campaignLogic: campaignLogic,
		ledger:        ledger,
		writer:        writer,
		pool:          pool,
		attempts:      make(map[string]*model.TipAttempt),
	}, nil
}

// Submit 提交一次打赏
// 同步校验失败时返回处于idle状态的尝试和校验错误，不发起外部调用；
// 校验通过后进入sending，异步执行链上转账
func (t *TipLogic) Submit(ctx context.Context, campaignId, fanAddress, amountStr, message string) (*model.TipAttempt, error) {
	attempt := &model.TipAttempt{
		Id:         uuid.NewString(),
		CampaignId: campaignId,
		FanAddress: fanAddress,
		Message:    message,
		State:      model.TipStateIdle,
		CreatedAt:  time.Now(),
	}

	reject := func(err *model.AppError) (*model.TipAttempt, error) {
		attempt.ErrMessage = err.Message
		return attempt, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		return reject(model.NewValidationError("Please enter a valid amount"))
	}
	attempt.Amount = amount

	if fanAddress == "" {
		return reject(model.NewValidationError("Please connect your wallet first"))
	}
	if !utils.IsValidAddress(fanAddress) {
		return reject(model.NewValidationError("invalid fan wallet address %q", fanAddress))
	}

	campaign, ok := t.campaignLogic.Get(campaignId)
	if !ok {
		return reject(model.NewValidationError("campaign %s not found", campaignId))
	}

	if t.writer == nil {
		return reject(model.NewValidationError("tipping unavailable in local-only mode"))
	}

	attempt.State = model.TipStateSending

	t.mu.Lock()
	t.attempts[attempt.Id] = attempt
	t.mu.Unlock()

	artistWallet := campaign.ArtistWallet
	// 发送阶段脱离请求上下文：不设超时，外部调用挂起时尝试停留在sending
	sendCtx := context.WithoutCancel(ctx)
	if err := t.pool.Submit(func() {
		t.run(sendCtx, attempt.Id, campaignId, artistWallet, fanAddress, amount, message)
	}); err != nil {
		t.fail(attempt.Id, err.Error())
		return t.Attempt(attempt.Id), model.NewRemoteCallError("failed to schedule tip", err)
	}

	return t.Attempt(attempt.Id), nil
}

// Attempt 获取尝试的当前快照
func (t *TipLogic) Attempt(id string) *model.TipAttempt {
	t.mu.RLock()
	defer t.mu.RUnlock()

	attempt, ok := t.attempts[id]
	if !ok {
		return nil
	}
	snapshot := *attempt
	return &snapshot
}

// Reset error状态的尝试重置回idle（唯一允许的回退转移）
func (t *TipLogic) Reset(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempt, ok := t.attempts[id]
	if !ok || attempt.State != model.TipStateError {
		return false
	}
	attempt.State = model.TipStateIdle
	attempt.ErrMessage = ""
	return true
}

// Release 释放协程池
func (t *TipLogic) Release() {
	t.pool.Release()
}

// run 执行发送阶段：approve -> transfer -> 回写已筹金额 -> 记账
// 不设超时，挂起的外部调用让尝试停留在sending直到promise落定
func (t *TipLogic) run(ctx context.Context, attemptId, campaignId, artistWallet, fanAddress string, amount decimal.Decimal, message string) {
	// 先授权代币额度
	if _, err := t.writer.ApproveToken(ctx, artistWallet, amount); err != nil {
		logger.Warn("Tip %s: approve failed: %v", attemptId, err)
		t.fail(attemptId, err.Error())
		return
	}

	// 再执行转账
	txHash, err := t.writer.TransferToken(ctx, artistWallet, amount)
	if err != nil {
		logger.Warn("Tip %s: transfer failed: %v", attemptId, err)
		t.fail(attemptId, err.Error())
		return
	}

	// 用缓存快照计算新的已筹金额
	if campaign, ok := t.campaignLogic.Get(campaignId); ok {
		newAmount := campaign.RaisedAmount.Add(amount)
		if err := t.campaignLogic.UpdateRaisedAmount(campaignId, newAmount.String()); err != nil {
			logger.Error("Tip %s: failed to update raised amount: %v", attemptId, err)
		}
	}

	// 记账失败只记日志，转账已经发生
	if err := t.ledger.Append(model.ContributionRecordModel{
		Id:           uuid.NewString(),
		CreatedAt:    time.Now(),
		CampaignId:   campaignId,
		FanAddress:   fanAddress,
		ArtistWallet: artistWallet,
		Amount:       amount,
		Message:      message,
		TxHash:       txHash,
	}); err != nil {
		logger.Error("Tip %s: failed to record contribution: %v", attemptId, err)
	}

	t.succeed(attemptId, txHash)
	logger.Info("Tip %s: sent %s to %s (tx %s)", attemptId, amount, artistWallet, txHash)
}

// fail 标记尝试失败，错误文案原样透出
func (t *TipLogic) fail(id, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if attempt, ok := t.attempts[id]; ok {
		attempt.State = model.TipStateError
		attempt.ErrMessage = message
	}
}

// succeed 标记尝试成功（该次尝试的终态）
func (t *TipLogic) succeed(id, txHash string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if attempt, ok := t.attempts[id]; ok {
		attempt.State = model.TipStateSuccess
		attempt.TxHash = txHash
	}
}
