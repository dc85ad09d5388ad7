package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blues/ffs/internal/ethereum"
	"github.com/blues/ffs/internal/model"
	"github.com/blues/ffs/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testFan = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

func newTipFixture(t *testing.T, writer ethereum.Writer) (*TipLogic, *CampaignLogic, *LedgerLogic, *model.Campaign) {
	t.Helper()
	adapter := newTestAdapter(t)

	campaignLogic, err := NewCampaignLogic(adapter, nil)
	require.NoError(t, err)
	campaign, err := campaignLogic.Create(context.Background(), validInput(), testCreator)
	require.NoError(t, err)

	ledger, err := NewLedgerLogic(adapter)
	require.NoError(t, err)

	tipLogic, err := NewTipLogic(campaignLogic, ledger, writer, 4)
	require.NoError(t, err)
	t.Cleanup(tipLogic.Release)

	return tipLogic, campaignLogic, ledger, campaign
}

func waitForState(t *testing.T, tipLogic *TipLogic, id string, state model.TipState) *model.TipAttempt {
	t.Helper()
	require.Eventually(t, func() bool {
		attempt := tipLogic.Attempt(id)
		return attempt != nil && attempt.State == state
	}, 2*time.Second, 5*time.Millisecond)
	return tipLogic.Attempt(id)
}

func TestTipHappyPath(t *testing.T) {
	writer := ethereum.NewMockWriter()
	tipLogic, campaignLogic, ledger, campaign := newTipFixture(t, writer)

	attempt, err := tipLogic.Submit(context.Background(), campaign.Id, testFan, "5", "love this track")
	require.NoError(t, err)
	require.NotEqual(t, model.TipStateIdle, attempt.State)
	require.NotEqual(t, model.TipStateError, attempt.State)

	done := waitForState(t, tipLogic, attempt.Id, model.TipStateSuccess)
	require.True(t, utils.IsValidTxHash(done.TxHash))
	require.Empty(t, done.ErrMessage)

	// approve-then-transfer 两步都发生且指向艺人钱包
	require.Equal(t, 1, writer.CallCount("approve"))
	require.Equal(t, 1, writer.CallCount("transfer"))

	// 活动已筹金额恰好增加5
	updated, ok := campaignLogic.Get(campaign.Id)
	require.True(t, ok)
	require.True(t, updated.RaisedAmount.Equal(decimal.NewFromInt(5)))

	// 账本有记录
	records, total := ledger.ListByCampaign(campaign.Id, 1, 10)
	require.EqualValues(t, 1, total)
	require.Equal(t, testFan, records[0].FanAddress)
	require.Equal(t, done.TxHash, records[0].TxHash)
}

func TestTipRejectsInvalidAmount(t *testing.T) {
	writer := ethereum.NewMockWriter()
	tipLogic, _, _, campaign := newTipFixture(t, writer)

	for _, amount := range []string{"0", "", "-3", "abc"} {
		attempt, err := tipLogic.Submit(context.Background(), campaign.Id, testFan, amount, "")
		require.Error(t, err, "amount %q", amount)
		require.True(t, model.IsKind(err, model.ErrKindValidation))
		// 始终停留在idle，没有外部调用
		require.Equal(t, model.TipStateIdle, attempt.State)
	}
	require.Empty(t, writer.Calls)
}

func TestTipRejectsWithoutAccount(t *testing.T) {
	writer := ethereum.NewMockWriter()
	tipLogic, _, _, campaign := newTipFixture(t, writer)

	attempt, err := tipLogic.Submit(context.Background(), campaign.Id, "", "5", "")
	require.True(t, model.IsKind(err, model.ErrKindValidation))
	require.Equal(t, model.TipStateIdle, attempt.State)
	require.Empty(t, writer.Calls)
}

func TestTipRejectsUnknownCampaign(t *testing.T) {
	writer := ethereum.NewMockWriter()
	tipLogic, _, _, _ := newTipFixture(t, writer)

	attempt, err := tipLogic.Submit(context.Background(), "campaign_missing", testFan, "5", "")
	require.True(t, model.IsKind(err, model.ErrKindValidation))
	require.Equal(t, model.TipStateIdle, attempt.State)
	require.Empty(t, writer.Calls)
}

func TestTipRejectsInLocalOnlyMode(t *testing.T) {
	tipLogic, _, _, campaign := newTipFixture(t, nil)

	attempt, err := tipLogic.Submit(context.Background(), campaign.Id, testFan, "5", "")
	require.True(t, model.IsKind(err, model.ErrKindValidation))
	require.Equal(t, model.TipStateIdle, attempt.State)
}

func TestTipErrorSurfacesMessageVerbatimAndResets(t *testing.T) {
	writer := ethereum.NewMockWriter()
	writer.Err = errors.New("Transaction failed - network error")
	tipLogic, campaignLogic, _, campaign := newTipFixture(t, writer)

	attempt, err := tipLogic.Submit(context.Background(), campaign.Id, testFan, "5", "")
	require.NoError(t, err)

	failed := waitForState(t, tipLogic, attempt.Id, model.TipStateError)
	// SDK错误文案原样透出
	require.Equal(t, "Transaction failed - network error", failed.ErrMessage)

	// 失败不回写已筹金额
	updated, ok := campaignLogic.Get(campaign.Id)
	require.True(t, ok)
	require.True(t, updated.RaisedAmount.IsZero())

	// error -> idle 是唯一允许的回退转移
	require.True(t, tipLogic.Reset(attempt.Id))
	reset := tipLogic.Attempt(attempt.Id)
	require.Equal(t, model.TipStateIdle, reset.State)
	require.Empty(t, reset.ErrMessage)

	// idle状态不能再次Reset
	require.False(t, tipLogic.Reset(attempt.Id))
}

func TestTipApproveFailureStopsBeforeTransfer(t *testing.T) {
	writer := ethereum.NewMockWriter()
	writer.Err = errors.New("Approval failed - insufficient allowance")
	tipLogic, _, ledger, campaign := newTipFixture(t, writer)

	attempt, err := tipLogic.Submit(context.Background(), campaign.Id, testFan, "5", "")
	require.NoError(t, err)

	waitForState(t, tipLogic, attempt.Id, model.TipStateError)
	require.Equal(t, 1, writer.CallCount("approve"))
	require.Zero(t, writer.CallCount("transfer"))

	_, total := ledger.ListByCampaign(campaign.Id, 1, 10)
	require.Zero(t, total)
}

func TestTipUnknownAttemptLookup(t *testing.T) {
	tipLogic, _, _, _ := newTipFixture(t, ethereum.NewMockWriter())
	require.Nil(t, tipLogic.Attempt("no-such-attempt"))
	require.False(t, tipLogic.Reset("no-such-attempt"))
}
