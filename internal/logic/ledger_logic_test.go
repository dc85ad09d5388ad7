package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/blues/ffs/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testRecord(campaignId, fan string, amount int64) model.ContributionRecordModel {
	return model.ContributionRecordModel{
		Id:           fmt.Sprintf("rec-%s-%s-%d-%d", campaignId, fan, amount, time.Now().UnixNano()),
		CreatedAt:    time.Now(),
		CampaignId:   campaignId,
		FanAddress:   fan,
		ArtistWallet: testArtist,
		Amount:       decimal.NewFromInt(amount),
		TxHash:       fmt.Sprintf("0x%064d", time.Now().UnixNano()%1000000),
	}
}

func TestLedgerAppendValidation(t *testing.T) {
	adapter := newTestAdapter(t)
	ledger, err := NewLedgerLogic(adapter)
	require.NoError(t, err)

	bad := testRecord("c1", testFan, 5)
	bad.Amount = decimal.Zero
	err = ledger.Append(bad)
	require.True(t, model.IsKind(err, model.ErrKindValidation))

	missing := testRecord("c1", testFan, 5)
	missing.TxHash = ""
	err = ledger.Append(missing)
	require.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestLedgerListByCampaignPagination(t *testing.T) {
	adapter := newTestAdapter(t)
	ledger, err := NewLedgerLogic(adapter)
	require.NoError(t, err)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, ledger.Append(testRecord("c1", testFan, i)))
	}
	require.NoError(t, ledger.Append(testRecord("c2", testFan, 99)))

	page1, total := ledger.ListByCampaign("c1", 1, 2)
	require.EqualValues(t, 5, total)
	require.Len(t, page1, 2)
	// 倒序：最新的记录在前
	require.True(t, page1[0].Amount.Equal(decimal.NewFromInt(5)))

	page3, _ := ledger.ListByCampaign("c1", 3, 2)
	require.Len(t, page3, 1)

	empty, _ := ledger.ListByCampaign("c1", 4, 2)
	require.Empty(t, empty)
}

func TestLedgerCampaignStats(t *testing.T) {
	adapter := newTestAdapter(t)
	ledger, err := NewLedgerLogic(adapter)
	require.NoError(t, err)

	otherFan := "0x1111111111111111111111111111111111111111"
	require.NoError(t, ledger.Append(testRecord("c1", testFan, 10)))
	require.NoError(t, ledger.Append(testRecord("c1", testFan, 20)))
	require.NoError(t, ledger.Append(testRecord("c1", otherFan, 30)))

	stats := ledger.CampaignStats("c1")
	require.Equal(t, 3, stats["total_contributions"])
	require.Equal(t, 2, stats["unique_contributors"])
	require.True(t, stats["total_amount"].(decimal.Decimal).Equal(decimal.NewFromInt(60)))
	require.True(t, stats["average_amount"].(decimal.Decimal).Equal(decimal.NewFromInt(20)))
}

func TestLedgerPersistsAcrossInstances(t *testing.T) {
	adapter := newTestAdapter(t)
	ledger, err := NewLedgerLogic(adapter)
	require.NoError(t, err)
	require.NoError(t, ledger.Append(testRecord("c1", testFan, 10)))

	reloaded, err := NewLedgerLogic(adapter)
	require.NoError(t, err)
	records := reloaded.ListByFan(testFan)
	require.Len(t, records, 1)
	require.True(t, records[0].Amount.Equal(decimal.NewFromInt(10)))
}
