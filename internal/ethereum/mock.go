package ethereum

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/blues/ffs/internal/utils"
	"github.com/shopspring/decimal"
)

var errMockTransactionFailed = errors.New("Transaction failed - network error")

// MockWriter 模拟链写入器
// mock链模式和测试使用：返回格式正确的模拟交易哈希，
// 可注入固定错误或按比例随机失败
type MockWriter struct {
	mu       sync.Mutex
	FailRate float64       // 随机失败比例 [0,1)
	Err      error         // 非nil时所有调用返回该错误
	Delay    time.Duration // 每次调用前的模拟延迟

	Calls []MockCall // 调用记录
}

// MockCall 一次模拟调用的记录
type MockCall struct {
	Method string
	To     string
	Amount decimal.Decimal
}

// NewMockWriter 创建模拟链写入器
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// ClaimCampaignToken 模拟claim活动NFT
func (m *MockWriter) ClaimCampaignToken(ctx context.Context, to string) (string, error) {
	return m.invoke(ctx, "claim", to, decimal.Zero)
}

// ApproveToken 模拟代币授权
func (m *MockWriter) ApproveToken(ctx context.Context, spender string, amount decimal.Decimal) (string, error) {
	return m.invoke(ctx, "approve", spender, amount)
}

// TransferToken 模拟代币转账
func (m *MockWriter) TransferToken(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	return m.invoke(ctx, "transfer", to, amount)
}

// CallCount 指定方法的调用次数
func (m *MockWriter) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.Calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

func (m *MockWriter) invoke(ctx context.Context, method, to string, amount decimal.Decimal) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, To: to, Amount: amount})

	if m.Err != nil {
		return "", m.Err
	}
	if m.FailRate > 0 && rand.Float64() < m.FailRate {
		return "", errMockTransactionFailed
	}
	return utils.NewMockTxHash(), nil
}
