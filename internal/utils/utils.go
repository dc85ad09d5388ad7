package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

var (
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	txHashPattern  = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// IsValidAddress 校验钱包地址格式（0x + 40位十六进制）
// 只校验形状，不做checksum校验
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// IsValidTxHash 校验交易哈希格式（0x + 64位十六进制）
func IsValidTxHash(txHash string) bool {
	return txHashPattern.MatchString(txHash)
}

// ShortenAddress 缩短地址用于展示
func ShortenAddress(address string, chars int) string {
	if !IsValidAddress(address) {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:chars+2], address[len(address)-chars:])
}

// NewCampaignId 生成活动ID：毫秒时间戳 + 随机后缀
func NewCampaignId() string {
	return fmt.Sprintf("campaign_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

// NewMockTxHash 生成符合格式的模拟交易哈希（0x + 64位十六进制）
func NewMockTxHash() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

// TransactionUrl 生成区块浏览器交易链接
func TransactionUrl(explorerUrl, txHash string) string {
	return fmt.Sprintf("%s/tx/%s", explorerUrl, txHash)
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomSuffix 生成指定长度的随机字母数字后缀
func randomSuffix(n int) string {
	buf := make([]byte, n)
	rand.Read(buf)
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out)
}
