package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/ffs/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
)

// Writer 链写入接口
// 核心逻辑只依赖这个接口；local-only 模式下为 nil
type Writer interface {
	// ClaimCampaignToken 向创建者钱包claim活动NFT，返回交易哈希
	ClaimCampaignToken(ctx context.Context, to string) (string, error)
	// ApproveToken 授权代币转账额度，返回交易哈希
	ApproveToken(ctx context.Context, spender string, amount decimal.Decimal) (string, error)
	// TransferToken 向目标地址转账代币，返回交易哈希
	TransferToken(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

// Client 以太坊客户端
type Client struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	chainId       *big.Int
	campaignAddr  common.Address
	tokenAddr     common.Address
	tokenDecimals int32
	campaignABI   abi.ABI
	tokenABI      abi.ABI
	confirmations uint64
}

// 活动NFT合约ABI定义（ERC1155 Drop，简化版）
const campaignContractABI = `[
	{
		"inputs": [
			{"name": "receiver", "type": "address"},
			{"name": "tokenId", "type": "uint256"},
			{"name": "quantity", "type": "uint256"}
		],
		"name": "claim",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`

// 代币合约ABI定义（ERC20，简化版）
const tokenContractABI = `[
	{
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedCampaignABI, err := abi.JSON(strings.NewReader(campaignContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse campaign contract ABI: %w", err)
	}
	parsedTokenABI, err := abi.JSON(strings.NewReader(tokenContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token contract ABI: %w", err)
	}

	return &Client{
		client:        client,
		privateKey:    privateKey,
		chainId:       big.NewInt(cfg.ChainId),
		campaignAddr:  common.HexToAddress(cfg.CampaignContract),
		tokenAddr:     common.HexToAddress(cfg.TokenContract),
		tokenDecimals: int32(cfg.TokenDecimals),
		campaignABI:   parsedCampaignABI,
		tokenABI:      parsedTokenABI,
		confirmations: 12,
	}, nil
}

// ClaimCampaignToken claim活动NFT（tokenId固定为0，数量1）
func (c *Client) ClaimCampaignToken(ctx context.Context, to string) (string, error) {
	data, err := c.campaignABI.Pack("claim", common.HexToAddress(to), big.NewInt(0), big.NewInt(1))
	if err != nil {
		return "", fmt.Errorf("failed to pack claim call: %w", err)
	}
	return c.sendTransaction(ctx, c.campaignAddr, data)
}

// ApproveToken 授权代币额度
func (c *Client) ApproveToken(ctx context.Context, spender string, amount decimal.Decimal) (string, error) {
	data, err := c.tokenABI.Pack("approve", common.HexToAddress(spender), c.toTokenUnits(amount))
	if err != nil {
		return "", fmt.Errorf("failed to pack approve call: %w", err)
	}
	return c.sendTransaction(ctx, c.tokenAddr, data)
}

// TransferToken 代币转账
func (c *Client) TransferToken(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	data, err := c.tokenABI.Pack("transfer", common.HexToAddress(to), c.toTokenUnits(amount))
	if err != nil {
		return "", fmt.Errorf("failed to pack transfer call: %w", err)
	}
	return c.sendTransaction(ctx, c.tokenAddr, data)
}

// sendTransaction 构造、签名并发送交易，返回交易哈希
func (c *Client) sendTransaction(ctx context.Context, to common.Address, data []byte) (string, error) {
	from := crypto.PubkeyToAddress(c.privateKey.PublicKey)

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// toTokenUnits 按代币精度换算为最小单位
func (c *Client) toTokenUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(c.tokenDecimals).BigInt()
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// IsTransactionConfirmed 检查交易是否已确认
func (c *Client) IsTransactionConfirmed(ctx context.Context, txHash string) (bool, error) {
	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return false, err
	}

	if receipt == nil {
		return false, nil
	}

	latestBlock, err := c.GetLatestBlock(ctx)
	if err != nil {
		return false, err
	}

	return latestBlock >= receipt.BlockNumber.Uint64()+c.confirmations, nil
}

// GetAccountAddress 获取账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}
