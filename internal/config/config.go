package config

import (
	"github.com/blues/ffs/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// StorageConfig 存储后端配置
// backend 可选 local（单文件JSON存储）或 postgres（数据库存储）
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // 存储后端: local, postgres
	Path    string `mapstructure:"path"`    // local 后端的数据文件路径
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链配置
// mode 为 disabled 时服务运行在纯本地模式，创建活动不做链上claim，打赏不可用
type ChainConfig struct {
	Mode             string `mapstructure:"mode"`              // 链模式: disabled, mock, ethereum
	ChainId          int64  `mapstructure:"chain_id"`          // 链ID
	RpcUrl           string `mapstructure:"rpc_url"`           // RPC节点URL
	PrivateKey       string `mapstructure:"private_key"`       // 私钥
	CampaignContract string `mapstructure:"campaign_contract"` // 活动NFT合约地址（ERC1155 Drop）
	TokenContract    string `mapstructure:"token_contract"`    // 代币合约地址（ERC20）
	TokenDecimals    int    `mapstructure:"token_decimals"`    // 代币精度
	Currency         string `mapstructure:"currency"`          // 币种名称（展示用）
	ExplorerUrl      string `mapstructure:"explorer_url"`      // 区块浏览器URL
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"`  // 秒
	PoolSize int `mapstructure:"pool_size"` // 打赏流程协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// ChainEnabled 链写入是否可用
// RPC或合约地址缺失时降级为纯本地模式，不影响服务启动
func (c ChainConfig) ChainEnabled() bool {
	switch c.Mode {
	case "mock":
		return true
	case "ethereum":
		return c.RpcUrl != "" && c.CampaignContract != ""
	default:
		return false
	}
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/ffs")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.path", "data/campaigns.json")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "fanfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.mode", "disabled")
	viper.SetDefault("chain.chain_id", 84532)
	viper.SetDefault("chain.token_decimals", 6)
	viper.SetDefault("chain.currency", "USDC")
	viper.SetDefault("chain.explorer_url", "https://sepolia.basescan.org")
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
