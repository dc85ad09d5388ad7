package store

import (
	"fmt"

	"github.com/blues/ffs/internal/config"
	"github.com/blues/ffs/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DBStore postgres存储后端
// 与LocalStore实现相同的整体读写契约，整体覆盖在事务内完成
type DBStore struct {
	db *gorm.DB
}

// NewDBStore 连接数据库并迁移表结构
func NewDBStore(cfg config.DatabaseConfig) (*DBStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.Campaign{},
		&model.ContributionRecordModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DBStore{db: db}, nil
}

// NewDBStoreWithDB 使用既有连接创建存储（测试用）
func NewDBStoreWithDB(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// LoadAll 读取全部活动
func (s *DBStore) LoadAll() ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := s.db.Order("created_at").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return campaigns, nil
}

// SaveAll 整体覆盖写入全部活动
func (s *DBStore) SaveAll(campaigns []model.Campaign) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Campaign{}).Error; err != nil {
			return err
		}
		if len(campaigns) == 0 {
			return nil
		}
		return tx.Create(&campaigns).Error
	})
}

// LoadContributions 读取全部打赏记录
func (s *DBStore) LoadContributions() ([]model.ContributionRecordModel, error) {
	var records []model.ContributionRecordModel
	if err := s.db.Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load contributions: %w", err)
	}
	if records == nil {
		records = []model.ContributionRecordModel{}
	}
	return records, nil
}

// SaveContributions 整体覆盖写入全部打赏记录
func (s *DBStore) SaveContributions(records []model.ContributionRecordModel) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.ContributionRecordModel{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
