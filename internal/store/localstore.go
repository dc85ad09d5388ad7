package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/blues/ffs/internal/logger"
	"github.com/blues/ffs/internal/model"
)

// LocalStore 单文件JSON存储
// 数据文件是一个键到JSON数组的映射（campaigns / contributions 各占一个槽位），
// 对应单一来源的键值槽语义。写入是整体覆盖，没有原子性保证，
// 写入中途崩溃可能损坏整个数据集；损坏的数据在读取时按空集处理。
type LocalStore struct {
	path string
	mu   sync.Mutex
}

// NewLocalStore 创建本地文件存储
func NewLocalStore(path string) (*LocalStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{path: path}, nil
}

// LoadAll 读取全部活动
// 文件缺失或JSON损坏时返回空集，不抛错
func (s *LocalStore) LoadAll() ([]model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var campaigns []model.Campaign
	s.loadSlot(CampaignsKey, &campaigns)
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return campaigns, nil
}

// SaveAll 整体覆盖写入全部活动
func (s *LocalStore) SaveAll(campaigns []model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSlot(CampaignsKey, campaigns)
}

// LoadContributions 读取全部打赏记录
func (s *LocalStore) LoadContributions() ([]model.ContributionRecordModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []model.ContributionRecordModel
	s.loadSlot(ContributionsKey, &records)
	if records == nil {
		records = []model.ContributionRecordModel{}
	}
	return records, nil
}

// SaveContributions 整体覆盖写入全部打赏记录
func (s *LocalStore) SaveContributions(records []model.ContributionRecordModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSlot(ContributionsKey, records)
}

// loadSlot 读取指定槽位并反序列化到out
// 任何解析失败都降级为空数据
func (s *LocalStore) loadSlot(key string, out interface{}) {
	slots := s.readSlots()
	raw, ok := slots[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		corrupt := model.NewStorageCorruptError("slot "+key+" is not valid JSON, treating as empty", err)
		logger.Warn("Local store: %v", corrupt)
	}
}

// saveSlot 覆盖指定槽位，保留其他槽位
func (s *LocalStore) saveSlot(key string, value interface{}) error {
	slots := s.readSlots()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	slots[key] = raw

	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	// 直接整文件覆盖，与源系统一致，无部分写保护
	return os.WriteFile(s.path, data, 0o644)
}

// readSlots 读取数据文件的槽位映射
// 文件缺失或整体损坏时返回空映射
func (s *LocalStore) readSlots() map[string]json.RawMessage {
	slots := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Local store: failed to read %s: %v", s.path, err)
		}
		return slots
	}

	if err := json.Unmarshal(data, &slots); err != nil {
		corrupt := model.NewStorageCorruptError("data file is not valid JSON, resetting to empty", err)
		logger.Warn("Local store: %v", corrupt)
		return make(map[string]json.RawMessage)
	}
	return slots
}
