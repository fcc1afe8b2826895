package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RecordSlot is the single table of the sqlite backend: one row per slot,
// value holds the JSON snapshot.
type RecordSlot struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (RecordSlot) TableName() string { return "record_slots" }

// GormStore persists slots in a local sqlite file. Chosen over the file
// backend when the operator wants a single database file to back up.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the sqlite database and migrates the
// record_slots table.
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&RecordSlot{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Read(key string, v any) (bool, error) {
	var slot RecordSlot
	err := s.db.First(&slot, "key = ?", KeyPrefix+key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: sqlite read %s: %w", key, err)
	}
	if err := json.Unmarshal(slot.Value, v); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *GormStore) Write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	slot := RecordSlot{Key: KeyPrefix + key, Value: data, UpdatedAt: time.Now()}
	if err := s.db.Save(&slot).Error; err != nil {
		return fmt.Errorf("store: sqlite write %s: %w", key, err)
	}
	return nil
}
