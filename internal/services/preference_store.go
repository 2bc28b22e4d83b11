package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"folio_app_echo/internal/models"
)

// DarkModeKey is the storage key of the dark-mode flag ("true"/"false")
const DarkModeKey = "darkMode"

// PreferenceStore is durable per-visitor storage for small string settings
type PreferenceStore interface {
	// Get returns the stored value; ok is false when nothing is stored
	Get(ctx context.Context, visitorID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, visitorID, key, value string) error
}

// MemoryPreferenceStore keeps preferences for the lifetime of the process
type MemoryPreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{values: make(map[string]string)}
}

func (s *MemoryPreferenceStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[preferenceKey(visitorID, key)]
	return v, ok, nil
}

func (s *MemoryPreferenceStore) Set(_ context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[preferenceKey(visitorID, key)] = value
	return nil
}

// RedisPreferenceStore keeps preferences in Redis
type RedisPreferenceStore struct {
	cache *RedisCache
	ttl   time.Duration
}

// NewRedisPreferenceStore stores values for ttl after the last write; zero keeps them forever
func NewRedisPreferenceStore(cache *RedisCache, ttl time.Duration) *RedisPreferenceStore {
	return &RedisPreferenceStore{cache: cache, ttl: ttl}
}

func (s *RedisPreferenceStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var value string
	err := s.cache.Get(ctx, preferenceKey(visitorID, key), &value)
	if errors.Is(err, ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisPreferenceStore) Set(ctx context.Context, visitorID, key, value string) error {
	if err := s.cache.Set(ctx, preferenceKey(visitorID, key), value, s.ttl); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// GormPreferenceStore keeps preferences in the preferences table
type GormPreferenceStore struct {
	db *gorm.DB
}

func NewGormPreferenceStore(db *gorm.DB) *GormPreferenceStore {
	return &GormPreferenceStore{db: db}
}

func (s *GormPreferenceStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var pref models.Preference
	err := s.db.WithContext(ctx).Where("visitor_id = ? AND key = ?", visitorID, key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, true, nil
}

func (s *GormPreferenceStore) Set(ctx context.Context, visitorID, key, value string) error {
	pref := models.Preference{VisitorID: visitorID, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func preferenceKey(visitorID, key string) string {
	return "pref:" + visitorID + ":" + key
}
