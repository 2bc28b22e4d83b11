package models

import (
	"time"

	"gorm.io/gorm"
)

// Preference is one durable per-visitor setting, e.g. the dark-mode flag
type Preference struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	VisitorID string `gorm:"type:varchar(64);uniqueIndex:idx_preferences_visitor_key,priority:1" json:"visitor_id"`
	Key       string `gorm:"type:varchar(64);uniqueIndex:idx_preferences_visitor_key,priority:2" json:"key"`
	Value     string `gorm:"type:varchar(255)" json:"value"`
}
