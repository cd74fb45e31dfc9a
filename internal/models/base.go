package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains the common columns shared by all tables. DeletedAt gives
// every entity soft-delete semantics: once set, GORM filters the row out
// of all standard queries.
type Base struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
