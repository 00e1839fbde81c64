package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a registered customer account
type Customer struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone        *string        `json:"phone"`
	PasswordHash string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	// No column default here: GORM skips zero-valued fields that carry a
	// default tag, which would turn every persisted false back into true.
	// Registration sets the flag explicitly.
	IsActive     bool           `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
