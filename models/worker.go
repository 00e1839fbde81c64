package models

import (
	"time"
)

// Worker represents a staff member who scans orders through the pipeline.
// Authentication is an opaque device token, not a JWT; the token can be
// rotated by logging the worker in again.
type Worker struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     *string   `gorm:"uniqueIndex" json:"email"`
	Token     string    `gorm:"index;not null" json:"-"` // opaque bearer token, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}
