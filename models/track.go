package models

import (
	"time"
)

// Track represents one immutable audit event recorded against an order.
// Rows are append-only: there is no update or delete path, and replaying
// them in CreatedAt order reconstructs the order's history.
type Track struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	Order     Order     `gorm:"foreignKey:OrderID" json:"-"`
	WorkerID  *uint     `gorm:"index" json:"worker_id"` // nullable, supports system-initiated events
	Worker    *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Note      *string   `gorm:"type:text" json:"note"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Track model
func (Track) TableName() string {
	return "tracks"
}
