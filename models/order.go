package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. An order moves forward through the pipeline as
// workers scan it; cancelled is reachable from any non-terminal status.
const (
	OrderStatusCreated    = "created"
	OrderStatusPickedUp   = "picked_up"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// statusTransitions is the forward transition table for order statuses.
// Only consulted when strict transition checking is enabled.
var statusTransitions = map[string][]string{
	OrderStatusCreated:    {OrderStatusPickedUp, OrderStatusCancelled},
	OrderStatusPickedUp:   {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// scanActionStatuses maps recognized worker scan actions onto the order
// status they drive. Actions outside this set are recorded in the audit
// trail but never change the order status.
var scanActionStatuses = map[string]string{
	"picked_up":  OrderStatusPickedUp,
	"processing": OrderStatusProcessing,
	"completed":  OrderStatusCompleted,
	"delivered":  OrderStatusDelivered,
	"cancelled":  OrderStatusCancelled,
}

// StatusForAction returns the order status a scan action maps to,
// and whether the action is a recognized lifecycle action.
func StatusForAction(action string) (string, bool) {
	status, ok := scanActionStatuses[action]
	return status, ok
}

// CanTransition reports whether an order may move from one status to
// another under strict transition checking.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// Order represents a customer's laundry order in the system
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderNumber  string          `gorm:"uniqueIndex;not null" json:"order_number"` // opaque public identifier
	CustomerID   uint            `gorm:"not null;index" json:"customer_id"`        // foreign key to customers table
	Customer     Customer        `gorm:"foreignKey:CustomerID" json:"-"`
	ServiceID    uint            `gorm:"not null;index" json:"service_id"` // foreign key to services table
	Service      Service         `gorm:"foreignKey:ServiceID" json:"service"`
	PickupDate   *time.Time      `json:"pickup_date"`
	Instructions *string         `gorm:"type:text" json:"instructions"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_cost"` // snapshot of the service price at creation
	Status       string          `gorm:"not null;default:'created'" json:"status"`
	LabelS3Key   *string         `json:"label_s3_key"`                 // nullable, S3 key of the generated QR label
	LabelURL     *string         `gorm:"-" json:"label_url,omitempty"` // computed field, presigned URL for the label
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
