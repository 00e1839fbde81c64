package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableName(t *testing.T) {
	order := Order{}
	assert.Equal(t, "orders", order.TableName(), "Table name should be 'orders'")
}

func TestTrackTableName(t *testing.T) {
	track := Track{}
	assert.Equal(t, "tracks", track.TableName(), "Table name should be 'tracks'")
}

func TestStatusForAction(t *testing.T) {
	tests := []struct {
		action     string
		wantStatus string
		recognized bool
	}{
		{"picked_up", OrderStatusPickedUp, true},
		{"processing", OrderStatusProcessing, true},
		{"completed", OrderStatusCompleted, true},
		{"delivered", OrderStatusDelivered, true},
		{"cancelled", OrderStatusCancelled, true},
		{"weighed", "", false},
		{"created", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			status, ok := StatusForAction(tt.action)
			assert.Equal(t, tt.recognized, ok)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"created to picked_up", OrderStatusCreated, OrderStatusPickedUp, true},
		{"picked_up to processing", OrderStatusPickedUp, OrderStatusProcessing, true},
		{"processing to completed", OrderStatusProcessing, OrderStatusCompleted, true},
		{"completed to delivered", OrderStatusCompleted, OrderStatusDelivered, true},
		{"created straight to delivered", OrderStatusCreated, OrderStatusDelivered, false},
		{"skipping processing", OrderStatusPickedUp, OrderStatusCompleted, false},
		{"backwards", OrderStatusProcessing, OrderStatusPickedUp, false},
		{"cancel from created", OrderStatusCreated, OrderStatusCancelled, true},
		{"cancel from processing", OrderStatusProcessing, OrderStatusCancelled, true},
		{"cancel after delivery", OrderStatusDelivered, OrderStatusCancelled, false},
		{"leave cancelled", OrderStatusCancelled, OrderStatusPickedUp, false},
		{"leave delivered", OrderStatusDelivered, OrderStatusPickedUp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(OrderStatusDelivered))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))
	assert.False(t, IsTerminalStatus(OrderStatusCreated))
	assert.False(t, IsTerminalStatus(OrderStatusPickedUp))
	assert.False(t, IsTerminalStatus(OrderStatusProcessing))
	assert.False(t, IsTerminalStatus(OrderStatusCompleted))
}
