package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCustomerTableName(t *testing.T) {
	assert.Equal(t, "customers", Customer{}.TableName())
}

// TestCustomerActiveFlagRoundTrip verifies both values of IsActive survive
// a Create. A column default on the flag would make this fail: GORM omits
// zero-valued fields carrying a default tag, so false would silently
// persist as true and disabled accounts could never exist.
func TestCustomerActiveFlagRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&Customer{}))

	active := Customer{Name: "Alice", Email: "a@x.com", PasswordHash: "x", IsActive: true}
	assert.NoError(t, db.Create(&active).Error)

	disabled := Customer{Name: "Mallory", Email: "m@x.com", PasswordHash: "x", IsActive: false}
	assert.NoError(t, db.Create(&disabled).Error)

	var fresh Customer
	assert.NoError(t, db.First(&fresh, active.ID).Error)
	assert.True(t, fresh.IsActive)

	fresh = Customer{}
	assert.NoError(t, db.First(&fresh, disabled.ID).Error)
	assert.False(t, fresh.IsActive, "A customer created as disabled must stay disabled")
}
