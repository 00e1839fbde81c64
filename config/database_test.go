package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetDB(t *testing.T) {
	// Initially DB should be nil
	DB = nil
	db := GetDB()
	assert.Nil(t, db, "GetDB should return nil when DB is not initialized")
}

func TestSetDB(t *testing.T) {
	originalDB := DB
	defer func() { DB = originalDB }()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	SetDB(db)
	assert.Same(t, db, GetDB(), "GetDB should return the instance passed to SetDB")
}
