package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemoryDBMigrates(t *testing.T) {
	db, err := NewInMemoryDB()
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("prep_sessions"))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := NewGormDB("oracle", "whatever")
	assert.Error(t, err)
}
