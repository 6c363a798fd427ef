package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	d, maxOpen := dialectorFor("host=localhost user=app dbname=app sslmode=disable")
	assert.Equal(t, "postgres", d.Name())
	assert.Equal(t, 100, maxOpen)

	d, maxOpen = dialectorFor("sqlite://softdelete.db")
	assert.Equal(t, "sqlite", d.Name())
	assert.Equal(t, 1, maxOpen)
}

func TestNewGormDBFromDSN_Sqlite(t *testing.T) {
	db, err := NewGormDBFromDSN(sqlitePrefix + filepath.Join(t.TempDir(), "softdelete.db"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
