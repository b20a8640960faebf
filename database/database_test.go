package database

import (
	"path/filepath"
	"testing"

	"expensetracker/config"
	"expensetracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expenses.db")
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: path, LogLevel: "silent", SeedCategories: true})
	require.NoError(t, err)
	defer Close(db)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.DefaultCategories())), count)

	// 再次初始化不会重复写入
	require.NoError(t, SeedCategories(db))
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.DefaultCategories())), count)
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "fk.db"), LogLevel: "silent"})
	require.NoError(t, err)
	defer Close(db)

	missing := uint(42)
	err = db.Create(&models.Expense{
		Title:      "orphan",
		Amount:     models.MustParseAmount("1"),
		Date:       models.Today(),
		CategoryID: &missing,
	}).Error
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	dsn, err := sqliteDSN(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:?_foreign_keys=1&_busy_timeout=5000", dsn)

	dsn, err = sqliteDSN("file:test.db?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=1&_busy_timeout=5000", dsn)
}
