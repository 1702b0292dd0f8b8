// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
)

// NewDB returns a migrated SQLite database in t's temp dir, closed on cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite takes one writer at a time; a single connection keeps concurrent
	// callers queued instead of failing with SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
