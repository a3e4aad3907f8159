// Package storetest opens an isolated in-memory database for tests.
package storetest

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"pingup/backend/internal/database"
	"pingup/backend/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// Open returns a migrated sqlite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameCleaner.Replace(t.Name()))
	db, err := database.Open(sqlite.Open(dsn), log)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// New returns a Store over a fresh database, plus the raw handle for seeding.
func New(t testing.TB) (*store.Store, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return store.New(db, 2*time.Second), db
}
