// Package dbtest menyiapkan database SQLite in-memory yang sudah dimigrasi untuk test.
package dbtest

import (
	"testing"

	"github.com/BarenJ/AplikasiPanti/internal/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New membuka database kosong. Satu koneksi saja: setiap koneksi :memory: adalah database terpisah.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// Seeded sama dengan New ditambah data referensi dan akun default.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()
	db := New(t)
	require.NoError(t, database.SeedAll(db, zap.NewNop()))
	return db
}
