// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/gab-correia/w1-app/internal/core/database"
	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/internal/feature/user"
)

// NewSQLiteDB opens a migrated sqlite database in a temp dir. Transactions
// take the write lock at BEGIN so concurrent writers queue instead of
// failing.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "w1.db") + "?_foreign_keys=on&_busy_timeout=10000&_txlock=immediate"
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 4,
		MaxIdleConns: 4,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, user.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SeedPatrimony attaches holdings to the client profile of userID.
func SeedPatrimony(t testing.TB, db *gorm.DB, userID string, rows ...domain.Patrimony) {
	t.Helper()
	var c user.ClientModel
	if err := db.Where("user_id = ?", userID).Take(&c).Error; err != nil {
		t.Fatalf("find client profile: %v", err)
	}
	for _, r := range rows {
		p := user.PatrimonyModel{ClientID: c.ID, Category: r.Category, Value: r.Value}
		if err := db.Omit("Client").Create(&p).Error; err != nil {
			t.Fatalf("seed patrimony: %v", err)
		}
	}
}
