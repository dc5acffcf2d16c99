package repo

import (
	"path/filepath"
	"testing"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

func TestOpenSQLiteMigrateAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")

	db, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(db.Config.Plugins) != 0 {
		t.Fatalf("plugins registered without tracing enabled: %v", db.Config.Plugins)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	var n int64
	if err := db.Model(&domain.Order{}).Count(&n).Error; err != nil {
		t.Fatalf("count on migrated schema: %v", err)
	}
}

func TestOpenSQLiteRegistersTracingPlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")

	db, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("OpenSQLite with tracing: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(db.Config.Plugins) == 0 {
		t.Fatal("tracing enabled but no gorm plugin registered")
	}
	// Traced connections must still serve queries.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate on traced db: %v", err)
	}
	var n int64
	if err := db.Model(&domain.IncompleteOrder{}).Count(&n).Error; err != nil {
		t.Fatalf("count on traced db: %v", err)
	}
}

func TestOpenSQLiteMissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist", "orders.db")
	if _, err := OpenSQLite(path, false); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
