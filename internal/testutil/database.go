// Package testutil provides test storage and fixture builders for exodo
// packages. Everything it creates is isolated per test and cleaned up
// automatically.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/exodo/internal/storage"
)

// TestDB is a migrated in-memory store bound to a test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory store and runs migrations. It is closed
// when the test finishes.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	testutil.NewBuilder(t).
//		WithDefaultCategories().
//		WithAccount("acc", "Nubank", 1000).
//		Seed(db.Storage)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SetupTestDBWithBuilder creates a store and seeds it with the builder's
// fixtures.
func SetupTestDBWithBuilder(t *testing.T, configure func(*Builder) *Builder) *TestDB {
	t.Helper()

	db := SetupTestDB(t)
	b := NewBuilder(t)
	if configure != nil {
		b = configure(b)
	}
	b.Seed(db.Storage)
	return db
}
