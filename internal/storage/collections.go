package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/exodo/internal/service"
)

// record is any entity addressable by ID.
type record interface {
	GetID() string
}

// loadCollection reads one collection. A missing, malformed or non-array
// payload yields an empty slice.
func loadCollection[T any](ctx context.Context, q queryable, key service.Collection) ([]T, error) {
	var payload string
	err := q.QueryRowContext(ctx, `SELECT payload FROM collections WHERE key = ?`, string(key)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		slog.Warn("Discarding malformed collection payload",
			"collection", key,
			"error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// storeCollection replaces the whole payload of a collection.
func storeCollection[T any](ctx context.Context, q queryable, key service.Collection, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO collections (key, payload, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			revision = collections.revision + 1`,
		string(key), string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// upsertRecords merges items into a collection by ID inside one transaction.
func upsertRecords[T record](ctx context.Context, s *SQLiteStorage, key service.Collection, items []T) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := loadCollection[T](ctx, tx, key)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(existing))
	for i, item := range existing {
		index[item.GetID()] = i
	}
	for _, item := range items {
		if i, ok := index[item.GetID()]; ok {
			existing[i] = item
			continue
		}
		index[item.GetID()] = len(existing)
		existing = append(existing, item)
	}

	if err := storeCollection(ctx, tx, key, existing); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}

	slog.Debug("saved records", "collection", key, "count", len(items))
	return nil
}

// deleteRecord removes the record with the given ID. Deleting a missing ID is a no-op.
func deleteRecord[T record](ctx context.Context, s *SQLiteStorage, key service.Collection, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := loadCollection[T](ctx, tx, key)
	if err != nil {
		return err
	}

	kept := existing[:0]
	for _, item := range existing {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(existing) {
		return nil
	}

	if err := storeCollection(ctx, tx, key, kept); err != nil {
		return err
	}
	return tx.Commit()
}

// listRecords reads a collection outside of a transaction.
func listRecords[T any](ctx context.Context, s *SQLiteStorage, key service.Collection) ([]T, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return loadCollection[T](ctx, s.db, key)
}
