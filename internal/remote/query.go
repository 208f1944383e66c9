package remote

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

type modeler[T any] interface {
	model() T
}

func listRows[R modeler[T], T any](ctx context.Context, s *Store, table string) ([]T, error) {
	var rows []R
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

// upsertRows writes rows in batches, replacing every column of existing IDs.
func upsertRows[R any](ctx context.Context, s *Store, table string, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(rows, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", table, err)
	}
	return nil
}

func deleteRow[R any](ctx context.Context, s *Store, table, id string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", s.userID, id).
		Delete(new(R)).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}
	return nil
}

func convert[M any, R any](userID string, items []M, fn func(string, M) R) []R {
	rows := make([]R, 0, len(items))
	for _, it := range items {
		rows = append(rows, fn(userID, it))
	}
	return rows
}
