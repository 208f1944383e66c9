// Package cloudsync copies every collection from one backend to another,
// which is how local data is uploaded to the hosted backend and pulled back.
package cloudsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/service"
)

// DefaultChunkSize is how many records go into one upsert call.
const DefaultChunkSize = 50

// Progress receives chunk completions for one collection.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
	Finish() error
}

// TableReport describes the copy of one collection.
type TableReport struct {
	Table        string
	Total        int
	Written      int
	FailedChunks int
}

// Report summarizes a run.
type Report struct {
	Tables  []TableReport
	Written int
	Failed  int
}

// Syncer copies From into To. Records are upserted by ID so a rerun
// overwrites rather than duplicates; nothing is deleted from To.
type Syncer struct {
	From      service.Backend
	To        service.Backend
	ChunkSize int
	// Progress, when set, is called once per collection with its size.
	Progress func(table string, total int) Progress
}

// Run copies the collections in dependency order. A chunk that fails to
// write is logged and counted but neither retried nor rolled back. Read
// errors and context cancellation stop the run.
func (s *Syncer) Run(ctx context.Context) (Report, error) {
	steps := []func(context.Context) (TableReport, error){
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "categories", s.From.ListCategories, s.To.SaveCategories)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "accounts", s.From.ListAccounts, s.To.SaveAccounts)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "cards", s.From.ListCards, s.To.SaveCards)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "transactions", s.From.ListTransactions, s.To.SaveTransactions)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "transfers", s.From.ListTransfers, s.To.SaveTransfers)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "recurring", s.From.ListRecurring, s.To.SaveRecurring)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "goals", s.From.ListGoals, s.To.SaveGoals)
		},
		func(ctx context.Context) (TableReport, error) {
			return copyTable(ctx, s, "budgets", s.From.ListBudgets, s.To.SaveBudgets)
		},
	}

	slog.Info("Starting sync", "from", s.From.Name(), "to", s.To.Name())

	var report Report
	for _, step := range steps {
		tr, err := step(ctx)
		report.Tables = append(report.Tables, tr)
		report.Written += tr.Written
		report.Failed += tr.FailedChunks
		if err != nil {
			return report, err
		}
	}

	common.LogInfo("Sync finished", common.Fields{
		"written":       report.Written,
		"failed_chunks": report.Failed,
	})
	return report, nil
}

func (s *Syncer) chunkSize() int {
	if s.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func copyTable[T any](
	ctx context.Context,
	s *Syncer,
	table string,
	list func(context.Context) ([]T, error),
	save func(context.Context, ...T) error,
) (TableReport, error) {
	tr := TableReport{Table: table}
	if err := ctx.Err(); err != nil {
		return tr, err
	}

	items, err := list(ctx)
	if err != nil {
		return tr, fmt.Errorf("failed to read %s: %w", table, err)
	}
	tr.Total = len(items)
	if len(items) == 0 {
		return tr, nil
	}

	var bar Progress
	if s.Progress != nil {
		bar = s.Progress(table, len(items))
	}

	size := s.chunkSize()
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		end := min(start+size, len(items))
		chunk := items[start:end]

		if err := save(ctx, chunk...); err != nil {
			common.LogError(err, "Failed to write chunk", common.Fields{
				"table":  table,
				"offset": start,
				"size":   len(chunk),
			})
			tr.FailedChunks++
		} else {
			tr.Written += len(chunk)
		}

		if bar != nil {
			if err := bar.Add(len(chunk)); err != nil {
				slog.Debug("Failed to update progress bar", "error", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			slog.Debug("Failed to finish progress bar", "error", err)
		}
	}
	return tr, nil
}
