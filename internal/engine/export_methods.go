package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/report"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ExportOptions selects what Export writes.
type ExportOptions struct {
	Format  string
	Columns []report.Column
	Filter  TransactionFilter
	// Months limits the export to the last N calendar months; 0 exports all.
	Months int
}

// Export writes the selected transactions, oldest first.
func (e *Engine) Export(ctx context.Context, w io.Writer, opts ExportOptions) (int, error) {
	txns, err := e.Transactions(ctx, opts.Filter)
	if err != nil {
		return 0, err
	}
	if opts.Months > 0 {
		txns = report.FilterByPeriod(txns, opts.Months, e.now())
	}
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}

	cats, err := e.Categories(ctx)
	if err != nil {
		return 0, err
	}
	exp := report.NewExporter(cats, opts.Columns)

	switch opts.Format {
	case FormatCSV, "":
		err = exp.WriteCSV(w, txns)
	case FormatJSON:
		err = exp.WriteJSON(w, txns)
	default:
		return 0, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if err != nil {
		return 0, err
	}
	return len(txns), nil
}

// ImportResult counts the outcome of an import.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import saves transactions whose IDs are not stored yet. Re-importing the
// same statement is a no-op.
func (e *Engine) Import(ctx context.Context, txns []model.Transaction) (ImportResult, error) {
	existing, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.ID] = true
	}

	var fresh []model.Transaction
	var res ImportResult
	for _, t := range txns {
		if known[t.ID] {
			res.Skipped++
			continue
		}
		known[t.ID] = true
		if t.CreatedAt.IsZero() {
			t.CreatedAt = e.now()
		}
		t.Date = model.DateOnly(t.Date)
		fresh = append(fresh, t)
	}

	if len(fresh) > 0 {
		if err := e.backend.SaveTransactions(ctx, fresh...); err != nil {
			return ImportResult{}, fmt.Errorf("failed to save imported transactions: %w", err)
		}
	}
	res.Added = len(fresh)
	return res, nil
}
