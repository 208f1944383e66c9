// Package engine implements the operations exodo exposes: it loads entities
// from a backend, runs the finance rules over them and persists the results.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/service"
	"github.com/google/uuid"
)

// Engine orchestrates a backend and the finance rules.
type Engine struct {
	backend service.Backend
	now     func() time.Time
	newID   func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides how new entity IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an engine over the given backend.
func New(backend service.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the backend the engine writes to.
func (e *Engine) Backend() service.Backend {
	return e.backend
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// RefreshResult counts what a refresh changed.
type RefreshResult struct {
	Overdue   int
	Generated int
}

// Refresh marks past-due transactions overdue and materializes this month's
// recurring expenses, persisting both. It is safe to run repeatedly.
func (e *Engine) Refresh(ctx context.Context) (RefreshResult, error) {
	now := e.now()

	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	updated, changed := finance.PromoteOverdue(txns, now)
	if len(changed) > 0 {
		if err := e.backend.SaveTransactions(ctx, changed...); err != nil {
			return RefreshResult{}, fmt.Errorf("failed to save overdue transactions: %w", err)
		}
		slog.Info("Marked transactions overdue", "count", len(changed))
	}

	rules, err := e.backend.ListRecurring(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	created, touched := finance.MaterializeRecurring(rules, updated, now, e.newID)
	if len(created) > 0 {
		if err := e.backend.SaveTransactions(ctx, created...); err != nil {
			return RefreshResult{}, fmt.Errorf("failed to save recurring transactions: %w", err)
		}
		if err := e.backend.SaveRecurring(ctx, touched...); err != nil {
			return RefreshResult{}, fmt.Errorf("failed to update recurring expenses: %w", err)
		}
		slog.Info("Generated recurring transactions", "count", len(created))
	}

	return RefreshResult{Overdue: len(changed), Generated: len(created)}, nil
}

type identifiable interface {
	GetID() string
}

func find[T identifiable](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, common.ErrNotFound)
}
