package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/service"
)

// Fallback sends every call to Primary and repeats it on Secondary when the
// primary fails. Failures are logged, never returned, unless both fail.
type Fallback struct {
	Primary   service.Backend
	Secondary service.Backend
}

var _ service.Backend = (*Fallback)(nil)

// NewFallback creates a backend that prefers primary and falls back to secondary.
func NewFallback(primary, secondary service.Backend) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

// Name identifies the backend in logs.
func (f *Fallback) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

// Close closes both backends.
func (f *Fallback) Close() error {
	return errors.Join(f.Primary.Close(), f.Secondary.Close())
}

func (f *Fallback) warn(op string, err error) {
	slog.Warn("Backend call failed, falling back",
		"op", op,
		"backend", f.Primary.Name(),
		"fallback", f.Secondary.Name(),
		"error", err)
}

func fallbackList[T any](ctx context.Context, f *Fallback, op string, call func(service.Backend, context.Context) ([]T, error)) ([]T, error) {
	items, err := call(f.Primary, ctx)
	if err == nil {
		return items, nil
	}
	f.warn(op, err)
	return call(f.Secondary, ctx)
}

func fallbackWrite(ctx context.Context, f *Fallback, op string, call func(service.Backend, context.Context) error) error {
	err := call(f.Primary, ctx)
	if err == nil {
		return nil
	}
	f.warn(op, err)
	return call(f.Secondary, ctx)
}

// ListAccounts reads from the primary, falling back on failure.
func (f *Fallback) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return fallbackList(ctx, f, "ListAccounts", service.Backend.ListAccounts)
}

// SaveAccounts writes to the primary, falling back on failure.
func (f *Fallback) SaveAccounts(ctx context.Context, accounts ...model.Account) error {
	return fallbackWrite(ctx, f, "SaveAccounts", func(b service.Backend, ctx context.Context) error {
		return b.SaveAccounts(ctx, accounts...)
	})
}

// DeleteAccount deletes on the primary, falling back on failure.
func (f *Fallback) DeleteAccount(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteAccount", func(b service.Backend, ctx context.Context) error {
		return b.DeleteAccount(ctx, id)
	})
}

// ListCards reads from the primary, falling back on failure.
func (f *Fallback) ListCards(ctx context.Context) ([]model.Card, error) {
	return fallbackList(ctx, f, "ListCards", service.Backend.ListCards)
}

// SaveCards writes to the primary, falling back on failure.
func (f *Fallback) SaveCards(ctx context.Context, cards ...model.Card) error {
	return fallbackWrite(ctx, f, "SaveCards", func(b service.Backend, ctx context.Context) error {
		return b.SaveCards(ctx, cards...)
	})
}

// DeleteCard deletes on the primary, falling back on failure.
func (f *Fallback) DeleteCard(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteCard", func(b service.Backend, ctx context.Context) error {
		return b.DeleteCard(ctx, id)
	})
}

// ListCategories reads from the primary, falling back on failure.
func (f *Fallback) ListCategories(ctx context.Context) ([]model.Category, error) {
	return fallbackList(ctx, f, "ListCategories", service.Backend.ListCategories)
}

// SaveCategories writes to the primary, falling back on failure.
func (f *Fallback) SaveCategories(ctx context.Context, categories ...model.Category) error {
	return fallbackWrite(ctx, f, "SaveCategories", func(b service.Backend, ctx context.Context) error {
		return b.SaveCategories(ctx, categories...)
	})
}

// DeleteCategory deletes on the primary, falling back on failure.
func (f *Fallback) DeleteCategory(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteCategory", func(b service.Backend, ctx context.Context) error {
		return b.DeleteCategory(ctx, id)
	})
}

// ListTransactions reads from the primary, falling back on failure.
func (f *Fallback) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return fallbackList(ctx, f, "ListTransactions", service.Backend.ListTransactions)
}

// SaveTransactions writes to the primary, falling back on failure.
func (f *Fallback) SaveTransactions(ctx context.Context, transactions ...model.Transaction) error {
	return fallbackWrite(ctx, f, "SaveTransactions", func(b service.Backend, ctx context.Context) error {
		return b.SaveTransactions(ctx, transactions...)
	})
}

// DeleteTransaction deletes on the primary, falling back on failure.
func (f *Fallback) DeleteTransaction(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteTransaction", func(b service.Backend, ctx context.Context) error {
		return b.DeleteTransaction(ctx, id)
	})
}

// ListTransfers reads from the primary, falling back on failure.
func (f *Fallback) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	return fallbackList(ctx, f, "ListTransfers", service.Backend.ListTransfers)
}

// SaveTransfers writes to the primary, falling back on failure.
func (f *Fallback) SaveTransfers(ctx context.Context, transfers ...model.Transfer) error {
	return fallbackWrite(ctx, f, "SaveTransfers", func(b service.Backend, ctx context.Context) error {
		return b.SaveTransfers(ctx, transfers...)
	})
}

// DeleteTransfer deletes on the primary, falling back on failure.
func (f *Fallback) DeleteTransfer(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteTransfer", func(b service.Backend, ctx context.Context) error {
		return b.DeleteTransfer(ctx, id)
	})
}

// ListRecurring reads from the primary, falling back on failure.
func (f *Fallback) ListRecurring(ctx context.Context) ([]model.RecurringExpense, error) {
	return fallbackList(ctx, f, "ListRecurring", service.Backend.ListRecurring)
}

// SaveRecurring writes to the primary, falling back on failure.
func (f *Fallback) SaveRecurring(ctx context.Context, rules ...model.RecurringExpense) error {
	return fallbackWrite(ctx, f, "SaveRecurring", func(b service.Backend, ctx context.Context) error {
		return b.SaveRecurring(ctx, rules...)
	})
}

// DeleteRecurring deletes on the primary, falling back on failure.
func (f *Fallback) DeleteRecurring(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteRecurring", func(b service.Backend, ctx context.Context) error {
		return b.DeleteRecurring(ctx, id)
	})
}

// ListGoals reads from the primary, falling back on failure.
func (f *Fallback) ListGoals(ctx context.Context) ([]model.Goal, error) {
	return fallbackList(ctx, f, "ListGoals", service.Backend.ListGoals)
}

// SaveGoals writes to the primary, falling back on failure.
func (f *Fallback) SaveGoals(ctx context.Context, goals ...model.Goal) error {
	return fallbackWrite(ctx, f, "SaveGoals", func(b service.Backend, ctx context.Context) error {
		return b.SaveGoals(ctx, goals...)
	})
}

// DeleteGoal deletes on the primary, falling back on failure.
func (f *Fallback) DeleteGoal(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteGoal", func(b service.Backend, ctx context.Context) error {
		return b.DeleteGoal(ctx, id)
	})
}

// ListBudgets reads from the primary, falling back on failure.
func (f *Fallback) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return fallbackList(ctx, f, "ListBudgets", service.Backend.ListBudgets)
}

// SaveBudgets writes to the primary, falling back on failure.
func (f *Fallback) SaveBudgets(ctx context.Context, budgets ...model.Budget) error {
	return fallbackWrite(ctx, f, "SaveBudgets", func(b service.Backend, ctx context.Context) error {
		return b.SaveBudgets(ctx, budgets...)
	})
}

// DeleteBudget deletes on the primary, falling back on failure.
func (f *Fallback) DeleteBudget(ctx context.Context, id string) error {
	return fallbackWrite(ctx, f, "DeleteBudget", func(b service.Backend, ctx context.Context) error {
		return b.DeleteBudget(ctx, id)
	})
}
