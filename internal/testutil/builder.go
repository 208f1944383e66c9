package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/service"
)

// Date returns midnight UTC of the given civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Expense returns a valid paid expense on the default account.
func Expense(id, categoryID string, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		Date:          date,
		ID:            id,
		Description:   id,
		Direction:     model.DirectionExpense,
		CategoryID:    categoryID,
		Status:        model.StatusPaid,
		PaymentMethod: model.PaymentDebit,
		AccountID:     DefaultAccountID,
		Amount:        amount,
	}
}

// Income returns a valid received income on the default account.
func Income(id, categoryID string, amount float64, date time.Time) model.Transaction {
	t := Expense(id, categoryID, amount, date)
	t.Direction = model.DirectionIncome
	t.Status = model.StatusReceived
	t.PaymentMethod = model.PaymentPix
	return t
}

// DefaultAccountID is the account Expense and Income charge.
const DefaultAccountID = "acc_main"

// Builder collects fixtures and writes them to a backend in one go.
type Builder struct {
	t            *testing.T
	accounts     []model.Account
	cards        []model.Card
	categories   []model.Category
	transactions []model.Transaction
	transfers    []model.Transfer
	recurring    []model.RecurringExpense
	goals        []model.Goal
	budgets      []model.Budget
}

// NewBuilder creates an empty fixture builder.
func NewBuilder(t *testing.T) *Builder {
	return &Builder{t: t}
}

// WithDefaultCategories adds the seeded category set.
func (b *Builder) WithDefaultCategories() *Builder {
	b.categories = append(b.categories, finance.DefaultCategories()...)
	return b
}

// WithCategory adds a custom category.
func (b *Builder) WithCategory(id, name string, dir model.Direction) *Builder {
	b.categories = append(b.categories, model.Category{ID: id, Name: name, Type: dir})
	return b
}

// WithAccount adds a checking account.
func (b *Builder) WithAccount(id, name string, initial float64) *Builder {
	b.accounts = append(b.accounts, model.Account{
		ID:             id,
		Name:           name,
		Type:           model.AccountChecking,
		InitialBalance: initial,
	})
	return b
}

// WithCard adds a credit card.
func (b *Builder) WithCard(id, name string, limit float64, closingDay, dueDay int) *Builder {
	b.cards = append(b.cards, model.Card{
		ID:         id,
		Name:       name,
		Limit:      limit,
		ClosingDay: closingDay,
		DueDay:     dueDay,
	})
	return b
}

// WithTransactions adds transactions as given.
func (b *Builder) WithTransactions(txns ...model.Transaction) *Builder {
	b.transactions = append(b.transactions, txns...)
	return b
}

// WithTransfer adds a transfer between two accounts.
func (b *Builder) WithTransfer(id, from, to string, amount float64, date time.Time) *Builder {
	b.transfers = append(b.transfers, model.Transfer{
		ID:            id,
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
		Date:          date,
	})
	return b
}

// WithRecurring adds an active auto-create monthly rule.
func (b *Builder) WithRecurring(id, description, categoryID string, amount float64, day int) *Builder {
	b.recurring = append(b.recurring, model.RecurringExpense{
		ID:          id,
		Description: description,
		CategoryID:  categoryID,
		Type:        model.RecurrenceFixed,
		Frequency:   model.FrequencyMonthly,
		AccountID:   DefaultAccountID,
		Amount:      amount,
		DayOfMonth:  day,
		Active:      true,
		AutoCreate:  true,
	})
	return b
}

// WithGoal adds an active goal.
func (b *Builder) WithGoal(id, name string, target, current float64) *Builder {
	b.goals = append(b.goals, model.Goal{
		ID:            id,
		Name:          name,
		Status:        model.GoalActive,
		TargetAmount:  target,
		CurrentAmount: current,
	})
	return b
}

// WithBudget adds a budget with both alerts on.
func (b *Builder) WithBudget(id, categoryID string, amount float64) *Builder {
	b.budgets = append(b.budgets, model.Budget{
		ID:         id,
		CategoryID: categoryID,
		Amount:     amount,
		Alert80:    true,
		Alert100:   true,
	})
	return b
}

// Seed writes every fixture to the backend, failing the test on error.
func (b *Builder) Seed(backend service.Backend) {
	b.t.Helper()
	if err := b.Build(context.Background(), backend); err != nil {
		b.t.Fatalf("failed to seed fixtures: %v", err)
	}
}

// Build writes every fixture to the backend in synchronization order.
func (b *Builder) Build(ctx context.Context, backend service.Backend) error {
	steps := []func() error{
		func() error { return saveIfAny(ctx, b.categories, backend.SaveCategories) },
		func() error { return saveIfAny(ctx, b.accounts, backend.SaveAccounts) },
		func() error { return saveIfAny(ctx, b.cards, backend.SaveCards) },
		func() error { return saveIfAny(ctx, b.transactions, backend.SaveTransactions) },
		func() error { return saveIfAny(ctx, b.transfers, backend.SaveTransfers) },
		func() error { return saveIfAny(ctx, b.recurring, backend.SaveRecurring) },
		func() error { return saveIfAny(ctx, b.goals, backend.SaveGoals) },
		func() error { return saveIfAny(ctx, b.budgets, backend.SaveBudgets) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func saveIfAny[T any](ctx context.Context, items []T, save func(context.Context, ...T) error) error {
	if len(items) == 0 {
		return nil
	}
	return save(ctx, items...)
}
