package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/report"
)

// Accounts returns accounts with balances derived from settled transactions
// and transfers.
func (e *Engine) Accounts(ctx context.Context) ([]model.Account, error) {
	accounts, err := e.backend.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	transfers, err := e.backend.ListTransfers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfers: %w", err)
	}
	return finance.ApplyBalances(accounts, txns, transfers), nil
}

// Cards returns cards with the limit used by open charges.
func (e *Engine) Cards(ctx context.Context) ([]model.Card, error) {
	cards, err := e.backend.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return finance.ApplyLimits(cards, txns), nil
}

// Categories returns the stored categories, seeding the defaults into an
// empty store first.
func (e *Engine) Categories(ctx context.Context) ([]model.Category, error) {
	cats, err := e.backend.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(cats) > 0 {
		return cats, nil
	}

	defaults := finance.DefaultCategories()
	if err := e.backend.SaveCategories(ctx, defaults...); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	return defaults, nil
}

// TransactionFilter narrows a transaction listing. Zero fields match all.
type TransactionFilter struct {
	Direction  model.Direction
	Status     model.Status
	CategoryID string
	AccountID  string
	CardID     string
	Month      time.Month
	Year       int
}

// Matches reports whether the transaction passes the filter.
func (f TransactionFilter) Matches(t model.Transaction) bool {
	switch {
	case f.Direction != "" && t.Direction != f.Direction:
		return false
	case f.Status != "" && t.Status != f.Status:
		return false
	case f.CategoryID != "" && t.CategoryID != f.CategoryID:
		return false
	case f.AccountID != "" && t.AccountID != f.AccountID:
		return false
	case f.CardID != "" && t.CardID != f.CardID:
		return false
	case f.Year != 0 && t.Date.Year() != f.Year:
		return false
	case f.Month != 0 && t.Date.Month() != f.Month:
		return false
	}
	return true
}

// Transactions lists transactions matching the filter, newest first.
func (e *Engine) Transactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Dashboard summarizes a calendar month.
func (e *Engine) Dashboard(ctx context.Context, year int, month time.Month) (finance.Dashboard, error) {
	accounts, err := e.Accounts(ctx)
	if err != nil {
		return finance.Dashboard{}, err
	}
	cards, err := e.backend.ListCards(ctx)
	if err != nil {
		return finance.Dashboard{}, fmt.Errorf("failed to load cards: %w", err)
	}
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return finance.Dashboard{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return finance.Summarize(accounts, cards, txns, year, month), nil
}

// Projection forecasts balances for the given number of months starting now.
func (e *Engine) Projection(ctx context.Context, months int) ([]finance.ProjectionMonth, error) {
	accounts, err := e.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	rules, err := e.backend.ListRecurring(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}
	return finance.Project(accounts, txns, rules, e.now(), months), nil
}

// BudgetStatuses measures every budget against the current month.
func (e *Engine) BudgetStatuses(ctx context.Context) ([]finance.BudgetStatus, error) {
	budgets, err := e.backend.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	cats, err := e.Categories(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return finance.BudgetStatuses(budgets, cats, txns, e.now()), nil
}

// Report computes spending statistics over the last months calendar months.
func (e *Engine) Report(ctx context.Context, months int) (report.Summary, error) {
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	cats, err := e.Categories(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Build(txns, cats, months, e.now()), nil
}
