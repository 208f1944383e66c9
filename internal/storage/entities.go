package storage

import (
	"context"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/service"
)

var _ service.Backend = (*SQLiteStorage)(nil)

// ListAccounts returns every stored account.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return listRecords[model.Account](ctx, s, service.CollectionAccounts)
}

// SaveAccounts upserts accounts by ID.
func (s *SQLiteStorage) SaveAccounts(ctx context.Context, accounts ...model.Account) error {
	if err := model.ValidateEach(accounts, (*model.Account).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionAccounts, accounts)
}

// DeleteAccount removes one account by ID.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, id string) error {
	return deleteRecord[model.Account](ctx, s, service.CollectionAccounts, id)
}

// ListCards returns every stored card.
func (s *SQLiteStorage) ListCards(ctx context.Context) ([]model.Card, error) {
	return listRecords[model.Card](ctx, s, service.CollectionCards)
}

// SaveCards upserts cards by ID.
func (s *SQLiteStorage) SaveCards(ctx context.Context, cards ...model.Card) error {
	if err := model.ValidateEach(cards, (*model.Card).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionCards, cards)
}

// DeleteCard removes one card by ID.
func (s *SQLiteStorage) DeleteCard(ctx context.Context, id string) error {
	return deleteRecord[model.Card](ctx, s, service.CollectionCards, id)
}

// ListCategories returns every stored category.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	return listRecords[model.Category](ctx, s, service.CollectionCategories)
}

// SaveCategories upserts categories by ID.
func (s *SQLiteStorage) SaveCategories(ctx context.Context, categories ...model.Category) error {
	if err := model.ValidateEach(categories, (*model.Category).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionCategories, categories)
}

// DeleteCategory removes one category by ID.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	return deleteRecord[model.Category](ctx, s, service.CollectionCategories, id)
}

// ListTransactions returns every stored transaction.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return listRecords[model.Transaction](ctx, s, service.CollectionTransactions)
}

// SaveTransactions upserts transactions by ID.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions ...model.Transaction) error {
	if err := model.ValidateEach(transactions, (*model.Transaction).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionTransactions, transactions)
}

// DeleteTransaction removes one transaction by ID.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	return deleteRecord[model.Transaction](ctx, s, service.CollectionTransactions, id)
}

// ListTransfers returns every stored transfer.
func (s *SQLiteStorage) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	return listRecords[model.Transfer](ctx, s, service.CollectionTransfers)
}

// SaveTransfers upserts transfers by ID.
func (s *SQLiteStorage) SaveTransfers(ctx context.Context, transfers ...model.Transfer) error {
	if err := model.ValidateEach(transfers, (*model.Transfer).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionTransfers, transfers)
}

// DeleteTransfer removes one transfer by ID.
func (s *SQLiteStorage) DeleteTransfer(ctx context.Context, id string) error {
	return deleteRecord[model.Transfer](ctx, s, service.CollectionTransfers, id)
}

// ListRecurring returns every stored recurring expense.
func (s *SQLiteStorage) ListRecurring(ctx context.Context) ([]model.RecurringExpense, error) {
	return listRecords[model.RecurringExpense](ctx, s, service.CollectionRecurring)
}

// SaveRecurring upserts rules by ID.
func (s *SQLiteStorage) SaveRecurring(ctx context.Context, rules ...model.RecurringExpense) error {
	if err := model.ValidateEach(rules, (*model.RecurringExpense).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionRecurring, rules)
}

// DeleteRecurring removes one recurring expense by ID.
func (s *SQLiteStorage) DeleteRecurring(ctx context.Context, id string) error {
	return deleteRecord[model.RecurringExpense](ctx, s, service.CollectionRecurring, id)
}

// ListGoals returns every stored goal.
func (s *SQLiteStorage) ListGoals(ctx context.Context) ([]model.Goal, error) {
	return listRecords[model.Goal](ctx, s, service.CollectionGoals)
}

// SaveGoals upserts goals by ID.
func (s *SQLiteStorage) SaveGoals(ctx context.Context, goals ...model.Goal) error {
	if err := model.ValidateEach(goals, (*model.Goal).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionGoals, goals)
}

// DeleteGoal removes one goal by ID.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	return deleteRecord[model.Goal](ctx, s, service.CollectionGoals, id)
}

// ListBudgets returns every stored budget.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return listRecords[model.Budget](ctx, s, service.CollectionBudgets)
}

// SaveBudgets upserts budgets by ID.
func (s *SQLiteStorage) SaveBudgets(ctx context.Context, budgets ...model.Budget) error {
	if err := model.ValidateEach(budgets, (*model.Budget).Validate); err != nil {
		return err
	}
	return upsertRecords(ctx, s, service.CollectionBudgets, budgets)
}

// DeleteBudget removes one budget by ID.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	return deleteRecord[model.Budget](ctx, s, service.CollectionBudgets, id)
}
