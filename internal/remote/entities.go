package remote

import (
	"context"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/service"
)

var _ service.Backend = (*Store)(nil)

// ListAccounts returns the user's accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return listRows[accountRow, model.Account](ctx, s, "accounts")
}

// SaveAccounts upserts accounts by ID.
func (s *Store) SaveAccounts(ctx context.Context, accounts ...model.Account) error {
	if err := model.ValidateEach(accounts, (*model.Account).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "accounts", convert(s.userID, accounts, fromAccount))
}

// DeleteAccount removes an account.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return deleteRow[accountRow](ctx, s, "accounts", id)
}

// ListCards returns the user's cards.
func (s *Store) ListCards(ctx context.Context) ([]model.Card, error) {
	return listRows[cardRow, model.Card](ctx, s, "cards")
}

// SaveCards upserts cards by ID.
func (s *Store) SaveCards(ctx context.Context, cards ...model.Card) error {
	if err := model.ValidateEach(cards, (*model.Card).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "cards", convert(s.userID, cards, fromCard))
}

// DeleteCard removes a card.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	return deleteRow[cardRow](ctx, s, "cards", id)
}

// ListCategories returns the user's categories.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	return listRows[categoryRow, model.Category](ctx, s, "categories")
}

// SaveCategories upserts categories by ID.
func (s *Store) SaveCategories(ctx context.Context, categories ...model.Category) error {
	if err := model.ValidateEach(categories, (*model.Category).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "categories", convert(s.userID, categories, fromCategory))
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return deleteRow[categoryRow](ctx, s, "categories", id)
}

// ListTransactions returns the user's transactions.
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return listRows[transactionRow, model.Transaction](ctx, s, "transactions")
}

// SaveTransactions upserts transactions by ID.
func (s *Store) SaveTransactions(ctx context.Context, transactions ...model.Transaction) error {
	if err := model.ValidateEach(transactions, (*model.Transaction).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "transactions", convert(s.userID, transactions, fromTransaction))
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return deleteRow[transactionRow](ctx, s, "transactions", id)
}

// ListTransfers returns the user's transfers.
func (s *Store) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	return listRows[transferRow, model.Transfer](ctx, s, "transfers")
}

// SaveTransfers upserts transfers by ID.
func (s *Store) SaveTransfers(ctx context.Context, transfers ...model.Transfer) error {
	if err := model.ValidateEach(transfers, (*model.Transfer).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "transfers", convert(s.userID, transfers, fromTransfer))
}

// DeleteTransfer removes a transfer.
func (s *Store) DeleteTransfer(ctx context.Context, id string) error {
	return deleteRow[transferRow](ctx, s, "transfers", id)
}

// ListRecurring returns the user's recurring expenses.
func (s *Store) ListRecurring(ctx context.Context) ([]model.RecurringExpense, error) {
	return listRows[recurringRow, model.RecurringExpense](ctx, s, "recurring_expenses")
}

// SaveRecurring upserts recurring expenses by ID.
func (s *Store) SaveRecurring(ctx context.Context, rules ...model.RecurringExpense) error {
	if err := model.ValidateEach(rules, (*model.RecurringExpense).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "recurring_expenses", convert(s.userID, rules, fromRecurring))
}

// DeleteRecurring removes a recurring expense.
func (s *Store) DeleteRecurring(ctx context.Context, id string) error {
	return deleteRow[recurringRow](ctx, s, "recurring_expenses", id)
}

// ListGoals returns the user's goals.
func (s *Store) ListGoals(ctx context.Context) ([]model.Goal, error) {
	return listRows[goalRow, model.Goal](ctx, s, "goals")
}

// SaveGoals upserts goals by ID.
func (s *Store) SaveGoals(ctx context.Context, goals ...model.Goal) error {
	if err := model.ValidateEach(goals, (*model.Goal).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "goals", convert(s.userID, goals, fromGoal))
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	return deleteRow[goalRow](ctx, s, "goals", id)
}

// ListBudgets returns the user's budgets.
func (s *Store) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return listRows[budgetRow, model.Budget](ctx, s, "budgets")
}

// SaveBudgets upserts budgets by ID.
func (s *Store) SaveBudgets(ctx context.Context, budgets ...model.Budget) error {
	if err := model.ValidateEach(budgets, (*model.Budget).Validate); err != nil {
		return err
	}
	return upsertRows(ctx, s, "budgets", convert(s.userID, budgets, fromBudget))
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	return deleteRow[budgetRow](ctx, s, "budgets", id)
}
