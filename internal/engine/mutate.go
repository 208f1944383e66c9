package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/simulate"
)

// SaveTransaction creates or updates a transaction. A new transaction that
// starts an installment plan also creates the plan's remaining installments.
// It returns everything that was written.
func (e *Engine) SaveTransaction(ctx context.Context, txn model.Transaction) ([]model.Transaction, error) {
	if txn.ID == "" {
		txn.ID = e.newID()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = e.now()
	}
	txn.Date = model.DateOnly(txn.Date)

	existing, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	batch := []model.Transaction{txn}
	if _, found := find(existing, txn.ID); !found {
		batch = finance.ExpandInstallments(txn, e.newID)
	}

	if err := e.backend.SaveTransactions(ctx, batch...); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	if len(batch) > 1 {
		slog.Info("Created installment plan",
			"transaction_id", txn.ID,
			"installments", len(batch))
	}
	return batch, nil
}

// SettleTransaction marks a transaction paid or received.
func (e *Engine) SettleTransaction(ctx context.Context, id string) (model.Transaction, error) {
	return e.transition(ctx, id, func(t *model.Transaction) error { return t.Settle() })
}

// ConfirmTransaction moves a planned transaction to confirmed.
func (e *Engine) ConfirmTransaction(ctx context.Context, id string) (model.Transaction, error) {
	return e.transition(ctx, id, func(t *model.Transaction) error { return t.Transition(model.StatusConfirmed) })
}

func (e *Engine) transition(ctx context.Context, id string, apply func(*model.Transaction) error) (model.Transaction, error) {
	txns, err := e.backend.ListTransactions(ctx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	txn, ok := find(txns, id)
	if !ok {
		return model.Transaction{}, notFound("transaction", id)
	}
	if err := apply(&txn); err != nil {
		return model.Transaction{}, err
	}
	if err := e.backend.SaveTransactions(ctx, txn); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction. Missing IDs are ignored.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	return e.backend.DeleteTransaction(ctx, id)
}

// SaveAccount creates or updates an account.
func (e *Engine) SaveAccount(ctx context.Context, acc model.Account) (model.Account, error) {
	if acc.ID == "" {
		acc.ID = e.newID()
	}
	if acc.Type == "" {
		acc.Type = model.AccountChecking
	}
	// Balances are always derived.
	acc.CurrentBalance = 0
	if err := e.backend.SaveAccounts(ctx, acc); err != nil {
		return model.Account{}, fmt.Errorf("failed to save account: %w", err)
	}
	return acc, nil
}

// DeleteAccount removes an account.
func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	return e.backend.DeleteAccount(ctx, id)
}

// SaveCard creates or updates a card.
func (e *Engine) SaveCard(ctx context.Context, card model.Card) (model.Card, error) {
	if card.ID == "" {
		card.ID = e.newID()
	}
	card.LimitUsed = 0
	if err := e.backend.SaveCards(ctx, card); err != nil {
		return model.Card{}, fmt.Errorf("failed to save card: %w", err)
	}
	return card, nil
}

// DeleteCard removes a card.
func (e *Engine) DeleteCard(ctx context.Context, id string) error {
	return e.backend.DeleteCard(ctx, id)
}

// SaveCategory creates or updates a category.
func (e *Engine) SaveCategory(ctx context.Context, cat model.Category) (model.Category, error) {
	if cat.ID == "" {
		cat.ID = e.newID()
	}
	if err := e.backend.SaveCategories(ctx, cat); err != nil {
		return model.Category{}, fmt.Errorf("failed to save category: %w", err)
	}
	return cat, nil
}

// DeleteCategory removes a category.
func (e *Engine) DeleteCategory(ctx context.Context, id string) error {
	return e.backend.DeleteCategory(ctx, id)
}

// SaveTransfer records a movement between two existing accounts.
func (e *Engine) SaveTransfer(ctx context.Context, tr model.Transfer) (model.Transfer, error) {
	if tr.ID == "" {
		tr.ID = e.newID()
	}
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = e.now()
	}
	tr.Date = model.DateOnly(tr.Date)
	if err := tr.Validate(); err != nil {
		return model.Transfer{}, err
	}

	accounts, err := e.backend.ListAccounts(ctx)
	if err != nil {
		return model.Transfer{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range []string{tr.FromAccountID, tr.ToAccountID} {
		if _, ok := find(accounts, id); !ok {
			return model.Transfer{}, notFound("account", id)
		}
	}

	if err := e.backend.SaveTransfers(ctx, tr); err != nil {
		return model.Transfer{}, fmt.Errorf("failed to save transfer: %w", err)
	}
	return tr, nil
}

// DeleteTransfer removes a transfer.
func (e *Engine) DeleteTransfer(ctx context.Context, id string) error {
	return e.backend.DeleteTransfer(ctx, id)
}

// SaveRecurring creates or updates a recurring expense.
func (e *Engine) SaveRecurring(ctx context.Context, rule model.RecurringExpense) (model.RecurringExpense, error) {
	if rule.ID == "" {
		rule.ID = e.newID()
	}
	if rule.Frequency == "" {
		rule.Frequency = model.FrequencyMonthly
	}
	if rule.Type == "" {
		rule.Type = model.RecurrenceFixed
	}
	if err := e.backend.SaveRecurring(ctx, rule); err != nil {
		return model.RecurringExpense{}, fmt.Errorf("failed to save recurring expense: %w", err)
	}
	return rule, nil
}

// DeleteRecurring removes a recurring expense. Transactions it generated stay.
func (e *Engine) DeleteRecurring(ctx context.Context, id string) error {
	return e.backend.DeleteRecurring(ctx, id)
}

// SaveGoal creates or updates a goal. A new goal with a starting amount
// records it as the first contribution.
func (e *Engine) SaveGoal(ctx context.Context, goal model.Goal) (model.Goal, error) {
	if goal.ID == "" {
		goal.ID = e.newID()
		if goal.CurrentAmount > 0 && len(goal.History) == 0 {
			goal.History = []model.Contribution{{
				Date:   model.DateOnly(e.now()),
				Note:   "initial",
				Amount: goal.CurrentAmount,
			}}
		}
	}
	if goal.Status == "" {
		goal.Status = model.GoalActive
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = model.DateOnly(e.now())
	}
	if goal.History == nil {
		goal.History = []model.Contribution{}
	}
	if err := e.backend.SaveGoals(ctx, goal); err != nil {
		return model.Goal{}, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes a goal.
func (e *Engine) DeleteGoal(ctx context.Context, id string) error {
	return e.backend.DeleteGoal(ctx, id)
}

// Contribute adds money to a goal.
func (e *Engine) Contribute(ctx context.Context, goalID string, amount float64, note string) (model.Goal, error) {
	goals, err := e.backend.ListGoals(ctx)
	if err != nil {
		return model.Goal{}, fmt.Errorf("failed to load goals: %w", err)
	}
	goal, ok := find(goals, goalID)
	if !ok {
		return model.Goal{}, notFound("goal", goalID)
	}

	updated, err := finance.Contribute(goal, amount, note, e.now())
	if err != nil {
		return model.Goal{}, err
	}
	if err := e.backend.SaveGoals(ctx, updated); err != nil {
		return model.Goal{}, fmt.Errorf("failed to save goal: %w", err)
	}
	if updated.Status == model.GoalCompleted && goal.Status != model.GoalCompleted {
		slog.Info("Goal completed", "goal", updated.Name)
	}
	return updated, nil
}

// SetBudget sets the monthly ceiling of a category, replacing any existing
// budget for it.
func (e *Engine) SetBudget(ctx context.Context, categoryID string, amount float64) (model.Budget, error) {
	budgets, err := e.backend.ListBudgets(ctx)
	if err != nil {
		return model.Budget{}, fmt.Errorf("failed to load budgets: %w", err)
	}

	budget := model.Budget{
		ID:         e.newID(),
		CategoryID: categoryID,
		Alert80:    true,
		Alert100:   true,
	}
	for _, b := range budgets {
		if b.CategoryID == categoryID {
			budget = b
			break
		}
	}
	budget.Amount = amount

	if err := e.backend.SaveBudgets(ctx, budget); err != nil {
		return model.Budget{}, fmt.Errorf("failed to save budget: %w", err)
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (e *Engine) DeleteBudget(ctx context.Context, id string) error {
	return e.backend.DeleteBudget(ctx, id)
}

// ApplyScenario records a simulated payment plan as planned expenses.
func (e *Engine) ApplyScenario(ctx context.Context, s simulate.Scenario, categoryID string) ([]model.Transaction, error) {
	txn := s.ToTransaction(e.newID(), categoryID, e.now())
	return e.SaveTransaction(ctx, txn)
}
