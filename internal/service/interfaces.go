// Package service defines the interfaces shared by the persistence backends.
package service

import (
	"context"

	"github.com/Veraticus/exodo/internal/model"
)

// Collection names one persisted entity collection.
type Collection string

// Persisted collections, in the order they are synchronized.
const (
	CollectionCategories   Collection = "categories"
	CollectionAccounts     Collection = "accounts"
	CollectionCards        Collection = "cards"
	CollectionTransactions Collection = "transactions"
	CollectionTransfers    Collection = "transfers"
	CollectionRecurring    Collection = "recurring"
	CollectionGoals        Collection = "goals"
	CollectionBudgets      Collection = "budgets"
)

// Collections lists every persisted collection in synchronization order.
var Collections = []Collection{
	CollectionCategories,
	CollectionAccounts,
	CollectionCards,
	CollectionTransactions,
	CollectionTransfers,
	CollectionRecurring,
	CollectionGoals,
	CollectionBudgets,
}

// Backend is the contract for a persistence backend. Save methods upsert by ID
// and the last write wins.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Account operations
	ListAccounts(ctx context.Context) ([]model.Account, error)
	SaveAccounts(ctx context.Context, accounts ...model.Account) error
	DeleteAccount(ctx context.Context, id string) error

	// Card operations
	ListCards(ctx context.Context) ([]model.Card, error)
	SaveCards(ctx context.Context, cards ...model.Card) error
	DeleteCard(ctx context.Context, id string) error

	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	SaveCategories(ctx context.Context, categories ...model.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Transaction operations
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions ...model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// Transfer operations
	ListTransfers(ctx context.Context) ([]model.Transfer, error)
	SaveTransfers(ctx context.Context, transfers ...model.Transfer) error
	DeleteTransfer(ctx context.Context, id string) error

	// Recurring expense operations
	ListRecurring(ctx context.Context) ([]model.RecurringExpense, error)
	SaveRecurring(ctx context.Context, rules ...model.RecurringExpense) error
	DeleteRecurring(ctx context.Context, id string) error

	// Goal operations
	ListGoals(ctx context.Context) ([]model.Goal, error)
	SaveGoals(ctx context.Context, goals ...model.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	// Budget operations
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	SaveBudgets(ctx context.Context, budgets ...model.Budget) error
	DeleteBudget(ctx context.Context, id string) error

	Close() error
}
