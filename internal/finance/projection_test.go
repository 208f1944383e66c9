package finance

import (
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	now := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	accounts := []model.Account{{ID: "a", CurrentBalance: 1000}, {ID: "b", CurrentBalance: 500}}

	rent := txn("rent-nov", model.DirectionExpense, model.StatusPaid, 1200, day(2026, 11, 5))
	rent.RecurrenceID = "rent"
	txns := []model.Transaction{
		txn("salary-nov", model.DirectionIncome, model.StatusReceived, 3000, day(2026, 11, 1)),
		rent,
		txn("tv-dec", model.DirectionExpense, model.StatusPlanned, 400, day(2026, 12, 10)),
		txn("bonus-jan", model.DirectionIncome, model.StatusPlanned, 100, day(2027, 1, 15)),
		txn("old", model.DirectionExpense, model.StatusPaid, 9999, day(2026, 10, 1)),
	}
	rules := []model.RecurringExpense{
		{ID: "rent", Amount: 1200, Active: true},
		{ID: "inactive", Amount: 5000, Active: false},
	}

	got := Project(accounts, txns, rules, now, 3)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-11", got[0].Month)
	assert.InDelta(t, 1500.0, got[0].StartBalance, 0.0001)
	assert.InDelta(t, 3000.0, got[0].Incomes, 0.0001)
	assert.InDelta(t, 1200.0, got[0].Expenses, 0.0001)
	assert.InDelta(t, 3300.0, got[0].EndBalance, 0.0001)
	assert.Empty(t, got[0].Recurring, "rent already materialized in November")

	assert.Equal(t, "2026-12", got[1].Month)
	assert.InDelta(t, 3300.0, got[1].StartBalance, 0.0001)
	assert.InDelta(t, 1600.0, got[1].Expenses, 0.0001)
	require.Len(t, got[1].Recurring, 1)
	assert.InDelta(t, 1700.0, got[1].EndBalance, 0.0001)

	assert.Equal(t, "2027-01", got[2].Month)
	assert.InDelta(t, 600.0, got[2].EndBalance, 0.0001)
	assert.Equal(t, OutlookPositive, got[2].Status)

	again := Project(accounts, txns, rules, now, 3)
	assert.Equal(t, got, again)
}

func TestProject_NegativeMonth(t *testing.T) {
	now := day(2026, 3, 1)
	rules := []model.RecurringExpense{{ID: "r", Amount: 100, Active: true}}

	got := Project([]model.Account{{CurrentBalance: 150}}, nil, rules, now, 3)
	require.Len(t, got, 3)
	assert.Equal(t, OutlookPositive, got[0].Status)
	assert.Equal(t, OutlookNegative, got[1].Status)
	assert.InDelta(t, -150.0, got[2].EndBalance, 0.0001)

	zero := Project([]model.Account{{CurrentBalance: 100}}, nil, rules, now, 1)
	assert.Equal(t, OutlookPositive, zero[0].Status, "an end balance of exactly zero is not negative")

	assert.Nil(t, Project(nil, nil, nil, now, 0))
}
