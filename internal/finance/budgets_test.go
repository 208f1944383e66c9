package finance

import (
	"testing"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetStatuses(t *testing.T) {
	now := day(2026, 8, 15)
	categories := []model.Category{{ID: "food", Name: "Alimentação"}, {ID: "fun", Name: "Lazer"}}

	spend := func(category string, amount float64) model.Transaction {
		x := txn(category, model.DirectionExpense, model.StatusPaid, amount, day(2026, 8, 2))
		x.CategoryID = category
		return x
	}
	txns := []model.Transaction{spend("food", 500), spend("food", 300), spend("fun", 50), spend("travel", 1000)}
	lastMonth := spend("fun", 5000)
	lastMonth.Date = day(2026, 7, 30)
	txns = append(txns, lastMonth)

	tests := []struct {
		name      string
		budget    model.Budget
		wantLevel BudgetLevel
		wantAlert bool
		percent   float64
	}{
		{
			name:      "exactly eighty percent warns",
			budget:    model.Budget{ID: "b1", CategoryID: "food", Amount: 1000, Alert80: true, Alert100: true},
			wantLevel: BudgetWarning,
			wantAlert: true,
			percent:   80,
		},
		{
			name:      "exceeded",
			budget:    model.Budget{ID: "b2", CategoryID: "food", Amount: 700, Alert80: true, Alert100: true},
			wantLevel: BudgetExceeded,
			wantAlert: true,
			percent:   800.0 / 700 * 100,
		},
		{
			name:      "exactly at limit is a warning",
			budget:    model.Budget{ID: "b3", CategoryID: "food", Amount: 800, Alert80: true},
			wantLevel: BudgetWarning,
			wantAlert: true,
			percent:   100,
		},
		{
			name:      "under",
			budget:    model.Budget{ID: "b4", CategoryID: "fun", Amount: 100, Alert80: true, Alert100: true},
			wantLevel: BudgetOK,
			percent:   50,
		},
		{
			name:      "exceeded without alert",
			budget:    model.Budget{ID: "b5", CategoryID: "travel", Amount: 10},
			wantLevel: BudgetExceeded,
			percent:   10000,
		},
		{
			name:      "zero limit never alerts",
			budget:    model.Budget{ID: "b6", CategoryID: "food", Amount: 0, Alert80: true, Alert100: true},
			wantLevel: BudgetOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetStatuses([]model.Budget{tt.budget}, categories, txns, now)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLevel, got[0].Level)
			assert.Equal(t, tt.wantAlert, got[0].Alert)
			assert.InDelta(t, tt.percent, got[0].Percent, 0.0001)
		})
	}

	got := BudgetStatuses([]model.Budget{{ID: "b", CategoryID: "food", Amount: 1000}}, categories, txns, now)
	assert.Equal(t, "Alimentação", got[0].CategoryName)
	assert.InDelta(t, 200.0, got[0].Remaining, 0.0001)
}
