package finance

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// BudgetLevel is how close a category is to its monthly ceiling.
type BudgetLevel string

// Budget levels.
const (
	BudgetOK       BudgetLevel = "OK"
	BudgetWarning  BudgetLevel = "WARNING"
	BudgetExceeded BudgetLevel = "EXCEEDED"
)

const budgetWarningPercent = 80

// BudgetStatus is a budget measured against the month's spending.
type BudgetStatus struct {
	Budget       model.Budget `json:"budget"`
	CategoryName string       `json:"category_name"`
	Level        BudgetLevel  `json:"level"`
	Spent        float64      `json:"spent"`
	Percent      float64      `json:"percent"`
	Remaining    float64      `json:"remaining"`
	// Alert is set when the budget asked to be alerted at its current level.
	Alert bool `json:"alert"`
}

// CategorySpent sums the expenses of a category in the given month.
func CategorySpent(txns []model.Transaction, categoryID string, year int, month time.Month) float64 {
	var spent float64
	for _, t := range txns {
		if t.CategoryID == categoryID && t.IsExpense() && t.InMonth(year, month) {
			spent += t.Amount
		}
	}
	return spent
}

// BudgetStatuses measures every budget against now's month.
func BudgetStatuses(budgets []model.Budget, categories []model.Category, txns []model.Transaction, now time.Time) []BudgetStatus {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := CategorySpent(txns, b.CategoryID, now.Year(), now.Month())
		st := BudgetStatus{
			Budget:       b,
			CategoryName: names[b.CategoryID],
			Level:        BudgetOK,
			Spent:        spent,
			Remaining:    b.Amount - spent,
		}
		if b.Amount > 0 {
			st.Percent = spent / b.Amount * 100
		}

		switch {
		case b.Amount > 0 && spent > b.Amount:
			st.Level = BudgetExceeded
			st.Alert = b.Alert100
		case st.Percent >= budgetWarningPercent:
			st.Level = BudgetWarning
			st.Alert = b.Alert80
		}
		out = append(out, st)
	}
	return out
}
