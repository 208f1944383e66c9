package finance

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Balance outlook values.
const (
	OutlookPositive = "POSITIVE"
	OutlookNegative = "NEGATIVE"
)

// ProjectionMonth is one step of the cash-flow forecast.
type ProjectionMonth struct {
	Start        time.Time                `json:"start"`
	Month        string                   `json:"month"`
	Status       string                   `json:"status"`
	IncomeTxns   []model.Transaction      `json:"incomes_detail"`
	ExpenseTxns  []model.Transaction      `json:"expenses_detail"`
	Recurring    []model.RecurringExpense `json:"recurring"`
	StartBalance float64                  `json:"start_balance"`
	EndBalance   float64                  `json:"end_balance"`
	Incomes      float64                  `json:"incomes"`
	Expenses     float64                  `json:"expenses"`
}

// Project walks forward from now's month. The first month starts at the sum
// of the accounts' current balances and each later month starts where the
// previous one ended. Active recurring rules without a transaction in a month
// add their template amount as an estimated expense.
func Project(accounts []model.Account, txns []model.Transaction, rules []model.RecurringExpense, now time.Time, months int) []ProjectionMonth {
	if months <= 0 {
		return nil
	}

	balance := TotalBalance(accounts)
	origin := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]ProjectionMonth, 0, months)

	for i := 0; i < months; i++ {
		start := model.AddMonths(origin, i)
		year, month := start.Year(), start.Month()

		pm := ProjectionMonth{
			Start:        start,
			Month:        model.MonthKey(start),
			StartBalance: balance,
		}

		for _, t := range txns {
			if !t.InMonth(year, month) {
				continue
			}
			if t.IsIncome() {
				pm.Incomes += t.Amount
				pm.IncomeTxns = append(pm.IncomeTxns, t)
			} else {
				pm.Expenses += t.Amount
				pm.ExpenseTxns = append(pm.ExpenseTxns, t)
			}
		}

		for _, r := range rules {
			if !r.Active || hasRecurrenceIn(txns, r.ID, year, month) {
				continue
			}
			pm.Expenses += r.Amount
			pm.Recurring = append(pm.Recurring, r)
		}

		pm.EndBalance = pm.StartBalance + pm.Incomes - pm.Expenses
		pm.Status = OutlookPositive
		if pm.EndBalance < 0 {
			pm.Status = OutlookNegative
		}

		balance = pm.EndBalance
		out = append(out, pm)
	}
	return out
}
