package finance

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// hasRecurrenceIn reports whether a transaction generated by the rule already
// exists in the given month.
func hasRecurrenceIn(txns []model.Transaction, ruleID string, year int, month time.Month) bool {
	for _, t := range txns {
		if t.RecurrenceID == ruleID && t.InMonth(year, month) {
			return true
		}
	}
	return false
}

// ruleCovers reports whether the rule's optional start and end dates include
// the month.
func ruleCovers(r model.RecurringExpense, year int, month time.Month) bool {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := model.AddMonths(first, 1).AddDate(0, 0, -1)
	if r.StartDate != nil && model.DateOnly(*r.StartDate).After(last) {
		return false
	}
	if r.EndDate != nil && model.DateOnly(*r.EndDate).Before(first) {
		return false
	}
	return true
}

// MaterializeRecurring creates this month's planned expense for every active
// auto-create rule that does not have one yet. It returns the new
// transactions and the rules with LastGenerated stamped.
func MaterializeRecurring(rules []model.RecurringExpense, txns []model.Transaction, now time.Time, newID func() string) (created []model.Transaction, touched []model.RecurringExpense) {
	year, month := now.Year(), now.Month()
	stamp := model.DateOnly(now)

	for _, r := range rules {
		if !r.Active || !r.AutoCreate || !ruleCovers(r, year, month) {
			continue
		}
		if hasRecurrenceIn(txns, r.ID, year, month) {
			continue
		}

		txn := model.Transaction{
			Date:          model.DayInMonth(year, month, r.DayOfMonth),
			CreatedAt:     now,
			ID:            newID(),
			Description:   r.Description,
			Direction:     model.DirectionExpense,
			CategoryID:    r.CategoryID,
			Status:        model.StatusPlanned,
			PaymentMethod: r.PaymentMethod,
			AccountID:     r.AccountID,
			RecurrenceID:  r.ID,
			Amount:        r.Amount,
		}
		if txn.PaymentMethod.UsesCard() {
			// Rules only reference accounts.
			txn.PaymentMethod = ""
		}
		created = append(created, txn)

		r.LastGenerated = &stamp
		touched = append(touched, r)
	}
	return created, touched
}
