package finance

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// PromoteOverdue marks every planned or confirmed transaction dated before
// today as overdue. It returns the full updated list and the subset that
// changed, which is what needs persisting. Running it twice changes nothing
// the second time.
func PromoteOverdue(txns []model.Transaction, now time.Time) (updated, changed []model.Transaction) {
	today := model.DateOnly(now)
	updated = make([]model.Transaction, len(txns))

	for i, t := range txns {
		if t.Status.IsOpen() && model.DateOnly(t.Date).Before(today) {
			t.Status = model.StatusOverdue
			changed = append(changed, t)
		}
		updated[i] = t
	}
	return updated, changed
}
