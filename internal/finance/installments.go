package finance

import "github.com/Veraticus/exodo/internal/model"

// SplitAmount divides a purchase total evenly across count installments.
// Remainders are not reconciled: 100 over 3 yields 33.333... each.
func SplitAmount(total float64, count int) float64 {
	if count <= 0 {
		return total
	}
	return total / float64(count)
}

// ExpandInstallments returns the transaction, unchanged, followed by the
// remaining installments of its plan. A transaction that does not start a
// plan is returned alone. Each sibling is planned, dated i months after the
// first (clamped to month end), and points back to the first transaction.
func ExpandInstallments(txn model.Transaction, newID func() string) []model.Transaction {
	if !txn.IsInstallmentPlan() {
		return []model.Transaction{txn}
	}

	total := txn.Installments.Total
	out := make([]model.Transaction, 0, total)
	out = append(out, txn)

	for i := 2; i <= total; i++ {
		next := txn
		next.ID = newID()
		next.Date = model.AddMonths(txn.Date, i-1)
		next.Status = model.StatusPlanned
		next.Installments = &model.Installments{
			OriginalTransactionID: txn.ID,
			Current:               i,
			Total:                 total,
		}
		out = append(out, next)
	}
	return out
}
