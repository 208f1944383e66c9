// Package finance derives balances, card usage, projections and the other
// values shown to the user from the raw entity lists. Every function is pure:
// inputs are never modified and the caller supplies the current time.
package finance

import "github.com/Veraticus/exodo/internal/model"

// AccountBalance returns the initial balance plus settled incomes, minus
// settled expenses, minus outgoing and plus incoming transfers.
func AccountBalance(acc model.Account, txns []model.Transaction, transfers []model.Transfer) float64 {
	balance := acc.InitialBalance

	for _, t := range txns {
		if t.AccountID != acc.ID || !t.Status.IsSettled() {
			continue
		}
		balance += t.Signed()
	}

	for _, tr := range transfers {
		if tr.FromAccountID == acc.ID {
			balance -= tr.Amount
		}
		if tr.ToAccountID == acc.ID {
			balance += tr.Amount
		}
	}

	return balance
}

// ApplyBalances returns copies of accounts with CurrentBalance recomputed.
func ApplyBalances(accounts []model.Account, txns []model.Transaction, transfers []model.Transfer) []model.Account {
	out := make([]model.Account, len(accounts))
	for i, acc := range accounts {
		acc.CurrentBalance = AccountBalance(acc, txns, transfers)
		out[i] = acc
	}
	return out
}

// TotalBalance sums the current balances of accounts.
func TotalBalance(accounts []model.Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.CurrentBalance
	}
	return total
}

// CardLimitUsed sums the expenses charged to the card that are not yet paid.
func CardLimitUsed(card model.Card, txns []model.Transaction) float64 {
	var used float64
	for _, t := range txns {
		if t.CardID == card.ID && t.IsExpense() && t.Status != model.StatusPaid {
			used += t.Amount
		}
	}
	return used
}

// ApplyLimits returns copies of cards with LimitUsed recomputed.
func ApplyLimits(cards []model.Card, txns []model.Transaction) []model.Card {
	out := make([]model.Card, len(cards))
	for i, c := range cards {
		c.LimitUsed = CardLimitUsed(c, txns)
		out[i] = c
	}
	return out
}
