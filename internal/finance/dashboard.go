package finance

import (
	"fmt"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// IncomeSummary breaks the month's income down by status.
type IncomeSummary struct {
	Total     float64 `json:"total"`
	Received  float64 `json:"received"`
	Confirmed float64 `json:"confirmed"`
	Predicted float64 `json:"predicted"`
	Overdue   float64 `json:"overdue"`
}

// ExpenseSummary breaks the month's expenses down by status.
type ExpenseSummary struct {
	Total     float64 `json:"total"`
	Paid      float64 `json:"paid"`
	Confirmed float64 `json:"confirmed"`
	Predicted float64 `json:"predicted"`
	Overdue   float64 `json:"overdue"`
}

// CardInvoice is what one card accumulated in the month.
type CardInvoice struct {
	CardID   string  `json:"card_id"`
	CardName string  `json:"card_name"`
	DueDate  string  `json:"due_date"`
	Amount   float64 `json:"amount"`
}

// Dashboard is the monthly overview.
type Dashboard struct {
	Month        string         `json:"month"`
	Outlook      string         `json:"outlook"`
	CardInvoices []CardInvoice  `json:"card_invoices"`
	Income       IncomeSummary  `json:"income"`
	Expense      ExpenseSummary `json:"expense"`
	TotalBalance float64        `json:"total_balance"`
	MonthResult  float64        `json:"month_result"`
	ToPay        float64        `json:"to_pay"`
	NextBalance  float64        `json:"next_month_balance"`
}

// Summarize builds the overview for a calendar month. Accounts are expected
// to carry derived balances already.
func Summarize(accounts []model.Account, cards []model.Card, txns []model.Transaction, year int, month time.Month) Dashboard {
	d := Dashboard{
		Month:        model.MonthKey(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)),
		TotalBalance: TotalBalance(accounts),
		CardInvoices: []CardInvoice{},
	}

	perCard := make(map[string]float64)
	for _, t := range txns {
		if !t.InMonth(year, month) {
			continue
		}
		if t.IsIncome() {
			d.Income.Total += t.Amount
			switch t.Status {
			case model.StatusReceived:
				d.Income.Received += t.Amount
			case model.StatusConfirmed:
				d.Income.Confirmed += t.Amount
			case model.StatusPlanned:
				d.Income.Predicted += t.Amount
			case model.StatusOverdue:
				d.Income.Overdue += t.Amount
			}
			continue
		}

		d.Expense.Total += t.Amount
		switch t.Status {
		case model.StatusPaid:
			d.Expense.Paid += t.Amount
		case model.StatusConfirmed:
			d.Expense.Confirmed += t.Amount
		case model.StatusPlanned:
			d.Expense.Predicted += t.Amount
		case model.StatusOverdue:
			d.Expense.Overdue += t.Amount
		}
		if t.CardID != "" {
			perCard[t.CardID] += t.Amount
		}
	}

	for _, c := range cards {
		amount := perCard[c.ID]
		if amount <= 0 {
			continue
		}
		d.CardInvoices = append(d.CardInvoices, CardInvoice{
			CardID:   c.ID,
			CardName: c.Name,
			DueDate:  fmt.Sprintf("%d/%d", c.DueDay, int(month)),
			Amount:   amount,
		})
	}

	d.MonthResult = d.Income.Received - d.Expense.Paid
	d.ToPay = d.Expense.Total - d.Expense.Paid
	d.NextBalance = d.TotalBalance + d.Income.Total - d.Expense.Total
	d.Outlook = OutlookNegative
	if d.NextBalance > 0 {
		d.Outlook = OutlookPositive
	}
	return d
}
