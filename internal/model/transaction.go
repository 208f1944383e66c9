// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Direction indicates whether money flows in or out.
type Direction string

const (
	// DirectionIncome marks money received.
	DirectionIncome Direction = "RECEITA"
	// DirectionExpense marks money spent.
	DirectionExpense Direction = "DESPESA"
)

// Status is the settlement state of a transaction.
//
// PREVISTA -> CONFIRMADA -> PAGA/RECEBIDA, with PREVISTA/CONFIRMADA -> ATRASADA
// once the date has passed. ATRASADA only leaves through Settle.
type Status string

// Transaction status constants.
const (
	StatusPlanned   Status = "PREVISTA"
	StatusConfirmed Status = "CONFIRMADA"
	StatusPaid      Status = "PAGA"
	StatusReceived  Status = "RECEBIDA"
	StatusOverdue   Status = "ATRASADA"
)

// IsSettled reports whether the status is terminal.
func (s Status) IsSettled() bool {
	return s == StatusPaid || s == StatusReceived
}

// IsOpen reports whether the status can still become overdue.
func (s Status) IsOpen() bool {
	return s == StatusPlanned || s == StatusConfirmed
}

// SettledStatus returns the terminal status for a direction.
func SettledStatus(d Direction) Status {
	if d == DirectionIncome {
		return StatusReceived
	}
	return StatusPaid
}

// PaymentMethod describes how a transaction is paid.
type PaymentMethod string

// Payment method constants.
const (
	PaymentCredit   PaymentMethod = "CREDITO"
	PaymentDebit    PaymentMethod = "DEBITO"
	PaymentCash     PaymentMethod = "DINHEIRO"
	PaymentPix      PaymentMethod = "PIX"
	PaymentBoleto   PaymentMethod = "BOLETO"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
)

// UsesCard reports whether the method is charged to a card instead of an account.
func (m PaymentMethod) UsesCard() bool {
	return m == PaymentCredit
}

// Validation errors.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Installments links a transaction to an installment plan.
type Installments struct {
	OriginalTransactionID string `json:"original_transaction_id,omitempty"`
	Current               int    `json:"current"`
	Total                 int    `json:"total"`
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	Date          time.Time     `json:"date"`
	CreatedAt     time.Time     `json:"created_at"`
	Installments  *Installments `json:"installments,omitempty"`
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Direction     Direction     `json:"type"`
	CategoryID    string        `json:"category_id"`
	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	AccountID     string        `json:"account_id,omitempty"`
	CardID        string        `json:"card_id,omitempty"`
	RecurrenceID  string        `json:"recurrence_id,omitempty"`
	Observation   string        `json:"observation,omitempty"`
	Amount        float64       `json:"amount"`
}

// GetID returns the transaction identity.
func (t Transaction) GetID() string { return t.ID }

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool { return t.Direction == DirectionIncome }

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Direction == DirectionExpense }

// Signed returns the amount with the sign implied by the direction.
func (t Transaction) Signed() float64 {
	if t.IsExpense() {
		return -t.Amount
	}
	return t.Amount
}

// IsInstallmentPlan reports whether saving this transaction should create its siblings.
func (t Transaction) IsInstallmentPlan() bool {
	return t.Installments != nil && t.Installments.Total > 1 && t.Installments.Current == 1
}

// InMonth reports whether the transaction date falls in the given calendar month.
func (t Transaction) InMonth(year int, month time.Month) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}

// Transition moves the transaction to a new status if the state machine allows it.
func (t *Transaction) Transition(to Status) error {
	from := t.Status
	switch {
	case from == to:
		return nil
	case from == StatusPlanned && to == StatusConfirmed:
	case from.IsOpen() && to == StatusOverdue:
	case (from.IsOpen() || from == StatusOverdue) && to == SettledStatus(t.Direction):
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	t.Status = to
	return nil
}

// Settle marks the transaction paid or received.
func (t *Transaction) Settle() error {
	return t.Transition(SettledStatus(t.Direction))
}

// Validate checks the transaction invariants.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if t.CategoryID == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}

	switch t.Direction {
	case DirectionIncome:
		if t.Status == StatusPaid {
			return fmt.Errorf("%w: income cannot be %s", ErrInvalidTransaction, t.Status)
		}
	case DirectionExpense:
		if t.Status == StatusReceived {
			return fmt.Errorf("%w: expense cannot be %s", ErrInvalidTransaction, t.Status)
		}
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidTransaction, t.Direction)
	}

	switch t.Status {
	case StatusPlanned, StatusConfirmed, StatusPaid, StatusReceived, StatusOverdue:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransaction, t.Status)
	}

	if t.PaymentMethod.UsesCard() && t.CardID == "" {
		return fmt.Errorf("%w: credit payment requires a card", ErrInvalidTransaction)
	}
	if t.PaymentMethod.UsesCard() && t.AccountID != "" {
		return fmt.Errorf("%w: credit payment cannot reference an account", ErrInvalidTransaction)
	}
	if t.PaymentMethod != "" && !t.PaymentMethod.UsesCard() && t.CardID != "" {
		return fmt.Errorf("%w: %s payment cannot reference a card", ErrInvalidTransaction, t.PaymentMethod)
	}

	if in := t.Installments; in != nil {
		if in.Total < 1 || in.Current < 1 || in.Current > in.Total {
			return fmt.Errorf("%w: installment %d/%d", ErrInvalidTransaction, in.Current, in.Total)
		}
	}
	return nil
}

// DateOnly truncates a time to its civil date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths moves a date by n calendar months, clamping the day to the target month's length.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return time.Date(first.Year(), first.Month(), clampDay(first.Year(), first.Month(), t.Day()), 0, 0, 0, 0, time.UTC)
}

// DayInMonth returns the given day of a month, clamped to the month's last day.
func DayInMonth(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return time.Date(first.Year(), first.Month(), clampDay(first.Year(), first.Month(), day), 0, 0, 0, 0, time.UTC)
}

func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	if day < 1 {
		return 1
	}
	return day
}

// MonthKey formats a date as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
