package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RecurrenceType tells whether the template amount is fixed or an estimate.
type RecurrenceType string

// Recurrence types.
const (
	RecurrenceFixed    RecurrenceType = "FIXO"
	RecurrenceVariable RecurrenceType = "VARIAVEL"
)

// FrequencyMonthly is the only supported frequency.
const FrequencyMonthly = "MENSAL"

// ErrInvalidRecurring is returned when a recurring expense fails validation.
var ErrInvalidRecurring = errors.New("invalid recurring expense")

// RecurringExpense is a template that yields one planned expense per month.
type RecurringExpense struct {
	LastGenerated *time.Time     `json:"last_generated,omitempty"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	CategoryID    string         `json:"category_id"`
	Type          RecurrenceType `json:"type"`
	Frequency     string         `json:"frequency"`
	AccountID     string         `json:"account_id,omitempty"`
	PaymentMethod PaymentMethod  `json:"payment_method,omitempty"`
	Amount        float64        `json:"amount"`
	DayOfMonth    int            `json:"day_of_month"`
	Active        bool           `json:"active"`
	AutoCreate    bool           `json:"auto_create"`
}

// GetID returns the rule identity.
func (r RecurringExpense) GetID() string { return r.ID }

// Validate checks the rule invariants.
func (r *RecurringExpense) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecurring)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidRecurring)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecurring)
	}
	if r.CategoryID == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecurring)
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", ErrInvalidRecurring)
	}
	return nil
}
