package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransfer is returned when a transfer fails validation.
var ErrInvalidTransfer = errors.New("invalid transfer")

// Transfer moves money between two accounts. It is always settled.
type Transfer struct {
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Description   string    `json:"description,omitempty"`
	FromAccountID string    `json:"from_account_id"`
	ToAccountID   string    `json:"to_account_id"`
	Amount        float64   `json:"amount"`
}

// GetID returns the transfer identity.
func (t Transfer) GetID() string { return t.ID }

// Validate checks the transfer invariants.
func (t *Transfer) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransfer)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	}
	if t.FromAccountID == "" || t.ToAccountID == "" {
		return fmt.Errorf("%w: both accounts are required", ErrInvalidTransfer)
	}
	if t.FromAccountID == t.ToAccountID {
		return fmt.Errorf("%w: source and destination are the same account", ErrInvalidTransfer)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransfer)
	}
	return nil
}
