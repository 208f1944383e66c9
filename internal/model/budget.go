package model

import (
	"errors"
	"fmt"
)

// ErrInvalidBudget is returned when a budget fails validation.
var ErrInvalidBudget = errors.New("invalid budget")

// Budget is the monthly ceiling for one expense category.
type Budget struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
	Alert80    bool    `json:"alert_80"`
	Alert100   bool    `json:"alert_100"`
}

// GetID returns the budget identity.
func (b Budget) GetID() string { return b.ID }

// Validate checks the budget invariants.
func (b *Budget) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBudget)
	}
	if b.CategoryID == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	if b.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidBudget)
	}
	return nil
}
