package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when a category fails validation.
var ErrInvalidCategory = errors.New("invalid category")

// Category groups transactions of one direction.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Direction `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	IsDefault bool      `json:"is_default,omitempty"`
}

// GetID returns the category identity.
func (c Category) GetID() string { return c.ID }

// Validate checks the category invariants.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if c.Type != DirectionIncome && c.Type != DirectionExpense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, c.Type)
	}
	return nil
}
