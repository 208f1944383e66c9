package model

import (
	"errors"
	"fmt"
	"strings"
)

// CardBrand is the card network.
type CardBrand string

// Card brand constants.
const (
	BrandVisa       CardBrand = "VISA"
	BrandMastercard CardBrand = "MASTERCARD"
	BrandElo        CardBrand = "ELO"
	BrandAmex       CardBrand = "AMEX"
	BrandHipercard  CardBrand = "HIPERCARD"
	BrandOther      CardBrand = "OUTRO"
)

// ErrInvalidCard is returned when a card fails validation.
var ErrInvalidCard = errors.New("invalid card")

// Card is a credit card. LimitUsed is derived from open expenses.
type Card struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Brand      CardBrand `json:"brand,omitempty"`
	Bank       string    `json:"bank,omitempty"`
	Color      string    `json:"color,omitempty"`
	Limit      float64   `json:"limit"`
	LimitUsed  float64   `json:"limit_used"`
	ClosingDay int       `json:"closing_day"`
	DueDay     int       `json:"due_day"`
}

// GetID returns the card identity.
func (c Card) GetID() string { return c.ID }

// Available returns the unused part of the limit.
func (c Card) Available() float64 {
	return c.Limit - c.LimitUsed
}

// Validate checks the card invariants.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCard)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCard)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidCard)
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("%w: closing day must be between 1 and 31", ErrInvalidCard)
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", ErrInvalidCard)
	}
	return nil
}
