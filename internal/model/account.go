package model

import (
	"errors"
	"fmt"
	"strings"
)

// AccountType classifies where money is held.
type AccountType string

// Account type constants.
const (
	AccountChecking AccountType = "CORRENTE"
	AccountSavings  AccountType = "POUPANCA"
	AccountPayroll  AccountType = "SALARIO"
	AccountCash     AccountType = "DINHEIRO"
	AccountOther    AccountType = "OUTRO"
)

// ErrInvalidAccount is returned when an account fails validation.
var ErrInvalidAccount = errors.New("invalid account")

// Account is a place money lives. CurrentBalance is always derived, never stored.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	Bank           string      `json:"bank,omitempty"`
	Color          string      `json:"color,omitempty"`
	InitialBalance float64     `json:"initial_balance"`
	CurrentBalance float64     `json:"current_balance"`
}

// GetID returns the account identity.
func (a Account) GetID() string { return a.ID }

// Validate checks the account invariants.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	switch a.Type {
	case AccountChecking, AccountSavings, AccountPayroll, AccountCash, AccountOther:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAccount, a.Type)
	}
	return nil
}
