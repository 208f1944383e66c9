// Package pattern assigns categories to transactions by matching their
// descriptions against prioritized rules.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/exodo/internal/model"
)

// ErrInvalidRule is returned when a rule fails validation.
var ErrInvalidRule = errors.New("invalid pattern rule")

// AmountCondition restricts a rule to a range of amounts.
type AmountCondition string

// Amount conditions. An empty condition behaves like AmountAny.
const (
	AmountAny   AmountCondition = "any"
	AmountLT    AmountCondition = "lt"
	AmountLE    AmountCondition = "le"
	AmountEQ    AmountCondition = "eq"
	AmountGE    AmountCondition = "ge"
	AmountGT    AmountCondition = "gt"
	AmountRange AmountCondition = "range"
)

// Rule maps matching transactions to a category. Plain patterns match
// when the description contains them, ignoring case; regex patterns are
// case-insensitive unless they say otherwise.
type Rule struct {
	AmountValue     *float64        `mapstructure:"value" json:"value,omitempty"`
	AmountMin       *float64        `mapstructure:"min" json:"min,omitempty"`
	AmountMax       *float64        `mapstructure:"max" json:"max,omitempty"`
	Name            string          `mapstructure:"name" json:"name"`
	Pattern         string          `mapstructure:"pattern" json:"pattern"`
	CategoryID      string          `mapstructure:"category" json:"category"`
	Direction       model.Direction `mapstructure:"direction" json:"direction,omitempty"`
	AmountCondition AmountCondition `mapstructure:"amount" json:"amount,omitempty"`
	Priority        int             `mapstructure:"priority" json:"priority"`
	IsRegex         bool            `mapstructure:"regex" json:"regex"`
}

// Validate checks that the rule can be compiled into a matcher.
func (r Rule) Validate() error {
	label := r.Name
	if label == "" {
		label = r.Pattern
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return fmt.Errorf("%w %q: missing pattern", ErrInvalidRule, label)
	}
	if r.CategoryID == "" {
		return fmt.Errorf("%w %q: missing category", ErrInvalidRule, label)
	}
	switch r.Direction {
	case "", model.DirectionIncome, model.DirectionExpense:
	default:
		return fmt.Errorf("%w %q: unknown direction %s", ErrInvalidRule, label, r.Direction)
	}

	switch r.AmountCondition {
	case "", AmountAny:
	case AmountLT, AmountLE, AmountEQ, AmountGE, AmountGT:
		if r.AmountValue == nil {
			return fmt.Errorf("%w %q: condition %s needs a value", ErrInvalidRule, label, r.AmountCondition)
		}
	case AmountRange:
		if r.AmountMin == nil && r.AmountMax == nil {
			return fmt.Errorf("%w %q: range needs a min or a max", ErrInvalidRule, label)
		}
	default:
		return fmt.Errorf("%w %q: unknown amount condition %s", ErrInvalidRule, label, r.AmountCondition)
	}
	return nil
}

func (r Rule) matchesAmount(amount float64) bool {
	switch r.AmountCondition {
	case "", AmountAny:
		return true
	case AmountLT:
		return amount < *r.AmountValue
	case AmountLE:
		return amount <= *r.AmountValue
	case AmountEQ:
		return amount == *r.AmountValue
	case AmountGE:
		return amount >= *r.AmountValue
	case AmountGT:
		return amount > *r.AmountValue
	case AmountRange:
		if r.AmountMin != nil && amount < *r.AmountMin {
			return false
		}
		if r.AmountMax != nil && amount > *r.AmountMax {
			return false
		}
		return true
	}
	return false
}
