package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

// Goal statuses.
const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalArchived  GoalStatus = "ARCHIVED"
)

// ErrInvalidGoal is returned when a goal fails validation.
var ErrInvalidGoal = errors.New("invalid goal")

// Contribution is one entry of a goal's append-only history.
type Contribution struct {
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
	Amount float64   `json:"amount"`
}

// Goal is a savings target.
type Goal struct {
	Deadline      *time.Time     `json:"deadline,omitempty"`
	StartDate     time.Time      `json:"start_date"`
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Icon          string         `json:"icon,omitempty"`
	Status        GoalStatus     `json:"status"`
	History       []Contribution `json:"history"`
	TargetAmount  float64        `json:"target_amount"`
	CurrentAmount float64        `json:"current_amount"`
}

// GetID returns the goal identity.
func (g Goal) GetID() string { return g.ID }

// Validate checks the goal invariants.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidGoal)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if g.TargetAmount <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	switch g.Status {
	case GoalActive, GoalCompleted, GoalArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidGoal, g.Status)
	}
	return nil
}
