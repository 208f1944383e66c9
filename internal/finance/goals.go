package finance

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Goal errors.
var (
	ErrNonPositiveContribution = errors.New("contribution must be positive")
	ErrGoalArchived            = errors.New("goal is archived")
)

// Contribute adds money to a goal and records it in the history. The goal
// becomes completed once the current amount reaches the target.
func Contribute(goal model.Goal, amount float64, note string, at time.Time) (model.Goal, error) {
	if amount <= 0 {
		return goal, fmt.Errorf("%w: %.2f", ErrNonPositiveContribution, amount)
	}
	if goal.Status == model.GoalArchived {
		return goal, fmt.Errorf("%w: %s", ErrGoalArchived, goal.ID)
	}

	history := make([]model.Contribution, len(goal.History), len(goal.History)+1)
	copy(history, goal.History)
	goal.History = append(history, model.Contribution{
		Date:   model.DateOnly(at),
		Note:   note,
		Amount: amount,
	})

	goal.CurrentAmount += amount
	if goal.CurrentAmount >= goal.TargetAmount {
		goal.Status = model.GoalCompleted
	}
	return goal, nil
}

// GoalProgress returns the completed percentage, capped at 100.
func GoalProgress(goal model.Goal) float64 {
	if goal.TargetAmount <= 0 {
		return 0
	}
	return math.Min(goal.CurrentAmount/goal.TargetAmount*100, 100)
}
