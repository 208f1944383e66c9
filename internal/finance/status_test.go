package finance

import (
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteOverdue(t *testing.T) {
	now := time.Date(2026, 5, 15, 9, 30, 0, 0, time.UTC)

	txns := []model.Transaction{
		txn("past-planned", model.DirectionExpense, model.StatusPlanned, 10, day(2026, 5, 14)),
		txn("past-confirmed", model.DirectionIncome, model.StatusConfirmed, 10, day(2026, 4, 1)),
		txn("today", model.DirectionExpense, model.StatusPlanned, 10, day(2026, 5, 15)),
		txn("future", model.DirectionExpense, model.StatusConfirmed, 10, day(2026, 6, 1)),
		txn("past-paid", model.DirectionExpense, model.StatusPaid, 10, day(2026, 1, 1)),
		txn("past-overdue", model.DirectionExpense, model.StatusOverdue, 10, day(2026, 1, 1)),
	}

	updated, changed := PromoteOverdue(txns, now)
	require.Len(t, updated, len(txns))

	want := map[string]model.Status{
		"past-planned":   model.StatusOverdue,
		"past-confirmed": model.StatusOverdue,
		"today":          model.StatusPlanned,
		"future":         model.StatusConfirmed,
		"past-paid":      model.StatusPaid,
		"past-overdue":   model.StatusOverdue,
	}
	for _, u := range updated {
		assert.Equal(t, want[u.ID], u.Status, u.ID)
	}

	require.Len(t, changed, 2)
	assert.Equal(t, "past-planned", changed[0].ID)
	assert.Equal(t, "past-confirmed", changed[1].ID)

	assert.Equal(t, model.StatusPlanned, txns[0].Status, "input is not modified")

	again, changedAgain := PromoteOverdue(updated, now)
	assert.Equal(t, updated, again)
	assert.Empty(t, changedAgain)
}
