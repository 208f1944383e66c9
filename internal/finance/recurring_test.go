package finance

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestMaterializeRecurring(t *testing.T) {
	now := time.Date(2027, 2, 10, 12, 0, 0, 0, time.UTC)
	jan := day(2027, 1, 5)
	end := day(2026, 12, 31)

	rules := []model.RecurringExpense{
		{ID: "rent", Description: "Aluguel", CategoryID: "cat_casa", Amount: 1500, DayOfMonth: 31, Active: true, AutoCreate: true, AccountID: "acc", PaymentMethod: model.PaymentBoleto},
		{ID: "gym", Description: "Academia", CategoryID: "cat_saude", Amount: 90, DayOfMonth: 5, Active: true, AutoCreate: true},
		{ID: "manual", Description: "Manual", CategoryID: "cat_lazer", Amount: 20, DayOfMonth: 1, Active: true, AutoCreate: false},
		{ID: "paused", Description: "Pausada", CategoryID: "cat_lazer", Amount: 20, DayOfMonth: 1, Active: false, AutoCreate: true},
		{ID: "ended", Description: "Encerrada", CategoryID: "cat_lazer", Amount: 20, DayOfMonth: 1, Active: true, AutoCreate: true, EndDate: &end},
	}

	existing := txn("gym-feb", model.DirectionExpense, model.StatusPaid, 90, day(2027, 2, 5))
	existing.RecurrenceID = "gym"
	lastMonth := txn("rent-jan", model.DirectionExpense, model.StatusPaid, 1500, jan)
	lastMonth.RecurrenceID = "rent"

	created, touched := MaterializeRecurring(rules, []model.Transaction{existing, lastMonth}, now, sequentialIDs("rec"))

	require.Len(t, created, 1)
	got := created[0]
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, "rent", got.RecurrenceID)
	assert.Equal(t, day(2027, 2, 28), got.Date, "day 31 clamps to the end of February")
	assert.Equal(t, model.StatusPlanned, got.Status)
	assert.Equal(t, model.DirectionExpense, got.Direction)
	assert.Equal(t, "Aluguel", got.Description)
	assert.Equal(t, "cat_casa", got.CategoryID)
	assert.Equal(t, "acc", got.AccountID)
	assert.Equal(t, model.PaymentBoleto, got.PaymentMethod)
	assert.InDelta(t, 1500.0, got.Amount, 0.0001)
	require.NoError(t, got.Validate())

	require.Len(t, touched, 1)
	require.NotNil(t, touched[0].LastGenerated)
	assert.Equal(t, day(2027, 2, 10), *touched[0].LastGenerated)
	assert.Nil(t, rules[0].LastGenerated)

	// A second pass over the result creates nothing.
	again, _ := MaterializeRecurring(rules, append([]model.Transaction{existing, lastMonth}, created...), now, sequentialIDs("rec"))
	assert.Empty(t, again)
}

func TestMaterializeRecurring_RespectsStartDate(t *testing.T) {
	start := day(2027, 3, 1)
	rules := []model.RecurringExpense{
		{ID: "future", Description: "Curso", CategoryID: "cat_edu", Amount: 300, DayOfMonth: 10, Active: true, AutoCreate: true, StartDate: &start},
	}

	created, _ := MaterializeRecurring(rules, nil, day(2027, 2, 20), sequentialIDs("r"))
	assert.Empty(t, created)

	created, _ = MaterializeRecurring(rules, nil, day(2027, 3, 2), sequentialIDs("r"))
	assert.Len(t, created, 1)
}
