package finance

import (
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInstallments(t *testing.T) {
	first := model.Transaction{
		Date:          day(2027, 1, 31),
		ID:            "tv",
		Description:   "Televisão",
		Direction:     model.DirectionExpense,
		CategoryID:    "cat_lazer",
		Status:        model.StatusConfirmed,
		PaymentMethod: model.PaymentCredit,
		CardID:        "card",
		Amount:        SplitAmount(1200, 4),
		Installments:  &model.Installments{Current: 1, Total: 4},
	}

	got := ExpandInstallments(first, sequentialIDs("inst"))
	require.Len(t, got, 4)

	assert.Equal(t, first, got[0], "the first installment is saved as given")

	wantDates := []time.Time{day(2027, 1, 31), day(2027, 2, 28), day(2027, 3, 31), day(2027, 4, 30)}
	for i, x := range got {
		assert.Equal(t, wantDates[i], x.Date, "installment %d", i+1)
		assert.Equal(t, "Televisão", x.Description)
		assert.Equal(t, "cat_lazer", x.CategoryID)
		assert.Equal(t, model.PaymentCredit, x.PaymentMethod)
		assert.InDelta(t, 300.0, x.Amount, 0.0001)
		assert.Equal(t, i+1, x.Installments.Current)
		assert.Equal(t, 4, x.Installments.Total)
		require.NoError(t, x.Validate())
		if i > 0 {
			assert.Equal(t, model.StatusPlanned, x.Status)
			assert.Equal(t, "tv", x.Installments.OriginalTransactionID)
		}
	}
	assert.Equal(t, []string{"tv", "inst-1", "inst-2", "inst-3"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
}

func TestExpandInstallments_NotAPlan(t *testing.T) {
	tests := []struct {
		installments *model.Installments
		name         string
	}{
		{name: "no installments"},
		{name: "single installment", installments: &model.Installments{Current: 1, Total: 1}},
		{name: "later installment", installments: &model.Installments{Current: 2, Total: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := txn("x", model.DirectionExpense, model.StatusPlanned, 10, day(2027, 1, 1))
			x.Installments = tt.installments
			got := ExpandInstallments(x, sequentialIDs("n"))
			require.Len(t, got, 1)
			assert.Equal(t, x, got[0])
		})
	}
}

func TestSplitAmount_DoesNotReconcileRemainder(t *testing.T) {
	per := SplitAmount(100, 3)
	assert.InDelta(t, 33.3333, per, 0.0001)

	// Rounded to cents the parts no longer add up to the total.
	cents := float64(int(per*100)) / 100
	assert.NotEqual(t, 100.0, cents*3)

	assert.InDelta(t, 100.0, SplitAmount(100, 0), 0.0001)
}
