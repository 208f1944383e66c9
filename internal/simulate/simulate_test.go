package simulate

import (
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		want      float64
	}{
		// The commonly quoted 94.56 for 1000 over 12 months is the 2% figure.
		{name: "two percent", principal: 1000, rate: 2, months: 12, want: 94.56},
		{name: "two and a half percent", principal: 1000, rate: 2.5, months: 12, want: 97.49},
		{name: "single month", principal: 1000, rate: 2.5, months: 1, want: 1025},
		{name: "zero rate", principal: 1000, rate: 0, months: 12, want: 1000.0 / 12},
		{name: "zero months", principal: 1000, rate: 2, months: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Payment(tt.principal, tt.rate, tt.months))
		})
	}
}

func TestPayment_ReferenceFigures(t *testing.T) {
	pmt := Payment(1000, 2, 12)
	total := pmt * 12
	assert.InDelta(t, 1134.72, total, 0.001)
	assert.InDelta(t, 13.472, EffectiveCost(1000, total), 0.001)

	// Zero rate is exact, never rounded.
	assert.Equal(t, 100.0/3, Payment(100, 0, 3))
}

func TestEffectiveCost(t *testing.T) {
	assert.Zero(t, EffectiveCost(0, 500))
	assert.InDelta(t, 10.0, EffectiveCost(1000, 1100), 0.0001)
}

func TestBudgetImpact(t *testing.T) {
	assert.Equal(t, 100.0, BudgetImpact(1, 0))
	assert.Equal(t, 100.0, BudgetImpact(1e9, 0))
	assert.InDelta(t, 25.0, BudgetImpact(500, 2000), 0.0001)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		balance float64
		want    Viability
	}{
		{balance: -0.01, want: ViabilityImpossible},
		{balance: 0, want: ViabilityBad},
		{balance: 199.99, want: ViabilityBad},
		{balance: 200, want: ViabilityWarning},
		{balance: 599.99, want: ViabilityWarning},
		{balance: 600, want: ViabilityGood},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.balance, 2000), "balance %.2f", tt.balance)
	}
}

func TestSimulate(t *testing.T) {
	first := time.Date(2026, 11, 10, 14, 0, 0, 0, time.UTC)
	res, err := Simulate(Input{
		Amount:       1000,
		Budget:       2000,
		RatePct:      2,
		Terms:        []int{12, 3, 6, 3},
		FirstPayment: first,
	})
	require.NoError(t, err)
	require.Len(t, res.Scenarios, 4)

	spot := res.Scenarios[0]
	assert.True(t, spot.IsSpot())
	assert.Equal(t, ViabilityGood, spot.Viability)
	assert.InDelta(t, 1000.0, spot.BalanceAfter, 0.0001)
	assert.InDelta(t, 50.0, spot.BudgetImpact, 0.0001)
	assert.Zero(t, spot.Interest)
	assert.Equal(t, time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC), spot.FirstPayment)

	assert.Equal(t, []int{1, 3, 6, 12}, []int{
		res.Scenarios[0].Installments, res.Scenarios[1].Installments,
		res.Scenarios[2].Installments, res.Scenarios[3].Installments,
	})

	twelve := res.Scenarios[3]
	assert.Equal(t, 94.56, twelve.Payment)
	assert.InDelta(t, 134.72, twelve.Interest, 0.001)
	assert.InDelta(t, 13.472, twelve.EffectiveCost, 0.001)

	assert.True(t, res.Recommended.IsSpot(), "spot leaves half the budget")
}

func TestSimulate_RejectsInput(t *testing.T) {
	_, err := Simulate(Input{Amount: 0, Terms: DefaultTerms})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Simulate(Input{Amount: 100, Terms: []int{3, 1}})
	assert.ErrorIs(t, err, ErrInvalidTerm)

	_, err = Simulate(Input{Amount: 100})
	assert.ErrorIs(t, err, ErrNoTerms)
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		terms     []int
		amount    float64
		budget    float64
		wantTerms int
	}{
		// Spot leaves 10%, below the 20% buffer; 3x at 0% leaves 1050 of
		// 1500 and has no interest.
		{name: "cheapest good installment", terms: []int{3, 6}, amount: 1350, budget: 1500, wantTerms: 3},
		// 5x leaves 260 and 6x leaves 550: both warnings, lowest payment wins.
		{name: "warning with lowest payment", terms: []int{5, 6}, amount: 8700, budget: 2000, wantTerms: 6},
		// Nothing fits: the longest term is returned.
		{name: "nothing viable", terms: []int{3, 6}, amount: 100000, budget: 100, wantTerms: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Simulate(Input{Amount: tt.amount, Budget: tt.budget, RatePct: 0, Terms: tt.terms})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTerms, res.Recommended.Installments)
		})
	}
}

func TestRecommend_FallsBackToFirstViable(t *testing.T) {
	scenarios := []Scenario{
		{Installments: 1, Viability: ViabilityImpossible},
		{Installments: 3, Viability: ViabilityBad, Payment: 900},
		{Installments: 6, Viability: ViabilityBad, Payment: 450},
	}
	assert.Equal(t, 3, Recommend(scenarios, 1000).Installments)
	assert.Equal(t, Scenario{}, Recommend(nil, 1000))
}

func TestScenario_ToTransaction(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s := Scenario{
		FirstPayment: time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC),
		Installments: 6,
		Payment:      178.53,
	}

	txn := s.ToTransaction("sim-1", "cat_card", now)
	require.NoError(t, txn.Validate())
	assert.Equal(t, "Parcelamento Fatura (6x)", txn.Description)
	assert.Equal(t, model.StatusPlanned, txn.Status)
	assert.Equal(t, model.DirectionExpense, txn.Direction)
	assert.InDelta(t, 178.53, txn.Amount, 0.0001)
	require.NotNil(t, txn.Installments)
	assert.True(t, txn.IsInstallmentPlan())

	spot := Scenario{Installments: 1, Payment: 1000}.ToTransaction("sim-2", "cat_card", now)
	assert.Nil(t, spot.Installments)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), spot.Date)
}
