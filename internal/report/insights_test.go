package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions(t *testing.T) {
	stats := []CategoryStat{
		{CategoryID: "home", CategoryName: "Moradia", Average: 2000, Max: 2000, Trend: TrendStable},
		{CategoryID: "fun", CategoryName: "Lazer e Jogos", Average: 500, Max: 900, Variation: 40, Trend: TrendUp},
		{CategoryID: "food", CategoryName: "Alimentação", Average: 1000, Max: 1000, Trend: TrendUp, Variation: 16},
		{CategoryID: "uber", CategoryName: "Uber", Average: 150, Max: 200, Trend: TrendStable},
	}
	total := 3650.0

	got := Suggestions(stats, total)

	byID := make(map[string]Suggestion)
	for _, s := range got {
		byID[s.ID] = s
	}

	// Growing: saving is max - average when positive.
	require.Contains(t, byID, "grow-fun")
	assert.InDelta(t, 400.0, byID["grow-fun"].PotentialSavings, 0.0001)
	assert.Equal(t, LevelMedium, byID["grow-fun"].Impact, "500/3650 is about 13.7%")
	assert.Equal(t, ActionCutSpending, byID["grow-fun"].Action)

	// Growing without excess over average falls back to 10%.
	require.Contains(t, byID, "grow-food")
	assert.InDelta(t, 100.0, byID["grow-food"].PotentialSavings, 0.0001)
	assert.Equal(t, LevelHigh, byID["grow-food"].Impact)

	// Discretionary above the floor saves 20%.
	require.Contains(t, byID, "disc-fun")
	assert.InDelta(t, 100.0, byID["disc-fun"].PotentialSavings, 0.0001)
	assert.NotContains(t, byID, "disc-uber", "below the 200 floor")

	// Housing is never a heavy spender.
	assert.NotContains(t, byID, "heavy-home")

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].PotentialSavings, got[i].PotentialSavings)
	}
}

func TestSuggestions_HeavySpenderAndLimit(t *testing.T) {
	var stats []CategoryStat
	for i, name := range []string{"Restaurante", "Delivery", "Compras", "Shopping", "Uber Eats", "Jogos"} {
		stats = append(stats, CategoryStat{
			CategoryID:   name,
			CategoryName: name,
			Average:      float64(300 + i*10),
			Max:          float64(400 + i*10),
			Trend:        TrendUp,
		})
	}
	stats = append(stats, CategoryStat{CategoryID: "car", CategoryName: "Transporte", Average: 5000, Max: 5000})

	got := Suggestions(stats, 7000)
	require.Len(t, got, 5)
	assert.Equal(t, "heavy-car", got[0].ID)
	assert.Equal(t, LevelHigh, got[0].Impact)
	assert.InDelta(t, 500.0, got[0].PotentialSavings, 0.0001)
}

func TestSuggestions_Empty(t *testing.T) {
	got := Suggestions(nil, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPredictions(t *testing.T) {
	stats := []CategoryStat{
		{CategoryName: "Lazer", Average: 100, Trend: TrendUp, Variation: 30},
		{CategoryName: "Moradia", Average: 900, Trend: TrendStable},
	}

	got := Predictions(stats, 1000, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 3)

	assert.Equal(t, "2026-11", got[0].Month)
	assert.InDelta(t, 1005.0, got[0].PredictedAmount, 0.0001)
	assert.Equal(t, LevelLow, got[0].RiskLevel)

	assert.Equal(t, "2026-12", got[1].Month)
	assert.InDelta(t, 1256.25, got[1].PredictedAmount, 0.0001)
	assert.Equal(t, LevelHigh, got[1].RiskLevel)
	assert.Contains(t, got[1].Notes, "Lazer")
	assert.Contains(t, got[1].Notes, "year-end holidays")

	assert.Equal(t, "2027-01", got[2].Month)
	assert.InDelta(t, 1155.75, got[2].PredictedAmount, 0.0001)
	assert.Equal(t, LevelMedium, got[2].RiskLevel)
}
