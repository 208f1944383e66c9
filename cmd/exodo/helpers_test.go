package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	got, err := parseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2024-02-29", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("29/02/2024", now)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{name: "empty uses now", input: "", wantYear: 2024, wantMonth: time.March},
		{name: "explicit", input: "2023-12", wantYear: 2023, wantMonth: time.December},
		{name: "invalid", input: "12-2023", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := parseMonth(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestParseTerms(t *testing.T) {
	terms, err := parseTerms("3, 6,,12")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 12}, terms)

	terms, err = parseTerms("")
	require.NoError(t, err)
	assert.Empty(t, terms)

	_, err = parseTerms("3,six")
	assert.Error(t, err)
}

func TestCategoryNames(t *testing.T) {
	names := categoryNames([]model.Category{
		{ID: "cat_casa", Name: "Moradia"},
		{ID: "cat_ali", Name: "Alimentação"},
	})
	assert.Equal(t, map[string]string{"cat_casa": "Moradia", "cat_ali": "Alimentação"}, names)
}

func TestRenderDashboard(t *testing.T) {
	out := renderDashboard(finance.Dashboard{
		Month:        "2024-03",
		Outlook:      finance.OutlookPositive,
		TotalBalance: 1500,
		CardInvoices: []finance.CardInvoice{{CardID: "card_1", CardName: "Nubank", DueDate: "2024-03-10", Amount: 320}},
	})
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Nubank")
	assert.Contains(t, out, finance.OutlookPositive)
}
