package report

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Summary bundles every statistic for one reporting window.
type Summary struct {
	Period      Stats          `json:"period"`
	Categories  []CategoryStat `json:"categories"`
	Suggestions []Suggestion   `json:"suggestions"`
	Predictions []Prediction   `json:"predictions"`
	Months      int            `json:"months"`
}

// Build computes the full report for the last months calendar months.
func Build(txns []model.Transaction, categories []model.Category, months int, now time.Time) Summary {
	scoped := FilterByPeriod(txns, months, now)
	period := PeriodStats(scoped, months, now)
	cats := CategoryStats(scoped, categories, months, now)

	return Summary{
		Months:      months,
		Period:      period,
		Categories:  cats,
		Suggestions: Suggestions(cats, period.Average),
		Predictions: Predictions(cats, period.Average, now),
	}
}
