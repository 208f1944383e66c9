// Package report computes spending statistics over a window of calendar
// months, derives savings suggestions and short-term predictions from them,
// and exports transactions.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Consistency grades how steady monthly spending is.
type Consistency string

// Consistency grades by coefficient of variation.
const (
	ConsistencyHigh   Consistency = "HIGH"
	ConsistencyMedium Consistency = "MEDIUM"
	ConsistencyLow    Consistency = "LOW"
)

// Trend compares a category's current month against its average.
type Trend string

// Trend values.
const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

const trendThreshold = 15

// MonthTotal is the expense total of one calendar month.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Stats summarizes expense totals across a window of months.
type Stats struct {
	Consistency Consistency  `json:"consistency"`
	Monthly     []MonthTotal `json:"monthly"`
	Average     float64      `json:"average"`
	Min         float64      `json:"min"`
	Max         float64      `json:"max"`
	StdDev      float64      `json:"std_dev"`
	TotalPeriod float64      `json:"total_period"`
}

// CategoryStat summarizes one category across the window. MonthlyValues[0]
// is the current month and later entries go back in time.
type CategoryStat struct {
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	Trend         Trend     `json:"trend"`
	MonthlyValues []float64 `json:"monthly_values"`
	Average       float64   `json:"average"`
	Min           float64   `json:"min"`
	Max           float64   `json:"max"`
	Variation     float64   `json:"variation"`
}

// window returns the month keys ending at now's month, newest first.
func window(months int, now time.Time) []string {
	origin := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, months)
	for i := range keys {
		keys[i] = model.MonthKey(model.AddMonths(origin, -i))
	}
	return keys
}

// bucket sums expenses per month key for transactions accepted by keep.
func bucket(txns []model.Transaction, keys []string, keep func(model.Transaction) bool) []float64 {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	values := make([]float64, len(keys))
	for _, t := range txns {
		if !t.IsExpense() || !keep(t) {
			continue
		}
		if i, ok := index[model.MonthKey(t.Date)]; ok {
			values[i] += t.Amount
		}
	}
	return values
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// PeriodStats buckets expenses over the last months calendar months,
// counting months without spending as zero.
func PeriodStats(txns []model.Transaction, months int, now time.Time) Stats {
	if months <= 0 {
		return Stats{Consistency: ConsistencyHigh, Monthly: []MonthTotal{}}
	}

	keys := window(months, now)
	values := bucket(txns, keys, func(model.Transaction) bool { return true })

	st := Stats{TotalPeriod: sum(values)}
	st.Average = st.TotalPeriod / float64(months)
	st.Min, st.Max = minMax(values)

	var variance float64
	for _, v := range values {
		variance += (v - st.Average) * (v - st.Average)
	}
	st.StdDev = math.Sqrt(variance / float64(months))

	var cv float64
	if st.Average > 0 {
		cv = st.StdDev / st.Average
	}
	switch {
	case cv > 0.5:
		st.Consistency = ConsistencyLow
	case cv > 0.25:
		st.Consistency = ConsistencyMedium
	default:
		st.Consistency = ConsistencyHigh
	}

	st.Monthly = make([]MonthTotal, months)
	for i := range keys {
		// keys run newest first; Monthly is chronological.
		j := months - 1 - i
		st.Monthly[j] = MonthTotal{Month: keys[i], Total: values[i]}
	}
	return st
}

// Variation returns how far current is from average, in percent. With a zero
// average any spending counts as a 100% rise.
func Variation(current, average float64) float64 {
	if average > 0 {
		return (current - average) * 100 / average
	}
	if current > 0 {
		return 100
	}
	return 0
}

// Classify maps a variation to a trend. The ±15% boundary itself is stable.
func Classify(variation float64) Trend {
	switch {
	case variation > trendThreshold:
		return TrendUp
	case variation < -trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

// CategoryStats computes per-category statistics over the window. Categories
// without spending are omitted and the rest are sorted by average, highest
// first.
func CategoryStats(txns []model.Transaction, categories []model.Category, months int, now time.Time) []CategoryStat {
	if months <= 0 {
		return []CategoryStat{}
	}
	keys := window(months, now)

	out := make([]CategoryStat, 0, len(categories))
	for _, c := range categories {
		values := bucket(txns, keys, func(t model.Transaction) bool { return t.CategoryID == c.ID })
		average := sum(values) / float64(months)
		if average <= 0 {
			continue
		}

		st := CategoryStat{
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			MonthlyValues: values,
			Average:       average,
			Variation:     Variation(values[0], average),
		}
		st.Min, st.Max = minMax(values)
		st.Trend = Classify(st.Variation)
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Average > out[j].Average })
	return out
}

// FilterByPeriod keeps transactions dated on or after the first day of the
// window of months ending at now's month.
func FilterByPeriod(txns []model.Transaction, months int, now time.Time) []model.Transaction {
	if months < 1 {
		months = 1
	}
	start := model.AddMonths(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), -(months - 1))

	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if !model.DateOnly(t.Date).Before(start) {
			out = append(out, t)
		}
	}
	return out
}
