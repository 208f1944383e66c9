package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Level grades the impact of a suggestion or the risk of a prediction.
type Level string

// Levels.
const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Action is the kind of change a suggestion proposes.
type Action string

// Suggested actions.
const (
	ActionCutSpending Action = "CUT_SPENDING"
	ActionSetBudget   Action = "SET_BUDGET"
	ActionChangeHabit Action = "CHANGE_HABIT"
)

const (
	maxSuggestions     = 5
	discretionaryFloor = 200
)

var (
	discretionaryKeywords = []string{"lazer", "jogos", "restaurante", "delivery", "compras", "shopping", "uber"}
	essentialNames        = []string{"moradia", "aluguel"}
)

// Suggestion is one savings opportunity.
type Suggestion struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Impact           Level   `json:"impact"`
	CategoryName     string  `json:"category_name"`
	Action           Action  `json:"action"`
	PotentialSavings float64 `json:"potential_savings"`
}

// Prediction is the expected spending of a future month.
type Prediction struct {
	Month           string  `json:"month"`
	RiskLevel       Level   `json:"risk_level"`
	Notes           string  `json:"notes"`
	PredictedAmount float64 `json:"predicted_amount"`
}

func share(average, totalAverage float64) float64 {
	if totalAverage <= 0 {
		return 0
	}
	return average / totalAverage * 100
}

// Suggestions flags growing categories, discretionary spending above a fixed
// floor, and categories taking more than 30% of the total average. The five
// largest savings are returned.
func Suggestions(stats []CategoryStat, totalAverage float64) []Suggestion {
	var out []Suggestion
	seen := make(map[string]bool)
	add := func(s Suggestion) {
		if seen[s.ID] {
			return
		}
		seen[s.ID] = true
		out = append(out, s)
	}

	for _, c := range stats {
		if c.Trend != TrendUp {
			continue
		}
		pct := share(c.Average, totalAverage)
		impact := LevelLow
		switch {
		case pct > 20:
			impact = LevelHigh
		case pct > 10:
			impact = LevelMedium
		}

		saving := c.Max - c.Average
		if saving <= 0 {
			saving = c.Average * 0.1
		}
		add(Suggestion{
			ID:               "grow-" + c.CategoryID,
			Title:            "Reduce spending on " + c.CategoryName,
			Description:      fmt.Sprintf("Spending here grew recently (+%.0f%%). Aim to return to your historical average.", c.Variation),
			Impact:           impact,
			CategoryName:     c.CategoryName,
			Action:           ActionCutSpending,
			PotentialSavings: saving,
		})
	}

	for _, c := range stats {
		if !matchesAny(c.CategoryName, discretionaryKeywords) || c.Average <= discretionaryFloor {
			continue
		}
		add(Suggestion{
			ID:               "disc-" + c.CategoryID,
			Title:            "Optimize " + c.CategoryName,
			Description:      "Discretionary spending is significant. Cutting 20% here saves without touching essentials.",
			Impact:           LevelMedium,
			CategoryName:     c.CategoryName,
			Action:           ActionChangeHabit,
			PotentialSavings: c.Average * 0.2,
		})
	}

	for _, c := range stats {
		if c.Average <= totalAverage*0.3 || isEssential(c.CategoryName) {
			continue
		}
		add(Suggestion{
			ID:               "heavy-" + c.CategoryID,
			Title:            "Watch spending on " + c.CategoryName,
			Description:      fmt.Sprintf("This category takes %.0f%% of your spending. Look for cheaper plans or alternatives.", share(c.Average, totalAverage)),
			Impact:           LevelHigh,
			CategoryName:     c.CategoryName,
			Action:           ActionSetBudget,
			PotentialSavings: c.Average * 0.1,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].PotentialSavings > out[j].PotentialSavings })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func isEssential(name string) bool {
	lower := strings.ToLower(name)
	for _, n := range essentialNames {
		if lower == n {
			return true
		}
	}
	return false
}

// Predictions projects spending for the three months after now. Growing
// categories get 5% on top of their average; December and January carry
// seasonal multipliers.
func Predictions(stats []CategoryStat, historicalAverage float64, now time.Time) []Prediction {
	origin := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]Prediction, 0, 3)

	for i := 1; i <= 3; i++ {
		month := model.AddMonths(origin, i)

		var predicted float64
		var risky []string
		for _, c := range stats {
			if c.Trend == TrendUp {
				predicted += c.Average * 1.05
				if c.Variation > 20 {
					risky = append(risky, c.CategoryName)
				}
				continue
			}
			predicted += c.Average
		}

		switch month.Month() {
		case time.December:
			predicted *= 1.25
			risky = append(risky, "year-end holidays")
		case time.January:
			predicted *= 1.15
			risky = append(risky, "annual taxes and travel")
		}

		p := Prediction{
			Month:           model.MonthKey(month),
			RiskLevel:       LevelLow,
			Notes:           "Spending within normal range.",
			PredictedAmount: predicted,
		}
		switch {
		case predicted > historicalAverage*1.2:
			p.RiskLevel = LevelHigh
		case predicted > historicalAverage*1.1:
			p.RiskLevel = LevelMedium
		}

		if p.RiskLevel == LevelHigh {
			var change float64
			if historicalAverage > 0 {
				change = (predicted - historicalAverage) / historicalAverage * 100
			}
			if len(risky) > 2 {
				risky = risky[:2]
			}
			p.Notes = fmt.Sprintf("Expected increase of %.0f%%. Watch out for: %s.", change, strings.Join(risky, ", "))
		}
		out = append(out, p)
	}
	return out
}
