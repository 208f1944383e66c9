// Package simulate compares paying an amount at once against paying it in
// fixed-rate installments, and recommends the most affordable option.
package simulate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Viability grades how affordable a scenario is.
type Viability string

// Viability levels, best first.
const (
	ViabilityGood       Viability = "GOOD"
	ViabilityWarning    Viability = "WARNING"
	ViabilityBad        Viability = "BAD"
	ViabilityImpossible Viability = "IMPOSSIBLE"
)

// Simulation errors.
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidTerm   = errors.New("installment terms must be greater than 1")
	ErrNoTerms       = errors.New("at least one installment term is required")
)

// DefaultTerms are the installment counts simulated when none are given.
var DefaultTerms = []int{3, 6, 12}

// DefaultRatePct is the monthly interest rate assumed when none is given.
const DefaultRatePct = 2.5

// Payment returns the fixed monthly payment that amortizes principal over
// months at a monthly rate given in percent, rounded to cents. A zero rate
// splits the principal evenly without rounding.
func Payment(principal, ratePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if ratePct == 0 {
		return principal / float64(months)
	}

	i := ratePct / 100
	growth := math.Pow(1+i, float64(months))
	return roundCents(principal * i * growth / (growth - 1))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// EffectiveCost returns the interest paid as a percentage of the principal.
func EffectiveCost(principal, totalPaid float64) float64 {
	if principal == 0 {
		return 0
	}
	return (totalPaid - principal) / principal * 100
}

// BudgetImpact returns the payment as a percentage of monthly income. Without
// income the impact is the maximum, 100.
func BudgetImpact(payment, monthlyIncome float64) float64 {
	if monthlyIncome == 0 {
		return 100
	}
	return payment / monthlyIncome * 100
}

// Classify grades the budget left after a payment.
func Classify(balance, budget float64) Viability {
	switch {
	case balance < 0:
		return ViabilityImpossible
	case balance < budget*0.1:
		return ViabilityBad
	case balance < budget*0.3:
		return ViabilityWarning
	default:
		return ViabilityGood
	}
}

// Scenario is one way of paying the amount.
type Scenario struct {
	FirstPayment  time.Time `json:"first_payment_date"`
	Viability     Viability `json:"viability"`
	Installments  int       `json:"installments"`
	Payment       float64   `json:"installment_amount"`
	Total         float64   `json:"total_amount"`
	Interest      float64   `json:"total_interest"`
	EffectiveCost float64   `json:"cet"`
	BudgetImpact  float64   `json:"budget_impact_percent"`
	BalanceAfter  float64   `json:"projected_balance_end"`
}

// IsSpot reports whether the scenario pays everything at once.
func (s Scenario) IsSpot() bool {
	return s.Installments <= 1
}

// Viable reports whether the scenario fits the budget at all.
func (s Scenario) Viable() bool {
	return s.Viability != ViabilityImpossible
}

// Input describes what to simulate.
type Input struct {
	FirstPayment time.Time
	Terms        []int
	Amount       float64
	Budget       float64
	RatePct      float64
}

// Result holds every scenario, spot payment first, and the recommended one.
type Result struct {
	Scenarios   []Scenario `json:"scenarios"`
	Recommended Scenario   `json:"recommended"`
}

// Simulate builds the spot scenario followed by one scenario per distinct
// term, in ascending order.
func Simulate(in Input) (Result, error) {
	if in.Amount <= 0 {
		return Result{}, fmt.Errorf("%w: %.2f", ErrInvalidAmount, in.Amount)
	}
	terms, err := normalizeTerms(in.Terms)
	if err != nil {
		return Result{}, err
	}

	first := model.DateOnly(in.FirstPayment)
	scenarios := make([]Scenario, 0, len(terms)+1)

	spotBalance := in.Budget - in.Amount
	scenarios = append(scenarios, Scenario{
		FirstPayment: first,
		Viability:    Classify(spotBalance, in.Budget),
		Installments: 1,
		Payment:      in.Amount,
		Total:        in.Amount,
		BudgetImpact: BudgetImpact(in.Amount, in.Budget),
		BalanceAfter: spotBalance,
	})

	for _, n := range terms {
		payment := Payment(in.Amount, in.RatePct, n)
		total := payment * float64(n)
		balance := in.Budget - payment
		scenarios = append(scenarios, Scenario{
			FirstPayment:  first,
			Viability:     Classify(balance, in.Budget),
			Installments:  n,
			Payment:       payment,
			Total:         total,
			Interest:      total - in.Amount,
			EffectiveCost: EffectiveCost(in.Amount, total),
			BudgetImpact:  BudgetImpact(payment, in.Budget),
			BalanceAfter:  balance,
		})
	}

	return Result{
		Scenarios:   scenarios,
		Recommended: Recommend(scenarios, in.Budget),
	}, nil
}

func normalizeTerms(terms []int) ([]int, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	seen := make(map[int]bool, len(terms))
	out := make([]int, 0, len(terms))
	for _, n := range terms {
		if n <= 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTerm, n)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Recommend picks the spot payment when it is viable and leaves more than
// 20% of the budget, else the cheapest good scenario, else the warning
// scenario with the lowest payment, else the first viable one. When nothing
// is viable the longest term is the least bad choice.
func Recommend(scenarios []Scenario, budget float64) Scenario {
	if len(scenarios) == 0 {
		return Scenario{}
	}

	var viable []Scenario
	for _, s := range scenarios {
		if s.Viable() {
			viable = append(viable, s)
		}
	}
	if len(viable) == 0 {
		longest := scenarios[0]
		for _, s := range scenarios[1:] {
			if s.Installments >= longest.Installments {
				longest = s
			}
		}
		return longest
	}

	for _, s := range viable {
		if s.IsSpot() && s.BalanceAfter > budget*0.2 {
			return s
		}
	}

	if best, ok := pick(viable, ViabilityGood, func(a, b Scenario) bool { return a.Interest < b.Interest }); ok {
		return best
	}
	if best, ok := pick(viable, ViabilityWarning, func(a, b Scenario) bool { return a.Payment < b.Payment }); ok {
		return best
	}
	return viable[0]
}

// pick returns the first scenario of the given viability that no other
// scenario of that viability beats.
func pick(scenarios []Scenario, v Viability, less func(a, b Scenario) bool) (Scenario, bool) {
	var best Scenario
	found := false
	for _, s := range scenarios {
		if s.Viability != v {
			continue
		}
		if !found || less(s, best) {
			best = s
			found = true
		}
	}
	return best, found
}

// ToTransaction turns the scenario into the planned expense that starts its
// installment plan. Saving it through the engine creates the remaining
// installments.
func (s Scenario) ToTransaction(id, categoryID string, now time.Time) model.Transaction {
	txn := model.Transaction{
		Date:        s.FirstPayment,
		CreatedAt:   now,
		ID:          id,
		Description: fmt.Sprintf("Parcelamento Fatura (%dx)", s.Installments),
		Direction:   model.DirectionExpense,
		CategoryID:  categoryID,
		Status:      model.StatusPlanned,
		Amount:      s.Payment,
	}
	if txn.Date.IsZero() {
		txn.Date = model.DateOnly(now)
	}
	if !s.IsSpot() {
		txn.Installments = &model.Installments{Current: 1, Total: s.Installments}
	}
	return txn
}
