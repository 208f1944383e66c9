package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/exodo/internal/model"
)

type compiledRule struct {
	re *regexp.Regexp
	Rule
}

// Matcher evaluates transactions against a fixed set of rules.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher validates and compiles the rules. Rules are tried by
// descending priority; ties keep their given order.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		cr := compiledRule{Rule: r}
		if r.IsRegex {
			expr := r.Pattern
			if !strings.HasPrefix(expr, "(?") {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidRule, r.Pattern, err)
			}
			cr.re = re
		} else {
			cr.Pattern = strings.ToLower(r.Pattern)
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return &Matcher{rules: compiled}, nil
}

// Match returns the highest-priority rule matching the transaction.
func (m *Matcher) Match(txn model.Transaction) (Rule, bool) {
	for _, r := range m.rules {
		if r.matches(txn) {
			return r.Rule, true
		}
	}
	return Rule{}, false
}

func (r compiledRule) matches(txn model.Transaction) bool {
	if r.Direction != "" && txn.Direction != r.Direction {
		return false
	}
	if !r.matchesAmount(txn.Amount) {
		return false
	}
	if r.re != nil {
		return r.re.MatchString(txn.Description)
	}
	return strings.Contains(strings.ToLower(txn.Description), r.Pattern)
}

// Categorize sets the category of every transaction a rule matches and
// returns how many were changed. Rules pointing at a category whose type
// disagrees with the transaction's direction are skipped.
func (m *Matcher) Categorize(txns []model.Transaction, categories []model.Category) int {
	types := make(map[string]model.Direction, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}

	var changed int
	for i := range txns {
		for _, r := range m.rules {
			if !r.matches(txns[i]) {
				continue
			}
			if typ, ok := types[r.CategoryID]; ok && typ != txns[i].Direction {
				continue
			}
			if txns[i].CategoryID != r.CategoryID {
				txns[i].CategoryID = r.CategoryID
				changed++
			}
			break
		}
	}
	return changed
}
