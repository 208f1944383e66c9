package engine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/report"
	"github.com/Veraticus/exodo/internal/simulate"
	"github.com/Veraticus/exodo/internal/testutil"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestEngine(t *testing.T, configure func(*testutil.Builder) *testutil.Builder) *Engine {
	t.Helper()
	db := testutil.SetupTestDBWithBuilder(t, configure)
	return New(db.Storage,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()))
}

func TestEngine_Refresh(t *testing.T) {
	ctx := context.Background()

	late := testutil.Expense("late", "cat_casa", 300, testutil.Date(2024, time.March, 10))
	late.Status = model.StatusPlanned
	future := testutil.Expense("future", "cat_casa", 80, testutil.Date(2024, time.March, 20))
	future.Status = model.StatusConfirmed

	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithAccount(testutil.DefaultAccountID, "Main", 1000).
			WithTransactions(late, future).
			WithRecurring("rent", "Rent", "cat_casa", 1200, 31)
	})

	res, err := e.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Overdue: 1, Generated: 1}, res)

	txns, err := e.Transactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 3)

	byID := make(map[string]model.Transaction, len(txns))
	for _, txn := range txns {
		byID[txn.ID] = txn
	}
	assert.Equal(t, model.StatusOverdue, byID["late"].Status)
	assert.Equal(t, model.StatusConfirmed, byID["future"].Status)
	assert.Equal(t, "rent", byID["id-1"].RecurrenceID)
	assert.Equal(t, testutil.Date(2024, time.March, 31), byID["id-1"].Date)

	rules, err := e.Backend().ListRecurring(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.NotNil(t, rules[0].LastGenerated)
	assert.Equal(t, testutil.Date(2024, time.March, 15), *rules[0].LastGenerated)

	again, err := e.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{}, again, "a second refresh changes nothing")
}

func TestEngine_SaveTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("expands a new installment plan", func(t *testing.T) {
		e := newTestEngine(t, nil)

		saved, err := e.SaveTransaction(ctx, model.Transaction{
			Date:          time.Date(2024, time.January, 31, 18, 30, 0, 0, time.UTC),
			Description:   "Notebook",
			Direction:     model.DirectionExpense,
			CategoryID:    "cat_lazer",
			Status:        model.StatusConfirmed,
			PaymentMethod: model.PaymentCredit,
			CardID:        "card",
			Amount:        1000,
			Installments:  &model.Installments{Current: 1, Total: 3},
		})
		require.NoError(t, err)
		require.Len(t, saved, 3)

		assert.Equal(t, "id-1", saved[0].ID)
		assert.Equal(t, testutil.Date(2024, time.January, 31), saved[0].Date)
		assert.Equal(t, fixedNow, saved[0].CreatedAt)
		assert.Equal(t, model.StatusConfirmed, saved[0].Status)

		assert.Equal(t, "id-2", saved[1].ID)
		assert.Equal(t, testutil.Date(2024, time.February, 29), saved[1].Date)
		assert.Equal(t, "id-3", saved[2].ID)
		assert.Equal(t, testutil.Date(2024, time.March, 31), saved[2].Date)
		for _, sib := range saved[1:] {
			assert.Equal(t, model.StatusPlanned, sib.Status)
			assert.Equal(t, "id-1", sib.Installments.OriginalTransactionID)
		}

		stored, err := e.Transactions(ctx, TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})

	t.Run("editing the first installment does not expand again", func(t *testing.T) {
		first := testutil.Expense("plan", "cat_lazer", 50, testutil.Date(2024, time.March, 1))
		first.Installments = &model.Installments{Current: 1, Total: 4}
		e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
			return b.WithTransactions(first)
		})

		first.Description = "Renamed"
		saved, err := e.SaveTransaction(ctx, first)
		require.NoError(t, err)
		assert.Len(t, saved, 1)

		stored, err := e.Transactions(ctx, TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Renamed", stored[0].Description)
	})

	t.Run("rejects invalid transactions", func(t *testing.T) {
		e := newTestEngine(t, nil)

		_, err := e.SaveTransaction(ctx, model.Transaction{
			Date:        fixedNow,
			Description: "Nothing",
			Direction:   model.DirectionExpense,
			CategoryID:  "cat_card",
			Status:      model.StatusPaid,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidTransaction)
	})
}

func TestEngine_SettleTransaction(t *testing.T) {
	ctx := context.Background()

	overdue := testutil.Expense("bill", "cat_casa", 90, testutil.Date(2024, time.March, 1))
	overdue.Status = model.StatusOverdue
	salary := testutil.Income("salary", "cat_salario", 5000, testutil.Date(2024, time.March, 5))
	salary.Status = model.StatusConfirmed

	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithTransactions(overdue, salary)
	})

	got, err := e.SettleTransaction(ctx, "bill")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, got.Status)

	got, err = e.SettleTransaction(ctx, "salary")
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, got.Status)

	_, err = e.SettleTransaction(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = e.ConfirmTransaction(ctx, "bill")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestEngine_Accounts(t *testing.T) {
	ctx := context.Background()

	planned := testutil.Expense("planned", "cat_card", 100, testutil.Date(2024, time.March, 20))
	planned.Status = model.StatusPlanned

	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithAccount(testutil.DefaultAccountID, "Main", 1000).
			WithAccount("savings", "Savings", 0).
			WithTransactions(
				testutil.Income("salary", "cat_salario", 500, testutil.Date(2024, time.March, 5)),
				testutil.Expense("market", "cat_ali", 200, testutil.Date(2024, time.March, 6)),
				planned,
			).
			WithTransfer("tr", testutil.DefaultAccountID, "savings", 300, testutil.Date(2024, time.March, 7))
	})

	accounts, err := e.Accounts(ctx)
	require.NoError(t, err)

	balances := make(map[string]float64)
	for _, a := range accounts {
		balances[a.ID] = a.CurrentBalance
	}
	assert.InDelta(t, 1000.0, balances[testutil.DefaultAccountID], 0.001)
	assert.InDelta(t, 300.0, balances["savings"], 0.001)
}

func TestEngine_Categories(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil)

	cats, err := e.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(finance.DefaultCategories()))

	stored, err := e.Backend().ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, len(cats), "defaults are persisted")
}

func TestEngine_SaveTransfer(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithAccount("a", "A", 100).WithAccount("b", "B", 0)
	})

	tr, err := e.SaveTransfer(ctx, model.Transfer{
		Date:          fixedNow,
		FromAccountID: "a",
		ToAccountID:   "b",
		Amount:        40,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", tr.ID)
	assert.Equal(t, testutil.Date(2024, time.March, 15), tr.Date)

	_, err = e.SaveTransfer(ctx, model.Transfer{
		Date:          fixedNow,
		FromAccountID: "a",
		ToAccountID:   "ghost",
		Amount:        40,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = e.SaveTransfer(ctx, model.Transfer{
		Date:          fixedNow,
		FromAccountID: "a",
		ToAccountID:   "a",
		Amount:        40,
	})
	assert.ErrorIs(t, err, model.ErrInvalidTransfer)
}

func TestEngine_SetBudget(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil)

	first, err := e.SetBudget(ctx, "cat_lazer", 300)
	require.NoError(t, err)
	assert.Equal(t, "id-1", first.ID)
	assert.True(t, first.Alert80)
	assert.True(t, first.Alert100)

	second, err := e.SetBudget(ctx, "cat_lazer", 450)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the category keeps one budget")
	assert.InDelta(t, 450.0, second.Amount, 0.001)

	budgets, err := e.Backend().ListBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}

func TestEngine_Contribute(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithGoal("trip", "Trip", 1000, 900)
	})

	goal, err := e.Contribute(ctx, "trip", 100, "bonus")
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, goal.Status)
	require.Len(t, goal.History, 1)
	assert.Equal(t, "bonus", goal.History[0].Note)

	_, err = e.Contribute(ctx, "trip", -5, "")
	assert.ErrorIs(t, err, finance.ErrNonPositiveContribution)

	_, err = e.Contribute(ctx, "missing", 5, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngine_SaveGoal(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil)

	goal, err := e.SaveGoal(ctx, model.Goal{Name: "Car", TargetAmount: 30000, CurrentAmount: 2000})
	require.NoError(t, err)
	assert.Equal(t, model.GoalActive, goal.Status)
	assert.Equal(t, testutil.Date(2024, time.March, 15), goal.StartDate)
	require.Len(t, goal.History, 1)
	assert.InDelta(t, 2000.0, goal.History[0].Amount, 0.001)
}

func TestEngine_ApplyScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil)

	res, err := simulate.Simulate(simulate.Input{
		Amount:       3000,
		Budget:       1000,
		RatePct:      2,
		Terms:        []int{3},
		FirstPayment: testutil.Date(2024, time.April, 10),
	})
	require.NoError(t, err)
	require.Len(t, res.Scenarios, 2)

	saved, err := e.ApplyScenario(ctx, res.Scenarios[1], "cat_card")
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "Parcelamento Fatura (3x)", saved[0].Description)
	assert.Equal(t, testutil.Date(2024, time.June, 10), saved[2].Date)
}

func TestEngine_Import(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithTransactions(testutil.Expense("fit-1", "cat_card", 10, testutil.Date(2024, time.March, 1)))
	})

	batch := []model.Transaction{
		testutil.Expense("fit-1", "cat_card", 10, testutil.Date(2024, time.March, 1)),
		testutil.Expense("fit-2", "cat_card", 20, testutil.Date(2024, time.March, 2)),
		testutil.Expense("fit-2", "cat_card", 20, testutil.Date(2024, time.March, 2)),
	}

	res, err := e.Import(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 1, Skipped: 2}, res)

	res, err = e.Import(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 0, Skipped: 3}, res)
}

func TestEngine_Export(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(b *testutil.Builder) *testutil.Builder {
		return b.WithDefaultCategories().
			WithTransactions(
				testutil.Expense("b", "cat_ali", 12.5, testutil.Date(2024, time.March, 2)),
				testutil.Expense("a", "cat_ali", 7, testutil.Date(2024, time.March, 1)),
				testutil.Expense("old", "cat_ali", 7, testutil.Date(2023, time.January, 1)),
			)
	})

	var buf bytes.Buffer
	n, err := e.Export(ctx, &buf, ExportOptions{
		Format:  FormatCSV,
		Columns: []report.Column{report.ColumnDate, report.ColumnAmount},
		Months:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), "\uFEFF")), "\n")
	assert.Equal(t, []string{"DATE;AMOUNT", "2024-03-01;7", "2024-03-02;12,5"}, lines)

	_, err = e.Export(ctx, &buf, ExportOptions{Format: "xml"})
	assert.Error(t, err)
}

func TestTransactionFilter_Matches(t *testing.T) {
	txn := testutil.Expense("x", "cat_lazer", 10, testutil.Date(2024, time.March, 3))

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{"empty matches all", TransactionFilter{}, true},
		{"direction", TransactionFilter{Direction: model.DirectionIncome}, false},
		{"status", TransactionFilter{Status: model.StatusPaid}, true},
		{"category", TransactionFilter{CategoryID: "cat_saude"}, false},
		{"month and year", TransactionFilter{Year: 2024, Month: time.March}, true},
		{"other month", TransactionFilter{Year: 2024, Month: time.April}, false},
		{"account", TransactionFilter{AccountID: testutil.DefaultAccountID}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(txn))
		})
	}
}
