package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/exodo/internal/finance"
	"github.com/Veraticus/exodo/internal/model"
)

// testDatabase isolates a test from the user's config and data and returns a
// fresh database path.
func testDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("EXODO_REFRESH_ON_START", "false")
	t.Cleanup(viper.Reset)
	return filepath.Join(dir, "exodo.db")
}

// execute runs one exodo invocation against db with a freshly built command tree.
func execute(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--database", db}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := execute(t, db, "", args...)
	require.NoError(t, err, "exodo %s", strings.Join(args, " "))
	return out
}

func decodeJSON[T any](t *testing.T, db string, args ...string) T {
	t.Helper()
	var v T
	out := mustExecute(t, db, append(args, "-o", "json")...)
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestTransactionsAdd_Installments(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		installments string
		total        float64
		wantCount    int
		wantEach     float64
	}{
		{name: "even split", amount: "1200", installments: "4", total: 1200, wantCount: 4, wantEach: 300},
		{name: "uneven split", amount: "100", installments: "3", total: 100, wantCount: 3, wantEach: 100.0 / 3},
		{name: "single payment", amount: "450", installments: "1", total: 450, wantCount: 1, wantEach: 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDatabase(t)

			out := mustExecute(t, db, "tx", "add",
				"--id", "notebook", "-d", "Notebook", "-a", tt.amount, "-c", "cat_edu",
				"--date", "2026-01-31", "--card", "card_visa", "--installments", tt.installments)
			assert.Contains(t, out, "Saved Notebook (notebook)")

			txns := decodeJSON[[]model.Transaction](t, db, "tx", "list")
			require.Len(t, txns, tt.wantCount)

			var sum float64
			for _, txn := range txns {
				sum += txn.Amount
				assert.InDelta(t, tt.wantEach, txn.Amount, 0.0001)
				assert.Equal(t, model.PaymentCredit, txn.PaymentMethod)
				assert.Equal(t, "card_visa", txn.CardID)
				assert.Empty(t, txn.AccountID)
			}
			assert.InDelta(t, tt.total, sum, 0.0001, "installments add up to the purchase total")
		})
	}
}

func TestTransactionsAdd_InstallmentSchedule(t *testing.T) {
	db := testDatabase(t)

	out := mustExecute(t, db, "tx", "add",
		"--id", "tv", "-d", "TV", "-a", "1200", "-c", "cat_lazer",
		"--date", "2027-01-31", "--card", "card_visa", "--installments", "4")
	assert.Contains(t, out, "and 3 more installments")

	txns := decodeJSON[[]model.Transaction](t, db, "tx", "list")
	require.Len(t, txns, 4)

	byInstallment := make(map[int]model.Transaction, len(txns))
	for _, txn := range txns {
		require.NotNil(t, txn.Installments)
		assert.Equal(t, 4, txn.Installments.Total)
		byInstallment[txn.Installments.Current] = txn
	}

	first := byInstallment[1]
	assert.Equal(t, "tv", first.ID)
	assert.Equal(t, model.StatusPaid, first.Status)
	assert.Equal(t, "2027-02-28", byInstallment[2].Date.Format("2006-01-02"))
	for i := 2; i <= 4; i++ {
		assert.Equal(t, model.StatusPlanned, byInstallment[i].Status)
		assert.Equal(t, "tv", byInstallment[i].Installments.OriginalTransactionID)
	}
}

func TestTransactionsAdd_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "credit charge on an account",
			args: []string{"-d", "Notebook", "-a", "900", "-c", "cat_edu", "--card", "card_visa", "--account", "acc_main"},
		},
		{
			name: "negative amount",
			args: []string{"-d", "Refund", "-a", "-10", "-c", "cat_ali"},
		},
		{
			name: "expense marked received",
			args: []string{"-d", "Market", "-a", "10", "-c", "cat_ali", "--status", "RECEBIDA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDatabase(t)

			_, err := execute(t, db, "", append([]string{"tx", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidTransaction)

			txns := decodeJSON[[]model.Transaction](t, db, "tx", "list")
			assert.Empty(t, txns)
		})
	}
}

func TestTransactionsSettle(t *testing.T) {
	tests := []struct {
		name       string
		direction  string
		wantStatus model.Status
	}{
		{name: "planned expense becomes paid", direction: "DESPESA", wantStatus: model.StatusPaid},
		{name: "planned income becomes received", direction: "RECEITA", wantStatus: model.StatusReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDatabase(t)

			mustExecute(t, db, "tx", "add", "--id", "t1", "-d", "Aluguel", "-a", "1500",
				"-t", tt.direction, "-c", "cat_casa", "--status", "PREVISTA", "--date", "2026-05-05")

			out := mustExecute(t, db, "tx", "settle", "t1")
			assert.Contains(t, out, "Aluguel is now "+string(tt.wantStatus))

			txns := decodeJSON[[]model.Transaction](t, db, "tx", "list")
			require.Len(t, txns, 1)
			assert.Equal(t, tt.wantStatus, txns[0].Status)
		})
	}
}

func TestTransactionsSettle_UnknownID(t *testing.T) {
	db := testDatabase(t)

	_, err := execute(t, db, "", "tx", "settle", "missing")
	assert.Error(t, err)
}

func TestTransfersAdd(t *testing.T) {
	db := testDatabase(t)

	mustExecute(t, db, "accounts", "add", "--id", "acc_a", "--name", "Nubank", "--initial", "1000")
	mustExecute(t, db, "accounts", "add", "--id", "acc_b", "--name", "Itaú")

	out := mustExecute(t, db, "transfers", "add", "--from", "acc_a", "--to", "acc_b",
		"-a", "250", "--date", "2026-03-01", "-d", "Reserva")
	assert.Contains(t, out, "from acc_a to acc_b")

	transfers := decodeJSON[[]model.Transfer](t, db, "transfers", "list")
	require.Len(t, transfers, 1)
	assert.Equal(t, "acc_a", transfers[0].FromAccountID)
	assert.Equal(t, "acc_b", transfers[0].ToAccountID)
	assert.InDelta(t, 250.0, transfers[0].Amount, 0.0001)
	assert.NotEmpty(t, transfers[0].ID)

	balances := make(map[string]float64)
	for _, acc := range decodeJSON[[]model.Account](t, db, "accounts", "list") {
		balances[acc.ID] = acc.CurrentBalance
	}
	assert.InDelta(t, 750.0, balances["acc_a"], 0.0001)
	assert.InDelta(t, 250.0, balances["acc_b"], 0.0001)
}

func TestTransfersAdd_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown destination", args: []string{"--from", "acc_a", "--to", "acc_missing", "-a", "10"}},
		{name: "same account", args: []string{"--from", "acc_a", "--to", "acc_a", "-a", "10"}},
		{name: "zero amount", args: []string{"--from", "acc_a", "--to", "acc_b", "-a", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDatabase(t)
			mustExecute(t, db, "accounts", "add", "--id", "acc_a", "--name", "Nubank")
			mustExecute(t, db, "accounts", "add", "--id", "acc_b", "--name", "Itaú")

			_, err := execute(t, db, "", append([]string{"transfers", "add"}, tt.args...)...)
			require.Error(t, err)

			transfers := decodeJSON[[]model.Transfer](t, db, "transfers", "list")
			assert.Empty(t, transfers)
		})
	}
}

func TestBudgetsSet(t *testing.T) {
	db := testDatabase(t)

	out := mustExecute(t, db, "budgets", "set", "cat_ali", "800")
	assert.Contains(t, out, "Budget for cat_ali set to")

	statuses := decodeJSON[[]finance.BudgetStatus](t, db, "budgets", "list")
	require.Len(t, statuses, 1)
	id := statuses[0].Budget.ID
	assert.NotEmpty(t, id)
	assert.InDelta(t, 800.0, statuses[0].Budget.Amount, 0.0001)
	assert.True(t, statuses[0].Budget.Alert80)
	assert.True(t, statuses[0].Budget.Alert100)

	mustExecute(t, db, "budgets", "set", "cat_ali", "950")

	statuses = decodeJSON[[]finance.BudgetStatus](t, db, "budgets", "list")
	require.Len(t, statuses, 1, "setting a category again updates its budget")
	assert.Equal(t, id, statuses[0].Budget.ID)
	assert.InDelta(t, 950.0, statuses[0].Budget.Amount, 0.0001)
}

func TestBudgetsSet_InvalidAmount(t *testing.T) {
	db := testDatabase(t)

	_, err := execute(t, db, "", "budgets", "set", "cat_ali", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid amount "lots"`)
}

func TestDelete_Confirmation(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantCount int
	}{
		{name: "declined", stdin: "n\n", args: []string{"accounts", "delete", "acc_a"}, wantCount: 1},
		{name: "confirmed", stdin: "y\n", args: []string{"accounts", "delete", "acc_a"}, wantCount: 0},
		{name: "skipped with --yes", args: []string{"accounts", "delete", "acc_a", "--yes"}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDatabase(t)
			mustExecute(t, db, "accounts", "add", "--id", "acc_a", "--name", "Nubank")

			_, err := execute(t, db, tt.stdin, tt.args...)
			require.NoError(t, err)

			accounts := decodeJSON[[]model.Account](t, db, "accounts", "list")
			assert.Len(t, accounts, tt.wantCount)
		})
	}
}
