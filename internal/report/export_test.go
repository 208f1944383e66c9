package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/exodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() ([]model.Category, []model.Transaction) {
	cats := []model.Category{{ID: "cat_ali", Name: "Alimentação"}}
	txns := []model.Transaction{
		{
			Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			ID:          "t1",
			Description: "Mercado; feira",
			Direction:   model.DirectionExpense,
			CategoryID:  "cat_ali",
			Status:      model.StatusPaid,
			Amount:      123.45,
		},
		{
			Date:        time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
			ID:          "t2",
			Description: "Salário",
			Direction:   model.DirectionIncome,
			CategoryID:  "missing",
			Status:      model.StatusReceived,
			Amount:      5000,
		},
	}
	return cats, txns
}

func TestExporter_WriteCSV(t *testing.T) {
	cats, txns := exportFixture()
	var buf bytes.Buffer

	require.NoError(t, NewExporter(cats, nil).WriteCSV(&buf, txns))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, byteOrderMark))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, byteOrderMark), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DATE;DESCRIPTION;CATEGORY;AMOUNT;TYPE;STATUS", lines[0])
	assert.Equal(t, `2026-10-01;"Mercado; feira";Alimentação;123,45;DESPESA;PAGA`, lines[1])
	assert.Equal(t, "2026-10-05;Salário;Geral;5000;RECEITA;RECEBIDA", lines[2])
}

func TestExporter_WriteJSON(t *testing.T) {
	cats, txns := exportFixture()
	var buf bytes.Buffer

	exp := NewExporter(cats, []Column{ColumnDescription, ColumnAmount, ColumnCategory})
	require.NoError(t, exp.WriteJSON(&buf, txns))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{
		"description": "Mercado; feira",
		"amount":      123.45,
		"category":    "Alimentação",
	}, records[0])
}

func TestParseColumns(t *testing.T) {
	cols, err := ParseColumns("")
	require.NoError(t, err)
	assert.Equal(t, DefaultColumns, cols)

	cols, err = ParseColumns("Date, observation")
	require.NoError(t, err)
	assert.Equal(t, []Column{ColumnDate, ColumnObservation}, cols)

	_, err = ParseColumns("date,color")
	assert.Error(t, err)
}
