package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Column is one exportable transaction field.
type Column string

// Exportable columns, in output order.
const (
	ColumnDate          Column = "date"
	ColumnDescription   Column = "description"
	ColumnCategory      Column = "category"
	ColumnAmount        Column = "amount"
	ColumnType          Column = "type"
	ColumnStatus        Column = "status"
	ColumnPaymentMethod Column = "payment_method"
	ColumnObservation   Column = "observation"
)

// AllColumns lists every exportable column in output order.
var AllColumns = []Column{
	ColumnDate, ColumnDescription, ColumnCategory, ColumnAmount,
	ColumnType, ColumnStatus, ColumnPaymentMethod, ColumnObservation,
}

// DefaultColumns is the column set used when none is chosen.
var DefaultColumns = []Column{
	ColumnDate, ColumnDescription, ColumnCategory, ColumnAmount, ColumnType, ColumnStatus,
}

const (
	byteOrderMark = "\uFEFF"
	uncategorized = "Geral"
)

// ParseColumns reads a comma-separated column list. An empty list selects
// DefaultColumns.
func ParseColumns(s string) ([]Column, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultColumns, nil
	}

	known := make(map[Column]bool, len(AllColumns))
	for _, c := range AllColumns {
		known[c] = true
	}

	var cols []Column
	for _, part := range strings.Split(s, ",") {
		c := Column(strings.ToLower(strings.TrimSpace(part)))
		if !known[c] {
			return nil, fmt.Errorf("unknown column %q", part)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// Exporter renders transactions with category names resolved.
type Exporter struct {
	categories map[string]string
	Columns    []Column
}

// NewExporter creates an exporter for the given columns.
func NewExporter(categories []model.Category, columns []Column) *Exporter {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	return &Exporter{categories: names, Columns: columns}
}

func (e *Exporter) categoryName(id string) string {
	if name, ok := e.categories[id]; ok {
		return name
	}
	return uncategorized
}

func (e *Exporter) value(t model.Transaction, c Column) string {
	switch c {
	case ColumnDate:
		return t.Date.Format(time.DateOnly)
	case ColumnDescription:
		return t.Description
	case ColumnCategory:
		return e.categoryName(t.CategoryID)
	case ColumnAmount:
		// Decimal comma for spreadsheets in pt-BR locales.
		return strings.Replace(strconv.FormatFloat(t.Amount, 'f', -1, 64), ".", ",", 1)
	case ColumnType:
		return string(t.Direction)
	case ColumnStatus:
		return string(t.Status)
	case ColumnPaymentMethod:
		return string(t.PaymentMethod)
	case ColumnObservation:
		return t.Observation
	}
	return ""
}

// WriteCSV writes a semicolon-separated file preceded by a UTF-8 byte order
// mark, with upper-cased column names as the header.
func (e *Exporter) WriteCSV(w io.Writer, txns []model.Transaction) error {
	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		header[i] = strings.ToUpper(string(c))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(e.Columns))
	for _, t := range txns {
		for i, c := range e.Columns {
			row[i] = e.value(t, c)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes one object per transaction holding the selected columns.
// Amounts stay numeric.
func (e *Exporter) WriteJSON(w io.Writer, txns []model.Transaction) error {
	records := make([]map[string]any, 0, len(txns))
	for _, t := range txns {
		rec := make(map[string]any, len(e.Columns))
		for _, c := range e.Columns {
			if c == ColumnAmount {
				rec[string(c)] = t.Amount
				continue
			}
			rec[string(c)] = e.value(t, c)
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	return nil
}
