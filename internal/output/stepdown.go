package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// StepdownHeader is the first row of the step-down report.
var StepdownHeader = []string{"Child", "Date of Birth", "Last Payment Date", "Payment Amount"}

// StepdownRows builds the step-down report as rows of cells.
func StepdownRows(events []domain.StepdownEvent) [][]string {
	rows := [][]string{StepdownHeader}
	for _, e := range events {
		rows = append(rows, []string{
			e.Child.Name,
			FormatDate(e.Child.DateOfBirth),
			FormatDate(e.LastPaymentDate),
			FormatCurrency(e.PaymentAmount),
		})
	}
	return rows
}

// FormatStepdowns renders step-down events as tsv, json or table.
func FormatStepdowns(events []domain.StepdownEvent, format string) ([]byte, error) {
	switch GetFormatName(format) {
	case "json":
		return json.MarshalIndent(events, "", "  ")
	case "table":
		rows := StepdownRows(events)
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(rows[0]...).
			Rows(rows[1:]...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return tableHeaderStyle
				case col == 3:
					return tableMoneyStyle
				default:
					return tableCellStyle
				}
			})
		return []byte(tbl.String() + "\n"), nil
	case "tsv":
		var buf bytes.Buffer
		for _, row := range StepdownRows(events) {
			buf.WriteString(strings.Join(row, Delimiter))
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, &domain.ConfigurationError{Parameter: "format", Reason: fmt.Sprintf("%q is not supported for step-down reports", format)}
	}
}

// GetFormatName resolves aliases to a registered format name.
func GetFormatName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		return target
	}
	return name
}
