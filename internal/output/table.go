package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/cspay/internal/calculation"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableMoneyStyle  = tableCellStyle.Align(lipgloss.Right)
	tableTotalsStyle = tableMoneyStyle.Bold(true)
)

// TableFormatter renders the compliance report as a bordered console table.
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

func (t TableFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	rows := ComplianceRows(r.Ledger)
	last := len(rows) - 2 // index of the totals row within the body

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(rows[0]...).
		Rows(rows[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row == last:
				return tableTotalsStyle
			case col == 2 || col == 3:
				return tableMoneyStyle
			default:
				return tableCellStyle
			}
		})

	var buf bytes.Buffer
	if r.CaseName != "" {
		fmt.Fprintln(&buf, tableHeaderStyle.Render(r.CaseName))
	}
	fmt.Fprintln(&buf, tbl.String())
	fmt.Fprintf(&buf, "%d violation(s)\n", len(r.Violations))
	return buf.Bytes(), nil
}
