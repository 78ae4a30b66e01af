package output

import (
	"bytes"
	"strings"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// Delimiter separates columns in the compliance report.
const Delimiter = "\t"

// ComplianceHeader is the first row of the compliance report.
var ComplianceHeader = []string{"Date", "Description", "Amount Due", "Amount Paid", "Notes"}

// ComplianceFormatter renders the tab-delimited compliance report: every
// obligation and payment in date order followed by a totals row.
type ComplianceFormatter struct{}

func (ComplianceFormatter) Name() string { return "tsv" }

func (c ComplianceFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	var buf bytes.Buffer
	for _, row := range ComplianceRows(r.Ledger) {
		buf.WriteString(strings.Join(row, Delimiter))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ComplianceRows builds the compliance report as rows of cells, header and
// totals included.
func ComplianceRows(ledger *domain.Ledger) [][]string {
	rows := [][]string{ComplianceHeader}
	if ledger == nil {
		ledger = &domain.Ledger{}
	}
	for _, e := range ledger.Entries {
		due, paid := "", ""
		if e.IsDue() {
			due = FormatCurrency(e.Amount)
		} else {
			paid = FormatCurrency(e.Amount)
		}
		rows = append(rows, []string{FormatDate(e.Date), e.Description, due, paid, e.Note})
	}
	return append(rows, []string{
		"",
		"TOTALS",
		FormatCurrency(ledger.TotalDue()),
		FormatCurrency(ledger.TotalPaid()),
		"Arrearage: " + FormatCurrency(ledger.Arrearage()),
	})
}
