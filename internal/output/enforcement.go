package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/cspay/internal/calculation"
)

// EnforcementFormatter renders each obligation with its original and
// remaining amounts, followed by the payments applied to it.
type EnforcementFormatter struct{}

func (EnforcementFormatter) Name() string { return "enforcement" }

func (e EnforcementFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	var buf bytes.Buffer
	if r.Ledger == nil {
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "%-10s %-20s %15s %15s\n", "Date", "Description", "Amount", "Remaining")
	for _, entry := range r.Ledger.DueEntries() {
		fmt.Fprintf(&buf, "%-10s %-20s %15s %15s\n",
			FormatDate(entry.Date),
			entry.Description,
			FormatCurrency(entry.Amount),
			FormatCurrency(entry.Remaining),
		)
		for _, a := range entry.Applications {
			fmt.Fprintf(&buf, "%s%s %15s %15s\n",
				strings.Repeat(" ", 10),
				FormatDate(a.Date),
				FormatCurrency(a.Amount),
				FormatCurrency(a.AmountLeftAfter),
			)
		}
	}
	fmt.Fprintf(&buf, "\nOutstanding: %s\n", FormatCurrency(r.Ledger.Outstanding()))
	if unapplied := r.Ledger.Unapplied(); unapplied.IsPositive() {
		fmt.Fprintf(&buf, "Unapplied payments: %s\n", FormatCurrency(unapplied))
	}
	return buf.Bytes(), nil
}
