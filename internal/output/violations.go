package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/cspay/internal/calculation"
)

const narrativeTemplate = "According to the terms of the Child Support Order, Obligor was required to pay %[1]s to Obligee on %[2]s. " +
	"Obligor violated the Child Support Order by failing to pay the full amount of %[1]s on or before %[2]s. " +
	"Obligor instead paid a total of %[3]s, leaving %[4]s in arrears."

// Narrative renders the pleading paragraph for one violation.
func Narrative(v calculation.Violation) string {
	return fmt.Sprintf(narrativeTemplate,
		FormatCurrency(v.AmountDue),
		v.DueDate.Format(NarrativeDateLayout),
		FormatCurrency(v.AmountPaid),
		FormatCurrency(v.Remaining),
	)
}

// Narratives renders one paragraph per violation, in order.
func Narratives(violations []calculation.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, Narrative(v))
	}
	return out
}

// ViolationsFormatter renders numbered violation paragraphs.
type ViolationsFormatter struct{}

func (ViolationsFormatter) Name() string { return "violations" }

func (v ViolationsFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	var buf bytes.Buffer
	for i, text := range Narratives(r.Violations) {
		fmt.Fprintf(&buf, "VIOLATION %d: %s\n\n", i+1, text)
	}
	return buf.Bytes(), nil
}
