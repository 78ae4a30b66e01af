package output

import (
	"encoding/json"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/shopspring/decimal"
)

// JSONFormatter renders the full reconciliation, including totals.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

type jsonTotals struct {
	Due         decimal.Decimal `json:"due"`
	Paid        decimal.Decimal `json:"paid"`
	Arrearage   decimal.Decimal `json:"arrearage"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Unapplied   decimal.Decimal `json:"unapplied"`
}

func (j JSONFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	doc := struct {
		*calculation.Reconciliation
		Totals *jsonTotals `json:"totals,omitempty"`
	}{Reconciliation: r}
	if r.Ledger != nil {
		doc.Totals = &jsonTotals{
			Due:         r.Ledger.TotalDue(),
			Paid:        r.Ledger.TotalPaid(),
			Arrearage:   r.Ledger.Arrearage(),
			Outstanding: r.Ledger.Outstanding(),
			Unapplied:   r.Ledger.Unapplied(),
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
