package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/cspay/internal/calculation"
)

// CSVFormatter renders the ledger as machine-readable CSV with plain
// decimal amounts and ISO dates.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "Kind", "Description", "Amount", "Remaining", "Note", "ID"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if r.Ledger != nil {
		for _, e := range r.Ledger.Entries {
			row := []string{
				e.Date.Format("2006-01-02"),
				string(e.Kind),
				e.Description,
				e.Amount.StringFixed(2),
				e.Remaining.StringFixed(2),
				e.Note,
				e.ID.String(),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
