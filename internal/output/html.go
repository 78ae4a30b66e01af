package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// HTMLFormatter produces a printable HTML compliance report with the
// violation paragraphs appended.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"date": FormatDate,
	"inc":  func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	var buf bytes.Buffer
	ledger := r.Ledger
	if ledger == nil {
		ledger = &domain.Ledger{}
	}
	data := struct {
		*calculation.Reconciliation
		Ledger     *domain.Ledger
		Header     []string
		HasCutoff  bool
		Narratives []string
	}{r, ledger, ComplianceHeader, !r.Cutoff.IsZero(), Narratives(r.Violations)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
