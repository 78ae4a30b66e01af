package output

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// XMLFormatter renders the reconciliation as an XML document for exchange
// with filing systems.
type XMLFormatter struct{}

func (XMLFormatter) Name() string { return "xml" }

func (x XMLFormatter) Format(r *calculation.Reconciliation) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ComplianceReport")
	root.CreateAttr("case", r.CaseName)
	root.CreateAttr("mode", r.Mode)
	root.CreateAttr("strategy", string(r.Strategy))
	if !r.Cutoff.IsZero() {
		root.CreateAttr("cutoff", r.Cutoff.Format(domain.DateLayout))
	}

	ledger := r.Ledger
	if ledger == nil {
		ledger = &domain.Ledger{}
	}

	entries := root.CreateElement("Ledger")
	for _, e := range ledger.Entries {
		el := entries.CreateElement(xmlEntryName(e))
		el.CreateAttr("id", e.ID.String())
		el.CreateAttr("date", e.Date.Format(domain.DateLayout))
		el.CreateElement("Description").SetText(e.Description)
		el.CreateElement("Amount").SetText(e.Amount.StringFixed(2))
		el.CreateElement("Remaining").SetText(e.Remaining.StringFixed(2))
		if e.Note != "" {
			el.CreateElement("Note").SetText(e.Note)
		}
		if len(e.Applications) == 0 {
			continue
		}
		apps := el.CreateElement("Applications")
		for _, a := range e.Applications {
			app := apps.CreateElement("Application")
			app.CreateAttr("payment", a.PaymentID.String())
			app.CreateAttr("date", a.Date.Format(domain.DateLayout))
			app.CreateAttr("amount", a.Amount.StringFixed(2))
			app.CreateAttr("leaves", a.AmountLeftAfter.StringFixed(2))
		}
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Due").SetText(ledger.TotalDue().StringFixed(2))
	totals.CreateElement("Paid").SetText(ledger.TotalPaid().StringFixed(2))
	totals.CreateElement("Arrearage").SetText(ledger.Arrearage().StringFixed(2))

	violations := root.CreateElement("Violations")
	violations.CreateAttr("count", strconv.Itoa(len(r.Violations)))
	for _, v := range r.Violations {
		el := violations.CreateElement("Violation")
		el.CreateAttr("due", v.DueID.String())
		el.CreateAttr("date", v.DueDate.Format(domain.DateLayout))
		el.CreateElement("Description").SetText(v.Description)
		el.CreateElement("AmountDue").SetText(v.AmountDue.StringFixed(2))
		el.CreateElement("AmountPaid").SetText(v.AmountPaid.StringFixed(2))
		el.CreateElement("Remaining").SetText(v.Remaining.StringFixed(2))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func xmlEntryName(e domain.LedgerEntry) string {
	if e.IsDue() {
		return "Obligation"
	}
	return "Payment"
}
