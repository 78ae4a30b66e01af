package output

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ReportDateLayout is used for dates in tabular reports.
const ReportDateLayout = "01/02/2006"

// NarrativeDateLayout is used for dates in violation paragraphs.
const NarrativeDateLayout = "January 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats an amount as US currency with grouping, e.g.
// $1,234.50 or -$300.00.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.RoundBank(2)
	s := "$" + printer.Sprint(number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(2)))
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatDate formats a date as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(ReportDateLayout)
}
