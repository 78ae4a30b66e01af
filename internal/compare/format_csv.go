package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/cspay/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Strategy",
		"Type",
		"Total Due",
		"Total Paid",
		"Outstanding",
		"Unapplied",
		"Violations",
		"Fully Paid",
		"Earliest Unpaid",
		"Violations Diff",
		"Outstanding Diff",
		"Changed Obligations",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	earliest := ""
	if result.EarliestUnpaid != nil {
		earliest = result.EarliestUnpaid.Format(domain.DateLayout)
	}
	return []string{
		string(result.Strategy),
		kind,
		result.TotalDue.StringFixed(2),
		result.TotalPaid.StringFixed(2),
		result.Outstanding.StringFixed(2),
		result.Unapplied.StringFixed(2),
		strconv.Itoa(result.Violations),
		strconv.Itoa(result.FullyPaid),
		earliest,
		strconv.Itoa(result.ViolationsDiff),
		result.OutstandingDiff.StringFixed(2),
		strconv.Itoa(result.ChangedObligations),
	}
}
