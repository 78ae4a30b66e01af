package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/rgehrsitz/cspay/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing strategies
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("ALLOCATION STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Case: %s\n", compSet.CaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Violations",
		numWidth, "Outstanding",
		numWidth, "Fully Paid",
		numWidth, "Oldest Unpaid"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Strategy))
			sb.WriteString(fmt.Sprintf("  Violations:         %s%d\n", tf.deltaSymbol(alt.ViolationsDiff), alt.ViolationsDiff))
			sb.WriteString(fmt.Sprintf("  Changed Balances:   %d\n", alt.ChangedObligations))
			if !alt.OutstandingDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Outstanding:        %s\n", output.FormatCurrency(alt.OutstandingDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single strategy row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := string(result.Strategy)
	if isBase {
		name += " (base)"
	}

	oldest := "none"
	if result.EarliestUnpaid != nil {
		oldest = result.EarliestUnpaid.Format(domain.DateLayout)
	}

	return fmt.Sprintf("%-*s %*d %*s %*d %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.Violations,
		numWidth, output.FormatCurrency(result.Outstanding),
		numWidth, result.FullyPaid,
		numWidth, oldest)
}

// deltaSymbol returns a + for positive deltas
func (tf *TableFormatter) deltaSymbol(delta int) string {
	if delta > 0 {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each strategy
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base: %s (%d) | ", compSet.BaseResult.Strategy, compSet.BaseResult.Violations))
	}

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.ViolationsDiff != 0 {
			change = fmt.Sprintf("%s%d", tf.deltaSymbol(alt.ViolationsDiff), alt.ViolationsDiff)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Strategy, change))
	}

	return sb.String()
}
