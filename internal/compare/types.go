package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the key metrics of one allocation run
type ComparisonResult struct {
	Strategy domain.AllocationStrategy   `json:"strategy"`
	Result   *calculation.Reconciliation `json:"-"`

	// Key Metrics
	TotalDue       decimal.Decimal `json:"totalDue"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Unapplied      decimal.Decimal `json:"unapplied"`
	Violations     int             `json:"violations"`
	FullyPaid      int             `json:"fullyPaid"`
	EarliestUnpaid *time.Time      `json:"earliestUnpaid,omitempty"`

	// Comparison to Base
	ViolationsDiff  int             `json:"violationsDiff"`
	OutstandingDiff decimal.Decimal `json:"outstandingDiff"`
	// ChangedObligations counts obligations whose unpaid balance differs
	// from the base run.
	ChangedObligations int `json:"changedObligations"`
}

// ComparisonSet represents a base run and its alternatives
type ComparisonSet struct {
	CaseName           string             `json:"caseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from reconciliations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a reconciliation
func (mc *MetricsCalculator) CalculateMetrics(r *calculation.Reconciliation) ComparisonResult {
	result := ComparisonResult{
		Strategy:   r.Strategy,
		Result:     r,
		Violations: len(r.Violations),
	}
	if r.Ledger == nil {
		return result
	}

	result.TotalDue = r.Ledger.TotalDue()
	result.TotalPaid = r.Ledger.TotalPaid()
	result.Outstanding = r.Ledger.Outstanding()
	result.Unapplied = r.Ledger.Unapplied()

	for _, e := range r.Ledger.DueEntries() {
		if e.Remaining.IsZero() {
			result.FullyPaid++
			continue
		}
		if result.EarliestUnpaid == nil {
			d := e.Date
			result.EarliestUnpaid = &d
		}
	}
	return result
}

// CalculateComparison computes the differences between a run and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.ViolationsDiff = alt.Violations - base.Violations
	alt.OutstandingDiff = alt.Outstanding.Sub(base.Outstanding)
	alt.ChangedObligations = changedObligations(alt.Result, base.Result)
	return alt
}

func changedObligations(a, b *calculation.Reconciliation) int {
	if a == nil || b == nil || a.Ledger == nil || b.Ledger == nil {
		return 0
	}
	remaining := make(map[string]decimal.Decimal)
	for _, e := range b.Ledger.DueEntries() {
		remaining[e.ID.String()] = e.Remaining
	}
	changed := 0
	for _, e := range a.Ledger.DueEntries() {
		if r, ok := remaining[e.ID.String()]; !ok || !r.Equal(e.Remaining) {
			changed++
		}
	}
	return changed
}

// GenerateRecommendations summarizes how the alternatives differ from the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Fewest violations
	fewest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].Violations < fewest.Violations {
			fewest = &compSet.AlternativeResults[i]
		}
	}
	if fewest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Fewest Violations: %s reports %d violation(s) versus %d under %s",
				fewest.Strategy, fewest.Violations, base.Violations, base.Strategy))
	}

	// Oldest unpaid obligation
	oldest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EarliestUnpaid != nil && (oldest.EarliestUnpaid == nil || alt.EarliestUnpaid.Before(*oldest.EarliestUnpaid)) {
			oldest = alt
		}
	}
	if oldest != base && oldest.EarliestUnpaid != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Oldest Arrears: %s leaves obligations unpaid back to %s",
				oldest.Strategy, oldest.EarliestUnpaid.Format(domain.DateLayout)))
	}

	for _, alt := range compSet.AlternativeResults {
		if !alt.OutstandingDiff.IsZero() {
			recommendations = append(recommendations,
				fmt.Sprintf("Outstanding Differs: %s leaves %s more unpaid than %s",
					alt.Strategy, alt.OutstandingDiff.StringFixed(2), base.Strategy))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "All strategies report the same violations")
	}
	return recommendations
}
