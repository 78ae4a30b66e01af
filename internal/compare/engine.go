package compare

import (
	"fmt"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// CompareEngine reconciles one case under several allocation strategies
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Run calculation.RunOptions
	// Base is the strategy to compare against; empty means the case's own.
	Base domain.AllocationStrategy
	// Alternatives defaults to every other known strategy.
	Alternatives []domain.AllocationStrategy
}

// Strategies lists every allocation strategy in a stable order.
var Strategies = []domain.AllocationStrategy{domain.OldestFirst, domain.NearestFirst}

// Compare reconciles the case once per strategy and compares each
// alternative with the base run
func (ce *CompareEngine) Compare(c *domain.Case, made []domain.MadePayment, options CompareOptions) (*ComparisonSet, error) {
	if c == nil {
		return nil, fmt.Errorf("case cannot be nil")
	}

	base := options.Base
	if base == "" {
		base = c.Allocation
	}
	if base == "" {
		base = domain.OldestFirst
	}

	alternatives := options.Alternatives
	if len(alternatives) == 0 {
		for _, s := range Strategies {
			if s != base {
				alternatives = append(alternatives, s)
			}
		}
	}

	baseRun, err := ce.run(c, made, options.Run, base)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile base strategy: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRun)

	results := []ComparisonResult{}
	for _, strategy := range alternatives {
		altRun, err := ce.run(c, made, options.Run, strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile strategy %s: %w", strategy, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(altRun)
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		CaseName:           c.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) run(c *domain.Case, made []domain.MadePayment, opts calculation.RunOptions, strategy domain.AllocationStrategy) (*calculation.Reconciliation, error) {
	opts.Strategy = strategy
	return ce.CalcEngine.Reconcile(c, made, opts)
}
