package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
)

// RunOptions controls how far schedules are projected and how payments are
// allocated for a single run.
type RunOptions struct {
	Mode   ProjectionMode
	Cutoff time.Time
	// Strategy overrides the case's allocation strategy when set.
	Strategy domain.AllocationStrategy
}

// Reconciliation is the result of allocating a case's payments against its
// schedule.
type Reconciliation struct {
	CaseName   string                    `json:"case_name"`
	Mode       string                    `json:"mode"`
	Cutoff     time.Time                 `json:"cutoff,omitempty"`
	Strategy   domain.AllocationStrategy `json:"strategy"`
	Due        []domain.DuePayment       `json:"due"`
	Ledger     *domain.Ledger            `json:"ledger"`
	Violations []Violation               `json:"violations"`
}

// CalculationEngine orchestrates the schedule and allocation calculations
// for a case.
type CalculationEngine struct {
	Stepdowns *StepdownCalculator
	Generator *ScheduleGenerator
	Combined  *CombinedScheduleBuilder
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	ce := &CalculationEngine{
		Stepdowns: NewStepdownCalculator(),
		Generator: NewScheduleGenerator(),
	}
	ce.Combined = &CombinedScheduleBuilder{Stepdowns: ce.Stepdowns, Generator: ce.Generator}
	ce.SetLogger(nil)
	return ce
}

// SetLogger sets the logger on the engine and every calculator it owns. A
// nil logger installs NopLogger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	l = loggerOrNop(l)
	ce.Logger = l
	ce.Stepdowns.Logger = l
	ce.Generator.Logger = l
	ce.Combined.Logger = l
}

// StepdownSchedule computes the case's step-down events.
func (ce *CalculationEngine) StepdownSchedule(c *domain.Case) ([]domain.StepdownEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("case cannot be nil")
	}
	events, err := ce.Stepdowns.Compute(c.Children, c.Obligations.ChildSupport, c.ChildrenNotBeforeCourt)
	if err != nil {
		return nil, fmt.Errorf("stepdown schedule for %q: %w", c.Name, err)
	}
	return events, nil
}

// DueSchedule builds the combined schedule of obligations for the case.
func (ce *CalculationEngine) DueSchedule(c *domain.Case, opts RunOptions) ([]domain.DuePayment, error) {
	if c == nil {
		return nil, fmt.Errorf("case cannot be nil")
	}
	due, err := ce.Combined.Build(CombinedRequestForCase(c, opts))
	if err != nil {
		return nil, fmt.Errorf("payment schedule for %q: %w", c.Name, err)
	}
	return due, nil
}

// Reconcile builds the case's schedule, allocates the payments made against
// it, and extracts the violations.
func (ce *CalculationEngine) Reconcile(c *domain.Case, made []domain.MadePayment, opts RunOptions) (*Reconciliation, error) {
	due, err := ce.DueSchedule(c, opts)
	if err != nil {
		return nil, err
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = c.Allocation
	}
	allocator, err := NewPaymentAllocator(strategy)
	if err != nil {
		return nil, err
	}
	allocator.Logger = ce.Logger

	ledger := allocator.Allocate(due, made)
	violations := Violations(ledger)
	ce.Logger.Infof("%s: %d obligations, %d payments, %d violations, %s outstanding",
		c.Name, len(due), len(made), len(violations), ledger.Outstanding().StringFixed(2))

	result := &Reconciliation{
		CaseName:   c.Name,
		Mode:       opts.Mode.String(),
		Strategy:   allocator.Strategy,
		Due:        due,
		Ledger:     ledger,
		Violations: violations,
	}
	if opts.Mode == ThroughCutoff {
		result.Cutoff = domain.DateOnly(opts.Cutoff)
	}
	return result, nil
}

// CombinedRequestForCase maps a case onto a combined schedule request.
func CombinedRequestForCase(c *domain.Case, opts RunOptions) CombinedRequest {
	req := CombinedRequest{
		Children:           c.Children,
		SupportAmount:      c.Obligations.ChildSupport,
		MedicalAmount:      c.Obligations.MedicalSupport,
		DentalAmount:       c.Obligations.DentalSupport,
		ConfirmedArrearage: c.Obligations.ConfirmedArrearage,
		StartDate:          c.StartDate,
		NotBeforeCourt:     c.ChildrenNotBeforeCourt,
		PaymentsPerYear:    c.PaymentsPerYear,
		MonthDays:          c.MonthDays,
		Mode:               opts.Mode,
		Cutoff:             opts.Cutoff,
	}
	if c.Obligations.ArrearageDate != nil {
		req.ArrearageDate = *c.Obligations.ArrearageDate
	}
	return req
}
