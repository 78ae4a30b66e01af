package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

// CombinedRequest describes every obligation in a support order.
type CombinedRequest struct {
	Children      []domain.Child
	SupportAmount decimal.Decimal
	// MedicalAmount and DentalAmount are flat monthly reimbursements; nil
	// or zero omits the obligation.
	MedicalAmount *decimal.Decimal
	DentalAmount  *decimal.Decimal
	// ConfirmedArrearage is a previously adjudicated balance carried in as
	// a single due record dated ArrearageDate (StartDate when zero).
	ConfirmedArrearage *decimal.Decimal
	ArrearageDate      time.Time
	StartDate          time.Time
	NotBeforeCourt     int
	// PaymentsPerYear defaults to Monthly when zero.
	PaymentsPerYear int
	MonthDays       []int
	Mode            ProjectionMode
	Cutoff          time.Time
}

// CombinedScheduleBuilder merges the support, medical and dental schedules
// into one chronological schedule.
type CombinedScheduleBuilder struct {
	Stepdowns *StepdownCalculator
	Generator *ScheduleGenerator
	Logger    Logger
}

// NewCombinedScheduleBuilder creates a builder with default calculators
func NewCombinedScheduleBuilder() *CombinedScheduleBuilder {
	return &CombinedScheduleBuilder{
		Stepdowns: NewStepdownCalculator(),
		Generator: NewScheduleGenerator(),
		Logger:    NopLogger{},
	}
}

// Build generates each obligation's schedule and returns them merged,
// sorted by due date and then description.
func (b *CombinedScheduleBuilder) Build(req CombinedRequest) ([]domain.DuePayment, error) {
	log := loggerOrNop(b.Logger)

	stepdowns, err := b.Stepdowns.Compute(req.Children, req.SupportAmount, req.NotBeforeCourt)
	if err != nil {
		return nil, err
	}

	perYear := req.PaymentsPerYear
	if perYear == 0 {
		perYear = Monthly
	}
	base := ScheduleRequest{
		PaymentsPerYear: perYear,
		MonthDays:       req.MonthDays,
		StartDate:       req.StartDate,
		Mode:            req.Mode,
		Cutoff:          req.Cutoff,
	}

	obligations := []struct {
		amount      *decimal.Decimal
		description string
		fixed       bool
	}{
		{&req.SupportAmount, domain.DescriptionChildSupport, false},
		{req.MedicalAmount, domain.DescriptionMedicalSupport, true},
		{req.DentalAmount, domain.DescriptionDentalSupport, true},
	}

	var combined []domain.DuePayment
	for _, o := range obligations {
		if o.fixed && !isPositive(o.amount) {
			continue
		}
		sr := base
		sr.InitialAmount = *o.amount
		sr.Description = o.description
		sr.FixedPayment = o.fixed
		// Each schedule gets its own copy of the step-downs.
		sr.Stepdowns = append([]domain.StepdownEvent(nil), stepdowns...)

		schedule, err := b.Generator.Generate(sr)
		if err != nil {
			return nil, err
		}
		log.Infof("%s: %d payments", o.description, len(schedule))
		combined = append(combined, schedule...)
	}

	if isPositive(req.ConfirmedArrearage) {
		date := req.ArrearageDate
		if date.IsZero() {
			date = req.StartDate
		}
		date = domain.DateOnly(date)
		if req.Mode == FullProjection || !date.After(domain.DateOnly(req.Cutoff)) {
			combined = append(combined, domain.NewDuePayment(date, domain.DescriptionConfirmedArrearage, *req.ConfirmedArrearage, ""))
		}
	}

	SortDuePayments(combined)
	return combined, nil
}

// SortDuePayments orders payments by due date, then description.
func SortDuePayments(payments []domain.DuePayment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.Before(payments[j].DueDate)
		}
		return payments[i].Description < payments[j].Description
	})
}

func isPositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
