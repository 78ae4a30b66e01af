package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// AgeOfMajority is the age at which a child ages out of support.
	AgeOfMajority = 18
	// StepdownMonth and StepdownDay give the last day support is owed for a
	// child: the end of the school year in which the child turns 18.
	StepdownMonth = time.June
	StepdownDay   = 30
)

// StepdownCalculator derives the step-down schedule for a roster of
// children.
type StepdownCalculator struct {
	Logger Logger
}

// NewStepdownCalculator creates a step-down calculator
func NewStepdownCalculator() *StepdownCalculator {
	return &StepdownCalculator{Logger: NopLogger{}}
}

// Compute returns one step-down event per child, sorted by last payment
// date. Children are removed from the roster oldest first; each event's
// amount is the guideline amount owed while that child is still counted.
// The caller's slice is not modified.
func (sc *StepdownCalculator) Compute(children []domain.Child, initial decimal.Decimal, notBeforeCourt int) ([]domain.StepdownEvent, error) {
	log := loggerOrNop(sc.Logger)

	if err := ValidateChildren(children); err != nil {
		return nil, err
	}
	if notBeforeCourt < 0 {
		return nil, &domain.ConfigurationError{Parameter: "children_not_before_court", Reason: "must not be negative"}
	}

	sorted := append([]domain.Child(nil), children...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateOfBirth.Before(sorted[j].DateOfBirth)
	})

	initialCount := len(sorted)
	events := make([]domain.StepdownEvent, 0, initialCount)
	for i, child := range sorted {
		remaining := initialCount - i - 1
		event := domain.StepdownEvent{
			Child:           child,
			LastPaymentDate: StepdownDate(child.DateOfBirth),
			PaymentAmount:   StepdownAmount(initial, initialCount, remaining, notBeforeCourt),
		}
		log.Debugf("stepdown: %s through %s at %s (%d remaining)",
			child.Name, event.LastPaymentDate.Format(domain.DateLayout), event.PaymentAmount.StringFixed(2), remaining)
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].LastPaymentDate.Before(events[j].LastPaymentDate)
	})
	return events, nil
}

// StepdownDate returns the last day support is owed for a child born on
// dob. A child who turns 18 in January through June ages out on June 30 of
// that year; one who turns 18 later ages out on June 30 of the next year.
func StepdownDate(dob time.Time) time.Time {
	majority := domain.AddYears(domain.DateOnly(dob), AgeOfMajority)
	year := majority.Year()
	if majority.Month() > StepdownMonth {
		year++
	}
	return domain.Date(year, StepdownMonth, StepdownDay)
}

// ValidateChildren checks that every child has a name and a date of birth.
func ValidateChildren(children []domain.Child) error {
	for i, child := range children {
		if child.Name == "" {
			return &domain.ValidationError{Index: i, Field: "name", Reason: "is required"}
		}
		if child.DateOfBirth.IsZero() {
			return &domain.ValidationError{Index: i, Name: child.Name, Field: "date_of_birth", Reason: "is required"}
		}
	}
	return nil
}
