package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionMode selects how far a schedule is materialized.
type ProjectionMode int

const (
	// ThroughCutoff emits due dates up to and including the cutoff date.
	ThroughCutoff ProjectionMode = iota
	// FullProjection emits every due date until the last child ages out.
	FullProjection
)

func (m ProjectionMode) String() string {
	switch m {
	case ThroughCutoff:
		return "through_cutoff"
	case FullProjection:
		return "full_projection"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// ScheduleRequest describes one obligation's schedule.
type ScheduleRequest struct {
	InitialAmount   decimal.Decimal
	PaymentsPerYear int
	MonthDays       []int
	StartDate       time.Time
	Stepdowns       []domain.StepdownEvent
	Description     string
	// FixedPayment charges InitialAmount on every due date regardless of
	// step-downs (flat insurance reimbursements).
	FixedPayment bool
	Mode         ProjectionMode
	// Cutoff is required in ThroughCutoff mode.
	Cutoff time.Time
}

// ScheduleGenerator expands step-down events into due payments.
type ScheduleGenerator struct {
	Logger Logger
}

// NewScheduleGenerator creates a schedule generator
func NewScheduleGenerator() *ScheduleGenerator {
	return &ScheduleGenerator{Logger: NopLogger{}}
}

// Generate walks the step-down events in order and emits one due payment
// per cadence step from the start date through each event's last payment
// date. The payment following a step-down notes which child aged out.
// req.Stepdowns is read, never modified.
func (g *ScheduleGenerator) Generate(req ScheduleRequest) ([]domain.DuePayment, error) {
	log := loggerOrNop(g.Logger)

	if req.StartDate.IsZero() {
		return nil, &domain.ConfigurationError{Parameter: "start_date", Reason: "is required"}
	}
	var cutoff time.Time
	switch req.Mode {
	case ThroughCutoff:
		if req.Cutoff.IsZero() {
			return nil, &domain.ConfigurationError{Parameter: "cutoff", Reason: "is required when projecting through a cutoff date"}
		}
		cutoff = domain.DateOnly(req.Cutoff)
	case FullProjection:
	default:
		return nil, &domain.ConfigurationError{Parameter: "mode", Reason: req.Mode.String()}
	}

	cursor := domain.DateOnly(req.StartDate)
	cadence, err := NewCadence(req.PaymentsPerYear, req.MonthDays, cursor)
	if err != nil {
		return nil, err
	}

	var schedule []domain.DuePayment
	note := ""
	for _, event := range req.Stepdowns {
		amount := event.PaymentAmount
		if req.FixedPayment {
			amount = req.InitialAmount
		}

		for !cursor.After(event.LastPaymentDate) {
			if req.Mode == ThroughCutoff && cursor.After(cutoff) {
				log.Debugf("%s: stopped at cutoff %s", req.Description, cutoff.Format(domain.DateLayout))
				return schedule, nil
			}
			schedule = append(schedule, domain.NewDuePayment(cursor, req.Description, amount, note))
			note = ""

			next := cadence.Next(cursor)
			if !next.After(cursor) {
				return nil, fmt.Errorf("cadence did not advance past %s", cursor.Format(domain.DateLayout))
			}
			cursor = next
		}
		note = fmt.Sprintf("%s aged out.", event.Child.Name)
	}

	log.Debugf("%s: %d payments generated", req.Description, len(schedule))
	return schedule, nil
}
