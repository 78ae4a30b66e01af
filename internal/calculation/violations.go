package calculation

import (
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

// Violation is an obligation that was not paid in full.
type Violation struct {
	DueID       uuid.UUID       `json:"due_id"`
	DueDate     time.Time       `json:"due_date"`
	Description string          `json:"description"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// Violations lists every due entry with an unpaid balance, in ledger order.
func Violations(ledger *domain.Ledger) []Violation {
	if ledger == nil {
		return nil
	}
	var out []Violation
	for _, e := range ledger.Entries {
		if !e.IsDue() || !e.Remaining.IsPositive() {
			continue
		}
		out = append(out, Violation{
			DueID:       e.ID,
			DueDate:     e.Date,
			Description: e.Description,
			AmountDue:   e.Amount,
			AmountPaid:  e.Settled(),
			Remaining:   e.Remaining,
		})
	}
	return out
}
