package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Descriptions used on generated and parsed records.
const (
	DescriptionChildSupport       = "Child support due"
	DescriptionMedicalSupport     = "Medical support due"
	DescriptionDentalSupport      = "Dental support due"
	DescriptionConfirmedArrearage = "Confirmed arrearage"
	DescriptionPaymentMade        = "Payment made"
)

// recordNamespace seeds the name-based IDs so the same input always yields
// the same record IDs.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rgehrsitz/cspay/records"))

// DuePayment is a single obligation that comes due on DueDate.
type DuePayment struct {
	ID          uuid.UUID       `json:"id"`
	DueDate     time.Time       `json:"due_date"`
	Description string          `json:"description"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	Note        string          `json:"note,omitempty"`
}

// NewDuePayment creates a due record with a stable ID derived from its
// description and due date.
func NewDuePayment(dueDate time.Time, description string, amount decimal.Decimal, note string) DuePayment {
	return DuePayment{
		ID:          DueID(description, dueDate),
		DueDate:     dueDate,
		Description: description,
		AmountDue:   amount,
		Note:        note,
	}
}

// DueID derives the ID for a due record.
func DueID(description string, dueDate time.Time) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte("due|"+description+"|"+dueDate.Format(DateLayout)))
}

// MadePayment is a payment the obligor actually made. Row is the 1-based
// row of the source text it was parsed from, or zero.
type MadePayment struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Row         int             `json:"row,omitempty"`
}

// NewMadePayment creates a payment record with a stable ID derived from its
// source row, date and amount.
func NewMadePayment(row int, date time.Time, amount decimal.Decimal) MadePayment {
	key := fmt.Sprintf("made|%d|%s|%s", row, date.Format(DateLayout), amount.String())
	return MadePayment{
		ID:          uuid.NewSHA1(recordNamespace, []byte(key)),
		Date:        date,
		Description: DescriptionPaymentMade,
		Amount:      amount,
		Row:         row,
	}
}
