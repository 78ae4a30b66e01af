package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationStrategy selects which outstanding obligation a payment is
// applied to first.
type AllocationStrategy string

const (
	// OldestFirst applies each payment to the oldest unpaid obligation due
	// on or before the payment date.
	OldestFirst AllocationStrategy = "oldest_first"
	// NearestFirst applies each payment to the most recent unpaid
	// obligation due on or before the payment date.
	NearestFirst AllocationStrategy = "nearest_first"
)

// Obligations lists the amounts ordered by the court. Nil or zero medical
// and dental amounts mean no such obligation.
type Obligations struct {
	ChildSupport       decimal.Decimal  `yaml:"child_support" json:"child_support"`
	MedicalSupport     *decimal.Decimal `yaml:"medical_support,omitempty" json:"medical_support,omitempty"`
	DentalSupport      *decimal.Decimal `yaml:"dental_support,omitempty" json:"dental_support,omitempty"`
	ConfirmedArrearage *decimal.Decimal `yaml:"confirmed_arrearage,omitempty" json:"confirmed_arrearage,omitempty"`
	ArrearageDate      *time.Time       `yaml:"arrearage_date,omitempty" json:"arrearage_date,omitempty"`
}

// Case is the complete input for one support order.
type Case struct {
	Name                   string             `yaml:"name" json:"name"`
	StartDate              time.Time          `yaml:"start_date" json:"start_date"`
	ChildrenNotBeforeCourt int                `yaml:"children_not_before_court" json:"children_not_before_court"`
	PaymentsPerYear        int                `yaml:"payments_per_year,omitempty" json:"payments_per_year,omitempty"`
	MonthDays              []int              `yaml:"month_days,omitempty" json:"month_days,omitempty"`
	Obligations            Obligations        `yaml:"obligations" json:"obligations"`
	Allocation             AllocationStrategy `yaml:"allocation,omitempty" json:"allocation,omitempty"`
	PaymentsFile           string             `yaml:"payments_file,omitempty" json:"payments_file,omitempty"`
	Children               []Child            `yaml:"children" json:"children"`
}
