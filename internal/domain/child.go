package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Child is a child covered by the support order. Extra carries any
// additional fields from the case file through unchanged.
type Child struct {
	Name        string         `yaml:"name" json:"name"`
	DateOfBirth time.Time      `yaml:"date_of_birth" json:"date_of_birth"`
	Extra       map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// Age calculates the age of the child at a given date
func (c Child) Age(atDate time.Time) int {
	age := atDate.Year() - c.DateOfBirth.Year()
	if atDate.Month() < c.DateOfBirth.Month() ||
		(atDate.Month() == c.DateOfBirth.Month() && atDate.Day() < c.DateOfBirth.Day()) {
		age--
	}
	return age
}

// StepdownEvent marks the last date on which PaymentAmount applies before
// Child leaves the roster of supported children.
type StepdownEvent struct {
	Child           Child           `json:"child"`
	LastPaymentDate time.Time       `json:"last_payment_date"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
}
