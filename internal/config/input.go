package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/rgehrsitz/cspay/internal/payments"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of case files
type InputParser struct {
	Payments *payments.Parser
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Payments: payments.NewParser()}
}

// LoadFromFile loads a case from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Case, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	c, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	// Payment files are relative to the case file.
	if c.PaymentsFile != "" && !filepath.IsAbs(c.PaymentsFile) {
		c.PaymentsFile = filepath.Join(filepath.Dir(filename), c.PaymentsFile)
	}
	return c, nil
}

// Parse decodes and validates a case from YAML bytes
func (ip *InputParser) Parse(data []byte) (*domain.Case, error) {
	var c domain.Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&c)

	if err := ip.ValidateCase(&c); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &c, nil
}

// ApplyDefaults fills in optional settings
func ApplyDefaults(c *domain.Case) {
	if c.PaymentsPerYear == 0 {
		c.PaymentsPerYear = calculation.Monthly
	}
	if c.Allocation == "" {
		c.Allocation = domain.OldestFirst
	}
	c.StartDate = domain.DateOnly(c.StartDate)
	for i := range c.Children {
		c.Children[i].DateOfBirth = domain.DateOnly(c.Children[i].DateOfBirth)
	}
}

// ValidateCase validates a loaded case
func (ip *InputParser) ValidateCase(c *domain.Case) error {
	if len(c.Children) == 0 {
		return &domain.ConfigurationError{Parameter: "children", Reason: "at least one child is required"}
	}
	if err := calculation.ValidateChildren(c.Children); err != nil {
		return err
	}
	if c.StartDate.IsZero() {
		return &domain.ConfigurationError{Parameter: "start_date", Reason: "is required"}
	}
	if c.ChildrenNotBeforeCourt < 0 {
		return &domain.ConfigurationError{Parameter: "children_not_before_court", Reason: "must not be negative"}
	}
	if _, err := calculation.NewCadence(c.PaymentsPerYear, c.MonthDays, c.StartDate); err != nil {
		return err
	}
	if err := calculation.ValidateStrategy(c.Allocation); err != nil {
		return err
	}
	return ip.validateObligations(&c.Obligations)
}

// validateObligations validates the ordered amounts
func (ip *InputParser) validateObligations(o *domain.Obligations) error {
	if !o.ChildSupport.IsPositive() {
		return &domain.ConfigurationError{Parameter: "obligations.child_support", Reason: "must be positive"}
	}
	optional := []struct {
		name   string
		amount *decimal.Decimal
	}{
		{"obligations.medical_support", o.MedicalSupport},
		{"obligations.dental_support", o.DentalSupport},
		{"obligations.confirmed_arrearage", o.ConfirmedArrearage},
	}
	for _, opt := range optional {
		if opt.amount != nil && opt.amount.IsNegative() {
			return &domain.ConfigurationError{Parameter: opt.name, Reason: "cannot be negative"}
		}
	}
	if o.ArrearageDate != nil && (o.ConfirmedArrearage == nil || o.ConfirmedArrearage.IsZero()) {
		return &domain.ConfigurationError{Parameter: "obligations.arrearage_date", Reason: "requires a confirmed arrearage"}
	}
	return nil
}

// LoadPayments loads the payments made for a case. An explicit filename
// overrides the case's payments_file; with neither, there are no payments.
func (ip *InputParser) LoadPayments(c *domain.Case, filename string) ([]domain.MadePayment, error) {
	if filename == "" {
		filename = c.PaymentsFile
	}
	if filename == "" {
		return nil, nil
	}
	return ip.Payments.LoadFromFile(filename)
}
