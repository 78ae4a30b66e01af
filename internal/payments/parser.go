// Package payments converts payment history text into payments made.
//
// The input is the payment table copied from the state disbursement web
// site: one payment per line, tab-separated, with the payment date in the
// first column and the amount in the second. Any further columns are
// ignored.
package payments

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the MM/DD/YYYY layout of the date column.
	DateLayout = "01/02/2006"

	dateColumn   = 0
	amountColumn = 1
)

// Parser parses payment history text.
type Parser struct{}

// NewParser creates a new payment parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses tab-separated payment rows.
func (p *Parser) ParseString(tsv string) ([]domain.MadePayment, error) {
	return p.Parse(strings.NewReader(tsv))
}

// LoadFromFile reads and parses a payment history file.
func (p *Parser) LoadFromFile(filename string) ([]domain.MadePayment, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	payments, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payments in %s: %w", filename, err)
	}
	return payments, nil
}

// Parse reads payment rows from r and returns them sorted by date. Blank
// lines are skipped but still counted, so row numbers in errors match the
// line numbers of the source. The first malformed row aborts the parse.
func (p *Parser) Parse(r io.Reader) ([]domain.MadePayment, error) {
	var payments []domain.MadePayment

	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		payment, err := parseRow(row, line)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
	return payments, nil
}

func parseRow(row int, line string) (domain.MadePayment, error) {
	fields := strings.Split(line, "\t")

	rawDate := strings.TrimSpace(fields[dateColumn])
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return domain.MadePayment{}, &domain.ParseError{Row: row, Field: "date", Value: rawDate, Err: err}
	}

	if len(fields) <= amountColumn {
		return domain.MadePayment{}, &domain.ParseError{Row: row, Field: "payment amount", Err: fmt.Errorf("missing column")}
	}
	rawAmount := fields[amountColumn]
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return domain.MadePayment{}, &domain.ParseError{Row: row, Field: "payment amount", Value: rawAmount, Err: err}
	}

	return domain.NewMadePayment(row, date, amount), nil
}

// ParseAmount parses a currency string such as "$1,234.50" or "387.50".
// Negative amounts are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}
