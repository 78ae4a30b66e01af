package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentAllocator applies payments made to obligations due.
type PaymentAllocator struct {
	Strategy domain.AllocationStrategy
	Logger   Logger
}

// NewPaymentAllocator creates an allocator. An empty strategy means
// OldestFirst.
func NewPaymentAllocator(strategy domain.AllocationStrategy) (*PaymentAllocator, error) {
	if strategy == "" {
		strategy = domain.OldestFirst
	}
	if err := ValidateStrategy(strategy); err != nil {
		return nil, err
	}
	return &PaymentAllocator{Strategy: strategy, Logger: NopLogger{}}, nil
}

// ValidateStrategy rejects unknown allocation strategies.
func ValidateStrategy(strategy domain.AllocationStrategy) error {
	switch strategy {
	case domain.OldestFirst, domain.NearestFirst:
		return nil
	default:
		return &domain.ConfigurationError{
			Parameter: "allocation",
			Reason:    fmt.Sprintf("unknown strategy %q (use %s or %s)", strategy, domain.OldestFirst, domain.NearestFirst),
		}
	}
}

// Allocate merges due and made records into a ledger and applies each
// payment, in date order, to unpaid obligations that came due on or before
// the payment date. A payment with nothing left to pay stays unapplied.
//
// The inputs are copied into the ledger and never modified, so allocation
// can be repeated on the same slices.
func (a *PaymentAllocator) Allocate(due []domain.DuePayment, made []domain.MadePayment) *domain.Ledger {
	log := loggerOrNop(a.Logger)

	entries := make([]domain.LedgerEntry, 0, len(due)+len(made))
	for _, d := range due {
		entries = append(entries, domain.DueEntry(d))
	}
	for _, m := range made {
		entries = append(entries, domain.MadeEntry(m))
	}
	SortLedgerEntries(entries)

	// Every due entry before oldest is paid in full; payments only ever
	// reduce balances, so the cursor never moves back.
	oldest := 0
	for i := range entries {
		payment := &entries[i]
		if !payment.IsMade() {
			continue
		}
		for payment.Remaining.IsPositive() {
			var j int
			if a.Strategy == domain.NearestFirst {
				j = nearestUnpaid(entries, i)
			} else {
				oldest = oldestUnpaid(entries, oldest, i)
				j = oldest
				if j == i {
					j = -1
				}
			}
			if j < 0 {
				log.Warnf("payment of %s on %s has %s unapplied",
					payment.Amount.StringFixed(2), payment.Date.Format(domain.DateLayout), payment.Remaining.StringFixed(2))
				break
			}
			applied := apply(payment, &entries[j])
			log.Debugf("applied %s from %s payment to %s due %s",
				applied.StringFixed(2), payment.Date.Format(domain.DateLayout),
				entries[j].Description, entries[j].Date.Format(domain.DateLayout))
		}
	}

	return &domain.Ledger{Entries: entries}
}

// SortLedgerEntries orders entries by date; on the same date obligations
// come before payments so a same-day payment can satisfy them.
func SortLedgerEntries(entries []domain.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].IsDue() && entries[j].IsMade()
	})
}

// oldestUnpaid advances from start to the first unpaid due entry before
// limit, returning limit when there is none.
func oldestUnpaid(entries []domain.LedgerEntry, start, limit int) int {
	for idx := start; idx < limit; idx++ {
		if entries[idx].IsDue() && entries[idx].Remaining.IsPositive() {
			return idx
		}
	}
	return limit
}

// nearestUnpaid scans backward from the payment at idx to the closest
// unpaid due entry, returning -1 when there is none.
func nearestUnpaid(entries []domain.LedgerEntry, idx int) int {
	for j := idx - 1; j >= 0; j-- {
		if entries[j].IsDue() && entries[j].Remaining.IsPositive() {
			return j
		}
	}
	return -1
}

func apply(payment, due *domain.LedgerEntry) decimal.Decimal {
	amount := decimal.Min(payment.Remaining, due.Remaining)
	payment.Remaining = payment.Remaining.Sub(amount)
	due.Remaining = due.Remaining.Sub(amount)
	due.Applications = append(due.Applications, domain.Application{
		PaymentID:       payment.ID,
		Date:            payment.Date,
		Amount:          amount,
		AmountLeftAfter: due.Remaining,
	})
	return amount
}
