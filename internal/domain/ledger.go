package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordKind distinguishes obligations from payments inside a ledger.
type RecordKind string

const (
	KindDue  RecordKind = "due"
	KindMade RecordKind = "made"
)

// Application records part of a payment applied to a due record.
type Application struct {
	PaymentID       uuid.UUID       `json:"payment_id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	AmountLeftAfter decimal.Decimal `json:"amount_left_after"`
}

// LedgerEntry is a due or made record inside an allocation result. Amount
// is the original amount; Remaining is what is still unpaid (due) or
// unapplied (made).
type LedgerEntry struct {
	Kind         RecordKind      `json:"kind"`
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Note         string          `json:"note,omitempty"`
	Applications []Application   `json:"applications,omitempty"`
}

// IsDue reports whether the entry is an obligation.
func (e LedgerEntry) IsDue() bool { return e.Kind == KindDue }

// IsMade reports whether the entry is a payment.
func (e LedgerEntry) IsMade() bool { return e.Kind == KindMade }

// Settled returns the portion of Amount that has been paid (due entries)
// or applied (made entries).
func (e LedgerEntry) Settled() decimal.Decimal {
	return e.Amount.Sub(e.Remaining)
}

// DueEntry converts a due payment into an unallocated ledger entry.
func DueEntry(p DuePayment) LedgerEntry {
	return LedgerEntry{
		Kind:        KindDue,
		ID:          p.ID,
		Date:        p.DueDate,
		Description: p.Description,
		Amount:      p.AmountDue,
		Remaining:   p.AmountDue,
		Note:        p.Note,
	}
}

// MadeEntry converts a payment into an unapplied ledger entry.
func MadeEntry(p MadePayment) LedgerEntry {
	return LedgerEntry{
		Kind:        KindMade,
		ID:          p.ID,
		Date:        p.Date,
		Description: p.Description,
		Amount:      p.Amount,
		Remaining:   p.Amount,
	}
}

// Ledger is the chronological result of allocating payments against
// obligations.
type Ledger struct {
	Entries []LedgerEntry `json:"entries"`
}

// TotalDue sums the original amounts of all due entries.
func (l *Ledger) TotalDue() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.IsDue() {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalPaid sums the original amounts of all payments.
func (l *Ledger) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.IsMade() {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Arrearage is total due minus total paid. It is negative when the obligor
// has overpaid.
func (l *Ledger) Arrearage() decimal.Decimal {
	return l.TotalDue().Sub(l.TotalPaid())
}

// Outstanding sums the unpaid balances of due entries.
func (l *Ledger) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.IsDue() {
			total = total.Add(e.Remaining)
		}
	}
	return total
}

// Unapplied sums the portions of payments that were not applied to any
// obligation.
func (l *Ledger) Unapplied() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.IsMade() {
			total = total.Add(e.Remaining)
		}
	}
	return total
}

// DueEntries returns the due entries in ledger order.
func (l *Ledger) DueEntries() []LedgerEntry {
	return l.filter(KindDue)
}

// MadeEntries returns the payment entries in ledger order.
func (l *Ledger) MadeEntries() []LedgerEntry {
	return l.filter(KindMade)
}

func (l *Ledger) filter(kind RecordKind) []LedgerEntry {
	var out []LedgerEntry
	for _, e := range l.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
