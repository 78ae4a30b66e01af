package calculation

import (
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return domain.Date(y, m, d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// daleyChildren is the three-child roster used throughout the tests.
func daleyChildren() []domain.Child {
	return []domain.Child{
		{Name: "Tom", DateOfBirth: date(2005, time.January, 29)},
		{Name: "Cindy", DateOfBirth: date(2008, time.May, 29)},
		{Name: "Ava", DateOfBirth: date(2003, time.September, 4)},
	}
}

// recordingLogger captures log lines for assertions.
type recordingLogger struct {
	debug, info, warn, errs []string
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.debug = append(l.debug, format) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.info = append(l.info, format) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.warn = append(l.warn, format) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.errs = append(l.errs, format) }
