package calculation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/robfig/cron/v3"
)

// Supported payment frequencies.
const (
	Monthly     = 12
	SemiMonthly = 24
	BiWeekly    = 26
	Weekly      = 52
)

// Cadence produces the due date that follows a given due date.
type Cadence interface {
	Next(after time.Time) time.Time
}

// monthlyCadence steps one calendar month at a time from the previous due
// date, clamping to the end of shorter months.
type monthlyCadence struct{}

func (monthlyCadence) Next(after time.Time) time.Time {
	return domain.AddMonths(after, 1)
}

// cronCadence adapts a cron schedule. Schedules are evaluated in UTC so
// midnight due dates stay on their calendar day.
type cronCadence struct {
	schedule cron.Schedule
}

func (c cronCadence) Next(after time.Time) time.Time {
	return c.schedule.Next(after)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NewCadence selects the cadence for a payment frequency. monthDays picks
// the days of the month payments fall on; it defaults to the 1st and 15th
// for semi-monthly payments and is ignored for weekly frequencies. Weekly
// payments fall on the start date's weekday.
func NewCadence(paymentsPerYear int, monthDays []int, start time.Time) (Cadence, error) {
	if paymentsPerYear <= 0 {
		return nil, &domain.ConfigurationError{Parameter: "payments_per_year", Reason: fmt.Sprintf("must be positive, got %d", paymentsPerYear)}
	}

	switch paymentsPerYear {
	case Monthly:
		if len(monthDays) == 0 {
			return monthlyCadence{}, nil
		}
		if len(monthDays) != 1 {
			return nil, &domain.ConfigurationError{Parameter: "month_days", Reason: "monthly payments take exactly one day of the month"}
		}
		return monthDayCadence(monthDays)
	case SemiMonthly:
		if len(monthDays) == 0 {
			monthDays = []int{1, 15}
		}
		if len(monthDays) != 2 {
			return nil, &domain.ConfigurationError{Parameter: "month_days", Reason: "semi-monthly payments take exactly two days of the month"}
		}
		return monthDayCadence(monthDays)
	case BiWeekly:
		return cronCadence{schedule: cron.Every(14 * 24 * time.Hour)}, nil
	case Weekly:
		return parseCron(fmt.Sprintf("0 0 * * %d", int(start.Weekday())))
	default:
		return nil, &domain.ConfigurationError{
			Parameter: "payments_per_year",
			Reason:    fmt.Sprintf("unsupported frequency %d (use 12, 24, 26 or 52)", paymentsPerYear),
		}
	}
}

func monthDayCadence(monthDays []int) (Cadence, error) {
	days := append([]int(nil), monthDays...)
	sort.Ints(days)
	fields := make([]string, len(days))
	for i, d := range days {
		if d < 1 || d > 28 {
			return nil, &domain.ConfigurationError{Parameter: "month_days", Reason: fmt.Sprintf("day %d must be between 1 and 28", d)}
		}
		if i > 0 && days[i-1] == d {
			return nil, &domain.ConfigurationError{Parameter: "month_days", Reason: fmt.Sprintf("day %d is listed twice", d)}
		}
		fields[i] = strconv.Itoa(d)
	}
	return parseCron(fmt.Sprintf("0 0 %s * *", strings.Join(fields, ",")))
}

func parseCron(spec string) (Cadence, error) {
	schedule, err := cronParser.Parse("CRON_TZ=UTC " + spec)
	if err != nil {
		return nil, &domain.ConfigurationError{Parameter: "cadence", Reason: err.Error()}
	}
	return cronCadence{schedule: schedule}, nil
}
