package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daleyStepdowns(t *testing.T) []domain.StepdownEvent {
	t.Helper()
	events, err := NewStepdownCalculator().Compute(daleyChildren(), dec("1000.00"), 0)
	require.NoError(t, err)
	return events
}

func TestScheduleGenerator_Generate_FullProjection(t *testing.T) {
	g := NewScheduleGenerator()
	schedule, err := g.Generate(ScheduleRequest{
		InitialAmount:   dec("1000.00"),
		PaymentsPerYear: Monthly,
		StartDate:       date(2019, time.January, 1),
		Stepdowns:       daleyStepdowns(t),
		Description:     "Child support payment due",
		Mode:            FullProjection,
	})
	require.NoError(t, err)

	// 42 months at 1000, 12 at 833.33, 36 at 666.67
	require.Len(t, schedule, 90)

	assert.True(t, date(2019, time.January, 1).Equal(schedule[0].DueDate))
	assert.True(t, date(2022, time.June, 1).Equal(schedule[41].DueDate))
	assert.True(t, date(2026, time.June, 1).Equal(schedule[89].DueDate))

	assert.Equal(t, "1000.00", schedule[41].AmountDue.StringFixed(2))
	assert.Equal(t, "833.33", schedule[42].AmountDue.StringFixed(2))
	assert.Equal(t, "833.33", schedule[53].AmountDue.StringFixed(2))
	assert.Equal(t, "666.67", schedule[54].AmountDue.StringFixed(2))

	assert.Equal(t, "Ava aged out.", schedule[42].Note)
	assert.Equal(t, "Tom aged out.", schedule[54].Note)
	notes := 0
	for _, p := range schedule {
		if p.Note != "" {
			notes++
		}
		assert.Equal(t, "Child support payment due", p.Description)
	}
	assert.Equal(t, 2, notes, "only the payment after each step-down carries a note")
}

func TestScheduleGenerator_Generate_ThroughCutoff(t *testing.T) {
	tests := []struct {
		name     string
		cutoff   time.Time
		expected int
	}{
		{"mid month", date(2020, time.March, 15), 15},
		{"on a due date", date(2020, time.March, 1), 15},
		{"day before a due date", date(2020, time.February, 29), 14},
		{"before the start date", date(2018, time.December, 31), 0},
		{"after the last step-down", date(2030, time.January, 1), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := NewScheduleGenerator().Generate(ScheduleRequest{
				InitialAmount:   dec("1000.00"),
				PaymentsPerYear: Monthly,
				StartDate:       date(2019, time.January, 1),
				Stepdowns:       daleyStepdowns(t),
				Description:     domain.DescriptionChildSupport,
				Mode:            ThroughCutoff,
				Cutoff:          tt.cutoff,
			})
			require.NoError(t, err)
			assert.Len(t, schedule, tt.expected)
			for _, p := range schedule {
				assert.False(t, p.DueDate.After(tt.cutoff))
			}
		})
	}
}

func TestScheduleGenerator_Generate_FixedPayment(t *testing.T) {
	schedule, err := NewScheduleGenerator().Generate(ScheduleRequest{
		InitialAmount:   dec("350.00"),
		PaymentsPerYear: Monthly,
		StartDate:       date(2019, time.May, 1),
		Stepdowns:       daleyStepdowns(t),
		Description:     domain.DescriptionMedicalSupport,
		FixedPayment:    true,
		Mode:            FullProjection,
	})
	require.NoError(t, err)
	require.NotEmpty(t, schedule)
	for _, p := range schedule {
		assert.Equal(t, "350.00", p.AmountDue.StringFixed(2))
	}
}

func TestScheduleGenerator_Generate_DoesNotConsumeStepdowns(t *testing.T) {
	events := daleyStepdowns(t)
	snapshot := append([]domain.StepdownEvent(nil), events...)
	req := ScheduleRequest{
		InitialAmount:   dec("1000.00"),
		PaymentsPerYear: Monthly,
		StartDate:       date(2019, time.January, 1),
		Stepdowns:       events,
		Description:     domain.DescriptionChildSupport,
		Mode:            FullProjection,
	}

	first, err := NewScheduleGenerator().Generate(req)
	require.NoError(t, err)
	second, err := NewScheduleGenerator().Generate(req)
	require.NoError(t, err)

	assert.Equal(t, snapshot, events)
	assert.Equal(t, first, second)
}

func TestScheduleGenerator_Generate_StartAfterFirstStepdown(t *testing.T) {
	schedule, err := NewScheduleGenerator().Generate(ScheduleRequest{
		InitialAmount:   dec("1000.00"),
		PaymentsPerYear: Monthly,
		StartDate:       date(2022, time.September, 1),
		Stepdowns:       daleyStepdowns(t),
		Description:     domain.DescriptionChildSupport,
		Mode:            FullProjection,
	})
	require.NoError(t, err)
	require.NotEmpty(t, schedule)
	assert.Equal(t, "833.33", schedule[0].AmountDue.StringFixed(2))
	assert.Equal(t, "Ava aged out.", schedule[0].Note)
}

func TestScheduleGenerator_Generate_SemiMonthly(t *testing.T) {
	schedule, err := NewScheduleGenerator().Generate(ScheduleRequest{
		InitialAmount:   dec("500.00"),
		PaymentsPerYear: SemiMonthly,
		StartDate:       date(2020, time.January, 1),
		Stepdowns:       daleyStepdowns(t),
		Description:     domain.DescriptionChildSupport,
		Mode:            ThroughCutoff,
		Cutoff:          date(2020, time.February, 20),
	})
	require.NoError(t, err)
	require.Len(t, schedule, 4)
	expected := []time.Time{
		date(2020, time.January, 1),
		date(2020, time.January, 15),
		date(2020, time.February, 1),
		date(2020, time.February, 15),
	}
	for i, want := range expected {
		assert.True(t, want.Equal(schedule[i].DueDate), "payment %d: expected %s, got %s", i, want, schedule[i].DueDate)
	}
}

func TestScheduleGenerator_Generate_ConfigurationErrors(t *testing.T) {
	base := ScheduleRequest{
		InitialAmount:   dec("1000.00"),
		PaymentsPerYear: Monthly,
		StartDate:       date(2019, time.January, 1),
		Description:     domain.DescriptionChildSupport,
		Mode:            FullProjection,
	}

	tests := []struct {
		name      string
		modify    func(*ScheduleRequest)
		parameter string
	}{
		{"missing cutoff", func(r *ScheduleRequest) { r.Mode = ThroughCutoff }, "cutoff"},
		{"zero payments per year", func(r *ScheduleRequest) { r.PaymentsPerYear = 0 }, "payments_per_year"},
		{"negative payments per year", func(r *ScheduleRequest) { r.PaymentsPerYear = -12 }, "payments_per_year"},
		{"missing start date", func(r *ScheduleRequest) { r.StartDate = time.Time{} }, "start_date"},
		{"unknown mode", func(r *ScheduleRequest) { r.Mode = ProjectionMode(9) }, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Stepdowns = daleyStepdowns(t)
			tt.modify(&req)
			schedule, err := NewScheduleGenerator().Generate(req)
			assert.Nil(t, schedule)
			var cerr *domain.ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.parameter, cerr.Parameter)
		})
	}
}

func TestProjectionMode_String(t *testing.T) {
	assert.Equal(t, "through_cutoff", ThroughCutoff.String())
	assert.Equal(t, "full_projection", FullProjection.String())
	assert.Equal(t, "ProjectionMode(7)", ProjectionMode(7).String())
}
