package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedScheduleBuilder_Build(t *testing.T) {
	b := NewCombinedScheduleBuilder()
	schedule, err := b.Build(CombinedRequest{
		Children:      daleyChildren(),
		SupportAmount: dec("1000.00"),
		MedicalAmount: decPtr("350.00"),
		DentalAmount:  decPtr("50.00"),
		StartDate:     date(2019, time.May, 1),
		Mode:          ThroughCutoff,
		Cutoff:        date(2019, time.July, 10),
	})
	require.NoError(t, err)
	require.Len(t, schedule, 9)

	expected := []struct {
		date        time.Time
		description string
		amount      string
	}{
		{date(2019, time.May, 1), domain.DescriptionChildSupport, "1000.00"},
		{date(2019, time.May, 1), domain.DescriptionDentalSupport, "50.00"},
		{date(2019, time.May, 1), domain.DescriptionMedicalSupport, "350.00"},
		{date(2019, time.June, 1), domain.DescriptionChildSupport, "1000.00"},
		{date(2019, time.June, 1), domain.DescriptionDentalSupport, "50.00"},
		{date(2019, time.June, 1), domain.DescriptionMedicalSupport, "350.00"},
		{date(2019, time.July, 1), domain.DescriptionChildSupport, "1000.00"},
		{date(2019, time.July, 1), domain.DescriptionDentalSupport, "50.00"},
		{date(2019, time.July, 1), domain.DescriptionMedicalSupport, "350.00"},
	}
	for i, want := range expected {
		assert.True(t, want.date.Equal(schedule[i].DueDate), "row %d date", i)
		assert.Equal(t, want.description, schedule[i].Description, "row %d description", i)
		assert.Equal(t, want.amount, schedule[i].AmountDue.StringFixed(2), "row %d amount", i)
	}
}

func TestCombinedScheduleBuilder_Build_Sorted(t *testing.T) {
	schedule, err := NewCombinedScheduleBuilder().Build(CombinedRequest{
		Children:      daleyChildren(),
		SupportAmount: dec("1000.00"),
		MedicalAmount: decPtr("350.00"),
		DentalAmount:  decPtr("50.00"),
		StartDate:     date(2019, time.January, 1),
		Mode:          FullProjection,
	})
	require.NoError(t, err)
	require.Len(t, schedule, 270)

	for i := 1; i < len(schedule); i++ {
		prev, cur := schedule[i-1], schedule[i]
		require.False(t, cur.DueDate.Before(prev.DueDate), "row %d out of date order", i)
		if cur.DueDate.Equal(prev.DueDate) {
			require.LessOrEqual(t, prev.Description, cur.Description, "row %d out of description order", i)
		}
	}

	for _, p := range schedule {
		switch p.Description {
		case domain.DescriptionMedicalSupport:
			assert.Equal(t, "350.00", p.AmountDue.StringFixed(2))
		case domain.DescriptionDentalSupport:
			assert.Equal(t, "50.00", p.AmountDue.StringFixed(2))
		}
	}
}

func TestCombinedScheduleBuilder_Build_OmitsZeroInsurance(t *testing.T) {
	tests := []struct {
		name    string
		medical *string
		dental  *string
		want    int
	}{
		{"both nil", nil, nil, 3},
		{"medical only", strPtr("100.00"), nil, 6},
		{"dental zero", strPtr("100.00"), strPtr("0.00"), 6},
		{"both set", strPtr("100.00"), strPtr("25.00"), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CombinedRequest{
				Children:      daleyChildren(),
				SupportAmount: dec("387.50"),
				StartDate:     date(2020, time.March, 1),
				Mode:          ThroughCutoff,
				Cutoff:        date(2020, time.May, 1),
			}
			if tt.medical != nil {
				req.MedicalAmount = decPtr(*tt.medical)
			}
			if tt.dental != nil {
				req.DentalAmount = decPtr(*tt.dental)
			}
			schedule, err := NewCombinedScheduleBuilder().Build(req)
			require.NoError(t, err)
			assert.Len(t, schedule, tt.want)
		})
	}
}

func TestCombinedScheduleBuilder_Build_ConfirmedArrearage(t *testing.T) {
	schedule, err := NewCombinedScheduleBuilder().Build(CombinedRequest{
		Children:           daleyChildren(),
		SupportAmount:      dec("1000.00"),
		ConfirmedArrearage: decPtr("4200.00"),
		ArrearageDate:      date(2019, time.December, 31),
		StartDate:          date(2020, time.January, 1),
		Mode:               ThroughCutoff,
		Cutoff:             date(2020, time.February, 1),
	})
	require.NoError(t, err)
	require.Len(t, schedule, 3)
	assert.Equal(t, domain.DescriptionConfirmedArrearage, schedule[0].Description)
	assert.Equal(t, "4200.00", schedule[0].AmountDue.StringFixed(2))
	assert.True(t, date(2019, time.December, 31).Equal(schedule[0].DueDate))
}

func TestCombinedScheduleBuilder_Build_InvalidChild(t *testing.T) {
	_, err := NewCombinedScheduleBuilder().Build(CombinedRequest{
		Children:      []domain.Child{{Name: "Tom"}},
		SupportAmount: dec("1000.00"),
		StartDate:     date(2020, time.January, 1),
		Mode:          FullProjection,
	})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func strPtr(s string) *string { return &s }
