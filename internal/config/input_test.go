package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
	assert.NotNil(t, parser.Payments, "Should create payment parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	c, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, c, "Should return nil case")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")

	err := os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644)
	require.NoError(t, err)

	parser := NewInputParser()
	c, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, c, "Should return nil case")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_Testdata(t *testing.T) {
	parser := NewInputParser()
	c, err := parser.LoadFromFile(filepath.Join("testdata", "daley.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "In the Interest of the Daley Children", c.Name)
	assert.True(t, domain.Date(2020, time.January, 1).Equal(c.StartDate))
	assert.Equal(t, 12, c.PaymentsPerYear, "Should default to monthly")
	assert.Equal(t, domain.OldestFirst, c.Allocation)
	assert.Equal(t, "1000.00", c.Obligations.ChildSupport.StringFixed(2))
	require.NotNil(t, c.Obligations.MedicalSupport)
	assert.Equal(t, "100.00", c.Obligations.MedicalSupport.StringFixed(2))
	require.NotNil(t, c.Obligations.DentalSupport)
	assert.True(t, c.Obligations.DentalSupport.IsZero())
	assert.Nil(t, c.Obligations.ConfirmedArrearage)
	assert.Equal(t, filepath.Join("testdata", "payments.tsv"), c.PaymentsFile)

	require.Len(t, c.Children, 3)
	assert.Equal(t, "Tom", c.Children[0].Name)
	assert.True(t, domain.Date(2005, time.January, 29).Equal(c.Children[0].DateOfBirth))
	assert.Equal(t, "Lincoln High", c.Children[0].Extra["school"], "Extra fields pass through")
	assert.Empty(t, c.Children[1].Extra)
}

func TestInputParser_LoadPayments(t *testing.T) {
	parser := NewInputParser()
	c, err := parser.LoadFromFile(filepath.Join("testdata", "daley.yaml"))
	require.NoError(t, err)

	made, err := parser.LoadPayments(c, "")
	require.NoError(t, err)
	require.Len(t, made, 2)
	assert.Equal(t, "1100.00", made[0].Amount.StringFixed(2))

	override := filepath.Join(t.TempDir(), "other.tsv")
	require.NoError(t, os.WriteFile(override, []byte("05/05/2020\t$5.00\n"), 0644))
	made, err = parser.LoadPayments(c, override)
	require.NoError(t, err)
	require.Len(t, made, 1)

	c.PaymentsFile = ""
	made, err = parser.LoadPayments(c, "")
	require.NoError(t, err)
	assert.Nil(t, made)
}

const validCase = `
name: Test
start_date: 2020-01-01
obligations:
  child_support: 500
children:
  - name: Ann
    date_of_birth: 2010-02-03
`

func TestInputParser_Parse_Valid(t *testing.T) {
	c, err := NewInputParser().Parse([]byte(validCase))
	require.NoError(t, err)
	assert.Equal(t, "Test", c.Name)
	assert.Equal(t, 0, c.ChildrenNotBeforeCourt)
	assert.Empty(t, c.PaymentsFile)
}

func TestInputParser_Parse_Validation(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		parameter string
		field     string
	}{
		{
			name:      "no children",
			yaml:      "start_date: 2020-01-01\nobligations:\n  child_support: 500\n",
			parameter: "children",
		},
		{
			name:  "child without birth date",
			yaml:  "start_date: 2020-01-01\nobligations:\n  child_support: 500\nchildren:\n  - name: Ann\n",
			field: "date_of_birth",
		},
		{
			name:  "child without name",
			yaml:  "start_date: 2020-01-01\nobligations:\n  child_support: 500\nchildren:\n  - date_of_birth: 2010-01-01\n",
			field: "name",
		},
		{
			name:      "missing start date",
			yaml:      "obligations:\n  child_support: 500\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "start_date",
		},
		{
			name:      "zero support",
			yaml:      "start_date: 2020-01-01\nobligations:\n  child_support: 0\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "obligations.child_support",
		},
		{
			name:      "negative medical",
			yaml:      "start_date: 2020-01-01\nobligations:\n  child_support: 500\n  medical_support: -1\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "obligations.medical_support",
		},
		{
			name:      "arrearage date without arrearage",
			yaml:      "start_date: 2020-01-01\nobligations:\n  child_support: 500\n  arrearage_date: 2019-12-31\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "obligations.arrearage_date",
		},
		{
			name:      "negative children not before court",
			yaml:      "start_date: 2020-01-01\nchildren_not_before_court: -2\nobligations:\n  child_support: 500\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "children_not_before_court",
		},
		{
			name:      "unsupported frequency",
			yaml:      "start_date: 2020-01-01\npayments_per_year: 4\nobligations:\n  child_support: 500\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "payments_per_year",
		},
		{
			name:      "bad month day",
			yaml:      "start_date: 2020-01-01\npayments_per_year: 24\nmonth_days: [1, 31]\nobligations:\n  child_support: 500\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "month_days",
		},
		{
			name:      "unknown allocation",
			yaml:      "start_date: 2020-01-01\nallocation: random\nobligations:\n  child_support: 500\nchildren:\n  - name: Ann\n    date_of_birth: 2010-01-01\n",
			parameter: "allocation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewInputParser().Parse([]byte(tt.yaml))
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration validation failed")

			if tt.field != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
				return
			}
			var cerr *domain.ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.parameter, cerr.Parameter)
		})
	}
}
