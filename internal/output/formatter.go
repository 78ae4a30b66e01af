package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/cspay/internal/calculation"
)

// Formatter renders a reconciliation into bytes.
type Formatter interface {
	Name() string
	Format(r *calculation.Reconciliation) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter.
type FormatterFunc struct {
	ID string
	F  func(r *calculation.Reconciliation) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *calculation.Reconciliation) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{}

// aliases map alternate format names onto registered formatters.
var aliases = map[string]string{
	"compliance": "tsv",
	"narrative":  "violations",
	"enforce":    "enforcement",
	"console":    "table",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ComplianceFormatter{})
	register(CSVFormatter{})
	register(JSONFormatter{})
	register(XMLFormatter{})
	register(TableFormatter{})
	register(EnforcementFormatter{})
	register(ViolationsFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[GetFormatName(name)]
}

// AvailableFormatterNames lists registered formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r with f into a timestamped file in the current
// directory and returns the file name.
func WriteFormatted(f Formatter, r *calculation.Reconciliation, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("compliance_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// Extension returns the file extension conventionally used for a format.
func Extension(name string) string {
	switch name {
	case "tsv", "csv", "json", "xml", "html":
		return name
	default:
		return "txt"
	}
}
