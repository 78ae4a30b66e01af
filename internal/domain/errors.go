package domain

import "fmt"

// ValidationError reports a child record that is missing a required field
// or carries an unusable value.
type ValidationError struct {
	Index  int    // position of the child in the caller's list
	Name   string // child's name, when known
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid child %d (%s): %s %s", e.Index, e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid child %d: %s %s", e.Index, e.Field, e.Reason)
}

// ParseError reports a malformed row in payment text. Row is 1-based.
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value of '%s' in row # %d", e.Field, e.Value, e.Row)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigurationError reports an invalid parameter or parameter combination.
type ConfigurationError struct {
	Parameter string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Parameter, e.Reason)
}
