package ot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorSeverity represents the severity level of a font table error.
type ErrorSeverity int

const (
	// SeverityCritical makes the affected lookup subtable unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor may affect matching results but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// ErrNoFont is returned if a font capability cannot be materialized.
var ErrNoFont = errors.New("no font")

// FontError represents an error encountered while building decoded font tables
// into lookup structures.
type FontError struct {
	Table    Tag           // The OpenType table where the error occurred (e.g., "GSUB")
	Section  string        // Specific section within the table (e.g., "ChainedContext/2")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
}

// Error implements the error interface.
func (e FontError) Error() string {
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// ErrorCollector accumulates errors while a lookup subtable is assembled.
// Errors are confined to the subtable under construction: a builder consults
// the collector when it is done and discards the subtable if anything critical
// has been recorded.
//
// The zero value is ready to use.
type ErrorCollector struct {
	errors []FontError
}

// AddError records an error.
func (ec *ErrorCollector) AddError(table Tag, section string, issue string, severity ErrorSeverity) {
	tracer().Debugf("%s/%s: %s", table, section, issue)
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
	})
}

// Errorf records an error with a formatted issue description.
func (ec *ErrorCollector) Errorf(table Tag, section string, severity ErrorSeverity, format string, args ...any) {
	ec.AddError(table, section, fmt.Sprintf(format, args...), severity)
}

// HasErrors returns true if any errors have been recorded.
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Errors returns all errors recorded so far.
func (ec *ErrorCollector) Errors() []FontError {
	return ec.errors
}

// HasCriticalErrors returns true if any errors with critical severity have been recorded.
func (ec *ErrorCollector) HasCriticalErrors() bool {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Err folds the recorded errors into a single error value, or returns nil if
// nothing has been recorded. The result matches every recorded FontError with
// errors.As for the first one and errors.Is for each of them.
func (ec *ErrorCollector) Err() error {
	if len(ec.errors) == 0 {
		return nil
	}
	errs := make([]error, len(ec.errors))
	for i, e := range ec.errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// String lists all recorded errors, one per line.
func (ec *ErrorCollector) String() string {
	var sb strings.Builder
	for _, e := range ec.errors {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}
