package stats

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNumerical    = errors.New("numerical failure")
)

// TestType names a stationarity test.
type TestType string

// Supported stationarity tests.
const (
	TestADF  TestType = "adf"
	TestKPSS TestType = "kpss"
	TestPP   TestType = "pp"
)

// Label returns the display name of the test.
func (t TestType) Label() string {
	switch t {
	case TestADF:
		return "ADF"
	case TestKPSS:
		return "KPSS"
	case TestPP:
		return "PP"
	}
	return string(t)
}

// ParseTestType parses a test name such as "adf" or "KPSS".
func ParseTestType(s string) (TestType, error) {
	switch t := TestType(strings.ToLower(strings.TrimSpace(s))); t {
	case TestADF, TestKPSS, TestPP:
		return t, nil
	}
	return "", fmt.Errorf("unknown stationarity test %q", s)
}

// InvalidInputError reports a series the test cannot be run on: empty, too
// short, or containing missing values.
type InvalidInputError struct {
	Test   TestType
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Test == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Test.Label(), e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NumericalError reports an ill-conditioned test, typically a constant series
// with zero variance.
type NumericalError struct {
	Test   TestType
	Reason string
}

func (e *NumericalError) Error() string {
	if e.Test == "" {
		return "numerical error: " + e.Reason
	}
	return fmt.Sprintf("%s: numerical error: %s", e.Test.Label(), e.Reason)
}

// Unwrap allows errors.Is(err, ErrNumerical).
func (e *NumericalError) Unwrap() error { return ErrNumerical }
