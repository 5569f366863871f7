package domain

import (
	"fmt"
)

// ConfigurationError reports a configuration that cannot be projected at all.
// No rows are produced when one is returned.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "invalid configuration"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError for field
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// Cash flow validation codes
const (
	CodeInvalidFrequency        = "INVALID_FREQUENCY"
	CodeUnknownScope            = "UNKNOWN_FREQUENCY_SCOPE"
	CodeUnknownStartingType     = "UNKNOWN_STARTING_TYPE"
	CodeUnknownUntilType        = "UNKNOWN_UNTIL_TYPE"
	CodeMissingStartingValue    = "MISSING_STARTING_VALUE"
	CodeMissingUntilValue       = "MISSING_UNTIL_VALUE"
	CodeMissingFixedYear        = "MISSING_FIXED_YEAR"
	CodeMissingRecurringOptions = "MISSING_RECURRING_OPTIONS"
	CodeShapeMismatch           = "SHAPE_MISMATCH"
)

// CashFlowValidationError describes a malformed cash flow.
// A flow carrying one contributes nothing to the projection.
type CashFlowValidationError struct {
	Code   string
	Reason string
}

func (e *CashFlowValidationError) Error() string {
	return fmt.Sprintf("invalid cash flow (%s): %s", e.Code, e.Reason)
}

func newCashFlowError(code, format string, args ...any) error {
	return &CashFlowValidationError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Diagnostic levels
const (
	LevelWarning = "WARNING"
)

// Diagnostic is a non-fatal problem found while projecting
type Diagnostic struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	List    string `json:"list"`
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	label := d.Name
	if label == "" {
		label = fmt.Sprintf("#%d", d.Index)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Level, d.List, label, d.Message)
}
