package figsync

import (
	"errors"
	"fmt"
)

// ErrMissingDocumentPart is returned when a document package lacks the
// main word/document.xml part.
var ErrMissingDocumentPart = errors.New("missing word/document.xml part")

// ScheduleError reports a failure reading the schedule workbook. Semantic
// problems with the schedule's contents are not errors; they are
// collected as Issues by the Validator.
type ScheduleError struct {
	Path  string
	Cause error
}

// NewScheduleError creates a new ScheduleError.
func NewScheduleError(path string, cause error) error {
	return &ScheduleError{Path: path, Cause: cause}
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("schedule %s: %v", e.Path, e.Cause)
}

func (e *ScheduleError) Unwrap() error {
	return e.Cause
}

// DocumentError reports a failure while opening, parsing, or saving a
// document file.
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

// NewDocumentError creates a new DocumentError.
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{Operation: operation, Path: path, Cause: cause}
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document %s failed for %s: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("document %s failed: %v", e.Operation, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// FormattingError reports a format spec that was not recognised or could
// not be applied to a value.
type FormattingError struct {
	Spec   string
	Reason string
}

// NewFormattingError creates a new FormattingError.
func NewFormattingError(spec, reason string) error {
	return &FormattingError{Spec: spec, Reason: reason}
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("unknown format spec %q: %s", e.Spec, e.Reason)
}

// ConfigError reports a configuration value no run could work with.
type ConfigError struct {
	Field   string
	Message string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) error {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// IsScheduleError checks if an error is a ScheduleError.
func IsScheduleError(err error) bool {
	var target *ScheduleError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is a DocumentError.
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}

// IsFormattingError checks if an error is a FormattingError.
func IsFormattingError(err error) bool {
	var target *FormattingError
	return errors.As(err, &target)
}

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
