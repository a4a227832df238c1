package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures structural configuration issues that make a
// widget document unusable.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigurationPrefix starts every click-action configuration message.
const ConfigurationPrefix = "Error in progress bar configuration: "

// ConfigurationError reports an incomplete click action. It is only
// recoverable by reconfiguring the widget and is shown instead of the bar.
type ConfigurationError struct {
	Field   string
	Message string
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(field, message string) error {
	return &ConfigurationError{Field: field, Message: message}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	return ConfigurationPrefix + e.Message
}

// Action kinds used by ActionInvocationError.
const (
	ActionWorkflow = "microflow"
	ActionPage     = "page"
)

// ActionInvocationError represents a failed workflow call or page
// navigation reported by the host.
type ActionInvocationError struct {
	Kind string
	Name string
	Err  error
}

// NewActionInvocationError constructs an ActionInvocationError.
func NewActionInvocationError(kind, name string, err error) error {
	return &ActionInvocationError{Kind: kind, Name: name, Err: err}
}

func (e *ActionInvocationError) Error() string {
	if e == nil {
		return ""
	}
	reason := "unknown error"
	if e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Kind == ActionPage {
		return fmt.Sprintf("Error while opening page %s: %s", e.Name, reason)
	}
	return fmt.Sprintf("Error while executing microflow %s: %s", e.Name, reason)
}

// Unwrap exposes the host-supplied failure.
func (e *ActionInvocationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
