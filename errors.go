package fieldcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They abort the call that hit them and are never
// recorded as field errors.
var (
	// ErrUnknownField is returned when a rule targets a field that was never added.
	ErrUnknownField = errors.New("fieldcheck: unknown field")

	// ErrMissingConstraint is returned when a rule names an unregistered constraint.
	ErrMissingConstraint = errors.New("fieldcheck: missing constraint")

	// ErrMissingMessage is returned when a failing rule has no message template.
	ErrMissingMessage = errors.New("fieldcheck: missing message")
)

// FieldError reports a rule registration against an unknown field.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s does not exist (rule %s)", e.Field, e.Rule)
}

func (e *FieldError) Unwrap() error { return ErrUnknownField }

// ConstraintError reports a rule whose constraint is not registered.
type ConstraintError struct {
	Field string
	Rule  string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("validation constraint %s does not exist (field %s)", e.Rule, e.Field)
}

func (e *ConstraintError) Unwrap() error { return ErrMissingConstraint }

// MessageError reports a failing rule without any message template.
type MessageError struct {
	Field string
	Rule  string
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("error message for rule %s does not exist (field %s)", e.Rule, e.Field)
}

func (e *MessageError) Unwrap() error { return ErrMissingMessage }

// ValidationError aggregates the field errors of a validation pass.
type ValidationError struct {
	Failures []Failure
}

// Failure is a single field's formatted error message.
type Failure struct {
	Field   string // Record key (e.g., "age")
	Rule    string // Rule that produced the message (empty for AddError)
	Message string // Formatted message
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.Failures) == 0 {
		return "validation failed: no errors"
	}

	var b strings.Builder
	if len(e.Failures) == 1 {
		b.WriteString("validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "validation failed: %d errors\n", len(e.Failures))
	}

	for _, f := range e.Failures {
		if f.Rule != "" {
			fmt.Fprintf(&b, "  - %s: %s (%s)\n", f.Field, f.Rule, f.Message)
		} else {
			fmt.Fprintf(&b, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Messages returns the failures as a field -> message map.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Failures))
	for _, f := range e.Failures {
		out[f.Field] = f.Message
	}
	return out
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
