package fieldcheck

import "context"

// Constraint checks a single value against rule-specific options.
// Options arrive in the order they were declared on the rule binding.
type Constraint interface {
	Check(value any, opts ...Option) bool
}

// ConstraintFunc is a function adapter for the Constraint interface.
type ConstraintFunc func(value any, opts ...Option) bool

// Check calls f(value, opts...).
func (f ConstraintFunc) Check(value any, opts ...Option) bool {
	return f(value, opts...)
}

// ConstraintProvider bundles named constraints for bulk registration.
type ConstraintProvider interface {
	// Constraints returns the constraints keyed by rule name.
	Constraints() map[string]Constraint
}

// ProviderFunc is a function adapter for the ConstraintProvider interface.
type ProviderFunc func() map[string]Constraint

// Constraints calls f().
func (f ProviderFunc) Constraints() map[string]Constraint {
	return f()
}

// Binding attaches a rule to a field. An empty Message means the rule's
// default message from the message table is used.
type Binding struct {
	Rule    string
	Message string
	Options []Option
}

// Source provides records from backends (files, env vars, in-memory maps).
type Source interface {
	// Load returns a record. Missing optional sources return an empty record.
	Load(ctx context.Context) (*Record, error)

	// Name identifies the source in reports (e.g., "file:user.yaml").
	Name() string
}

// Factory constructs the validator used by MakeFromShorthand. It receives
// the record the validator should start with.
type Factory func(data *Record) *Validator
