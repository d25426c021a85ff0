package fieldcheck

import (
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Validator checks records against per-field rules.
//
// Configuration (constraints, fields, rules, messages) is set up first and
// must not change while a validation pass runs. The stored record and error
// map are guarded, so Validate, Reset and the state accessors may be called
// from several goroutines, but passes on one instance share their error map.
// Use Evaluate or Clone for independent passes.
type Validator struct {
	constraints map[string]Constraint
	fields      map[string]string
	fieldOrder  []string
	rules       map[string]*ruleSet
	messages    map[string]string
	logger      *slog.Logger

	mu         sync.Mutex
	data       *Record
	errors     map[string]string
	errorRules map[string]string
}

// ruleSet keeps a field's bindings in registration order.
type ruleSet struct {
	order    []string
	bindings map[string]Binding
}

func newRuleSet() *ruleSet {
	return &ruleSet{bindings: make(map[string]Binding)}
}

func (rs *ruleSet) put(b Binding) bool {
	_, replaced := rs.bindings[b.Rule]
	if !replaced {
		rs.order = append(rs.order, b.Rule)
	}
	rs.bindings[b.Rule] = b
	return replaced
}

func (rs *ruleSet) list() []Binding {
	out := make([]Binding, 0, len(rs.order))
	for _, name := range rs.order {
		out = append(out, rs.bindings[name])
	}
	return out
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithProvider imports a constraint provider at construction time.
func WithProvider(p ConstraintProvider) ValidatorOption {
	return func(v *Validator) {
		v.AddConstraintProvider(p)
	}
}

// WithMessages merges default messages at construction time.
func WithMessages(messages map[string]string) ValidatorOption {
	return func(v *Validator) {
		v.AddMessages(messages)
	}
}

// New creates a validator holding data (which may be nil).
func New(data *Record, opts ...ValidatorOption) *Validator {
	v := &Validator{
		constraints: make(map[string]Constraint),
		fields:      make(map[string]string),
		rules:       make(map[string]*ruleSet),
		messages:    make(map[string]string),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		data:        data,
		errors:      make(map[string]string),
		errorRules:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AddConstraint registers c under name, replacing any existing entry.
func (v *Validator) AddConstraint(name string, c Constraint) *Validator {
	if _, ok := v.constraints[name]; ok {
		v.logger.Debug("constraint replaced", slog.String("rule", name))
	}
	v.constraints[name] = c
	return v
}

// AddConstraintFunc registers fn under name.
func (v *Validator) AddConstraintFunc(name string, fn func(value any, opts ...Option) bool) *Validator {
	return v.AddConstraint(name, ConstraintFunc(fn))
}

// AddConstraintProvider merges every constraint of p into the registry.
// Provider entries replace existing ones with the same name.
func (v *Validator) AddConstraintProvider(p ConstraintProvider) *Validator {
	provided := p.Constraints()
	for name, c := range provided {
		v.constraints[name] = c
	}
	v.logger.Debug("constraint provider imported", slog.Int("constraints", len(provided)))
	return v
}

// AddField registers field with a display title. An empty title defaults
// to the field name. Each entry of rules becomes a rule with an empty
// message, added in sorted rule name order.
func (v *Validator) AddField(field, title string, rules map[string][]Option) error {
	if title == "" {
		title = field
	}
	return v.addField(field, title, rules)
}

// addField registers field with title as given, even when empty.
func (v *Validator) addField(field, title string, rules map[string][]Option) error {
	if _, ok := v.fields[field]; !ok {
		v.fieldOrder = append(v.fieldOrder, field)
	}
	v.fields[field] = title

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := v.AddRule(field, name, "", rules[name]...); err != nil {
			return err
		}
	}
	return nil
}

// AddMessages merges default message templates keyed by rule name.
func (v *Validator) AddMessages(messages map[string]string) *Validator {
	for rule, message := range messages {
		v.messages[rule] = message
	}
	return v
}

// AddRule binds rule to field. Adding the same rule to a field again
// replaces the earlier binding but keeps its evaluation position.
//
// The first time a rule name is seen, message becomes that rule's entry in
// the message table, even when empty. Later messages only override their
// own binding.
func (v *Validator) AddRule(field, rule, message string, opts ...Option) error {
	if _, ok := v.fields[field]; !ok {
		return &FieldError{Field: field, Rule: rule}
	}

	if _, ok := v.messages[rule]; !ok {
		v.messages[rule] = message
	}

	rs, ok := v.rules[field]
	if !ok {
		rs = newRuleSet()
		v.rules[field] = rs
	}

	options := make([]Option, len(opts))
	copy(options, opts)

	if rs.put(Binding{Rule: rule, Message: message, Options: options}) {
		v.logger.Debug("rule replaced", slog.String("field", field), slog.String("rule", rule))
	}
	return nil
}

// AddError records message for field in the current error map.
func (v *Validator) AddError(field, message string) *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.errors[field] = message
	delete(v.errorRules, field)
	return v
}

// SetData replaces the stored record.
func (v *Validator) SetData(data *Record) *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.data = data
	return v
}

// Validate checks the stored record against the configured rules.
//
// A non-empty data replaces the stored record first. With nothing to
// validate, Validate returns false and no error. Errors accumulate across
// calls until Reset. The result is true when the error map is empty.
// A missing constraint or message aborts the pass with an error; failures
// found earlier in that pass are still recorded.
//
// Constraints run without the validator's lock held, so they may read
// Data, Errors or Err.
func (v *Validator) Validate(data *Record) (bool, error) {
	v.mu.Lock()
	if !data.IsEmpty() {
		v.data = data
	} else if v.data.IsEmpty() {
		v.mu.Unlock()
		return false, nil
	}
	snapshot := v.data
	v.mu.Unlock()

	failures, err := v.evaluate(snapshot)

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, f := range failures {
		v.errors[f.Field] = f.Message
		v.errorRules[f.Field] = f.Rule
	}

	if err != nil {
		return false, err
	}
	return len(v.errors) == 0, nil
}

// Evaluate runs a validation pass over data without touching the stored
// record or error map, and returns the resulting field -> message map.
func (v *Validator) Evaluate(data *Record) (map[string]string, error) {
	failures, err := v.evaluate(data)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(failures))
	for _, f := range failures {
		out[f.Field] = f.Message
	}
	return out, nil
}

// evaluate walks data in record order. It returns at most one failure per
// field: the last failing rule in registration order. On error, the
// failures found before the aborting rule are returned with it.
func (v *Validator) evaluate(data *Record) ([]Failure, error) {
	var failures []Failure
	index := make(map[string]int)
	var err error

	data.Range(func(field string, value any) bool {
		rs, ok := v.rules[field]
		if !ok {
			return true
		}

		for _, name := range rs.order {
			b := rs.bindings[name]

			constraint, ok := v.constraints[b.Rule]
			if !ok {
				err = &ConstraintError{Field: field, Rule: b.Rule}
				return false
			}

			if constraint.Check(value, b.Options...) {
				continue
			}

			message, ferr := v.FormatMessage(field, b)
			if ferr != nil {
				err = ferr
				return false
			}

			v.logger.Debug("rule failed",
				slog.String("field", field),
				slog.String("rule", b.Rule),
				slog.String("message", message))

			failure := Failure{Field: field, Rule: b.Rule, Message: message}
			if i, seen := index[field]; seen {
				failures[i] = failure
			} else {
				index[field] = len(failures)
				failures = append(failures, failure)
			}
		}
		return true
	})

	return failures, err
}

// Reset clears the stored record and error map. Configuration is kept.
func (v *Validator) Reset() *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.data = nil
	v.errors = make(map[string]string)
	v.errorRules = make(map[string]string)
	return v
}

// Err returns the current error map as a *ValidationError, or nil when
// there are no errors. Failures are ordered by the stored record, then by
// field name for fields the record does not hold.
func (v *Validator) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.errors) == 0 {
		return nil
	}

	ve := &ValidationError{Failures: make([]Failure, 0, len(v.errors))}
	for _, field := range v.errorFieldOrder() {
		ve.Failures = append(ve.Failures, Failure{
			Field:   field,
			Rule:    v.errorRules[field],
			Message: v.errors[field],
		})
	}
	return ve
}

// errorFieldOrder lists error fields in record order, then the rest sorted.
func (v *Validator) errorFieldOrder() []string {
	order := make([]string, 0, len(v.errors))
	seen := make(map[string]bool, len(v.errors))

	v.data.Range(func(field string, _ any) bool {
		if _, ok := v.errors[field]; ok {
			order = append(order, field)
			seen[field] = true
		}
		return true
	})

	var rest []string
	for field := range v.errors {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// Clone returns a validator with a copy of v's configuration and empty
// record and error state.
func (v *Validator) Clone() *Validator {
	c := New(nil, WithLogger(v.logger))
	for name, constraint := range v.constraints {
		c.constraints[name] = constraint
	}
	for _, field := range v.fieldOrder {
		c.fieldOrder = append(c.fieldOrder, field)
		c.fields[field] = v.fields[field]
	}
	for field, rs := range v.rules {
		cp := newRuleSet()
		for _, b := range rs.list() {
			cp.put(b)
		}
		c.rules[field] = cp
	}
	for rule, message := range v.messages {
		c.messages[rule] = message
	}
	return c
}

// Constraints returns a copy of the constraint registry.
func (v *Validator) Constraints() map[string]Constraint {
	out := make(map[string]Constraint, len(v.constraints))
	for name, c := range v.constraints {
		out[name] = c
	}
	return out
}

// Data returns the stored record, or nil.
func (v *Validator) Data() *Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.data
}

// Errors returns a copy of the current field -> message map.
func (v *Validator) Errors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make(map[string]string, len(v.errors))
	for field, message := range v.errors {
		out[field] = message
	}
	return out
}

// Fields returns a copy of the field -> title map.
func (v *Validator) Fields() map[string]string {
	out := make(map[string]string, len(v.fields))
	for field, title := range v.fields {
		out[field] = title
	}
	return out
}

// FieldNames returns registered field names in registration order.
func (v *Validator) FieldNames() []string {
	out := make([]string, len(v.fieldOrder))
	copy(out, v.fieldOrder)
	return out
}

// Messages returns a copy of the message table.
func (v *Validator) Messages() map[string]string {
	out := make(map[string]string, len(v.messages))
	for rule, message := range v.messages {
		out[rule] = message
	}
	return out
}

// Rules returns each field's bindings in registration order.
func (v *Validator) Rules() map[string][]Binding {
	out := make(map[string][]Binding, len(v.rules))
	for field, rs := range v.rules {
		out[field] = rs.list()
	}
	return out
}
