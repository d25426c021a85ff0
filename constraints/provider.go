package constraints

import "github.com/Azhovan/fieldcheck"

// Rule names registered by Provider.
const (
	Required     = "required"
	Min          = "min"
	Max          = "max"
	Between      = "between"
	Length       = "length"
	MinLength    = "minlength"
	MaxLength    = "maxlength"
	OneOf        = "oneof"
	Numeric      = "numeric"
	Integer      = "integer"
	Alpha        = "alpha"
	Alphanumeric = "alphanumeric"
	Email        = "email"
	URL          = "url"
	UUID         = "uuid"
	Regex        = "regex"
	Boolean      = "boolean"
)

// Provider returns every built-in constraint.
func Provider() fieldcheck.ConstraintProvider {
	return fieldcheck.ProviderFunc(func() map[string]fieldcheck.Constraint {
		return map[string]fieldcheck.Constraint{
			Required:     fieldcheck.ConstraintFunc(required),
			Min:          fieldcheck.ConstraintFunc(minValue),
			Max:          fieldcheck.ConstraintFunc(maxValue),
			Between:      fieldcheck.ConstraintFunc(between),
			Length:       fieldcheck.ConstraintFunc(length),
			MinLength:    fieldcheck.ConstraintFunc(minLength),
			MaxLength:    fieldcheck.ConstraintFunc(maxLength),
			OneOf:        fieldcheck.ConstraintFunc(oneOf),
			Numeric:      fieldcheck.ConstraintFunc(numeric),
			Integer:      fieldcheck.ConstraintFunc(integer),
			Alpha:        fieldcheck.ConstraintFunc(alpha),
			Alphanumeric: fieldcheck.ConstraintFunc(alphanumeric),
			Email:        fieldcheck.ConstraintFunc(email),
			URL:          fieldcheck.ConstraintFunc(validURL),
			UUID:         fieldcheck.ConstraintFunc(validUUID),
			Regex:        fieldcheck.ConstraintFunc(matchRegex),
			Boolean:      fieldcheck.ConstraintFunc(boolean),
		}
	})
}

// Messages returns default message templates for every built-in rule.
func Messages() map[string]string {
	return map[string]string{
		Required:     "{title} is required",
		Min:          "{title} must be at least {0}",
		Max:          "{title} must be at most {0}",
		Between:      "{title} must be between {0} and {1}",
		Length:       "{title} has an invalid length",
		MinLength:    "{title} must be at least {0} characters long",
		MaxLength:    "{title} must be at most {0} characters long",
		OneOf:        "{title} is not an allowed value",
		Numeric:      "{title} must be a number",
		Integer:      "{title} must be an integer",
		Alpha:        "{title} may only contain letters",
		Alphanumeric: "{title} may only contain letters and digits",
		Email:        "{title} must be a valid email address",
		URL:          "{title} must be a valid URL",
		UUID:         "{title} must be a valid UUID",
		Regex:        "{title} has an invalid format",
		Boolean:      "{title} must be true or false",
	}
}
