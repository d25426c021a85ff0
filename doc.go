// Package fieldcheck validates flat records against per-field rules built from named constraints.
//
// Quick Start:
//
//	v, err := fieldcheck.FromShorthand(nil, fieldcheck.Specs{
//	    "age":   fieldcheck.FieldSpec{Title: "Age", Rules: "required|min:18:{title} must be at least {0}"},
//	    "email": "required|email",
//	}, fieldcheck.WithProvider(constraints.Provider()), fieldcheck.WithMessages(constraints.Messages()))
//
//	record, err := fieldcheck.LoadRecord(ctx,
//	    sourcefile.New("signup.yaml", sourcefile.Options{}),
//	    sourceenv.New(sourceenv.Options{Prefix: "SIGNUP_"}))
//
//	ok, err := v.Validate(record)
//
// Shorthand rules: "rule", "rule:opt1,opt2" or "rule:opt1,opt2:message", joined with '|'.
// Message tokens: {field}, {title}, and {0}, {1}, ... for rule options.
//
// Validate returns an error only for configuration defects (unknown field, missing
// constraint, missing message). Failing values are recorded in Errors and Err.
//
// See example_test.go for detailed usage.
package fieldcheck
