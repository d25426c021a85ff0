// Package rulefile loads validator definitions from YAML, JSON, or TOML.
//
// A definition holds default messages and shorthand field specs:
//
//	messages:
//	  required: "{title} is required"
//	fields:
//	  age:
//	    title: Age
//	    rules: "required|min:18:{title} must be at least {0}"
//	  email: [required, email]
//
// Field values take the shapes fieldcheck.Specs accepts; entries of any
// other shape are skipped when the validator is built.
package rulefile
