// Package sourcefile loads records from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .toml).
// Nested objects are flattened to dot-separated field names
// ({"user": {"email": ...}} → "user.email"); arrays are kept as values.
// YAML files keep their document order; JSON and TOML fields are sorted.
//
// Example:
//
//	source := sourcefile.New("signup.yaml", sourcefile.Options{Required: true})
//	record, err := fieldcheck.LoadRecord(ctx, source)
package sourcefile
