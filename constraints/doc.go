// Package constraints provides a ready-made set of named constraints for
// fieldcheck validators.
//
//	v := fieldcheck.New(record, fieldcheck.WithProvider(constraints.Provider()))
//	v.AddMessages(constraints.Messages())
//
// Rules: required, min:N, max:N, between:A,B, length:MIN[,MAX],
// minlength:N, maxlength:N, oneof:a,b,c, numeric, integer, alpha,
// alphanumeric, email, url, uuid, regex:PATTERN, boolean.
//
// Values that are absent or of an unsupported type fail every constraint
// except where noted. Options are read positionally; a malformed option
// makes the constraint fail rather than panic.
package constraints
