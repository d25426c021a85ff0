// Package sourceenv loads records from environment variables.
//
// Key normalization: USER__EMAIL → user.email, MAX_ITEMS → max_items
//
// Example:
//
//	source := sourceenv.New(sourceenv.Options{Prefix: "APP_"})
//	record, err := fieldcheck.LoadRecord(ctx, source)
package sourceenv
