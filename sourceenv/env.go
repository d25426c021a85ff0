package sourceenv

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/Azhovan/fieldcheck"
	"github.com/Azhovan/fieldcheck/internal/normalize"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// Keys are always normalized to lowercase after prefix stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) fieldcheck.Source {
	return &envSource{opts: opts}
}

// Load scans environment variables, filters by prefix, and normalizes keys.
// Fields are ordered by normalized name. Values are always strings.
func (e *envSource) Load(ctx context.Context) (*fieldcheck.Record, error) {
	values := make(map[string]string)
	names := make(map[string]string)

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key, ok := normalize.StripPrefix(parts[0], e.opts.Prefix, e.opts.CaseSensitive)
		if !ok {
			continue
		}

		field := normalize.EnvKey(key)
		values[field] = parts[1]
		names[field] = parts[0]
	}

	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	record := fieldcheck.NewRecord()
	for _, field := range fields {
		record.SetFrom(field, values[field], "env:"+names[field])
	}

	return record, nil
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix == "" {
		return "env"
	}
	return "env:" + e.opts.Prefix
}
