package fieldcheck

import (
	"context"
	"fmt"
	"sort"
)

// Record is an ordered, flat mapping from field name to value.
// Validation walks a record in its own order: insertion order for Set,
// sorted key order for RecordFromMap, and source order for loaded records.
// Setting an existing key replaces its value but keeps its position.
type Record struct {
	keys    []string
	values  map[string]any
	sources map[string]string
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{
		keys:   make([]string, 0),
		values: make(map[string]any),
	}
}

// RecordFromMap creates a record from a Go map, ordering keys lexically.
func RecordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set stores value under key and returns r for chaining.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// SetFrom stores value under key and remembers which source supplied it.
func (r *Record) SetFrom(key string, value any, source string) *Record {
	r.Set(key, value)
	if r.sources == nil {
		r.sources = make(map[string]string)
	}
	r.sources[key] = source
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Source returns the name of the source that supplied key, if known.
func (r *Record) Source(key string) string {
	if r == nil || r.sources == nil {
		return ""
	}
	return r.sources[key]
}

// Keys returns the field names in record order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields. A nil record has length zero.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// IsEmpty reports whether r is nil or holds no fields.
func (r *Record) IsEmpty() bool {
	return r.Len() == 0
}

// Range calls fn for each field in record order until fn returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Map returns an unordered copy of the record's values.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	r.Range(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

// Clone returns an independent copy of r. Values are copied shallowly.
func (r *Record) Clone() *Record {
	c := NewRecord()
	r.Range(func(k string, v any) bool {
		if src := r.Source(k); src != "" {
			c.SetFrom(k, v, src)
		} else {
			c.Set(k, v)
		}
		return true
	})
	return c
}

// MapSource serves a fixed record, for tests and in-process hosts.
type MapSource struct {
	name   string
	record *Record
}

// NewMapSource creates a source returning the values of m in sorted key order.
func NewMapSource(name string, m map[string]any) *MapSource {
	return &MapSource{name: name, record: RecordFromMap(m)}
}

// Load returns a copy of the configured record.
func (s *MapSource) Load(ctx context.Context) (*Record, error) {
	return s.record.Clone(), nil
}

// Name returns the source name.
func (s *MapSource) Name() string {
	return s.name
}

// LoadRecord loads every source in order and merges the results into one
// record. Later sources override earlier ones; an overridden key keeps the
// position it had when first seen. Each key remembers its source name.
func LoadRecord(ctx context.Context, sources ...Source) (*Record, error) {
	merged := NewRecord()

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", source.Name(), err)
		}

		data.Range(func(key string, value any) bool {
			sourceName := source.Name()
			if origin := data.Source(key); origin != "" {
				sourceName = origin
			}
			merged.SetFrom(key, value, sourceName)
			return true
		})
	}

	return merged, nil
}
