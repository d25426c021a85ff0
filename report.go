package fieldcheck

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReportOption configures report output using the functional options pattern.
type ReportOption func(*reportConfig)

// reportConfig holds options for WriteReport.
type reportConfig struct {
	withSources bool            // Include the record source of each failing field
	withValues  bool            // Include the offending value
	asJSON      bool            // Output as JSON instead of text format
	indent      string          // Indentation for JSON output (default: "  ")
	redacted    map[string]bool // Fields whose values are never printed
}

// WithSources includes the source of each failing field in the output.
func WithSources() ReportOption {
	return func(cfg *reportConfig) {
		cfg.withSources = true
	}
}

// WithValues includes the offending value of each failing field.
func WithValues() ReportOption {
	return func(cfg *reportConfig) {
		cfg.withValues = true
	}
}

// Redact hides the values of the named fields as "***redacted***".
func Redact(fields ...string) ReportOption {
	return func(cfg *reportConfig) {
		for _, f := range fields {
			cfg.redacted[f] = true
		}
	}
}

// AsJSON outputs the report as JSON instead of text format.
func AsJSON() ReportOption {
	return func(cfg *reportConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  "); empty produces compact JSON.
func WithIndent(indent string) ReportOption {
	return func(cfg *reportConfig) {
		cfg.indent = indent
	}
}

const redactedValue = "***redacted***"

// reportEntry is a single failing field in a report.
type reportEntry struct {
	Field   string `json:"field"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// reportDocument is the JSON shape of a report.
type reportDocument struct {
	Valid  bool          `json:"valid"`
	Errors []reportEntry `json:"errors"`
}

// WriteReport writes the current errors of v, ordered like the stored record.
// A validator without errors produces "valid" (or {"valid": true, ...}).
func WriteReport(w io.Writer, v *Validator, opts ...ReportOption) error {
	if v == nil {
		return fmt.Errorf("validator is nil")
	}

	config := reportConfig{
		indent:   "  ",
		redacted: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(&config)
	}

	entries := collectEntries(v, config)

	if config.asJSON {
		return reportAsJSON(w, entries, config)
	}
	return reportAsText(w, entries, config)
}

func collectEntries(v *Validator, config reportConfig) []reportEntry {
	data := v.Data()

	var entries []reportEntry
	if ve, ok := AsValidationError(v.Err()); ok {
		entries = make([]reportEntry, 0, len(ve.Failures))
		for _, f := range ve.Failures {
			entry := reportEntry{
				Field:   f.Field,
				Rule:    f.Rule,
				Message: f.Message,
			}
			if config.withSources {
				entry.Source = data.Source(f.Field)
			}
			if config.withValues {
				if config.redacted[f.Field] {
					entry.Value = redactedValue
				} else if value, ok := data.Get(f.Field); ok {
					entry.Value = value
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// reportAsText outputs one "field: message" line per failure.
func reportAsText(w io.Writer, entries []reportEntry, config reportConfig) error {
	if len(entries) == 0 {
		if _, err := io.WriteString(w, "valid\n"); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
		return nil
	}

	for _, entry := range entries {
		line := fmt.Sprintf("%s: %s", entry.Field, entry.Message)
		if entry.Rule != "" {
			line += fmt.Sprintf(" [%s]", entry.Rule)
		}
		if config.withValues && entry.Value != nil {
			line += fmt.Sprintf(" (value: %v)", entry.Value)
		}
		if config.withSources && entry.Source != "" {
			line += fmt.Sprintf(" (source: %s)", entry.Source)
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

// reportAsJSON outputs the report as a JSON document.
func reportAsJSON(w io.Writer, entries []reportEntry, config reportConfig) error {
	doc := reportDocument{
		Valid:  len(entries) == 0,
		Errors: entries,
	}
	if doc.Errors == nil {
		doc.Errors = []reportEntry{}
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(doc, "", config.indent)
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	// Add newline for better formatting
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}
