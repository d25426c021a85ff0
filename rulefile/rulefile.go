package rulefile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Azhovan/fieldcheck"
	"github.com/Azhovan/fieldcheck/sourcefile"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures how a rule file is read.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string
}

// Definition is the decoded content of a rule file.
type Definition struct {
	Messages map[string]string `yaml:"messages" json:"messages" toml:"messages"`
	Fields   map[string]any    `yaml:"fields" json:"fields" toml:"fields"`
}

// Load reads and decodes the rule file at path.
func Load(path string, opts Options) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = sourcefile.InferFormat(path)
	}

	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a rule definition in the given format.
func Parse(data []byte, format string) (*Definition, error) {
	var def Definition

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	return &def, nil
}

// Specs returns the field declarations as shorthand specs.
func (d *Definition) Specs() fieldcheck.Specs {
	specs := make(fieldcheck.Specs, len(d.Fields))
	for field, spec := range d.Fields {
		specs[field] = spec
	}
	return specs
}

// Build creates a validator with factory, registers every field, and then
// merges the file's messages over the defaults seeded by registration.
// A nil factory uses fieldcheck.New.
func (d *Definition) Build(factory fieldcheck.Factory, data *fieldcheck.Record) (*fieldcheck.Validator, error) {
	if factory == nil {
		factory = func(data *fieldcheck.Record) *fieldcheck.Validator {
			return fieldcheck.New(data)
		}
	}

	v, err := fieldcheck.MakeFromShorthand(factory, data, d.Specs())
	if err != nil {
		return nil, err
	}

	if len(d.Messages) > 0 {
		v.AddMessages(d.Messages)
	}
	return v, nil
}
