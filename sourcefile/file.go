package sourcefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Azhovan/fieldcheck"
	"github.com/Azhovan/fieldcheck/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns empty record).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based record source.
func New(path string, opts Options) fieldcheck.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load reads and parses the file, returning a flattened record.
func (f *fileSource) Load(ctx context.Context) (*fieldcheck.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required data file not found: %s: %w", f.path, err)
			}
			return fieldcheck.NewRecord(), nil
		}
		return nil, fmt.Errorf("read data file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = InferFormat(f.path)
	}

	record := fieldcheck.NewRecord()
	name := f.Name()

	switch format {
	case "yaml", "yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
		if err := flattenNode("", &doc, record, name); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
	case "json":
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", f.path, err)
		}
		flattenMap("", raw, record, name)
	case "toml":
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", f.path, err)
		}
		flattenMap("", raw, record, name)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	return record, nil
}

// flattenNode walks a YAML node tree in document order.
func flattenNode(prefix string, node *yaml.Node, record *fieldcheck.Record, source string) error {
	switch node.Kind {
	case 0:
		// Empty document.
		return nil
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := flattenNode(prefix, child, record, source); err != nil {
				return err
			}
		}
		return nil
	case yaml.AliasNode:
		return flattenNode(prefix, node.Alias, record, source)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := normalize.JoinPath(prefix, node.Content[i].Value)
			if err := flattenNode(key, node.Content[i+1], record, source); err != nil {
				return err
			}
		}
		return nil
	default:
		if prefix == "" {
			return nil
		}
		var value any
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("decode %s: %w", prefix, err)
		}
		record.SetFrom(prefix, value, source)
		return nil
	}
}

// flattenMap flattens nested maps to dot-separated keys in sorted order.
func flattenMap(prefix string, value any, record *fieldcheck.Record, source string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			flattenMap(normalize.JoinPath(prefix, key), v[key], record, source)
		}
	default:
		if prefix != "" {
			record.SetFrom(prefix, value, source)
		}
	}
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

// InferFormat maps a file extension to "yaml", "json" or "toml".
// Unknown extensions yield "".
func InferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
