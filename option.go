package fieldcheck

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionKind identifies which variant an Option holds.
type OptionKind uint8

const (
	KindString OptionKind = iota
	KindNumber
	KindList
)

func (k OptionKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Option is a positional rule argument. It is either a string, a number,
// or a list of strings. The zero value is the empty string option.
type Option struct {
	kind OptionKind
	str  string
	num  float64
	list []string
}

// StringOption returns a string option.
func StringOption(s string) Option {
	return Option{kind: KindString, str: s}
}

// NumberOption returns a numeric option.
func NumberOption(n float64) Option {
	return Option{kind: KindNumber, num: n}
}

// ListOption returns a list option. The values are copied.
func ListOption(values ...string) Option {
	list := make([]string, len(values))
	copy(list, values)
	return Option{kind: KindList, list: list}
}

// Options converts plain strings into string options, the form the
// shorthand parser produces.
func Options(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = StringOption(v)
	}
	return opts
}

// OptionOf converts a decoded value (as produced by YAML, JSON or TOML
// decoders) into an Option. Slices become list options, numbers become
// number options, and everything else is rendered with fmt.
func OptionOf(v any) Option {
	switch val := v.(type) {
	case Option:
		return val
	case string:
		return StringOption(val)
	case int:
		return NumberOption(float64(val))
	case int64:
		return NumberOption(float64(val))
	case uint64:
		return NumberOption(float64(val))
	case float64:
		return NumberOption(val)
	case []string:
		return ListOption(val...)
	case []any:
		list := make([]string, len(val))
		for i, item := range val {
			list[i] = fmt.Sprint(item)
		}
		return Option{kind: KindList, list: list}
	default:
		return StringOption(fmt.Sprint(val))
	}
}

// Kind reports the variant held by o.
func (o Option) Kind() OptionKind {
	return o.kind
}

// String renders the option for message templates. Lists are joined
// with ", " and numbers use the shortest decimal form.
func (o Option) String() string {
	switch o.kind {
	case KindNumber:
		return strconv.FormatFloat(o.num, 'f', -1, 64)
	case KindList:
		return strings.Join(o.list, ", ")
	default:
		return o.str
	}
}

// Float returns the numeric value of o. String options are parsed.
func (o Option) Float() (float64, error) {
	switch o.kind {
	case KindNumber:
		return o.num, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(o.str), 64)
		if err != nil {
			return 0, fmt.Errorf("option %q is not a number: %w", o.str, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("list option cannot be used as a number")
	}
}

// Int returns the integer value of o. Fractional numbers are rejected.
func (o Option) Int() (int, error) {
	f, err := o.Float()
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("option %s is not an integer", o.String())
	}
	return int(f), nil
}

// Strings returns the list values of o. Scalar options yield a single
// element slice.
func (o Option) Strings() []string {
	if o.kind == KindList {
		out := make([]string, len(o.list))
		copy(out, o.list)
		return out
	}
	return []string{o.String()}
}

// Equal reports whether two options hold the same variant and value.
func (o Option) Equal(other Option) bool {
	if o.kind != other.kind {
		return false
	}
	switch o.kind {
	case KindNumber:
		return o.num == other.num
	case KindList:
		if len(o.list) != len(other.list) {
			return false
		}
		for i := range o.list {
			if o.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return o.str == other.str
	}
}
