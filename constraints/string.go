package constraints

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/Azhovan/fieldcheck"
)

var (
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// required fails for nil, blank strings and empty collections. Zero numbers
// and false are present values.
func required(value any, _ ...fieldcheck.Option) bool {
	if value == nil {
		return false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) != ""
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}

// length passes when opts[0] <= size, and size <= opts[1] if given.
func length(value any, opts ...fieldcheck.Option) bool {
	size, ok := sizeOf(value)
	if !ok {
		return false
	}

	lo, ok := intOpt(opts, 0)
	if !ok || size < lo {
		return false
	}
	if len(opts) < 2 {
		return true
	}

	hi, ok := intOpt(opts, 1)
	return ok && size <= hi
}

func minLength(value any, opts ...fieldcheck.Option) bool {
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	lo, ok := intOpt(opts, 0)
	return ok && size >= lo
}

func maxLength(value any, opts ...fieldcheck.Option) bool {
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	hi, ok := intOpt(opts, 0)
	return ok && size <= hi
}

// oneOf passes when the value's text form equals one of the options.
// List options contribute each of their elements.
func oneOf(value any, opts ...fieldcheck.Option) bool {
	text, ok := toText(value)
	if !ok {
		return false
	}

	for _, opt := range opts {
		for _, allowed := range opt.Strings() {
			if text == allowed {
				return true
			}
		}
	}
	return false
}

func alpha(value any, _ ...fieldcheck.Option) bool {
	s, ok := value.(string)
	return ok && alphaRegex.MatchString(s)
}

func alphanumeric(value any, _ ...fieldcheck.Option) bool {
	s, ok := value.(string)
	return ok && alphanumericRegex.MatchString(s)
}

// matchRegex passes when the value's text form matches the pattern in
// opts[0]. Invalid patterns never match.
func matchRegex(value any, opts ...fieldcheck.Option) bool {
	text, ok := toText(value)
	if !ok || len(opts) == 0 {
		return false
	}

	re, err := regexp.Compile(opts[0].String())
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
