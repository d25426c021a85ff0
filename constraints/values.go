package constraints

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Azhovan/fieldcheck"
)

// toFloat converts numeric values and numeric strings to float64.
func toFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// sizeOf returns the rune count of strings and the length of slices,
// arrays and maps.
func sizeOf(value any) (int, bool) {
	if value == nil {
		return 0, false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(v.String()), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len(), true
	default:
		return 0, false
	}
}

// toText renders scalar values as strings. Composite values are rejected.
func toText(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	default:
		return "", false
	}
}

// floatOpt reads option i as a number.
func floatOpt(opts []fieldcheck.Option, i int) (float64, bool) {
	if i >= len(opts) {
		return 0, false
	}
	f, err := opts[i].Float()
	if err != nil {
		return 0, false
	}
	return f, true
}

// intOpt reads option i as an integer.
func intOpt(opts []fieldcheck.Option, i int) (int, bool) {
	if i >= len(opts) {
		return 0, false
	}
	n, err := opts[i].Int()
	if err != nil {
		return 0, false
	}
	return n, true
}
