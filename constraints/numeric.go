package constraints

import (
	"math"
	"strconv"
	"strings"

	"github.com/Azhovan/fieldcheck"
)

// minValue passes when the value is numerically >= opts[0].
func minValue(value any, opts ...fieldcheck.Option) bool {
	n, ok := toFloat(value)
	if !ok {
		return false
	}
	bound, ok := floatOpt(opts, 0)
	return ok && n >= bound
}

// maxValue passes when the value is numerically <= opts[0].
func maxValue(value any, opts ...fieldcheck.Option) bool {
	n, ok := toFloat(value)
	if !ok {
		return false
	}
	bound, ok := floatOpt(opts, 0)
	return ok && n <= bound
}

// between passes when opts[0] <= value <= opts[1].
func between(value any, opts ...fieldcheck.Option) bool {
	n, ok := toFloat(value)
	if !ok {
		return false
	}
	lo, okLo := floatOpt(opts, 0)
	hi, okHi := floatOpt(opts, 1)
	return okLo && okHi && n >= lo && n <= hi
}

func numeric(value any, _ ...fieldcheck.Option) bool {
	_, ok := toFloat(value)
	return ok
}

// integer accepts integer kinds, whole floats and base-10 integer strings.
func integer(value any, _ ...fieldcheck.Option) bool {
	if s, ok := value.(string); ok {
		_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return err == nil
	}
	n, ok := toFloat(value)
	return ok && n == math.Trunc(n)
}

// boolean accepts bool values and the strings strconv.ParseBool understands.
func boolean(value any, _ ...fieldcheck.Option) bool {
	switch v := value.(type) {
	case bool:
		return true
	case string:
		_, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil
	default:
		return false
	}
}
