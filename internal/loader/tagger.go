package loader

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

var (
	intTextPattern   = regexp.MustCompile(`^[+-]?\d+$`)
	floatTextPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$|^(?i:[+-]?(nan|inf|infinity))$`)
)

// TagText tags a column read as text. When every present value is an
// integer the column is INT, when every present value is a number it is
// FLOAT, otherwise STRING. Numeric columns get their values converted.
func TagText(values []any) (core.ColumnDataType, []any) {
	allInt, allFloat, present := true, true, 0
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			if v != nil {
				return core.TypeString, values
			}
			continue
		}
		present++
		if !intTextPattern.MatchString(s) {
			allInt = false
		}
		if !floatTextPattern.MatchString(s) {
			allFloat = false
		}
		if !allInt && !allFloat {
			return core.TypeString, values
		}
	}
	if present == 0 {
		return core.TypeString, values
	}

	out := make([]any, len(values))
	if allInt {
		for i, v := range values {
			if v == nil {
				continue
			}
			n, err := strconv.ParseInt(v.(string), 10, 64)
			if err != nil {
				// out of int64 range
				return TagText(floatOnly(values))
			}
			out[i] = n
		}
		return core.TypeInt, out
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		f, err := strconv.ParseFloat(v.(string), 64)
		if err != nil && !math.IsInf(f, 0) {
			return core.TypeString, values
		}
		out[i] = f
	}
	return core.TypeFloat, out
}

// floatOnly converts values to float64 for integers too wide for int64.
func floatOnly(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		f, _ := strconv.ParseFloat(v.(string), 64)
		out[i] = f
	}
	return out
}

// TagNative tags a column of decoded values without reinterpreting strings.
// A column mixing kinds is STRING.
func TagNative(values []any) core.ColumnDataType {
	kinds := map[core.ColumnDataType]bool{}
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			continue
		case bool:
			kinds[core.TypeBoolean] = true
		case string:
			kinds[core.TypeString] = true
		case time.Time:
			kinds[core.TypeDatetime] = true
		case float32, float64:
			kinds[core.TypeFloat] = true
		default:
			if core.IsNumber(x) {
				kinds[core.TypeInt] = true
			} else {
				kinds[core.TypeUnknown] = true
			}
		}
	}

	switch {
	case len(kinds) == 0:
		return core.TypeString
	case len(kinds) == 1:
		for k := range kinds {
			return k
		}
	case len(kinds) == 2 && kinds[core.TypeInt] && kinds[core.TypeFloat]:
		return core.TypeFloat
	}
	return core.TypeString
}
