package pricing

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ToNumber converts a customer value to a number. Customer values are
// never rejected: nil, blank, malformed or non-finite values become 0.
func ToNumber(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0
		}
	}
	if v == nil {
		return 0
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToText converts a customer value to the text it represents.
func ToText(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
