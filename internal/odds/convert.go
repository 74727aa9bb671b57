package odds

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToDecimal converts American odds to decimal odds (e.g., +150 -> 2.5,
// -200 -> 1.5). A nil input yields nil. Zero is not valid American odds;
// callers must not pass it.
func ToDecimal(american *int) *float64 {
	if american == nil {
		return nil
	}
	a := *american
	var d float64
	if a > 0 {
		d = float64(a)/100 + 1
	} else {
		d = 100/math.Abs(float64(a)) + 1
	}
	return &d
}

// Implied returns the market-implied win probability for decimal odds.
func Implied(decimal float64) float64 {
	if decimal <= 0 {
		return 0
	}
	return 1 / decimal
}

// FromPayloadValue converts a loosely-typed American odds value as it
// appears in sportsbook JSON (float64 from encoding/json, json.Number,
// string like "+150", or int) into decimal odds. Returns nil when the
// value is absent or unparsable.
func FromPayloadValue(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		a := int(x)
		if a == 0 {
			return nil
		}
		return ToDecimal(&a)
	case int:
		if x == 0 {
			return nil
		}
		return ToDecimal(&x)
	case json.Number:
		a, err := strconv.Atoi(x.String())
		if err != nil || a == 0 {
			return nil
		}
		return ToDecimal(&a)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(x, "+"))
		// Some payloads render the minus sign as U+2212.
		s = strings.ReplaceAll(s, "−", "-")
		a, err := strconv.Atoi(s)
		if err != nil || a == 0 {
			return nil
		}
		return ToDecimal(&a)
	default:
		return nil
	}
}
