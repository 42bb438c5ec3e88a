package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Candidate is an unvalidated input record as produced by a source.
//
// Latitude and Longitude are loosely typed: float and integer kinds,
// json.Number and decimal strings are accepted; anything else fails
// validation with RuleInvalidCoordinate.
type Candidate struct {
	AncientName string
	ModernName  string
	Latitude    any
	Longitude   any
	Type        string
}

// coordinate coerces a loosely typed coordinate to float64.
func coordinate(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing value")
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", x.String(), err)
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", x, err)
		}
		f = p
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return f, nil
}
