package nyaa

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeUnits = map[string]float64{
	"Bytes": 1,
	"KiB":   1 << 10,
	"MiB":   1 << 20,
	"GiB":   1 << 30,
	"TiB":   1 << 40,
}

// ParseSize converts a size such as "1.4 GiB" to bytes, rounded to the
// nearest byte. Only the binary units the site uses are accepted.
func ParseSize(s string) (uint64, error) {
	number, unit, found := strings.Cut(s, " ")
	if !found {
		return 0, fmt.Errorf("invalid size %q: missing unit", s)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("invalid size %q: unknown unit %q", s, unit)
	}

	coefficient, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if coefficient < 0 || math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return 0, fmt.Errorf("invalid size %q: out of range", s)
	}

	bytes := math.Round(coefficient * multiplier)
	if bytes >= math.MaxUint64 {
		return 0, fmt.Errorf("invalid size %q: out of range", s)
	}
	return uint64(bytes), nil
}
