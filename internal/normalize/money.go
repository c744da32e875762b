package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCents parses a decimal dollar amount string into int64 cents.
// Uses math.Round to avoid truncation bias. An unparseable amount is an
// error: paid amounts drive the duplicate filter and a bad value has to
// fail the pass rather than silently become zero.
func ParseCents(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse paid amount %q: %w", s, err)
	}
	return int64(math.Round(v * 100)), nil
}

// ParseQuantity parses a nullable quantity string into a nullable float64.
// Unlike paid amounts, an unparseable quantity becomes nil and the line
// still participates in grouping with the null as its own key value.
func ParseQuantity(s *string) *float64 {
	if s == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	return &v
}
