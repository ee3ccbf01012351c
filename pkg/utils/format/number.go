package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

// ParseNumber parses a trimmed numeric string. Empty, malformed and non-finite
// inputs report false.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Number renders v the shortest way that round-trips ("2", "2.5", "80").
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Grouped renders v with thousands separators and at most three fraction digits.
func Grouped(v float64) string {
	return humanize.Commaf(math.Round(v*1000) / 1000)
}

// Price turns the raw price field into display text. Empty input gives "", numeric
// input gets a currency symbol and grouping, anything else passes through verbatim.
func Price(raw, symbol string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	v, ok := ParseNumber(raw)
	if !ok {
		return symbol + raw
	}
	return symbol + Grouped(v)
}
