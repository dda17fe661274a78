package tree

import (
	"math"
	"strconv"
	"strings"
)

// FullWidth is the fallback for any width that cannot be resolved.
const FullWidth = 100.0

// WidthPercent resolves a column width descriptor to a percentage. Fractions
// ("1/3") and percentages ("50%", "50") are accepted. Empty, malformed or
// non-positive or non-finite values resolve to FullWidth.
func WidthPercent(spec string) float64 {
	s := strings.TrimSpace(spec)
	if s == "" {
		return FullWidth
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || n <= 0 || d <= 0 {
			return FullWidth
		}
		return finite(n / d * 100)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil || v <= 0 {
		return FullWidth
	}
	return finite(v)
}

func finite(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		return FullWidth
	}
	return p
}

// FormatPercent renders a percentage for style attributes with at most four
// decimals, e.g. "33.3333%" or "50%".
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 4, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}
