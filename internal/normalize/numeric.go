// Package normalize repairs the raw values found in OECD statistical extracts
// before they enter the typed pipeline stages.
//
// The numeric half of the package deals with locale-formatted numbers: source
// cells mix '.' as a thousands separator with ',' as a decimal mark, and some
// rows already carry plain digit strings. Repair is fail-soft: a cell that
// does not match the accepted shape is skipped, leaving the derived field
// unset rather than aborting the run.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// The two validation predicates are intentionally distinct and must not be
// unified: hours are checked on the cleaned value, wages on the raw trimmed
// value. The legacy system validated them at different points of its cleanup
// and unifying the checks would change which rows get normalized.
var (
	hoursPattern = regexp.MustCompile(`^[0-9]+$`)
	wagePattern  = regexp.MustCompile(`^[0-9.]+$`)
)

// CleanNumeric strips the '.' thousands separators globally and rewrites the
// ',' decimal mark into a literal decimal point. It assumes at most one
// decimal group remains after thousands-stripping; inputs outside that
// convention simply produce a string the callers' predicates reject.
func CleanNumeric(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ",", ".")
}

// Hours normalizes a raw hours-worked cell into an integer bounded to
// [0, 9999]. ok is false when the cleaned value is not a pure digit string,
// in which case the hours field stays unset.
func Hours(raw string) (int, bool) {
	cleaned := CleanNumeric(strings.TrimSpace(raw))
	if !hoursPattern.MatchString(cleaned) {
		return 0, false
	}
	return reduceDigits(cleaned, 4)
}

// Wage normalizes a raw average-wage cell into an integer bounded to
// [0, 10^k-1]. The pattern check runs on the pre-cleanup value: digits and
// '.' only, so comma-decimal wage cells are rejected outright.
func Wage(raw string, k int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !wagePattern.MatchString(raw) {
		return 0, false
	}
	cleaned := CleanNumeric(raw)
	if cleaned == "" {
		return 0, false
	}
	return reduceDigits(cleaned, k)
}

// bgrExceptionYears enumerates the exact affected years of the Bulgarian lev
// redenomination correction. The set is fixed by the source data; do not
// widen it to a range check.
var bgrExceptionYears = map[int]struct{}{
	2000: {}, 2001: {}, 2002: {}, 2003: {}, 2004: {},
}

// WageDigits selects the significant-digit budget K for a wage row. Every row
// gets K=5 except the Bulgarian lev rows from before the 2005 series break,
// which were recorded at one less order of magnitude and get K=4. The string
// matches are exact, including capitalization.
func WageDigits(countryCode, unitMeasure, priceBase string, year int) int {
	if countryCode == "BGR" && unitMeasure == "BGN" && priceBase == "Constant prices" {
		if _, ok := bgrExceptionYears[year]; ok {
			return 4
		}
	}
	return 5
}

// reduceDigits parses a pure digit string and reduces it to at most k
// significant digits: values longer than k digits are divided by
// 10^(len-k) with half-away-from-zero rounding, shorter values are kept
// as-is. The result is clamped to [0, 10^k-1].
func reduceDigits(digits string, k int) (int, bool) {
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		// Absurdly long digit runs overflow uint64; treat as malformed.
		return 0, false
	}
	if n := len(digits) - k; n > 0 {
		p := pow10(n)
		q := v / p
		if (v%p)*2 >= p {
			q++
		}
		v = q
	}
	if limit := pow10(k) - 1; v > limit {
		v = limit
	}
	return int(v), true
}

func pow10(n int) uint64 {
	p := uint64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
