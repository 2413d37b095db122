package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"oecdhw/internal/schema"
)

// pairKey hashes a (country, year) business key. Country is lowercased so
// key equality matches the case-insensitive comparisons used elsewhere in
// the pipeline.
func pairKey(country string, year int) uint64 {
	var b strings.Builder
	b.WriteString(strings.ToLower(country))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(year))
	return xxh3.HashString(b.String())
}

// DedupHours enforces uniqueness of (country, year) in the hours table with
// keep-first semantics, returning the number of duplicates dropped. The raw
// extracts are unique-keyed in practice; this stage guarantees the invariant
// the join depends on rather than guessing a resolution downstream.
func DedupHours(in []schema.HoursRecord) ([]schema.HoursRecord, int) {
	seen := make(map[uint64]struct{}, len(in))
	out := make([]schema.HoursRecord, 0, len(in))
	var dropped int
	for _, r := range in {
		k := pairKey(r.Country, r.Year)
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}

// DedupWages is DedupHours for the wages table. It runs after the unit
// filter, at which point at most one row per (country, year) should remain.
func DedupWages(in []schema.WageRecord) ([]schema.WageRecord, int) {
	seen := make(map[uint64]struct{}, len(in))
	out := make([]schema.WageRecord, 0, len(in))
	var dropped int
	for _, r := range in {
		k := pairKey(r.Country, r.Year)
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}

// JoinHourly inner-joins hours and wages on (country, year) and derives the
// hourly wage, rounded to one decimal place. Rows missing on either side,
// rows whose normalized value is unset, and rows with zero hours produce no
// output row. Output order follows the wages side, so the result is
// deterministic for a given input.
func JoinHourly(hours []schema.HoursRecord, wages []schema.WageRecord) []schema.HourlyWageRecord {
	idx := make(map[uint64]schema.HoursRecord, len(hours))
	for _, h := range hours {
		if h.Hours == nil {
			continue
		}
		idx[pairKey(h.Country, h.Year)] = h
	}

	out := make([]schema.HourlyWageRecord, 0, len(wages))
	for _, w := range wages {
		if w.AvgWage == nil {
			continue
		}
		h, ok := idx[pairKey(w.Country, w.Year)]
		if !ok || *h.Hours == 0 {
			continue
		}
		out = append(out, schema.HourlyWageRecord{
			Country:    w.Country,
			Year:       w.Year,
			AvgWage:    *w.AvgWage,
			Hours:      *h.Hours,
			HourlyWage: roundTo(float64(*w.AvgWage)/float64(*h.Hours), 1),
		})
	}
	return out
}

// roundTo rounds v to the given number of decimal places, half away from
// zero.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
