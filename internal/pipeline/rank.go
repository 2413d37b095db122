package pipeline

import (
	"sort"

	"oecdhw/internal/schema"
)

// RankYears are the anchor years the percentile ranks are computed for. A
// country must have data for all of them to enter this stage at all.
var RankYears = []int{2000, 2007, 2024}

// rankChangeYears are the earlier endpoints of the rank-delta columns.
var rankChangeYears = []int{2000, 2007}

// RankCountries restricts the wide rows to countries with values for every
// rank year, then computes each country's percentile rank per rank year and
// the rank deltas against 2024.
//
// The rank is the PERCENT_RANK formula computed explicitly: count of values
// strictly less than x over N-1. Ties share the same strictly-less count and
// therefore the same rank. With a single retained country the rank is 0.
func RankCountries(rows []schema.CountryWideRow) []schema.RankedCountryRow {
	retained := make([]schema.CountryWideRow, 0, len(rows))
	for _, r := range rows {
		ok := true
		for _, y := range RankYears {
			if r.HW[y] == nil {
				ok = false
				break
			}
		}
		if ok {
			retained = append(retained, r)
		}
	}

	n := len(retained)
	out := make([]schema.RankedCountryRow, 0, n)

	// Sorted value list per rank year; the index of the first occurrence of a
	// value is its strictly-less count, so equal values get equal ranks.
	sorted := make(map[int][]float64, len(RankYears))
	for _, y := range RankYears {
		vals := make([]float64, n)
		for i, r := range retained {
			vals[i] = *r.HW[y]
		}
		sort.Float64s(vals)
		sorted[y] = vals
	}

	for _, r := range retained {
		ranked := schema.RankedCountryRow{
			CountryWideRow: r,
			PR:             make(map[int]float64, len(RankYears)),
			PRChange:       make(map[int]float64, len(rankChangeYears)),
		}
		for _, y := range RankYears {
			var pr float64
			if n > 1 {
				less := sort.SearchFloat64s(sorted[y], *r.HW[y])
				pr = roundTo(float64(less)/float64(n-1), 3)
			}
			ranked.PR[y] = pr
		}
		for _, y := range rankChangeYears {
			ranked.PRChange[y] = roundTo((ranked.PR[latestAnchor]-ranked.PR[y])*100, 2)
		}
		out = append(out, ranked)
	}
	return out
}
