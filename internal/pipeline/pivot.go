package pipeline

import (
	"sort"

	"oecdhw/internal/schema"
)

// AnchorYears are the fixed reference years extracted by the wide pivot.
var AnchorYears = []int{2000, 2007, 2008, 2010, 2014, 2024}

// latestAnchor is the year every percentage change is computed against.
const latestAnchor = 2024

// changeYears are the earlier endpoints of the change columns.
var changeYears = []int{2000, 2007, 2008, 2010, 2014}

// PivotWide groups hourly-wage rows by country and produces one row per
// country with a value per anchor year (nil where no data exists) and a
// percentage change per (Y, 2024) pair. The input is unique-keyed on
// (country, year) by the upstream dedup; should a duplicate still appear,
// the first occurrence wins. Output rows are sorted by country name.
func PivotWide(in []schema.HourlyWageRecord) []schema.CountryWideRow {
	anchors := make(map[int]struct{}, len(AnchorYears))
	for _, y := range AnchorYears {
		anchors[y] = struct{}{}
	}

	byCountry := make(map[string]map[int]float64)
	for _, rec := range in {
		if _, ok := anchors[rec.Year]; !ok {
			continue
		}
		years, ok := byCountry[rec.Country]
		if !ok {
			years = make(map[int]float64, len(AnchorYears))
			byCountry[rec.Country] = years
		}
		if _, dup := years[rec.Year]; dup {
			continue // keep-first
		}
		years[rec.Year] = rec.HourlyWage
	}

	names := make([]string, 0, len(byCountry))
	for c := range byCountry {
		names = append(names, c)
	}
	sort.Strings(names)

	out := make([]schema.CountryWideRow, 0, len(names))
	for _, c := range names {
		years := byCountry[c]
		row := schema.CountryWideRow{
			Country:   c,
			HW:        make(map[int]*float64, len(AnchorYears)),
			PctChange: make(map[int]*float64, len(changeYears)),
		}
		for _, y := range AnchorYears {
			if v, ok := years[y]; ok {
				row.HW[y] = ptr(v)
			} else {
				row.HW[y] = nil
			}
		}
		latest := row.HW[latestAnchor]
		for _, y := range changeYears {
			base := row.HW[y]
			if base == nil || *base == 0 || latest == nil {
				row.PctChange[y] = nil
				continue
			}
			row.PctChange[y] = ptr(roundTo((*latest-*base) / *base*100, 2))
		}
		out = append(out, row)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
