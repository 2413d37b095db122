// Package schema defines the typed, per-stage record structs produced by the
// pipeline. Each stage emits a new immutable slice of these records; later
// stages only filter, join, or derive, never mutate rows in place.
package schema

// HoursRecord is one row of the normalized annual-hours-worked table.
// Hours is nil when the raw cell did not normalize to a clean digit string.
type HoursRecord struct {
	CountryCode string `db:"country_code"`
	Country     string `db:"country"`
	Year        int    `db:"year"`
	HoursRaw    string `db:"hours_worked"`
	Hours       *int   `db:"hours"`
}

// WageRecord is one row of the normalized average-annual-wages table,
// restricted to constant-price rows. AvgWage is nil when the raw cell did not
// normalize.
type WageRecord struct {
	CountryCode string `db:"country_code"`
	Country     string `db:"country"`
	UnitMeasure string `db:"unit_measure"`
	PriceBase   string `db:"price_base"`
	Year        int    `db:"year"`
	AvgWageRaw  string `db:"avg_wage"`
	AvgWage     *int   `db:"avg_wage_int"`
}

// HourlyWageRecord is the joined (country, year) row with the derived hourly
// wage, rounded to one decimal place.
type HourlyWageRecord struct {
	Country    string  `db:"country"`
	Year       int     `db:"year"`
	AvgWage    int     `db:"avg_wage"`
	Hours      int     `db:"hours"`
	HourlyWage float64 `db:"hourly_wage"`
}

// CountryWideRow is one country pivoted across the anchor years. HW is keyed
// by anchor year; a nil entry (or missing key) means no data for that year.
// PctChange is keyed by the earlier anchor year of each (Y, latest) pair and
// is nil whenever either endpoint is missing or the denominator is zero.
type CountryWideRow struct {
	Country   string
	HW        map[int]*float64
	PctChange map[int]*float64
}

// RankedCountryRow extends CountryWideRow with percentile ranks per rank
// anchor year and percentile-rank deltas (×100). Only countries with data for
// all rank anchor years reach this stage.
type RankedCountryRow struct {
	CountryWideRow
	PR       map[int]float64
	PRChange map[int]float64
}
