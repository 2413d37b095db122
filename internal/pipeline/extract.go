// Package pipeline implements the deterministic table-to-table stages that
// turn the two raw OECD extracts into the derived hourly-wage tables. Every
// stage is a pure function from one typed slice to the next; orchestration
// and storage wiring live in run.go.
package pipeline

import (
	"strconv"

	"oecdhw/internal/normalize"
	"oecdhw/internal/schema"
	"oecdhw/pkg/records"
)

// constantPrices is the price-base tag of the inflation-adjusted wage series.
// The raw extracts carry this exact capitalization.
const constantPrices = "Constant prices"

// ExtractHours projects raw hours-worked rows into normalized HoursRecords.
// Country names are canonicalized at this point (before any filter or join),
// and the raw obs_value is carried alongside its normalized integer. Rows
// without a parseable year cannot participate in any later stage and are
// dropped; the count of such rows is returned.
func ExtractHours(recs []records.Record) ([]schema.HoursRecord, int) {
	out := make([]schema.HoursRecord, 0, len(recs))
	var dropped int
	for _, rec := range recs {
		year, ok := parseYear(rec.String("time_period"))
		if !ok {
			dropped++
			continue
		}
		h := schema.HoursRecord{
			CountryCode: normalize.CleanText(rec.String("ref_area")),
			Country:     normalize.Country(rec.String("reference_area")),
			Year:        year,
			HoursRaw:    rec.String("obs_value"),
		}
		if v, ok := normalize.Hours(h.HoursRaw); ok {
			h.Hours = &v
		}
		out = append(out, h)
	}
	return out, dropped
}

// ExtractWages projects raw wage rows into normalized WageRecords, keeping
// only constant-price rows (the inflation-adjusted series). The
// significant-digit budget per row comes from normalize.WageDigits, which
// carries the Bulgarian lev redenomination correction. Rows without a
// parseable year are dropped and counted.
func ExtractWages(recs []records.Record) ([]schema.WageRecord, int) {
	out := make([]schema.WageRecord, 0, len(recs))
	var dropped int
	for _, rec := range recs {
		priceBase := normalize.CleanText(rec.String("price_base"))
		if priceBase != constantPrices {
			continue
		}
		year, ok := parseYear(rec.String("time_period"))
		if !ok {
			dropped++
			continue
		}
		w := schema.WageRecord{
			CountryCode: normalize.CleanText(rec.String("ref_area")),
			Country:     normalize.Country(rec.String("reference_area")),
			UnitMeasure: normalize.CleanText(rec.String("unit_measure")),
			PriceBase:   priceBase,
			Year:        year,
			AvgWageRaw:  rec.String("obs_value"),
		}
		k := normalize.WageDigits(w.CountryCode, w.UnitMeasure, w.PriceBase, w.Year)
		if v, ok := normalize.Wage(w.AvgWageRaw, k); ok {
			w.AvgWage = &v
		}
		out = append(out, w)
	}
	return out, dropped
}

// parseYear parses a TIME_PERIOD cell. The extracts carry plain four-digit
// years.
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}
