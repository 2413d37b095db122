package pipeline

import (
	"fmt"

	"oecdhw/internal/schema"
	"oecdhw/internal/storage"
)

// Output table names. The wide and ranked tables keep the names of the
// analysis database consumed by the downstream chart and map reports.
const (
	TableHours  = "hours"
	TableWages  = "wages"
	TableHourly = "hourly_wages"
	TableChange = "oecd_hw_change"
	TableRanked = "oecd_hw_ranked"
)

// hoursColumns defines the hours output table.
func hoursColumns() []storage.Column {
	return []storage.Column{
		{Name: "country_code", Kind: "text"},
		{Name: "country", Kind: "text", NotNull: true},
		{Name: "year", Kind: "integer", NotNull: true},
		{Name: "hours_worked", Kind: "text"},
		{Name: "hours", Kind: "integer"},
	}
}

func hoursRows(in []schema.HoursRecord) [][]any {
	rows := make([][]any, len(in))
	for i, r := range in {
		rows[i] = []any{r.CountryCode, r.Country, r.Year, r.HoursRaw, nilInt(r.Hours)}
	}
	return rows
}

// wagesColumns defines the wages output table.
func wagesColumns() []storage.Column {
	return []storage.Column{
		{Name: "country_code", Kind: "text"},
		{Name: "country", Kind: "text", NotNull: true},
		{Name: "unit_measure", Kind: "text"},
		{Name: "price_base", Kind: "text"},
		{Name: "avg_wage", Kind: "text"},
		{Name: "year", Kind: "integer", NotNull: true},
		{Name: "avg_wage_int", Kind: "integer"},
	}
}

func wagesRows(in []schema.WageRecord) [][]any {
	rows := make([][]any, len(in))
	for i, r := range in {
		rows[i] = []any{r.CountryCode, r.Country, r.UnitMeasure, r.PriceBase, r.AvgWageRaw, r.Year, nilInt(r.AvgWage)}
	}
	return rows
}

// hourlyColumns defines the joined hourly-wage table.
func hourlyColumns() []storage.Column {
	return []storage.Column{
		{Name: "country", Kind: "text", NotNull: true},
		{Name: "year", Kind: "integer", NotNull: true},
		{Name: "avg_wage", Kind: "integer", NotNull: true},
		{Name: "hours", Kind: "integer", NotNull: true},
		{Name: "hourly_wage", Kind: "real", NotNull: true},
	}
}

func hourlyRows(in []schema.HourlyWageRecord) [][]any {
	rows := make([][]any, len(in))
	for i, r := range in {
		rows[i] = []any{r.Country, r.Year, r.AvgWage, r.Hours, r.HourlyWage}
	}
	return rows
}

// changeColumns defines the wide change table: one hw_<year> column per
// anchor year and one pct_change_<y>_<latest> column per change pair.
func changeColumns() []storage.Column {
	cols := []storage.Column{{Name: "country", Kind: "text", NotNull: true}}
	for _, y := range AnchorYears {
		cols = append(cols, storage.Column{Name: fmt.Sprintf("hw_%d", y), Kind: "real"})
	}
	for _, y := range changeYears {
		cols = append(cols, storage.Column{Name: fmt.Sprintf("pct_change_%d_%d", y, latestAnchor), Kind: "real"})
	}
	return cols
}

func changeRows(in []schema.CountryWideRow) [][]any {
	rows := make([][]any, len(in))
	for i, r := range in {
		row := make([]any, 0, 1+len(AnchorYears)+len(changeYears))
		row = append(row, r.Country)
		for _, y := range AnchorYears {
			row = append(row, nilFloat(r.HW[y]))
		}
		for _, y := range changeYears {
			row = append(row, nilFloat(r.PctChange[y]))
		}
		rows[i] = row
	}
	return rows
}

// rankedColumns extends the wide columns with pr_<year> and
// pr_change_<y>_<latest> columns.
func rankedColumns() []storage.Column {
	cols := changeColumns()
	for _, y := range RankYears {
		cols = append(cols, storage.Column{Name: fmt.Sprintf("pr_%d", y), Kind: "real", NotNull: true})
	}
	for _, y := range rankChangeYears {
		cols = append(cols, storage.Column{Name: fmt.Sprintf("pr_change_%d_%d", y, latestAnchor), Kind: "real", NotNull: true})
	}
	return cols
}

func rankedRows(in []schema.RankedCountryRow) [][]any {
	wide := make([]schema.CountryWideRow, len(in))
	for i, r := range in {
		wide[i] = r.CountryWideRow
	}
	rows := changeRows(wide)
	for i, r := range in {
		for _, y := range RankYears {
			rows[i] = append(rows[i], r.PR[y])
		}
		for _, y := range rankChangeYears {
			rows[i] = append(rows[i], r.PRChange[y])
		}
	}
	return rows
}

// nilInt converts *int into a driver-friendly value: nil stays nil (SQL
// NULL), non-nil dereferences.
func nilInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nilFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
