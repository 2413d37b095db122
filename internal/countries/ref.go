// Package countries wraps the external country→continent reference table.
// The table is read-only input; this system never owns or updates it.
package countries

import (
	"strings"

	"oecdhw/internal/normalize"
	"oecdhw/pkg/records"
)

// Ref is an in-memory country→continent lookup. Lookups are
// case-insensitive, matching the collation behavior of the analysis database
// this pipeline reproduces.
type Ref struct {
	continents map[string]string
}

// NewRef builds a Ref from parsed reference rows with "country" and
// "continent" columns. Rows missing either value are ignored.
func NewRef(recs []records.Record) *Ref {
	m := make(map[string]string, len(recs))
	for _, rec := range recs {
		country := normalize.CleanText(rec.String("country"))
		continent := normalize.CleanText(rec.String("continent"))
		if country == "" || continent == "" {
			continue
		}
		m[strings.ToLower(country)] = continent
	}
	return &Ref{continents: m}
}

// Continent returns the continent for country, or ok=false when the country
// is absent from the reference.
func (r *Ref) Continent(country string) (string, bool) {
	c, ok := r.continents[strings.ToLower(normalize.CleanText(country))]
	return c, ok
}

// IsEurope reports whether the reference places country in Europe. A country
// absent from the reference is treated as non-Europe.
func (r *Ref) IsEurope(country string) bool {
	c, ok := r.Continent(country)
	return ok && strings.EqualFold(c, "Europe")
}

// Len returns the number of reference entries, for run-summary logging.
func (r *Ref) Len() int { return len(r.continents) }
