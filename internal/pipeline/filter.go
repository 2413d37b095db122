package pipeline

import (
	"strings"

	"oecdhw/internal/countries"
	"oecdhw/internal/schema"
)

// countryOverrides lists countries kept by the Europe filter even though the
// reference places them outside Europe (or omits them): Turkey, and the OECD
// aggregate pseudo-country. The lowercase literals come from the legacy
// system; matching is case-insensitive, reproducing the ci collation of the
// database it ran on (the data itself is title-cased).
var countryOverrides = map[string]struct{}{
	"turkey": {},
	"oecd":   {},
}

// usdPPPUnit tags wage rows expressed in inflation-adjusted USD at purchasing
// power parity.
const usdPPPUnit = "USD_PPP"

// nonPPPCountries lack a USD-PPP wage series entirely; their
// national-currency rows pass the unit filter instead.
var nonPPPCountries = map[string]struct{}{
	"Bulgaria": {},
	"Romania":  {},
	"Croatia":  {},
}

// FilterEurope keeps wage rows whose country the reference places in Europe,
// plus the explicit overrides. A country absent from the reference counts as
// non-Europe.
func FilterEurope(in []schema.WageRecord, ref *countries.Ref) []schema.WageRecord {
	out := make([]schema.WageRecord, 0, len(in))
	for _, w := range in {
		if ref.IsEurope(w.Country) {
			out = append(out, w)
			continue
		}
		if _, ok := countryOverrides[strings.ToLower(w.Country)]; ok {
			out = append(out, w)
		}
	}
	return out
}

// FilterUnits keeps USD-PPP rows, plus all rows of the countries that have no
// USD-PPP series. It must run after FilterEurope: the country filter narrows
// the country set the unit filter operates within.
func FilterUnits(in []schema.WageRecord) []schema.WageRecord {
	out := make([]schema.WageRecord, 0, len(in))
	for _, w := range in {
		if w.UnitMeasure == usdPPPUnit {
			out = append(out, w)
			continue
		}
		if _, ok := nonPPPCountries[w.Country]; ok {
			out = append(out, w)
		}
	}
	return out
}
