package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// textCleaner canonicalizes the display strings coming out of OECD extracts:
// NFC composition plus mapping of the no-break space variants (U+00A0,
// U+202F) onto plain ASCII space so TrimSpace can see them.
var textCleaner = transform.Chain(
	norm.NFD,
	runes.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u202f':
			return ' '
		}
		return r
	}),
	norm.NFC,
)

// CleanText applies the unicode cleanup chain and trims surrounding
// whitespace. On a transform error the input is returned trimmed but
// otherwise untouched.
func CleanText(s string) string {
	out, _, err := transform.String(textCleaner, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// countryRenames maps source display names onto the canonical names used by
// every later stage. Applied once at ingestion so filters and joins never see
// the source spelling.
var countryRenames = map[string]string{
	"Slovak Republic": "Slovakia",
}

// Country cleans a raw country display name and applies the canonical
// renames.
func Country(s string) string {
	s = CleanText(s)
	if canonical, ok := countryRenames[s]; ok {
		return canonical
	}
	return s
}
