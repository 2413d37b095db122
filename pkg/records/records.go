// Package records defines the loosely-typed row representation handed from
// the CSV parser to the typed extractors. A Record is a single parsed row
// keyed by canonical column name; values are raw strings (or nil for empty
// cells) until an extractor converts them into a typed schema struct.
package records

import "strings"

// Record is one parsed row, keyed by canonical column name.
type Record map[string]any

// String returns the trimmed string value for key, or "" when the key is
// missing, nil, or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}
