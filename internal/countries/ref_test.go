package countries

import (
	"testing"

	"oecdhw/pkg/records"
)

func refFixture() *Ref {
	return NewRef([]records.Record{
		{"country": "Germany", "continent": "Europe"},
		{"country": "France", "continent": "Europe"},
		{"country": "Japan", "continent": "Asia"},
		{"country": "Turkey", "continent": "Asia"},
		{"country": "", "continent": "Europe"},   // ignored
		{"country": "Narnia", "continent": nil},  // ignored
	})
}

func TestContinent(t *testing.T) {
	ref := refFixture()

	tests := []struct {
		country string
		want    string
		ok      bool
	}{
		{"Germany", "Europe", true},
		{"germany", "Europe", true}, // lookups are case-insensitive
		{"GERMANY", "Europe", true},
		{"Japan", "Asia", true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ref.Continent(tt.country)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Continent(%q) = (%q, %v), want (%q, %v)", tt.country, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsEurope(t *testing.T) {
	ref := refFixture()

	if !ref.IsEurope("France") {
		t.Errorf("IsEurope(France) = false, want true")
	}
	if ref.IsEurope("Turkey") {
		t.Errorf("IsEurope(Turkey) = true, want false")
	}
	// Absent from the reference counts as non-Europe, never an error.
	if ref.IsEurope("Atlantis") {
		t.Errorf("IsEurope(Atlantis) = true, want false")
	}
}

func TestLenSkipsIncompleteRows(t *testing.T) {
	if got := refFixture().Len(); got != 4 {
		t.Fatalf("Len() = %d, want 4", got)
	}
}
