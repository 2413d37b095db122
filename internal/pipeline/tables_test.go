package pipeline

import (
	"testing"

	"oecdhw/internal/schema"
)

func TestChangeColumns(t *testing.T) {
	cols := changeColumns()
	want := []string{
		"country",
		"hw_2000", "hw_2007", "hw_2008", "hw_2010", "hw_2014", "hw_2024",
		"pct_change_2000_2024", "pct_change_2007_2024", "pct_change_2008_2024",
		"pct_change_2010_2024", "pct_change_2014_2024",
	}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i, w := range want {
		if cols[i].Name != w {
			t.Errorf("column %d = %q, want %q", i, cols[i].Name, w)
		}
	}
}

func TestRankedColumns(t *testing.T) {
	cols := rankedColumns()
	tail := []string{"pr_2000", "pr_2007", "pr_2024", "pr_change_2000_2024", "pr_change_2007_2024"}
	base := len(changeColumns())
	if len(cols) != base+len(tail) {
		t.Fatalf("got %d columns, want %d", len(cols), base+len(tail))
	}
	for i, w := range tail {
		if cols[base+i].Name != w {
			t.Errorf("column %d = %q, want %q", base+i, cols[base+i].Name, w)
		}
	}
}

// Nil normalized values must surface as SQL NULL, not zero.
func TestRowsNullHandling(t *testing.T) {
	h := hoursRows([]schema.HoursRecord{{Country: "X", Year: 2024, HoursRaw: "1421,5", Hours: nil}})
	if h[0][4] != nil {
		t.Errorf("nil hours rendered as %v, want nil", h[0][4])
	}

	row := wideRow("X", map[int]float64{2024: 12})
	c := changeRows([]schema.CountryWideRow{row})
	if len(c[0]) != len(changeColumns()) {
		t.Fatalf("row width %d != column count %d", len(c[0]), len(changeColumns()))
	}
	// hw_2000 is absent, hw_2024 is set
	if c[0][1] != nil {
		t.Errorf("missing anchor rendered as %v, want nil", c[0][1])
	}
	if c[0][6] != 12.0 {
		t.Errorf("hw_2024 = %v, want 12", c[0][6])
	}
}
