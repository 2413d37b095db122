package pipeline

import (
	"reflect"
	"testing"

	"oecdhw/internal/schema"
)

func intp(v int) *int { return &v }

func TestDedupHours(t *testing.T) {
	in := []schema.HoursRecord{
		{Country: "Germany", Year: 2024, Hours: intp(1340)},
		{Country: "germany", Year: 2024, Hours: intp(9999)}, // dup, case folded
		{Country: "Germany", Year: 2023, Hours: intp(1343)},
		{Country: "France", Year: 2024, Hours: intp(1494)},
	}

	got, dropped := DedupHours(in)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(got) != 3 {
		t.Fatalf("kept %d rows, want 3", len(got))
	}
	// keep-first: the surviving Germany/2024 row is the original one
	if *got[0].Hours != 1340 {
		t.Errorf("kept hours = %d, want 1340", *got[0].Hours)
	}
}

func TestDedupWages(t *testing.T) {
	in := []schema.WageRecord{
		{Country: "Turkey", Year: 2007, AvgWage: intp(30168)},
		{Country: "Turkey", Year: 2007, AvgWage: intp(1)},
	}
	got, dropped := DedupWages(in)
	if dropped != 1 || len(got) != 1 || *got[0].AvgWage != 30168 {
		t.Fatalf("got %d rows (dropped %d), first wage %v", len(got), dropped, *got[0].AvgWage)
	}
}

/*
TestJoinHourly covers the inner join and its guards:

  - matched pairs yield avg_wage / hours rounded to one decimal
  - rows missing on either side produce nothing
  - nil normalized values and zero hours produce nothing
  - output order follows the wages side
*/
func TestJoinHourly(t *testing.T) {
	hours := []schema.HoursRecord{
		{Country: "Germany", Year: 2024, Hours: intp(1340)},
		{Country: "France", Year: 2024, Hours: intp(1494)},
		{Country: "Poland", Year: 2024, Hours: nil},
		{Country: "Norway", Year: 2024, Hours: intp(0)},
	}
	wages := []schema.WageRecord{
		{Country: "France", Year: 2024, AvgWage: intp(52764)},
		{Country: "Germany", Year: 2024, AvgWage: intp(63521)},
		{Country: "Germany", Year: 1999, AvgWage: intp(50000)}, // no hours side
		{Country: "Poland", Year: 2024, AvgWage: intp(40000)},  // nil hours
		{Country: "Norway", Year: 2024, AvgWage: intp(60000)},  // zero hours
		{Country: "Spain", Year: 2024, AvgWage: nil},           // nil wage
	}

	got := JoinHourly(hours, wages)

	want := []schema.HourlyWageRecord{
		{Country: "France", Year: 2024, AvgWage: 52764, Hours: 1494, HourlyWage: 35.3},
		{Country: "Germany", Year: 2024, AvgWage: 63521, Hours: 1340, HourlyWage: 47.4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("JoinHourly = %+v, want %+v", got, want)
	}
}

// After dedup on both sides the join emits at most one row per (country,
// year), even when the raw inputs carried duplicates.
func TestJoinHourlyUniqueKeys(t *testing.T) {
	hours := []schema.HoursRecord{
		{Country: "Germany", Year: 2024, Hours: intp(1340)},
		{Country: "Germany", Year: 2024, Hours: intp(1500)},
	}
	wages := []schema.WageRecord{
		{Country: "Germany", Year: 2024, AvgWage: intp(63521)},
		{Country: "Germany", Year: 2024, AvgWage: intp(70000)},
	}

	h, _ := DedupHours(hours)
	w, _ := DedupWages(wages)
	got := JoinHourly(h, w)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].AvgWage != 63521 || got[0].Hours != 1340 {
		t.Errorf("row = %+v, want the first-seen pair", got[0])
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{35.2851, 1, 35.3},
		{35.25, 1, 35.3},
		{35.24, 1, 35.2},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{17.406, 2, 17.41},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := roundTo(tt.v, tt.places); got != tt.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}
