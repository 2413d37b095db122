package pipeline

import (
	"testing"

	"oecdhw/pkg/records"
)

func TestExtractHours(t *testing.T) {
	recs := []records.Record{
		{"ref_area": "DEU", "reference_area": "Germany", "time_period": "2024", "obs_value": "1342"},
		{"ref_area": "SVK", "reference_area": "Slovak Republic", "time_period": "2024", "obs_value": "1698"},
		{"ref_area": "FRA", "reference_area": "France", "time_period": "2024", "obs_value": "1.494"},
		{"ref_area": "AUT", "reference_area": "Austria", "time_period": "2024", "obs_value": "1421,5"},
		{"ref_area": "ITA", "reference_area": "Italy", "time_period": "", "obs_value": "1694"},
	}

	got, dropped := ExtractHours(recs)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1 (missing year)", dropped)
	}
	if len(got) != 4 {
		t.Fatalf("rows = %d, want 4", len(got))
	}

	if got[0].Country != "Germany" || got[0].Year != 2024 || got[0].HoursRaw != "1342" {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[0].Hours == nil || *got[0].Hours != 1342 {
		t.Errorf("Germany hours = %v, want 1342", got[0].Hours)
	}

	// Rename happens at ingestion, before any later stage.
	if got[1].Country != "Slovakia" {
		t.Errorf("Slovak Republic not renamed: %q", got[1].Country)
	}

	// Thousands separator repaired.
	if got[2].Hours == nil || *got[2].Hours != 1494 {
		t.Errorf("France hours = %v, want 1494", got[2].Hours)
	}

	// Decimal comma survives cleanup as a decimal point; hours predicate
	// rejects it and the field stays unset while the raw value is kept.
	if got[3].Hours != nil {
		t.Errorf("Austria hours = %v, want nil", *got[3].Hours)
	}
	if got[3].HoursRaw != "1421,5" {
		t.Errorf("Austria raw = %q, want preserved", got[3].HoursRaw)
	}
}

func TestExtractWages(t *testing.T) {
	recs := []records.Record{
		{"ref_area": "DEU", "reference_area": "Germany", "unit_measure": "USD_PPP",
			"price_base": "Constant prices", "time_period": "2024", "obs_value": "63.521"},
		{"ref_area": "DEU", "reference_area": "Germany", "unit_measure": "USD_PPP",
			"price_base": "Current prices", "time_period": "2024", "obs_value": "60.000"},
		{"ref_area": "BGR", "reference_area": "Bulgaria", "unit_measure": "BGN",
			"price_base": "Constant prices", "time_period": "2003", "obs_value": "45.230"},
		{"ref_area": "BGR", "reference_area": "Bulgaria", "unit_measure": "BGN",
			"price_base": "Constant prices", "time_period": "2010", "obs_value": "45.230"},
	}

	got, dropped := ExtractWages(recs)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	// Current-price row filtered out.
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}

	if got[0].AvgWage == nil || *got[0].AvgWage != 63521 {
		t.Errorf("Germany wage = %v, want 63521 (K=5, no reduction)", got[0].AvgWage)
	}

	// Bulgarian lev exception: same raw value, K=4 inside 2000-2004, K=5 after.
	if got[1].AvgWage == nil || *got[1].AvgWage != 4523 {
		t.Errorf("Bulgaria 2003 wage = %v, want 4523 (K=4)", got[1].AvgWage)
	}
	if got[2].AvgWage == nil || *got[2].AvgWage != 45230 {
		t.Errorf("Bulgaria 2010 wage = %v, want 45230 (K=5)", got[2].AvgWage)
	}
}
