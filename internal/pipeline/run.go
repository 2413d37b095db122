package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"oecdhw/internal/config"
	"oecdhw/internal/countries"
	"oecdhw/internal/datasource"
	"oecdhw/internal/datasource/file"
	"oecdhw/internal/datasource/httpds"
	"oecdhw/internal/metrics"
	csvparser "oecdhw/internal/parser/csv"
	"oecdhw/internal/storage"
	"oecdhw/pkg/records"
)

// Header maps for the two extract shapes. OECD data-explorer exports carry
// either the SDMX code headers (REF_AREA, OBS_VALUE, ...) or descriptive
// labels; the default header normalization handles the code form, the maps
// below fold the label form onto the same canonical keys.
var (
	hoursHeaderMap = map[string]string{
		"Time period":       "time_period",
		"Observation value": "obs_value",
	}
	wagesHeaderMap = map[string]string{
		"Time period":       "time_period",
		"Observation value": "obs_value",
		"Unit of measure":   "unit_measure",
	}
)

// Run executes the whole pipeline once: read the three inputs, derive the
// five output tables, and write them to the configured storage backend with
// drop-and-recreate semantics. Re-running against the same inputs reproduces
// identical tables.
//
// Row-level problems (malformed numerics, missing join keys, reference gaps)
// never fail the run; only infrastructure errors (unreadable input, storage
// failure) are returned.
func Run(ctx context.Context, p config.Pipeline) error {
	job := p.Job
	if job == "" {
		job = "oecdhw"
	}
	start := time.Now()

	// The three inputs are independent reads; stage computation below stays
	// strictly sequential.
	var (
		hoursRecs, wageRecs, countryRecs []records.Record
		skipped                          [3]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		hoursRecs, skipped[0], err = readCSV(gctx, p.Inputs.Hours, hoursHeaderMap)
		return err
	})
	g.Go(func() (err error) {
		wageRecs, skipped[1], err = readCSV(gctx, p.Inputs.Wages, wagesHeaderMap)
		return err
	})
	g.Go(func() (err error) {
		countryRecs, skipped[2], err = readCSV(gctx, p.Inputs.Countries, nil)
		return err
	})
	err := g.Wait()
	metrics.RecordStep(job, "read_inputs", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("read inputs: %w", err)
	}
	metrics.RecordRow(job, "rows_skipped", int64(skipped[0]+skipped[1]+skipped[2]))

	ref := countries.NewRef(countryRecs)
	log.Printf("inputs: hours=%s wages=%s countries=%d skipped=%d",
		humanize.Comma(int64(len(hoursRecs))), humanize.Comma(int64(len(wageRecs))), ref.Len(),
		skipped[0]+skipped[1]+skipped[2])

	// Derivation stages, in fixed order: extract, dedup, filter (country
	// before unit), join, pivot, rank.
	tDerive := time.Now()
	hours, hoursNoYear := ExtractHours(hoursRecs)
	hours, hoursDup := DedupHours(hours)

	wages, wagesNoYear := ExtractWages(wageRecs)
	wages = FilterEurope(wages, ref)
	wages = FilterUnits(wages)
	wages, wagesDup := DedupWages(wages)

	hourly := JoinHourly(hours, wages)
	wide := PivotWide(hourly)
	ranked := RankCountries(wide)
	metrics.RecordStep(job, "derive", nil, time.Since(tDerive))
	metrics.RecordRow(job, "rows_no_year", int64(hoursNoYear+wagesNoYear))
	metrics.RecordRow(job, "rows_duplicate", int64(hoursDup+wagesDup))

	if n := hoursDup + wagesDup; n > 0 {
		log.Printf("dedup: dropped %d duplicate (country, year) rows", n)
	}
	log.Printf("derived: hours=%d wages=%d hourly=%d wide=%d ranked=%d",
		len(hours), len(wages), len(hourly), len(wide), len(ranked))

	repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DSN})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	var inserted int64
	write := func(table string, cols []storage.Column, rows [][]any) error {
		t := time.Now()
		err := repo.Recreate(ctx, table, cols)
		var n int64
		if err == nil {
			names := make([]string, len(cols))
			for i, c := range cols {
				names[i] = c.Name
			}
			n, err = storage.WriteTable(ctx, repo, table, names, rows, p.BatchSize)
		}
		metrics.RecordStep(job, "load_"+table, err, time.Since(t))
		if err != nil {
			return err
		}
		inserted += n
		metrics.RecordRow(job, "rows_inserted", n)
		metrics.RecordBatches(job, batchesFor(len(rows), p.BatchSize))
		return nil
	}

	if err := write(TableHours, hoursColumns(), hoursRows(hours)); err != nil {
		return err
	}
	if err := write(TableWages, wagesColumns(), wagesRows(wages)); err != nil {
		return err
	}
	if err := write(TableHourly, hourlyColumns(), hourlyRows(hourly)); err != nil {
		return err
	}
	if err := write(TableChange, changeColumns(), changeRows(wide)); err != nil {
		return err
	}
	if err := write(TableRanked, rankedColumns(), rankedRows(ranked)); err != nil {
		return err
	}

	log.Printf("run complete: job=%s inserted=%s tables=5 elapsed=%s",
		job, humanize.Comma(inserted), time.Since(start).Truncate(time.Millisecond))
	return nil
}

// readCSV opens one input and parses it fully. An http(s) path is fetched
// from the export endpoint, anything else is a local file.
func readCSV(ctx context.Context, in config.Input, headerMap map[string]string) ([]records.Record, int, error) {
	var src datasource.Source
	if strings.HasPrefix(in.Path, "http://") || strings.HasPrefix(in.Path, "https://") {
		src = httpds.NewSource(in.Path, httpds.Config{})
	} else {
		src = file.NewLocal(in.Path)
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	parser := csvparser.NewParser(csvparser.Options{
		HasHeader: true,
		TrimSpace: true,
		Comma:     in.Comma(),
		HeaderMap: headerMap,
	})
	recs, skipped, err := parser.Parse(rc)
	if err != nil {
		return nil, skipped, fmt.Errorf("parse %s: %w", in.Path, err)
	}
	return recs, skipped, nil
}

// batchesFor mirrors the writer's batch slicing for the batch counter.
func batchesFor(rows, batchSize int) int64 {
	if rows == 0 {
		return 0
	}
	if batchSize <= 0 {
		batchSize = storage.DefaultBatchSize
	}
	return int64((rows + batchSize - 1) / batchSize)
}
