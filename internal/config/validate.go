// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import "fmt"

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that is surfaced but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "inputs.hours.path"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownStorageKinds mirrors the backends registered by storage/all.
var knownStorageKinds = map[string]bool{
	"sqlite":   true,
	"mysql":    true,
	"postgres": true,
	"mssql":    true,
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; it returns a slice of Issue values (possibly empty).
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if p.Job == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "empty job name; logs and metrics will use a default"})
	}

	checkInput := func(path string, in Input) {
		if in.Path == "" {
			issues = append(issues, Issue{SeverityError, path + ".path", "input path is required"})
		}
		if n := len([]rune(in.Delimiter)); n > 1 {
			issues = append(issues, Issue{SeverityError, path + ".delimiter", "delimiter must be a single character"})
		}
	}
	checkInput("inputs.hours", p.Inputs.Hours)
	checkInput("inputs.wages", p.Inputs.Wages)
	checkInput("inputs.countries", p.Inputs.Countries)

	if p.Storage.Kind == "" {
		issues = append(issues, Issue{SeverityError, "storage.kind", "storage kind is required"})
	} else if !knownStorageKinds[p.Storage.Kind] {
		issues = append(issues, Issue{SeverityError, "storage.kind", fmt.Sprintf("unknown storage kind %q", p.Storage.Kind)})
	}
	if p.Storage.DSN == "" {
		issues = append(issues, Issue{SeverityError, "storage.dsn", "storage DSN is required"})
	}

	if p.BatchSize < 0 {
		issues = append(issues, Issue{SeverityError, "batch_size", "batch_size must be >= 0"})
	}

	return issues
}
