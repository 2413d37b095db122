// Package config defines the canonical, JSON-serializable configuration model
// for the pipeline binary. It is intentionally small, explicit, and
// dependency-free: pipeline files under configs/pipelines/*.json decode
// straight into these structs with no additional glue code.
package config

// Pipeline describes one full run: the three raw inputs, the storage sink the
// derived tables are written to, and batching for the writer.
type Pipeline struct {
	// Job names the run for logging and metrics grouping.
	Job string `json:"job"`

	// Inputs locates the raw extract files.
	Inputs Inputs `json:"inputs"`

	// Storage selects and configures the sink for the derived tables.
	Storage Storage `json:"storage"`

	// BatchSize caps rows per INSERT batch. Zero means the writer default.
	BatchSize int `json:"batch_size"`
}

// Inputs holds the three read-only source files.
type Inputs struct {
	// Hours is the raw annual-hours-worked extract.
	Hours Input `json:"hours"`

	// Wages is the raw average-annual-wages extract.
	Wages Input `json:"wages"`

	// Countries is the external country→continent reference table.
	Countries Input `json:"countries"`
}

// Input is a single CSV source file.
type Input struct {
	// Path is the local filesystem path to the file.
	Path string `json:"path"`

	// Delimiter is the field separator; empty means ','.
	Delimiter string `json:"delimiter"`
}

// Storage selects the sink used to persist the derived tables.
type Storage struct {
	// Kind selects the backend: "sqlite", "mysql", "postgres", or "mssql".
	Kind string `json:"kind"`

	// DSN is the backend connection string (driver-specific form).
	DSN string `json:"dsn"`
}

// Comma returns the input's delimiter as a rune, defaulting to ','.
func (i Input) Comma() rune {
	if i.Delimiter == "" {
		return ','
	}
	return []rune(i.Delimiter)[0]
}
