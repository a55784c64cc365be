package model

import "time"

// Operation identifies a sweep recorded in a run report.
type Operation string

const (
	OpGenerate       Operation = "generate-test-files"
	OpImportFixtures Operation = "import-fixtures"
	OpCleanStubs     Operation = "clean-unused-tests"
)

// Report summarizes one scaffolding sweep. Reports are persisted as YAML
// in the output directory, one file per run.
type Report struct {
	Operation Operation `yaml:"operation"`
	StartedAt time.Time `yaml:"started_at"`
	Duration  string    `yaml:"duration"`

	// Scanned is the number of source files visited by the sweep.
	Scanned int `yaml:"scanned,omitempty"`

	Created []Path   `yaml:"created,omitempty"`
	Removed []Path   `yaml:"removed,omitempty"`
	Pruned  []Path   `yaml:"pruned_dirs,omitempty"`
	Skipped []Path   `yaml:"skipped,omitempty"`
	Imports []string `yaml:"imports,omitempty"`
}
