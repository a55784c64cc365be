package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "stubber.dev/pkg/stubber/internal/model"
)

// ReportStore persists run reports for scaffolding sweeps.
type ReportStore interface {
	// Save writes report into dir, creating the directory if needed, and
	// returns the path of the written file.
	Save(dir m.Path, report m.Report) (m.Path, error)

	// Load reads a previously saved report.
	Load(path m.Path) (m.Report, error)
}

// YAMLReportStore stores one YAML file per run, named after the operation
// and its start time.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// Save writes the report as YAML into dir.
func (s *YAMLReportStore) Save(dir m.Path, report m.Report) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s-%s.yaml", report.Operation, report.StartedAt.Format("20060102-150405"))
	path := filepath.Join(string(dir), name)

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	slog.Debug("saved run report", "path", path, "operation", report.Operation)

	return m.Path(path), nil
}

// Load reads a report file back.
func (s *YAMLReportStore) Load(path m.Path) (m.Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
