package adapter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	m "stubber.dev/pkg/stubber/internal/model"
)

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewYAMLReportStore()

	dir := filepath.Join(t.TempDir(), "reports")
	started := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

	report := m.Report{
		Operation: m.OpGenerate,
		StartedAt: started,
		Duration:  "125ms",
		Scanned:   3,
		Created: []m.Path{
			"tests/test_orders.py",
			"tests/fixtures/orders_fixtures.py",
		},
	}

	path, err := store.Save(m.Path(dir), report)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	wantName := "generate-test-files-20260314-092653.yaml"
	if filepath.Base(string(path)) != wantName {
		t.Fatalf("Save() wrote %s, want file named %s", path, wantName)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Operation != report.Operation {
		t.Fatalf("Load() operation = %s, want %s", loaded.Operation, report.Operation)
	}

	if !loaded.StartedAt.Equal(started) {
		t.Fatalf("Load() started_at = %s, want %s", loaded.StartedAt, started)
	}

	if loaded.Scanned != report.Scanned {
		t.Fatalf("Load() scanned = %d, want %d", loaded.Scanned, report.Scanned)
	}

	if len(loaded.Created) != 2 || loaded.Created[0] != report.Created[0] {
		t.Fatalf("Load() created = %v, want %v", loaded.Created, report.Created)
	}
}

func TestYAMLReportStore_SaveCreatesMissingDir(t *testing.T) {
	store := NewYAMLReportStore()

	dir := filepath.Join(t.TempDir(), "a", "b", "reports")

	_, err := store.Save(m.Path(dir), m.Report{
		Operation: m.OpCleanStubs,
		StartedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("Save() did not create reports dir: %v", err)
	}
}

func TestYAMLReportStore_FilesOmitEmptySections(t *testing.T) {
	store := NewYAMLReportStore()

	dir := t.TempDir()
	path, err := store.Save(m.Path(dir), m.Report{
		Operation: m.OpImportFixtures,
		StartedAt: time.Now(),
		Duration:  "2ms",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}

	for _, section := range []string{"created:", "removed:", "pruned_dirs:", "imports:"} {
		if strings.Contains(string(data), section) {
			t.Fatalf("report contains empty section %q:\n%s", section, data)
		}
	}
}

func TestYAMLReportStore_LoadMissingFile(t *testing.T) {
	store := NewYAMLReportStore()

	_, err := store.Load(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	if err == nil {
		t.Fatalf("Load() expected error for missing file, got nil")
	}
}
