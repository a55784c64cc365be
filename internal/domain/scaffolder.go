package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	m "stubber.dev/pkg/stubber/internal/model"
)

const stubFilePerm os.FileMode = 0o600

// Generate sweeps the source tree and fills the gaps in the mirrored test
// and fixture trees. Existing files are never overwritten, so re-running
// is a no-op.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	start := time.Now()

	sources, err := w.collectSources(args.Layout, args.Exclude)
	if err != nil {
		return fmt.Errorf("scan sources: %w", err)
	}

	var created []m.Stub

	for _, source := range sources {
		stubs := []m.Stub{
			{
				Kind:     m.StubTest,
				RelPath:  TestStubPath(source.RelPath),
				FullPath: w.JoinPath(string(args.Layout.TestRoot), string(TestStubPath(source.RelPath))),
				Source:   source.RelPath,
			},
			{
				Kind:     m.StubFixture,
				RelPath:  FixtureStubPath(source.RelPath),
				FullPath: w.JoinPath(string(args.Layout.FixtureRoot), string(FixtureStubPath(source.RelPath))),
				Source:   source.RelPath,
			},
		}

		for _, stub := range stubs {
			wrote, err := w.createStub(args.Layout, stub)
			if err != nil {
				return err
			}

			if wrote {
				created = append(created, stub)
			}
		}
	}

	if err := w.DisplayGenerated(ctx, created, len(sources)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	report := m.Report{Operation: m.OpGenerate, Scanned: len(sources)}
	for _, stub := range created {
		report.Created = append(report.Created, stub.FullPath)
	}

	w.saveReport(report, args.Reports, start)

	return nil
}

// createStub writes the template for a single missing stub. It reports
// whether a file was written.
func (w *workflow) createStub(layout m.Layout, stub m.Stub) (bool, error) {
	if _, err := w.FileInfo(stub.FullPath); err == nil {
		slog.Debug("stub exists, skipping", "path", stub.FullPath)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", stub.FullPath, err)
	}

	dir := m.Path(filepath.Dir(string(stub.FullPath)))
	if err := w.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	var content string
	if stub.Kind == m.StubTest {
		content = RenderTestStub(layout.SourceRoot, stub.Source)
	} else {
		content = RenderFixtureStub(layout.SourceRoot, stub.Source)
	}

	if err := w.WriteFile(stub.FullPath, []byte(content), stubFilePerm); err != nil {
		return false, fmt.Errorf("write stub %s: %w", stub.FullPath, err)
	}

	slog.Info("created stub", "path", stub.FullPath, "kind", stub.Kind)

	return true, nil
}

// collectSources walks the source root and returns the mirrorable files
// in walk order, applying the exclude patterns to relative paths.
func (w *workflow) collectSources(layout m.Layout, exclude []string) ([]m.SourceFile, error) {
	patterns, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	var sources []m.SourceFile

	err = w.Walk(layout.SourceRoot, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if info.IsDir() || !IsSourceFile(info.Name()) {
			return nil
		}

		rel, err := w.RelPath(layout.SourceRoot, m.Path(path))
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		if matchesAny(patterns, filepath.ToSlash(string(rel))) {
			slog.Debug("source excluded", "path", rel)
			return nil
		}

		sources = append(sources, m.SourceFile{FullPath: m.Path(path), RelPath: rel})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source root %s: %w", layout.SourceRoot, err)
	}

	return sources, nil
}

func compilePatterns(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

func matchesAny(patterns []*regexp.Regexp, rel string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(rel) {
			return true
		}
	}

	return false
}
