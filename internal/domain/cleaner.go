package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	m "stubber.dev/pkg/stubber/internal/model"
)

// CleanStubs deletes stubs that are still byte-for-byte templates
// (whitespace-normalized) and collapses directories left empty. Edited
// files are never touched, so a second run is a no-op.
func (w *workflow) CleanStubs(ctx context.Context, args CleanArgs) error {
	start := time.Now()

	var (
		removed []m.Path
		skipped []m.Path
	)

	sweeps := []struct {
		root m.Path
		kind m.StubKind
	}{
		{args.Layout.TestRoot, m.StubTest},
		{args.Layout.FixtureRoot, m.StubFixture},
	}

	fixtureRootInTestRoot := isWithin(args.Layout.TestRoot, args.Layout.FixtureRoot)

	for _, sweep := range sweeps {
		stale, mismatched, err := w.sweepStubs(args.Layout, sweep.root, sweep.kind)
		if err != nil {
			return err
		}

		removed = append(removed, stale...)
		skipped = append(skipped, mismatched...)
	}

	var pruned []m.Path

	for _, sweep := range sweeps {
		// When the fixture root lives under the test root the first prune
		// already collapsed it.
		if sweep.kind == m.StubFixture && fixtureRootInTestRoot {
			continue
		}

		dirs, err := w.pruneEmptyDirs(sweep.root, removed)
		if err != nil {
			return err
		}

		pruned = append(pruned, dirs...)
	}

	if err := w.DisplayCleaned(ctx, removed, pruned); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.saveReport(m.Report{
		Operation: m.OpCleanStubs,
		Removed:   removed,
		Pruned:    pruned,
		Skipped:   skipped,
	}, args.Reports, start)

	return nil
}

// sweepStubs deletes the untouched stubs of one kind under root. Files
// that do not follow the mirrored-path convention are skipped with a
// warning, not deleted.
func (w *workflow) sweepStubs(layout m.Layout, root m.Path, kind m.StubKind) ([]m.Path, []m.Path, error) {
	if _, err := w.FileInfo(root); os.IsNotExist(err) {
		slog.Debug("stub root missing, nothing to clean", "root", root)
		return nil, nil, nil
	}

	shared := filepath.Clean(string(layout.SharedFile))

	var (
		removed    []m.Path
		mismatched []m.Path
	)

	err := w.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if info.IsDir() || filepath.Clean(path) == shared {
			return nil
		}

		// The test-root sweep must not judge fixture stubs by the test
		// naming convention.
		if kind == m.StubTest && isWithin(layout.FixtureRoot, m.Path(path)) {
			return nil
		}

		if info.Name() == "__init__.py" || info.Name() == sharedFileBaseName {
			return nil
		}

		rel, err := w.RelPath(root, m.Path(path))
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		template, ok := w.templateFor(layout, kind, rel)
		if !ok {
			slog.Warn("file does not match mirrored-path convention, skipping", "path", path)

			mismatched = append(mismatched, m.Path(path))

			return nil
		}

		data, err := w.ReadFile(m.Path(path))
		if err != nil {
			return fmt.Errorf("read stub %s: %w", path, err)
		}

		if !IsTemplateContent(string(data), template) {
			return nil
		}

		if err := w.Remove(m.Path(path)); err != nil {
			return fmt.Errorf("delete stub %s: %w", path, err)
		}

		slog.Info("removed untouched stub", "path", path, "kind", kind)

		removed = append(removed, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("stub root %s: %w", root, err)
	}

	return removed, mismatched, nil
}

// templateFor renders the generation template a stub at rel would have
// been created with. ok is false when rel does not follow the convention.
func (w *workflow) templateFor(layout m.Layout, kind m.StubKind, rel m.Path) (string, bool) {
	if kind == m.StubTest {
		source, ok := SourceForTestStub(rel)
		if !ok {
			return "", false
		}

		return RenderTestStub(layout.SourceRoot, source), true
	}

	source, ok := SourceForFixtureStub(rel)
	if !ok {
		return "", false
	}

	return RenderFixtureStub(layout.SourceRoot, source), true
}

// pruneEmptyDirs collapses directories left empty by the sweep. Only
// ancestors of the removed stubs, strictly below root, are candidates:
// a directory that was already empty before the run is left alone.
// Candidates go deepest first so parents emptied by the removal of a
// child directory collapse too.
func (w *workflow) pruneEmptyDirs(root m.Path, removed []m.Path) ([]m.Path, error) {
	if _, err := w.FileInfo(root); os.IsNotExist(err) {
		return nil, nil
	}

	rootClean := filepath.Clean(string(root))
	seen := make(map[string]struct{})

	var dirs []m.Path

	for _, path := range removed {
		dir := filepath.Dir(filepath.Clean(string(path)))

		for dir != rootClean && isWithin(root, m.Path(dir)) {
			if _, ok := seen[dir]; ok {
				break
			}

			seen[dir] = struct{}{}
			dirs = append(dirs, m.Path(dir))

			dir = filepath.Dir(dir)
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})

	var pruned []m.Path

	for _, dir := range dirs {
		entries, err := w.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}

		if len(entries) > 0 {
			continue
		}

		if err := w.Remove(dir); err != nil {
			return nil, fmt.Errorf("delete directory %s: %w", dir, err)
		}

		slog.Info("pruned empty directory", "path", dir)

		pruned = append(pruned, dir)
	}

	return pruned, nil
}

// isWithin reports whether path is root or inside it, comparing cleaned
// lexical paths.
func isWithin(root, path m.Path) bool {
	rootClean := filepath.Clean(string(root))
	pathClean := filepath.Clean(string(path))

	if rootClean == pathClean {
		return true
	}

	return strings.HasPrefix(pathClean, rootClean+string(filepath.Separator))
}
