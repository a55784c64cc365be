package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
	"stubber.dev/pkg/stubber/pkg"

	m "stubber.dev/pkg/stubber/internal/model"
)

// Markers delimiting the managed region of the shared fixtures file.
// Everything between them is owned and rewritten by import-fixtures;
// everything outside is preserved byte-for-byte.
const (
	RegionBegin = "# --- stubber:fixtures:begin ---"
	RegionEnd   = "# --- stubber:fixtures:end ---"
)

// sharedFileSeed is written when the shared fixtures file does not exist
// yet. An existing file without markers is an error instead: guessing
// where the region belongs could clobber hand-written content.
const sharedFileSeed = `# Shared fixture imports.
#
# The block between the markers below is rewritten by
# 'stubber import-fixtures'. Keep hand-written fixtures outside it.

` + RegionBegin + `
` + RegionEnd + `
`

var (
	fixtureDecoratorPattern = regexp.MustCompile(`^\s*@pytest\.fixture\s*(\(.*\))?\s*$`)
	decoratorPattern        = regexp.MustCompile(`^\s*@`)
	defPattern              = regexp.MustCompile(`^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

// ImportFixtures rescans the fixture tree and rewrites the managed region
// of the shared fixtures file. The region content is a pure function of
// the current fixture-stub contents: the full import list is regenerated
// on every run, never merged incrementally.
func (w *workflow) ImportFixtures(ctx context.Context, args ImportArgs) error {
	start := time.Now()

	fixtures, err := w.scanFixtures(ctx, args.Layout, args.Parallel)
	if err != nil {
		return fmt.Errorf("scan fixtures: %w", err)
	}

	if conflicts := findConflicts(fixtures); len(conflicts) > 0 {
		w.DisplayConflicts(ctx, conflicts)
		return &ConflictError{Conflicts: conflicts}
	}

	imports := RenderImports(fixtures)

	changed, diff, err := w.rewriteShared(args.Layout.SharedFile, strings.Join(imports, "\n"), args.DryRun)
	if err != nil {
		return err
	}

	if err := w.DisplayImports(ctx, imports, changed, diff); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if !args.DryRun {
		w.saveReport(m.Report{Operation: m.OpImportFixtures, Imports: imports}, args.Reports, start)
	}

	return nil
}

// scanFixtures lists the fixture stub files and extracts their fixture
// definitions. Files are scanned concurrently under a bounded errgroup;
// the result is sorted by path then definition order, so the output is
// deterministic regardless of the limit.
func (w *workflow) scanFixtures(ctx context.Context, layout m.Layout, parallel int) ([]m.Fixture, error) {
	files, err := w.listFixtureStubs(layout)
	if err != nil {
		return nil, err
	}

	if parallel < 1 {
		parallel = 1
	}

	var (
		mu       sync.Mutex
		fixtures []m.Fixture
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, file := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := w.ReadFile(file.FullPath)
			if err != nil {
				return fmt.Errorf("read fixture stub %s: %w", file.FullPath, err)
			}

			names := ScanFixtureSource(string(data))
			module := ModulePath(layout.FixtureRoot, file.RelPath)

			mu.Lock()
			for order, name := range names {
				fixtures = append(fixtures, m.Fixture{
					Name:    name,
					File:    file.FullPath,
					RelFile: file.RelPath,
					Module:  module,
					Order:   order,
				})
			}
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(fixtures, func(i, j int) bool {
		if fixtures[i].RelFile != fixtures[j].RelFile {
			return fixtures[i].RelFile < fixtures[j].RelFile
		}

		return fixtures[i].Order < fixtures[j].Order
	})

	return fixtures, nil
}

// listFixtureStubs walks the fixture root for *_fixtures.py files. A
// missing root means there is simply nothing to import yet.
func (w *workflow) listFixtureStubs(layout m.Layout) ([]m.Stub, error) {
	if _, err := w.FileInfo(layout.FixtureRoot); os.IsNotExist(err) {
		slog.Debug("fixture root missing, nothing to scan", "root", layout.FixtureRoot)
		return nil, nil
	}

	shared := filepath.Clean(string(layout.SharedFile))

	var stubs []m.Stub

	err := w.Walk(layout.FixtureRoot, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if info.IsDir() || filepath.Clean(path) == shared {
			return nil
		}

		if !strings.HasSuffix(info.Name(), fixtureStubSuffix) {
			return nil
		}

		rel, err := w.RelPath(layout.FixtureRoot, m.Path(path))
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		stubs = append(stubs, m.Stub{
			Kind:     m.StubFixture,
			FullPath: m.Path(path),
			RelPath:  rel,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture root %s: %w", layout.FixtureRoot, err)
	}

	return stubs, nil
}

// ScanFixtureSource extracts fixture-function names from Python source by
// syntactic pattern matching. It recognizes a @pytest.fixture decorator
// line (bare or with arguments) followed by a def line, allowing other
// decorators in between. The source is never executed.
func ScanFixtureSource(source string) []string {
	var names []string

	pending := false

	for _, line := range strings.Split(source, "\n") {
		switch {
		case fixtureDecoratorPattern.MatchString(line):
			pending = true

		case pending && defPattern.MatchString(line):
			match := defPattern.FindStringSubmatch(line)
			names = append(names, match[1])
			pending = false

		case pending && decoratorPattern.MatchString(line):
			// Another decorator stacked between @pytest.fixture and def.

		case pending && strings.TrimSpace(line) != "":
			pending = false
		}
	}

	return names
}

// findConflicts returns every fixture name defined more than once. The
// first occurrence in path-then-definition order is reported as the
// winner; the rewrite still fails closed when any conflict exists.
func findConflicts(fixtures []m.Fixture) []m.Conflict {
	first := make(map[string]m.Fixture, len(fixtures))

	var conflicts []m.Conflict

	for _, fixture := range fixtures {
		winner, seen := first[fixture.Name]
		if !seen {
			first[fixture.Name] = fixture
			continue
		}

		conflicts = append(conflicts, m.Conflict{
			Name:      fixture.Name,
			First:     winner.File,
			Duplicate: fixture.File,
		})
	}

	return conflicts
}

// RenderImports produces the managed-region import lines, one per
// fixture, sorted by stub path then definition order.
func RenderImports(fixtures []m.Fixture) []string {
	imports := make([]string, 0, len(fixtures))

	for _, fixture := range fixtures {
		imports = append(imports, fmt.Sprintf("from %s import %s", fixture.Module, fixture.Name))
	}

	return imports
}

// rewriteShared splices the region into the shared file, creating the
// file with seed content when absent. It reports whether the file changed
// and a unified diff of the change.
func (w *workflow) rewriteShared(shared m.Path, region string, dryRun bool) (bool, string, error) {
	doc := sharedFileSeed
	exists := false

	if _, err := w.FileInfo(shared); err == nil {
		data, err := w.ReadFile(shared)
		if err != nil {
			return false, "", fmt.Errorf("read shared fixtures file %s: %w", shared, err)
		}

		doc = string(data)
		exists = true
	} else if !os.IsNotExist(err) {
		return false, "", fmt.Errorf("stat shared fixtures file %s: %w", shared, err)
	}

	next, err := pkg.Splice(doc, RegionBegin, RegionEnd, region)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRegion) {
			return false, "", fmt.Errorf("shared fixtures file %s: %w", shared, err)
		}

		return false, "", err
	}

	changed := next != doc || !exists
	if !changed {
		return false, "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(doc),
		B:        difflib.SplitLines(next),
		FromFile: string(shared),
		ToFile:   string(shared),
		Context:  3,
	})
	if err != nil {
		return false, "", fmt.Errorf("diff shared fixtures file: %w", err)
	}

	if dryRun {
		return true, diff, nil
	}

	dir := m.Path(filepath.Dir(string(shared)))
	if err := w.MkdirAll(dir, 0o750); err != nil {
		return false, "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := w.WriteFile(shared, []byte(next), stubFilePerm); err != nil {
		return false, "", fmt.Errorf("write shared fixtures file %s: %w", shared, err)
	}

	slog.Info("rewrote shared fixtures file", "path", shared, "imports", strings.Count(region, "\n")+1)

	return true, diff, nil
}
