// Package domain implements the scaffolding, fixture-wiring and pruning sweeps.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "stubber.dev/pkg/stubber/internal/model"
)

const (
	testStubPrefix     = "test_"
	fixtureStubSuffix  = "_fixtures.py"
	pythonExt          = ".py"
	sharedFileBaseName = "conftest.py"
)

// testStubTemplate is the exact content of a freshly generated test stub.
// %[1]s is the dotted module under test, %[2]s the module base name.
const testStubTemplate = `import %[1]s


def test_%[2]s() -> None:
    pass
`

// fixtureStubTemplate is the exact content of a freshly generated fixture
// stub. %[1]s is the dotted module under test, %[2]s the module base name.
const fixtureStubTemplate = `import pytest

import %[1]s


@pytest.fixture
def %[2]s_fixture():
    return None
`

// IsSourceFile reports whether a file name under the source root is a
// Python module worth mirroring. Test modules, package markers and
// conftest files are never mirrored.
func IsSourceFile(name string) bool {
	if filepath.Ext(name) != pythonExt {
		return false
	}

	if strings.HasPrefix(name, testStubPrefix) {
		return false
	}

	if name == "__init__.py" || name == sharedFileBaseName {
		return false
	}

	return true
}

// TestStubPath maps a relative source path to its mirrored test stub path:
// a/b/orders.py -> a/b/test_orders.py.
func TestStubPath(rel m.Path) m.Path {
	dir, base := filepath.Split(string(rel))

	return m.Path(dir + testStubPrefix + base)
}

// FixtureStubPath maps a relative source path to its mirrored fixture stub
// path: a/b/orders.py -> a/b/orders_fixtures.py.
func FixtureStubPath(rel m.Path) m.Path {
	dir, base := filepath.Split(string(rel))
	base = strings.TrimSuffix(base, pythonExt)

	return m.Path(dir + base + fixtureStubSuffix)
}

// SourceForTestStub reverses TestStubPath. The boolean is false when the
// file name does not follow the mirrored-path convention.
func SourceForTestStub(rel m.Path) (m.Path, bool) {
	dir, base := filepath.Split(string(rel))

	if !strings.HasPrefix(base, testStubPrefix) || filepath.Ext(base) != pythonExt {
		return "", false
	}

	name := strings.TrimPrefix(base, testStubPrefix)
	if name == pythonExt {
		return "", false
	}

	return m.Path(dir + name), true
}

// SourceForFixtureStub reverses FixtureStubPath.
func SourceForFixtureStub(rel m.Path) (m.Path, bool) {
	dir, base := filepath.Split(string(rel))

	if !strings.HasSuffix(base, fixtureStubSuffix) {
		return "", false
	}

	name := strings.TrimSuffix(base, fixtureStubSuffix)
	if name == "" {
		return "", false
	}

	return m.Path(dir + name + pythonExt), true
}

// ModulePath derives the dotted Python module path for a file under root,
// from the root exactly as the user configured it: ("src", "a/orders.py")
// -> "src.a.orders".
func ModulePath(root m.Path, rel m.Path) string {
	joined := filepath.ToSlash(filepath.Join(string(root), strings.TrimSuffix(string(rel), pythonExt)))
	joined = strings.TrimPrefix(joined, "./")

	return strings.ReplaceAll(joined, "/", ".")
}

// moduleBase returns the module base name of a relative source path:
// a/b/orders.py -> orders.
func moduleBase(rel m.Path) string {
	return strings.TrimSuffix(filepath.Base(string(rel)), pythonExt)
}

// RenderTestStub produces the template content for the test stub mirroring
// the given relative source path.
func RenderTestStub(sourceRoot m.Path, rel m.Path) string {
	return fmt.Sprintf(testStubTemplate, ModulePath(sourceRoot, rel), moduleBase(rel))
}

// RenderFixtureStub produces the template content for the fixture stub
// mirroring the given relative source path.
func RenderFixtureStub(sourceRoot m.Path, rel m.Path) string {
	return fmt.Sprintf(fixtureStubTemplate, ModulePath(sourceRoot, rel), moduleBase(rel))
}

// IsTemplateContent reports whether content is the untouched generation
// template, compared whitespace-normalized. This is the staleness test
// used by the pruning sweep: any edit protects the file.
func IsTemplateContent(content, template string) bool {
	return normalizeWhitespace(content) == normalizeWhitespace(template)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
