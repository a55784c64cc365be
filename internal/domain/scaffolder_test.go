package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "stubber.dev/pkg/stubber/internal/model"
)

func TestGenerate_CreatesMirroredStubs(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "def place_order():\n    pass\n")
	writeProjectFile(t, "src/db/dao/inventory_dao.py", "class InventoryDAO:\n    pass\n")

	cmd, out := newBufferCmd()
	w := newTestWorkflow(cmd)

	err := w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()})
	require.NoError(t, err)

	assert.Equal(t, RenderTestStub("src", "orders.py"), readProjectFile(t, "tests/test_orders.py"))
	assert.Equal(t, RenderTestStub("src", "db/dao/inventory_dao.py"), readProjectFile(t, "tests/db/dao/test_inventory_dao.py"))
	assert.Equal(t, RenderFixtureStub("src", "orders.py"), readProjectFile(t, "tests/fixtures/orders_fixtures.py"))
	assert.Equal(t, RenderFixtureStub("src", "db/dao/inventory_dao.py"), readProjectFile(t, "tests/fixtures/db/dao/inventory_dao_fixtures.py"))

	assert.Contains(t, out.String(), "tests/test_orders.py")
}

func TestGenerate_Idempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	require.NoError(t, w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()}))

	first := readProjectFile(t, "tests/test_orders.py")

	require.NoError(t, w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()}))

	assert.Equal(t, first, readProjectFile(t, "tests/test_orders.py"))
}

func TestGenerate_NeverOverwritesEditedFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")

	edited := "def test_orders():\n    assert True\n"
	writeProjectFile(t, "tests/test_orders.py", edited)

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	require.NoError(t, w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()}))

	assert.Equal(t, edited, readProjectFile(t, "tests/test_orders.py"))

	// The fixture stub gap is still filled.
	assert.True(t, fileExists("tests/fixtures/orders_fixtures.py"))
}

func TestGenerate_SkipsNonSourceFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")
	writeProjectFile(t, "src/__init__.py", "")
	writeProjectFile(t, "src/notes.md", "docs\n")
	writeProjectFile(t, "src/test_existing.py", "already a test\n")

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	require.NoError(t, w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()}))

	assert.True(t, fileExists("tests/test_orders.py"))
	assert.False(t, fileExists("tests/test___init__.py"))
	assert.False(t, fileExists("tests/test_notes.md"))
	assert.False(t, fileExists("tests/test_test_existing.py"))
}

func TestGenerate_AppliesExcludePatterns(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")
	writeProjectFile(t, "src/generated/client.py", "x = 1\n")

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	err := w.Generate(context.Background(), GenerateArgs{
		Layout:  defaultLayout(),
		Exclude: []string{"^generated/"},
	})
	require.NoError(t, err)

	assert.True(t, fileExists("tests/test_orders.py"))
	assert.False(t, fileExists("tests/generated/test_client.py"))
}

func TestGenerate_InvalidExcludePattern(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	err := w.Generate(context.Background(), GenerateArgs{
		Layout:  defaultLayout(),
		Exclude: []string{"["},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude pattern")
}

func TestGenerate_MissingSourceRoot(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	err := w.Generate(context.Background(), GenerateArgs{Layout: defaultLayout()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src")
}

func TestGenerate_WritesRunReport(t *testing.T) {
	t.Chdir(t.TempDir())

	writeProjectFile(t, "src/orders.py", "x = 1\n")

	cmd, _ := newBufferCmd()
	w := newTestWorkflow(cmd)

	err := w.Generate(context.Background(), GenerateArgs{
		Layout:  defaultLayout(),
		Reports: m.Path(".reports"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(".reports")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, ".yaml", filepath.Ext(entries[0].Name()))
}
