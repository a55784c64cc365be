package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTool_SuccessfulTool(t *testing.T) {
	cmd, out := newBufferCmd()
	wf := newTestWorkflow(cmd)

	err := wf.RunTool(context.Background(), ToolArgs{
		Name:    "formatter",
		Command: []string{"sh", "-c", "exit 0"},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Running formatter")
}

func TestRunTool_NonzeroExitBecomesExitStatusError(t *testing.T) {
	cmd, _ := newBufferCmd()
	wf := newTestWorkflow(cmd)

	err := wf.RunTool(context.Background(), ToolArgs{
		Name:    "test runner",
		Command: []string{"sh", "-c", "exit 4"},
	})
	require.Error(t, err)

	var exitErr *ExitStatusError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.Code)
	assert.Equal(t, "test runner", exitErr.Tool)
}

func TestRunTool_EmptyCommandIsAnError(t *testing.T) {
	cmd, _ := newBufferCmd()
	wf := newTestWorkflow(cmd)

	err := wf.RunTool(context.Background(), ToolArgs{Name: "dev server"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev server")
}

func TestRunTool_MissingBinaryIsAnError(t *testing.T) {
	cmd, _ := newBufferCmd()
	wf := newTestWorkflow(cmd)

	err := wf.RunTool(context.Background(), ToolArgs{
		Name:    "formatter",
		Command: []string{"definitely-not-a-real-binary-41af"},
	})
	require.Error(t, err)

	var exitErr *ExitStatusError
	assert.False(t, errors.As(err, &exitErr), "start failures are not exit statuses")
}

func TestPreStage_RunsAllStepsInOrder(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd, out := newBufferCmd()
	wf := newTestWorkflow(cmd)

	writeProjectFile(t, "tests/fixtures/orders_fixtures.py", "import pytest\n\nimport src.orders\n\n\n@pytest.fixture\ndef order_fixture():\n    return None\n")

	err := wf.PreStage(context.Background(), PreStageArgs{
		Import: ImportArgs{Layout: defaultLayout(), Parallel: 1},
		Format: ToolArgs{Name: "formatter", Command: []string{"sh", "-c", "touch formatted"}},
		Tests:  ToolArgs{Name: "test runner", Command: []string{"sh", "-c", "touch tested"}},
	})
	require.NoError(t, err)

	assert.True(t, fileExists("tests/fixtures/conftest.py"), "import step should have run")
	assert.True(t, fileExists("formatted"), "formatter should have run")
	assert.True(t, fileExists("tested"), "test runner should have run")
	assert.Contains(t, out.String(), "Running formatter")
	assert.Contains(t, out.String(), "Running test runner")
}

func TestPreStage_FailingFormatterShortCircuits(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd, _ := newBufferCmd()
	wf := newTestWorkflow(cmd)

	writeProjectFile(t, "tests/fixtures/orders_fixtures.py", "@pytest.fixture\ndef order_fixture():\n    return None\n")

	err := wf.PreStage(context.Background(), PreStageArgs{
		Import: ImportArgs{Layout: defaultLayout(), Parallel: 1},
		Format: ToolArgs{Name: "formatter", Command: []string{"sh", "-c", "exit 3"}},
		Tests:  ToolArgs{Name: "test runner", Command: []string{"sh", "-c", "touch tested"}},
	})
	require.Error(t, err)

	var exitErr *ExitStatusError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)

	assert.False(t, fileExists("tested"), "test runner must not run after a failing formatter")
}

func TestPreStage_ConflictAbortsBeforeAnyTool(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd, _ := newBufferCmd()
	wf := newTestWorkflow(cmd)

	duplicate := "@pytest.fixture\ndef order_fixture():\n    return None\n"
	writeProjectFile(t, "tests/fixtures/a_fixtures.py", duplicate)
	writeProjectFile(t, "tests/fixtures/b_fixtures.py", duplicate)

	err := wf.PreStage(context.Background(), PreStageArgs{
		Import: ImportArgs{Layout: defaultLayout(), Parallel: 1},
		Format: ToolArgs{Name: "formatter", Command: []string{"sh", "-c", "touch formatted"}},
		Tests:  ToolArgs{Name: "test runner", Command: []string{"sh", "-c", "touch tested"}},
	})
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	assert.False(t, fileExists("formatted"), "formatter must not run after a fixture conflict")
	assert.False(t, fileExists("tested"), "test runner must not run after a fixture conflict")
}
