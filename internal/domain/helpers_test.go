package domain

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"stubber.dev/pkg/stubber/internal/adapter"
	"stubber.dev/pkg/stubber/internal/controller"
	m "stubber.dev/pkg/stubber/internal/model"
)

// defaultLayout is the layout every sweep test uses, relative to the
// test's working directory.
func defaultLayout() m.Layout {
	return m.Layout{
		SourceRoot:  "src",
		TestRoot:    "tests",
		FixtureRoot: "tests/fixtures",
		SharedFile:  "tests/fixtures/conftest.py",
	}
}

// newTestWorkflow wires a workflow with real adapters and a plain UI
// writing into the provided command's output buffer.
func newTestWorkflow(cmd *cobra.Command) Workflow {
	return NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalToolRunnerAdapter(io.Discard, io.Discard),
		adapter.NewYAMLReportStore(),
		controller.NewSimpleUI(cmd),
	)
}

func newBufferCmd() (*cobra.Command, *bytes.Buffer) {
	buffer := &bytes.Buffer{}

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(buffer)
	cmd.SetErr(buffer)

	return cmd, buffer
}

func writeProjectFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readProjectFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
