package adapter

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// ToolRunnerAdapter abstracts execution of the external collaborators
// (dev server, code formatter, test runner).
type ToolRunnerAdapter interface {
	// Run starts command with args in workDir and waits for it to exit.
	// It returns the child's exit code; err is non-nil only when the
	// process could not be started or was interrupted.
	Run(ctx context.Context, workDir string, command string, args ...string) (exitCode int, err error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec,
// streaming the child's output to the configured writers.
type LocalToolRunnerAdapter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter writing
// child output to the given streams.
func NewLocalToolRunnerAdapter(stdout, stderr io.Writer) *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes the external tool and reports its exit code unchanged.
func (a *LocalToolRunnerAdapter) Run(ctx context.Context, workDir string, command string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = workDir
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}
