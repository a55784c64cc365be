package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stubber.dev/pkg/stubber/internal/adapter"
	"stubber.dev/pkg/stubber/internal/controller"
	m "stubber.dev/pkg/stubber/internal/model"
)

// GenerateArgs contains the arguments for the generation sweep.
type GenerateArgs struct {
	Layout  m.Layout
	Exclude []string
	Reports m.Path
}

// ImportArgs contains the arguments for the fixture-registry rewrite.
type ImportArgs struct {
	Layout   m.Layout
	Parallel int
	DryRun   bool
	Reports  m.Path
}

// CleanArgs contains the arguments for the pruning sweep.
type CleanArgs struct {
	Layout  m.Layout
	Reports m.Path
}

// ToolArgs describes one external collaborator invocation.
type ToolArgs struct {
	Name    string
	Command []string
	WorkDir string
}

// PreStageArgs sequences import-fixtures, the formatter and the test
// runner in that fixed order.
type PreStageArgs struct {
	Import ImportArgs
	Format ToolArgs
	Tests  ToolArgs
}

// Workflow defines the operations the CLI commands drive.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	ImportFixtures(ctx context.Context, args ImportArgs) error
	CleanStubs(ctx context.Context, args CleanArgs) error
	RunTool(ctx context.Context, args ToolArgs) error
	PreStage(ctx context.Context, args PreStageArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ToolRunnerAdapter
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	toolRunner adapter.ToolRunnerAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:   fsAdapter,
		ToolRunnerAdapter: toolRunner,
		ReportStore:       reportStore,
		UI:                ui,
	}
}

// RunTool executes an external collaborator and surfaces a nonzero exit
// code as an ExitStatusError.
func (w *workflow) RunTool(ctx context.Context, args ToolArgs) error {
	if len(args.Command) == 0 {
		return fmt.Errorf("no command configured for %s", args.Name)
	}

	w.DisplayToolStart(ctx, args.Name, args.Command)
	slog.Info("running external tool", "tool", args.Name, "command", args.Command)

	code, err := w.Run(ctx, args.WorkDir, args.Command[0], args.Command[1:]...)
	if err != nil {
		return fmt.Errorf("start %s: %w", args.Name, err)
	}

	if code != 0 {
		return &ExitStatusError{Tool: args.Name, Code: code}
	}

	return nil
}

// PreStage runs import-fixtures, then the formatter, then the test
// runner. The first failing step aborts the sequence and its status is
// surfaced unchanged.
func (w *workflow) PreStage(ctx context.Context, args PreStageArgs) error {
	if err := w.ImportFixtures(ctx, args.Import); err != nil {
		return fmt.Errorf("import fixtures: %w", err)
	}

	if err := w.RunTool(ctx, args.Format); err != nil {
		return err
	}

	return w.RunTool(ctx, args.Tests)
}

// saveReport persists a run report unless reporting is disabled.
func (w *workflow) saveReport(report m.Report, dir m.Path, start time.Time) {
	if dir == "" {
		return
	}

	report.StartedAt = start
	report.Duration = time.Since(start).Round(time.Millisecond).String()

	if _, err := w.Save(dir, report); err != nil {
		slog.Warn("failed to save run report", "dir", dir, "error", err)
	}
}
