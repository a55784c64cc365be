package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "stubber.dev/pkg/stubber/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayGenerated prints a table of created stubs.
func (s *SimpleUI) DisplayGenerated(ctx context.Context, created []m.Stub, scanned int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(created) == 0 {
		s.printf("Scanned %d source file(s), nothing to generate\n", scanned)
		return nil
	}

	s.printf("\n%s", renderStubTable(created, scanned))

	return nil
}

func renderStubTable(created []m.Stub, scanned int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Stub", "Kind", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, stub := range created {
		table.Append([]string{string(stub.FullPath), string(stub.Kind), string(stub.Source)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Created %d", len(created)),
		"",
		fmt.Sprintf("Scanned %d", scanned),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayImports prints the managed-region import lines and the diff of
// the rewrite when the shared file changed.
func (s *SimpleUI) DisplayImports(ctx context.Context, imports []string, changed bool, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Wired %d fixture import(s)\n", len(imports))

	for _, line := range imports {
		s.printf("  %s\n", line)
	}

	if !changed {
		s.printf("Shared fixtures file already up to date\n")
		return nil
	}

	if diff != "" {
		s.printf("\n%s", diff)
	}

	return nil
}

// DisplayConflicts prints duplicate fixture names.
func (s *SimpleUI) DisplayConflicts(ctx context.Context, conflicts []m.Conflict) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Fixture name conflict(s):\n")

	for _, conflict := range conflicts {
		s.printf("  %s: first defined in %s, duplicated in %s\n", conflict.Name, conflict.First, conflict.Duplicate)
	}
}

// DisplayCleaned prints removed stubs and pruned directories.
func (s *SimpleUI) DisplayCleaned(ctx context.Context, removed []m.Path, pruned []m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(removed) == 0 && len(pruned) == 0 {
		s.printf("Nothing to clean\n")
		return nil
	}

	for _, path := range removed {
		s.printf("Removed %s\n", path)
	}

	for _, path := range pruned {
		s.printf("Pruned empty directory %s\n", path)
	}

	s.printf("Removed %d stub(s), pruned %d directorie(s)\n", len(removed), len(pruned))

	return nil
}

// DisplayToolStart announces an external tool invocation.
func (s *SimpleUI) DisplayToolStart(ctx context.Context, tool string, command []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %s: %s\n", tool, strings.Join(command, " "))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
