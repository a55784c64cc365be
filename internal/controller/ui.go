// Package controller provides output adapters for displaying scaffolding results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "stubber.dev/pkg/stubber/internal/model"
)

// UI defines the interface for displaying sweep results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayGenerated shows the stubs created by a generation sweep and
	// the number of source files scanned.
	DisplayGenerated(ctx context.Context, created []m.Stub, scanned int) error

	// DisplayImports shows the managed-region import lines, whether the
	// shared file changed, and a unified diff of the change.
	DisplayImports(ctx context.Context, imports []string, changed bool, diff string) error

	// DisplayConflicts shows duplicate fixture names.
	DisplayConflicts(ctx context.Context, conflicts []m.Conflict)

	// DisplayCleaned shows removed stubs and pruned directories.
	DisplayCleaned(ctx context.Context, removed []m.Path, pruned []m.Path) error

	// DisplayToolStart announces an external tool invocation.
	DisplayToolStart(ctx context.Context, tool string, command []string)
}

// NewUI picks the interactive TUI when stdout is a terminal, falling back
// to plain table output otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
