package domain

import (
	"fmt"
	"strings"

	m "stubber.dev/pkg/stubber/internal/model"
)

// ExitStatusError carries an external tool's exit code so main can
// surface it unchanged.
type ExitStatusError struct {
	Tool string
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// ConflictError reports fixture names defined in more than one stub file.
// The shared fixtures file is left untouched when this is returned.
type ConflictError struct {
	Conflicts []m.Conflict
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, fmt.Sprintf("%s (%s, %s)", c.Name, c.First, c.Duplicate))
	}

	return "duplicate fixture names: " + strings.Join(names, "; ")
}
