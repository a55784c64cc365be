// Package pkg is a package that provides utilities for stubber.
package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNoRegion is returned when a document does not contain both markers.
var ErrNoRegion = errors.New("managed region markers not found")

// Splice replaces the content between the begin and end marker lines of
// doc with content, leaving everything outside the markers untouched.
// Both markers must be present, each on its own line, begin before end.
// content is inserted verbatim between the marker lines; pass "" for an
// empty region.
func Splice(doc, begin, end, content string) (string, error) {
	head, _, tail, err := split(doc, begin, end)
	if err != nil {
		slog.Warn("region splice failed", "begin", begin, "end", end, "error", err)
		return "", err
	}

	var b strings.Builder

	b.WriteString(head)
	b.WriteString(begin)
	b.WriteString("\n")

	if content != "" {
		b.WriteString(content)

		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
	}

	b.WriteString(end)
	b.WriteString(tail)

	slog.Debug("region spliced", "begin", begin, "bytes", len(content))

	return b.String(), nil
}

// Extract returns the content currently between the markers, without the
// marker lines themselves.
func Extract(doc, begin, end string) (string, error) {
	_, body, _, err := split(doc, begin, end)
	if err != nil {
		return "", err
	}

	return body, nil
}

// split cuts doc into head (up to and excluding the begin marker line),
// body (between the markers) and tail (from the end marker line on,
// excluding the marker itself).
func split(doc, begin, end string) (head, body, tail string, err error) {
	beginIdx := indexLine(doc, begin)
	if beginIdx < 0 {
		return "", "", "", fmt.Errorf("begin marker %q: %w", begin, ErrNoRegion)
	}

	endIdx := indexLine(doc[beginIdx+len(begin):], end)
	if endIdx < 0 {
		return "", "", "", fmt.Errorf("end marker %q: %w", end, ErrNoRegion)
	}

	endIdx += beginIdx + len(begin)

	head = doc[:beginIdx]
	body = doc[beginIdx+len(begin) : endIdx]
	body = strings.TrimPrefix(body, "\n")
	tail = doc[endIdx+len(end):]

	return head, body, tail, nil
}

// indexLine finds marker occurring as a full line and returns the byte
// offset of its first character, or -1.
func indexLine(doc, marker string) int {
	offset := 0

	for {
		idx := strings.Index(doc[offset:], marker)
		if idx < 0 {
			return -1
		}

		idx += offset

		lineStart := idx == 0 || doc[idx-1] == '\n'
		lineEnd := idx+len(marker) == len(doc) || doc[idx+len(marker)] == '\n'

		if lineStart && lineEnd {
			return idx
		}

		offset = idx + len(marker)
	}
}
