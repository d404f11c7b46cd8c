// Package debug holds helpers for diagnostic output only, nothing here is
// part of the document processing itself.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter renders an indented tree dump, one entry per line. It backs the
// document String() form shown by the dump subcommand and stored in debug
// reports.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

// Node writes one tree entry at the given depth.
func (tw *TreeWriter) Node(depth int, format string, args ...any) {
	tw.b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Text writes a labeled text payload at the given depth. The payload is
// quoted so control characters survive the trip through logs and report
// archives.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.b.WriteString(strings.Repeat(indent, depth))
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(strconv.Quote(value))
	tw.b.WriteByte('\n')
}
