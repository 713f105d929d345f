// Package diag implements the append-only diagnostic log accumulator shared
// by the reader and writer handles. It is deliberately not a process-wide
// logging framework: callers inspect it per-image, the way the teacher
// package accumulates per-encode statistics in internal/lossy/encode_analysis.go
// rather than routing them through a logger.
package diag

import "fmt"

// Log is an append-only buffer of diagnostic lines produced while decoding
// or encoding a single image. Line-by-line reads reset the log on every
// call (see Reset) to keep memory bounded on heavily corrupt files.
type Log struct {
	lines []string
}

// Append adds a formatted diagnostic line.
func (l *Log) Append(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns the accumulated diagnostic lines.
func (l *Log) Lines() []string {
	return l.lines
}

// Reset clears the log, keeping the backing array for reuse.
func (l *Log) Reset() {
	l.lines = l.lines[:0]
}
