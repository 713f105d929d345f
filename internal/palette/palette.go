// Package palette reads and writes the BMP colour table (spec §3, §6).
package palette

import (
	"errors"
	"io"
)

// Entry is one colour-table row.
type Entry struct {
	R, G, B byte
}

// Table is an ordered sequence of at most 256 colour entries.
type Table []Entry

// ErrTooManyColors is returned when the declared colour count would read
// past offbits, the start of the pixel data (spec §8: over-sized clrused
// is treated as INVALID, not silently capped — see DESIGN.md's note on the
// two disagreeing source revisions).
var ErrTooManyColors = errors.New("bmp: palette colour count exceeds room before pixel data")

// EntrySize returns the on-disk size of one palette entry: 3 bytes for the
// OS/2 1.x core header, 4 bytes (with a padding byte) for every later
// version.
func EntrySize(isCore bool) int {
	if isCore {
		return 3
	}
	return 4
}

// Read reads numColors entries of entrySize bytes each from r. bytesRead is
// the number of bytes already consumed from the start of the file;
// offbits is the declared offset to the first pixel byte. Returns the
// table and the number of bytes consumed.
func Read(r io.Reader, numColors, entrySize, bytesRead, offbits int) (Table, int, error) {
	if numColors < 0 {
		numColors = 0
	}
	if numColors > 256 {
		numColors = 256
	}
	maxFit := (offbits - bytesRead) / entrySize
	if numColors > maxFit {
		return nil, 0, ErrTooManyColors
	}
	table := make(Table, numColors)
	buf := make([]byte, entrySize)
	consumed := 0
	for i := range table {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, consumed, err
		}
		table[i] = Entry{R: buf[2], G: buf[1], B: buf[0]}
		consumed += entrySize
	}
	return table, consumed, nil
}

// Write writes the table to w using entrySize bytes per entry (3 or 4;
// the 4th byte, when present, is always zero).
func Write(w io.Writer, table Table, entrySize int) error {
	buf := make([]byte, entrySize)
	for _, e := range table {
		buf[0], buf[1], buf[2] = e.B, e.G, e.R
		if entrySize == 4 {
			buf[3] = 0
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
