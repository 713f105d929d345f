// Package array implements the demultiplexing boundary for BMP bitmap
// arrays and OS/2 icon/pointer enclosures (spec §1, §4.1, §6). Per the
// spec's explicit scope ("bitmap-array / icon / pointer enclosures which
// this spec describes only at the demultiplexing boundary"), this package
// recognises the enclosure and locates the embedded entries; it does not
// decode AND/XOR icon masks. Grounded on the sibling-container pattern in
// other_examples/ur65-go-ico (an ICO file is, likewise, a small directory
// of embedded images with no own pixel format).
package array

import (
	"errors"
	"io"

	"github.com/deepteams/bmp/internal/binutil"
)

// EntryHeader is one BITMAPARRAYFILEHEADER record: a 2-byte magic "BA", a
// u32 size, a u32 offset to the next array entry (0 if last), a device
// type/resolution pair, and the embedded bitmap's own 14-byte file header
// immediately following.
type EntryHeader struct {
	NextOffset uint32
	ScreenWide uint16
	ScreenHigh uint16
}

// ErrNotArray is returned when the stream does not begin with the "BA"
// magic.
var ErrNotArray = errors.New("bmp: not a bitmap array")

// ReadEntryHeader reads one BITMAPARRAYFILEHEADER's array-specific fields
// (the caller has already consumed the 2-byte "BA" magic and will read the
// embedded 14-byte bitmap file header that follows this call).
func ReadEntryHeader(r io.Reader) (EntryHeader, error) {
	var e EntryHeader
	// u32 cbSize (record size, unused beyond validation) is consumed first.
	if _, err := binutil.ReadU32(r); err != nil {
		return e, err
	}
	next, err := binutil.ReadU32(r)
	if err != nil {
		return e, err
	}
	e.NextOffset = next
	if e.ScreenWide, err = binutil.ReadU16(r); err != nil {
		return e, err
	}
	if e.ScreenHigh, err = binutil.ReadU16(r); err != nil {
		return e, err
	}
	return e, nil
}
