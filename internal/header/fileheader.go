package header

import (
	"errors"
	"io"

	"github.com/deepteams/bmp/internal/binutil"
)

// FileHeader is the 14-byte file header (spec §3, §6).
type FileHeader struct {
	Magic     uint16
	FileSize  uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// Magic values, little-endian bytes read as a u16.
const (
	MagicBM uint16 = 0x4D42 // "BM" — plain bitmap
	MagicBA uint16 = 0x4142 // "BA" — bitmap array
	MagicCI uint16 = 0x4943 // "CI" — OS/2 colour icon
	MagicCP uint16 = 0x5043 // "CP" — OS/2 colour pointer
	MagicIC uint16 = 0x4349 // "IC" — OS/2 icon
	MagicPT uint16 = 0x5450 // "PT" — OS/2 pointer
)

// FileHeaderSize is the on-disk size of FileHeader.
const FileHeaderSize = 14

// ErrBadMagic is returned when the first two bytes do not match one of the
// six known magic values.
var ErrBadMagic = errors.New("bmp: unrecognised file magic")

// IsKnownMagic reports whether m is one of the six recognised two-byte tags.
func IsKnownMagic(m uint16) bool {
	switch m {
	case MagicBM, MagicBA, MagicCI, MagicCP, MagicIC, MagicPT:
		return true
	}
	return false
}

// ReadFileHeader reads and validates the 14-byte file header from r.
func ReadFileHeader(r io.Reader) (FileHeader, error) {
	var fh FileHeader
	magic, err := binutil.ReadU16(r)
	if err != nil {
		return fh, err
	}
	if !IsKnownMagic(magic) {
		return fh, ErrBadMagic
	}
	fh.Magic = magic
	if fh.FileSize, err = binutil.ReadU32(r); err != nil {
		return fh, err
	}
	if fh.Reserved1, err = binutil.ReadU16(r); err != nil {
		return fh, err
	}
	if fh.Reserved2, err = binutil.ReadU16(r); err != nil {
		return fh, err
	}
	if fh.OffBits, err = binutil.ReadU32(r); err != nil {
		return fh, err
	}
	return fh, nil
}

// WriteFileHeader writes the 14-byte file header to w.
func WriteFileHeader(w io.Writer, fh FileHeader) error {
	if err := binutil.WriteU16(w, fh.Magic); err != nil {
		return err
	}
	if err := binutil.WriteU32(w, fh.FileSize); err != nil {
		return err
	}
	if err := binutil.WriteU16(w, fh.Reserved1); err != nil {
		return err
	}
	if err := binutil.WriteU16(w, fh.Reserved2); err != nil {
		return err
	}
	return binutil.WriteU32(w, fh.OffBits)
}
