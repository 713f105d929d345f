package header

import (
	"encoding/binary"
	"errors"
	"io"
)

// InfoHeader is the variable-length info header, normalised to a single Go
// struct regardless of which of the eight on-disk shapes produced it
// (spec §3, §4.1). Fields not present in a given Version keep their zero
// value.
type InfoHeader struct {
	Version     Version
	Size        uint32
	Width       int32
	Height      int32
	Planes      uint16
	BitCount    uint16
	Compression wireCompression
	SizeImage   uint32
	XPelsPerM   int32
	YPelsPerM   int32
	ClrUsed     uint32
	ClrImportant uint32

	// V3_ADOBE1+: explicit colour masks.
	RedMask, GreenMask, BlueMask uint32
	// V3_ADOBE2+: explicit alpha mask.
	AlphaMask uint32

	// V4+: CIE colour space.
	CSType              uint32
	Endpoints           [9]int32 // CIEXYZTRIPLE, 2.30 fixed point
	GammaRed, GammaGreen, GammaBlue uint32

	// V5: ICC profile pointer.
	Intent      uint32
	ProfileData uint32
	ProfileSize uint32

	// OS22: halftoning/units fields, carried but not interpreted further
	// (spec: "OS/2 halftone fields (OS22)" are part of the data model but
	// out of scope for pixel decoding).
	Units      uint16
	Recording  uint16
	Rendering  uint16
	Size1      uint32
	Size2      uint32
}

const maxInfoHeaderBuf = 124

// sizeToVersion maps an info-header size to its tentative Version, per the
// table in spec §4.1. Size 40 is returned as V3 even though it may later be
// reclassified to OS22 by the disambiguation step in classify.go.
func sizeToVersion(size uint32) (Version, bool) {
	switch {
	case size == 12:
		return CoreOS21, true
	case size == 40:
		return V3, true
	case size == 52:
		return V3Adobe1, true
	case size == 56:
		return V3Adobe2, true
	case size == 108:
		return V4, true
	case size == 124:
		return V5, true
	case size >= 16 && size <= 64:
		return OS22, true
	case size > 124:
		return Future, true
	default:
		return 0, false
	}
}

// ErrBadInfoHeaderSize is returned when the info-header size field does not
// match any known or future-extension shape.
var ErrBadInfoHeaderSize = errors.New("bmp: unrecognised info header size")

// ReadInfoHeader reads the variable-length info header from r. The first
// four bytes (the size field) must already have been consumed by the
// caller and are passed in as size; this mirrors the spec's description of
// reading the size first to decide how much more to read.
func ReadInfoHeader(r io.Reader, size uint32) (InfoHeader, error) {
	var ih InfoHeader
	version, ok := sizeToVersion(size)
	if !ok {
		return ih, ErrBadInfoHeaderSize
	}
	ih.Version = version
	ih.Size = size

	toRead := size - 4
	truncated := toRead
	if truncated > maxInfoHeaderBuf-4 {
		truncated = maxInfoHeaderBuf - 4
	}
	var buf [maxInfoHeaderBuf]byte
	if _, err := io.ReadFull(r, buf[4:4+truncated]); err != nil {
		return ih, err
	}
	// Drain any excess bytes beyond the 124-byte window we keep (FUTURE
	// headers, or any size we don't have fields for past 124).
	if excess := toRead - truncated; excess > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(excess)); err != nil {
			return ih, err
		}
	}

	parseFields(&ih, buf[:], size)
	return ih, nil
}

func parseFields(ih *InfoHeader, buf []byte, size uint32) {
	le := binary.LittleEndian
	if size >= 12 && ih.Version == CoreOS21 {
		// BITMAPCOREHEADER: 16-bit width/height, no compression field.
		ih.Width = int32(int16(le.Uint16(buf[4:6])))
		ih.Height = int32(int16(le.Uint16(buf[6:8])))
		ih.Planes = le.Uint16(buf[8:10])
		ih.BitCount = le.Uint16(buf[10:12])
		return
	}

	// Every later shape shares the BITMAPINFOHEADER-compatible prefix.
	if len(buf) >= 36 {
		ih.Width = int32(le.Uint32(buf[4:8]))
		ih.Height = int32(le.Uint32(buf[8:12]))
		ih.Planes = le.Uint16(buf[12:14])
		ih.BitCount = le.Uint16(buf[14:16])
		ih.Compression = wireCompression(le.Uint32(buf[16:20]))
		ih.SizeImage = le.Uint32(buf[20:24])
		ih.XPelsPerM = int32(le.Uint32(buf[24:28]))
		ih.YPelsPerM = int32(le.Uint32(buf[28:32]))
		ih.ClrUsed = le.Uint32(buf[32:36])
	}
	if len(buf) >= 40 {
		ih.ClrImportant = le.Uint32(buf[36:40])
	}

	if ih.Version == OS22 && len(buf) >= 64 {
		ih.Units = le.Uint16(buf[40:42])
		ih.Recording = le.Uint16(buf[44:46])
		ih.Rendering = le.Uint16(buf[46:48])
		ih.Size1 = le.Uint32(buf[48:52])
		ih.Size2 = le.Uint32(buf[52:56])
	}

	if ih.Version >= V3Adobe1 && len(buf) >= 52 {
		ih.RedMask = le.Uint32(buf[40:44])
		ih.GreenMask = le.Uint32(buf[44:48])
		ih.BlueMask = le.Uint32(buf[48:52])
	}
	if ih.Version >= V3Adobe2 && len(buf) >= 56 {
		ih.AlphaMask = le.Uint32(buf[52:56])
	}
	if ih.Version >= V4 && len(buf) >= 108 {
		ih.CSType = le.Uint32(buf[56:60])
		for i := 0; i < 9; i++ {
			off := 60 + i*4
			ih.Endpoints[i] = int32(le.Uint32(buf[off : off+4]))
		}
		ih.GammaRed = le.Uint32(buf[96:100])
		ih.GammaGreen = le.Uint32(buf[100:104])
		ih.GammaBlue = le.Uint32(buf[104:108])
	}
	if ih.Version >= V5 && len(buf) >= 124 {
		ih.Intent = le.Uint32(buf[108:112])
		ih.ProfileData = le.Uint32(buf[112:116])
		ih.ProfileSize = le.Uint32(buf[116:120])
	}
}
