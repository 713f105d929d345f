package decode

import (
	"bytes"
	"io"

	"github.com/deepteams/bmp/internal/bitio"
	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
	"github.com/deepteams/bmp/internal/pool"
)

// IndexedPixel is one decoded indexed-line result: either the raw palette
// index (when result-indexed mode is active) or an expanded RGB triple,
// already numeric-format converted (spec §4.3.2, §4.3.5).
type IndexedPixel struct {
	Index byte
	Pixel Pixel
}

// rowByteLen returns the 4-byte-aligned on-disk length of one row of width
// bitcount-per-pixel samples.
func rowByteLen(width, bitcount int) int {
	raw := (width*bitcount + 7) / 8
	return raw + align4padding(raw)
}

// ReadIndexedLine decodes one row of bitcount-per-pixel palette indices
// (1/2/4/8 bpp, uncompressed, spec §4.3.2) from r. Out-of-range indices are
// clamped to len(table)-1 and latch invalid_index. When resultIndexed is
// true the caller wants raw index bytes; table/format/resultBits are still
// applied for non-indexed callers.
//
// The row is read into a fixed-size buffer first and decoded from there,
// rather than wrapping r directly in a bitio.Reader: bitio.Reader
// prefetches up to three bytes ahead of the bits actually consumed, which
// would silently swallow bytes belonging to the next row's padding.
func ReadIndexedLine(r io.Reader, width, bitcount int, table palette.Table, resultIndexed bool, format numformat.Format, resultBits uint, latches *Latches) []IndexedPixel {
	out := make([]IndexedPixel, width)
	buf := pool.Get(rowByteLen(width, bitcount))
	defer pool.Put(buf)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if n == 0 {
			latches.Set(LatchTruncated)
			return out[:0]
		}
		latches.Set(LatchTruncated)
	}

	br := bitio.NewReader(bytes.NewReader(buf[:n]))
	maxIndex := len(table) - 1

	for x := 0; x < width; x++ {
		if br.EOF() {
			latches.Set(LatchTruncated)
			return out[:x]
		}
		idx := byte(br.Read(bitcount))
		raw := int(idx)
		if raw > maxIndex {
			if maxIndex < 0 {
				raw = 0
			} else {
				raw = maxIndex
			}
			latches.Set(LatchInvalidIndex)
		}

		ip := IndexedPixel{Index: byte(raw)}
		if !resultIndexed && maxIndex >= 0 {
			e := table[raw]
			if format == numformat.Int && resultBits == 8 {
				ip.Pixel = Pixel{RI: uint64(e.R), GI: uint64(e.G), BI: uint64(e.B)}
			} else {
				rv, gv, bv := uint64(e.R), uint64(e.G), uint64(e.B)
				ip.Pixel.RI, ip.Pixel.RF, ip.Pixel.RS = ConvertChannel(format, rv, 8, resultBits)
				ip.Pixel.GI, ip.Pixel.GF, ip.Pixel.GS = ConvertChannel(format, gv, 8, resultBits)
				ip.Pixel.BI, ip.Pixel.BF, ip.Pixel.BS = ConvertChannel(format, bv, 8, resultBits)
			}
		}
		out[x] = ip
	}
	return out
}
