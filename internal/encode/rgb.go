// Package encode implements the pixel-encode engine (spec §4.4): the
// inverse of internal/decode, turning caller-supplied pixel channels into
// the wire bytes of a packed-RGB, indexed, RLE, or Huffman-coded BMP row.
//
// Grounded on the teacher's internal/lossy encoder pass for the overall
// shape of a row-oriented write loop threaded through padding and
// accumulator state, generalised from VP8's macroblock residual coding to
// BMP's flat per-pixel channel packing.
package encode

import (
	"io"

	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/numformat"
)

func align4padding(n int) int {
	return (4 - n%4) % 4
}

// SourceChannel is one channel value in the caller's source numeric
// format, tagged so the writer knows which conversion rule to apply
// (spec §4.4).
type SourceChannel struct {
	Format numformat.Format
	I      uint64
	F      float32
	S      uint16
	Bits   uint // source width, for Format == Int
}

// toWireWidth converts one source channel to an unsigned value occupying
// exactly toBits bits, per the inverse rules of spec §4.3.1/§4.4.
func toWireWidth(c SourceChannel, toBits uint) uint64 {
	switch c.Format {
	case numformat.Float:
		return numformat.ScaleUnitToBits(float64(c.F), toBits)
	case numformat.S2_13:
		return numformat.ScaleUnitToBits(numformat.S2_13ToFloat(c.S), toBits)
	default:
		return numformat.RescaleInt(c.I, c.Bits, toBits)
	}
}

// Pixel is one source pixel's four channels, each independently tagged
// with its own numeric format (spec §4.4 sources are uniform per image in
// practice, but the writer does not assume it).
type Pixel struct {
	R, G, B, A SourceChannel
}

// WritePackedRGBLine writes one row of bitcount-per-pixel packed colour
// data (16/24/32 bpp; 64-bpp uses WritePackedRGB64Line instead) to w, given
// a channel set per pixel and the target colour masks (spec §4.4).
func WritePackedRGBLine(w io.Writer, width, bitcount int, masks colormask.Set, pixels []Pixel, hasAlpha bool) error {
	bytesPerPixel := bitcount / 8
	buf := make([]byte, bytesPerPixel)
	for x := 0; x < width; x++ {
		px := pixels[x]
		var acc uint64
		acc |= toWireWidth(px.R, masks.R.Width) << masks.R.Shift
		acc |= toWireWidth(px.G, masks.G.Width) << masks.G.Shift
		acc |= toWireWidth(px.B, masks.B.Width) << masks.B.Shift
		if hasAlpha && masks.A.Mask != 0 {
			acc |= toWireWidth(px.A, masks.A.Width) << masks.A.Shift
		}
		for i := 0; i < bytesPerPixel; i++ {
			buf[i] = byte(acc >> uint(8*i))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	pad := align4padding((width*bitcount + 7) / 8)
	if pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return err
		}
	}
	return nil
}

// WritePackedRGB64Line writes one row of 64-bpp pixels, each channel
// already in s2.13 form (the NONE conversion's native representation;
// callers using SRGB/LINEAR source data convert to s2.13 before calling
// this, mirroring decode's Convert64 in reverse).
func WritePackedRGB64Line(w io.Writer, width int, r, g, b, a []uint16) error {
	buf := make([]byte, 8)
	for x := 0; x < width; x++ {
		var acc uint64
		acc |= uint64(b[x])
		acc |= uint64(g[x]) << 16
		acc |= uint64(r[x]) << 32
		acc |= uint64(a[x]) << 48
		for i := 0; i < 8; i++ {
			buf[i] = byte(acc >> uint(8*i))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
