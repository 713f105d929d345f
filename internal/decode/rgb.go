package decode

import (
	"io"

	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/numformat"
)

// align4padding returns the number of zero bytes needed to round n up to a
// multiple of 4 (spec §4.3.1, §4.4).
func align4padding(n int) int {
	return (4 - n%4) % 4
}

// ReadPackedRGBLine decodes one row of bitcount-per-pixel packed colour
// data (16/24/32/64 bpp, spec §4.3.1) from r into out, a width-length
// slice of Pixel. resultBits is the INT result width (ignored for
// Float/S2_13 formats). For bitcount == 64 the channel masks are fixed
// 16-bit s2.13 lanes and conv/format select the conversion path via
// Convert64; for all other bit counts each channel is independently
// rescaled via ConvertChannel.
func ReadPackedRGBLine(r io.Reader, width, bitcount int, masks colormask.Set, format numformat.Format, resultBits uint, conv Conv64, hasAlpha bool, latches *Latches) []Pixel {
	out := make([]Pixel, width)
	bytesPerPixel := bitcount / 8
	buf := make([]byte, bytesPerPixel)

	for x := 0; x < width; x++ {
		n, err := io.ReadFull(r, buf)
		if err != nil || n < bytesPerPixel {
			latches.Set(LatchTruncated)
			return out[:x]
		}
		var acc uint64
		for i := bytesPerPixel - 1; i >= 0; i-- {
			acc = acc<<8 | uint64(buf[i])
		}

		if bitcount == 64 {
			rv := uint16((acc >> masks.R.Shift) & 0xFFFF)
			gv := uint16((acc >> masks.G.Shift) & 0xFFFF)
			bv := uint16((acc >> masks.B.Shift) & 0xFFFF)
			av := uint16((acc >> masks.A.Shift) & 0xFFFF)
			out[x] = Convert64(conv, format, rv, gv, bv, av)
			continue
		}

		rv := (acc & uint64(masks.R.Mask)) >> masks.R.Shift
		gv := (acc & uint64(masks.G.Mask)) >> masks.G.Shift
		bv := (acc & uint64(masks.B.Mask)) >> masks.B.Shift

		var px Pixel
		px.RI, px.RF, px.RS = ConvertChannel(format, rv, masks.R.Width, resultBits)
		px.GI, px.GF, px.GS = ConvertChannel(format, gv, masks.G.Width, resultBits)
		px.BI, px.BF, px.BS = ConvertChannel(format, bv, masks.B.Width, resultBits)
		if hasAlpha && masks.A.Mask != 0 {
			av := (acc & uint64(masks.A.Mask)) >> masks.A.Shift
			px.AI, px.AF, px.AS = ConvertChannel(format, av, masks.A.Width, resultBits)
		} else if hasAlpha {
			px.AI, px.AF, px.AS = Opaque(format, resultBits)
		}
		out[x] = px
	}

	pad := align4padding((width*bitcount + 7) / 8)
	if pad > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(pad)); err != nil {
			latches.Set(LatchTruncated)
		}
	}
	return out
}
