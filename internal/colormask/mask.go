// Package colormask resolves the per-channel bit layout of packed-RGB(A)
// pixels (spec §4.2): either explicit masks read from the bitstream, or
// masks synthesised implicitly from the bit count for plain BI_RGB data.
package colormask

import (
	"errors"
	"math/bits"
)

// Channel describes one colour channel's placement within a packed pixel.
type Channel struct {
	Mask   uint32
	Shift  uint
	Width  uint
	MaxVal float64
}

func newChannel(mask uint32) Channel {
	if mask == 0 {
		return Channel{}
	}
	shift := uint(bits.TrailingZeros32(mask))
	// width = number of consecutive one bits after the trailing zeros.
	width := consecutiveOnes(mask >> shift)
	return Channel{
		Mask:   mask,
		Shift:  shift,
		Width:  width,
		MaxVal: float64((uint64(1) << width) - 1),
	}
}

func consecutiveOnes(v uint32) uint {
	var n uint
	for v&1 == 1 {
		n++
		v >>= 1
	}
	return n
}

// Set is the four-way colour mask record of spec §3.
type Set struct {
	R, G, B, A Channel
}

var (
	// ErrOverlap is returned when two channel masks share a bit.
	ErrOverlap = errors.New("bmp: colour masks overlap")
	// ErrEmpty is returned when red, green, and blue masks are all zero.
	ErrEmpty = errors.New("bmp: colour masks are empty")
	// ErrTooWide is returned when a channel width exceeds min(bitcount, 32),
	// the sum of widths exceeds bitcount, or a mask reaches past the top
	// bit of a bitcount-wide pixel.
	ErrTooWide = errors.New("bmp: colour mask too wide for bit count")
)

// FromExplicit builds a Set from four raw masks (alpha may be zero) and
// validates the invariants of spec §3: masks never overlap; the union of
// R/G/B is non-empty; the widest single mask is at most min(bitcount, 32);
// the sum of widths is at most bitcount. It also rejects a mask that
// reaches past the top bit of a bitcount-wide pixel.
func FromExplicit(rMask, gMask, bMask, aMask uint32, bitcount int) (Set, error) {
	s := Set{
		R: newChannel(rMask),
		G: newChannel(gMask),
		B: newChannel(bMask),
		A: newChannel(aMask),
	}
	if rMask == 0 && gMask == 0 && bMask == 0 {
		return Set{}, ErrEmpty
	}
	if rMask&gMask != 0 || rMask&bMask != 0 || gMask&bMask != 0 ||
		aMask&(rMask|gMask|bMask) != 0 {
		return Set{}, ErrOverlap
	}
	maxWidth := uint(bitcount)
	if maxWidth > 32 {
		maxWidth = 32
	}
	total := s.R.Width + s.G.Width + s.B.Width + s.A.Width
	if s.R.Width > maxWidth || s.G.Width > maxWidth || s.B.Width > maxWidth || s.A.Width > maxWidth {
		return Set{}, ErrTooWide
	}
	if total > uint(bitcount) {
		return Set{}, ErrTooWide
	}
	for _, c := range []Channel{s.R, s.G, s.B, s.A} {
		if c.Shift+c.Width > uint(bitcount) {
			return Set{}, ErrTooWide
		}
	}
	return s, nil
}

// Implicit synthesises masks for plain BI_RGB data from the bit count,
// packing channels B, G, R low-to-high, per spec §4.2. It handles 16, 24
// and 32 bpp; the 64-bpp layout comes from Implicit64.
func Implicit(bitcount int) (Set, error) {
	switch bitcount {
	case 16:
		return FromExplicit(0x7C00, 0x03E0, 0x001F, 0, bitcount)
	case 24, 32:
		return FromExplicit(0x00FF0000, 0x0000FF00, 0x000000FF, 0, bitcount)
	default:
		return Set{}, ErrEmpty
	}
}

// Implicit64 returns the four 16-bit-wide channel masks of a 64-bpp pixel,
// packed B, G, R, A from the low word upward (spec §4.2). Each channel
// occupies a full 16-bit lane. The R and A lanes lie above bit 31, so a
// uint32 Mask cannot hold them: Mask is 0xFFFF shifted by Shift modulo 32
// and does not describe the lane. The 64-bpp reader extracts each lane
// with Shift and a 16-bit mask instead.
func Implicit64() Set {
	ch := func(shift uint) Channel {
		return Channel{Mask: 0xFFFF << (shift % 32), Shift: shift, Width: 16, MaxVal: 65535}
	}
	return Set{
		B: ch(0),
		G: ch(16),
		R: ch(32),
		A: ch(48),
	}
}
