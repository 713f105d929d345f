package decode

import (
	"io"

	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
)

// RLECell is one decoded cell of an RLE-compressed image: either a palette
// index (RLE4/RLE8) or a 24-bit BGR truecolour value (OS2_RLE24), already
// converted to the result format, plus whether this cell was ever written
// by the stream (spec §4.3.3: delta jumps and truncation leave cells at
// their initial zero content, which TO_ALPHA exposes as alpha 0).
type RLECell struct {
	Index   byte
	Pixel   Pixel
	Defined bool
}

// DecodeRLE decodes an entire RLE4/RLE8/RLE24 image in one pass into a
// height×width grid addressed in file-row order (row 0 is the first row
// written in the file; the caller flips to top-down/bottom-up display
// order afterwards per spec §4.3's shared line-loop rule). bitcount is 4,
// 8, or 24; for 4/8 table/resultIndexed/format/resultBits drive palette
// expansion as in ReadIndexedLine; for 24 they are ignored and each cell's
// Pixel is populated directly from the BGR triple (blue byte first).
func DecodeRLE(r io.Reader, width, height, bitcount int, table palette.Table, resultIndexed bool, format numformat.Format, resultBits uint, undefined Undefined, hasAlpha bool, latches *Latches) [][]RLECell {
	grid := make([][]RLECell, height)
	for i := range grid {
		grid[i] = make([]RLECell, width)
	}

	row := 0
	x := 0
	rowHasPixels := false
	explicitEOL := make([]bool, height+1)

	maxIndex := len(table) - 1

	setCell := func(cellRow, x int, val uint32) {
		if cellRow < 0 || cellRow >= height || x < 0 || x >= width {
			return
		}
		cell := RLECell{Defined: true}
		if bitcount == 24 {
			bv := uint64(val & 0xFF)
			gv := uint64((val >> 8) & 0xFF)
			rv := uint64((val >> 16) & 0xFF)
			cell.Pixel.RI, cell.Pixel.RF, cell.Pixel.RS = ConvertChannel(format, rv, 8, resultBits)
			cell.Pixel.GI, cell.Pixel.GF, cell.Pixel.GS = ConvertChannel(format, gv, 8, resultBits)
			cell.Pixel.BI, cell.Pixel.BF, cell.Pixel.BS = ConvertChannel(format, bv, 8, resultBits)
		} else {
			idx := int(val)
			if idx > maxIndex {
				if maxIndex < 0 {
					idx = 0
				} else {
					idx = maxIndex
				}
				latches.Set(LatchInvalidIndex)
			}
			cell.Index = byte(idx)
			if !resultIndexed && maxIndex >= 0 {
				e := table[idx]
				cell.Pixel.RI, cell.Pixel.RF, cell.Pixel.RS = ConvertChannel(format, uint64(e.R), 8, resultBits)
				cell.Pixel.GI, cell.Pixel.GF, cell.Pixel.GS = ConvertChannel(format, uint64(e.G), 8, resultBits)
				cell.Pixel.BI, cell.Pixel.BF, cell.Pixel.BS = ConvertChannel(format, uint64(e.B), 8, resultBits)
			}
		}
		grid[cellRow][x] = cell
	}

	// writeRun applies n cells of val starting at the current cursor,
	// stopping (and latching invalid_overrun) the instant x reaches width.
	writeRun := func(n int, vals func(i int) uint32) {
		for i := 0; i < n; i++ {
			if x >= width {
				latches.Set(LatchInvalidOverrun)
				return
			}
			setCell(row, x, vals(i))
			x++
			rowHasPixels = true
		}
	}

	readByte := func() (byte, bool) {
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			latches.Set(LatchTruncated)
			return 0, false
		}
		return b[0], true
	}

	readUnit := func() (uint32, bool) {
		if bitcount == 24 {
			var b [3]byte
			if _, err := io.ReadFull(r, b[:]); err != nil {
				latches.Set(LatchTruncated)
				return 0, false
			}
			return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, true
		}
		b, ok := readByte()
		return uint32(b), ok
	}

	endRow := func() {
		if row < height {
			explicitEOL[row] = true
		}
		row++
		x = 0
		rowHasPixels = false
	}

loop:
	for {
		ctrl, ok := readByte()
		if !ok {
			break
		}
		if ctrl > 0 {
			unit, ok := readUnit()
			if !ok {
				break
			}
			if bitcount == 4 {
				hi := byte(unit>>4) & 0x0F
				lo := byte(unit) & 0x0F
				writeRun(int(ctrl), func(i int) uint32 {
					if i%2 == 0 {
						return uint32(hi)
					}
					return uint32(lo)
				})
			} else {
				writeRun(int(ctrl), func(int) uint32 { return unit })
			}
			continue
		}

		esc, ok := readByte()
		if !ok {
			break
		}
		switch {
		case esc == 0: // end of line
			duplicate := !rowHasPixels && row > 0 && explicitEOL[row-1]
			if !duplicate {
				endRow()
			}
		case esc == 1: // end of bitmap
			break loop
		case esc == 2: // delta
			dx, ok1 := readByte()
			dy, ok2 := readByte()
			if !ok1 || !ok2 {
				break loop
			}
			if int(dx) >= width-x {
				latches.Set(LatchInvalidDelta)
			}
			x += int(dx)
			if x > width {
				x = width
			}
			if dy > 0 {
				row += int(dy)
				rowHasPixels = false
			}
			if row > height {
				row = height
			}
		default: // literal run of esc pixels
			n := int(esc)
			values := make([]uint32, n)
			truncated := false
			switch bitcount {
			case 24:
				for i := 0; i < n; i++ {
					v, ok := readUnit()
					if !ok {
						truncated = true
						break
					}
					values[i] = v
				}
				if (n*3)%2 == 1 {
					discardPad(r, latches)
				}
			case 4:
				nbytes := (n + 1) / 2
				buf := make([]byte, nbytes)
				if _, err := io.ReadFull(r, buf); err != nil {
					truncated = true
				}
				for i := 0; i < n; i++ {
					b := buf[i/2]
					if i%2 == 0 {
						values[i] = uint32(b>>4) & 0x0F
					} else {
						values[i] = uint32(b) & 0x0F
					}
				}
				if nbytes%2 == 1 {
					discardPad(r, latches)
				}
			default: // 8
				buf := make([]byte, n)
				if _, err := io.ReadFull(r, buf); err != nil {
					truncated = true
				}
				for i := 0; i < n; i++ {
					values[i] = uint32(buf[i])
				}
				if n%2 == 1 {
					discardPad(r, latches)
				}
			}
			if truncated {
				latches.Set(LatchTruncated)
				writeRun(n, func(i int) uint32 { return values[i] })
				break loop
			}
			writeRun(n, func(i int) uint32 { return values[i] })
		}
	}

	// Rows never reached by any run stay at their zero-value, undefined
	// content (spec §4.3.3: "row1 is undefined").
	if undefined == ToAlpha {
		stampAlpha(grid, format, resultBits, hasAlpha)
	}
	return grid
}

func discardPad(r io.Reader, latches *Latches) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		latches.Set(LatchTruncated)
	}
}

func stampAlpha(grid [][]RLECell, format numformat.Format, resultBits uint, hasAlpha bool) {
	if !hasAlpha {
		return
	}
	opaqueI, opaqueF, opaqueS := Opaque(format, resultBits)
	for _, row := range grid {
		for i := range row {
			if row[i].Defined {
				row[i].Pixel.AI, row[i].Pixel.AF, row[i].Pixel.AS = opaqueI, opaqueF, opaqueS
			} else {
				row[i].Pixel.AI, row[i].Pixel.AF, row[i].Pixel.AS = 0, 0, 0
			}
		}
	}
}
