package decode

import (
	"github.com/deepteams/bmp/internal/bitio"
	"github.com/deepteams/bmp/internal/huffman"
	"github.com/deepteams/bmp/internal/numformat"
)

// HuffmanCursor wraps a continuous bit-reversed bit stream shared across
// every row of a 1-bpp OS/2 Huffman image (spec §4.3.4): unlike the
// uncompressed indexed format, Huffman rows are not byte-aligned, so the
// same bitio.Reader (and its read-ahead) must persist across row calls.
type HuffmanCursor struct {
	dec      *huffman.Decoder
	polarity huffman.Color // colour of the first run of every row
}

// NewHuffmanCursor returns a cursor that decodes successive rows from src,
// which the caller creates with bitio.NewReversedReader. whiteFirst
// selects whether each row's first run is white (the T.4 default) or
// black; white pixels are index 0 and black pixels index 1 either way.
func NewHuffmanCursor(src *bitio.Reader, whiteFirst bool) *HuffmanCursor {
	start := huffman.White
	if !whiteFirst {
		start = huffman.Black
	}
	return &HuffmanCursor{dec: huffman.NewDecoder(src), polarity: start}
}

// ReadRow decodes one row of width 1-bpp Huffman-coded pixels into index
// bytes (0 or 1) per spec §4.3.4: each row begins with a 12-bit EOL sync
// sequence, then alternating white/black runs fill the row left to right.
func (c *HuffmanCursor) ReadRow(width int, latches *Latches) []byte {
	out := make([]byte, width)
	if c.dec.AtEOL() {
		c.dec.ConsumeEOL()
	} else if c.dec.EOF() {
		latches.Set(LatchTruncated)
		return out
	}
	// A row not beginning with the EOL sequence is tolerated: the decoder
	// simply starts decoding runs from wherever the stream sits, which
	// recovers gracefully from a sync loss already flagged by a prior
	// invalid-code resync.

	color := c.polarity
	x := 0
	for x < width {
		if c.dec.EOF() {
			latches.Set(LatchTruncated)
			return out
		}
		run, invalid := c.dec.ReadRun(color)
		if invalid {
			latches.Set(LatchInvalidPixel)
		}
		end := x + run
		if end > width {
			end = width
			latches.Set(LatchInvalidOverrun)
		}
		val := byte(0)
		if color == huffman.Black {
			val = 1
		}
		for ; x < end; x++ {
			out[x] = val
		}
		color = flip(color)
	}
	return out
}

func flip(c huffman.Color) huffman.Color {
	if c == huffman.White {
		return huffman.Black
	}
	return huffman.White
}

// ExpandHuffmanRow converts a row of 0/1 Huffman index bytes into final
// pixels via the two-entry black/white palette, exactly as an ordinary
// 1-bpp indexed row would (spec §4.3.5).
func ExpandHuffmanRow(row []byte, blackRGB, whiteRGB [3]byte, resultIndexed bool, format numformat.Format, resultBits uint) []IndexedPixel {
	out := make([]IndexedPixel, len(row))
	for i, idx := range row {
		out[i].Index = idx
		if resultIndexed {
			continue
		}
		e := whiteRGB
		if idx == 1 {
			e = blackRGB
		}
		out[i].Pixel.RI, out[i].Pixel.RF, out[i].Pixel.RS = ConvertChannel(format, uint64(e[0]), 8, resultBits)
		out[i].Pixel.GI, out[i].Pixel.GF, out[i].Pixel.GS = ConvertChannel(format, uint64(e[1]), 8, resultBits)
		out[i].Pixel.BI, out[i].Pixel.BF, out[i].Pixel.BS = ConvertChannel(format, uint64(e[2]), 8, resultBits)
	}
	return out
}
