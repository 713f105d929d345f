package encode

import (
	"io"

	"github.com/deepteams/bmp/internal/bitio"
	"github.com/deepteams/bmp/internal/huffman"
)

// HuffmanEncoder emits 1-bpp CCITT T.4 rows to a bit-reversed stream,
// mirroring decode.HuffmanCursor (spec §4.4).
type HuffmanEncoder struct {
	enc      *huffman.Encoder
	polarity huffman.Color
}

// NewHuffmanEncoder wraps dst in a bit-reversed writer. whiteFirst selects
// whether row decoding starts from a white or black run, matching the
// handle-wide polarity flag of spec §3.
func NewHuffmanEncoder(dst io.Writer, whiteFirst bool) *HuffmanEncoder {
	start := huffman.White
	if !whiteFirst {
		start = huffman.Black
	}
	return &HuffmanEncoder{enc: huffman.NewEncoder(bitio.NewReversedWriter(dst)), polarity: start}
}

// WriteRow emits one row's EOL sync followed by alternating white/black
// runs derived from a row of 0/1 pixel values (0 = white, 1 = black).
func (h *HuffmanEncoder) WriteRow(row []byte) {
	h.enc.WriteEOL()
	color := h.polarity
	i := 0
	for i < len(row) {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		// Runs of the wrong polarity (the row doesn't start with the
		// expected colour) still need a zero-length run recorded so the
		// alternation stays in sync with the decoder.
		want := byte(0)
		if color == huffman.Black {
			want = 1
		}
		if row[i] != want {
			h.enc.WriteRun(color, 0)
			color = flipColor(color)
			continue
		}
		h.enc.WriteRun(color, j-i)
		color = flipColor(color)
		i = j
	}
}

// Finish emits the six-EOL return-to-control terminator and flushes the
// bit writer (spec §4.4).
func (h *HuffmanEncoder) Finish() {
	for i := 0; i < 6; i++ {
		h.enc.WriteEOL()
	}
	h.enc.Flush()
}

func flipColor(c huffman.Color) huffman.Color {
	if c == huffman.White {
		return huffman.Black
	}
	return huffman.White
}
