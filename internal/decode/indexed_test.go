package decode

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
)

func TestReadIndexedLine8BppIndexedResult(t *testing.T) {
	table := palette.Table{{R: 0, G: 0, B: 0}, {R: 10, G: 20, B: 30}}
	data := []byte{0x00, 0x01, 0x00, 0x00}
	var latches Latches
	out := ReadIndexedLine(bytes.NewReader(data), 2, 8, table, true, numformat.Int, 8, &latches)
	if out[0].Index != 0 || out[1].Index != 1 {
		t.Errorf("indices = %d, %d", out[0].Index, out[1].Index)
	}
	if latches.Any() {
		t.Errorf("unexpected latch: %+v", latches)
	}
}

func TestReadIndexedLineExpandsRGBWhenNotIndexed(t *testing.T) {
	table := palette.Table{{R: 0, G: 0, B: 0}, {R: 10, G: 20, B: 30}}
	data := []byte{0x01, 0x00, 0x00, 0x00}
	var latches Latches
	out := ReadIndexedLine(bytes.NewReader(data), 1, 8, table, false, numformat.Int, 8, &latches)
	if out[0].Pixel.RI != 10 || out[0].Pixel.GI != 20 || out[0].Pixel.BI != 30 {
		t.Errorf("expanded pixel = %+v", out[0].Pixel)
	}
}

func TestReadIndexedLineClampsOutOfRangeIndex(t *testing.T) {
	table := palette.Table{{R: 0, G: 0, B: 0}}
	data := []byte{0x05, 0x00, 0x00, 0x00}
	var latches Latches
	out := ReadIndexedLine(bytes.NewReader(data), 1, 8, table, true, numformat.Int, 8, &latches)
	if out[0].Index != 0 {
		t.Errorf("expected clamp to 0, got %d", out[0].Index)
	}
	if !latches.Has(LatchInvalidIndex) {
		t.Errorf("expected invalid_index latch")
	}
}

func TestReadIndexedLine4BppPacking(t *testing.T) {
	table := make(palette.Table, 16)
	// Two pixels per byte, high nibble first: 0x12 -> indices 1, 2.
	data := []byte{0x12, 0x00, 0x00, 0x00}
	var latches Latches
	out := ReadIndexedLine(bytes.NewReader(data), 2, 4, table, true, numformat.Int, 8, &latches)
	if out[0].Index != 1 || out[1].Index != 2 {
		t.Errorf("indices = %d, %d", out[0].Index, out[1].Index)
	}
}
