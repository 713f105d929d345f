package decode

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
)

func TestDecodeRLE8DeltaAndOverrun(t *testing.T) {
	stream := []byte{0x03, 0x01, 0x00, 0x02, 0x01, 0x00, 0x02, 0x02, 0x00, 0x00, 0x00, 0x01}
	table := palette.Table{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

	var latches Latches
	grid := DecodeRLE(bytes.NewReader(stream), 4, 2, 8, table, true, numformat.Int, 8, Leave, false, &latches)

	wantRow0 := []byte{1, 1, 1, 0}
	for x, want := range wantRow0 {
		if grid[0][x].Index != want {
			t.Errorf("row0[%d] = %d, want %d", x, grid[0][x].Index, want)
		}
	}
	if !latches.Has(LatchInvalidDelta) {
		t.Errorf("expected invalid_delta latch")
	}
	if !latches.Has(LatchInvalidOverrun) {
		t.Errorf("expected invalid_overrun latch")
	}
	if !latches.Invalid() {
		t.Errorf("expected Invalid() true")
	}
}

func TestDecodeRLE8UndefinedRowsGetZeroAlphaOnToAlpha(t *testing.T) {
	stream := []byte{0x03, 0x01, 0x00, 0x02, 0x01, 0x00, 0x02, 0x02, 0x00, 0x00, 0x00, 0x01}
	table := palette.Table{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

	var latches Latches
	grid := DecodeRLE(bytes.NewReader(stream), 4, 2, 8, table, false, numformat.Int, 8, ToAlpha, true, &latches)

	if grid[0][0].Pixel.AI == 0 {
		t.Errorf("row0[0] was written, expected opaque alpha")
	}
	if grid[0][3].Pixel.AI != 0 {
		t.Errorf("row0[3] was never written, expected alpha 0")
	}
	if grid[1][0].Pixel.AI != 0 {
		t.Errorf("row1 is undefined, expected alpha 0")
	}
}

func TestDecodeRLE4PacksNibblePairs(t *testing.T) {
	// Literal run of 4 values 1,2,3,4 packed two-per-byte high-nibble-first,
	// then end of bitmap.
	stream := []byte{0x00, 0x04, 0x12, 0x34, 0x00, 0x01}
	table := make(palette.Table, 16)
	var latches Latches
	grid := DecodeRLE(bytes.NewReader(stream), 4, 1, 4, table, true, numformat.Int, 8, Leave, false, &latches)
	want := []byte{1, 2, 3, 4}
	for x, w := range want {
		if grid[0][x].Index != w {
			t.Errorf("index[%d] = %d, want %d", x, grid[0][x].Index, w)
		}
	}
}
