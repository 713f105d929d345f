package decode

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/numformat"
)

func TestReadPackedRGBLine24Bit(t *testing.T) {
	masks, err := colormask.Implicit(24)
	if err != nil {
		t.Fatalf("Implicit(24): %v", err)
	}
	// Two BGR pixels: (0x10,0x20,0x30) and (0xAA,0xBB,0xCC); 2*3 = 6 bytes of
	// pixel data, followed by 2 padding bytes to reach a multiple of 4.
	data := []byte{0x30, 0x20, 0x10, 0xCC, 0xBB, 0xAA, 0x00, 0x00}
	var latches Latches
	out := ReadPackedRGBLine(bytes.NewReader(data), 2, 24, masks, numformat.Int, 8, ConvSRGB, false, &latches)
	if len(out) != 2 {
		t.Fatalf("expected 2 pixels, got %d", len(out))
	}
	if out[0].RI != 0x10 || out[0].GI != 0x20 || out[0].BI != 0x30 {
		t.Errorf("pixel 0 = %+v", out[0])
	}
	if out[1].RI != 0xAA || out[1].GI != 0xBB || out[1].BI != 0xCC {
		t.Errorf("pixel 1 = %+v", out[1])
	}
	if latches.Any() {
		t.Errorf("unexpected latch: %+v", latches)
	}
}

func TestReadPackedRGBLineTruncated(t *testing.T) {
	masks, _ := colormask.Implicit(24)
	var latches Latches
	out := ReadPackedRGBLine(bytes.NewReader([]byte{0x01, 0x02}), 2, 24, masks, numformat.Int, 8, ConvSRGB, false, &latches)
	if len(out) != 0 {
		t.Errorf("expected zero decoded pixels before truncation, got %d", len(out))
	}
	if !latches.Truncated() {
		t.Errorf("expected truncated latch")
	}
}

func TestReadPackedRGBLineOpaqueAlphaWhenNoAlphaMask(t *testing.T) {
	masks, _ := colormask.Implicit(24)
	data := []byte{0x00, 0x00, 0x00, 0x00}
	var latches Latches
	out := ReadPackedRGBLine(bytes.NewReader(data), 1, 24, masks, numformat.Int, 8, ConvSRGB, true, &latches)
	if out[0].AI != 0xFF {
		t.Errorf("expected opaque alpha 0xFF when no alpha mask present, got %d", out[0].AI)
	}
}
