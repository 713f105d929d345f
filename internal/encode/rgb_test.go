package encode

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/numformat"
)

func TestWritePackedRGBLine24Bit(t *testing.T) {
	masks, err := colormask.Implicit(24)
	if err != nil {
		t.Fatalf("Implicit(24): %v", err)
	}
	pixels := []Pixel{
		{
			R: SourceChannel{Format: numformat.Int, I: 0x10, Bits: 8},
			G: SourceChannel{Format: numformat.Int, I: 0x20, Bits: 8},
			B: SourceChannel{Format: numformat.Int, I: 0x30, Bits: 8},
		},
	}
	var buf bytes.Buffer
	if err := WritePackedRGBLine(&buf, 1, 24, masks, pixels, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0x30, 0x20, 0x10, 0x00} // BGR + 1 pad byte
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %x, want %x", buf.Bytes(), want)
	}
}

func TestWritePackedRGB64Line(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePackedRGB64Line(&buf, 1, []uint16{0x1111}, []uint16{0x2222}, []uint16{0x3333}, []uint16{0x4444}); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0x33, 0x33, 0x22, 0x22, 0x11, 0x11, 0x44, 0x44}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %x, want %x", buf.Bytes(), want)
	}
}
