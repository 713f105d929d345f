package bmp

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/palette"
)

func makeGradientImage(width, height int) *Image {
	img := newImage(width, height, 3, FormatInt, 8)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.setChannel(y, x, 0, uint64(x*255/max(width-1, 1)), 0, 0)
			img.setChannel(y, x, 1, uint64(y*255/max(height-1, 1)), 0, 0)
			img.setChannel(y, x, 2, uint64((x+y)%256), 0, 0)
		}
	}
	return img
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestRoundTrip24BitUncompressed(t *testing.T) {
	src := makeGradientImage(6, 4)

	var buf bytes.Buffer
	wr, result := NewWriter(&buf)
	if result != OK {
		t.Fatalf("NewWriter: %v", result)
	}
	if r := wr.SetSize(src.Width, src.Height); r != OK {
		t.Fatalf("SetSize: %v", r)
	}
	wr.SetSourceIs3x8(true)
	if r := wr.SaveImage(src); r != OK {
		t.Fatalf("SaveImage: %v", r)
	}

	rd, result := NewReader(bytes.NewReader(buf.Bytes()))
	if result != OK {
		t.Fatalf("NewReader: %v", result)
	}
	w, r := rd.Width()
	if r != OK || w != src.Width {
		t.Fatalf("Width: %d, %v", w, r)
	}
	h, r := rd.Height()
	if r != OK || h != src.Height {
		t.Fatalf("Height: %d, %v", h, r)
	}
	rd.Channels()
	rd.Depth()

	got, loadResult := rd.LoadImage()
	if loadResult != OK {
		t.Fatalf("LoadImage: %v", loadResult)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("dimensions mismatch: got %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for i := range src.Pix8 {
		if got.Pix8[i] != src.Pix8[i] {
			t.Errorf("pixel byte %d: got %d, want %d", i, got.Pix8[i], src.Pix8[i])
		}
	}
}

func TestRoundTripIndexed(t *testing.T) {
	table := palette8()
	img := newImage(5, 3, 1, FormatInt, 8)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.setIndex(y, x, byte((x+y)%4))
		}
	}

	var buf bytes.Buffer
	wr, result := NewWriter(&buf)
	if result != OK {
		t.Fatalf("NewWriter: %v", result)
	}
	wr.SetSize(img.Width, img.Height)
	wr.SetPalette(table)
	if r := wr.SaveImage(img); r != OK {
		t.Fatalf("SaveImage: %v", r)
	}

	rd, result := NewReader(bytes.NewReader(buf.Bytes()))
	if result != OK {
		t.Fatalf("NewReader: %v", result)
	}
	rd.SetResultIndexed(true)
	rd.Width()
	rd.Height()
	rd.Channels()
	rd.Depth()
	got, loadResult := rd.LoadImage()
	if loadResult != OK {
		t.Fatalf("LoadImage: %v", loadResult)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			want := img.Pix8[y*img.Width+x]
			have := got.Pix8[y*img.Width+x]
			if want != have {
				t.Errorf("index at (%d,%d): got %d, want %d", x, y, have, want)
			}
		}
	}
}

func palette8() palette.Table {
	return palette.Table{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}
}
