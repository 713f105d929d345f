package encode

import (
	"testing"

	"github.com/deepteams/bmp/internal/header"
)

func TestSelectFormat64Bit(t *testing.T) {
	p := SelectFormat(Settings{Set64Bit: true})
	if p.BitCount != 64 || p.Version != header.V3 || p.Compression != header.CompRGB {
		t.Errorf("64-bit plan = %+v", p)
	}
}

func TestSelectFormatIndexedRLEAuto(t *testing.T) {
	p := SelectFormat(Settings{PaletteSize: 200, RLE: RLEAuto})
	if p.Compression != header.CompRLE8 || p.BitCount != 8 {
		t.Errorf("200-colour RLE auto plan = %+v", p)
	}
}

func TestSelectFormatIndexedHuffman(t *testing.T) {
	p := SelectFormat(Settings{PaletteSize: 2, RLE: RLEAuto, AllowHuffman: true})
	if p.Compression != header.CompOS2Huffman || p.BitCount != 1 || p.Version != header.OS22 {
		t.Errorf("2-colour Huffman-eligible plan = %+v", p)
	}
}

func TestSelectFormatRLE24(t *testing.T) {
	p := SelectFormat(Settings{AllowRLE24: true, SourceIs3x8: true, RLE: RLEAuto})
	if p.Compression != header.CompOS2RLE24 || p.BitCount != 24 || p.Version != header.OS22 {
		t.Errorf("RLE24-eligible plan = %+v", p)
	}
}

func TestSelectFormatExplicitBitfields(t *testing.T) {
	p := SelectFormat(Settings{RedWidth: 5, GreenWidth: 6, BlueWidth: 5})
	if p.Compression != header.CompBitfields || p.Version != header.V3Adobe2 || p.BitCount != 16 {
		t.Errorf("565 bitfields plan = %+v", p)
	}
}

func TestSelectFormatExplicitAlphaBitfields(t *testing.T) {
	p := SelectFormat(Settings{RedWidth: 8, GreenWidth: 8, BlueWidth: 8, AlphaWidth: 8, HasAlpha: true})
	if p.Compression != header.CompAlphaBitfields || p.BitCount != 32 {
		t.Errorf("8888 alpha bitfields plan = %+v", p)
	}
}

func TestSelectFormatDefaultRGB(t *testing.T) {
	p := SelectFormat(Settings{})
	if p.Compression != header.CompRGB || p.BitCount != 16 || p.Version != header.V3 {
		t.Errorf("default plan = %+v", p)
	}
}

func TestSelectFormatDefault24BitFor3x8Source(t *testing.T) {
	p := SelectFormat(Settings{SourceIs3x8: true})
	if p.BitCount != 24 {
		t.Errorf("3x8 source without other settings should select 24bpp, got %+v", p)
	}
}
