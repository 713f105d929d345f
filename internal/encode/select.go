package encode

import "github.com/deepteams/bmp/internal/header"

// RLERequest is the caller's compression preference for an indexed image
// (spec §4.4).
type RLERequest int

const (
	RLENone RLERequest = iota
	RLEAuto
	RLEForce8
)

// Settings captures the caller-settable encode knobs the output-format
// selector reads (spec §4.4).
type Settings struct {
	PaletteSize   int // 0 when no palette is set
	RLE           RLERequest
	Allow2Bit     bool
	AllowHuffman  bool
	AllowRLE24    bool
	SourceIs3x8   bool // source channels are three independent 8-bit values
	RedWidth      int  // 0 when channel widths were never explicitly requested
	GreenWidth    int
	BlueWidth     int
	AlphaWidth    int
	HasAlpha      bool
	Set64Bit      bool
}

// Plan is the resolved output shape: which info-header version to emit,
// the bitcount, and the compression tag.
type Plan struct {
	Version     header.Version
	BitCount    int
	Compression header.Compression
}

// SelectFormat resolves the output format from caller settings by the
// precedence rules of spec §4.4.
func SelectFormat(s Settings) Plan {
	if s.Set64Bit {
		return Plan{Version: header.V3, BitCount: 64, Compression: header.CompRGB}
	}

	if s.PaletteSize > 0 {
		return selectIndexed(s)
	}

	if s.AllowRLE24 && s.SourceIs3x8 && s.RLE == RLEAuto {
		return Plan{Version: header.OS22, BitCount: 24, Compression: header.CompOS2RLE24}
	}

	if needsBitfields(s) {
		bc := 32
		if s.RedWidth+s.GreenWidth+s.BlueWidth+s.AlphaWidth <= 16 {
			bc = 16
		}
		comp := header.CompBitfields
		if s.HasAlpha {
			comp = header.CompAlphaBitfields
		}
		return Plan{Version: header.V3Adobe2, BitCount: bc, Compression: comp}
	}

	bc := 16
	if s.RedWidth+s.GreenWidth+s.BlueWidth > 16 || s.SourceIs3x8 {
		bc = 24
	}
	return Plan{Version: header.V3, BitCount: bc, Compression: header.CompRGB}
}

func selectIndexed(s Settings) Plan {
	bitcount := indexBitcount(s.PaletteSize, s.Allow2Bit)

	switch s.RLE {
	case RLEForce8:
		return Plan{Version: header.V3, BitCount: 8, Compression: header.CompRLE8}
	case RLEAuto:
		if s.PaletteSize == 2 && s.AllowHuffman {
			return Plan{Version: header.OS22, BitCount: 1, Compression: header.CompOS2Huffman}
		}
		if s.PaletteSize <= 16 {
			return Plan{Version: header.V3, BitCount: 4, Compression: header.CompRLE4}
		}
		return Plan{Version: header.V3, BitCount: 8, Compression: header.CompRLE8}
	default: // RLENone
		return Plan{Version: header.V3, BitCount: bitcount, Compression: header.CompRGB}
	}
}

// indexBitcount picks the smallest bitcount that can hold paletteSize
// colours, promoting 2-bit to 4-bit unless the caller explicitly allows
// 2-bit output (spec §4.4).
func indexBitcount(paletteSize int, allow2Bit bool) int {
	switch {
	case paletteSize <= 2:
		return 1
	case paletteSize <= 4:
		if allow2Bit {
			return 2
		}
		return 4
	case paletteSize <= 16:
		return 4
	default:
		return 8
	}
}

// needsBitfields reports whether the caller's explicit channel-width
// request can only be satisfied by BITFIELDS/ALPHABITFIELDS (spec §4.4):
// unequal widths, alpha present, or a red width outside {0, 5, 8}.
func needsBitfields(s Settings) bool {
	if s.RedWidth == 0 && s.GreenWidth == 0 && s.BlueWidth == 0 {
		return false
	}
	unequal := s.RedWidth != s.GreenWidth || s.GreenWidth != s.BlueWidth
	oddRed := s.RedWidth != 0 && s.RedWidth != 5 && s.RedWidth != 8
	total := s.RedWidth + s.GreenWidth + s.BlueWidth + s.AlphaWidth
	return (unequal || s.HasAlpha || oddRed) && total <= 32
}
