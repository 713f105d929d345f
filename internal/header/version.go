// Package header implements the file-header and info-header parser and
// the OS/2 vs. Windows compression-code classifier (spec §4.1). The
// split into fileheader.go/version.go/infoheader.go/classify.go mirrors
// the teacher's internal/container package split into riff.go (wire
// primitives) and parser.go (classification logic), generalised from
// WebP's RIFF chunk model to BMP's fixed-layout file+info header pair.
package header

// Version tags the eight historically deployed info-header shapes (spec §3).
type Version int

const (
	CoreOS21 Version = iota
	OS22
	V3
	V3Adobe1
	V3Adobe2
	V4
	V5
	Future
)

func (v Version) String() string {
	switch v {
	case CoreOS21:
		return "CORE_OS21"
	case OS22:
		return "OS22"
	case V3:
		return "V3"
	case V3Adobe1:
		return "V3_ADOBE1"
	case V3Adobe2:
		return "V3_ADOBE2"
	case V4:
		return "V4"
	case V5:
		return "V5"
	case Future:
		return "FUTURE"
	default:
		return "UNKNOWN"
	}
}

// Compression is the resolved compression tag (spec §3), after the
// OS/2/Windows collision on wire values 3 and 4 has been disambiguated.
type Compression int

const (
	CompRGB Compression = iota
	CompRLE8
	CompRLE4
	CompBitfields
	CompJPEG
	CompPNG
	CompAlphaBitfields
	CompCMYK
	CompCMYKRLE8
	CompCMYKRLE4
	CompOS2Huffman
	CompOS2RLE24
)

func (c Compression) String() string {
	switch c {
	case CompRGB:
		return "RGB"
	case CompRLE8:
		return "RLE8"
	case CompRLE4:
		return "RLE4"
	case CompBitfields:
		return "BITFIELDS"
	case CompJPEG:
		return "JPEG"
	case CompPNG:
		return "PNG"
	case CompAlphaBitfields:
		return "ALPHABITFIELDS"
	case CompCMYK:
		return "CMYK"
	case CompCMYKRLE8:
		return "CMYKRLE8"
	case CompCMYKRLE4:
		return "CMYKRLE4"
	case CompOS2Huffman:
		return "OS2_HUFFMAN"
	case CompOS2RLE24:
		return "OS2_RLE24"
	default:
		return "UNKNOWN"
	}
}

// wireCompression is the raw u32 compression field as it appears on disk,
// before OS/2 disambiguation.
type wireCompression uint32

const (
	wireRGB            wireCompression = 0
	wireRLE8           wireCompression = 1
	wireRLE4           wireCompression = 2
	wireBitfieldsOrHuf wireCompression = 3 // BITFIELDS (Windows) / HUFFMAN (OS/2)
	wireJPEGOrRLE24    wireCompression = 4 // JPEG (Windows) / RLE24 (OS/2)
	wirePNG            wireCompression = 5
	wireAlphaBitfields wireCompression = 6
	wireCMYK           wireCompression = 11
	wireCMYKRLE8       wireCompression = 12
	wireCMYKRLE4       wireCompression = 13
)
