package header

import "errors"

// Errors returned by Classify's support gate (spec §4.1).
var (
	ErrBadPlanes        = errors.New("bmp: planes field must equal 1")
	ErrUnsupportedCombo = errors.New("bmp: unsupported bitcount/compression combination")
)

// Disambiguate resolves the OS/2-vs-Windows ambiguity for a tentatively-V3
// info header (spec §4.1): a 40-byte header is reclassified as OS22 when
// the file magic is not BM, the file-header size field is 54, or the raw
// compression/bitcount combination is one only OS/2 uses. The check only
// ever fires for a tentative V3 header — every other size already has an
// unambiguous version.
func Disambiguate(ih *InfoHeader, magic uint16, fileSize uint32) {
	if ih.Version != V3 {
		return
	}
	reclassify := magic != MagicBM ||
		fileSize == 54 ||
		(ih.Compression == wireBitfieldsOrHuf && ih.BitCount == 1) ||
		(ih.Compression == wireJPEGOrRLE24 && ih.BitCount == 24)
	if reclassify {
		ih.Version = OS22
	}
}

// ResolveCompression maps the raw wire compression code to the tagged
// Compression enum, remapping the OS/2 codes 3 and 4 whenever the header
// version is CORE_OS21 or OS22 AND the bitcount matches the OS/2 meaning
// of that code (1 for Huffman, 24 for RLE24) (spec §4.1). A code-3/4
// header of OS22 version but some other bitcount (e.g. 16, from a
// file-size-54 BITFIELDS image) is genuinely the Windows meaning, not an
// OS/2 quirk, so it falls through to the Windows mapping below. Call this
// after Disambiguate.
func ResolveCompression(ih *InfoHeader) Compression {
	if ih.Version <= OS22 {
		switch {
		case ih.Compression == wireBitfieldsOrHuf && ih.BitCount == 1:
			return CompOS2Huffman
		case ih.Compression == wireJPEGOrRLE24 && ih.BitCount == 24:
			return CompOS2RLE24
		}
	}
	switch ih.Compression {
	case wireRGB:
		return CompRGB
	case wireRLE8:
		return CompRLE8
	case wireRLE4:
		return CompRLE4
	case wireBitfieldsOrHuf:
		return CompBitfields
	case wireJPEGOrRLE24:
		return CompJPEG
	case wirePNG:
		return CompPNG
	case wireAlphaBitfields:
		return CompAlphaBitfields
	case wireCMYK:
		return CompCMYK
	case wireCMYKRLE8:
		return CompCMYKRLE8
	case wireCMYKRLE4:
		return CompCMYKRLE4
	default:
		return compUnknown // unrecognised codes are rejected by the support gate below
	}
}

// compUnknown tags a wire compression code with no Compression of its own.
const compUnknown Compression = -1

// CheckSupportGate validates planes and the bitcount/compression
// combination against spec §4.1's support table.
func CheckSupportGate(planes uint16, bitcount int, comp Compression) error {
	if planes != 1 {
		return ErrBadPlanes
	}
	if bitcount <= 8 {
		switch comp {
		case CompRGB:
			switch bitcount {
			case 1, 2, 4, 8:
				return nil
			}
		case CompRLE4:
			if bitcount == 4 {
				return nil
			}
		case CompRLE8:
			if bitcount == 8 {
				return nil
			}
		case CompOS2Huffman:
			if bitcount == 1 {
				return nil
			}
		}
		return ErrUnsupportedCombo
	}
	switch bitcount {
	case 16, 24, 32, 64:
		switch comp {
		case CompRGB:
			return nil
		case CompBitfields:
			if bitcount != 64 {
				return nil
			}
		case CompAlphaBitfields:
			return nil
		case CompOS2RLE24:
			if bitcount == 24 {
				return nil
			}
		}
	}
	return ErrUnsupportedCombo
}

// IsEmbedded reports whether comp indicates an embedded codec payload
// (PNG/JPEG) that the pixel-decode engine hands back to the caller
// unprocessed (spec §4.1, §6).
func IsEmbedded(comp Compression) bool {
	return comp == CompJPEG || comp == CompPNG
}
