package decode

import "github.com/deepteams/bmp/internal/numformat"

// Pixel is one fully-decoded RGBA pixel. Exactly one of the three
// representations below is populated, matching the caller's selected
// numformat.Format: RI/GI/BI/AI for Int, RF/GF/BF/AF for Float, RS/GS/BS/AS
// for S2_13.
type Pixel struct {
	RI, GI, BI, AI uint64
	RF, GF, BF, AF float32
	RS, GS, BS, AS uint16
}

// ConvertChannel converts one raw source-width channel value into the
// selected result format (spec §4.3.1, §4.3.5). srcBits is the width the
// raw value was extracted at; toBits is the result INT width.
func ConvertChannel(format numformat.Format, v uint64, srcBits uint, toBits uint) (intVal uint64, f32Val float32, s2 uint16) {
	switch format {
	case numformat.Float:
		return 0, numformat.ToFloat(v, srcBits), 0
	case numformat.S2_13:
		return 0, 0, numformat.ToS2_13FromChannel(v, srcBits)
	default:
		return numformat.RescaleInt(v, srcBits, toBits), 0, 0
	}
}

// Opaque returns the fully-opaque alpha value at the result format/width,
// used whenever a pixel's source has no alpha channel (spec §4.3.1).
func Opaque(format numformat.Format, toBits uint) (intVal uint64, f32Val float32, s2 uint16) {
	switch format {
	case numformat.Float:
		return 0, 1.0, 0
	case numformat.S2_13:
		return 0, 0, 0x2000 // 1.0 in s2.13
	default:
		return (uint64(1) << toBits) - 1, 0, 0
	}
}

// Convert64 implements the 64-bpp conversion-mode path of spec §4.3.1: the
// four raw s2.13-encoded lanes (r, g, b, a as uint16) are turned into the
// selected result format according to mode. Alpha never receives gamma.
func Convert64(mode Conv64, format numformat.Format, r, g, b, a uint16) Pixel {
	switch mode {
	case ConvNone:
		return Pixel{RS: r, GS: g, BS: b, AS: a}
	case ConvLinear:
		return fromUnit(format,
			numformat.Clamp01(numformat.S2_13ToFloat(r)),
			numformat.Clamp01(numformat.S2_13ToFloat(g)),
			numformat.Clamp01(numformat.S2_13ToFloat(b)),
			numformat.Clamp01(numformat.S2_13ToFloat(a)))
	default: // ConvSRGB
		rf := numformat.SRGBEncode(numformat.Clamp01(numformat.S2_13ToFloat(r)))
		gf := numformat.SRGBEncode(numformat.Clamp01(numformat.S2_13ToFloat(g)))
		bf := numformat.SRGBEncode(numformat.Clamp01(numformat.S2_13ToFloat(b)))
		af := numformat.Clamp01(numformat.S2_13ToFloat(a))
		return fromUnit(format, rf, gf, bf, af)
	}
}

// fromUnit packs four already-clamped-to-[0,1] channel values into the
// selected result format.
func fromUnit(format numformat.Format, r, g, b, a float64) Pixel {
	var px Pixel
	switch format {
	case numformat.Int:
		px.RI, px.GI, px.BI, px.AI = uint64(numformat.UnitToInt16(r)), uint64(numformat.UnitToInt16(g)),
			uint64(numformat.UnitToInt16(b)), uint64(numformat.UnitToInt16(a))
	case numformat.Float:
		px.RF, px.GF, px.BF, px.AF = float32(r), float32(g), float32(b), float32(a)
	case numformat.S2_13:
		px.RS, px.GS, px.BS, px.AS = numformat.FloatToS2_13(r), numformat.FloatToS2_13(g),
			numformat.FloatToS2_13(b), numformat.FloatToS2_13(a)
	}
	return px
}
