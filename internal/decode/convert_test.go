package decode

import (
	"testing"

	"github.com/deepteams/bmp/internal/numformat"
)

func TestConvertChannelInt(t *testing.T) {
	v, _, _ := ConvertChannel(numformat.Int, 0x1F, 5, 8)
	if v != 0xFF {
		t.Errorf("5-bit max rescaled to 8-bit should be 255, got %d", v)
	}
}

func TestConvertChannelFloat(t *testing.T) {
	_, f, _ := ConvertChannel(numformat.Float, 0x1F, 5, 8)
	if f != 1.0 {
		t.Errorf("max 5-bit value should map to 1.0, got %v", f)
	}
}

func TestOpaqueIntUsesFullScale(t *testing.T) {
	v, _, _ := Opaque(numformat.Int, 8)
	if v != 0xFF {
		t.Errorf("opaque 8-bit int should be 255, got %d", v)
	}
}

func TestOpaqueFloatIsOne(t *testing.T) {
	_, f, _ := Opaque(numformat.Float, 8)
	if f != 1.0 {
		t.Errorf("opaque float should be 1.0, got %v", f)
	}
}

func TestConvert64NonePassesThroughRawLanes(t *testing.T) {
	px := Convert64(ConvNone, numformat.S2_13, 0x2000, 0x1000, 0x0800, 0x2000)
	if px.RS != 0x2000 || px.GS != 0x1000 || px.BS != 0x0800 || px.AS != 0x2000 {
		t.Errorf("ConvNone should pass lanes through unchanged, got %+v", px)
	}
}

func TestConvert64SRGBFullWhiteMapsToMaxInt(t *testing.T) {
	// 0x2000 is 1.0 in s2.13.
	px := Convert64(ConvSRGB, numformat.Int, 0x2000, 0x2000, 0x2000, 0x2000)
	if px.RI != 0xFFFF || px.GI != 0xFFFF || px.BI != 0xFFFF {
		t.Errorf("full-scale sRGB input should saturate to max 16-bit int, got %+v", px)
	}
	if px.AI != 0xFFFF {
		t.Errorf("alpha should also saturate (no gamma applied), got %d", px.AI)
	}
}

func TestConvert64LinearZeroStaysZero(t *testing.T) {
	px := Convert64(ConvLinear, numformat.Float, 0, 0, 0, 0)
	if px.RF != 0 || px.GF != 0 || px.BF != 0 || px.AF != 0 {
		t.Errorf("zero input should stay zero under linear conversion, got %+v", px)
	}
}
