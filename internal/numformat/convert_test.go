package numformat

import (
	"math"
	"testing"
)

func TestRescaleIntBoundaries(t *testing.T) {
	cases := []struct {
		v, from, to uint
		want        uint64
	}{
		{0, 5, 8, 0},
		{31, 5, 8, 255},
		{0, 8, 8, 0},
		{255, 8, 8, 255},
		{255, 8, 16, 65535},
	}
	for _, c := range cases {
		got := RescaleInt(uint64(c.v), c.from, c.to)
		if got != c.want {
			t.Errorf("RescaleInt(%d, %d, %d) = %d, want %d", c.v, c.from, c.to, got, c.want)
		}
	}
}

func TestRescaleIntMonotonic(t *testing.T) {
	for v := uint64(0); v < 32; v++ {
		if v > 0 {
			a := RescaleInt(v-1, 5, 8)
			b := RescaleInt(v, 5, 8)
			if b < a {
				t.Fatalf("RescaleInt not monotonic at v=%d: %d > %d", v, a, b)
			}
		}
	}
}

func TestS2_13RoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.5, -0.5, 3.999877} {
		enc := FloatToS2_13(f)
		back := S2_13ToFloat(enc)
		if math.Abs(back-f) > 1.0/8192.0 {
			t.Errorf("S2_13 round trip for %v: got %v", f, back)
		}
	}
}

func TestS2_13ClampsOutOfRange(t *testing.T) {
	if v := FloatToS2_13(1000.0); v != uint16(int16(32767)) {
		t.Errorf("expected clamp to 32767, got %d", int16(v))
	}
	if v := FloatToS2_13(-1000.0); int16(v) != -32768 {
		t.Errorf("expected clamp to -32768, got %d", int16(v))
	}
}

func TestSRGBEncodeBounds(t *testing.T) {
	if got := SRGBEncode(0); got != 0 {
		t.Errorf("SRGBEncode(0) = %v, want 0", got)
	}
	if got := SRGBEncode(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("SRGBEncode(1) = %v, want 1", got)
	}
	if got := SRGBEncode(0.0031308); math.Abs(got-12.92*0.0031308) > 1e-9 {
		t.Errorf("SRGBEncode at threshold mismatched linear branch: %v", got)
	}
	if got := SRGBEncode(2.0); got != 1 {
		t.Errorf("SRGBEncode clamps >1, got %v", got)
	}
	if got := SRGBEncode(-1.0); got != 0 {
		t.Errorf("SRGBEncode clamps <0, got %v", got)
	}
}

func TestScaleUnitToBitsClamps(t *testing.T) {
	if got := ScaleUnitToBits(-1, 8); got != 0 {
		t.Errorf("ScaleUnitToBits(-1, 8) = %d, want 0", got)
	}
	if got := ScaleUnitToBits(2, 8); got != 255 {
		t.Errorf("ScaleUnitToBits(2, 8) = %d, want 255", got)
	}
	if got := ScaleUnitToBits(1, 16); got != 65535 {
		t.Errorf("ScaleUnitToBits(1, 16) = %d, want 65535", got)
	}
}

func TestResultIntBits(t *testing.T) {
	cases := []struct {
		in   uint
		want uint
	}{
		{1, 8}, {5, 8}, {8, 8}, {9, 16}, {16, 16}, {17, 32}, {32, 32},
	}
	for _, c := range cases {
		if got := ResultIntBits(c.in); got != c.want {
			t.Errorf("ResultIntBits(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
