package numformat

import "math"

// SRGBEncode applies the sRGB transfer function (OETF) to a linear value in
// [0, 1], per spec §3 and §4.3.1. Values outside [0, 1] are clamped first.
// Alpha never receives gamma (§4.3.1); callers must not route alpha through
// this function.
func SRGBEncode(x float64) float64 {
	if x < 0 {
		x = 0
	} else if x >= 1 {
		return 1
	}
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1.0/2.4) - 0.055
}
