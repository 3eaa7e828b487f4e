// Package angle holds the modular reductions used for longitudes and azimuths.
//
// Every function takes a base; a zero base returns the value unchanged and an
// infinite value reduces to NaN.
package angle

import "math"

// UMod returns x reduced to [0, base).
func UMod(x, base float64) float64 {
	if base == 0 {
		return x
	}
	base = math.Abs(base)
	r := math.Mod(x, base)
	if r < 0 {
		r += base
	}
	// -tiny + base rounds to base
	if r == base {
		r = 0
	}
	return r
}

// SMod returns x reduced to (-base/2, base/2]. The sign of a zero x is kept.
func SMod(x, base float64) float64 {
	if base == 0 {
		return x
	}
	base = math.Abs(base)
	r := math.Remainder(x, base)
	if r == -base/2 {
		return base / 2
	}
	return r
}

// SModLow returns x reduced to [-base/2, base/2).
func SModLow(x, base float64) float64 {
	if base == 0 {
		return x
	}
	base = math.Abs(base)
	r := math.Remainder(x, base)
	if r == base/2 {
		return -base / 2
	}
	return r
}

// Normalize reduces an angle in degrees to (-180, 180].
func Normalize(deg float64) float64 {
	return SMod(deg, 360)
}
