package geodesic

import (
	"math"

	"github.com/geoarc/geodesic/internal/angle"
)

const digits = 53

var (
	epsilon = math.Pow(2, 1-digits)
	// sqrt of the smallest normal number
	tiny = math.Sqrt(math.Pow(2, -1022))
)

func sq(x float64) float64 { return x * x }

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// polyval evaluates the polynomial of degree n whose coefficients start at
// p[s], highest power first, using Horner's method.
func polyval(n int, p []float64, s int, x float64) float64 {
	if n < 0 {
		return 0
	}
	y := p[s]
	for ; n > 0; n-- {
		s++
		y = y*x + p[s]
	}
	return y
}

// sum is the error free transformation of a sum: s = round(u + v) and
// u + v = s + t exactly.
func sum(u, v float64) (s, t float64) {
	s = u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	t = -(up + vpp)
	return s, t
}

// angNormalize reduces an angle to (-180, 180].
func angNormalize(x float64) float64 {
	return angle.Normalize(x)
}

// angDiff computes y - x reduced to [-180, 180] together with the rounding
// error of the difference. -180 is only returned for west-going results.
func angDiff(x, y float64) (d, t float64) {
	d, t = sum(angNormalize(-x), angNormalize(y))
	d = angNormalize(d)
	if d == 180 && t > 0 {
		return sum(-180, t)
	}
	return sum(d, t)
}

// angRound rounds an angle so that small values underflow to zero. The
// smallest gap near zero becomes 1/16 - nextafter(1/16, 0) = 1/2^57, about
// 0.7 pm on the earth, which avoids near singular cases like x = 1e-200.
func angRound(x float64) float64 {
	const z = 1 / 16.0
	y := math.Abs(x)
	if y < z {
		// z - (z - y) must not be simplified to y
		w := z - y
		y = z - w
	}
	if x < 0 {
		return -y
	}
	return y
}

// latFix replaces latitudes outside [-90, 90] by NaN.
func latFix(x float64) float64 {
	if math.Abs(x) > 90 {
		return math.NaN()
	}
	return x
}

// norm scales (x, y) to unit length.
func norm(x, y float64) (float64, float64) {
	r := math.Hypot(x, y)
	return x / r, y / r
}

// sincosd returns the sine and cosine of x in degrees. Results are exact at
// multiples of 90 and sincosd(-0) = (-0, 1).
func sincosd(x float64) (s, c float64) {
	r := math.NaN()
	if !math.IsInf(x, 0) {
		r = math.Mod(x, 360)
	}
	q := 0
	if !math.IsNaN(r) {
		q = int(math.RoundToEven(r / 90))
	}
	r -= float64(90 * q)
	s, c = math.Sincos(radians(r))
	switch q & 3 {
	case 1:
		s, c = c, -s
	case 2:
		s, c = -s, -c
	case 3:
		s, c = -c, s
	}
	if x == 0 {
		return x, c
	}
	// convert -0 to +0
	return 0 + s, 0 + c
}

// atan2d returns atan2(y, x) in degrees, in (-180, 180]. The argument of
// the underlying atan2 is kept in [-1, 1] by swapping and reflecting first.
func atan2d(y, x float64) float64 {
	q := 0
	if math.Abs(y) > math.Abs(x) {
		q = 2
		x, y = y, x
	}
	if x < 0 {
		q++
		x = -x
	}
	ang := degrees(math.Atan2(y, x))
	switch q {
	case 1:
		if y >= 0 {
			ang = 180 - ang
		} else {
			ang = -180 - ang
		}
	case 2:
		ang = 90 - ang
	case 3:
		ang = -90 + ang
	}
	return ang
}

// astroid solves k^4 + 2k^3 - (x^2 + y^2 - 1)k^2 - 2y^2 k - y^2 = 0 for the
// positive root k.
func astroid(x, y float64) float64 {
	p := sq(x)
	q := sq(y)
	r := (p + q - 1) / 6
	if q == 0 && r <= 0 {
		// y = 0 with |x| <= 1
		return 0
	}
	// Multiply the equations for s and t by r^3 and r so that r = 0 does
	// not divide.
	S := p * q / 4
	r2 := sq(r)
	r3 := r * r2
	// zero on the evolute p^(1/3) + q^(1/3) = 1
	disc := S * (S + 2*r3)
	u := r
	if disc >= 0 {
		T3 := S + r3
		// sign of the sqrt chosen to maximize |T3|
		if T3 < 0 {
			T3 -= math.Sqrt(disc)
		} else {
			T3 += math.Sqrt(disc)
		}
		// real cube root, cbrt(-8) = -2
		T := math.Cbrt(T3)
		u += T
		if T != 0 {
			u += r2 / T
		}
	} else {
		// T is complex but u is real; pick the root that avoids cancellation.
		ang := math.Atan2(math.Sqrt(-disc), -(S + r3))
		u += 2 * r * math.Cos(ang/3)
	}
	v := math.Sqrt(sq(u) + q)
	var uv float64
	if u < 0 {
		uv = q / (v - u)
	} else {
		uv = u + v
	}
	w := (uv - q) / (2 * v)
	return uv / (math.Sqrt(uv+sq(w)) + w)
}

// eatanhe returns es * atanh(es * x) for es > 0 and -es * atan(es * x)
// otherwise, with es the signed eccentricity (negative when prolate).
func eatanhe(x, es float64) float64 {
	if es > 0 {
		return es * math.Atanh(es*x)
	}
	return -es * math.Atan(es*x)
}
