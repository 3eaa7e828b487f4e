package geodesic

import "math"

// Order of the series expansions in the third flattening n. The array sizes
// below and the coefficient banks are tied to this value.
const order = 6

const (
	nA1  = order
	nC1  = order
	nC1p = order
	nA2  = order
	nC2  = order
	nA3  = order
	nA3x = nA3
	nC3  = order
	nC3x = (nC3 * (nC3 - 1)) / 2
	nC4  = order
	nC4x = (nC4 * (nC4 + 1)) / 2
)

var (
	a1m1Coeff = [...]float64{
		// (1-eps)*A1-1, polynomial in eps2 of order 3
		1, 4, 64, 0, 256,
	}
	c1Coeff = [...]float64{
		-1, 6, -16, 32, // C1[1]/eps^1, polynomial in eps2 of order 2
		-9, 64, -128, 2048, // C1[2]/eps^2
		9, -16, 768, // C1[3]/eps^3
		3, -5, 512, // C1[4]/eps^4
		-7, 1280, // C1[5]/eps^5
		-7, 2048, // C1[6]/eps^6
	}
	c1pCoeff = [...]float64{
		205, -432, 768, 1536,
		4005, -4736, 3840, 12288,
		-225, 116, 384,
		-7173, 2695, 7680,
		3467, 7680,
		38081, 61440,
	}
	a2m1Coeff = [...]float64{
		// (eps+1)*A2-1, polynomial in eps2 of order 3
		-11, -28, -192, 0, 256,
	}
	c2Coeff = [...]float64{
		1, 2, 16, 32,
		35, 64, 384, 2048,
		15, 80, 768,
		7, 35, 512,
		63, 1280,
		77, 2048,
	}
	a3Coeff = [...]float64{
		-3, 128,
		-2, -3, 64,
		-1, -3, -1, 16,
		3, -1, -2, 8,
		1, -1, 2,
		1, 1,
	}
	c3Coeff = [...]float64{
		3, 128,
		2, 5, 128,
		-1, 3, 3, 64,
		-1, 0, 1, 8,
		-1, 1, 4,
		5, 256,
		1, 3, 128,
		-3, -2, 3, 64,
		1, -3, 2, 32,
		7, 512,
		-10, 9, 384,
		5, -9, 5, 192,
		7, 512,
		-14, 7, 512,
		21, 2560,
	}
	c4Coeff = [...]float64{
		97, 15015,
		1088, 156, 45045,
		-224, -4784, 1573, 45045,
		-10656, 14144, -4576, -858, 45045,
		64, 624, -4576, 6864, -3003, 15015,
		100, 208, 572, 3432, -12012, 30030, 45045,
		1, 9009,
		-2944, 468, 135135,
		5792, 1040, -1287, 135135,
		5952, -11648, 9152, -2574, 135135,
		-64, -624, 4576, -6864, 3003, 135135,
		8, 10725,
		1856, -936, 225225,
		-8448, 4992, -1144, 225225,
		-1440, 4160, -4576, 1716, 225225,
		-136, 63063,
		1024, -208, 105105,
		3584, -3328, 1144, 315315,
		-128, 135135,
		-2560, 832, 405405,
		128, 99099,
	}
)

// a1m1f returns A1 - 1.
func a1m1f(eps float64) float64 {
	m := nA1 / 2
	t := polyval(m, a1m1Coeff[:], 0, sq(eps)) / a1m1Coeff[m+1]
	return (t + eps) / (1 - eps)
}

// c1f sets c[1] thru c[nC1].
func c1f(eps float64, c *[nC1 + 1]float64) {
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1; l++ {
		m := (nC1 - l) / 2 // order of polynomial in eps^2
		c[l] = d * polyval(m, c1Coeff[:], o, eps2) / c1Coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// c1pf sets the coefficients of the reverted series, c[1] thru c[nC1p].
func c1pf(eps float64, c *[nC1p + 1]float64) {
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1p; l++ {
		m := (nC1p - l) / 2
		c[l] = d * polyval(m, c1pCoeff[:], o, eps2) / c1pCoeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// a2m1f returns A2 - 1.
func a2m1f(eps float64) float64 {
	m := nA2 / 2
	t := polyval(m, a2m1Coeff[:], 0, sq(eps)) / a2m1Coeff[m+1]
	return (t - eps) / (1 + eps)
}

// c2f sets c[1] thru c[nC2].
func c2f(eps float64, c *[nC2 + 1]float64) {
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC2; l++ {
		m := (nC2 - l) / 2
		c[l] = d * polyval(m, c2Coeff[:], o, eps2) / c2Coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// a3Table returns the coefficients of A3 as polynomials in eps for third
// flattening n.
func a3Table(n float64) (a3x [nA3x]float64) {
	o, k := 0, 0
	for j := nA3 - 1; j >= 0; j-- { // coeff of eps^j
		m := min(nA3-j-1, j) // order of polynomial in n
		a3x[k] = polyval(m, a3Coeff[:], o, n) / a3Coeff[o+m+1]
		k++
		o += m + 2
	}
	return a3x
}

// c3Table returns the coefficients of C3[l], l = 1..5, as polynomials in eps.
func c3Table(n float64) (c3x [nC3x]float64) {
	o, k := 0, 0
	for l := 1; l < nC3; l++ {
		for j := nC3 - 1; j >= l; j-- {
			m := min(nC3-j-1, j)
			c3x[k] = polyval(m, c3Coeff[:], o, n) / c3Coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c3x
}

// c4Table returns the coefficients of C4[l], l = 0..5, as polynomials in eps.
func c4Table(n float64) (c4x [nC4x]float64) {
	o, k := 0, 0
	for l := 0; l < nC4; l++ {
		for j := nC4 - 1; j >= l; j-- {
			m := nC4 - j - 1
			c4x[k] = polyval(m, c4Coeff[:], o, n) / c4Coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c4x
}

func (g *Geodesic) a3f(eps float64) float64 {
	return polyval(nA3-1, g.a3x[:], 0, eps)
}

// c3f sets c[1] thru c[nC3-1].
func (g *Geodesic) c3f(eps float64, c *[nC3]float64) {
	mult := 1.0
	o := 0
	for l := 1; l < nC3; l++ {
		m := nC3 - l - 1 // order of polynomial in eps
		mult *= eps
		c[l] = mult * polyval(m, g.c3x[:], o, eps)
		o += m + 1
	}
}

// c4f sets c[0] thru c[nC4-1].
func (g *Geodesic) c4f(eps float64, c *[nC4]float64) {
	mult := 1.0
	o := 0
	for l := 0; l < nC4; l++ {
		m := nC4 - l - 1
		c[l] = mult * polyval(m, g.c4x[:], o, eps)
		o += m + 1
		mult *= eps
	}
}

// sinCosSeries evaluates, with Clenshaw summation,
//
//	sinp:  sum(c[i] * sin(2*i*x), i, 1, n)      with n = len(c) - 1
//	!sinp: sum(c[i] * cos((2*i+1)*x), i, 0, n-1) with n = len(c)
//
// c[0] is unused by the sine series.
func sinCosSeries(sinp bool, sinx, cosx float64, c []float64) float64 {
	k := len(c)
	n := k
	if sinp {
		n--
	}
	ar := 2 * (cosx - sinx) * (cosx + sinx) // 2 * cos(2 * x)
	var y0, y1 float64
	if n&1 != 0 {
		k--
		y0 = c[k]
	}
	// n is now even
	for n /= 2; n > 0; n-- {
		// unrolled so the accumulators return to their original roles
		k--
		y1 = ar*y0 - y1 + c[k]
		k--
		y0 = ar*y1 - y0 + c[k]
	}
	if sinp {
		return 2 * sinx * cosx * y0
	}
	return cosx * (y0 - y1)
}

// epsOf returns the expansion parameter for k2 = ep2 * cos(alp0)^2.
func epsOf(k2 float64) float64 {
	return k2 / (2*(1+math.Sqrt(1+k2)) + k2)
}
