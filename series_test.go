package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinCosSeries(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{6, 7} {
		c := make([]float64, size)
		for i := range c {
			c[i] = rng.Float64()*2 - 1
		}
		for i := 0; i < 50; i++ {
			x := rng.Float64()*4*math.Pi - 2*math.Pi
			sx, cx := math.Sincos(x)

			var want float64
			for k := 1; k < size; k++ {
				want += c[k] * math.Sin(2*float64(k)*x)
			}
			assert.InDelta(t, want, sinCosSeries(true, sx, cx, c), 1e-13)

			want = 0
			for k := 0; k < size; k++ {
				want += c[k] * math.Cos(float64(2*k+1)*x)
			}
			assert.InDelta(t, want, sinCosSeries(false, sx, cx, c), 1e-13)
		}
	}
}

func TestC1Reversion(t *testing.T) {
	for _, eps := range []float64{1e-4, 1e-3, 0.01} {
		var c1 [nC1 + 1]float64
		var c1p [nC1p + 1]float64
		c1f(eps, &c1)
		c1pf(eps, &c1p)
		for _, sig := range []float64{-2.5, -0.3, 0, 0.7, 1.4, 3} {
			ss, cs := math.Sincos(sig)
			tau := sig + sinCosSeries(true, ss, cs, c1[:])
			st, ct := math.Sincos(tau)
			back := tau + sinCosSeries(true, st, ct, c1p[:])
			assert.InDelta(t, sig, back, 1e-13, "eps %v sig %v", eps, sig)
		}
	}
}

func TestSeriesAtZero(t *testing.T) {
	assert.Equal(t, 0.0, a1m1f(0))
	assert.Equal(t, 0.0, a2m1f(0))
	assert.Equal(t, 0.0, epsOf(0))
	assert.Equal(t, 1.0, WGS84.a3f(0))

	var c1 [nC1 + 1]float64
	c1f(0, &c1)
	assert.Equal(t, [nC1 + 1]float64{}, c1)

	var c3 [nC3]float64
	WGS84.c3f(0, &c3)
	assert.Equal(t, [nC3]float64{}, c3)
}

func TestSeriesLeadingTerms(t *testing.T) {
	const eps = 1e-4
	// A1 = (1 + eps^2/4 + ...) / (1 - eps)
	assert.InDelta(t, (1+eps*eps/4)/(1-eps)-1, a1m1f(eps), 1e-15)
	// A2 = (1 - 3 eps^2/4 - ...) / (1 + eps)
	assert.InDelta(t, (1-3*eps*eps/4)/(1+eps)-1, a2m1f(eps), 1e-15)
	var c1 [nC1 + 1]float64
	c1f(eps, &c1)
	assert.InDelta(t, -eps/2, c1[1], 1e-12)
	var c2 [nC2 + 1]float64
	c2f(eps, &c2)
	assert.InDelta(t, eps/2, c2[1], 1e-12)
	// eps = k2 / (2 (1 + sqrt(1 + k2)) + k2), about k2 / 4
	assert.InDelta(t, 1e-6/4, epsOf(1e-6), 1e-12)
}

func TestSeriesTablesSphere(t *testing.T) {
	// with n = 0 the longitude series depends on eps alone
	g := New(6.4e6, 0)
	assert.Equal(t, WGS84.a3x[nA3x-1], g.a3x[nA3x-1])
	assert.Equal(t, 1.0, g.a3f(0))
	// A3 = 1 - eps/2 - eps^2/4 - ... on a sphere
	assert.InDelta(t, 1-0.05-0.0025, g.a3f(0.1), 1e-3)
}
