package geodesic

import (
	"fmt"
	"math"
)

// WGS84Ellipsoid is the World Geodetic System 1984 ellipsoid.
// https://en.wikipedia.org/wiki/World_Geodetic_System
var WGS84Ellipsoid = mustLookupEllipsoid("WGS84")

// GRS80Ellipsoid is the Geodetic Reference System 1980 ellipsoid.
var GRS80Ellipsoid = mustLookupEllipsoid("GRS80")

// Ellipsoid describes the shape of an ellipsoid of revolution. It is a plain
// value and never changes once built.
type Ellipsoid struct {
	a, f, b float64
	// second and third flattening
	m, n float64
	// quarter meridian
	q float64
	// first, second and third eccentricity squared
	e1sq, e2sq, e3sq float64
	// meridian arc series in n
	e0, e1, e2, e3, e4 float64
}

// NewEllipsoid returns the ellipsoid with equatorial radius a (meters) and
// inverse flattening invF. An infinite invF gives a sphere and a negative
// one a prolate spheroid. Nothing is validated: a non-positive radius or a
// flattening of 1 yields NaN or Inf in the derived values.
func NewEllipsoid(a, invF float64) Ellipsoid {
	return newEllipsoid(a, 1/invF)
}

func newEllipsoid(a, f float64) Ellipsoid {
	b := a * (1 - f)
	n := f / (2 - f)
	e := Ellipsoid{
		a:    a,
		f:    f,
		b:    b,
		m:    f / (1 - f),
		n:    n,
		e1sq: f * (2 - f),
		e3sq: (a - b) * (a + b) / (sq(a) + sq(b)),
	}
	e.e2sq = e.e1sq / sq(1-f)

	n2 := sq(n)
	e.e0 = 1 + n2/4 + sq(n2)/64
	e.e1 = -3*n/2 + 3*n*n2/16
	e.e2 = 15*n2/16 - 15*sq(n2)/64
	e.e3 = -35 * n * n2 / 48
	e.e4 = 315 * sq(n2) / 512
	e.q = a / (1 + n) * e.e0 * math.Pi / 2
	return e
}

// A returns the equatorial radius in meters.
func (e Ellipsoid) A() float64 { return e.a }

// B returns the polar semi-axis in meters.
func (e Ellipsoid) B() float64 { return e.b }

// F returns the flattening.
func (e Ellipsoid) F() float64 { return e.f }

// InvF returns the inverse flattening, +Inf for a sphere.
func (e Ellipsoid) InvF() float64 { return 1 / e.f }

// Flattening returns the first (i = 1), second (i = 2) or third (i = 3)
// flattening. Any other index panics.
func (e Ellipsoid) Flattening(i int) float64 {
	switch i {
	case 1:
		return e.f
	case 2:
		return e.m
	case 3:
		return e.n
	}
	panic(fmt.Sprintf("geodesic: invalid index %d for flattening", i))
}

// EccentricitySq returns the square of the first, second or third
// eccentricity. It is negative for a prolate spheroid. Any index other than
// 1, 2 or 3 panics.
func (e Ellipsoid) EccentricitySq(i int) float64 {
	switch i {
	case 1:
		return e.e1sq
	case 2:
		return e.e2sq
	case 3:
		return e.e3sq
	}
	panic(fmt.Sprintf("geodesic: invalid index %d for eccentricity", i))
}

// Eccentricity returns the square root of EccentricitySq(i), NaN when the
// spheroid is prolate.
func (e Ellipsoid) Eccentricity(i int) float64 {
	return math.Sqrt(e.EccentricitySq(i))
}

// QuarterMeridian returns the distance from the equator to a pole along a
// meridian, in meters.
func (e Ellipsoid) QuarterMeridian() float64 { return e.q }

// MeridianDistance returns the distance along a meridian from the equator to
// latitude lat (degrees). The series is truncated at n^4, which is well
// below a millimeter for terrestrial ellipsoids.
func (e Ellipsoid) MeridianDistance(lat float64) float64 {
	phi := radians(lat)
	s2, c2 := math.Sincos(2 * phi)
	// sin(2k phi) by the Chebyshev recurrence on 2 cos(2 phi)
	ar := 2 * c2
	s4 := ar * s2
	s6 := ar*s4 - s2
	s8 := ar*s6 - s4
	return e.a / (1 + e.n) * (e.e0*phi + e.e1*s2 + e.e2*s4 + e.e3*s6 + e.e4*s8)
}

func (e Ellipsoid) String() string {
	return fmt.Sprintf("Ellipsoid{a: %g, 1/f: %g}", e.a, e.InvF())
}
