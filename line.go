package geodesic

import "math"

// GeodesicLine is a geodesic through a fixed first point with a fixed
// azimuth. The series needed by its capabilities are evaluated once, so
// many positions along one line are cheaper than repeated direct solutions.
//
// A line optionally carries a reference point 3 (see DirectLine,
// InverseLine). It is a value type; WithDistance and WithArc return
// modified copies and the receiver never changes, so a line may be shared
// between goroutines.
type GeodesicLine struct {
	lat1, lon1, azi1 float64
	a, f, b, c2, f1  float64
	salp1, calp1     float64
	dn1              float64
	salp0, calp0     float64
	ssig1, csig1     float64
	somg1, comg1     float64
	stau1, ctau1     float64
	k2               float64

	a1m1, a2m1, a3c, a4 float64
	b11, b21, b31, b41  float64

	c1a  [nC1 + 1]float64
	c1pa [nC1p + 1]float64
	c2a  [nC2 + 1]float64
	c3a  [nC3]float64
	c4a  [nC4]float64

	s13, a13 float64
	caps     Mask
}

func newLine(g *Geodesic, lat1, lon1, azi1, salp1, calp1 float64, caps Mask) GeodesicLine {
	l := GeodesicLine{
		a:    g.a,
		f:    g.f,
		b:    g.b,
		c2:   g.c2,
		f1:   g.f1,
		caps: caps | Latitude | Azimuth | LongUnroll,
		lat1: latFix(lat1),
		lon1: lon1,
		s13:  math.NaN(),
		a13:  math.NaN(),
	}
	if math.IsNaN(salp1) || math.IsNaN(calp1) {
		l.azi1 = angNormalize(azi1)
		l.salp1, l.calp1 = sincosd(angRound(l.azi1))
	} else {
		l.azi1 = azi1
		l.salp1, l.calp1 = salp1, calp1
	}

	sbet1, cbet1 := sincosd(angRound(l.lat1))
	sbet1 *= l.f1
	// Ensure cbet1 = +epsilon at poles
	sbet1, cbet1 = norm(sbet1, cbet1)
	cbet1 = math.Max(tiny, cbet1)
	l.dn1 = math.Sqrt(1 + g.ep2*sq(sbet1))

	// Evaluate alp0 from sin(alp1) * cos(bet1) = sin(alp0),
	l.salp0 = l.salp1 * cbet1 // alp0 in [0, pi/2 - |bet1|]
	// Alt: calp0 = hypot(sbet1, calp1 * cbet1). The following is slightly
	// better (consider the case salp1 = 0).
	l.calp0 = math.Hypot(l.calp1, l.salp1*sbet1)
	// Evaluate sig with tan(bet1) = tan(sig1) * cos(alp1).
	// sig = 0 is nearest northward crossing of equator.
	// With bet1 = 0, alp1 = pi/2, we have sig1 = 0 (equatorial line).
	// With bet1 =  pi/2, alp1 = -pi, sig1 =  pi/2
	// With bet1 = -pi/2, alp1 =  0 , sig1 = -pi/2
	// Evaluate omg1 with tan(omg1) = sin(alp0) * tan(sig1).
	// With alp0 in (0, pi/2], quadrants for sig and omg coincide.
	// No atan2(0,0) ambiguity at poles since cbet1 = +epsilon.
	// With alp0 = 0, omg1 = 0 for alp1 = 0, omg1 = pi for alp1 = pi.
	l.ssig1 = sbet1
	l.somg1 = l.salp0 * sbet1
	if sbet1 != 0 || l.calp1 != 0 {
		l.csig1 = cbet1 * l.calp1
	} else {
		l.csig1 = 1
	}
	l.comg1 = l.csig1
	// sig1 in (-pi, pi]
	l.ssig1, l.csig1 = norm(l.ssig1, l.csig1)
	// somg1, comg1 need no normalization

	l.k2 = sq(l.calp0) * g.ep2
	eps := epsOf(l.k2)

	if l.caps.has(capC1) {
		l.a1m1 = a1m1f(eps)
		c1f(eps, &l.c1a)
		l.b11 = sinCosSeries(true, l.ssig1, l.csig1, l.c1a[:])
		s, c := math.Sincos(l.b11)
		// tau1 = sig1 + B11
		l.stau1 = l.ssig1*c + l.csig1*s
		l.ctau1 = l.csig1*c - l.ssig1*s
		// Not necessary because c1pa reverts c1a
		//    b11 = -sinCosSeries(true, stau1, ctau1, c1pa)
	}
	if l.caps.has(capC1p) {
		c1pf(eps, &l.c1pa)
	}
	if l.caps.has(capC2) {
		l.a2m1 = a2m1f(eps)
		c2f(eps, &l.c2a)
		l.b21 = sinCosSeries(true, l.ssig1, l.csig1, l.c2a[:])
	}
	if l.caps.has(capC3) {
		g.c3f(eps, &l.c3a)
		l.a3c = -l.f * l.salp0 * g.a3f(eps)
		l.b31 = sinCosSeries(true, l.ssig1, l.csig1, l.c3a[:])
	}
	if l.caps.has(capC4) {
		g.c4f(eps, &l.c4a)
		// Multiplier = a^2 * e^2 * cos(alpha0) * sin(alpha0)
		l.a4 = sq(l.a) * l.calp0 * l.salp0 * g.e2
		l.b41 = sinCosSeries(false, l.ssig1, l.csig1, l.c4a[:])
	}
	return l
}

// GenPosition is the general position function. s12a12 is the arc length
// from point 1 in degrees when arcmode is set and the distance in meters
// otherwise. Outputs outside the line's capabilities are NaN; positions by
// distance on a line built without DistanceIn give an all-NaN result.
func (l GeodesicLine) GenPosition(arcmode bool, s12a12 float64, mask Mask) Result {
	r := nanResult()
	mask &= l.caps & outMask
	if !(arcmode || l.caps.has(outMask&DistanceIn)) {
		// Uninitialized or impossible distance calculation requested
		return r
	}

	var sig12, ssig12, csig12, b12, ab1 float64
	if arcmode {
		// Interpret s12a12 as spherical arc length
		sig12 = radians(s12a12)
		ssig12, csig12 = sincosd(s12a12)
	} else {
		// Interpret s12a12 as distance
		tau12 := s12a12 / (l.b * (1 + l.a1m1))
		if math.IsInf(tau12, 0) {
			tau12 = math.NaN()
		}
		s, c := math.Sincos(tau12)
		// tau2 = tau1 + tau12
		b12 = -sinCosSeries(true, l.stau1*c+l.ctau1*s, l.ctau1*c-l.stau1*s, l.c1pa[:])
		sig12 = tau12 - (b12 - l.b11)
		ssig12, csig12 = math.Sincos(sig12)
		if math.Abs(l.f) > 0.01 {
			// Reverted distance series is inaccurate for |f| > 1/100, so
			// correct sig12 with 1 Newton iteration. The following table
			// shows the approximate maximum error for a = WGS_a() and
			// various f relative to GeodesicExact.
			//     erri = the error in the inverse solution (nm)
			//     errd = the error in the direct solution (series only) (nm)
			//     errda = the error in the direct solution
			//             (series + 1 Newton) (nm)
			//
			//       f     erri  errd errda
			//     -1/5    12e6 1.2e9  69e6
			//     -1/10  123e3  12e6 765e3
			//     -1/20   1110 108e3  7155
			//     -1/50  18.63 200.9 27.12
			//     -1/100 18.63 23.78 23.37
			//     -1/150 18.63 21.05 20.26
			//      1/150 22.35 24.73 25.83
			//      1/100 22.35 25.03 25.31
			//      1/50  29.80 231.9 30.44
			//      1/20   5376 146e3  10e3
			//      1/10  829e3  22e6 1.5e6
			//      1/5   157e6 3.8e9 280e6
			ssig2 := l.ssig1*csig12 + l.csig1*ssig12
			csig2 := l.csig1*csig12 - l.ssig1*ssig12
			b12 = sinCosSeries(true, ssig2, csig2, l.c1a[:])
			serr := (1+l.a1m1)*(sig12+(b12-l.b11)) - s12a12/l.b
			sig12 -= serr / math.Sqrt(1+l.k2*sq(ssig2))
			ssig12, csig12 = math.Sincos(sig12)
			// Update b12 below
		}
	}

	// sig2 = sig1 + sig12
	ssig2 := l.ssig1*csig12 + l.csig1*ssig12
	csig2 := l.csig1*csig12 - l.ssig1*ssig12
	dn2 := math.Sqrt(1 + l.k2*sq(ssig2))
	if mask.has(Distance | ReducedLength | GeodesicScale) {
		if arcmode || math.Abs(l.f) > 0.01 {
			b12 = sinCosSeries(true, ssig2, csig2, l.c1a[:])
		}
		ab1 = (1 + l.a1m1) * (b12 - l.b11)
	}
	// sin(bet2) = cos(alp0) * sin(sig2)
	sbet2 := l.calp0 * ssig2
	// Alt: cbet2 = hypot(csig2, salp0 * ssig2)
	cbet2 := math.Hypot(l.salp0, l.calp0*csig2)
	if cbet2 == 0 {
		// I.e., salp0 = 0, csig2 = 0. Break the degeneracy in this case
		cbet2 = tiny
		csig2 = tiny
	}
	// tan(alp0) = cos(sig2)*tan(alp2)
	salp2 := l.salp0
	calp2 := l.calp0 * csig2 // No need to normalize

	if mask.has(Distance) {
		if arcmode {
			r.S12 = l.b * ((1+l.a1m1)*sig12 + ab1)
		} else {
			r.S12 = s12a12
		}
	}

	if mask.has(Longitude) {
		// tan(omg2) = sin(alp0) * tan(sig2)
		somg2 := l.salp0 * ssig2
		comg2 := csig2 // No need to normalize
		var omg12 float64
		if mask.has(LongUnroll) {
			e := math.Copysign(1, l.salp0) // east-going?
			omg12 = e * (sig12 -
				(math.Atan2(ssig2, csig2) - math.Atan2(l.ssig1, l.csig1)) +
				(math.Atan2(e*somg2, comg2) - math.Atan2(e*l.somg1, l.comg1)))
		} else {
			omg12 = math.Atan2(somg2*l.comg1-comg2*l.somg1, comg2*l.comg1+somg2*l.somg1)
		}
		lam12 := omg12 + l.a3c*(sig12+(sinCosSeries(true, ssig2, csig2, l.c3a[:])-l.b31))
		lon12 := degrees(lam12)
		if mask.has(LongUnroll) {
			r.Lon2 = l.lon1 + lon12
		} else {
			r.Lon2 = angNormalize(angNormalize(l.lon1) + angNormalize(lon12))
		}
	}

	if mask.has(Latitude) {
		r.Lat2 = atan2d(sbet2, l.f1*cbet2)
	}
	if mask.has(Azimuth) {
		r.Azi2 = atan2d(salp2, calp2)
	}

	if mask.has(ReducedLength | GeodesicScale) {
		b22 := sinCosSeries(true, ssig2, csig2, l.c2a[:])
		ab2 := (1 + l.a2m1) * (b22 - l.b21)
		j12 := (l.a1m1-l.a2m1)*sig12 + (ab1 - ab2)
		if mask.has(ReducedLength) {
			// Add parens around (csig1 * ssig2) and (ssig1 * csig2) to
			// ensure accurate cancellation in the case of coincident points.
			r.ReducedLength = l.b * ((dn2*(l.csig1*ssig2) - l.dn1*(l.ssig1*csig2)) -
				l.csig1*csig2*j12)
		}
		if mask.has(GeodesicScale) {
			t := l.k2 * (ssig2 - l.ssig1) * (ssig2 + l.ssig1) / (l.dn1 + dn2)
			r.GeodesicScale12 = csig12 + (t*ssig2-csig2*j12)*l.ssig1/l.dn1
			r.GeodesicScale21 = csig12 - (t*l.ssig1-l.csig1*j12)*ssig2/dn2
		}
	}

	if mask.has(Area) {
		b42 := sinCosSeries(false, ssig2, csig2, l.c4a[:])
		var salp12, calp12 float64
		if l.calp0 == 0 || l.salp0 == 0 {
			// alp12 = alp2 - alp1, used in atan2 so no need to normalize
			salp12 = salp2*l.calp1 - calp2*l.salp1
			calp12 = calp2*l.calp1 + salp2*l.salp1
		} else {
			// tan(alp) = tan(alp0) * sec(sig)
			// tan(alp2-alp1) = (tan(alp2) -tan(alp1)) / (tan(alp2)*tan(alp1)+1)
			// = calp0 * salp0 * (csig1-csig2) / (salp0^2 + calp0^2 * csig1*csig2)
			// If csig12 > 0, write
			//   csig1 - csig2 = ssig12 * (csig1 * ssig12 / (1 + csig12) + ssig1)
			// else
			//   csig1 - csig2 = csig1 * (1 - csig12) + ssig12 * ssig1
			// No need to normalize
			if csig12 <= 0 {
				salp12 = l.csig1*(1-csig12) + ssig12*l.ssig1
			} else {
				salp12 = ssig12 * (l.csig1*ssig12/(1+csig12) + l.ssig1)
			}
			salp12 *= l.calp0 * l.salp0
			calp12 = sq(l.salp0) + sq(l.calp0)*l.csig1*csig2
		}
		r.Area = l.c2*math.Atan2(salp12, calp12) + l.a4*(b42-l.b41)
	}

	if arcmode {
		r.A12 = s12a12
	} else {
		r.A12 = degrees(sig12)
	}
	r.Lat1 = l.lat1
	if mask.has(LongUnroll) {
		r.Lon1 = l.lon1
	} else {
		r.Lon1 = angNormalize(l.lon1)
	}
	r.Azi1 = l.azi1
	return r
}

// Position returns the point at distance s12 (meters) from point 1. The
// line must have been built with DistanceIn.
func (l GeodesicLine) Position(s12 float64, mask Mask) Result {
	return l.GenPosition(false, s12, mask)
}

// ArcPosition returns the point at arc length a12 (degrees) from point 1.
func (l GeodesicLine) ArcPosition(a12 float64, mask Mask) Result {
	return l.GenPosition(true, a12, mask)
}

// Lat1 returns the latitude of point 1 in degrees.
func (l GeodesicLine) Lat1() float64 { return l.lat1 }

// Lon1 returns the longitude of point 1 in degrees, as given.
func (l GeodesicLine) Lon1() float64 { return l.lon1 }

// Azi1 returns the azimuth at point 1 in degrees.
func (l GeodesicLine) Azi1() float64 { return l.azi1 }

// Capabilities returns the mask the line was built with, including the
// bits that are always added.
func (l GeodesicLine) Capabilities() Mask { return l.caps }

// Distance returns the distance to reference point 3, NaN if it is not set
// or the line cannot compute distances.
func (l GeodesicLine) Distance() float64 { return l.s13 }

// Arc returns the arc length to reference point 3 in degrees.
func (l GeodesicLine) Arc() float64 { return l.a13 }

// WithDistance returns a copy of l whose reference point 3 is at distance
// s13 from point 1.
func (l GeodesicLine) WithDistance(s13 float64) GeodesicLine {
	l.s13 = s13
	l.a13 = l.GenPosition(false, s13, None).A12
	return l
}

// WithArc returns a copy of l whose reference point 3 is at arc length a13
// from point 1.
func (l GeodesicLine) WithArc(a13 float64) GeodesicLine {
	l.a13 = a13
	l.s13 = math.NaN()
	if l.caps.has(outMask & Distance) {
		l.s13 = l.GenPosition(true, a13, Distance).S12
	}
	return l
}
