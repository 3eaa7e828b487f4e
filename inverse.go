package geodesic

import "math"

// inverseResult is the raw output of genInverse: azimuths are still sine and
// cosine pairs.
type inverseResult struct {
	a12, s12                   float64
	salp1, calp1, salp2, calp2 float64
	m12, M12, M21, S12         float64
}

// bracket keeps the interval (alp1a, alp1b) that is known to contain the
// root of lambda12(alp1) - lam12 while Newton's method runs.
type bracket struct {
	salp1a, calp1a float64
	salp1b, calp1b float64
	// tripn is set once Newton has converged to sqrt(epsilon); tripb once
	// bisection has collapsed the bracket.
	tripn, tripb bool
}

func newBracket() bracket {
	return bracket{salp1a: tiny, calp1a: 1, salp1b: tiny, calp1b: -1}
}

// converged reports whether the residual v is small enough to stop.
// The test is reversed so that a NaN residual also stops the loop.
func (br *bracket) converged(v float64) bool {
	mult := 1.0
	if br.tripn {
		mult = 8
	}
	return br.tripb || !(math.Abs(v) >= mult*tol0)
}

// shrink narrows the bracket using the sign of the residual at alp1.
func (br *bracket) shrink(v, salp1, calp1 float64, numit int) {
	if v > 0 && (numit > maxit1 || calp1/salp1 > br.calp1b/br.salp1b) {
		br.salp1b, br.calp1b = salp1, calp1
	} else if v < 0 && (numit > maxit1 || calp1/salp1 < br.calp1a/br.salp1a) {
		br.salp1a, br.calp1a = salp1, calp1
	}
}

// bisect returns the midpoint of the bracket.
func (br *bracket) bisect() (salp1, calp1 float64) {
	salp1, calp1 = norm((br.salp1a+br.salp1b)/2, (br.calp1a+br.calp1b)/2)
	br.tripn = false
	br.tripb = math.Abs(br.salp1a-salp1)+(br.calp1a-calp1) < tolb ||
		math.Abs(salp1-br.salp1b)+(calp1-br.calp1b) < tolb
	return salp1, calp1
}

// lengths returns s12b = distance/b, m12b = reduced length/b, m0 the
// coefficient of the secular term of the reduced length, and the geodesic
// scales. Only the quantities selected by mask are computed; the rest are
// NaN.
func (g *Geodesic) lengths(eps, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2, cbet1, cbet2 float64,
	mask Mask, c1a *[nC1 + 1]float64, c2a *[nC2 + 1]float64,
) (s12b, m12b, m0, M12, M21 float64) {
	mask &= outMask
	s12b, m12b, m0, M12, M21 = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
	var a1, a2, m0x, j12 float64
	if mask.has(Distance | ReducedLength | GeodesicScale) {
		a1 = a1m1f(eps)
		c1f(eps, c1a)
		if mask.has(ReducedLength | GeodesicScale) {
			a2 = a2m1f(eps)
			c2f(eps, c2a)
			m0x = a1 - a2
			a2 = 1 + a2
		}
		a1 = 1 + a1
	}
	if mask.has(Distance) {
		b1 := sinCosSeries(true, ssig2, csig2, c1a[:]) -
			sinCosSeries(true, ssig1, csig1, c1a[:])
		s12b = a1 * (sig12 + b1)
		if mask.has(ReducedLength | GeodesicScale) {
			b2 := sinCosSeries(true, ssig2, csig2, c2a[:]) -
				sinCosSeries(true, ssig1, csig1, c2a[:])
			j12 = m0x*sig12 + (a1*b1 - a2*b2)
		}
	} else if mask.has(ReducedLength | GeodesicScale) {
		// Assume here that nC1 >= nC2
		for l := 1; l <= nC2; l++ {
			c2a[l] = a1*c1a[l] - a2*c2a[l]
		}
		j12 = m0x*sig12 + (sinCosSeries(true, ssig2, csig2, c2a[:]) -
			sinCosSeries(true, ssig1, csig1, c2a[:]))
	}
	if mask.has(ReducedLength) {
		m0 = m0x
		// Missing a factor of b. The parens around (csig1 * ssig2) and
		// (ssig1 * csig2) ensure accurate cancellation for coincident
		// points.
		m12b = dn2*(csig1*ssig2) - dn1*(ssig1*csig2) - csig1*csig2*j12
	}
	if mask.has(GeodesicScale) {
		csig12 := csig1*csig2 + ssig1*ssig2
		t := g.ep2 * (cbet1 - cbet2) * (cbet1 + cbet2) / (dn1 + dn2)
		M12 = csig12 + (t*ssig2-csig2*j12)*ssig1/dn1
		M21 = csig12 - (t*ssig1-csig1*j12)*ssig2/dn2
	}
	return s12b, m12b, m0, M12, M21
}

// inverseStart returns a starting point (salp1, calp1) for Newton's method.
// For really short lines the spherical solution is good enough; then sig12
// is non-negative and salp2, calp2 and dnm are also set. Otherwise sig12 is
// -1.
func (g *Geodesic) inverseStart(sbet1, cbet1, dn1, sbet2, cbet2, dn2, lam12, slam12, clam12 float64,
	c1a *[nC1 + 1]float64, c2a *[nC2 + 1]float64,
) (sig12, salp1, calp1, salp2, calp2, dnm float64) {
	sig12 = -1
	salp2, calp2, dnm = math.NaN(), math.NaN(), math.NaN()
	// bet12 = bet2 - bet1 in [0, pi); bet12a = bet2 + bet1 in (-pi, 0]
	sbet12 := sbet2*cbet1 - cbet2*sbet1
	cbet12 := cbet2*cbet1 + sbet2*sbet1
	sbet12a := sbet2 * cbet1
	sbet12a += cbet2 * sbet1

	shortline := cbet12 >= 0 && sbet12 < 0.5 && cbet2*lam12 < 0.5
	var somg12, comg12 float64
	if shortline {
		// sin((bet1+bet2)/2)^2
		//   = (sbet1 + sbet2)^2 / ((sbet1 + sbet2)^2 + (cbet1 + cbet2)^2)
		sbetm2 := sq(sbet1 + sbet2)
		sbetm2 /= sbetm2 + sq(cbet1+cbet2)
		dnm = math.Sqrt(1 + g.ep2*sbetm2)
		omg12 := lam12 / (g.f1 * dnm)
		somg12, comg12 = math.Sincos(omg12)
	} else {
		somg12, comg12 = slam12, clam12
	}

	salp1 = cbet2 * somg12
	if comg12 >= 0 {
		calp1 = sbet12 + cbet2*sbet1*sq(somg12)/(1+comg12)
	} else {
		calp1 = sbet12a - cbet2*sbet1*sq(somg12)/(1-comg12)
	}
	ssig12 := math.Hypot(salp1, calp1)
	csig12 := sbet1*sbet2 + cbet1*cbet2*comg12

	switch {
	case shortline && ssig12 < g.etol2:
		// really short lines
		salp2 = cbet1 * somg12
		var mult float64
		if comg12 >= 0 {
			mult = sq(somg12) / (1 + comg12)
		} else {
			mult = 1 - comg12
		}
		calp2 = sbet12 - cbet1*sbet2*mult
		salp2, calp2 = norm(salp2, calp2)
		sig12 = math.Atan2(ssig12, csig12)
	case math.Abs(g.n) > 0.1 || // too eccentric for the astroid estimate
		csig12 >= 0 ||
		ssig12 >= 6*math.Abs(g.n)*math.Pi*sq(cbet1):
		// zeroth order spherical approximation is OK
	default:
		// Scale lam12 and bet2 to an x, y coordinate system where the
		// antipodal point is at the origin and the singular point is at
		// y = 0, x = -1.
		var x, y, lamscale float64
		lam12x := math.Atan2(-slam12, -clam12) // lam12 - pi
		if g.f >= 0 {
			// x = dlong, y = dlat
			k2 := sq(sbet1) * g.ep2
			eps := epsOf(k2)
			lamscale = g.f * cbet1 * g.a3f(eps) * math.Pi
			betscale := lamscale * cbet1
			x = lam12x / lamscale
			y = sbet12a / betscale
		} else {
			// x = dlat, y = dlong
			cbet12a := cbet2*cbet1 - sbet2*sbet1
			bet12a := math.Atan2(sbet12a, cbet12a)
			// In the case of lon12 = 180, this repeats a calculation made
			// in genInverse.
			_, m12b, m0, _, _ := g.lengths(g.n, math.Pi+bet12a,
				sbet1, -cbet1, dn1, sbet2, cbet2, dn2, cbet1, cbet2,
				ReducedLength, c1a, c2a)
			x = -1 + m12b/(cbet1*cbet2*m0*math.Pi)
			var betscale float64
			if x < -0.01 {
				betscale = sbet12a / x
			} else {
				betscale = -g.f * sq(cbet1) * math.Pi
			}
			lamscale = betscale / cbet1
			y = lam12x / lamscale
		}

		if y > -tol1 && x > -1-xthresh {
			// strip near cut
			if g.f >= 0 {
				salp1 = math.Min(1, -x)
				calp1 = -math.Sqrt(1 - sq(salp1))
			} else {
				if x > -tol1 {
					calp1 = math.Max(0, x)
				} else {
					calp1 = math.Max(-1, x)
				}
				salp1 = math.Sqrt(1 - sq(calp1))
			}
		} else {
			// Estimate omg12 by solving the astroid problem and then use
			// the spherical formula to get alp1; this converges faster than
			// estimating alp1 directly. omg12 is near pi, so work with
			// omg12a = pi - omg12.
			k := astroid(x, y)
			var omg12a float64
			if g.f >= 0 {
				omg12a = lamscale * (-x * k / (1 + k))
			} else {
				omg12a = lamscale * (-y * (1 + k) / k)
			}
			somg12, comg12 = math.Sincos(omg12a)
			comg12 = -comg12
			// Update spherical estimate of alp1 using omg12 instead of lam12
			salp1 = cbet2 * somg12
			calp1 = sbet12a - cbet2*sbet1*sq(somg12)/(1-comg12)
		}
	}
	// Sanity check on starting guess. Backwards check allows NaN through.
	if !(salp1 <= 0) {
		salp1, calp1 = norm(salp1, calp1)
	} else {
		salp1, calp1 = 1, 0
	}
	return sig12, salp1, calp1, salp2, calp2, dnm
}

// lambda12 solves the hybrid problem: given alp1, find the longitude
// difference lam12 reached at latitude bet2, and (when diffp is set) its
// derivative with respect to alp1.
func (g *Geodesic) lambda12(sbet1, cbet1, dn1, sbet2, cbet2, dn2, salp1, calp1, slam120, clam120 float64,
	diffp bool, c1a *[nC1 + 1]float64, c2a *[nC2 + 1]float64, c3a *[nC3]float64,
) (lam12, salp2, calp2, sig12, ssig1, csig1, ssig2, csig2, eps, domg12, dlam12 float64) {
	if sbet1 == 0 && calp1 == 0 {
		// Break degeneracy of equatorial line. This case has already been
		// handled.
		calp1 = -tiny
	}
	// sin(alp1) * cos(bet1) = sin(alp0)
	salp0 := salp1 * cbet1
	calp0 := math.Hypot(calp1, salp1*sbet1) // calp0 > 0

	// tan(bet1) = tan(sig1) * cos(alp1)
	// tan(omg1) = sin(alp0) * tan(sig1) = tan(omg1)=tan(alp1)*sin(bet1)
	ssig1 = sbet1
	somg1 := salp0 * sbet1
	csig1 = calp1 * cbet1
	comg1 := csig1
	ssig1, csig1 = norm(ssig1, csig1)
	// somg1, comg1 need no normalization

	// Enforce symmetries in the case abs(bet2) = -bet1. Need to be careful
	// about this case, since this can yield singularities in the Newton
	// iteration.
	// sin(alp2) * cos(bet2) = sin(alp0)
	salp2 = salp1
	if cbet2 != cbet1 {
		salp2 = salp0 / cbet2
	}
	// calp2 = sqrt(1 - sq(salp2))
	//       = sqrt(sq(calp0) - sq(sbet2)) / cbet2
	// and subst for calp0 and rearrange to give (choose positive sqrt
	// to give alp2 in [0, pi/2]).
	if cbet2 != cbet1 || math.Abs(sbet2) != -sbet1 {
		if cbet1 < -sbet1 {
			calp2 = math.Sqrt(sq(calp1*cbet1)+(cbet2-cbet1)*(cbet1+cbet2)) / cbet2
		} else {
			calp2 = math.Sqrt(sq(calp1*cbet1)+(sbet1-sbet2)*(sbet1+sbet2)) / cbet2
		}
	} else {
		calp2 = math.Abs(calp1)
	}
	// tan(bet2) = tan(sig2) * cos(alp2)
	// tan(omg2) = sin(alp0) * tan(sig2).
	ssig2 = sbet2
	somg2 := salp0 * sbet2
	csig2 = calp2 * cbet2
	comg2 := csig2
	ssig2, csig2 = norm(ssig2, csig2)

	// sig12 = sig2 - sig1, limit to [0, pi]
	sig12 = math.Atan2(math.Max(0, csig1*ssig2-ssig1*csig2), csig1*csig2+ssig1*ssig2)
	// omg12 = omg2 - omg1, limit to [0, pi]
	somg12 := math.Max(0, comg1*somg2-somg1*comg2)
	comg12 := comg1*comg2 + somg1*somg2
	// eta = omg12 - lam120
	eta := math.Atan2(somg12*clam120-comg12*slam120, comg12*clam120+somg12*slam120)

	k2 := sq(calp0) * g.ep2
	eps = epsOf(k2)
	g.c3f(eps, c3a)
	b312 := sinCosSeries(true, ssig2, csig2, c3a[:]) -
		sinCosSeries(true, ssig1, csig1, c3a[:])
	domg12 = -g.f * g.a3f(eps) * salp0 * (sig12 + b312)
	lam12 = eta + domg12

	dlam12 = math.NaN()
	if diffp {
		if calp2 == 0 {
			dlam12 = -2 * g.f1 * dn1 / sbet1
		} else {
			_, dlam12, _, _, _ = g.lengths(eps, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2,
				cbet1, cbet2, ReducedLength, c1a, c2a)
			dlam12 *= g.f1 / (calp2 * cbet2)
		}
	}
	return lam12, salp2, calp2, sig12, ssig1, csig1, ssig2, csig2, eps, domg12, dlam12
}

// genInverse is the general inverse problem. Azimuths come back as sine
// and cosine pairs in the caller's frame.
func (g *Geodesic) genInverse(lat1, lon1, lat2, lon2 float64, mask Mask) inverseResult {
	r := inverseResult{
		a12: math.NaN(), s12: math.NaN(),
		m12: math.NaN(), M12: math.NaN(), M21: math.NaN(), S12: math.NaN(),
	}
	mask &= outMask

	// Compute longitude difference (angDiff does this carefully). Result is
	// in [-180, 180] but -180 is only for west-going geodesics. 180 is for
	// east-going and meridional geodesics.
	lon12, lon12s := angDiff(lon1, lon2)
	// Make longitude difference positive.
	lonsign := 1.0
	if !(lon12 >= 0) {
		lonsign = -1
	}
	// If very close to being on the same half-meridian, then make it so.
	lon12 = lonsign * angRound(lon12)
	lon12s = angRound((180 - lon12) - lonsign*lon12s)
	lam12 := radians(lon12)
	var slam12, clam12 float64
	if lon12 > 90 {
		slam12, clam12 = sincosd(lon12s)
		clam12 = -clam12
	} else {
		slam12, clam12 = sincosd(lon12)
	}

	// If really close to the equator, treat as on equator.
	lat1 = angRound(latFix(lat1))
	lat2 = angRound(latFix(lat2))
	// Swap points so that point with higher (abs) latitude is point 1.
	// If one latitude is a NaN, then it becomes lat1.
	swapp := 1.0
	if math.Abs(lat1) < math.Abs(lat2) || math.IsNaN(lat2) {
		swapp = -1
	}
	if swapp < 0 {
		lonsign *= -1
		lat1, lat2 = lat2, lat1
	}
	// Make lat1 <= 0
	latsign := 1.0
	if !(lat1 < 0) {
		latsign = -1
	}
	lat1 *= latsign
	lat2 *= latsign
	// Now we have
	//
	//     0 <= lon12 <= 180
	//     -90 <= lat1 <= 0
	//     lat1 <= lat2 <= -lat1
	//
	// lonsign, swapp, latsign register the transformation to bring the
	// coordinates to this canonical form. In all cases, 1 means no change
	// was made.

	sbet1, cbet1 := sincosd(lat1)
	sbet1 *= g.f1
	// Ensure cbet1 = +epsilon at poles
	sbet1, cbet1 = norm(sbet1, cbet1)
	cbet1 = math.Max(tiny, cbet1)

	sbet2, cbet2 := sincosd(lat2)
	sbet2 *= g.f1
	sbet2, cbet2 = norm(sbet2, cbet2)
	cbet2 = math.Max(tiny, cbet2)

	// If cbet1 < -sbet1, then cbet2 - cbet1 is a sensitive measure of
	// |bet1| - |bet2|. Alternatively (cbet1 >= -sbet1), abs(sbet2) + sbet1
	// is a better measure. This logic is used in assigning calp2 in
	// lambda12. Sometimes these quantities vanish and in that case we force
	// bet2 = +/- bet1 exactly. An example where is is necessary is the
	// inverse problem 48.522876735459 0 -48.52287673545898293
	// 179.599720456223079643.
	if cbet1 < -sbet1 {
		if cbet2 == cbet1 {
			if sbet2 < 0 {
				sbet2 = sbet1
			} else {
				sbet2 = -sbet1
			}
		}
	} else if math.Abs(sbet2) == -sbet1 {
		cbet2 = cbet1
	}

	dn1 := math.Sqrt(1 + g.ep2*sq(sbet1))
	dn2 := math.Sqrt(1 + g.ep2*sq(sbet2))

	// index zero elements of these arrays are unused
	var c1a [nC1 + 1]float64
	var c2a [nC2 + 1]float64
	var c3a [nC3]float64

	var sig12, s12x, m12x float64
	var salp1, calp1, salp2, calp2 float64

	meridian := lat1 == -90 || slam12 == 0
	if meridian {
		// Endpoints are on a single full meridian, so the geodesic might
		// lie on a meridian.
		calp1, salp1 = clam12, slam12 // head to the target longitude
		calp2, salp2 = 1, 0           // at the target we're heading north

		// tan(bet) = tan(sig) * cos(alp)
		ssig1, csig1 := sbet1, calp1*cbet1
		ssig2, csig2 := sbet2, calp2*cbet2

		// sig12 = sig2 - sig1
		sig12 = math.Atan2(math.Max(0, csig1*ssig2-ssig1*csig2), csig1*csig2+ssig1*ssig2)
		s12x, m12x, _, r.M12, r.M21 = g.lengths(g.n, sig12,
			ssig1, csig1, dn1, ssig2, csig2, dn2, cbet1, cbet2,
			mask|Distance|ReducedLength, &c1a, &c2a)

		// Add the check for sig12 since zero length geodesics might yield
		// m12 < 0. Test case was
		//
		//    echo 20.001 0 20.001 0 | GeodSolve -i
		//
		// In fact, we will have sig12 > pi/2 for meridional geodesic which
		// is not a shortest path.
		if sig12 < 1 || m12x >= 0 {
			if sig12 < 3*tiny ||
				// Prevent negative s12 or m12 for short lines
				(sig12 < tol0 && (s12x < 0 || m12x < 0)) {
				sig12, m12x, s12x = 0, 0, 0
			}
			m12x *= g.b
			s12x *= g.b
			r.a12 = degrees(sig12)
		} else {
			// m12 < 0, i.e., prolate and too close to anti-podal
			meridian = false
		}
	}

	// somg12 > 1 marks that it needs to be calculated
	somg12, comg12, omg12 := 2.0, 0.0, 0.0
	if !meridian && sbet1 == 0 && (g.f <= 0 || lon12s >= g.f*180) {
		// Geodesic runs along equator; mimic the way lambda12 works with
		// calp1 = 0.
		calp1, calp2 = 0, 0
		salp1, salp2 = 1, 1
		s12x = g.a * lam12
		sig12 = lam12 / g.f1
		omg12 = sig12
		m12x = g.b * math.Sin(sig12)
		if mask.has(GeodesicScale) {
			r.M12 = math.Cos(sig12)
			r.M21 = r.M12
		}
		r.a12 = lon12 / g.f1
	} else if !meridian {
		// Now point1 and point2 belong within a hemisphere bounded by a
		// meridian and geodesic is neither meridional or equatorial.

		// Figure a starting point for Newton's method
		var dnm float64
		sig12, salp1, calp1, salp2, calp2, dnm = g.inverseStart(
			sbet1, cbet1, dn1, sbet2, cbet2, dn2, lam12, slam12, clam12, &c1a, &c2a)

		if sig12 >= 0 {
			// Short lines (inverseStart sets salp2, calp2, dnm)
			s12x = sig12 * g.b * dnm
			m12x = sq(dnm) * g.b * math.Sin(sig12/dnm)
			if mask.has(GeodesicScale) {
				r.M12 = math.Cos(sig12 / dnm)
				r.M21 = r.M12
			}
			r.a12 = degrees(sig12)
			omg12 = lam12 / (g.f1 * dnm)
		} else {
			// Newton's method. This is a straightforward solution of
			// f(alp1) = lambda12(alp1) - lam12 = 0 with one wrinkle. f(alp)
			// has exactly one root in the interval (0, pi) and its
			// derivative is positive at the root. Thus f(alp) is positive
			// for alp > alp1 and negative for alp < alp1. During the course
			// of the iteration, a range (alp1a, alp1b) is maintained which
			// brackets the root and with each evaluation of f(alp) the
			// range is shrunk if possible. Newton's method is restarted
			// whenever the derivative of f is negative (because the new
			// value of alp1 is then further from the solution) or if the
			// new estimate of alp1 lies outside (0,pi); in this case, the
			// new starting guess is taken to be (alp1a + alp1b) / 2.
			var ssig1, csig1, ssig2, csig2, eps, domg12 float64
			br := newBracket()
			for numit := 0; ; numit++ {
				// the WGS84 test set: mean = 1.47, sd = 1.25, max = 16
				// WGS84 and random input: mean = 2.85, sd = 0.60
				var v, dv float64
				v, salp2, calp2, sig12, ssig1, csig1, ssig2, csig2, eps, domg12, dv = g.lambda12(
					sbet1, cbet1, dn1, sbet2, cbet2, dn2, salp1, calp1, slam12, clam12,
					numit < maxit1, &c1a, &c2a, &c3a)
				// 2 * tol0 is approximately 1 ulp for a number in [0, pi].
				if br.converged(v) || numit == maxit2 {
					break
				}
				br.shrink(v, salp1, calp1, numit)
				if numit < maxit1 && dv > 0 {
					dalp1 := -v / dv
					sdalp1, cdalp1 := math.Sincos(dalp1)
					nsalp1 := salp1*cdalp1 + calp1*sdalp1
					if nsalp1 > 0 && math.Abs(dalp1) < math.Pi {
						calp1 = calp1*cdalp1 - salp1*sdalp1
						salp1 = nsalp1
						salp1, calp1 = norm(salp1, calp1)
						// In some regimes we don't get quadratic convergence
						// because slope -> 0. So use convergence conditions
						// based on epsilon instead of sqrt(epsilon).
						br.tripn = math.Abs(v) <= 16*tol0
						continue
					}
				}
				// Either dv was not positive or updated value was outside
				// legal range. Use the midpoint of the bracket as the next
				// estimate. This mechanism is not needed for the WGS84
				// ellipsoid, but it does catch problems with more eccentric
				// ellipsoids.
				salp1, calp1 = br.bisect()
			}
			lengthMask := mask
			if mask.has(ReducedLength | GeodesicScale) {
				lengthMask |= Distance
			}
			s12x, m12x, _, r.M12, r.M21 = g.lengths(eps, sig12,
				ssig1, csig1, dn1, ssig2, csig2, dn2, cbet1, cbet2, lengthMask, &c1a, &c2a)
			m12x *= g.b
			s12x *= g.b
			r.a12 = degrees(sig12)
			if mask.has(Area) {
				// omg12 = lam12 - domg12
				sdomg12, cdomg12 := math.Sincos(domg12)
				somg12 = slam12*cdomg12 - clam12*sdomg12
				comg12 = clam12*cdomg12 + slam12*sdomg12
			}
		}
	}

	if mask.has(Distance) {
		r.s12 = 0 + s12x // convert -0 to 0
	}
	if mask.has(ReducedLength) {
		r.m12 = 0 + m12x
	}

	if mask.has(Area) {
		r.S12 = g.inverseArea(sbet1, cbet1, sbet2, cbet2, salp1, calp1, salp2, calp2,
			meridian, somg12, comg12, omg12)
		r.S12 = 0 + swapp*lonsign*latsign*r.S12
	}

	// Convert calp, salp to azimuth accounting for lonsign, swapp, latsign.
	if swapp < 0 {
		salp1, salp2 = salp2, salp1
		calp1, calp2 = calp2, calp1
		if mask.has(GeodesicScale) {
			r.M12, r.M21 = r.M21, r.M12
		}
	}
	salp1 *= swapp * lonsign
	calp1 *= swapp * latsign
	salp2 *= swapp * lonsign
	calp2 *= swapp * latsign

	r.salp1, r.calp1, r.salp2, r.calp2 = salp1, calp1, salp2, calp2
	return r
}

// inverseArea returns the area between the geodesic and the equator in the
// canonical frame of genInverse.
func (g *Geodesic) inverseArea(sbet1, cbet1, sbet2, cbet2, salp1, calp1, salp2, calp2 float64,
	meridian bool, somg12, comg12, omg12 float64,
) float64 {
	// From lambda12: sin(alp1) * cos(bet1) = sin(alp0)
	salp0 := salp1 * cbet1
	calp0 := math.Hypot(calp1, salp1*sbet1) // calp0 > 0
	var S12 float64
	if calp0 != 0 && salp0 != 0 {
		// From lambda12: tan(bet) = tan(sig) * cos(alp)
		ssig1, csig1 := norm(sbet1, calp1*cbet1)
		ssig2, csig2 := norm(sbet2, calp2*cbet2)
		k2 := sq(calp0) * g.ep2
		eps := epsOf(k2)
		// Multiplier = a^2 * e^2 * cos(alpha0) * sin(alpha0).
		a4 := sq(g.a) * calp0 * salp0 * g.e2
		var c4a [nC4]float64
		g.c4f(eps, &c4a)
		b41 := sinCosSeries(false, ssig1, csig1, c4a[:])
		b42 := sinCosSeries(false, ssig2, csig2, c4a[:])
		S12 = a4 * (b42 - b41)
	}
	// Otherwise S12 = 0, which avoids problems with indeterminate sig1,
	// sig2 on the equator.

	if !meridian && somg12 > 1 {
		somg12, comg12 = math.Sincos(omg12)
	}

	var alp12 float64
	if !meridian &&
		comg12 > -0.7071 && // omg12 < 3/4 * pi
		sbet2-sbet1 < 1.75 { // lat difference not too big
		// Use tan(Gamma/2) = tan(omg12/2)
		// * (tan(bet1/2)+tan(bet2/2))/(1+tan(bet1/2)*tan(bet2/2))
		// with tan(x/2) = sin(x)/(1+cos(x))
		domg12 := 1 + comg12
		dbet1 := 1 + cbet1
		dbet2 := 1 + cbet2
		alp12 = 2 * math.Atan2(somg12*(sbet1*dbet2+sbet2*dbet1),
			domg12*(sbet1*sbet2+dbet1*dbet2))
	} else {
		// alp12 = alp2 - alp1, used in atan2 so no need to normalize
		salp12 := salp2*calp1 - calp2*salp1
		calp12 := calp2*calp1 + salp2*salp1
		// The right thing appears to happen if alp1 = +/-180 and alp2 = 0,
		// viz salp12 = -0 and alp12 = -180. However this depends on the
		// sign being attached to 0 correctly. The following ensures the
		// correct behavior.
		if salp12 == 0 && calp12 < 0 {
			salp12 = tiny * calp1
			calp12 = -1
		}
		alp12 = math.Atan2(salp12, calp12)
	}
	return S12 + g.c2*alp12
}
