// Package geodesic solves the direct and inverse geodesic problems on an
// ellipsoid of revolution using the series method of Karney (2013),
// "Algorithms for geodesics", J. Geodesy 87, 43-55.
//
// A Geodesic is built once per ellipsoid and is safe for concurrent use;
// nothing in it changes after construction. Quantities that are not
// requested through a Mask are not computed and are reported as NaN.
package geodesic

import "math"

const maxit1 = 20

// maxit2 caps the Newton and bisection iterations of the inverse solver.
var maxit2 = maxit1 + digits + 10

var (
	tol0 = epsilon
	// Increase multiplier in defn of tol1 from 100 to 200 to fix inverse
	// case 52.784459512564 0 -52.784459512563990912 179.634407464943777557
	tol1    = 200 * tol0
	tol2    = math.Sqrt(tol0)
	tolb    = tol0 * tol2
	xthresh = 1000 * tol2
)

// WGS84 is a pre-initialized Geodesic for the WGS84 ellipsoid.
var WGS84 = NewFromEllipsoid(WGS84Ellipsoid)

// Geodesic performs geodesic calculations on one ellipsoid.
type Geodesic struct {
	ellipsoid Ellipsoid

	a, f, f1, e2, ep2, n, b float64
	// authalic radius squared
	c2 float64
	// sig12 threshold for "really short" lines
	etol2 float64

	a3x [nA3x]float64
	c3x [nC3x]float64
	c4x [nC4x]float64
}

// New returns a Geodesic for the ellipsoid with equatorial radius a
// (meters) and flattening f. f = 0 gives a sphere and f < 0 a prolate
// spheroid. The arguments are not checked; a non-positive a, or f >= 1,
// produce NaN or Inf results.
func New(a, f float64) *Geodesic {
	return NewFromEllipsoid(newEllipsoid(a, f))
}

// NewFromEllipsoid returns a Geodesic for e.
func NewFromEllipsoid(e Ellipsoid) *Geodesic {
	g := &Geodesic{
		ellipsoid: e,
		a:         e.a,
		f:         e.f,
		f1:        1 - e.f,
		e2:        e.e1sq,
		ep2:       e.e2sq,
		n:         e.n,
		b:         e.b,
	}
	g.c2 = sq(g.a)
	if g.e2 != 0 {
		es := math.Sqrt(math.Abs(g.e2))
		if g.f < 0 {
			es = -es
		}
		g.c2 = sq(g.a) + sq(g.b)*eatanhe(1, es)/g.e2
	} else {
		g.c2 += sq(g.b)
	}
	g.c2 /= 2
	// The sig12 threshold for "really short". Using the auxiliary sphere
	// solution with dnm computed at (bet1 + bet2) / 2, the relative error in
	// the azimuth consistency check is sig12^2 * abs(f) * min(1, 1-f/2) / 2.
	// Setting this equal to epsilon gives sig12 = etol2. Here 0.1 is a
	// safety factor (error decreased by 100) and max(0.001, abs(f)) stops
	// etol2 getting too large in the nearly spherical case.
	g.etol2 = 0.1 * tol2 / math.Sqrt(math.Max(0.001, math.Abs(g.f))*
		math.Min(1, 1-g.f/2)/2)
	g.a3x = a3Table(g.n)
	g.c3x = c3Table(g.n)
	g.c4x = c4Table(g.n)
	return g
}

// Ellipsoid returns the ellipsoid of g.
func (g *Geodesic) Ellipsoid() Ellipsoid {
	return g.ellipsoid
}

// Radius returns the equatorial radius in meters.
func (g *Geodesic) Radius() float64 {
	return g.a
}

// Flattening returns the flattening of the ellipsoid.
func (g *Geodesic) Flattening() float64 {
	return g.f
}

// EllipsoidArea returns the total area of the ellipsoid in square meters.
func (g *Geodesic) EllipsoidArea() float64 {
	return 4 * math.Pi * g.c2
}

// Inverse solves the inverse geodesic problem.
//
// Param lat1 is latitude of point 1 (degrees).
// Param lon1 is longitude of point 1 (degrees).
// Param lat2 is latitude of point 2 (degrees).
// Param lon2 is longitude of point 2 (degrees).
// Out param s12 is a pointer to the distance from point 1 to point 2 (meters).
// Out param azi1 is a pointer to the azimuth at point 1 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
//
// lat1 and lat2 should be in the range [-90,+90].
// The values of azi1 and azi2 returned are in the range (-180,+180].
// Any of the "return" arguments, s12, etc., may be nil, if you do not need
// some quantities computed.
//
// The solution to the inverse problem is found using Newton's method. If
// this fails to converge (this is very unlikely in geodetic applications
// but does occur for very eccentric ellipsoids), then the bisection method
// is used to refine the solution.
func (g *Geodesic) Inverse(
	lat1, lon1, lat2, lon2 float64,
	s12, azi1, azi2 *float64,
) {
	mask := None
	if s12 != nil {
		mask |= Distance
	}
	if azi1 != nil || azi2 != nil {
		mask |= Azimuth
	}
	r := g.InverseWith(lat1, lon1, lat2, lon2, mask)
	if s12 != nil {
		*s12 = r.S12
	}
	if azi1 != nil {
		*azi1 = r.Azi1
	}
	if azi2 != nil {
		*azi2 = r.Azi2
	}
}

// Direct solves the direct geodesic problem.
//
// Param lat1 is the latitude of point 1 (degrees).
// Param lon1 is the longitude of point 1 (degrees).
// Param azi1 is the azimuth at point 1 (degrees).
// Param s12 is the distance from point 1 to point 2 (meters). negative is ok.
// Out param lat2 is a pointer to the latitude of point 2 (degrees).
// Out param lon2 is a pointer to the longitude of point 2 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
//
// lat1 should be in the range [-90,+90].
// The values of lon2 and azi2 returned are in the range (-180,+180].
// Any of the "return" arguments, lat2, etc., may be nil, if you do not need
// some quantities computed.
func (g *Geodesic) Direct(
	lat1, lon1, azi1, s12 float64,
	lat2, lon2, azi2 *float64,
) {
	mask := None
	if lat2 != nil {
		mask |= Latitude
	}
	if lon2 != nil {
		mask |= Longitude
	}
	if azi2 != nil {
		mask |= Azimuth
	}
	r := g.DirectWith(lat1, lon1, azi1, s12, mask)
	if lat2 != nil {
		*lat2 = r.Lat2
	}
	if lon2 != nil {
		*lon2 = r.Lon2
	}
	if azi2 != nil {
		*azi2 = r.Azi2
	}
}

// Distance returns the length in meters of the shortest path between two
// points.
func (g *Geodesic) Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return g.InverseWith(lat1, lon1, lat2, lon2, Distance).S12
}

// DirectWith solves the direct problem with the distance s12 (meters) and
// returns the quantities selected by mask.
func (g *Geodesic) DirectWith(lat1, lon1, azi1, s12 float64, mask Mask) Result {
	return g.GenDirect(lat1, lon1, azi1, false, s12, mask)
}

// ArcDirect solves the direct problem with the arc length a12 (degrees) on
// the auxiliary sphere.
func (g *Geodesic) ArcDirect(lat1, lon1, azi1, a12 float64, mask Mask) Result {
	return g.GenDirect(lat1, lon1, azi1, true, a12, mask)
}

// GenDirect is the general direct problem. s12a12 is an arc length in
// degrees when arcmode is set and a distance in meters otherwise.
func (g *Geodesic) GenDirect(lat1, lon1, azi1 float64, arcmode bool, s12a12 float64, mask Mask) Result {
	if !arcmode {
		mask |= DistanceIn
	}
	l := g.Line(lat1, lon1, azi1, mask)
	return l.GenPosition(arcmode, s12a12, mask)
}

// InverseWith solves the inverse problem and returns the quantities
// selected by mask. Lat1, Lon1, Lat2, Lon2 and A12 are always filled in.
func (g *Geodesic) InverseWith(lat1, lon1, lat2, lon2 float64, mask Mask) Result {
	inv := g.genInverse(lat1, lon1, lat2, lon2, mask)
	mask &= outMask
	r := nanResult()
	r.Lat1 = latFix(lat1)
	r.Lat2 = latFix(lat2)
	if mask.has(LongUnroll) {
		lon12, e := angDiff(lon1, lon2)
		r.Lon1 = lon1
		r.Lon2 = (lon1 + lon12) + e
	} else {
		r.Lon1 = angNormalize(lon1)
		r.Lon2 = angNormalize(lon2)
	}
	r.A12 = inv.a12
	if mask.has(Distance) {
		r.S12 = inv.s12
	}
	if mask.has(Azimuth) {
		r.Azi1 = atan2d(inv.salp1, inv.calp1)
		r.Azi2 = atan2d(inv.salp2, inv.calp2)
	}
	if mask.has(ReducedLength) {
		r.ReducedLength = inv.m12
	}
	if mask.has(GeodesicScale) {
		r.GeodesicScale12 = inv.M12
		r.GeodesicScale21 = inv.M21
	}
	if mask.has(Area) {
		r.Area = inv.S12
	}
	return r
}

// Line returns the geodesic line starting at (lat1, lon1) with azimuth
// azi1. caps selects what later position queries may return; Latitude,
// Azimuth and LongUnroll are always included. Use DistanceIn to allow
// positions by distance.
func (g *Geodesic) Line(lat1, lon1, azi1 float64, caps Mask) GeodesicLine {
	return newLine(g, lat1, lon1, azi1, math.NaN(), math.NaN(), caps)
}

// DirectLine returns the line through (lat1, lon1) with azimuth azi1 whose
// reference point 3 is at distance s13.
func (g *Geodesic) DirectLine(lat1, lon1, azi1, s13 float64, caps Mask) GeodesicLine {
	return g.genDirectLine(lat1, lon1, azi1, false, s13, caps)
}

// ArcDirectLine returns the line through (lat1, lon1) with azimuth azi1
// whose reference point 3 is at arc length a13.
func (g *Geodesic) ArcDirectLine(lat1, lon1, azi1, a13 float64, caps Mask) GeodesicLine {
	return g.genDirectLine(lat1, lon1, azi1, true, a13, caps)
}

func (g *Geodesic) genDirectLine(lat1, lon1, azi1 float64, arcmode bool, s13a13 float64, caps Mask) GeodesicLine {
	if !arcmode {
		caps |= DistanceIn
	}
	l := g.Line(lat1, lon1, azi1, caps)
	if arcmode {
		return l.WithArc(s13a13)
	}
	return l.WithDistance(s13a13)
}

// InverseLine returns the line from (lat1, lon1) to (lat2, lon2); point 3
// of the line is point 2 of the inverse problem.
func (g *Geodesic) InverseLine(lat1, lon1, lat2, lon2 float64, caps Mask) GeodesicLine {
	inv := g.genInverse(lat1, lon1, lat2, lon2, None)
	azi1 := atan2d(inv.salp1, inv.calp1)
	if caps.has(outMask & DistanceIn) {
		caps |= Distance
	}
	l := newLine(g, lat1, lon1, azi1, inv.salp1, inv.calp1, caps)
	return l.WithArc(inv.a12)
}
