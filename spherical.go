/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */
/* Latitude/longitude spherical geodesy tools   (c) Chris Veness 2002-2019 */
/*                                                             MIT Licence */
/* www.movable-type.co.uk/scripts/latlong.html                             */
/* www.movable-type.co.uk/scripts/geodesy-library.html#latlon-spherical    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

package geodesic

import "math"

// GreatCircleInverse solves the inverse problem on a sphere of the given
// radius with closed-form great circle formulas. It returns the distance
// s12 (in the units of radius) and the azimuths at both points in
// degrees, in the range (-180, 180].
//
// It agrees with New(radius, 0).InverseWith to well under a millimeter for
// Earth-sized spheres, except for nearly antipodal points where the azimuth
// is ill-conditioned.
func GreatCircleInverse(radius, lat1, lon1, lat2, lon2 float64) (s12, azi1, azi2 float64) {
	s12 = greatCircleDistance(radius, lat1, lon1, lat2, lon2)
	azi1 = bearing(lat1, lon1, lat2, lon2)
	azi2 = angNormalize(bearing(lat2, lon2, lat1, lon1) + 180)
	return s12, azi1, azi2
}

// GreatCircleDirect solves the direct problem on a sphere. lon2 and azi2
// are in the range (-180, 180].
func GreatCircleDirect(radius, lat1, lon1, azi1, s12 float64) (lat2, lon2, azi2 float64) {
	lat2, lon2 = destination(radius, lat1, lon1, s12, azi1)
	// tanθ2 = sinθ⋅cosφ1 / cosδ⋅cosφ1⋅cosθ − sinφ1⋅sinδ
	sθ, cθ := sincosd(azi1)
	sφ1, cφ1 := sincosd(lat1)
	sδ, cδ := math.Sincos(s12 / radius)
	azi2 = atan2d(sθ*cφ1, cδ*cφ1*cθ-sφ1*sδ)
	return lat2, lon2, azi2
}

func destination(radius float64, lat1, lon1, meters, bearingDegrees float64) (lat2, lon2 float64) {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	// see mathforum.org/library/drmath/view/52049.html for derivation
	δ := meters / radius
	sθ, cθ := sincosd(bearingDegrees)
	sφ1, cφ1 := sincosd(lat1)
	sδ, cδ := math.Sincos(δ)
	sφ2 := sφ1*cδ + cφ1*sδ*cθ
	φ2 := math.Asin(math.Max(-1, math.Min(1, sφ2)))
	Δλ := math.Atan2(sθ*sδ*cφ1, cδ-sφ1*sφ2)
	return degrees(φ2), angNormalize(lon1 + degrees(Δλ))
}

func greatCircleDistance(radius float64, lat1, lon1, lat2, lon2 float64) float64 {
	// haversine formula, with atan2 to keep precision near the antipode
	φ1 := radians(lat1)
	φ2 := radians(lat2)
	Δφ := φ2 - φ1
	Δλ := radians(angNormalize(lon2 - lon1))
	sΔφ2 := math.Sin(Δφ / 2)
	sΔλ2 := math.Sin(Δλ / 2)
	haver := sΔφ2*sΔφ2 + math.Cos(φ1)*math.Cos(φ2)*sΔλ2*sΔλ2
	haver = math.Min(1, haver)
	return radius * 2 * math.Atan2(math.Sqrt(haver), math.Sqrt(1-haver))
}

func bearing(lat1, lon1, lat2, lon2 float64) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	// see mathforum.org/library/drmath/view/55417.html for derivation
	sφ1, cφ1 := sincosd(lat1)
	sφ2, cφ2 := sincosd(lat2)
	sΔλ, cΔλ := sincosd(angNormalize(lon2 - lon1))
	y := sΔλ * cφ2
	x := cφ1*sφ2 - sφ1*cφ2*cΔλ
	return atan2d(y, x)
}
