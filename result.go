package geodesic

import "math"

// Result holds the quantities of a direct or inverse calculation. Fields
// that were not requested by the mask are NaN.
//
// Angles are in degrees, lengths in meters and Area in square meters.
type Result struct {
	Lat1, Lon1, Azi1 float64
	Lat2, Lon2, Azi2 float64
	// S12 is the distance from point 1 to point 2.
	S12 float64
	// A12 is the arc length on the auxiliary sphere.
	A12 float64
	// ReducedLength is m12.
	ReducedLength float64
	// GeodesicScale12 is M12, the geodesic scale of point 2 relative to
	// point 1; GeodesicScale21 is M21.
	GeodesicScale12, GeodesicScale21 float64
	// Area is S12, the area between the geodesic and the equator.
	Area float64
}

func nanResult() Result {
	nan := math.NaN()
	return Result{
		Lat1: nan, Lon1: nan, Azi1: nan,
		Lat2: nan, Lon2: nan, Azi2: nan,
		S12: nan, A12: nan,
		ReducedLength:   nan,
		GeodesicScale12: nan, GeodesicScale21: nan,
		Area: nan,
	}
}
