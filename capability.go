package geodesic

// Mask selects the quantities a geodesic calculation returns. Each output
// bit carries the internal series bits it needs, so a mask built from
// outputs alone is enough to decide which series to evaluate.
type Mask uint32

// Internal series shared between Geodesic and GeodesicLine.
const (
	capNone Mask = 0
	capC1   Mask = 1 << 0
	capC1p  Mask = 1 << 1
	capC2   Mask = 1 << 2
	capC3   Mask = 1 << 3
	capC4   Mask = 1 << 4
	capAll  Mask = 0x1f
	capMask      = capAll
	outAll  Mask = 0x7f80
	outMask Mask = 0xff80 // includes LongUnroll
)

const (
	// None requests nothing beyond the arc length.
	None Mask = 0
	// Latitude of the second point.
	Latitude = 1<<7 | capNone
	// Longitude of the second point.
	Longitude = 1<<8 | capC3
	// Azimuths at both points.
	Azimuth = 1<<9 | capNone
	// Distance between the points.
	Distance = 1<<10 | capC1
	// DistanceIn allows distance, rather than arc length, as the parameter of
	// a direct problem or line position.
	DistanceIn = 1<<11 | capC1 | capC1p
	// ReducedLength m12.
	ReducedLength = 1<<12 | capC1 | capC2
	// GeodesicScale M12 and M21.
	GeodesicScale = 1<<13 | capC1 | capC2
	// Area S12 between the geodesic and the equator.
	Area = 1<<14 | capC4
	// LongUnroll leaves longitudes unwrapped so that lon2 - lon1 tells how
	// many times the geodesic circled the ellipsoid.
	LongUnroll Mask = 1 << 15
	// Standard is the default output set.
	Standard = Latitude | Longitude | Azimuth | Distance
	// All outputs and series, without LongUnroll.
	All = outAll | capAll
)

// Union returns the bits set in either mask.
func (m Mask) Union(o Mask) Mask {
	return m | o
}

// Intersect returns the bits set in both masks.
func (m Mask) Intersect(o Mask) Mask {
	return m & o
}

// Contains reports whether every bit of o is set in m.
func (m Mask) Contains(o Mask) bool {
	return m&o == o
}

func (m Mask) has(o Mask) bool {
	return m&o != 0
}
