package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eqish(x, y float64, prec int) bool {
	return math.Abs(x-y) < float64(1.0)/math.Pow10(prec)
}

func testInverse(t *testing.T, g *Geodesic, lat1, lon1, lat2, lon2, azi1, azi2, s12 float64) {
	t.Helper()
	var s12ret, azi1ret, azi2ret float64
	g.Inverse(lat1, lon1, lat2, lon2, &s12ret, &azi1ret, &azi2ret)
	assert.InDelta(t, azi1, azi1ret, 0.5e-5, "azi1")
	assert.InDelta(t, azi2, azi2ret, 0.5e-5, "azi2")
	assert.InDelta(t, s12, s12ret, 0.5, "s12")
}

func testDirect(t *testing.T, g *Geodesic, lat1, lon1, azi1, s12, lat2, lon2, azi2 float64) {
	t.Helper()
	var lat2ret, lon2ret, azi2ret float64
	g.Direct(lat1, lon1, azi1, s12, &lat2ret, &lon2ret, &azi2ret)
	assert.InDelta(t, lat2, lat2ret, 0.5e-5, "lat2")
	assert.InDelta(t, lon2, lon2ret, 0.5e-5, "lon2")
	assert.InDelta(t, azi2, azi2ret, 0.5e-5, "azi2")
}

func assertNaN(t *testing.T, x float64, name string) {
	t.Helper()
	assert.True(t, math.IsNaN(x), "%s = %v, want NaN", name, x)
}

func TestInverseJFKToCDG(t *testing.T) {
	testInverse(t, WGS84, 40.6, -73.8, 49.01666667, 2.55,
		53.47022, 111.59367, 5853226)
}

func TestDirectJFKToCDG(t *testing.T) {
	testDirect(t, WGS84, 40.63972222, -73.77888889, 53.5, 5850e3,
		49.01467, 2.56106, 111.62947)
}

func TestNilOutputs(t *testing.T) {
	var s12 float64
	WGS84.Inverse(40.6, -73.8, 49.01666667, 2.55, &s12, nil, nil)
	assert.InDelta(t, 5853226, s12, 0.5)

	var lon2 float64
	WGS84.Direct(40.63972222, -73.77888889, 53.5, 5850e3, nil, &lon2, nil)
	assert.InDelta(t, 2.56106, lon2, 0.5e-5)

	assert.InDelta(t, 5853226, WGS84.Distance(40.6, -73.8, 49.01666667, 2.55), 0.5)
}

func TestInverseProlate(t *testing.T) {
	g := New(6.4e6, -1/150.0)
	testInverse(t, g, 0.07476, 0, -0.07476, 180, 90.00078, 90.00078, 20106193)
	testInverse(t, g, 0.1, 0, -0.1, 180, 90.00105, 90.00105, 20106193)
}

func TestInverseShortLine(t *testing.T) {
	r := WGS84.InverseWith(36.493349428792, 0, 36.49334942879201, .0000008, Distance)
	assert.InDelta(t, 0.072, r.S12, 0.5e-3)
}

func TestDirectThroughPole(t *testing.T) {
	r := WGS84.DirectWith(0.01777745589997, 30, 0, 10e6, Standard)
	assert.InDelta(t, 90, r.Lat2, 0.5e-5)
	if r.Lon2 < 0 {
		assert.InDelta(t, -150, r.Lon2, 0.5e-5)
		assert.InDelta(t, 180, math.Abs(r.Azi2), 0.5e-5)
	} else {
		assert.InDelta(t, 30, r.Lon2, 0.5e-5)
		assert.InDelta(t, 0, r.Azi2, 0.5e-5)
	}
}

func TestInverseNearlyAntipodal(t *testing.T) {
	tests := []struct {
		lat1, lon1, lat2, lon2, s12 float64
	}{
		{88.202499451857, 0, -88.202499451857, 179.981022032992859592, 20003898.214},
		{89.262080389218, 0, -89.262080389218, 179.992207982775375662, 20003925.854},
		{89.333123580033, 0, -89.333123580032997687, 179.99295812360148422, 20003926.881},
		{56.320923501171, 0, -56.320923501171, 179.664747671772880215, 19993558.287},
		{52.784459512564, 0, -52.784459512563990912, 179.634407464943777557, 19991596.095},
		{48.522876735459, 0, -48.52287673545898293, 179.599720456223079643, 19989144.774},
	}
	for _, tt := range tests {
		r := WGS84.InverseWith(tt.lat1, tt.lon1, tt.lat2, tt.lon2, Distance)
		assert.InDelta(t, tt.s12, r.S12, 0.5e-3, "%v", tt)
	}
}

func TestInverseVeryFlat(t *testing.T) {
	g := New(89.8, -1.83)
	r := g.InverseWith(0, 0, -10, 160, Standard)
	assert.InDelta(t, 120.27, r.Azi1, 1e-2)
	assert.InDelta(t, 105.15, r.Azi2, 1e-2)
	assert.InDelta(t, 266.7, r.S12, 1e-1)
}

func TestInverseNaN(t *testing.T) {
	for _, p := range [][4]float64{
		{0, 0, 1, math.NaN()},
		{math.NaN(), 0, 1, 1},
		{math.NaN(), 0, 0, 90},
		{math.NaN(), 0, 90, 9},
	} {
		r := WGS84.InverseWith(p[0], p[1], p[2], p[3], Standard)
		assertNaN(t, r.Azi1, "azi1")
		assertNaN(t, r.Azi2, "azi2")
		assertNaN(t, r.S12, "s12")
	}
}

func TestArea(t *testing.T) {
	r := New(6.4e6, -1/150.0).DirectWith(1, 2, 3, 4, Area)
	assert.InDelta(t, 23700, r.Area, 0.5)

	r = New(6.4e6, 0).InverseWith(1, 2, 3, 4, Area)
	assert.InDelta(t, 49911046115.0, r.Area, 0.5)
}

func TestLongUnroll(t *testing.T) {
	r := WGS84.DirectWith(40, -75, -10, 2e7, Standard|LongUnroll)
	assert.InDelta(t, -39, r.Lat2, 1)
	assert.InDelta(t, -254, r.Lon2, 1)
	assert.InDelta(t, -170, r.Azi2, 1)

	l := WGS84.Line(40, -75, -10, Standard|DistanceIn)
	r = l.Position(2e7, Standard|LongUnroll)
	assert.InDelta(t, -39, r.Lat2, 1)
	assert.InDelta(t, -254, r.Lon2, 1)
	assert.InDelta(t, -170, r.Azi2, 1)

	r = WGS84.DirectWith(40, -75, -10, 2e7, Standard)
	assert.InDelta(t, -39, r.Lat2, 1)
	assert.InDelta(t, 105, r.Lon2, 1)
	assert.InDelta(t, -170, r.Azi2, 1)

	r = l.Position(2e7, Standard)
	assert.InDelta(t, 105, r.Lon2, 1)
}

func TestArcLengthOnFlatEllipsoid(t *testing.T) {
	r := New(6.4e6, 0.1).DirectWith(1, 2, 10, 5e6, Standard)
	assert.InDelta(t, 48.55570690, r.A12, 0.5e-8)
}

func TestInverseLongitudeReporting(t *testing.T) {
	r := WGS84.InverseWith(0, 539, 0, 181, Standard)
	assert.InDelta(t, 179, r.Lon1, 1e-10)
	assert.InDelta(t, -179, r.Lon2, 1e-10)
	assert.InDelta(t, 222639, r.S12, 0.5)

	r = WGS84.InverseWith(0, 539, 0, 181, Standard|LongUnroll)
	assert.InDelta(t, 539, r.Lon1, 1e-10)
	assert.InDelta(t, 541, r.Lon2, 1e-10)
	assert.InDelta(t, 222639, r.S12, 0.5)
}

func TestInverseEquatorial(t *testing.T) {
	type row struct{ lat2, lon2, azi1, azi2, s12 float64 }
	check := func(t *testing.T, g *Geodesic, rows []row) {
		t.Helper()
		for _, w := range rows {
			r := g.InverseWith(0, 0, w.lat2, w.lon2, Standard)
			assert.InDelta(t, w.azi1, r.Azi1, 0.5e-5, "azi1 %v", w)
			if math.Abs(w.azi2) == 180 {
				assert.InDelta(t, 180, math.Abs(r.Azi2), 0.5e-5, "azi2 %v", w)
			} else {
				assert.InDelta(t, w.azi2, r.Azi2, 0.5e-5, "azi2 %v", w)
			}
			assert.InDelta(t, w.s12, r.S12, 0.5, "s12 %v", w)
		}
	}
	t.Run("oblate", func(t *testing.T) {
		check(t, WGS84, []row{
			{0, 179, 90, 90, 19926189},
			{0, 179.5, 55.96650, 124.03350, 19980862},
			{0, 180, 0, 180, 20003931},
			{1, 180, 0, 180, 19893357},
		})
	})
	t.Run("sphere", func(t *testing.T) {
		check(t, New(6.4e6, 0), []row{
			{0, 179, 90, 90, 19994492},
			{0, 180, 0, 180, 20106193},
			{1, 180, 0, 180, 19994492},
		})
	})
	t.Run("prolate", func(t *testing.T) {
		check(t, New(6.4e6, -1/300.0), []row{
			{0, 179, 90, 90, 19994492},
			{0, 180, 90, 90, 20106193},
			{0.5, 180, 33.02493, 146.97364, 20082617},
			{1, 180, 0, 180, 20027270},
		})
	})
}

func TestInverseTinyLongitude(t *testing.T) {
	r := WGS84.InverseWith(5, 0.00000000000001, 10, 180, Standard)
	assert.InDelta(t, 0.000000000000035, r.Azi1, 1.5e-14)
	assert.InDelta(t, 179.99999999999996, r.Azi2, 1.5e-14)
	assert.InDelta(t, 18345191.174332713, r.S12, 5e-9)
}

func TestDirectTinyAzimuth(t *testing.T) {
	r := WGS84.DirectWith(45, 0, -0.000000000000000003, 1e7, Standard|LongUnroll)
	assert.InDelta(t, 45.30632, r.Lat2, 0.5e-5)
	assert.InDelta(t, -180, r.Lon2, 0.5e-5)
	assert.InDelta(t, 180, math.Abs(r.Azi2), 0.5e-5)
}

func TestDirectFromPole(t *testing.T) {
	testDirect(t, WGS84, 90, 10, 180, -1e6, 81.04623, -170, 0)
}

func TestInverseAll(t *testing.T) {
	r := WGS84.InverseWith(54.1589, 15.3872, 54.1591, 15.3877, All)
	assert.InDelta(t, 55.723110355, r.Azi1, 5e-9)
	assert.InDelta(t, 55.723515675, r.Azi2, 5e-9)
	assert.InDelta(t, 39.527686385, r.S12, 5e-9)
	assert.InDelta(t, 0.000355495, r.A12, 5e-9)
	assert.InDelta(t, 39.527686385, r.ReducedLength, 5e-9)
	assert.InDelta(t, 0.999999995, r.GeodesicScale12, 5e-9)
	assert.InDelta(t, 0.999999995, r.GeodesicScale21, 5e-9)
	assert.InDelta(t, 286698586.30197, r.Area, 5e-4)
}

func TestInverseHighPrecision(t *testing.T) {
	r := WGS84.InverseWith(-(41 + 19/60.0), 174+49/60.0, 40+58/60.0, -(5 + 30/60.0), Standard)
	assert.InDelta(t, 160.39137649664, r.Azi1, 0.5e-11)
	assert.InDelta(t, 19.50042925176, r.Azi2, 0.5e-11)
	assert.InDelta(t, 19960543.857179, r.S12, 0.5e-6)

	r = WGS84.InverseWith(27.2, 0.0, -27.1, 179.5, Standard)
	assert.InDelta(t, 45.82468716758, r.Azi1, 0.5e-11)
	assert.InDelta(t, 134.22776532670, r.Azi2, 0.5e-11)
	assert.InDelta(t, 19974354.765767, r.S12, 0.5e-6)
}

func TestGeodesicScale(t *testing.T) {
	r := WGS84.InverseWith(0, 0, 0, 90, GeodesicScale)
	assert.InDelta(t, -0.00528427534, r.GeodesicScale12, 0.5e-10)
	assert.InDelta(t, -0.00528427534, r.GeodesicScale21, 0.5e-10)

	r = WGS84.InverseWith(0, 0, 1e-6, 1e-6, GeodesicScale)
	assert.InDelta(t, 1, r.GeodesicScale12, 0.5e-10)
	assert.InDelta(t, 1, r.GeodesicScale21, 0.5e-10)
}

func TestDirectInfinite(t *testing.T) {
	r := WGS84.DirectWith(0, 0, 90, math.Inf(1), Standard)
	assertNaN(t, r.Lat2, "lat2")
	assertNaN(t, r.Lon2, "lon2")
	assertNaN(t, r.Azi2, "azi2")

	r = WGS84.DirectWith(0, 0, math.Inf(1), 1000, Standard)
	assertNaN(t, r.Lat2, "lat2")
	assertNaN(t, r.Lon2, "lon2")
	assertNaN(t, r.Azi2, "azi2")

	r = WGS84.DirectWith(0, math.Inf(1), 90, 1000, Standard)
	assert.Equal(t, 0.0, r.Lat2)
	assertNaN(t, r.Lon2, "lon2")
	assert.Equal(t, 90.0, r.Azi2)
}

func TestInverseCoincident(t *testing.T) {
	r := WGS84.InverseWith(20.001, 0, 20.001, 0, All)
	assert.Equal(t, 0.0, r.S12)
	assert.Equal(t, 0.0, r.A12)
	assert.Equal(t, 0.0, r.ReducedLength)
	assert.InDelta(t, 180, r.Azi1, 0.5e-5)
	assert.InDelta(t, 180, r.Azi2, 0.5e-5)
	assert.InDelta(t, 1, r.GeodesicScale12, 1e-15)
}

func TestUnrequestedAreNaN(t *testing.T) {
	r := WGS84.InverseWith(10, 20, 30, 40, Distance)
	assert.False(t, math.IsNaN(r.S12))
	assert.False(t, math.IsNaN(r.A12))
	assertNaN(t, r.Azi1, "azi1")
	assertNaN(t, r.ReducedLength, "m12")
	assertNaN(t, r.Area, "S12")

	d := WGS84.DirectWith(10, 20, 30, 1e6, Latitude)
	assert.False(t, math.IsNaN(d.Lat2))
	assertNaN(t, d.Lon2, "lon2")
	assertNaN(t, d.Azi2, "azi2")
}

func TestArcDirectMatchesDistance(t *testing.T) {
	inv := WGS84.InverseWith(40.6, -73.8, 49.01666667, 2.55, Standard)
	r := WGS84.ArcDirect(40.6, -73.8, inv.Azi1, inv.A12, Standard)
	assert.InDelta(t, 49.01666667, r.Lat2, 1e-9)
	assert.InDelta(t, 2.55, r.Lon2, 1e-9)
	assert.InDelta(t, inv.S12, r.S12, 1e-6)
	assert.Equal(t, inv.A12, r.A12)
}

func randomPoint(rng *rand.Rand) (lat, lon float64) {
	return rng.Float64()*180 - 90, rng.Float64()*360 - 180
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		lat1, lon1 := randomPoint(rng)
		lat2, lon2 := randomPoint(rng)
		inv := WGS84.InverseWith(lat1, lon1, lat2, lon2, Standard)
		require.False(t, math.IsNaN(inv.S12))
		dir := WGS84.DirectWith(lat1, lon1, inv.Azi1, inv.S12, Standard)
		miss := WGS84.Distance(lat2, lon2, dir.Lat2, dir.Lon2)
		require.Less(t, miss, 1e-6, "round trip (%f %f %f %f)", lat1, lon1, lat2, lon2)

		back := WGS84.InverseWith(lat2, lon2, lat1, lon1, Distance)
		require.InDelta(t, inv.S12, back.S12, 1e-6)
		require.InDelta(t, inv.A12, back.A12, 1e-10)
	}
}

func TestSpherical(t *testing.T) {
	const radius = 6371008.8
	e := New(radius, 0)
	require.Equal(t, 0.0, e.Flattening())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20_000; i++ {
		lat1, lon1 := randomPoint(rng)
		lat2, lon2 := randomPoint(rng)

		var s12, azi1, azi2 float64
		e.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, &azi2)

		var ret [3]float64
		ret[0], ret[1], ret[2] = GreatCircleInverse(radius, lat1, lon1, lat2, lon2)
		if !eqish(ret[0], s12, 4) ||
			!eqish(ret[1], azi1, 4) ||
			!eqish(ret[2], azi2, 4) {
			t.Fatalf("inverse failure (%f %f %f %f %f %f %f)",
				lat1, lon1, lat2, lon2, s12, azi1, azi2)
		}
		ret[0], ret[1], ret[2] = GreatCircleDirect(radius, lat1, lon1, azi1, s12)
		dlon, _ := angDiff(ret[1], lon2)
		if !eqish(ret[0], lat2, 4) ||
			!eqish(dlon, 0, 4) ||
			!eqish(ret[2], azi2, 4) {
			t.Fatalf("direct failure (%f %f %f %f %f %f %f)",
				lat1, lon1, lat2, lon2, s12, azi1, azi2)
		}
	}
}

func TestEllipsoidArea(t *testing.T) {
	r := 6371007.181
	assert.InDelta(t, 4*math.Pi*r*r, New(r, 0).EllipsoidArea(), 1)
	// WGS84 total area, 510065621.7 km^2
	assert.InDelta(t, 5.100656217e14, WGS84.EllipsoidArea(), 1e5)
	assert.Equal(t, WGS84Ellipsoid, WGS84.Ellipsoid())
	assert.Equal(t, 6378137.0, WGS84.Radius())
}

func TestInverseIterationCap(t *testing.T) {
	saved := maxit2
	defer func() { maxit2 = saved }()

	// Cut off the solver before it converges; every output must still
	// describe the same trial geodesic.
	for _, limit := range []int{1, 2, 3} {
		maxit2 = limit
		r := WGS84.InverseWith(40.6, -73.8, 49.01666667, 2.55, All)
		d := WGS84.ArcDirect(40.6, -73.8, r.Azi1, r.A12, All)
		assert.InDelta(t, 49.01666667, d.Lat2, 1e-9, "limit %d", limit)
		assert.InDelta(t, r.Azi2, d.Azi2, 1e-9, "limit %d", limit)
		assert.InDelta(t, r.S12, d.S12, 1e-6, "limit %d", limit)
		assert.InDelta(t, r.ReducedLength, d.ReducedLength, 1e-6, "limit %d", limit)
	}

	maxit2 = saved
	r := WGS84.InverseWith(40.6, -73.8, 49.01666667, 2.55, Standard)
	assert.InDelta(t, 53.47022, r.Azi1, 0.5e-5)
}
