// Package solve reads geodesic problems one per line and writes their
// solutions, in the manner of GeographicLib's GeodSolve.
package solve

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/geoarc/geodesic"
)

var (
	// ErrFieldCount is returned for a line with the wrong number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrLatitude is returned for a latitude outside [-90, 90].
	ErrLatitude = errors.New("latitude not in [-90, 90]")
	// ErrHemisphere is returned for a hemisphere letter that does not fit
	// the field, such as E on a latitude.
	ErrHemisphere = errors.New("bad hemisphere designator")
)

// InputError describes a field that could not be used.
type InputError struct {
	Line  int    // 1-based input line; 0 for the line setting
	Field string // lat1, lon1, azi1, s12, ...
	Err   error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Options select the problem and the output format.
type Options struct {
	Inverse   bool
	Arc       bool
	Unroll    bool
	Full      bool
	Spherical bool
	// Precision p prints angles with p+5 decimals, lengths with p and
	// geodesic scales with p+7.
	Precision int
	// Line is "lat1 lon1 azi1". When set each input line is a single
	// distance (or arc length) along that geodesic.
	Line string
}

// Solver solves the problems of one run.
type Solver struct {
	g      *geodesic.Geodesic
	opts   Options
	mask   geodesic.Mask
	logger *slog.Logger

	hasLine          bool
	line             geodesic.GeodesicLine
	lat1, lon1, azi1 float64
}

// New returns a solver on g. An unusable opts.Line gives an *InputError.
func New(g *geodesic.Geodesic, opts Options, logger *slog.Logger) (*Solver, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Solver{g: g, opts: opts, logger: logger}
	s.mask = geodesic.Standard
	if opts.Full {
		s.mask = geodesic.All
	}
	if opts.Unroll {
		s.mask |= geodesic.LongUnroll
	}
	if opts.Line != "" {
		v, err := parseFields(strings.Fields(opts.Line), lineFields)
		if err != nil {
			return nil, err
		}
		s.hasLine = true
		s.lat1, s.lon1, s.azi1 = v[0], v[1], v[2]
		s.line = g.Line(s.lat1, s.lon1, s.azi1, geodesic.All)
	}
	logger.Debug("solver ready",
		"ellipsoid", g.Ellipsoid().String(),
		"inverse", opts.Inverse,
		"arc", opts.Arc,
		"line", s.hasLine,
		"spherical", opts.Spherical)
	return s, nil
}

type field struct {
	name string
	kind angleKind
}

type angleKind int

const (
	plain angleKind = iota
	latitude
	longitude
)

var (
	lineFields    = []field{{"lat1", latitude}, {"lon1", longitude}, {"azi1", plain}}
	directFields  = []field{{"lat1", latitude}, {"lon1", longitude}, {"azi1", plain}, {"s12", plain}}
	arcFields     = []field{{"lat1", latitude}, {"lon1", longitude}, {"azi1", plain}, {"a12", plain}}
	inverseFields = []field{{"lat1", latitude}, {"lon1", longitude}, {"lat2", latitude}, {"lon2", longitude}}
)

func (s *Solver) fields() []field {
	switch {
	case s.opts.Inverse:
		return inverseFields
	case s.hasLine && s.opts.Arc:
		return arcFields[3:]
	case s.hasLine:
		return directFields[3:]
	case s.opts.Arc:
		return arcFields
	default:
		return directFields
	}
}

// Solve solves the problem on one input line and returns the formatted
// output without a trailing newline.
func (s *Solver) Solve(text string) (string, error) {
	v, err := parseFields(strings.Fields(text), s.fields())
	if err != nil {
		return "", err
	}
	var r geodesic.Result
	switch {
	case s.opts.Inverse:
		r = s.inverse(v[0], v[1], v[2], v[3])
	case s.hasLine:
		r = s.direct(s.lat1, s.lon1, s.azi1, v[0])
	default:
		r = s.direct(v[0], v[1], v[2], v[3])
	}
	return s.format(r), nil
}

func (s *Solver) direct(lat1, lon1, azi1, s12a12 float64) geodesic.Result {
	if s.opts.Spherical {
		return s.greatCircleDirect(lat1, lon1, azi1, s12a12)
	}
	if s.hasLine {
		return s.line.GenPosition(s.opts.Arc, s12a12, s.mask)
	}
	return s.g.GenDirect(lat1, lon1, azi1, s.opts.Arc, s12a12, s.mask)
}

func (s *Solver) inverse(lat1, lon1, lat2, lon2 float64) geodesic.Result {
	if s.opts.Spherical {
		r := sphericalResult(lat1, lon1)
		r.Lat2, r.Lon2 = lat2, lon2
		r.S12, r.Azi1, r.Azi2 = geodesic.GreatCircleInverse(s.g.Radius(), lat1, lon1, lat2, lon2)
		r.A12 = r.S12 / s.g.Radius() * 180 / math.Pi
		return r
	}
	return s.g.InverseWith(lat1, lon1, lat2, lon2, s.mask)
}

func (s *Solver) greatCircleDirect(lat1, lon1, azi1, s12a12 float64) geodesic.Result {
	radius := s.g.Radius()
	r := sphericalResult(lat1, lon1)
	r.Azi1 = azi1
	if s.opts.Arc {
		r.A12 = s12a12
		r.S12 = s12a12 * math.Pi / 180 * radius
	} else {
		r.S12 = s12a12
		r.A12 = s12a12 / radius * 180 / math.Pi
	}
	r.Lat2, r.Lon2, r.Azi2 = geodesic.GreatCircleDirect(radius, lat1, lon1, azi1, r.S12)
	return r
}

// sphericalResult has NaN for the quantities the great circle formulas do
// not give.
func sphericalResult(lat1, lon1 float64) geodesic.Result {
	nan := math.NaN()
	return geodesic.Result{
		Lat1: lat1, Lon1: lon1,
		ReducedLength:   nan,
		GeodesicScale12: nan, GeodesicScale21: nan,
		Area: nan,
	}
}

func (s *Solver) format(r geodesic.Result) string {
	p := s.opts.Precision
	angle := func(x float64) string { return formatFloat(x, p+5) }
	length := func(x float64) string { return formatFloat(x, p) }
	scale := func(x float64) string { return formatFloat(x, p+7) }

	var cols []string
	switch {
	case s.opts.Full:
		cols = []string{
			angle(r.Lat1), angle(r.Lon1), angle(r.Azi1),
			angle(r.Lat2), angle(r.Lon2), angle(r.Azi2),
			length(r.S12), angle(r.A12), length(r.ReducedLength),
			scale(r.GeodesicScale12), scale(r.GeodesicScale21), length(r.Area),
		}
	case s.opts.Inverse:
		cols = []string{angle(r.Azi1), angle(r.Azi2), length(r.S12)}
	default:
		cols = []string{angle(r.Lat2), angle(r.Lon2), angle(r.Azi2)}
	}
	return strings.Join(cols, " ")
}

func formatFloat(x float64, prec int) string {
	if math.IsNaN(x) {
		return "nan"
	}
	// -0 prints as 0
	return strconv.FormatFloat(x+0, 'f', prec, 64)
}

func parseFields(parts []string, want []field) ([]float64, error) {
	if len(parts) != len(want) {
		return nil, &InputError{
			Field: strings.Join(names(want), " "),
			Err:   fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(parts), len(want)),
		}
	}
	v := make([]float64, len(want))
	for i, f := range want {
		x, err := parseAngle(parts[i], f.kind)
		if err != nil {
			return nil, &InputError{Field: f.name, Err: err}
		}
		if f.kind == latitude && math.Abs(x) > 90 {
			return nil, &InputError{Field: f.name, Err: fmt.Errorf("%w: %s", ErrLatitude, parts[i])}
		}
		v[i] = x
	}
	return v, nil
}

func names(fs []field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.name
	}
	return out
}

// parseAngle parses a decimal number with an optional trailing hemisphere
// letter: N or S for latitudes, E or W for longitudes.
func parseAngle(s string, kind angleKind) (float64, error) {
	sign := 1.0
	if n := len(s); n > 1 {
		switch h := strings.ToUpper(s[n-1:]); h {
		case "N", "S", "E", "W":
			if (kind == latitude) != (h == "N" || h == "S") || kind == plain {
				return 0, fmt.Errorf("%w: %s", ErrHemisphere, s)
			}
			if h == "S" || h == "W" {
				sign = -1
			}
			s = s[:n-1]
		}
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return sign * x, nil
}

// Run solves every line of r and writes one output line per input line.
// Blank lines and lines starting with # are skipped. A line that cannot be
// solved yields "ERROR: <reason>" and a warning in the log; the run goes on.
// Run returns the number of such lines and stops early only on I/O errors or
// when ctx is done.
func (s *Solver) Run(ctx context.Context, r io.Reader, w io.Writer) (failed int, err error) {
	sc := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out, serr := s.Solve(text)
		if serr != nil {
			var ierr *InputError
			if errors.As(serr, &ierr) {
				ierr.Line = lineNo
			}
			failed++
			s.logger.Warn("cannot solve input line", "line", lineNo, "error", serr)
			out = "ERROR: " + serr.Error()
		}
		if _, err := bw.WriteString(out + "\n"); err != nil {
			return failed, err
		}
		if err := bw.Flush(); err != nil {
			return failed, err
		}
	}
	if err := sc.Err(); err != nil {
		return failed, fmt.Errorf("read input: %w", err)
	}
	s.logger.Debug("input done", "lines", lineNo, "failed", failed)
	return failed, nil
}
