package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoarc/geodesic"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := Flags()
	require.NoError(t, fs.Parse(args))
	return Load(fs)
}

func TestDefaults(t *testing.T) {
	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "WGS84", c.Ellipsoid)
	assert.Equal(t, 3, c.Precision)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 100, c.Log.MaxSize)
	assert.False(t, c.Inverse)

	e, err := c.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Equal(t, geodesic.WGS84Ellipsoid, e)
}

func TestFlags(t *testing.T) {
	c, err := load(t, "-i", "-f", "-p", "6", "--ellipsoid", "GRS80", "--log-level", "debug")
	require.NoError(t, err)
	assert.True(t, c.Inverse)
	assert.True(t, c.Full)
	assert.Equal(t, 6, c.Precision)
	assert.Equal(t, "GRS80", c.Ellipsoid)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("GEODSOLVE_PRECISION", "7")
	t.Setenv("GEODSOLVE_LOG_LEVEL", "warn")
	t.Setenv("GEODSOLVE_UNROLL", "true")

	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Precision)
	assert.Equal(t, "warn", c.Log.Level)
	assert.True(t, c.Unroll)

	// flags win over the environment
	c, err = load(t, "-p", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Precision)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
a: 6400000
invf: -150
arc: true
precision: 9
log:
  level: error
  file: /tmp/geodsolve.log
`), 0o600))

	c, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.True(t, c.Arc)
	assert.Equal(t, 9, c.Precision)
	assert.Equal(t, "error", c.Log.Level)
	assert.Equal(t, "/tmp/geodsolve.log", c.Log.File)

	e, err := c.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Equal(t, 6400000.0, e.A())
	assert.Less(t, e.F(), 0.0)

	c, err = load(t, "--config", path, "-p", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Precision)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"precision too large", []string{"-p", "11"}},
		{"negative precision", []string{"-p", "-1"}},
		{"bad log level", []string{"--log-level", "chatty"}},
		{"negative radius", []string{"--radius", "-1"}},
		{"line with inverse", []string{"-i", "-L", "0 0 90"}},
		{"no ellipsoid", []string{"--ellipsoid", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}
}

func TestResolveEllipsoid(t *testing.T) {
	c := &Config{A: 6371000}
	e, err := c.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.F())
	assert.True(t, math.IsInf(e.InvF(), 1))

	c = &Config{Ellipsoid: "nowhere"}
	_, err = c.ResolveEllipsoid()
	assert.True(t, errors.Is(err, geodesic.ErrUnknownEllipsoid))
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	c, err := load(t, "-u", "-p", "5", "--ellipsoid", "Bessel1841")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "ellipsoid: Bessel1841")

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	back, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
