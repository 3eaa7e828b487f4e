// Package config loads the geodsolve settings from defaults, an optional
// YAML file, GEODSOLVE_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/geoarc/geodesic"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "GEODSOLVE"

// Config is the full geodsolve configuration.
type Config struct {
	// Ellipsoid names a catalog entry. It is ignored when A is set.
	Ellipsoid string `mapstructure:"ellipsoid" yaml:"ellipsoid" validate:"required_without=A"`
	// A and InvF give a custom ellipsoid; InvF = 0 means a sphere.
	A    float64 `mapstructure:"a"    yaml:"a,omitempty"    validate:"gte=0"`
	InvF float64 `mapstructure:"invf" yaml:"invf,omitempty"`

	Inverse   bool   `mapstructure:"inverse"   yaml:"inverse"`
	Arc       bool   `mapstructure:"arc"       yaml:"arc"`
	Unroll    bool   `mapstructure:"unroll"    yaml:"unroll"`
	Full      bool   `mapstructure:"full"      yaml:"full"`
	Precision int    `mapstructure:"precision" yaml:"precision" validate:"min=0,max=10"`
	Spherical bool   `mapstructure:"spherical" yaml:"spherical"`
	Line      string `mapstructure:"line"      yaml:"line,omitempty" validate:"excluded_with=Inverse"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig selects the log level and an optional rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"       yaml:"level"       validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"        yaml:"file,omitempty"`
	MaxSize    int    `mapstructure:"max_size"    yaml:"max_size"    validate:"gte=0"` // MB
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     yaml:"max_age"     validate:"gte=0"` // days
	Compress   bool   `mapstructure:"compress"    yaml:"compress"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"ellipsoid": "ellipsoid",
	"radius":    "a",
	"invf":      "invf",
	"inverse":   "inverse",
	"arc":       "arc",
	"unroll":    "unroll",
	"full":      "full",
	"precision": "precision",
	"spherical": "spherical",
	"line":      "line",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ellipsoid", "WGS84")
	v.SetDefault("a", 0.0)
	v.SetDefault("invf", 0.0)
	v.SetDefault("inverse", false)
	v.SetDefault("arc", false)
	v.SetDefault("unroll", false)
	v.SetDefault("full", false)
	v.SetDefault("precision", 3)
	v.SetDefault("spherical", false)
	v.SetDefault("line", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("geodsolve", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "YAML configuration file")
	fs.StringP("ellipsoid", "e", "WGS84", "named ellipsoid (see --list-ellipsoids)")
	fs.Float64("radius", 0, "equatorial radius in meters of a custom ellipsoid")
	fs.Float64("invf", 0, "inverse flattening of a custom ellipsoid, 0 for a sphere")
	fs.BoolP("inverse", "i", false, "solve the inverse problem: lat1 lon1 lat2 lon2")
	fs.BoolP("arc", "a", false, "interpret the distance of a direct problem as an arc length in degrees")
	fs.BoolP("unroll", "u", false, "unroll longitudes instead of reducing them to [-180, 180]")
	fs.BoolP("full", "f", false, "print every quantity of the solution")
	fs.IntP("precision", "p", 3, "output precision (0..10)")
	fs.Bool("spherical", false, "use great circle formulas on a sphere of radius a")
	fs.StringP("line", "L", "", `"lat1 lon1 azi1" of a geodesic line; input lines are then distances along it`)
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-file", "", "write JSON logs to this rotating file instead of stderr")
	fs.Bool("print-config", false, "print the effective configuration as YAML and exit")
	fs.Bool("list-ellipsoids", false, "list the named ellipsoids and exit")
	return fs
}

// Load builds the configuration. fs must come from Flags and be parsed;
// only flags that were set override the file and environment.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ResolveEllipsoid returns the custom ellipsoid when A is set and the named
// catalog entry otherwise.
func (c *Config) ResolveEllipsoid() (geodesic.Ellipsoid, error) {
	if c.A > 0 {
		invf := c.InvF
		if invf == 0 {
			invf = math.Inf(1)
		}
		return geodesic.NewEllipsoid(c.A, invf), nil
	}
	return geodesic.LookupEllipsoid(c.Ellipsoid)
}

// WriteYAML writes c in the format Load reads.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
