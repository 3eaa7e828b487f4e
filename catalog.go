package geodesic

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEllipsoid is returned by LookupEllipsoid for names that are not
// in the catalog.
var ErrUnknownEllipsoid = errors.New("geodesic: unknown ellipsoid")

//go:embed ellipsoids.yaml
var catalogData []byte

type catalogEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	A       float64  `yaml:"a"`
	InvF    float64  `yaml:"invf"`
}

func (c catalogEntry) ellipsoid() Ellipsoid {
	if c.InvF == 0 {
		return NewEllipsoid(c.A, math.Inf(1))
	}
	return NewEllipsoid(c.A, c.InvF)
}

var catalog struct {
	once    sync.Once
	entries []catalogEntry
	byName  map[string]int
}

func loadCatalog() {
	catalog.once.Do(func() {
		if err := yaml.Unmarshal(catalogData, &catalog.entries); err != nil {
			panic(fmt.Sprintf("geodesic: embedded ellipsoid catalog: %v", err))
		}
		catalog.byName = make(map[string]int)
		for i, c := range catalog.entries {
			catalog.byName[strings.ToLower(c.Name)] = i
			for _, alias := range c.Aliases {
				catalog.byName[strings.ToLower(alias)] = i
			}
		}
	})
}

// LookupEllipsoid returns the named reference ellipsoid. Names and aliases
// such as "WGS84", "grs80" or "EPSG:7030" are matched case-insensitively.
func LookupEllipsoid(name string) (Ellipsoid, error) {
	loadCatalog()
	i, ok := catalog.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Ellipsoid{}, fmt.Errorf("%w: %q", ErrUnknownEllipsoid, name)
	}
	return catalog.entries[i].ellipsoid(), nil
}

func mustLookupEllipsoid(name string) Ellipsoid {
	e, err := LookupEllipsoid(name)
	if err != nil {
		panic(err)
	}
	return e
}

// EllipsoidNames returns the primary names in the catalog, sorted.
func EllipsoidNames() []string {
	loadCatalog()
	names := make([]string, 0, len(catalog.entries))
	for _, c := range catalog.entries {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
