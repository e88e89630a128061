// Package timezone holds the fixed catalog of display timezone labels and the
// IANA zones they render in. The catalog is compiled into the binary from
// catalog.yaml together with the tz database, so lookups never depend on the host.
package timezone

import (
	_ "embed"
	"fmt"
	"time"
	_ "time/tzdata" // embeds the IANA database so LoadLocation works in scratch images

	"gopkg.in/yaml.v3"
)

const (
	// Default is the label assigned to new profiles and used when an event omits one.
	Default = "Eastern Time (ET)"

	// Fallback is the zone used to render labels that are not in the catalog.
	Fallback = "UTC"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Zone pairs a display label with its IANA zone identifier.
type Zone struct {
	Label string `yaml:"label" json:"label"`
	ID    string `yaml:"zone" json:"zone"`
}

type catalog struct {
	zones     []Zone
	byLabel   map[string]string
	locations map[string]*time.Location
}

var entries = mustLoad(catalogYAML)

// mustLoad decodes the embedded catalog and resolves every zone once.
// The data is fixed at compile time, so any failure is a programming error.
func mustLoad(raw []byte) catalog {
	c, err := load(raw)
	if err != nil {
		panic("timezone: " + err.Error())
	}
	return c
}

func load(raw []byte) (catalog, error) {
	var zones []Zone
	if err := yaml.Unmarshal(raw, &zones); err != nil {
		return catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	c := catalog{
		zones:     zones,
		byLabel:   make(map[string]string, len(zones)),
		locations: make(map[string]*time.Location, len(zones)+1),
	}
	for _, z := range append(zones, Zone{ID: Fallback}) {
		if z.Label != "" {
			if _, dup := c.byLabel[z.Label]; dup {
				return catalog{}, fmt.Errorf("duplicate label %q", z.Label)
			}
			c.byLabel[z.Label] = z.ID
		}
		if _, ok := c.locations[z.ID]; ok {
			continue
		}
		loc, err := time.LoadLocation(z.ID)
		if err != nil {
			return catalog{}, fmt.Errorf("load zone %q: %w", z.ID, err)
		}
		c.locations[z.ID] = loc
	}
	return c, nil
}

// Zones returns the catalog in presentation order.
func Zones() []Zone {
	out := make([]Zone, len(entries.zones))
	copy(out, entries.zones)
	return out
}

// Labels returns every known label in presentation order.
func Labels() []string {
	out := make([]string, len(entries.zones))
	for i, z := range entries.zones {
		out[i] = z.Label
	}
	return out
}

// Lookup returns the zone identifier for label and whether the label is known.
func Lookup(label string) (string, bool) {
	id, ok := entries.byLabel[label]
	return id, ok
}

// Known reports whether label is part of the catalog.
func Known(label string) bool {
	_, ok := entries.byLabel[label]
	return ok
}

// ZoneID resolves label to a zone identifier, degrading to Fallback for
// unknown labels instead of failing.
func ZoneID(label string) string {
	if id, ok := entries.byLabel[label]; ok {
		return id
	}
	return Fallback
}

// Location resolves label to a *time.Location, degrading to Fallback.
func Location(label string) *time.Location {
	return entries.locations[ZoneID(label)]
}
