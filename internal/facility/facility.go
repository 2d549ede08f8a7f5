// Package facility assigns the service center that handles a move.
package facility

import "strings"

// fallbackRegion is used when a ZIP's leading character has no regional hub.
const fallbackRegion = "0"

// Facility is a service center.
type Facility struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Phone string `json:"phone"`
}

// Directory resolves ZIP codes to facilities. The zero value is not usable;
// call NewDirectory.
type Directory struct {
	metro    map[string]Facility
	regional map[string]Facility
}

// NewDirectory returns the directory backed by the built-in facility tables.
func NewDirectory() *Directory {
	return &Directory{metro: metroFacilities, regional: regionalFacilities}
}

// Lookup returns the facility for zip. An exact 3-digit prefix match wins,
// then the regional hub for the leading digit, then region "0".
func (d *Directory) Lookup(zip string) Facility {
	zip = strings.TrimSpace(zip)
	if len(zip) >= 3 {
		if f, ok := d.metro[zip[:3]]; ok {
			return f
		}
	}
	if zip != "" {
		if f, ok := d.regional[zip[:1]]; ok {
			return f
		}
	}
	return d.regional[fallbackRegion]
}
