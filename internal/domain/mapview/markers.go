// Package mapview places approved artworks on the public map. Exact pins are
// only given for artworks whose location is not marked sensitive; sensitive
// ones get a wide circle labelled with their location notes.
package mapview

import (
	"strconv"
	"strings"

	"gallery-admin/internal/domain/works"
)

type Kind string

const (
	KindPin  Kind = "pin"
	KindArea Kind = "area"
)

// AreaRadiusMeters is the radius drawn around a sensitive location.
const AreaRadiusMeters = 50000

type Marker struct {
	ID    int     `json:"id"`
	Kind  Kind    `json:"kind"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`

	Type     string `json:"type,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	GeneralArea  string `json:"general_area,omitempty"`
	RadiusMeters int    `json:"radius_m,omitempty"`
}

// ParseLocation reads a "lat,lng" pair. Coordinates outside the valid
// latitude/longitude range are rejected.
func ParseLocation(s string) (lat, lng float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

// Markers builds one marker per approved artwork that has a usable location.
// A sensitive artwork without notes is left off the map entirely.
func Markers(all []works.Artwork) []Marker {
	out := make([]Marker, 0)
	for _, a := range all {
		if !a.IsApproved() || a.Location == "" {
			continue
		}
		lat, lng, ok := ParseLocation(a.Location)
		if !ok {
			continue
		}

		if !a.LocationSensitive {
			out = append(out, Marker{
				ID:       a.ID,
				Kind:     KindPin,
				Lat:      lat,
				Lng:      lng,
				Title:    a.Title,
				Type:     a.Type,
				ImageURL: a.ImageURL,
			})
			continue
		}

		if strings.TrimSpace(a.LocationNotes) == "" {
			continue
		}
		out = append(out, Marker{
			ID:           a.ID,
			Kind:         KindArea,
			Lat:          lat,
			Lng:          lng,
			Title:        a.Title,
			GeneralArea:  a.LocationNotes,
			RadiusMeters: AreaRadiusMeters,
		})
	}
	return out
}
