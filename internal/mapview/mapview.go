// Package mapview turns a filtered park list into map markers and a viewport.
package mapview

import (
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
)

// Marker colours and radii for visited and unvisited parks.
const (
	VisitedColor    = "#2f5f4a"
	UnvisitedColor  = "#c7724e"
	VisitedRadius   = 8
	UnvisitedRadius = 6
)

// DefaultCenter and DefaultZoom frame the continental United States.
var DefaultCenter = LatLng{Lat: 39.2, Lng: -98.35}

const DefaultZoom = 3.0

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one circle on the map.
type Marker struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Visited bool    `json:"visited"`
	Color   string  `json:"color"`
	Radius  int     `json:"radius"`
}

// Viewport says how the client should frame the markers. When Fit is set the
// client fits Bounds; otherwise it shows Center at Zoom.
type Viewport struct {
	Fit    bool      `json:"fit"`
	Bounds [2]LatLng `json:"bounds"`
	Center LatLng    `json:"center"`
	Zoom   float64   `json:"zoom"`
}

// View is the payload for the map page.
type View struct {
	Markers  []Marker `json:"markers"`
	Viewport Viewport `json:"viewport"`
	Count    int      `json:"count"`
}

// Build creates markers for parks with coordinates. The viewport is fitted to
// the markers only when filtersActive is true and at least one marker exists.
func Build(parks []*passport.EnrichedPark, filtersActive bool) View {
	v := View{
		Markers:  make([]Marker, 0, len(parks)),
		Viewport: Viewport{Center: DefaultCenter, Zoom: DefaultZoom},
		Count:    len(parks),
	}

	for _, p := range parks {
		if !p.HasCoordinates() {
			continue
		}
		m := Marker{
			ID:      p.ID,
			Name:    p.Name,
			Type:    p.Type,
			Lat:     p.Lat,
			Lng:     p.Lng,
			Visited: p.Visited,
			Color:   UnvisitedColor,
			Radius:  UnvisitedRadius,
		}
		if p.Visited {
			m.Color = VisitedColor
			m.Radius = VisitedRadius
		}
		v.Markers = append(v.Markers, m)
	}

	if filtersActive && len(v.Markers) > 0 {
		v.Viewport.Fit = true
		v.Viewport.Bounds = bounds(v.Markers)
	}
	return v
}

// bounds returns the south-west and north-east corners enclosing markers.
func bounds(markers []Marker) [2]LatLng {
	sw := LatLng{Lat: markers[0].Lat, Lng: markers[0].Lng}
	ne := sw
	for _, m := range markers[1:] {
		sw.Lat = min(sw.Lat, m.Lat)
		sw.Lng = min(sw.Lng, m.Lng)
		ne.Lat = max(ne.Lat, m.Lat)
		ne.Lng = max(ne.Lng, m.Lng)
	}
	return [2]LatLng{sw, ne}
}
