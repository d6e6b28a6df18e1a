// Package geo projects bus records into map view models and computes
// viewport regions framing the user and their destination.
package geo

import (
	"fmt"
	"math"

	"github.com/krisgarg25/safar/internal/bus"
)

// Coord is a WGS84 point.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is the map-displayable projection of one bus record. The full
// record is carried through for downstream card rendering.
type Marker struct {
	bus.BusRecord
	Title string `json:"title"`
}

// Project builds one marker per record. Absent user coordinates mean the
// device location is not known yet, so nothing is projected.
func Project(records []bus.BusRecord, userLat, userLon *float64) []Marker {
	if userLat == nil || userLon == nil {
		return nil
	}
	out := make([]Marker, 0, len(records))
	for _, r := range records {
		out = append(out, Marker{
			BusRecord: r,
			Title:     fmt.Sprintf("%s (%s)", r.RouteName, r.BusNumber),
		})
	}
	return out
}

// Region is a map viewport: a center and the spans it covers.
type Region struct {
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	LatSpan   float64 `json:"latSpan"`
	LonSpan   float64 `json:"lonSpan"`
}

const (
	// regionPadding widens the destination bounding box so both endpoints
	// sit comfortably inside the viewport.
	regionPadding = 1.3
	// minSpanDeg is the floor on either span; a zero span is an invalid
	// viewport.
	minSpanDeg = 0.01
)

// ComputeRegion frames the user coordinate, or the user plus destination
// when one is set. defaultSpan applies when there is no destination and is
// itself floored at minSpanDeg.
func ComputeRegion(user Coord, dest *Coord, defaultSpan float64) Region {
	if dest == nil {
		span := math.Max(defaultSpan, minSpanDeg)
		return Region{CenterLat: user.Lat, CenterLon: user.Lon, LatSpan: span, LonSpan: span}
	}
	latSpan := math.Abs(user.Lat-dest.Lat) * regionPadding
	lonSpan := math.Abs(user.Lon-dest.Lon) * regionPadding
	return Region{
		CenterLat: (user.Lat + dest.Lat) / 2,
		CenterLon: (user.Lon + dest.Lon) / 2,
		LatSpan:   math.Max(latSpan, minSpanDeg),
		LonSpan:   math.Max(lonSpan, minSpanDeg),
	}
}

// Haversine returns the great-circle distance in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
