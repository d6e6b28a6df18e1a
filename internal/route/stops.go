// Package route holds the fixed demonstration route drawn by the tracking
// view and progress queries over it.
package route

import (
	"errors"

	"github.com/krisgarg25/safar/internal/geo"
)

var ErrNoStops = errors.New("no route stops")

// Stop is one waypoint on the demonstration route.
type Stop struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Completed bool    `json:"completed"`
}

// DemoStops returns the Rajpura to Chandigarh demonstration route with the
// first three stops already passed.
func DemoStops() []Stop {
	return []Stop{
		{Name: "Rajpura Bus Stand", Latitude: 30.4821, Longitude: 76.3911, Completed: true},
		{Name: "Sirhind", Latitude: 30.6434, Longitude: 76.3819, Completed: true},
		{Name: "Morinda", Latitude: 30.7904, Longitude: 76.4985, Completed: true},
		{Name: "Kurali", Latitude: 30.8764, Longitude: 76.7300, Completed: false},
		{Name: "Kharar", Latitude: 30.7445, Longitude: 76.6477, Completed: false},
		{Name: "Mohali", Latitude: 30.7046, Longitude: 76.7179, Completed: false},
		{Name: "Chandigarh Bus Stand", Latitude: 30.7333, Longitude: 76.7794, Completed: false},
	}
}

// Progress reports how many stops have been passed.
func Progress(stops []Stop) (completed, total int) {
	for _, s := range stops {
		if s.Completed {
			completed++
		}
	}
	return completed, len(stops)
}

// Completed returns the passed stops, preserving route order, for drawing
// the progress polyline.
func Completed(stops []Stop) []Stop {
	var out []Stop
	for _, s := range stops {
		if s.Completed {
			out = append(out, s)
		}
	}
	return out
}

// Upcoming returns the stops not yet passed, preserving route order.
func Upcoming(stops []Stop) []Stop {
	var out []Stop
	for _, s := range stops {
		if !s.Completed {
			out = append(out, s)
		}
	}
	return out
}

// Nearest returns the stop geographically closest to the given position.
func Nearest(stops []Stop, lat, lon float64) (Stop, error) {
	if len(stops) == 0 {
		return Stop{}, ErrNoStops
	}
	best := stops[0]
	bestDist := geo.Haversine(lat, lon, best.Latitude, best.Longitude)
	for _, s := range stops[1:] {
		if d := geo.Haversine(lat, lon, s.Latitude, s.Longitude); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, nil
}
