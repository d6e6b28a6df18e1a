// Package query provides the read-side operations over registry snapshots:
// stop-name autocomplete, exact route matching and result ordering. All
// functions are pure; inputs are never mutated.
package query

import (
	"sort"
	"strings"

	"github.com/krisgarg25/safar/internal/bus"
)

// Suggestions returns every distinct start and end location across the
// records, sorted for stable display. An empty record set yields an empty
// result.
func Suggestions(records []bus.BusRecord) []string {
	seen := make(map[string]struct{}, len(records)*2)
	var out []string
	for _, r := range records {
		for _, loc := range [2]string{r.StartLocation, r.EndLocation} {
			if loc == "" {
				continue
			}
			if _, ok := seen[loc]; ok {
				continue
			}
			seen[loc] = struct{}{}
			out = append(out, loc)
		}
	}
	sort.Strings(out)
	return out
}

// FilterSuggestions returns the candidates containing q, case-insensitive.
// A blank query matches nothing so an empty field never shows the full list.
func FilterSuggestions(q string, candidates []string) []string {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

// Matching returns the records running exactly from start to destination,
// case-insensitive and trimmed. Partial names never match. Blank input
// yields an empty result rather than an error.
func Matching(records []bus.BusRecord, start, destination string) []bus.BusRecord {
	start = strings.ToLower(strings.TrimSpace(start))
	destination = strings.ToLower(strings.TrimSpace(destination))
	if start == "" || destination == "" {
		return nil
	}
	var out []bus.BusRecord
	for _, r := range records {
		if strings.ToLower(r.StartLocation) == start && strings.ToLower(r.EndLocation) == destination {
			out = append(out, r)
		}
	}
	return out
}
