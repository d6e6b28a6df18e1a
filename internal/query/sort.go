package query

import (
	"sort"

	"github.com/krisgarg25/safar/internal/bus"
)

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortByETA       SortKey = "eta"
	SortByOccupancy SortKey = "occupancy"
	SortByBusType   SortKey = "busType"
	SortNone        SortKey = "none"
)

// Sort returns a copy of records ordered by the given key. The sort is
// stable, so records with equal keys keep their original relative order.
// Unknown keys (and SortNone) preserve the input order; unknown bus types
// sort after all known types.
func Sort(records []bus.BusRecord, key SortKey) []bus.BusRecord {
	out := make([]bus.BusRecord, len(records))
	copy(out, records)

	switch key {
	case SortByETA:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ETA < out[j].ETA })
	case SortByOccupancy:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Occupancy < out[j].Occupancy })
	case SortByBusType:
		sort.SliceStable(out, func(i, j int) bool {
			return bus.TypePrecedence(out[i].BusType) < bus.TypePrecedence(out[j].BusType)
		})
	}
	return out
}
