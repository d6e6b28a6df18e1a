package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/krisgarg25/safar/internal/bus"
)

// New alerts are placed near central Delhi with a small positional jitter.
const (
	alertBaseLat   = 28.6139
	alertBaseLon   = 77.2090
	alertMaxJitter = 0.05 // degrees either side of the base
)

// AlertInput is the user-supplied portion of a new bus alert. All stop
// fields are required after trimming surrounding whitespace.
type AlertInput struct {
	BusNumber       string `validate:"required"`
	StartStop       string `validate:"required"`
	AlertStop       string `validate:"required"`
	EndStop         string `validate:"required"`
	SMSNotification bool
}

func (in AlertInput) trimmed() AlertInput {
	in.BusNumber = strings.TrimSpace(in.BusNumber)
	in.StartStop = strings.TrimSpace(in.StartStop)
	in.AlertStop = strings.TrimSpace(in.AlertStop)
	in.EndStop = strings.TrimSpace(in.EndStop)
	return in
}

// CreateAlert validates the input and appends a new record with a generated
// id and randomized occupancy, ETA, status and position. On validation
// failure the registry is left untouched.
func (s *Store) CreateAlert(in AlertInput) (bus.BusRecord, error) {
	in = in.trimmed()
	if err := s.validate.Struct(in); err != nil {
		if s.metrics != nil {
			s.metrics.ValidationFailureInc()
		}
		return bus.BusRecord{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	status := bus.StatusOnTime
	if s.rng.Float64() < 0.5 {
		status = bus.StatusArrivingShortly
	}
	rec := bus.BusRecord{
		ID:              strconv.FormatInt(s.nextID, 10),
		RouteName:       "Bus " + lastChars(in.BusNumber, 2),
		BusNumber:       in.BusNumber,
		Occupancy:       20 + s.rng.Intn(50),
		StartLocation:   in.StartStop,
		EndLocation:     in.EndStop,
		CurrentStop:     in.AlertStop,
		StartTime:       "16:30",
		EndTime:         "17:30",
		BusType:         bus.TypeExpress,
		Fare:            55,
		ETA:             1 + s.rng.Intn(15),
		Status:          status,
		Latitude:        alertBaseLat + (s.rng.Float64()-0.5)*2*alertMaxJitter,
		Longitude:       alertBaseLon + (s.rng.Float64()-0.5)*2*alertMaxJitter,
		SMSNotification: in.SMSNotification,
	}
	s.records = append(s.records, rec)
	if s.metrics != nil {
		s.metrics.AlertCreatedInc()
	}
	return rec, nil
}

// Tick advances the simulation one step. Buses arriving shortly may reach
// their stop; on-time buses with remaining ETA may lose a minute. Buses
// already at a stop are never touched. Returns copies of the records that
// changed.
func (s *Store) Tick() []bus.BusRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []bus.BusRecord
	for i := range s.records {
		r := &s.records[i]
		switch {
		case r.Status == bus.StatusArrivingShortly && s.rng.Float64() < s.probs.Arrival:
			r.Status = bus.StatusAtStop
			r.ETA = 0
			if s.metrics != nil {
				s.metrics.TransitionInc()
			}
			changed = append(changed, *r)
		case r.Status == bus.StatusOnTime && r.ETA > 0 && s.rng.Float64() < s.probs.ETADecrement:
			r.ETA--
			if s.metrics != nil {
				s.metrics.ETADecrementInc()
			}
			changed = append(changed, *r)
		}
	}
	return changed
}

func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
