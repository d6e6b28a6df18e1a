package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/krisgarg25/safar/internal/bus"
)

var (
	ErrNotFound    = errors.New("bus not found")
	ErrDuplicateID = errors.New("duplicate bus id")
	ErrValidation  = errors.New("validation failed")
)

// Probabilities controls the per-tick simulation branches.
type Probabilities struct {
	Arrival      float64 // chance an arriving_shortly bus reaches its stop
	ETADecrement float64 // chance an on_time bus loses a minute of ETA
}

// Metrics is an optional collaborator notified of registry events.
type Metrics interface {
	AlertCreatedInc()
	ValidationFailureInc()
	SMSToggleInc()
	TransitionInc()
	ETADecrementInc()
}

// Store is the process-wide bus registry. All reads and mutations are
// serialized through its lock, including the simulation tick, so id
// assignment and field updates never race.
type Store struct {
	mu      sync.RWMutex
	records []bus.BusRecord
	nextID  int64

	probs    Probabilities
	rng      *rand.Rand
	metrics  Metrics
	validate *validator.Validate
}

type Option func(*Store)

func WithProbabilities(p Probabilities) Option {
	return func(s *Store) { s.probs = p }
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

func WithMetrics(m Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New builds a registry from a seed set. The id counter starts at the
// highest numeric seed id; non-numeric ids are ignored for counting.
func New(seed []bus.BusRecord, opts ...Option) *Store {
	s := &Store{
		records:  make([]bus.BusRecord, len(seed)),
		probs:    Probabilities{Arrival: 0.1, ETADecrement: 0.3},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		validate: validator.New(),
	}
	copy(s.records, seed)
	for _, r := range s.records {
		if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n > s.nextID {
			s.nextID = n
		}
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetAll returns a value-copied snapshot in insertion order. Callers may
// not mutate registry state through the returned slice.
func (s *Store) GetAll() []bus.BusRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bus.BusRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// GetByBusNumber finds a record by its human-facing identifier.
func (s *Store) GetByBusNumber(busNumber string) (bus.BusRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.BusNumber == busNumber {
			return r, nil
		}
	}
	return bus.BusRecord{}, fmt.Errorf("bus number %q: %w", busNumber, ErrNotFound)
}

func (s *Store) GetByID(id string) (bus.BusRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], nil
	}
	return bus.BusRecord{}, fmt.Errorf("bus id %q: %w", id, ErrNotFound)
}

// Add appends a caller-constructed record. The record must carry a unique id.
func (s *Store) Add(rec bus.BusRecord) error {
	if err := s.validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(rec.ID) >= 0 {
		return fmt.Errorf("bus id %q: %w", rec.ID, ErrDuplicateID)
	}
	s.records = append(s.records, rec)
	if n, err := strconv.ParseInt(rec.ID, 10, 64); err == nil && n > s.nextID {
		s.nextID = n
	}
	return nil
}

// Update carries the fields a partial update may set. Nil fields are left
// unchanged on the target record.
type Update struct {
	Occupancy       *int
	CurrentStop     *string
	ETA             *int
	Status          *bus.Status
	Latitude        *float64
	Longitude       *float64
	SMSNotification *bool
}

// Update merges the set fields into the record with the given id.
func (s *Store) Update(id string, upd Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("bus id %q: %w", id, ErrNotFound)
	}
	r := &s.records[i]
	if upd.Occupancy != nil {
		r.Occupancy = *upd.Occupancy
	}
	if upd.CurrentStop != nil {
		r.CurrentStop = *upd.CurrentStop
	}
	if upd.ETA != nil {
		r.ETA = *upd.ETA
	}
	if upd.Status != nil {
		r.Status = *upd.Status
	}
	if upd.Latitude != nil {
		r.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		r.Longitude = *upd.Longitude
	}
	if upd.SMSNotification != nil {
		r.SMSNotification = *upd.SMSNotification
	}
	return nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("bus id %q: %w", id, ErrNotFound)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// SetNotificationPreference toggles SMS alerts for one record.
func (s *Store) SetNotificationPreference(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("bus id %q: %w", id, ErrNotFound)
	}
	s.records[i].SMSNotification = enabled
	if s.metrics != nil {
		s.metrics.SMSToggleInc()
	}
	return nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
