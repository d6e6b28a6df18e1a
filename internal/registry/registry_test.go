package registry

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/krisgarg25/safar/internal/bus"
)

func newTestStore(opts ...Option) *Store {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return New(Seed(), opts...)
}

func TestGetAllReturnsSnapshot(t *testing.T) {
	s := newTestStore()
	all := s.GetAll()
	if len(all) != 4 {
		t.Fatalf("expected 4 seed records, got %d", len(all))
	}

	// Mutating the snapshot must not leak into the store.
	all[0].Occupancy = 99
	if got, _ := s.GetByID("1"); got.Occupancy == 99 {
		t.Errorf("snapshot mutation leaked into the store")
	}
}

func TestGetByBusNumber(t *testing.T) {
	s := newTestStore()

	rec, err := s.GetByBusNumber("PB2614")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "2" {
		t.Errorf("expected id 2, got %s", rec.ID)
	}

	_, err = s.GetByBusNumber("ZZ0000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := newTestStore()
	rec := Seed()[0]
	if err := s.Add(rec); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("failed add must not grow the registry, got %d", s.Len())
	}
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	s := newTestStore()
	rec := Seed()[0]
	rec.ID = "10"
	rec.Occupancy = 150
	if err := s.Add(rec); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateMergesOnlySetFields(t *testing.T) {
	s := newTestStore()
	eta := 3
	status := bus.StatusAtStop
	if err := s.Update("2", Update{ETA: &eta, Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := s.GetByID("2")
	if rec.ETA != 3 || rec.Status != bus.StatusAtStop {
		t.Errorf("update not applied: eta=%d status=%s", rec.ETA, rec.Status)
	}
	if rec.Occupancy != 30 || rec.BusNumber != "PB2614" {
		t.Errorf("unset fields changed: %+v", rec)
	}

	if err := s.Update("99", Update{ETA: &eta}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore()
	if err := s.Remove("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 records after remove, got %d", s.Len())
	}
	if _, err := s.GetByID("3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed record still present")
	}
	if err := s.Remove("3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSetNotificationPreference(t *testing.T) {
	s := newTestStore()
	if err := s.SetNotificationPreference("2", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := s.GetByID("2")
	if !rec.SMSNotification {
		t.Errorf("preference not applied")
	}
	if err := s.SetNotificationPreference("99", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAlertValidation(t *testing.T) {
	valid := AlertInput{
		BusNumber: "HR26T1234",
		StartStop: "Karol Bagh",
		AlertStop: "Chandni Chowk",
		EndStop:   "Dwarka",
	}

	tests := []struct {
		name   string
		mutate func(*AlertInput)
	}{
		{"blank bus number", func(in *AlertInput) { in.BusNumber = "" }},
		{"blank start stop", func(in *AlertInput) { in.StartStop = "" }},
		{"blank alert stop", func(in *AlertInput) { in.AlertStop = "" }},
		{"blank end stop", func(in *AlertInput) { in.EndStop = "" }},
		{"whitespace-only bus number", func(in *AlertInput) { in.BusNumber = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			in := valid
			tt.mutate(&in)
			_, err := s.CreateAlert(in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if s.Len() != 4 {
				t.Errorf("failed create must not grow the registry, got %d", s.Len())
			}
		})
	}
}

func TestCreateAlertAppendsWithNextID(t *testing.T) {
	s := newTestStore()
	rec, err := s.CreateAlert(AlertInput{
		BusNumber:       "  HR26T1234 ",
		StartStop:       "Karol Bagh",
		AlertStop:       "Chandni Chowk",
		EndStop:         "Dwarka",
		SMSNotification: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "5" {
		t.Errorf("expected id 5 (max seed id + 1), got %s", rec.ID)
	}
	if s.Len() != 5 {
		t.Errorf("expected 5 records, got %d", s.Len())
	}
	if rec.BusNumber != "HR26T1234" {
		t.Errorf("bus number not trimmed: %q", rec.BusNumber)
	}
	if rec.RouteName != "Bus 34" {
		t.Errorf("expected route name from last two characters, got %q", rec.RouteName)
	}
	if rec.Occupancy < 20 || rec.Occupancy > 69 {
		t.Errorf("occupancy %d outside [20,69]", rec.Occupancy)
	}
	if rec.ETA < 1 || rec.ETA > 15 {
		t.Errorf("eta %d outside [1,15]", rec.ETA)
	}
	if rec.Status != bus.StatusOnTime && rec.Status != bus.StatusArrivingShortly {
		t.Errorf("unexpected status %s", rec.Status)
	}
	if rec.Latitude < alertBaseLat-alertMaxJitter || rec.Latitude > alertBaseLat+alertMaxJitter {
		t.Errorf("latitude %f outside jitter range", rec.Latitude)
	}
	if rec.Longitude < alertBaseLon-alertMaxJitter || rec.Longitude > alertBaseLon+alertMaxJitter {
		t.Errorf("longitude %f outside jitter range", rec.Longitude)
	}
	if !rec.SMSNotification {
		t.Errorf("sms preference not carried")
	}

	// A second create keeps advancing the counter.
	rec2, err := s.CreateAlert(AlertInput{
		BusNumber: "PB2616", StartStop: "Sirhind", AlertStop: "Kurali", EndStop: "Mohali",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec2.ID != "6" {
		t.Errorf("expected id 6, got %s", rec2.ID)
	}
}

func TestCreateAlertConcurrentIDsAreDistinct(t *testing.T) {
	s := newTestStore()
	const n = 20

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.CreateAlert(AlertInput{
				BusNumber: "PB0000", StartStop: "A", AlertStop: "B", EndStop: "C",
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids <- rec.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id assigned: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func TestTickTransitionBranch(t *testing.T) {
	s := newTestStore(WithProbabilities(Probabilities{Arrival: 1, ETADecrement: 1}))

	changed := s.Tick()

	// Seed: id 1 arriving_shortly, ids 2 and 4 on_time with eta > 0, id 3 at_stop.
	if len(changed) != 3 {
		t.Fatalf("expected 3 changed records, got %d", len(changed))
	}

	rec, _ := s.GetByID("1")
	if rec.Status != bus.StatusAtStop || rec.ETA != 0 {
		t.Errorf("arriving bus not transitioned: status=%s eta=%d", rec.Status, rec.ETA)
	}
	rec, _ = s.GetByID("2")
	if rec.ETA != 4 || rec.Status != bus.StatusOnTime {
		t.Errorf("on_time bus: expected eta 4 status unchanged, got eta=%d status=%s", rec.ETA, rec.Status)
	}
	rec, _ = s.GetByID("4")
	if rec.ETA != 7 {
		t.Errorf("on_time bus: expected eta 7, got %d", rec.ETA)
	}
	rec, _ = s.GetByID("3")
	if rec.Status != bus.StatusAtStop || rec.ETA != 0 {
		t.Errorf("at_stop bus must never be mutated: %+v", rec)
	}
}

func TestTickZeroProbabilityChangesNothing(t *testing.T) {
	s := newTestStore(WithProbabilities(Probabilities{Arrival: 0, ETADecrement: 0}))
	before := s.GetAll()

	if changed := s.Tick(); len(changed) != 0 {
		t.Fatalf("expected no changes, got %d", len(changed))
	}

	after := s.GetAll()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("record %s changed under zero probabilities", before[i].ID)
		}
	}
}

func TestTickETAFloor(t *testing.T) {
	s := newTestStore(WithProbabilities(Probabilities{Arrival: 0, ETADecrement: 1}))

	// Drain bus 2's ETA to zero; further ticks must not touch it.
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	rec, _ := s.GetByID("2")
	if rec.ETA != 0 {
		t.Fatalf("expected eta drained to 0, got %d", rec.ETA)
	}
	if changed := s.Tick(); len(changed) != 0 {
		t.Errorf("bus with zero eta must not keep changing")
	}
	rec, _ = s.GetByID("2")
	if rec.ETA != 0 || rec.Status != bus.StatusOnTime {
		t.Errorf("eta went below floor or status flipped: %+v", rec)
	}
}

func TestNonNumericSeedIDsIgnoredByCounter(t *testing.T) {
	seed := Seed()
	seed[0].ID = "bus-a"
	s := New(seed, WithRand(rand.New(rand.NewSource(1))))

	rec, err := s.CreateAlert(AlertInput{
		BusNumber: "PB0001", StartStop: "A", AlertStop: "B", EndStop: "C",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "5" {
		t.Errorf("expected counter from highest numeric id, got %s", rec.ID)
	}
}
