package sim

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/krisgarg25/safar/internal/bus"
	mmetrics "github.com/krisgarg25/safar/internal/metrics"
	"github.com/krisgarg25/safar/internal/publisher"
	"github.com/krisgarg25/safar/internal/registry"
)

// Manager drives the registry's simulation with a fixed-interval ticker.
// The registry serializes the tick against user-initiated mutation, so the
// manager is the only scheduler a process needs. Publisher and metrics are
// optional collaborators.
type Manager struct {
	store    *registry.Store
	pub      *publisher.NATSPublisher
	interval time.Duration
	metrics  *mmetrics.Collector

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(store *registry.Store, pub *publisher.NATSPublisher, interval time.Duration, metrics *mmetrics.Collector) *Manager {
	return &Manager{
		store:    store,
		pub:      pub,
		interval: interval,
		metrics:  metrics,
	}
}

// Start launches the tick loop. Calling Start on a running manager is a no-op.
func (m *Manager) Start(parent context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel
	m.wg.Add(1)

	log.Printf("simulation started: %d buses, tick every %s", m.store.Len(), m.interval)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.tick(now)
			}
		}
	}()
}

func (m *Manager) tick(now time.Time) {
	tickStart := time.Now()
	changed := m.store.Tick()
	if m.metrics != nil {
		m.metrics.Ticks.Inc()
		m.metrics.TickDuration.Observe(time.Since(tickStart).Seconds())
		m.metrics.RegistrySize.Set(float64(m.store.Len()))
	}
	if m.pub == nil {
		return
	}
	for _, r := range changed {
		if err := m.pub.PublishUpdate(updateMessage(r, now)); err != nil {
			log.Printf("publish error for %s: %v", r.BusNumber, err)
		}
	}
}

// Stop cancels the tick loop and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	m.wg.Wait()
	log.Printf("simulation stopped")
}

func updateMessage(r bus.BusRecord, now time.Time) publisher.BusUpdateMessage {
	return publisher.BusUpdateMessage{
		BusNumber:       r.BusNumber,
		RouteName:       r.RouteName,
		Status:          r.Status,
		ETA:             r.ETA,
		Occupancy:       r.Occupancy,
		CurrentStop:     r.CurrentStop,
		Lat:             r.Latitude,
		Lon:             r.Longitude,
		SMSNotification: r.SMSNotification,
		Timestamp:       now,
	}
}
