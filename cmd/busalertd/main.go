package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/krisgarg25/safar/internal/config"
	"github.com/krisgarg25/safar/internal/geo"
	"github.com/krisgarg25/safar/internal/metrics"
	"github.com/krisgarg25/safar/internal/publisher"
	"github.com/krisgarg25/safar/internal/query"
	"github.com/krisgarg25/safar/internal/registry"
	"github.com/krisgarg25/safar/internal/route"
	"github.com/krisgarg25/safar/internal/sim"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Metrics setup
	var mcol *metrics.Collector
	var metricsSrvCancel context.CancelFunc
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(cfg.TickInterval, cfg.ArrivalProbability, cfg.ETADecrementProbability)
		mctx, mcancel := context.WithCancel(ctx)
		metricsSrvCancel = mcancel
		srv := mcol.Serve(cfg.MetricsAddr)
		go func() {
			<-mctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Seed the registry
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	store := registry.New(registry.Seed(),
		registry.WithRand(rand.New(rand.NewSource(seed))),
		registry.WithProbabilities(registry.Probabilities{
			Arrival:      cfg.ArrivalProbability,
			ETADecrement: cfg.ETADecrementProbability,
		}),
		registry.WithMetrics(wrapRegistryMetrics(mcol)),
	)
	if mcol != nil {
		mcol.RegistrySize.Set(float64(store.Len()))
	}
	log.Printf("registry seeded: %d buses across %d stops", store.Len(), len(query.Suggestions(store.GetAll())))

	// Log the viewport framing the demonstration route
	stops := route.DemoStops()
	first, last := stops[0], stops[len(stops)-1]
	region := geo.ComputeRegion(
		geo.Coord{Lat: first.Latitude, Lon: first.Longitude},
		&geo.Coord{Lat: last.Latitude, Lon: last.Longitude},
		cfg.DefaultSpanDeg,
	)
	log.Printf("demo route %s -> %s, viewport center (%.4f, %.4f) span (%.4f, %.4f)",
		first.Name, last.Name, region.CenterLat, region.CenterLon, region.LatSpan, region.LonSpan)

	// Initialize NATS publisher when a URL is configured
	var pub *publisher.NATSPublisher
	if cfg.NATSURL != "" {
		pub, err = publisher.NewNATSPublisher(cfg.NATSURL, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer pub.Close()
	}

	// Start the simulation manager
	mgr := sim.NewManager(store, pub, cfg.TickInterval, mcol)
	mgr.Start(ctx)

	// Block until context cancelled
	<-ctx.Done()
	mgr.Stop()
	if metricsSrvCancel != nil {
		metricsSrvCancel()
	}
	log.Println("shutdown complete")
}

// wrapRegistryMetrics adapts our Collector to the registry.Metrics interface.
func wrapRegistryMetrics(c *metrics.Collector) registry.Metrics {
	if c == nil {
		return nil
	}
	return &regMetrics{c: c}
}

type regMetrics struct{ c *metrics.Collector }

func (r *regMetrics) AlertCreatedInc()      { r.c.AlertsCreated.Inc() }
func (r *regMetrics) ValidationFailureInc() { r.c.ValidationFailures.Inc() }
func (r *regMetrics) SMSToggleInc()         { r.c.SMSToggles.Inc() }
func (r *regMetrics) TransitionInc()        { r.c.StatusTransitions.Inc() }
func (r *regMetrics) ETADecrementInc()      { r.c.ETADecrements.Inc() }

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.NATSPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.NATSPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
func (p *pubMetrics) NATSSetConnected(b bool) {
	if b {
		p.c.NATSConnected.Set(1)
	} else {
		p.c.NATSConnected.Set(0)
	}
}
