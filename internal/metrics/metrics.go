package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	RegistrySize prometheus.Gauge

	Ticks              prometheus.Counter
	StatusTransitions  prometheus.Counter
	ETADecrements      prometheus.Counter
	AlertsCreated      prometheus.Counter
	ValidationFailures prometheus.Counter
	SMSToggles         prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge

	TickDuration    prometheus.Histogram
	PublishDuration prometheus.Histogram

	TickInterval         prometheus.Gauge // seconds
	ArrivalProbability   prometheus.Gauge
	DecrementProbability prometheus.Gauge
}

func NewCollector(tickInterval time.Duration, arrivalProb, decrementProb float64) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busalert_registry_size",
			Help: "Number of bus records currently in the registry.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_ticks_total",
			Help: "Total simulation ticks executed.",
		}),
		StatusTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_status_transitions_total",
			Help: "Total arriving_shortly to at_stop transitions.",
		}),
		ETADecrements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_eta_decrements_total",
			Help: "Total one-minute ETA decrements.",
		}),
		AlertsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_alerts_created_total",
			Help: "Total alerts appended to the registry.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_validation_failures_total",
			Help: "Total alert creations rejected by validation.",
		}),
		SMSToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_sms_toggles_total",
			Help: "Total SMS notification preference changes.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busalert_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busalert_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busalert_tick_duration_seconds",
			Help:    "Duration of simulation tick computations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busalert_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		TickInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busalert_tick_interval_seconds",
			Help: "Configured simulation tick interval in seconds.",
		}),
		ArrivalProbability: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busalert_arrival_probability",
			Help: "Configured per-tick arrival transition probability.",
		}),
		DecrementProbability: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busalert_eta_decrement_probability",
			Help: "Configured per-tick ETA decrement probability.",
		}),
	}

	// Register
	reg.MustRegister(
		c.RegistrySize,
		c.Ticks, c.StatusTransitions, c.ETADecrements,
		c.AlertsCreated, c.ValidationFailures, c.SMSToggles,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.TickDuration, c.PublishDuration,
		c.TickInterval, c.ArrivalProbability, c.DecrementProbability,
	)

	// Set static gauges
	c.TickInterval.Set(tickInterval.Seconds())
	c.ArrivalProbability.Set(arrivalProb)
	c.DecrementProbability.Set(decrementProb)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
