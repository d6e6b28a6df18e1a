package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TickInterval            time.Duration
	ArrivalProbability      float64
	ETADecrementProbability float64
	NATSURL                 string
	LogNATSSubjects         bool
	MetricsAddr             string
	DefaultSpanDeg          float64
	RandomSeed              int64
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Simulation tick interval
	if v := os.Getenv("TICK_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid TICK_INTERVAL_MS: %q", v)
		}
		cfg.TickInterval = time.Duration(ms) * time.Millisecond
	} else {
		cfg.TickInterval = 15 * time.Second
	}

	var err error
	cfg.ArrivalProbability, err = parseProbability("ARRIVAL_PROBABILITY", 0.1)
	if err != nil {
		return nil, err
	}
	cfg.ETADecrementProbability, err = parseProbability("ETA_DECREMENT_PROBABILITY", 0.3)
	if err != nil {
		return nil, err
	}

	// NATS broadcast is optional; empty URL disables it and the data layer
	// stays purely in-process.
	cfg.NATSURL = os.Getenv("NATS_URL")

	// Debug logging for NATS publish subjects
	if v := os.Getenv("LOG_NATS_SUBJECTS"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			cfg.LogNATSSubjects = true
		default:
			cfg.LogNATSSubjects = false
		}
	}

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	// Default map viewport span in degrees
	if v := os.Getenv("DEFAULT_SPAN_DEG"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid DEFAULT_SPAN_DEG: %q", v)
		}
		cfg.DefaultSpanDeg = f
	} else {
		cfg.DefaultSpanDeg = 0.01
	}

	// Simulation seed; 0 means time-seeded
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED: %q", v)
		}
		cfg.RandomSeed = n
	}

	return cfg, nil
}

func parseProbability(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
