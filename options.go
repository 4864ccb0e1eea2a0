package relalign

import (
	"log/slog"
	"runtime"
	"time"
)

const (
	// DefaultCutoff is the partial-match cutoff used by the shared task.
	DefaultCutoff = 0.7

	// DefaultTimeout bounds one Align call.
	DefaultTimeout = 120 * time.Second
)

// Option configures an Aligner.
type Option func(*config)

type config struct {
	cutoff  float64
	timeout time.Duration
	workers int
	logger  *slog.Logger
}

func defaultConfig() config {
	return config{
		cutoff:  DefaultCutoff,
		timeout: DefaultTimeout,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
}

// WithCutoff sets the partial-match cutoff (default: 0.7).
func WithCutoff(c float64) Option {
	return func(cfg *config) {
		cfg.cutoff = c
	}
}

// WithTimeout sets the wall-clock deadline of one Align call
// (default: 120s). Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.timeout = d
		}
	}
}

// WithWorkers sets how many document searches run at once
// (default: runtime.GOMAXPROCS(0)).
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
