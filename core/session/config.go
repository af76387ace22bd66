package session

import (
	"io"
	"log/slog"
	"time"
)

type config struct {
	pollInterval time.Duration
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		pollInterval: 100 * time.Millisecond,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring the controller.
type Option func(*config)

// WithPollInterval sets how often Run polls the keypad and the clock. The
// default of 100ms keeps key handling responsive while the displayed code
// only changes on 30-second step boundaries.
func WithPollInterval(interval time.Duration) Option {
	return func(c *config) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithLogger sets the structured logger. Logging is off by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}
