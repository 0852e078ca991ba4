package recsplit

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// options defines the configuration of a Registry.
type options struct {
	logger     log.Logger            // Receives the one-time missing size declaration warnings
	registerer prometheus.Registerer // Where split metrics are registered; nil leaves them unregistered
	metrics    *Metrics              // Shared metrics, takes precedence over registerer
}

// Option is a function that configures a Registry.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers the registry's metrics with the given registerer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// WithMetrics makes several registries report into the same collectors.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		logger:     log.NewNopLogger(),
		registerer: nil,
	}
}
