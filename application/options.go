package application

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/automata/domain/registry"
	"github.com/felixgeelhaar/automata/infrastructure/observability"
	"github.com/felixgeelhaar/automata/infrastructure/storage/memory"
	"github.com/felixgeelhaar/automata/infrastructure/telemetry"
)

// Config contains the collaborators of the workbench and its builders.
type Config struct {
	Store   registry.Store
	Metrics telemetry.Metrics
	Tracer  trace.Tracer
}

// Option configures the workbench.
type Option func(*Config)

// WithStore sets the registry holding named automata, words and languages.
func WithStore(s registry.Store) Option {
	return func(c *Config) {
		c.Store = s
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m telemetry.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer used for recognition spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

func newConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}

	// Set defaults
	if c.Store == nil {
		c.Store = memory.NewRegistry()
	}
	if c.Metrics == nil {
		c.Metrics = telemetry.NoopMetricsProvider{}
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(observability.TracerName)
	}
	return c
}
