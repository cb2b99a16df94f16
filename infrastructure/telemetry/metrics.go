// Package telemetry provides OpenTelemetry metrics for automaton
// construction and recognition.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	recognitions        metric.Int64Counter
	transitionsAdded    metric.Int64Counter
	transitionsRejected metric.Int64Counter
	sessions            metric.Int64Counter

	// Histograms
	wordLength metric.Int64Histogram
	traceSteps metric.Int64Histogram

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/automata").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/automata",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a metrics provider on the global meter provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	meter := otel.GetMeterProvider().Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.recognitions, err = mp.meter.Int64Counter(
		"automata.recognitions",
		metric.WithDescription("Number of recognized or rejected words"),
		metric.WithUnit("{word}"),
	)
	if err != nil {
		return err
	}

	mp.transitionsAdded, err = mp.meter.Int64Counter(
		"automata.transitions.added",
		metric.WithDescription("Number of accepted transition insertions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	mp.transitionsRejected, err = mp.meter.Int64Counter(
		"automata.transitions.rejected",
		metric.WithDescription("Number of rejected transition insertions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	mp.sessions, err = mp.meter.Int64Counter(
		"automata.sessions",
		metric.WithDescription("Number of finished builder sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	mp.wordLength, err = mp.meter.Int64Histogram(
		"automata.word.length",
		metric.WithDescription("Length of recognized words"),
		metric.WithUnit("{symbol}"),
	)
	if err != nil {
		return err
	}

	mp.traceSteps, err = mp.meter.Int64Histogram(
		"automata.trace.steps",
		metric.WithDescription("Number of edges reported by traced recognitions"),
		metric.WithUnit("{edge}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordRecognition records one recognition.
func (mp *MetricsProvider) RecordRecognition(ctx context.Context, kind string, wordLen int, accepted bool) {
	attrs := metric.WithAttributes(
		attribute.String("automaton.kind", kind),
		attribute.Bool("accepted", accepted),
	)

	mp.recognitions.Add(ctx, 1, attrs)
	mp.wordLength.Record(ctx, int64(wordLen), attrs)
}

// RecordTrace records the size of a recognition trace.
func (mp *MetricsProvider) RecordTrace(ctx context.Context, kind string, steps int) {
	mp.traceSteps.Record(ctx, int64(steps), metric.WithAttributes(
		attribute.String("automaton.kind", kind),
	))
}

// RecordTransition records a transition insertion attempt.
func (mp *MetricsProvider) RecordTransition(ctx context.Context, kind string, ok bool) {
	attrs := metric.WithAttributes(attribute.String("automaton.kind", kind))
	if ok {
		mp.transitionsAdded.Add(ctx, 1, attrs)
		return
	}
	mp.transitionsRejected.Add(ctx, 1, attrs)
}

// RecordSession records the outcome of a builder session.
func (mp *MetricsProvider) RecordSession(ctx context.Context, kind string, outcome string) {
	mp.sessions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("automaton.kind", kind),
		attribute.String("outcome", outcome),
	))
}

// NoopMetricsProvider is a no-op metrics provider for when metrics are disabled.
type NoopMetricsProvider struct{}

// RecordRecognition is a no-op.
func (NoopMetricsProvider) RecordRecognition(context.Context, string, int, bool) {}

// RecordTrace is a no-op.
func (NoopMetricsProvider) RecordTrace(context.Context, string, int) {}

// RecordTransition is a no-op.
func (NoopMetricsProvider) RecordTransition(context.Context, string, bool) {}

// RecordSession is a no-op.
func (NoopMetricsProvider) RecordSession(context.Context, string, string) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordRecognition(ctx context.Context, kind string, wordLen int, accepted bool)
	RecordTrace(ctx context.Context, kind string, steps int)
	RecordTransition(ctx context.Context, kind string, ok bool)
	RecordSession(ctx context.Context, kind string, outcome string)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = NoopMetricsProvider{}
)
