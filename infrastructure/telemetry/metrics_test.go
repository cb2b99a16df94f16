package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupTestMetrics sets up a test meter provider and returns it along with a reader.
func setupTestMetrics(t *testing.T) (*metric.ManualReader, *MetricsProvider) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	mp := NewMetricsProvider(DefaultMetricsConfig())
	if mp.Error() != nil {
		t.Fatalf("failed to create metrics provider: %v", mp.Error())
	}

	return reader, mp
}

// sumOf returns the total of an int64 sum metric.
func sumOf(t *testing.T, reader *metric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected Sum[int64] for %s, got %T", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestNewMetricsProvider(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	if mp == nil {
		t.Fatal("NewMetricsProvider returned nil")
	}
}

func TestNewMetricsProvider_EmptyConfig(t *testing.T) {
	mp := NewMetricsProvider(MetricsConfig{})
	if mp.Error() != nil {
		t.Errorf("unexpected error: %v", mp.Error())
	}
}

func TestMetricsProvider_RecordRecognition(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordRecognition(ctx, "nfa", 3, true)
	mp.RecordRecognition(ctx, "dfa", 0, false)
	mp.RecordTrace(ctx, "nfa", 5)

	if got := sumOf(t, reader, "automata.recognitions"); got != 2 {
		t.Errorf("automata.recognitions = %d, want 2", got)
	}
}

func TestMetricsProvider_RecordTransition(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordTransition(ctx, "dfa", true)
	mp.RecordTransition(ctx, "dfa", true)
	mp.RecordTransition(ctx, "dfa", false)
	mp.RecordSession(ctx, "dfa", "committed")

	if got := sumOf(t, reader, "automata.transitions.added"); got != 2 {
		t.Errorf("automata.transitions.added = %d, want 2", got)
	}
	if got := sumOf(t, reader, "automata.transitions.rejected"); got != 1 {
		t.Errorf("automata.transitions.rejected = %d, want 1", got)
	}
	if got := sumOf(t, reader, "automata.sessions"); got != 1 {
		t.Errorf("automata.sessions = %d, want 1", got)
	}
}

func TestNoopMetricsProvider(t *testing.T) {
	var m Metrics = NoopMetricsProvider{}
	ctx := context.Background()

	m.RecordRecognition(ctx, "nfa", 1, true)
	m.RecordTrace(ctx, "nfa", 1)
	m.RecordTransition(ctx, "nfa", false)
	m.RecordSession(ctx, "nfa", "cancelled")
}
