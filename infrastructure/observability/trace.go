package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of recognition spans.
const TracerName = "github.com/felixgeelhaar/automata"

// Span attribute keys.
const (
	AttrAutomaton = attribute.Key("automaton.name")
	AttrKind      = attribute.Key("automaton.kind")
	AttrWordLen   = attribute.Key("word.length")
	AttrAccepted  = attribute.Key("recognition.accepted")
	AttrSteps     = attribute.Key("recognition.steps")
)

// StartRecognition starts the span covering one recognition.
func StartRecognition(ctx context.Context, tracer trace.Tracer, name, kind string, wordLen int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "automaton.recognize",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrAutomaton.String(name),
			AttrKind.String(kind),
			AttrWordLen.Int(wordLen),
		),
	)
}

// EndRecognition records the verdict and ends the span. steps is negative
// when no trace was collected.
func EndRecognition(span trace.Span, accepted bool, steps int) {
	span.SetAttributes(AttrAccepted.Bool(accepted))
	if steps >= 0 {
		span.SetAttributes(AttrSteps.Int(steps))
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

// RecordFailure marks span as failed with err.
func RecordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
