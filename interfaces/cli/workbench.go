package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/automata/application"
	domainconfig "github.com/felixgeelhaar/automata/domain/config"
	"github.com/felixgeelhaar/automata/infrastructure/config"
	"github.com/felixgeelhaar/automata/infrastructure/logging"
	"github.com/felixgeelhaar/automata/infrastructure/observability"
	"github.com/felixgeelhaar/automata/infrastructure/telemetry"
)

// loadDefinition loads, validates and builds a definition document.
func loadDefinition(path string, strict bool) (*domainconfig.Document, *config.BuildResult, error) {
	loader := config.NewLoaderWithOptions(
		config.WithValidation(true),
		config.WithStrictEnv(strict),
	)
	doc, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	result, err := config.NewBuilder(doc).Build()
	if err != nil {
		return nil, nil, err
	}
	return doc, result, nil
}

// session is a workbench wired to the telemetry declared by a document.
type session struct {
	wb       *application.Workbench
	provider *observability.Provider
	doc      *domainconfig.Document
}

// openSession creates a workbench for doc and registers its contents. A
// nil doc yields an empty workbench without tracing.
func (a *App) openSession(doc *domainconfig.Document, result *config.BuildResult) (*session, error) {
	if doc == nil {
		doc = domainconfig.DefaultDocument()
	}

	opts := append([]observability.Option{
		observability.WithServiceVersion(Version),
	}, observability.FromTelemetry(doc.Telemetry)...)
	provider, err := observability.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	var metrics telemetry.Metrics = telemetry.NoopMetricsProvider{}
	if mp := telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig()); mp.Error() == nil {
		metrics = mp
	} else {
		logging.Warn().
			Add(logging.Component("telemetry")).
			Add(logging.ErrorField(mp.Error())).
			Msg("metrics disabled")
	}

	wb := application.NewWorkbench(
		application.WithMetrics(metrics),
		application.WithTracer(provider.Tracer()),
	)

	if result != nil {
		if err := result.Register(wb.Store(), false); err != nil {
			return nil, errors.Join(err, provider.Shutdown(context.Background()))
		}
	}

	return &session{wb: wb, provider: provider, doc: doc}, nil
}

// close flushes pending spans.
func (s *session) close(ctx context.Context) error {
	return s.provider.Shutdown(ctx)
}
