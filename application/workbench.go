// Package application provides the use cases of the automata workbench:
// staged construction, named registration and observed recognition.
package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/domain/language"
	"github.com/felixgeelhaar/automata/domain/registry"
	"github.com/felixgeelhaar/automata/infrastructure/logging"
	"github.com/felixgeelhaar/automata/infrastructure/observability"
	"github.com/felixgeelhaar/automata/infrastructure/telemetry"
)

// Workbench holds named automata, words and languages and runs
// recognitions against them.
type Workbench struct {
	store   registry.Store
	metrics telemetry.Metrics
	tracer  trace.Tracer
	config  Config
}

// NewWorkbench creates a workbench. Without options it uses an in-memory
// registry, no-op metrics and the global tracer.
func NewWorkbench(opts ...Option) *Workbench {
	cfg := newConfig(opts...)
	return &Workbench{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		tracer:  cfg.Tracer,
		config:  cfg,
	}
}

// Store returns the underlying registry.
func (w *Workbench) Store() registry.Store {
	return w.store
}

// Define builds an automaton with all its transitions and registers it.
// Nothing is registered when any transition is refused.
func (w *Workbench) Define(ctx context.Context, name string, kind automaton.Kind, def automaton.Definition, edges []automaton.Edge, replace bool) (*automaton.Automaton, error) {
	if err := registry.ValidateName(name); err != nil {
		return nil, err
	}

	a, err := automaton.New(kind, def)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := a.AddTransition(e.From, e.Symbol, e.To); err != nil {
			w.metrics.RecordTransition(ctx, string(kind), false)
			return nil, err
		}
		w.metrics.RecordTransition(ctx, string(kind), true)
	}

	if err := w.store.SaveAutomaton(name, a, replace); err != nil {
		return nil, err
	}

	logging.Info().
		Add(logging.AutomatonName(name)).
		Add(logging.Kind(kind)).
		Add(logging.Steps(a.Len())).
		Msg("automaton defined")
	return a, nil
}

// Begin opens a builder session whose Commit registers the automaton
// under name.
func (w *Workbench) Begin(name string, kind automaton.Kind, def automaton.Definition) (*Builder, error) {
	if err := registry.ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := w.store.Automaton(name); err == nil {
		return nil, fmt.Errorf("%w: %s", registry.ErrExists, name)
	}

	return newBuilder(kind, def, w.config, func(a *automaton.Automaton) error {
		return w.store.SaveAutomaton(name, a, false)
	})
}

// Register stores an existing automaton under name.
func (w *Workbench) Register(name string, a *automaton.Automaton, replace bool) error {
	if a == nil {
		return ErrNilAutomaton
	}
	return w.store.SaveAutomaton(name, a, replace)
}

// AddTransition inserts a transition into a registered automaton.
func (w *Workbench) AddTransition(ctx context.Context, name string, edge automaton.Edge) error {
	a, err := w.store.Automaton(name)
	if err != nil {
		return err
	}

	err = a.AddTransition(edge.From, edge.Symbol, edge.To)
	w.metrics.RecordTransition(ctx, string(a.Kind()), err == nil)
	if err != nil {
		logging.Debug().
			Add(logging.AutomatonName(name)).
			Add(logging.Edge(edge)).
			Add(logging.ErrorField(err)).
			Msg("transition refused")
		return err
	}
	return nil
}

// Get returns the automaton registered under name.
func (w *Workbench) Get(name string) (*automaton.Automaton, error) {
	return w.store.Automaton(name)
}

// Remove unregisters an automaton.
func (w *Workbench) Remove(name string) error {
	return w.store.DeleteAutomaton(name)
}

// List returns the registered automaton names in ascending order.
func (w *Workbench) List() []string {
	return w.store.AutomatonNames()
}

// Recognize decides whether the named automaton accepts word. The only
// error is an unknown name; rejection is a false verdict.
func (w *Workbench) Recognize(ctx context.Context, name string, word automaton.Word) (bool, error) {
	a, err := w.store.Automaton(name)
	if err != nil {
		return false, err
	}

	ctx, span := observability.StartRecognition(ctx, w.tracer, name, string(a.Kind()), word.Len())
	ok := a.Recognize(word)
	observability.EndRecognition(span, ok, -1)

	w.observe(ctx, name, a.Kind(), word, ok)
	return ok, nil
}

// Trace decides acceptance and returns the edges followed, in visit order.
func (w *Workbench) Trace(ctx context.Context, name string, word automaton.Word) (bool, []automaton.Edge, error) {
	a, err := w.store.Automaton(name)
	if err != nil {
		return false, nil, err
	}

	ctx, span := observability.StartRecognition(ctx, w.tracer, name, string(a.Kind()), word.Len())
	ok, edges := a.RecognizeWithTrace(word)
	observability.EndRecognition(span, ok, len(edges))

	w.metrics.RecordTrace(ctx, string(a.Kind()), len(edges))
	w.observe(ctx, name, a.Kind(), word, ok)
	return ok, edges, nil
}

func (w *Workbench) observe(ctx context.Context, name string, kind automaton.Kind, word automaton.Word, ok bool) {
	w.metrics.RecordRecognition(ctx, string(kind), word.Len(), ok)
	logging.Debug().
		Add(logging.AutomatonName(name)).
		Add(logging.Kind(kind)).
		Add(logging.Word(word)).
		Add(logging.Accepted(ok)).
		Msg("recognition")
}

// SaveWord registers a word.
func (w *Workbench) SaveWord(name string, word automaton.Word) error {
	return w.store.SaveWord(name, word)
}

// Word returns a registered word.
func (w *Workbench) Word(name string) (automaton.Word, error) {
	return w.store.Word(name)
}

// Words returns the registered word names.
func (w *Workbench) Words() []string {
	return w.store.WordNames()
}

// SaveLanguage registers a language.
func (w *Workbench) SaveLanguage(name string, l *language.Language) error {
	return w.store.SaveLanguage(name, l)
}

// Language returns a registered language.
func (w *Workbench) Language(name string) (*language.Language, error) {
	return w.store.Language(name)
}

// Languages returns the registered language names.
func (w *Workbench) Languages() []string {
	return w.store.LanguageNames()
}

// AcceptedBy returns the words of the named language that the named
// automaton accepts. Every word is recognized through Recognize, so each
// one is logged, counted and traced.
func (w *Workbench) AcceptedBy(ctx context.Context, automatonName, languageName string) (*language.Language, error) {
	l, err := w.store.Language(languageName)
	if err != nil {
		return nil, err
	}
	if _, err := w.store.Automaton(automatonName); err != nil {
		return nil, err
	}

	return l.AcceptedBy(recognizerFunc(func(word automaton.Word) bool {
		ok, _ := w.Recognize(ctx, automatonName, word)
		return ok
	})), nil
}

// MissingSymbols returns the symbols used by the named language that the
// named automaton does not declare. Words holding them are always rejected.
func (w *Workbench) MissingSymbols(automatonName, languageName string) ([]automaton.Symbol, error) {
	l, err := w.store.Language(languageName)
	if err != nil {
		return nil, err
	}
	a, err := w.store.Automaton(automatonName)
	if err != nil {
		return nil, err
	}
	return l.Consistent(a), nil
}

type recognizerFunc func(automaton.Word) bool

func (f recognizerFunc) Recognize(word automaton.Word) bool {
	return f(word)
}
