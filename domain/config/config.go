// Package config provides domain models for automaton definition documents.
package config

import "strings"

// CurrentVersion is the document schema version written by this release.
const CurrentVersion = "1"

// Document is a complete definition document: named automata plus named
// words and languages that can be fed to them.
type Document struct {
	// Version is the document schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the document's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Automata lists the automata to build.
	Automata []AutomatonConfig `json:"automata,omitempty" yaml:"automata,omitempty"`
	// Words maps word names to their spelling. Every rune is one symbol
	// unless Separator is set.
	Words map[string]string `json:"words,omitempty" yaml:"words,omitempty"`
	// Languages maps language names to their finite word lists.
	Languages map[string][]string `json:"languages,omitempty" yaml:"languages,omitempty"`
	// Separator splits words into multi-character symbols when non-empty.
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`

	// Telemetry contains observability settings.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// AutomatonConfig defines one automaton.
type AutomatonConfig struct {
	// Name identifies the automaton in the registry.
	Name string `json:"name" yaml:"name"`
	// Kind is dfa, nfa or enfa (aliases accepted).
	Kind string `json:"kind" yaml:"kind"`
	// Description is free text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Alphabet lists the input symbols.
	Alphabet []string `json:"alphabet" yaml:"alphabet"`
	// States lists the state names.
	States []string `json:"states" yaml:"states"`
	// Initial is the start state.
	Initial string `json:"initial" yaml:"initial"`
	// Accepting lists the final states.
	Accepting []string `json:"accepting,omitempty" yaml:"accepting,omitempty"`
	// Transitions lists the edges of the table.
	Transitions []TransitionConfig `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// TransitionConfig is one edge of a transition table.
type TransitionConfig struct {
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`
}

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	// Tracing selects the span exporter: none, stdout or otlp.
	Tracing string `json:"tracing,omitempty" yaml:"tracing,omitempty"`
	// Endpoint is the OTLP collector endpoint.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// ServiceName overrides the reported service name.
	ServiceName string `json:"service_name,omitempty" yaml:"service_name,omitempty"`
}

// Tracing exporters.
const (
	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOTLP   = "otlp"
)

// DefaultDocument returns an empty document at the current version.
func DefaultDocument() *Document {
	return &Document{
		Version: CurrentVersion,
		Telemetry: TelemetryConfig{
			Tracing: TracingNone,
		},
	}
}

// Automaton returns the automaton named name.
func (d *Document) Automaton(name string) (AutomatonConfig, bool) {
	for _, a := range d.Automata {
		if a.Name == name {
			return a, true
		}
	}
	return AutomatonConfig{}, false
}

// Names returns the automaton names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Automata))
	for i, a := range d.Automata {
		names[i] = a.Name
	}
	return names
}

// TracingEnabled reports whether a span exporter is configured.
func (t TelemetryConfig) TracingEnabled() bool {
	switch strings.ToLower(t.Tracing) {
	case "", TracingNone:
		return false
	default:
		return true
	}
}
