package config

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleYAML = `
version: "1"
automata:
  - name: ends-with-a
    kind: nfa
    alphabet: [a, b]
    states: [q0, q1]
    initial: q0
    accepting: [q1]
    transitions:
      - {from: q0, symbol: a, to: q1}
      - {from: q0, symbol: b, to: q0}
words:
  w1: ab
languages:
  l1: ["a", "ab"]
telemetry:
  tracing: stdout
`

func TestDocument_YAML(t *testing.T) {
	t.Parallel()

	var doc Document
	if err := yaml.Unmarshal([]byte(sampleYAML), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	if doc.Version != "1" {
		t.Errorf("Version = %q, want 1", doc.Version)
	}
	a, ok := doc.Automaton("ends-with-a")
	if !ok {
		t.Fatal("Automaton(ends-with-a) not found")
	}
	if a.Kind != "nfa" || a.Initial != "q0" || len(a.Transitions) != 2 {
		t.Errorf("automaton = %+v", a)
	}
	if a.Transitions[1] != (TransitionConfig{From: "q0", Symbol: "b", To: "q0"}) {
		t.Errorf("Transitions[1] = %+v", a.Transitions[1])
	}
	if doc.Words["w1"] != "ab" || len(doc.Languages["l1"]) != 2 {
		t.Errorf("words = %v, languages = %v", doc.Words, doc.Languages)
	}
	if !doc.Telemetry.TracingEnabled() {
		t.Error("TracingEnabled() = false, want true")
	}
}

func TestDocument_JSONFieldNames(t *testing.T) {
	t.Parallel()

	doc := DefaultDocument()
	doc.Telemetry.ServiceName = "svc"
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if _, ok := raw["automata"]; ok {
		t.Error("empty automata should be omitted")
	}
	tel, ok := raw["telemetry"].(map[string]any)
	if !ok || tel["service_name"] != "svc" {
		t.Errorf("telemetry = %v", raw["telemetry"])
	}
}

func TestDocument_Names(t *testing.T) {
	t.Parallel()

	doc := &Document{Automata: []AutomatonConfig{{Name: "b"}, {Name: "a"}}}
	names := doc.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("Names() = %v, want [b a]", names)
	}
	if _, ok := doc.Automaton("c"); ok {
		t.Error("Automaton(c) found, want missing")
	}
}

func TestTelemetryConfig_TracingEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tracing string
		want    bool
	}{
		{"", false},
		{"none", false},
		{"NONE", false},
		{"stdout", true},
		{"otlp", true},
	}
	for _, tt := range tests {
		if got := (TelemetryConfig{Tracing: tt.tracing}).TracingEnabled(); got != tt.want {
			t.Errorf("TracingEnabled(%q) = %v, want %v", tt.tracing, got, tt.want)
		}
	}
}
