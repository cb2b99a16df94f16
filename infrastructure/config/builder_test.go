package config

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/automata/domain/automaton"
	domainconfig "github.com/felixgeelhaar/automata/domain/config"
	"github.com/felixgeelhaar/automata/domain/registry"
	"github.com/felixgeelhaar/automata/infrastructure/storage/memory"
)

func epsilonDocument() *domainconfig.Document {
	return &domainconfig.Document{
		Version: domainconfig.CurrentVersion,
		Automata: []domainconfig.AutomatonConfig{
			{
				Name:      "eps",
				Kind:      "enfa",
				Alphabet:  []string{"a"},
				States:    []string{"q0", "q1", "q2"},
				Initial:   "q0",
				Accepting: []string{"q2"},
				Transitions: []domainconfig.TransitionConfig{
					{From: "q0", Symbol: "ε", To: "q1"},
					{From: "q1", Symbol: "a", To: "q2"},
				},
			},
			{
				Name:      "parity",
				Kind:      "dfa",
				Alphabet:  []string{"0", "1"},
				States:    []string{"even", "odd"},
				Initial:   "even",
				Accepting: []string{"even"},
				Transitions: []domainconfig.TransitionConfig{
					{From: "even", Symbol: "0", To: "even"},
					{From: "even", Symbol: "1", To: "odd"},
					{From: "odd", Symbol: "0", To: "odd"},
					{From: "odd", Symbol: "1", To: "even"},
				},
			},
		},
		Words:     map[string]string{"w1": "a"},
		Languages: map[string][]string{"l1": {"", "a", "aa"}},
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	result, err := NewBuilder(epsilonDocument()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Order) != 2 || result.Order[0] != "eps" || result.Order[1] != "parity" {
		t.Errorf("Order = %v, want [eps parity]", result.Order)
	}

	eps := result.Automata["eps"]
	if eps.Kind() != automaton.KindEpsilon {
		t.Errorf("eps kind = %s, want enfa", eps.Kind())
	}
	if !eps.Recognize(automaton.ParseWord("a")) {
		t.Error("eps should accept a")
	}

	parity := result.Automata["parity"]
	if !parity.IsComplete() {
		t.Error("parity should be complete")
	}
	if !parity.Recognize(automaton.ParseWord("1010")) || parity.Recognize(automaton.ParseWord("1")) {
		t.Error("parity verdicts wrong")
	}

	if got := result.Words["w1"]; got.String() != "a" {
		t.Errorf("word w1 = %q, want a", got)
	}
	l1 := result.Languages["l1"]
	if l1.Size() != 3 || !l1.HasEmptyWord() {
		t.Errorf("language l1 = %s", l1)
	}
	if got := l1.AcceptedBy(eps); got.Size() != 1 {
		t.Errorf("AcceptedBy(eps) = %s, want {a}", got)
	}
}

func TestBuilder_Separator(t *testing.T) {
	t.Parallel()

	doc := &domainconfig.Document{
		Version:   domainconfig.CurrentVersion,
		Separator: " ",
		Words:     map[string]string{"w": "go to go"},
	}
	result, err := NewBuilder(doc).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	w := result.Words["w"]
	if w.Len() != 3 || w[1] != "to" {
		t.Errorf("word = %v, want [go to go]", w)
	}
}

func TestParseWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spelling  string
		separator string
		want      automaton.Word
	}{
		{name: "empty", spelling: "", want: automaton.Word{}},
		{name: "epsilon", spelling: "ε", want: automaton.Word{}},
		{name: "epsilon with separator", spelling: "ε", separator: " ", want: automaton.Word{}},
		{name: "runes", spelling: "ab", want: automaton.Word{"a", "b"}},
		{name: "separated", spelling: "if then", separator: " ", want: automaton.Word{"if", "then"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseWord(tt.spelling, tt.separator); !got.Equal(tt.want) {
				t.Errorf("ParseWord(%q, %q) = %v, want %v", tt.spelling, tt.separator, got, tt.want)
			}
		})
	}
}

func TestBuilder_EpsilonSpelling(t *testing.T) {
	t.Parallel()

	doc := epsilonDocument()
	doc.Automata[0].Accepting = []string{"q1"}
	doc.Words = map[string]string{"empty": "ε"}
	doc.Languages = map[string][]string{"l": {"ε", "a"}}

	result, err := NewBuilder(doc).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if w := result.Words["empty"]; w.Len() != 0 {
		t.Errorf("word empty = %v, want the empty word", w)
	}

	l := result.Languages["l"]
	if !l.HasEmptyWord() || l.Size() != 2 {
		t.Errorf("language l = %s, want the empty word and a", l)
	}
	if got := l.AcceptedBy(result.Automata["eps"]); !got.HasEmptyWord() {
		t.Errorf("AcceptedBy(eps) = %s, want the empty word accepted", got)
	}
}

func TestBuilder_BuildFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(ac *domainconfig.AutomatonConfig)
		wantErr error
	}{
		{
			name:    "unknown kind",
			mutate:  func(ac *domainconfig.AutomatonConfig) { ac.Kind = "turing" },
			wantErr: automaton.ErrUnknownKind,
		},
		{
			name:    "undeclared initial",
			mutate:  func(ac *domainconfig.AutomatonConfig) { ac.Initial = "q9" },
			wantErr: automaton.ErrInvalidDefinition,
		},
		{
			name: "symbol outside alphabet",
			mutate: func(ac *domainconfig.AutomatonConfig) {
				ac.Transitions = append(ac.Transitions, domainconfig.TransitionConfig{From: "odd", Symbol: "2", To: "even"})
			},
			wantErr: automaton.ErrInvalidTransition,
		},
		{
			name: "second deterministic destination",
			mutate: func(ac *domainconfig.AutomatonConfig) {
				ac.Transitions = append(ac.Transitions, domainconfig.TransitionConfig{From: "odd", Symbol: "1", To: "odd"})
			},
			wantErr: automaton.ErrNonDeterministicTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := epsilonDocument()
			tt.mutate(&doc.Automata[1])

			_, err := NewBuilder(doc).Build()
			if !errors.Is(err, domainconfig.ErrBuildFailed) {
				t.Fatalf("Build() error = %v, want ErrBuildFailed", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildResult_Register(t *testing.T) {
	t.Parallel()

	result, err := NewBuilder(epsilonDocument()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	store := memory.NewRegistry()
	if err := result.Register(store, false); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if names := store.AutomatonNames(); len(names) != 2 {
		t.Errorf("AutomatonNames() = %v", names)
	}
	if _, err := store.Word("w1"); err != nil {
		t.Errorf("Word(w1) error = %v", err)
	}
	if _, err := store.Language("l1"); err != nil {
		t.Errorf("Language(l1) error = %v", err)
	}

	if err := result.Register(store, false); !errors.Is(err, registry.ErrExists) {
		t.Errorf("second Register() error = %v, want ErrExists", err)
	}
	if err := result.Register(store, true); err != nil {
		t.Errorf("Register(replace) error = %v", err)
	}
}
