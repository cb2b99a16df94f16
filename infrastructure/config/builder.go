package config

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/automata/domain/automaton"
	domainconfig "github.com/felixgeelhaar/automata/domain/config"
	"github.com/felixgeelhaar/automata/domain/language"
	"github.com/felixgeelhaar/automata/domain/registry"
)

// Builder builds automata, words and languages from a document.
type Builder struct {
	config *domainconfig.Document
}

// NewBuilder creates a new document builder.
func NewBuilder(config *domainconfig.Document) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the values built from a document.
type BuildResult struct {
	// Automata maps names to fully populated automata.
	Automata map[string]*automaton.Automaton
	// Order lists automaton names in document order.
	Order []string
	// Words maps names to parsed words.
	Words map[string]automaton.Word
	// Languages maps names to finite languages.
	Languages map[string]*language.Language
}

// Build builds every automaton of the document. Each automaton is built
// completely or not at all; the first failure aborts the build.
func (b *Builder) Build() (*BuildResult, error) {
	result := &BuildResult{
		Automata:  make(map[string]*automaton.Automaton, len(b.config.Automata)),
		Words:     make(map[string]automaton.Word, len(b.config.Words)),
		Languages: make(map[string]*language.Language, len(b.config.Languages)),
	}

	for _, ac := range b.config.Automata {
		a, err := BuildAutomaton(ac)
		if err != nil {
			return nil, fmt.Errorf("%w: automaton %s: %w", domainconfig.ErrBuildFailed, ac.Name, err)
		}
		result.Automata[ac.Name] = a
		result.Order = append(result.Order, ac.Name)
	}

	for name, spelling := range b.config.Words {
		result.Words[name] = b.ParseWord(spelling)
	}

	for name, spellings := range b.config.Languages {
		words := make([]automaton.Word, len(spellings))
		for i, s := range spellings {
			words[i] = b.ParseWord(s)
		}
		result.Languages[name] = language.New(words)
	}

	return result, nil
}

// ParseWord spells a word using the document's separator.
func (b *Builder) ParseWord(s string) automaton.Word {
	return ParseWord(s, b.config.Separator)
}

// ParseWord reads a word spelling. "ε" and "" are the empty word; other
// spellings are split on separator, or one symbol per rune when it is empty.
func ParseWord(s, separator string) automaton.Word {
	if s == "" || s == string(automaton.Epsilon) {
		return automaton.Word{}
	}
	if separator != "" {
		return automaton.SplitWord(s, separator)
	}
	return automaton.ParseWord(s)
}

// BuildAutomaton builds a single automaton from its table.
func BuildAutomaton(ac domainconfig.AutomatonConfig) (*automaton.Automaton, error) {
	kind, err := automaton.ParseKind(ac.Kind)
	if err != nil {
		return nil, err
	}

	a, err := automaton.New(kind, Definition(ac))
	if err != nil {
		return nil, err
	}

	for _, t := range ac.Transitions {
		if err := a.AddTransition(automaton.State(t.From), automaton.Symbol(t.Symbol), automaton.State(t.To)); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Definition converts the declared sets of an automaton table.
func Definition(ac domainconfig.AutomatonConfig) automaton.Definition {
	def := automaton.Definition{
		Alphabet:  make([]automaton.Symbol, len(ac.Alphabet)),
		States:    make([]automaton.State, len(ac.States)),
		Initial:   automaton.State(ac.Initial),
		Accepting: make([]automaton.State, len(ac.Accepting)),
	}
	for i, s := range ac.Alphabet {
		def.Alphabet[i] = automaton.Symbol(s)
	}
	for i, s := range ac.States {
		def.States[i] = automaton.State(s)
	}
	for i, s := range ac.Accepting {
		def.Accepting[i] = automaton.State(s)
	}
	return def
}

// Register saves the built values into store. Automata replace existing
// entries only when replace is set.
func (r *BuildResult) Register(store registry.Store, replace bool) error {
	var errs []error
	for _, name := range r.Order {
		if err := store.SaveAutomaton(name, r.Automata[name], replace); err != nil {
			errs = append(errs, err)
		}
	}
	for name, w := range r.Words {
		if err := store.SaveWord(name, w); err != nil {
			errs = append(errs, err)
		}
	}
	for name, l := range r.Languages {
		if err := store.SaveLanguage(name, l); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
