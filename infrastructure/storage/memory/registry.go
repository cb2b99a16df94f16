// Package memory provides in-memory storage implementations.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/domain/language"
	"github.com/felixgeelhaar/automata/domain/registry"
)

// Registry is an in-memory implementation of registry.Store.
type Registry struct {
	automata  map[string]*automaton.Automaton
	words     map[string]automaton.Word
	languages map[string]*language.Language
	mu        sync.RWMutex
}

// NewRegistry creates a new in-memory registry.
func NewRegistry() *Registry {
	return &Registry{
		automata:  make(map[string]*automaton.Automaton),
		words:     make(map[string]automaton.Word),
		languages: make(map[string]*language.Language),
	}
}

// SaveAutomaton stores an automaton under name.
func (r *Registry) SaveAutomaton(name string, a *automaton.Automaton, replace bool) error {
	if err := registry.ValidateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.automata[name]; exists && !replace {
		return fmt.Errorf("%w: automaton %s", registry.ErrExists, name)
	}
	r.automata[name] = a
	return nil
}

// Automaton retrieves an automaton by name.
func (r *Registry) Automaton(name string) (*automaton.Automaton, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.automata[name]
	if !ok {
		return nil, fmt.Errorf("%w: automaton %s", registry.ErrNotFound, name)
	}
	return a, nil
}

// DeleteAutomaton removes an automaton.
func (r *Registry) DeleteAutomaton(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.automata[name]; !ok {
		return fmt.Errorf("%w: automaton %s", registry.ErrNotFound, name)
	}
	delete(r.automata, name)
	return nil
}

// AutomatonNames returns the stored automaton names.
func (r *Registry) AutomatonNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.automata)
}

// SaveWord stores a copy of w under name.
func (r *Registry) SaveWord(name string, w automaton.Word) error {
	if err := registry.ValidateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.words[name] = w.Clone()
	return nil
}

// Word retrieves a copy of a word by name.
func (r *Registry) Word(name string) (automaton.Word, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.words[name]
	if !ok {
		return nil, fmt.Errorf("%w: word %s", registry.ErrNotFound, name)
	}
	return w.Clone(), nil
}

// WordNames returns the stored word names.
func (r *Registry) WordNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.words)
}

// SaveLanguage stores a language under name. Languages are immutable
// values, so the pointer is shared.
func (r *Registry) SaveLanguage(name string, l *language.Language) error {
	if err := registry.ValidateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages[name] = l
	return nil
}

// Language retrieves a language by name.
func (r *Registry) Language(name string) (*language.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.languages[name]
	if !ok {
		return nil, fmt.Errorf("%w: language %s", registry.ErrNotFound, name)
	}
	return l, nil
}

// LanguageNames returns the stored language names.
func (r *Registry) LanguageNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.languages)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ensure interface compliance.
var _ registry.Store = (*Registry)(nil)
