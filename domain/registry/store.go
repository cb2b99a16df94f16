// Package registry provides the domain interface for named automata,
// words and languages.
package registry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/domain/language"
)

// Store defines the interface for keeping named values.
// Implementations must be safe for concurrent use.
type Store interface {
	// SaveAutomaton stores an automaton; it fails with ErrExists unless
	// replace is set.
	SaveAutomaton(name string, a *automaton.Automaton, replace bool) error

	// Automaton retrieves an automaton by name.
	Automaton(name string) (*automaton.Automaton, error)

	// DeleteAutomaton removes an automaton.
	DeleteAutomaton(name string) error

	// AutomatonNames returns the stored automaton names in ascending order.
	AutomatonNames() []string

	// SaveWord stores a word, replacing any previous value.
	SaveWord(name string, w automaton.Word) error

	// Word retrieves a word by name.
	Word(name string) (automaton.Word, error)

	// WordNames returns the stored word names in ascending order.
	WordNames() []string

	// SaveLanguage stores a language, replacing any previous value.
	SaveLanguage(name string, l *language.Language) error

	// Language retrieves a language by name.
	Language(name string) (*language.Language, error)

	// LanguageNames returns the stored language names in ascending order.
	LanguageNames() []string
}

// ValidateName checks that name is usable as a registry key.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}
