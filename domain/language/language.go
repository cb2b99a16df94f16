package language

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

// ErrStarBound is returned when a Kleene star bound is negative.
var ErrStarBound = errors.New("star bound must be non-negative")

// Recognizer decides membership of a word.
type Recognizer interface {
	Recognize(w automaton.Word) bool
}

// AlphabetProvider exposes the alphabet of an automaton.
type AlphabetProvider interface {
	HasSymbol(sym automaton.Symbol) bool
}

// Language is a finite set of words with an associated alphabet. The zero
// value is the empty language over the empty alphabet.
type Language struct {
	words    map[string]automaton.Word
	alphabet automaton.SymbolSet
}

// New creates a language from words. When alphabet is empty it is derived
// from the symbols of the words; otherwise the words' symbols are added to it.
func New(words []automaton.Word, alphabet ...automaton.Symbol) *Language {
	l := &Language{
		words:    make(map[string]automaton.Word, len(words)),
		alphabet: automaton.NewSymbolSet(alphabet...),
	}
	for _, w := range words {
		l.add(w)
	}
	return l
}

func (l *Language) add(w automaton.Word) {
	if l.words == nil {
		l.words = make(map[string]automaton.Word)
	}
	if l.alphabet == nil {
		l.alphabet = make(automaton.SymbolSet)
	}
	l.words[w.Key()] = w.Clone()
	for _, s := range w {
		l.alphabet[s] = struct{}{}
	}
}

func (l *Language) empty() *Language {
	return &Language{
		words:    make(map[string]automaton.Word),
		alphabet: l.alphabet.Clone(),
	}
}

// Size returns the number of words.
func (l *Language) Size() int {
	return len(l.words)
}

// Contains reports whether w is in the language.
func (l *Language) Contains(w automaton.Word) bool {
	_, ok := l.words[w.Key()]
	return ok
}

// HasEmptyWord reports whether ε belongs to the language, the condition
// under which Arden's lemma yields a unique solution.
func (l *Language) HasEmptyWord() bool {
	return l.Contains(automaton.Word{})
}

// Alphabet returns the alphabet in ascending order.
func (l *Language) Alphabet() []automaton.Symbol {
	return l.alphabet.Sorted()
}

// Words returns the words ordered by length, then lexicographically.
func (l *Language) Words() []automaton.Word {
	out := make([]automaton.Word, 0, len(l.words))
	for _, w := range l.words {
		out = append(out, w.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// Union returns the union of l and others; alphabets are merged.
func (l *Language) Union(others ...*Language) *Language {
	out := l.empty()
	for _, w := range l.words {
		out.add(w)
	}
	for _, o := range others {
		for s := range o.alphabet {
			out.alphabet[s] = struct{}{}
		}
		for _, w := range o.words {
			out.add(w)
		}
	}
	return out
}

// Intersection returns the words common to l and o, over l's alphabet.
func (l *Language) Intersection(o *Language) *Language {
	out := l.empty()
	for k, w := range l.words {
		if _, ok := o.words[k]; ok {
			out.add(w)
		}
	}
	return out
}

// Difference returns the words of l that are not in o, over l's alphabet.
func (l *Language) Difference(o *Language) *Language {
	out := l.empty()
	for k, w := range l.words {
		if _, ok := o.words[k]; !ok {
			out.add(w)
		}
	}
	return out
}

// Concat returns {uv | u ∈ l, v ∈ o}.
func (l *Language) Concat(o *Language) *Language {
	out := l.empty()
	for s := range o.alphabet {
		out.alphabet[s] = struct{}{}
	}
	for _, u := range l.words {
		for _, v := range o.words {
			out.add(Concat(u, v))
		}
	}
	return out
}

// Star returns the union of the powers L^0 … L^n. The full Kleene star is
// infinite as soon as l holds a non-empty word, so callers choose n.
func (l *Language) Star(n int) (*Language, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrStarBound, n)
	}
	out := l.empty()
	out.add(automaton.Word{})
	power := New([]automaton.Word{{}})
	for i := 1; i <= n; i++ {
		power = power.Concat(l)
		before := out.Size()
		for _, w := range power.words {
			out.add(w)
		}
		if out.Size() == before {
			break
		}
	}
	return out, nil
}

// RightQuotient returns {u | uv ∈ l for some v ∈ o}.
func (l *Language) RightQuotient(o *Language) *Language {
	out := l.empty()
	for _, w := range l.words {
		for _, v := range o.words {
			if len(v) > len(w) {
				continue
			}
			if w[len(w)-len(v):].Equal(v) {
				out.add(w[:len(w)-len(v)])
			}
		}
	}
	return out
}

// Mirror returns the language of reversed words.
func (l *Language) Mirror() *Language {
	out := l.empty()
	for _, w := range l.words {
		out.add(Mirror(w))
	}
	return out
}

// AcceptedBy returns the words of l that r recognizes.
func (l *Language) AcceptedBy(r Recognizer) *Language {
	out := l.empty()
	for _, w := range l.words {
		if r.Recognize(w) {
			out.add(w)
		}
	}
	return out
}

// Consistent reports the symbols of l's alphabet the automaton lacks. An
// empty result means every word of l can be fed to it meaningfully.
func (l *Language) Consistent(a AlphabetProvider) []automaton.Symbol {
	var missing []automaton.Symbol
	for _, s := range l.alphabet.Sorted() {
		if !a.HasSymbol(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// String renders the language as {w1, w2, …}; ε stands for the empty word.
func (l *Language) String() string {
	words := l.Words()
	parts := make([]string, len(words))
	for i, w := range words {
		if len(w) == 0 {
			parts[i] = string(automaton.Epsilon)
			continue
		}
		parts[i] = w.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
