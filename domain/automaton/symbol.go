package automaton

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Symbol is an element of an automaton's alphabet.
type Symbol string

// Epsilon is the reserved symbol labelling empty transitions.
const Epsilon Symbol = "ε"

// String returns the string representation of the symbol.
func (s Symbol) String() string {
	return string(s)
}

// State identifies a node of the transition graph.
type State string

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Edge is a single (source, symbol, destination) transition.
type Edge struct {
	From   State
	Symbol Symbol
	To     State
}

// String renders the edge as "from --symbol--> to".
func (e Edge) String() string {
	return fmt.Sprintf("%s --%s--> %s", e.From, e.Symbol, e.To)
}

// Word is a finite sequence of symbols. Order is significant.
type Word []Symbol

// ParseWord splits s into one symbol per rune.
func ParseWord(s string) Word {
	w := make(Word, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		w = append(w, Symbol(string(r)))
	}
	return w
}

// SplitWord splits s on sep, for alphabets with multi-character symbols.
// An empty string yields the empty word.
func SplitWord(s, sep string) Word {
	if s == "" {
		return Word{}
	}
	parts := strings.Split(s, sep)
	w := make(Word, len(parts))
	for i, p := range parts {
		w[i] = Symbol(p)
	}
	return w
}

// Len returns the number of symbols in the word.
func (w Word) Len() int {
	return len(w)
}

// String concatenates the symbols of the word.
func (w Word) String() string {
	var b strings.Builder
	for _, s := range w {
		b.WriteString(string(s))
	}
	return b.String()
}

// Key returns a string that identifies the word unambiguously, even when
// symbols span several characters.
func (w Word) Key() string {
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = string(s)
	}
	return strings.Join(parts, "\x1f")
}

// Equal reports whether two words have the same symbols in the same order.
func (w Word) Equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the word.
func (w Word) Clone() Word {
	c := make(Word, len(w))
	copy(c, w)
	return c
}
