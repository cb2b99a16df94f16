// Package language provides operations on words and finite languages over
// automaton symbols.
package language

import (
	"sort"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

// Append returns w followed by sym. The input is not modified.
func Append(w automaton.Word, sym automaton.Symbol) automaton.Word {
	out := make(automaton.Word, 0, len(w)+1)
	out = append(out, w...)
	return append(out, sym)
}

// Prepend returns sym followed by w.
func Prepend(w automaton.Word, sym automaton.Symbol) automaton.Word {
	out := make(automaton.Word, 0, len(w)+1)
	out = append(out, sym)
	return append(out, w...)
}

// Concat returns the concatenation of the given words.
func Concat(words ...automaton.Word) automaton.Word {
	n := 0
	for _, w := range words {
		n += len(w)
	}
	out := make(automaton.Word, 0, n)
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

// Prefix returns the left factor of length n, or the whole word when n
// exceeds its length.
func Prefix(w automaton.Word, n int) automaton.Word {
	if n < 0 {
		n = 0
	}
	if n > len(w) {
		n = len(w)
	}
	return w[:n].Clone()
}

// Suffix returns the right factor of length n, or the whole word when n
// exceeds its length.
func Suffix(w automaton.Word, n int) automaton.Word {
	if n < 0 {
		n = 0
	}
	if n > len(w) {
		n = len(w)
	}
	return w[len(w)-n:].Clone()
}

// Factors returns every distinct contiguous sub-word of w, the empty word
// included, shortest first.
func Factors(w automaton.Word) []automaton.Word {
	seen := map[string]bool{"": true}
	out := []automaton.Word{{}}
	for i := 0; i < len(w); i++ {
		for j := i + 1; j <= len(w); j++ {
			f := w[i:j]
			if k := f.Key(); !seen[k] {
				seen[k] = true
				out = append(out, f.Clone())
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// IsPeriodic reports whether w[i] == w[i+p] for every valid i. Periods
// outside 1..len(w) are never periods.
func IsPeriodic(w automaton.Word, p int) bool {
	if p <= 0 || p > len(w) {
		return false
	}
	for i := 0; i+p < len(w); i++ {
		if w[i] != w[i+p] {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether w is not a power u^k of a shorter word.
func IsPrimitive(w automaton.Word) bool {
	n := len(w)
	for p := 1; p <= n/2; p++ {
		if n%p == 0 && IsPeriodic(w, p) {
			return false
		}
	}
	return true
}

// Mirror returns w reversed.
func Mirror(w automaton.Word) automaton.Word {
	out := make(automaton.Word, len(w))
	for i, s := range w {
		out[len(w)-1-i] = s
	}
	return out
}

// AlphabetOf returns the distinct symbols of w in ascending order.
func AlphabetOf(w automaton.Word) []automaton.Symbol {
	return automaton.NewSymbolSet(w...).Sorted()
}
