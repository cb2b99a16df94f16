package language

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

func words(ss ...string) []automaton.Word {
	out := make([]automaton.Word, len(ss))
	for i, s := range ss {
		out[i] = automaton.ParseWord(s)
	}
	return out
}

func lang(ss ...string) *Language {
	return New(words(ss...))
}

func assertWords(t *testing.T, l *Language, want ...string) {
	t.Helper()
	if l.Size() != len(want) {
		t.Fatalf("language %s has %d words, want %d (%v)", l, l.Size(), len(want), want)
	}
	for _, w := range want {
		if !l.Contains(automaton.ParseWord(w)) {
			t.Errorf("language %s should contain %q", l, w)
		}
	}
}

func TestLanguage_DerivedAlphabet(t *testing.T) {
	t.Parallel()

	l := lang("ab", "c")
	got := l.Alphabet()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("Alphabet() = %v, want [a b c]", got)
	}

	explicit := New(words("a"), "a", "b")
	if len(explicit.Alphabet()) != 2 {
		t.Errorf("explicit alphabet = %v, want [a b]", explicit.Alphabet())
	}
}

func TestLanguage_SetAlgebra(t *testing.T) {
	t.Parallel()

	l1 := lang("a", "ab", "b")
	l2 := lang("b", "ba")
	l3 := lang("", "c")

	assertWords(t, l1.Union(l2, l3), "a", "ab", "b", "ba", "", "c")
	assertWords(t, l1.Intersection(l2), "b")
	assertWords(t, l1.Difference(l2), "a", "ab")
	assertWords(t, l1.Mirror(), "a", "ba", "b")

	if l1.Size() != 3 {
		t.Errorf("operands must not be modified, l1 size = %d", l1.Size())
	}
}

func TestLanguage_Concat(t *testing.T) {
	t.Parallel()

	got := lang("a", "ab").Concat(lang("", "b"))
	assertWords(t, got, "a", "ab", "abb")
}

func TestLanguage_Star(t *testing.T) {
	t.Parallel()

	got, err := lang("a", "b").Star(2)
	if err != nil {
		t.Fatalf("Star() error = %v", err)
	}
	assertWords(t, got, "", "a", "b", "aa", "ab", "ba", "bb")

	zero, err := lang("a").Star(0)
	if err != nil {
		t.Fatalf("Star(0) error = %v", err)
	}
	assertWords(t, zero, "")

	fixed, err := lang("").Star(10)
	if err != nil {
		t.Fatalf("Star(10) error = %v", err)
	}
	assertWords(t, fixed, "")

	if _, err := lang("a").Star(-1); !errors.Is(err, ErrStarBound) {
		t.Errorf("Star(-1) error = %v, want ErrStarBound", err)
	}
}

func TestLanguage_RightQuotient(t *testing.T) {
	t.Parallel()

	got := lang("abc", "bc", "xy").RightQuotient(lang("c", "bc"))
	assertWords(t, got, "ab", "a", "b", "")
}

func TestLanguage_HasEmptyWord(t *testing.T) {
	t.Parallel()

	if lang("a").HasEmptyWord() {
		t.Error("HasEmptyWord() = true, want false")
	}
	if !lang("", "a").HasEmptyWord() {
		t.Error("HasEmptyWord() = false, want true")
	}
}

func TestLanguage_AcceptedBy(t *testing.T) {
	t.Parallel()

	a, err := automaton.NewNondeterministic(automaton.Definition{
		Alphabet:  []automaton.Symbol{"a", "b"},
		States:    []automaton.State{"q0", "q1"},
		Initial:   "q0",
		Accepting: []automaton.State{"q1"},
	})
	if err != nil {
		t.Fatalf("NewNondeterministic() error = %v", err)
	}
	for _, e := range []automaton.Edge{{From: "q0", Symbol: "a", To: "q0"}, {From: "q0", Symbol: "b", To: "q0"}, {From: "q0", Symbol: "b", To: "q1"}} {
		if err := a.AddTransition(e.From, e.Symbol, e.To); err != nil {
			t.Fatalf("AddTransition(%s) error = %v", e, err)
		}
	}

	l := lang("ab", "ba", "b", "", "abc")
	assertWords(t, l.AcceptedBy(a), "ab", "b")

	if missing := l.Consistent(a); len(missing) != 1 || missing[0] != "c" {
		t.Errorf("Consistent() = %v, want [c]", missing)
	}
}

func TestLanguage_String(t *testing.T) {
	t.Parallel()

	if got := lang("b", "", "a").String(); got != "{ε, a, b}" {
		t.Errorf("String() = %q", got)
	}
	var zero Language
	if got := zero.String(); got != "{}" {
		t.Errorf("zero String() = %q", got)
	}
}
