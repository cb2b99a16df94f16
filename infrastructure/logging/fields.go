package logging

import (
	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/automata/domain/automaton"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// AutomatonName adds the registry name of an automaton.
func AutomatonName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("automaton", name)
	}
}

// Kind adds an automaton kind field.
func Kind(k automaton.Kind) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("kind", string(k))
	}
}

// Word adds the word under recognition and its length.
func Word(w automaton.Word) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("word", w.String()).Int("word_len", w.Len())
	}
}

// Accepted adds the recognition verdict.
func Accepted(ok bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("accepted", ok)
	}
}

// Edge adds the three components of a transition.
func Edge(edge automaton.Edge) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("from", string(edge.From)).
			Str("symbol", string(edge.Symbol)).
			Str("to", string(edge.To))
	}
}

// Steps adds the number of traced edges.
func Steps(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("steps", n)
	}
}

// SessionID adds a builder session ID.
func SessionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("session_id", id)
	}
}

// Staged adds the number of staged transitions.
func Staged(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("staged", n)
	}
}

// Path adds a file path field.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", p)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
