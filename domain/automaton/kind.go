package automaton

import (
	"fmt"
	"strings"
)

// Kind selects the recognition mode of an automaton.
type Kind string

// Supported automaton kinds.
const (
	KindDeterministic    Kind = "dfa"  // At most one destination per (state, symbol)
	KindNondeterministic Kind = "nfa"  // Power-set simulation
	KindEpsilon          Kind = "enfa" // Power-set simulation with empty transitions
)

// IsValid returns true if the kind is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindDeterministic, KindNondeterministic, KindEpsilon:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Description returns a human-readable name for the kind.
func (k Kind) Description() string {
	switch k {
	case KindDeterministic:
		return "deterministic complete"
	case KindNondeterministic:
		return "nondeterministic"
	case KindEpsilon:
		return "nondeterministic with empty transitions"
	default:
		return "unknown"
	}
}

// AllKinds returns every supported kind.
func AllKinds() []Kind {
	return []Kind{KindDeterministic, KindNondeterministic, KindEpsilon}
}

// ParseKind resolves a kind name. Besides the canonical names it accepts
// the French abbreviations afd, afdc, afn, afnd and afns, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfa", "afd", "afdc", "deterministic":
		return KindDeterministic, nil
	case "nfa", "afn", "afnd", "nondeterministic":
		return KindNondeterministic, nil
	case "enfa", "afns", "epsilon-nfa", "epsilon":
		return KindEpsilon, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
