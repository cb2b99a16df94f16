package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/domain/registry"
)

// ValidationError represents a document validation error.
type ValidationError struct {
	// Path is the JSON path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates definition documents.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the document and returns any errors.
func (v *Validator) Validate(doc *Document) ValidationErrors {
	v.errors = nil

	v.validateRequired(doc)
	v.validateAutomata(doc)
	v.validateWords(doc)
	v.validateTelemetry(doc)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(doc *Document) {
	if doc.Version == "" {
		v.addError("version", "version is required")
	} else if doc.Version != CurrentVersion {
		v.addError("version", fmt.Sprintf("unsupported version: %s", doc.Version))
	}
}

func (v *Validator) validateAutomata(doc *Document) {
	seen := make(map[string]bool, len(doc.Automata))
	for i, a := range doc.Automata {
		path := fmt.Sprintf("automata[%d]", i)

		switch {
		case a.Name == "":
			v.addError(path+".name", "automaton name is required")
		case !validName(a.Name):
			v.addError(path+".name", fmt.Sprintf("invalid name: %q", a.Name))
		case seen[a.Name]:
			v.addError(path+".name", fmt.Sprintf("duplicate automaton name: %s", a.Name))
		}
		seen[a.Name] = true

		kind, err := automaton.ParseKind(a.Kind)
		if err != nil {
			v.addError(path+".kind", fmt.Sprintf("invalid kind: %q", a.Kind))
		}

		v.validateTable(path, kind, a)
	}
}

func (v *Validator) validateTable(path string, kind automaton.Kind, a AutomatonConfig) {
	alphabet := make(map[string]bool, len(a.Alphabet))
	for j, sym := range a.Alphabet {
		switch sym {
		case "":
			v.addError(fmt.Sprintf("%s.alphabet[%d]", path, j), "symbol must not be empty")
		case string(automaton.Epsilon):
			v.addError(fmt.Sprintf("%s.alphabet[%d]", path, j), "the empty-transition symbol is reserved")
		}
		alphabet[sym] = true
	}

	states := make(map[string]bool, len(a.States))
	if len(a.States) == 0 {
		v.addError(path+".states", "states must not be empty")
	}
	for j, s := range a.States {
		if s == "" {
			v.addError(fmt.Sprintf("%s.states[%d]", path, j), "state must not be empty")
		}
		states[s] = true
	}

	if a.Initial == "" {
		v.addError(path+".initial", "initial state is required")
	} else if len(states) > 0 && !states[a.Initial] {
		v.addError(path+".initial", fmt.Sprintf("undeclared state: %s", a.Initial))
	}
	for j, s := range a.Accepting {
		if !states[s] {
			v.addError(fmt.Sprintf("%s.accepting[%d]", path, j), fmt.Sprintf("undeclared state: %s", s))
		}
	}

	used := make(map[[2]string]bool, len(a.Transitions))
	for j, t := range a.Transitions {
		tpath := fmt.Sprintf("%s.transitions[%d]", path, j)
		if !states[t.From] {
			v.addError(tpath+".from", fmt.Sprintf("undeclared state: %s", t.From))
		}
		if !states[t.To] {
			v.addError(tpath+".to", fmt.Sprintf("undeclared state: %s", t.To))
		}
		epsilon := t.Symbol == string(automaton.Epsilon)
		switch {
		case epsilon && kind != automaton.KindEpsilon:
			v.addError(tpath+".symbol", "empty transitions require kind enfa")
		case !epsilon && !alphabet[t.Symbol]:
			v.addError(tpath+".symbol", fmt.Sprintf("symbol not in alphabet: %q", t.Symbol))
		}
		if kind == automaton.KindDeterministic {
			key := [2]string{t.From, t.Symbol}
			if used[key] {
				v.addError(tpath, fmt.Sprintf("second destination for (%s, %s) in a deterministic automaton", t.From, t.Symbol))
			}
			used[key] = true
		}
	}
}

func (v *Validator) validateWords(doc *Document) {
	for _, name := range sortedKeys(doc.Words) {
		if !validName(name) {
			v.addError("words", fmt.Sprintf("invalid name: %q", name))
		}
	}
	for _, name := range sortedKeys(doc.Languages) {
		if !validName(name) {
			v.addError("languages", fmt.Sprintf("invalid name: %q", name))
		}
	}
}

func (v *Validator) validateTelemetry(doc *Document) {
	switch strings.ToLower(doc.Telemetry.Tracing) {
	case "", TracingNone, TracingStdout, TracingOTLP:
	default:
		v.addError("telemetry.tracing", fmt.Sprintf("invalid exporter: %s", doc.Telemetry.Tracing))
	}
}

func validName(name string) bool {
	return registry.ValidateName(name) == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
