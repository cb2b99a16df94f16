package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domainconfig "github.com/felixgeelhaar/automata/domain/config"
)

const endsWithB = `
version: "1"
automata:
  - name: ends-with-b
    kind: nfa
    alphabet: [a, b]
    states: [q0, q1]
    initial: q0
    accepting: [q1]
    transitions:
      - {from: q0, symbol: a, to: q0}
      - {from: q0, symbol: b, to: q0}
      - {from: q0, symbol: b, to: q1}
words:
  w1: ab
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoader_LoadFile_YAML(t *testing.T) {
	path := writeFile(t, "automata.yaml", endsWithB)

	doc, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	a, ok := doc.Automaton("ends-with-b")
	if !ok {
		t.Fatal("automaton ends-with-b not loaded")
	}
	if len(a.Transitions) != 3 {
		t.Errorf("len(Transitions) = %d, want 3", len(a.Transitions))
	}
	if doc.Words["w1"] != "ab" {
		t.Errorf("Words[w1] = %q, want ab", doc.Words["w1"])
	}
	if doc.Telemetry.Tracing != domainconfig.TracingNone {
		t.Errorf("Tracing = %q, want default none", doc.Telemetry.Tracing)
	}
}

func TestLoader_LoadFile_JSON(t *testing.T) {
	content := `{
  "version": "1",
  "automata": [
    {
      "name": "parity",
      "kind": "dfa",
      "alphabet": ["0", "1"],
      "states": ["even", "odd"],
      "initial": "even",
      "accepting": ["even"],
      "transitions": [
        {"from": "even", "symbol": "1", "to": "odd"},
        {"from": "odd", "symbol": "1", "to": "even"}
      ]
    }
  ]
}`
	path := writeFile(t, "automata.json", content)

	doc, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if names := doc.Names(); len(names) != 1 || names[0] != "parity" {
		t.Errorf("Names() = %v, want [parity]", names)
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "not found", path: filepath.Join(dir, "missing.yaml"), wantErr: domainconfig.ErrConfigNotFound},
		{name: "directory", path: dir, wantErr: domainconfig.ErrInvalidFormat},
		{name: "unsupported format", path: writeFile(t, "automata.toml", "version = 1"), wantErr: domainconfig.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadFile(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatOf("a.txt"); !errors.Is(err, domainconfig.ErrUnsupportedFormat) {
		t.Errorf("FormatOf(a.txt) error = %v", err)
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("AUTOMATA_KIND", "dfa")

	content := strings.Replace(endsWithB, "kind: nfa", "kind: ${AUTOMATA_KIND:-nfa}", 1)
	content = strings.Replace(content, "      - {from: q0, symbol: b, to: q1}\n", "", 1)

	doc, err := NewLoader().LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if doc.Automata[0].Kind != "dfa" {
		t.Errorf("Kind = %q, want dfa", doc.Automata[0].Kind)
	}
}

func TestLoader_EnvExpansionStrict(t *testing.T) {
	os.Unsetenv("AUTOMATA_UNDEFINED")

	content := strings.Replace(endsWithB, "initial: q0", "initial: ${AUTOMATA_UNDEFINED}", 1)
	loader := NewLoaderWithOptions(WithStrictEnv(true))
	_, err := loader.LoadString(content, FormatYAML)
	if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Fatalf("LoadString() error = %v, want ErrMissingEnvVar", err)
	}
	if !strings.Contains(err.Error(), "automata[0].initial: AUTOMATA_UNDEFINED") {
		t.Errorf("error %q should name the document path", err)
	}
}

func TestLoader_EnvExpansionJSON(t *testing.T) {
	t.Setenv("AUTOMATA_INITIAL", "q0")

	content := `{"version": "1", "automata": [{"name": "m", "kind": "nfa", "alphabet": ["a"],
	"states": ["q0"], "initial": "${AUTOMATA_INITIAL}", "accepting": ["q0"]}]}`
	doc, err := NewLoader().LoadString(content, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if doc.Automata[0].Initial != "q0" {
		t.Errorf("Initial = %q, want q0", doc.Automata[0].Initial)
	}
}

func TestLoader_EnvExpansionDisabled(t *testing.T) {
	t.Setenv("AUTOMATA_WORD", "ba")

	content := endsWithB + "  w2: ${AUTOMATA_WORD}\n"
	doc, err := NewLoaderWithOptions(WithEnvExpansion(false)).LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if doc.Words["w2"] != "${AUTOMATA_WORD}" {
		t.Errorf("Words[w2] = %q, want literal", doc.Words["w2"])
	}
}

func TestLoader_Validation(t *testing.T) {
	content := strings.Replace(endsWithB, "initial: q0", "initial: q9", 1)

	_, err := NewLoader().LoadString(content, FormatYAML)
	if !errors.Is(err, domainconfig.ErrValidationFailed) {
		t.Fatalf("LoadString() error = %v, want ErrValidationFailed", err)
	}
	var verrs domainconfig.ValidationErrors
	if !errors.As(err, &verrs) || verrs[0].Path != "automata[0].initial" {
		t.Errorf("validation errors = %v", verrs)
	}

	doc, err := NewLoaderWithOptions(WithValidation(false)).LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() without validation error = %v", err)
	}
	if doc.Automata[0].Initial != "q9" {
		t.Errorf("Initial = %q, want q9", doc.Automata[0].Initial)
	}
}

func TestLoader_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
		wantErr error
	}{
		{name: "invalid YAML", content: "automata: [unclosed", format: FormatYAML, wantErr: domainconfig.ErrInvalidFormat},
		{name: "invalid JSON", content: `{"version": `, format: FormatJSON, wantErr: domainconfig.ErrInvalidFormat},
		{name: "unknown format", content: "", format: Format("toml"), wantErr: domainconfig.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader().LoadString(tt.content, tt.format); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadString() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_LoadBytes(t *testing.T) {
	doc, err := NewLoader().LoadBytes([]byte(endsWithB), FormatYAML)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	result, err := NewBuilder(doc).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !result.Automata["ends-with-b"].Recognize(result.Words["w1"]) {
		t.Error("ends-with-b should accept w1")
	}
}
