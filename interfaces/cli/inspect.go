package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/automata/domain/automaton"
	domainconfig "github.com/felixgeelhaar/automata/domain/config"
	"github.com/felixgeelhaar/automata/infrastructure/config"
)

// inspectOptions holds options for the inspect command.
type inspectOptions struct {
	configPath string
	outputJSON bool
	section    string
	automaton  string
}

// newInspectCmd creates the inspect command.
func (a *App) newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect definition details",
		Long: `Inspect and display a definition file.

Sections:
  all        Show everything (default)
  automata   Show automata tables
  words      Show named words
  languages  Show named languages
  telemetry  Show telemetry settings

Examples:
  # Inspect a definition file
  automata inspect -c automata.yaml

  # Inspect a single automaton
  automata inspect -c automata.yaml --automaton ends-with-a

  # Output as JSON
  automata inspect -c automata.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspectDefinition(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to definition file (required)")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&opts.section, "section", "all", "Section to inspect (all, automata, words, languages, telemetry)")
	cmd.Flags().StringVarP(&opts.automaton, "automaton", "a", "", "Only show the named automaton")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// inspectDefinition inspects the definition file.
func (a *App) inspectDefinition(opts *inspectOptions) error {
	doc, result, err := loadDefinition(opts.configPath, false)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	if opts.automaton != "" {
		ac, ok := doc.Automaton(opts.automaton)
		if !ok {
			return fmt.Errorf("unknown automaton: %s", opts.automaton)
		}
		if opts.outputJSON {
			return encodeJSON(a.stdout, ac)
		}
		printAutomaton(a.stdout, ac, result.Automata[ac.Name])
		return nil
	}

	if opts.outputJSON {
		return a.inspectJSON(doc, opts.section)
	}
	return a.inspectText(doc, result, opts.section)
}

// inspectJSON outputs the document as JSON.
func (a *App) inspectJSON(doc *domainconfig.Document, section string) error {
	var output any

	switch section {
	case "all":
		output = doc
	case "automata":
		output = doc.Automata
	case "words":
		output = doc.Words
	case "languages":
		output = doc.Languages
	case "telemetry":
		output = doc.Telemetry
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return encodeJSON(a.stdout, output)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// inspectText outputs the document as formatted text.
func (a *App) inspectText(doc *domainconfig.Document, result *config.BuildResult, section string) error {
	switch section {
	case "all":
		a.printHeader(doc)
		a.printAutomataSection(doc, result)
		a.printWordsSection(doc)
		a.printLanguagesSection(doc)
		a.printTelemetrySection(doc)
	case "automata":
		a.printAutomataSection(doc, result)
	case "words":
		a.printWordsSection(doc)
	case "languages":
		a.printLanguagesSection(doc)
	case "telemetry":
		a.printTelemetrySection(doc)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return nil
}

func (a *App) printHeader(doc *domainconfig.Document) {
	_, _ = fmt.Fprintf(a.stdout, "Automata Definition\n")
	_, _ = fmt.Fprintf(a.stdout, "═══════════════════════════════════════\n")
	_, _ = fmt.Fprintf(a.stdout, "Version: %s\n", doc.Version)
	if doc.Description != "" {
		_, _ = fmt.Fprintf(a.stdout, "Description: %s\n", doc.Description)
	}
	if doc.Separator != "" {
		_, _ = fmt.Fprintf(a.stdout, "Separator: %q\n", doc.Separator)
	}
	_, _ = fmt.Fprintln(a.stdout)
}

func (a *App) printAutomataSection(doc *domainconfig.Document, result *config.BuildResult) {
	_, _ = fmt.Fprintf(a.stdout, "Automata\n")
	_, _ = fmt.Fprintf(a.stdout, "───────────────────────────────────────\n")

	if len(doc.Automata) == 0 {
		_, _ = fmt.Fprintf(a.stdout, "  No automata defined\n\n")
		return
	}
	for _, ac := range doc.Automata {
		printAutomaton(a.stdout, ac, result.Automata[ac.Name])
	}
}

// printAutomaton prints one table. built may be nil.
func printAutomaton(w io.Writer, ac domainconfig.AutomatonConfig, built *automaton.Automaton) {
	_, _ = fmt.Fprintf(w, "  • %s (%s)\n", ac.Name, ac.Kind)
	if ac.Description != "" {
		_, _ = fmt.Fprintf(w, "    Description: %s\n", ac.Description)
	}
	_, _ = fmt.Fprintf(w, "    Alphabet: {%s}\n", strings.Join(ac.Alphabet, ", "))
	_, _ = fmt.Fprintf(w, "    States: {%s}\n", strings.Join(ac.States, ", "))
	_, _ = fmt.Fprintf(w, "    Initial: %s\n", ac.Initial)
	_, _ = fmt.Fprintf(w, "    Accepting: {%s}\n", strings.Join(ac.Accepting, ", "))
	if built == nil {
		_, _ = fmt.Fprintln(w)
		return
	}
	_, _ = fmt.Fprintf(w, "    Transitions (%d):\n", built.Len())
	for _, e := range built.Edges() {
		_, _ = fmt.Fprintf(w, "      %s\n", e)
	}
	_, _ = fmt.Fprintf(w, "    Complete: %v\n", built.IsComplete())
	_, _ = fmt.Fprintln(w)
}

func (a *App) printWordsSection(doc *domainconfig.Document) {
	if len(doc.Words) == 0 {
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "Words\n")
	_, _ = fmt.Fprintf(a.stdout, "───────────────────────────────────────\n")
	for _, name := range sortedNames(doc.Words) {
		_, _ = fmt.Fprintf(a.stdout, "  %s: %q\n", name, doc.Words[name])
	}
	_, _ = fmt.Fprintln(a.stdout)
}

func (a *App) printLanguagesSection(doc *domainconfig.Document) {
	if len(doc.Languages) == 0 {
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "Languages\n")
	_, _ = fmt.Fprintf(a.stdout, "───────────────────────────────────────\n")
	for _, name := range sortedNames(doc.Languages) {
		_, _ = fmt.Fprintf(a.stdout, "  %s: %q\n", name, doc.Languages[name])
	}
	_, _ = fmt.Fprintln(a.stdout)
}

func (a *App) printTelemetrySection(doc *domainconfig.Document) {
	_, _ = fmt.Fprintf(a.stdout, "Telemetry\n")
	_, _ = fmt.Fprintf(a.stdout, "───────────────────────────────────────\n")
	if !doc.Telemetry.TracingEnabled() {
		_, _ = fmt.Fprintf(a.stdout, "  Tracing: disabled\n")
	} else {
		_, _ = fmt.Fprintf(a.stdout, "  Tracing: %s\n", doc.Telemetry.Tracing)
		if doc.Telemetry.Endpoint != "" {
			_, _ = fmt.Fprintf(a.stdout, "  Endpoint: %s\n", doc.Telemetry.Endpoint)
		}
	}
	if doc.Telemetry.ServiceName != "" {
		_, _ = fmt.Fprintf(a.stdout, "  Service: %s\n", doc.Telemetry.ServiceName)
	}
	_, _ = fmt.Fprintln(a.stdout)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
