package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/automata/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a definition file",
		Long: `Validate an automata definition file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (version, automaton names, tables)
  - State and symbol references in transitions
  - Determinism of dfa tables
  - Environment variable references (in strict mode)

Every automaton is then built, so a valid file is guaranteed to load.

Examples:
  # Validate a definition file
  automata validate -c automata.yaml

  # Strict validation (fail on missing env vars)
  automata validate -c automata.yaml --strict

  # Show the JSON schema for definition files
  automata validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showSchema()
			}
			return a.validateDefinition(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to definition file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for definition files")

	return cmd
}

// validateDefinition validates the definition file.
func (a *App) validateDefinition(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("definition file path is required (-c flag)")
	}

	doc, result, err := loadDefinition(opts.configPath, opts.strict)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "✓ Definition is valid\n")
	_, _ = fmt.Fprintf(a.stdout, "  Version: %s\n", doc.Version)
	if doc.Description != "" {
		_, _ = fmt.Fprintf(a.stdout, "  Description: %s\n", doc.Description)
	}

	// Summary
	_, _ = fmt.Fprintf(a.stdout, "\nDefinition summary:\n")
	_, _ = fmt.Fprintf(a.stdout, "  Automata: %d\n", len(result.Order))
	for _, name := range result.Order {
		au := result.Automata[name]
		_, _ = fmt.Fprintf(a.stdout, "    - %s (%s, %d transitions)\n", name, au.Kind(), au.Len())
	}
	if len(result.Words) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Words: %d\n", len(result.Words))
	}
	if len(result.Languages) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Languages: %d\n", len(result.Languages))
	}
	if doc.Telemetry.TracingEnabled() {
		_, _ = fmt.Fprintf(a.stdout, "  Tracing: %s\n", doc.Telemetry.Tracing)
	}

	return nil
}

// showSchema displays the JSON schema for definition files.
func (a *App) showSchema() error {
	schemaJSON, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	_, _ = fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
