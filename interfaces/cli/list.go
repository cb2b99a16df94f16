package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listOptions holds options for the list command.
type listOptions struct {
	configPath string
	verbose    bool
}

// newListCmd creates the list command.
func (a *App) newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the automata of a definition file",
		Long: `List the automata, words and languages declared in a definition file.

Examples:
  # List automata
  automata list -c automata.yaml

  # Verbose output with alphabets and state counts
  automata list -c automata.yaml -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to definition file (required)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed information")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// list prints the names declared in the definition file.
func (a *App) list(opts *listOptions) error {
	doc, result, err := loadDefinition(opts.configPath, false)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	if len(doc.Automata) == 0 && len(doc.Words) == 0 && len(doc.Languages) == 0 {
		_, _ = fmt.Fprintf(a.stdout, "No automata, words or languages defined.\n")
		return nil
	}

	if len(result.Order) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "Automata (%d):\n", len(result.Order))
		for _, name := range result.Order {
			au := result.Automata[name]
			_, _ = fmt.Fprintf(a.stdout, "  %s (%s)\n", name, au.Kind())
			if opts.verbose {
				_, _ = fmt.Fprintf(a.stdout, "    Alphabet: %v\n", au.Alphabet())
				_, _ = fmt.Fprintf(a.stdout, "    States: %d, accepting: %d\n", len(au.States()), len(au.Accepting()))
				_, _ = fmt.Fprintf(a.stdout, "    Transitions: %d\n", au.Len())
			}
		}
	}

	if len(result.Words) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "\nWords (%d):\n", len(result.Words))
		for _, name := range sortedNames(result.Words) {
			if opts.verbose {
				_, _ = fmt.Fprintf(a.stdout, "  %s = %s\n", name, spell(result.Words[name]))
				continue
			}
			_, _ = fmt.Fprintf(a.stdout, "  %s\n", name)
		}
	}

	if len(result.Languages) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "\nLanguages (%d):\n", len(result.Languages))
		for _, name := range sortedNames(result.Languages) {
			if opts.verbose {
				_, _ = fmt.Fprintf(a.stdout, "  %s = %s\n", name, result.Languages[name])
				continue
			}
			_, _ = fmt.Fprintf(a.stdout, "  %s\n", name)
		}
	}

	return nil
}
