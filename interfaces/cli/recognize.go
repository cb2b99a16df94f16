package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/infrastructure/config"
)

// recognizeOptions holds options for the recognize command.
type recognizeOptions struct {
	configPath string
	automaton  string
	language   string
	trace      bool
	jsonOutput bool
}

// recognition is the JSON form of one verdict.
type recognition struct {
	Word     string   `json:"word"`
	Accepted bool     `json:"accepted"`
	Path     []string `json:"path,omitempty"`
}

// newRecognizeCmd creates the recognize command.
func (a *App) newRecognizeCmd() *cobra.Command {
	opts := &recognizeOptions{}

	cmd := &cobra.Command{
		Use:   "recognize [words...]",
		Short: "Decide whether an automaton accepts words",
		Long: `Run words through an automaton declared in a definition file.

Each argument is one word. Symbols are single characters unless the
document sets a separator. "ε" or "" denotes the empty word and "@name"
refers to a word declared in the document. Without arguments, words are
read from stdin, one per line.

Examples:
  # Recognize two words
  automata recognize -c automata.yaml -a ends-with-a ab ba

  # Show the transitions followed
  automata recognize -c automata.yaml -a ends-with-a --trace aba

  # Filter a declared language
  automata recognize -c automata.yaml -a ends-with-a --language samples

  # Words from stdin
  printf 'a\nab\n' | automata recognize -c automata.yaml -a ends-with-a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recognize(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to definition file (required)")
	cmd.Flags().StringVarP(&opts.automaton, "automaton", "a", "", "Automaton to run (required)")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Recognize every word of a declared language")
	cmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "Print the transitions followed")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("automaton")

	return cmd
}

// recognize runs the requested words through the automaton.
func (a *App) recognize(ctx context.Context, opts *recognizeOptions, args []string) (err error) {
	doc, result, err := loadDefinition(opts.configPath, false)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	s, err := a.openSession(doc, result)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close(context.WithoutCancel(ctx)))
	}()

	if _, err := s.wb.Get(opts.automaton); err != nil {
		return err
	}

	parser := config.NewBuilder(doc)
	var words []automaton.Word
	switch {
	case opts.language != "":
		l, err := s.wb.Language(opts.language)
		if err != nil {
			return err
		}
		missing, err := s.wb.MissingSymbols(opts.automaton, opts.language)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			_, _ = fmt.Fprintf(a.stderr, "warning: %s uses symbols outside the alphabet of %s: %v\n", opts.language, opts.automaton, missing)
		}
		words = l.Words()
	case len(args) > 0:
		for _, arg := range args {
			w, err := resolveWord(s, parser, arg)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
	default:
		scanner := bufio.NewScanner(a.stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			w, err := resolveWord(s, parser, line)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read words: %w", err)
		}
	}

	results := make([]recognition, 0, len(words))
	for _, w := range words {
		r := recognition{Word: spell(w)}
		if opts.trace {
			ok, edges, err := s.wb.Trace(ctx, opts.automaton, w)
			if err != nil {
				return err
			}
			r.Accepted = ok
			r.Path = make([]string, len(edges))
			for i, e := range edges {
				r.Path[i] = e.String()
			}
		} else {
			ok, err := s.wb.Recognize(ctx, opts.automaton, w)
			if err != nil {
				return err
			}
			r.Accepted = ok
		}
		results = append(results, r)
	}

	if opts.jsonOutput {
		return encodeJSON(a.stdout, results)
	}

	for _, r := range results {
		_, _ = fmt.Fprintf(a.stdout, "%s: %s\n", r.Word, verdict(r.Accepted))
		for _, step := range r.Path {
			_, _ = fmt.Fprintf(a.stdout, "  %s\n", step)
		}
	}
	return nil
}

// resolveWord parses a word argument. "@name" refers to a registered word.
func resolveWord(s *session, parser *config.Builder, arg string) (automaton.Word, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		return s.wb.Word(name)
	}
	return parser.ParseWord(arg), nil
}

// spell renders a word, using ε for the empty word.
func spell(w automaton.Word) string {
	if w.Len() == 0 {
		return string(automaton.Epsilon)
	}
	return w.String()
}

func verdict(ok bool) string {
	if ok {
		return "accepted"
	}
	return "rejected"
}
