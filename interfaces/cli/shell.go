package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/felixgeelhaar/automata/application"
	"github.com/felixgeelhaar/automata/domain/automaton"
	"github.com/felixgeelhaar/automata/domain/language"
	"github.com/felixgeelhaar/automata/infrastructure/config"
	"github.com/felixgeelhaar/automata/infrastructure/logging"
)

// ErrUsage is returned for a malformed shell command.
var ErrUsage = errors.New("usage")

const (
	shellPrompt      = "automata> "
	transitionPrompt = "transition> "

	maxStarPower    = 16
	maxLanguageSize = 100000
)

// Shell is a line-oriented command interpreter over a workbench. Command
// errors are printed and never end the session.
type Shell struct {
	wb        *application.Workbench
	in        *bufio.Scanner
	separator string

	mu  sync.Mutex
	out io.Writer

	commands map[string]shellCommand
}

type shellCommand struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// NewShell creates a shell reading commands from in. Words are split on
// separator when it is set, one symbol per rune otherwise.
func NewShell(wb *application.Workbench, in io.Reader, out io.Writer, separator string) *Shell {
	s := &Shell{
		wb:        wb,
		in:        bufio.NewScanner(in),
		separator: separator,
		out:       out,
	}
	s.commands = map[string]shellCommand{
		"automaton": {
			usage: "automaton create <name> <dfa|nfa|enfa> <a,b> <q0,q1> <initial> <accepting|->",
			help:  "Create an automaton; transitions follow one per line, then end or cancel",
			run:   s.automatonCmd,
		},
		"transition": {
			usage: "transition <automaton> <from> <symbol> <to>",
			help:  "Add a transition to an automaton",
			run:   s.transitionCmd,
		},
		"show": {
			usage: "show <automaton>",
			help:  "Print an automaton's table",
			run:   s.showCmd,
		},
		"remove": {
			usage: "remove <automaton>",
			help:  "Delete an automaton",
			run:   s.removeCmd,
		},
		"recognize": {
			usage: "recognize <automaton> [word|@name]",
			help:  "Decide whether the automaton accepts a word",
			run:   s.recognizeCmd,
		},
		"path": {
			usage: "path <automaton> [word|@name]",
			help:  "Print the transitions followed while recognizing a word",
			run:   s.pathCmd,
		},
		"list": {
			usage: "list",
			help:  "List automata, words and languages",
			run:   s.listCmd,
		},
		"word": {
			usage: "word <set|show|length|mirror|factors|prefix|suffix|periodic|primitive> <name> [arg]",
			help:  "Create and inspect words",
			run:   s.wordCmd,
		},
		"language": {
			usage: "language <set|show|size|union|concat|intersection|difference|quotient|star|mirror|accepted> ...",
			help:  "Create languages and combine them",
			run:   s.languageCmd,
		},
	}
	return s
}

// Printf writes to the shell output. It is safe to call from other
// goroutines while the shell runs.
func (s *Shell) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// Run reads and executes commands until quit, end of input or ctx is
// cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Printf("%s", shellPrompt)

		line, ok := s.readLine()
		if !ok {
			s.Printf("\n")
			return s.in.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			s.printHelp()
			continue
		}

		cmd, found := s.commands[fields[0]]
		if !found {
			s.Printf("unknown command %q, type help\n", fields[0])
			continue
		}
		if err := cmd.run(ctx, fields[1:]); err != nil {
			if errors.Is(err, ErrUsage) {
				s.Printf("usage: %s\n", cmd.usage)
				continue
			}
			s.Printf("error: %v\n", err)
			logging.Debug().
				Add(logging.Component("shell")).
				Add(logging.Operation(fields[0])).
				Add(logging.ErrorField(err)).
				Msg("command failed")
		}
	}
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) printHelp() {
	order := []string{"automaton", "transition", "show", "remove", "recognize", "path", "list", "word", "language"}
	s.Printf("Commands:\n")
	for _, name := range order {
		cmd := s.commands[name]
		s.Printf("  %s\n      %s\n", cmd.usage, cmd.help)
	}
	s.Printf("  help\n  quit\n")
	s.Printf("Words: one symbol per character, ε for the empty word, @name for a saved word.\n")
}

// parseWord reads a word argument. "@name" refers to a saved word.
func (s *Shell) parseWord(arg string) (automaton.Word, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		return s.wb.Word(name)
	}
	return config.ParseWord(arg, s.separator), nil
}

// wordArg joins the remaining arguments into one word, so "a b" and "ab"
// spell the same word.
func (s *Shell) wordArg(args []string) (automaton.Word, error) {
	if len(args) == 1 {
		return s.parseWord(args[0])
	}
	if s.separator != "" {
		return s.parseWord(strings.Join(args, s.separator))
	}
	return s.parseWord(strings.Join(args, ""))
}

func splitList(arg string) []string {
	if arg == "-" {
		return nil
	}
	return strings.Split(arg, ",")
}

func (s *Shell) automatonCmd(ctx context.Context, args []string) error {
	if len(args) != 7 || args[0] != "create" {
		return ErrUsage
	}
	name := args[1]
	kind, err := automaton.ParseKind(args[2])
	if err != nil {
		return err
	}

	def := automaton.Definition{Initial: automaton.State(args[5])}
	for _, sym := range splitList(args[3]) {
		def.Alphabet = append(def.Alphabet, automaton.Symbol(sym))
	}
	for _, st := range splitList(args[4]) {
		def.States = append(def.States, automaton.State(st))
	}
	for _, st := range splitList(args[6]) {
		def.Accepting = append(def.Accepting, automaton.State(st))
	}

	b, err := s.wb.Begin(name, kind, def)
	if err != nil {
		return err
	}

	s.Printf("Creating %s automaton %q. Enter transitions as: from symbol to\n", kind, name)
	s.Printf("Finish with end, abort with cancel.\n")
	for {
		s.Printf("%s", transitionPrompt)
		line, ok := s.readLine()
		if !ok {
			_ = b.Cancel(ctx)
			return fmt.Errorf("input ended, automaton %s discarded", name)
		}

		switch line {
		case "":
			continue
		case "end":
			if _, err := b.Commit(ctx); err != nil {
				_ = b.Cancel(ctx)
				return fmt.Errorf("automaton %s discarded: %w", name, err)
			}
			s.Printf("Automaton %q created with %d transitions\n", name, len(b.Staged()))
			return nil
		case "cancel":
			if err := b.Cancel(ctx); err != nil {
				return err
			}
			s.Printf("Creation cancelled\n")
			return nil
		}

		parts := strings.Fields(line)
		if len(parts) != 3 {
			s.Printf("invalid format, expected: from symbol to\n")
			continue
		}
		if err := b.Stage(ctx, automaton.State(parts[0]), automaton.Symbol(parts[1]), automaton.State(parts[2])); err != nil {
			s.Printf("error: %v\n", err)
			continue
		}
		s.Printf("Added: %s --%s--> %s\n", parts[0], parts[1], parts[2])
	}
}

func (s *Shell) transitionCmd(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return ErrUsage
	}
	edge := automaton.Edge{
		From:   automaton.State(args[1]),
		Symbol: automaton.Symbol(args[2]),
		To:     automaton.State(args[3]),
	}
	if err := s.wb.AddTransition(ctx, args[0], edge); err != nil {
		return err
	}
	s.Printf("Transition added: %s\n", edge)
	return nil
}

func (s *Shell) showCmd(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	a, err := s.wb.Get(args[0])
	if err != nil {
		return err
	}

	s.Printf("Automaton %s (%s)\n", args[0], a.Kind())
	s.Printf("  Alphabet: %v\n", a.Alphabet())
	s.Printf("  States: %v\n", a.States())
	s.Printf("  Initial: %s\n", a.Initial())
	s.Printf("  Accepting: %v\n", a.Accepting())
	s.Printf("  Complete: %v\n", a.IsComplete())
	s.Printf("  Transitions:\n")
	for _, e := range a.Edges() {
		s.Printf("    %s\n", e)
	}
	return nil
}

func (s *Shell) removeCmd(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := s.wb.Remove(args[0]); err != nil {
		return err
	}
	s.Printf("Automaton %q removed\n", args[0])
	return nil
}

func (s *Shell) recognizeCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	w, err := s.wordArg(args[1:])
	if err != nil {
		return err
	}
	ok, err := s.wb.Recognize(ctx, args[0], w)
	if err != nil {
		return err
	}
	s.Printf("%s is %s by %s\n", spell(w), verdict(ok), args[0])
	return nil
}

func (s *Shell) pathCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	w, err := s.wordArg(args[1:])
	if err != nil {
		return err
	}
	ok, edges, err := s.wb.Trace(ctx, args[0], w)
	if err != nil {
		return err
	}
	s.Printf("Path for %s:\n", spell(w))
	for _, e := range edges {
		s.Printf("  %s\n", e)
	}
	s.Printf("%s is %s\n", spell(w), verdict(ok))
	return nil
}

func (s *Shell) listCmd(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s.Printf("Automata: %s\n", strings.Join(s.wb.List(), ", "))
	s.Printf("Words: %s\n", strings.Join(s.wb.Words(), ", "))
	s.Printf("Languages: %s\n", strings.Join(s.wb.Languages(), ", "))
	return nil
}

func (s *Shell) wordCmd(_ context.Context, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	op, name := args[0], args[1]

	switch op {
	case "set", "show", "length", "mirror", "factors", "prefix", "suffix", "periodic", "primitive":
	default:
		return ErrUsage
	}

	if op == "set" {
		if len(args) < 3 {
			return ErrUsage
		}
		w, err := s.wordArg(args[2:])
		if err != nil {
			return err
		}
		if err := s.wb.SaveWord(name, w); err != nil {
			return err
		}
		s.Printf("Word %q = %s\n", name, spell(w))
		return nil
	}

	w, err := s.wb.Word(name)
	if err != nil {
		return err
	}

	switch op {
	case "show":
		s.Printf("%s = %s\n", name, spell(w))
	case "length":
		s.Printf("%d\n", w.Len())
	case "mirror":
		s.Printf("%s\n", spell(language.Mirror(w)))
	case "factors":
		factors := language.Factors(w)
		spelled := make([]string, len(factors))
		for i, f := range factors {
			spelled[i] = spell(f)
		}
		s.Printf("{%s}\n", strings.Join(spelled, ", "))
	case "prefix", "suffix", "periodic":
		if len(args) != 3 {
			return ErrUsage
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[2])
		}
		switch op {
		case "prefix":
			s.Printf("%s\n", spell(language.Prefix(w, n)))
		case "suffix":
			s.Printf("%s\n", spell(language.Suffix(w, n)))
		default:
			s.Printf("%v\n", language.IsPeriodic(w, n))
		}
	case "primitive":
		s.Printf("%v\n", language.IsPrimitive(w))
	default:
		return ErrUsage
	}
	return nil
}

func (s *Shell) languageCmd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	op, name := args[0], args[1]

	switch op {
	case "set":
		words := make([]automaton.Word, 0, len(args)-2)
		for _, arg := range args[2:] {
			w, err := s.parseWord(arg)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
		return s.saveLanguage(name, language.New(words))
	case "show", "size":
		l, err := s.wb.Language(name)
		if err != nil {
			return err
		}
		if op == "size" {
			s.Printf("%d\n", l.Size())
			return nil
		}
		s.Printf("%s = %s\n", name, l)
		return nil
	case "union", "concat", "intersection", "difference", "quotient":
		if len(args) != 4 {
			return ErrUsage
		}
		l1, l2, err := s.languagePair(args[2], args[3])
		if err != nil {
			return err
		}
		var out *language.Language
		switch op {
		case "union":
			out = l1.Union(l2)
		case "concat":
			out = l1.Concat(l2)
		case "intersection":
			out = l1.Intersection(l2)
		case "difference":
			out = l1.Difference(l2)
		default:
			out = l1.RightQuotient(l2)
		}
		return s.saveLanguage(name, out)
	case "star":
		if len(args) != 4 {
			return ErrUsage
		}
		l, err := s.wb.Language(args[2])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[3])
		}
		if n > maxStarPower {
			return fmt.Errorf("star power %d exceeds %d", n, maxStarPower)
		}
		if size := starSize(l, n); size > maxLanguageSize {
			return fmt.Errorf("star of %s up to power %d may hold %d words, limit is %d", args[2], n, size, maxLanguageSize)
		}
		out, err := l.Star(n)
		if err != nil {
			return err
		}
		return s.saveLanguage(name, out)
	case "mirror":
		if len(args) != 3 {
			return ErrUsage
		}
		l, err := s.wb.Language(args[2])
		if err != nil {
			return err
		}
		return s.saveLanguage(name, l.Mirror())
	case "accepted":
		if len(args) != 4 {
			return ErrUsage
		}
		out, err := s.wb.AcceptedBy(ctx, args[2], args[3])
		if err != nil {
			return err
		}
		if missing, err := s.wb.MissingSymbols(args[2], args[3]); err == nil && len(missing) > 0 {
			s.Printf("warning: %s uses symbols outside the alphabet of %s: %v\n", args[3], args[2], missing)
		}
		return s.saveLanguage(name, out)
	default:
		return ErrUsage
	}
}

// starSize bounds the number of words of L^0 … L^n by 1 + |L| + … + |L|^n,
// stopping as soon as the bound passes maxLanguageSize.
func starSize(l *language.Language, n int) int {
	total, power := 1, 1
	for i := 1; i <= n && total <= maxLanguageSize; i++ {
		power *= l.Size()
		if power > maxLanguageSize {
			return maxLanguageSize + 1
		}
		total += power
	}
	return total
}

func (s *Shell) languagePair(a, b string) (*language.Language, *language.Language, error) {
	l1, err := s.wb.Language(a)
	if err != nil {
		return nil, nil, err
	}
	l2, err := s.wb.Language(b)
	if err != nil {
		return nil, nil, err
	}
	return l1, l2, nil
}

func (s *Shell) saveLanguage(name string, l *language.Language) error {
	if err := s.wb.SaveLanguage(name, l); err != nil {
		return err
	}
	s.Printf("%s = %s\n", name, l)
	return nil
}
