package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	domainconfig "github.com/felixgeelhaar/automata/domain/config"
	"github.com/felixgeelhaar/automata/infrastructure/config"
	"github.com/felixgeelhaar/automata/infrastructure/logging"
)

// shellOptions holds options for the shell command.
type shellOptions struct {
	configPath string
	watch      bool
}

// newShellCmd creates the shell command.
func (a *App) newShellCmd() *cobra.Command {
	opts := &shellOptions{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Start an interactive shell for building automata and testing words.

A definition file can be imported at start; with --watch it is imported
again whenever it changes, replacing automata of the same name.

Examples:
  # Empty workbench
  automata shell

  # Start from a definition file and follow its changes
  automata shell -c automata.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Definition file to import")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-import the definition file when it changes")

	return cmd
}

// runShell runs the shell until quit or end of input.
func (a *App) runShell(ctx context.Context, opts *shellOptions) (err error) {
	if opts.watch && opts.configPath == "" {
		return fmt.Errorf("--watch requires a definition file (-c flag)")
	}

	var (
		doc    *domainconfig.Document
		result *config.BuildResult
	)
	if opts.configPath != "" {
		doc, result, err = loadDefinition(opts.configPath, false)
		if err != nil {
			return fmt.Errorf("failed to load definition: %w", err)
		}
	}

	s, err := a.openSession(doc, result)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close(context.WithoutCancel(ctx)))
	}()

	sh := NewShell(s.wb, a.stdin, a.stdout, s.doc.Separator)
	sh.Printf("Automata shell. Type help for the list of commands.\n")

	if !opts.watch {
		return sh.Run(ctx)
	}

	watcher, err := config.NewWatcher(opts.configPath, config.NewLoader())
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = watcher.Run(watchCtx, func(doc *domainconfig.Document, err error) {
			a.reload(sh, s, watcher.Path(), doc, err)
		})
	}()

	err = sh.Run(ctx)
	cancel()
	wg.Wait()
	return errors.Join(err, watcher.Close())
}

// reload imports a changed definition into the running session.
func (a *App) reload(sh *Shell, s *session, path string, doc *domainconfig.Document, err error) {
	if err == nil {
		var result *config.BuildResult
		result, err = config.NewBuilder(doc).Build()
		if err == nil {
			err = result.Register(s.wb.Store(), true)
		}
		if err == nil {
			logging.Info().
				Add(logging.Path(path)).
				Add(logging.Steps(len(result.Order))).
				Msg("definition reloaded")
			sh.Printf("\nreloaded %s: %d automata\n", path, len(result.Order))
			return
		}
	}

	logging.Warn().
		Add(logging.Path(path)).
		Add(logging.ErrorField(err)).
		Msg("definition reload failed")
	sh.Printf("\nreload of %s failed: %v\n", path, err)
}
