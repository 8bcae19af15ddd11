package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/session"
)

// DefaultSteps is the default step budget of the run command.
const DefaultSteps = 9

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Rules     RulesOptions
	Steps     int
	Headless  bool
	Markdown  bool
	NoHistory bool

	// SessionID persists the machine between runs: each run resumes where the last one stopped.
	SessionID string
	// Fresh discards the stored session before running.
	Fresh bool
	Store StoreOptions
}

// Execute handles the 'run' command logic, dispatching to session mode when a session ID is set.
func Execute(ctx context.Context, opts RunOptions, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	runner := newRunner(opts, w)

	if opts.SessionID != "" {
		return runSession(ctx, opts, runner, logger)
	}

	rules, err := LoadRules(opts.Rules)
	if err != nil {
		return err
	}
	engineOpts := append(engineOptions(logger), turing.WithName(rules.Name))
	if opts.NoHistory {
		engineOpts = append(engineOpts, turing.WithoutHistory())
	}
	engine, err := turing.New(rules.Table, engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing machine: %w", err)
	}

	_, err = runner.Run(engine, opts.Steps)
	return err
}

func runSession(ctx context.Context, opts RunOptions, runner *turing.Runner, logger *slog.Logger) error {
	mgr, err := NewManager(ctx, opts.Store, logger, session.WithEngineOptions(engineOptions(logger)...))
	if err != nil {
		return err
	}
	id := opts.SessionID

	if opts.Fresh {
		if err := mgr.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	snap, err := mgr.Load(ctx, id)
	switch {
	case err == nil:
		if !opts.Headless {
			printSystemMessage(runner.Output, "Resuming session %s at step %d", id, snap.Steps)
		}
	case errors.Is(err, domain.ErrSessionNotFound):
		rules, err := LoadRules(opts.Rules)
		if err != nil {
			return err
		}
		var createOpts []turing.Option
		if opts.NoHistory {
			createOpts = append(createOpts, turing.WithoutHistory())
		}
		if _, _, err := mgr.Create(ctx, id, rules.Table, createOpts...); err != nil {
			return err
		}
		if !opts.Headless {
			printSystemMessage(runner.Output, "Created session %s from %s", id, rules.Name)
		}
	default:
		return fmt.Errorf("failed to load session: %w", err)
	}

	res, snap, err := mgr.Step(ctx, id, opts.Steps)
	if err != nil {
		return err
	}
	engine, err := turing.Restore(snap, turing.WithName(id))
	if err != nil {
		return err
	}
	return runner.Write(engine, res)
}

func engineOptions(logger *slog.Logger) []turing.Option {
	return []turing.Option{
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
}

// newRunner picks rich or plain output: banner, colors and glamour only on a terminal.
func newRunner(opts RunOptions, w io.Writer) *turing.Runner {
	runner := turing.NewRunner(w)
	runner.Headless = opts.Headless
	runner.NoHistory = opts.NoHistory

	rich := !opts.Headless && isTerminal(w)
	if rich {
		tui.PrintBanner(w, turing.Version)
		runner.CellStyle = tui.CellStyle()
	}
	if opts.Markdown {
		if rich {
			runner.Renderer = tui.NewRenderer()
		} else {
			runner.Renderer = func(md string) (string, error) { return md, nil }
		}
	}
	return runner
}
