package turing

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/aretw0/turing/internal/presentation/report"
	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/domain"
)

// Runner executes a bounded run and writes the rule table, the outcome and
// the tape history to Output. This allows for easy testing and integration
// with different frontends (CLI, TUI, etc).
type Runner struct {
	Output io.Writer

	// Headless suppresses the header line.
	Headless bool

	// Renderer, when set, switches the output to a Markdown report passed through it.
	Renderer ContentRenderer

	// CellStyle decorates each history cell in plain output, e.g. with terminal colors.
	CellStyle func(cell string, position int) string

	// NoHistory skips the tape history section.
	NoHistory bool
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner writing to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Run steps the engine up to steps times and writes the report.
// The returned error concerns output only; the run's own outcome is in the StepResult.
func (r *Runner) Run(engine *Engine, steps int) (domain.StepResult, error) {
	if r.Output == nil {
		return domain.StepResult{}, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	res := engine.Step(steps)
	return res, r.Write(engine, res)
}

// Write reports a finished run of engine without stepping it, e.g. one stepped
// elsewhere and restored from a snapshot.
func (r *Runner) Write(engine *Engine, res domain.StepResult) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	var frames []domain.Frame
	if !r.NoHistory {
		frames = engine.History()
	}

	if r.Renderer != nil {
		md := report.Report{
			Name:     engine.Name,
			Rules:    engine.Rules(),
			Result:   res,
			State:    engine.State(),
			Position: engine.Position(),
			History:  frames,
		}.Markdown()
		out, err := r.Renderer(md)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		_, err = io.WriteString(r.Output, out)
		return err
	}

	w := &errWriter{w: r.Output}
	if !r.Headless {
		title := engine.Name
		if title == "" {
			title = "Turing"
		}
		w.printf("--- %s (%d states) ---\n", title, engine.Rules().StateCount())
	}
	w.printf("%s\n", table.Render(engine.Rules()))
	w.printf("%s\n", res)
	w.printf("state: %s  head: %d  steps: %d\n", engine.State(), engine.Position(), engine.Steps())
	if len(frames) > 0 {
		var opts []history.Option
		if r.CellStyle != nil {
			opts = append(opts, history.WithCellStyle(r.CellStyle))
		}
		w.printf("\n%s", history.Render(frames, opts...))
	}
	return w.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
