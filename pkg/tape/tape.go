package tape

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Tape is a lazily-materialized, two-way infinite binary tape with write history.
// It is not safe for concurrent use.
type Tape struct {
	cells   []domain.Symbol
	origin  int
	history []domain.Frame
	writes  int
	retain  bool
}

// Option configures a Tape.
type Option func(*Tape)

// WithoutHistory disables history retention. Only the initial frame is kept;
// Writes still counts every write.
func WithoutHistory() Option {
	return func(t *Tape) {
		t.retain = false
	}
}

// New creates a blank tape with a single materialized cell at position 0.
func New(opts ...Option) *Tape {
	t := &Tape{
		cells:  []domain.Symbol{domain.Blank},
		origin: 0,
		retain: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.history = []domain.Frame{t.frame()}
	return t
}

// Restore rebuilds a tape from persisted state. A nil history restarts it from the current cells.
func Restore(current domain.Frame, history []domain.Frame, writes int, opts ...Option) *Tape {
	t := &Tape{
		cells:  current.Clone().Cells,
		origin: current.Origin,
		writes: writes,
		retain: true,
	}
	if len(t.cells) == 0 {
		t.cells = []domain.Symbol{domain.Blank}
		t.origin = 0
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(history) == 0 {
		t.history = []domain.Frame{t.frame()}
		return t
	}
	t.history = make([]domain.Frame, len(history))
	for i, f := range history {
		t.history[i] = f.Clone()
	}
	return t
}

// Get returns the symbol at position. Positions outside the materialized range read as blank.
func (t *Tape) Get(position int) domain.Symbol {
	i := t.origin + position
	if i < 0 || i >= len(t.cells) {
		return domain.Blank
	}
	return t.cells[i]
}

// Set writes symbol at position, growing the tape as needed, and records a history frame.
func (t *Tape) Set(position int, symbol domain.Symbol) {
	i := t.origin + position

	switch {
	case i < 0:
		diff := -i
		t.cells = Grow(t.cells, diff, domain.Left)
		t.origin += diff
		t.cells[0] = symbol
	case i >= len(t.cells):
		t.cells = Grow(t.cells, i-len(t.cells), domain.Right)
		t.cells[i] = symbol
	default:
		t.cells[i] = symbol
	}

	t.writes++
	if t.retain {
		t.history = append(t.history, t.frame())
	}
}

// Extend grows the tape by one cell in the given direction without recording a write.
// Left growth shifts the origin so existing positions keep their symbols.
func (t *Tape) Extend(direction domain.Shift) {
	t.cells = Grow(t.cells, 1, direction)
	if direction == domain.Left {
		t.origin++
	}
}

// Contains reports whether position lies inside the materialized range.
func (t *Tape) Contains(position int) bool {
	i := t.origin + position
	return i >= 0 && i < len(t.cells)
}

// Len is the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Origin is the slice index of logical position 0.
func (t *Tape) Origin() int {
	return t.origin
}

// Bounds returns the lowest and highest materialized logical positions.
func (t *Tape) Bounds() (lo, hi int) {
	return -t.origin, len(t.cells) - 1 - t.origin
}

// Writes is the number of Set calls since the tape was created.
func (t *Tape) Writes() int {
	return t.writes
}

// RetainsHistory reports whether every write is recorded.
func (t *Tape) RetainsHistory() bool {
	return t.retain
}

// Cells returns a copy of the materialized cells.
func (t *Tape) Cells() []domain.Symbol {
	out := make([]domain.Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// Current returns a frame of the live tape.
func (t *Tape) Current() domain.Frame {
	return t.frame()
}

// History returns the recorded frames, oldest first: the initial blank tape and one frame per write.
// Frames must be treated as read-only.
func (t *Tape) History() []domain.Frame {
	out := make([]domain.Frame, len(t.history))
	copy(out, t.history)
	return out
}

// Frame returns history entry i.
func (t *Tape) Frame(i int) (domain.Frame, bool) {
	if i < 0 || i >= len(t.history) {
		return domain.Frame{}, false
	}
	return t.history[i], true
}

func (t *Tape) frame() domain.Frame {
	return domain.Frame{Cells: t.Cells(), Origin: t.origin}
}
