package domain

// Frame is one tape history entry: a copy of the cells and the origin valid when it was taken.
// Positions are resolved against the frame's own origin, so frames stay readable
// after the live tape grows to the left.
type Frame struct {
	Cells  []Symbol `json:"cells"`
	Origin int      `json:"origin"`
}

// Get returns the symbol at a logical position as of this frame.
func (f Frame) Get(position int) Symbol {
	i := f.Origin + position
	if i < 0 || i >= len(f.Cells) {
		return Blank
	}
	return f.Cells[i]
}

// Bounds returns the lowest and highest materialized logical positions.
func (f Frame) Bounds() (lo, hi int) {
	return -f.Origin, len(f.Cells) - 1 - f.Origin
}

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	cells := make([]Symbol, len(f.Cells))
	copy(cells, f.Cells)
	return Frame{Cells: cells, Origin: f.Origin}
}
