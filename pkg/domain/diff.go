package domain

// MachineDiff represents the changes between two snapshots of the same machine.
// It is designed to be serialized to JSON for partial updates on the client.
type MachineDiff struct {
	State    *State `json:"state,omitempty"`
	Position *int   `json:"position,omitempty"`
	Steps    *int   `json:"steps,omitempty"`
	Halted   *bool  `json:"halted,omitempty"`

	// Cells lists every logical position whose symbol changed, ascending.
	// Growth alone is not a change: new cells read as blank on both sides.
	Cells []CellChange `json:"cells,omitempty"`

	// Frames is the number of history frames appended.
	Frames int `json:"frames,omitempty"`
}

// CellChange is the new symbol at a tape position.
type CellChange struct {
	Position int    `json:"position"`
	Symbol   Symbol `json:"symbol"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *MachineSnapshot) *MachineDiff {
	if newSnap == nil {
		return nil
	}
	if oldSnap == nil {
		halted := newSnap.Halted()
		return &MachineDiff{
			State:    &newSnap.State,
			Position: &newSnap.Position,
			Steps:    &newSnap.Steps,
			Halted:   &halted,
			Cells:    diffCells(Frame{}, newSnap.Tape),
			Frames:   len(newSnap.History),
		}
	}

	diff := &MachineDiff{}
	if oldSnap.State != newSnap.State {
		diff.State = &newSnap.State
	}
	if oldSnap.Position != newSnap.Position {
		diff.Position = &newSnap.Position
	}
	if oldSnap.Steps != newSnap.Steps {
		diff.Steps = &newSnap.Steps
	}
	if halted := newSnap.Halted(); oldSnap.Halted() != halted {
		diff.Halted = &halted
	}

	diff.Cells = diffCells(oldSnap.Tape, newSnap.Tape)
	if n := len(newSnap.History) - len(oldSnap.History); n > 0 {
		diff.Frames = n
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty reports whether the diff carries no change.
func (d *MachineDiff) IsEmpty() bool {
	return d == nil ||
		d.State == nil &&
			d.Position == nil &&
			d.Steps == nil &&
			d.Halted == nil &&
			len(d.Cells) == 0 &&
			d.Frames == 0
}

func diffCells(oldTape, newTape Frame) []CellChange {
	lo, hi := newTape.Bounds()
	if len(oldTape.Cells) > 0 {
		oldLo, oldHi := oldTape.Bounds()
		lo, hi = min(lo, oldLo), max(hi, oldHi)
	}

	var changes []CellChange
	for p := lo; p <= hi; p++ {
		if sym := newTape.Get(p); sym != oldTape.Get(p) {
			changes = append(changes, CellChange{Position: p, Symbol: sym})
		}
	}
	return changes
}
