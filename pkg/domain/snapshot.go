package domain

// MachineSnapshot is the serializable state of a machine.
// Stores persist it; the engine can be restored from it.
type MachineSnapshot struct {
	Rules    []Entry `json:"rules"`
	Tape     Frame   `json:"tape"`
	History  []Frame `json:"history,omitempty"`
	Position int     `json:"position"`
	State    State   `json:"state"`
	Steps    int     `json:"steps"`
	Writes   int     `json:"writes"`

	// NoHistory records that the machine was created without history retention.
	NoHistory bool `json:"no_history,omitempty"`

	// Sealed carries an encrypted snapshot. Stores treat it as opaque; only
	// State and Steps are kept in the clear next to it.
	Sealed []byte `json:"sealed,omitempty"`
}

// Halted reports whether the snapshot is in the terminal state.
func (s *MachineSnapshot) Halted() bool {
	return s.State.IsHalt()
}

// Clone returns a deep copy so callers cannot mutate stored state through shared slices.
func (s *MachineSnapshot) Clone() *MachineSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Rules = make([]Entry, len(s.Rules))
	copy(c.Rules, s.Rules)
	c.Tape = s.Tape.Clone()
	if s.Sealed != nil {
		c.Sealed = append([]byte(nil), s.Sealed...)
	}
	if s.History != nil {
		c.History = make([]Frame, len(s.History))
		for i, f := range s.History {
			c.History[i] = f.Clone()
		}
	}
	return &c
}
