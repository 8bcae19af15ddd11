package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// State is a control state of the machine.
// Non-negative values are the numbered states; Halt is the absorbing terminal state.
type State int

// Halt is the terminal state. It has no outgoing rule and is only entered via a rule's next state.
const Halt State = -1

// Initial is the state every fresh machine starts in.
const Initial State = 0

// StateOf returns the numbered non-halting state k.
func StateOf(k int) State {
	if k < 0 {
		panic(fmt.Sprintf("domain: negative state index %d", k))
	}
	return State(k)
}

// IsHalt reports whether s is the terminal state.
func (s State) IsHalt() bool {
	return s == Halt
}

// Index returns the numeric index of a non-halting state, or -1 for Halt.
func (s State) Index() int {
	if s.IsHalt() {
		return -1
	}
	return int(s)
}

// String renders numbered states as letters (a..z) while they fit, decimal otherwise.
// Halt renders as "H".
func (s State) String() string {
	switch {
	case s.IsHalt():
		return "H"
	case s >= 0 && s < 26:
		return string(rune('a' + int(s)))
	case s >= 0:
		return strconv.Itoa(int(s))
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState reverses String. It also accepts "halt" and plain decimal indexes.
func ParseState(s string) (State, error) {
	s = strings.TrimSpace(s)
	if s == "H" || strings.EqualFold(s, "halt") {
		return Halt, nil
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return State(s[0] - 'a'), nil
	}
	k, err := strconv.Atoi(s)
	if err != nil || k < 0 {
		return Halt, fmt.Errorf("%w: state %q", ErrInvalidValue, s)
	}
	return State(k), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if s < Halt {
		return nil, fmt.Errorf("%w: state %d", ErrInvalidValue, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
