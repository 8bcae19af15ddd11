package domain

import (
	"fmt"
	"strings"
)

// Shift is the direction the head moves after a write.
type Shift uint8

const (
	Right Shift = iota
	Left
)

// Shifts returns both directions in canonical order.
func Shifts() []Shift {
	return []Shift{Right, Left}
}

// Delta is the change applied to the head position: +1 for Right, -1 for Left.
func (s Shift) Delta() int {
	if s == Left {
		return -1
	}
	return 1
}

func (s Shift) String() string {
	switch s {
	case Right:
		return "R"
	case Left:
		return "L"
	default:
		return fmt.Sprintf("Shift(%d)", uint8(s))
	}
}

// ParseShift accepts "R"/"L" as well as the spelled-out names, case-insensitively.
func ParseShift(s string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "right":
		return Right, nil
	case "l", "left":
		return Left, nil
	default:
		return Right, fmt.Errorf("%w: shift %q", ErrInvalidValue, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shift) MarshalText() ([]byte, error) {
	if s > Left {
		return nil, fmt.Errorf("%w: shift %d", ErrInvalidValue, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shift) UnmarshalText(text []byte) error {
	v, err := ParseShift(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
