package domain

import "fmt"

// Symbol is the value of a single tape cell.
// The zero value is the blank symbol.
type Symbol uint8

const (
	// Zero is the blank symbol. Every unwritten cell reads as Zero.
	Zero Symbol = iota
	// One is the only non-blank symbol of the binary alphabet.
	One
)

// Blank is the symbol unmaterialized cells read as.
const Blank = Zero

// Symbols returns the alphabet in canonical order.
func Symbols() []Symbol {
	return []Symbol{Zero, One}
}

func (s Symbol) String() string {
	switch s {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
}

// ParseSymbol converts the textual form ("0" or "1") back into a Symbol.
func ParseSymbol(s string) (Symbol, error) {
	switch s {
	case "0":
		return Zero, nil
	case "1":
		return One, nil
	default:
		return Zero, fmt.Errorf("%w: symbol %q", ErrInvalidValue, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if s > One {
		return nil, fmt.Errorf("%w: symbol %d", ErrInvalidValue, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	v, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
