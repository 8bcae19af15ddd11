package tape

import "github.com/aretw0/turing/pkg/domain"

// Grow extends cells with blanks and returns the result.
// Left growth inserts amount blanks at the front. Right growth appends amount+1
// blanks: Set relies on this when it passes the distance past the last cell,
// and the engine's one-cell bounds maintenance therefore adds two cells on the right.
func Grow(cells []domain.Symbol, amount int, direction domain.Shift) []domain.Symbol {
	if amount < 0 {
		amount = 0
	}
	if direction == domain.Left {
		grown := make([]domain.Symbol, amount+len(cells))
		copy(grown[amount:], cells)
		return grown
	}
	return append(cells, make([]domain.Symbol, amount+1)...)
}
