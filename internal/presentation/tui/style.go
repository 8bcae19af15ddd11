package tui

import (
	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/muesli/termenv"
)

// CellStyle colors non-blank cells and underlines the origin column.
func CellStyle() history.CellStyle {
	p := termenv.ColorProfile()
	one := p.Color("#f472b6")
	return func(cell string, position int) string {
		s := termenv.String(cell)
		if cell == "1" {
			s = s.Foreground(one).Bold()
		}
		if position == 0 {
			s = s.Underline()
		}
		return s.String()
	}
}
