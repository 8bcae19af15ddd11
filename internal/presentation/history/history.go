package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// CellStyle decorates the rendered symbol at a logical position, e.g. with terminal colors.
type CellStyle func(cell string, position int) string

type renderer struct {
	style CellStyle
}

// Option configures Render.
type Option func(*renderer)

// WithCellStyle applies style to every materialized cell.
func WithCellStyle(style CellStyle) Option {
	return func(r *renderer) {
		r.style = style
	}
}

// Render prints one line per frame. Lines are aligned on logical positions so
// that a column always shows the same cell across frames; cells a frame had
// not materialized yet are left blank.
//
//	tape_0:  0  origin: 0
//	tape_1:  1  origin: 0
//	tape_2: 11  origin: 1
func Render(frames []domain.Frame, opts ...Option) string {
	if len(frames) == 0 {
		return ""
	}
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}

	lo, hi := frames[0].Bounds()
	for _, f := range frames[1:] {
		flo, fhi := f.Bounds()
		lo = min(lo, flo)
		hi = max(hi, fhi)
	}
	labelWidth := len(strconv.Itoa(len(frames) - 1))

	var sb strings.Builder
	for i, f := range frames {
		sb.WriteString(fmt.Sprintf("tape_%-*d: %s  origin: %d\n", labelWidth, i, r.cells(f, lo, hi), f.Origin))
	}
	return sb.String()
}

// Line renders only the materialized cells of a frame.
func Line(f domain.Frame) string {
	var sb strings.Builder
	for _, c := range f.Cells {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func (r *renderer) cells(f domain.Frame, lo, hi int) string {
	flo, fhi := f.Bounds()
	var sb strings.Builder
	for p := lo; p <= hi; p++ {
		if p < flo || p > fhi {
			sb.WriteString(" ")
			continue
		}
		cell := f.Get(p).String()
		if r.style != nil {
			cell = r.style(cell, p)
		}
		sb.WriteString(cell)
	}
	return sb.String()
}
