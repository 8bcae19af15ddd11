package history_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/stretchr/testify/assert"
)

func TestRender_AlignsOnOrigin(t *testing.T) {
	tp := tape.New()
	tp.Set(0, domain.One)
	tp.Set(-1, domain.One)

	got := history.Render(tp.History())
	want := strings.Join([]string{
		"tape_0:  0  origin: 0",
		"tape_1:  1  origin: 0",
		"tape_2: 11  origin: 1",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_LabelWidth(t *testing.T) {
	tp := tape.New()
	for i := 0; i < 10; i++ {
		tp.Set(i, domain.One)
	}
	lines := strings.Split(strings.TrimSpace(history.Render(tp.History())), "\n")
	assert.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "tape_0 : 0"), lines[0])
	assert.True(t, strings.HasPrefix(lines[10], "tape_10: 1111111111"), lines[10])
}

func TestRender_CellStyle(t *testing.T) {
	frames := []domain.Frame{{Cells: []domain.Symbol{domain.One, domain.Zero}, Origin: 1}}
	got := history.Render(frames, history.WithCellStyle(func(cell string, position int) string {
		if position == 0 {
			return "[" + cell + "]"
		}
		return cell
	}))
	assert.Equal(t, "tape_0: 1[0]  origin: 1\n", got)
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", history.Render(nil))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "0110", history.Line(domain.Frame{Cells: []domain.Symbol{0, 1, 1, 0}}))
}
