package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(state State, pos, steps int, cells []Symbol, origin int, frames int) *MachineSnapshot {
	return &MachineSnapshot{
		State:    state,
		Position: pos,
		Steps:    steps,
		Tape:     Frame{Cells: cells, Origin: origin},
		History:  make([]Frame, frames),
	}
}

func TestDiff(t *testing.T) {
	intPtr := func(i int) *int { return &i }
	statePtr := func(s State) *State { return &s }
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name     string
		old      *MachineSnapshot
		new      *MachineSnapshot
		wantDiff *MachineDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  snapshot(StateOf(1), 1, 1, []Symbol{One, Zero}, 0, 2),
			wantDiff: &MachineDiff{
				State:    statePtr(StateOf(1)),
				Position: intPtr(1),
				Steps:    intPtr(1),
				Halted:   boolPtr(false),
				Cells:    []CellChange{{Position: 0, Symbol: One}},
				Frames:   2,
			},
		},
		{
			name:     "No Changes",
			old:      snapshot(StateOf(0), 0, 3, []Symbol{One}, 0, 4),
			new:      snapshot(StateOf(0), 0, 3, []Symbol{One}, 0, 4),
			wantDiff: nil,
		},
		{
			name:     "Growth alone is not a change",
			old:      snapshot(StateOf(0), 0, 3, []Symbol{One}, 0, 4),
			new:      snapshot(StateOf(0), 0, 3, []Symbol{Zero, One, Zero}, 1, 4),
			wantDiff: nil,
		},
		{
			name: "Left write after growth",
			old:  snapshot(StateOf(1), 0, 1, []Symbol{One, Zero}, 0, 2),
			new:  snapshot(StateOf(0), -1, 2, []Symbol{One, One, Zero}, 1, 3),
			wantDiff: &MachineDiff{
				State:    statePtr(StateOf(0)),
				Position: intPtr(-1),
				Steps:    intPtr(2),
				Cells:    []CellChange{{Position: -1, Symbol: One}},
				Frames:   1,
			},
		},
		{
			name: "Halting",
			old:  snapshot(StateOf(1), 0, 5, []Symbol{One, Zero}, 0, 6),
			new:  snapshot(Halt, 1, 6, []Symbol{One, One}, 0, 7),
			wantDiff: &MachineDiff{
				State:    statePtr(Halt),
				Position: intPtr(1),
				Steps:    intPtr(6),
				Halted:   boolPtr(true),
				Cells:    []CellChange{{Position: 1, Symbol: One}},
				Frames:   1,
			},
		},
		{
			name: "Cell cleared",
			old:  snapshot(StateOf(0), 0, 1, []Symbol{One, One}, 0, 0),
			new:  snapshot(StateOf(0), 0, 1, []Symbol{One, Zero}, 0, 0),
			wantDiff: &MachineDiff{
				Cells: []CellChange{{Position: 1, Symbol: Zero}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			assert.Equal(t, tt.wantDiff, got)
			assert.Equal(t, tt.wantDiff == nil, got.IsEmpty())
		})
	}
}

func TestDiff_NilNew(t *testing.T) {
	assert.Nil(t, Diff(snapshot(StateOf(0), 0, 0, nil, 0, 0), nil))
}

func TestDiff_JSON(t *testing.T) {
	old := snapshot(StateOf(0), 0, 0, []Symbol{Zero}, 0, 1)
	next := snapshot(StateOf(1), 1, 1, []Symbol{One, Zero}, 0, 2)

	data, err := json.Marshal(Diff(old, next))
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"b","position":1,"steps":1,"cells":[{"position":0,"symbol":"1"}],"frames":1}`, string(data))
}
