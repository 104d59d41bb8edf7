// Package cliff is the 4x12 cliff-walking grid. Stepping into the cliff
// strip costs -100 and drops the agent back at the start, every other step
// costs -1. The goal cell is absorbing.
package cliff

import (
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/types"
)

const (
	Height = 4
	Width  = 12
)

var (
	Start = &gridenv.Cell{Row: 3, Col: 0}
	Goal  = &gridenv.Cell{Row: 3, Col: 11}
)

type Environment struct {
	states []types.State
}

var _ types.Enumerable = &Environment{}

func NewEnvironment() *Environment {
	return &Environment{
		states: gridenv.Cells(Height, Width),
	}
}

func (e *Environment) Start() types.State {
	return Start
}

func (e *Environment) States() []types.State {
	return e.states
}

func (e *Environment) Actions(types.State) []types.Action {
	return gridenv.AllMoves
}

func (e *Environment) Terminal(state types.State) bool {
	cell, ok := state.(*gridenv.Cell)
	return ok && cell.Eq(Goal)
}

// InCliff reports whether the cell is part of the cliff strip
func InCliff(cell *gridenv.Cell) bool {
	return cell.Row == 3 && cell.Col > 0 && cell.Col < Width-1
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	cell, ok := state.(*gridenv.Cell)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	move, ok := action.(*gridenv.Move)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}

	next := &gridenv.Cell{Row: cell.Row + move.DRow, Col: cell.Col + move.DCol}
	if next.Row < 0 {
		next.Row = 0
	}
	if next.Row >= Height {
		next.Row = Height - 1
	}
	if next.Col < 0 {
		next.Col = 0
	}
	if next.Col >= Width {
		next.Col = Width - 1
	}

	if InCliff(next) {
		return Start, -100, nil
	}
	return next, -1, nil
}
