// Package gridworld is the 5x5 grid with two teleporting states: A sends
// every action to A' with reward +10, B sends every action to B' with +5.
// Moves off the grid leave the agent in place with reward -1, every other
// move is free. There is no terminal state; the discount does the work.
package gridworld

import (
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/types"
)

const (
	Size     = 5
	Discount = 0.9
)

var (
	APos      = &gridenv.Cell{Row: 0, Col: 1}
	APrimePos = &gridenv.Cell{Row: 4, Col: 1}
	BPos      = &gridenv.Cell{Row: 0, Col: 3}
	BPrimePos = &gridenv.Cell{Row: 2, Col: 3}
)

type Environment struct {
	states []types.State
}

var _ types.Enumerable = &Environment{}

func NewEnvironment() *Environment {
	return &Environment{
		states: gridenv.Cells(Size, Size),
	}
}

func (e *Environment) Start() types.State {
	return &gridenv.Cell{Row: 0, Col: 0}
}

func (e *Environment) States() []types.State {
	return e.states
}

func (e *Environment) Actions(types.State) []types.Action {
	return gridenv.AllMoves
}

func (e *Environment) Terminal(types.State) bool {
	return false
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

	if cell.Eq(APos) {
		return APrimePos, 10, nil
	}
	if cell.Eq(BPos) {
		return BPrimePos, 5, nil
	}

	next := &gridenv.Cell{Row: cell.Row + move.DRow, Col: cell.Col + move.DCol}
	if next.Row < 0 || next.Row >= Size || next.Col < 0 || next.Col >= Size {
		return cell, -1, nil
	}
	return next, 0, nil
}
