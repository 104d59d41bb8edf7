// Package maze is the 6x9 maze with a wall of obstacle cells. Reaching the
// goal pays 1, everything else pays 0; moves into walls or off the grid
// leave the agent in place.
package maze

import (
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/types"
)

const (
	Height = 6
	Width  = 9
)

var (
	Start = &gridenv.Cell{Row: 2, Col: 0}
	Goal  = &gridenv.Cell{Row: 0, Col: 8}

	DefaultObstacles = []*gridenv.Cell{
		{Row: 1, Col: 2},
		{Row: 2, Col: 2},
		{Row: 3, Col: 2},
		{Row: 4, Col: 5},
		{Row: 0, Col: 7},
		{Row: 1, Col: 7},
		{Row: 2, Col: 7},
	}
)

type Environment struct {
	obstacles map[string]bool
	states    []types.State
}

var _ types.Enumerable = &Environment{}

func NewEnvironment(obstacles ...*gridenv.Cell) *Environment {
	if len(obstacles) == 0 {
		obstacles = DefaultObstacles
	}
	blocked := make(map[string]bool, len(obstacles))
	for _, o := range obstacles {
		blocked[o.Hash()] = true
	}
	states := make([]types.State, 0, Height*Width)
	for _, s := range gridenv.Cells(Height, Width) {
		if !blocked[s.Hash()] {
			states = append(states, s)
		}
	}
	return &Environment{
		obstacles: blocked,
		states:    states,
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
	if next.Row < 0 || next.Row >= Height || next.Col < 0 || next.Col >= Width {
		next = cell
	} else if e.obstacles[next.Hash()] {
		next = cell
	}

	if next.Eq(Goal) {
		return next, 1, nil
	}
	return next, 0, nil
}
