package tictactoe

import (
	"github.com/rlbook/tabular-rl/types"
)

// Environment adapts the game to the transition-model contract from the
// point of view of the Cross player: a step places the cross mark and, when
// the game continues, lets the opponent answer. Reward is granted only at
// the end: 1 for a win, 0.5 for a tie, 0 for a loss.
type Environment struct {
	opponent Player
	enum     *Enumeration
}

var _ types.Model = &Environment{}

func NewEnvironment(opponent Player, enum *Enumeration) *Environment {
	return &Environment{
		opponent: opponent,
		enum:     enum,
	}
}

func (e *Environment) Start() types.State {
	return NewBoard()
}

func (e *Environment) Actions(state types.State) []types.Action {
	board, ok := state.(*Board)
	if !ok {
		return nil
	}
	empties := board.Empties()
	actions := make([]types.Action, len(empties))
	for i, p := range empties {
		actions[i] = p
	}
	return actions
}

func (e *Environment) Terminal(state types.State) bool {
	board, ok := state.(*Board)
	if !ok {
		return false
	}
	_, end := board.Winner()
	return end
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	board, ok := state.(*Board)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	place, ok := action.(*Place)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	if board.Get(place.Row, place.Col) != Empty {
		return nil, 0, types.ErrInvalidAction
	}

	next := board.Apply(place)
	if winner, end := next.Winner(); end {
		return next, e.reward(winner), nil
	}

	next = next.Apply(e.opponent.Act(next))
	if winner, end := next.Winner(); end {
		return next, e.reward(winner), nil
	}
	return next, 0, nil
}

func (e *Environment) reward(winner Mark) float64 {
	switch winner {
	case Cross:
		return 1
	case Nought:
		return 0
	}
	return 0.5
}
