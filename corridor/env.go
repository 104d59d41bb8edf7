// Package corridor is the short corridor with a switched state: in the
// middle state the movement actions are reversed, so no deterministic policy
// over the two actions is optimal and a stochastic softmax policy is needed.
package corridor

import (
	"strconv"

	"github.com/rlbook/tabular-rl/types"
)

type CorridorState int

var _ types.State = CorridorState(0)

func (s CorridorState) Hash() string {
	return strconv.Itoa(int(s))
}

type Direction int

var _ types.Action = Direction(0)

const (
	Left  Direction = 0
	Right Direction = 1
)

func (d Direction) Hash() string {
	if d == Left {
		return "Left"
	}
	return "Right"
}

var Directions = []types.Action{Left, Right}

// NumStates includes the terminal state
const NumStates = 4

type Environment struct {
	states []types.State
}

var _ types.Enumerable = &Environment{}

func NewEnvironment() *Environment {
	states := make([]types.State, 0, NumStates)
	for i := 0; i < NumStates; i++ {
		states = append(states, CorridorState(i))
	}
	return &Environment{states: states}
}

func (e *Environment) Start() types.State {
	return CorridorState(0)
}

func (e *Environment) States() []types.State {
	return e.states
}

func (e *Environment) Actions(types.State) []types.Action {
	return Directions
}

func (e *Environment) Terminal(state types.State) bool {
	s, ok := state.(CorridorState)
	return ok && int(s) == NumStates-1
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	s, ok := state.(CorridorState)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	d, ok := action.(Direction)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}

	delta := -1
	if d == Right {
		delta = 1
	}
	// state 1 reverses both actions
	if int(s) == 1 {
		delta = -delta
	}
	next := int(s) + delta
	if next < 0 {
		next = 0
	}
	return CorridorState(next), -1, nil
}
