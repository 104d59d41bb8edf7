// Package randomwalk is the 19-state random walk. States are numbered 1..N
// with absorbing states 0 and N+1; entering the right terminal pays +1, the
// left one -1. The walk itself is the uniform-random behavior policy, the
// model is deterministic given the chosen direction.
package randomwalk

import (
	"strconv"

	"github.com/rlbook/tabular-rl/types"
)

const DefaultStates = 19

type WalkState int

var _ types.State = WalkState(0)

func (s WalkState) Hash() string {
	return strconv.Itoa(int(s))
}

type Direction int

var _ types.Action = Direction(0)

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) Hash() string {
	if d == Left {
		return "Left"
	}
	return "Right"
}

var Directions = []types.Action{Left, Right}

type Environment struct {
	n      int
	states []types.State
}

var _ types.Enumerable = &Environment{}

func NewEnvironment(n int) *Environment {
	if n <= 0 {
		n = DefaultStates
	}
	states := make([]types.State, 0, n+2)
	for i := 0; i <= n+1; i++ {
		states = append(states, WalkState(i))
	}
	return &Environment{n: n, states: states}
}

// N is the number of non-terminal states
func (e *Environment) N() int {
	return e.n
}

func (e *Environment) Start() types.State {
	return WalkState((e.n + 1) / 2)
}

func (e *Environment) States() []types.State {
	return e.states
}

func (e *Environment) Actions(types.State) []types.Action {
	return Directions
}

func (e *Environment) Terminal(state types.State) bool {
	s, ok := state.(WalkState)
	return ok && (int(s) == 0 || int(s) == e.n+1)
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	s, ok := state.(WalkState)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	d, ok := action.(Direction)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	next := WalkState(int(s) + int(d))
	if int(next) == e.n+1 {
		return next, 1, nil
	}
	if int(next) == 0 {
		return next, -1, nil
	}
	return next, 0, nil
}

// TrueValues is the analytic fixed point for the undiscounted uniform walk:
// values interpolate linearly between -1 and 1 across the interior states
func (e *Environment) TrueValues() map[string]float64 {
	truth := make(map[string]float64, e.n)
	for i := 1; i <= e.n; i++ {
		truth[WalkState(i).Hash()] = 2*float64(i)/float64(e.n+1) - 1
	}
	return truth
}
