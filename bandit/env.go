// Package bandit is the k-armed testbed: one state, k arms, rewards drawn
// from unit-variance gaussians around each arm's true value. Learners see it
// as a model whose episodes only end at the horizon.
package bandit

import (
	"strconv"

	"github.com/rlbook/tabular-rl/types"
	"golang.org/x/exp/rand"
)

const DefaultArms = 10

// PullState is the single state of the testbed
type PullState struct{}

var _ types.State = PullState{}

func (PullState) Hash() string { return "bandit" }

// Arm is the action of pulling lever i
type Arm int

var _ types.Action = Arm(0)

func (a Arm) Hash() string {
	return strconv.Itoa(int(a))
}

type Environment struct {
	means []float64
	arms  []types.Action
	rand  *rand.Rand
}

var _ types.Model = &Environment{}

type Option func(*Environment)

// WithMeans fixes the arms' true values instead of drawing them
func WithMeans(means []float64) Option {
	return func(e *Environment) {
		e.means = means
	}
}

// NewEnvironment draws the true value of each arm from a standard gaussian,
// the way the testbed is set up
func NewEnvironment(arms int, seed uint64, opts ...Option) *Environment {
	if arms <= 0 {
		arms = DefaultArms
	}
	e := &Environment{
		rand: rand.New(rand.NewSource(seed)),
	}
	for _, o := range opts {
		o(e)
	}
	if e.means == nil {
		e.means = make([]float64, arms)
		for i := range e.means {
			e.means[i] = e.rand.NormFloat64()
		}
	}
	e.arms = make([]types.Action, len(e.means))
	for i := range e.arms {
		e.arms[i] = Arm(i)
	}
	return e
}

func (e *Environment) Start() types.State {
	return PullState{}
}

func (e *Environment) Actions(types.State) []types.Action {
	return e.arms
}

// Terminal is always false: the horizon decides how many pulls an episode has
func (e *Environment) Terminal(types.State) bool {
	return false
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	if _, ok := state.(PullState); !ok {
		return nil, 0, types.ErrInvalidAction
	}
	arm, ok := action.(Arm)
	if !ok || int(arm) < 0 || int(arm) >= len(e.means) {
		return nil, 0, types.ErrInvalidAction
	}
	return PullState{}, e.means[arm] + e.rand.NormFloat64(), nil
}

// Means is a copy of the arms' true values
func (e *Environment) Means() []float64 {
	out := make([]float64, len(e.means))
	copy(out, e.means)
	return out
}

// BestArm is the arm with the highest true value, lowest index on ties
func (e *Environment) BestArm() Arm {
	best := 0
	for i, m := range e.means {
		if m > e.means[best] {
			best = i
		}
	}
	return Arm(best)
}
