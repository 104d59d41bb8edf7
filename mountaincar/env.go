// Package mountaincar is the classic under-powered car. The state is a
// continuous (position, velocity) pair; tabular learners see it through the
// hash, which buckets both coordinates into a fixed number of bins.
package mountaincar

import (
	"fmt"
	"math"

	"github.com/rlbook/tabular-rl/types"
	"golang.org/x/exp/rand"
)

const (
	PositionMin = -1.2
	PositionMax = 0.5
	VelocityMin = -0.07
	VelocityMax = 0.07

	DefaultBins = 32
)

type CarState struct {
	Position float64
	Velocity float64
	bins     int
}

var _ types.State = &CarState{}

func (s *CarState) Hash() string {
	return fmt.Sprintf("(%d, %d)", bin(s.Position, PositionMin, PositionMax, s.bins), bin(s.Velocity, VelocityMin, VelocityMax, s.bins))
}

func bin(v, lo, hi float64, bins int) int {
	i := int(float64(bins) * (v - lo) / (hi - lo))
	if i < 0 {
		i = 0
	}
	if i >= bins {
		i = bins - 1
	}
	return i
}

type Throttle int

var _ types.Action = Throttle(0)

const (
	Reverse Throttle = -1
	Coast   Throttle = 0
	Forward Throttle = 1
)

func (t Throttle) Hash() string {
	switch t {
	case Reverse:
		return "Reverse"
	case Forward:
		return "Forward"
	}
	return "Coast"
}

var Throttles = []types.Action{Reverse, Coast, Forward}

type Environment struct {
	bins        int
	randomStart bool
	rand        *rand.Rand
}

var _ types.Model = &Environment{}

type Option func(*Environment)

// WithRandomStart draws the starting position uniformly from
// [-0.6, -0.4], the way the original exercise resets
func WithRandomStart(seed uint64) Option {
	return func(e *Environment) {
		e.randomStart = true
		e.rand = rand.New(rand.NewSource(seed))
	}
}

func WithBins(bins int) Option {
	return func(e *Environment) {
		e.bins = bins
	}
}

func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{
		bins: DefaultBins,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Environment) Start() types.State {
	pos := -0.5
	if e.randomStart {
		pos = -0.6 + 0.2*e.rand.Float64()
	}
	return &CarState{Position: pos, Velocity: 0, bins: e.bins}
}

func (e *Environment) Actions(types.State) []types.Action {
	return Throttles
}

func (e *Environment) Terminal(state types.State) bool {
	s, ok := state.(*CarState)
	return ok && s.Position >= PositionMax
}

func (e *Environment) Step(state types.State, action types.Action) (types.State, float64, error) {
	s, ok := state.(*CarState)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}
	t, ok := action.(Throttle)
	if !ok {
		return nil, 0, types.ErrInvalidAction
	}

	velocity := s.Velocity + 0.001*float64(t) - 0.0025*math.Cos(3*s.Position)
	velocity = clamp(velocity, VelocityMin, VelocityMax)
	position := clamp(s.Position+velocity, PositionMin, PositionMax)
	if position == PositionMin {
		velocity = 0
	}
	return &CarState{Position: position, Velocity: velocity, bins: e.bins}, -1, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
