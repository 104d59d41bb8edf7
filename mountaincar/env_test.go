package mountaincar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/types"
)

func TestPhysicsBounds(t *testing.T) {
	env := NewEnvironment()
	state := env.Start().(*CarState)
	assert.Equal(t, -0.5, state.Position)
	assert.Equal(t, float64(0), state.Velocity)

	// full throttle forward from rest still moves backward at the valley wall
	var s types.State = state
	for i := 0; i < 1000; i++ {
		next, reward, err := env.Step(s, Forward)
		require.NoError(t, err)
		assert.Equal(t, float64(-1), reward)
		car := next.(*CarState)
		assert.GreaterOrEqual(t, car.Position, PositionMin)
		assert.LessOrEqual(t, car.Position, PositionMax)
		assert.GreaterOrEqual(t, car.Velocity, VelocityMin)
		assert.LessOrEqual(t, car.Velocity, VelocityMax)
		s = next
		if env.Terminal(s) {
			break
		}
	}
}

func TestLeftWallStopsCar(t *testing.T) {
	env := NewEnvironment()
	s := &CarState{Position: PositionMin + 0.001, Velocity: VelocityMin, bins: DefaultBins}

	next, _, err := env.Step(s, Reverse)
	require.NoError(t, err)
	car := next.(*CarState)
	assert.Equal(t, PositionMin, car.Position)
	assert.Equal(t, float64(0), car.Velocity)
}

func TestTerminalAtSummit(t *testing.T) {
	env := NewEnvironment()
	assert.True(t, env.Terminal(&CarState{Position: PositionMax, Velocity: 0.01}))
	assert.False(t, env.Terminal(&CarState{Position: 0.4, Velocity: 0.01}))
}

func TestHashBuckets(t *testing.T) {
	env := NewEnvironment(WithBins(8))
	a := env.Start()
	// nearby states share a bucket, far states do not
	b := &CarState{Position: -0.501, Velocity: 0.0001, bins: 8}
	c := &CarState{Position: 0.4, Velocity: 0.05, bins: 8}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestRandomStartRange(t *testing.T) {
	env := NewEnvironment(WithRandomStart(5))
	for i := 0; i < 100; i++ {
		s := env.Start().(*CarState)
		assert.GreaterOrEqual(t, s.Position, -0.6)
		assert.LessOrEqual(t, s.Position, -0.4)
		assert.Equal(t, float64(0), s.Velocity)
	}
}
