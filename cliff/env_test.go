package cliff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/gridenv"
)

func TestCliffFallResetsToStart(t *testing.T) {
	env := NewEnvironment()

	next, reward, err := env.Step(Start, gridenv.MoveRight)
	require.NoError(t, err)
	assert.Equal(t, Start.Hash(), next.Hash())
	assert.Equal(t, float64(-100), reward)
}

func TestEdgeWalk(t *testing.T) {
	env := NewEnvironment()

	// the row above the cliff is safe
	above := &gridenv.Cell{Row: 2, Col: 5}
	next, reward, err := env.Step(above, gridenv.MoveRight)
	require.NoError(t, err)
	assert.Equal(t, "(2, 6)", next.Hash())
	assert.Equal(t, float64(-1), reward)

	// stepping down from above the goal ends the episode
	aboveGoal := &gridenv.Cell{Row: 2, Col: 11}
	next, reward, err = env.Step(aboveGoal, gridenv.MoveDown)
	require.NoError(t, err)
	assert.Equal(t, Goal.Hash(), next.Hash())
	assert.Equal(t, float64(-1), reward)
	assert.True(t, env.Terminal(next))
}

func TestBoundaryClamp(t *testing.T) {
	env := NewEnvironment()

	next, reward, err := env.Step(Start, gridenv.MoveLeft)
	require.NoError(t, err)
	assert.Equal(t, Start.Hash(), next.Hash())
	assert.Equal(t, float64(-1), reward)

	corner := &gridenv.Cell{Row: 0, Col: 0}
	next, _, err = env.Step(corner, gridenv.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, corner.Hash(), next.Hash())
}

func TestStateSpace(t *testing.T) {
	env := NewEnvironment()
	assert.Len(t, env.States(), Height*Width)
	assert.False(t, env.Terminal(Start))
	assert.True(t, env.Terminal(Goal))
	assert.False(t, InCliff(Start))
	assert.False(t, InCliff(Goal))
	assert.True(t, InCliff(&gridenv.Cell{Row: 3, Col: 1}))
}
