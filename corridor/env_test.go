package corridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchedState(t *testing.T) {
	env := NewEnvironment()

	// normal states move the intended way
	next, reward, err := env.Step(CorridorState(0), Right)
	require.NoError(t, err)
	assert.Equal(t, "1", next.Hash())
	assert.Equal(t, float64(-1), reward)

	// in state 1 the actions are reversed
	next, _, err = env.Step(CorridorState(1), Right)
	require.NoError(t, err)
	assert.Equal(t, "0", next.Hash())

	next, _, err = env.Step(CorridorState(1), Left)
	require.NoError(t, err)
	assert.Equal(t, "2", next.Hash())
}

func TestLeftBoundary(t *testing.T) {
	env := NewEnvironment()
	next, reward, err := env.Step(CorridorState(0), Left)
	require.NoError(t, err)
	assert.Equal(t, "0", next.Hash())
	assert.Equal(t, float64(-1), reward)
}

func TestTerminal(t *testing.T) {
	env := NewEnvironment()
	assert.False(t, env.Terminal(CorridorState(2)))
	assert.True(t, env.Terminal(CorridorState(3)))

	next, _, err := env.Step(CorridorState(2), Right)
	require.NoError(t, err)
	assert.True(t, env.Terminal(next))
	assert.Len(t, env.States(), NumStates)
}
