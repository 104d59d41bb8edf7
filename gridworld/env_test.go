package gridworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/gridenv"
)

func TestTeleports(t *testing.T) {
	env := NewEnvironment()

	// every action out of A lands on A' with +10
	for _, move := range gridenv.AllMoves {
		next, reward, err := env.Step(APos, move)
		require.NoError(t, err)
		assert.Equal(t, APrimePos.Hash(), next.Hash())
		assert.Equal(t, float64(10), reward)
	}

	next, reward, err := env.Step(BPos, gridenv.MoveDown)
	require.NoError(t, err)
	assert.Equal(t, BPrimePos.Hash(), next.Hash())
	assert.Equal(t, float64(5), reward)
}

func TestOffGridPenalty(t *testing.T) {
	env := NewEnvironment()
	corner := &gridenv.Cell{Row: 0, Col: 0}

	next, reward, err := env.Step(corner, gridenv.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, corner.Hash(), next.Hash())
	assert.Equal(t, float64(-1), reward)

	next, reward, err = env.Step(corner, gridenv.MoveDown)
	require.NoError(t, err)
	assert.Equal(t, "(1, 0)", next.Hash())
	assert.Equal(t, float64(0), reward)
}

func TestNoTerminalStates(t *testing.T) {
	env := NewEnvironment()
	states := env.States()
	assert.Len(t, states, Size*Size)
	for _, s := range states {
		assert.False(t, env.Terminal(s))
	}
}
