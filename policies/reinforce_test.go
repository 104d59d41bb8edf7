package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/corridor"
	"github.com/rlbook/tabular-rl/types"
)

func TestActionProbsStable(t *testing.T) {
	r := NewReinforce(ReinforceConfig{Actions: 2})

	probs := r.ActionProbs()
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)

	// extreme preferences must not overflow the exponentials
	r.theta = []float64{1000, 0}
	probs = r.ActionProbs()
	assert.InDelta(t, 1, probs[0], 1e-9)
	assert.InDelta(t, 0, probs[1], 1e-9)
	assert.InDelta(t, 1, probs[0]+probs[1], 1e-9)
}

func TestClipProb(t *testing.T) {
	assert.Equal(t, 1e-5, clipProb(0, 1e-5))
	assert.Equal(t, 1-1e-5, clipProb(1, 1e-5))
	assert.Equal(t, 0.3, clipProb(0.3, 1e-5))
}

func TestUpdateEpisodeDirection(t *testing.T) {
	r := NewReinforce(ReinforceConfig{Alpha: 0.1, Gamma: 1, Actions: 2})

	actions := []types.Action{fakeAction("left"), fakeAction("right")}
	// establish the hash -> index order
	_, ok := r.NextAction(0, fakeState("s"), actions)
	require.True(t, ok)

	trace := types.NewTrace()
	trace.Append(0, fakeState("s"), fakeAction("right"), 1, fakeState("t"))
	r.UpdateEpisode(0, trace)

	theta := r.Theta()
	// a positive return must raise the chosen action's preference and lower
	// the other
	assert.Greater(t, theta[1], float64(0))
	assert.Less(t, theta[0], float64(0))
}

func TestReinforceCorridor(t *testing.T) {
	learner := NewReinforce(ReinforceConfig{
		Alpha:   0.002,
		Gamma:   1,
		Actions: len(corridor.Directions),
		Seed:    3,
	})
	agent := types.NewAgent(&types.AgentConfig{
		Episodes: 2000,
		Horizon:  500,
		Policy:   learner,
		Model:    corridor.NewEnvironment(),
	})
	require.NoError(t, agent.Run())

	probs := learner.ActionProbs()
	assert.InDelta(t, 1, probs[0]+probs[1], 1e-9)
	// the optimum takes Right with roughly 0.59; the policy must have moved
	// off determinism in that direction
	right := probs[1]
	assert.Greater(t, right, 0.4)
	assert.Less(t, right, 0.95)
}
