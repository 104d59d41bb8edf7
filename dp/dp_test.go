package dp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/cliff"
	"github.com/rlbook/tabular-rl/gridenv"
	"github.com/rlbook/tabular-rl/gridworld"
	"github.com/rlbook/tabular-rl/randomwalk"
	"github.com/rlbook/tabular-rl/types"
)

func TestEvaluateGridworldUniform(t *testing.T) {
	env := gridworld.NewEnvironment()
	value, sweeps, err := Evaluate(env, Uniform(), DefaultConfig(gridworld.Discount))
	require.NoError(t, err)
	assert.Greater(t, sweeps, 1)

	// known fixed point of the uniform policy, top row
	for _, tc := range []struct {
		cell *gridenv.Cell
		want float64
	}{
		{&gridenv.Cell{Row: 0, Col: 0}, 3.3},
		{&gridenv.Cell{Row: 0, Col: 1}, 8.8},
		{&gridenv.Cell{Row: 0, Col: 3}, 5.3},
		{&gridenv.Cell{Row: 4, Col: 0}, -1.9},
	} {
		assert.InDelta(t, tc.want, value.Get(tc.cell.Hash(), 0), 0.06, tc.cell.Hash())
	}
}

func TestValueIterationGridworld(t *testing.T) {
	env := gridworld.NewEnvironment()
	value, _, err := ValueIteration(env, DefaultConfig(gridworld.Discount))
	require.NoError(t, err)

	// known optimal values, and A is the most valuable state
	assert.InDelta(t, 24.4, value.Get(gridworld.APos.Hash(), 0), 0.06)
	assert.InDelta(t, 22.0, value.Get((&gridenv.Cell{Row: 0, Col: 0}).Hash(), 0), 0.06)
	for _, s := range env.States() {
		assert.LessOrEqual(t, value.Get(s.Hash(), 0), value.Get(gridworld.APos.Hash(), 0)+1e-9)
	}
}

func TestGreedyPolicyTieBreak(t *testing.T) {
	env := gridworld.NewEnvironment()
	value, _, err := ValueIteration(env, DefaultConfig(gridworld.Discount))
	require.NoError(t, err)

	policy, err := GreedyPolicy(env, value, gridworld.Discount)
	require.NoError(t, err)

	// every action teleports out of A with the same value, so the first
	// move in enumeration order must be chosen
	action, ok := policy.Get(gridworld.APos.Hash())
	require.True(t, ok)
	assert.Equal(t, gridenv.AllMoves[0].Hash(), action)
}

func TestEvaluateRandomWalk(t *testing.T) {
	env := randomwalk.NewEnvironment(0)
	value, _, err := Evaluate(env, Uniform(), DefaultConfig(1))
	require.NoError(t, err)

	for state, want := range env.TrueValues() {
		assert.InDelta(t, want, value.Get(state, 0), 0.02, state)
	}
}

func TestEvaluateNonConvergence(t *testing.T) {
	env := gridworld.NewEnvironment()
	cfg := DefaultConfig(gridworld.Discount)
	cfg.MaxSweeps = 2

	value, sweeps, err := Evaluate(env, Uniform(), cfg)
	require.Error(t, err)

	var nc *types.NonConvergenceError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, 2, nc.Sweeps)
	assert.Greater(t, nc.Residual, nc.Epsilon)
	// the approximate table is still handed back
	assert.Equal(t, 2, sweeps)
	assert.NotNil(t, value)
}

func TestValueIterationCliff(t *testing.T) {
	env := cliff.NewEnvironment()
	value, _, err := ValueIteration(env, DefaultConfig(1))
	require.NoError(t, err)

	// the optimal path runs 13 steps along the cliff edge
	assert.InDelta(t, -13, value.Get(cliff.Start.Hash(), 0), 0.01)

	policy, err := GreedyPolicy(env, value, 1)
	require.NoError(t, err)
	rollout := types.NewAgent(&types.AgentConfig{
		Episodes: 1,
		Horizon:  100,
		Policy:   types.NewTablePolicy(policy),
		Model:    env,
	})
	trace, outcome, err := rollout.RunEpisode(0)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTerminal, outcome)
	assert.Equal(t, 13, trace.Len())
}

func TestGreedyFromQ(t *testing.T) {
	env := randomwalk.NewEnvironment(5)
	q := types.NewQTable()
	for _, s := range env.States() {
		q.Set(s.Hash(), randomwalk.Right.Hash(), 1)
	}

	policy := GreedyFromQ(env, q)
	for _, s := range env.States() {
		if env.Terminal(s) {
			_, ok := policy.Get(s.Hash())
			assert.False(t, ok)
			continue
		}
		action, ok := policy.Get(s.Hash())
		require.True(t, ok)
		assert.Equal(t, randomwalk.Right.Hash(), action)
	}
}
