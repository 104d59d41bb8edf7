package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbook/tabular-rl/cliff"
	"github.com/rlbook/tabular-rl/dp"
	"github.com/rlbook/tabular-rl/types"
)

type fakeState string

func (s fakeState) Hash() string { return string(s) }

type fakeAction string

func (a fakeAction) Hash() string { return string(a) }

func TestQLearningUpdate(t *testing.T) {
	q := NewQLearning(QLearningConfig{Alpha: 0.5, Gamma: 0.9})

	// unseen next state bootstraps from the default 0
	q.Update(0, fakeState("s"), fakeAction("a"), 1, fakeState("next"))
	assert.InDelta(t, 0.5, q.Table().Get("s", "a", 0), 1e-9)

	// bootstrap picks the max over the recorded actions of the next state
	q.Table().Set("next", "x", 2)
	q.Table().Set("next", "y", 3)
	q.Update(1, fakeState("s"), fakeAction("a"), 1, fakeState("next"))
	// 0.5 + 0.5*(1 + 0.9*3 - 0.5)
	assert.InDelta(t, 2.1, q.Table().Get("s", "a", 0), 1e-9)
}

func TestQLearningVisitCountAlpha(t *testing.T) {
	// Alpha 0 selects the 1/N(s,a) schedule, which averages the targets
	q := NewQLearning(QLearningConfig{Gamma: 1})

	q.Update(0, fakeState("s"), fakeAction("a"), 4, fakeState("t"))
	assert.InDelta(t, 4, q.Table().Get("s", "a", 0), 1e-9)

	q.Update(1, fakeState("s"), fakeAction("a"), 0, fakeState("t"))
	assert.InDelta(t, 2+2, q.Table().Get("s", "a", 0), 1e-9) // target 4 again via bootstrap

	assert.Equal(t, float64(2), q.Visits().Get("s", "a", 0))
}

func TestQLearningEpsilonDecay(t *testing.T) {
	q := NewQLearning(QLearningConfig{Epsilon: 0.8, EpsilonDecay: 0.5, EpsilonMin: 0.3})

	q.UpdateEpisode(0, types.NewTrace())
	assert.InDelta(t, 0.4, q.Epsilon(), 1e-9)
	q.UpdateEpisode(1, types.NewTrace())
	assert.InDelta(t, 0.3, q.Epsilon(), 1e-9)
	q.UpdateEpisode(2, types.NewTrace())
	assert.InDelta(t, 0.3, q.Epsilon(), 1e-9)

	q.Reset()
	assert.InDelta(t, 0.8, q.Epsilon(), 1e-9)
}

// a state reached only through exploratory moves must still bootstrap over
// its whole legal action set, not just the actions that happened to be tried
func TestQLearningBootstrapCoversUntriedActions(t *testing.T) {
	q := NewQLearning(QLearningConfig{Alpha: 0.5, Gamma: 1, Epsilon: 1, Seed: 3})
	actions := []types.Action{fakeAction("a"), fakeAction("b")}

	// acting from s2 records its full action row even when the draw explores
	_, ok := q.NextAction(0, fakeState("s2"), actions)
	require.True(t, ok)
	q.Update(0, fakeState("s2"), fakeAction("a"), -1, fakeState("s3"))
	assert.InDelta(t, -0.5, q.Table().Get("s2", "a", 0), 1e-9)

	// the target for s1 is max(Q(s2,a), Q(s2,b)) = max(-0.5, 0) = 0
	q.Update(1, fakeState("s1"), fakeAction("a"), 0, fakeState("s2"))
	assert.InDelta(t, 0, q.Table().Get("s1", "a", 0), 1e-9)
}

func TestQLearningGreedyWithoutExploration(t *testing.T) {
	q := NewQLearning(QLearningConfig{Epsilon: 0})
	q.Table().Set("s", "b", 1)

	actions := []types.Action{fakeAction("a"), fakeAction("b")}
	for i := 0; i < 10; i++ {
		action, ok := q.NextAction(i, fakeState("s"), actions)
		require.True(t, ok)
		assert.Equal(t, "b", action.Hash())
	}
}

// the learned greedy policy must walk the cliff edge to the goal
func TestQLearningCliff(t *testing.T) {
	env := cliff.NewEnvironment()
	learner := NewQLearning(QLearningConfig{
		Alpha:   0.5,
		Gamma:   1,
		Epsilon: 0.1,
		Seed:    7,
	})
	agent := types.NewAgent(&types.AgentConfig{
		Episodes: 2000,
		Horizon:  300,
		Policy:   learner,
		Model:    env,
	})
	require.NoError(t, agent.Run())

	greedy := types.NewTablePolicy(dp.GreedyFromQ(env, learner.Table()))
	rollout := types.NewAgent(&types.AgentConfig{
		Episodes: 1,
		Horizon:  100,
		Policy:   greedy,
		Model:    env,
	})
	trace, outcome, err := rollout.RunEpisode(0)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTerminal, outcome)
	// the optimal path is 13 steps along the edge; allow some slack but no
	// cliff falls
	assert.LessOrEqual(t, trace.Len(), 25)
	assert.Greater(t, trace.Return(0, 1), float64(-100))
}
