package types

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainState int

func (s chainState) Hash() string { return strconv.Itoa(int(s)) }

// chainModel is a straight line of states ending in an absorbing one
type chainModel struct {
	length int
}

func (m *chainModel) Start() State { return chainState(0) }

func (m *chainModel) Actions(State) []Action {
	return []Action{testAction("advance")}
}

func (m *chainModel) Terminal(s State) bool {
	return int(s.(chainState)) == m.length
}

func (m *chainModel) Step(s State, a Action) (State, float64, error) {
	if a.Hash() != "advance" {
		return nil, 0, ErrInvalidAction
	}
	return chainState(int(s.(chainState)) + 1), -1, nil
}

func TestAgentTerminalOutcome(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes: 1,
		Horizon:  10,
		Policy:   NewRandomPolicy(1),
		Model:    &chainModel{length: 3},
	})

	trace, outcome, err := agent.RunEpisode(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTerminal, outcome)
	assert.Equal(t, 3, trace.Len())
	assert.InDelta(t, -3, trace.Return(0, 1), 1e-9)
}

func TestAgentTruncatedOutcome(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes: 1,
		Horizon:  2,
		Policy:   NewRandomPolicy(1),
		Model:    &chainModel{length: 5},
	})

	trace, outcome, err := agent.RunEpisode(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTruncated, outcome)
	assert.Equal(t, 2, trace.Len())
}

// terminal start states must end the episode before any action is taken
func TestAgentTerminalStart(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes: 1,
		Horizon:  10,
		Policy:   NewRandomPolicy(1),
		Model:    &chainModel{length: 0},
	})

	trace, outcome, err := agent.RunEpisode(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTerminal, outcome)
	assert.Equal(t, 0, trace.Len())
}

type badActionModel struct{}

func (m *badActionModel) Start() State { return chainState(0) }

func (m *badActionModel) Actions(State) []Action { return []Action{testAction("bogus")} }

func (m *badActionModel) Terminal(State) bool { return false }
func (m *badActionModel) Step(State, Action) (State, float64, error) {
	return nil, 0, ErrInvalidAction
}

func TestAgentInvalidActionIsFatal(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes: 1,
		Horizon:  10,
		Policy:   NewRandomPolicy(1),
		Model:    &badActionModel{},
	})

	_, _, err := agent.RunEpisode(0)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestWeightedPolicyDegenerate(t *testing.T) {
	// all the weight on one action makes the draw deterministic
	p := NewWeightedPolicy(1, func(_ State, actions []Action) []float64 {
		weights := make([]float64, len(actions))
		weights[1] = 1
		return weights
	})
	actions := []Action{testAction("a"), testAction("b"), testAction("c")}
	for i := 0; i < 20; i++ {
		a, ok := p.NextAction(i, testState("s"), actions)
		require.True(t, ok)
		assert.Equal(t, "b", a.Hash())
	}
}

func TestTablePolicyFallback(t *testing.T) {
	table := NewPolicyTable()
	table.Set("s", "b")
	p := NewTablePolicy(table)

	actions := []Action{testAction("a"), testAction("b")}
	a, ok := p.NextAction(0, testState("s"), actions)
	require.True(t, ok)
	assert.Equal(t, "b", a.Hash())

	// unseen state falls back to the first legal action
	a, ok = p.NextAction(0, testState("unseen"), actions)
	require.True(t, ok)
	assert.Equal(t, "a", a.Hash())
}
