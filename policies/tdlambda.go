package policies

import (
	"encoding/json"

	"github.com/rlbook/tabular-rl/types"
	"github.com/rlbook/tabular-rl/util"
	"golang.org/x/exp/rand"
)

type TDLambdaConfig struct {
	// Step size
	Alpha float64
	// Discount factor
	Gamma float64
	// Trace decay. 0 is one-step TD, 1 approaches Monte-Carlo credit
	Lambda float64
	// Seed for the behavior draws
	Seed uint64
}

// TDLambda evaluates the uniform-random policy with accumulating eligibility
// traces. Accumulating variant: the trace of the visited state is incremented
// by 1 with no cap; replacing traces are not implemented.
type TDLambda struct {
	config TDLambdaConfig
	values *types.ValueTable
	traces map[string]float64
	rand   *rand.Rand
}

var _ types.Policy = &TDLambda{}
var _ types.Recorder = &TDLambda{}

func NewTDLambda(config TDLambdaConfig) *TDLambda {
	return &TDLambda{
		config: config,
		values: types.NewValueTable(),
		traces: make(map[string]float64),
		rand:   rand.New(rand.NewSource(config.Seed)),
	}
}

func (t *TDLambda) Reset() {
	t.values = types.NewValueTable()
	t.traces = make(map[string]float64)
	t.rand = rand.New(rand.NewSource(t.config.Seed))
}

// NextAction follows the fixed uniform-random behavior policy
func (t *TDLambda) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	return actions[t.rand.Intn(len(actions))], true
}

// Update applies one TD(lambda) step: bump the trace of the visited state,
// compute the scalar TD error, push it to every traced state weighted by
// trace magnitude, then decay all traces by gamma*lambda.
func (t *TDLambda) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	t.traces[stateHash] += 1

	delta := reward + t.config.Gamma*t.values.Get(nextState.Hash(), 0) - t.values.Get(stateHash, 0)

	decay := t.config.Gamma * t.config.Lambda
	for s, e := range t.traces {
		t.values.Set(s, t.values.Get(s, 0)+t.config.Alpha*delta*e)
		t.traces[s] = e * decay
	}
}

// UpdateEpisode clears the traces so the next episode starts from zero
func (t *TDLambda) UpdateEpisode(episode int, trace *types.Trace) {
	t.traces = make(map[string]float64)
}

// Values is the learned state value table
func (t *TDLambda) Values() *types.ValueTable {
	return t.values
}

// Traces exposes the current eligibility traces, for inspection only
func (t *TDLambda) Traces() map[string]float64 {
	out := make(map[string]float64, len(t.traces))
	for k, v := range t.traces {
		out[k] = v
	}
	return out
}

func (t *TDLambda) Record(path string) error {
	bs, err := json.Marshal(t.values)
	if err != nil {
		return err
	}
	return util.WriteToFile(path, string(bs))
}
