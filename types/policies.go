package types

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Policy decides actions and learns from transitions. Update is called once
// per step with the observed reward, UpdateEpisode once per episode with the
// full trace.
type Policy interface {
	NextAction(step int, state State, actions []Action) (Action, bool)
	Update(step int, state State, action Action, reward float64, nextState State)
	UpdateEpisode(episode int, trace *Trace)
	Reset()
}

// RandomPolicy picks uniformly among the legal actions
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomPolicy) NextAction(step int, state State, actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	return actions[r.rand.Intn(len(actions))], true
}

func (r *RandomPolicy) Update(_ int, _ State, _ Action, _ float64, _ State) {}

func (r *RandomPolicy) UpdateEpisode(_ int, _ *Trace) {}

func (r *RandomPolicy) Reset() {}

// WeightedPolicy samples actions from a fixed distribution supplied by the
// caller. Used to roll out the behavior policy of the prediction exercises.
type WeightedPolicy struct {
	weights func(State, []Action) []float64
	src     rand.Source
}

var _ Policy = &WeightedPolicy{}

func NewWeightedPolicy(seed uint64, weights func(State, []Action) []float64) *WeightedPolicy {
	return &WeightedPolicy{
		weights: weights,
		src:     rand.NewSource(seed),
	}
}

func (w *WeightedPolicy) NextAction(step int, state State, actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	i, ok := sampleuv.NewWeighted(w.weights(state, actions), w.src).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (w *WeightedPolicy) Update(_ int, _ State, _ Action, _ float64, _ State) {}

func (w *WeightedPolicy) UpdateEpisode(_ int, _ *Trace) {}

func (w *WeightedPolicy) Reset() {}

// TablePolicy follows an extracted deterministic policy table, falling back
// to the first legal action for states the table has never seen.
type TablePolicy struct {
	table *PolicyTable
}

var _ Policy = &TablePolicy{}

func NewTablePolicy(table *PolicyTable) *TablePolicy {
	return &TablePolicy{table: table}
}

func (t *TablePolicy) NextAction(step int, state State, actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	want, ok := t.table.Get(state.Hash())
	if !ok {
		return actions[0], true
	}
	for _, a := range actions {
		if a.Hash() == want {
			return a, true
		}
	}
	return actions[0], true
}

func (t *TablePolicy) Update(_ int, _ State, _ Action, _ float64, _ State) {}

func (t *TablePolicy) UpdateEpisode(_ int, _ *Trace) {}

func (t *TablePolicy) Reset() {}
