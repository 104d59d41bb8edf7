package types

import "encoding/json"

// Trace of an episode as (state, action, reward, nextState) steps
type Trace struct {
	states     []State
	actions    []Action
	rewards    []float64
	nextStates []State
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]State, 0),
		actions:    make([]Action, 0),
		rewards:    make([]float64, 0),
		nextStates: make([]State, 0),
	}
}

func (t *Trace) Append(step int, state State, action Action, reward float64, nextState State) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextStates = append(t.nextStates, nextState)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, float64, State, bool) {
	if i >= len(t.states) {
		return nil, nil, 0, nil, false
	}
	return t.states[i], t.actions[i], t.rewards[i], t.nextStates[i], true
}

func (t *Trace) Last() (State, Action, float64, State, bool) {
	if len(t.states) < 1 {
		return nil, nil, 0, nil, false
	}
	lastIndex := len(t.states) - 1
	return t.states[lastIndex], t.actions[lastIndex], t.rewards[lastIndex], t.nextStates[lastIndex], true
}

// Return is the discounted return from step i onwards
func (t *Trace) Return(i int, gamma float64) float64 {
	out := float64(0)
	for j := len(t.rewards) - 1; j >= i; j-- {
		out = t.rewards[j] + gamma*out
	}
	return out
}

// Rewards returns a copy of the per-step rewards
func (t *Trace) Rewards() []float64 {
	out := make([]float64, len(t.rewards))
	copy(out, t.rewards)
	return out
}

type traceStep struct {
	State  string  `json:"state"`
	Action string  `json:"action"`
	Reward float64 `json:"reward"`
	Next   string  `json:"next"`
}

// MarshalJSON serializes the trace by state/action hashes, the shape the
// visualization layer consumes for path rendering.
func (t *Trace) MarshalJSON() ([]byte, error) {
	steps := make([]traceStep, len(t.states))
	for i := range t.states {
		steps[i] = traceStep{
			State:  t.states[i].Hash(),
			Action: t.actions[i].Hash(),
			Reward: t.rewards[i],
			Next:   t.nextStates[i].Hash(),
		}
	}
	return json.Marshal(steps)
}
