package types

import (
	"encoding/json"
	"math"
	"sort"
)

// ValueTable maps state hashes to values. Zero-valued entries are created on
// first read.
type ValueTable struct {
	values map[string]float64
}

func NewValueTable() *ValueTable {
	return &ValueTable{
		values: make(map[string]float64),
	}
}

func (v *ValueTable) Get(state string, def float64) float64 {
	if _, ok := v.values[state]; !ok {
		v.values[state] = def
	}
	return v.values[state]
}

func (v *ValueTable) Set(state string, val float64) {
	v.values[state] = val
}

func (v *ValueTable) Has(state string) bool {
	_, ok := v.values[state]
	return ok
}

func (v *ValueTable) Len() int {
	return len(v.values)
}

// Keys in sorted order, for deterministic iteration
func (v *ValueTable) Keys() []string {
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *ValueTable) Copy() *ValueTable {
	out := NewValueTable()
	for k, val := range v.values {
		out.values[k] = val
	}
	return out
}

// Diff is the L1 distance between two tables over the union of their keys
func (v *ValueTable) Diff(other *ValueTable) float64 {
	sum := float64(0)
	seen := make(map[string]bool, len(v.values))
	for k, val := range v.values {
		sum += math.Abs(val - other.values[k])
		seen[k] = true
	}
	for k, val := range other.values {
		if !seen[k] {
			sum += math.Abs(val)
		}
	}
	return sum
}

func (v *ValueTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.values)
}

func (v *ValueTable) UnmarshalJSON(data []byte) error {
	v.values = make(map[string]float64)
	return json.Unmarshal(data, &v.values)
}

// QTable maps (state hash, action hash) pairs to values
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// MaxAmong returns the maximizing action among the given actions and its
// value. Ties break to the lowest-indexed action: the comparison is strictly
// greater, so the first maximum in enumeration order wins. Greedy-policy
// extraction depends on this rule being stable.
func (q *QTable) MaxAmong(state string, actions []Action, def float64) (Action, float64) {
	if len(actions) == 0 {
		return nil, def
	}
	maxAction := actions[0]
	maxVal := q.Get(state, actions[0].Hash(), def)
	for _, a := range actions[1:] {
		val := q.Get(state, a.Hash(), def)
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// MaxValue is MaxAmong without the action, for bootstrap targets
func (q *QTable) MaxValue(state string, actions []Action, def float64) float64 {
	_, val := q.MaxAmong(state, actions, def)
	return val
}

// MaxKnown is the maximum over the actions already recorded for the state,
// or def when the state has never been seen. Bootstrap targets use this so
// unvisited next states contribute their default value.
func (q *QTable) MaxKnown(state string, def float64) float64 {
	vals, ok := q.table[state]
	if !ok || len(vals) == 0 {
		return def
	}
	first := true
	maxVal := def
	for _, val := range vals {
		if first || val > maxVal {
			maxVal = val
			first = false
		}
	}
	return maxVal
}

func (q *QTable) States() []string {
	states := make([]string, 0, len(q.table))
	for s := range q.table {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

func (q *QTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.table)
}

func (q *QTable) UnmarshalJSON(data []byte) error {
	q.table = make(map[string]map[string]float64)
	return json.Unmarshal(data, &q.table)
}

// PolicyTable is an extracted deterministic policy: state hash to action hash
type PolicyTable struct {
	actions map[string]string
}

func NewPolicyTable() *PolicyTable {
	return &PolicyTable{
		actions: make(map[string]string),
	}
}

func (p *PolicyTable) Get(state string) (string, bool) {
	a, ok := p.actions[state]
	return a, ok
}

func (p *PolicyTable) Set(state, action string) {
	p.actions[state] = action
}

func (p *PolicyTable) Len() int {
	return len(p.actions)
}

func (p *PolicyTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.actions)
}

func (p *PolicyTable) UnmarshalJSON(data []byte) error {
	p.actions = make(map[string]string)
	return json.Unmarshal(data, &p.actions)
}
