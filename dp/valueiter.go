package dp

import (
	"github.com/rlbook/tabular-rl/types"
)

// ValueIteration computes the optimal value function with iterative
// Bellman-optimality sweeps. Same sweep discipline as Evaluate, with the
// expectation over actions replaced by a maximum.
func ValueIteration(m types.Enumerable, cfg Config) (*types.ValueTable, int, error) {
	value := types.NewValueTable()
	states := m.States()
	residual := float64(0)

	for sweep := 1; sweep <= cfg.MaxSweeps; sweep++ {
		newValue := types.NewValueTable()
		for _, state := range states {
			if m.Terminal(state) {
				continue
			}
			best := float64(0)
			for i, action := range m.Actions(state) {
				next, reward, err := m.Step(state, action)
				if err != nil {
					return value, sweep, err
				}
				v := reward + cfg.Gamma*value.Get(next.Hash(), 0)
				if i == 0 || v > best {
					best = v
				}
			}
			newValue.Set(state.Hash(), best)
		}
		residual = newValue.Diff(value)
		value = newValue
		if residual < cfg.Epsilon {
			return value, sweep, nil
		}
	}
	return value, cfg.MaxSweeps, &types.NonConvergenceError{
		Sweeps:   cfg.MaxSweeps,
		Residual: residual,
		Epsilon:  cfg.Epsilon,
	}
}

// GreedyPolicy extracts the deterministic greedy policy implied by a value
// table. When several actions attain the maximum one-step lookahead value,
// the lowest-indexed action (first in enumeration order) is chosen.
func GreedyPolicy(m types.Enumerable, value *types.ValueTable, gamma float64) (*types.PolicyTable, error) {
	policy := types.NewPolicyTable()
	for _, state := range m.States() {
		if m.Terminal(state) {
			continue
		}
		var bestAction types.Action
		best := float64(0)
		for i, action := range m.Actions(state) {
			next, reward, err := m.Step(state, action)
			if err != nil {
				return nil, err
			}
			v := reward + gamma*value.Get(next.Hash(), 0)
			if i == 0 || v > best {
				best = v
				bestAction = action
			}
		}
		if bestAction != nil {
			policy.Set(state.Hash(), bestAction.Hash())
		}
	}
	return policy, nil
}

// GreedyFromQ extracts the greedy policy of a learned Q table over the
// model's state space, with the same lowest-index tie-break.
func GreedyFromQ(m types.Enumerable, q *types.QTable) *types.PolicyTable {
	policy := types.NewPolicyTable()
	for _, state := range m.States() {
		if m.Terminal(state) {
			continue
		}
		actions := m.Actions(state)
		if len(actions) == 0 {
			continue
		}
		best, _ := q.MaxAmong(state.Hash(), actions, 0)
		policy.Set(state.Hash(), best.Hash())
	}
	return policy
}
