// Package dp holds the sweep-based dynamic-programming solvers. Both solvers
// are synchronous: a sweep reads only the previous value table and writes a
// fresh one, never mixing old and new values within a sweep.
package dp

import (
	"github.com/rlbook/tabular-rl/types"
)

type Config struct {
	// Discount factor
	Gamma float64
	// Convergence threshold on the L1 distance between consecutive sweeps
	Epsilon float64
	// Hard cap on sweeps. Exceeding it reports NonConvergenceError with the
	// approximate table still returned.
	MaxSweeps int
}

func DefaultConfig(gamma float64) Config {
	return Config{
		Gamma:     gamma,
		Epsilon:   1e-4,
		MaxSweeps: 10000,
	}
}

// ActionDist gives probability weights over the legal actions of a state
type ActionDist func(state types.State, actions []types.Action) []float64

// Uniform weights every legal action equally
func Uniform() ActionDist {
	return func(_ types.State, actions []types.Action) []float64 {
		weights := make([]float64, len(actions))
		for i := range weights {
			weights[i] = 1 / float64(len(actions))
		}
		return weights
	}
}

// Evaluate computes the value of the fixed policy described by dist with
// iterative Bellman-expectation sweeps. Terminal states keep their fixed
// value and are never written.
func Evaluate(m types.Enumerable, dist ActionDist, cfg Config) (*types.ValueTable, int, error) {
	value := types.NewValueTable()
	states := m.States()
	residual := float64(0)

	for sweep := 1; sweep <= cfg.MaxSweeps; sweep++ {
		newValue := types.NewValueTable()
		for _, state := range states {
			if m.Terminal(state) {
				continue
			}
			actions := m.Actions(state)
			weights := dist(state, actions)
			total := float64(0)
			for i, action := range actions {
				next, reward, err := m.Step(state, action)
				if err != nil {
					return value, sweep, err
				}
				total += weights[i] * (reward + cfg.Gamma*value.Get(next.Hash(), 0))
			}
			newValue.Set(state.Hash(), total)
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
