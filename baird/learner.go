// Package baird is the star counterexample: off-policy semi-gradient TD(0)
// with a linear value function whose parameters diverge. It is the one
// linear-approximation exercise of the library; everything else is tabular.
package baird

import (
	"math"

	"golang.org/x/exp/rand"
)

const (
	// NumStates is the number of states in the star
	NumStates = 7
	// NumWeights is the length of the parameter vector
	NumWeights = 8

	// DashedProb is the behavior-policy probability of the dashed action,
	// which jumps to one of the outer states uniformly
	DashedProb = 6.0 / 7.0
)

type Config struct {
	// Step size
	Alpha float64
	// Discount factor
	Gamma float64
	// Seed for the behavior draws
	Seed uint64
}

func DefaultConfig(seed uint64) Config {
	return Config{
		Alpha: 0.01,
		Gamma: 0.99,
		Seed:  seed,
	}
}

// Learner runs off-policy semi-gradient TD(0) on the star MDP. The target
// policy always takes the solid action into the hub state; the behavior
// policy mostly takes the dashed action. Importance ratios are 7 for solid
// transitions and 0 for dashed ones.
type Learner struct {
	config Config
	theta  []float64
	state  int
	rand   *rand.Rand
}

func NewLearner(config Config) *Learner {
	theta := make([]float64, NumWeights)
	for i := range theta {
		theta[i] = 1
	}
	theta[6] = 10

	return &Learner{
		config: config,
		theta:  theta,
		state:  0,
		rand:   rand.New(rand.NewSource(config.Seed)),
	}
}

// Value of a state under the current parameters. Outer states i use
// 2*theta_i + theta_8, the hub uses theta_7 + 2*theta_8.
func (l *Learner) Value(state int) float64 {
	if state < NumStates-1 {
		return 2*l.theta[state] + l.theta[NumWeights-1]
	}
	return l.theta[NumWeights-2] + 2*l.theta[NumWeights-1]
}

// gradient of Value(state) with respect to theta, nonzero in two components
func (l *Learner) addScaledGradient(state int, scale float64) {
	if state < NumStates-1 {
		l.theta[state] += 2 * scale
		l.theta[NumWeights-1] += scale
		return
	}
	l.theta[NumWeights-2] += scale
	l.theta[NumWeights-1] += 2 * scale
}

// Step samples one behavior transition and applies the off-policy update.
// All rewards are zero; divergence comes from the mismatch between the
// on-policy distribution and the uniform behavior over outer states.
func (l *Learner) Step() {
	solid := l.rand.Float64() >= DashedProb
	var next int
	var rho float64
	if solid {
		next = NumStates - 1
		rho = 1 / (1 - DashedProb)
	} else {
		next = l.rand.Intn(NumStates - 1)
		rho = 0
	}

	delta := l.config.Gamma*l.Value(next) - l.Value(l.state)
	l.addScaledGradient(l.state, l.config.Alpha*rho*delta)
	l.state = next
}

// Run applies n steps and returns the parameter norm after each one
func (l *Learner) Run(n int) []float64 {
	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		l.Step()
		norms[i] = l.Norm()
	}
	return norms
}

// Theta is a copy of the current parameter vector
func (l *Learner) Theta() []float64 {
	out := make([]float64, len(l.theta))
	copy(out, l.theta)
	return out
}

// Norm is the Euclidean norm of the parameters
func (l *Learner) Norm() float64 {
	sum := float64(0)
	for _, w := range l.theta {
		sum += w * w
	}
	return math.Sqrt(sum)
}
