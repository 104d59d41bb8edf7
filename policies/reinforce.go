package policies

import (
	"encoding/json"
	"math"

	"github.com/rlbook/tabular-rl/types"
	"github.com/rlbook/tabular-rl/util"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

type ReinforceConfig struct {
	// Step size of the gradient ascent
	Alpha float64
	// Discount factor
	Gamma float64
	// Margin that sampled action probabilities are clipped to before any
	// log or division, so boundary probabilities cannot blow up the update
	ProbClip float64
	// Number of actions in the (fixed) action set
	Actions int
	// Seed for the action draws
	Seed uint64
}

// Reinforce performs stochastic gradient ascent on expected return over a
// softmax policy with one preference parameter per action
type Reinforce struct {
	config ReinforceConfig
	theta  []float64
	// action hash -> position in the domain's fixed enumeration order,
	// learned from the action slices handed to NextAction
	order map[string]int
	src   rand.Source
}

var _ types.Policy = &Reinforce{}
var _ types.Recorder = &Reinforce{}

func NewReinforce(config ReinforceConfig) *Reinforce {
	if config.ProbClip == 0 {
		config.ProbClip = 1e-5
	}
	return &Reinforce{
		config: config,
		theta:  make([]float64, config.Actions),
		order:  make(map[string]int),
		src:    rand.NewSource(config.Seed),
	}
}

func (r *Reinforce) Reset() {
	r.theta = make([]float64, r.config.Actions)
	r.order = make(map[string]int)
	r.src = rand.NewSource(r.config.Seed)
}

// ActionProbs is the softmax distribution over the action set, stabilized by
// subtracting the maximum preference before exponentiating
func (r *Reinforce) ActionProbs() []float64 {
	maxPref := r.theta[0]
	for _, h := range r.theta[1:] {
		if h > maxPref {
			maxPref = h
		}
	}
	probs := make([]float64, len(r.theta))
	sum := float64(0)
	for i, h := range r.theta {
		probs[i] = math.Exp(h - maxPref)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func (r *Reinforce) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	for i, a := range actions {
		if _, ok := r.order[a.Hash()]; !ok {
			r.order[a.Hash()] = i
		}
	}
	probs := r.ActionProbs()
	weights := make([]float64, len(actions))
	for i, a := range actions {
		weights[i] = probs[r.order[a.Hash()]]
	}
	i, ok := sampleuv.NewWeighted(weights, r.src).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (r *Reinforce) Update(_ int, _ types.State, _ types.Action, _ float64, _ types.State) {}

// UpdateEpisode applies the REINFORCE update over the sampled episode:
// theta += alpha * gamma^t * G_t * grad log pi(a_t)
func (r *Reinforce) UpdateEpisode(episode int, trace *types.Trace) {
	gammaT := float64(1)
	for t := 0; t < trace.Len(); t++ {
		_, action, _, _, ok := trace.Get(t)
		if !ok {
			break
		}
		idx, ok := r.order[action.Hash()]
		if !ok {
			continue
		}
		ret := trace.Return(t, r.config.Gamma)

		probs := r.ActionProbs()
		for i := range probs {
			probs[i] = clipProb(probs[i], r.config.ProbClip)
		}
		for i := range r.theta {
			grad := -probs[i]
			if i == idx {
				grad += 1
			}
			r.theta[i] += r.config.Alpha * gammaT * ret * grad
		}
		gammaT *= r.config.Gamma
	}
}

// Theta is a copy of the current parameter vector
func (r *Reinforce) Theta() []float64 {
	out := make([]float64, len(r.theta))
	copy(out, r.theta)
	return out
}

func (r *Reinforce) Record(path string) error {
	bs, err := json.Marshal(r.theta)
	if err != nil {
		return err
	}
	return util.WriteToFile(path, string(bs))
}

func clipProb(p, margin float64) float64 {
	if p < margin {
		return margin
	}
	if p > 1-margin {
		return 1 - margin
	}
	return p
}
