// Package policies holds the sample-based learners. Each one implements
// types.Policy and mutates its tables one transition at a time, single
// writer, no concurrent access.
package policies

import (
	"encoding/json"

	"github.com/rlbook/tabular-rl/types"
	"github.com/rlbook/tabular-rl/util"
	"golang.org/x/exp/rand"
)

type QLearningConfig struct {
	// Constant step size. Zero selects the decaying 1/N(s,a) schedule.
	Alpha float64
	// Discount factor
	Gamma float64
	// Exploration rate of the epsilon-greedy behavior policy
	Epsilon float64
	// Multiplicative epsilon decay applied after every episode, 0 disables
	EpsilonDecay float64
	// Floor for the decayed epsilon
	EpsilonMin float64
	// Seed for the exploration draws
	Seed uint64
}

// QLearning is tabular off-policy control: epsilon-greedy behavior with a
// max-bootstrap update
type QLearning struct {
	config  QLearningConfig
	qTable  *types.QTable
	visits  *types.QTable
	epsilon float64
	rand    *rand.Rand
}

var _ types.Policy = &QLearning{}
var _ types.Recorder = &QLearning{}

func NewQLearning(config QLearningConfig) *QLearning {
	return &QLearning{
		config:  config,
		qTable:  types.NewQTable(),
		visits:  types.NewQTable(),
		epsilon: config.Epsilon,
		rand:    rand.New(rand.NewSource(config.Seed)),
	}
}

func (q *QLearning) Reset() {
	q.qTable = types.NewQTable()
	q.visits = types.NewQTable()
	q.epsilon = q.config.Epsilon
	q.rand = rand.New(rand.NewSource(q.config.Seed))
}

// NextAction is epsilon-greedy: explore uniformly with probability epsilon,
// otherwise take the greedy action with ties broken to the lowest index.
// The greedy lookup runs on every call, exploratory or not, so a visited
// state always has its full legal action row recorded and later bootstrap
// maxima range over all of its actions, not just the explored ones.
func (q *QLearning) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	action, _ := q.qTable.MaxAmong(state.Hash(), actions, 0)
	if q.rand.Float64() < q.epsilon {
		return actions[q.rand.Intn(len(actions))], true
	}
	return action, true
}

func (q *QLearning) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	n := q.visits.Get(stateHash, actionHash, 0) + 1
	q.visits.Set(stateHash, actionHash, n)

	alpha := q.config.Alpha
	if alpha == 0 {
		alpha = 1 / n
	}

	curVal := q.qTable.Get(stateHash, actionHash, 0)
	nextVal := q.qTable.MaxKnown(nextState.Hash(), 0)
	q.qTable.Set(stateHash, actionHash, curVal+alpha*(reward+q.config.Gamma*nextVal-curVal))
}

func (q *QLearning) UpdateEpisode(episode int, trace *types.Trace) {
	if q.config.EpsilonDecay > 0 {
		q.epsilon = q.epsilon * q.config.EpsilonDecay
		if q.epsilon < q.config.EpsilonMin {
			q.epsilon = q.config.EpsilonMin
		}
	}
}

// Table is the learned state-action value table
func (q *QLearning) Table() *types.QTable {
	return q.qTable
}

// Visits is the N(s,a) counter table
func (q *QLearning) Visits() *types.QTable {
	return q.visits
}

// Epsilon is the current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.epsilon
}

func (q *QLearning) Record(path string) error {
	bs, err := json.Marshal(q.qTable)
	if err != nil {
		return err
	}
	return util.WriteToFile(path, string(bs))
}
