package tictactoe

import (
	"encoding/json"
	"os"

	"github.com/rlbook/tabular-rl/types"
	"golang.org/x/exp/rand"
)

// Player is anything that can pick a move. Solvers and the judger only see
// this capability, never the concrete kind of player.
type Player interface {
	// Act picks a move for the board, which has the player's mark to move
	Act(*Board) *Place
	// Observe is called with every board the game passes through
	Observe(*Board)
	// Finish is called once the game ends with the winning mark
	Finish(winner Mark)
	// NewGame resets per-game bookkeeping
	NewGame()
}

// ValuePlayer learns state-value estimates by temporal-difference backups
// over its own greedy moves, the classic self-play scheme
type ValuePlayer struct {
	Mark Mark

	estimations *types.ValueTable
	enum        *Enumeration
	alpha       float64
	epsilon     float64
	rand        *rand.Rand

	// per-game record of visited state hashes and whether the move into
	// them was greedy; exploratory moves cut the backup chain
	visited            []string
	greedy             []bool
	pendingExploratory bool
}

var _ Player = &ValuePlayer{}

func NewValuePlayer(mark Mark, enum *Enumeration, alpha, epsilon float64, seed uint64) *ValuePlayer {
	p := &ValuePlayer{
		Mark:        mark,
		estimations: types.NewValueTable(),
		enum:        enum,
		alpha:       alpha,
		epsilon:     epsilon,
		rand:        rand.New(rand.NewSource(seed)),
	}
	p.initEstimations()
	return p
}

// initial estimates: won end states are worth 1, lost ones 0, ties 0.5,
// everything else 0.5
func (p *ValuePlayer) initEstimations() {
	p.enum.Each(func(info *StateInfo) {
		switch {
		case info.End && info.Winner == p.Mark:
			p.estimations.Set(info.Board.Hash(), 1)
		case info.End && info.Winner == -p.Mark:
			p.estimations.Set(info.Board.Hash(), 0)
		default:
			p.estimations.Set(info.Board.Hash(), 0.5)
		}
	})
}

func (p *ValuePlayer) NewGame() {
	p.visited = p.visited[:0]
	p.greedy = p.greedy[:0]
	p.pendingExploratory = false
}

func (p *ValuePlayer) Observe(b *Board) {
	p.visited = append(p.visited, b.Hash())
	p.greedy = append(p.greedy, !p.pendingExploratory)
	p.pendingExploratory = false
}

func (p *ValuePlayer) Act(b *Board) *Place {
	moves := b.Empties()
	if p.rand.Float64() < p.epsilon {
		// the state this move leads to must not feed the backup chain
		p.pendingExploratory = true
		return moves[p.rand.Intn(len(moves))]
	}
	var best *Place
	bestVal := float64(-1)
	for _, m := range moves {
		val := p.estimations.Get(b.Apply(m).Hash(), 0.5)
		if val > bestVal {
			bestVal = val
			best = m
		}
	}
	return best
}

// Finish runs the TD backup backwards through the visited states:
// V(s_t) += alpha * (V(s_t+1) - V(s_t)), skipping past exploratory moves
func (p *ValuePlayer) Finish(winner Mark) {
	for i := len(p.visited) - 2; i >= 0; i-- {
		if !p.greedy[i+1] {
			continue
		}
		cur := p.estimations.Get(p.visited[i], 0.5)
		next := p.estimations.Get(p.visited[i+1], 0.5)
		p.estimations.Set(p.visited[i], cur+p.alpha*(next-cur))
	}
}

// Estimations is the learned state-value table
func (p *ValuePlayer) Estimations() *types.ValueTable {
	return p.estimations
}

// SetEpsilon adjusts the exploration rate, e.g. to 0 for evaluation games
func (p *ValuePlayer) SetEpsilon(epsilon float64) {
	p.epsilon = epsilon
}

// SavePolicy writes the estimations as JSON
func (p *ValuePlayer) SavePolicy(path string) error {
	bs, err := json.Marshal(p.estimations)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}

// LoadPolicy restores estimations saved by SavePolicy
func (p *ValuePlayer) LoadPolicy(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, p.estimations)
}

// RandomPlayer picks uniformly among the open cells
type RandomPlayer struct {
	rand *rand.Rand
}

var _ Player = &RandomPlayer{}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Act(b *Board) *Place {
	moves := b.Empties()
	return moves[p.rand.Intn(len(moves))]
}

func (p *RandomPlayer) Observe(*Board) {}

func (p *RandomPlayer) Finish(Mark) {}

func (p *RandomPlayer) NewGame() {}

// Judger alternates moves between two players until the game ends
type Judger struct {
	cross  Player
	nought Player
}

func NewJudger(cross, nought Player) *Judger {
	return &Judger{cross: cross, nought: nought}
}

// Play runs one game and returns the winning mark, Empty for a tie
func (j *Judger) Play() Mark {
	board := NewBoard()
	j.cross.NewGame()
	j.nought.NewGame()
	j.cross.Observe(board)
	j.nought.Observe(board)

	for {
		var move *Place
		if board.Next() == Cross {
			move = j.cross.Act(board)
		} else {
			move = j.nought.Act(board)
		}
		board = board.Apply(move)
		j.cross.Observe(board)
		j.nought.Observe(board)

		winner, end := board.Winner()
		if end {
			j.cross.Finish(winner)
			j.nought.Finish(winner)
			return winner
		}
	}
}
