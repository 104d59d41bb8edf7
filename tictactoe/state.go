// Package tictactoe is the self-play value-learning exercise. The complete
// board-state table is enumerated once and passed around by reference; no
// package-level cache.
package tictactoe

import (
	"fmt"

	"github.com/rlbook/tabular-rl/types"
)

const Size = 3

type Mark int8

const (
	Empty  Mark = 0
	Cross  Mark = 1
	Nought Mark = -1
)

func (m Mark) String() string {
	switch m {
	case Cross:
		return "X"
	case Nought:
		return "O"
	}
	return "."
}

// Board is an immutable game state: the cells plus the mark to move
type Board struct {
	cells [Size * Size]Mark
	next  Mark
}

var _ types.State = &Board{}

func NewBoard() *Board {
	return &Board{next: Cross}
}

func (b *Board) Get(row, col int) Mark {
	return b.cells[row*Size+col]
}

// Next is the mark to move
func (b *Board) Next() Mark {
	return b.next
}

func (b *Board) Hash() string {
	out := make([]byte, Size*Size)
	for i, m := range b.cells {
		switch m {
		case Cross:
			out[i] = '1'
		case Nought:
			out[i] = '2'
		default:
			out[i] = '0'
		}
	}
	return string(out)
}

// Apply places the next mark at the cell and returns the resulting board
func (b *Board) Apply(p *Place) *Board {
	out := &Board{cells: b.cells, next: -b.next}
	out.cells[p.Row*Size+p.Col] = b.next
	return out
}

// Empties lists the open cells in row-major order
func (b *Board) Empties() []*Place {
	out := make([]*Place, 0, Size*Size)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.Get(i, j) == Empty {
				out = append(out, &Place{Row: i, Col: j})
			}
		}
	}
	return out
}

// Winner returns the winning mark (Empty for a tie) and whether the game is
// over
func (b *Board) Winner() (Mark, bool) {
	lines := [][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
		{0, 4, 8}, {2, 4, 6}, // diagonals
	}
	for _, l := range lines {
		sum := b.cells[l[0]] + b.cells[l[1]] + b.cells[l[2]]
		if sum == 3*Cross {
			return Cross, true
		}
		if sum == 3*Nought {
			return Nought, true
		}
	}
	for _, m := range b.cells {
		if m == Empty {
			return Empty, false
		}
	}
	return Empty, true
}

func (b *Board) String() string {
	out := ""
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			out += b.Get(i, j).String()
		}
		out += "\n"
	}
	return out
}

// Place is the action of putting the next mark at a cell
type Place struct {
	Row int
	Col int
}

var _ types.Action = &Place{}

func (p *Place) Hash() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// StateInfo is one entry of the enumeration table
type StateInfo struct {
	Board  *Board
	End    bool
	Winner Mark
}

// Enumeration is the table of every reachable board state, built once by
// walking the game tree from the empty board
type Enumeration struct {
	states map[string]*StateInfo
}

func Enumerate() *Enumeration {
	e := &Enumeration{states: make(map[string]*StateInfo)}
	e.walk(NewBoard())
	return e
}

func (e *Enumeration) walk(b *Board) {
	hash := b.Hash()
	if _, ok := e.states[hash]; ok {
		return
	}
	winner, end := b.Winner()
	e.states[hash] = &StateInfo{Board: b, End: end, Winner: winner}
	if end {
		return
	}
	for _, p := range b.Empties() {
		e.walk(b.Apply(p))
	}
}

func (e *Enumeration) Get(hash string) (*StateInfo, bool) {
	info, ok := e.states[hash]
	return info, ok
}

func (e *Enumeration) Len() int {
	return len(e.states)
}

// Each calls f for every enumerated state
func (e *Enumeration) Each(f func(*StateInfo)) {
	for _, info := range e.states {
		f(info)
	}
}
