// Package gridenv holds the pieces shared by the grid-shaped exercises:
// cell states, the four movement actions and a visit-heatmap dataset.
package gridenv

import (
	"fmt"

	"github.com/rlbook/tabular-rl/types"
)

// Cell is a (row, column) grid state
type Cell struct {
	Row int
	Col int
}

var _ types.State = &Cell{}

func (c *Cell) Hash() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func (c *Cell) Eq(other *Cell) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// Move is one of the four grid movement actions
type Move struct {
	Direction string
	DRow      int
	DCol      int
}

var _ types.Action = &Move{}

func (m *Move) Hash() string {
	return m.Direction
}

var (
	MoveUp    = &Move{"Up", -1, 0}
	MoveDown  = &Move{"Down", 1, 0}
	MoveLeft  = &Move{"Left", 0, -1}
	MoveRight = &Move{"Right", 0, 1}

	// AllMoves is the fixed enumeration order of the movement actions.
	// Greedy tie-breaks depend on this order staying put.
	AllMoves = []types.Action{MoveUp, MoveDown, MoveLeft, MoveRight}
)

// Cells builds the enumeration table of every cell of a height x width grid,
// row-major. Models build this once and hand it out by reference.
func Cells(height, width int) []types.State {
	states := make([]types.State, 0, height*width)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			states = append(states, &Cell{Row: i, Col: j})
		}
	}
	return states
}
