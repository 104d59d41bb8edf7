package gridenv

import (
	"encoding/json"
	"os"
	"path"
	"strconv"

	"github.com/rlbook/tabular-rl/types"
	"gonum.org/v1/plot/plotter"
)

// VisitGrid counts per-cell visits and satisfies plotter.GridXYZ so the
// comparison layer can render it as a heatmap
type VisitGrid struct {
	Visits map[int]map[int]int
	Height int
	Width  int
}

var _ plotter.GridXYZ = &VisitGrid{}

func (g *VisitGrid) Dims() (int, int) {
	return g.Width, g.Height
}

func (g *VisitGrid) Z(j, i int) float64 {
	return float64(g.Visits[i][j])
}

func (g *VisitGrid) X(j int) float64 {
	return float64(j)
}

func (g *VisitGrid) Y(i int) float64 {
	return float64(i)
}

func (g *VisitGrid) Min() float64 {
	return 0.0
}

func (g *VisitGrid) Max() float64 {
	max := 0
	for _, vals := range g.Visits {
		for _, count := range vals {
			if count > max {
				max = count
			}
		}
	}
	return float64(max)
}

// VisitAnalyzer accumulates cell visits across episodes
type VisitAnalyzer struct {
	grid *VisitGrid
}

var _ types.Analyzer = (*VisitAnalyzer)(nil)

func NewVisitAnalyzer() *VisitAnalyzer {
	return &VisitAnalyzer{grid: newVisitGrid()}
}

func newVisitGrid() *VisitGrid {
	return &VisitGrid{
		Visits: make(map[int]map[int]int),
		Height: 0,
		Width:  0,
	}
}

func (v *VisitAnalyzer) Analyze(run, episode int, name string, trace *types.Trace, outcome types.Outcome) {
	for i := 0; i < trace.Len(); i++ {
		state, _, _, _, _ := trace.Get(i)
		cell, ok := state.(*Cell)
		if !ok {
			continue
		}
		if _, ok := v.grid.Visits[cell.Row]; !ok {
			v.grid.Visits[cell.Row] = make(map[int]int)
		}
		v.grid.Visits[cell.Row][cell.Col] += 1
		if cell.Row+1 > v.grid.Height {
			v.grid.Height = cell.Row + 1
		}
		if cell.Col+1 > v.grid.Width {
			v.grid.Width = cell.Col + 1
		}
	}
}

func (v *VisitAnalyzer) DataSet() types.DataSet {
	return v.grid
}

func (v *VisitAnalyzer) Reset() {
	v.grid = newVisitGrid()
}

// VisitDumpComparator writes each experiment's visit grid as JSON next to
// the other results, for the external rendering layer
func VisitDumpComparator(savePath string) types.Comparator {
	if _, err := os.Stat(savePath); err != nil {
		os.MkdirAll(savePath, os.ModePerm)
	}
	return func(run, episodes int, names []string, ds []types.DataSet) {
		for i := 0; i < len(names); i++ {
			grid, ok := ds[i].(*VisitGrid)
			if !ok {
				continue
			}
			bs, err := json.Marshal(grid)
			if err != nil {
				continue
			}
			os.WriteFile(path.Join(savePath, names[i]+"_"+strconv.Itoa(run)+"_visits.json"), bs, 0644)
		}
	}
}
