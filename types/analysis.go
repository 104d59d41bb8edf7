package types

import (
	"fmt"
	"math"
	"os"
	"path"
	"strconv"

	"github.com/rlbook/tabular-rl/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ReturnAnalyzer collects the undiscounted return of every episode
type ReturnAnalyzer struct {
	returns []float64
}

var _ Analyzer = (*ReturnAnalyzer)(nil)

func NewReturnAnalyzer() *ReturnAnalyzer {
	return &ReturnAnalyzer{returns: make([]float64, 0)}
}

func (r *ReturnAnalyzer) Analyze(run, episode int, name string, trace *Trace, outcome Outcome) {
	total := float64(0)
	for _, rw := range trace.Rewards() {
		total += rw
	}
	r.returns = append(r.returns, total)
}

func (r *ReturnAnalyzer) DataSet() DataSet {
	return r.returns
}

func (r *ReturnAnalyzer) Reset() {
	r.returns = make([]float64, 0)
}

// StepsAnalyzer collects episode lengths. Truncated episodes are recorded at
// the horizon, they are not shortened to look successful.
type StepsAnalyzer struct {
	steps []float64
}

var _ Analyzer = (*StepsAnalyzer)(nil)

func NewStepsAnalyzer() *StepsAnalyzer {
	return &StepsAnalyzer{steps: make([]float64, 0)}
}

func (s *StepsAnalyzer) Analyze(run, episode int, name string, trace *Trace, outcome Outcome) {
	s.steps = append(s.steps, float64(trace.Len()))
}

func (s *StepsAnalyzer) DataSet() DataSet {
	return s.steps
}

func (s *StepsAnalyzer) Reset() {
	s.steps = make([]float64, 0)
}

// CoverageAnalyzer counts cumulative unique states visited
type CoverageAnalyzer struct {
	visits *util.Counter
	counts []float64
}

var _ Analyzer = (*CoverageAnalyzer)(nil)

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{
		visits: util.NewCounter(),
		counts: make([]float64, 0),
	}
}

func (c *CoverageAnalyzer) Analyze(run, episode int, name string, trace *Trace, outcome Outcome) {
	for i := 0; i < trace.Len(); i++ {
		s, _, _, next, _ := trace.Get(i)
		c.visits.Add(s.Hash())
		c.visits.Add(next.Hash())
	}
	c.counts = append(c.counts, float64(c.visits.Distinct()))
}

func (c *CoverageAnalyzer) DataSet() DataSet {
	return c.counts
}

func (c *CoverageAnalyzer) Reset() {
	c.visits.Reset()
	c.counts = make([]float64, 0)
}

// RMSErrorAnalyzer tracks the root-mean-square distance between a learned
// value table and known true values, once per episode. The analyzer is bound
// to one experiment by name: a comparison resets every learner between
// experiments, so sampling the table while a different experiment runs would
// record garbage.
type RMSErrorAnalyzer struct {
	experiment string
	values     func() *ValueTable
	truth      map[string]float64
	errors     []float64
}

var _ Analyzer = (*RMSErrorAnalyzer)(nil)

func NewRMSErrorAnalyzer(experiment string, values func() *ValueTable, truth map[string]float64) *RMSErrorAnalyzer {
	return &RMSErrorAnalyzer{
		experiment: experiment,
		values:     values,
		truth:      truth,
		errors:     make([]float64, 0),
	}
}

func (r *RMSErrorAnalyzer) Analyze(run, episode int, name string, trace *Trace, outcome Outcome) {
	if name != r.experiment {
		return
	}
	table := r.values()
	sum := float64(0)
	for state, want := range r.truth {
		diff := table.Get(state, 0) - want
		sum += diff * diff
	}
	r.errors = append(r.errors, math.Sqrt(sum/float64(len(r.truth))))
}

func (r *RMSErrorAnalyzer) DataSet() DataSet {
	return r.errors
}

func (r *RMSErrorAnalyzer) Reset() {
	r.errors = make([]float64, 0)
}

// LinePlotComparator plots one line per experiment for []float64 datasets
func LinePlotComparator(plotPath, title, yLabel string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run, episodes int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = title
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(names); i++ {
			series, ok := ds[i].([]float64)
			if !ok {
				continue
			}
			points := make(plotter.XYs, len(series))
			for j, v := range series {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_"+yLabel+".png"))
	}
}

// SummaryComparator prints the final value of each experiment's series
func SummaryComparator(label string) Comparator {
	return func(run, episodes int, names []string, ds []DataSet) {
		for i, name := range names {
			series, ok := ds[i].([]float64)
			if !ok || len(series) == 0 {
				continue
			}
			fmt.Printf("%s final %s: %g\n", name, label, series[len(series)-1])
		}
	}
}
