package types

import (
	"bufio"
	"encoding/json"
	"os"
)

// TransitionGraph records the explored part of the state space: per-state
// visit counts and, per action, which states followed. Environments with
// random starts or stochastic opponents can have several successors under
// one action.
type TransitionGraph struct {
	Nodes map[string]*GraphNode
}

func NewTransitionGraph() *TransitionGraph {
	return &TransitionGraph{
		Nodes: make(map[string]*GraphNode),
	}
}

// Update adds one observed transition and reports whether the source state
// was new
func (g *TransitionGraph) Update(from State, action Action, to State) bool {
	fromKey := from.Hash()
	toKey := to.Hash()
	isNew := false
	if _, ok := g.Nodes[fromKey]; !ok {
		g.Nodes[fromKey] = newGraphNode(fromKey)
		isNew = true
	}
	if _, ok := g.Nodes[toKey]; !ok {
		g.Nodes[toKey] = newGraphNode(toKey)
	}
	g.Nodes[fromKey].Visits += 1
	g.Nodes[fromKey].addNext(action.Hash(), toKey)
	g.Nodes[toKey].addPrev(action.Hash(), fromKey)
	return isNew
}

func (g *TransitionGraph) Visits() map[string]int {
	results := make(map[string]int)
	for k, n := range g.Nodes {
		results[k] = n.Visits
	}
	return results
}

func (g *TransitionGraph) Record(filePath string) error {
	bs, err := json.Marshal(g)
	if err != nil {
		return err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	writer.Write(bs)
	return writer.Flush()
}

type GraphNode struct {
	Key    string
	Visits int
	// Next, Prev: each action can lead to many states
	Next map[string]map[string]bool
	Prev map[string]map[string]bool
}

func newGraphNode(key string) *GraphNode {
	return &GraphNode{
		Key:    key,
		Visits: 0,
		Next:   make(map[string]map[string]bool),
		Prev:   make(map[string]map[string]bool),
	}
}

func (n *GraphNode) addPrev(a, prev string) {
	if _, ok := n.Prev[a]; !ok {
		n.Prev[a] = make(map[string]bool)
	}
	n.Prev[a][prev] = true
}

func (n *GraphNode) addNext(a, next string) {
	if _, ok := n.Next[a]; !ok {
		n.Next[a] = make(map[string]bool)
	}
	n.Next[a][next] = true
}

// GraphAnalyzer feeds every transition of every trace into a graph
type GraphAnalyzer struct {
	graph *TransitionGraph
}

var _ Analyzer = (*GraphAnalyzer)(nil)

func NewGraphAnalyzer() *GraphAnalyzer {
	return &GraphAnalyzer{graph: NewTransitionGraph()}
}

func (g *GraphAnalyzer) Analyze(run, episode int, name string, trace *Trace, outcome Outcome) {
	for i := 0; i < trace.Len(); i++ {
		s, a, _, next, ok := trace.Get(i)
		if !ok {
			continue
		}
		g.graph.Update(s, a, next)
	}
}

func (g *GraphAnalyzer) DataSet() DataSet {
	return g.graph
}

func (g *GraphAnalyzer) Reset() {
	g.graph = NewTransitionGraph()
}

// GraphDumpComparator writes each experiment's transition graph as JSON
func GraphDumpComparator(savePath string) Comparator {
	if _, err := os.Stat(savePath); err != nil {
		os.MkdirAll(savePath, os.ModePerm)
	}
	return func(run, episodes int, names []string, ds []DataSet) {
		for i := 0; i < len(names); i++ {
			graph, ok := ds[i].(*TransitionGraph)
			if !ok {
				continue
			}
			graph.Record(savePath + "/" + names[i] + "_graph.json")
		}
	}
}
