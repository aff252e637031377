// Package cdg models the engine's control dependency graph: the "signal X
// depends on signal Y" relation whose topological levels define the only
// legal evaluation order inside control.Engine.Evaluate. The graph is a
// design-time artifact; validating it acyclic and reading off its levels is
// the well-formedness check the engine's field ordering is held against.
package cdg

import (
	"fmt"
	"sort"
)

// Signal names one control signal node. The names match the control.Vector
// fields they correspond to.
type Signal string

// The signal nodes of the engine.
const (
	InstructionDecode Signal = "InstructionDecode"

	RegWrite Signal = "RegWrite"
	RegDst   Signal = "RegDst"
	ImmSrc   Signal = "ImmSrc"
	ALUOp    Signal = "ALUOp"
	ALUSrc   Signal = "ALUSrc"
	Branch   Signal = "Branch"
	Jump     Signal = "Jump"
	MemRead  Signal = "MemRead"
	MemWrite Signal = "MemWrite"
	WBSrc    Signal = "WBSrc"

	ForwardA Signal = "ForwardA"
	ForwardB Signal = "ForwardB"
	ForwardC Signal = "ForwardC"

	Stall  Signal = "Stall"
	Bubble Signal = "Bubble"

	BranchZero  Signal = "BranchZero"
	BranchTaken Signal = "BranchTaken"
	TargetReady Signal = "TargetReady"

	PCWrite   Signal = "PCWrite"
	IFIDWrite Signal = "IFIDWrite"
	FlushIFID Signal = "FlushIFID"
	FlushIDEX Signal = "FlushIDEX"
	PCSrc     Signal = "PCSrc"
)

// Graph is a directed graph over control signals. An edge u -> v means v's
// value depends on u's value and must be evaluated after it.
type Graph struct {
	succs map[Signal][]Signal
	nodes []Signal
	seen  map[Signal]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		succs: make(map[Signal][]Signal),
		seen:  make(map[Signal]bool),
	}
}

// AddEdge records that dst depends on src.
func (g *Graph) AddEdge(src, dst Signal) {
	g.addNode(src)
	g.addNode(dst)
	g.succs[src] = append(g.succs[src], dst)
}

func (g *Graph) addNode(s Signal) {
	if !g.seen[s] {
		g.seen[s] = true
		g.nodes = append(g.nodes, s)
	}
}

// Signals returns all nodes in insertion order.
func (g *Graph) Signals() []Signal {
	out := make([]Signal, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// TopologicalOrder returns the signals in an order where every signal
// appears after all of its dependencies (Kahn's algorithm). It fails if
// the graph has a cycle, naming the signals involved.
func (g *Graph) TopologicalOrder() ([]Signal, error) {
	indegree := make(map[Signal]int, len(g.nodes))
	for _, n := range g.nodes {
		indegree[n] = 0
	}
	for _, dsts := range g.succs {
		for _, d := range dsts {
			indegree[d]++
		}
	}

	var ready []Signal
	for _, n := range g.nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sortSignals(ready)

	order := make([]Signal, 0, len(g.nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		var freed []Signal
		for _, d := range g.succs[n] {
			indegree[d]--
			if indegree[d] == 0 {
				freed = append(freed, d)
			}
		}
		sortSignals(freed)
		ready = append(ready, freed...)
	}

	if len(order) != len(g.nodes) {
		var stuck []Signal
		for _, n := range g.nodes {
			if indegree[n] > 0 {
				stuck = append(stuck, n)
			}
		}
		sortSignals(stuck)
		return nil, fmt.Errorf("control dependency graph has a cycle through %v", stuck)
	}

	return order, nil
}

// Validate checks that the graph is acyclic.
func (g *Graph) Validate() error {
	_, err := g.TopologicalOrder()
	return err
}

// Levels assigns each signal its earliest evaluation step: sources are at
// level 0, and every other signal sits one past its deepest dependency.
// Signals on the same level are mutually independent.
func (g *Graph) Levels() (map[Signal]int, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	levels := make(map[Signal]int, len(order))
	for _, n := range order {
		for _, d := range g.succs[n] {
			if levels[n]+1 > levels[d] {
				levels[d] = levels[n] + 1
			}
		}
	}

	return levels, nil
}

// CriticalPathLength returns the number of propagation steps on the longest
// dependency chain, i.e. one past the deepest level.
func (g *Graph) CriticalPathLength() (int, error) {
	levels, err := g.Levels()
	if err != nil {
		return 0, err
	}

	max := 0
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max + 1, nil
}

func sortSignals(s []Signal) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
