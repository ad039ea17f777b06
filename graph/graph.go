package graph

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"github.com/example/implicitmodeler/ir"
)

// link identifies one bound input slot: node dstID's inputIndex-th input
// is fed by node srcID.
type link struct {
	dstID, inputIndex, srcID int
}

// Graph is a standalone Resolver implementation for testing and for
// headless hosts — the minimum bookkeeping the node→IR contract needs,
// deliberately short of a full interactive editor (spec.md §1, §9).
type Graph struct {
	nodes map[int]Node
	links map[[2]int]int // (dstID, inputIndex) -> srcID
	order []int          // insertion order, for deterministic Validate errors
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int]Node),
		links: make(map[[2]int]int),
	}
}

// AddNode registers n. It is an error to add two nodes with the same id.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.ID()]; exists {
		return fmt.Errorf("graph: node id %d already registered", n.ID())
	}
	g.nodes[n.ID()] = n
	g.order = append(g.order, n.ID())
	return nil
}

// Connect wires srcID's output into dstID's inputIndex-th input.
// Connect does not itself check for cycles — call Validate once the
// graph is fully built (mirroring the "the editor already guarantees
// acyclicity, but compiling should not have to trust that" stance in
// spec.md §9).
func (g *Graph) Connect(dstID, inputIndex, srcID int) error {
	dst, ok := g.nodes[dstID]
	if !ok {
		return fmt.Errorf("graph: unknown destination node %d", dstID)
	}
	if _, ok := g.nodes[srcID]; !ok {
		return fmt.Errorf("graph: unknown source node %d", srcID)
	}
	if inputIndex < 0 || inputIndex >= dst.NumInputs() {
		return fmt.Errorf("graph: node %d has no input %d", dstID, inputIndex)
	}
	g.links[[2]int{dstID, inputIndex}] = srcID
	return nil
}

// Source implements Resolver.
func (g *Graph) Source(nodeID, inputIndex int) (Node, bool) {
	srcID, ok := g.links[[2]int{nodeID, inputIndex}]
	if !ok {
		return nil, false
	}
	src, ok := g.nodes[srcID]
	return src, ok
}

// Validate checks that the graph's links form a DAG, using
// katalvlaran/lvlath's directed-graph topological sort — the acyclicity
// guarantee spec.md §6 says the editor already enforces, re-checked here
// so GenerateInstructions never has to trust an untrusted caller.
func (g *Graph) Validate() error {
	dg := core.NewGraph(core.WithDirected(true))
	for _, id := range g.order {
		if err := dg.AddVertex(strconv.Itoa(id)); err != nil {
			return fmt.Errorf("graph: validate: %w", err)
		}
	}
	for key, srcID := range g.links {
		dstID := key[0]
		// Edge direction is source-feeds-destination, i.e. data flows
		// src -> dst; a topological order must place src before dst.
		if _, err := dg.AddEdge(strconv.Itoa(srcID), strconv.Itoa(dstID), 0); err != nil {
			return fmt.Errorf("graph: validate: %w", err)
		}
	}
	if _, err := dfs.TopologicalSort(dg); err != nil {
		return fmt.Errorf("graph: cycle detected: %w", err)
	}
	return nil
}

// HasRoot reports whether root's single input is bound to anything. A
// root with no input is not an error (spec.md §7): the mesher is simply
// not invoked.
func HasRoot(root *OutputNode, r Resolver) bool {
	_, ok := r.Source(root.ID(), 0)
	return ok
}

// GenerateInstructions lowers root through r into a validated ir.Program,
// starting register allocation at ir.NumParamRegisters — the "editor
// calls this on the root Output node, passing a fresh current_register =
// 3" contract in spec.md §6. Returns an error if root has no bound
// input, or if the lowered program fails ir.Program.Validate.
func GenerateInstructions(root *OutputNode, r Resolver) (ir.Program, error) {
	if !HasRoot(root, r) {
		return ir.Program{}, fmt.Errorf("graph: root has no bound input")
	}
	a := ir.NewAllocator(ir.NumParamRegisters)
	root.Lower(a, r)
	prog := a.Program()
	if err := prog.Validate(); err != nil {
		return ir.Program{}, fmt.Errorf("graph: generated program invalid: %w", err)
	}
	return prog, nil
}
