package graph

import "github.com/example/implicitmodeler/ir"

// OutputNode is the graph's single root: it forwards its one scalar
// input unchanged. Mirrors original_source/node.cpp's OutputNode.
type OutputNode struct {
	base
}

// NewOutputNode constructs the root node with the given id.
func NewOutputNode(id int) *OutputNode {
	return &OutputNode{base{id: id, numInputs: 1}}
}

// Lower forwards to whatever feeds input 0. Returns nil if that input
// is unbound. GenerateInstructions checks HasRoot first and reports an
// unbound root as an error; a host that treats a missing root input as
// "nothing to mesh" (spec.md §7) calls HasRoot itself beforehand.
func (n *OutputNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	src, ok := r.Source(n.id, 0)
	if !ok {
		return nil
	}
	return src.Lower(a, r)
}
