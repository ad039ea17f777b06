// Package graph implements the node→IR lowering contract described in
// spec.md §6 and §9: a closed set of node kinds, each able to emit its
// own Instructions given a register allocator and a way to ask "what
// feeds my k-th input". Graph editing bookkeeping (id allocation, link
// creation, dropdown menus, drawing) is deliberately out of scope
// (spec.md §1) — Graph here is only as much bookkeeping as the contract
// needs to be testable without a host editor.
package graph

import (
	"github.com/example/implicitmodeler/ir"
)

// Resolver answers, for a given node id and input index, which Node (if
// any) feeds that input. An editor implements this by looking up its
// link table; Graph (graph.go) provides a standalone implementation for
// testing and for headless hosts.
//
// Passing the resolver in explicitly (rather than giving nodes an owning
// back-pointer to their editor) is the strategy spec.md §9 recommends:
// it keeps Node a pure value that only needs a register allocator and a
// question-answering function to lower itself.
type Resolver interface {
	Source(nodeID, inputIndex int) (node Node, ok bool)
}

// Node is the lowering contract every node kind implements: given an
// allocator and a resolver, emit instructions deterministically and
// return the register(s) holding the result (one register for a scalar
// output, three for a vector output).
type Node interface {
	ID() int
	NumInputs() int
	Lower(a *ir.Allocator, r Resolver) []ir.Register
}

// base holds the bookkeeping every node kind shares: its id and input
// count. It is not exported; concrete node types embed it.
type base struct {
	id        int
	numInputs int
}

func (b base) ID() int        { return b.id }
func (b base) NumInputs() int { return b.numInputs }

// resolveScalar lowers the source wired to input index idx of node id,
// or synthesises a constant register from def if that input is unbound
// — the "nodes with scalar inputs unbound in the UI synthesise a
// constant" rule in spec.md §4.1.
func resolveScalar(a *ir.Allocator, r Resolver, nodeID, idx int, def float64) ir.Register {
	if src, ok := r.Source(nodeID, idx); ok {
		out := src.Lower(a, r)
		if len(out) != 1 {
			// A vector-valued source wired into a scalar input is a
			// malformed graph; the editor's acyclicity/arity guarantees
			// (spec.md §6) are assumed to prevent this, but take the
			// first component defensively rather than panicking.
			return out[0]
		}
		return out[0]
	}
	return a.Const(def)
}

// resolveVec3 is resolveScalar's vector counterpart: unbound inputs
// synthesise three constants (spec.md §4.1).
func resolveVec3(a *ir.Allocator, r Resolver, nodeID, idx int, def [3]float64) ir.Vec3 {
	if src, ok := r.Source(nodeID, idx); ok {
		out := src.Lower(a, r)
		if len(out) >= 3 {
			return ir.Vec3{out[0], out[1], out[2]}
		}
	}
	return ir.Vec3{a.Const(def[0]), a.Const(def[1]), a.Const(def[2])}
}

// paramPoint returns the registers holding the function's x, y, z
// parameters — the evaluation point p in spec.md §4.1's formulas.
func paramPoint() ir.Vec3 {
	return ir.Vec3{ir.RegX, ir.RegY, ir.RegZ}
}
