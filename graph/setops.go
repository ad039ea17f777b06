package graph

import "github.com/example/implicitmodeler/ir"

// UnionNode computes min(a, b), the hard union of its two inputs.
// Grounded on original_source/node.cpp's UnionNode::evaluate.
type UnionNode struct {
	base
}

// NewUnionNode constructs a Union node with the given id.
func NewUnionNode(id int) *UnionNode {
	return &UnionNode{base{id: id, numInputs: 2}}
}

// Lower implements Node.
func (n *UnionNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	v1 := resolveScalar(a, r, n.id, 0, 0)
	v2 := resolveScalar(a, r, n.id, 1, 0)
	return []ir.Register{a.MinOf(v1, v2)}
}

//-----------------------------------------------------------------------------

// SmoothUnionNode blends two implicit surfaces with rounding radius r,
// reproducing original_source/node.cpp's SmoothUnionNode::evaluate
// instruction-for-instruction:
//
//	i0 = r - v1
//	i1 = r - v2
//	i2 = max(i0, 0)
//	i3 = max(i1, 0)
//	i4 = min(v1, v2)
//	i5 = max(i4, r)
//	res = length(i2, i3)
//	out = i5 - res
//
// Input 0 and 1 are the two implicit surfaces, input 2 is the rounding
// radius.
type SmoothUnionNode struct {
	base
	DefaultRounding float64
}

// NewSmoothUnionNode constructs a SmoothUnion node with the given id.
func NewSmoothUnionNode(id int) *SmoothUnionNode {
	return &SmoothUnionNode{base: base{id: id, numInputs: 3}, DefaultRounding: 0.1}
}

// Lower implements Node.
func (n *SmoothUnionNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	v1 := resolveScalar(a, r, n.id, 0, 0)
	v2 := resolveScalar(a, r, n.id, 1, 0)
	radius := resolveScalar(a, r, n.id, 2, n.DefaultRounding)

	zero := a.Zero()
	i0 := a.Sub(radius, v1)
	i1 := a.Sub(radius, v2)
	i2 := a.MaxOf(i0, zero)
	i3 := a.MaxOf(i1, zero)
	i4 := a.MinOf(v1, v2)
	i5 := a.MaxOf(i4, radius)
	res := a.Length2(ir.Vec2{i2, i3})
	return []ir.Register{a.Sub(i5, res)}
}

//-----------------------------------------------------------------------------

// IntersectionNode computes max(a, b), the hard intersection of its two
// inputs. Listed in original_source/editor.cpp's operator dropdown
// (draw_operator_dropdown, alongside UnionNode/SmoothUnionNode) but
// never implemented in node.cpp/node.h; built here from the standard
// CSG intersection formula (SPEC_FULL.md supplement, same situation as
// CylinderNode).
type IntersectionNode struct {
	base
}

// NewIntersectionNode constructs an Intersection node with the given id.
func NewIntersectionNode(id int) *IntersectionNode {
	return &IntersectionNode{base{id: id, numInputs: 2}}
}

// Lower implements Node.
func (n *IntersectionNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	v1 := resolveScalar(a, r, n.id, 0, 0)
	v2 := resolveScalar(a, r, n.id, 1, 0)
	return []ir.Register{a.MaxOf(v1, v2)}
}

//-----------------------------------------------------------------------------

// SubtractionNode computes max(a, -b), carving input 1's solid out of
// input 0's. Same grounding as IntersectionNode: declared in
// original_source/editor.cpp's operator dropdown, never implemented in
// node.cpp/node.h.
type SubtractionNode struct {
	base
}

// NewSubtractionNode constructs a Subtraction node with the given id.
func NewSubtractionNode(id int) *SubtractionNode {
	return &SubtractionNode{base{id: id, numInputs: 2}}
}

// Lower implements Node.
func (n *SubtractionNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	v1 := resolveScalar(a, r, n.id, 0, 0)
	v2 := resolveScalar(a, r, n.id, 1, 0)
	negV2 := a.Sub(a.Zero(), v2)
	return []ir.Register{a.MaxOf(v1, negV2)}
}
