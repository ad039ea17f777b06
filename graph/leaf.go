package graph

import "github.com/example/implicitmodeler/ir"

// ScalarNode has no inputs; it emits a single constant register holding
// Value. Grounded on original_source/node.cpp's leaf float-constant
// nodes (the Radius/Rounding-style "float slider" inputs).
type ScalarNode struct {
	base
	Value float64
}

// NewScalarNode constructs a Scalar leaf with the given id and value.
func NewScalarNode(id int, value float64) *ScalarNode {
	return &ScalarNode{base: base{id: id, numInputs: 0}, Value: value}
}

// Lower implements Node.
func (n *ScalarNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	return []ir.Register{a.Const(n.Value)}
}

//-----------------------------------------------------------------------------

// PointNode has no inputs; it emits three constant registers holding
// Value's components. Grounded on original_source/node.cpp's leaf
// vec3-constant nodes (the Center/Size-style "xyz slider" inputs).
type PointNode struct {
	base
	Value [3]float64
}

// NewPointNode constructs a Point leaf with the given id and value.
func NewPointNode(id int, value [3]float64) *PointNode {
	return &PointNode{base: base{id: id, numInputs: 0}, Value: value}
}

// Lower implements Node.
func (n *PointNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	return []ir.Register{a.Const(n.Value[0]), a.Const(n.Value[1]), a.Const(n.Value[2])}
}

//-----------------------------------------------------------------------------

// TimeNode has no inputs; it emits a single constant register holding
// Sample, a wall-clock value the host samples once per mesh generation
// and assigns before lowering. TimeNode itself never reads the clock —
// keeping graph free of hidden, unrepeatable state is the point of the
// host-supplied-sample design (SPEC_FULL.md §6 supplement).
type TimeNode struct {
	base
	Sample float64
}

// NewTimeNode constructs a Time leaf with the given id.
func NewTimeNode(id int) *TimeNode {
	return &TimeNode{base: base{id: id, numInputs: 0}}
}

// Lower implements Node.
func (n *TimeNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	return []ir.Register{a.Const(n.Sample)}
}
