package graph

import "github.com/example/implicitmodeler/ir"

// SphereNode computes length(p - center) - radius. Input 0 is the
// center (vector, default origin), input 1 is the radius (scalar,
// default 1). Grounded on original_source/node.cpp's SphereNode.
type SphereNode struct {
	base
	DefaultCenter [3]float64
	DefaultRadius float64
}

// NewSphereNode constructs a Sphere node with the given id.
func NewSphereNode(id int) *SphereNode {
	return &SphereNode{base: base{id: id, numInputs: 2}, DefaultRadius: 1}
}

// Lower implements Node.
func (n *SphereNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	center := resolveVec3(a, r, n.id, 0, n.DefaultCenter)
	radius := resolveScalar(a, r, n.id, 1, n.DefaultRadius)
	q := a.Sub3(paramPoint(), center)
	return []ir.Register{a.Sub(a.Length3(q), radius)}
}

//-----------------------------------------------------------------------------

// TorusNode computes sqrt((length(q.xz) - rMajor)^2 + q.y^2) - rMinor,
// where q = p - center. original_source/node.cpp's TorusNode assumes
// center is the origin; SPEC_FULL.md generalises it to an explicit
// center input, matching spec.md §4.1's formula.
type TorusNode struct {
	base
	DefaultMajorRadius float64
	DefaultMinorRadius float64
	DefaultCenter      [3]float64
}

// NewTorusNode constructs a Torus node with the given id. Inputs, in
// order: major radius, minor radius, center.
func NewTorusNode(id int) *TorusNode {
	return &TorusNode{base: base{id: id, numInputs: 3}, DefaultMajorRadius: 1, DefaultMinorRadius: 0.25}
}

// Lower implements Node.
func (n *TorusNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	rMajor := resolveScalar(a, r, n.id, 0, n.DefaultMajorRadius)
	rMinor := resolveScalar(a, r, n.id, 1, n.DefaultMinorRadius)
	center := resolveVec3(a, r, n.id, 2, n.DefaultCenter)
	q := a.Sub3(paramPoint(), center)
	qxz := ir.Vec2{q[0], q[2]}
	inner := a.Sub(a.Length2(qxz), rMajor)
	innerSq := a.Mul(inner, inner)
	ySq := a.Mul(q[1], q[1])
	return []ir.Register{a.Sub(a.SqrtOf(a.Add(innerSq, ySq)), rMinor)}
}

//-----------------------------------------------------------------------------

// BoxNode computes, with q = |p - center| - size:
//
//	length(max(q, 0)) + min(maxElement(q), 0)
//
// the standard box SDF, zero on the surface, negative inside — the form
// original_source/node.cpp's BoxNode::evaluate actually builds (spec.md
// §4.1 calls this "the negative branch", and it's the one used here).
// original_source's BoxNode has no center input (fixed at the origin);
// a center input is added here, matching spec.md §4.1's formula and
// TorusNode/CylinderNode's generalisation. Input 0 is the half-extent
// (size), input 1 is the center.
type BoxNode struct {
	base
	DefaultSize   [3]float64
	DefaultCenter [3]float64
}

// NewBoxNode constructs a Box node with the given id.
func NewBoxNode(id int) *BoxNode {
	return &BoxNode{base: base{id: id, numInputs: 2}, DefaultSize: [3]float64{0.5, 0.5, 0.5}}
}

// Lower implements Node.
func (n *BoxNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	size := resolveVec3(a, r, n.id, 0, n.DefaultSize)
	center := resolveVec3(a, r, n.id, 1, n.DefaultCenter)
	centered := a.Sub3(paramPoint(), center)
	q := a.Sub3(a.Abs3(centered), size)
	zero := a.Zero()
	maxElem := a.MaxElement3(q)
	inside := a.MinOf(maxElem, zero)
	qClamped := a.Max3(q, ir.Vec3{zero, zero, zero})
	outside := a.Length3(qClamped)
	return []ir.Register{a.Add(outside, inside)}
}

//-----------------------------------------------------------------------------

// CylinderNode computes max(length(q.xz) - radius, |q.y| - height),
// where q = p - center. Listed in spec.md §4.1's primitive semantics
// table but absent from original_source; implemented directly from the
// spec's formula (SPEC_FULL.md §6 supplement).
type CylinderNode struct {
	base
	DefaultRadius float64
	DefaultHeight float64
	DefaultCenter [3]float64
}

// NewCylinderNode constructs a Cylinder node with the given id. Inputs,
// in order: radius, height, center.
func NewCylinderNode(id int) *CylinderNode {
	return &CylinderNode{base: base{id: id, numInputs: 3}, DefaultRadius: 0.5, DefaultHeight: 1}
}

// Lower implements Node.
func (n *CylinderNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	radius := resolveScalar(a, r, n.id, 0, n.DefaultRadius)
	height := resolveScalar(a, r, n.id, 1, n.DefaultHeight)
	center := resolveVec3(a, r, n.id, 2, n.DefaultCenter)
	q := a.Sub3(paramPoint(), center)
	qxz := ir.Vec2{q[0], q[2]}
	radial := a.Sub(a.Length2(qxz), radius)
	vertical := a.Sub(a.AbsOf(q[1]), height)
	return []ir.Register{a.MaxOf(radial, vertical)}
}
