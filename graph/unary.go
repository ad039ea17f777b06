package graph

import "github.com/example/implicitmodeler/ir"

// UnaryMathNode wraps a single-operand ir.Op (Sin, Cos, Abs or Sqrt) as a
// graph node with one scalar input, per spec.md §4.1's unary node entry.
// original_source/node.cpp only ever emits these ops inline as part of
// larger formulas (e.g. Length); exposing them as standalone nodes is a
// SPEC_FULL.md supplement, most useful for TimeNode-driven Sin/Cos
// displacement graphs.
type UnaryMathNode struct {
	base
	Op ir.Op
}

// NewUnaryMathNode constructs a unary math node with the given id and
// operator. op must be one of ir.Sin, ir.Cos, ir.Abs, ir.Sqrt.
func NewUnaryMathNode(id int, op ir.Op) *UnaryMathNode {
	return &UnaryMathNode{base: base{id: id, numInputs: 1}, Op: op}
}

// Lower implements Node.
func (n *UnaryMathNode) Lower(a *ir.Allocator, r Resolver) []ir.Register {
	v := resolveScalar(a, r, n.id, 0, 0)
	switch n.Op {
	case ir.Sin:
		return []ir.Register{a.SinOf(v)}
	case ir.Cos:
		return []ir.Register{a.CosOf(v)}
	case ir.Abs:
		return []ir.Register{a.AbsOf(v)}
	case ir.Sqrt:
		return []ir.Register{a.SqrtOf(v)}
	default:
		return []ir.Register{a.SqrtOf(v)}
	}
}
