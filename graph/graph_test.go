package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/implicitmodeler/ir"
)

// evalProgram is a tiny reference interpreter used only by tests, to
// check a lowered Program against the closed-form SDF it should match.
func evalProgram(t *testing.T, prog ir.Program, x, y, z float64) float64 {
	t.Helper()
	regs := make(map[ir.Register]float64, len(prog.Instructions)+len(prog.Constants)+3)
	regs[ir.RegX], regs[ir.RegY], regs[ir.RegZ] = x, y, z
	for reg, v := range prog.Constants {
		regs[reg] = v
	}
	for _, instr := range prog.Instructions {
		a := regs[instr.In1]
		var out float64
		switch instr.Op {
		case ir.Add:
			out = a + regs[instr.In2]
		case ir.Sub:
			out = a - regs[instr.In2]
		case ir.Mul:
			out = a * regs[instr.In2]
		case ir.Sqrt:
			out = math.Sqrt(a)
		case ir.Min:
			out = math.Min(a, regs[instr.In2])
		case ir.Max:
			out = math.Max(a, regs[instr.In2])
		case ir.Abs:
			out = math.Abs(a)
		case ir.Sin:
			out = math.Sin(a)
		case ir.Cos:
			out = math.Cos(a)
		default:
			require.Fail(t, "unknown op", instr.Op.String())
		}
		regs[instr.Out] = out
	}
	return regs[prog.Result()]
}

func buildSphereGraph(t *testing.T) (*Graph, *OutputNode) {
	t.Helper()
	g := NewGraph()
	sphere := NewSphereNode(1)
	out := NewOutputNode(2)
	require.NoError(t, g.AddNode(sphere))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(out.ID(), 0, sphere.ID()))
	return g, out
}

func TestGenerateInstructionsSphere(t *testing.T) {
	// spec.md §8 scenario E: unit sphere at the origin, register layout
	// x=0,y=1,z=2,cx=3,cy=4,cz=5,r=6.
	g, out := buildSphereGraph(t)
	require.NoError(t, g.Validate())

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)
	require.NoError(t, prog.Validate())

	assert.InDelta(t, 0.0, evalProgram(t, prog, 1, 0, 0), 1e-9)
	assert.InDelta(t, -1.0, evalProgram(t, prog, 0, 0, 0), 1e-9)
	assert.InDelta(t, 1.0, evalProgram(t, prog, 2, 0, 0), 1e-9)
}

func TestGenerateInstructionsMissingRoot(t *testing.T) {
	g := NewGraph()
	out := NewOutputNode(1)
	require.NoError(t, g.AddNode(out))

	_, err := GenerateInstructions(out, g)
	assert.Error(t, err)
}

func TestGraphConnectUnknownNodes(t *testing.T) {
	g := NewGraph()
	out := NewOutputNode(1)
	require.NoError(t, g.AddNode(out))

	assert.Error(t, g.Connect(out.ID(), 0, 999))
	assert.Error(t, g.Connect(999, 0, out.ID()))
}

func TestGraphConnectBadInputIndex(t *testing.T) {
	g := NewGraph()
	sphere := NewSphereNode(1)
	out := NewOutputNode(2)
	require.NoError(t, g.AddNode(sphere))
	require.NoError(t, g.AddNode(out))

	assert.Error(t, g.Connect(out.ID(), 5, sphere.ID()))
}

func TestGraphValidateDetectsCycle(t *testing.T) {
	g := NewGraph()
	u1 := NewUnionNode(1)
	u2 := NewUnionNode(2)
	require.NoError(t, g.AddNode(u1))
	require.NoError(t, g.AddNode(u2))
	require.NoError(t, g.Connect(u1.ID(), 0, u2.ID()))
	require.NoError(t, g.Connect(u2.ID(), 0, u1.ID()))

	assert.Error(t, g.Validate())
}

func TestUnionNode(t *testing.T) {
	g := NewGraph()
	s1 := NewSphereNode(1)
	s2 := NewSphereNode(2)
	s2.DefaultCenter = [3]float64{3, 0, 0}
	u := NewUnionNode(3)
	out := NewOutputNode(4)
	require.NoError(t, g.AddNode(s1))
	require.NoError(t, g.AddNode(s2))
	require.NoError(t, g.AddNode(u))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(u.ID(), 0, s1.ID()))
	require.NoError(t, g.Connect(u.ID(), 1, s2.ID()))
	require.NoError(t, g.Connect(out.ID(), 0, u.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	// At the origin, s1 dominates (distance -1) over s2 (distance 2).
	assert.InDelta(t, -1.0, evalProgram(t, prog, 0, 0, 0), 1e-9)
}

func TestSmoothUnionMatchesUnionFarFromSeam(t *testing.T) {
	g := NewGraph()
	s1 := NewSphereNode(1)
	s2 := NewSphereNode(2)
	s2.DefaultCenter = [3]float64{10, 0, 0}
	su := NewSmoothUnionNode(3)
	su.DefaultRounding = 0.05
	out := NewOutputNode(4)
	require.NoError(t, g.AddNode(s1))
	require.NoError(t, g.AddNode(s2))
	require.NoError(t, g.AddNode(su))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(su.ID(), 0, s1.ID()))
	require.NoError(t, g.Connect(su.ID(), 1, s2.ID()))
	require.NoError(t, g.Connect(out.ID(), 0, su.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	// Far from both surfaces and far from the seam, smooth union collapses
	// to the ordinary min.
	assert.InDelta(t, -1.0, evalProgram(t, prog, 0, 0, 0), 1e-6)
}

func TestIntersectionNode(t *testing.T) {
	g := NewGraph()
	s1 := NewSphereNode(1)
	s1.DefaultRadius = 1
	s2 := NewSphereNode(2)
	s2.DefaultCenter = [3]float64{1.5, 0, 0}
	s2.DefaultRadius = 1
	in := NewIntersectionNode(3)
	out := NewOutputNode(4)
	require.NoError(t, g.AddNode(s1))
	require.NoError(t, g.AddNode(s2))
	require.NoError(t, g.AddNode(in))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(in.ID(), 0, s1.ID()))
	require.NoError(t, g.Connect(in.ID(), 1, s2.ID()))
	require.NoError(t, g.Connect(out.ID(), 0, in.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	// At the origin, s1 is inside (-1) but s2 is outside (0.5); the
	// intersection takes the max, so the point is outside the lens.
	assert.InDelta(t, 0.5, evalProgram(t, prog, 0, 0, 0), 1e-9)
	// At the midpoint both spheres are roughly equally inside; the
	// intersection is still negative (inside the lens).
	assert.Less(t, evalProgram(t, prog, 0.75, 0, 0), 0.0)
}

func TestSubtractionNode(t *testing.T) {
	g := NewGraph()
	s1 := NewSphereNode(1)
	s1.DefaultRadius = 1
	s2 := NewSphereNode(2)
	s2.DefaultRadius = 0.5
	sub := NewSubtractionNode(3)
	out := NewOutputNode(4)
	require.NoError(t, g.AddNode(s1))
	require.NoError(t, g.AddNode(s2))
	require.NoError(t, g.AddNode(sub))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(sub.ID(), 0, s1.ID()))
	require.NoError(t, g.Connect(sub.ID(), 1, s2.ID()))
	require.NoError(t, g.Connect(out.ID(), 0, sub.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	// The origin is inside both spheres; subtracting the smaller carves
	// it out, so the origin ends up outside the result (on s2's surface
	// from the inside, distance +0.5).
	assert.InDelta(t, 0.5, evalProgram(t, prog, 0, 0, 0), 1e-9)
	// Just inside s1 but outside s2, the result is still governed by s1.
	assert.InDelta(t, -0.2, evalProgram(t, prog, 0.8, 0, 0), 1e-9)
}

func TestBoxNodeOffCenter(t *testing.T) {
	g := NewGraph()
	box := NewBoxNode(1)
	box.DefaultSize = [3]float64{1, 1, 1}
	box.DefaultCenter = [3]float64{5, 0, 0}
	out := NewOutputNode(2)
	require.NoError(t, g.AddNode(box))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(out.ID(), 0, box.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	assert.Less(t, evalProgram(t, prog, 5, 0, 0), 0.0)
	assert.Greater(t, evalProgram(t, prog, 0, 0, 0), 0.0)
}

func TestCylinderNode(t *testing.T) {
	g := NewGraph()
	cyl := NewCylinderNode(1)
	cyl.DefaultRadius = 1
	cyl.DefaultHeight = 2
	out := NewOutputNode(2)
	require.NoError(t, g.AddNode(cyl))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(out.ID(), 0, cyl.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	assert.Less(t, evalProgram(t, prog, 0, 0, 0), 0.0)
	assert.Greater(t, evalProgram(t, prog, 5, 0, 0), 0.0)
}

func TestScalarAndPointLeaves(t *testing.T) {
	g := NewGraph()
	sphere := NewSphereNode(1)
	center := NewPointNode(2, [3]float64{1, 2, 3})
	radius := NewScalarNode(3, 2)
	out := NewOutputNode(4)
	require.NoError(t, g.AddNode(sphere))
	require.NoError(t, g.AddNode(center))
	require.NoError(t, g.AddNode(radius))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(sphere.ID(), 0, center.ID()))
	require.NoError(t, g.Connect(sphere.ID(), 1, radius.ID()))
	require.NoError(t, g.Connect(out.ID(), 0, sphere.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, evalProgram(t, prog, 3, 2, 3), 1e-9)
}

func TestTimeNodeUsesHostSuppliedSample(t *testing.T) {
	tn := NewTimeNode(1)
	tn.Sample = 42
	g := NewGraph()
	out := NewOutputNode(2)
	require.NoError(t, g.AddNode(tn))
	require.NoError(t, g.AddNode(out))
	require.NoError(t, g.Connect(out.ID(), 0, tn.ID()))

	prog, err := GenerateInstructions(out, g)
	require.NoError(t, err)
	assert.InDelta(t, 42.0, evalProgram(t, prog, 0, 0, 0), 1e-9)
}

func TestUnaryMathNodes(t *testing.T) {
	cases := []struct {
		op   ir.Op
		in   float64
		want float64
	}{
		{ir.Abs, -3, 3},
		{ir.Sqrt, 4, 2},
		{ir.Sin, 0, 0},
		{ir.Cos, 0, 1},
	}
	for _, c := range cases {
		g := NewGraph()
		scalar := NewScalarNode(1, c.in)
		un := NewUnaryMathNode(2, c.op)
		out := NewOutputNode(3)
		require.NoError(t, g.AddNode(scalar))
		require.NoError(t, g.AddNode(un))
		require.NoError(t, g.AddNode(out))
		require.NoError(t, g.Connect(un.ID(), 0, scalar.ID()))
		require.NoError(t, g.Connect(out.ID(), 0, un.ID()))

		prog, err := GenerateInstructions(out, g)
		require.NoError(t, err)
		assert.InDelta(t, c.want, evalProgram(t, prog, 0, 0, 0), 1e-9, c.op.String())
	}
}
