package ir

// Allocator hands out fresh registers in increasing order and accumulates
// the Constants table a Program is seeded with. It is the Go analogue of
// the original source's `int& current_register` out-parameter: every
// lowering helper below takes one by pointer instead of by reference.
type Allocator struct {
	next      Register
	instrs    []Instruction
	constants Constants
}

// NewAllocator returns an Allocator whose first free register is next
// (the graph contract in spec.md §6 starts lowering at register 3, past
// the three reserved parameter registers).
func NewAllocator(next Register) *Allocator {
	return &Allocator{
		next:      next,
		constants: make(Constants),
	}
}

// emit appends `out = op(in1, in2)` to the stream, allocating a fresh
// Out register, and returns it. Callers normally go through the helpers
// below instead of calling emit directly.
func (a *Allocator) emit(in1, in2 Register, op Op) Register {
	out := a.next
	a.next++
	a.instrs = append(a.instrs, Instruction{In1: in1, In2: in2, Out: out, Op: op})
	return out
}

// Const allocates a fresh register bound to a constant value.
func (a *Allocator) Const(value float64) Register {
	reg := a.next
	a.next++
	a.constants[reg] = value
	return reg
}

// Program returns the accumulated instruction stream and constants
// table. The next free register is available separately from Next.
func (a *Allocator) Program() Program {
	return Program{Instructions: a.instrs, Constants: a.constants}
}

// Next returns the next register that will be handed out.
func (a *Allocator) Next() Register { return a.next }

//-----------------------------------------------------------------------------
// Scalar wrappers, one per Op.

// Add appends `out = v1 + v2`.
func (a *Allocator) Add(v1, v2 Register) Register { return a.emit(v1, v2, Add) }

// Sub appends `out = v1 - v2`.
func (a *Allocator) Sub(v1, v2 Register) Register { return a.emit(v1, v2, Sub) }

// Mul appends `out = v1 * v2`.
func (a *Allocator) Mul(v1, v2 Register) Register { return a.emit(v1, v2, Mul) }

// SqrtOf appends `out = sqrt(v1)`.
func (a *Allocator) SqrtOf(v1 Register) Register { return a.emit(v1, NoOperand, Sqrt) }

// MinOf appends `out = min(v1, v2)`.
func (a *Allocator) MinOf(v1, v2 Register) Register { return a.emit(v1, v2, Min) }

// MaxOf appends `out = max(v1, v2)`.
func (a *Allocator) MaxOf(v1, v2 Register) Register { return a.emit(v1, v2, Max) }

// AbsOf appends `out = |v1|`.
func (a *Allocator) AbsOf(v1 Register) Register { return a.emit(v1, NoOperand, Abs) }

// SinOf appends `out = sin(v1)`.
func (a *Allocator) SinOf(v1 Register) Register { return a.emit(v1, NoOperand, Sin) }

// CosOf appends `out = cos(v1)`.
func (a *Allocator) CosOf(v1 Register) Register { return a.emit(v1, NoOperand, Cos) }

//-----------------------------------------------------------------------------
// Vector helpers. Vec2/Vec3 are register triples/pairs, not a value type;
// they only exist to carry the per-component registers produced by a
// vector-valued lowering step.

// Vec2 is a pair of registers holding a 2D vector's components.
type Vec2 [2]Register

// Vec3 is a triple of registers holding a 3D vector's components.
type Vec3 [3]Register

// Sub3 appends component-wise subtraction `v1 - v2`.
func (a *Allocator) Sub3(v1, v2 Vec3) Vec3 {
	return Vec3{a.Sub(v1[0], v2[0]), a.Sub(v1[1], v2[1]), a.Sub(v1[2], v2[2])}
}

// Add3 appends component-wise addition `v1 + v2`.
func (a *Allocator) Add3(v1, v2 Vec3) Vec3 {
	return Vec3{a.Add(v1[0], v2[0]), a.Add(v1[1], v2[1]), a.Add(v1[2], v2[2])}
}

// Max3 appends component-wise max(v1, v2).
func (a *Allocator) Max3(v1, v2 Vec3) Vec3 {
	return Vec3{a.MaxOf(v1[0], v2[0]), a.MaxOf(v1[1], v2[1]), a.MaxOf(v1[2], v2[2])}
}

// Abs3 appends component-wise |v1|.
func (a *Allocator) Abs3(v1 Vec3) Vec3 {
	return Vec3{a.AbsOf(v1[0]), a.AbsOf(v1[1]), a.AbsOf(v1[2])}
}

// Sub2 appends component-wise subtraction `v1 - v2` for 2D vectors.
func (a *Allocator) Sub2(v1, v2 Vec2) Vec2 {
	return Vec2{a.Sub(v1[0], v2[0]), a.Sub(v1[1], v2[1])}
}

// Max2 appends component-wise max(v1, v2) for 2D vectors.
func (a *Allocator) Max2(v1, v2 Vec2) Vec2 {
	return Vec2{a.MaxOf(v1[0], v2[0]), a.MaxOf(v1[1], v2[1])}
}

// Length3 appends `sqrt(v.x^2 + v.y^2 + v.z^2)`.
func (a *Allocator) Length3(v Vec3) Register {
	x2 := a.Mul(v[0], v[0])
	y2 := a.Mul(v[1], v[1])
	z2 := a.Mul(v[2], v[2])
	sum := a.Add(a.Add(x2, y2), z2)
	return a.SqrtOf(sum)
}

// Length2 appends `sqrt(v.x^2 + v.y^2)`.
func (a *Allocator) Length2(v Vec2) Register {
	x2 := a.Mul(v[0], v[0])
	y2 := a.Mul(v[1], v[1])
	return a.SqrtOf(a.Add(x2, y2))
}

// MaxElement3 appends a fold of max over the three components of v.
func (a *Allocator) MaxElement3(v Vec3) Register {
	return a.MaxOf(a.MaxOf(v[0], v[1]), v[2])
}

// MaxElement2 appends a fold of max over the two components of v.
func (a *Allocator) MaxElement2(v Vec2) Register {
	return a.MaxOf(v[0], v[1])
}

// Zero allocates (once per call site) a constant register bound to 0.
// Callers that need the zero constant repeatedly should cache the
// returned register rather than calling Zero again, to avoid bloating
// the constants table; the JIT is expected to tolerate redundant
// constants regardless (spec.md §4.1).
func (a *Allocator) Zero() Register { return a.Const(0) }
