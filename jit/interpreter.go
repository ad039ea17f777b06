package jit

import (
	"math"

	"github.com/example/implicitmodeler/ir"
)

// interpreter evaluates an ir.Program by walking its instruction stream
// against a flat register file, the portable fallback engine every
// architecture and every instruction supports. It is the baseline the
// native backend must agree with.
type interpreter struct {
	prog   ir.Program
	nregs  int
	consts map[ir.Register]float64
}

func newInterpreter(prog ir.Program) *interpreter {
	nregs := int(ir.NumParamRegisters)
	for _, instr := range prog.Instructions {
		if int(instr.Out)+1 > nregs {
			nregs = int(instr.Out) + 1
		}
	}
	for reg := range prog.Constants {
		if int(reg)+1 > nregs {
			nregs = int(reg) + 1
		}
	}
	return &interpreter{prog: prog, nregs: nregs, consts: prog.Constants}
}

func (e *interpreter) eval(x, y, z float64) float64 {
	regs := make([]float64, e.nregs)
	regs[ir.RegX], regs[ir.RegY], regs[ir.RegZ] = x, y, z
	for reg, v := range e.consts {
		regs[reg] = v
	}
	for _, instr := range e.prog.Instructions {
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
		}
		regs[instr.Out] = out
	}
	return regs[e.prog.Result()]
}
