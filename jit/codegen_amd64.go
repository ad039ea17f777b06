//go:build amd64

package jit

import (
	"encoding/binary"
	"fmt"

	"github.com/example/implicitmodeler/ir"
)

// codegen assembles one ir.Program into amd64 machine code operating on
// a register file passed in RDI, one float64 slot per virtual register.
// Each instruction becomes: load operand(s) into XMM0/XMM1, apply the
// SSE2 op, store the result back — a direct, unoptimised translation,
// matching the "one instruction in, one instruction's worth of bytes
// out" style of other_examples/64f2f987_launix-de-memcp's jitCompileExpr.
//
// Abs is synthesised as sqrt(v*v) rather than a sign-mask AND, trading
// an extra multiply for not having to materialise a 128-bit constant
// mask in the code stream. Sin and Cos have no SSE2 instruction and are
// not implemented here; their presence makes nativeCompile decline so
// jit.Compile falls back to the interpreter.
type codegen struct {
	buf []byte
}

func (c *codegen) emit(b ...byte) { c.buf = append(c.buf, b...) }

func regOffset(r ir.Register) int32 { return int32(r) * 8 }

// loadXMM emits `movsd xmmN, [rdi+off]` for N in {0,1}.
func (c *codegen) loadXMM(n int, r ir.Register) {
	var modrm byte
	if n == 0 {
		modrm = 0x87 // mod=10 reg=000(xmm0) rm=111(rdi)
	} else {
		modrm = 0x8F // mod=10 reg=001(xmm1) rm=111(rdi)
	}
	c.emit(0xF2, 0x0F, 0x10, modrm)
	var disp [4]byte
	binary.LittleEndian.PutUint32(disp[:], uint32(regOffset(r)))
	c.emit(disp[:]...)
}

// storeXMM0 emits `movsd [rdi+off], xmm0`.
func (c *codegen) storeXMM0(r ir.Register) {
	c.emit(0xF2, 0x0F, 0x11, 0x87)
	var disp [4]byte
	binary.LittleEndian.PutUint32(disp[:], uint32(regOffset(r)))
	c.emit(disp[:]...)
}

func (c *codegen) addsdXMM0XMM1()  { c.emit(0xF2, 0x0F, 0x58, 0xC1) }
func (c *codegen) subsdXMM0XMM1()  { c.emit(0xF2, 0x0F, 0x5C, 0xC1) }
func (c *codegen) mulsdXMM0XMM1()  { c.emit(0xF2, 0x0F, 0x59, 0xC1) }
func (c *codegen) minsdXMM0XMM1()  { c.emit(0xF2, 0x0F, 0x5D, 0xC1) }
func (c *codegen) maxsdXMM0XMM1()  { c.emit(0xF2, 0x0F, 0x5F, 0xC1) }
func (c *codegen) sqrtsdXMM0XMM0() { c.emit(0xF2, 0x0F, 0x51, 0xC0) }
func (c *codegen) ret()            { c.emit(0xC3) }

// assemble builds the machine code for prog, or returns an error if prog
// uses an op this backend does not implement.
func assemble(prog ir.Program) ([]byte, error) {
	c := &codegen{}
	for _, instr := range prog.Instructions {
		switch instr.Op {
		case ir.Add, ir.Sub, ir.Mul, ir.Min, ir.Max:
			c.loadXMM(0, instr.In1)
			c.loadXMM(1, instr.In2)
			switch instr.Op {
			case ir.Add:
				c.addsdXMM0XMM1()
			case ir.Sub:
				c.subsdXMM0XMM1()
			case ir.Mul:
				c.mulsdXMM0XMM1()
			case ir.Min:
				c.minsdXMM0XMM1()
			case ir.Max:
				c.maxsdXMM0XMM1()
			}
			c.storeXMM0(instr.Out)
		case ir.Sqrt:
			c.loadXMM(0, instr.In1)
			c.sqrtsdXMM0XMM0()
			c.storeXMM0(instr.Out)
		case ir.Abs:
			c.loadXMM(0, instr.In1)
			c.loadXMM(1, instr.In1)
			c.mulsdXMM0XMM1()
			c.sqrtsdXMM0XMM0()
			c.storeXMM0(instr.Out)
		default:
			return nil, fmt.Errorf("jit: amd64 backend has no native lowering for %s", instr.Op)
		}
	}
	c.ret()
	return c.buf, nil
}
