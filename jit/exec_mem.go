//go:build amd64

package jit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// execPage is a page of executable memory holding one compiled
// function's machine code. Grounded on the mmap+mprotect pattern common
// to pure-Go JITs (other_examples/05a3570a_tinyrange-rtg and
// 64f2f987_launix-de-memcp use the same raw-bytes-in-memory approach,
// though neither shows the mmap step explicitly — that half is drawn
// from golang.org/x/sys/unix's documented PROT_EXEC usage).
type execPage struct {
	mem []byte
}

// allocExec copies code into a fresh, page-aligned, executable mapping.
func allocExec(code []byte) (*execPage, error) {
	size := len(code)
	if size == 0 {
		return nil, fmt.Errorf("jit: empty machine code")
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("jit: mmap: %w", err)
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("jit: mprotect: %w", err)
	}
	return &execPage{mem: mem}, nil
}

func (p *execPage) free() {
	if p.mem != nil {
		_ = unix.Munmap(p.mem)
		p.mem = nil
	}
}
