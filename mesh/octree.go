package mesh

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
)

// pruningConstant is the Lipschitz pruning bound (spec.md §4.4 step 3
// and §9's open question): the source uses 1.5 in its sequential
// variant and 2.0 in its parallel one; 2.0 is the one spec.md's design
// notes call "safer", so it is the only constant this implementation
// carries.
const pruningConstant = 2.0

// leafVoxelBudget is the voxel-count threshold below which a cell is
// sampled exhaustively instead of subdivided further (spec.md §4.4
// step 2).
const leafVoxelBudget = 16

// subdivide walks the octree from root, sampling f into a sparse grid.
// Each non-leaf cell's children run on new goroutines while fewer than
// runtime.NumCPU() of them are in flight, and inline on the parent's
// goroutine otherwise. A parent does not wait for its children;
// subdivide waits once, on a WaitGroup covering every cell of the tree.
// Each cell samples into its own local SparseGrid, which is merged into
// the shared grid under a mutex as soon as that cell finishes, not
// after the whole tree has been walked.
func subdivide(ctx context.Context, f func(Vec3) float64, d Domain, root GridCell) (*SparseGrid, error) {
	if err := root.validate(); err != nil {
		return nil, err
	}

	sem := make(chan struct{}, runtime.NumCPU())
	merged := newSparseGrid()
	var mergeMu sync.Mutex
	var firstErr error
	var errMu sync.Mutex
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	var wg sync.WaitGroup
	var walk func(cell GridCell)
	walk = func(cell GridCell) {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := cell.validate(); err != nil {
			setErr(err)
			return
		}

		local := newSparseGrid()
		leaf := cell.voxelCount() <= leafVoxelBudget
		if !leaf {
			extent := cell.extent()
			for a := 0; a < 3; a++ {
				if extent[a] == 1 {
					leaf = true
					break
				}
			}
		}

		if leaf {
			sampleLeaf(f, d, cell, local)
		} else {
			center := cell.center()
			v := f(d.point(center))
			halfExtent := d.cellWorldHalfExtent(cell.Min, cell.Max)
			if math.Abs(v) > pruningConstant*halfExtent {
				// No zero-crossing can lie inside: f is 1-Lipschitz.
				mergeMu.Lock()
				_ = merged.merge(local)
				mergeMu.Unlock()
				return
			}
			children := cell.split()
			wg.Add(len(children))
			for _, child := range children {
				child := child
				select {
				case sem <- struct{}{}:
					go func() {
						defer func() { <-sem }()
						walk(child)
					}()
				default:
					// Every slot is taken, possibly by ancestors of this
					// cell: walk the child here instead of blocking.
					walk(child)
				}
			}
		}

		mergeMu.Lock()
		if err := merged.merge(local); err != nil {
			setErr(err)
		}
		mergeMu.Unlock()
	}

	wg.Add(1)
	walk(root)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return merged, nil
}

// sampleLeaf evaluates f at every grid index in cell and records it.
func sampleLeaf(f func(Vec3) float64, d Domain, cell GridCell, into *SparseGrid) {
	for i := cell.Min[0]; i < cell.Max[0]; i++ {
		for j := cell.Min[1]; j < cell.Max[1]; j++ {
			for k := cell.Min[2]; k < cell.Max[2]; k++ {
				idx := ivec3{i, j, k}
				into.set(idx, f(d.point(idx)))
			}
		}
	}
}

// boundsCheck is a defensive guard against N < 2, which would make
// Domain.point divide by zero.
func boundsCheck(n int) error {
	if n < 2 {
		return fmt.Errorf("mesh: N must be at least 2, got %d", n)
	}
	return nil
}
