package mesh

import (
	"context"
	"runtime"
	"sync"

	"github.com/example/implicitmodeler/quadric"
)

// canonicalEdgeOffsets[a] lists the four start-corner offsets of the
// voxel's edges running along axis a (spec.md §4.6: "the twelve
// canonical edges of the voxel whose minimum corner is idx").
var canonicalEdgeOffsets = [3][4]ivec3{
	0: {{0, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 1, 1}},
	1: {{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	2: {{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
}

// voxelVertex is the emitted mesh vertex for one voxel, keyed by the
// grid index of its minimum corner (spec.md §3 VoxelVertex).
type voxelVertex struct {
	position Vec3
	present  bool
}

// placeVertices implements spec.md §4.6: for each sample, accumulate
// the quadrics of its voxel's edges with a recorded crossing, and
// place a vertex at the sum's minimiser. Parallelised over samples
// (spec.md §5 phase 3), each goroutine writing only to its own slice
// indices.
func placeVertices(ctx context.Context, d Domain, grid *SparseGrid, crossings *edgeCrossings) (map[ivec3]voxelVertex, error) {
	indices := make([]ivec3, 0, grid.len())
	for idx := range grid.samples {
		indices = append(indices, idx)
	}

	out := make([]voxelVertex, len(indices))
	workers := runtime.NumCPU()
	var wg sync.WaitGroup
	for _, r := range chunk(len(indices), workers) {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := r.lo; i < r.hi; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				out[i] = placeVoxelVertex(d, indices[i], crossings)
			}
		}()
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result := make(map[ivec3]voxelVertex, len(indices))
	for i, idx := range indices {
		result[idx] = out[i]
	}
	return result, nil
}

func placeVoxelVertex(d Domain, idx ivec3, crossings *edgeCrossings) voxelVertex {
	var sum quadric.Quadric
	have := false

	for a := 0; a < 3; a++ {
		for _, off := range canonicalEdgeOffsets[a] {
			start := idx.add(off)
			q, ok := crossings.quadrics[edgeKey{idx: start, axis: a}]
			if !ok {
				continue
			}
			if !have {
				sum = q
				have = true
			} else {
				sum = sum.Add(q)
			}
		}
	}

	if !have {
		return voxelVertex{}
	}
	// Bias the minimiser toward the voxel's own grid-index position
	// when the accumulated quadric is degenerate (quadric.go's
	// pseudoMinimise fallback).
	center := d.point(idx)
	pos := sum.Minimiser([3]float64{center[0], center[1], center[2]})
	return voxelVertex{position: Vec3{pos[0], pos[1], pos[2]}, present: true}
}
