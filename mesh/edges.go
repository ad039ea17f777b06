package mesh

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/example/implicitmodeler/quadric"
)

// axisOffsets holds the positive-direction unit step for each axis in
// index space, e_0, e_1, e_2 (spec.md §3, §4.5).
var axisOffsets = [3]ivec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// crossingQuadricSigma is σp = σn = 0.05, the fixed positional/normal
// variance spec.md §4.5 step 4 specifies for every edge quadric.
const crossingQuadricSigma = 0.05

// edgeKey identifies one axial edge: the grid index of its
// negative-index endpoint and the axis it runs along. EdgeQuadric[3i+a]
// in spec.md §3 is this map's dense-array equivalent; a map is used
// here because the sample set itself is sparse.
type edgeKey struct {
	idx  ivec3
	axis int
}

// edgeCrossings maps every edge that has a zero-crossing to its fitted
// quadric (spec.md §4.5). Absence from the map is the `has_crossing =
// false` case.
type edgeCrossings struct {
	quadrics map[edgeKey]quadric.Quadric
}

// findEdgeCrossings implements spec.md §4.5: for every sample and every
// positive axis direction, test the neighbour for a sign change,
// locate the crossing by iterative linear bracketing (fitEdgeQuadric),
// and fit a plane quadric from the
// crossing point and its estimated gradient. Parallelised over samples
// (spec.md §5 phase 2): the grid is read-only at this point, and each
// goroutine owns disjoint edgeKeys, so results are merged without
// locking per-edge — only the handful of mutex-guarded appends into
// the shared map need synchronisation.
func findEdgeCrossings(ctx context.Context, f func(Vec3) float64, d Domain, grid *SparseGrid) (*edgeCrossings, error) {
	result := &edgeCrossings{quadrics: make(map[edgeKey]quadric.Quadric)}

	type job struct {
		idx ivec3
		v1  float64
	}
	jobs := make([]job, 0, grid.len())
	for idx, v := range grid.samples {
		jobs = append(jobs, job{idx: idx, v1: v})
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	chunks := chunk(len(jobs), workers)

	for _, r := range chunks {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make(map[edgeKey]quadric.Quadric, r.size())
			for i := r.lo; i < r.hi; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				j := jobs[i]
				for a := 0; a < 3; a++ {
					neighbor := j.idx.add(axisOffsets[a])
					v2, ok := grid.get(neighbor)
					if !ok {
						continue
					}
					if j.v1*v2 > 0 {
						continue
					}
					q := fitEdgeQuadric(f, d, j.idx, neighbor, j.v1, v2)
					local[edgeKey{idx: j.idx, axis: a}] = q
				}
			}
			mu.Lock()
			for k, q := range local {
				result.quadrics[k] = q
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return result, nil
}

// fitEdgeQuadric locates the zero-crossing between (idxA,vA) and
// (idxB,vB) by iterative linear bracketing and fits a probabilistic
// plane quadric there. The v1==v2==0 tie-break (spec.md §9's open
// question) is resolved by orienting toward the v1/idxA side, matching
// the winding rule in stitch.go.
func fitEdgeQuadric(f func(Vec3) float64, d Domain, idxA, idxB ivec3, vA, vB float64) quadric.Quadric {
	pA, pB := d.point(idxA), d.point(idxB)
	if vA > vB {
		pA, pB = pB, pA
		vA, vB = vB, vA
	}

	crossing := pB
	const maxIterations = 5
	for iter := 0; iter < maxIterations; iter++ {
		denom := vA - vB
		var t float64
		if denom == 0 {
			t = 0.5
		} else {
			t = vA / denom
		}
		p := pA.Add(pB.Sub(pA).Scale(t))
		crossing = p
		fp := f(p)
		if math.Abs(fp) < 1e-5 {
			break
		}
		if fp < 0 {
			pA, vA = p, fp
		} else {
			pB, vB = p, fp
		}
	}

	n := normalize(gradient(f, crossing))
	return quadric.NewPlaneQuadric(
		[3]float64{crossing[0], crossing[1], crossing[2]},
		[3]float64{n[0], n[1], n[2]},
		crossingQuadricSigma, crossingQuadricSigma,
	)
}

type rng struct{ lo, hi int }

func (r rng) size() int { return r.hi - r.lo }

// chunk splits [0,n) into up to workers contiguous ranges for a
// parallel for-each over a flat job slice.
func chunk(n, workers int) []rng {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return nil
	}
	size := (n + workers - 1) / workers
	var out []rng
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, rng{lo: lo, hi: hi})
	}
	return out
}
