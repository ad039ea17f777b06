package mesh

import "fmt"

// GridCell is an inclusive-lower/exclusive-upper integer AABB in index
// space (spec.md §3). A cell with a non-positive extent on any axis is
// a programming error (spec.md §4.4, §7).
type GridCell struct {
	Min, Max ivec3
}

func (c GridCell) validate() error {
	for a := 0; a < 3; a++ {
		if c.Max[a]-c.Min[a] < 1 {
			return fmt.Errorf("mesh: invalid cell %+v: non-positive extent on axis %d", c, a)
		}
	}
	return nil
}

func (c GridCell) extent() ivec3 {
	return ivec3{c.Max[0] - c.Min[0], c.Max[1] - c.Min[1], c.Max[2] - c.Min[2]}
}

func (c GridCell) voxelCount() int {
	e := c.extent()
	return e[0] * e[1] * e[2]
}

func (c GridCell) center() ivec3 {
	return ivec3{
		(c.Min[0] + c.Max[0]) / 2,
		(c.Min[1] + c.Max[1]) / 2,
		(c.Min[2] + c.Max[2]) / 2,
	}
}

// split partitions c into up to eight children by halving each axis,
// the last child on each axis absorbing any odd remainder (spec.md
// §4.4 step 4). Axes already at extent 1 are not split further, so a
// cell thin on one axis yields fewer than eight children.
func (c GridCell) split() []GridCell {
	var mids [3][2]int // [axis][0]=low-half max / high-half min
	splitAxis := [3]bool{}
	for a := 0; a < 3; a++ {
		extent := c.Max[a] - c.Min[a]
		if extent <= 1 {
			mids[a] = [2]int{c.Min[a], c.Max[a]}
			continue
		}
		splitAxis[a] = true
		mids[a] = [2]int{c.Min[a] + extent/2, c.Min[a] + extent/2}
	}

	var children []GridCell
	for bx := 0; bx < 2; bx++ {
		if bx == 1 && !splitAxis[0] {
			continue
		}
		for by := 0; by < 2; by++ {
			if by == 1 && !splitAxis[1] {
				continue
			}
			for bz := 0; bz < 2; bz++ {
				if bz == 1 && !splitAxis[2] {
					continue
				}
				child := GridCell{
					Min: ivec3{
						pick(bx, c.Min[0], mids[0][0]),
						pick(by, c.Min[1], mids[1][0]),
						pick(bz, c.Min[2], mids[2][0]),
					},
					Max: ivec3{
						pick(bx, mids[0][1], c.Max[0]),
						pick(by, mids[1][1], c.Max[1]),
						pick(bz, mids[2][1], c.Max[2]),
					},
				}
				children = append(children, child)
			}
		}
	}
	return children
}

func pick(branch int, low, high int) int {
	if branch == 0 {
		return low
	}
	return high
}

// SparseGrid maps a grid index to its sampled SDF value. Built in
// parallel shards (one thread-local grid per octree leaf task) and
// merged once (spec.md §4.4).
type SparseGrid struct {
	samples map[ivec3]float64
}

func newSparseGrid() *SparseGrid {
	return &SparseGrid{samples: make(map[ivec3]float64)}
}

func (g *SparseGrid) set(idx ivec3, v float64) { g.samples[idx] = v }

func (g *SparseGrid) get(idx ivec3) (float64, bool) {
	v, ok := g.samples[idx]
	return v, ok
}

func (g *SparseGrid) len() int { return len(g.samples) }

// merge absorbs other's samples into g. Duplicate keys across shards
// are a merge-time invariant violation, not a recoverable error
// (spec.md §4.4): two leaf tasks must never claim the same grid index,
// since the octree partitions index space disjointly.
func (g *SparseGrid) merge(other *SparseGrid) error {
	for idx, v := range other.samples {
		if _, exists := g.samples[idx]; exists {
			return fmt.Errorf("mesh: duplicate grid index %v across subdivision shards", idx)
		}
		g.samples[idx] = v
	}
	return nil
}
