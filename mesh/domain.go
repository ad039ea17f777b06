// Package mesh implements the adaptive dual-contouring polygoniser:
// octree subdivision over a sparse hash grid, edge-crossing detection
// with probabilistic plane quadrics, per-voxel vertex placement, and
// quad stitching, parallelised the way
// Megidd-sdfx/render/march3.go parallelises marching cubes — a
// bounded set of worker goroutines, each handed a contiguous batch,
// merged once the phase's WaitGroup clears.
package mesh

import "math"

// Vec3 is a plain 3D point or direction in world space.
type Vec3 [3]float64

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }

// ivec3 is an integer grid index, hashed natively by Go's built-in map
// implementation — its runtime hash is already well mixed (it is not a
// golden-ratio combine), so SparseGrid (grid.go) uses ivec3 as a map
// key directly rather than hand-rolling a hash table.
type ivec3 [3]int

func (v ivec3) add(o ivec3) ivec3 { return ivec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Domain describes the cubic sampling volume and its index-space
// resolution: grid indices range over [0..N]^3 (spec.md §4.4).
type Domain struct {
	Lower, Upper Vec3
	N            int
}

// point maps a grid index to its world position: p(i) = lower +
// i/(N-1) * (upper-lower).
func (d Domain) point(idx ivec3) Vec3 {
	var p Vec3
	denom := float64(d.N - 1)
	for a := 0; a < 3; a++ {
		t := float64(idx[a]) / denom
		p[a] = d.Lower[a] + t*(d.Upper[a]-d.Lower[a])
	}
	return p
}

// cellWorldHalfExtent returns half the world-space diagonal of a cell
// spanning [min,max) in index space — the `d` term in the pruning test
// (spec.md §4.4 step 3).
func (d Domain) cellWorldHalfExtent(min, max ivec3) float64 {
	pmin := d.point(min)
	pmax := d.point(max)
	return pmax.Sub(pmin).Length() / 2
}
