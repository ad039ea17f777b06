// Package meshindex builds a spatial index over a mesh.QuadMesh's quads
// so a host application can answer nearest-quad and intersect queries
// without a linear scan. It is host-side tooling, not part of the core
// pipeline spec.md describes — a SPEC_FULL.md domain-stack addition
// wiring github.com/dhconnelly/rtreego (present in the teacher's
// go.mod but not exercised by its own source) into the mesh the core
// produces.
package meshindex

import (
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/example/implicitmodeler/mesh"
)

// quadLeaf adapts one quad to rtreego.Spatial: its bounding box is the
// axis-aligned box of its four vertices.
type quadLeaf struct {
	quadIndex int
	bounds    rtreego.Rect
}

func (q *quadLeaf) Bounds() rtreego.Rect { return q.bounds }

// Index answers nearest/intersect queries over a QuadMesh's faces.
type Index struct {
	tree  *rtreego.Rtree
	quads []mesh.Quad
	verts []mesh.Vec3
}

// Build indexes every quad of m. Degenerate meshes (zero quads) are
// valid; queries against an empty Index simply return nothing.
func Build(m mesh.QuadMesh) (*Index, error) {
	idx := &Index{
		tree:  rtreego.NewTree(3, 4, 16),
		quads: m.Quads,
		verts: m.Vertices,
	}
	for i, q := range m.Quads {
		rect, err := quadBounds(m, q)
		if err != nil {
			return nil, fmt.Errorf("meshindex: quad %d: %w", i, err)
		}
		idx.tree.Insert(&quadLeaf{quadIndex: i, bounds: rect})
	}
	return idx, nil
}

func quadBounds(m mesh.QuadMesh, q mesh.Quad) (rtreego.Rect, error) {
	min := m.Vertices[q[0]]
	max := m.Vertices[q[0]]
	for _, vi := range q[1:] {
		v := m.Vertices[vi]
		for a := 0; a < 3; a++ {
			if v[a] < min[a] {
				min[a] = v[a]
			}
			if v[a] > max[a] {
				max[a] = v[a]
			}
		}
	}
	const epsilon = 1e-9
	lengths := make([]float64, 3)
	for a := 0; a < 3; a++ {
		lengths[a] = max[a] - min[a] + epsilon
	}
	return rtreego.NewRect(rtreego.Point{min[0], min[1], min[2]}, lengths)
}

// Nearest returns the index (into the QuadMesh's Quads slice) of the
// quad whose bounding box is closest to p, or -1 if the index is empty.
func (idx *Index) Nearest(p mesh.Vec3) int {
	results := idx.tree.NearestNeighbor(rtreego.Point{p[0], p[1], p[2]})
	if results == nil {
		return -1
	}
	return results.(*quadLeaf).quadIndex
}

// Intersecting returns the indices of every quad whose bounding box
// intersects box, given as (min, max) corners.
func (idx *Index) Intersecting(min, max mesh.Vec3) ([]int, error) {
	const epsilon = 1e-9
	lengths := []float64{max[0] - min[0] + epsilon, max[1] - min[1] + epsilon, max[2] - min[2] + epsilon}
	rect, err := rtreego.NewRect(rtreego.Point{min[0], min[1], min[2]}, lengths)
	if err != nil {
		return nil, fmt.Errorf("meshindex: invalid query box: %w", err)
	}
	hits := idx.tree.SearchIntersect(rect)
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.(*quadLeaf).quadIndex
	}
	return out, nil
}
