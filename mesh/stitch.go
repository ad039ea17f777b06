package mesh

// perpendicularAxes is the axis-to-perpendicular table from spec.md
// §4.7: for a crossed edge running along axis a, (u,v) are the two
// axes whose combinations locate the four voxels sharing that edge.
var perpendicularAxes = [3][2]int{
	0: {2, 1},
	1: {0, 2},
	2: {1, 0},
}

// Quad is one output face: four vertex indices, CCW as viewed from the
// positive-SDF side (spec.md §3, §6).
type Quad [4]int32

// stitchQuads implements spec.md §4.7: walk every recorded edge
// crossing and emit the quad formed by the four voxels sharing it,
// winding chosen from the sign of the edge's endpoints. Sequential —
// it appends to a single slice whose membership (not order) must be
// the union over all crossings (spec.md §5 phase 4).
func stitchQuads(grid *SparseGrid, crossings *edgeCrossings, voxels map[ivec3]voxelVertex) ([]Vec3, []Quad) {
	vertexIndex := make(map[ivec3]int32, len(voxels))
	vertices := make([]Vec3, 0, len(voxels))
	for idx, vv := range voxels {
		if !vv.present {
			continue
		}
		vertexIndex[idx] = int32(len(vertices))
		vertices = append(vertices, vv.position)
	}

	var quads []Quad
	for key := range crossings.quadrics {
		a0 := key.idx
		axis := key.axis
		u, v := perpendicularAxes[axis][0], perpendicularAxes[axis][1]

		eu := ivec3{}
		eu[u] = 1
		ev := ivec3{}
		ev[v] = 1

		corners := [4]ivec3{
			a0,
			subIvec(a0, eu),
			subIvec(subIvec(a0, eu), ev),
			subIvec(a0, ev),
		}

		indices := [4]int32{}
		complete := true
		for i, c := range corners {
			idx, ok := vertexIndex[c]
			if !ok {
				complete = false
				break
			}
			indices[i] = idx
		}
		if !complete {
			// A neighbouring voxel fell outside the sampled grid (domain
			// boundary) or never accumulated a quadric; skip the quad
			// rather than asserting, since this is reachable at edges of
			// the sampled volume, not only via a programming error.
			continue
		}

		v0, _ := grid.get(a0)
		v1, _ := grid.get(a0.add(axisOffsets[axis]))
		if reverseWinding(v0, v1) {
			indices[0], indices[1], indices[2], indices[3] = indices[0], indices[3], indices[2], indices[1]
		}
		quads = append(quads, Quad{indices[0], indices[1], indices[2], indices[3]})
	}
	return vertices, quads
}

func subIvec(a, b ivec3) ivec3 { return ivec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// reverseWinding implements spec.md §4.7's orientation rule: reverse
// iff v0==0 && v1>0, or v1==0 && v0<0, or v1>0 && v0<0 — equivalently,
// the face normal should point from the negative-SDF side to the
// positive-SDF side.
func reverseWinding(v0, v1 float64) bool {
	switch {
	case v0 == 0 && v1 > 0:
		return true
	case v1 == 0 && v0 < 0:
		return true
	case v1 > 0 && v0 < 0:
		return true
	default:
		return false
	}
}
