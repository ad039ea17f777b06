package mesh

// QuadMesh is the polygoniser's output: a dense vertex array and a
// dense array of four-vertex-index faces, wound CCW as viewed from the
// positive-SDF side (spec.md §3, §6).
type QuadMesh struct {
	Vertices []Vec3
	Quads    []Quad
}
