package mesh

import (
	"context"
	"fmt"
)

// Mesh polygonises f's zero level set over the cubic domain [-3,3]^3 at
// resolution N, the single entry point spec.md §4.8 and §6 specify:
// `mesh(f, N) -> QuadMesh`. ctx carries cancellation: if it is done
// before meshing completes, Mesh returns ctx.Err() and no partial
// QuadMesh (spec.md §5 "Cancellation", §8 property 8).
func Mesh(ctx context.Context, f func(Vec3) float64, n int) (QuadMesh, error) {
	if err := boundsCheck(n); err != nil {
		return QuadMesh{}, err
	}

	d := Domain{Lower: Vec3{-3, -3, -3}, Upper: Vec3{3, 3, 3}, N: n}
	root := GridCell{Min: ivec3{0, 0, 0}, Max: ivec3{n, n, n}}

	grid, err := subdivide(ctx, f, d, root)
	if err != nil {
		return QuadMesh{}, fmt.Errorf("mesh: subdivision: %w", err)
	}
	if grid.len() == 0 {
		// spec.md §8 scenario D: an empty domain yields zero vertices,
		// zero quads, no crashes.
		return QuadMesh{}, nil
	}

	crossings, err := findEdgeCrossings(ctx, f, d, grid)
	if err != nil {
		return QuadMesh{}, fmt.Errorf("mesh: edge crossing detection: %w", err)
	}
	if len(crossings.quadrics) == 0 {
		return QuadMesh{}, nil
	}

	voxels, err := placeVertices(ctx, d, grid, crossings)
	if err != nil {
		return QuadMesh{}, fmt.Errorf("mesh: vertex placement: %w", err)
	}

	vertices, quads := stitchQuads(grid, crossings, voxels)
	return QuadMesh{Vertices: vertices, Quads: quads}, nil
}
