package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/example/implicitmodeler/mesh"
)

// WriteDXFSlice writes a planar cross-section of m at world z=height as
// a set of DXF LINE entities, mimicking a CAM slicer's preview export.
// Grounded on yofu/dxf's drawing.NewDrawing/Line/SaveAs idiom.
func WriteDXFSlice(path string, m mesh.QuadMesh, height float64) error {
	d := dxf.NewDrawing()
	for _, q := range m.Quads {
		// A quad crossing the plane is cut along the segment joining the
		// points where its edges meet the plane.
		var cut []planarPoint
		for i := 0; i < 4; i++ {
			a := m.Vertices[q[i]]
			b := m.Vertices[q[(i+1)%4]]
			seg, ok := intersectPlane(a, b, height)
			if !ok {
				continue
			}
			if seg[0] != seg[1] {
				// The edge lies in the plane.
				d.Line(seg[0].x, seg[0].y, 0, seg[1].x, seg[1].y, 0)
				continue
			}
			if len(cut) == 0 || cut[0] != seg[0] {
				cut = append(cut, seg[0])
			}
		}
		if len(cut) >= 2 {
			d.Line(cut[0].x, cut[0].y, 0, cut[1].x, cut[1].y, 0)
		}
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: writing dxf slice: %w", err)
	}
	return nil
}

type planarPoint struct{ x, y float64 }

// intersectPlane clips the edge a-b against the plane z=height, returning
// the portion of the edge that lies on the plane. A single edge
// endpoint lying exactly on the plane is reported as a degenerate
// (zero-length) segment; edges that don't cross the plane report ok=false.
func intersectPlane(a, b mesh.Vec3, height float64) ([2]planarPoint, bool) {
	da, db := a[2]-height, b[2]-height
	if (da > 0 && db > 0) || (da < 0 && db < 0) {
		return [2]planarPoint{}, false
	}
	if da == db {
		return [2]planarPoint{{a[0], a[1]}, {b[0], b[1]}}, true
	}
	t := da / (da - db)
	x := a[0] + t*(b[0]-a[0])
	y := a[1] + t*(b[1]-a[1])
	return [2]planarPoint{{x, y}, {x, y}}, true
}
