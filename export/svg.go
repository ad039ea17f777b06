package export

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/example/implicitmodeler/mesh"
)

// WriteSVGWireframe renders an orthographic wireframe of m — every
// quad's four edges, projected by dropping z — using ajstarks/svgo,
// the teacher's wiring-free svg dependency. Grounded on svgo's own
// canvas.Start/Line/End idiom (the library's README example).
func WriteSVGWireframe(w io.Writer, m mesh.QuadMesh, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	proj := orthographicProjector(m.Vertices, width, height)
	for _, q := range m.Quads {
		for i := 0; i < 4; i++ {
			a := proj(m.Vertices[q[i]])
			b := proj(m.Vertices[q[(i+1)%4]])
			canvas.Line(a.x, a.y, b.x, b.y, "stroke:black;stroke-width:1")
		}
	}
	canvas.End()
}

type screenPoint struct{ x, y int }

// orthographicProjector fits m's vertices into a width x height canvas
// by dropping z and scaling the x/y bounding box to the viewport,
// flipping y since SVG's origin is top-left.
func orthographicProjector(vertices []mesh.Vec3, width, height int) func(mesh.Vec3) screenPoint {
	if len(vertices) == 0 {
		return func(mesh.Vec3) screenPoint { return screenPoint{} }
	}
	minX, maxX := vertices[0][0], vertices[0][0]
	minY, maxY := vertices[0][1], vertices[0][1]
	for _, v := range vertices {
		minX, maxX = min(minX, v[0]), max(maxX, v[0])
		minY, maxY = min(minY, v[1]), max(maxY, v[1])
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	margin := 0.9
	return func(v mesh.Vec3) screenPoint {
		nx := (v[0] - minX) / spanX
		ny := (v[1] - minY) / spanY
		return screenPoint{
			x: int(margin*nx*float64(width) + (1-margin)*float64(width)/2),
			y: height - int(margin*ny*float64(height)+(1-margin)*float64(height)/2),
		}
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
