package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/implicitmodeler/mesh"
)

func sampleMesh() mesh.QuadMesh {
	return mesh.QuadMesh{
		Vertices: []mesh.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Quads: []mesh.Quad{
			{0, 1, 2, 3},
			{4, 5, 6, 7},
		},
	}
}

func TestWriteSVGWireframeProducesValidMarkup(t *testing.T) {
	var buf bytes.Buffer
	WriteSVGWireframe(&buf, sampleMesh(), 200, 200)

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "line")
}

func TestWriteDXFSliceAtMidHeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.dxf")
	err := WriteDXFSlice(path, sampleMesh(), 0.5)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestIntersectPlaneCrossing(t *testing.T) {
	a := mesh.Vec3{0, 0, 0}
	b := mesh.Vec3{0, 0, 1}
	seg, ok := intersectPlane(a, b, 0.5)
	require.True(t, ok)
	assert.Equal(t, planarPoint{0, 0}, seg[0])
}

func TestIntersectPlaneMisses(t *testing.T) {
	a := mesh.Vec3{0, 0, 0}
	b := mesh.Vec3{0, 0, 1}
	_, ok := intersectPlane(a, b, 5)
	assert.False(t, ok)
}

func TestWritePNGPreviewEncodesValidImage(t *testing.T) {
	var buf bytes.Buffer
	err := WritePNGPreview(&buf, sampleMesh(), 64, 64, "preview")
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)

	sig := buf.Bytes()[:8]
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, sig)
}

func TestWriteThreeMFProducesNonEmptyPackage(t *testing.T) {
	var buf bytes.Buffer
	err := WriteThreeMF(&buf, sampleMesh())
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
