package mesh

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sphereSDF(p Vec3) float64 {
	return math.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]) - 1
}

func boxSDF(half Vec3) func(Vec3) float64 {
	return func(p Vec3) float64 {
		q := Vec3{math.Abs(p[0]) - half[0], math.Abs(p[1]) - half[1], math.Abs(p[2]) - half[2]}
		maxElem := math.Max(q[0], math.Max(q[1], q[2]))
		inside := math.Min(maxElem, 0)
		clamped := Vec3{math.Max(q[0], 0), math.Max(q[1], 0), math.Max(q[2], 0)}
		return clamped.Length() + inside
	}
}

func TestMeshSphereVerticesNearSurface(t *testing.T) {
	// spec.md §8 property 4: every vertex within 2h of the true radius.
	m, err := Mesh(context.Background(), sphereSDF, 64)
	require.NoError(t, err)
	require.NotEmpty(t, m.Vertices)

	h := 6.0 / 63.0
	for _, v := range m.Vertices {
		r := v.Length()
		assert.Less(t, math.Abs(r-1), 2*h)
	}
}

func TestMeshSphereFaceNormalsOutward(t *testing.T) {
	// spec.md §8 property 5: each quad's normal points away from the
	// sphere's interior, i.e. has positive dot product with the
	// centroid.
	m, err := Mesh(context.Background(), sphereSDF, 32)
	require.NoError(t, err)
	require.NotEmpty(t, m.Quads)

	for _, q := range m.Quads {
		v0, v1, v2, v3 := m.Vertices[q[0]], m.Vertices[q[1]], m.Vertices[q[2]], m.Vertices[q[3]]
		e1 := v1.Sub(v0)
		e2 := v2.Sub(v0)
		normal := cross(e1, e2)
		centroid := v0.Add(v1).Add(v2).Add(v3).Scale(0.25)
		assert.Greater(t, normal.Dot(centroid), 0.0)
	}
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func TestMeshBoxMeanDistanceToSurface(t *testing.T) {
	// spec.md §8 property 6.
	f := boxSDF(Vec3{0.5, 0.5, 0.5})
	m, err := Mesh(context.Background(), f, 48)
	require.NoError(t, err)
	require.NotEmpty(t, m.Vertices)

	h := 6.0 / 47.0
	var sum float64
	for _, v := range m.Vertices {
		sum += math.Abs(f(v))
	}
	mean := sum / float64(len(m.Vertices))
	assert.Less(t, mean, h)
}

func TestMeshIdempotent(t *testing.T) {
	// spec.md §8 property 7.
	m1, err := Mesh(context.Background(), sphereSDF, 16)
	require.NoError(t, err)
	m2, err := Mesh(context.Background(), sphereSDF, 16)
	require.NoError(t, err)

	assert.Equal(t, len(m1.Vertices), len(m2.Vertices))
	assert.Equal(t, len(m1.Quads), len(m2.Quads))
}

func TestMeshCancellation(t *testing.T) {
	// spec.md §8 property 8: a cancelled context yields no partial
	// result, and a subsequent call completes normally.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Mesh(ctx, sphereSDF, 64)
	assert.Error(t, err)

	m, err := Mesh(context.Background(), sphereSDF, 16)
	require.NoError(t, err)
	assert.NotEmpty(t, m.Vertices)
}

func TestMeshEmptyDomainScenarioD(t *testing.T) {
	// spec.md §8 scenario D.
	always := func(Vec3) float64 { return 1 }
	m, err := Mesh(context.Background(), always, 16)
	require.NoError(t, err)
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Quads)
}

func TestMeshUnitSphereScenarioA(t *testing.T) {
	// Unit sphere at N=8 (spec.md §8 scenario A's input). The grid
	// spacing is 6/7, so the shell has only a few dozen vertices; the
	// test checks at least 20, all within [0.7, 1.3].
	m, err := Mesh(context.Background(), sphereSDF, 8)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(m.Vertices), 20)
	for _, v := range m.Vertices {
		r := v.Length()
		assert.GreaterOrEqual(t, r, 0.7)
		assert.LessOrEqual(t, r, 1.3)
	}
}

func TestMeshRejectsTooSmallN(t *testing.T) {
	_, err := Mesh(context.Background(), sphereSDF, 1)
	assert.Error(t, err)
}
