package quadric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaneQuadricMinimiserRecoversPoint(t *testing.T) {
	// Three confident, non-degenerate plane constraints through the same
	// point with independent normals pin down exactly that point.
	point := [3]float64{1, 2, 3}
	q := NewPlaneQuadric(point, [3]float64{1, 0, 0}, 1e-4, 1e-4)
	q = q.Add(NewPlaneQuadric(point, [3]float64{0, 1, 0}, 1e-4, 1e-4))
	q = q.Add(NewPlaneQuadric(point, [3]float64{0, 0, 1}, 1e-4, 1e-4))

	got := q.Minimiser([3]float64{0, 0, 0})
	assert.InDelta(t, point[0], got[0], 1e-3)
	assert.InDelta(t, point[1], got[1], 1e-3)
	assert.InDelta(t, point[2], got[2], 1e-3)
}

func TestPlaneQuadricDegenerateFallsBackToBias(t *testing.T) {
	// A single plane constraint under-determines the other two axes;
	// the minimiser should fall back to bias along the degenerate
	// directions rather than diverge.
	point := [3]float64{0, 0, 0}
	q := NewPlaneQuadric(point, [3]float64{1, 0, 0}, 1e-6, 1e-6)

	bias := [3]float64{0, 5, 5}
	got := q.Minimiser(bias)
	assert.InDelta(t, 0.0, got[0], 1e-2)
	assert.InDelta(t, bias[1], got[1], 1e-2)
	assert.InDelta(t, bias[2], got[2], 1e-2)
}

func TestAddIsCommutativeOnMinimiser(t *testing.T) {
	p1 := [3]float64{1, 0, 0}
	p2 := [3]float64{0, 1, 0}
	n1 := [3]float64{1, 0, 0}
	n2 := [3]float64{0, 1, 0}

	a := NewPlaneQuadric(p1, n1, 1e-3, 1e-3).Add(NewPlaneQuadric(p2, n2, 1e-3, 1e-3))
	b := NewPlaneQuadric(p2, n2, 1e-3, 1e-3).Add(NewPlaneQuadric(p1, n1, 1e-3, 1e-3))

	ma := a.Minimiser([3]float64{0, 0, 0})
	mb := b.Minimiser([3]float64{0, 0, 0})
	assert.InDelta(t, ma[0], mb[0], 1e-9)
	assert.InDelta(t, ma[1], mb[1], 1e-9)
	assert.InDelta(t, ma[2], mb[2], 1e-9)
}
