// Package quadric implements the probabilistic plane quadric accumulator
// the mesher uses to place one vertex per octree cell from the set of
// surface-crossing edges inside it. spec.md §1 calls the full
// probabilistic-quadrics math out of scope and treats it as "an external
// dependency with a known interface" — this package is that interface,
// backed by gonum/mat (a teacher dependency, github.com/Megidd/sdfx's
// go.mod, not otherwise exercised by its own source) for the underlying
// 3x3 symmetric solve.
package quadric

import (
	"gonum.org/v1/gonum/mat"
)

// Quadric accumulates one or more probabilistic plane constraints into a
// single 3x3 quadratic form: x^T A x - 2 b.x + c, minimised over x to
// place a vertex. Quadrics from different edges of the same cell are
// combined by Add, which simply sums A, b and c — the additive property
// that makes per-edge probabilistic quadrics a per-cell vertex solver.
type Quadric struct {
	a [3][3]float64
	b [3]float64
	c float64
}

// NewPlaneQuadric builds the quadric for one surface-crossing edge: a
// plane through point with the given unit normal, weighted by position
// uncertainty sigmaP and normal uncertainty sigmaN (both standard
// deviations, spec.md §4.4's "noise accompanying each crossing point").
// Larger sigmaN relaxes the constraint's directionality and regularises
// the minimiser toward point; sigmaP only enters the constant term c,
// so it changes the quadric's error value but not its minimiser.
func NewPlaneQuadric(point, normal [3]float64, sigmaP, sigmaN float64) Quadric {
	var q Quadric
	nn2 := sigmaN * sigmaN
	np := dot(normal, point)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			q.a[i][j] = normal[i] * normal[j]
		}
		q.a[i][i] += nn2
		q.b[i] = np*normal[i] + nn2*point[i]
	}
	q.c = np*np + nn2*dot(point, point) + sigmaP*sigmaP*dot(normal, normal)
	return q
}

// Add returns the quadric formed by combining q and other, the
// accumulation step used to gather every edge crossing a cell into one
// per-cell quadric (spec.md §4.4).
func (q Quadric) Add(other Quadric) Quadric {
	var sum Quadric
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum.a[i][j] = q.a[i][j] + other.a[i][j]
		}
		sum.b[i] = q.b[i] + other.b[i]
	}
	sum.c = q.c + other.c
	return sum
}

// dot computes the Euclidean inner product of two 3-vectors.
func dot(u, v [3]float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// eigenFloor is the eigenvalue below which a direction of A counts as
// unconstrained. Minimiser also treats a Cholesky factorisation whose
// condition number reaches 1/eigenFloor as near-singular.
const eigenFloor = 1e-8

// Minimiser solves A x = b for the x minimising the quadric's error,
// falling back toward bias (the mesher passes the voxel's minimum-corner
// position) when A is singular or near-singular — the flat/degenerate-cell
// case dual contouring implementations routinely hit when every edge in
// a cell sees (nearly) the same normal.
func (q Quadric) Minimiser(bias [3]float64) [3]float64 {
	sym := mat.NewSymDense(3, []float64{
		q.a[0][0], q.a[0][1], q.a[0][2],
		q.a[1][0], q.a[1][1], q.a[1][2],
		q.a[2][0], q.a[2][1], q.a[2][2],
	})

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); ok && chol.Cond() < 1/eigenFloor {
		var x mat.VecDense
		rhs := mat.NewVecDense(3, []float64{q.b[0], q.b[1], q.b[2]})
		if err := chol.SolveVecTo(&x, rhs); err == nil {
			return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}
		}
	}
	return q.pseudoMinimise(sym, bias)
}

// pseudoMinimise handles the near-singular case via eigendecomposition:
// small eigenvalues (directions the accumulated constraints say nothing
// about) are clamped to a floor instead of inverted, which would
// otherwise blow the solution up; the clamped directions fall back to
// bias, the cell's default vertex position.
func (q Quadric) pseudoMinimise(sym *mat.SymDense, bias [3]float64) [3]float64 {
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return bias
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	b := mat.NewVecDense(3, []float64{q.b[0], q.b[1], q.b[2]})
	var vTb mat.VecDense
	vTb.MulVec(vectors.T(), b)

	var biasVec mat.VecDense
	biasVec.MulVec(vectors.T(), mat.NewVecDense(3, []float64{bias[0], bias[1], bias[2]}))

	coeffs := mat.NewVecDense(3, nil)
	for i := 0; i < 3; i++ {
		lambda := values[i]
		if lambda < eigenFloor {
			coeffs.SetVec(i, biasVec.AtVec(i))
			continue
		}
		coeffs.SetVec(i, vTb.AtVec(i)/lambda)
	}

	var x mat.VecDense
	x.MulVec(&vectors, coeffs)
	return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}
}
