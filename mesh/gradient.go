package mesh

// gradientEpsilon is the central-difference step (spec.md §4.3).
const gradientEpsilon = 1e-5

// gradient estimates ∇f at p via centred finite differences, six extra
// evaluations of f — affordable because it is only called once per
// located crossing, not per sample.
func gradient(f func(Vec3) float64, p Vec3) Vec3 {
	var g Vec3
	for a := 0; a < 3; a++ {
		plus, minus := p, p
		plus[a] += gradientEpsilon
		minus[a] -= gradientEpsilon
		g[a] = (f(plus) - f(minus)) / (2 * gradientEpsilon)
	}
	return g
}

// normalize returns g/|g|, or the zero vector if g is degenerate
// (spec.md §7: "gradient degenerate at crossing" is not an error, the
// quadric library treats the contribution as zero-information).
func normalize(g Vec3) Vec3 {
	length := g.Length()
	if length == 0 {
		return Vec3{}
	}
	return g.Scale(1 / length)
}
