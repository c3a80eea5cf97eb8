package validation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Interpolator maps values given at scattered 2D points onto regular grids
// by linear interpolation over a Delaunay triangulation of the points.
// Nodes outside the convex hull of the points are undefined (NaN).
//
// Interpolation needs at least three distinct points that are not all
// collinear; NewInterpolator reports ErrDegenerateGeometry otherwise.
type Interpolator struct {
	n    int   // number of input points
	orig []int // triangulation vertex -> first input index at that position
	tri  *triangulation
}

// NewInterpolator triangulates the points (xs[i], ys[i]). Repeated points
// are collapsed onto their first occurrence.
func NewInterpolator(xs, ys []float64) (*Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x coordinates but %d y coordinates",
			ErrInputShape, len(xs), len(ys))
	}

	seen := make(map[r2.Vec]bool, len(xs))
	pts := make([]r2.Vec, 0, len(xs))
	orig := make([]int, 0, len(xs))
	for i := range xs {
		p := r2.Vec{X: xs[i], Y: ys[i]}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: point %d has non-finite coordinates (%g, %g)",
				ErrInputShape, i, p.X, p.Y)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		pts = append(pts, p)
		orig = append(orig, i)
	}

	tri, err := triangulate(pts)
	if err != nil {
		return nil, err
	}
	return &Interpolator{n: len(xs), orig: orig, tri: tri}, nil
}

// Triangles is the number of triangles covering the convex hull.
func (in *Interpolator) Triangles() int { return in.tri.len() }

// sample is the location of one grid node in the triangulation.
type sample struct {
	tri int // -1 outside the hull
	w   [3]float64
}

// Interpolate evaluates each value array on g. Every array must be aligned
// with the coordinates given to NewInterpolator. NaN inputs propagate to
// every node whose triangle uses them.
func (in *Interpolator) Interpolate(g *Grid, values ...[]float64) ([]*Field, error) {
	for k, vals := range values {
		if len(vals) != in.n {
			return nil, fmt.Errorf("%w: value array %d has %d entries for %d points",
				ErrInputShape, k, len(vals), in.n)
		}
	}

	samples := in.locate(g)

	out := make([]*Field, len(values))
	for k, vals := range values {
		f := NewField(g)
		for node, s := range samples {
			if s.tri < 0 {
				continue
			}
			v := in.tri.vertices(s.tri)
			f.Data[node] = s.w[0]*vals[in.orig[v[0]]] +
				s.w[1]*vals[in.orig[v[1]]] +
				s.w[2]*vals[in.orig[v[2]]]
		}
		out[k] = f
	}
	return out, nil
}

// locate finds the triangle and barycentric weights of every node of g.
// The walk for each node starts where the previous one ended.
func (in *Interpolator) locate(g *Grid) []sample {
	samples := make([]sample, g.Len())
	hint := 0
	for j := 0; j < g.NY; j++ {
		for i := 0; i < g.NX; i++ {
			p := r2.Vec{X: g.X(i), Y: g.Y(j)}
			s := &samples[idx(i, j, g.NX)]
			t := in.tri.locate(p, hint)
			if t < 0 {
				s.tri = -1
				continue
			}
			s.tri, s.w = t, in.tri.weights(t, p)
			hint = t
		}
	}
	return samples
}
