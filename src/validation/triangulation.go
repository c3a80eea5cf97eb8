package validation

import (
	"fmt"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"
)

// triangulation is a Delaunay triangulation of distinct points. Triangle t
// is made of the half-edges 3t, 3t+1 and 3t+2; half-edge e starts at vertex
// Triangles[e] and Halfedges[e] is its twin in the neighbouring triangle,
// or -1 on the convex hull.
type triangulation struct {
	pts  []r2.Vec
	d    *delaunay.Triangulation
	area []float64 // signed orient of each triangle, 0 for slivers
}

// orient is twice the signed area of abc: positive when c is left of a->b.
func orient(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// triangulate builds the Delaunay triangulation of pts. The points must be
// distinct.
func triangulate(pts []r2.Vec) (*triangulation, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: %d distinct points, need at least 3",
			ErrDegenerateGeometry, len(pts))
	}
	flat := true
	for k := 2; k < len(pts) && flat; k++ {
		flat = orient(pts[0], pts[1], pts[k]) == 0
	}
	if flat {
		return nil, fmt.Errorf("%w: all %d points are collinear",
			ErrDegenerateGeometry, len(pts))
	}

	dp := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		dp[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	d, err := delaunay.Triangulate(dp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}
	if len(d.Triangles) == 0 {
		return nil, fmt.Errorf("%w: no triangles over %d points",
			ErrDegenerateGeometry, len(pts))
	}

	tr := &triangulation{pts: pts, d: d, area: make([]float64, len(d.Triangles)/3)}
	for t := range tr.area {
		v := tr.vertices(t)
		tr.area[t] = orient(pts[v[0]], pts[v[1]], pts[v[2]])
	}
	return tr, nil
}

// len is the number of triangles.
func (tr *triangulation) len() int { return len(tr.area) }

// vertices returns the point indices of triangle t.
func (tr *triangulation) vertices(t int) [3]int {
	ts := tr.d.Triangles
	return [3]int{ts[3*t], ts[3*t+1], ts[3*t+2]}
}

// outside reports whether p lies strictly beyond half-edge e, seen from
// the inside of its triangle.
func (tr *triangulation) outside(e int, p r2.Vec) bool {
	a := tr.pts[tr.d.Triangles[e]]
	b := tr.pts[tr.d.Triangles[nextHalfedge(e)]]
	o := orient(a, b, p)
	if tr.area[e/3] < 0 {
		return o > 0
	}
	return o < 0
}

// locate walks from triangle start towards p. It returns the triangle
// holding p (boundary included), or -1 if p is outside the hull.
func (tr *triangulation) locate(p r2.Vec, start int) int {
	t := start
	for step := 0; step < tr.len(); step++ {
		if tr.area[t] == 0 {
			break
		}
		next, crossed := -1, false
		for k := 0; k < 3; k++ {
			// Rotating the first edge tested keeps the walk from cycling.
			e := 3*t + (k+step)%3
			if tr.outside(e, p) {
				next, crossed = tr.d.Halfedges[e], true
				break
			}
		}
		if !crossed {
			return t
		}
		if next < 0 {
			// Beyond a hull edge, and the hull is convex.
			return -1
		}
		t = next / 3
	}
	return tr.scan(p)
}

// scan is the brute force fallback for locate.
func (tr *triangulation) scan(p r2.Vec) int {
	for t, area := range tr.area {
		if area == 0 {
			continue
		}
		if !tr.outside(3*t, p) && !tr.outside(3*t+1, p) && !tr.outside(3*t+2, p) {
			return t
		}
	}
	return -1
}

// weights returns the barycentric coordinates of p in triangle t, in the
// order of vertices(t).
func (tr *triangulation) weights(t int, p r2.Vec) [3]float64 {
	v := tr.vertices(t)
	a, b, c := tr.pts[v[0]], tr.pts[v[1]], tr.pts[v[2]]
	area := tr.area[t]
	return [3]float64{
		orient(b, c, p) / area,
		orient(c, a, p) / area,
		orient(a, b, p) / area,
	}
}
