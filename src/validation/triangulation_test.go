package validation

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func randomPoints(seed int64, n int) []r2.Vec {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]r2.Vec, n)
	for i := range pts {
		pts[i] = r2.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64() - 0.5}
	}
	return pts
}

// inCircle is positive when d lies inside the circumcircle of the
// counter-clockwise triangle abc.
func inCircle(a, b, c, d r2.Vec) float64 {
	ad, bd, cd := r2.Sub(a, d), r2.Sub(b, d), r2.Sub(c, d)
	al := ad.X*ad.X + ad.Y*ad.Y
	bl := bd.X*bd.X + bd.Y*bd.Y
	cl := cd.X*cd.X + cd.Y*cd.Y
	return al*(bd.X*cd.Y-cd.X*bd.Y) -
		bl*(ad.X*cd.Y-cd.X*ad.Y) +
		cl*(ad.X*bd.Y-bd.X*ad.Y)
}

// hullArea computes the area of the convex hull of pts with the monotone
// chain algorithm.
func hullArea(pts []r2.Vec) float64 {
	ps := append([]r2.Vec(nil), pts...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
	var hull []r2.Vec
	for pass := 0; pass < 2; pass++ {
		start := len(hull)
		for _, p := range ps {
			for len(hull) >= start+2 && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		hull = hull[:len(hull)-1]
		for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
			ps[i], ps[j] = ps[j], ps[i]
		}
	}
	area := 0.0
	for i := range hull {
		area += r2.Cross(hull[i], hull[(i+1)%len(hull)])
	}
	return area / 2
}

// tiledArea sums the triangle areas and checks that every triangle has
// the same, non-zero orientation.
func tiledArea(t *testing.T, tr *triangulation) float64 {
	area := 0.0
	for k, a := range tr.area {
		require.NotZero(t, a, "triangle %d is a sliver", k)
		require.Equal(t, math.Signbit(tr.area[0]), math.Signbit(a), "triangle %d is flipped", k)
		area += math.Abs(a) / 2
	}
	return area
}

func TestTriangulateDegenerate(t *testing.T) {
	tests := [][]r2.Vec{
		nil,
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: -3, Y: -3}},
		{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
	}

	for i, pts := range tests {
		_, err := triangulate(pts)
		assert.ErrorIs(t, err, ErrDegenerateGeometry, "%d) %v", i, pts)
	}
}

func TestTriangulateSingle(t *testing.T) {
	tr, err := triangulate([]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}})
	require.NoError(t, err)
	require.Equal(t, 1, tr.len())
	v := tr.vertices(0)
	assert.ElementsMatch(t, []int{0, 1, 2}, v[:])

	// Weights follow the vertex order whatever the winding.
	c := r2.Vec{X: 1.0 / 3, Y: 1.0 / 3}
	w := tr.weights(0, c)
	for k := range w {
		assert.InDelta(t, 1.0/3, w[k], 1e-12)
	}
	assert.Equal(t, 0, tr.locate(c, 0))
	assert.Equal(t, -1, tr.locate(r2.Vec{X: 1, Y: 1}, 0))
}

func TestTriangulateDelaunay(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		pts := randomPoints(seed, 300)
		tr, err := triangulate(pts)
		require.NoError(t, err)

		assert.InDelta(t, hullArea(pts), tiledArea(t, tr), 1e-9, "seed %d: triangles must tile the hull", seed)

		for ti := 0; ti < tr.len(); ti++ {
			v := tr.vertices(ti)
			a, b, c := pts[v[0]], pts[v[1]], pts[v[2]]
			if tr.area[ti] < 0 {
				b, c = c, b
			}
			for k, p := range pts {
				if k == v[0] || k == v[1] || k == v[2] {
					continue
				}
				if inCircle(a, b, c, p) > 1e-9 {
					t.Errorf("seed %d: point %d lies inside the circumcircle of triangle %d", seed, k, ti)
				}
			}
		}
	}
}

func TestTriangulateNeighbours(t *testing.T) {
	pts := randomPoints(7, 100)
	tr, err := triangulate(pts)
	require.NoError(t, err)

	hull := 0
	for e, twin := range tr.d.Halfedges {
		if twin < 0 {
			hull++
			continue
		}
		require.Equal(t, e, tr.d.Halfedges[twin], "half-edge %d", e)
		// Twins run the same edge in opposite directions.
		assert.Equal(t, tr.d.Triangles[e], tr.d.Triangles[nextHalfedge(twin)])
		assert.Equal(t, tr.d.Triangles[nextHalfedge(e)], tr.d.Triangles[twin])
	}
	assert.Equal(t, len(tr.d.ConvexHull), hull, "one open half-edge per hull edge")
}

func TestTriangulateLocate(t *testing.T) {
	pts := randomPoints(11, 200)
	tr, err := triangulate(pts)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(12))
	for n := 0; n < 500; n++ {
		p := r2.Vec{X: rng.Float64()*5 - 2.5, Y: rng.Float64()*1.4 - 0.7}
		start := rng.Intn(tr.len())
		got := tr.locate(p, start)
		assert.Equal(t, tr.scan(p) >= 0, got >= 0, "walk and scan disagree about %v", p)
		if got < 0 {
			continue
		}
		for _, w := range tr.weights(got, p) {
			assert.GreaterOrEqual(t, w, -1e-12, "%v is outside triangle %d", p, got)
		}
	}
}

func TestTriangulateCollinearHull(t *testing.T) {
	// Points along the bottom edge of the square must not leave slivers
	// or holes.
	pts := []r2.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 0.25, Y: 0}, {X: 0.5, Y: 0}, {X: 0.75, Y: 0},
		{X: 1.5, Y: 0}, {X: 0.5, Y: 0.5},
	}
	tr, err := triangulate(pts)
	require.NoError(t, err)
	assert.InDelta(t, hullArea(pts), tiledArea(t, tr), 1e-12)
}

func TestTriangulateLattice(t *testing.T) {
	// A regular lattice is full of cocircular quadruples.
	var pts []r2.Vec
	for j := 0; j <= 20; j++ {
		for i := 0; i <= 40; i++ {
			pts = append(pts, r2.Vec{X: -2 + 0.1*float64(i), Y: -0.5 + 0.05*float64(j)})
		}
	}
	tr, err := triangulate(pts)
	require.NoError(t, err)
	assert.InDelta(t, hullArea(pts), tiledArea(t, tr), 1e-9)
	assert.Equal(t, 2*40*20, tr.len())
}
