package validation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// idx flattens 2D indexing (i, j) into a 1D array index.
// nx is the number of columns (x-direction).
func idx(i, j, nx int) int {
	return j*nx + i
}

// Extent is the physical bounding rectangle of a grid.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// ExtentOf returns the bounding rectangle of a set of scattered coordinates.
func ExtentOf(xs, ys []float64) (Extent, error) {
	if len(xs) != len(ys) {
		return Extent{}, fmt.Errorf("%w: %d x coordinates but %d y coordinates",
			ErrInputShape, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return Extent{}, fmt.Errorf("%w: no coordinates", ErrInputShape)
	}
	e := Extent{
		XMin: floats.Min(xs), XMax: floats.Max(xs),
		YMin: floats.Min(ys), YMax: floats.Max(ys),
	}
	return e, e.check()
}

func (e Extent) check() error {
	// Written as negations so that NaN bounds also fail.
	if !(e.XMin < e.XMax) {
		return fmt.Errorf("%w: x range [%g, %g] is empty", ErrDegenerateGeometry, e.XMin, e.XMax)
	}
	if !(e.YMin < e.YMax) {
		return fmt.Errorf("%w: y range [%g, %g] is empty", ErrDegenerateGeometry, e.YMin, e.YMax)
	}
	return nil
}

// Grid is a regular nx by ny lattice of nodes spanning an Extent. Both end
// points of each axis are nodes.
type Grid struct {
	Extent
	NX, NY int
	xs, ys []float64
}

// NewGrid returns a grid with nx nodes along x and ny nodes along y.
func NewGrid(e Extent, nx, ny int) (*Grid, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%w: grid resolution %dx%d, need at least 2x2",
			ErrInputShape, nx, ny)
	}
	return &Grid{
		Extent: e,
		NX:     nx, NY: ny,
		xs: linspace(e.XMin, e.XMax, nx),
		ys: linspace(e.YMin, e.YMax, ny),
	}, nil
}

// linspace mirrors numpy's linspace: n evenly spaced samples with both
// end points exact.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// X returns the x coordinate of column i.
func (g *Grid) X(i int) float64 { return g.xs[i] }

// Y returns the y coordinate of row j.
func (g *Grid) Y(j int) float64 { return g.ys[j] }

// Len is the number of nodes in the grid.
func (g *Grid) Len() int { return g.NX * g.NY }

// Field is a scalar quantity sampled at the nodes of a Grid. Undefined nodes
// hold NaN.
//
// Field satisfies plotter.GridXYZ.
type Field struct {
	Grid *Grid
	Data []float64 // flattened in row-major (y-major) order
}

// NewField returns a field on g with every node undefined.
func NewField(g *Grid) *Field {
	data := make([]float64, g.Len())
	for i := range data {
		data[i] = math.NaN()
	}
	return &Field{Grid: g, Data: data}
}

func (f *Field) Dims() (c, r int) { return f.Grid.NX, f.Grid.NY }
func (f *Field) Z(c, r int) float64 {
	return f.Data[idx(c, r, f.Grid.NX)]
}
func (f *Field) X(c int) float64 { return f.Grid.X(c) }
func (f *Field) Y(r int) float64 { return f.Grid.Y(r) }

// At returns the value at node (i, j).
func (f *Field) At(i, j int) float64 { return f.Z(i, j) }

// Set stores v at node (i, j).
func (f *Field) Set(i, j int, v float64) { f.Data[idx(i, j, f.Grid.NX)] = v }

// Undefined counts the NaN nodes of f.
func (f *Field) Undefined() int {
	n := 0
	for _, v := range f.Data {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Range returns the minimum and maximum of the defined nodes of f. ok is
// false if every node is undefined.
func (f *Field) Range() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
		ok = true
	}
	return min, max, ok
}

// Difference returns predicted - reference node by node. A node is undefined
// if it is undefined in either input. Neither input is modified.
func Difference(predicted, reference *Field) (*Field, error) {
	if predicted.Grid != reference.Grid {
		if predicted.Grid.NX != reference.Grid.NX || predicted.Grid.NY != reference.Grid.NY {
			return nil, fmt.Errorf("%w: cannot difference %dx%d and %dx%d fields", ErrInputShape,
				predicted.Grid.NX, predicted.Grid.NY, reference.Grid.NX, reference.Grid.NY)
		}
	}
	out := &Field{Grid: predicted.Grid, Data: make([]float64, len(predicted.Data))}
	floats.SubTo(out.Data, predicted.Data, reference.Data)
	return out, nil
}
