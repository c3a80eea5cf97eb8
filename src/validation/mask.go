package validation

import (
	"fmt"
	"math"
)

// FinSpec describes a heat sink made of Fins congruent rectangular fins. Fin
// j spans [X, X+Length] horizontally and [StartY+j*Gap, StartY+j*Gap+Thickness]
// vertically. Gap is the pitch from the bottom of one fin to the next.
type FinSpec struct {
	X         float64
	StartY    float64
	Thickness float64
	Fins      int
	Gap       float64
	Length    float64
}

// Validate checks the FinSpec invariants.
func (fs FinSpec) Validate() error {
	switch {
	case fs.Fins < 0:
		return fmt.Errorf("%w: fin count %d is negative", ErrDegenerateGeometry, fs.Fins)
	case !(fs.Thickness > 0):
		return fmt.Errorf("%w: fin thickness %g must be positive", ErrDegenerateGeometry, fs.Thickness)
	case !(fs.Gap > 0):
		return fmt.Errorf("%w: fin gap %g must be positive", ErrDegenerateGeometry, fs.Gap)
	case !(fs.Length > 0):
		return fmt.Errorf("%w: fin length %g must be positive", ErrDegenerateGeometry, fs.Length)
	}
	return nil
}

// Rect is a closed axis-aligned rectangle.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Contains reports whether (x, y) lies in r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

// Interior reports whether (x, y) lies strictly inside r.
func (r Rect) Interior(x, y float64) bool {
	return x > r.XMin && x < r.XMax && y > r.YMin && y < r.YMax
}

// Rects returns the fin rectangles, bottom fin first.
func (fs FinSpec) Rects() []Rect {
	rects := make([]Rect, fs.Fins)
	for j := range rects {
		finY := fs.StartY + float64(j)*fs.Gap
		rects[j] = Rect{
			XMin: fs.X, XMax: fs.X + fs.Length,
			YMin: finY, YMax: finY + fs.Thickness,
		}
	}
	return rects
}

// Contains reports whether (x, y) lies inside any fin.
func (fs FinSpec) Contains(x, y float64) bool {
	for _, r := range fs.Rects() {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// Interior reports whether (x, y) lies strictly inside any fin. Points on
// a fin wall are not interior.
func (fs FinSpec) Interior(x, y float64) bool {
	for _, r := range fs.Rects() {
		if r.Interior(x, y) {
			return true
		}
	}
	return false
}

// Mask flags the grid nodes that lie inside the heat sink.
type Mask struct {
	Grid *Grid
	Cell []bool // flattened like Field.Data
}

// NewMask evaluates fs at every node of g.
func NewMask(g *Grid, fs FinSpec) (*Mask, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	m := &Mask{Grid: g, Cell: make([]bool, g.Len())}
	for _, r := range fs.Rects() {
		for j := 0; j < g.NY; j++ {
			for i := 0; i < g.NX; i++ {
				if r.Contains(g.X(i), g.Y(j)) {
					m.Cell[idx(i, j, g.NX)] = true
				}
			}
		}
	}
	return m, nil
}

// Masked reports whether node (i, j) is excluded.
func (m *Mask) Masked(i, j int) bool { return m.Cell[idx(i, j, m.Grid.NX)] }

// Count is the number of excluded nodes.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.Cell {
		if c {
			n++
		}
	}
	return n
}

// Apply sets every excluded node of each field to NaN.
func (m *Mask) Apply(fields ...*Field) error {
	for k, f := range fields {
		if len(f.Data) != len(m.Cell) {
			return fmt.Errorf("%w: field %d has %d nodes, mask has %d",
				ErrInputShape, k, len(f.Data), len(m.Cell))
		}
		for n, c := range m.Cell {
			if c {
				f.Data[n] = math.NaN()
			}
		}
	}
	return nil
}
