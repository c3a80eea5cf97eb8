package validation

import (
	"fmt"
	"log"
	"math"
)

// Temperature converts the normalised temperature the network predicts back
// to physical units: T = c*Scale, plus Baseline when Absolute is set.
type Temperature struct {
	Quantity string  // name of the normalised temperature, usually "c"
	Scale    float64 // normalisation constant, 273.15
	Baseline float64 // reference temperature subtracted before normalising
	Absolute bool    // add Baseline back, giving absolute rather than excess temperature
}

// Physical returns c in physical units.
func (t Temperature) Physical(c float64) float64 {
	v := c * t.Scale
	if t.Absolute {
		v += t.Baseline
	}
	return v
}

// Normalised is the inverse of Physical applied to an absolute temperature:
// (T - Baseline) / Scale.
func (t Temperature) Normalised(T float64) float64 {
	return (T - t.Baseline) / t.Scale
}

// Plotter turns one validation pass (scattered inputs, reference outputs and
// predicted outputs) into a comparison figure. It is stateless between
// calls.
type Plotter struct {
	Quantities  []string // quantities to compare, one figure row each
	Fins        FinSpec
	Resolution  int
	Temperature Temperature
	Renderer    Renderer
	Logger      *log.Logger
}

func (p *Plotter) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// Plot interpolates every quantity of trueOutvar and predOutvar onto a
// Resolution x Resolution grid spanning the points of invar, blanks out the
// heat sink and renders the comparison. invar must hold "x" and "y".
//
// Plot returns exactly one artifact, or an error and no artifact.
func (p *Plotter) Plot(invar, trueOutvar, predOutvar map[string][]float64) ([]*Artifact, error) {
	xs, ys, err := p.coordinates(invar)
	if err != nil {
		return nil, err
	}
	n := len(xs)
	if len(p.Quantities) == 0 {
		return nil, fmt.Errorf("%w: no quantities to compare", ErrInputShape)
	}

	values := make([][]float64, 0, 2*len(p.Quantities))
	for _, q := range p.Quantities {
		pred, err := p.column(predOutvar, "predicted", q, n)
		if err != nil {
			return nil, err
		}
		ref, err := p.column(trueOutvar, "reference", q, n)
		if err != nil {
			return nil, err
		}
		values = append(values, pred, ref)
	}

	extent, err := ExtentOf(xs, ys)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(extent, p.Resolution, p.Resolution)
	if err != nil {
		return nil, err
	}
	mask, err := NewMask(grid, p.Fins)
	if err != nil {
		return nil, err
	}
	in, err := NewInterpolator(xs, ys)
	if err != nil {
		return nil, err
	}
	fields, err := in.Interpolate(grid, values...)
	if err != nil {
		return nil, err
	}

	if inside := p.pointsInFins(xs, ys); inside > 0 {
		p.logger().Printf("warning: %d of %d sample points lie inside the heat sink fins; "+
			"the fin layout may not match the data", inside, n)
	}
	if undef := fields[0].Undefined(); undef > 0 {
		p.logger().Printf("%d of %d grid nodes are undefined before masking (outside the sample hull)",
			undef, grid.Len())
	}
	if err := mask.Apply(fields...); err != nil {
		return nil, err
	}
	p.logger().Printf("masked %d of %d grid nodes inside %d fins", mask.Count(), grid.Len(), p.Fins.Fins)

	cmps := make([]Comparison, len(p.Quantities))
	for k, q := range p.Quantities {
		cmps[k] = Comparison{Quantity: q, Predicted: fields[2*k], Reference: fields[2*k+1]}
	}
	art, err := p.Renderer.Render(cmps)
	if err != nil {
		return nil, err
	}
	return []*Artifact{art}, nil
}

func (p *Plotter) coordinates(invar map[string][]float64) (xs, ys []float64, err error) {
	xs, okX := invar["x"]
	ys, okY := invar["y"]
	if !okX || !okY {
		return nil, nil, fmt.Errorf("%w: inputs must contain \"x\" and \"y\"", ErrInputShape)
	}
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("%w: %d x coordinates but %d y coordinates",
			ErrInputShape, len(xs), len(ys))
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			return nil, nil, fmt.Errorf("%w: point %d has non-finite coordinates (%g, %g)",
				ErrInputShape, i, xs[i], ys[i])
		}
	}
	return xs, ys, nil
}

// column fetches quantity q from vars, converting temperature to physical
// units. The input slice is never modified.
func (p *Plotter) column(vars map[string][]float64, source, q string, n int) ([]float64, error) {
	v, ok := vars[q]
	if !ok {
		return nil, fmt.Errorf("%w: %s outputs are missing %q", ErrInputShape, source, q)
	}
	if len(v) != n {
		return nil, fmt.Errorf("%w: %s %q has %d values for %d points",
			ErrInputShape, source, q, len(v), n)
	}
	if q != p.Temperature.Quantity {
		return v, nil
	}
	out := make([]float64, n)
	for i, c := range v {
		out[i] = p.Temperature.Physical(c)
	}
	return out, nil
}

// pointsInFins counts samples strictly inside a fin. Wall nodes of the mesh
// sit on the fin edges and are not counted.
func (p *Plotter) pointsInFins(xs, ys []float64) int {
	n := 0
	for i := range xs {
		if p.Fins.Interior(xs[i], ys[i]) {
			n++
		}
	}
	return n
}
