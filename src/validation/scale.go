package validation

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Scale chooses the colour range of a panel. It is either a FixedRange or
// an AutoRange.
type Scale interface {
	// Range returns the colour range to use for f.
	Range(f *Field) (min, max float64, err error)
	isScale()
}

// FixedRange pins the colour range. Values outside it take the end colours.
type FixedRange struct {
	Min, Max float64
}

// AutoRange fits the colour range to the defined values of the field.
type AutoRange struct{}

func (FixedRange) isScale() {}
func (AutoRange) isScale()  {}

// Check reports ErrRendering unless Min < Max.
func (r FixedRange) Check() error {
	if !(r.Min < r.Max) {
		return fmt.Errorf("%w: colour range [%g, %g] is empty", ErrRendering, r.Min, r.Max)
	}
	return nil
}

func (r FixedRange) Range(*Field) (min, max float64, err error) {
	return r.Min, r.Max, r.Check()
}

func (AutoRange) Range(f *Field) (min, max float64, err error) {
	min, max, ok := f.Range()
	if !ok {
		return 0, 1, nil
	}
	if min == max {
		pad := math.Max(math.Abs(min)*0.05, 0.5)
		return min - pad, max + pad, nil
	}
	return min, max, nil
}

// ScaleTable holds the fixed colour ranges of the predicted and reference
// panels, keyed by quantity. Quantities without an entry are auto-ranged.
type ScaleTable map[string]FixedRange

// Lookup returns the scale to use for quantity q.
func (t ScaleTable) Lookup(q string) Scale {
	if r, ok := t[q]; ok {
		return r
	}
	return AutoRange{}
}

// Check validates every entry, in name order.
func (t ScaleTable) Check() error {
	names := make([]string, 0, len(t))
	for q := range t {
		names = append(names, q)
	}
	sort.Strings(names)
	for _, q := range names {
		if err := t[q].Check(); err != nil {
			return fmt.Errorf("scale %q: %w", q, err)
		}
	}
	return nil
}

// jet is the classic rainbow colour map, dark blue through red.
type jet struct {
	min, max, alpha float64
}

// Jet returns the jet colour map over [0, 1].
func Jet() palette.ColorMap { return &jet{max: 1, alpha: 1} }

func (j *jet) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < j.min:
		return nil, palette.ErrUnderflow
	case v > j.max:
		return nil, palette.ErrOverflow
	}
	t := (v - j.min) / (j.max - j.min)
	ch := func(c float64) uint8 {
		c = math.Max(0, math.Min(1, 1.5-math.Abs(4*t-c)))
		return uint8(c*255 + 0.5)
	}
	return color.NRGBA{R: ch(3), G: ch(2), B: ch(1), A: uint8(j.alpha*255 + 0.5)}, nil
}

func (j *jet) Max() float64       { return j.max }
func (j *jet) Min() float64       { return j.min }
func (j *jet) SetMax(v float64)   { j.max = v }
func (j *jet) SetMin(v float64)   { j.min = v }
func (j *jet) Alpha() float64     { return j.alpha }
func (j *jet) SetAlpha(a float64) { j.alpha = a }
func (j *jet) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		v := j.min
		if n > 1 {
			v = math.Min(j.max, v+(j.max-j.min)*float64(i)/float64(n-1))
		}
		c, err := j.At(v)
		if err != nil {
			c = color.Transparent
		}
		colors[i] = c
	}
	return plainPalette(colors)
}

type plainPalette []color.Color

func (p plainPalette) Colors() []color.Color { return p }

// colorMaps lists the colour maps a Renderer can use by name.
var colorMaps = map[string]func() palette.ColorMap{
	"jet":             Jet,
	"kindlmann":       moreland.Kindlmann,
	"smooth-blue-red": func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"black-body":      moreland.BlackBody,
}

// ColorMap returns a fresh colour map by name.
func ColorMap(name string) (palette.ColorMap, error) {
	mk, ok := colorMaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown colour map %q", ErrRendering, name)
	}
	return mk(), nil
}
