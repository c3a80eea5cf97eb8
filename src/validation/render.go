package validation

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Layout controls the look of a comparison figure.
type Layout struct {
	Title           string  // figure title
	Label           string  // artifact label, also the default file name
	PredictedSource string  // panel title prefix for predictions
	ReferenceSource string  // panel title prefix for reference data
	ColorMap        string  // see ColorMap
	Width, Height   float64 // inches
	DPI             int
}

// DefaultLayout is a 20x10 inch, 100 dpi figure using the jet colour map.
func DefaultLayout() Layout {
	return Layout{
		Title:           "Heat sink 2D: PINN vs True Solution",
		Label:           "custom_plot",
		PredictedSource: "Modulus",
		ReferenceSource: "OpenFOAM",
		ColorMap:        "jet",
		Width:           20,
		Height:          10,
		DPI:             100,
	}
}

// Comparison pairs the predicted and reference fields of one quantity. Both
// fields must share a grid.
type Comparison struct {
	Quantity  string
	Predicted *Field
	Reference *Field
}

// Panel is one heat map of a comparison figure.
type Panel struct {
	Title    string
	Field    *Field
	Min, Max float64 // colour range
}

// Artifact is a rendered figure.
type Artifact struct {
	Label  string
	Panels []Panel
	Canvas *vgimg.Canvas
}

// WriteTo encodes the figure as PNG.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	png := vgimg.PngCanvas{Canvas: a.Canvas}
	return png.WriteTo(w)
}

// Save writes the figure to filename as PNG, creating parent directories.
func (a *Artifact) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := a.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return f.Close()
}

// Renderer draws comparison figures: one row per quantity holding the
// predicted field, the reference field and their difference.
//
// Predicted and reference panels use Scales; difference panels are always
// auto-ranged. Render does not modify its inputs.
type Renderer struct {
	Layout Layout
	Scales ScaleTable
}

// Panels lays out the panels of cmps in row-major order and resolves their
// colour ranges, without drawing anything.
func (r *Renderer) Panels(cmps []Comparison) ([]Panel, error) {
	if err := r.Scales.Check(); err != nil {
		return nil, err
	}

	panels := make([]Panel, 0, 3*len(cmps))
	for _, cmp := range cmps {
		if cmp.Predicted == nil || cmp.Reference == nil {
			return nil, fmt.Errorf("%w: quantity %q is missing a field", ErrInputShape, cmp.Quantity)
		}
		diff, err := Difference(cmp.Predicted, cmp.Reference)
		if err != nil {
			return nil, fmt.Errorf("quantity %q: %w", cmp.Quantity, err)
		}

		fixed := r.Scales.Lookup(cmp.Quantity)
		row := []struct {
			source string
			field  *Field
			scale  Scale
		}{
			{r.Layout.PredictedSource, cmp.Predicted, fixed},
			{r.Layout.ReferenceSource, cmp.Reference, fixed},
			{"Difference", diff, AutoRange{}},
		}
		for _, p := range row {
			min, max, err := p.scale.Range(p.field)
			if err != nil {
				return nil, fmt.Errorf("quantity %q: %w", cmp.Quantity, err)
			}
			panels = append(panels, Panel{
				Title: fmt.Sprintf("%s: %s", p.source, cmp.Quantity),
				Field: p.field,
				Min:   min, Max: max,
			})
		}
	}
	return panels, nil
}

// Render draws the comparison figure for cmps.
func (r *Renderer) Render(cmps []Comparison) (*Artifact, error) {
	if len(cmps) == 0 {
		return nil, fmt.Errorf("%w: nothing to compare", ErrInputShape)
	}
	if !(r.Layout.Width > 0 && r.Layout.Height > 0) || r.Layout.DPI <= 0 {
		return nil, fmt.Errorf("%w: figure size %gx%g in at %d dpi",
			ErrRendering, r.Layout.Width, r.Layout.Height, r.Layout.DPI)
	}
	if _, err := ColorMap(r.Layout.ColorMap); err != nil {
		return nil, err
	}
	panels, err := r.Panels(cmps)
	if err != nil {
		return nil, err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.Layout.Width)*vg.Inch, vg.Length(r.Layout.Height)*vg.Inch),
		vgimg.UseDPI(r.Layout.DPI),
	)
	dc := draw.New(c)

	// Font sizes follow the height of one row of panels.
	rowH := (dc.Max.Y - dc.Min.Y) / vg.Length(len(cmps))
	fontSize := clampLength(rowH/14, vg.Points(6), vg.Points(14))

	titleH := 2.2 * fontSize
	sty := plot.New().Title.TextStyle
	sty.Font.Size = 1.4 * fontSize
	sty.XAlign = text.XCenter
	sty.YAlign = text.YTop
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - fontSize/2}, r.Layout.Title)

	body := draw.Crop(dc, 0, 0, 0, -titleH)
	tiles := draw.Tiles{
		Rows: len(cmps), Cols: 3,
		PadX: fontSize, PadY: fontSize / 2,
		PadLeft: fontSize / 2, PadRight: fontSize / 2, PadBottom: fontSize / 2,
	}

	for k, panel := range panels {
		pc := tiles.At(body, k%3, k/3)
		if err := r.drawPanel(pc, panel, fontSize); err != nil {
			return nil, fmt.Errorf("panel %q: %w", panel.Title, err)
		}
	}

	return &Artifact{Label: r.Layout.Label, Panels: panels, Canvas: c}, nil
}

// drawPanel draws a heat map with its colour bar to the right.
func (r *Renderer) drawPanel(c draw.Canvas, panel Panel, fontSize vg.Length) error {
	cm, err := ColorMap(r.Layout.ColorMap)
	if err != nil {
		return err
	}
	cm.SetMin(panel.Min)
	cm.SetMax(panel.Max)

	pal := cm.Palette(255)
	colors := pal.Colors()
	hm := plotter.NewHeatMap(panel.Field, pal)
	hm.Min, hm.Max = panel.Min, panel.Max
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]

	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	stylePlot(p, fontSize)
	p.Add(hm)

	bar := plot.New()
	bar.HideX()
	stylePlot(bar, fontSize)
	bar.Title.Text = " "
	bar.Y.Tick.Marker = limitedTicker(5, "%.3g")
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	width := c.Max.X - c.Min.X
	barW := clampLength(width/5, 3*fontSize, 6*fontSize)
	p.Draw(draw.Crop(c, 0, -barW, 0, 0))
	bar.Draw(draw.Crop(c, width-barW+fontSize/2, 0, 0, 0))
	return nil
}

// limitedTicker returns a tick generator that:
// - produces at most maxLabels tick labels,
// - formats numeric labels with a given fmt (e.g., "%.1f").
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)

		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{
				Value: v,
				Label: fmt.Sprintf(labelFmt, v),
			})
		}
		return ticks
	})
}

// stylePlot sizes the title, labels, axes and ticks of a panel relative to
// the base font size.
func stylePlot(p *plot.Plot, size vg.Length) {
	p.Title.TextStyle.Font.Size = 1.1 * size
	p.Title.Padding = size / 2

	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Label.Padding = size / 4
	p.Y.Label.Padding = size / 4

	p.X.Padding = 0
	p.Y.Padding = 0

	p.X.Tick.Length = size / 3
	p.Y.Tick.Length = size / 3
	p.X.Tick.Label.Font.Size = 0.8 * size
	p.Y.Tick.Label.Font.Size = 0.8 * size

	p.X.Tick.Marker = limitedTicker(5, "%.2f")
	p.Y.Tick.Marker = limitedTicker(5, "%.2f")
}

func clampLength(x, lo, hi vg.Length) vg.Length {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
