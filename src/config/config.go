// Package config reads the heat sink validation settings. One Config carries
// the fin layout shared by the geometry report and the masker, so the two
// cannot drift apart.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/mohammadijoo/heatsink_pinn_go/src/validation"
)

type HeatSinkConfig struct {
	X            float64
	YStart       float64 `gcfg:"y-start"`
	FinThickness float64 `gcfg:"fin-thickness"`
	Fins         int
	Gap          float64
	Length       float64
}

// FinSpec converts the section to the masker's representation.
func (hs *HeatSinkConfig) FinSpec() validation.FinSpec {
	return validation.FinSpec{
		X:         hs.X,
		StartY:    hs.YStart,
		Thickness: hs.FinThickness,
		Fins:      hs.Fins,
		Gap:       hs.Gap,
		Length:    hs.Length,
	}
}

type ChannelConfig struct {
	XMin float64 `gcfg:"x-min"`
	XMax float64 `gcfg:"x-max"`
	YMin float64 `gcfg:"y-min"`
	YMax float64 `gcfg:"y-max"`
}

type GridConfig struct {
	Resolution int
}

type TemperatureConfig struct {
	Quantity string
	Scale    float64
	Baseline float64
	Absolute bool
}

type PlotConfig struct {
	Title           string
	Label           string
	PredictedSource string `gcfg:"predicted-source"`
	ReferenceSource string `gcfg:"reference-source"`
	ColorMap        string `gcfg:"colormap"`
	Width, Height   float64
	DPI             int
}

type QuantitiesConfig struct {
	Name []string
}

type ScaleConfig struct {
	Min, Max float64
}

type ColumnConfig struct {
	Name string
}

type OpenFOAMConfig struct {
	NuOffset float64  `gcfg:"nu-offset"`
	Inputs   []string `gcfg:"input"`
}

// Config is the complete validation setup.
type Config struct {
	HeatSink    HeatSinkConfig
	Channel     ChannelConfig
	Grid        GridConfig
	Temperature TemperatureConfig
	Plot        PlotConfig
	Quantities  QuantitiesConfig
	Scale       map[string]*ScaleConfig
	Column      map[string]*ColumnConfig
	OpenFOAM    OpenFOAMConfig
}

// Default returns the configuration of the three-fin heat sink in a 5 x 1
// channel, with the zero-equation OpenFOAM reference export.
func Default() *Config {
	return &Config{
		HeatSink: HeatSinkConfig{
			X: -1, YStart: -0.3, FinThickness: 0.1,
			Fins: 3, Gap: 0.15 + 0.1, Length: 1.0,
		},
		Channel: ChannelConfig{XMin: -2.5, XMax: 2.5, YMin: -0.5, YMax: 0.5},
		Grid:    GridConfig{Resolution: 100},
		Temperature: TemperatureConfig{
			Quantity: "c", Scale: 273.15, Baseline: 293.498,
		},
		Plot: PlotConfig{
			Title:           "Heat sink 2D: PINN vs True Solution",
			Label:           "custom_plot",
			PredictedSource: "Modulus",
			ReferenceSource: "OpenFOAM",
			ColorMap:        "jet",
			Width:           20, Height: 10, DPI: 100,
		},
		Quantities: QuantitiesConfig{Name: []string{"p", "u", "v", "nu", "c"}},
		Scale: map[string]*ScaleConfig{
			"p":  {Min: -1, Max: 9},
			"u":  {Min: 0, Max: 2.2},
			"v":  {Min: -1.2, Max: 1.2},
			"nu": {Min: 0.01, Max: 0.04},
			"c":  {Min: 0, Max: 55},
		},
		Column: map[string]*ColumnConfig{
			"Points:0": {Name: "x"},
			"Points:1": {Name: "y"},
			"U:0":      {Name: "u"},
			"U:1":      {Name: "v"},
			"p":        {Name: "p"},
			"d":        {Name: "sdf"},
			"nuT":      {Name: "nu"},
			"T":        {Name: "c"},
		},
		OpenFOAM: OpenFOAMConfig{NuOffset: 0.01, Inputs: []string{"x", "y", "sdf"}},
	}
}

// Read loads fname on top of the defaults. Scale and column sections in the
// file replace the default tables, and quantity or input lists replace the
// default lists.
func Read(fname string) (*Config, error) {
	return read(func(c *Config) error { return gcfg.ReadFileInto(c, fname) }, fname)
}

// ReadString is Read for configuration text.
func ReadString(s string) (*Config, error) {
	return read(func(c *Config) error { return gcfg.ReadStringInto(c, s) }, "<string>")
}

func read(load func(*Config) error, name string) (*Config, error) {
	def := Default()

	// gcfg merges into maps and appends to lists, so those start empty and
	// fall back to the defaults only if the file leaves them unset.
	c := *def
	c.Quantities = QuantitiesConfig{}
	c.Scale, c.Column = nil, nil
	c.OpenFOAM.Inputs = nil

	if err := load(&c); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", name, err)
	}

	if len(c.Quantities.Name) == 0 {
		c.Quantities = def.Quantities
	}
	if len(c.OpenFOAM.Inputs) == 0 {
		c.OpenFOAM.Inputs = def.OpenFOAM.Inputs
	}
	if c.Scale == nil {
		c.Scale = def.Scale
	}
	if c.Column == nil {
		c.Column = def.Column
	}

	if err := c.CheckInit(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return &c, nil
}

// CheckInit validates every section.
func (c *Config) CheckInit() error {
	if err := c.HeatSink.FinSpec().Validate(); err != nil {
		return fmt.Errorf("[heatsink]: %w", err)
	}

	ch := c.Channel
	if !(ch.XMin < ch.XMax) || !(ch.YMin < ch.YMax) {
		return fmt.Errorf("[channel] x range [%g, %g] and y range [%g, %g] must be non-empty",
			ch.XMin, ch.XMax, ch.YMin, ch.YMax)
	}
	for j, r := range c.HeatSink.FinSpec().Rects() {
		if r.XMin < ch.XMin || r.XMax > ch.XMax || r.YMin < ch.YMin || r.YMax > ch.YMax {
			return fmt.Errorf("fin %d spans [%g, %g] x [%g, %g], outside the channel",
				j, r.XMin, r.XMax, r.YMin, r.YMax)
		}
	}

	if c.Grid.Resolution < 2 {
		return fmt.Errorf("[grid] resolution must be at least 2, but is %d", c.Grid.Resolution)
	}

	if c.Temperature.Scale == 0 {
		return fmt.Errorf("[temperature] scale must be non-zero")
	}

	if !(c.Plot.Width > 0 && c.Plot.Height > 0) {
		return fmt.Errorf("[plot] width and height must be positive, but are %g and %g",
			c.Plot.Width, c.Plot.Height)
	} else if c.Plot.DPI <= 0 {
		return fmt.Errorf("[plot] dpi must be positive, but is %d", c.Plot.DPI)
	} else if c.Plot.Label == "" {
		return fmt.Errorf("[plot] label must be set")
	}
	if _, err := validation.ColorMap(c.Plot.ColorMap); err != nil {
		return fmt.Errorf("[plot]: %w", err)
	}

	if len(c.Quantities.Name) == 0 {
		return fmt.Errorf("[quantities] must name at least one quantity")
	}
	seen := map[string]bool{}
	for _, q := range c.Quantities.Name {
		if seen[q] {
			return fmt.Errorf("[quantities] names %q twice", q)
		}
		seen[q] = true
	}

	if err := c.Scales().Check(); err != nil {
		return err
	}

	for col, cc := range c.Column {
		if strings.TrimSpace(cc.Name) == "" {
			return fmt.Errorf("[column %q] needs a name", col)
		}
	}
	return nil
}

// Scales returns the fixed colour ranges.
func (c *Config) Scales() validation.ScaleTable {
	t := validation.ScaleTable{}
	for q, sc := range c.Scale {
		t[q] = validation.FixedRange{Min: sc.Min, Max: sc.Max}
	}
	return t
}

// Columns returns the CSV column to variable renaming.
func (c *Config) Columns() map[string]string {
	m := make(map[string]string, len(c.Column))
	for col, cc := range c.Column {
		m[col] = cc.Name
	}
	return m
}

// TemperatureConversion returns the temperature conversion.
func (c *Config) TemperatureConversion() validation.Temperature {
	t := c.Temperature
	return validation.Temperature{
		Quantity: t.Quantity,
		Scale:    t.Scale,
		Baseline: t.Baseline,
		Absolute: t.Absolute,
	}
}

// Plotter assembles the validation plotter described by c.
func (c *Config) Plotter() *validation.Plotter {
	return &validation.Plotter{
		Quantities:  append([]string(nil), c.Quantities.Name...),
		Fins:        c.HeatSink.FinSpec(),
		Resolution:  c.Grid.Resolution,
		Temperature: c.TemperatureConversion(),
		Renderer: validation.Renderer{
			Layout: validation.Layout{
				Title:           c.Plot.Title,
				Label:           c.Plot.Label,
				PredictedSource: c.Plot.PredictedSource,
				ReferenceSource: c.Plot.ReferenceSource,
				ColorMap:        c.Plot.ColorMap,
				Width:           c.Plot.Width,
				Height:          c.Plot.Height,
				DPI:             c.Plot.DPI,
			},
			Scales: c.Scales(),
		},
	}
}
