// Package openfoam loads point data exported from OpenFOAM (through
// ParaView's CSV writer) and network predictions stored the same way.
package openfoam

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mohammadijoo/heatsink_pinn_go/src/validation"
)

// Viscosity is the variable the turbulent viscosity column is mapped to.
const Viscosity = "nu"

// Dataset holds one value per sample point for every variable.
type Dataset struct {
	Invar  map[string][]float64 // coordinates and other network inputs
	Outvar map[string][]float64 // flow and temperature fields
	N      int                  // number of points
}

// Options describe how to turn CSV columns into a Dataset.
type Options struct {
	// Columns renames CSV columns to variables. Unlisted columns are
	// dropped. A nil map keeps every column under its header name.
	Columns map[string]string

	Inputs  []string // variables that go to Invar, must include x and y
	Outputs []string // variables that go to Outvar

	// Reference data only: NuOffset is the laminar viscosity added to the
	// turbulent one, and Temperature normalises the absolute temperature.
	NuOffset    float64
	Temperature validation.Temperature
}

// ReadCSV reads a CSV file with a header row into columns. Headers are
// trimmed of surrounding space before lookup in columns.
func ReadCSV(r io.Reader, columns map[string]string) (map[string][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("CSV read error: missing header row")
	} else if err != nil {
		return nil, fmt.Errorf("CSV read error: cannot read header: %w", err)
	}

	names := make([]string, len(header))
	vars := map[string][]float64{}
	for c, h := range header {
		h = strings.TrimSpace(h)
		name := h
		if columns != nil {
			var ok bool
			if name, ok = columns[h]; !ok {
				continue
			}
		}
		if _, dup := vars[name]; dup {
			return nil, fmt.Errorf("CSV read error: variable %q appears twice", name)
		}
		names[c] = name
		vars[name] = nil
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: line %d: %w", line, err)
		}
		for c, cell := range row {
			if names[c] == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("CSV read error: line %d, column %q: %w", line, header[c], err)
			}
			vars[names[c]] = append(vars[names[c]], v)
		}
	}
	return vars, nil
}

// ReadFile is ReadCSV for a named file.
func ReadFile(filename string, columns map[string]string) (map[string][]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("CSV read error: cannot open file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, columns)
}

// Split sorts vars into inputs and outputs. Every listed variable must be
// present; the rest are ignored.
func Split(vars map[string][]float64, inputs, outputs []string) (*Dataset, error) {
	ds := &Dataset{Invar: map[string][]float64{}, Outvar: map[string][]float64{}, N: -1}
	take := func(dst map[string][]float64, name string) error {
		v, ok := vars[name]
		if !ok {
			return fmt.Errorf("%w: no column for variable %q", validation.ErrInputShape, name)
		}
		if ds.N >= 0 && len(v) != ds.N {
			return fmt.Errorf("%w: variable %q has %d values, expected %d",
				validation.ErrInputShape, name, len(v), ds.N)
		}
		ds.N = len(v)
		dst[name] = v
		return nil
	}
	for _, name := range inputs {
		if err := take(ds.Invar, name); err != nil {
			return nil, err
		}
	}
	for _, name := range outputs {
		if err := take(ds.Outvar, name); err != nil {
			return nil, err
		}
	}
	if ds.N < 0 {
		ds.N = 0
	}
	return ds, nil
}

// LoadReference reads an OpenFOAM export, adds the laminar viscosity to nu,
// normalises the temperature and splits the variables.
func LoadReference(filename string, o Options) (*Dataset, error) {
	vars, err := ReadFile(filename, o.Columns)
	if err != nil {
		return nil, err
	}
	return Reference(vars, o)
}

// Reference applies the reference-data conversions of LoadReference to vars
// in place and splits them.
func Reference(vars map[string][]float64, o Options) (*Dataset, error) {
	if nu, ok := vars[Viscosity]; ok {
		for i := range nu {
			nu[i] += o.NuOffset
		}
	}
	if t := o.Temperature; t.Quantity != "" {
		if c, ok := vars[t.Quantity]; ok {
			if t.Scale == 0 {
				return nil, errors.New("temperature scale must be non-zero")
			}
			for i := range c {
				c[i] = t.Normalised(c[i])
			}
		}
	}
	return Split(vars, o.Inputs, o.Outputs)
}

// LoadPrediction reads predictions whose headers are already variable names.
// No conversions are applied.
func LoadPrediction(filename string, o Options) (*Dataset, error) {
	vars, err := ReadFile(filename, nil)
	if err != nil {
		return nil, err
	}
	return Split(vars, o.Inputs, o.Outputs)
}

// SamePoints checks that ds and other sample the same x, y coordinates, in
// the same order, to within tol.
func (ds *Dataset) SamePoints(other *Dataset, tol float64) error {
	if ds.N != other.N {
		return fmt.Errorf("%w: %d points but %d points", validation.ErrInputShape, ds.N, other.N)
	}
	for _, axis := range []string{"x", "y"} {
		a, b := ds.Invar[axis], other.Invar[axis]
		if len(a) != ds.N || len(b) != other.N {
			return fmt.Errorf("%w: missing %q coordinates", validation.ErrInputShape, axis)
		}
		for i := range a {
			if d := a[i] - b[i]; d > tol || d < -tol {
				return fmt.Errorf("%w: point %d differs in %s (%g vs %g)",
					validation.ErrInputShape, i, axis, a[i], b[i])
			}
		}
	}
	return nil
}
