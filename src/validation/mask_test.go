package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeFins = FinSpec{X: -1, StartY: -0.3, Thickness: 0.1, Fins: 3, Gap: 0.25, Length: 1.0}

func TestFinSpecContains(t *testing.T) {
	tests := []struct {
		x, y float64
		in   bool
	}{
		{-0.5, -0.25, true}, // first fin
		{-0.5, -0.1, false}, // between the first and second fin
		{-0.5, 0.0, true},   // second fin spans [-0.05, 0.05]
		{-0.5, 0.1, false},  // between the second and third fin
		{-0.5, 0.25, true},  // third fin
		{-0.5, 0.35, false}, // above the heat sink
		{-1.0, -0.3, true},  // corner, bounds are inclusive
		{0.0, -0.2, true},   // opposite corner
		{-1.01, -0.25, false},
		{0.01, -0.25, false},
	}

	for i, test := range tests {
		assert.Equal(t, test.in, threeFins.Contains(test.x, test.y),
			"%d) Contains(%g, %g)", i, test.x, test.y)
	}
}

func TestFinSpecInterior(t *testing.T) {
	tests := []struct {
		x, y     float64
		interior bool
	}{
		{-0.5, -0.25, true},
		{-0.5, 0.0, true},
		{-1.0, -0.25, false}, // left wall
		{0.0, 0.25, false},   // tip of the third fin
		{-0.5, -0.3, false},  // bottom wall of the first fin
		{-1.0, -0.3, false},  // corner
		{-0.5, -0.1, false},
	}

	for i, test := range tests {
		assert.Equal(t, test.interior, threeFins.Interior(test.x, test.y),
			"%d) Interior(%g, %g)", i, test.x, test.y)
		if test.interior {
			assert.True(t, threeFins.Contains(test.x, test.y), "%d) interior implies contained", i)
		}
	}
}

func TestFinSpecRects(t *testing.T) {
	rects := threeFins.Rects()
	require.Len(t, rects, 3)
	for j, r := range rects {
		assert.Equal(t, -1.0, r.XMin)
		assert.Equal(t, 0.0, r.XMax)
		assert.InDelta(t, -0.3+0.25*float64(j), r.YMin, 1e-12)
		assert.InDelta(t, r.YMin+0.1, r.YMax, 1e-12)
	}
	assert.Empty(t, FinSpec{Thickness: 1, Gap: 1, Length: 1}.Rects())
}

func TestFinSpecValidate(t *testing.T) {
	tests := []struct {
		fs FinSpec
		ok bool
	}{
		{threeFins, true},
		{FinSpec{Thickness: 0.1, Gap: 0.2, Length: 1}, true},
		{FinSpec{Fins: -1, Thickness: 0.1, Gap: 0.2, Length: 1}, false},
		{FinSpec{Fins: 2, Thickness: 0, Gap: 0.2, Length: 1}, false},
		{FinSpec{Fins: 2, Thickness: 0.1, Gap: -0.2, Length: 1}, false},
		{FinSpec{Fins: 2, Thickness: 0.1, Gap: 0.2, Length: 0}, false},
		{FinSpec{Fins: 2, Thickness: math.NaN(), Gap: 0.2, Length: 1}, false},
	}

	for i, test := range tests {
		err := test.fs.Validate()
		if test.ok {
			assert.NoError(t, err, "%d) %+v", i, test.fs)
		} else {
			assert.ErrorIs(t, err, ErrDegenerateGeometry, "%d) %+v", i, test.fs)
		}
	}
}

func TestNewMask(t *testing.T) {
	// x nodes: -1, -0.5, 0, 0.5; y nodes: -0.35, -0.25, -0.15, -0.05 (approx.)
	g, err := NewGrid(Extent{XMin: -1, XMax: 0.5, YMin: -0.35, YMax: -0.05}, 4, 4)
	require.NoError(t, err)
	m, err := NewMask(g, threeFins)
	require.NoError(t, err)

	assert.True(t, m.Masked(1, 1), "(-0.5, -0.25) is inside the first fin")
	assert.True(t, m.Masked(0, 1), "(-1, -0.25) is on the fin edge")
	assert.False(t, m.Masked(1, 0), "(-0.5, -0.35) is below the heat sink")
	assert.False(t, m.Masked(1, 2), "(-0.5, -0.15) is in the gap")
	assert.False(t, m.Masked(3, 1), "(0.5, -0.25) is past the fin tips")

	_, err = NewMask(g, FinSpec{Fins: 1})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestMaskMonotonicInFins(t *testing.T) {
	g, err := NewGrid(Extent{XMin: -2.5, XMax: 2.5, YMin: -0.5, YMax: 0.5}, 80, 40)
	require.NoError(t, err)

	var prev *Mask
	for n := 0; n <= 5; n++ {
		fs := threeFins
		fs.Fins = n
		m, err := NewMask(g, fs)
		require.NoError(t, err)
		if prev != nil {
			for k := range m.Cell {
				if prev.Cell[k] && !m.Cell[k] {
					t.Fatalf("node %d is masked with %d fins but not with %d", k, n-1, n)
				}
			}
			assert.GreaterOrEqual(t, m.Count(), prev.Count())
		}
		prev = m
	}
	assert.Greater(t, prev.Count(), 0)
}

func TestMaskApply(t *testing.T) {
	g, err := NewGrid(Extent{XMin: -1, XMax: 0.5, YMin: -0.35, YMax: -0.05}, 4, 4)
	require.NoError(t, err)
	m, err := NewMask(g, threeFins)
	require.NoError(t, err)

	pred, ref := NewField(g), NewField(g)
	for k := range pred.Data {
		pred.Data[k], ref.Data[k] = 1, 2
	}
	require.NoError(t, m.Apply(pred, ref))

	for k, c := range m.Cell {
		assert.Equal(t, c, math.IsNaN(pred.Data[k]), "predicted node %d", k)
		assert.Equal(t, c, math.IsNaN(ref.Data[k]), "reference node %d", k)
	}
	assert.Equal(t, m.Count(), pred.Undefined())

	small, err := NewGrid(Extent{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, 2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Apply(NewField(small)), ErrInputShape)
}
