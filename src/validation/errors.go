package validation

import "errors"

var (
	// ErrInputShape reports mismatched array lengths or missing fields.
	ErrInputShape = errors.New("validation: input shape")

	// ErrDegenerateGeometry reports an extent with zero width or height, or a
	// point set with fewer than three non-collinear points.
	ErrDegenerateGeometry = errors.New("validation: degenerate geometry")

	// ErrRendering reports an unusable colour scale.
	ErrRendering = errors.New("validation: rendering")
)
