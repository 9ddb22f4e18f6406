package simplicial

// Copyright (c) 2025 Colin McRae

import "errors"

var (
	// ErrMalformedComplex is returned when a simplex has the wrong number of
	// vertices, repeats a vertex, duplicates another simplex, or has a face that
	// is missing from the basis one dimension down.
	ErrMalformedComplex = errors.New("simplicial: malformed complex")

	// ErrDimensionOutOfRange is returned when a dimension outside the complex
	// is requested.
	ErrDimensionOutOfRange = errors.New("simplicial: dimension out of range")
)
