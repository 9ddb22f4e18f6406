package homology

// Copyright (c) 2025 Colin McRae

import "errors"

var (
	// ErrPivotCollision is returned by Canonicalize when the order restrictions
	// on column combinations leave two columns with the same pivot row.
	ErrPivotCollision = errors.New("homology: pivot rows collide under order restrictions")

	// ErrBoundaryNotCycle indicates that a boundary is not an integer
	// combination of the cycle basis, which ∂∂ = 0 rules out for a correctly
	// built complex.
	ErrBoundaryNotCycle = errors.New("homology: boundary is not in the cycle lattice")
)
