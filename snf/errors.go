package snf

// Copyright (c) 2025 Colin McRae

import "errors"

var (
	// ErrDegenerateMatrix is returned by the pivot search when the region it is
	// asked to search is empty or entirely zero. Decompose checks for a zero
	// region before searching, so a caller of Decompose never sees this error
	// for a 0 x 0, r x 0, 0 x c or all-zero input.
	ErrDegenerateMatrix = errors.New("snf: no nonzero pivot in an empty or all-zero region")

	// ErrTransformNotInvertible indicates that an accumulated transform and its
	// tracked inverse do not multiply to the identity. The transforms are
	// products of unimodular elementary operations, so this is an internal
	// bookkeeping defect, not a problem with the input.
	ErrTransformNotInvertible = errors.New("snf: transform is not inverted by its tracked inverse")

	// ErrNotSmithForm indicates that a decomposition does not satisfy
	// P*A*Q = D with D in Smith normal form.
	ErrNotSmithForm = errors.New("snf: decomposition is not a Smith normal form of its input")
)
