package intmatrix

// Copyright (c) 2025 Colin McRae

import "errors"

// Sentinel errors returned (wrapped with caller context) by this package.
// Match them with errors.Is.
var (
	// ErrBadShape is returned when a requested shape has a negative dimension
	// or does not agree with the number of entries supplied.
	ErrBadShape = errors.New("intmatrix: invalid shape")

	// ErrOutOfRange is returned when a row or column index is outside the matrix.
	ErrOutOfRange = errors.New("intmatrix: index out of range")

	// ErrDimensionMismatch is returned when operands have incompatible shapes.
	ErrDimensionMismatch = errors.New("intmatrix: dimension mismatch")

	// ErrOverflow is returned when an entry does not fit in an int64.
	ErrOverflow = errors.New("intmatrix: entry does not fit in int64")

	// ErrNilMatrix is returned when a nil matrix is passed as an operand.
	ErrNilMatrix = errors.New("intmatrix: nil matrix")

	// ErrSelfCombination is returned when a row or column would be combined
	// with itself, which is not an elementary unimodular operation.
	ErrSelfCombination = errors.New("intmatrix: row or column combined with itself")
)
