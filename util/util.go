// Package util holds exact checks that are independent of the Smith normal form
// code, for use in verifying it.
package util

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// FractionFreeRank returns the rank of m over the rationals, computed by
// fraction-free (Bareiss) elimination to row echelon form. All divisions in the
// elimination are exact.
func FractionFreeRank(m *intmatrix.Matrix) (int, error) {
	rank, _, _, err := bareiss(m, "FractionFreeRank")
	return rank, err
}

// Determinant returns the determinant of the square matrix m. The determinant of
// a 0 x 0 matrix is 1.
func Determinant(m *intmatrix.Matrix) (*big.Int, error) {
	caller := "Determinant"
	if m.NumRows() != m.NumCols() {
		return nil, errors.Wrapf(
			intmatrix.ErrDimensionMismatch, "%s: %d x %d matrix is not square", caller, m.NumRows(), m.NumCols(),
		)
	}
	rank, lastPivot, numSwaps, err := bareiss(m, caller)
	if err != nil {
		return nil, err
	}
	if rank < m.NumRows() {
		return big.NewInt(0), nil
	}
	if numSwaps%2 == 1 {
		lastPivot.Neg(lastPivot)
	}
	return lastPivot, nil
}

// IsInversePair returns whether x y is the identity.
func IsInversePair(x, y *intmatrix.Matrix) (bool, error) {
	product, err := intmatrix.NewEmpty(0, 0).Mul(x, y)
	if err != nil {
		return false, errors.Wrapf(
			err, "IsInversePair: could not multiply x (%d x %d) by y (%d x %d)",
			x.NumRows(), x.NumCols(), y.NumRows(), y.NumCols(),
		)
	}
	return product.IsIdentity(), nil
}

// bareiss reduces a copy of m to row echelon form by fraction-free elimination.
// It returns the rank, the last pivot (which is the determinant up to sign when
// m is square and of full rank) and the number of row swaps.
func bareiss(m *intmatrix.Matrix, caller string) (int, *big.Int, int, error) {
	caller = fmt.Sprintf("%s-bareiss", caller)
	numRows, numCols := m.NumRows(), m.NumCols()
	a := make([][]*big.Int, numRows)
	for i := 0; i < numRows; i++ {
		a[i] = make([]*big.Int, numCols)
		for j := 0; j < numCols; j++ {
			entry, err := m.Get(i, j)
			if err != nil {
				return 0, nil, 0, errors.Wrapf(err, "%s: could not get m[%d][%d]", caller, i, j)
			}
			a[i][j] = entry
		}
	}

	rank, numSwaps := 0, 0
	previousPivot := big.NewInt(1)
	left, right := new(big.Int), new(big.Int)
	for col := 0; (col < numCols) && (rank < numRows); col++ {
		pivotRow := -1
		for i := rank; i < numRows; i++ {
			if a[i][col].Sign() != 0 {
				pivotRow = i
				break
			}
		}
		if pivotRow < 0 {
			continue
		}
		if pivotRow != rank {
			a[pivotRow], a[rank] = a[rank], a[pivotRow]
			numSwaps++
		}

		// Every entry below and to the right becomes a minor of m, so the
		// division by the previous pivot is exact.
		pivot := a[rank][col]
		for i := rank + 1; i < numRows; i++ {
			for j := col + 1; j < numCols; j++ {
				left.Mul(pivot, a[i][j])
				right.Mul(a[i][col], a[rank][j])
				a[i][j].Sub(left, right)
				a[i][j].Quo(a[i][j], previousPivot)
			}
			a[i][col].SetInt64(0)
		}
		previousPivot = pivot
		rank++
	}
	return rank, new(big.Int).Set(previousPivot), numSwaps, nil
}
