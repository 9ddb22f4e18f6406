// Package snf computes the Smith normal form of an integer matrix with exact
// arithmetic, together with the unimodular transforms that produce it and
// their inverses.
package snf

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// Decomposition is a Smith normal form P A Q = D of a matrix A.
//
//   - P (NumRows(A) square) and Q (NumCols(A) square) are unimodular.
//   - PInverse and QInverse are their exact inverses, accumulated from the
//     inverses of the elementary operations that built P and Q.
//   - D has the shape of A, is zero off the diagonal, has positive entries
//     d_0,...,d_{Rank-1} on the diagonal with d_i dividing d_{i+1}, and zeros
//     on the rest of the diagonal.
//   - Rank is the rank of A over the rationals, counted as the number of
//     nonzero diagonal entries of D.
type Decomposition struct {
	P        *intmatrix.Matrix
	PInverse *intmatrix.Matrix
	Q        *intmatrix.Matrix
	QInverse *intmatrix.Matrix
	D        *intmatrix.Matrix
	Rank     int
}

// Decompose returns the Smith normal form of a. a is not modified.
//
// Diagonal position k is filled by repeating, until the pivot divides every
// entry of the remaining sub-matrix:
//
//   - move an entry of least nonzero absolute value in rows k,... and columns
//     k,... to (k,k) and make it positive;
//   - subtract truncated multiples of row k from the rows below it, and start
//     over if any remainder is nonzero;
//   - subtract truncated multiples of column k from the columns to its right,
//     and start over if any remainder is nonzero;
//   - if an entry below and to the right of (k,k) is not divisible by the
//     pivot, add its row to row k and start over.
//
// Each pass either finishes position k or strictly lowers the least nonzero
// absolute value in the remaining sub-matrix, so the loop terminates. The
// outer loop stops as soon as the remaining sub-matrix is zero, which also
// covers 0 x 0, r x 0, 0 x c and all-zero inputs.
func Decompose(a *intmatrix.Matrix) (*Decomposition, error) {
	caller := "Decompose"
	if a == nil {
		return nil, errors.Wrap(intmatrix.ErrNilMatrix, caller)
	}
	tr := newTransformReducer(a)
	diagonalLen := a.NumRows()
	if a.NumCols() < diagonalLen {
		diagonalLen = a.NumCols()
	}
	for k := 0; k < diagonalLen; k++ {
		isZero, err := isZeroRegion(tr.b, k, k, caller)
		if err != nil {
			return nil, err
		}
		if isZero {
			break
		}
		if err = tr.reducePosition(k, caller); err != nil {
			return nil, errors.Wrapf(err, "%s: could not reduce diagonal position %d", caller, k)
		}
	}

	rank := 0
	for _, d := range tr.b.Diagonal() {
		if d.Sign() != 0 {
			rank++
		}
	}
	return &Decomposition{
		P:        tr.p,
		PInverse: tr.pInverse,
		Q:        tr.q,
		QInverse: tr.qInverse,
		D:        tr.b,
		Rank:     rank,
	}, nil
}

// InvariantFactors returns d_0,...,d_{Rank-1}.
func (d *Decomposition) InvariantFactors() []*big.Int {
	return d.D.Diagonal()[:d.Rank]
}

// reducePosition finishes diagonal position k of tr.b. The sub-matrix in rows
// k,... and columns k,... must not be zero.
func (tr *transformReducer) reducePosition(k int, caller string) error {
	caller = fmt.Sprintf("%s-reducePosition", caller)
	for {
		// Move an entry of least absolute value to (k,k) and make it positive
		i, j, err := minPivot(tr.b, k, caller)
		if err != nil {
			return err
		}
		if i != k {
			if err = tr.rowOp(NewSwap(k, i), caller); err != nil {
				return err
			}
		}
		if j != k {
			if err = tr.columnOp(NewSwap(k, j), caller); err != nil {
				return err
			}
		}
		var pivot *big.Int
		pivot, err = tr.b.Get(k, k)
		if err != nil {
			return errors.Wrapf(err, "%s: could not get the pivot", caller)
		}
		if pivot.Sign() < 0 {
			if err = tr.rowOp(NewNegate(k), caller); err != nil {
				return err
			}
			pivot.Neg(pivot)
		}

		// Clear column k below the pivot, then row k to its right. A nonzero
		// remainder is smaller than the pivot and becomes the next pivot.
		var cleared bool
		cleared, err = tr.clearColumn(k, pivot, caller)
		if err != nil {
			return err
		}
		if !cleared {
			continue
		}
		cleared, err = tr.clearRow(k, pivot, caller)
		if err != nil {
			return err
		}
		if !cleared {
			continue
		}

		// Position k is final once the pivot divides the rest of the matrix.
		var found bool
		i, found, err = firstNonDivisibleRow(tr.b, k, pivot, caller)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if err = tr.rowOp(NewAddMultiple(k, i, big.NewInt(1)), caller); err != nil {
			return err
		}
	}
}

// clearColumn subtracts truncated multiples of row k from each row below it and
// returns whether column k is zero below the pivot afterwards.
func (tr *transformReducer) clearColumn(k int, pivot *big.Int, caller string) (bool, error) {
	caller = fmt.Sprintf("%s-clearColumn", caller)
	cleared := true
	quotient := new(big.Int)
	remainder := new(big.Int)
	for i := k + 1; i < tr.b.NumRows(); i++ {
		bIK, err := tr.b.Get(i, k)
		if err != nil {
			return false, errors.Wrapf(err, "%s: could not get B[%d][%d]", caller, i, k)
		}
		if bIK.Sign() == 0 {
			continue
		}
		quotient.QuoRem(bIK, pivot, remainder)
		if quotient.Sign() != 0 {
			if err = tr.rowOp(NewAddMultiple(i, k, new(big.Int).Neg(quotient)), caller); err != nil {
				return false, err
			}
		}
		if remainder.Sign() != 0 {
			cleared = false
		}
	}
	return cleared, nil
}

// clearRow subtracts truncated multiples of column k from each column to its
// right and returns whether row k is zero to the right of the pivot afterwards.
func (tr *transformReducer) clearRow(k int, pivot *big.Int, caller string) (bool, error) {
	caller = fmt.Sprintf("%s-clearRow", caller)
	cleared := true
	quotient := new(big.Int)
	remainder := new(big.Int)
	for j := k + 1; j < tr.b.NumCols(); j++ {
		bKJ, err := tr.b.Get(k, j)
		if err != nil {
			return false, errors.Wrapf(err, "%s: could not get B[%d][%d]", caller, k, j)
		}
		if bKJ.Sign() == 0 {
			continue
		}
		quotient.QuoRem(bKJ, pivot, remainder)
		if quotient.Sign() != 0 {
			if err = tr.columnOp(NewAddMultiple(j, k, new(big.Int).Neg(quotient)), caller); err != nil {
				return false, err
			}
		}
		if remainder.Sign() != 0 {
			cleared = false
		}
	}
	return cleared, nil
}

// minPivot returns the position of an entry of least nonzero absolute value in
// rows k,... and columns k,... of b, scanning column by column and keeping the
// first strict minimum. It returns ErrDegenerateMatrix if that region is empty
// or zero.
func minPivot(b *intmatrix.Matrix, k int, caller string) (int, int, error) {
	caller = fmt.Sprintf("%s-minPivot", caller)
	if (k < 0) || (b.NumRows() <= k) || (b.NumCols() <= k) {
		return -1, -1, errors.Wrapf(
			ErrDegenerateMatrix, "%s: region from (%d,%d) of a %d x %d matrix is empty",
			caller, k, k, b.NumRows(), b.NumCols(),
		)
	}
	var minAbs *big.Int
	minI, minJ := -1, -1
	for j := k; j < b.NumCols(); j++ {
		for i := k; i < b.NumRows(); i++ {
			bIJ, err := b.Get(i, j)
			if err != nil {
				return -1, -1, errors.Wrapf(err, "%s: could not get B[%d][%d]", caller, i, j)
			}
			if bIJ.Sign() == 0 {
				continue
			}
			bIJ.Abs(bIJ)
			if (minAbs == nil) || (bIJ.Cmp(minAbs) < 0) {
				minAbs, minI, minJ = bIJ, i, j
			}
		}
	}
	if minAbs == nil {
		return -1, -1, errors.Wrapf(
			ErrDegenerateMatrix, "%s: region from (%d,%d) of a %d x %d matrix is zero",
			caller, k, k, b.NumRows(), b.NumCols(),
		)
	}
	return minI, minJ, nil
}

// firstNonDivisibleRow returns the row of the first entry, scanning rows k+1,...
// and columns k+1,... column by column, that pivot does not divide.
func firstNonDivisibleRow(b *intmatrix.Matrix, k int, pivot *big.Int, caller string) (int, bool, error) {
	caller = fmt.Sprintf("%s-firstNonDivisibleRow", caller)
	remainder := new(big.Int)
	for j := k + 1; j < b.NumCols(); j++ {
		for i := k + 1; i < b.NumRows(); i++ {
			bIJ, err := b.Get(i, j)
			if err != nil {
				return -1, false, errors.Wrapf(err, "%s: could not get B[%d][%d]", caller, i, j)
			}
			if remainder.Rem(bIJ, pivot).Sign() != 0 {
				return i, true, nil
			}
		}
	}
	return -1, false, nil
}

// isZeroRegion returns whether rows i0,... and columns j0,... of b are all zero.
// An empty region is zero.
func isZeroRegion(b *intmatrix.Matrix, i0, j0 int, caller string) (bool, error) {
	caller = fmt.Sprintf("%s-isZeroRegion", caller)
	for i := i0; i < b.NumRows(); i++ {
		for j := j0; j < b.NumCols(); j++ {
			sign, err := b.Sign(i, j)
			if err != nil {
				return false, errors.Wrapf(err, "%s: could not get B[%d][%d]", caller, i, j)
			}
			if sign != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}
