package snf

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// Verify checks every property of d as a Smith normal form of a:
//
//   - P A Q = D exactly, with the shapes of a;
//   - D is diagonal, d_i > 0 exactly for i < Rank, and d_i divides d_{i+1};
//   - P PInverse = I and Q QInverse = I.
//
// A failure of the first two is ErrNotSmithForm; a failure of the last is
// ErrTransformNotInvertible.
func (d *Decomposition) Verify(a *intmatrix.Matrix) error {
	caller := "Verify"
	if a == nil {
		return errors.Wrap(intmatrix.ErrNilMatrix, caller)
	}
	numRows, numCols := a.NumRows(), a.NumCols()
	if (d.P.NumRows() != numRows) || (d.P.NumCols() != numRows) ||
		(d.Q.NumRows() != numCols) || (d.Q.NumCols() != numCols) ||
		(d.D.NumRows() != numRows) || (d.D.NumCols() != numCols) {
		return errors.Wrapf(
			ErrNotSmithForm, "%s: shapes P %dx%d, D %dx%d, Q %dx%d do not fit a %dx%d input", caller,
			d.P.NumRows(), d.P.NumCols(), d.D.NumRows(), d.D.NumCols(), d.Q.NumRows(), d.Q.NumCols(),
			numRows, numCols,
		)
	}

	// P A Q = D
	pa, err := intmatrix.NewEmpty(0, 0).Mul(d.P, a)
	if err != nil {
		return errors.Wrapf(err, "%s: could not multiply P by A", caller)
	}
	var paq *intmatrix.Matrix
	paq, err = intmatrix.NewEmpty(0, 0).Mul(pa, d.Q)
	if err != nil {
		return errors.Wrapf(err, "%s: could not multiply PA by Q", caller)
	}
	if !paq.Equals(d.D) {
		return errors.Wrapf(ErrNotSmithForm, "%s: P A Q != D", caller)
	}

	// Shape of D
	if !d.D.IsDiagonal() {
		return errors.Wrapf(ErrNotSmithForm, "%s: D is not diagonal", caller)
	}
	diagonal := d.D.Diagonal()
	remainder := new(big.Int)
	for i, dI := range diagonal {
		if (i < d.Rank) && (dI.Sign() <= 0) {
			return errors.Wrapf(ErrNotSmithForm, "%s: D[%d][%d] = %v is not positive", caller, i, i, dI)
		}
		if (i >= d.Rank) && (dI.Sign() != 0) {
			return errors.Wrapf(
				ErrNotSmithForm, "%s: D[%d][%d] = %v is beyond rank %d", caller, i, i, dI, d.Rank,
			)
		}
		if (0 < i) && (i < d.Rank) && (remainder.Rem(dI, diagonal[i-1]).Sign() != 0) {
			return errors.Wrapf(
				ErrNotSmithForm, "%s: D[%d][%d] = %v does not divide D[%d][%d] = %v",
				caller, i-1, i-1, diagonal[i-1], i, i, dI,
			)
		}
	}
	return d.CheckTransforms()
}

// CheckTransforms returns ErrTransformNotInvertible unless P PInverse and
// Q QInverse are identities.
func (d *Decomposition) CheckTransforms() error {
	caller := "CheckTransforms"
	for _, pair := range []struct {
		name       string
		x, inverse *intmatrix.Matrix
	}{
		{"P", d.P, d.PInverse},
		{"Q", d.Q, d.QInverse},
	} {
		if err := checkInversePair(pair.x, pair.inverse, fmt.Sprintf("%s(%s)", caller, pair.name)); err != nil {
			return err
		}
	}
	return nil
}

func checkInversePair(x, inverse *intmatrix.Matrix, caller string) error {
	product, err := intmatrix.NewEmpty(0, 0).Mul(x, inverse)
	if err != nil {
		return errors.Wrapf(
			ErrTransformNotInvertible, "%s: %dx%d transform and %dx%d inverse cannot be multiplied: %v",
			caller, x.NumRows(), x.NumCols(), inverse.NumRows(), inverse.NumCols(), err,
		)
	}
	if !product.IsIdentity() {
		return errors.Wrapf(
			ErrTransformNotInvertible, "%s: product of the %dx%d transform and its inverse is\n%v",
			caller, x.NumRows(), x.NumCols(), product,
		)
	}
	return nil
}
