package homology

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// Canonicalize returns a column echelon form of m together with the orders of
// its columns, leaving m and orders unmodified. In the result
//
//   - the pivot row (topmost nonzero row) of each column is strictly below the
//     pivot row of the column before it, and zero columns come last;
//   - every pivot is positive;
//   - in the pivot row of each column, the entries of the columns before it
//     lie in [0, pivot) wherever column operations allowed the reduction.
//
// orders, if not nil, holds one positive order per column of m. Multiples of
// column i are then added to column j only when orders[i] divides orders[j],
// and column j keeps its order; the result orders are the input orders,
// permuted with their columns. With nil orders every combination is allowed,
// the result is the Hermite normal form of the column lattice and the returned
// orders are nil.
//
// ErrPivotCollision is returned when the order restrictions leave two columns
// sharing a pivot row. Canonicalize is idempotent: applied to its own output it
// returns that output.
func Canonicalize(m *intmatrix.Matrix, orders []*big.Int) (*intmatrix.Matrix, []*big.Int, error) {
	caller := "Canonicalize"
	if m == nil {
		return nil, nil, errors.Wrap(intmatrix.ErrNilMatrix, caller)
	}
	if (orders != nil) && (len(orders) != m.NumCols()) {
		return nil, nil, errors.Wrapf(
			intmatrix.ErrDimensionMismatch, "%s: %d orders for %d columns", caller, len(orders), m.NumCols(),
		)
	}
	cr := newColumnReducer(m, orders)
	next := 0
	for row := 0; (row < m.NumRows()) && (next < m.NumCols()); row++ {
		pivotCol, err := cr.reduceRow(row, next, caller)
		if err != nil {
			return nil, nil, err
		}
		if pivotCol < 0 {
			continue
		}
		if err = cr.placePivot(row, pivotCol, next, caller); err != nil {
			return nil, nil, err
		}
		next++
	}
	return cr.m, cr.orders, nil
}

// PivotRows returns the topmost nonzero row of each column of m, or -1 for a
// zero column.
func PivotRows(m *intmatrix.Matrix) ([]int, error) {
	retVal := make([]int, m.NumCols())
	for j := range retVal {
		row, err := m.LeadingRow(j)
		if err != nil {
			return nil, errors.Wrapf(err, "PivotRows: could not find the pivot row of column %d", j)
		}
		retVal[j] = row
	}
	return retVal, nil
}

// columnReducer applies column operations to m while keeping orders, if not
// nil, attached to their columns.
type columnReducer struct {
	m      *intmatrix.Matrix
	orders []*big.Int
}

func newColumnReducer(m *intmatrix.Matrix, orders []*big.Int) *columnReducer {
	cr := &columnReducer{m: m.Clone()}
	if orders != nil {
		cr.orders = make([]*big.Int, len(orders))
		for j, order := range orders {
			cr.orders[j] = new(big.Int).Set(order)
		}
	}
	return cr
}

// canAbsorb returns whether multiples of column src may be added to column dst.
func (cr *columnReducer) canAbsorb(src, dst int) bool {
	if cr.orders == nil {
		return true
	}
	return new(big.Int).Rem(cr.orders[dst], cr.orders[src]).Sign() == 0
}

func (cr *columnReducer) sameOrder(i, j int) bool {
	return (cr.orders == nil) || (cr.orders[i].Cmp(cr.orders[j]) == 0)
}

// precedes returns whether column i, whose entry in the current row has
// absolute value absI, is a better pivot than column j. Smaller orders come
// first, then smaller absolute values, then smaller indices.
func (cr *columnReducer) precedes(i int, absI *big.Int, j int, absJ *big.Int) bool {
	if cr.orders != nil {
		if cmp := cr.orders[i].Cmp(cr.orders[j]); cmp != 0 {
			return cmp < 0
		}
	}
	if cmp := absI.Cmp(absJ); cmp != 0 {
		return cmp < 0
	}
	return i < j
}

// reduceRow runs a Euclidean reduction on the entries in the given row of
// columns next,... until a single nonzero entry is left, and returns its
// column. It returns -1 if all of those entries are zero.
func (cr *columnReducer) reduceRow(row, next int, caller string) (int, error) {
	caller = fmt.Sprintf("%s-reduceRow", caller)
	quotient := new(big.Int)
	for {
		pivotCol := -1
		var pivotAbs *big.Int
		for j := next; j < cr.m.NumCols(); j++ {
			entry, err := cr.m.Get(row, j)
			if err != nil {
				return -1, errors.Wrapf(err, "%s: could not get M[%d][%d]", caller, row, j)
			}
			if entry.Sign() == 0 {
				continue
			}
			entry.Abs(entry)
			if (pivotCol < 0) || cr.precedes(j, entry, pivotCol, pivotAbs) {
				pivotCol, pivotAbs = j, entry
			}
		}
		if pivotCol < 0 {
			return -1, nil
		}
		pivot, err := cr.m.Get(row, pivotCol)
		if err != nil {
			return -1, errors.Wrapf(err, "%s: could not get the pivot", caller)
		}

		// Each remainder is smaller than the pivot. A remainder in a column
		// with the pivot's order becomes the next pivot; any other remainder
		// cannot be reduced further.
		remaining, sameOrderRemaining := false, false
		for j := next; j < cr.m.NumCols(); j++ {
			if j == pivotCol {
				continue
			}
			var entry *big.Int
			entry, err = cr.m.Get(row, j)
			if err != nil {
				return -1, errors.Wrapf(err, "%s: could not get M[%d][%d]", caller, row, j)
			}
			if entry.Sign() == 0 {
				continue
			}
			if cr.canAbsorb(pivotCol, j) {
				quotient.Quo(entry, pivot)
				if quotient.Sign() != 0 {
					if err = cr.m.AddColumnMultiple(j, pivotCol, new(big.Int).Neg(quotient)); err != nil {
						return -1, errors.Wrapf(err, "%s: could not reduce column %d", caller, j)
					}
				}
				if entry.Sub(entry, quotient.Mul(quotient, pivot)).Sign() == 0 {
					continue
				}
			}
			remaining = true
			if cr.sameOrder(pivotCol, j) {
				sameOrderRemaining = true
			}
		}
		if !remaining {
			return pivotCol, nil
		}
		if !sameOrderRemaining {
			return -1, errors.Wrapf(
				ErrPivotCollision, "%s: row %d stays nonzero in column %d (order %v) and another column",
				caller, row, pivotCol, cr.orders[pivotCol],
			)
		}
	}
}

// placePivot moves pivotCol to position next, makes its entry in row positive
// and reduces the entries in row of the columns before it.
func (cr *columnReducer) placePivot(row, pivotCol, next int, caller string) error {
	caller = fmt.Sprintf("%s-placePivot", caller)
	if pivotCol != next {
		if err := cr.m.SwapColumns(pivotCol, next); err != nil {
			return errors.Wrapf(err, "%s: could not swap columns %d and %d", caller, pivotCol, next)
		}
		if cr.orders != nil {
			cr.orders[pivotCol], cr.orders[next] = cr.orders[next], cr.orders[pivotCol]
		}
	}
	pivot, err := cr.m.Get(row, next)
	if err != nil {
		return errors.Wrapf(err, "%s: could not get the pivot", caller)
	}
	if pivot.Sign() < 0 {
		if err = cr.m.NegateColumn(next); err != nil {
			return errors.Wrapf(err, "%s: could not negate column %d", caller, next)
		}
		pivot.Neg(pivot)
	}

	// big.Int.Div is Euclidean, so with a positive pivot the reduced entries
	// land in [0, pivot).
	quotient := new(big.Int)
	for j := 0; j < next; j++ {
		if !cr.canAbsorb(next, j) {
			continue
		}
		var entry *big.Int
		entry, err = cr.m.Get(row, j)
		if err != nil {
			return errors.Wrapf(err, "%s: could not get M[%d][%d]", caller, row, j)
		}
		if quotient.Div(entry, pivot).Sign() == 0 {
			continue
		}
		if err = cr.m.AddColumnMultiple(j, next, quotient.Neg(quotient)); err != nil {
			return errors.Wrapf(err, "%s: could not reduce column %d", caller, j)
		}
	}
	return nil
}
