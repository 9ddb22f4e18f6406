// Package homology computes the integer homology groups of a simplicial complex
// from the Smith normal forms of consecutive boundary operators.
package homology

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/predrag3141/simplicialhomology/intmatrix"
	"github.com/predrag3141/simplicialhomology/simplicial"
	"github.com/predrag3141/simplicialhomology/snf"
)

// Extractor computes homology groups. The zero value is not usable; use
// NewExtractor.
type Extractor struct {
	logger *zap.Logger
	verify bool
}

// NewExtractor returns an Extractor that logs nothing and does not verify
// decompositions, unless opts say otherwise.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute returns H_0,...,H_top of c using an Extractor configured by opts.
func Compute(c *simplicial.Complex, opts ...Option) ([]*Group, error) {
	return NewExtractor(opts...).Groups(c)
}

// Groups returns H_0,...,H_top of c, or the first error encountered. No groups
// are returned with an error.
func (e *Extractor) Groups(c *simplicial.Complex) ([]*Group, error) {
	operators, err := c.BoundaryOperators()
	if err != nil {
		return nil, errors.Wrapf(err, "Groups: could not build the boundary operators of %v", c)
	}
	retVal := make([]*Group, c.Dimension()+1)
	for k := range retVal {
		retVal[k], err = e.Group(k, operators[k], operators[k+1])
		if err != nil {
			return nil, err
		}
	}
	return retVal, nil
}

// Group returns H_k = ker(dk) / im(dk1), where dk: C_k -> C_{k-1} and
// dk1: C_{k+1} -> C_k are consecutive boundary operators with dk dk1 = 0.
//
// The cycle basis Z is the identity if dk is zero, and otherwise the columns of
// Q at indices rank,... from the Smith normal form P dk Q = D. The boundary
// basis B is made of the first rank columns of the P inverse from the Smith
// normal form of dk1, with the matching invariant factors as orders; the
// boundaries themselves are the multiples d_i b_i. Both bases are put in
// canonical form and matched by pivot row:
//
//   - a cycle with no boundary at its pivot row is a free generator;
//   - a cycle matched with a boundary of order 1 is dropped;
//   - a cycle matched with a boundary of order t > 1 contributes that boundary
//     column as a generator of order t.
//
// Matching is exact when the canonical bases have the same pivot value at each
// shared pivot row. Otherwise, including when Canonicalize reports
// ErrPivotCollision, the boundaries are written in the cycle basis and the
// result is read from the Smith normal form of that coordinate matrix.
func (e *Extractor) Group(k int, dk, dk1 *intmatrix.Matrix) (*Group, error) {
	caller := fmt.Sprintf("Group(%d)", k)
	if (dk == nil) || (dk1 == nil) {
		return nil, errors.Wrap(intmatrix.ErrNilMatrix, caller)
	}
	if dk.NumCols() != dk1.NumRows() {
		return nil, errors.Wrapf(
			intmatrix.ErrDimensionMismatch, "%s: d_%d is %d x %d but d_%d is %d x %d",
			caller, k, dk.NumRows(), dk.NumCols(), k+1, dk1.NumRows(), dk1.NumCols(),
		)
	}
	cycles, err := e.cycleBasis(dk, caller)
	if err != nil {
		return nil, err
	}
	var boundaries *intmatrix.Matrix
	var orders []*big.Int
	boundaries, orders, err = e.boundaryBasis(dk1, caller)
	if err != nil {
		return nil, err
	}

	var group *Group
	var aligned bool
	group, aligned, err = e.assemble(k, cycles, boundaries, orders, caller)
	if err != nil {
		return nil, err
	}

	e.logger.Debug(
		"computed homology group",
		zap.Int("dimension", k),
		zap.Int("chainRank", dk.NumCols()),
		zap.Int("cycleRank", cycles.NumCols()),
		zap.Int("boundaryRank", boundaries.NumCols()),
		zap.Int("betti", group.Betti()),
		zap.Strings("torsion", decimalStrings(group.TorsionCoefficients())),
		zap.Bool("aligned", aligned),
	)
	return group, nil
}

// assemble returns H_k given a basis of the cycles and the boundary basis with
// its orders, and whether the bases had to be aligned by a Smith normal form.
func (e *Extractor) assemble(
	k int, cycles, boundaries *intmatrix.Matrix, orders []*big.Int, caller string,
) (*Group, bool, error) {
	caller = fmt.Sprintf("%s-assemble", caller)
	canonicalCycles, _, err := Canonicalize(cycles, nil)
	if err != nil {
		return nil, false, errors.Wrapf(err, "%s: could not canonicalize the cycle basis", caller)
	}
	canonicalBoundaries, canonicalOrders, err := Canonicalize(boundaries, orders)
	switch {
	case err == nil:
		var group *Group
		group, err = matchByPivotRow(k, canonicalCycles, canonicalBoundaries, canonicalOrders, caller)
		if (err != nil) || (group != nil) {
			return group, false, err
		}
	case !errors.Is(err, ErrPivotCollision):
		return nil, false, errors.Wrapf(err, "%s: could not canonicalize the boundary basis", caller)
	}
	group, err := e.alignBases(k, canonicalCycles, boundaries, orders, caller)
	return group, true, err
}

// cycleBasis returns a basis of the kernel of dk, one cycle per column.
func (e *Extractor) cycleBasis(dk *intmatrix.Matrix, caller string) (*intmatrix.Matrix, error) {
	caller = fmt.Sprintf("%s-cycleBasis", caller)
	if dk.IsZero() {
		return intmatrix.NewIdentity(dk.NumCols()), nil
	}
	decomposition, err := e.decompose(dk, caller)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, dk.NumCols()-decomposition.Rank)
	for j := decomposition.Rank; j < dk.NumCols(); j++ {
		indices = append(indices, j)
	}
	var retVal *intmatrix.Matrix
	retVal, err = decomposition.Q.SelectColumns(indices)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not select the kernel columns of Q", caller)
	}
	return retVal, nil
}

// boundaryBasis returns the columns b_i of the P inverse of the Smith normal
// form of dk1 for i < rank, and the invariant factors d_i, so that the image of
// dk1 is spanned by the d_i b_i.
func (e *Extractor) boundaryBasis(dk1 *intmatrix.Matrix, caller string) (*intmatrix.Matrix, []*big.Int, error) {
	caller = fmt.Sprintf("%s-boundaryBasis", caller)
	if (dk1.NumCols() == 0) || dk1.IsZero() {
		return intmatrix.NewEmpty(dk1.NumRows(), 0), []*big.Int{}, nil
	}
	decomposition, err := e.decompose(dk1, caller)
	if err != nil {
		return nil, nil, err
	}
	if err = decomposition.CheckTransforms(); err != nil {
		return nil, nil, errors.Wrapf(err, "%s: transforms of the next boundary operator", caller)
	}
	indices := make([]int, decomposition.Rank)
	for i := range indices {
		indices[i] = i
	}
	var retVal *intmatrix.Matrix
	retVal, err = decomposition.PInverse.SelectColumns(indices)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s: could not select the image columns of P inverse", caller)
	}
	return retVal, decomposition.InvariantFactors(), nil
}

func (e *Extractor) decompose(a *intmatrix.Matrix, caller string) (*snf.Decomposition, error) {
	decomposition, err := snf.Decompose(a)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not decompose a %d x %d matrix", caller, a.NumRows(), a.NumCols())
	}
	if e.verify {
		if err = decomposition.Verify(a); err != nil {
			return nil, errors.Wrapf(err, "%s: decomposition failed verification", caller)
		}
	}
	return decomposition, nil
}

// matchByPivotRow assembles H_k from canonical cycle and boundary bases. It
// returns a nil group if the bases cannot be matched exactly.
func matchByPivotRow(
	k int, cycles, boundaries *intmatrix.Matrix, orders []*big.Int, caller string,
) (*Group, error) {
	caller = fmt.Sprintf("%s-matchByPivotRow", caller)
	cycleRows, err := PivotRows(cycles)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: cycle basis", caller)
	}
	var boundaryRows []int
	boundaryRows, err = PivotRows(boundaries)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: boundary basis", caller)
	}
	boundaryAt := make(map[int]int, len(boundaryRows))
	for j, row := range boundaryRows {
		if row < 0 {
			return nil, nil
		}
		boundaryAt[row] = j
	}

	generators := make([][]*big.Int, 0, len(cycleRows))
	groupOrders := make([]Order, 0, len(cycleRows))
	numMatched := 0
	for j, row := range cycleRows {
		if row < 0 {
			return nil, nil
		}
		boundaryCol, found := boundaryAt[row]
		if !found {
			var column []*big.Int
			column, err = cycles.Column(j)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: could not get cycle %d", caller, j)
			}
			generators = append(generators, column)
			groupOrders = append(groupOrders, Free())
			continue
		}
		numMatched++

		// With equal pivots, swapping the cycle for the boundary keeps a basis
		// of the cycle lattice.
		var cyclePivot, boundaryPivot *big.Int
		cyclePivot, err = cycles.Get(row, j)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not get the pivot of cycle %d", caller, j)
		}
		boundaryPivot, err = boundaries.Get(row, boundaryCol)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not get the pivot of boundary %d", caller, boundaryCol)
		}
		if cyclePivot.Cmp(boundaryPivot) != 0 {
			return nil, nil
		}
		if orders[boundaryCol].Cmp(big.NewInt(1)) == 0 {
			continue
		}
		var column []*big.Int
		column, err = boundaries.Column(boundaryCol)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not get boundary %d", caller, boundaryCol)
		}
		generators = append(generators, column)
		groupOrders = append(groupOrders, Torsion(orders[boundaryCol]))
	}
	if numMatched != len(boundaryRows) {
		return nil, nil
	}
	return newGroup(k, cycles.NumRows(), generators, groupOrders, caller)
}

// alignBases assembles H_k by solving Z X = [d_0 b_0, d_1 b_1, ...] and taking
// the Smith normal form U X V = E. The columns of Z U^-1 form a basis of the
// cycle lattice in which the boundaries are the multiples e_i of its first
// columns, so column i generates a summand of order e_i for i < rank (dropped
// when e_i = 1) and a free summand for i >= rank. cycles must be in column
// echelon form.
func (e *Extractor) alignBases(
	k int, cycles, boundaries *intmatrix.Matrix, orders []*big.Int, caller string,
) (*Group, error) {
	caller = fmt.Sprintf("%s-alignBases", caller)
	scaled := make([][]*big.Int, boundaries.NumCols())
	for j := range scaled {
		column, err := boundaries.Column(j)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not get boundary %d", caller, j)
		}
		for _, entry := range column {
			entry.Mul(entry, orders[j])
		}
		scaled[j] = column
	}
	coordinates, err := solveInBasis(cycles, scaled, caller)
	if err != nil {
		return nil, err
	}
	var decomposition *snf.Decomposition
	decomposition, err = e.decompose(coordinates, caller)
	if err != nil {
		return nil, err
	}
	var aligned *intmatrix.Matrix
	aligned, err = intmatrix.NewEmpty(0, 0).Mul(cycles, decomposition.PInverse)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not change the cycle basis", caller)
	}

	factors := decomposition.InvariantFactors()
	generators := make([][]*big.Int, 0, aligned.NumCols())
	groupOrders := make([]Order, 0, aligned.NumCols())
	for j := 0; j < aligned.NumCols(); j++ {
		order := Free()
		if j < len(factors) {
			if factors[j].Cmp(big.NewInt(1)) == 0 {
				continue
			}
			order = Torsion(factors[j])
		}
		var column []*big.Int
		column, err = aligned.Column(j)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not get aligned cycle %d", caller, j)
		}
		generators = append(generators, column)
		groupOrders = append(groupOrders, order)
	}
	return newGroup(k, cycles.NumRows(), generators, groupOrders, caller)
}

// solveInBasis returns X with basis X = [columns...], by forward substitution on
// the pivot rows of basis, which must be in column echelon form.
// ErrBoundaryNotCycle is returned if some column is not an integer combination
// of the columns of basis.
func solveInBasis(basis *intmatrix.Matrix, columns [][]*big.Int, caller string) (*intmatrix.Matrix, error) {
	caller = fmt.Sprintf("%s-solveInBasis", caller)
	pivotRows, err := PivotRows(basis)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: basis", caller)
	}
	basisColumns := make([][]*big.Int, basis.NumCols())
	for j := range basisColumns {
		if basisColumns[j], err = basis.Column(j); err != nil {
			return nil, errors.Wrapf(err, "%s: could not get basis column %d", caller, j)
		}
	}

	retVal := intmatrix.NewEmpty(basis.NumCols(), len(columns))
	coefficient := new(big.Int)
	remainder := new(big.Int)
	product := new(big.Int)
	for c, column := range columns {
		residual := make([]*big.Int, len(column))
		for i, entry := range column {
			residual[i] = new(big.Int).Set(entry)
		}
		for j, row := range pivotRows {
			if row < 0 {
				continue
			}
			coefficient.QuoRem(residual[row], basisColumns[j][row], remainder)
			if remainder.Sign() != 0 {
				return nil, errors.Wrapf(
					ErrBoundaryNotCycle, "%s: column %d is not an integer multiple of basis column %d at row %d",
					caller, c, j, row,
				)
			}
			if coefficient.Sign() == 0 {
				continue
			}
			if err = retVal.Set(j, c, coefficient); err != nil {
				return nil, errors.Wrapf(err, "%s: could not set X[%d][%d]", caller, j, c)
			}
			for i, basisEntry := range basisColumns[j] {
				residual[i].Sub(residual[i], product.Mul(coefficient, basisEntry))
			}
		}
		for i, entry := range residual {
			if entry.Sign() != 0 {
				return nil, errors.Wrapf(
					ErrBoundaryNotCycle, "%s: column %d leaves residual %v at row %d", caller, c, entry, i,
				)
			}
		}
	}
	return retVal, nil
}

func newGroup(k, numRows int, generators [][]*big.Int, orders []Order, caller string) (*Group, error) {
	matrix, err := intmatrix.NewFromColumns(numRows, generators)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not assemble the generators", caller)
	}
	return &Group{Dimension: k, Generators: matrix, Orders: orders}, nil
}

func decimalStrings(values []*big.Int) []string {
	retVal := make([]string, len(values))
	for i, value := range values {
		retVal[i] = value.String()
	}
	return retVal
}
