package snf

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// OperationKind identifies one of the three elementary unimodular operations.
type OperationKind int

const (
	// Swap exchanges rows (or columns) Indices[0] and Indices[1].
	Swap OperationKind = iota

	// Negate multiplies row (or column) Indices[0] by -1.
	Negate

	// AddMultiple adds Multiple times row (or column) Indices[1] to row (or
	// column) Indices[0].
	AddMultiple
)

func (k OperationKind) String() string {
	switch k {
	case Swap:
		return "swap"
	case Negate:
		return "negate"
	case AddMultiple:
		return "addMultiple"
	}
	return fmt.Sprintf("OperationKind(%d)", int(k))
}

// IntOperation is an elementary unimodular operation that can act on the rows
// of a matrix (left multiplication) or on its columns (right multiplication).
//
// As a row operation on an n-row matrix, an IntOperation is left multiplication
// by the n x n matrix E below. As a column operation on an n-column matrix it
// is right multiplication by the n x n matrix F.
//
//   - Swap(i, j): E = F = the identity with rows i and j exchanged
//   - Negate(i): E = F = the identity with -1 in position (i,i)
//   - AddMultiple(dst, src, c): E = I + c e_dst e_src^T, F = I + c e_src e_dst^T
type IntOperation struct {
	Kind     OperationKind
	Indices  []int
	Multiple *big.Int // nil unless Kind is AddMultiple
}

// NewSwap returns the operation exchanging i and j.
func NewSwap(i, j int) *IntOperation {
	return &IntOperation{Kind: Swap, Indices: []int{i, j}}
}

// NewNegate returns the operation negating i.
func NewNegate(i int) *IntOperation {
	return &IntOperation{Kind: Negate, Indices: []int{i}}
}

// NewAddMultiple returns the operation adding multiple times src to dst.
func NewAddMultiple(dst, src int, multiple *big.Int) *IntOperation {
	return &IntOperation{
		Kind: AddMultiple, Indices: []int{dst, src}, Multiple: new(big.Int).Set(multiple),
	}
}

// isPermutation returns whether op only permutes rows or columns.
func (op *IntOperation) isPermutation() bool {
	return op.Kind == Swap
}

// transposedInverse returns the operation whose row (column) action is the
// column (row) action of the inverse of op. Right-multiplying by E^-1, where E
// is the row matrix of op, is the column action of op.transposedInverse(), and
// left-multiplying by F^-1 is its row action.
func (op *IntOperation) transposedInverse() *IntOperation {
	if op.Kind != AddMultiple {
		return op
	}
	return &IntOperation{
		Kind:     AddMultiple,
		Indices:  []int{op.Indices[1], op.Indices[0]},
		Multiple: new(big.Int).Neg(op.Multiple),
	}
}

// performRowOp replaces m with E m, E being the row matrix of op.
func (op *IntOperation) performRowOp(m *intmatrix.Matrix, caller string) error {
	caller = fmt.Sprintf("%s-performRowOp", caller)
	if err := op.validate(caller); err != nil {
		return err
	}
	var err error
	switch op.Kind {
	case Swap:
		err = m.SwapRows(op.Indices[0], op.Indices[1])
	case Negate:
		err = m.NegateRow(op.Indices[0])
	case AddMultiple:
		err = m.AddRowMultiple(op.Indices[0], op.Indices[1], op.Multiple)
	}
	if err != nil {
		return errors.Wrapf(err, "%s: could not %v rows %v", caller, op.Kind, op.Indices)
	}
	return nil
}

// performColumnOp replaces m with m F, F being the column matrix of op.
func (op *IntOperation) performColumnOp(m *intmatrix.Matrix, caller string) error {
	caller = fmt.Sprintf("%s-performColumnOp", caller)
	if err := op.validate(caller); err != nil {
		return err
	}
	var err error
	switch op.Kind {
	case Swap:
		err = m.SwapColumns(op.Indices[0], op.Indices[1])
	case Negate:
		err = m.NegateColumn(op.Indices[0])
	case AddMultiple:
		err = m.AddColumnMultiple(op.Indices[0], op.Indices[1], op.Multiple)
	}
	if err != nil {
		return errors.Wrapf(err, "%s: could not %v columns %v", caller, op.Kind, op.Indices)
	}
	return nil
}

func (op *IntOperation) validate(caller string) error {
	expectedIndices := 2
	if op.Kind == Negate {
		expectedIndices = 1
	}
	if len(op.Indices) != expectedIndices {
		return fmt.Errorf("%s: %v needs %d indices, got %v", caller, op.Kind, expectedIndices, op.Indices)
	}
	if (op.Kind == AddMultiple) && (op.Multiple == nil) {
		return fmt.Errorf("%s: %v has no multiple", caller, op.Kind)
	}
	return nil
}

// transformReducer holds a working matrix B together with the transforms that
// produced it from the input A, maintaining
//
//	P A Q = B,  P pInverse = I,  Q qInverse = I
//
// after every operation.
type transformReducer struct {
	b        *intmatrix.Matrix
	p        *intmatrix.Matrix
	pInverse *intmatrix.Matrix
	q        *intmatrix.Matrix
	qInverse *intmatrix.Matrix
}

func newTransformReducer(a *intmatrix.Matrix) *transformReducer {
	return &transformReducer{
		b:        a.Clone(),
		p:        intmatrix.NewIdentity(a.NumRows()),
		pInverse: intmatrix.NewIdentity(a.NumRows()),
		q:        intmatrix.NewIdentity(a.NumCols()),
		qInverse: intmatrix.NewIdentity(a.NumCols()),
	}
}

// rowOp applies E to B and P on the left and E^-1 to pInverse on the right.
func (tr *transformReducer) rowOp(op *IntOperation, caller string) error {
	caller = fmt.Sprintf("%s-rowOp", caller)
	if err := op.performRowOp(tr.b, caller); err != nil {
		return err
	}
	if err := op.performRowOp(tr.p, caller); err != nil {
		return err
	}
	return op.transposedInverse().performColumnOp(tr.pInverse, caller)
}

// columnOp applies F to B and Q on the right and F^-1 to qInverse on the left.
func (tr *transformReducer) columnOp(op *IntOperation, caller string) error {
	caller = fmt.Sprintf("%s-columnOp", caller)
	if err := op.performColumnOp(tr.b, caller); err != nil {
		return err
	}
	if err := op.performColumnOp(tr.q, caller); err != nil {
		return err
	}
	return op.transposedInverse().performRowOp(tr.qInverse, caller)
}
