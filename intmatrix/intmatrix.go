package intmatrix

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is a dense matrix of arbitrary-precision integers, stored in row-major
// order. Either dimension may be zero, so 0 x n and n x 0 matrices are legal and
// represent maps to or from the zero group.
type Matrix struct {
	numRows int
	numCols int
	cells   []*big.Int
}

// NewEmpty returns a numRows x numCols matrix of zeros. A negative dimension is
// treated as zero.
func NewEmpty(numRows, numCols int) *Matrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	return &Matrix{numRows: numRows, numCols: numCols, cells: newCells(numRows * numCols)}
}

// NewIdentity returns the dim x dim identity matrix.
func NewIdentity(dim int) *Matrix {
	retVal := NewEmpty(dim, dim)
	for i := 0; i < retVal.numRows; i++ {
		retVal.cells[i*retVal.numCols+i].SetInt64(1)
	}
	return retVal
}

// NewFromInt64Array returns a numRows x numCols matrix whose entries are taken
// from entries in row-major order.
func NewFromInt64Array(entries []int64, numRows, numCols int) (*Matrix, error) {
	if (numRows < 0) || (numCols < 0) || (len(entries) != numRows*numCols) {
		return nil, errors.Wrapf(
			ErrBadShape, "NewFromInt64Array: %d entries cannot fill a %d x %d matrix",
			len(entries), numRows, numCols,
		)
	}
	retVal := NewEmpty(numRows, numCols)
	for k, entry := range entries {
		retVal.cells[k].SetInt64(entry)
	}
	return retVal, nil
}

// NewFromColumns returns a matrix with numRows rows whose columns are copies of
// columns. numRows is needed to give a shape to a matrix with no columns.
func NewFromColumns(numRows int, columns [][]*big.Int) (*Matrix, error) {
	if numRows < 0 {
		return nil, errors.Wrapf(ErrBadShape, "NewFromColumns: numRows = %d < 0", numRows)
	}
	retVal := NewEmpty(numRows, len(columns))
	for j, column := range columns {
		if len(column) != numRows {
			return nil, errors.Wrapf(
				ErrBadShape, "NewFromColumns: column %d has %d entries, expected %d",
				j, len(column), numRows,
			)
		}
		for i, entry := range column {
			if entry != nil {
				retVal.cells[i*retVal.numCols+j].Set(entry)
			}
		}
	}
	return retVal, nil
}

// NumRows returns the number of rows in m.
func (m *Matrix) NumRows() int {
	return m.numRows
}

// NumCols returns the number of columns in m.
func (m *Matrix) NumCols() int {
	return m.numCols
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	retVal := NewEmpty(m.numRows, m.numCols)
	for k, cell := range m.cells {
		retVal.cells[k].Set(cell)
	}
	return retVal
}

// Get returns a copy of m[i][j].
func (m *Matrix) Get(i, j int) (*big.Int, error) {
	if err := m.checkIndex(i, j, "Get"); err != nil {
		return nil, err
	}
	return new(big.Int).Set(m.cells[i*m.numCols+j]), nil
}

// Sign returns -1, 0 or +1 according to the sign of m[i][j].
func (m *Matrix) Sign(i, j int) (int, error) {
	if err := m.checkIndex(i, j, "Sign"); err != nil {
		return 0, err
	}
	return m.cells[i*m.numCols+j].Sign(), nil
}

// Set sets m[i][j] to a copy of x.
func (m *Matrix) Set(i, j int, x *big.Int) error {
	if err := m.checkIndex(i, j, "Set"); err != nil {
		return err
	}
	m.cells[i*m.numCols+j].Set(x)
	return nil
}

// SetInt64 sets m[i][j] to x.
func (m *Matrix) SetInt64(i, j int, x int64) error {
	if err := m.checkIndex(i, j, "SetInt64"); err != nil {
		return err
	}
	m.cells[i*m.numCols+j].SetInt64(x)
	return nil
}

// Column returns a copy of column j of m.
func (m *Matrix) Column(j int) ([]*big.Int, error) {
	if err := m.checkColumn(j, "Column"); err != nil {
		return nil, err
	}
	retVal := make([]*big.Int, m.numRows)
	for i := 0; i < m.numRows; i++ {
		retVal[i] = new(big.Int).Set(m.cells[i*m.numCols+j])
	}
	return retVal, nil
}

// SelectColumns returns a new matrix made of copies of the columns of m listed
// in indices, in that order.
func (m *Matrix) SelectColumns(indices []int) (*Matrix, error) {
	retVal := NewEmpty(m.numRows, len(indices))
	for k, j := range indices {
		if err := m.checkColumn(j, "SelectColumns"); err != nil {
			return nil, err
		}
		for i := 0; i < m.numRows; i++ {
			retVal.cells[i*retVal.numCols+k].Set(m.cells[i*m.numCols+j])
		}
	}
	return retVal, nil
}

// LeadingRow returns the index of the topmost nonzero entry of column j, or -1
// if column j is zero.
func (m *Matrix) LeadingRow(j int) (int, error) {
	if err := m.checkColumn(j, "LeadingRow"); err != nil {
		return -1, err
	}
	for i := 0; i < m.numRows; i++ {
		if m.cells[i*m.numCols+j].Sign() != 0 {
			return i, nil
		}
	}
	return -1, nil
}

// SwapRows exchanges rows i and j of m.
func (m *Matrix) SwapRows(i, j int) error {
	if err := m.checkRow(i, "SwapRows"); err != nil {
		return err
	}
	if err := m.checkRow(j, "SwapRows"); err != nil {
		return err
	}
	for k := 0; k < m.numCols; k++ {
		m.cells[i*m.numCols+k], m.cells[j*m.numCols+k] = m.cells[j*m.numCols+k], m.cells[i*m.numCols+k]
	}
	return nil
}

// SwapColumns exchanges columns i and j of m.
func (m *Matrix) SwapColumns(i, j int) error {
	if err := m.checkColumn(i, "SwapColumns"); err != nil {
		return err
	}
	if err := m.checkColumn(j, "SwapColumns"); err != nil {
		return err
	}
	for k := 0; k < m.numRows; k++ {
		m.cells[k*m.numCols+i], m.cells[k*m.numCols+j] = m.cells[k*m.numCols+j], m.cells[k*m.numCols+i]
	}
	return nil
}

// NegateRow multiplies row i of m by -1.
func (m *Matrix) NegateRow(i int) error {
	if err := m.checkRow(i, "NegateRow"); err != nil {
		return err
	}
	for k := 0; k < m.numCols; k++ {
		cell := m.cells[i*m.numCols+k]
		cell.Neg(cell)
	}
	return nil
}

// NegateColumn multiplies column j of m by -1.
func (m *Matrix) NegateColumn(j int) error {
	if err := m.checkColumn(j, "NegateColumn"); err != nil {
		return err
	}
	for k := 0; k < m.numRows; k++ {
		cell := m.cells[k*m.numCols+j]
		cell.Neg(cell)
	}
	return nil
}

// AddRowMultiple adds multiple times row src to row dst.
func (m *Matrix) AddRowMultiple(dst, src int, multiple *big.Int) error {
	if err := m.checkRow(dst, "AddRowMultiple"); err != nil {
		return err
	}
	if err := m.checkRow(src, "AddRowMultiple"); err != nil {
		return err
	}
	if dst == src {
		return errors.Wrapf(ErrSelfCombination, "AddRowMultiple: row %d", dst)
	}
	if multiple.Sign() == 0 {
		return nil
	}
	product := new(big.Int)
	for k := 0; k < m.numCols; k++ {
		product.Mul(multiple, m.cells[src*m.numCols+k])
		cell := m.cells[dst*m.numCols+k]
		cell.Add(cell, product)
	}
	return nil
}

// AddColumnMultiple adds multiple times column src to column dst.
func (m *Matrix) AddColumnMultiple(dst, src int, multiple *big.Int) error {
	if err := m.checkColumn(dst, "AddColumnMultiple"); err != nil {
		return err
	}
	if err := m.checkColumn(src, "AddColumnMultiple"); err != nil {
		return err
	}
	if dst == src {
		return errors.Wrapf(ErrSelfCombination, "AddColumnMultiple: column %d", dst)
	}
	if multiple.Sign() == 0 {
		return nil
	}
	product := new(big.Int)
	for k := 0; k < m.numRows; k++ {
		product.Mul(multiple, m.cells[k*m.numCols+src])
		cell := m.cells[k*m.numCols+dst]
		cell.Add(cell, product)
	}
	return nil
}

// Mul sets m to the product x * y and returns m. m may be x or y.
func (m *Matrix) Mul(x, y *Matrix) (*Matrix, error) {
	if (x == nil) || (y == nil) {
		return nil, errors.Wrap(ErrNilMatrix, "Mul")
	}
	if x.numCols != y.numRows {
		return nil, errors.Wrapf(
			ErrDimensionMismatch, "Mul: cannot multiply %d x %d by %d x %d",
			x.numRows, x.numCols, y.numRows, y.numCols,
		)
	}

	// x is mxn, y is nxp and xy is mxp.
	n, p := x.numCols, y.numCols
	cells := newCells(x.numRows * p)
	product := new(big.Int)
	for i := 0; i < x.numRows; i++ {
		for k := 0; k < n; k++ {
			xIK := x.cells[i*n+k]
			if xIK.Sign() == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				product.Mul(xIK, y.cells[k*p+j])
				cells[i*p+j].Add(cells[i*p+j], product)
			}
		}
	}
	m.numRows, m.numCols, m.cells = x.numRows, p, cells
	return m, nil
}

// Transpose sets m to the transpose of x and returns m. m may be x.
func (m *Matrix) Transpose(x *Matrix) (*Matrix, error) {
	if x == nil {
		return nil, errors.Wrap(ErrNilMatrix, "Transpose")
	}
	cells := newCells(x.numRows * x.numCols)
	for i := 0; i < x.numRows; i++ {
		for j := 0; j < x.numCols; j++ {
			cells[j*x.numRows+i].Set(x.cells[i*x.numCols+j])
		}
	}
	m.numRows, m.numCols, m.cells = x.numCols, x.numRows, cells
	return m, nil
}

// Equals returns whether m and other have the same shape and entries.
func (m *Matrix) Equals(other *Matrix) bool {
	if (other == nil) || (m.numRows != other.numRows) || (m.numCols != other.numCols) {
		return false
	}
	for k, cell := range m.cells {
		if cell.Cmp(other.cells[k]) != 0 {
			return false
		}
	}
	return true
}

// IsZero returns whether every entry of m is zero. A matrix with no entries is zero.
func (m *Matrix) IsZero() bool {
	for _, cell := range m.cells {
		if cell.Sign() != 0 {
			return false
		}
	}
	return true
}

// IsDiagonal returns whether every entry of m off the main diagonal is zero.
// m need not be square.
func (m *Matrix) IsDiagonal() bool {
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			if (i != j) && (m.cells[i*m.numCols+j].Sign() != 0) {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns whether m is a square identity matrix.
func (m *Matrix) IsIdentity() bool {
	if m.numRows != m.numCols {
		return false
	}
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			cell := m.cells[i*m.numCols+j]
			if i == j {
				if !cell.IsInt64() || (cell.Int64() != 1) {
					return false
				}
			} else if cell.Sign() != 0 {
				return false
			}
		}
	}
	return true
}

// Diagonal returns copies of m[i][i] for i = 0,...,min(NumRows, NumCols)-1.
func (m *Matrix) Diagonal() []*big.Int {
	diagonalLen := m.numRows
	if m.numCols < diagonalLen {
		diagonalLen = m.numCols
	}
	retVal := make([]*big.Int, diagonalLen)
	for i := 0; i < diagonalLen; i++ {
		retVal[i] = new(big.Int).Set(m.cells[i*m.numCols+i])
	}
	return retVal
}

// Int64Array returns the entries of m in row-major order. It fails with
// ErrOverflow if an entry does not fit in an int64.
func (m *Matrix) Int64Array() ([]int64, error) {
	retVal := make([]int64, len(m.cells))
	for k, cell := range m.cells {
		if !cell.IsInt64() {
			return nil, errors.Wrapf(
				ErrOverflow, "Int64Array: entry (%d,%d) = %s", k/m.numCols, k%m.numCols, cell.String(),
			)
		}
		retVal[k] = cell.Int64()
	}
	return retVal, nil
}

// String prints m one row per line, or its shape if it has no entries.
func (m *Matrix) String() string {
	if len(m.cells) == 0 {
		return fmt.Sprintf("[] (%d x %d)", m.numRows, m.numCols)
	}
	var sb strings.Builder
	for i := 0; i < m.numRows; i++ {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[")
		for j := 0; j < m.numCols; j++ {
			sb.WriteString(" ")
			sb.WriteString(m.cells[i*m.numCols+j].String())
		}
		sb.WriteString(" ]")
	}
	return sb.String()
}

func (m *Matrix) checkIndex(i, j int, caller string) error {
	if (i < 0) || (m.numRows <= i) || (j < 0) || (m.numCols <= j) {
		return errors.Wrapf(
			ErrOutOfRange, "%s: (%d,%d) is not in a %d x %d matrix", caller, i, j, m.numRows, m.numCols,
		)
	}
	return nil
}

func (m *Matrix) checkRow(i int, caller string) error {
	if (i < 0) || (m.numRows <= i) {
		return errors.Wrapf(ErrOutOfRange, "%s: row %d is not in {0,...,%d}", caller, i, m.numRows-1)
	}
	return nil
}

func (m *Matrix) checkColumn(j int, caller string) error {
	if (j < 0) || (m.numCols <= j) {
		return errors.Wrapf(ErrOutOfRange, "%s: column %d is not in {0,...,%d}", caller, j, m.numCols-1)
	}
	return nil
}

func newCells(n int) []*big.Int {
	retVal := make([]*big.Int, n)
	for k := 0; k < n; k++ {
		retVal[k] = new(big.Int)
	}
	return retVal
}
