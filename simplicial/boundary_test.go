package simplicial

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

func tetrahedronBoundary(t *testing.T) *Complex {
	c, err := NewComplex(
		[]Simplex{{0}, {1}, {2}, {3}},
		[]Simplex{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
		[]Simplex{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}},
	)
	require.NoError(t, err)
	return c
}

func TestBoundaryOfTetrahedron(t *testing.T) {
	c := tetrahedronBoundary(t)
	d, err := c.BoundaryOperators()
	require.NoError(t, err)
	require.Equal(t, 4, len(d))

	// d_0 maps into the zero group and d_3 maps from it
	require.Equal(t, 0, d[0].NumRows())
	require.Equal(t, 4, d[0].NumCols())
	require.Equal(t, 4, d[3].NumRows())
	require.Equal(t, 0, d[3].NumCols())

	var expected1, expected2 *intmatrix.Matrix
	expected1, err = intmatrix.NewFromInt64Array([]int64{
		-1, -1, -1, 0, 0, 0,
		1, 0, 0, -1, -1, 0,
		0, 1, 0, 1, 0, -1,
		0, 0, 1, 0, 1, 1,
	}, 4, 6)
	require.NoError(t, err)
	require.Truef(t, expected1.Equals(d[1]), "d_1 =\n%v", d[1])

	// [a,b,c] -> [b,c] - [a,c] + [a,b]
	expected2, err = intmatrix.NewFromInt64Array([]int64{
		1, 1, 0, 0,
		-1, 0, 1, 0,
		0, -1, -1, 0,
		1, 0, 0, 1,
		0, 1, 0, -1,
		0, 0, 1, 1,
	}, 6, 4)
	require.NoError(t, err)
	require.Truef(t, expected2.Equals(d[2]), "d_2 =\n%v", d[2])

	var dd *intmatrix.Matrix
	dd, err = intmatrix.NewEmpty(0, 0).Mul(d[1], d[2])
	require.NoError(t, err)
	require.True(t, dd.IsZero())
}

func TestBoundaryRespectsStoredOrientation(t *testing.T) {
	// Edge {1,0} is stored backwards, and the triangle is stored as [2,1,0].
	c, err := NewComplex(
		[]Simplex{{0}, {1}, {2}},
		[]Simplex{{1, 0}, {0, 2}, {1, 2}},
		[]Simplex{{2, 1, 0}},
	)
	require.NoError(t, err)
	var d1, d2 *intmatrix.Matrix
	d1, err = c.Boundary(1)
	require.NoError(t, err)
	d2, err = c.Boundary(2)
	require.NoError(t, err)

	// [2,1,0] -> [1,0] - [2,0] + [2,1] = [1,0] + [0,2] - [1,2]
	var expected *intmatrix.Matrix
	expected, err = intmatrix.NewFromInt64Array([]int64{1, 1, -1}, 3, 1)
	require.NoError(t, err)
	require.Truef(t, expected.Equals(d2), "d_2 =\n%v", d2)

	var dd *intmatrix.Matrix
	dd, err = intmatrix.NewEmpty(0, 0).Mul(d1, d2)
	require.NoError(t, err)
	require.True(t, dd.IsZero())
}

func TestBoundaryOfMalformedComplex(t *testing.T) {
	// Edge [0,4] names a vertex that is not in the vertex basis
	c, err := NewComplex(
		[]Simplex{{0}, {1}, {2}},
		[]Simplex{{0, 1}, {0, 4}},
	)
	require.NoError(t, err)
	_, err = c.Boundary(1)
	require.True(t, errors.Is(err, ErrMalformedComplex))
	_, err = c.BoundaryOperators()
	require.True(t, errors.Is(err, ErrMalformedComplex))

	// Face [0,1,2] needs edge [1,2], which is missing
	c, err = NewComplex(
		[]Simplex{{0}, {1}, {2}},
		[]Simplex{{0, 1}, {0, 2}},
		[]Simplex{{0, 1, 2}},
	)
	require.NoError(t, err)
	_, err = c.Boundary(1)
	require.NoError(t, err)
	_, err = c.Boundary(2)
	require.True(t, errors.Is(err, ErrMalformedComplex))
}

func TestNewComplexRejectsBadSimplices(t *testing.T) {
	for _, bases := range [][][]Simplex{
		{{{0}, {1}}, {{0, 1, 2}}},         // wrong size
		{{{0}, {1}}, {{1, 1}}},            // repeated vertex
		{{{0}, {1}}, {{0, 1}, {1, 0}}},    // duplicate vertex set
		{{{0}, {0}}},                      // duplicate vertex
		{{{0, 1}}},                        // an edge in the vertex basis
		{{{0}, {1}, {2}}, {{0, 1}}, {{}}}, // empty simplex
	} {
		_, err := NewComplex(bases...)
		require.Truef(t, errors.Is(err, ErrMalformedComplex), "bases %v", bases)
	}
}

func TestBoundaryDimensionRange(t *testing.T) {
	c := tetrahedronBoundary(t)
	for _, k := range []int{-1, 4} {
		_, err := c.Boundary(k)
		require.True(t, errors.Is(err, ErrDimensionOutOfRange))
	}
	_, err := c.Basis(3)
	require.True(t, errors.Is(err, ErrDimensionOutOfRange))
	require.Equal(t, 0, c.NumSimplices(3))
	require.Equal(t, "complex(4, 6, 4)", c.String())

	empty, err := NewComplex()
	require.NoError(t, err)
	require.Equal(t, -1, empty.Dimension())
	var d []*intmatrix.Matrix
	d, err = empty.BoundaryOperators()
	require.NoError(t, err)
	require.Equal(t, 1, len(d))
}

func TestBasisIsACopy(t *testing.T) {
	c := tetrahedronBoundary(t)
	basis, err := c.Basis(1)
	require.NoError(t, err)
	basis[0][0] = 99
	basis, err = c.Basis(1)
	require.NoError(t, err)
	require.Equal(t, Simplex{0, 1}, basis[0])
}

func TestPermutationSign(t *testing.T) {
	for _, tc := range []struct {
		from, to Simplex
		expected int
	}{
		{Simplex{5}, Simplex{5}, 1},
		{Simplex{0, 1}, Simplex{0, 1}, 1},
		{Simplex{0, 1}, Simplex{1, 0}, -1},
		{Simplex{0, 1, 2}, Simplex{1, 2, 0}, 1},
		{Simplex{0, 1, 2}, Simplex{2, 0, 1}, 1},
		{Simplex{0, 1, 2}, Simplex{1, 0, 2}, -1},
		{Simplex{0, 1, 2}, Simplex{2, 1, 0}, -1},
		{Simplex{3, 7, 1, 4}, Simplex{7, 3, 4, 1}, 1},
	} {
		sign, err := PermutationSign(tc.from, tc.to)
		require.NoError(t, err)
		require.Equalf(t, tc.expected, sign, "%v -> %v", tc.from, tc.to)
	}
	_, err := PermutationSign(Simplex{0, 1}, Simplex{0, 2})
	require.True(t, errors.Is(err, ErrMalformedComplex))
}
