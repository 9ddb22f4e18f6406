package homology

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/predrag3141/simplicialhomology/intmatrix"
	"github.com/predrag3141/simplicialhomology/simplicial"
	"github.com/predrag3141/simplicialhomology/util"
)

func TestOrderAndGroupString(t *testing.T) {
	require.Equal(t, "Z", Free().String())
	require.True(t, Free().IsFree())
	torsion := Torsion(big.NewInt(6))
	require.False(t, torsion.IsFree())
	require.Equal(t, "Z/6", torsion.String())
	t6, isTorsion := torsion.Torsion()
	require.True(t, isTorsion)
	require.Equal(t, int64(6), t6.Int64())
	_, isTorsion = Free().Torsion()
	require.False(t, isTorsion)

	for _, tc := range []struct {
		orders   []Order
		expected string
	}{
		{[]Order{}, "0"},
		{[]Order{Free()}, "Z"},
		{[]Order{Free(), Free()}, "Z^2"},
		{[]Order{Torsion(big.NewInt(2)), Free()}, "Z + Z/2"},
		{[]Order{Torsion(big.NewInt(2)), Torsion(big.NewInt(4)), Free(), Free(), Free()}, "Z^3 + Z/2 + Z/4"},
	} {
		g := &Group{Orders: tc.orders, Generators: intmatrix.NewEmpty(0, len(tc.orders))}
		require.Equal(t, tc.expected, g.String())
		require.Equal(t, tc.expected == "0", g.IsTrivial())
	}
}

func TestAssembleMatchesByPivotRow(t *testing.T) {
	caller := "TestAssembleMatchesByPivotRow"
	e := NewExtractor()
	cycles := intmatrix.NewIdentity(2)

	// A boundary of order 1 kills the cycle at its pivot row
	boundaries, err := intmatrix.NewFromInt64Array([]int64{1, 1}, 2, 1)
	require.NoError(t, err)
	var group *Group
	var aligned bool
	group, aligned, err = e.assemble(1, cycles, boundaries, []*big.Int{big.NewInt(1)}, caller)
	require.NoError(t, err)
	require.False(t, aligned)
	require.Equal(t, "Z", group.String())
	require.Equal(t, 1, group.Dimension)
	require.Equal(t, []int64{0, 1}, mustInt64Array(t, group.Generators))

	// A boundary of order 2 leaves a Z/2 generated by the boundary basis column
	boundaries, err = intmatrix.NewFromInt64Array([]int64{1, 0}, 2, 1)
	require.NoError(t, err)
	group, aligned, err = e.assemble(1, cycles, boundaries, []*big.Int{big.NewInt(2)}, caller)
	require.NoError(t, err)
	require.False(t, aligned)
	require.Equal(t, "Z + Z/2", group.String())
	require.Equal(t, 1, group.Betti())
	require.Equal(t, 1, len(group.TorsionCoefficients()))
	require.Equal(t, int64(2), group.TorsionCoefficients()[0].Int64())
	require.False(t, group.Orders[0].IsFree())
	require.True(t, group.Orders[1].IsFree())
	require.Equal(t, []int64{1, 0, 0, 1}, mustInt64Array(t, group.Generators))

	// No boundaries
	group, aligned, err = e.assemble(2, cycles, intmatrix.NewEmpty(2, 0), []*big.Int{}, caller)
	require.NoError(t, err)
	require.False(t, aligned)
	require.Equal(t, "Z^2", group.String())
}

func TestAssembleAlignsBases(t *testing.T) {
	caller := "TestAssembleAlignsBases"
	e := NewExtractor(WithVerification())
	cycles := intmatrix.NewIdentity(2)

	// The canonical boundary pivot 2 differs from the cycle pivot 1. The
	// quotient of Z^2 by the span of (2,1) is Z, and the generator completes
	// (2,1) to a basis.
	boundaries, err := intmatrix.NewFromInt64Array([]int64{2, 1}, 2, 1)
	require.NoError(t, err)
	var group *Group
	var aligned bool
	group, aligned, err = e.assemble(1, cycles, boundaries, []*big.Int{big.NewInt(1)}, caller)
	require.NoError(t, err)
	require.True(t, aligned)
	require.Equal(t, "Z", group.String())
	var generator []*big.Int
	generator, err = group.Generators.Column(0)
	require.NoError(t, err)
	var basis *intmatrix.Matrix
	basis, err = intmatrix.NewFromColumns(2, [][]*big.Int{{big.NewInt(2), big.NewInt(1)}, generator})
	require.NoError(t, err)
	var det *big.Int
	det, err = util.Determinant(basis)
	require.NoError(t, err)
	require.Equal(t, int64(1), new(big.Int).Abs(det).Int64())

	// Boundaries (2,1) of order 1 and (2,2) = 2*(1,1) collide at row 0. Their
	// span is {(x,y) : x even}, so the quotient is Z/2 generated by any
	// vector with x odd.
	boundaries, err = intmatrix.NewFromInt64Array([]int64{
		2, 1,
		1, 1,
	}, 2, 2)
	require.NoError(t, err)
	group, aligned, err = e.assemble(1, cycles, boundaries, []*big.Int{big.NewInt(1), big.NewInt(2)}, caller)
	require.NoError(t, err)
	require.True(t, aligned)
	require.Equal(t, "Z/2", group.String())
	generator, err = group.Generators.Column(0)
	require.NoError(t, err)
	require.Equal(t, uint(1), generator[0].Bit(0))
}

func TestAlignBasesRejectsNonCycles(t *testing.T) {
	caller := "TestAlignBasesRejectsNonCycles"
	cycles, err := intmatrix.NewFromInt64Array([]int64{1, 0}, 2, 1)
	require.NoError(t, err)
	var boundaries *intmatrix.Matrix
	boundaries, err = intmatrix.NewFromInt64Array([]int64{0, 1}, 2, 1)
	require.NoError(t, err)
	_, err = NewExtractor().alignBases(1, cycles, boundaries, []*big.Int{big.NewInt(1)}, caller)
	require.True(t, errors.Is(err, ErrBoundaryNotCycle))

	// Not an integer multiple at a pivot row
	cycles, err = intmatrix.NewFromInt64Array([]int64{2, 0}, 2, 1)
	require.NoError(t, err)
	boundaries, err = intmatrix.NewFromInt64Array([]int64{3, 0}, 2, 1)
	require.NoError(t, err)
	_, err = NewExtractor().alignBases(1, cycles, boundaries, []*big.Int{big.NewInt(1)}, caller)
	require.True(t, errors.Is(err, ErrBoundaryNotCycle))
}

func TestGroupsOfTetrahedronBoundary(t *testing.T) {
	c, err := simplicial.NewComplex(
		[]simplicial.Simplex{{0}, {1}, {2}, {3}},
		[]simplicial.Simplex{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
		[]simplicial.Simplex{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}},
	)
	require.NoError(t, err)
	observed, logs := observer.New(zapcore.DebugLevel)
	var groups []*Group
	groups, err = Compute(c, WithLogger(zap.New(observed)), WithVerification())
	require.NoError(t, err)
	require.Equal(t, 3, len(groups))
	for k, expected := range []string{"Z", "0", "Z"} {
		require.Equal(t, k, groups[k].Dimension)
		require.Equalf(t, expected, groups[k].String(), "H_%d", k)
		require.Equal(t, c.NumSimplices(k), groups[k].Generators.NumRows())
	}

	// H_0 is generated by the one vertex whose row is not a boundary pivot
	// row, and H_2 by the oriented sphere.
	require.Equal(t, []int64{0, 0, 0, 1}, mustInt64Array(t, groups[0].Generators))
	require.Equal(t, []int64{1, -1, 1, -1}, mustInt64Array(t, groups[2].Generators))

	require.Equal(t, 3, logs.Len())
	for k, entry := range logs.All() {
		require.Equal(t, zapcore.DebugLevel, entry.Level)
		fields := entry.ContextMap()
		require.Equal(t, int64(k), fields["dimension"])
		require.Equal(t, int64(groups[k].Betti()), fields["betti"])
	}
}

func TestGroupsOfSmallComplexes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		bases    [][]simplicial.Simplex
		expected []string
	}{
		{"empty", [][]simplicial.Simplex{}, []string{}},
		{"three points", [][]simplicial.Simplex{{{0}, {1}, {2}}}, []string{"Z^3"}},
		{"edge", [][]simplicial.Simplex{{{0}, {1}}, {{1, 0}}}, []string{"Z", "0"}},
		{"hollow triangle", [][]simplicial.Simplex{{{0}, {1}, {2}}, {{0, 1}, {1, 2}, {2, 0}}}, []string{"Z", "Z"}},
		{
			"filled triangle",
			[][]simplicial.Simplex{{{0}, {1}, {2}}, {{0, 1}, {1, 2}, {0, 2}}, {{2, 0, 1}}},
			[]string{"Z", "0", "0"},
		},
	} {
		c, err := simplicial.NewComplex(tc.bases...)
		require.NoError(t, err)
		var groups []*Group
		groups, err = Compute(c)
		require.NoErrorf(t, err, tc.name)
		require.Equalf(t, len(tc.expected), len(groups), tc.name)
		for k, expected := range tc.expected {
			require.Equalf(t, expected, groups[k].String(), "%s: H_%d", tc.name, k)
		}
	}
}

func TestGroupErrors(t *testing.T) {
	e := NewExtractor()
	_, err := e.Group(1, intmatrix.NewEmpty(2, 3), intmatrix.NewEmpty(2, 1))
	require.True(t, errors.Is(err, intmatrix.ErrDimensionMismatch))
	_, err = e.Group(0, nil, intmatrix.NewEmpty(0, 0))
	require.True(t, errors.Is(err, intmatrix.ErrNilMatrix))

	// Edge {1,2} of the face is missing
	var c *simplicial.Complex
	c, err = simplicial.NewComplex(
		[]simplicial.Simplex{{0}, {1}, {2}},
		[]simplicial.Simplex{{0, 1}, {0, 2}},
		[]simplicial.Simplex{{0, 1, 2}},
	)
	require.NoError(t, err)
	var groups []*Group
	groups, err = Compute(c)
	require.True(t, errors.Is(err, simplicial.ErrMalformedComplex))
	require.Nil(t, groups)
}
