package simplicial

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// Boundary returns the boundary operator d_k: C_k -> C_{k-1} as a matrix with
// one row per (k-1)-simplex and one column per k-simplex, for k in
// {0,...,Dimension()+1}.
//
//   - d_0 maps into the zero group, so it is a 0 x NumSimplices(0) matrix.
//   - d_{Dimension()+1} maps from the zero group, so it is a
//     NumSimplices(Dimension()) x 0 matrix.
//
// Column j of d_k holds the signed faces of simplex j: deleting the vertex at
// position i gives a face with sign (-1)^i times the parity of the permutation
// taking the face's vertex order to the stored order of the matching
// (k-1)-simplex. A face missing from the (k-1)-basis is ErrMalformedComplex.
func (c *Complex) Boundary(k int) (*intmatrix.Matrix, error) {
	caller := fmt.Sprintf("Boundary(%d)", k)
	top := c.Dimension()
	if (k < 0) || (top+1 < k) {
		return nil, errors.Wrapf(
			ErrDimensionOutOfRange, "%s: dimension %d is not in {0,...,%d}", caller, k, top+1,
		)
	}
	if k == 0 {
		return intmatrix.NewEmpty(0, c.NumSimplices(0)), nil
	}
	if k == top+1 {
		return intmatrix.NewEmpty(c.NumSimplices(top), 0), nil
	}

	d := intmatrix.NewEmpty(c.NumSimplices(k-1), c.NumSimplices(k))
	for j, s := range c.bases[k] {
		for i := 0; i < len(s); i++ {
			face := deleteVertex(s, i)
			row, found := c.indexOf(k-1, face)
			if !found {
				return nil, errors.Wrapf(
					ErrMalformedComplex, "%s: face %v of simplex %d (%v) is not a %d-simplex of the complex",
					caller, face, j, s, k-1,
				)
			}
			parity, err := PermutationSign(face, c.bases[k-1][row])
			if err != nil {
				return nil, errors.Wrapf(err, "%s: could not orient face %v of simplex %d", caller, face, j)
			}
			sign := int64(parity)
			if i%2 == 1 {
				sign = -sign
			}
			if err = d.SetInt64(row, j, sign); err != nil {
				return nil, errors.Wrapf(err, "%s: could not set entry for face %v of simplex %d", caller, face, j)
			}
		}
	}
	return d, nil
}

// BoundaryOperators returns d_0,...,d_{Dimension()+1}, so that entry k is the
// boundary operator leaving C_k.
func (c *Complex) BoundaryOperators() ([]*intmatrix.Matrix, error) {
	retVal := make([]*intmatrix.Matrix, c.Dimension()+2)
	for k := range retVal {
		d, err := c.Boundary(k)
		if err != nil {
			return nil, errors.Wrap(err, "BoundaryOperators")
		}
		retVal[k] = d
	}
	return retVal, nil
}

// PermutationSign returns +1 if the vertex order of to is an even permutation of
// the vertex order of from, and -1 if it is odd. from and to must hold the same
// vertex set.
func PermutationSign(from, to Simplex) (int, error) {
	if (len(from) != len(to)) || (from.key() != to.key()) || hasRepeatedVertex(from) {
		return 0, errors.Wrapf(
			ErrMalformedComplex, "PermutationSign: %v and %v are not orderings of the same vertex set", from, to,
		)
	}

	// position[i] is where from[i] sits in to. The sign is the parity of the
	// number of inversions in position.
	position := make([]int, len(from))
	for i, v := range from {
		for j, w := range to {
			if v == w {
				position[i] = j
				break
			}
		}
	}
	inversions := 0
	for i := 0; i < len(position); i++ {
		for j := i + 1; j < len(position); j++ {
			if position[j] < position[i] {
				inversions++
			}
		}
	}
	if inversions%2 == 1 {
		return -1, nil
	}
	return 1, nil
}

func deleteVertex(s Simplex, i int) Simplex {
	retVal := make(Simplex, 0, len(s)-1)
	retVal = append(retVal, s[:i]...)
	return append(retVal, s[i+1:]...)
}
