// Package simplicial holds an immutable finite simplicial complex, stored as one
// ordered basis of simplices per dimension, and builds its signed boundary
// operators as exact integer matrices.
package simplicial

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Simplex is an ordered tuple of vertex identifiers. Two simplices with the same
// vertex set are the same simplex; the stored order fixes its orientation.
type Simplex []int

// Dimension returns len(s)-1.
func (s Simplex) Dimension() int {
	return len(s) - 1
}

// key returns a string identifying the vertex set of s, independent of order.
func (s Simplex) key() string {
	sorted := make([]int, len(s))
	copy(sorted, s)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (s Simplex) clone() Simplex {
	retVal := make(Simplex, len(s))
	copy(retVal, s)
	return retVal
}

// Complex is a finite simplicial complex given by its ordered bases in
// dimensions 0,...,Dimension(). The basis order of each dimension is the input
// order and never changes. A Complex is not modified after NewComplex returns.
type Complex struct {
	bases   [][]Simplex
	indices []map[string]int // indices[k][key] is the position of a k-simplex in bases[k]
}

// NewComplex returns a complex whose dimension-k basis is a copy of bases[k].
// Every dimension-k simplex must have k+1 distinct vertices, and no vertex set
// may appear twice in a dimension. Whether every face of a simplex is present
// one dimension down is checked when boundary operators are built.
func NewComplex(bases ...[]Simplex) (*Complex, error) {
	c := &Complex{
		bases:   make([][]Simplex, len(bases)),
		indices: make([]map[string]int, len(bases)),
	}
	for k, basis := range bases {
		c.bases[k] = make([]Simplex, len(basis))
		c.indices[k] = make(map[string]int, len(basis))
		for i, s := range basis {
			if len(s) != k+1 {
				return nil, errors.Wrapf(
					ErrMalformedComplex, "NewComplex: simplex %d of dimension %d is %v, which has %d vertices",
					i, k, s, len(s),
				)
			}
			key := s.key()
			if hasRepeatedVertex(s) {
				return nil, errors.Wrapf(
					ErrMalformedComplex, "NewComplex: simplex %d of dimension %d repeats a vertex in %v", i, k, s,
				)
			}
			if j, found := c.indices[k][key]; found {
				return nil, errors.Wrapf(
					ErrMalformedComplex, "NewComplex: simplices %d and %d of dimension %d are both %v",
					j, i, k, s,
				)
			}
			c.bases[k][i] = s.clone()
			c.indices[k][key] = i
		}
	}
	return c, nil
}

// Dimension returns the top dimension of c, or -1 if c has no bases.
func (c *Complex) Dimension() int {
	return len(c.bases) - 1
}

// NumSimplices returns the number of k-simplices, which is the rank of the
// chain group C_k. It is zero for any k outside 0,...,Dimension().
func (c *Complex) NumSimplices(k int) int {
	if (k < 0) || (len(c.bases) <= k) {
		return 0
	}
	return len(c.bases[k])
}

// Basis returns a copy of the ordered basis of C_k.
func (c *Complex) Basis(k int) ([]Simplex, error) {
	if (k < 0) || (len(c.bases) <= k) {
		return nil, errors.Wrapf(
			ErrDimensionOutOfRange, "Basis: dimension %d is not in {0,...,%d}", k, c.Dimension(),
		)
	}
	retVal := make([]Simplex, len(c.bases[k]))
	for i, s := range c.bases[k] {
		retVal[i] = s.clone()
	}
	return retVal, nil
}

// indexOf returns the position in the dimension-k basis of the simplex with the
// vertex set of s.
func (c *Complex) indexOf(k int, s Simplex) (int, bool) {
	if (k < 0) || (len(c.indices) <= k) {
		return -1, false
	}
	i, found := c.indices[k][s.key()]
	return i, found
}

// String summarizes c by its simplex counts, e.g. "complex(9, 27, 18)".
func (c *Complex) String() string {
	counts := make([]string, len(c.bases))
	for k, basis := range c.bases {
		counts[k] = strconv.Itoa(len(basis))
	}
	return fmt.Sprintf("complex(%s)", strings.Join(counts, ", "))
}

func hasRepeatedVertex(s Simplex) bool {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if s[i] == s[j] {
				return true
			}
		}
	}
	return false
}
