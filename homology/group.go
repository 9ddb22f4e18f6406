package homology

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/predrag3141/simplicialhomology/intmatrix"
)

// Order is the order of a cyclic summand: either free (infinite cyclic, Z) or
// finite of order t > 1 (Z/tZ).
type Order struct {
	t *big.Int // nil for a free summand
}

// Free returns the order of an infinite cyclic summand.
func Free() Order {
	return Order{}
}

// Torsion returns the order of a finite cyclic summand of order t.
func Torsion(t *big.Int) Order {
	return Order{t: new(big.Int).Set(t)}
}

// IsFree returns whether o is the order of an infinite cyclic summand.
func (o Order) IsFree() bool {
	return o.t == nil
}

// Torsion returns a copy of the finite order of o, and false if o is free.
func (o Order) Torsion() (*big.Int, bool) {
	if o.t == nil {
		return nil, false
	}
	return new(big.Int).Set(o.t), true
}

// String returns "Z" or "Z/t".
func (o Order) String() string {
	if o.t == nil {
		return "Z"
	}
	return fmt.Sprintf("Z/%s", o.t.String())
}

// Group is the homology group H_k presented as a direct sum of cyclic summands,
// one per column of Generators. Column j is an integer cycle in the C_k basis
// whose class generates a summand of order Orders[j]. Trivial summands are
// omitted, so the trivial group has no columns.
type Group struct {
	Dimension  int
	Generators *intmatrix.Matrix
	Orders     []Order
}

// Betti returns the number of free summands.
func (g *Group) Betti() int {
	betti := 0
	for _, order := range g.Orders {
		if order.IsFree() {
			betti++
		}
	}
	return betti
}

// TorsionCoefficients returns the orders of the finite summands, in generator
// order.
func (g *Group) TorsionCoefficients() []*big.Int {
	retVal := make([]*big.Int, 0)
	for _, order := range g.Orders {
		if t, isTorsion := order.Torsion(); isTorsion {
			retVal = append(retVal, t)
		}
	}
	return retVal
}

// IsTrivial returns whether g has no summands.
func (g *Group) IsTrivial() bool {
	return len(g.Orders) == 0
}

// String returns the isomorphism type of g, e.g. "Z^2 + Z/2", "Z" or "0".
func (g *Group) String() string {
	if g.IsTrivial() {
		return "0"
	}
	parts := make([]string, 0, len(g.Orders))
	switch betti := g.Betti(); {
	case betti == 1:
		parts = append(parts, "Z")
	case betti > 1:
		parts = append(parts, fmt.Sprintf("Z^%d", betti))
	}
	for _, t := range g.TorsionCoefficients() {
		parts = append(parts, fmt.Sprintf("Z/%s", t.String()))
	}
	return strings.Join(parts, " + ")
}
