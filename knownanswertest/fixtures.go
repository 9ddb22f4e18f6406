// Package knownanswertest holds triangulations with known homology, embedded as
// YAML fixtures, and writes homology reports for them.
package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/predrag3141/simplicialhomology/homology"
	"github.com/predrag3141/simplicialhomology/simplicial"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

const fixtureDir = "fixtures"

var (
	// ErrUnknownFixture is returned by Load for a name with no fixture file.
	ErrUnknownFixture = errors.New("knownanswertest: unknown fixture")

	// ErrBadFixture is returned for a fixture file that cannot be used.
	ErrBadFixture = errors.New("knownanswertest: bad fixture")

	// ErrMismatch is returned by Check when computed homology differs from the
	// expected homology.
	ErrMismatch = errors.New("knownanswertest: homology does not match")
)

// Fixture is a simplicial complex with its expected homology groups.
// Simplices[k] is the ordered basis of dimension k and Homology[k] describes H_k.
type Fixture struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Simplices   [][][]int  `yaml:"simplices"`
	Homology    []Expected `yaml:"homology"`
}

// Expected is the isomorphism type of one homology group: Betti free summands
// and one finite cyclic summand per entry of Torsion.
type Expected struct {
	Betti   int     `yaml:"betti"`
	Torsion []int64 `yaml:"torsion"`
}

// Names returns the names of the embedded fixtures in sorted order.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(fixtureFS, fixtureDir)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "Names")
	}
	retVal := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".yaml") {
			retVal = append(retVal, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(retVal)
	return retVal, nil
}

// Load parses the embedded fixture with the given name.
func Load(name string) (*Fixture, error) {
	caller := fmt.Sprintf("Load(%q)", name)
	data, err := fixtureFS.ReadFile(fmt.Sprintf("%s/%s.yaml", fixtureDir, name))
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrUnknownFixture, "%s: %v", caller, err)
	}
	var retVal Fixture
	if err = yaml.Unmarshal(data, &retVal); err != nil {
		return nil, pkgerrors.Wrapf(ErrBadFixture, "%s: %v", caller, err)
	}
	if retVal.Name != name {
		return nil, pkgerrors.Wrapf(ErrBadFixture, "%s: file holds fixture %q", caller, retVal.Name)
	}
	if len(retVal.Homology) != len(retVal.Simplices) {
		return nil, pkgerrors.Wrapf(
			ErrBadFixture, "%s: %d expected groups for a complex of %d dimensions",
			caller, len(retVal.Homology), len(retVal.Simplices),
		)
	}
	return &retVal, nil
}

// Complex returns the simplicial complex of f.
func (f *Fixture) Complex() (*simplicial.Complex, error) {
	bases := make([][]simplicial.Simplex, len(f.Simplices))
	for k, basis := range f.Simplices {
		bases[k] = make([]simplicial.Simplex, len(basis))
		for i, s := range basis {
			bases[k][i] = simplicial.Simplex(s)
		}
	}
	c, err := simplicial.NewComplex(bases...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "Complex: fixture %q", f.Name)
	}
	return c, nil
}

// Check returns ErrMismatch unless groups has one group per dimension of f with
// the expected Betti number and torsion coefficients.
func (f *Fixture) Check(groups []*homology.Group) error {
	caller := fmt.Sprintf("Check(%q)", f.Name)
	if len(groups) != len(f.Homology) {
		return pkgerrors.Wrapf(ErrMismatch, "%s: %d groups, expected %d", caller, len(groups), len(f.Homology))
	}
	for k, expected := range f.Homology {
		group := groups[k]
		if group.Betti() != expected.Betti {
			return pkgerrors.Wrapf(
				ErrMismatch, "%s: H_%d = %v has Betti number %d, expected %d",
				caller, k, group, group.Betti(), expected.Betti,
			)
		}
		torsion := group.TorsionCoefficients()
		if len(torsion) != len(expected.Torsion) {
			return pkgerrors.Wrapf(
				ErrMismatch, "%s: H_%d = %v has %d torsion coefficients, expected %v",
				caller, k, group, len(torsion), expected.Torsion,
			)
		}
		for i, t := range torsion {
			if t.Cmp(big.NewInt(expected.Torsion[i])) != 0 {
				return pkgerrors.Wrapf(
					ErrMismatch, "%s: H_%d = %v has torsion coefficient %v, expected %d",
					caller, k, group, t, expected.Torsion[i],
				)
			}
		}
	}
	return nil
}
