package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/predrag3141/simplicialhomology/homology"
)

// Report records the homology computed for a fixture, including generators,
// in a form that can be written as YAML and compared across runs.
type Report struct {
	Fixture string        `yaml:"fixture"`
	Complex string        `yaml:"complex"`
	Groups  []GroupReport `yaml:"groups"`
}

// GroupReport records one homology group. Generators[j] is column j of the
// generator matrix and Orders[j] its order, with entries as decimal strings.
type GroupReport struct {
	Dimension  int        `yaml:"dimension"`
	Group      string     `yaml:"group"`
	Orders     []string   `yaml:"orders"`
	Generators [][]string `yaml:"generators"`
}

// NewReport returns a report of groups computed for the complex of f.
func NewReport(f *Fixture, groups []*homology.Group) (*Report, error) {
	caller := fmt.Sprintf("NewReport(%q)", f.Name)
	c, err := f.Complex()
	if err != nil {
		return nil, pkgerrors.Wrap(err, caller)
	}
	retVal := &Report{Fixture: f.Name, Complex: c.String(), Groups: make([]GroupReport, len(groups))}
	for k, group := range groups {
		gr := GroupReport{
			Dimension:  group.Dimension,
			Group:      group.String(),
			Orders:     make([]string, len(group.Orders)),
			Generators: make([][]string, group.Generators.NumCols()),
		}
		for j, order := range group.Orders {
			gr.Orders[j] = order.String()
		}
		for j := range gr.Generators {
			column, err := group.Generators.Column(j)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "%s: could not get generator %d of H_%d", caller, j, k)
			}
			gr.Generators[j] = make([]string, len(column))
			for i, entry := range column {
				gr.Generators[j][i] = entry.String()
			}
		}
		retVal.Groups[k] = gr
	}
	return retVal, nil
}

// Write writes r as YAML to <dir>/<fixture>-homology.yaml and returns the path.
func (r *Report) Write(dir string) (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "Write(%q): could not marshal the report", r.Fixture)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-homology.yaml", r.Fixture))
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return "", pkgerrors.Wrapf(err, "Write(%q)", r.Fixture)
	}
	return path, nil
}
