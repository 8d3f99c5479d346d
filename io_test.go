/*
Copyright © 2026 the laminarSMOKE authors.
This file is part of laminarSMOKE.

laminarSMOKE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laminarSMOKE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laminarSMOKE.  If not, see <http://www.gnu.org/licenses/>.
*/

package laminarsmoke

import (
	"context"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/cdf"
	"github.com/sirupsen/logrus"
)

// idealThermo is a two-species ideal gas with constant specific heats
// and no heats of formation.
type idealThermo struct {
	mw []float64 // [kg/kmol]
	cp float64   // [J/kmol/K]
	T  float64
}

func newIdealThermo() *idealThermo {
	return &idealThermo{mw: []float64{10, 30}, cp: 30000}
}

func (th *idealThermo) NumberOfSpecies() int     { return len(th.mw) }
func (th *idealThermo) SpeciesNames() []string   { return []string{"A", "B"} }
func (th *idealThermo) SetTemperature(T float64) { th.T = T }
func (th *idealThermo) SetPressure(p float64)    {}

func (th *idealThermo) MoleFractionsFromMassFractions(x, y []float64) float64 {
	sum := 0.
	for i, v := range y {
		x[i] = v / th.mw[i]
		sum += x[i]
	}
	for i := range x {
		x[i] /= sum
	}
	return 1 / sum
}

func (th *idealThermo) MassFractionsFromMoleFractions(y, x []float64) float64 {
	mw := 0.
	for i, v := range x {
		mw += v * th.mw[i]
	}
	for i, v := range x {
		y[i] = v * th.mw[i] / mw
	}
	return mw
}

func (th *idealThermo) HMolarMixture(x []float64) float64   { return th.cp * th.T }
func (th *idealThermo) CpMolarMixture(x []float64) float64  { return th.cp }
func (th *idealThermo) TemperatureFromEnthalpy(h, p float64, x []float64, Tguess float64) (float64, error) {
	return h / th.cp, nil
}

func testSimulation(t *testing.T, th ThermoMap) *Simulation {
	log := logrus.New()
	log.Out = ioutil.Discard
	s := &Simulation{
		Mesh: &Mesh{NCells: 3, Patches: []Patch{{Name: "inlet", NFaces: 1}}},
		Log:  log,
		InitFuncs: []DomainManipulator{
			InitialConditions(th, 300, 1e5, map[string]float64{"A": 1, "B": 3}),
		},
	}
	if err := s.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestOutputter(t *testing.T) {
	th := newIdealThermo()
	s := testSimulation(t, th)
	// No transport properties are evaluated: psi and rho come from the
	// state alone.
	s.Fields.T.Internal[1] = 600

	o, err := NewOutputter("", map[string]string{
		"T":     "T",
		"Tsq":   "pow(T, 2)",
		"rho":   "rho",
		"psi":   "psi",
		"XA":    "X_A * 100",
		"mw":    "mw",
		"hot":   "T > 500",
		"twice": "double(Y_B)",
	}, map[string]govaluate.ExpressionFunction{
		"double": func(arg ...interface{}) (interface{}, error) {
			return arg[0].(float64) * 2, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := o.CheckOutputVars(th)(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	r, err := o.Results(s, th)
	if err != nil {
		t.Fatal(err)
	}
	rho300 := 1e5 * 20 / (RJkmol * 300)
	want := map[string][]float64{
		"T":     {300, 600, 300},
		"Tsq":   {90000, 360000, 90000},
		"rho":   {rho300, rho300 / 2, rho300},
		"psi":   {rho300 / 1e5, rho300 / 2e5, rho300 / 1e5},
		"XA":    {50, 50, 50},
		"mw":    {20, 20, 20},
		"hot":   {0, 1, 0},
		"twice": {1.5, 1.5, 1.5},
	}
	for n, w := range want {
		for i, v := range w {
			if math.Abs(r[n][i]-v) > 1e-10*math.Max(1, math.Abs(v)) {
				t.Errorf("%s[%d]: have %g, want %g", n, i, r[n][i], v)
			}
		}
	}
}

func TestOutputterErrors(t *testing.T) {
	th := newIdealThermo()
	s := testSimulation(t, th)

	if _, err := NewOutputter("", nil, nil); err == nil {
		t.Error("no variables: should be an error")
	}
	if _, err := NewOutputter("", map[string]string{"x": "T +"}, nil); err == nil {
		t.Error("invalid expression: should be an error")
	}

	o, err := NewOutputter("", map[string]string{"x": "Y_C * 2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = o.CheckOutputVars(th)(context.Background(), s)
	if err == nil || !strings.Contains(err.Error(), "'Y_C'") {
		t.Errorf("wrong error: %v", err)
	}

	o, err = NewOutputter("", map[string]string{"x": "sqrt(T, T)"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Results(s, th); err == nil {
		t.Error("wrong number of arguments: should be an error")
	}
}

func TestOutput(t *testing.T) {
	dir, err := ioutil.TempDir("", "laminarsmoke")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "output.nc")

	th := newIdealThermo()
	s := testSimulation(t, th)
	s.Clock.Time = 0.5
	o, err := NewOutputter(fname, map[string]string{"T": "T", "XB": "X_B"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(th)(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	ff, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	if v := f.Header.Variables(); len(v) != 2 || v[0] != "T" || v[1] != "XB" {
		t.Errorf("wrong variables %v", v)
	}
	if u := f.Header.GetAttribute("T", "units").(string); u != "K" {
		t.Errorf("T units: have %s, want K", u)
	}
	if u := f.Header.GetAttribute("XB", "units").(string); u != "1" {
		t.Errorf("XB units: have %s, want 1", u)
	}
	r := f.Reader("XB", nil, nil)
	buf := r.Zero(3)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	for i, v := range buf.([]float64) {
		if math.Abs(v-0.5) > 1e-10 {
			t.Errorf("XB[%d] = %g, want 0.5", i, v)
		}
	}
}
