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

package smokeutil

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/laminarsmoke/laminarsmoke"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
)

func TestVersion(t *testing.T) {
	var b bytes.Buffer
	Root.SetOutput(&b)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "laminarSMOKE v" + laminarsmoke.Version; !strings.Contains(b.String(), want) {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestGrammar(t *testing.T) {
	var b bytes.Buffer
	Root.SetOutput(&b)
	Root.SetArgs([]string{"grammar"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "@SparsityPatternAnalysis") {
		t.Errorf("missing keyword in %s", b.String())
	}
}

func TestTables(t *testing.T) {
	var b bytes.Buffer
	Root.SetOutput(&b)
	Cfg.Set("Mechanism", "testdata/onestep.toml")
	Cfg.Set("SparsityPattern", true)
	defer Cfg.Set("SparsityPattern", false)
	dir, err := ioutil.TempDir("", "laminarsmoke")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	xlsxFile := filepath.Join(dir, "tables.xlsx")
	plotFile := filepath.Join(dir, "arrhenius.png")
	Cfg.Set("TablesSpreadsheet", xlsxFile)
	Cfg.Set("ArrheniusPlot", plotFile)
	defer Cfg.Set("TablesSpreadsheet", "")
	defer Cfg.Set("ArrheniusPlot", "")

	Root.SetArgs([]string{"tables"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"k(2500 K)", "non-zero elements"} {
		if !strings.Contains(b.String(), s) {
			t.Errorf("output missing %q:\n%s", s, b.String())
		}
	}
	x, err := xlsx.OpenFile(xlsxFile)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := x.Sheet["Reaction tables"]; !ok || s.Cell(0, 8).Value != "k(2500 K)" {
		t.Error("wrong spreadsheet")
	}
	if _, err := os.Stat(plotFile); err != nil {
		t.Error(err)
	}
}

// readVar reads a variable from a NetCDF file, matching its name
// without regard to case.
func readVar(t *testing.T, f *cdf.File, name string) []float64 {
	for _, v := range f.Header.Variables() {
		if !strings.EqualFold(v, name) {
			continue
		}
		n := 1
		for _, l := range f.Header.Lengths(v) {
			n *= l
		}
		r := f.Reader(v, nil, nil)
		buf := r.Zero(n)
		if _, err := r.Read(buf); err != nil {
			t.Fatal(err)
		}
		return buf.([]float64)
	}
	t.Fatalf("variable %s not found in %v", name, f.Header.Variables())
	return nil
}

func TestRun(t *testing.T) {
	Cfg.Set("config", "testdata/config.toml")
	defer Cfg.Set("config", "")
	defer Cfg.Set("Transport", true)
	for _, transport := range []bool{true, false} {
		t.Run(fmt.Sprintf("transport=%v", transport), func(t *testing.T) {
			testRun(t, transport)
		})
	}
}

func testRun(t *testing.T, transport bool) {
	var b bytes.Buffer
	Root.SetOutput(&b)
	Cfg.Set("Transport", transport)
	defer os.Remove("testdata/output.nc")
	defer os.Remove("testdata/output.log")
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}

	ff, err := os.Open("testdata/output.nc")
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	T := readVar(t, f, "T")
	yCO2 := readVar(t, f, "Y_CO2")
	rho := readVar(t, f, "rho")
	if len(T) != 3 {
		t.Fatalf("have %d cells, want 3", len(T))
	}
	for i := range T {
		if T[i] <= 1000 || T[i] > 1100 {
			t.Errorf("cell %d: temperature %g K", i, T[i])
		}
		if yCO2[i] <= 0 {
			t.Errorf("cell %d: no CO2 produced", i)
		}
		// The density does not depend on whether transport properties
		// are evaluated.
		if different(rho[i], 101325*28.0/(8314.4621*T[i]), 0.05) {
			t.Errorf("cell %d: density %g", i, rho[i])
		}
	}

	log, err := ioutil.ReadFile("testdata/output.log")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(log), "simulation complete") {
		t.Errorf("log file is incomplete:\n%s", log)
	}
}

func TestRunSettingsErrors(t *testing.T) {
	valid := func() *viper.Viper {
		cfg := viper.New()
		cfg.Set("Mechanism", "testdata/onestep.toml")
		cfg.Set("Mesh.NCells", 2)
		cfg.Set("Dt", 1e-4)
		cfg.Set("EndTime", 1e-3)
		cfg.Set("CompositionTolerance", 1e-6)
		cfg.Set("Chemistry.MaxRetries", 3)
		cfg.Set("MassFractions", map[string]interface{}{"CH4": 0.1, "N2": 0.9})
		cfg.Set("OutputFile", "testdata/x.nc")
		cfg.Set("OutputVariables", `{"T": "T"}`)
		return cfg
	}
	s, err := RunSettingsFromConfig(valid())
	if err != nil {
		t.Fatal(err)
	}
	if s.MassFractions["CH4"] != 0.1 || s.LogFile != "testdata/x.log" || s.Chemistry.MaxRetries != 3 {
		t.Errorf("wrong settings: %+v", s)
	}

	for _, test := range []struct {
		name string
		key  string
		val  interface{}
	}{
		{name: "mechanism", key: "Mechanism", val: "testdata/xxx.toml"},
		{name: "no mechanism", key: "Mechanism", val: ""},
		{name: "cells", key: "Mesh.NCells", val: 0},
		{name: "patches", key: "Mesh.Patches", val: `{"inlet": "x"}`},
		{name: "dt", key: "Dt", val: 0.},
		{name: "retries", key: "Chemistry.MaxRetries", val: -1},
		{name: "mass fractions", key: "MassFractions", val: `{"CH4": "a lot"}`},
		{name: "output dir", key: "OutputFile", val: "xxx/yyy/out.nc"},
		{name: "output vars", key: "OutputVariables", val: `{}`},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			cfg.Set(test.key, test.val)
			if _, err := RunSettingsFromConfig(cfg); err == nil {
				t.Error("should be an error")
			}
		})
	}
}

func TestMatchSpecies(t *testing.T) {
	species := []string{"CH4", "O2", "N2"}
	y, err := matchSpecies(species, map[string]float64{"ch4": 0.1, "N2": 0.9})
	if err != nil {
		t.Fatal(err)
	}
	if y["CH4"] != 0.1 || y["N2"] != 0.9 {
		t.Errorf("have %v", y)
	}
	if _, err := matchSpecies(species, map[string]float64{"Ar": 1}); err == nil {
		t.Error("should be an error")
	}
	if _, err := matchSpecies(species, map[string]float64{"o2": 0.5, "O2": 0.5}); err == nil {
		t.Error("should be an error")
	}
}

func TestPreprocess(t *testing.T) {
	out := filepath.Join("testdata", "preproc_output")
	defer os.RemoveAll(out)
	var b bytes.Buffer
	log := logrus.New()
	log.Out = ioutil.Discard
	c, err := Preprocess(&b, log, filepath.Join("testdata", "preproc.dic"), "CHEMKIN_PreProcessor")
	if err != nil {
		t.Fatal(err)
	}
	if c.Output != out || !c.RewriteCHEMKIN {
		t.Errorf("wrong settings: %+v", c)
	}
	tables, err := ioutil.ReadFile(filepath.Join(out, ReactionTablesFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(tables), "k(2000 K)") {
		t.Errorf("wrong reaction tables:\n%s", tables)
	}
	if _, err := os.Stat(filepath.Join(out, SparsityPatternFile)); err != nil {
		t.Error(err)
	}
	if !strings.Contains(b.String(), "Thermodynamics") {
		t.Errorf("settings not printed:\n%s", b.String())
	}

	if _, err := Preprocess(&b, log, filepath.Join("testdata", "preproc.dic"), "xxx"); err == nil {
		t.Error("should be an error")
	}
}

func TestPreprocCommandInvalid(t *testing.T) {
	dir, err := ioutil.TempDir("", "laminarsmoke")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "input.dic")
	// @ReactionTables without @Kinetics.
	in := "Dictionary CHEMKIN_PreProcessor { @Thermodynamics t; @Output o; @ReactionTables true; }"
	if err := ioutil.WriteFile(f, []byte(in), 0644); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	Root.SetOutput(&b)
	Root.SetArgs([]string{"preproc", f})
	err = Root.Execute()
	if err == nil || !strings.Contains(err.Error(), "requires @Kinetics") {
		t.Errorf("wrong error: %v", err)
	}
}

func different(a, b, tolerance float64) bool {
	return 2*(a-b)/(a+b) > tolerance || 2*(b-a)/(a+b) > tolerance
}
