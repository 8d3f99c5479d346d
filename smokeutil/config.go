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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/laminarsmoke/laminarsmoke"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// RunSettings holds the settings of a homogeneous simulation.
type RunSettings struct {
	// Mechanism is the path to the TOML mechanism file.
	Mechanism string

	Mesh laminarsmoke.Mesh

	// InitialTemperature [K] and Pressure [Pa] are uniform.
	InitialTemperature, Pressure float64

	// MassFractions are the initial species mass fractions.
	MassFractions map[string]float64

	// Dt is the time step and EndTime the simulated time [s].
	Dt, EndTime float64

	Chemistry laminarsmoke.ChemistryConfig

	// Transport specifies whether transport properties are evaluated.
	Transport bool

	CompositionTolerance float64

	OutputFile, LogFile string
	OutputVariables     map[string]string
}

// RunSettingsFromConfig reads and checks the simulation settings in cfg.
func RunSettingsFromConfig(cfg *viper.Viper) (*RunSettings, error) {
	s := &RunSettings{
		InitialTemperature:   cfg.GetFloat64("InitialTemperature"),
		Pressure:             cfg.GetFloat64("Pressure"),
		Dt:                   cfg.GetFloat64("Dt"),
		EndTime:              cfg.GetFloat64("EndTime"),
		Transport:            cfg.GetBool("Transport"),
		CompositionTolerance: cfg.GetFloat64("CompositionTolerance"),
		Chemistry: laminarsmoke.ChemistryConfig{
			Solver: cfg.GetString("Chemistry.Solver"),
			ODE: laminarsmoke.ODEOptions{
				AbsTol:   cfg.GetFloat64("Chemistry.AbsTol"),
				RelTol:   cfg.GetFloat64("Chemistry.RelTol"),
				MaxSteps: cfg.GetInt("Chemistry.MaxSteps"),
			},
			DtStart:        cfg.GetFloat64("Chemistry.DtStart"),
			MinTemperature: cfg.GetFloat64("Chemistry.MinTemperature"),
		},
	}
	var err error
	if s.Mechanism, err = checkInputFile("Mechanism", cfg.GetString("Mechanism")); err != nil {
		return nil, err
	}
	retries, err := cast.ToIntE(cfg.Get("Chemistry.MaxRetries"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("laminarsmoke: Chemistry.MaxRetries must be a non-negative integer, is %v", cfg.Get("Chemistry.MaxRetries"))
	}
	s.Chemistry.MaxRetries = uint64(retries)

	if s.Mesh, err = meshConfig(cfg); err != nil {
		return nil, err
	}
	if s.Dt <= 0 || s.EndTime <= 0 {
		return nil, fmt.Errorf("laminarsmoke: Dt and EndTime must be > 0, are %g and %g", s.Dt, s.EndTime)
	}
	if s.CompositionTolerance <= 0 {
		return nil, fmt.Errorf("laminarsmoke: CompositionTolerance must be > 0, is %g", s.CompositionTolerance)
	}

	y, err := GetStringMapString("MassFractions", cfg)
	if err != nil {
		return nil, err
	}
	if s.MassFractions, err = toFloatMap("MassFractions", y); err != nil {
		return nil, err
	}

	if s.OutputFile, err = checkOutputFile(cfg.GetString("OutputFile")); err != nil {
		return nil, err
	}
	s.LogFile = checkLogFile(os.ExpandEnv(cfg.GetString("LogFile")), s.OutputFile)

	vars, err := GetStringMapString("OutputVariables", cfg)
	if err != nil {
		return nil, err
	}
	if s.OutputVariables, err = checkOutputVars(vars); err != nil {
		return nil, err
	}
	return s, nil
}

// meshConfig returns the mesh described by the Mesh.NCells and
// Mesh.Patches settings. Patches are ordered by name.
func meshConfig(cfg *viper.Viper) (laminarsmoke.Mesh, error) {
	m := laminarsmoke.Mesh{NCells: cfg.GetInt("Mesh.NCells")}
	patches, err := GetStringMapString("Mesh.Patches", cfg)
	if err != nil {
		return m, err
	}
	names := make([]string, 0, len(patches))
	for n := range patches {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		nf, err := cast.ToIntE(patches[n])
		if err != nil {
			return m, fmt.Errorf("laminarsmoke: invalid number of faces '%s' for patch %s", patches[n], n)
		}
		m.Patches = append(m.Patches, laminarsmoke.Patch{Name: n, NFaces: nf})
	}
	if err := m.Check(); err != nil {
		return m, err
	}
	return m, nil
}

// toFloatMap converts the values of a string map to numbers.
func toFloatMap(varName string, m map[string]string) (map[string]float64, error) {
	o := make(map[string]float64, len(m))
	for k, v := range m {
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("laminarsmoke: invalid value '%s' for %s in %s", v, k, varName)
		}
		o[k] = f
	}
	return o, nil
}

// checkTemperatures converts a list of temperatures [K] to numbers.
func checkTemperatures(s []string) ([]float64, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("laminarsmoke: no temperatures specified")
	}
	o := make([]float64, len(s))
	for i, v := range s {
		T, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil || !(T > 0) {
			return nil, fmt.Errorf("laminarsmoke: invalid temperature '%s'", v)
		}
		o[i] = T
	}
	return o, nil
}

// checkInputFile makes sure that the input file is specified and exists,
// and expands any environment variables.
func checkInputFile(varName, f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("laminarsmoke: you need to specify the %s configuration variable", varName)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("laminarsmoke: %s: %v", varName, err)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`laminarsmoke: you need to specify an output file configuration variable (for example: OutputFile="output.nc")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("laminarsmoke: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return logFile
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("laminarsmoke: there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again")
	}
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if v == "" {
			return make(map[string]string), nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("laminarsmoke: invalid value for %s: %v", varName, err)
		}
		return o, nil
	case nil:
		return make(map[string]string), nil
	default:
		return nil, fmt.Errorf("laminarsmoke: invalid type for %s: %#v", varName, i)
	}
}
