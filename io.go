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
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/cdf"
	"github.com/ctessum/unit"
)

// Outputter is a holder for output parameters.
//
// outputVariables maps the names of the variables for which data
// should be written to expressions that define how the
// requested data should be calculated. These expressions can utilize
// the model variables listed by ModelVariables and the functions in
// outputFunctions.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression
}

// NewOutputter initializes a new Outputter holder and adds a set of default
// output functions. Default functions include:
//
// 'exp(x)', 'log(x)' and 'sqrt(x)', which apply the corresponding
// mathematical functions, and 'pow(x, y)' which calculates x^y.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	if len(outputVariables) == 0 {
		return nil, fmt.Errorf("laminarsmoke: there are no output variables")
	}
	oneArg := func(name string, f func(float64) float64) govaluate.ExpressionFunction {
		return func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("laminarsmoke: got %d arguments for function '%s', but needs 1", len(arg), name)
			}
			v, ok := arg[0].(float64)
			if !ok {
				return nil, fmt.Errorf("laminarsmoke: argument to function '%s' is not a number", name)
			}
			return f(v), nil
		}
	}
	funcs := map[string]govaluate.ExpressionFunction{
		"exp":  oneArg("exp", math.Exp),
		"log":  oneArg("log", math.Log),
		"sqrt": oneArg("sqrt", math.Sqrt),
		"pow": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("laminarsmoke: got %d arguments for function 'pow', but needs 2", len(arg))
			}
			x, ok1 := arg[0].(float64)
			y, ok2 := arg[1].(float64)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("laminarsmoke: arguments to function 'pow' are not numbers")
			}
			return math.Pow(x, y), nil
		},
	}
	for k, v := range outputFunctions {
		funcs[k] = v
	}
	o := &Outputter{
		fileName:        fileName,
		outputVariables: outputVariables,
		outputFunctions: funcs,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
	}
	for name, expr := range outputVariables {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("laminarsmoke: output variable %s: %v", name, err)
		}
		o.expressions[name] = e
	}
	return o, nil
}

// ModelVariables returns the names of the per-cell model variables that
// can be used in output expressions, along with their units.
func ModelVariables(species []string) map[string]unit.Dimensions {
	v := map[string]unit.Dimensions{
		"T":      temperatureUnits,
		"p":      pressureUnits,
		"psi":    psiUnits,
		"rho":    densityUnits,
		"cp":     cpUnits,
		"eta":    viscosityUnits,
		"lambda": conductivityUnits,
		"mw":     molarMassUnits,
	}
	for _, s := range species {
		v["Y_"+s] = fractionUnits
		v["X_"+s] = fractionUnits
		v["D_"+s] = diffusivityUnits
	}
	return v
}

// CheckOutputVars returns a function that checks that every variable used
// in the output expressions is a model variable.
func (o *Outputter) CheckOutputVars(thermo ThermoMap) DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		mv := ModelVariables(thermo.SpeciesNames())
		for _, name := range o.names() {
			for _, v := range o.expressions[name].Vars() {
				if _, ok := mv[v]; !ok {
					return fmt.Errorf("laminarsmoke: output variable %s: undefined variable name '%s'", name, v)
				}
			}
		}
		return nil
	}
}

func (o *Outputter) names() []string {
	names := make([]string, 0, len(o.expressions))
	for n := range o.expressions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// cellParameters fills params with the model variables at cell celli.
func cellParameters(params map[string]interface{}, f *Fields, thermo ThermoMap, species []string, y, x []float64, celli int) {
	T, p := f.T.Internal[celli], f.P.Internal[celli]
	for i, Y := range f.Y {
		y[i] = Y.Internal[celli]
	}
	mw := thermo.MoleFractionsFromMassFractions(x, y)
	// psi and rho follow the current state even when the transport
	// properties are not evaluated.
	psi := mw / (RJkmol * T)
	params["T"] = T
	params["p"] = p
	params["mw"] = mw
	params["psi"] = psi
	params["rho"] = p * psi
	params["cp"] = f.Cp.Internal[celli]
	params["eta"] = f.Eta.Internal[celli]
	params["lambda"] = f.Lambda.Internal[celli]
	for i, s := range species {
		params["Y_"+s] = y[i]
		params["X_"+s] = x[i]
		params["D_"+s] = f.GammaMix[i].Internal[celli]
	}
}

// Results returns the values of the output variables at every interior
// cell of the simulation.
func (o *Outputter) Results(s *Simulation, thermo ThermoMap) (map[string][]float64, error) {
	species := thermo.SpeciesNames()
	if err := s.Fields.Check(s.Mesh, len(species)); err != nil {
		return nil, err
	}
	y := make([]float64, len(species))
	x := make([]float64, len(species))
	params := make(map[string]interface{})
	names := o.names()
	r := make(map[string][]float64, len(names))
	for _, n := range names {
		r[n] = make([]float64, s.Mesh.NCells)
	}
	for celli := 0; celli < s.Mesh.NCells; celli++ {
		cellParameters(params, s.Fields, thermo, species, y, x, celli)
		for _, n := range names {
			v, err := o.expressions[n].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("laminarsmoke: evaluating output variable %s in cell %d: %v", n, celli, err)
			}
			switch vv := v.(type) {
			case float64:
				r[n][celli] = vv
			case bool:
				if vv {
					r[n][celli] = 1
				}
			default:
				return nil, fmt.Errorf("laminarsmoke: output variable %s evaluates to %T, not a number", n, v)
			}
		}
	}
	return r, nil
}

// Output returns a function that writes the output variables at every
// interior cell to a NetCDF file.
func (o *Outputter) Output(thermo ThermoMap) DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		results, err := o.Results(s, thermo)
		if err != nil {
			return err
		}
		mv := ModelVariables(thermo.SpeciesNames())
		names := o.names()

		h := cdf.NewHeader([]string{"cell"}, []int{s.Mesh.NCells})
		h.AddAttribute("", "comment", "laminarSMOKE homogeneous chemistry results")
		h.AddAttribute("", "time", []float64{s.Clock.Time})
		for _, n := range names {
			h.AddVariable(n, []string{"cell"}, []float64{0})
			h.AddAttribute(n, "description", o.outputVariables[n])
			if u, ok := mv[o.outputVariables[n]]; ok {
				us := u.String()
				if us == "" {
					us = "1"
				}
				h.AddAttribute(n, "units", us)
			}
		}
		h.Define()

		ff, err := os.Create(o.fileName)
		if err != nil {
			return fmt.Errorf("laminarsmoke: creating output file: %v", err)
		}
		defer ff.Close()
		f, err := cdf.Create(ff, h)
		if err != nil {
			return fmt.Errorf("laminarsmoke: writing output file header: %v", err)
		}
		for _, n := range names {
			end := f.Header.Lengths(n)
			start := make([]int, len(end))
			w := f.Writer(n, start, end)
			if _, err := w.Write(results[n]); err != nil {
				return fmt.Errorf("laminarsmoke: writing output variable %s: %v", n, err)
			}
		}
		return nil
	}
}
