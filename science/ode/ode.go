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

// Package ode contains small ODE integrators that are registered with
// github.com/laminarsmoke/laminarsmoke by name:
//
//	RKF45          adaptive explicit Runge-Kutta-Fehlberg 4(5)
//	EulerImplicit  adaptive backward Euler with Newton iterations
//
// Import it for its side effects:
//
//	import _ "github.com/laminarsmoke/laminarsmoke/science/ode"
package ode

import (
	"context"
	"fmt"
	"math"

	"github.com/laminarsmoke/laminarsmoke"
)

func init() {
	laminarsmoke.RegisterODESolver("RKF45", func(sys laminarsmoke.ODESystem, o laminarsmoke.ODEOptions) (laminarsmoke.ODESolver, error) {
		return NewRKF45(sys, o), nil
	})
	laminarsmoke.RegisterODESolver("EulerImplicit", func(sys laminarsmoke.ODESystem, o laminarsmoke.ODEOptions) (laminarsmoke.ODESolver, error) {
		return NewEulerImplicit(sys, o), nil
	})
}

const (
	safety    = 0.9
	minFactor = 0.2
	maxFactor = 5.
)

// errNorm returns the maximum over all components of the difference
// between a and b scaled by the mixed absolute/relative tolerance.
func errNorm(o laminarsmoke.ODEOptions, y, a, b []float64) float64 {
	e := 0.
	for i := range a {
		sc := o.AbsTol + o.RelTol*math.Max(math.Abs(y[i]), math.Abs(a[i]))
		e = math.Max(e, math.Abs(a[i]-b[i])/sc)
	}
	return e
}

// stepFactor returns the factor by which to scale the step size given
// the error norm of the last step and the order of the error estimate.
func stepFactor(err float64, order int) float64 {
	if err == 0 {
		return maxFactor
	}
	f := safety * math.Pow(err, -1/float64(order+1))
	return math.Max(minFactor, math.Min(maxFactor, f))
}

// integrator holds the bookkeeping shared by the solvers.
type integrator struct {
	sys laminarsmoke.ODESystem
	o   laminarsmoke.ODEOptions
}

// step attempts a single step of size h from (t, y). It returns the
// candidate solution in yNew, the error norm and the order of the error
// estimate. A non-nil error means the step could not be attempted and
// should be retried with a smaller step.
type stepFunc func(t, h float64, y, yNew []float64) (errNorm float64, order int, err error)

// solve drives an adaptive step function from t0 to t1.
func (in *integrator) solve(ctx context.Context, name string, step stepFunc, t0, t1 float64, y []float64, dtStart float64) (float64, error) {
	if len(y) != in.sys.NumberOfEquations() {
		return 0, fmt.Errorf("ode: %s: state has length %d but system has %d equations", name, len(y), in.sys.NumberOfEquations())
	}
	if t1 <= t0 {
		return dtStart, nil
	}
	h := dtStart
	if !(h > 0) {
		h = (t1 - t0) * 1e-6
	}
	yNew := make([]float64, len(y))
	t := t0
	hAccepted := h
	for n := 0; ; n++ {
		if n >= in.o.MaxSteps {
			return hAccepted, fmt.Errorf("ode: %s: exceeded %d steps at t=%g", name, in.o.MaxSteps, t)
		}
		if err := ctx.Err(); err != nil {
			return hAccepted, err
		}
		last := false
		hStep := h
		if t+hStep >= t1 {
			hStep = t1 - t
			last = true
		}
		if hStep <= math.Abs(t)*1e-15 || hStep < math.SmallestNonzeroFloat64 {
			return hAccepted, fmt.Errorf("ode: %s: step size underflow at t=%g", name, t)
		}
		e, order, err := step(t, hStep, y, yNew)
		if err != nil || math.IsNaN(e) || math.IsInf(e, 0) {
			h = hStep * minFactor
			continue
		}
		if e > 1 {
			h = hStep * stepFactor(e, order)
			continue
		}
		copy(y, yNew)
		if last {
			return hAccepted, nil
		}
		t += hStep
		hAccepted = hStep
		h = hStep * stepFactor(e, order)
	}
}
