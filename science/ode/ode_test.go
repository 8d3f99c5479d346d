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

package ode

import (
	"context"
	"math"
	"testing"

	"github.com/laminarsmoke/laminarsmoke"
)

// decay is dy_i/dt = -k_i y_i.
type decay struct {
	k     []float64
	calls int
}

func (d *decay) NumberOfEquations() int { return len(d.k) }

func (d *decay) Derivatives(t float64, y, dy []float64) {
	d.calls++
	for i, k := range d.k {
		dy[i] = -k * y[i]
	}
}

func TestRegistered(t *testing.T) {
	have := make(map[string]bool)
	for _, n := range laminarsmoke.ODESolvers() {
		have[n] = true
	}
	for _, n := range []string{"RKF45", "EulerImplicit"} {
		if !have[n] {
			t.Errorf("solver %s is not registered", n)
		}
	}
}

func TestExponentialDecay(t *testing.T) {
	for _, test := range []struct {
		solver    string
		k         []float64
		tolerance float64
	}{
		{solver: "RKF45", k: []float64{1, 3}, tolerance: 1e-5},
		{solver: "EulerImplicit", k: []float64{1, 3}, tolerance: 1e-2},
		{solver: "EulerImplicit", k: []float64{1, 1e4}, tolerance: 1e-2},
	} {
		t.Run(test.solver, func(t *testing.T) {
			sys := &decay{k: test.k}
			o := laminarsmoke.DefaultODEOptions()
			o.RelTol = 1e-8
			o.AbsTol = 1e-14
			s, err := laminarsmoke.NewODESolver(test.solver, sys, o)
			if err != nil {
				t.Fatal(err)
			}
			y := []float64{1, 1}
			ctx := context.Background()
			// Two consecutive calls, as in successive time steps.
			dt, err := s.Solve(ctx, 0, 0.5, y, 1e-6)
			if err != nil {
				t.Fatal(err)
			}
			if !(dt > 0) {
				t.Errorf("invalid next step %g", dt)
			}
			if _, err = s.Solve(ctx, 0.5, 1, y, dt); err != nil {
				t.Fatal(err)
			}
			for i, k := range test.k {
				want := math.Exp(-k)
				if math.Abs(y[i]-want) > test.tolerance*math.Max(want, 1e-3) {
					t.Errorf("y[%d]: have %g, want %g", i, y[i], want)
				}
			}
		})
	}
}

func TestMaxSteps(t *testing.T) {
	sys := &decay{k: []float64{1}}
	o := laminarsmoke.DefaultODEOptions()
	o.MaxSteps = 3
	s := NewRKF45(sys, o)
	if _, err := s.Solve(context.Background(), 0, 100, []float64{1}, 1e-9); err == nil {
		t.Error("should be an error")
	}
}

func TestCancel(t *testing.T) {
	sys := &decay{k: []float64{1}}
	s := NewEulerImplicit(sys, laminarsmoke.DefaultODEOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Solve(ctx, 0, 1, []float64{1}, 1e-3); err != context.Canceled {
		t.Errorf("have %v, want %v", err, context.Canceled)
	}
}

func TestLengthMismatch(t *testing.T) {
	sys := &decay{k: []float64{1, 2}}
	s := NewRKF45(sys, laminarsmoke.DefaultODEOptions())
	if _, err := s.Solve(context.Background(), 0, 1, []float64{1}, 1e-3); err == nil {
		t.Error("should be an error")
	}
}
