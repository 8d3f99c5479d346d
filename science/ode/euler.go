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
	"fmt"
	"math"

	"github.com/laminarsmoke/laminarsmoke"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// maxNewton is the maximum number of Newton iterations per implicit
// step.
const maxNewton = 8

// EulerImplicit is an adaptive backward Euler integrator for stiff
// systems. Each step is compared with two half steps to estimate the
// local error, and the implicit equations are solved by Newton
// iterations with a finite-difference Jacobian.
type EulerImplicit struct {
	integrator
	n int

	jac     *mat.Dense
	f0, rhs []float64
	half    []float64
	dx      *mat.VecDense
}

// NewEulerImplicit returns a new EulerImplicit integrator for sys.
func NewEulerImplicit(sys laminarsmoke.ODESystem, o laminarsmoke.ODEOptions) *EulerImplicit {
	n := sys.NumberOfEquations()
	return &EulerImplicit{
		integrator: integrator{sys: sys, o: o},
		n:          n,
		jac:        mat.NewDense(n, n, nil),
		f0:         make([]float64, n),
		rhs:        make([]float64, n),
		half:       make([]float64, n),
		dx:         mat.NewVecDense(n, nil),
	}
}

// Solve implements laminarsmoke.ODESolver.
func (e *EulerImplicit) Solve(ctx context.Context, t0, t1 float64, y []float64, dtStart float64) (float64, error) {
	if e.n == 0 {
		return dtStart, nil
	}
	return e.solve(ctx, "EulerImplicit", e.step, t0, t1, y, dtStart)
}

func (e *EulerImplicit) step(t, h float64, y, yNew []float64) (float64, int, error) {
	full := make([]float64, e.n)
	if err := e.backward(t, h, y, full); err != nil {
		return 0, 0, err
	}
	if err := e.backward(t, h/2, y, e.half); err != nil {
		return 0, 0, err
	}
	if err := e.backward(t+h/2, h/2, e.half, yNew); err != nil {
		return 0, 0, err
	}
	return errNorm(e.o, y, yNew, full), 1, nil
}

// backward solves z = y + h f(t+h, z) for z.
func (e *EulerImplicit) backward(t, h float64, y, z []float64) error {
	f := func(dy, x []float64) { e.sys.Derivatives(t+h, x, dy) }

	// Newton matrix I - h J, with J evaluated at the start of the step.
	e.sys.Derivatives(t+h, y, e.f0)
	fd.Jacobian(e.jac, f, y, &fd.JacobianSettings{
		Formula:     fd.Forward,
		OriginValue: e.f0,
	})
	e.jac.Scale(-h, e.jac)
	for i := 0; i < e.n; i++ {
		e.jac.Set(i, i, 1+e.jac.At(i, i))
	}

	copy(z, y)
	for it := 0; it < maxNewton; it++ {
		// residual -(z - y - h f(z))
		e.sys.Derivatives(t+h, z, e.f0)
		for i := range z {
			e.rhs[i] = y[i] + h*e.f0[i] - z[i]
		}
		if err := e.dx.SolveVec(e.jac, mat.NewVecDense(e.n, e.rhs)); err != nil {
			return fmt.Errorf("ode: EulerImplicit: %v", err)
		}
		conv := 0.
		for i := range z {
			d := e.dx.AtVec(i)
			z[i] += d
			sc := e.o.AbsTol + e.o.RelTol*math.Abs(z[i])
			conv = math.Max(conv, math.Abs(d)/sc)
		}
		if math.IsNaN(conv) {
			break
		}
		if conv <= 0.1 {
			return nil
		}
	}
	return fmt.Errorf("ode: EulerImplicit: Newton iterations did not converge at t=%g", t+h)
}
