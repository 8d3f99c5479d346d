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

	"github.com/laminarsmoke/laminarsmoke"
)

// Runge-Kutta-Fehlberg tableau.
var (
	rkfC = [6]float64{0, 1. / 4, 3. / 8, 12. / 13, 1, 1. / 2}
	rkfA = [6][5]float64{
		{},
		{1. / 4},
		{3. / 32, 9. / 32},
		{1932. / 2197, -7200. / 2197, 7296. / 2197},
		{439. / 216, -8, 3680. / 513, -845. / 4104},
		{-8. / 27, 2, -3544. / 2565, 1859. / 4104, -11. / 40},
	}
	// fifth order weights
	rkfB5 = [6]float64{16. / 135, 0, 6656. / 12825, 28561. / 56430, -9. / 50, 2. / 55}
	// fourth order weights
	rkfB4 = [6]float64{25. / 216, 0, 1408. / 2565, 2197. / 4104, -1. / 5, 0}
)

// RKF45 is an adaptive explicit Runge-Kutta-Fehlberg 4(5) integrator.
// It is suitable for non-stiff systems.
type RKF45 struct {
	integrator
	k       [6][]float64
	tmp, y4 []float64
}

// NewRKF45 returns a new RKF45 integrator for sys.
func NewRKF45(sys laminarsmoke.ODESystem, o laminarsmoke.ODEOptions) *RKF45 {
	n := sys.NumberOfEquations()
	r := &RKF45{
		integrator: integrator{sys: sys, o: o},
		tmp:        make([]float64, n),
		y4:         make([]float64, n),
	}
	for i := range r.k {
		r.k[i] = make([]float64, n)
	}
	return r
}

// Solve implements laminarsmoke.ODESolver.
func (r *RKF45) Solve(ctx context.Context, t0, t1 float64, y []float64, dtStart float64) (float64, error) {
	return r.solve(ctx, "RKF45", r.step, t0, t1, y, dtStart)
}

func (r *RKF45) step(t, h float64, y, yNew []float64) (float64, int, error) {
	for s := 0; s < 6; s++ {
		for i := range y {
			v := y[i]
			for j := 0; j < s; j++ {
				v += h * rkfA[s][j] * r.k[j][i]
			}
			r.tmp[i] = v
		}
		r.sys.Derivatives(t+rkfC[s]*h, r.tmp, r.k[s])
	}
	for i := range y {
		v5, v4 := y[i], y[i]
		for s := 0; s < 6; s++ {
			v5 += h * rkfB5[s] * r.k[s][i]
			v4 += h * rkfB4[s] * r.k[s][i]
		}
		yNew[i] = v5
		r.y4[i] = v4
	}
	return errNorm(r.o, y, yNew, r.y4), 4, nil
}
