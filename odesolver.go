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
	"sort"
	"strings"
	"sync"
)

// ODESystem is a system of ordinary differential equations dy/dt = f(t, y).
type ODESystem interface {
	// NumberOfEquations returns the length of the state vector.
	NumberOfEquations() int

	// Derivatives fills dy with f(t, y).
	Derivatives(t float64, y, dy []float64)
}

// ODESolver integrates an ODESystem.
type ODESolver interface {
	// Solve integrates y in place from t0 to t1, starting with a trial
	// step of dtStart. It returns the last step size that was accepted,
	// which is a good starting step for the next call.
	Solve(ctx context.Context, t0, t1 float64, y []float64, dtStart float64) (dtNext float64, err error)
}

// ODEOptions hold the settings shared by all ODE solvers.
type ODEOptions struct {
	AbsTol   float64 // absolute error tolerance
	RelTol   float64 // relative error tolerance
	MaxSteps int     // maximum number of steps per call to Solve
}

// DefaultODEOptions returns the default ODE solver settings.
func DefaultODEOptions() ODEOptions {
	return ODEOptions{
		AbsTol:   1e-12,
		RelTol:   1e-7,
		MaxSteps: 100000,
	}
}

// ODESolverFactory creates an ODE solver for the given system.
type ODESolverFactory func(sys ODESystem, o ODEOptions) (ODESolver, error)

var (
	odeSolversMx sync.RWMutex
	odeSolvers   = make(map[string]ODESolverFactory)
)

// RegisterODESolver makes an ODE solver available by name. It panics
// if a solver with the same name is already registered.
func RegisterODESolver(name string, f ODESolverFactory) {
	odeSolversMx.Lock()
	defer odeSolversMx.Unlock()
	if _, ok := odeSolvers[name]; ok {
		panic(fmt.Sprintf("laminarsmoke: ODE solver %s registered twice", name))
	}
	odeSolvers[name] = f
}

// ODESolvers returns the names of the registered ODE solvers.
func ODESolvers() []string {
	odeSolversMx.RLock()
	defer odeSolversMx.RUnlock()
	names := make([]string, 0, len(odeSolvers))
	for n := range odeSolvers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewODESolver returns a new instance of the ODE solver registered
// under name, set up to integrate sys.
func NewODESolver(name string, sys ODESystem, o ODEOptions) (ODESolver, error) {
	odeSolversMx.RLock()
	f, ok := odeSolvers[name]
	odeSolversMx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("laminarsmoke: invalid ODE solver '%s'; valid options are %s",
			name, strings.Join(ODESolvers(), ", "))
	}
	if o.AbsTol <= 0 || o.RelTol <= 0 {
		return nil, fmt.Errorf("laminarsmoke: ODE tolerances must be > 0 (AbsTol=%g, RelTol=%g)", o.AbsTol, o.RelTol)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultODEOptions().MaxSteps
	}
	return f(sys, o)
}
