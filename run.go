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
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Version gives the version number.
const Version = "0.3.0"

// DomainManipulator is a class of functions that operate on the entire
// simulation.
type DomainManipulator func(ctx context.Context, s *Simulation) error

// Clock is the simulation clock. Time is the time at the end of the
// current step.
type Clock struct {
	Time    float64 // [s]
	Dt      float64 // [s]
	EndTime float64 // [s]
	Step    int
}

// Advance moves the clock forward by one time step.
func (c *Clock) Advance() {
	c.Time += c.Dt
	c.Step++
}

// Simulation holds the current state of a simulation.
type Simulation struct {
	Mesh   *Mesh
	Fields *Fields
	Clock  Clock

	// Log receives status messages. If nil, the logrus standard
	// logger is used.
	Log logrus.FieldLogger

	// InitFuncs are run once, in order, by Init.
	InitFuncs []DomainManipulator

	// RunFuncs are run in order at every step by Run, until one of
	// them sets Done.
	RunFuncs []DomainManipulator

	// Done is set when the simulation is finished.
	Done bool
}

func (s *Simulation) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Init initializes the simulation by running InitFuncs.
func (s *Simulation) Init(ctx context.Context) error {
	if s.Mesh == nil {
		return fmt.Errorf("laminarsmoke: simulation has no mesh")
	}
	if err := s.Mesh.Check(); err != nil {
		return err
	}
	for _, f := range s.InitFuncs {
		if err := f(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running RunFuncs until Done is set
// or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	for !s.Done {
		for _, f := range s.RunFuncs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// InitialConditions returns a function that allocates the fields for the
// species of thermo and sets a uniform temperature T [K], pressure p [Pa]
// and composition. The composition maps species names to mass fractions
// and is normalized to sum to one.
func InitialConditions(thermo ThermoMap, T, p float64, massFractions map[string]float64) DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		if T <= 0 || p <= 0 {
			return fmt.Errorf("laminarsmoke: initial conditions: invalid state T=%g K, p=%g Pa", T, p)
		}
		names := thermo.SpeciesNames()
		index := make(map[string]int, len(names))
		for i, n := range names {
			index[n] = i
		}
		y := make([]float64, len(names))
		for n, v := range massFractions {
			i, ok := index[n]
			if !ok {
				return fmt.Errorf("laminarsmoke: initial conditions: species '%s' is not in the mechanism", n)
			}
			if v < 0 {
				return fmt.Errorf("laminarsmoke: initial conditions: negative mass fraction %g for %s", v, n)
			}
			y[i] = v
		}
		sum := floats.Sum(y)
		if sum <= 0 {
			return fmt.Errorf("laminarsmoke: initial conditions: no species specified")
		}
		floats.Scale(1/sum, y)

		s.Fields = NewFields(s.Mesh, names, T, p)
		for i, Y := range s.Fields.Y {
			Y.Set(y[i])
		}
		return nil
	}
}

// CheckComposition returns a function that checks that the species mass
// fractions sum to one within tol at every cell and boundary face.
func CheckComposition(tol float64) DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		f := s.Fields
		sumAt := func(get func(*Field) float64) float64 {
			sum := 0.
			for _, Y := range f.Y {
				sum += get(Y)
			}
			return sum
		}
		for celli := 0; celli < s.Mesh.NCells; celli++ {
			sum := sumAt(func(Y *Field) float64 { return Y.Internal[celli] })
			if !(math.Abs(sum-1) <= tol) {
				return fmt.Errorf("laminarsmoke: mass fractions in cell %d sum to %g", celli, sum)
			}
		}
		for patchi, patch := range s.Mesh.Patches {
			for facei := 0; facei < patch.NFaces; facei++ {
				sum := sumAt(func(Y *Field) float64 { return Y.Boundary[patchi][facei] })
				if !(math.Abs(sum-1) <= tol) {
					return fmt.Errorf("laminarsmoke: mass fractions on patch %s face %d sum to %g",
						patch.Name, facei, sum)
				}
			}
		}
		return nil
	}
}

// AdvanceTime returns a function that moves the clock forward by one
// time step.
func AdvanceTime() DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		if s.Clock.Dt <= 0 {
			return fmt.Errorf("laminarsmoke: time step must be > 0, is %g", s.Clock.Dt)
		}
		s.Clock.Advance()
		return nil
	}
}

// EndTimeCheck returns a function that sets Done once the clock has
// reached its end time.
func EndTimeCheck() DomainManipulator {
	return func(ctx context.Context, s *Simulation) error {
		// Allow for round-off in the accumulated time.
		if s.Clock.Time >= s.Clock.EndTime-1e-9*s.Clock.Dt {
			s.Done = true
		}
		return nil
	}
}

// Log returns a function that writes simulation status messages to the
// simulation logger.
func Log() DomainManipulator {
	startTime := time.Now()
	stepTime := time.Now()

	return func(ctx context.Context, s *Simulation) error {
		T := s.Fields.T.Internal
		s.logger().WithFields(logrus.Fields{
			"step":         s.Clock.Step,
			"time":         s.Clock.Time,
			"walltime":     time.Since(startTime).Seconds(),
			"stepWalltime": time.Since(stepTime).Seconds(),
			"Tmin":         floats.Min(T),
			"Tmean":        stats.StatsMean(T),
			"Tmax":         floats.Max(T),
		}).Info("time step complete")
		stepTime = time.Now()
		return nil
	}
}
