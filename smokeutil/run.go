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
	"context"
	"fmt"
	"strings"

	"github.com/laminarsmoke/laminarsmoke"
	"github.com/sirupsen/logrus"

	// Register the ODE solvers.
	_ "github.com/laminarsmoke/laminarsmoke/science/ode"
)

// Run runs a homogeneous simulation with the given settings, writes the
// results to s.OutputFile and returns the final state of the simulation.
func Run(ctx context.Context, log logrus.FieldLogger, s *RunSettings) (*laminarsmoke.Simulation, error) {
	log.WithFields(logrus.Fields{
		"mechanism": s.Mechanism,
		"cells":     s.Mesh.NCells,
		"faces":     s.Mesh.NFaces(),
		"solver":    s.Chemistry.Solver,
	}).Info("starting simulation")

	m, err := loadMechanism(ctx, s.Mechanism)
	if err != nil {
		return nil, err
	}
	thermo := m.Thermo()
	y, err := matchSpecies(thermo.SpeciesNames(), s.MassFractions)
	if err != nil {
		return nil, err
	}

	o, err := laminarsmoke.NewOutputter(s.OutputFile, s.OutputVariables, nil)
	if err != nil {
		return nil, err
	}
	chemistry, err := laminarsmoke.Chemistry(thermo, m.Kinetics(), s.Chemistry)
	if err != nil {
		return nil, err
	}

	mesh := s.Mesh
	sim := &laminarsmoke.Simulation{
		Mesh:  &mesh,
		Clock: laminarsmoke.Clock{Dt: s.Dt, EndTime: s.EndTime},
		Log:   log,
		InitFuncs: []laminarsmoke.DomainManipulator{
			laminarsmoke.InitialConditions(thermo, s.InitialTemperature, s.Pressure, y),
			o.CheckOutputVars(thermo),
		},
		RunFuncs: []laminarsmoke.DomainManipulator{
			laminarsmoke.AdvanceTime(),
			chemistry,
			laminarsmoke.CheckComposition(s.CompositionTolerance),
		},
	}
	if s.Transport {
		tp := laminarsmoke.TransportProperties(thermo, m.Transport())
		sim.InitFuncs = append(sim.InitFuncs, tp)
		sim.RunFuncs = append(sim.RunFuncs, tp)
	}
	sim.RunFuncs = append(sim.RunFuncs,
		laminarsmoke.Log(),
		laminarsmoke.EndTimeCheck(),
	)

	if err := sim.Init(ctx); err != nil {
		return nil, err
	}
	if err := sim.Run(ctx); err != nil {
		return sim, err
	}
	if err := o.Output(thermo)(ctx, sim); err != nil {
		return sim, err
	}
	log.WithField("file", s.OutputFile).Info("simulation complete")
	return sim, nil
}

// matchSpecies returns y with its keys replaced by the matching species
// names. Names are matched exactly first and then ignoring case, because
// configuration keys may have been lower-cased.
func matchSpecies(species []string, y map[string]float64) (map[string]float64, error) {
	exact := make(map[string]bool, len(species))
	lower := make(map[string]string, len(species))
	for _, n := range species {
		exact[n] = true
		lower[strings.ToLower(n)] = n
	}
	o := make(map[string]float64, len(y))
	for k, v := range y {
		n := k
		if !exact[k] {
			var ok bool
			if n, ok = lower[strings.ToLower(k)]; !ok {
				return nil, fmt.Errorf("laminarsmoke: species '%s' is not in the mechanism", k)
			}
		}
		if _, ok := o[n]; ok {
			return nil, fmt.Errorf("laminarsmoke: mass fraction of %s is specified more than once", n)
		}
		o[n] = v
	}
	return o, nil
}
