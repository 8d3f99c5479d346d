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
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

// RJkmol is the universal gas constant [J/kmol/K].
const RJkmol = 8314.4621

// ChemistryConfig holds the settings of the homogeneous chemistry step.
type ChemistryConfig struct {
	// Solver is the name of a registered ODE solver.
	Solver string

	// ODE holds the ODE solver tolerances.
	ODE ODEOptions

	// DtStart is the trial first step of the ODE integration in
	// each cell [s].
	DtStart float64

	// MinTemperature is the temperature [K] below which cells are
	// considered chemically frozen and are skipped. Zero means that
	// chemistry is solved in every cell.
	MinTemperature float64

	// MaxRetries is the number of times the integration of a cell is
	// retried, each time with a starting step ten times smaller, before
	// the step fails.
	MaxRetries uint64
}

// DefaultChemistryConfig returns the default chemistry settings.
func DefaultChemistryConfig() ChemistryConfig {
	return ChemistryConfig{
		Solver:     "RKF45",
		ODE:        DefaultODEOptions(),
		DtStart:    1e-8,
		MaxRetries: 3,
	}
}

// Chemistry returns a function that integrates homogeneous chemistry in
// every cell over the last time step, from Clock.Time-Clock.Dt to
// Clock.Time, treating each cell as an adiabatic constant-pressure batch
// reactor. Temperature and species mass fraction fields are updated in
// place.
//
// The conserved quantity is the mass-specific mixture enthalpy [J/kg].
// It is computed from the molar enthalpy and the initial mixture molar
// mass, and converted back to a molar enthalpy with the final mixture
// molar mass when the new temperature is recovered.
func Chemistry(thermo ThermoMap, kinetics KineticsMap, cfg ChemistryConfig) (DomainManipulator, error) {
	batch := NewBatchAdiabatic(thermo, kinetics)
	solver, err := NewODESolver(cfg.Solver, batch, cfg.ODE)
	if err != nil {
		return nil, err
	}
	if cfg.DtStart <= 0 {
		cfg.DtStart = DefaultChemistryConfig().DtStart
	}
	nc := thermo.NumberOfSpecies()

	return func(ctx context.Context, s *Simulation) error {
		log := s.logger()
		log.Info("Solving homogeneous chemistry...")

		if err := s.Fields.Check(s.Mesh, nc); err != nil {
			return err
		}
		tStart := s.Clock.Time - s.Clock.Dt
		tEnd := s.Clock.Time
		TCells := s.Fields.T.Internal
		pCells := s.Fields.P.Internal

		y := make([]float64, nc)
		x := make([]float64, nc)
		c := make([]float64, nc)
		c0 := make([]float64, nc)

		ncells := s.Mesh.NCells
		reportEvery := int(0.2*float64(ncells)) + 1
		start := time.Now()

		for celli := 0; celli < ncells; celli++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if celli%reportEvery == 0 {
				log.Infof("   Done: %d/%d", celli, ncells)
			}
			T, p := TCells[celli], pCells[celli]
			if T < cfg.MinTemperature {
				continue
			}
			if T <= 0 || p <= 0 {
				return fmt.Errorf("laminarsmoke: chemistry in cell %d: invalid state T=%g K, p=%g Pa", celli, T, p)
			}

			// From mass fractions to mole fractions
			for i, Y := range s.Fields.Y {
				y[i] = Y.Internal[celli]
			}
			mw := thermo.MoleFractionsFromMassFractions(x, y)

			// Concentrations [kmol/m³]
			cTot := p / (RJkmol * T)
			for i := range c0 {
				c0[i] = cTot * x[i]
			}

			// Enthalpy [J/kg]
			thermo.SetTemperature(T)
			thermo.SetPressure(p)
			H := thermo.HMolarMixture(x) / mw
			batch.SetEnthalpy(H)
			batch.SetPressure(p)

			dt0 := cfg.DtStart
			integrate := func() error {
				copy(c, c0)
				batch.Reset()
				batch.SetTemperature(T)
				if _, err := solver.Solve(ctx, tStart, tEnd, c, dt0); err != nil {
					dt0 /= 10
					return err
				}
				if err := batch.Err(); err != nil {
					dt0 /= 10
					return err
				}
				return nil
			}
			err := backoff.RetryNotify(integrate,
				backoff.WithMaxRetries(&backoff.ZeroBackOff{}, cfg.MaxRetries),
				func(err error, _ time.Duration) {
					log.WithFields(logrus.Fields{
						"cell":    celli,
						"dtStart": dt0,
					}).Warnf("retrying chemistry integration: %v", err)
				})
			if err != nil {
				return fmt.Errorf("laminarsmoke: chemistry in cell %d: %v", celli, err)
			}

			// From concentrations to mass fractions
			cTot = 0
			for _, v := range c {
				if v > 0 {
					cTot += v
				}
			}
			if cTot <= 0 {
				return fmt.Errorf("laminarsmoke: chemistry in cell %d: all concentrations vanished", celli)
			}
			for i, v := range c {
				if v < 0 {
					v = 0
				}
				x[i] = v / cTot
			}
			mw = thermo.MassFractionsFromMoleFractions(y, x)
			for i, Y := range s.Fields.Y {
				Y.Internal[celli] = y[i]
			}

			// Temperature
			Tnew, err := thermo.TemperatureFromEnthalpy(H*mw, p, x, T)
			if err != nil {
				return fmt.Errorf("laminarsmoke: chemistry in cell %d: %v", celli, err)
			}
			TCells[celli] = Tnew
		}

		elapsed := time.Since(start)
		log.Infof("   Homogeneous chemistry solved in %.4g s (%.4g ms per cell)",
			elapsed.Seconds(), elapsed.Seconds()/float64(ncells)*1000.)
		return nil
	}, nil
}
