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
)

// propertyEvaluator holds scratch storage for evaluating the mixture
// properties at a single cell or face.
type propertyEvaluator struct {
	thermo    ThermoMap
	transport TransportMap
	y, x      []float64
	gamma     []float64
}

// properties are the mixture properties at one location.
type properties struct {
	psi, cp, eta, lambda float64
}

func (e *propertyEvaluator) eval(T, p float64) (properties, error) {
	if T <= 0 || p <= 0 {
		return properties{}, fmt.Errorf("invalid state T=%g K, p=%g Pa", T, p)
	}
	e.thermo.SetPressure(p)
	e.thermo.SetTemperature(T)
	e.transport.SetPressure(p)
	e.transport.SetTemperature(T)

	// From mass fractions to mole fractions
	mw := e.thermo.MoleFractionsFromMassFractions(e.x, e.y)

	var pr properties
	// Psi variable [s²/m²]
	pr.psi = mw / (RJkmol * T)
	// Constant pressure specific heat [J/kg/K]
	pr.cp = e.thermo.CpMolarMixture(e.x) / mw
	// Dynamic viscosity [kg/m/s]
	pr.eta = e.transport.DynamicViscosity(e.x)
	// Thermal conductivity [W/m/K]
	pr.lambda = e.transport.ThermalConductivity(e.x)
	// Diffusion coefficients [m²/s]
	e.transport.MassDiffusionCoefficients(e.gamma, e.x)
	return pr, nil
}

// TransportProperties returns a function that evaluates the mixture
// compressibility, specific heat, dynamic viscosity, thermal
// conductivity and species diffusion coefficients at every interior
// cell and every boundary face, and stores them in the corresponding
// fields.
func TransportProperties(thermo ThermoMap, transport TransportMap) DomainManipulator {
	nc := thermo.NumberOfSpecies()
	e := &propertyEvaluator{
		thermo:    thermo,
		transport: transport,
		y:         make([]float64, nc),
		x:         make([]float64, nc),
		gamma:     make([]float64, nc),
	}
	return func(ctx context.Context, s *Simulation) error {
		log := s.logger()
		start := time.Now()
		if err := s.Fields.Check(s.Mesh, nc); err != nil {
			return err
		}
		f := s.Fields

		// Internal fields
		for celli := 0; celli < s.Mesh.NCells; celli++ {
			for i, Y := range f.Y {
				e.y[i] = Y.Internal[celli]
			}
			pr, err := e.eval(f.T.Internal[celli], f.P.Internal[celli])
			if err != nil {
				return fmt.Errorf("laminarsmoke: properties in cell %d: %v", celli, err)
			}
			f.Psi.Internal[celli] = pr.psi
			f.Cp.Internal[celli] = pr.cp
			f.Eta.Internal[celli] = pr.eta
			f.Lambda.Internal[celli] = pr.lambda
			for i, g := range f.GammaMix {
				g.Internal[celli] = e.gamma[i]
			}
		}

		// Boundaries
		for patchi, patch := range s.Mesh.Patches {
			if err := ctx.Err(); err != nil {
				return err
			}
			for facei := 0; facei < patch.NFaces; facei++ {
				for i, Y := range f.Y {
					e.y[i] = Y.Boundary[patchi][facei]
				}
				pr, err := e.eval(f.T.Boundary[patchi][facei], f.P.Boundary[patchi][facei])
				if err != nil {
					return fmt.Errorf("laminarsmoke: properties on patch %s face %d: %v", patch.Name, facei, err)
				}
				f.Psi.Boundary[patchi][facei] = pr.psi
				f.Cp.Boundary[patchi][facei] = pr.cp
				f.Eta.Boundary[patchi][facei] = pr.eta
				f.Lambda.Boundary[patchi][facei] = pr.lambda
				for i, g := range f.GammaMix {
					g.Boundary[patchi][facei] = e.gamma[i]
				}
			}
		}

		elapsed := time.Since(start).Seconds()
		log.Infof("Properties evaluation done in %.4g s (%.4g ms per cell)",
			elapsed, elapsed/float64(s.Mesh.NCells)*1000.)
		return nil
	}
}
