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

import "fmt"

// BatchAdiabatic is the ODE system of an adiabatic, constant-pressure,
// homogeneous batch reactor. The state vector holds the species
// concentrations [kmol/m³]. The mixture enthalpy is conserved; at every
// evaluation the temperature is recovered from it, so the system is
// closed by the species equations alone.
type BatchAdiabatic struct {
	thermo   ThermoMap
	kinetics KineticsMap

	h float64 // mass-specific mixture enthalpy [J/kg]
	T float64 // last temperature [K]
	p float64 // pressure [Pa]

	c, x, y []float64 // scratch

	// err holds the first error encountered while recovering the
	// temperature, because Derivatives cannot return one.
	err error
}

// NewBatchAdiabatic returns a new batch reactor system using the
// given thermodynamic and kinetic maps.
func NewBatchAdiabatic(thermo ThermoMap, kinetics KineticsMap) *BatchAdiabatic {
	n := thermo.NumberOfSpecies()
	return &BatchAdiabatic{
		thermo:   thermo,
		kinetics: kinetics,
		c:        make([]float64, n),
		x:        make([]float64, n),
		y:        make([]float64, n),
	}
}

// NumberOfEquations returns the number of species.
func (b *BatchAdiabatic) NumberOfEquations() int { return b.thermo.NumberOfSpecies() }

// SetEnthalpy sets the conserved mass-specific mixture enthalpy [J/kg].
func (b *BatchAdiabatic) SetEnthalpy(h float64) { b.h = h }

// SetTemperature sets the initial temperature [K], which is also the first
// guess for the temperature recovery.
func (b *BatchAdiabatic) SetTemperature(T float64) { b.T = T }

// SetPressure sets the pressure [Pa].
func (b *BatchAdiabatic) SetPressure(p float64) { b.p = p }

// Temperature returns the temperature of the last evaluation [K].
func (b *BatchAdiabatic) Temperature() float64 { return b.T }

// Err returns the first temperature recovery error since the last
// call to Reset.
func (b *BatchAdiabatic) Err() error { return b.err }

// Reset clears the recorded error.
func (b *BatchAdiabatic) Reset() { b.err = nil }

// Derivatives fills dc with the net species formation rates at
// concentrations c [kmol/m³].
func (b *BatchAdiabatic) Derivatives(t float64, c, dc []float64) {
	cTot := 0.
	for i, v := range c {
		if v < 0 {
			v = 0
		}
		b.c[i] = v
		cTot += v
	}
	if cTot <= 0 {
		for i := range dc {
			dc[i] = 0
		}
		return
	}
	for i, v := range b.c {
		b.x[i] = v / cTot
	}
	mw := b.thermo.MassFractionsFromMoleFractions(b.y, b.x)
	T, err := b.thermo.TemperatureFromEnthalpy(b.h*mw, b.p, b.x, b.T)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("laminarsmoke: batch reactor at t=%g: %v", t, err)
		}
	} else {
		b.T = T
	}
	b.kinetics.FormationRates(dc, b.T, b.p, b.c)
}
