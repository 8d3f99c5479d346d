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

package simplechem

import (
	"fmt"
	"math"
)

// Thermo fulfils the laminarsmoke.ThermoMap interface for ideal gases with
// constant specific heats.
type Thermo struct {
	m *Mechanism
	T float64 // [K]
	p float64 // [Pa]
}

// NumberOfSpecies returns the number of species.
func (t *Thermo) NumberOfSpecies() int { return len(t.m.species) }

// SpeciesNames returns the species names in mechanism order.
func (t *Thermo) SpeciesNames() []string {
	n := make([]string, len(t.m.species))
	for i, s := range t.m.species {
		n[i] = s.Name
	}
	return n
}

// SetTemperature sets the temperature [K].
func (t *Thermo) SetTemperature(T float64) { t.T = T }

// SetPressure sets the pressure [Pa].
func (t *Thermo) SetPressure(p float64) { t.p = p }

// MoleFractionsFromMassFractions fills x from mass fractions y and
// returns the mixture molar mass [kg/kmol]. If all mass fractions are
// zero, x is set to zero and the returned molar mass is zero.
func (t *Thermo) MoleFractionsFromMassFractions(x, y []float64) float64 {
	sum := 0.
	for i, s := range t.m.species {
		sum += y[i] / s.MW
	}
	if sum <= 0 {
		for i := range x {
			x[i] = 0
		}
		return 0
	}
	mw := 1 / sum
	for i, s := range t.m.species {
		x[i] = y[i] / s.MW * mw
	}
	return mw
}

// MassFractionsFromMoleFractions fills y from mole fractions x and
// returns the mixture molar mass [kg/kmol]. If all mole fractions are
// zero, y is set to zero and the returned molar mass is zero.
func (t *Thermo) MassFractionsFromMoleFractions(y, x []float64) float64 {
	mw := 0.
	for i, s := range t.m.species {
		mw += x[i] * s.MW
	}
	if mw <= 0 {
		for i := range y {
			y[i] = 0
		}
		return 0
	}
	for i, s := range t.m.species {
		y[i] = x[i] * s.MW / mw
	}
	return mw
}

// hMolar returns the enthalpy of species s at temperature T [J/kmol].
func hMolar(s Species, T float64) float64 {
	return s.Hf + s.Cp*(T-Tref)
}

// HMolarMixture returns the mixture enthalpy [J/kmol] at the current
// temperature.
func (t *Thermo) HMolarMixture(x []float64) float64 {
	h := 0.
	for i, s := range t.m.species {
		h += x[i] * hMolar(s, t.T)
	}
	return h
}

// CpMolarMixture returns the mixture specific heat [J/kmol/K].
func (t *Thermo) CpMolarMixture(x []float64) float64 {
	cp := 0.
	for i, s := range t.m.species {
		cp += x[i] * s.Cp
	}
	return cp
}

// TemperatureFromEnthalpy returns the temperature [K] at which the
// mixture has molar enthalpy h [J/kmol]. Because the specific heats are
// constant the inversion is exact and Tguess is not used.
func (t *Thermo) TemperatureFromEnthalpy(h, p float64, x []float64, Tguess float64) (float64, error) {
	hf, cp := 0., 0.
	for i, s := range t.m.species {
		hf += x[i] * s.Hf
		cp += x[i] * s.Cp
	}
	if !(cp > 0) {
		return math.NaN(), fmt.Errorf("simplechem: mixture has no specific heat")
	}
	T := Tref + (h-hf)/cp
	if !(T > 0) {
		return math.NaN(), fmt.Errorf("simplechem: enthalpy %g J/kmol corresponds to a temperature of %g K", h, T)
	}
	return T, nil
}
