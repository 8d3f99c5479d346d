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
	"math"

	"github.com/laminarsmoke/laminarsmoke"
)

const (
	// atm is one standard atmosphere [Pa].
	atm = 101325.
	// kinetic theory prefactors in SI output units with molar masses
	// in g/mol and collision diameters in Å.
	viscosityFactor = 2.6693e-6
	diffusionFactor = 0.0018583e-4
)

// Transport fulfils the laminarsmoke.TransportMap interface using
// Chapman-Enskog kinetic theory for the pure species and
// mixture-averaged rules for the mixture.
type Transport struct {
	m *Mechanism
	T float64 // [K]
	p float64 // [Pa]

	// scratch storage
	eta, lambda, y []float64
}

func newTransport(m *Mechanism) *Transport {
	n := len(m.species)
	return &Transport{
		m:      m,
		T:      Tref,
		p:      atm,
		eta:    make([]float64, n),
		lambda: make([]float64, n),
		y:      make([]float64, n),
	}
}

// SetTemperature sets the temperature [K].
func (t *Transport) SetTemperature(T float64) { t.T = T }

// SetPressure sets the pressure [Pa].
func (t *Transport) SetPressure(p float64) { t.p = p }

// omega22 is the Neufeld et al. (1972) fit of the reduced collision
// integral for viscosity.
func omega22(Tstar float64) float64 {
	return 1.16145*math.Pow(Tstar, -0.14874) +
		0.52487*math.Exp(-0.77320*Tstar) +
		2.16178*math.Exp(-2.43787*Tstar)
}

// omega11 is the Neufeld et al. (1972) fit of the reduced collision
// integral for diffusion.
func omega11(Tstar float64) float64 {
	return 1.06036*math.Pow(Tstar, -0.15610) +
		0.19300*math.Exp(-0.47635*Tstar) +
		1.03587*math.Exp(-1.52996*Tstar) +
		1.76474*math.Exp(-3.89411*Tstar)
}

// SpeciesViscosity returns the dynamic viscosity of pure species i
// [kg/m/s].
func (t *Transport) SpeciesViscosity(i int) float64 {
	s := t.m.species[i]
	return viscosityFactor * math.Sqrt(s.MW*t.T) / (s.Sigma * s.Sigma * omega22(t.T/s.EpsK))
}

// SpeciesConductivity returns the thermal conductivity of pure species i
// [W/m/K] from the modified Eucken correlation.
func (t *Transport) SpeciesConductivity(i int) float64 {
	s := t.m.species[i]
	return t.SpeciesViscosity(i) / s.MW * (s.Cp + 1.25*laminarsmoke.RJkmol)
}

// BinaryDiffusivity returns the binary diffusion coefficient of species
// i and j [m²/s].
func (t *Transport) BinaryDiffusivity(i, j int) float64 {
	si, sj := t.m.species[i], t.m.species[j]
	sigma := 0.5 * (si.Sigma + sj.Sigma)
	epsk := math.Sqrt(si.EpsK * sj.EpsK)
	return diffusionFactor * math.Sqrt(t.T*t.T*t.T*(1/si.MW+1/sj.MW)) /
		(t.p / atm * sigma * sigma * omega11(t.T/epsk))
}

// DynamicViscosity returns the mixture viscosity [kg/m/s] from the
// Wilke mixing rule.
func (t *Transport) DynamicViscosity(x []float64) float64 {
	for i := range t.m.species {
		t.eta[i] = t.SpeciesViscosity(i)
	}
	eta := 0.
	for i, si := range t.m.species {
		if x[i] <= 0 {
			continue
		}
		den := 0.
		for j, sj := range t.m.species {
			a := 1 + math.Sqrt(t.eta[i]/t.eta[j])*math.Pow(sj.MW/si.MW, 0.25)
			phi := a * a / math.Sqrt(8*(1+si.MW/sj.MW))
			den += x[j] * phi
		}
		eta += x[i] * t.eta[i] / den
	}
	return eta
}

// ThermalConductivity returns the mixture conductivity [W/m/K] from the
// Mathur-Saxena average.
func (t *Transport) ThermalConductivity(x []float64) float64 {
	sum, inv := 0., 0.
	for i := range t.m.species {
		if x[i] <= 0 {
			continue
		}
		t.lambda[i] = t.SpeciesConductivity(i)
		sum += x[i] * t.lambda[i]
		inv += x[i] / t.lambda[i]
	}
	if inv == 0 {
		return 0
	}
	return 0.5 * (sum + 1/inv)
}

// MassDiffusionCoefficients fills gamma with the mixture-averaged
// diffusion coefficients [m²/s]. Where a species is alone in the mixture
// its self-diffusion coefficient is used.
func (t *Transport) MassDiffusionCoefficients(gamma, x []float64) {
	th := t.m.thermo
	th.MassFractionsFromMoleFractions(t.y, x)
	for i := range t.m.species {
		den := 0.
		for j := range t.m.species {
			if j == i || x[j] <= 0 {
				continue
			}
			den += x[j] / t.BinaryDiffusivity(i, j)
		}
		if den <= 0 || t.y[i] >= 1 {
			gamma[i] = t.BinaryDiffusivity(i, i)
			continue
		}
		gamma[i] = (1 - t.y[i]) / den
	}
}
