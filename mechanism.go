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

// ThermoMap is an interface for the thermodynamic properties of a
// gas mixture. Implementations are stateful: SetTemperature and
// SetPressure must be called before the mixture property queries.
// Molar quantities are per kmol and molar masses are in kg/kmol.
type ThermoMap interface {
	// NumberOfSpecies returns the number of chemical species.
	NumberOfSpecies() int

	// SpeciesNames returns the species names in mechanism order.
	SpeciesNames() []string

	// SetTemperature sets the temperature [K].
	SetTemperature(T float64)

	// SetPressure sets the pressure [Pa].
	SetPressure(p float64)

	// MoleFractionsFromMassFractions fills x with the mole fractions
	// corresponding to mass fractions y and returns the mixture molar
	// mass [kg/kmol].
	MoleFractionsFromMassFractions(x, y []float64) (mw float64)

	// MassFractionsFromMoleFractions fills y with the mass fractions
	// corresponding to mole fractions x and returns the mixture molar
	// mass [kg/kmol].
	MassFractionsFromMoleFractions(y, x []float64) (mw float64)

	// HMolarMixture returns the mixture enthalpy [J/kmol] at the current
	// temperature for mole fractions x.
	HMolarMixture(x []float64) float64

	// CpMolarMixture returns the mixture constant-pressure specific heat
	// [J/kmol/K] at the current temperature for mole fractions x.
	CpMolarMixture(x []float64) float64

	// TemperatureFromEnthalpy returns the temperature [K] at which a
	// mixture with mole fractions x at pressure p has molar enthalpy
	// h [J/kmol]. Tguess is used as the starting point of iterative
	// implementations.
	TemperatureFromEnthalpy(h, p float64, x []float64, Tguess float64) (float64, error)
}

// KineticsMap is an interface for homogeneous gas-phase reaction
// kinetics.
type KineticsMap interface {
	// NumberOfReactions returns the number of reactions.
	NumberOfReactions() int

	// FormationRates fills r with the net formation rate of every
	// species [kmol/m³/s] at temperature T [K], pressure p [Pa] and
	// concentrations c [kmol/m³].
	FormationRates(r []float64, T, p float64, c []float64)
}

// TransportMap is an interface for mixture transport properties.
type TransportMap interface {
	// SetTemperature sets the temperature [K].
	SetTemperature(T float64)

	// SetPressure sets the pressure [Pa].
	SetPressure(p float64)

	// DynamicViscosity returns the mixture dynamic viscosity [kg/m/s]
	// for mole fractions x.
	DynamicViscosity(x []float64) float64

	// ThermalConductivity returns the mixture thermal conductivity
	// [W/m/K] for mole fractions x.
	ThermalConductivity(x []float64) float64

	// MassDiffusionCoefficients fills gamma with the mixture-averaged
	// diffusion coefficient [m²/s] of every species for mole fractions x.
	MassDiffusionCoefficients(gamma, x []float64)
}

// Mechanism bundles the property maps of a chemical mechanism.
type Mechanism interface {
	Thermo() ThermoMap
	Kinetics() KineticsMap
	Transport() TransportMap
}
