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

// Package laminarsmoke evaluates detailed gas-phase chemistry and mixture
// properties on the cells and boundary faces of a computational mesh.
//
// The state of a simulation is held in Fields: temperature, pressure and
// species mass fractions, plus the mixture properties computed from them.
// Work is done by DomainManipulators, which Simulation runs in order at
// initialization and at every time step. Chemistry treats every cell as
// an adiabatic constant-pressure batch reactor and integrates it with one
// of the registered ODE solvers; TransportProperties evaluates the
// mixture compressibility, specific heat, viscosity, thermal conductivity
// and diffusion coefficients.
//
// Thermodynamics, kinetics and transport are provided through the
// ThermoMap, KineticsMap and TransportMap interfaces. Package
// science/chem/simplechem provides an implementation, and package
// science/ode registers the ODE solvers.
package laminarsmoke
