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

// Package simplechem contains a simplified gas-phase chemical mechanism:
// ideal-gas species with constant specific heats, irreversible
// mass-action Arrhenius reactions, and kinetic-theory transport
// properties. It is read from a TOML file and fulfils the
// laminarsmoke.Mechanism interface.
package simplechem

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/laminarsmoke/laminarsmoke"
)

// Tref is the reference temperature of the formation enthalpies [K].
const Tref = 298.15

// Species holds the properties of a single chemical species.
type Species struct {
	Name  string
	MW    float64 // molar mass [kg/kmol]
	Hf    float64 // formation enthalpy at Tref [J/kmol]
	Cp    float64 // constant-pressure specific heat [J/kmol/K]
	Sigma float64 // Lennard-Jones collision diameter [Å]
	EpsK  float64 // Lennard-Jones well depth ε/k [K]
}

// Reaction is an irreversible reaction with rate constant
// k = A T^B exp(-Ea/(R T)).
type Reaction struct {
	Name      string
	A         float64 // pre-exponential factor [kmol, m³, s]
	B         float64 // temperature exponent
	Ea        float64 // activation energy [J/kmol]
	Reactants map[string]float64
	Products  map[string]float64

	// Orders are the reaction orders. Species that are not listed
	// react with their stoichiometric coefficient as order.
	Orders map[string]float64
}

// file is the layout of a mechanism file.
type file struct {
	Name      string
	Species   []Species
	Reactions []Reaction
}

// stoich is a species index and coefficient.
type stoich struct {
	i int
	v float64
}

// reaction is a Reaction with species names resolved to indices.
type reaction struct {
	Reaction
	orders []stoich // reaction orders
	net    []stoich // products minus reactants
}

// Mechanism fulfils the github.com/laminarsmoke/laminarsmoke.Mechanism
// interface.
type Mechanism struct {
	Name      string
	species   []Species
	reactions []reaction
	index     map[string]int

	thermo    *Thermo
	kinetics  *Kinetics
	transport *Transport
}

// Load reads a mechanism in TOML format from r.
func Load(r io.Reader) (*Mechanism, error) {
	var f file
	if _, err := toml.DecodeReader(r, &f); err != nil {
		return nil, fmt.Errorf("simplechem: reading mechanism: %v", err)
	}
	return New(f.Name, f.Species, f.Reactions)
}

// LoadFile reads a mechanism in TOML format from the file at path.
func LoadFile(path string) (*Mechanism, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simplechem: %v", err)
	}
	defer r.Close()
	return Load(r)
}

// New creates a mechanism from the given species and reactions.
func New(name string, species []Species, reactions []Reaction) (*Mechanism, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("simplechem: mechanism %s has no species", name)
	}
	m := &Mechanism{
		Name:    name,
		species: species,
		index:   make(map[string]int, len(species)),
	}
	for i, s := range species {
		if _, ok := m.index[s.Name]; ok {
			return nil, fmt.Errorf("simplechem: species %s is defined more than once", s.Name)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("simplechem: species %d has no name", i)
		}
		if !(s.MW > 0) || !(s.Cp > 0) || !(s.Sigma > 0) || !(s.EpsK > 0) {
			return nil, fmt.Errorf("simplechem: species %s: MW, Cp, Sigma and EpsK must all be > 0", s.Name)
		}
		m.index[s.Name] = i
	}
	for j, r := range reactions {
		rr := reaction{Reaction: r}
		if r.Name == "" {
			rr.Name = fmt.Sprintf("R%d", j+1)
		}
		if !(r.A > 0) {
			return nil, fmt.Errorf("simplechem: reaction %s: A must be > 0", rr.Name)
		}
		if len(r.Reactants) == 0 {
			return nil, fmt.Errorf("simplechem: reaction %s has no reactants", rr.Name)
		}
		net := make(map[int]float64)
		for _, side := range []struct {
			m    map[string]float64
			sign float64
		}{{r.Reactants, -1}, {r.Products, 1}} {
			for n, v := range side.m {
				i, ok := m.index[n]
				if !ok {
					return nil, fmt.Errorf("simplechem: reaction %s: unknown species %s", rr.Name, n)
				}
				if v <= 0 {
					return nil, fmt.Errorf("simplechem: reaction %s: coefficient of %s must be > 0", rr.Name, n)
				}
				net[i] += side.sign * v
			}
		}
		for n, v := range r.Reactants {
			order := v
			if o, ok := r.Orders[n]; ok {
				order = o
			}
			rr.orders = append(rr.orders, stoich{i: m.index[n], v: order})
		}
		for n := range r.Orders {
			if _, ok := r.Reactants[n]; !ok {
				return nil, fmt.Errorf("simplechem: reaction %s: order given for %s, which is not a reactant", rr.Name, n)
			}
		}
		for i := range species {
			if v, ok := net[i]; ok && v != 0 {
				rr.net = append(rr.net, stoich{i: i, v: v})
			}
		}
		m.reactions = append(m.reactions, rr)
	}
	m.thermo = &Thermo{m: m, T: Tref, p: 101325}
	m.kinetics = &Kinetics{m: m}
	m.transport = newTransport(m)
	return m, nil
}

// Thermo returns the thermodynamic map of the mechanism.
func (m *Mechanism) Thermo() laminarsmoke.ThermoMap { return m.thermo }

// Kinetics returns the kinetic map of the mechanism.
func (m *Mechanism) Kinetics() laminarsmoke.KineticsMap { return m.kinetics }

// Transport returns the transport map of the mechanism.
func (m *Mechanism) Transport() laminarsmoke.TransportMap { return m.transport }

// Species returns the species of the mechanism.
func (m *Mechanism) Species() []Species { return m.species }

// Index returns the index of the named species, or an error if it is not
// part of the mechanism.
func (m *Mechanism) Index(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return -1, fmt.Errorf("simplechem: invalid species name %s", name)
	}
	return i, nil
}
