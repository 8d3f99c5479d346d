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
	"fmt"

	"github.com/ctessum/unit"
)

// Mesh describes the size of a finite-volume mesh: the number of
// interior cells and the boundary patches with their face counts.
// Cell geometry is owned by the flow solver and is not needed here.
type Mesh struct {
	NCells  int
	Patches []Patch
}

// Patch is a named group of boundary faces.
type Patch struct {
	Name   string
	NFaces int
}

// NFaces returns the total number of boundary faces.
func (m *Mesh) NFaces() int {
	n := 0
	for _, p := range m.Patches {
		n += p.NFaces
	}
	return n
}

// Check returns an error if the mesh has no cells or if any
// patch has a negative number of faces.
func (m *Mesh) Check() error {
	if m.NCells <= 0 {
		return fmt.Errorf("laminarsmoke: mesh must have at least one cell, has %d", m.NCells)
	}
	for _, p := range m.Patches {
		if p.NFaces < 0 {
			return fmt.Errorf("laminarsmoke: patch %s has %d faces", p.Name, p.NFaces)
		}
	}
	return nil
}

// Field holds one scalar value per interior cell and one per
// face of each boundary patch.
type Field struct {
	Name     string
	Units    unit.Dimensions
	Internal []float64   // [cell]
	Boundary [][]float64 // [patch][face]
}

// NewField returns a field sized for mesh m with every value set to v.
func NewField(name string, units unit.Dimensions, m *Mesh, v float64) *Field {
	f := &Field{
		Name:     name,
		Units:    units,
		Internal: make([]float64, m.NCells),
		Boundary: make([][]float64, len(m.Patches)),
	}
	for i, p := range m.Patches {
		f.Boundary[i] = make([]float64, p.NFaces)
	}
	f.Set(v)
	return f
}

// Set sets every interior and boundary value to v.
func (f *Field) Set(v float64) {
	for i := range f.Internal {
		f.Internal[i] = v
	}
	for _, b := range f.Boundary {
		for i := range b {
			b[i] = v
		}
	}
}

// Check returns an error if the field is not sized for mesh m.
func (f *Field) Check(m *Mesh) error {
	if len(f.Internal) != m.NCells {
		return fmt.Errorf("laminarsmoke: field %s has %d cell values but mesh has %d cells",
			f.Name, len(f.Internal), m.NCells)
	}
	if len(f.Boundary) != len(m.Patches) {
		return fmt.Errorf("laminarsmoke: field %s has %d boundary patches but mesh has %d",
			f.Name, len(f.Boundary), len(m.Patches))
	}
	for i, p := range m.Patches {
		if len(f.Boundary[i]) != p.NFaces {
			return fmt.Errorf("laminarsmoke: field %s patch %s has %d face values but patch has %d faces",
				f.Name, p.Name, len(f.Boundary[i]), p.NFaces)
		}
	}
	return nil
}

// Fields are the fields read and written by the chemistry and
// transport property steps. T, P and Y are inputs; T and Y are also
// updated in place by the chemistry step. Psi, Cp, Eta, Lambda and
// GammaMix are written by the transport property step.
type Fields struct {
	T *Field   // temperature [K]
	P *Field   // pressure [Pa]
	Y []*Field // species mass fractions, in mechanism order

	Psi      *Field   // compressibility ρ/p [s²/m²]
	Cp       *Field   // constant-pressure specific heat [J/kg/K]
	Eta      *Field   // dynamic viscosity [kg/m/s]
	Lambda   *Field   // thermal conductivity [W/m/K]
	GammaMix []*Field // mixture-averaged mass diffusion coefficients [m²/s]
}

// Dimensions of the model fields.
var (
	kmolDim = unit.NewDimension("kmol")

	temperatureUnits  = unit.Dimensions{unit.TemperatureDim: 1}
	pressureUnits     = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	fractionUnits     = unit.Dimensions{}
	psiUnits          = unit.Dimensions{unit.TimeDim: 2, unit.LengthDim: -2}
	cpUnits           = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}
	viscosityUnits    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}
	conductivityUnits = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}
	diffusivityUnits  = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1}
	densityUnits      = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}
	molarMassUnits    = unit.Dimensions{unit.MassDim: 1, kmolDim: -1}
)

// NewFields allocates the fields for mesh m and the given species, with
// uniform temperature T [K] and pressure p [Pa] and all mass fractions
// set to zero.
func NewFields(m *Mesh, species []string, T, p float64) *Fields {
	f := &Fields{
		T:      NewField("T", temperatureUnits, m, T),
		P:      NewField("p", pressureUnits, m, p),
		Psi:    NewField("psi", psiUnits, m, 0),
		Cp:     NewField("cp", cpUnits, m, 0),
		Eta:    NewField("eta", viscosityUnits, m, 0),
		Lambda: NewField("lambda", conductivityUnits, m, 0),
	}
	f.Y = make([]*Field, len(species))
	f.GammaMix = make([]*Field, len(species))
	for i, s := range species {
		f.Y[i] = NewField("Y_"+s, fractionUnits, m, 0)
		f.GammaMix[i] = NewField("D_"+s, diffusivityUnits, m, 0)
	}
	return f
}

// Check returns an error if any field is missing or not sized for
// mesh m, or if the number of species fields differs from nSpecies.
func (f *Fields) Check(m *Mesh, nSpecies int) error {
	if len(f.Y) != nSpecies {
		return fmt.Errorf("laminarsmoke: there are %d species fields but the mechanism has %d species",
			len(f.Y), nSpecies)
	}
	if len(f.GammaMix) != nSpecies {
		return fmt.Errorf("laminarsmoke: there are %d diffusion coefficient fields but the mechanism has %d species",
			len(f.GammaMix), nSpecies)
	}
	all := []*Field{f.T, f.P, f.Psi, f.Cp, f.Eta, f.Lambda}
	all = append(all, f.Y...)
	all = append(all, f.GammaMix...)
	for _, fld := range all {
		if fld == nil {
			return fmt.Errorf("laminarsmoke: missing field")
		}
		if err := fld.Check(m); err != nil {
			return err
		}
	}
	return nil
}
