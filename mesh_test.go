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
	"strings"
	"testing"

	"github.com/ctessum/unit"
)

func TestFields(t *testing.T) {
	m := &Mesh{NCells: 5, Patches: []Patch{{Name: "inlet", NFaces: 2}, {Name: "outlet", NFaces: 3}}}
	if n := m.NFaces(); n != 5 {
		t.Errorf("have %d faces, want 5", n)
	}
	f := NewFields(m, []string{"N2", "O2"}, 400, 2e5)
	if err := f.Check(m, 2); err != nil {
		t.Fatal(err)
	}
	if f.Y[1].Name != "Y_O2" || f.GammaMix[0].Name != "D_N2" {
		t.Errorf("wrong names %s, %s", f.Y[1].Name, f.GammaMix[0].Name)
	}
	if v := f.P.Boundary[1][2]; v != 2e5 {
		t.Errorf("p = %g, want 2e5", v)
	}
	if u := f.Lambda.Units; u[unit.TimeDim] != -3 || u[unit.TemperatureDim] != -1 {
		t.Errorf("lambda units: %s", u)
	}

	if err := f.Check(m, 3); err == nil {
		t.Error("species count: should be an error")
	}
	f.Eta.Boundary[1] = f.Eta.Boundary[1][:2]
	err := f.Check(m, 2)
	if err == nil || !strings.Contains(err.Error(), "field eta patch outlet") {
		t.Errorf("wrong error: %v", err)
	}
	f.Eta = nil
	if err := f.Check(m, 2); err == nil {
		t.Error("missing field: should be an error")
	}
	f.Eta = NewField("eta", viscosityUnits, m, 0)
	f.T.Internal = f.T.Internal[1:]
	if err := f.Check(m, 2); err == nil {
		t.Error("cell count: should be an error")
	}
}

func TestMeshCheck(t *testing.T) {
	for _, m := range []Mesh{
		{NCells: 0},
		{NCells: 1, Patches: []Patch{{Name: "wall", NFaces: -2}}},
	} {
		if err := m.Check(); err == nil {
			t.Errorf("%+v: should be an error", m)
		}
	}
}
