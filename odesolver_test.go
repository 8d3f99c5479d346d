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
	"strings"
	"testing"
)

type constantSolver struct{ o ODEOptions }

func (c *constantSolver) Solve(ctx context.Context, t0, t1 float64, y []float64, dtStart float64) (float64, error) {
	return dtStart, nil
}

func TestODESolverRegistry(t *testing.T) {
	var have ODEOptions
	RegisterODESolver("constant", func(sys ODESystem, o ODEOptions) (ODESolver, error) {
		have = o
		return &constantSolver{o: o}, nil
	})

	_, err := NewODESolver("constant", nil, ODEOptions{AbsTol: 1, RelTol: 1})
	if err != nil {
		t.Fatal(err)
	}
	if have.MaxSteps != DefaultODEOptions().MaxSteps {
		t.Errorf("MaxSteps = %d, want the default", have.MaxSteps)
	}

	_, err = NewODESolver("xxx", nil, DefaultODEOptions())
	if err == nil || !strings.Contains(err.Error(), "constant") {
		t.Errorf("wrong error: %v", err)
	}
	if _, err := NewODESolver("constant", nil, ODEOptions{AbsTol: 1}); err == nil {
		t.Error("zero tolerance: should be an error")
	}

	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	RegisterODESolver("constant", nil)
}
