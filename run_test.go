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
	"math"
	"strings"
	"testing"
)

func TestInitialConditions(t *testing.T) {
	th := newIdealThermo()
	s := testSimulation(t, th)
	if err := s.Fields.Check(s.Mesh, 2); err != nil {
		t.Fatal(err)
	}
	for _, v := range append(s.Fields.T.Internal, s.Fields.T.Boundary[0]...) {
		if v != 300 {
			t.Errorf("T = %g, want 300", v)
		}
	}
	for i, want := range []float64{0.25, 0.75} {
		if have := s.Fields.Y[i].Boundary[0][0]; have != want {
			t.Errorf("Y[%d] = %g, want %g", i, have, want)
		}
	}

	for _, test := range []struct {
		name string
		T, p float64
		y    map[string]float64
		err  string
	}{
		{name: "temperature", T: 0, p: 1e5, y: map[string]float64{"A": 1}, err: "invalid state"},
		{name: "species", T: 300, p: 1e5, y: map[string]float64{"C": 1}, err: "'C'"},
		{name: "negative", T: 300, p: 1e5, y: map[string]float64{"A": -1}, err: "negative"},
		{name: "empty", T: 300, p: 1e5, y: map[string]float64{"A": 0}, err: "no species"},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := InitialConditions(th, test.T, test.p, test.y)(context.Background(), s)
			if err == nil || !strings.Contains(err.Error(), test.err) {
				t.Errorf("have error %v, want %s", err, test.err)
			}
		})
	}
}

func TestCheckComposition(t *testing.T) {
	s := testSimulation(t, newIdealThermo())
	check := CheckComposition(1e-6)
	if err := check(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	s.Fields.Y[0].Boundary[0][0] += 1e-3
	err := check(context.Background(), s)
	if err == nil || !strings.Contains(err.Error(), "patch inlet face 0") {
		t.Errorf("wrong error: %v", err)
	}
	s.Fields.Y[0].Boundary[0][0] -= 1e-3
	s.Fields.Y[1].Internal[2] = 0
	err = check(context.Background(), s)
	if err == nil || !strings.Contains(err.Error(), "cell 2") {
		t.Errorf("wrong error: %v", err)
	}
	s.Fields.Y[1].Internal[2] = 0.75

	s.Fields.Y[0].Internal[1] = math.NaN()
	err = check(context.Background(), s)
	if err == nil || !strings.Contains(err.Error(), "cell 1") {
		t.Errorf("NaN mass fraction: wrong error: %v", err)
	}
	s.Fields.Y[0].Internal[1] = 0.25
	s.Fields.Y[1].Boundary[0][0] = math.NaN()
	err = check(context.Background(), s)
	if err == nil || !strings.Contains(err.Error(), "patch inlet face 0") {
		t.Errorf("NaN boundary mass fraction: wrong error: %v", err)
	}
}

func TestRunClock(t *testing.T) {
	s := testSimulation(t, newIdealThermo())
	s.Clock = Clock{Dt: 0.1, EndTime: 1}
	var calls int
	s.RunFuncs = []DomainManipulator{
		AdvanceTime(),
		func(ctx context.Context, s *Simulation) error {
			calls++
			return nil
		},
		Log(),
		EndTimeCheck(),
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 0.1 does not add up to exactly 1 in ten steps.
	if s.Clock.Step != 10 || calls != 10 {
		t.Errorf("have %d steps and %d calls, want 10", s.Clock.Step, calls)
	}
	if math.Abs(s.Clock.Time-1) > 1e-12 {
		t.Errorf("time = %g, want 1", s.Clock.Time)
	}

	s.Clock = Clock{}
	s.Done = false
	if err := s.Run(context.Background()); err == nil {
		t.Error("zero time step: should be an error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Clock = Clock{Dt: 0.1, EndTime: 1}
	if err := s.Run(ctx); err != context.Canceled {
		t.Errorf("wrong error: %v", err)
	}
}

func TestInitNoMesh(t *testing.T) {
	s := &Simulation{}
	if err := s.Init(context.Background()); err == nil {
		t.Error("should be an error")
	}
	s.Mesh = &Mesh{NCells: 1, Patches: []Patch{{Name: "x", NFaces: -1}}}
	if err := s.Init(context.Background()); err == nil {
		t.Error("should be an error")
	}
}
