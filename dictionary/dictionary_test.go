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

package dictionary

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestParseFile(t *testing.T) {
	dicts, err := ParseFile("testdata/input.dic")
	if err != nil {
		t.Fatal(err)
	}
	want := []*Dictionary{
		{
			Name: "CHEMKIN_PreProcessor",
			Pos:  Position{12, 1},
			Entries: []*Entry{
				{Key: "@Kinetics", Values: []string{"../kinetics/POLIMI_H2CO_1412.CKI"}, Pos: Position{14, 2}},
				{Key: "@Thermodynamics", Values: []string{"/opt/kinetics/thermo.CKT"}, Pos: Position{15, 2}},
				{Key: "@Transport", Values: []string{"data dir/transport.TRC"}, Pos: Position{16, 2}},
				{Key: "@Output", Values: []string{"kinetics-POLIMI"}, Pos: Position{17, 2}},
				{Key: "@ReactionTables", Values: []string{"true"}, Pos: Position{21, 2}},
				{Key: "@ReactionTablesListOfTemperatures", Values: []string{"500", "1000", "2000"}, Pos: Position{22, 2}},
				{
					Key: "@Comments",
					Pos: Position{24, 2},
					Block: &Dictionary{
						Name: "@Comments",
						Pos:  Position{24, 2},
						Entries: []*Entry{
							{Key: "@Author", Values: []string{"A. Cuoci"}, Pos: Position{26, 3}},
							{Key: "@Date", Values: []string{"2014-06-01"}, Pos: Position{27, 3}},
						},
					},
				},
			},
		},
	}
	if diff := pretty.Diff(dicts, want); len(diff) != 0 {
		t.Error(strings.Join(diff, "\n"))
	}

	d, err := Find(dicts, "CHEMKIN_PreProcessor")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Has("@Output") || d.Has("@Xxx") {
		t.Error("wrong lookup result")
	}
	if _, err := Find(dicts, "xxx"); err == nil {
		t.Error("should be an error")
	}
	if k := d.Keys(); len(k) != 7 || k[0] != "@Kinetics" {
		t.Errorf("keys: %v", k)
	}
}

func TestParseMultiple(t *testing.T) {
	const in = `Dictionary A { @X 1; } Dictionary B { @Y a b;; @Z {} }`
	dicts, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(dicts) != 2 || dicts[0].Name != "A" || dicts[1].Name != "B" {
		t.Fatalf("wrong dictionaries: %# v", pretty.Formatter(dicts))
	}
	z, ok := dicts[1].Lookup("@Z")
	if !ok || z.Block == nil || len(z.Block.Entries) != 0 {
		t.Errorf("wrong nested block: %# v", pretty.Formatter(z))
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name, in, msg string
	}{
		{name: "empty", in: "// nothing\n", msg: "no dictionaries found"},
		{name: "not a dictionary", in: "Dict A {}", msg: "1:1: expected 'Dictionary'"},
		{name: "missing brace", in: "Dictionary A @X 1;", msg: "1:14: expected '{'"},
		{name: "not closed", in: "Dictionary A {\n @X 1;", msg: "1:14: block A is not closed"},
		{name: "missing semicolon", in: "Dictionary A {\n\t@X 1\n\t@Y 2; }", msg: "3:2: missing ';' after the values of @X"},
		{name: "no keyword", in: "Dictionary A { X 1; }", msg: "1:16: expected keyword starting with '@'"},
		{name: "duplicate keyword", in: "Dictionary A { @X 1; @X 2; }", msg: "1:22: keyword @X is already defined at 1:16"},
		{name: "duplicate dictionary", in: "Dictionary A {} Dictionary A {}", msg: "dictionary A is already defined"},
		{name: "string", in: "Dictionary A { @X \"abc; }", msg: "1:19: string not terminated"},
		{name: "comment", in: "Dictionary A { /* @X 1; }", msg: "1:16: comment not terminated"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.in))
			if err == nil {
				t.Fatal("should be an error")
			}
			if !strings.Contains(err.Error(), test.msg) {
				t.Errorf("error %q should contain %q", err, test.msg)
			}
		})
	}
}
