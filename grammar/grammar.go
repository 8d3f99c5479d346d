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

// Package grammar holds keyword schemas for dictionary input files and a
// generic validator that checks a dictionary against a schema.
package grammar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/laminarsmoke/laminarsmoke/dictionary"
	"github.com/spf13/cast"
)

// Kind is the kind of value a keyword holds.
type Kind int

// Value kinds.
const (
	SinglePath Kind = iota
	SingleBool
	SingleString
	SingleInt
	SingleFloat
	VectorString
	VectorFloat
	SingleDictionary
)

var kindNames = map[Kind]string{
	SinglePath:       "path",
	SingleBool:       "bool",
	SingleString:     "string",
	SingleInt:        "int",
	SingleFloat:      "float",
	VectorString:     "[]string",
	VectorFloat:      "[]float",
	SingleDictionary: "dictionary",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Keyword describes one keyword of a dictionary.
type Keyword struct {
	// Name is the keyword, including the leading '@'.
	Name        string
	Kind        Kind
	Description string

	// Required keywords must be present, unless one of their OneOf
	// alternatives is.
	Required bool

	// OneOf lists keywords that are alternatives to this one. At most
	// one keyword of the group may be given.
	OneOf []string

	// Requires lists keywords that must be present when this one is.
	Requires []string

	// Conflicts lists keywords that must not be present when this one is.
	Conflicts []string
}

// Grammar is an ordered list of keywords.
type Grammar struct {
	Name     string
	Keywords []Keyword
}

// Lookup returns the keyword with the given name.
func (g *Grammar) Lookup(name string) (Keyword, bool) {
	for _, k := range g.Keywords {
		if k.Name == name {
			return k, true
		}
	}
	return Keyword{}, false
}

// ValidationError is a single violation of a grammar.
type ValidationError struct {
	Keyword string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("grammar: %s", e.Reason)
	}
	return fmt.Sprintf("grammar: %s: %s", e.Keyword, e.Reason)
}

// ParseBool parses a boolean keyword value.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := cast.ToBoolE(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean '%s'", s)
	}
	return b, nil
}

// checkKind returns the reason why e does not hold a value of kind k,
// or an empty string.
func checkKind(k Kind, e *dictionary.Entry) string {
	if k == SingleDictionary {
		if e.Block == nil {
			return "expected a nested block"
		}
		return ""
	}
	if e.Block != nil {
		return fmt.Sprintf("expected a %s value, found a nested block", k)
	}
	switch k {
	case VectorString, VectorFloat:
		if len(e.Values) == 0 {
			return "expected at least one value"
		}
	default:
		if len(e.Values) != 1 {
			return fmt.Sprintf("expected a single %s value, found %d", k, len(e.Values))
		}
	}
	for _, v := range e.Values {
		var err error
		switch k {
		case SinglePath:
			if v == "" {
				return "empty path"
			}
		case SingleBool:
			_, err = ParseBool(v)
		case SingleInt:
			_, err = strconv.Atoi(v)
		case SingleFloat, VectorFloat:
			_, err = strconv.ParseFloat(v, 64)
		}
		if err != nil {
			return fmt.Sprintf("invalid %s value '%s'", k, v)
		}
	}
	return ""
}

// Validate checks d against the grammar: every keyword must be known
// and hold a value of the right kind, required keywords must be
// present, and dependencies, conflicts and alternatives must be
// respected. All violations are returned together, each as a
// *ValidationError.
func (g *Grammar) Validate(d *dictionary.Dictionary) error {
	var errs []error
	add := func(kw, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Keyword: kw, Reason: fmt.Sprintf(format, args...)})
	}

	for _, e := range d.Entries {
		k, ok := g.Lookup(e.Key)
		if !ok {
			add(e.Key, "unknown keyword at %s", e.Pos)
			continue
		}
		if reason := checkKind(k.Kind, e); reason != "" {
			add(e.Key, "%s at %s", reason, e.Pos)
		}
	}

	for _, k := range g.Keywords {
		present := d.Has(k.Name)
		if !present {
			if k.Required && !anyPresent(d, k.OneOf) {
				if len(k.OneOf) == 0 {
					add(k.Name, "required keyword is missing")
				} else {
					add(k.Name, "one of [%s] is required", strings.Join(append([]string{k.Name}, k.OneOf...), " "))
				}
			}
			continue
		}
		for _, r := range k.Requires {
			if !d.Has(r) {
				add(k.Name, "requires %s", r)
			}
		}
		for _, c := range k.Conflicts {
			if d.Has(c) {
				add(k.Name, "cannot be used together with %s", c)
			}
		}
		for _, o := range k.OneOf {
			// Report each pair once.
			if d.Has(o) && k.Name < o {
				add(k.Name, "cannot be used together with its alternative %s", o)
			}
		}
	}
	return errors.Join(errs...)
}

func anyPresent(d *dictionary.Dictionary, keys []string) bool {
	for _, k := range keys {
		if d.Has(k) {
			return true
		}
	}
	return false
}

func listOrNone(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, " ")
}

// Usage writes a table describing the keywords of the grammar.
func (g *Grammar) Usage(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if g.Name != "" {
		fmt.Fprintf(tw, "Dictionary %s\n\n", g.Name)
	}
	fmt.Fprintln(tw, "KEYWORD\tKIND\tREQUIRED\tREQUIRES\tCONFLICTS\tDESCRIPTION")
	for _, k := range g.Keywords {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\t%s\n", k.Name, k.Kind, k.Required,
			listOrNone(k.Requires), listOrNone(k.Conflicts), k.Description)
	}
	return tw.Flush()
}
