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

package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/laminarsmoke/laminarsmoke/dictionary"
)

// ChemkinPreProcessor returns the grammar of the CHEMKIN mechanism
// pre-processor dictionary.
func ChemkinPreProcessor() *Grammar {
	return &Grammar{
		Name: "CHEMKIN_PreProcessor",
		Keywords: []Keyword{
			{
				Name:        "@Thermodynamics",
				Kind:        SinglePath,
				Description: "Name of the file (ASCII) containing the thermodynamic data (CHEMKIN format)",
				Required:    true,
			},
			{
				Name:        "@Output",
				Kind:        SinglePath,
				Description: "Name of the folder where the pre-processed data are written",
				Required:    true,
			},
			{
				Name:        "@Transport",
				Kind:        SinglePath,
				Description: "Name of the file (ASCII) containing the transport data (CHEMKIN format)",
			},
			{
				Name:        "@Kinetics",
				Kind:        SinglePath,
				Description: "Name of the file (ASCII) containing the kinetic mechanism (CHEMKIN format)",
			},
			{
				Name:        "@CheckThermodynamics",
				Kind:        SingleBool,
				Description: "The thermodynamic data are checked and additional files are written in output (together with a consistent reformulation of thermodynamic data)",
			},
			{
				Name:        "@SpeciesBundling",
				Kind:        SingleBool,
				Description: "Species bundling is applied according to the following sequence of relative errors: { 0.01, 0.025, 0.050, 0.075, 0.1, 0.25, 0.50 }",
				Requires:    []string{"@Transport"},
			},
			{
				Name:        "@OutputOldStyle",
				Kind:        SingleBool,
				Description: "The output file are written also using the old format (before 2013)",
				Requires:    []string{"@Transport", "@Kinetics"},
			},
			{
				Name:        "@TransportFittingCoefficients",
				Kind:        SingleBool,
				Description: "The fitting coefficients for the transport properties are written on a file. This operation is very slow for large kinetic mechanisms (more than 1000 species) and produces huge files",
				Requires:    []string{"@Transport"},
			},
			{
				Name:        "@ReactionTables",
				Kind:        SingleBool,
				Description: "For each reaction detailed information is reported on a file (kinetic constants, change of moles, etc.)",
				Requires:    []string{"@Kinetics"},
			},
			{
				Name:        "@ReactionTablesListOfTemperatures",
				Kind:        VectorString,
				Description: "List of temperatures at which the detailed information is reported on a file for each reaction (kinetic constants, change of moles, etc.)",
				Requires:    []string{"@Kinetics", "@ReactionTables"},
			},
			{
				Name:        "@ReverseFitting",
				Kind:        SingleBool,
				Description: "For each reversible reaction the reverse kinetic constants are estimated assuming the Arrhenius' law",
				Requires:    []string{"@Kinetics"},
			},
			{
				Name:        "@SparsityPatternAnalysis",
				Kind:        SingleBool,
				Description: "The analysis of sparsity pattern of kinetic mechanism is automatically performed after the pre-processing",
				Requires:    []string{"@Kinetics"},
			},
			{
				Name:        "@Comments",
				Kind:        SingleDictionary,
				Description: "Additional data (author name, comments, etc.) can be added to the pre-processed kinetic mechanism",
			},
			{
				Name:        "@RewriteCHEMKIN",
				Kind:        SingleBool,
				Description: "Rewrites the pre-processed kinetic mechanism in CHEMKIN format after correction on atomic balances (default: true)",
			},
		},
	}
}

// DefaultReactionTablesTemperatures are the temperatures [K] of the
// reaction tables when no list is given.
var DefaultReactionTablesTemperatures = []float64{300, 500, 1000, 1500, 2000, 2500}

// PreProcessorConfig holds the settings of the CHEMKIN pre-processor.
type PreProcessorConfig struct {
	Thermodynamics string
	Output         string
	Transport      string
	Kinetics       string

	CheckThermodynamics          bool
	SpeciesBundling              bool
	OutputOldStyle               bool
	TransportFittingCoefficients bool
	ReactionTables               bool
	ReverseFitting               bool
	SparsityPatternAnalysis      bool
	RewriteCHEMKIN               bool

	// ReactionTablesTemperatures are the reaction table temperatures [K].
	ReactionTablesTemperatures []float64

	// Comments holds the entries of the @Comments block.
	Comments map[string]string
}

// DecodePreProcessor validates d against the CHEMKIN pre-processor
// grammar and returns the settings it holds.
func DecodePreProcessor(d *dictionary.Dictionary) (*PreProcessorConfig, error) {
	if err := ChemkinPreProcessor().Validate(d); err != nil {
		return nil, err
	}
	c := &PreProcessorConfig{
		RewriteCHEMKIN:             true,
		ReactionTablesTemperatures: DefaultReactionTablesTemperatures,
	}
	paths := map[string]*string{
		"@Thermodynamics": &c.Thermodynamics,
		"@Output":         &c.Output,
		"@Transport":      &c.Transport,
		"@Kinetics":       &c.Kinetics,
	}
	flags := map[string]*bool{
		"@CheckThermodynamics":          &c.CheckThermodynamics,
		"@SpeciesBundling":              &c.SpeciesBundling,
		"@OutputOldStyle":               &c.OutputOldStyle,
		"@TransportFittingCoefficients": &c.TransportFittingCoefficients,
		"@ReactionTables":               &c.ReactionTables,
		"@ReverseFitting":               &c.ReverseFitting,
		"@SparsityPatternAnalysis":      &c.SparsityPatternAnalysis,
		"@RewriteCHEMKIN":               &c.RewriteCHEMKIN,
	}
	for _, e := range d.Entries {
		if p, ok := paths[e.Key]; ok {
			*p = e.Values[0]
			continue
		}
		if f, ok := flags[e.Key]; ok {
			b, err := ParseBool(e.Values[0])
			if err != nil {
				return nil, &ValidationError{Keyword: e.Key, Reason: err.Error()}
			}
			*f = b
			continue
		}
		switch e.Key {
		case "@ReactionTablesListOfTemperatures":
			temps := make([]float64, len(e.Values))
			for i, v := range e.Values {
				T, err := strconv.ParseFloat(v, 64)
				if err != nil || !(T > 0) {
					return nil, &ValidationError{Keyword: e.Key, Reason: fmt.Sprintf("invalid temperature '%s'", v)}
				}
				temps[i] = T
			}
			c.ReactionTablesTemperatures = temps
		case "@Comments":
			c.Comments = make(map[string]string, len(e.Block.Entries))
			for _, ce := range e.Block.Entries {
				c.Comments[ce.Key] = strings.Join(ce.Values, " ")
			}
		}
	}
	return c, nil
}
