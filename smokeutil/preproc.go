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

package smokeutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/laminarsmoke/laminarsmoke/dictionary"
	"github.com/laminarsmoke/laminarsmoke/grammar"
	"github.com/sirupsen/logrus"
)

// Output file names in the pre-processor output folder.
const (
	ReactionTablesFile  = "reaction_tables.out"
	SparsityPatternFile = "sparsity_pattern.out"
)

// Preprocess reads the dictionary named dictName from inputFile, checks
// it against the CHEMKIN pre-processor grammar, creates the output
// folder and writes the resolved settings to w. Relative paths in the
// dictionary are relative to the directory of inputFile.
//
// Only TOML mechanisms are interpreted: when @Kinetics names one, the
// reaction tables and sparsity pattern analysis are written to the
// output folder if requested.
func Preprocess(w io.Writer, log logrus.FieldLogger, inputFile, dictName string) (*grammar.PreProcessorConfig, error) {
	dicts, err := dictionary.ParseFile(inputFile)
	if err != nil {
		return nil, err
	}
	d, err := dictionary.Find(dicts, dictName)
	if err != nil {
		return nil, err
	}
	c, err := grammar.DecodePreProcessor(d)
	if err != nil {
		return nil, fmt.Errorf("laminarsmoke: %s:\n%v", inputFile, err)
	}
	dir := filepath.Dir(inputFile)
	for _, p := range []*string{&c.Thermodynamics, &c.Output, &c.Transport, &c.Kinetics} {
		*p = os.ExpandEnv(*p)
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	for _, f := range []string{c.Thermodynamics, c.Transport, c.Kinetics} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("laminarsmoke: %v", err)
		}
	}
	if err := os.MkdirAll(c.Output, os.ModePerm); err != nil {
		return nil, fmt.Errorf("laminarsmoke: creating output folder: %v", err)
	}
	log.WithField("folder", c.Output).Info("output folder ready")
	fmt.Fprintf(w, "%# v\n", pretty.Formatter(c))

	if !c.ReactionTables && !c.SparsityPatternAnalysis {
		return c, nil
	}
	if !strings.EqualFold(filepath.Ext(c.Kinetics), ".toml") {
		log.WithField("kinetics", c.Kinetics).Warn("only TOML mechanisms are interpreted; skipping reaction tables and sparsity pattern analysis")
		return c, nil
	}
	m, err := loadMechanism(context.Background(), c.Kinetics)
	if err != nil {
		return nil, err
	}
	if c.ReactionTables {
		if err := writeFile(filepath.Join(c.Output, ReactionTablesFile), func(w io.Writer) error {
			return m.ReactionTables(w, c.ReactionTablesTemperatures)
		}); err != nil {
			return nil, err
		}
	}
	if c.SparsityPatternAnalysis {
		if err := writeFile(filepath.Join(c.Output, SparsityPatternFile), m.SparsityPatternAnalysis); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("laminarsmoke: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
