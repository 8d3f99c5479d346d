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

// Package smokeutil contains the command-line interface of laminarSMOKE.
package smokeutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/laminarsmoke/laminarsmoke"
	"github.com/laminarsmoke/laminarsmoke/grammar"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to laminarSMOKE.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Mechanism",
			usage: `
              Mechanism is the path to the chemical mechanism file (TOML).
              It can contain environment variables.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), tablesCmd.Flags()},
		},
		{
			name: "Mesh.NCells",
			usage: `
              Mesh.NCells is the number of interior cells of the mesh.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Mesh.Patches",
			usage: `
              Mesh.Patches maps the names of the boundary patches of the mesh
              to their numbers of faces.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitialTemperature",
			usage: `
              InitialTemperature is the uniform initial temperature [K].`,
			defaultVal: 1500.,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Pressure",
			usage: `
              Pressure is the uniform pressure [Pa].`,
			defaultVal: 101325.,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MassFractions",
			usage: `
              MassFractions maps species names to their initial mass
              fractions. The mass fractions are normalized to sum to one.`,
			defaultVal: map[string]string{"CH4": "0.055", "O2": "0.22", "N2": "0.725"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Dt",
			usage: `
              Dt is the time step [s].`,
			defaultVal: 1.e-4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EndTime",
			usage: `
              EndTime is the simulated time [s].`,
			defaultVal: 1.e-2,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.Solver",
			usage: `
              Chemistry.Solver is the name of the ODE solver used to integrate
              the chemistry in each cell.`,
			defaultVal: "RKF45",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.AbsTol",
			usage: `
              Chemistry.AbsTol is the absolute tolerance of the ODE solver.`,
			defaultVal: 1.e-12,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.RelTol",
			usage: `
              Chemistry.RelTol is the relative tolerance of the ODE solver.`,
			defaultVal: 1.e-7,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.MaxSteps",
			usage: `
              Chemistry.MaxSteps is the maximum number of ODE solver steps per
              cell and time step.`,
			defaultVal: 100000,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.DtStart",
			usage: `
              Chemistry.DtStart is the first trial step of the ODE solver [s].`,
			defaultVal: 1.e-8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.MinTemperature",
			usage: `
              Chemistry.MinTemperature is the temperature [K] below which
              chemistry is not solved.`,
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.MaxRetries",
			usage: `
              Chemistry.MaxRetries is the number of times the chemistry of a cell
              is retried with a smaller first step after the ODE solver fails.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Transport",
			usage: `
              Transport specifies whether the mixture transport properties
              are evaluated at every time step.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CompositionTolerance",
			usage: `
              CompositionTolerance is the allowed deviation from one of the sum
              of the mass fractions in each cell.`,
			defaultVal: 1.e-6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the NetCDF output file. It can contain
              environment variables.`,
			shorthand:  "o",
			defaultVal: "laminarsmoke.nc",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the log file. If empty, it is the output
              file path with a .log extension.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps the names of output variables to expressions
              of model variables. Model variables are T, p, psi, rho, cp, eta,
              lambda, mw, and Y_<species>, X_<species> and D_<species> for
              each species.`,
			defaultVal: map[string]string{"T": "T", "rho": "rho", "mw": "mw"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Temperatures",
			usage: `
              Temperatures are the temperatures [K] of the reaction tables.`,
			defaultVal: []string{"300", "500", "1000", "1500", "2000", "2500"},
			flagsets:   []*pflag.FlagSet{tablesCmd.Flags()},
		},
		{
			name: "SparsityPattern",
			usage: `
              SparsityPattern specifies whether the sparsity pattern analysis
              of the mechanism is written after the reaction tables.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{tablesCmd.Flags()},
		},
		{
			name: "TablesSpreadsheet",
			usage: `
              TablesSpreadsheet is the path of an .xlsx file to which the reaction
              tables are also written. If empty, no spreadsheet is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{tablesCmd.Flags()},
		},
		{
			name: "ArrheniusPlot",
			usage: `
              ArrheniusPlot is the path of an image file (for example .png or .pdf)
              to which an Arrhenius plot of the rate constants is written. If empty,
              no plot is made.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{tablesCmd.Flags()},
		},
		{
			name: "Dictionary",
			usage: `
              Dictionary is the name of the dictionary holding the pre-processor
              keywords.`,
			defaultVal: "CHEMKIN_PreProcessor",
			flagsets:   []*pflag.FlagSet{preprocCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("LAMINARSMOKE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case bool:
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64(option.name, option.defaultVal.(float64), option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				set.String(option.name, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(preprocCmd)
	Root.AddCommand(grammarCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(tablesCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("laminarsmoke: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "laminarsmoke",
	Short: "Homogeneous chemistry and transport properties for laminar reacting flows.",
	Long: `laminarSMOKE solves detailed homogeneous chemistry and evaluates mixture
transport properties on the cells and boundary faces of a mesh, and validates
input dictionaries of the CHEMKIN mechanism pre-processor.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'LAMINARSMOKE_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of laminarSMOKE.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("laminarSMOKE v%s\n", laminarsmoke.Version)
	},
	DisableAutoGenTag: true,
}

var preprocCmd = &cobra.Command{
	Use:   "preproc dictionary_file",
	Short: "Check a CHEMKIN pre-processor input file.",
	Long: `preproc reads the pre-processor dictionary from the given input file,
checks it against the pre-processor keywords (see the 'grammar' command),
creates the output folder and prints the resolved settings. If the kinetic
mechanism is a TOML mechanism file, the reaction tables and the sparsity
pattern analysis are written to the output folder when requested.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd.OutOrStdout())
		_, err := Preprocess(cmd.OutOrStdout(), log, os.ExpandEnv(args[0]), Cfg.GetString("Dictionary"))
		return err
	},
	DisableAutoGenTag: true,
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the keywords of the CHEMKIN pre-processor.",
	Long: `grammar prints the keywords accepted in CHEMKIN pre-processor input files,
with their kinds, whether they are required, and the keywords they depend on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return grammar.ChemkinPreProcessor().Usage(cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a homogeneous chemistry simulation.",
	Long: `run integrates homogeneous chemistry in every cell of a mesh with uniform
initial conditions, optionally evaluating transport properties at every
time step, and writes the results to a NetCDF file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := RunSettingsFromConfig(Cfg)
		if err != nil {
			return err
		}
		logFile, err := os.Create(settings.LogFile)
		if err != nil {
			return fmt.Errorf("laminarsmoke: creating log file: %v", err)
		}
		defer logFile.Close()
		log := newLogger(io.MultiWriter(cmd.OutOrStdout(), logFile))

		_, err = Run(context.Background(), log, settings)
		return err
	},
	DisableAutoGenTag: true,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the reaction tables of a mechanism.",
	Long: `tables prints the rate constant of every reaction of a TOML mechanism
at the given temperatures, and the change in the number of moles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mechFile, err := checkInputFile("Mechanism", Cfg.GetString("Mechanism"))
		if err != nil {
			return err
		}
		temps, err := checkTemperatures(Cfg.GetStringSlice("Temperatures"))
		if err != nil {
			return err
		}
		m, err := loadMechanism(context.Background(), mechFile)
		if err != nil {
			return err
		}
		if err := m.ReactionTables(cmd.OutOrStdout(), temps); err != nil {
			return err
		}
		if f := os.ExpandEnv(Cfg.GetString("TablesSpreadsheet")); f != "" {
			x, err := m.ReactionTablesXLSX(temps)
			if err != nil {
				return err
			}
			if err := x.Save(f); err != nil {
				return fmt.Errorf("laminarsmoke: writing reaction tables spreadsheet: %v", err)
			}
		}
		if f := os.ExpandEnv(Cfg.GetString("ArrheniusPlot")); f != "" {
			p, err := m.ArrheniusPlot(temps)
			if err != nil {
				return err
			}
			if err := p.Save(6*vg.Inch, 4*vg.Inch, f); err != nil {
				return fmt.Errorf("laminarsmoke: writing Arrhenius plot: %v", err)
			}
		}
		if Cfg.GetBool("SparsityPattern") {
			cmd.Println()
			return m.SparsityPatternAnalysis(cmd.OutOrStdout())
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// newLogger returns a logger writing text to w.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableColors: true}
	return log
}
