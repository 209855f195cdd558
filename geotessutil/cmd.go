/*
Copyright © 2026 the geotess authors.
This file is part of geotess.

geotess is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geotess is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geotess.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package geotessutil contains the geotess command-line interface.
package geotessutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geotess"
	"github.com/spatialmodel/geotess/polygon"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives the messages of every command.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to geotess.
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
			name: "verbose",
			usage: `
              verbose turns on debug messages and, for the info command,
              prints every profile of the model.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the path to the model file to read. Files ending in
              ".zst" are decompressed. The path can include environment
              variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{infoCmd.Flags(), convertCmd.Flags(), extractCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path of the model file to write. Paths ending in
              ".ascii" or ".txt" (optionally followed by ".zst") are written
              in ascii format, all others in binary format. A trailing ".zst"
              compresses the file. The path can include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), buildCmd.Flags()},
		},
		{
			name: "layer",
			usage: `
              layer is the name or index of the layer to extract.`,
			defaultVal: "0",
			flagsets:   []*pflag.FlagSet{extractCmd.Flags()},
		},
		{
			name: "radius",
			usage: `
              radius is the radius in km at which to evaluate the model, or
              to test against the horizons of a 3D polygon.`,
			shorthand:  "r",
			defaultVal: 6371.,
			flagsets:   []*pflag.FlagSet{extractCmd.Flags(), containsCmd.Flags()},
		},
		{
			name: "interp",
			usage: `
              interp is the radial interpolator: LINEAR, NEAREST or
              CUBIC_SPLINE.`,
			defaultVal: "LINEAR",
			flagsets:   []*pflag.FlagSet{extractCmd.Flags()},
		},
		{
			name: "allowOutOfRange",
			usage: `
              allowOutOfRange clamps radii outside of the extracted layer to
              the layer boundaries instead of failing.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{extractCmd.Flags()},
		},
		{
			name: "expressions",
			usage: `
              expressions gives derived quantities to compute at every vertex,
              as names (keys) and expressions of the model attributes (values),
              for example {"vpvs": "vp / vs"}. The functions exp, log, sqrt
              and abs are available.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{extractCmd.Flags()},
		},
		{
			name: "description",
			usage: `
              description is the path to a TOML file describing the model to
              build. The path can include environment variables.`,
			shorthand:  "d",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{buildCmd.Flags()},
		},
		{
			name: "polygon",
			usage: `
              polygon is the path to an ascii, KML or KMZ polygon file.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{containsCmd.Flags()},
		},
		{
			name: "points",
			usage: `
              points is a list of points to test, written as "lat,lon" and
              separated by semicolons.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{containsCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOTESS")
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
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(extractCmd)
	Root.AddCommand(buildCmd)
	Root.AddCommand(containsCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geotess: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geotess",
	Short: "Read, write and query earth models made of radial profiles.",
	Long: `geotess works with earth models in which every vertex of a tessellation
holds a radial profile for each layer. Use the subcommands specified below to
inspect, convert, query and build models.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOTESS_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of geotess.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("geotess v%s\n", geotess.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe a model.",
	Long: `info prints the metadata of a model, the number of profiles of each
type in each layer, the number of points and a hash of the model contents.
With --verbose, every profile is printed as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := load(Cfg.GetString("input"))
		if err != nil {
			return err
		}
		return Info(cmd.OutOrStdout(), m, Cfg.GetBool("verbose"))
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a model between formats.",
	Long: `convert reads the model in --input and writes it to --output. The
output format is chosen from the extension of the output path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := load(Cfg.GetString("input"))
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		return m.Save(out)
	},
	DisableAutoGenTag: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Evaluate a layer of a model at a radius.",
	Long: `extract interpolates every attribute of one layer at --radius for each
vertex of the model and prints one row per vertex, followed by any derived
quantities given in --expressions and a final row holding the mean of each
column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := load(Cfg.GetString("input"))
		if err != nil {
			return err
		}
		layer, err := layerIndex(m.MetaData, Cfg.GetString("layer"))
		if err != nil {
			return err
		}
		interp, err := geotess.ParseInterpolatorType(Cfg.GetString("interp"))
		if err != nil {
			return err
		}
		expressions, err := GetStringMapString("expressions", Cfg)
		if err != nil {
			return err
		}
		return Extract(cmd.OutOrStdout(), m, ExtractOptions{
			Layer:           layer,
			Radius:          Cfg.GetFloat64("radius"),
			Interpolator:    interp,
			AllowOutOfRange: Cfg.GetBool("allowOutOfRange"),
			Expressions:     expressions,
		})
	},
	DisableAutoGenTag: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a model from a description.",
	Long: `build creates a model from the TOML description in --description and
writes it to --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := ReadDescription(os.ExpandEnv(Cfg.GetString("description")))
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		m, err := Build(d)
		if err != nil {
			return err
		}
		return m.Save(out)
	},
	DisableAutoGenTag: true,
}

var containsCmd = &cobra.Command{
	Use:   "contains",
	Short: "Test points against a polygon.",
	Long: `contains reads the polygon in --polygon and prints, for each of
--points, whether it lies within the polygon. For 3D polygons --radius is
tested against the polygon horizons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := os.ExpandEnv(Cfg.GetString("polygon"))
		if path == "" {
			return fmt.Errorf("geotess: please specify a polygon file")
		}
		p, err := polygon.ReadFile(path)
		if err != nil {
			return err
		}
		points, err := parsePoints(Cfg.GetString("points"))
		if err != nil {
			return err
		}
		return Contains(cmd.OutOrStdout(), p, points, Cfg.GetFloat64("radius"))
	},
	DisableAutoGenTag: true,
}
