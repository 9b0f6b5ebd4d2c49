/*
 * config.go, part of gowannier.
 *
 * Copyright 2024 The gowannier authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config reads the YAML configuration of the Wannier90 results viewer.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rmera/gowannier/settings"
	"gopkg.in/yaml.v3"
)

//Config holds everything that can be tuned without recompiling.
type Config struct {
	Folder     string           `yaml:"folder"` //retrieved results folder, relative to the config file.
	Seedname   string           `yaml:"seedname"`
	Protocol   string           `yaml:"protocol"`
	Isosurface IsosurfaceConfig `yaml:"isosurface"`
	Selection  SelectionConfig  `yaml:"selection"`
	Bands      BandsConfig      `yaml:"bands"`
	Report     ReportConfig     `yaml:"report"`
}

//IsosurfaceConfig controls the extraction of the Wannier function isosurfaces.
type IsosurfaceConfig struct {
	Percentile float64 `yaml:"percentile"`
	Step       int     `yaml:"step"`
}

//SelectionConfig controls what is highlighted when a Wannier function is selected.
type SelectionConfig struct {
	Tolerance float64 `yaml:"tolerance"` //Å, atoms this close to the nearest distance are highlighted too.
}

//BandsConfig sets up the band distance.
type BandsConfig struct {
	Sigma   float64   `yaml:"sigma"`   //eV
	Shifts  []float64 `yaml:"shifts"`  //eV above the Fermi energy
	Exclude []int     `yaml:"exclude"` //1-based reference bands left out
}

//ReportConfig names the outputs of the report.
type ReportConfig struct {
	Title  string `yaml:"title"`
	HTML   string `yaml:"html"`
	PNG    string `yaml:"png"`
	Meshes string `yaml:"meshes"`
	Width  string `yaml:"width"`
	Height string `yaml:"height"`
}

//Defaults
const (
	DefaultPercentile = 90.0
	DefaultTolerance  = 0.01
	DefaultSigma      = 0.1
	DefaultSeedname   = "aiida"
	DefaultTitle      = "Wannier90 results"
)

//Default returns the configuration used when there is no file.
func Default() *Config {
	c := new(Config)
	c.applyDefaults("")
	return c
}

//Load reads the configuration in path. Relative paths in it are taken as relative
//to the directory of the file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("empty configuration file path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening configuration: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Dir(path))
}

//Parse reads a YAML configuration from r. Unknown keys are an error.
func Parse(r io.Reader, baseDir string) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	c.applyDefaults(baseDir)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func resolve(baseDir, p string) string {
	if p == "" || baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func (c *Config) applyDefaults(baseDir string) {
	if c.Seedname == "" {
		c.Seedname = DefaultSeedname
	}
	if c.Protocol == "" {
		c.Protocol = string(settings.DefaultProtocol)
	}
	if c.Isosurface.Percentile == 0 {
		c.Isosurface.Percentile = DefaultPercentile
	}
	if c.Isosurface.Step == 0 {
		c.Isosurface.Step = 1
	}
	if c.Selection.Tolerance == 0 {
		c.Selection.Tolerance = DefaultTolerance
	}
	if c.Bands.Sigma == 0 {
		c.Bands.Sigma = DefaultSigma
	}
	if c.Bands.Shifts == nil {
		c.Bands.Shifts = []float64{0, 2}
	}
	if c.Report.Title == "" {
		c.Report.Title = DefaultTitle
	}
	if c.Report.Width == "" {
		c.Report.Width = "900px"
	}
	if c.Report.Height == "" {
		c.Report.Height = "500px"
	}
	c.Folder = resolve(baseDir, c.Folder)
	c.Report.HTML = resolve(baseDir, c.Report.HTML)
	c.Report.PNG = resolve(baseDir, c.Report.PNG)
	c.Report.Meshes = resolve(baseDir, c.Report.Meshes)
}

//Validate checks the values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.Isosurface.Percentile < 0 || c.Isosurface.Percentile > 100 {
		return fmt.Errorf("isosurface percentile %g out of range 0-100", c.Isosurface.Percentile)
	}
	if c.Isosurface.Step < 1 {
		return fmt.Errorf("isosurface step must be at least 1, got %d", c.Isosurface.Step)
	}
	if c.Selection.Tolerance < 0 {
		return fmt.Errorf("negative selection tolerance %g", c.Selection.Tolerance)
	}
	if c.Bands.Sigma <= 0 {
		return fmt.Errorf("band smearing must be positive, got %g", c.Bands.Sigma)
	}
	if _, ok := settings.Protocol(c.Protocol).KpointsDistance(); !ok {
		return fmt.Errorf("unknown protocol %q", c.Protocol)
	}
	return nil
}
