/*
 * config_test.go, part of gowannier.
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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(Te *testing.T) {
	Te.Parallel()
	c := Default()
	assert.Equal(Te, 90.0, c.Isosurface.Percentile)
	assert.Equal(Te, 1, c.Isosurface.Step)
	assert.Equal(Te, 0.01, c.Selection.Tolerance)
	assert.Equal(Te, "aiida", c.Seedname)
	assert.Equal(Te, "moderate", c.Protocol)
	assert.Equal(Te, []float64{0, 2}, c.Bands.Shifts)
	assert.NoError(Te, c.Validate())

	empty, err := Parse(strings.NewReader(""), "")
	require.NoError(Te, err)
	if diff := cmp.Diff(c, empty); diff != "" {
		Te.Errorf("empty file differs from defaults (-want +got):\n%s", diff)
	}
}

func TestLoad(Te *testing.T) {
	Te.Parallel()
	dir := Te.TempDir()
	path := filepath.Join(dir, "wannier.yaml")
	text := `folder: retrieved
seedname: si
protocol: precise
isosurface:
  percentile: 95
  step: 2
selection:
  tolerance: 0.05
bands:
  sigma: 0.2
  shifts: [0, 1, 3]
  exclude: [1, 2, 3, 4, 5]
report:
  html: out/report.html
  png: /tmp/bands.png
`
	require.NoError(Te, os.WriteFile(path, []byte(text), 0o644))
	c, err := Load(path)
	require.NoError(Te, err)
	assert.Equal(Te, filepath.Join(dir, "retrieved"), c.Folder)
	assert.Equal(Te, "si", c.Seedname)
	assert.Equal(Te, 95.0, c.Isosurface.Percentile)
	assert.Equal(Te, 2, c.Isosurface.Step)
	assert.Equal(Te, 0.05, c.Selection.Tolerance)
	assert.Equal(Te, []float64{0, 1, 3}, c.Bands.Shifts)
	assert.Equal(Te, []int{1, 2, 3, 4, 5}, c.Bands.Exclude)
	assert.Equal(Te, filepath.Join(dir, "out", "report.html"), c.Report.HTML)
	assert.Equal(Te, "/tmp/bands.png", c.Report.PNG)
	assert.Equal(Te, "", c.Report.Meshes)
	assert.Equal(Te, DefaultTitle, c.Report.Title)
}

func TestLoadErrors(Te *testing.T) {
	Te.Parallel()
	_, err := Load("")
	assert.Error(Te, err)
	_, err = Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
	for name, text := range map[string]string{
		"unknown key": "colour: red\n",
		"percentile":  "isosurface:\n  percentile: 120\n",
		"step":        "isosurface:\n  step: -1\n",
		"protocol":    "protocol: sloppy\n",
		"syntax":      "bands: [\n",
	} {
		_, err := Parse(strings.NewReader(text), "")
		assert.Error(Te, err, name)
	}
}
