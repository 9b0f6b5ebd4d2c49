/*
 * view_test.go, part of gowannier.
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

package view

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/config"
	"github.com/rmera/gowannier/results"
	"github.com/rmera/gowannier/spread"
	v3 "github.com/rmera/gowannier/v3"
	"github.com/rmera/gowannier/xsf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func init() {
	wannier.SetLogger(nil)
}

//pairXSF returns an XSF file with two Si atoms at x=1.6 and x=3.4 and a
//function with a positive lobe on the first and a negative one on the second.
func pairXSF(Te *testing.T) []byte {
	Te.Helper()
	const n = 12
	lat, err := v3.NewMatrix([]float64{5, 0, 0, 0, 5, 0, 0, 0, 5})
	require.NoError(Te, err)
	g, err := xsf.NewGrid(n, n, n, r3.Vec{}, lat, make([]float64, n*n*n))
	require.NoError(Te, err)
	a := r3.Vec{X: 1.6, Y: 2.5, Z: 2.5}
	b := r3.Vec{X: 3.4, Y: 2.5, Z: 2.5}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				p := r3.Scale(5.0/n, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
				g.Set(i, j, k, math.Exp(-r3.Norm2(r3.Sub(p, a)))-math.Exp(-r3.Norm2(r3.Sub(p, b))))
			}
		}
	}
	si1, _ := wannier.NewAtom("Si", 1)
	si2, _ := wannier.NewAtom("Si", 2)
	coords, _ := v3.NewMatrix([]float64{a.X, a.Y, a.Z, b.X, b.Y, b.Z})
	st, err := wannier.NewStructure([]*wannier.Atom{si1, si2}, coords, lat.Copy())
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, xsf.Write(&buf, st, g))
	return buf.Bytes()
}

//testData has three Wannier functions: the first centred between the atoms and
//with an isosurface, the second next to the first atom but without isosurface, and
//the third without centre.
func testData(Te *testing.T) *Data {
	Te.Helper()
	c, err := results.Build(results.Memory{"aiida_00001.xsf": pairXSF(Te)}, results.Options{})
	require.NoError(Te, err)
	require.Equal(Te, 1, c.Valid())
	tab := &spread.Table{Seed: "aiida", NumWann: 3, Rows: []*spread.Row{
		{ID: "aiida_00001", Index: 1, Center: &[3]float64{2.5, 2.5, 2.5}, Spread: 2.4},
		{ID: "aiida_00002", Index: 2, Center: &[3]float64{1.6, 2.5, 3.0}, Spread: 2.5},
		{ID: "aiida_00003", Index: 3, Spread: 2.6},
	}}
	return &Data{Outputs: results.DefaultOutputs("aiida"), Collection: c, Structure: c.Structure, Table: tab}
}

func TestNearestAtoms(Te *testing.T) {
	Te.Parallel()
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,
		2, 0, 0,
		0, 2.005, 0,
		0, 0, 3,
	})
	require.NoError(Te, err)
	tests := []struct {
		name   string
		center r3.Vec
		tol    float64
		want   []int
	}{
		{"single", r3.Vec{X: 0.1}, DefaultTolerance, []int{0}},
		{"equidistant", r3.Vec{X: 1}, DefaultTolerance, []int{0, 1}},
		{"within tolerance", r3.Vec{X: 1, Y: 1}, DefaultTolerance, []int{0, 1, 2}},
		{"outside tolerance", r3.Vec{X: 1, Y: 1}, 0.001, []int{0, 1}},
		{"far away", r3.Vec{X: 10}, DefaultTolerance, []int{1}},
	}
	for _, tt := range tests {
		tt := tt
		Te.Run(tt.name, func(Te *testing.T) {
			assert.Equal(Te, tt.want, NearestAtoms(tt.center, coords, tt.tol))
		})
	}
	assert.Nil(Te, NearestAtoms(r3.Vec{}, nil, DefaultTolerance))
}

func TestSelectEquidistant(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	require.True(Te, p.Select("aiida_00001"))
	v := p.Viewer()
	assert.Equal(Te, "aiida_00001", v.Selected)
	assert.Equal(Te, []int{0, 1}, v.Highlighted)
	assert.Equal(Te, "aiida_00001", v.OverlayKey)
	require.Len(Te, v.Overlay, 2)
	assert.Greater(Te, v.Overlay[0].Level, 0.0)
	assert.Less(Te, v.Overlay[1].Level, 0.0)
}

func TestSelectWithoutMesh(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	empty := p.Viewer()
	assert.False(Te, p.Select("aiida_00002"))
	assert.Equal(Te, empty, p.Viewer())
	assert.Empty(Te, empty.Selected)
	assert.Empty(Te, empty.Highlighted)

	//a function without isosurface changes neither the highlight nor the overlay.
	require.True(Te, p.Select("aiida_00001"))
	before := p.Viewer()
	assert.False(Te, p.Select("aiida_00002"))
	v := p.Viewer()
	assert.Equal(Te, before, v)
	assert.Equal(Te, "aiida_00001", v.Selected)
	assert.Equal(Te, []int{0, 1}, v.Highlighted)
	assert.Equal(Te, "aiida_00001", v.OverlayKey)
	assert.Len(Te, v.Overlay, 2)

	d := testData(Te)
	d.Collection = nil
	q := New(d, nil)
	assert.False(Te, q.Select("aiida_00001"))
	assert.Equal(Te, empty, q.Viewer())
}

func TestSelectNoChange(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	require.True(Te, p.Select("aiida_00001"))
	before := p.Viewer()
	for _, id := range []string{"aiida_00003", "nope", ""} {
		assert.False(Te, p.Select(id), id)
		assert.Equal(Te, before, p.Viewer(), id)
	}

	d := testData(Te)
	d.Structure = nil
	q := New(d, nil)
	assert.False(Te, q.Select("aiida_00001"))
	assert.Empty(Te, q.Viewer().Highlighted)
}

func TestViewerCopy(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	p.Select("aiida_00001")
	v := p.Viewer()
	v.Highlighted[0] = 42
	v.Overlay[0] = nil
	w := p.Viewer()
	assert.Equal(Te, 0, w.Highlighted[0])
	assert.NotNil(Te, w.Overlay[0])
}

func TestConcurrentSelect(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				p.Select("aiida_00001")
			} else {
				p.Select("aiida_00002")
			}
			var buf bytes.Buffer
			assert.NoError(Te, p.RenderText(&buf))
		}(i)
	}
	wg.Wait()
	v := p.Viewer()
	assert.Equal(Te, "aiida_00001", v.Selected)
	assert.Equal(Te, []int{0, 1}, v.Highlighted)
	assert.Equal(Te, "aiida_00001", v.OverlayKey)
}

func TestClose(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	assert.NotEmpty(Te, p.ID())
	assert.NotEqual(Te, p.ID(), New(nil, nil).ID())
	p.Select("aiida_00001")
	p.Close()
	assert.Nil(Te, p.Data())
	assert.False(Te, p.Select("aiida_00001"))
	assert.Empty(Te, p.Viewer().Highlighted)
	var buf bytes.Buffer
	assert.ErrorIs(Te, p.Render(&buf), ErrClosed)
	assert.ErrorIs(Te, p.RenderText(&buf), ErrClosed)
	assert.Zero(Te, buf.Len())
}

const wout = `
 |  Number of Wannier Functions               :                 2             |
 Final State
  WF centre and spread    1  (  2.500000,  2.500000,  2.500000 )     2.40000000
  WF centre and spread    2  (  1.600000,  2.500000,  3.000000 )     2.50000000
  Sum of centres and spreads (  4.100000,  5.000000,  5.500000 )     4.90000000

         Spreads (Ang^2)       Omega I      =     4.300000000
        ================       Omega D      =     0.100000000
                               Omega OD     =     0.500000000
    Final Spread (Ang^2)       Omega Total  =     4.900000000
`

func bandDat(Te *testing.T, shift float64) []byte {
	Te.Helper()
	k := []float64{0, 0.5, 1, 1.5}
	e := [][]float64{{-2, -1.5, -1, -1.5}, {1, 1.5, 2, 1.5}}
	for _, b := range e {
		for i := range b {
			b[i] += shift
		}
	}
	B, err := bands.NewBands(k, e)
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, bands.WriteDat(&buf, B))
	return buf.Bytes()
}

func TestQuery(Te *testing.T) {
	Te.Parallel()
	f := results.Memory{
		"outputs.json":       []byte(`{"number_wfc": 2, "fermi_energy": 0.5}`),
		"aiida_00001.xsf":    pairXSF(Te),
		"aiida_00002.xsf":    []byte("not an xsf"),
		"aiida.wout":         []byte(wout),
		"aiida_band.dat":     bandDat(Te, 0.01),
		"reference_band.dat": bandDat(Te, 0),
		"aiida_hr.dat":       []byte("hr"),
	}
	d, err := Query(f, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 2, d.NumberWfc())
	require.NotNil(Te, d.Table)
	require.NotNil(Te, d.Structure)
	require.NotNil(Te, d.Reference)
	require.NotNil(Te, d.Wannier)
	assert.Equal(Te, 2, d.Collection.Len())
	assert.Equal(Te, 1, d.Collection.Valid())
	require.Len(Te, d.Warnings, 1)
	assert.Contains(Te, d.Warnings[0], "aiida_00002.xsf")

	rows := d.Rows()
	require.Len(Te, rows, 2)
	assert.Equal(Te, Row{ID: "aiida_00001", Center: "2.500000, 2.500000, 2.500000", Spread: 2.4, HasMesh: true}, rows[0])
	assert.False(Te, rows[1].HasMesh)

	eta, ok := d.BandDistance()
	require.True(Te, ok)
	assert.InDelta(Te, 0.01, eta, 1e-9)
	c, ok := d.Components()
	require.True(Te, ok)
	assert.InDelta(Te, 4.9, c.Total, 1e-9)

	p := New(d, nil)
	require.True(Te, p.Select("aiida_00001"))
	assert.Equal(Te, []int{0, 1}, p.Viewer().Highlighted)
}

func TestQueryEmptyFolder(Te *testing.T) {
	Te.Parallel()
	d, err := Query(results.Memory{}, config.Default())
	require.NoError(Te, err)
	assert.Nil(Te, d.Table)
	assert.Nil(Te, d.Structure)
	assert.Nil(Te, d.Reference)
	assert.Empty(Te, d.Rows())
	_, ok := d.BandDistance()
	assert.False(Te, ok)
	assert.Len(Te, d.Warnings, 3)
	var buf bytes.Buffer
	require.NoError(Te, RenderHTML(&buf, d, Viewer{}, nil))
	require.NoError(Te, RenderText(&buf, d, Viewer{}))
}

func TestRenderHTML(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	p.Select("aiida_00001")
	var buf bytes.Buffer
	require.NoError(Te, p.Render(&buf))
	html := buf.String()
	assert.True(Te, strings.Contains(html, "<html"), "not an HTML page")
	for _, s := range []string{"Wannier function spreads", "Si2", "nearest atoms", "positive lobe", "negative lobe", "Values of aiida_00001"} {
		assert.Contains(Te, html, s)
	}
	assert.Error(Te, RenderHTML(&buf, nil, Viewer{}, nil))
}

func TestRenderText(Te *testing.T) {
	Te.Parallel()
	p := New(testData(Te), nil)
	p.Select("aiida_00001")
	var buf bytes.Buffer
	require.NoError(Te, p.RenderText(&buf))
	txt := buf.String()
	for _, s := range []string{"Number of Wannier functions", "aiida_00001", "2.500000, 2.500000, 2.500000", "Si1 Si2", "aiida_00001.xsf", "12x12x12"} {
		assert.Contains(Te, txt, s)
	}
}
