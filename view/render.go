/*
 * render.go, part of gowannier.
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
	"errors"
	"fmt"
	"io"

	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/config"
	"github.com/rmera/gowannier/isosurf"
	"github.com/rmera/gowannier/results"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//Largest number of vertices of one lobe drawn in the 3D view.
const maxOverlayPoints = 4000

const (
	referenceColor = "#000000"
	wannierColor   = "#dc143c"
	selectedColor  = "#d62728"
	spreadColor    = "#1f77b4"
	highlightColor = "#ffd700"
)

var lobeColors = map[isosurf.Sign]string{isosurf.Positive: "#1f77b4", isosurf.Negative: "#ff7f0e"}

func addBandSeries(line *charts.Line, B *bands.Bands, fermi float64, name, color, style string) {
	for j := 0; j < B.NBands(); j++ {
		data := make([]opts.LineData, B.NK())
		for i, k := range B.K {
			data[i] = opts.LineData{Value: []interface{}{k, B.Energy.At(i, j) - fermi}}
		}
		line.AddSeries(name, data, charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1, Type: style}))
	}
}

func bandsChart(d *Data, init opts.Initialization) *charts.Line {
	fermi := 0.0
	if d.Outputs != nil {
		fermi = d.Outputs.FermiEnergy
	}
	sub := "no band distance available"
	if eta, ok := d.BandDistance(); ok {
		sub = fmt.Sprintf("band distance %.4f eV", eta)
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: "Band structure", Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "k-path", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "E - E_F (eV)", NameLocation: "middle", NameGap: 35}),
	)
	if d.Reference != nil {
		addBandSeries(line, d.Reference, fermi, "DFT", referenceColor, "solid")
	}
	if d.Wannier != nil {
		addBandSeries(line, d.Wannier, fermi, "Wannier", wannierColor, "dashed")
	}
	return line
}

func spreadChart(rows []Row, v Viewer, init opts.Initialization) *charts.Bar {
	ids := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		color := spreadColor
		if r.ID == v.Selected {
			color = selectedColor
		}
		data[i] = opts.BarData{Name: r.ID, Value: r.Spread, ItemStyle: &opts.ItemStyle{Color: color}}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: "Wannier function spreads", Subtitle: "Å²"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(ids).AddSeries("spread", data)
	return bar
}

func componentsChart(d *Data, init opts.Initialization) *charts.Bar {
	c, _ := d.Components()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: "Spread components", Subtitle: fmt.Sprintf("total %.6f Å²", c.Total)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	stack := charts.WithBarChartOpts(opts.BarChart{Stack: "omega"})
	bar.SetXAxis([]string{"Ω"}).
		AddSeries("Omega I", []opts.BarData{{Value: c.OmegaI}}, stack).
		AddSeries("Omega D", []opts.BarData{{Value: c.OmegaD}}, stack).
		AddSeries("Omega OD", []opts.BarData{{Value: c.OmegaOD}}, stack)
	return bar
}

func point3D(name string, p [3]float64, color string) opts.Chart3DData {
	return opts.Chart3DData{Name: name, Value: []interface{}{p[0], p[1], p[2]}, ItemStyle: &opts.ItemStyle{Color: color}}
}

func structureChart(st *wannier.Structure, v Viewer, init opts.Initialization) *charts.Scatter3D {
	hl := make(map[int]bool, len(v.Highlighted))
	for _, i := range v.Highlighted {
		hl[i] = true
	}
	var atoms, near []opts.Chart3DData
	for i, at := range st.Atoms {
		r := st.Coords.RawRowView(i)
		name := fmt.Sprintf("%s%d", at.Symbol, i+1)
		p := [3]float64{r[0], r[1], r[2]}
		if hl[i] {
			near = append(near, point3D(name, p, highlightColor))
			continue
		}
		atoms = append(atoms, point3D(name, p, wannier.Color(at.Symbol)))
	}
	sub := "select a Wannier function to show it"
	if v.Selected != "" {
		sub = fmt.Sprintf("%s, %d nearest atom(s)", v.Selected, len(v.Highlighted))
	}
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: st.Formula(), Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "x (Å)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "y (Å)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "z (Å)"}),
	)
	sc.AddSeries("atoms", atoms)
	if len(near) > 0 {
		sc.AddSeries("nearest atoms", near)
	}
	for i, m := range v.Overlay {
		if i >= len(isosurf.Signs) {
			break
		}
		s := isosurf.Signs[i]
		sc.AddSeries(fmt.Sprintf("%s lobe", s), meshPoints(m, lobeColors[s]))
	}
	return sc
}

//valuesChart shows the distribution of the samples of one file, with the bins of
//both isovalues marked.
func valuesChart(e *results.Entry, init opts.Initialization) *charts.Bar {
	h := e.Values
	iso := map[int]bool{h.Bin(e.Isovalue): true, h.Bin(-e.Isovalue): true}
	centers := h.Centers()
	labels := make([]string, len(centers))
	data := make([]opts.BarData, len(centers))
	for i, c := range centers {
		labels[i] = fmt.Sprintf("%.3g", c)
		color := spreadColor
		if iso[i] {
			color = selectedColor
		}
		data[i] = opts.BarData{Value: h.View()[i], ItemStyle: &opts.ItemStyle{Color: color}}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: "Values of " + e.Key, Subtitle: fmt.Sprintf("isovalue ±%.4g", e.Isovalue)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("samples", data)
	return bar
}

//meshPoints returns the vertices of m, at most maxOverlayPoints of them.
func meshPoints(m *isosurf.Mesh, color string) []opts.Chart3DData {
	n := m.NVertices()
	stride := 1
	if n > maxOverlayPoints {
		stride = (n + maxOverlayPoints - 1) / maxOverlayPoints
	}
	ret := make([]opts.Chart3DData, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		p := m.Vertex(i)
		ret = append(ret, point3D("", [3]float64{p.X, p.Y, p.Z}, color))
	}
	return ret
}

//RenderHTML writes an HTML page with the charts for d, with the 3D view in the state v.
//It only reads its arguments.
func RenderHTML(w io.Writer, d *Data, v Viewer, cfg *config.Config) error {
	if d == nil {
		return errors.New("goWannier/view: no data to render")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	init := opts.Initialization{PageTitle: cfg.Report.Title, Width: cfg.Report.Width, Height: cfg.Report.Height}
	page := components.NewPage()
	page.PageTitle = cfg.Report.Title
	page.SetLayout(components.PageFlexLayout)
	if d.Reference != nil || d.Wannier != nil {
		page.AddCharts(bandsChart(d, init))
	}
	rows := d.Rows()
	if d.Table != nil && len(rows) > 0 {
		page.AddCharts(spreadChart(rows, v, init))
	}
	if _, ok := d.Components(); ok {
		page.AddCharts(componentsChart(d, init))
	}
	if d.Structure != nil {
		page.AddCharts(structureChart(d.Structure, v, init))
	}
	if d.Collection != nil && v.OverlayKey != "" {
		if e, ok := d.Collection.Entry(v.OverlayKey); ok && e.Values != nil {
			page.AddCharts(valuesChart(e, init))
		}
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("goWannier/view: rendering page: %w", err)
	}
	return nil
}
