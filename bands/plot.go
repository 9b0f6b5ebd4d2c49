/*
 * plot.go, part of gowannier.
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

package bands

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	refColor     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	wannierColor = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	fermiColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

func addBands(p *plot.Plot, B *Bands, fermi float64, c color.Color, dashed bool, label string) error {
	for j := 0; j < B.NBands(); j++ {
		pts := make(plotter.XYs, B.NK())
		for i, k := range B.K {
			pts[i].X = k
			pts[i].Y = B.Energy.At(i, j) - fermi
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = c
		l.Width = vg.Points(1)
		if dashed {
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(l)
		if j == 0 {
			p.Legend.Add(label, l)
		}
	}
	return nil
}

//Plot returns a plot with the reference bands as solid black lines and the interpolated
//ones (which can be nil) as dashed red lines. Energies are shifted so the Fermi energy is 0.
func Plot(ref, interp *Bands, fermi float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Band structure"
	p.X.Label.Text = "k-path"
	p.Y.Label.Text = "E - E_F (eV)"
	if ref == nil {
		return nil, fmt.Errorf("goWannier/bands: no reference bands to plot")
	}
	if err := addBands(p, ref, fermi, refColor, false, "DFT"); err != nil {
		return nil, err
	}
	if interp != nil {
		if err := addBands(p, interp, fermi, wannierColor, true, "Wannier"); err != nil {
			return nil, err
		}
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = fermiColor
	zero.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(zero)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

//PlotPNG saves the plot of the band structures to the PNG file name.
func PlotPNG(name string, ref, interp *Bands, fermi float64) error {
	p, err := Plot(ref, interp, fermi)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, name); err != nil {
		return fmt.Errorf("goWannier/bands: saving %s: %w", name, err)
	}
	return nil
}

//WritePNG writes the plot of the band structures to w as a PNG image.
func WritePNG(w io.Writer, ref, interp *Bands, fermi float64) error {
	p, err := Plot(ref, interp, fermi)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
