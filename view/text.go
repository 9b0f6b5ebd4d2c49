/*
 * text.go, part of gowannier.
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
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/isosurf"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	return t
}

func atomNames(a wannier.Atomer, idx []int) string {
	names := make([]string, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= a.Len() {
			continue
		}
		names = append(names, fmt.Sprintf("%s%d", a.Atom(i).Symbol, i+1))
	}
	return strings.Join(names, " ")
}

//RenderText writes d as plain-text tables: a summary, the Wannier functions, the
//band distances and the isosurfaces. The row selected in v is marked with "*".
func RenderText(w io.Writer, d *Data, v Viewer) error {
	if d == nil {
		return errors.New("goWannier/view: no data to render")
	}
	var err error
	pf := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}

	sum := newTable(w, "Quantity", "Value")
	sum.SetAlignment(tablewriter.ALIGN_LEFT)
	sum.Append([]string{"Number of Wannier functions", strconv.Itoa(d.NumberWfc())})
	if eta, ok := d.BandDistance(); ok {
		sum.Append([]string{"Band distance (eV)", fmt.Sprintf("%.6f", eta)})
	} else {
		sum.Append([]string{"Band distance (eV)", "-"})
	}
	if d.Outputs != nil {
		sum.Append([]string{"Fermi energy (eV)", fmt.Sprintf("%.4f", d.Outputs.FermiEnergy)})
	}
	if c, ok := d.Components(); ok {
		sum.Append([]string{"Omega I (Å²)", fmt.Sprintf("%.6f", c.OmegaI)})
		sum.Append([]string{"Omega D (Å²)", fmt.Sprintf("%.6f", c.OmegaD)})
		sum.Append([]string{"Omega OD (Å²)", fmt.Sprintf("%.6f", c.OmegaOD)})
		sum.Append([]string{"Omega total (Å²)", fmt.Sprintf("%.6f", c.Total)})
	}
	if d.Structure != nil {
		sum.Append([]string{"Structure", d.Structure.Formula()})
	}
	sum.Render()

	if rows := d.Rows(); len(rows) > 0 {
		pf("\nWannier functions\n")
		wt := newTable(w, "", "ID", "Centre (Å)", "Spread (Å²)", "Isosurface", "Nearest atoms")
		for _, r := range rows {
			mark, near := "", ""
			if r.ID == v.Selected {
				mark = "*"
				if d.Structure != nil {
					near = atomNames(d.Structure, v.Highlighted)
				}
			}
			mesh := "no"
			if r.HasMesh {
				mesh = "yes"
			}
			spread := "-"
			if d.Table != nil {
				spread = fmt.Sprintf("%.6f", r.Spread)
			}
			wt.Append([]string{mark, r.ID, r.Center, spread, mesh, near})
		}
		wt.Render()
	}

	if len(d.Distances) > 0 {
		pf("\nBand distance\n")
		bt := newTable(w, "mu (eV)", "eta (eV)", "max eta (eV)", "max |ΔE| (eV)")
		for _, r := range d.Distances {
			bt.Append([]string{fmt.Sprintf("%.4f", r.Mu), fmt.Sprintf("%.6f", r.Eta), fmt.Sprintf("%.6f", r.MaxDist), fmt.Sprintf("%.6f", r.MaxAbs)})
		}
		bt.Render()
	}

	if d.Collection != nil && d.Collection.Len() > 0 {
		pf("\nIsosurfaces\n")
		it := newTable(w, "File", "Grid", "Min", "Max", "Std", "Isovalue", "Faces +", "Faces -")
		for _, k := range d.Collection.Keys() {
			e, _ := d.Collection.Entry(k)
			if !e.OK() {
				it.Append([]string{e.File, "-", "-", "-", "-", "failed", "-", "-"})
				continue
			}
			faces := make([]string, 0, 2)
			for _, s := range isosurf.Signs {
				n := "-"
				if m, ok := e.Meshes[s]; ok {
					n = strconv.Itoa(m.NFaces())
				}
				faces = append(faces, n)
			}
			it.Append([]string{e.File, fmt.Sprintf("%dx%dx%d", e.Shape[0], e.Shape[1], e.Shape[2]),
				fmt.Sprintf("%.4g", e.Stats.Min), fmt.Sprintf("%.4g", e.Stats.Max), fmt.Sprintf("%.4g", e.Stats.Std),
				fmt.Sprintf("%.4g", e.Isovalue), faces[0], faces[1]})
		}
		it.Render()
		for _, a := range d.Collection.Artifacts {
			pf("%s: %s\n", a.Kind, a.Name)
		}
	}

	if len(d.Warnings) > 0 {
		pf("\nWarnings\n")
		for _, s := range d.Warnings {
			pf("  %s\n", s)
		}
	}
	return err
}
