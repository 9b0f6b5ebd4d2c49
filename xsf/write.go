/*
 * write.go, part of gowannier.
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

package xsf

import (
	"bufio"
	"fmt"
	"io"

	wannier "github.com/rmera/gowannier"
)

//Write writes the structure (which can be nil) and the grid in XSF format to w.
//Periodic structures are written as CRYSTAL, others with an ATOMS section.
//Samples are written 6 per line, as Wannier90 does.
func Write(w io.Writer, st *wannier.Structure, g *Grid) error {
	b := bufio.NewWriter(w)
	if st != nil {
		if st.Periodic() {
			fmt.Fprintf(b, "CRYSTAL\nPRIMVEC\n")
			for i := 0; i < 3; i++ {
				r := st.Cell.RawRowView(i)
				fmt.Fprintf(b, " %14.8f %14.8f %14.8f\n", r[0], r[1], r[2])
			}
			fmt.Fprintf(b, "PRIMCOORD\n %d 1\n", st.Len())
		} else {
			fmt.Fprintf(b, "ATOMS\n")
		}
		for i, at := range st.Atoms {
			r := st.Coords.RawRowView(i)
			fmt.Fprintf(b, "%-3s %14.8f %14.8f %14.8f\n", at.Symbol, r[0], r[1], r[2])
		}
		fmt.Fprintln(b)
	}
	name := gridBegin
	if g.Name != "" {
		name = gridBegin + "_" + g.Name
	}
	fmt.Fprintf(b, "%s\n 3D_field\n%s\n", blockBegin, name)
	fmt.Fprintf(b, " %d %d %d\n", g.Nx, g.Ny, g.Nz)
	fmt.Fprintf(b, " %14.8f %14.8f %14.8f\n", g.Origin.X, g.Origin.Y, g.Origin.Z)
	for i := 0; i < 3; i++ {
		r := g.Lattice.RawRowView(i)
		fmt.Fprintf(b, " %14.8f %14.8f %14.8f\n", r[0], r[1], r[2])
	}
	for i, v := range g.Data {
		fmt.Fprintf(b, " %.8e", v)
		if (i+1)%6 == 0 || i == len(g.Data)-1 {
			fmt.Fprintln(b)
		}
	}
	fmt.Fprintf(b, "%s\nEND_BLOCK_DATAGRID_3D\n", gridEnd)
	return b.Flush()
}
