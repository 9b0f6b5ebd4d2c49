/*
 * select.go, part of gowannier.
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
	"sort"

	"github.com/rmera/gowannier/isosurf"
	v3 "github.com/rmera/gowannier/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

//DefaultTolerance is the distance (Å) within which atoms count as equally near
//to a Wannier centre.
const DefaultTolerance = 0.01

//NearestAtoms returns the indexes, in increasing order, of the atoms closest to center:
//the one at the minimum distance and every other atom no farther than tol from that
//minimum. It returns nil if there are no atoms.
func NearestAtoms(center r3.Vec, coords *v3.Matrix, tol float64) []int {
	if coords == nil || coords.NVecs() == 0 {
		return nil
	}
	d := coords.Distances(center)
	min := floats.Min(d)
	var ret []int
	for i, v := range d {
		if v-min <= tol {
			ret = append(ret, i)
		}
	}
	sort.Ints(ret)
	return ret
}

//Viewer is the state of the 3D structure viewer.
type Viewer struct {
	Selected    string          //id of the last row whose selection had an effect
	Highlighted []int           //indexes of the highlighted atoms
	OverlayKey  string          //key of the isosurface pair shown, or empty
	Overlay     []*isosurf.Mesh //meshes shown over the structure, positive lobe first
}

//Copy returns a copy of V that shares no slices with it. Meshes are not copied.
func (V Viewer) Copy() Viewer {
	ret := V
	ret.Highlighted = append([]int(nil), V.Highlighted...)
	ret.Overlay = append([]*isosurf.Mesh{}, V.Overlay...)
	return ret
}
