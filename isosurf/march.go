/*
 * march.go, part of gowannier.
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

//Package isosurf extracts triangulated isosurfaces from the 3D grids read by the xsf package.
//
//The surface is obtained by marching over the cubes of the grid. Each cube is split into 6
//tetrahedra around its main diagonal, and each tetrahedron is cut by at most 2 triangles.
//This has no ambiguous cases, and neighbouring cubes split their common faces along the
//same diagonal, so the resulting surface has no cracks.
//Vertices are first obtained in grid-index space (x, y, z), then transformed to fractional
//coordinates by dividing by the grid shape, and to cartesian ones with the lattice vectors
//and the origin of the grid.
package isosurf

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gowannier/v3"
	"github.com/rmera/gowannier/xsf"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//corner offsets in a cube, bit 0 is x, bit 1 is y, bit 2 is z.
var corners = [8][3]int{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}}

//The six tetrahedra sharing the 0-7 diagonal of a cube.
var tetrahedra = [6][4]int{{0, 1, 3, 7}, {0, 3, 2, 7}, {0, 2, 6, 7}, {0, 6, 4, 7}, {0, 4, 5, 7}, {0, 5, 1, 7}}

type options struct {
	step int
}

//Option modifies the behavior of Extract.
type Option func(*options)

//WithStep sets the step size, in grid points, between the cube corners.
//Larger steps give coarser and faster surfaces. The default is 1.
func WithStep(step int) Option {
	return func(o *options) {
		o.step = step
	}
}

//builder accumulates the vertices (in index space) and faces of a surface.
type builder struct {
	g     *xsf.Grid
	level float64
	verts []float64
	faces []int
	edges map[[2]int]int //grid points joined by the edge -> vertex index
}

//vertex returns the index of the vertex where the surface cuts the edge p-q,
//creating it if needed.
func (b *builder) vertex(p, q [3]int) int {
	ip := b.g.Index(p[0], p[1], p[2])
	iq := b.g.Index(q[0], q[1], q[2])
	key := [2]int{ip, iq}
	if ip > iq {
		key = [2]int{iq, ip}
	}
	if v, ok := b.edges[key]; ok {
		return v
	}
	vp := b.g.Data[ip]
	vq := b.g.Data[iq]
	t := (b.level - vp) / (vq - vp) //vp!=vq, one is above the level, the other is not.
	for i := 0; i < 3; i++ {
		b.verts = append(b.verts, float64(p[i])+t*float64(q[i]-p[i]))
	}
	v := len(b.verts)/3 - 1
	b.edges[key] = v
	return v
}

func (b *builder) pos(v int) r3.Vec {
	return r3.Vec{X: b.verts[3*v], Y: b.verts[3*v+1], Z: b.verts[3*v+2]}
}

func centroid(pts [4][3]int, which []int) r3.Vec {
	var c r3.Vec
	for _, w := range which {
		c = r3.Add(c, r3.Vec{X: float64(pts[w][0]), Y: float64(pts[w][1]), Z: float64(pts[w][2])})
	}
	return r3.Scale(1/float64(len(which)), c)
}

//triangle adds a face, oriented so its normal points along out
//(towards lower values of the field). Degenerate faces are dropped.
func (b *builder) triangle(v0, v1, v2 int, out r3.Vec) {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		return
	}
	p0 := b.pos(v0)
	n := r3.Cross(r3.Sub(b.pos(v1), p0), r3.Sub(b.pos(v2), p0))
	d := r3.Dot(n, out)
	if d == 0 && r3.Norm(n) == 0 {
		return
	}
	if d < 0 {
		v1, v2 = v2, v1
	}
	b.faces = append(b.faces, v0, v1, v2)
}

func (b *builder) tetrahedron(pts [4][3]int) {
	var in, out [4]int
	ni, no := 0, 0
	for i, p := range pts {
		if b.g.At(p[0], p[1], p[2]) > b.level {
			in[ni] = i
			ni++
		} else {
			out[no] = i
			no++
		}
	}
	if ni == 0 || ni == 4 {
		return
	}
	dir := r3.Sub(centroid(pts, out[:no]), centroid(pts, in[:ni]))
	switch ni {
	case 1:
		a := pts[in[0]]
		b.triangle(b.vertex(a, pts[out[0]]), b.vertex(a, pts[out[1]]), b.vertex(a, pts[out[2]]), dir)
	case 3:
		o := pts[out[0]]
		b.triangle(b.vertex(pts[in[0]], o), b.vertex(pts[in[1]], o), b.vertex(pts[in[2]], o), dir)
	case 2:
		a, c := pts[in[0]], pts[in[1]]
		d, e := pts[out[0]], pts[out[1]]
		ad, ae := b.vertex(a, d), b.vertex(a, e)
		ce, cd := b.vertex(c, e), b.vertex(c, d)
		b.triangle(ad, ae, ce, dir)
		b.triangle(ad, ce, cd, dir)
	}
}

//IndexSpace returns the vertices (in grid-index coordinates) and faces of the isosurface
//of g at level. Most users want Extract instead.
func IndexSpace(g *xsf.Grid, level float64, opts ...Option) ([]float64, []int, error) {
	o := options{step: 1}
	for _, f := range opts {
		f(&o)
	}
	if o.step < 1 {
		return nil, nil, Error{kind: BadStep, message: fmt.Sprintf("%s: %d", BadStep, o.step), deco: []string{"IndexSpace"}, critical: true}
	}
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return nil, nil, Error{kind: BadLevel, message: BadLevel, deco: []string{"IndexSpace"}, critical: true}
	}
	if g.Nx <= o.step || g.Ny <= o.step || g.Nz <= o.step {
		return nil, nil, Error{kind: TooSmall, message: fmt.Sprintf("%s: grid %v, step %d", TooSmall, g.Shape(), o.step), deco: []string{"IndexSpace"}, critical: true}
	}
	min, max := g.MinMax()
	if level < min || level >= max {
		return nil, nil, Error{kind: NoSurface, message: fmt.Sprintf("%s: level %g outside the data range [%g, %g)", NoSurface, level, min, max), deco: []string{"IndexSpace"}}
	}
	b := &builder{g: g, level: level, edges: make(map[[2]int]int)}
	s := o.step
	var pts [4][3]int
	for k := 0; k+s < g.Nz; k += s {
		for j := 0; j+s < g.Ny; j += s {
			for i := 0; i+s < g.Nx; i += s {
				for _, t := range tetrahedra {
					for n, c := range t {
						pts[n] = [3]int{i + s*corners[c][0], j + s*corners[c][1], k + s*corners[c][2]}
					}
					b.tetrahedron(pts)
				}
			}
		}
	}
	if len(b.faces) == 0 {
		return nil, nil, Error{kind: NoSurface, message: fmt.Sprintf("%s: level %g", NoSurface, level), deco: []string{"IndexSpace"}}
	}
	return b.verts, b.faces, nil
}

//Extract returns the isosurface of g at level, with the vertices in cartesian coordinates.
func Extract(g *xsf.Grid, level float64, opts ...Option) (*Mesh, error) {
	idx, faces, err := IndexSpace(g, level, opts...)
	if err != nil {
		return nil, errDecorate(err, "Extract")
	}
	if mat.Det(g.Lattice) < 0 {
		//left-handed lattice, the mapping mirrors the faces.
		for i := 0; i < len(faces); i += 3 {
			faces[i+1], faces[i+2] = faces[i+2], faces[i+1]
		}
	}
	return &Mesh{Level: level, Vertices: Cartesian(g, idx), Faces: faces}, nil
}

//Pair extracts the positive (+magnitude) and negative (-magnitude) lobes of g, in that order.
//It fails if either of them can't be obtained.
func Pair(g *xsf.Grid, magnitude float64, opts ...Option) ([2]*Mesh, error) {
	var ret [2]*Mesh
	for i, s := range Signs {
		m, err := Extract(g, s.Level(magnitude), opts...)
		if err != nil {
			return [2]*Mesh{}, fmt.Errorf("%s lobe: %w", s, err)
		}
		ret[i] = m
	}
	return ret, nil
}

//Cartesian maps points given in grid-index coordinates (flattened x, y, z triples) to
//cartesian space: the indexes are divided by the grid shape to obtain fractional
//coordinates, which are multiplied by the lattice vectors. The origin is then added.
func Cartesian(g *xsf.Grid, idx []float64) []float64 {
	n := len(idx) / 3
	if n == 0 {
		return []float64{}
	}
	shape := g.Shape()
	frac := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			frac.Set(i, j, idx[3*i+j]/float64(shape[j]))
		}
	}
	cart := v3.Zeros(n)
	cart.Mul(frac, g.Lattice.Dense)
	for i := 0; i < n; i++ {
		cart.SetR3(i, r3.Add(cart.R3(i), g.Origin))
	}
	return cart.RawMatrix().Data
}

//Fractional maps cartesian points (flattened triples) back to fractional coordinates of
//the grid cell, i.e. it inverts the transformation done by Cartesian except for the
//division by the grid shape.
func Fractional(g *xsf.Grid, cart []float64) ([]float64, error) {
	n := len(cart) / 3
	if n == 0 {
		return []float64{}, nil
	}
	inv, err := g.Lattice.Inverse()
	if err != nil {
		return nil, errDecorate(err, "Fractional")
	}
	shifted := v3.Zeros(n)
	for i := 0; i < n; i++ {
		p := r3.Vec{X: cart[3*i], Y: cart[3*i+1], Z: cart[3*i+2]}
		shifted.SetR3(i, r3.Sub(p, g.Origin))
	}
	frac := v3.Zeros(n)
	frac.Mul(shifted.Dense, inv.Dense)
	return frac.RawMatrix().Data, nil
}
