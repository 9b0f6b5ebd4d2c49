/*
 * grid.go, part of gowannier.
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
	"fmt"

	v3 "github.com/rmera/gowannier/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

//Grid is a scalar field sampled on a regular 3D grid spanned by
//3 lattice vectors from an origin.
//Data is stored in the XSF order: the x index runs fastest, then y, then z.
//In other words, Data is a row-major array of shape (Nz, Ny, Nx).
type Grid struct {
	Nx, Ny, Nz int
	Origin     r3.Vec
	Lattice    *v3.Matrix //one spanning vector per row
	Data       []float64
	Name       string //whatever follows BEGIN_DATAGRID_3D_ in the file, if anything
}

//NewGrid returns a grid with the given dimensions, origin, spanning vectors and
//samples. The data slice is not copied. It returns an error if the number of samples
//is not nx*ny*nz.
func NewGrid(nx, ny, nz int, origin r3.Vec, lattice *v3.Matrix, data []float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, Error{kind: BadDimensions, message: fmt.Sprintf("%s: %d %d %d", BadDimensions, nx, ny, nz), deco: []string{"NewGrid"}, critical: true}
	}
	if lattice == nil || lattice.NVecs() != 3 {
		return nil, Error{kind: WrongFormat, message: "3 lattice vectors are needed", deco: []string{"NewGrid"}, critical: true}
	}
	if expected := nx * ny * nz; len(data) != expected {
		return nil, Error{kind: SampleCountMismatch, message: fmt.Sprintf("%s: expected %d, got %d", SampleCountMismatch, expected, len(data)), deco: []string{"NewGrid"}, critical: true}
	}
	return &Grid{Nx: nx, Ny: ny, Nz: nz, Origin: origin, Lattice: lattice, Data: data}, nil
}

//Shape returns the number of points along each lattice vector, in the (x, y, z) order.
func (G *Grid) Shape() [3]int {
	return [3]int{G.Nx, G.Ny, G.Nz}
}

//Len returns the number of samples in the grid.
func (G *Grid) Len() int {
	return len(G.Data)
}

//Index returns the position in Data of the point with grid indexes i (along the first lattice vector),
//j (second) and k (third).
func (G *Grid) Index(i, j, k int) int {
	return i + G.Nx*(j+G.Ny*k)
}

//At returns the value at the grid point i, j, k. Panics if out of range.
func (G *Grid) At(i, j, k int) float64 {
	if i < 0 || j < 0 || k < 0 || i >= G.Nx || j >= G.Ny || k >= G.Nz {
		panic(fmt.Sprintf("goWannier/xsf: grid index (%d,%d,%d) out of range (%d,%d,%d)", i, j, k, G.Nx, G.Ny, G.Nz))
	}
	return G.Data[G.Index(i, j, k)]
}

//Set sets the value at the grid point i, j, k.
func (G *Grid) Set(i, j, k int, v float64) {
	G.Data[G.Index(i, j, k)] = v
}

//MinMax returns the smallest and largest values in the grid
func (G *Grid) MinMax() (float64, float64) {
	return floats.Min(G.Data), floats.Max(G.Data)
}

//MeanStd returns the mean and standard deviation of the samples.
func (G *Grid) MeanStd() (float64, float64) {
	return stat.MeanStdDev(G.Data, nil)
}
