/*
 * gonum.go, part of gowannier.
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

//All the *Vec functions operate on row vectors, i.e. the cartesian coordinates
//of one point in 3D space.

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//The data slice is used directly, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of (row) vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Len is an alias for NVecs
func (F *Matrix) Len() int {
	return F.NVecs()
}

//VecView returns view of the given vector of the matrix.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//R3 returns the ith vector of F as an r3.Vec. The Vec is a copy.
func (F *Matrix) R3(i int) r3.Vec {
	row := F.RawRowView(i)
	return r3.Vec{X: row[0], Y: row[1], Z: row[2]}
}

//SetR3 sets the ith vector of F to v.
func (F *Matrix) SetR3(i int, v r3.Vec) {
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//Distances returns the euclidean distances from p to each vector of F.
//If dest is given and has the right length, it is used to store the result.
func (F *Matrix) Distances(p r3.Vec, dest ...[]float64) []float64 {
	n := F.NVecs()
	var ret []float64
	if len(dest) > 0 && len(dest[0]) == n {
		ret = dest[0]
	} else {
		ret = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ret[i] = r3.Norm(r3.Sub(F.R3(i), p))
	}
	return ret
}

//Inverse returns the inverse of a 3x3 Matrix (for instance, a set of lattice vectors).
func (F *Matrix) Inverse() (*Matrix, error) {
	if F.NVecs() != 3 {
		return nil, Error{ErrNotXx3Matrix, []string{"Inverse"}, true}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(F.Dense); err != nil {
		return nil, Error{fmt.Sprintf("%s: %s", ErrSingular, err.Error()), []string{"Inverse"}, true}
	}
	return &Matrix{inv}, nil
}

//Copy returns a copy of F that shares no memory with it.
func (F *Matrix) Copy() *Matrix {
	r := Zeros(F.NVecs())
	r.Dense.Copy(F.Dense)
	return r
}

func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r+2)
	v = append(v, "[")
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf(" %9.4f %9.4f %9.4f", row[0], row[1], row[2]))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

//Error is the error type for the v3 package. It fulfills the Error interface
//of the root package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the deco string to the decoration slice of the error
//and returns the resulting slice.
func (err Error) Decorate(deco string) []string {
	//The receiver is not a pointer, but deco is a slice, so appending
	//still works unless the slice has to grow. Callers use the returned value.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical.
func (err Error) Critical() bool { return err.critical }

const (
	ErrNotXx3Matrix = "goWannier/v3: A v3.Matrix should have 3 columns (3 rows for lattice operations)"
	ErrSingular     = "goWannier/v3: Singular matrix"
)
