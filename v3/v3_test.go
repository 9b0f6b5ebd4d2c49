/*
 * v3_test.go, part of gowannier.
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

package v3

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 || A.Len() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("view did not modify the original matrix:\n%v", A)
	}
	fmt.Println("View\n", A, "\n", View)
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice not divisible by 3 should fail")
	}
}

func TestDistances(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 3, 4, 0, 0, 0, -2})
	if err != nil {
		Te.Fatal(err)
	}
	d := A.Distances(r3.Vec{})
	expected := []float64{0, 5, 2}
	for i, v := range expected {
		if math.Abs(d[i]-v) > 1e-12 {
			Te.Errorf("distance %d: expected %f got %f", i, v, d[i])
		}
	}
	A.SetR3(0, r3.Vec{X: 1, Y: 1, Z: 1})
	if A.R3(0) != (r3.Vec{X: 1, Y: 1, Z: 1}) {
		Te.Errorf("SetR3/R3 mismatch: %v", A.R3(0))
	}
}

func TestInverse(Te *testing.T) {
	cell, err := NewMatrix([]float64{2, 0, 0, 0, 4, 0, 0, 0, 5})
	if err != nil {
		Te.Fatal(err)
	}
	inv, err := cell.Inverse()
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range []float64{0.5, 0.25, 0.2} {
		if math.Abs(inv.At(i, i)-v) > 1e-12 {
			Te.Errorf("inverse diagonal %d: expected %f got %f", i, v, inv.At(i, i))
		}
	}
	sing, _ := NewMatrix([]float64{1, 0, 0, 1, 0, 0, 0, 0, 1})
	if _, err := sing.Inverse(); err == nil {
		Te.Error("singular matrix was inverted")
	}
	cp := cell.Copy()
	cp.Set(0, 0, 10)
	if cell.At(0, 0) != 2 {
		Te.Error("Copy shares memory with the original")
	}
}
