/*
 * percentile.go, part of gowannier.
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

package isosurf

import (
	"math"
	"sort"

	"github.com/rmera/gowannier/xsf"
)

//DefaultPercentile is the percentile of the samples of a grid used as isovalue magnitude.
const DefaultPercentile = 90.0

//Percentile returns the pth percentile (0<=p<=100) of data, interpolating
//linearly between the two closest ranks (the same definition numpy uses by default).
//data is not modified. Returns NaN for empty data or p out of range.
func Percentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 || p < 0 || p > 100 || math.IsNaN(p) {
		return math.NaN()
	}
	s := make([]float64, n)
	copy(s, data)
	sort.Float64s(s)
	h := float64(n-1) * p / 100
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return s[int(lo)] + (h-lo)*(s[int(hi)]-s[int(lo)])
}

//Isovalue returns the magnitude of the isovalue for the grid: the absolute value of the
//pth percentile of its samples. If p is not given, DefaultPercentile is used.
func Isovalue(g *xsf.Grid, p ...float64) float64 {
	perc := DefaultPercentile
	if len(p) > 0 {
		perc = p[0]
	}
	return math.Abs(Percentile(g.Data, perc))
}
