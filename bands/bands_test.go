/*
 * bands_test.go, part of gowannier.
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
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bandDat = `  0.00000000E+00 -0.57983543E+01
  0.50000000E+00 -0.52000000E+01
  0.10000000E+01 -0.40000000E+01

  0.00000000E+00  0.62000000E+01
  0.50000000E+00  0.55000000E+01
  0.10000000E+01  0.48000000E+01
`

func mustBands(Te *testing.T, energies ...[]float64) *Bands {
	Te.Helper()
	k := make([]float64, len(energies[0]))
	for i := range k {
		k[i] = float64(i) * 0.1
	}
	b, err := NewBands(k, energies)
	require.NoError(Te, err)
	return b
}

func TestReadDat(Te *testing.T) {
	Te.Parallel()
	b, err := ReadDat(strings.NewReader(bandDat))
	require.NoError(Te, err)
	assert.Equal(Te, 3, b.NK())
	assert.Equal(Te, 2, b.NBands())
	assert.Equal(Te, []float64{0, 0.5, 1}, b.K)
	assert.Equal(Te, []float64{6.2, 5.5, 4.8}, b.Band(1))
	lo, hi := b.Range()
	assert.InDelta(Te, -5.7983543, lo, 1e-12)
	assert.Equal(Te, 6.2, hi)

	var buf bytes.Buffer
	require.NoError(Te, WriteDat(&buf, b))
	b2, err := ReadDat(&buf)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, b.Band(0), b2.Band(0), 1e-7)

	_, err = ReadDat(strings.NewReader("0 1\n1 2\n\n0 3\n"))
	assert.Error(Te, err)
	_, err = ReadDat(strings.NewReader("0 abc\n"))
	assert.Error(Te, err)
	_, err = ReadDat(strings.NewReader(""))
	assert.Error(Te, err)
}

func TestDistance(Te *testing.T) {
	Te.Parallel()
	ref := mustBands(Te, []float64{-5, -4, -3, -4}, []float64{10, 11, 12, 11})
	same, err := Distance(ref, ref, 0, 0.1, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Result{Mu: 0}, same)

	//The occupied band is off by 0.1 eV everywhere, the empty one by 5 eV.
	interp := mustBands(Te, []float64{-5.1, -4.1, -3.1, -4.1}, []float64{15, 16, 17, 16})
	r, err := Distance(ref, interp, 0, 0.1, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.1, r.Eta, 1e-9)
	assert.InDelta(Te, 0.1, r.MaxDist, 1e-9)
	assert.InDelta(Te, 5, r.MaxAbs, 1e-9)

	//With mu above the second band, it counts too.
	r, err = Distance(ref, interp, 30, 0.1, nil)
	require.NoError(Te, err)
	assert.Greater(Te, r.Eta, 3.0)
	assert.InDelta(Te, 5, r.MaxDist, 1e-9)
}

func TestDistanceFractionalWeights(Te *testing.T) {
	Te.Parallel()
	//The second point sits at mu, so its weight is far from 0 and 1.
	ref := mustBands(Te, []float64{-1, 0})
	interp := mustBands(Te, []float64{-0.9, 0.2})
	r, err := Distance(ref, interp, 0, 0.1, nil)
	require.NoError(Te, err)
	var num, den float64
	for i, d := range []float64{-0.1, -0.2} {
		w := math.Sqrt(FermiDirac(ref.Energy.At(i, 0), 0, 0.1) * FermiDirac(interp.Energy.At(i, 0), 0, 0.1))
		num += w * d * d
		den += w
	}
	assert.InDelta(Te, math.Sqrt(num/den), r.Eta, 1e-12)
	assert.InDelta(Te, 0.126045, r.Eta, 1e-6)
	assert.InDelta(Te, 0.099992, r.MaxDist, 1e-6)
	assert.InDelta(Te, 0.2, r.MaxAbs, 1e-12)
}

func TestDistanceExclude(Te *testing.T) {
	Te.Parallel()
	ref := mustBands(Te, []float64{-20, -20, -20}, []float64{-5, -4, -3}, []float64{-2, -1, 0.5})
	interp := mustBands(Te, []float64{-5, -4, -3}, []float64{-2, -1, 0.5})
	r, err := Distance(ref, interp, 1, 0.1, []int{1})
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r.Eta, 1e-12)
	//Without excluding the semicore band, the bands are matched wrongly.
	r, err = Distance(ref, interp, 1, 0.1, nil)
	require.NoError(Te, err)
	assert.Greater(Te, r.Eta, 1.0)

	_, err = Distance(ref, interp, 1, 0.1, []int{4})
	assert.Error(Te, err)
	_, err = Distance(ref, interp, 1, 0, nil)
	assert.Error(Te, err)
	_, err = Distance(ref, mustBands(Te, []float64{1, 2}), 1, 0.1, nil)
	assert.Error(Te, err)
}

func TestDistanceScan(Te *testing.T) {
	Te.Parallel()
	ref := mustBands(Te, []float64{-5, -4}, []float64{1, 2})
	interp := mustBands(Te, []float64{-5, -4}, []float64{1.5, 2.5})
	res, err := DistanceScan(ref, interp, -1, 0.1, []float64{0, 2, 4}, nil)
	require.NoError(Te, err)
	require.Len(Te, res, 3)
	assert.Equal(Te, []float64{-1, 1, 3}, []float64{res[0].Mu, res[1].Mu, res[2].Mu})
	assert.InDelta(Te, 0, res[0].Eta, 1e-9)
	assert.Less(Te, res[0].Eta, res[2].Eta)
}

func TestPlot(Te *testing.T) {
	Te.Parallel()
	ref, err := ReadDat(strings.NewReader(bandDat))
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, WritePNG(&buf, ref, ref, 0.5))
	assert.True(Te, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	require.NoError(Te, PlotPNG(filepath.Join(Te.TempDir(), "bands.png"), ref, nil, 0))
	_, err = Plot(nil, ref, 0)
	assert.Error(Te, err)
}
