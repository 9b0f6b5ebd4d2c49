/*
 * histo_test.go, part of gowannier.
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

package histo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHisto(Te *testing.T) {
	Te.Parallel()
	raw := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7}
	orig := append([]float64(nil), raw...)
	d := NewData([]float64{0, 1, 2, 3, 4, 8}, raw)
	assert.Equal(Te, orig, raw, "the raw data was modified")
	assert.Equal(Te, []float64{2, 4, 2, 5, 8}, d.View())
	assert.Equal(Te, len(raw), d.Total())
	assert.Equal(Te, 21.0, d.Sum())
	assert.Equal(Te, 4, d.Bin(4))
	assert.Equal(Te, 3, d.Bin(3.5))
	assert.Equal(Te, 4, d.Bin(7.9))
	assert.Equal(Te, -1, d.Bin(8))
	assert.Equal(Te, -1, d.Bin(-1))

	d.AddData(0.5, 7.5, 100)
	assert.Equal(Te, []float64{3, 4, 2, 5, 9}, d.View())
	assert.Equal(Te, len(raw)+3, d.Total())

	d.Normalize()
	d.Normalize()
	assert.True(Te, d.Normalized())
	assert.InDelta(Te, 3.0/26, d.View()[0], 1e-12)
	d.AddData(1.5)
	d.UnNormalize()
	assert.InDeltaSlice(Te, []float64{3, 5, 2, 5, 9}, d.View(), 1e-9)
	assert.Equal(Te, []float64{0.5, 1.5, 2.5, 3.5, 6}, d.Centers())
}

func TestUniform(Te *testing.T) {
	Te.Parallel()
	div := Uniform(-1, 1, 4)
	require.Len(Te, div, 5)
	assert.Equal(Te, []float64{-1, -0.5, 0, 0.5}, div[:4])
	assert.Greater(Te, div[4], 1.0)
	d := NewData(div, []float64{-1, 1, 0})
	assert.Equal(Te, []float64{1, 0, 1, 1}, d.View())
	assert.Len(Te, Uniform(2, 2, 0), 2)
}

func TestHistoJSON(Te *testing.T) {
	Te.Parallel()
	d := NewData(Uniform(0, 10, 5), []float64{1, 2, 3, 9})
	j, err := json.Marshal(d)
	require.NoError(Te, err)
	d2 := new(Data)
	require.NoError(Te, json.Unmarshal(j, d2))
	assert.Equal(Te, d.View(), d2.View())
	assert.Equal(Te, d.CopyDividers(), d2.CopyDividers())
	assert.Equal(Te, d.String(), d2.String())
	assert.Error(Te, json.Unmarshal([]byte(`{"dividers":[0,1,2],"histo":[1]}`), d2))
}
