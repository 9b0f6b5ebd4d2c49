/*
 * xsf_test.go, part of gowannier.
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
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//A small Wannier90-like file: 2 atoms, a 3x2x4 grid whose values encode their own
//x, y, z indexes as 100*x+10*y+z.
func sampleXSF(nx, ny, nz int, drop int) string {
	var b strings.Builder
	b.WriteString(` # Generated by the Wannier90 code http://www.wannier.org
 CRYSTAL
 PRIMVEC
   3.0000000   0.0000000   0.0000000
   0.0000000   2.0000000   0.0000000
   0.0000000   0.0000000   4.0000000
 CONVVEC
   3.0000000   0.0000000   0.0000000
   0.0000000   2.0000000   0.0000000
   0.0000000   0.0000000   4.0000000
 PRIMCOORD
    2  1
 Si   0.0000000   0.0000000   0.0000000
 14   1.5000000   1.0000000   2.0000000

BEGIN_BLOCK_DATAGRID_3D
3D_field
BEGIN_DATAGRID_3D_UNKNOWN
`)
	fmt.Fprintf(&b, "%d %d %d\n", nx, ny, nz)
	b.WriteString("0.0 0.0 0.0\n3.0 0.0 0.0\n0.0 2.0 0.0\n0.0 0.0 4.0\n")
	n := 0
	total := nx*ny*nz - drop
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if n >= total {
					break
				}
				fmt.Fprintf(&b, " %d", 100*i+10*j+k)
				n++
				if n%5 == 0 {
					b.WriteString("\n")
				}
			}
		}
	}
	b.WriteString("\nEND_DATAGRID_3D\nEND_BLOCK_DATAGRID_3D\n")
	return b.String()
}

func TestReadShape(Te *testing.T) {
	Te.Parallel()
	f, err := Read(strings.NewReader(sampleXSF(3, 2, 4, 0)), "sample.xsf")
	require.NoError(Te, err)
	g := f.Grid
	assert.Equal(Te, [3]int{3, 2, 4}, g.Shape())
	assert.Equal(Te, 24, g.Len())
	assert.Equal(Te, "UNKNOWN", g.Name)
	//The x index runs fastest, so At must give back the encoded indexes.
	for k := 0; k < 4; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 3; i++ {
				assert.Equal(Te, float64(100*i+10*j+k), g.At(i, j, k))
			}
		}
	}
	assert.Equal(Te, 4.0, g.Lattice.At(2, 2))

	require.NotNil(Te, f.Structure)
	assert.Equal(Te, 2, f.Structure.Len())
	assert.Equal(Te, "Si", f.Structure.Atom(1).Symbol) //given as atomic number
	assert.True(Te, f.Structure.Periodic())
	assert.Equal(Te, "Si2", f.Structure.Formula())
	assert.InDelta(Te, 2.0, f.Structure.Coords.At(1, 2), 1e-12)
}

func TestSampleCountMismatch(Te *testing.T) {
	Te.Parallel()
	f, err := Read(strings.NewReader(sampleXSF(3, 2, 4, 1)), "short.xsf")
	require.Error(Te, err)
	assert.Nil(Te, f)
	var xerr Error
	require.True(Te, errors.As(err, &xerr))
	assert.Equal(Te, SampleCountMismatch, xerr.Kind())
	assert.True(Te, xerr.Validation())
	assert.Contains(Te, err.Error(), "expected 24, got 23")
	assert.Equal(Te, "short.xsf", xerr.FileName())
}

func TestMalformed(Te *testing.T) {
	Te.Parallel()
	cases := map[string]string{
		"no grid":     "CRYSTAL\nPRIMVEC\n1 0 0\n0 1 0\n0 0 1\n",
		"no end":      strings.Replace(sampleXSF(2, 2, 2, 0), "END_DATAGRID_3D", "", 1),
		"bad sample":  strings.Replace(sampleXSF(2, 2, 2, 0), " 110", " abc", 1),
		"bad dims":    strings.Replace(sampleXSF(2, 2, 2, 0), "2 2 2\n", "2 x 2\n", 1),
		"zero dims":   strings.Replace(sampleXSF(2, 2, 2, 0), "2 2 2\n", "2 0 2\n", 1),
		"huge dims":   strings.Replace(sampleXSF(2, 2, 2, 0), "2 2 2\n", "2000000 2000000 2000000\n", 1),
		"bad element": strings.Replace(sampleXSF(2, 2, 2, 0), " Si ", " Qq ", 1),
	}
	for name, text := range cases {
		text := text
		Te.Run(name, func(Te *testing.T) {
			_, err := Read(strings.NewReader(text), name)
			assert.Error(Te, err)
		})
	}
}

func TestOversizedGrid(Te *testing.T) {
	Te.Parallel()
	for _, dims := range []string{"2000000 2000000 2000000", "3037000500 3037000500 3037000500", "1 16385 16385"} {
		_, err := Read(strings.NewReader(strings.Replace(sampleXSF(2, 2, 2, 0), "2 2 2\n", dims+"\n", 1)), "huge.xsf")
		var xerr Error
		require.True(Te, errors.As(err, &xerr), dims)
		assert.Equal(Te, BadDimensions, xerr.Kind(), dims)
		assert.Contains(Te, err.Error(), "more than", dims)
	}
	//Exactly at the limit the header is accepted and the sample count decides.
	_, err := Read(strings.NewReader(strings.Replace(sampleXSF(2, 2, 2, 0), "2 2 2\n", "16384 16384 1\n", 1)), "limit.xsf")
	var xerr Error
	require.True(Te, errors.As(err, &xerr))
	assert.Equal(Te, SampleCountMismatch, xerr.Kind())
}

func TestMoleculeAtoms(Te *testing.T) {
	Te.Parallel()
	text := "ATOMS\n 8 0.0 0.0 0.0\n H 0.0 0.76 0.59\n H 0.0 -0.76 0.59\n" +
		"BEGIN_BLOCK_DATAGRID_3D\ndensity\nBEGIN_DATAGRID_3D\n2 2 2\n0 0 0\n1 0 0\n0 1 0\n0 0 1\n" +
		"1 2 3 4 5 6 7 8\nEND_DATAGRID_3D\nEND_BLOCK_DATAGRID_3D\n"
	f, err := Read(strings.NewReader(text), "water.xsf")
	require.NoError(Te, err)
	require.NotNil(Te, f.Structure)
	assert.False(Te, f.Structure.Periodic())
	assert.Equal(Te, "OH2", f.Structure.Formula())
	assert.Equal(Te, 8.0, f.Grid.At(1, 1, 1))
	assert.Equal(Te, 2.0, f.Grid.At(1, 0, 0))
}

func TestWriteRead(Te *testing.T) {
	Te.Parallel()
	f, err := Read(strings.NewReader(sampleXSF(3, 2, 4, 0)), "sample.xsf")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, Write(&buf, f.Structure, f.Grid))
	f2, err := Read(&buf, "again.xsf")
	require.NoError(Te, err)
	assert.Equal(Te, f.Grid.Shape(), f2.Grid.Shape())
	assert.InDeltaSlice(Te, f.Grid.Data, f2.Grid.Data, 1e-6)
	assert.Equal(Te, f.Structure.Formula(), f2.Structure.Formula())
}

func TestCompressedFiles(Te *testing.T) {
	Te.Parallel()
	dir := Te.TempDir()
	text := []byte(sampleXSF(3, 2, 4, 0))

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(Te, err)
	_, err = zw.Write(text)
	require.NoError(Te, err)
	require.NoError(Te, zw.Close())
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "wf_00001.xsf.zst"), zbuf.Bytes(), 0o644))

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	_, err = gw.Write(text)
	require.NoError(Te, err)
	require.NoError(Te, gw.Close())
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "wf_00002.xsf.gz"), gbuf.Bytes(), 0o644))

	for _, name := range []string{"wf_00001.xsf.zst", "wf_00002.xsf.gz"} {
		f, err := ReadFile(filepath.Join(dir, name))
		require.NoError(Te, err, name)
		assert.Equal(Te, 24, f.Grid.Len())
	}
}

func TestKey(Te *testing.T) {
	Te.Parallel()
	for name, want := range map[string]string{
		"aiida_00001.xsf":     "aiida_00001",
		"aiida_00002.xsf.zst": "aiida_00002",
		"aiida_00003.xsf.gz":  "aiida_00003",
	} {
		k, ok := Key(name)
		assert.True(Te, ok, name)
		assert.Equal(Te, want, k)
	}
	for _, name := range []string{"aiida.wout", ".xsf", "aiida_tb.dat", "aiida.bxsf"} {
		assert.False(Te, IsXSF(name), name)
	}
}
