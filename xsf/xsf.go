/*
 * xsf.go, part of gowannier.
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

//Package xsf reads XCrySDen structure files (XSF) with a 3D data grid, such as the
//Wannier functions written by Wannier90.
package xsf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	wannier "github.com/rmera/gowannier"
	v3 "github.com/rmera/gowannier/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	gridBegin     = "BEGIN_DATAGRID_3D"
	gridEnd       = "END_DATAGRID_3D"
	blockBegin    = "BEGIN_BLOCK_DATAGRID_3D"
	maxLineLength = 1024 * 1024
	suffix        = ".xsf"
	suffixZstd    = ".xsf.zst"
	suffixGzip    = ".xsf.gz"

	preallocSamples = 1 << 20
)

//File is the content of an XSF file: the atomic structure and the
//first 3D data grid found.
type File struct {
	Name      string
	Structure *wannier.Structure //nil if the file has no atoms
	Grid      *Grid
}

//Key returns the name of an XSF file without the suffix, and true, or
//an empty string and false if name is not an XSF file. Compressed files
//(.xsf.zst, .xsf.gz) are recognized.
func Key(name string) (string, bool) {
	for _, s := range []string{suffixZstd, suffixGzip, suffix} {
		if strings.HasSuffix(name, s) && len(name) > len(s) {
			return strings.TrimSuffix(name, s), true
		}
	}
	return "", false
}

//IsXSF returns true if the name corresponds to an XSF file.
func IsXSF(name string) bool {
	_, ok := Key(name)
	return ok
}

//This will cause additional indirections, but *zstd.Decoder
//doesn't implement io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//Decompress wraps r in a decompressing reader chosen from the suffix of name.
//Plain files are returned as they are, with a no-op Close.
func Decompress(r io.Reader, name string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, Error{kind: UnableToOpen, message: "zstd: " + err.Error(), filename: name, deco: []string{"Decompress"}, critical: true}
		}
		return zstdCloser{d}, nil
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(r)
		if err != nil {
			return nil, Error{kind: UnableToOpen, message: "gzip: " + err.Error(), filename: name, deco: []string{"Decompress"}, critical: true}
		}
		return g, nil
	default:
		return io.NopCloser(r), nil
	}
}

//ReadFile opens and reads the XSF file in path. Compressed files are
//decompressed according to their suffix.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{kind: UnableToOpen, message: err.Error(), filename: path, deco: []string{"ReadFile"}, critical: true}
	}
	defer f.Close()
	d, err := Decompress(f, path)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	defer d.Close()
	ret, err := Read(d, path)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return ret, nil
}

//parser keeps the state while reading an XSF file line by line.
type parser struct {
	s        *bufio.Scanner
	name     string
	line     int
	atoms    []*wannier.Atom
	coords   []float64
	cell     *v3.Matrix
	gridname string
}

func (p *parser) next() (string, bool) {
	if !p.s.Scan() {
		return "", false
	}
	p.line++
	return strings.TrimSpace(p.s.Text()), true
}

func (p *parser) errorf(kind, format string, a ...interface{}) Error {
	msg := fmt.Sprintf(format, a...)
	return Error{kind: kind, message: fmt.Sprintf("%s (line %d): %s", kind, p.line, msg), filename: p.name, critical: true}
}

//floatsN parses exactly n floats from the first n fields of line.
func floatsN(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d in '%s'", n, len(fields), line)
	}
	ret := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		ret[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

//vectors reads n lines with 3 floats each.
func (p *parser) vectors(n int) ([]float64, error) {
	ret := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		l, ok := p.next()
		if !ok {
			return nil, p.errorf(WrongFormat, "unexpected end of file reading vectors")
		}
		v, err := floatsN(l, 3)
		if err != nil {
			return nil, p.errorf(WrongFormat, "%s", err.Error())
		}
		ret = append(ret, v...)
	}
	return ret, nil
}

func (p *parser) atom(fields []string) error {
	if len(fields) < 4 {
		return p.errorf(WrongFormat, "atom line with %d fields", len(fields))
	}
	at, err := wannier.NewAtom(fields[0], len(p.atoms)+1)
	if err != nil {
		return p.errorf(WrongFormat, "%s", err.Error())
	}
	c, err := floatsN(strings.Join(fields[1:4], " "), 3)
	if err != nil {
		return p.errorf(WrongFormat, "%s", err.Error())
	}
	p.atoms = append(p.atoms, at)
	p.coords = append(p.coords, c...)
	return nil
}

func (p *parser) primcoord() error {
	l, ok := p.next()
	if !ok {
		return p.errorf(WrongFormat, "PRIMCOORD without atom count")
	}
	fields := strings.Fields(l)
	if len(fields) == 0 {
		return p.errorf(WrongFormat, "PRIMCOORD without atom count")
	}
	nat, err := strconv.Atoi(fields[0])
	if err != nil || nat < 0 {
		return p.errorf(WrongFormat, "can't read atom count from '%s'", l)
	}
	for i := 0; i < nat; i++ {
		l, ok := p.next()
		if !ok {
			return p.errorf(WrongFormat, "expected %d atoms, got %d", nat, i)
		}
		if err := p.atom(strings.Fields(l)); err != nil {
			return err
		}
	}
	return nil
}

//isAtomLine returns true if the fields look like "Symbol x y z"
func isAtomLine(fields []string) bool {
	if len(fields) < 4 {
		return false
	}
	_, err := floatsN(strings.Join(fields[1:4], " "), 3)
	return err == nil
}

//MaxSamples is the largest number of samples accepted in a grid. Larger headers are
//rejected before reading the samples.
const MaxSamples = 1 << 28

//grid reads the grid header and samples. The BEGIN_DATAGRID_3D line has already been consumed.
func (p *parser) grid() (*Grid, error) {
	l, ok := p.next()
	if !ok {
		return nil, p.errorf(WrongFormat, "missing grid dimensions")
	}
	fields := strings.Fields(l)
	if len(fields) < 3 {
		return nil, p.errorf(WrongFormat, "can't read grid dimensions from '%s'", l)
	}
	var dims [3]int
	var err error
	for i := range dims {
		dims[i], err = strconv.Atoi(fields[i])
		if err != nil {
			return nil, p.errorf(WrongFormat, "can't read grid dimensions from '%s'", l)
		}
		if dims[i] <= 0 {
			return nil, p.errorf(BadDimensions, "%d %d %d", dims[0], dims[1], dims[2])
		}
	}
	o, err := p.vectors(1)
	if err != nil {
		return nil, err
	}
	lat, err := p.vectors(3)
	if err != nil {
		return nil, err
	}
	if dims[0] > MaxSamples/dims[1] || dims[0]*dims[1] > MaxSamples/dims[2] {
		return nil, p.errorf(BadDimensions, "%d %d %d: more than %d samples", dims[0], dims[1], dims[2], MaxSamples)
	}
	expected := dims[0] * dims[1] * dims[2]
	data := make([]float64, 0, min(expected, preallocSamples))
	ended := false
	for {
		l, ok := p.next()
		if !ok {
			break
		}
		if strings.HasPrefix(l, gridEnd) {
			ended = true
			break
		}
		for _, f := range strings.Fields(l) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, p.errorf(WrongFormat, "can't parse sample '%s'", f)
			}
			data = append(data, v)
		}
	}
	if !ended {
		return nil, p.errorf(WrongFormat, "missing %s", gridEnd)
	}
	if len(data) != expected {
		return nil, Error{kind: SampleCountMismatch, message: fmt.Sprintf("%s: expected %d, got %d", SampleCountMismatch, expected, len(data)), filename: p.name, critical: true}
	}
	lattice, _ := v3.NewMatrix(lat) //can't fail, lat has 9 elements.
	g, err := NewGrid(dims[0], dims[1], dims[2], r3.Vec{X: o[0], Y: o[1], Z: o[2]}, lattice, data)
	if err != nil {
		return nil, err
	}
	g.Name = p.gridname
	return g, nil
}

//Read reads an XSF file from r. The name is used for error messages only.
//Only the first data grid in the file is read.
func Read(r io.Reader, name string) (*File, error) {
	p := &parser{s: bufio.NewScanner(r), name: name}
	p.s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	var g *Grid
	inAtoms := false
	for g == nil {
		l, ok := p.next()
		if !ok {
			break
		}
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		fields := strings.Fields(l)
		if inAtoms {
			if isAtomLine(fields) {
				if err := p.atom(fields); err != nil {
					return nil, errDecorate(err, "Read")
				}
				continue
			}
			inAtoms = false
		}
		var err error
		switch {
		case fields[0] == "PRIMVEC":
			var c []float64
			c, err = p.vectors(3)
			if err == nil {
				p.cell, _ = v3.NewMatrix(c)
			}
		case fields[0] == "CONVVEC":
			_, err = p.vectors(3)
		case fields[0] == "PRIMCOORD":
			err = p.primcoord()
		case fields[0] == "ATOMS":
			inAtoms = true
		case strings.HasPrefix(l, blockBegin):
			p.next() //the block comment line
		case strings.HasPrefix(l, gridBegin):
			p.gridname = strings.TrimPrefix(strings.TrimPrefix(l, gridBegin), "_")
			g, err = p.grid()
		}
		if err != nil {
			return nil, errDecorate(err, "Read")
		}
	}
	if err := p.s.Err(); err != nil {
		return nil, Error{kind: ReadError, message: err.Error(), filename: name, deco: []string{"Read"}, critical: true}
	}
	if g == nil {
		return nil, Error{kind: NoGrid, message: NoGrid, filename: name, deco: []string{"Read"}, critical: true}
	}
	ret := &File{Name: name, Grid: g}
	if len(p.atoms) > 0 {
		coords, _ := v3.NewMatrix(p.coords)
		st, err := wannier.NewStructure(p.atoms, coords, p.cell)
		if err != nil {
			return nil, Error{kind: WrongFormat, message: err.Error(), filename: name, deco: []string{"Read"}, critical: true}
		}
		ret.Structure = st
	}
	return ret, nil
}
