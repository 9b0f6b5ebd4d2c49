/*
 * wout.go, part of gowannier.
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

//Package spread reads the centres and spreads of the maximally-localized Wannier
//functions from the main output of Wannier90 (the .wout file).
package spread

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	centreMark   = "WF centre and spread"
	sumMark      = "Sum of centres and spreads"
	finalMark    = "Final State"
	numWannMark  = "Number of Wannier Functions"
	omegaPrefix  = "Omega "
	maxLineBytes = 1024 * 1024
)

//Row is one Wannier function: its id (the same as the key of its isosurface file),
//index (1-based, as in Wannier90), centre in Å and spread in Å².
type Row struct {
	ID     string
	Index  int
	Center *[3]float64 //nil if the output didn't have it.
	Spread float64
}

//CenterText formats the centre the way it is shown in tables, or returns an empty
//string if there is no centre.
func (R *Row) CenterText() string {
	if R.Center == nil {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f, %.6f", R.Center[0], R.Center[1], R.Center[2])
}

//Components are the parts of the total spread, in Å².
type Components struct {
	OmegaI, OmegaD, OmegaOD, Total float64
}

//Sum returns OmegaI+OmegaD+OmegaOD.
func (C Components) Sum() float64 {
	return C.OmegaI + C.OmegaD + C.OmegaOD
}

//Table holds the final centres and spreads in a .wout file.
type Table struct {
	Seed       string
	NumWann    int //as declared in the header, 0 if not found.
	Rows       []*Row
	Components Components
	SumCenter  [3]float64
	SumSpread  float64
}

//ID returns the id of the nth (1-based) Wannier function for a seed name.
//It matches the name, without suffix, of the XSF file Wannier90 writes for the function.
func ID(seed string, n int) string {
	return fmt.Sprintf("%s_%05d", seed, n)
}

//Row returns the row with the given id.
func (T *Table) Row(id string) (*Row, bool) {
	for _, r := range T.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

//IDs returns the ids of all the rows, in order.
func (T *Table) IDs() []string {
	ret := make([]string, len(T.Rows))
	for i, r := range T.Rows {
		ret[i] = r.ID
	}
	return ret
}

//Spreads returns the spread of each row, in order.
func (T *Table) Spreads() []float64 {
	ret := make([]float64, len(T.Rows))
	for i, r := range T.Rows {
		ret[i] = r.Spread
	}
	return ret
}

//Consistent returns true if the spreads of the rows add up to the total spread
//within tol.
func (T *Table) Consistent(tol float64) bool {
	return math.Abs(floats.Sum(T.Spreads())-T.Components.Total) <= tol
}

//ParseCenter parses a centre written as "x, y, z", optionally between parentheses.
func ParseCenter(s string) (*[3]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 3 {
		return nil, fmt.Errorf("centre '%s' doesn't have 3 components", s)
	}
	var ret [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("centre '%s': %w", s, err)
		}
		ret[i] = v
	}
	return &ret, nil
}

//parseCentreLine parses the part after the index in
//"WF centre and spread    1  (  0.000000,  1.357500,  1.357500 )     1.92548377"
//or after the mark in the "Sum of centres and spreads" line.
func parseCentreLine(s string) (*[3]float64, float64, error) {
	open := strings.Index(s, "(")
	closing := strings.LastIndex(s, ")")
	if open < 0 || closing < open {
		return nil, 0, fmt.Errorf("no centre in '%s'", s)
	}
	c, err := ParseCenter(s[open : closing+1])
	if err != nil {
		return nil, 0, err
	}
	fields := strings.Fields(s[closing+1:])
	if len(fields) == 0 {
		return nil, 0, fmt.Errorf("no spread in '%s'", s)
	}
	sp, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, 0, err
	}
	return c, sp, nil
}

func lastFloat(s string) (float64, error) {
	fields := strings.Fields(strings.Trim(s, "| "))
	if len(fields) == 0 {
		return 0, fmt.Errorf("no number in '%s'", s)
	}
	return strconv.ParseFloat(fields[len(fields)-1], 64)
}

//ParseWout reads a Wannier90 .wout file. The centres and spreads are taken from the
//"Final State" block or, if the run didn't get there, from the last set printed.
//seed is used to build the row ids. The name is only used in errors.
func ParseWout(r io.Reader, seed, name string) (*Table, error) {
	T := &Table{Seed: seed}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var rows []*Row
	final := false
	ln := 0
	perr := func(msg string) Error {
		return Error{message: fmt.Sprintf("line %d: %s", ln, msg), filename: name, deco: []string{"ParseWout"}, critical: true}
	}
	for s.Scan() {
		ln++
		line := s.Text()
		switch {
		case strings.Contains(line, finalMark):
			final = true
			rows = nil
		case strings.Contains(line, numWannMark):
			v, err := lastFloat(line)
			if err != nil {
				return nil, perr(err.Error())
			}
			T.NumWann = int(v)
		case strings.Contains(line, centreMark):
			rest := strings.TrimSpace(line[strings.Index(line, centreMark)+len(centreMark):])
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				return nil, perr("no Wannier function index")
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, perr(err.Error())
			}
			c, sp, err := parseCentreLine(rest)
			if err != nil {
				return nil, perr(err.Error())
			}
			if n == 1 && !final {
				rows = nil //a new iteration
			}
			rows = append(rows, &Row{ID: ID(seed, n), Index: n, Center: c, Spread: sp})
		case strings.Contains(line, sumMark):
			c, sp, err := parseCentreLine(line)
			if err != nil {
				return nil, perr(err.Error())
			}
			T.SumCenter = *c
			T.SumSpread = sp
		case strings.Contains(line, omegaPrefix) && strings.Contains(line, "="):
			v, err := lastFloat(line[strings.Index(line, "=")+1:])
			if err != nil {
				return nil, perr(err.Error())
			}
			switch {
			case strings.Contains(line, "Omega Total"):
				T.Components.Total = v
			case strings.Contains(line, "Omega OD"):
				T.Components.OmegaOD = v
			case strings.Contains(line, "Omega D"):
				T.Components.OmegaD = v
			case strings.Contains(line, "Omega I"):
				T.Components.OmegaI = v
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, Error{message: err.Error(), filename: name, deco: []string{"ParseWout"}, critical: true}
	}
	if len(rows) == 0 {
		return nil, Error{message: NoCentres, filename: name, deco: []string{"ParseWout"}, critical: true}
	}
	T.Rows = rows
	if T.NumWann == 0 {
		T.NumWann = len(rows)
	}
	return T, nil
}

//Error is the error type of this package. It fulfills wannier.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("wout file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file where the problem was found
func (err Error) FileName() string { return err.filename }

//Format always returns "wout"
func (err Error) Format() string { return "wout" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const NoCentres = "No Wannier centres found"
