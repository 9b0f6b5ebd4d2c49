/*
 * structure.go, part of gowannier.
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

package wannier

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/rmera/gowannier/v3"
)

//Atom contains the information of one atom except for its coordinates,
//which are kept in a v3.Matrix.
type Atom struct {
	Name   string
	Id     int
	Symbol string
	Z      int
	Mass   float64
	Covrad float64
}

//NewAtom builds an Atom from a field that is either an element symbol
//or an atomic number, as both are allowed in XSF files.
func NewAtom(field string, id int) (*Atom, error) {
	at := &Atom{Id: id}
	if z, err := strconv.Atoi(field); err == nil {
		at.Z = z
		at.Symbol = SymbolFromZ(z)
		if at.Symbol == "" {
			return nil, fmt.Errorf("invalid atomic number %d", z)
		}
	} else {
		at.Z = ZFromSymbol(field)
		if at.Z == 0 {
			return nil, fmt.Errorf("unknown element %q", field)
		}
		at.Symbol = symbols[at.Z]
	}
	at.Name = at.Symbol
	at.Mass = symbolMass[at.Symbol] //zero if we don't know it
	at.Covrad = symbolCovrad[at.Symbol]
	return at, nil
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

//Structure is a set of atoms with their cartesian coordinates (in Angstrom)
//and, for periodic systems, the cell vectors (one per row).
type Structure struct {
	Atoms  []*Atom
	Coords *v3.Matrix
	Cell   *v3.Matrix //nil for non-periodic systems
}

//NewStructure makes a structure. The number of atoms and coordinates must match.
func NewStructure(atoms []*Atom, coords *v3.Matrix, cell *v3.Matrix) (*Structure, error) {
	if coords == nil || len(atoms) != coords.NVecs() {
		n := 0
		if coords != nil {
			n = coords.NVecs()
		}
		return nil, fmt.Errorf("goWannier: %d atoms but %d coordinates", len(atoms), n)
	}
	if cell != nil && cell.NVecs() != 3 {
		return nil, fmt.Errorf("goWannier: the cell needs 3 vectors, got %d", cell.NVecs())
	}
	return &Structure{Atoms: atoms, Coords: coords, Cell: cell}, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Atom returns the Atom corresponding to the index i. Panics if
//out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() {
		panic("Structure: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

//Periodic returns true if the structure has cell vectors.
func (S *Structure) Periodic() bool {
	return S.Cell != nil
}

var _ Atomer = (*Structure)(nil)

//Formula returns a chemical formula with the elements in order of appearance.
func (S *Structure) Formula() string {
	return Formula(S)
}

//Formula returns the chemical formula of the atoms in a, with the elements
//in order of appearance.
func Formula(a Atomer) string {
	counts := make(map[string]int)
	order := make([]string, 0, 4)
	for i := 0; i < a.Len(); i++ {
		at := a.Atom(i)
		if _, ok := counts[at.Symbol]; !ok {
			order = append(order, at.Symbol)
		}
		counts[at.Symbol]++
	}
	var b strings.Builder
	for _, s := range order {
		b.WriteString(s)
		if counts[s] > 1 {
			b.WriteString(strconv.Itoa(counts[s]))
		}
	}
	return b.String()
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	ats := make([]*Atom, len(S.Atoms))
	for i, v := range S.Atoms {
		ats[i] = v.Copy()
	}
	r := &Structure{Atoms: ats, Coords: S.Coords.Copy()}
	if S.Cell != nil {
		r.Cell = S.Cell.Copy()
	}
	return r
}
