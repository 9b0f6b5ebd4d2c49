/*
 * atomicdata.go, part of gowannier.
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

import "strings"

//Element symbols ordered by atomic number. Index 0 is a placeholder
//so symbols[Z] is the symbol of the element with atomic number Z.
var symbols = []string{"X",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
}

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Ti": 47.87,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"Ge": 72.63,
	"As": 74.92,
	"Se": 78.96,
	"Br": 79.904,
	"Mo": 95.95,
	"Ag": 107.87,
	"Sn": 118.71,
	"Te": 127.60,
	"I":  126.90,
	"Pt": 195.08,
	"Au": 196.97,
	"Pb": 207.2,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Ti": 1.60,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.2,
	"Br": 1.2,
	"Mo": 1.54,
	"Ag": 1.45,
	"Sn": 1.39,
	"Te": 1.38,
	"I":  1.39,
	"Pt": 1.36,
	"Au": 1.36,
	"Pb": 1.46,
}

//Jmol-like colors, used by the structure viewer.
var symbolColor = map[string]string{
	"H":  "#FFFFFF",
	"B":  "#FFB5B5",
	"C":  "#909090",
	"N":  "#3050F8",
	"O":  "#FF0D0D",
	"F":  "#90E050",
	"Na": "#AB5CF2",
	"Mg": "#8AFF00",
	"Al": "#BFA6A6",
	"Si": "#F0C8A0",
	"P":  "#FF8000",
	"S":  "#FFFF30",
	"Cl": "#1FF01F",
	"Ti": "#BFC2C7",
	"Fe": "#E06633",
	"Cu": "#C88033",
	"Zn": "#7D80B0",
	"Ga": "#C28F8F",
	"Ge": "#668F8F",
	"As": "#BD80E3",
	"Mo": "#54B5B5",
	"Ag": "#C0C0C0",
	"Au": "#FFD123",
}

//SymbolFromZ returns the element symbol for atomic number z, or
//an empty string if z is out of range.
func SymbolFromZ(z int) string {
	if z <= 0 || z >= len(symbols) {
		return ""
	}
	return symbols[z]
}

//ZFromSymbol returns the atomic number for the symbol sym, or 0 if the
//symbol is not known. The comparison is case-insensitive.
func ZFromSymbol(sym string) int {
	for i, v := range symbols[1:] {
		if strings.EqualFold(v, sym) {
			return i + 1
		}
	}
	return 0
}

//Color returns a hex color string for the element, pink if unknown.
func Color(sym string) string {
	if c, ok := symbolColor[sym]; ok {
		return c
	}
	return "#FF1493"
}
