/*
 * bands.go, part of gowannier.
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

//Package bands reads band structures along a k-path and compares a reference (DFT)
//band structure with the one interpolated with Wannier functions.
package bands

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Bands is a band structure: the energies (eV) of each band at each point of a k-path.
type Bands struct {
	K      []float64  //the coordinate of each point along the path.
	Energy *mat.Dense //one row per k-point, one column per band.
}

//NewBands returns a band structure from the path coordinates and the energies, given
//band by band (energies[band][kpoint]).
func NewBands(k []float64, energies [][]float64) (*Bands, error) {
	if len(k) == 0 || len(energies) == 0 {
		return nil, fmt.Errorf("goWannier/bands: empty band structure")
	}
	E := mat.NewDense(len(k), len(energies), nil)
	for b, band := range energies {
		if len(band) != len(k) {
			return nil, fmt.Errorf("goWannier/bands: band %d has %d points, expected %d", b+1, len(band), len(k))
		}
		E.SetCol(b, band)
	}
	return &Bands{K: k, Energy: E}, nil
}

//NK returns the number of k-points.
func (B *Bands) NK() int {
	r, _ := B.Energy.Dims()
	return r
}

//NBands returns the number of bands.
func (B *Bands) NBands() int {
	_, c := B.Energy.Dims()
	return c
}

//Band returns a copy of the energies of the ith (0-based) band.
func (B *Bands) Band(i int) []float64 {
	return mat.Col(nil, i, B.Energy)
}

//Range returns the lowest and highest energies.
func (B *Bands) Range() (float64, float64) {
	raw := B.Energy.RawMatrix()
	if raw.Stride == raw.Cols {
		return floats.Min(raw.Data), floats.Max(raw.Data)
	}
	return mat.Min(B.Energy), mat.Max(B.Energy)
}

//ReadDat reads a band structure in the gnuplot format written by Wannier90 (<seed>_band.dat):
//one "k energy" pair per line, with bands separated by blank lines. Every band must
//be sampled at the same points.
func ReadDat(r io.Reader) (*Bands, error) {
	s := bufio.NewScanner(r)
	var k []float64
	var energies [][]float64
	var curk, cure []float64
	ln := 0
	flush := func() error {
		if len(cure) == 0 {
			return nil
		}
		if k == nil {
			k = curk
		} else if len(curk) != len(k) {
			return fmt.Errorf("goWannier/bands: band %d has %d points, expected %d", len(energies)+1, len(curk), len(k))
		}
		energies = append(energies, cure)
		curk, cure = nil, nil
		return nil
	}
	for s.Scan() {
		ln++
		line := strings.TrimSpace(s.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("goWannier/bands: line %d: expected 2 numbers, got '%s'", ln, line)
		}
		kv, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("goWannier/bands: line %d: %w", ln, err)
		}
		ev, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("goWannier/bands: line %d: %w", ln, err)
		}
		curk = append(curk, kv)
		cure = append(cure, ev)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("goWannier/bands: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return NewBands(k, energies)
}

//WriteDat writes B in the format read by ReadDat.
func WriteDat(w io.Writer, B *Bands) error {
	b := bufio.NewWriter(w)
	for j := 0; j < B.NBands(); j++ {
		for i, k := range B.K {
			fmt.Fprintf(b, "  %14.8E  %14.8E\n", k, B.Energy.At(i, j))
		}
		fmt.Fprintln(b)
	}
	return b.Flush()
}

//FermiDirac returns the occupation of a level with energy e, for a chemical
//potential mu and a smearing sigma.
func FermiDirac(e, mu, sigma float64) float64 {
	x := (e - mu) / sigma
	if x > 700 {
		return 0 //avoids overflow in Exp
	}
	return 1 / (math.Exp(x) + 1)
}

//Result is the distance between two band structures.
type Result struct {
	Mu      float64 //the chemical potential used for the weights.
	Eta     float64 //weighted root mean square difference.
	MaxDist float64 //largest weighted difference.
	MaxAbs  float64 //largest unweighted difference.
}

//Distance compares a reference band structure with an interpolated one, sampled at the
//same k-points. Each energy difference is weighted with sqrt(f_ref·f_interp), where f
//is the Fermi-Dirac occupation for mu and sigma, so only the occupied region (plus a
//margin given by mu) counts. Reference bands in exclude (1-based indexes) are dropped
//first, then only the lowest bands present in both structures are compared.
//The distance is eta = sqrt(Σ w·Δ² / Σ w), with w = sqrt(f_ref·f_interp).
func Distance(ref, interp *Bands, mu, sigma float64, exclude []int) (Result, error) {
	res := Result{Mu: mu}
	if sigma <= 0 {
		return res, fmt.Errorf("goWannier/bands: smearing must be positive, got %g", sigma)
	}
	if ref.NK() != interp.NK() {
		return res, fmt.Errorf("goWannier/bands: reference has %d k-points, interpolated has %d", ref.NK(), interp.NK())
	}
	skip := make(map[int]bool, len(exclude))
	for _, e := range exclude {
		if e < 1 || e > ref.NBands() {
			return res, fmt.Errorf("goWannier/bands: excluded band %d out of range 1-%d", e, ref.NBands())
		}
		skip[e-1] = true
	}
	var keep []int
	for j := 0; j < ref.NBands(); j++ {
		if !skip[j] {
			keep = append(keep, j)
		}
	}
	nb := len(keep)
	if interp.NBands() < nb {
		nb = interp.NBands()
	}
	if nb == 0 {
		return res, fmt.Errorf("goWannier/bands: no bands to compare")
	}
	nk := ref.NK()
	diff := mat.NewDense(nk, nb, nil)
	weight := mat.NewDense(nk, nb, nil)
	for j := 0; j < nb; j++ {
		for i := 0; i < nk; i++ {
			er := ref.Energy.At(i, keep[j])
			ew := interp.Energy.At(i, j)
			diff.Set(i, j, er-ew)
			weight.Set(i, j, math.Sqrt(FermiDirac(er, mu, sigma)*FermiDirac(ew, mu, sigma)))
		}
	}
	w := weight.RawMatrix().Data
	norm := floats.Sum(w)
	if norm == 0 {
		return res, fmt.Errorf("goWannier/bands: no occupied states below mu=%g", mu)
	}
	sq := mat.NewDense(nk, nb, nil)
	sq.MulElem(diff, diff)
	res.Eta = math.Sqrt(floats.Dot(w, sq.RawMatrix().Data) / norm)
	weighted := mat.NewDense(nk, nb, nil)
	weighted.MulElem(diff, weight)
	wd := weighted.RawMatrix().Data
	res.MaxDist = math.Max(math.Abs(floats.Max(wd)), math.Abs(floats.Min(wd)))
	d := diff.RawMatrix().Data
	res.MaxAbs = math.Max(math.Abs(floats.Max(d)), math.Abs(floats.Min(d)))
	return res, nil
}

//DistanceScan returns the distance for each chemical potential fermi+shift.
//The usual shifts are 0 (the occupied bands) and a couple of eV above the Fermi energy.
func DistanceScan(ref, interp *Bands, fermi, sigma float64, shifts []float64, exclude []int) ([]Result, error) {
	ret := make([]Result, 0, len(shifts))
	for _, s := range shifts {
		r, err := Distance(ref, interp, fermi+s, sigma, exclude)
		if err != nil {
			return nil, fmt.Errorf("shift %g: %w", s, err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}
