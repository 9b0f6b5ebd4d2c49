/*
 * outputs.go, part of gowannier.
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

package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

//OutputsFile is the name of the record with the outputs of the workflow, in the results folder.
const OutputsFile = "outputs.json"

//DefaultSeed is the seed name used by the workflow for the Wannier90 files.
const DefaultSeed = "aiida"

//Spread holds the components of the total spread, in Å².
type Spread struct {
	OmegaD  float64 `json:"Omega_D"`
	OmegaI  float64 `json:"Omega_I"`
	OmegaOD float64 `json:"Omega_OD"`
}

//Total returns the sum of the components.
func (S Spread) Total() float64 {
	return S.OmegaD + S.OmegaI + S.OmegaOD
}

//Outputs is the record of scalar results left by the workflow in the folder, plus
//the names of the files with the rest of the results.
type Outputs struct {
	BandDistance   *float64 `json:"band_distance,omitempty"` //nil if the workflow didn't compute it.
	NumberWfc      int      `json:"number_wfc"`
	FermiEnergy    float64  `json:"fermi_energy"`
	Spread         *Spread  `json:"wannierise,omitempty"`
	Seedname       string   `json:"seedname,omitempty"`
	Wout           string   `json:"wout,omitempty"`
	WannierBands   string   `json:"wannier_bands,omitempty"`
	ReferenceBands string   `json:"reference_bands,omitempty"`
	Found          bool     `json:"-"` //false if the folder had no outputs record.
}

func (O *Outputs) applyDefaults(seed string) {
	if seed == "" {
		seed = DefaultSeed
	}
	if O.Seedname == "" {
		O.Seedname = seed
	}
	if O.Wout == "" {
		O.Wout = O.Seedname + ".wout"
	}
	if O.WannierBands == "" {
		O.WannierBands = O.Seedname + "_band.dat"
	}
	if O.ReferenceBands == "" {
		O.ReferenceBands = "reference_band.dat"
	}
}

//DefaultOutputs returns the record assumed when the folder has none, for the given seed name.
func DefaultOutputs(seed string) *Outputs {
	ret := new(Outputs)
	ret.applyDefaults(seed)
	return ret
}

//LoadOutputs reads the outputs record of the folder. If there is none, the defaults
//are returned with Found set to false, and no error. The seed is used for the file
//names the record doesn't give; an empty seed means DefaultSeed.
func LoadOutputs(f Folder, seed string) (*Outputs, error) {
	rc, err := f.Open(OutputsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultOutputs(seed), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", OutputsFile, err)
	}
	defer rc.Close()
	ret := new(Outputs)
	if err := json.NewDecoder(rc).Decode(ret); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", OutputsFile, err)
	}
	if ret.NumberWfc < 0 {
		return nil, fmt.Errorf("parsing %s: negative number of Wannier functions %d", OutputsFile, ret.NumberWfc)
	}
	ret.Found = true
	ret.applyDefaults(seed)
	return ret, nil
}
