/*
 * data.go, part of gowannier.
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

//Package view presents the results of a Wannier90 calculation: band structures,
//the table of Wannier centres and spreads, and a 3D view of the structure where
//selecting a Wannier function highlights its nearest atoms and shows its isosurface.
//
//The data are gathered once by Query and never changed afterwards. A Panel holds the
//data and the state of the 3D viewer, and renders both as HTML or text.
package view

import (
	"fmt"

	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/config"
	"github.com/rmera/gowannier/isosurf"
	"github.com/rmera/gowannier/results"
	"github.com/rmera/gowannier/spread"
)

//Row is one line of the Wannier function table.
type Row struct {
	ID      string
	Center  string //as shown in the table, "x, y, z", or empty.
	Spread  float64
	HasMesh bool
}

//Data is everything the panel shows, gathered from a results folder.
type Data struct {
	Outputs    *results.Outputs
	Collection *results.Collection
	Structure  *wannier.Structure //nil if no volumetric file could be read
	Table      *spread.Table      //nil if the .wout file is missing or unreadable
	Reference  *bands.Bands       //nil if missing
	Wannier    *bands.Bands       //nil if missing
	Distances  []bands.Result     //band distances for each shift of the configuration, if both band structures are there.
	Warnings   []string           //problems that didn't prevent showing the rest
}

func (D *Data) warn(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	wannier.Logf("goWannier/view: %s", msg)
	D.Warnings = append(D.Warnings, msg)
}

//Rows returns the rows of the Wannier function table. If there is no .wout data,
//there is one row per isosurface, without centre or spread.
func (D *Data) Rows() []Row {
	var ret []Row
	if D.Table != nil {
		for _, r := range D.Table.Rows {
			row := Row{ID: r.ID, Center: r.CenterText(), Spread: r.Spread}
			if D.Collection != nil {
				_, row.HasMesh = D.Collection.Mesh(r.ID, isosurf.Positive)
			}
			ret = append(ret, row)
		}
		return ret
	}
	if D.Collection == nil {
		return nil
	}
	for _, k := range D.Collection.Keys() {
		_, ok := D.Collection.Mesh(k, isosurf.Positive)
		ret = append(ret, Row{ID: k, HasMesh: ok})
	}
	return ret
}

//Row returns the table row with the given id.
func (D *Data) Row(id string) (Row, bool) {
	for _, r := range D.Rows() {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

func readBands(f results.Folder, name string) (*bands.Bands, error) {
	rc, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return bands.ReadDat(rc)
}

//Query gathers the data to show from a results folder. Only a folder that can't be
//listed is an error: missing or broken files are noted in Data.Warnings.
func Query(f results.Folder, cfg *config.Config) (*Data, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	D := new(Data)
	out, err := results.LoadOutputs(f, cfg.Seedname)
	if err != nil {
		D.warn("%s", err.Error())
		out = results.DefaultOutputs(cfg.Seedname)
	}
	D.Outputs = out
	D.Collection, err = results.Build(f, results.Options{Percentile: cfg.Isosurface.Percentile, Step: cfg.Isosurface.Step})
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	D.Structure = D.Collection.Structure
	for _, e := range D.Collection.Failed() {
		D.Warnings = append(D.Warnings, e.Err)
	}

	if rc, err := f.Open(out.Wout); err != nil {
		D.warn("no Wannier centres: %s", err.Error())
	} else {
		D.Table, err = spread.ParseWout(rc, out.Seedname, out.Wout)
		rc.Close()
		if err != nil {
			D.warn("%s", err.Error())
			D.Table = nil
		}
	}

	if D.Reference, err = readBands(f, out.ReferenceBands); err != nil {
		D.warn("no reference bands: %s", err.Error())
		D.Reference = nil
	}
	if D.Wannier, err = readBands(f, out.WannierBands); err != nil {
		D.warn("no Wannier-interpolated bands: %s", err.Error())
		D.Wannier = nil
	}
	if D.Reference != nil && D.Wannier != nil {
		D.Distances, err = bands.DistanceScan(D.Reference, D.Wannier, out.FermiEnergy, cfg.Bands.Sigma, cfg.Bands.Shifts, cfg.Bands.Exclude)
		if err != nil {
			D.warn("band distance: %s", err.Error())
			D.Distances = nil
		}
	}
	return D, nil
}

//BandDistance returns the band distance reported by the workflow or, if there is none,
//the one computed for the first shift. The second value is false if neither is available.
func (D *Data) BandDistance() (float64, bool) {
	if D.Outputs != nil && D.Outputs.BandDistance != nil {
		return *D.Outputs.BandDistance, true
	}
	if len(D.Distances) > 0 {
		return D.Distances[0].Eta, true
	}
	return 0, false
}

//Components returns the spread components from the .wout file or, failing that, from
//the outputs record. The second value is false if neither has them.
func (D *Data) Components() (spread.Components, bool) {
	if D.Table != nil {
		return D.Table.Components, true
	}
	if D.Outputs != nil && D.Outputs.Spread != nil {
		s := D.Outputs.Spread
		return spread.Components{OmegaI: s.OmegaI, OmegaD: s.OmegaD, OmegaOD: s.OmegaOD, Total: s.Total()}, true
	}
	return spread.Components{}, false
}

//NumberWfc returns the number of Wannier functions.
func (D *Data) NumberWfc() int {
	if D.Outputs != nil && D.Outputs.NumberWfc > 0 {
		return D.Outputs.NumberWfc
	}
	if D.Table != nil {
		return D.Table.NumWann
	}
	if D.Collection != nil {
		return D.Collection.Len()
	}
	return 0
}
