/*
 * collection.go, part of gowannier.
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

//Package results collects the isosurfaces of all the Wannier functions in a
//retrieved calculation folder, together with the other files of interest in it.
//A file that can't be processed doesn't stop the others: it is recorded with
//an error message instead of meshes.
package results

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/histo"
	"github.com/rmera/gowannier/isosurf"
	"github.com/rmera/gowannier/xsf"
)

//HistogramBins is the number of bins of the histogram of the samples of each file.
const HistogramBins = 50

//Options control how the isosurfaces are obtained. Zero values select the defaults.
type Options struct {
	Percentile float64 //percentile of the samples used as isovalue magnitude, default 90.
	Step       int     //marching cubes step, default 1.
}

func (O Options) percentile() float64 {
	if O.Percentile <= 0 || O.Percentile > 100 {
		return isosurf.DefaultPercentile
	}
	return O.Percentile
}

func (O Options) step() int {
	if O.Step < 1 {
		return 1
	}
	return O.Step
}

//Stats summarizes the samples of a grid.
type Stats struct {
	Min, Max, Mean, Std float64
}

//Entry is the result of processing one volumetric file. Either Meshes
//has both lobes, or Err says why the file could not be processed.
type Entry struct {
	Key      string
	File     string
	Isovalue float64
	Shape    [3]int
	Stats    Stats
	Values   *histo.Data //distribution of the samples
	Meshes   map[isosurf.Sign]*isosurf.Mesh
	Err      string
	//Unreadable is true if the file itself could not be read, as opposed to
	//a failure while extracting the isosurface.
	Unreadable bool
}

//OK returns true if the entry has meshes.
func (E *Entry) OK() bool {
	return E.Err == "" && len(E.Meshes) == len(isosurf.Signs)
}

//Collection maps the key of each volumetric file (its name without the suffix, which
//matches the ids of the Wannier function table) to its Entry.
type Collection struct {
	entries   map[string]*Entry
	Structure *wannier.Structure //the structure in the first file that could be read, or nil
	Artifacts []Artifact
}

//NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string]*Entry)}
}

//Add adds or replaces an entry. Build never replaces one.
func (C *Collection) Add(e *Entry) {
	C.entries[e.Key] = e
}

//Len returns the total number of entries, including failed ones.
func (C *Collection) Len() int {
	return len(C.entries)
}

//Valid returns the number of entries with meshes.
func (C *Collection) Valid() int {
	n := 0
	for _, e := range C.entries {
		if e.OK() {
			n++
		}
	}
	return n
}

//Keys returns the keys of all the entries, sorted.
func (C *Collection) Keys() []string {
	ret := make([]string, 0, len(C.entries))
	for k := range C.entries {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Entry returns the entry for key, and whether it exists.
func (C *Collection) Entry(key string) (*Entry, bool) {
	e, ok := C.entries[key]
	return e, ok
}

//Mesh returns the mesh for the given key and lobe. The second value is false if there
//is no such entry or it failed.
func (C *Collection) Mesh(key string, sign isosurf.Sign) (*isosurf.Mesh, bool) {
	e, ok := C.entries[key]
	if !ok || !e.OK() {
		return nil, false
	}
	m, ok := e.Meshes[sign]
	return m, ok
}

//Failed returns the entries that could not be processed, sorted by key.
func (C *Collection) Failed() []*Entry {
	var ret []*Entry
	for _, k := range C.Keys() {
		if e := C.entries[k]; !e.OK() {
			ret = append(ret, e)
		}
	}
	return ret
}

//Process reads the volumetric file name from the folder and extracts both lobes of its
//isosurface. The structure in the file, if any, is also returned. It fails if any of
//the steps fails.
func Process(f Folder, name string, opts Options) (*Entry, *wannier.Structure, error) {
	key, ok := xsf.Key(name)
	if !ok {
		return nil, nil, fmt.Errorf("%s is not a volumetric file", name)
	}
	rc, err := f.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	d, err := xsf.Decompress(rc, name)
	if err != nil {
		return nil, nil, err
	}
	defer d.Close()
	file, err := xsf.Read(d, name)
	if err != nil {
		return nil, nil, err
	}
	g := file.Grid
	e := &Entry{Key: key, File: name, Shape: g.Shape()}
	e.Stats.Min, e.Stats.Max = g.MinMax()
	e.Stats.Mean, e.Stats.Std = g.MeanStd()
	e.Values = histo.NewData(histo.Uniform(e.Stats.Min, e.Stats.Max, HistogramBins), g.Data)
	e.Isovalue = isosurf.Isovalue(g, opts.percentile())
	lobes, err := isosurf.Pair(g, e.Isovalue, isosurf.WithStep(opts.step()))
	if err != nil {
		return nil, file.Structure, err
	}
	e.Meshes = map[isosurf.Sign]*isosurf.Mesh{isosurf.Positive: lobes[0], isosurf.Negative: lobes[1]}
	return e, file.Structure, nil
}

//Build processes every volumetric file in the folder, in name order. A file that fails
//produces an entry with an error message and no meshes, and processing continues.
//When several files share a key (say, a.xsf and a.xsf.gz) only the first one in name
//order is used, and the others are skipped with a warning.
//Build only fails if the folder can't be listed.
func Build(f Folder, opts Options) (*Collection, error) {
	names, err := f.List()
	if err != nil {
		return nil, fmt.Errorf("building isosurface collection: %w", err)
	}
	sort.Strings(names)
	C := NewCollection()
	for _, name := range names {
		if a, ok := NewArtifact(name); ok {
			C.Artifacts = append(C.Artifacts, a)
			continue
		}
		key, ok := xsf.Key(name)
		if !ok {
			continue
		}
		if prev, dup := C.Entry(key); dup {
			wannier.Logf("goWannier/results: %s has the same key %s as %s, skipped", name, key, prev.File)
			continue
		}
		e, st, err := Process(f, name, opts)
		if st != nil && C.Structure == nil {
			C.Structure = st
		}
		if err != nil {
			msg := fmt.Sprintf("failed to process file %s: %s", name, err.Error())
			failed := &Entry{Key: key, File: name, Err: msg}
			var fe wannier.FileError
			if errors.As(err, &fe) {
				failed.Unreadable = fe.Critical()
				wannier.Logf("goWannier/results: can't read %s file %s: %s", fe.Format(), fe.FileName(), err.Error())
			} else {
				wannier.Logf("goWannier/results: %s", msg)
			}
			C.Add(failed)
			continue
		}
		C.Add(e)
	}
	return C, nil
}

//ArtifactKind tells what a downloadable, unparsed file contains.
type ArtifactKind string

const (
	TightBinding ArtifactKind = "tight-binding"
	Hamiltonian  ArtifactKind = "hamiltonian"
	FermiSurface ArtifactKind = "fermi-surface"
)

//Artifact is a file of the folder offered for download as it is.
type Artifact struct {
	Name string       `json:"name"`
	Kind ArtifactKind `json:"kind"`
}

//NewArtifact returns the artifact for the file name and true, or false if
//the file is not one.
func NewArtifact(name string) (Artifact, bool) {
	switch {
	case strings.HasSuffix(name, "_tb.dat"):
		return Artifact{Name: name, Kind: TightBinding}, true
	case strings.HasSuffix(name, "_hr.dat"):
		return Artifact{Name: name, Kind: Hamiltonian}, true
	case strings.HasSuffix(name, ".bxsf"):
		return Artifact{Name: name, Kind: FermiSurface}, true
	}
	return Artifact{}, false
}
