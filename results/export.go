/*
 * export.go, part of gowannier.
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
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gowannier/isosurf"
)

//ExportAtom is a ready-to-serialize container for an atom.
type ExportAtom struct {
	Symbol string     `json:"symbol"`
	Coords [3]float64 `json:"coords"`
}

//Parameters is what is known about each volumetric file: the isovalue magnitude,
//or the reason it failed.
type Parameters struct {
	Isovalue *float64 `json:"isovalue,omitempty"`
	Error    string   `json:"error,omitempty"`
}

//Export is the serializable form of a collection. MeshData holds flat lists named
//<key>_<sign>_vertices and <key>_<sign>_faces.
type Export struct {
	Atoms      []ExportAtom          `json:"atoms"`
	Cell       [][3]float64          `json:"cell,omitempty"`
	Parameters map[string]Parameters `json:"parameters"`
	MeshData   map[string]any        `json:"mesh_data"`
	Artifacts  []Artifact            `json:"artifacts,omitempty"`
}

//VerticesName is the name of the vertex list of the given lobe in the mesh data.
func VerticesName(key string, sign isosurf.Sign) string {
	return fmt.Sprintf("%s_%s_vertices", key, sign)
}

//FacesName is the name of the face list of the given lobe in the mesh data.
func FacesName(key string, sign isosurf.Sign) string {
	return fmt.Sprintf("%s_%s_faces", key, sign)
}

//Export returns the serializable form of the collection.
func (C *Collection) Export() *Export {
	ret := &Export{Atoms: []ExportAtom{}, Parameters: make(map[string]Parameters), MeshData: make(map[string]any), Artifacts: C.Artifacts}
	if st := C.Structure; st != nil {
		for i, at := range st.Atoms {
			r := st.Coords.RawRowView(i)
			ret.Atoms = append(ret.Atoms, ExportAtom{Symbol: at.Symbol, Coords: [3]float64{r[0], r[1], r[2]}})
		}
		if st.Periodic() {
			for i := 0; i < 3; i++ {
				r := st.Cell.RawRowView(i)
				ret.Cell = append(ret.Cell, [3]float64{r[0], r[1], r[2]})
			}
		}
	}
	for _, k := range C.Keys() {
		e := C.entries[k]
		if !e.OK() {
			ret.Parameters[k] = Parameters{Error: e.Err}
			continue
		}
		iso := e.Isovalue
		ret.Parameters[k] = Parameters{Isovalue: &iso}
		for _, s := range isosurf.Signs {
			m := e.Meshes[s]
			ret.MeshData[VerticesName(k, s)] = m.Vertices
			ret.MeshData[FacesName(k, s)] = m.Faces
		}
	}
	return ret
}

//WriteJSON writes the collection to w as JSON.
func WriteJSON(w io.Writer, C *Collection) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(C.Export()); err != nil {
		return fmt.Errorf("encoding isosurface collection: %w", err)
	}
	return nil
}

//WriteCompressed writes the collection to w as zstd-compressed JSON.
func WriteCompressed(w io.Writer, C *Collection) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("compressing isosurface collection: %w", err)
	}
	if err := WriteJSON(zw, C); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

//ReadExport reads the output of WriteJSON or, if compressed is true, of WriteCompressed.
//Mesh data is decoded into []float64 (vertices) and []int (faces).
func ReadExport(r io.Reader, compressed bool) (*Export, error) {
	if compressed {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing isosurface collection: %w", err)
		}
		defer d.Close()
		r = d
	}
	var raw struct {
		Export
		MeshData map[string]json.RawMessage `json:"mesh_data"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding isosurface collection: %w", err)
	}
	ret := raw.Export
	ret.MeshData = make(map[string]any, len(raw.MeshData))
	for k, v := range raw.MeshData {
		var err error
		if strings.HasSuffix(k, "_faces") {
			var f []int
			err = json.Unmarshal(v, &f)
			ret.MeshData[k] = f
		} else {
			var f []float64
			err = json.Unmarshal(v, &f)
			ret.MeshData[k] = f
		}
		if err != nil {
			return nil, fmt.Errorf("decoding mesh data %s: %w", k, err)
		}
	}
	return &ret, nil
}

//Mesh rebuilds a mesh from the exported data. The second value is false if the
//key and sign are not there.
func (E *Export) Mesh(key string, sign isosurf.Sign) (*isosurf.Mesh, bool) {
	p, ok := E.Parameters[key]
	if !ok || p.Isovalue == nil {
		return nil, false
	}
	v, ok1 := E.MeshData[VerticesName(key, sign)].([]float64)
	f, ok2 := E.MeshData[FacesName(key, sign)].([]int)
	if !ok1 || !ok2 {
		return nil, false
	}
	return &isosurf.Mesh{Level: sign.Level(*p.Isovalue), Vertices: v, Faces: f}, true
}
