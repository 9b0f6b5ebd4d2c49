/*
 * mesh.go, part of gowannier.
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

package isosurf

import (
	"encoding/json"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//Sign tells which lobe of a Wannier function an isosurface belongs to.
type Sign int

const (
	Positive Sign = iota
	Negative
)

//Signs lists both lobes, in the order they are extracted.
var Signs = [2]Sign{Positive, Negative}

func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

//Level returns the isovalue with the sign of the lobe, for a given magnitude.
func (s Sign) Level(magnitude float64) float64 {
	if s == Negative {
		return -magnitude
	}
	return magnitude
}

//MarshalText allows using signs as JSON map keys.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

//UnmarshalText is the inverse of MarshalText
func (s *Sign) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "positive":
		*s = Positive
	case "negative":
		*s = Negative
	default:
		return fmt.Errorf("goWannier/isosurf: unknown sign %q", string(b))
	}
	return nil
}

//Mesh is a triangulated surface. Vertices is a flattened list of cartesian coordinates
//(x0, y0, z0, x1, ...) and Faces a flattened list of vertex index triples.
type Mesh struct {
	Level    float64   `json:"isovalue"`
	Vertices []float64 `json:"vertices"`
	Faces    []int     `json:"faces"`
}

//NVertices returns the number of vertices in the mesh
func (M *Mesh) NVertices() int {
	return len(M.Vertices) / 3
}

//NFaces returns the number of triangles in the mesh
func (M *Mesh) NFaces() int {
	return len(M.Faces) / 3
}

//Vertex returns the ith vertex.
func (M *Mesh) Vertex(i int) r3.Vec {
	return r3.Vec{X: M.Vertices[3*i], Y: M.Vertices[3*i+1], Z: M.Vertices[3*i+2]}
}

//Triangle returns the vertices of the ith face.
func (M *Mesh) Triangle(i int) [3]r3.Vec {
	f := M.Faces[3*i : 3*i+3]
	return [3]r3.Vec{M.Vertex(f[0]), M.Vertex(f[1]), M.Vertex(f[2])}
}

//Area returns the total area of the surface.
func (M *Mesh) Area() float64 {
	area := 0.0
	for i := 0; i < M.NFaces(); i++ {
		t := M.Triangle(i)
		area += 0.5 * r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
	}
	return area
}

//Centroid returns the average of the vertices. The zero vector for an empty mesh.
func (M *Mesh) Centroid() r3.Vec {
	var c r3.Vec
	n := M.NVertices()
	if n == 0 {
		return c
	}
	for i := 0; i < n; i++ {
		c = r3.Add(c, M.Vertex(i))
	}
	return r3.Scale(1/float64(n), c)
}

//Valid checks that every face references existing vertices.
func (M *Mesh) Valid() error {
	if len(M.Vertices)%3 != 0 || len(M.Faces)%3 != 0 {
		return Error{kind: Malformed, message: "vertex or face list not divisible by 3", deco: []string{"Valid"}}
	}
	n := M.NVertices()
	for _, f := range M.Faces {
		if f < 0 || f >= n {
			return Error{kind: Malformed, message: fmt.Sprintf("face references vertex %d of %d", f, n), deco: []string{"Valid"}}
		}
	}
	return nil
}

func (M *Mesh) String() string {
	j, err := json.Marshal(struct {
		Level     float64
		Vertices  int
		Triangles int
	}{M.Level, M.NVertices(), M.NFaces()})
	if err != nil {
		return err.Error()
	}
	return string(j)
}
