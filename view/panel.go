/*
 * panel.go, part of gowannier.
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

package view

import (
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rmera/gowannier/config"
	"github.com/rmera/gowannier/isosurf"
	"github.com/rmera/gowannier/spread"
	"gonum.org/v1/gonum/spatial/r3"
)

//ErrClosed is returned when rendering a panel after Close.
var ErrClosed = errors.New("goWannier/view: panel is closed")

//Panel shows one results folder. Its methods may be called from event callbacks,
//they are serialized by a mutex.
type Panel struct {
	mu     sync.Mutex
	id     uuid.UUID
	data   *Data
	cfg    *config.Config
	viewer Viewer
	closed bool
}

//New returns a panel for the data. A nil cfg means the default configuration.
func New(data *Data, cfg *config.Config) *Panel {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Panel{id: uuid.New(), data: data, cfg: cfg, viewer: Viewer{Overlay: []*isosurf.Mesh{}}}
}

//ID returns the unique identifier of the panel.
func (P *Panel) ID() string {
	return P.id.String()
}

//Data returns the data shown, or nil after Close.
func (P *Panel) Data() *Data {
	P.mu.Lock()
	defer P.mu.Unlock()
	return P.data
}

//Viewer returns a copy of the current state of the 3D viewer.
func (P *Panel) Viewer() Viewer {
	P.mu.Lock()
	defer P.mu.Unlock()
	return P.viewer.Copy()
}

func (P *Panel) tolerance() float64 {
	if P.cfg.Selection.Tolerance > 0 {
		return P.cfg.Selection.Tolerance
	}
	return DefaultTolerance
}

//Select reacts to the selection of the table row id. If the row has a centre and
//there is an isosurface pair for the id, the atoms nearest to the centre are
//highlighted and the pair replaces the overlay. A row without centre, an id without
//meshes, an unknown id, or a closed panel leave everything as it was. Select returns
//true if the viewer changed.
func (P *Panel) Select(id string) bool {
	P.mu.Lock()
	defer P.mu.Unlock()
	if P.closed || P.data == nil || P.data.Structure == nil || P.data.Collection == nil {
		return false
	}
	row, ok := P.data.Row(id)
	if !ok || row.Center == "" {
		return false
	}
	c, err := spread.ParseCenter(row.Center)
	if err != nil {
		return false
	}
	overlay := make([]*isosurf.Mesh, 0, len(isosurf.Signs))
	for _, s := range isosurf.Signs {
		m, ok := P.data.Collection.Mesh(id, s)
		if !ok {
			return false
		}
		overlay = append(overlay, m)
	}
	center := r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	P.viewer.Highlighted = NearestAtoms(center, P.data.Structure.Coords, P.tolerance())
	P.viewer.Selected = id
	P.viewer.Overlay = overlay
	P.viewer.OverlayKey = id
	return true
}

//Render writes the panel as an HTML page.
func (P *Panel) Render(w io.Writer) error {
	P.mu.Lock()
	defer P.mu.Unlock()
	if P.closed {
		return ErrClosed
	}
	return RenderHTML(w, P.data, P.viewer, P.cfg)
}

//RenderText writes the panel as text tables.
func (P *Panel) RenderText(w io.Writer) error {
	P.mu.Lock()
	defer P.mu.Unlock()
	if P.closed {
		return ErrClosed
	}
	return RenderText(w, P.data, P.viewer)
}

//Close releases the data. Further selections do nothing, and rendering fails.
func (P *Panel) Close() {
	P.mu.Lock()
	defer P.mu.Unlock()
	P.closed = true
	P.data = nil
	P.viewer = Viewer{Overlay: []*isosurf.Mesh{}}
}
