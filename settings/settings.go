/*
 * settings.go, part of gowannier.
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

//Package settings holds the configuration of a Wannier90 workflow before it is
//submitted: the protocol and the density of the k-points mesh.
package settings

import (
	"fmt"
	"math"
	"sort"

	wannier "github.com/rmera/gowannier"
	v3 "github.com/rmera/gowannier/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Title      = "Wannier90"
	Identifier = "wannier90"
)

//Dependencies lists the parts of the application state this model follows.
var Dependencies = []string{"input_structure", "workchain.protocol"}

//Protocol is a predefined set of parameters trading accuracy for cost.
type Protocol string

const (
	Fast     Protocol = "fast"
	Moderate Protocol = "moderate"
	Precise  Protocol = "precise"
)

//DefaultProtocol is the protocol of a fresh model.
const DefaultProtocol = Moderate

var kpointsDistances = map[Protocol]float64{
	Fast:     0.5,
	Moderate: 0.15,
	Precise:  0.10,
}

//Protocols returns the known protocols, from the cheapest to the most accurate.
func Protocols() []Protocol {
	ret := make([]Protocol, 0, len(kpointsDistances))
	for p := range kpointsDistances {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return kpointsDistances[ret[i]] > kpointsDistances[ret[j]] })
	return ret
}

//KpointsDistance returns the k-points distance (1/Å) of the protocol, and false
//if the protocol is not known.
func (P Protocol) KpointsDistance() (float64, bool) {
	d, ok := kpointsDistances[P]
	return d, ok
}

//Model is the state of the Wannier90 settings panel.
type Model struct {
	Protocol        Protocol
	KpointsDistance float64 //1/Å, overrides the one of the protocol if positive.
	Structure       *wannier.Structure
}

//NewModel returns a model with the default protocol.
func NewModel() *Model {
	m := new(Model)
	m.Reset()
	return m
}

//Reset brings the model back to the defaults. The structure is kept.
func (M *Model) Reset() {
	M.Protocol = DefaultProtocol
	M.KpointsDistance = 0
}

//Distance returns the k-points distance in use.
func (M *Model) Distance() float64 {
	if M.KpointsDistance > 0 {
		return M.KpointsDistance
	}
	d, ok := M.Protocol.KpointsDistance()
	if !ok {
		d, _ = DefaultProtocol.KpointsDistance()
	}
	return d
}

//Mesh returns the k-points mesh for the structure of the model.
func (M *Model) Mesh() ([3]int, error) {
	if M.Structure == nil || !M.Structure.Periodic() {
		return [3]int{}, fmt.Errorf("goWannier/settings: a periodic structure is needed for a k-points mesh")
	}
	return KpointsMesh(M.Structure.Cell, M.Distance())
}

//GetModelState returns the parameters to be stored with the workflow.
func (M *Model) GetModelState() map[string]any {
	ret := map[string]any{"protocol": string(M.Protocol)}
	if M.KpointsDistance > 0 {
		ret["kpoints_distance"] = M.KpointsDistance
	}
	return ret
}

//SetModelState restores the model from stored parameters. Unknown keys are ignored.
//On error, the model is not modified.
func (M *Model) SetModelState(params map[string]any) error {
	p := M.Protocol
	d := M.KpointsDistance
	if v, ok := params["protocol"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("goWannier/settings: protocol must be a string, got %T", v)
		}
		if _, known := Protocol(s).KpointsDistance(); !known {
			return fmt.Errorf("goWannier/settings: unknown protocol %q", s)
		}
		p = Protocol(s)
	}
	if v, ok := params["kpoints_distance"]; ok {
		switch x := v.(type) {
		case float64:
			d = x
		case int:
			d = float64(x)
		default:
			return fmt.Errorf("goWannier/settings: kpoints_distance must be a number, got %T", v)
		}
		if d <= 0 {
			return fmt.Errorf("goWannier/settings: kpoints_distance must be positive, got %g", d)
		}
	}
	M.Protocol = p
	M.KpointsDistance = d
	return nil
}

//KpointsMesh returns the number of k-points along each reciprocal vector of the cell
//(one lattice vector per row, in Å) so that they are at most distance (1/Å, 2π included)
//apart: n_i = max(1, ceil(|b_i|/distance)).
func KpointsMesh(cell *v3.Matrix, distance float64) ([3]int, error) {
	var ret [3]int
	if distance <= 0 {
		return ret, fmt.Errorf("goWannier/settings: k-points distance must be positive, got %g", distance)
	}
	inv, err := cell.Inverse()
	if err != nil {
		return ret, fmt.Errorf("goWannier/settings: %w", err)
	}
	//The reciprocal vectors are the columns of 2π·inv(cell).
	for i := 0; i < 3; i++ {
		b := r3.Scale(2*math.Pi, r3.Vec{X: inv.At(0, i), Y: inv.At(1, i), Z: inv.At(2, i)})
		n := int(math.Ceil(r3.Norm(b)/distance - 1e-9))
		if n < 1 {
			n = 1
		}
		ret[i] = n
	}
	return ret, nil
}
