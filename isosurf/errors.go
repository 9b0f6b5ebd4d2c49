/*
 * errors.go, part of gowannier.
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
	"fmt"

	wannier "github.com/rmera/gowannier"
)

func errDecorate(err error, caller string) error {
	return wannier.Decorate(err, caller)
}

//Error is the error type for the isosurf package. It fulfills wannier.Error
type Error struct {
	kind     string
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("isosurface error: %s", err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns one of the error constants of this package.
func (err Error) Kind() string { return err.kind }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	NoSurface = "No isosurface at the given level"
	TooSmall  = "Grid too small for the requested step"
	BadStep   = "Step size must be at least 1"
	Malformed = "Malformed mesh"
	BadLevel  = "Isovalue is not a finite number"
)
