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

package xsf

import (
	"fmt"

	wannier "github.com/rmera/gowannier"
)

//errDecorate is a helper function that decorates the error with the caller's name
//before returning it, if the error implements wannier.Error.
func errDecorate(err error, caller string) error {
	return wannier.Decorate(err, caller)
}

//Error is the general structure for XSF errors. It fulfills wannier.Error and wannier.FileError
type Error struct {
	kind     string
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("xsf error: %s", err.message)
	}
	return fmt.Sprintf("xsf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns one of the error constants of this package.
func (err Error) Kind() string { return err.kind }

//FileName returns the file to which the failing grid was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "xsf") associated to the error
func (err Error) Format() string { return "xsf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Validation returns true if the file was read but its content is inconsistent.
func (err Error) Validation() bool {
	return err.kind == SampleCountMismatch || err.kind == BadDimensions
}

const (
	UnableToOpen        = "Unable to open file"
	ReadError           = "Error reading file"
	WrongFormat         = "Wrong format in the XSF file"
	NoGrid              = "No BEGIN_DATAGRID_3D section found"
	BadDimensions       = "Grid dimensions must be positive"
	SampleCountMismatch = "Mismatch in density data size"
)
