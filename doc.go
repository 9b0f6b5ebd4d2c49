/*
 * doc.go, part of gowannier.
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

/*Package wannier is the main package of the goWannier library. It provides the atom and
structure types shared by the rest of the packages, the error interfaces they implement,
and the logger they report to.

The other packages:

    xsf reads and writes XCrySDen structure files with a 3D datagrid, the format in which
	Wannier90 writes the Wannier functions (plain or zstd-compressed).

    isosurf extracts the positive and negative isosurfaces of a volumetric grid, at an
	isovalue given by a percentile of the data.

    results processes a whole results folder, one isosurface pair per volumetric file.
	A file that can't be processed is recorded as failed and the rest continue.

    spread reads the centres and spreads of the Wannier functions from the .wout file.

    bands reads band structures and computes the distance between the DFT and the
	Wannier-interpolated bands.

    settings keeps the protocol and k-points parameters of the workflow.

    view gathers all of the above and presents it, as HTML or text. Selecting a Wannier
	function highlights its nearest atoms and shows its isosurfaces.

    v3 is a thin wrapper over gonum matrices for sets of 3D vectors.

goWannier is free software under the GNU LGPL 2.1 or later.
*/
package wannier
