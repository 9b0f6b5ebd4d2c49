/*
 * folder.go, part of gowannier.
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
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//Folder is a read-only set of files retrieved from a finished calculation.
type Folder interface {
	//List returns the names of the files in the folder.
	List() ([]string, error)
	//Open opens a file of the folder for reading. The caller must close it.
	Open(name string) (io.ReadCloser, error)
}

//Dir is a Folder backed by a directory on disk. Subdirectories are ignored.
type Dir string

//List returns the names of the regular files in the directory, sorted.
func (D Dir) List() ([]string, error) {
	entries, err := os.ReadDir(string(D))
	if err != nil {
		return nil, fmt.Errorf("listing folder %s: %w", string(D), err)
	}
	ret := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ret = append(ret, e.Name())
	}
	sort.Strings(ret)
	return ret, nil
}

//Open opens the file name in the directory. Only plain file names are accepted.
func (D Dir) Open(name string) (io.ReadCloser, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return os.Open(filepath.Join(string(D), name))
}

//Memory is a Folder kept in memory, mapping file names to contents.
type Memory map[string][]byte

//List returns the file names, sorted.
func (M Memory) List() ([]string, error) {
	ret := make([]string, 0, len(M))
	for k := range M {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret, nil
}

//Open returns a reader for the file name.
func (M Memory) Open(name string) (io.ReadCloser, error) {
	b, ok := M[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
