// storage.go - file system access for the flattener
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package latex

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileSystem gives access to the input and output files of a run.
// Names use the conventions of the host operating system.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Exists(name string) bool

	// Create opens a file for writing.  Missing parent directories
	// are created.
	Create(name string) (io.WriteCloser, error)
}

// OSFS accesses the files of the operating system.
type OSFS struct{}

// ReadFile implements the FileSystem interface.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Exists implements the FileSystem interface.
func (OSFS) Exists(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.Mode().IsRegular()
}

// Create implements the FileSystem interface.
func (OSFS) Create(name string) (io.WriteCloser, error) {
	err := os.MkdirAll(filepath.Dir(name), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(name)
}

// MemFS is an in-memory file system, mainly for testing.
type MemFS map[string][]byte

func (m MemFS) key(name string) string {
	return filepath.ToSlash(filepath.Clean(name))
}

// ReadFile implements the FileSystem interface.
func (m MemFS) ReadFile(name string) ([]byte, error) {
	data, ok := m[m.key(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

// Exists implements the FileSystem interface.
func (m MemFS) Exists(name string) bool {
	_, ok := m[m.key(name)]
	return ok
}

// Create implements the FileSystem interface.  The data becomes
// visible when the returned writer is closed.
func (m MemFS) Create(name string) (io.WriteCloser, error) {
	return &memFile{fs: m, name: m.key(name)}, nil
}

// Names lists all files, in sorted order.
func (m MemFS) Names() []string {
	var res []string
	for name := range m {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

type memFile struct {
	bytes.Buffer
	fs   MemFS
	name string
}

func (f *memFile) Close() error {
	f.fs[f.name] = f.Bytes()
	return nil
}

func writeFile(fsys FileSystem, name string, data []byte) (err error) {
	w, err := fsys.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e2 := w.Close()
		if err == nil {
			err = e2
		}
	}()
	_, err = w.Write(data)
	return err
}
