// scanner.go -
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

package scanner

import (
	"bytes"
	"strconv"
)

// Unknown is the source name used for synthetic input.
const Unknown = "unknown"

// Position identifies a character in one of the scanner inputs.
// Lines and columns start at 1; columns count UTF-8 characters.
type Position struct {
	Source string
	Line   int
	Column int
}

// UnknownPosition is attached to tokens which do not come from any
// input file.
var UnknownPosition = Position{Source: Unknown, Line: 1, Column: 1}

func (pos Position) String() string {
	return pos.Source + ":" + strconv.Itoa(pos.Line) + ":" + strconv.Itoa(pos.Column)
}

// Scanner walks through an in-memory input buffer and keeps track of
// the current position.
type Scanner struct {
	src   source
	ready bool
}

// New returns a scanner which reads the given data.  The argument
// `name` is used to identify the buffer in error messages and should
// be a short, human-readable string.
func New(data []byte, name string) *Scanner {
	return &Scanner{
		src: source{
			Name:   name,
			Buffer: data,
			Line:   1,
			Column: 1,
		},
	}
}

// Next checks whether more input is available.  This method must be
// called before every call to the .Peek() method.
func (scan *Scanner) Next() bool {
	scan.ready = true
	return len(scan.src.Buffer) > 0
}

// Peek returns all unread input.  The current input position is not
// changed by calls to .Peek().
//
// The contents of the returned buffer must not be modified.  The
// .Next() method must be called before every call to .Peek().
func (scan *Scanner) Peek() []byte {
	if !scan.ready {
		panic("scanner not ready, missing call to .Next()")
	}
	return scan.src.Buffer
}

// Skip advances the current position by n bytes.
func (scan *Scanner) Skip(n int) {
	if n < 0 {
		panic("invalid skip amount")
	}
	scan.ready = false
	if n > len(scan.src.Buffer) {
		n = len(scan.src.Buffer)
	}
	scan.src.Skip(n)
}

// Pos returns the position of the next input byte.
func (scan *Scanner) Pos() Position {
	return scan.src.Pos()
}

// Source returns the name of the input, or the empty string at the
// end of input.
func (scan *Scanner) Source() string {
	if len(scan.src.Buffer) == 0 {
		return ""
	}
	return scan.src.Name
}

// Discard drops all unread input, if the input has the given name.
func (scan *Scanner) Discard(name string) {
	if scan.src.Name == name {
		scan.Skip(len(scan.src.Buffer))
	}
}

// Limit moves the end of input to just before the next occurrence of
// marker.  If marker does not occur in the unread input, nothing is
// changed and false is returned.
func (scan *Scanner) Limit(marker []byte) bool {
	idx := bytes.Index(scan.src.Buffer, marker)
	if idx < 0 {
		return false
	}
	scan.src.Buffer = scan.src.Buffer[:idx]
	scan.ready = false
	return true
}

type source struct {
	Name   string
	Buffer []byte
	Line   int
	Column int
}

func (src *source) Skip(n int) {
	for _, c := range src.Buffer[:n] {
		if c == '\n' {
			src.Line++
			src.Column = 1
		} else if c&0xC0 != 0x80 {
			src.Column++
		}
	}
	src.Buffer = src.Buffer[n:]
}

func (src *source) Pos() Position {
	return Position{
		Source: src.Name,
		Line:   src.Line,
		Column: src.Column,
	}
}
