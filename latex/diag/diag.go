// diag.go - error kinds reported while flattening a document
// Copyright (C) 2017  Jochen Voss <voss@seehuhn.de>
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

// Package diag defines the errors reported by the flattener, together
// with the input position they refer to.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seehuhn/flatlatex/latex/scanner"
)

// Kind classifies errors.
type Kind int

// The different error kinds.
const (
	TexFileNotFound Kind = iota + 1
	GraphicNotFound
	ResourceNotFound
	UnexpectedToken
	UndefinedSymbol
	EndOfText
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case TexFileNotFound:
		return "TeX file not found"
	case GraphicNotFound:
		return "graphic not found"
	case ResourceNotFound:
		return "resource not found"
	case UnexpectedToken:
		return "unexpected token"
	case UndefinedSymbol:
		return "undefined symbol"
	case EndOfText:
		return "unexpected end of text"
	case InvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

const snippetLength = 40

// Error describes a problem found in the input, or while locating the
// files referenced by the input.
type Error struct {
	Kind    Kind
	Pos     scanner.Position
	Snippet string
	Message string
	Err     error
}

// New returns a new error of the given kind.
func New(kind Kind, pos scanner.Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithSnippet attaches a fragment of the offending code to the error.
func (err *Error) WithSnippet(code string) *Error {
	err.Snippet = Shorten(code, snippetLength)
	return err
}

func (err *Error) Error() string {
	var res []string
	if err.Pos.Source != "" {
		res = append(res, err.Pos.String(), ": ")
	}
	res = append(res, err.Kind.String())
	if err.Message != "" {
		res = append(res, ": ", err.Message)
	}
	if err.Err != nil {
		res = append(res, ": ", err.Err.Error())
	}
	if err.Snippet != "" {
		res = append(res, fmt.Sprintf(" (near %q)", err.Snippet))
	}
	return strings.Join(res, "")
}

func (err *Error) Unwrap() error {
	return err.Err
}

// IsKind reports whether any error in err's chain is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Shorten converts code into a single line of at most n characters.
func Shorten(code string, n int) string {
	code = strings.Join(strings.Fields(code), " ")
	runes := []rune(code)
	if len(runes) > n {
		return string(runes[:n-3]) + "..."
	}
	return code
}
