// engine.go - callbacks used by the built-in macros
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

package parser

// Engine is implemented by the caller of the parser.  The built-in
// macros use it to locate the files referenced by the input, and to
// compute the names these files get in the output.
type Engine interface {
	// ContentOf returns the text of the TeX file referenced by link,
	// together with the source name used in token positions.
	ContentOf(link string, inv *Invocation) (text, source string, err error)

	// UpdateLinkToGraphic locates an image and returns the link to
	// use in the output.
	UpdateLinkToGraphic(link string, inv *Invocation) (string, error)

	// UpdateLinkToSVG is like UpdateLinkToGraphic for SVG images.
	// The argument svgPath is the value of the svgpath option, or
	// the empty string.
	UpdateLinkToSVG(link string, inv *Invocation, svgPath string) (string, error)

	UpdateLinkToBibliography(link string, inv *Invocation) (string, error)
	UpdateLinkToBibliographyStyle(link string, inv *Invocation) (string, error)
	UpdateLinkToIndexStyle(link string, inv *Invocation) (string, error)

	// UpdateLinkToFile copies an arbitrary file, for example a
	// program listing.  The returned name keeps the file extension.
	UpdateLinkToFile(link string, inv *Invocation) (string, error)

	// RelocateDependency copies a local class or package file and
	// returns its new name.  For system packages, the empty string
	// is returned.
	RelocateDependency(name string, inv *Invocation) (string, error)

	RecordGraphicPath(paths []string, inv *Invocation)
	IncludeOnly(selection []string, inv *Invocation)
	ShallInclude(link string) bool

	// EndOfInput is called when \endinput is found in the given
	// source.
	EndOfInput(source string, inv *Invocation)
}
