// resources.go - locate, rename and copy the files used by a project
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
	"path"
	"path/filepath"
	"strings"

	"github.com/ahrtr/gocontainer/set"
	"github.com/zeebo/blake3"

	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/parser"
)

// ContentOf implements the parser.Engine interface.
func (fl *flattener) ContentOf(link string, inv *parser.Invocation) (string, string, error) {
	candidates := []string{link + ".tex", link}
	if path.Ext(link) != "" {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, cand := range candidates {
		full := fl.sourcePath(cand)
		if !fl.fs.Exists(full) {
			continue
		}
		data, err := fl.Files.Load(full, func() ([]byte, error) {
			return fl.fs.ReadFile(full)
		})
		if err != nil {
			return "", "", &diag.Error{
				Kind: diag.TexFileNotFound,
				Pos:  inv.Location(),
				Err:  err,
			}
		}
		fl.recordEvent(inv)
		return string(data), path.Clean(cand), nil
	}
	return "", "", diag.New(diag.TexFileNotFound, inv.Location(),
		"%s", link).WithSnippet(inv.Text())
}

// UpdateLinkToGraphic implements the parser.Engine interface.
func (fl *flattener) UpdateLinkToGraphic(link string, inv *parser.Invocation) (string, error) {
	dirs := append([]string{""}, fl.GraphicPaths...)
	return fl.relocateImage(link, inv, fl.opts.GraphicExtensions, dirs)
}

// UpdateLinkToSVG implements the parser.Engine interface.
func (fl *flattener) UpdateLinkToSVG(link string, inv *parser.Invocation, svgPath string) (string, error) {
	dirs := []string{""}
	if svgPath != "" {
		dirs = append(dirs, svgPath)
	}
	dirs = append(dirs, fl.GraphicPaths...)
	return fl.relocateImage(link, inv, fl.opts.SVGExtensions, dirs)
}

func (fl *flattener) relocateImage(link string, inv *parser.Invocation, exts, dirs []string) (string, error) {
	rel, ok := fl.locate(link, exts, dirs)
	if !ok {
		return "", diag.New(diag.GraphicNotFound, inv.Location(),
			"%s", link).WithSnippet(inv.Text())
	}
	return fl.copyAs(link, rel, inv)
}

// UpdateLinkToBibliography implements the parser.Engine interface.
func (fl *flattener) UpdateLinkToBibliography(link string, inv *parser.Invocation) (string, error) {
	rel, ok := fl.locate(link, []string{"bib"}, []string{""})
	if !ok {
		return "", diag.New(diag.ResourceNotFound, inv.Location(),
			"bibliography %s", link).WithSnippet(inv.Text())
	}
	return fl.copyAs(link, rel, inv)
}

// UpdateLinkToBibliographyStyle implements the parser.Engine interface.
// Styles which are not found locally are assumed to be installed in
// the TeX system, and the link is left unchanged.
func (fl *flattener) UpdateLinkToBibliographyStyle(link string, inv *parser.Invocation) (string, error) {
	rel, ok := fl.locate(link, []string{"bst"}, []string{""})
	if !ok {
		fl.log.V(1).Info("system bibliography style", "style", link)
		return link, nil
	}
	return fl.copyAs(link, rel, inv)
}

// UpdateLinkToIndexStyle implements the parser.Engine interface.
func (fl *flattener) UpdateLinkToIndexStyle(link string, inv *parser.Invocation) (string, error) {
	rel, ok := fl.locate(link, []string{"ist"}, []string{""})
	if !ok {
		return "", diag.New(diag.ResourceNotFound, inv.Location(),
			"index style %s", link).WithSnippet(inv.Text())
	}
	return fl.copyAs(link, rel, inv)
}

// UpdateLinkToFile implements the parser.Engine interface.
func (fl *flattener) UpdateLinkToFile(link string, inv *parser.Invocation) (string, error) {
	rel, ok := fl.locate(link, nil, []string{""})
	if !ok {
		return "", diag.New(diag.ResourceNotFound, inv.Location(),
			"%s", link).WithSnippet(inv.Text())
	}
	newName := flatName(rel) + path.Ext(rel)
	err := fl.copyResource(rel, newName, inv)
	if err != nil {
		return "", err
	}
	fl.recordEvent(inv)
	return newName, nil
}

// RelocateDependency implements the parser.Engine interface.
func (fl *flattener) RelocateDependency(name string, inv *parser.Invocation) (string, error) {
	exts := []string{"sty", "cls"}
	if inv.Name() == "\\documentclass" {
		exts[0], exts[1] = exts[1], exts[0]
	}
	rel, ok := fl.locate(name, exts, []string{""})
	if !ok {
		fl.log.V(1).Info("system package", "name", name)
		return "", nil
	}
	newName := flatName(rel)
	err := fl.copyResource(rel, newName+path.Ext(rel), inv)
	if err != nil {
		return "", err
	}
	fl.recordEvent(inv)
	return newName, nil
}

// RecordGraphicPath implements the parser.Engine interface.
func (fl *flattener) RecordGraphicPath(paths []string, inv *parser.Invocation) {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			fl.GraphicPaths = append(fl.GraphicPaths, p)
		}
	}
	fl.log.V(1).Info("graphics path", "paths", fl.GraphicPaths)
}

// IncludeOnly implements the parser.Engine interface.
func (fl *flattener) IncludeOnly(selection []string, inv *parser.Invocation) {
	only := set.New()
	for _, name := range selection {
		name = includeKey(name)
		if name != "" {
			only.Add(name)
		}
	}
	if only.Size() == 0 {
		only = nil
	}
	fl.Only = only
}

// ShallInclude implements the parser.Engine interface.
func (fl *flattener) ShallInclude(link string) bool {
	if fl.Only == nil {
		return true
	}
	return fl.Only.Contains(includeKey(link))
}

func includeKey(link string) string {
	return strings.TrimSuffix(path.Clean(strings.TrimSpace(link)), ".tex")
}

// EndOfInput implements the parser.Engine interface.
func (fl *flattener) EndOfInput(source string, inv *parser.Invocation) {
	fl.log.V(1).Info("end of input", "source", source)
	fl.recordEvent(inv)
}

// sourcePath converts a link, relative to the directory of the root
// file, into a file name.
func (fl *flattener) sourcePath(rel string) string {
	return filepath.Join(fl.SourceDir, filepath.FromSlash(rel))
}

// locate finds the file referenced by link.  The link is tried as
// given, and then with each of the extensions in exts, in every one of
// the directories in dirs.  The result is relative to the source
// directory.
func (fl *flattener) locate(link string, exts, dirs []string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	for _, dir := range dirs {
		base := path.Join(filepath.ToSlash(dir), link)
		if path.Ext(link) != "" && fl.fs.Exists(fl.sourcePath(base)) {
			return path.Clean(base), true
		}
		for _, ext := range exts {
			cand := base + "." + ext
			if fl.fs.Exists(fl.sourcePath(cand)) {
				return path.Clean(cand), true
			}
		}
	}
	return "", false
}

// copyAs copies the resource rel to the output directory.  The
// returned link has an extension if and only if link has one.
func (fl *flattener) copyAs(link, rel string, inv *parser.Invocation) (string, error) {
	stem := flatName(rel)
	err := fl.copyResource(rel, stem+path.Ext(rel), inv)
	if err != nil {
		return "", err
	}
	fl.recordEvent(inv)
	if path.Ext(link) != "" && path.Ext(link) == path.Ext(rel) {
		return stem + path.Ext(rel), nil
	}
	return stem, nil
}

// flatName converts a relative path into a file name without
// directory components or extension.  For example, "img/foo.pdf"
// becomes "img_foo".
func flatName(rel string) string {
	rel = path.Clean(rel)
	for strings.HasPrefix(rel, "../") {
		rel = rel[3:]
	}
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.ReplaceAll(rel, "/", "_")
}

func (fl *flattener) copyResource(rel, newName string, inv *parser.Invocation) error {
	if prev, seen := fl.Copied[newName]; seen {
		if prev == rel {
			return nil
		}
		return diag.New(diag.ResourceNotFound, inv.Location(),
			"%s and %s both map to %s", prev, rel, newName).WithSnippet(inv.Text())
	}
	fl.Copied[newName] = rel

	src := fl.sourcePath(rel)
	data, err := fl.Files.Load(src, func() ([]byte, error) {
		return fl.fs.ReadFile(src)
	})
	if err != nil {
		return &diag.Error{
			Kind: diag.ResourceNotFound,
			Pos:  inv.Location(),
			Err:  err,
		}
	}

	dest := filepath.Join(fl.OutputDir, newName)
	digest, ok := fl.Files.Digest(src)
	if !ok {
		digest = blake3.Sum256(data)
	}
	if fl.fs.Exists(dest) && fl.sameContents(dest, digest) {
		fl.log.V(1).Info("unchanged", "file", newName)
		return nil
	}
	err = writeFile(fl.fs, dest, data)
	if err != nil {
		return err
	}
	fl.Files.Put(dest, data)
	fl.log.V(1).Info("copied", "from", rel, "to", newName)
	return nil
}

// sameContents checks whether the file name has the given BLAKE3
// digest.
func (fl *flattener) sameContents(name string, digest [32]byte) bool {
	data, err := fl.Files.Load(name, func() ([]byte, error) {
		return fl.fs.ReadFile(name)
	})
	if err != nil {
		return false
	}
	have, ok := fl.Files.Digest(name)
	if !ok {
		have = blake3.Sum256(data)
	}
	return have == digest
}

func (fl *flattener) recordEvent(inv *parser.Invocation) {
	ev := Event{
		Pos:     inv.Location(),
		Command: inv.Name(),
		Snippet: diag.Shorten(inv.Text(), 40),
	}
	fl.Events = append(fl.Events, ev)
	if fl.opts.Verbose && fl.opts.Display != nil {
		fl.opts.Display.Event(ev)
	}
}
