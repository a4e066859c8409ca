// flatten.go - merge a LaTeX project into a single file
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
	"fmt"
	"path/filepath"

	"github.com/ahrtr/gocontainer/set"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/seehuhn/flatlatex/latex/cache"
	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/parser"
	"github.com/seehuhn/flatlatex/latex/scanner"
)

type flattener struct {
	opts *Options
	fs   FileSystem
	log  logr.Logger

	SourceDir string
	OutputDir string
	RunID     string

	Files        *cache.Cache
	GraphicPaths []string
	Only         set.Interface
	Copied       map[string]string
	Events       []Event
}

func newFlattener(rootFile, outDir string, opts *Options) *flattener {
	runID := uuid.NewString()
	log := opts.Logger.WithValues("run", runID)
	return &flattener{
		opts: opts,
		fs:   opts.FS,
		log:  log,

		SourceDir: filepath.Dir(rootFile),
		OutputDir: outDir,
		RunID:     runID,

		Files:  cache.New(opts.CacheLimit, log),
		Copied: make(map[string]string),
	}
}

func (fl *flattener) Close() {
	fl.Files.Close()
}

// Report summarises a flatten run.
type Report struct {
	RunID  string
	Events []Event
	Merged string
}

// Flatten reads the LaTeX file rootFile together with all files it
// includes, and writes a single merged source file to outDir.  All
// graphics, bibliographies and other resources referenced by the
// input are copied to outDir and the references are updated.
func Flatten(rootFile, outDir string, opts *Options) (*Report, error) {
	opts = opts.withDefaults()
	fl := newFlattener(rootFile, outDir, opts)
	defer fl.Close()

	data, err := fl.Files.Load(rootFile, func() ([]byte, error) {
		return fl.fs.ReadFile(rootFile)
	})
	if err != nil {
		return nil, &diag.Error{
			Kind: diag.TexFileNotFound,
			Pos:  scanner.Position{Source: rootFile},
			Err:  err,
		}
	}
	source := filepath.ToSlash(filepath.Base(rootFile))

	if opts.Verbose && opts.Display != nil {
		opts.Display.Header(fl.RunID)
	}
	fl.log.Info("flattening", "root", rootFile, "output", outDir)

	p := parser.New(fl, parser.NewEnvironment())
	toks, err := p.RewriteSource(string(data), source)
	if err != nil {
		return nil, err
	}
	merged := toks.String()

	mergedPath := filepath.Join(outDir, opts.MergedName)
	if fl.fs.Exists(mergedPath) {
		old, err := fl.fs.ReadFile(mergedPath)
		if err == nil && bytes.Equal(old, []byte(merged)) {
			fl.log.V(1).Info("merged file unchanged", "path", mergedPath)
			return fl.report(merged), nil
		}
	}
	err = writeFile(fl.fs, mergedPath, []byte(merged))
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", mergedPath, err)
	}
	fl.log.V(1).Info("merged file written", "path", mergedPath,
		"digest", fmt.Sprintf("%x", blake3.Sum256([]byte(merged))))
	return fl.report(merged), nil
}

func (fl *flattener) report(merged string) *Report {
	if fl.opts.Verbose && fl.opts.Display != nil {
		fl.opts.Display.Footer(len(fl.Events))
	}
	return &Report{
		RunID:  fl.RunID,
		Events: fl.Events,
		Merged: merged,
	}
}
