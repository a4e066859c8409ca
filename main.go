// main.go - command line interface for flatlatex
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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seehuhn/flatlatex/latex"
	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/scanner"
)

const usage = "usage: flatlatex [-v] [-d] [-c config.yaml] <tex-file> <output-dir>"

func main() {
	err := run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		if diag.IsKind(err, diag.InvalidArgument) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		verbose    bool
		debug      bool
		configFile string
	)

	// getopt only knows short options
	var argv []string
	for _, arg := range args {
		if arg == "--verbose" {
			verbose = true
			continue
		}
		argv = append(argv, arg)
	}

	opts, optind, err := getopt.Getopts(argv, "vdc:")
	if err != nil {
		return diag.New(diag.InvalidArgument, scanner.Position{}, "%s", err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'v':
			verbose = true
		case 'd':
			debug = true
		case 'c':
			configFile = opt.Value
		}
	}
	rest := argv[optind:]
	if len(rest) != 2 {
		return diag.New(diag.InvalidArgument, scanner.Position{},
			"expected 2 arguments, got %d", len(rest))
	}
	rootFile, outDir := rest[0], rest[1]

	zapCfg := zap.NewProductionConfig()
	if verbose || debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zl, err := zapCfg.Build()
	if err != nil {
		return err
	}
	defer zl.Sync()
	logger := zapr.NewLogger(zl)

	options := &latex.Options{}
	if path := latex.ConfigPath(configFile, filepath.Dir(rootFile)); path != "" {
		options, err = latex.LoadOptions(path)
		if err != nil {
			return err
		}
		logger.V(1).Info("configuration loaded", "path", path)
	}
	if verbose {
		options.Verbose = true
	}
	options.Logger = logger
	if options.Verbose {
		options.Display = latex.NewTablePrinter(os.Stdout)
	}

	report, err := latex.Flatten(rootFile, outDir, options)
	if err != nil {
		return err
	}
	logger.Info("done", "run", report.RunID, "modifications", len(report.Events))
	return nil
}
