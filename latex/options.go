// options.go - configuration of a flatten run
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

package latex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v2"
)

// ConfigFileName is the name of the configuration file looked for in
// the project directory.
const ConfigFileName = ".flatlatex.yaml"

// ConfigEnv names the environment variable which can point to a
// configuration file.
const ConfigEnv = "FLATLATEX_CONFIG"

// Options control a flatten run.  The zero value can be used; unset
// fields get default values.
type Options struct {
	// Verbose enables the modification table on Display.
	Verbose bool `yaml:"verbose"`

	// MergedName is the name of the merged source file in the output
	// directory.
	MergedName string `yaml:"merged"`

	// GraphicExtensions lists the file extensions tried for images,
	// in order of preference.
	GraphicExtensions []string `yaml:"graphicExtensions"`

	// SVGExtensions lists the file extensions tried by \includesvg.
	SVGExtensions []string `yaml:"svgExtensions"`

	// CacheLimit bounds the memory used for file contents, in bytes.
	CacheLimit int64 `yaml:"cacheLimit"`

	Logger  logr.Logger `yaml:"-"`
	Display Display     `yaml:"-"`
	FS      FileSystem  `yaml:"-"`
}

// LoadOptions reads options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts := &Options{}
	err = yaml.UnmarshalStrict(data, opts)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return opts, nil
}

// ConfigPath returns the configuration file to use: the explicitly
// given name, the file named by $FLATLATEX_CONFIG, or .flatlatex.yaml
// in projectDir if it exists.  If there is no configuration file, the
// empty string is returned.
func ConfigPath(explicit, projectDir string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env
	}
	candidate := filepath.Join(projectDir, ConfigFileName)
	if (OSFS{}).Exists(candidate) {
		return candidate
	}
	return ""
}

func (opts *Options) withDefaults() *Options {
	res := &Options{}
	if opts != nil {
		*res = *opts
	}
	if res.MergedName == "" {
		res.MergedName = "merged.tex"
	}
	if len(res.GraphicExtensions) == 0 {
		res.GraphicExtensions = []string{"pdf", "eps", "png", "jpg"}
	}
	if len(res.SVGExtensions) == 0 {
		res.SVGExtensions = []string{"svg"}
	}
	if res.Logger.GetSink() == nil {
		res.Logger = logr.Discard()
	}
	if res.FS == nil {
		res.FS = OSFS{}
	}
	return res
}
