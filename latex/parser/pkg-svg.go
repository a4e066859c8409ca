// pkg-svg.go - support for the svg package
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

import (
	"strings"

	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

func init() {
	addPackage("svg", addSvgMacros)
}

func addSvgMacros(env *Environment) {
	env.builtin.macros["\\includesvg"] = macroFunc(parseIncludesvg)
}

func parseIncludesvg(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	opts, err := p.ReadOptions("[", "]")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("options", opts)
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)

	svgPath := ""
	if opts != nil {
		text, ok, err := p.tryEvaluate(stripDelimiters(opts))
		if err != nil {
			return nil, err
		} else if ok {
			svgPath = keyValues(text)["svgpath"]
		}
	}
	return p.relocate(inv, func(link string) (string, error) {
		return p.engine.UpdateLinkToSVG(link, inv, svgPath)
	})
}

// keyValues parses an option list like "width=3cm,svgpath={img/}".
// Commas inside braces do not separate entries.  Braces around values
// are removed.
func keyValues(text string) map[string]string {
	var entries []string
	depth := 0
	start := 0
	for i, c := range text {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				entries = append(entries, text[start:i])
				start = i + 1
			}
		}
	}
	entries = append(entries, text[start:])

	res := make(map[string]string)
	for _, entry := range entries {
		key, val, _ := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "{") && strings.HasSuffix(val, "}") {
			val = val[1 : len(val)-1]
		}
		res[key] = val
	}
	return res
}
