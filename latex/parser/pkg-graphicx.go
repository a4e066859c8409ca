// pkg-graphicx.go - support for the graphicx package
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
	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

func init() {
	addPackage("graphicx", addGraphicxMacros)
}

func addGraphicxMacros(env *Environment) {
	env.builtin.macros["\\includegraphics"] = macroFunc(parseIncludegraphics)
	env.builtin.macros["\\graphicspath"] = macroFunc(parseGraphicspath)
}

// parseIncludegraphics handles \includegraphics*[opts][opts]{link}.
func parseIncludegraphics(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	inv.Append(p.ReadStar())
	for _, name := range []string{"options", "options2"} {
		opts, err := p.ReadOptions("[", "]")
		if err != nil {
			return nil, err
		}
		inv.AppendArgument(name, opts)
	}
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	return p.relocate(inv, func(link string) (string, error) {
		return p.engine.UpdateLinkToGraphic(link, inv)
	})
}

// parseGraphicspath passes the search path for images to the engine.
// Both \graphicspath{{a/}{b/}} and \graphicspath{a/,b/} are accepted.
func parseGraphicspath(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("paths", arg)

	if p.inMacroBody() {
		return inv.Tokens(), nil
	}
	toks, err := p.Evaluate(arg)
	if diag.IsKind(err, diag.UndefinedSymbol) {
		return inv.Tokens(), nil
	} else if err != nil {
		return nil, err
	}
	p.engine.RecordGraphicPath(graphicPaths(toks), inv)
	return inv.Tokens(), nil
}

func graphicPaths(toks tokenizer.TokenList) []string {
	toks = toks.Trim()
	if len(toks) == 0 || !toks[0].BeginsGroup() {
		var text []byte
		for _, tok := range toks {
			if !tok.IsIgnored() {
				text = append(text, tok.Text...)
			}
		}
		return splitList(string(text))
	}

	var res []string
	var cur []byte
	depth := 0
	for _, tok := range toks {
		switch {
		case tok.BeginsGroup():
			depth++
			if depth == 1 {
				cur = cur[:0]
				continue
			}
		case tok.EndsGroup():
			depth--
			if depth == 0 {
				if len(cur) > 0 {
					res = append(res, string(cur))
				}
				continue
			}
		}
		if depth > 0 && !tok.IsIgnored() {
			cur = append(cur, tok.Text...)
		}
	}
	return res
}
