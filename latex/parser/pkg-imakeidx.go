// pkg-imakeidx.go - index styles for \makeindex
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
	addPackage("imakeidx", addImakeidxMacros)
}

func addImakeidxMacros(env *Environment) {
	env.builtin.macros["\\makeindex"] = macroFunc(parseMakeindex)
}

// parseMakeindex relocates the index style given as "-s STYLE" in the
// options of \makeindex.
func parseMakeindex(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	opts, err := p.ReadOptions("[", "]")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("options", opts)
	if opts == nil {
		return inv.Tokens(), nil
	}

	text := stripDelimiters(opts).String()
	style, offset := indexStyle(text)
	if style == "" {
		return inv.Tokens(), nil
	}
	newName, err := p.engine.UpdateLinkToIndexStyle(style, inv)
	if err != nil {
		return nil, err
	}
	text = text[:offset] + newName + text[offset+len(style):]

	lead := opts.Leading()
	res := lead.Copy()
	res = append(res, opts[len(lead)])
	res = append(res, tokenizer.Lex(text, opts[len(lead)].Pos.Source)...)
	res = append(res, opts[len(opts)-1])
	inv.Substitute("options", res)
	return inv.Tokens(), nil
}

// indexStyle extracts the style file from makeindex options like
// "name=idx, options=-s mystyle.ist".  The second return value is the
// byte offset of the style name in text.
func indexStyle(text string) (string, int) {
	type field struct {
		text  string
		start int
	}
	var fields []field
	start := -1
	for i, c := range text + " " {
		if strings.ContainsRune(" \t\n,{}", c) {
			if start >= 0 {
				fields = append(fields, field{text[start:i], start})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}

	for i, f := range fields {
		switch {
		case strings.HasSuffix(f.text, "-s") && i+1 < len(fields):
			return fields[i+1].text, fields[i+1].start
		case strings.HasPrefix(f.text, "-s") && len(f.text) > 2:
			return f.text[2:], f.start + 2
		}
	}
	return "", -1
}
