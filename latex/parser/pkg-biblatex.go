// pkg-biblatex.go - support for the biblatex package
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
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

func init() {
	addPackage("biblatex", addBiblatexMacros)
}

func addBiblatexMacros(env *Environment) {
	env.builtin.macros["\\addbibresource"] = macroFunc(parseAddbibresource)
}

// parseAddbibresource handles \addbibresource[opts]{refs.bib}.  Unlike
// \bibliography, the file name includes the extension.
func parseAddbibresource(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
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
	return p.relocate(inv, func(link string) (string, error) {
		return p.engine.UpdateLinkToBibliography(link, inv)
	})
}
