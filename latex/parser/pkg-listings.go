// pkg-listings.go - support for the listings and comment packages
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

package parser

import (
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

func init() {
	addPackage("listings", addListingsMacros)
	addPackage("comment", addCommentMacros)
}

func addListingsMacros(env *Environment) {
	env.builtin.macros["\\lstinline"] = macroFunc(parseLstinline)
	env.builtin.macros["\\lstinputlisting"] = macroFunc(parseLstinputlisting)

	env.builtin.environments["lstlisting"] = verbatimEnv("lstlisting")
}

func addCommentMacros(env *Environment) {
	env.builtin.environments["comment"] = verbatimEnv("comment")
}

func parseLstinline(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	opts, err := p.ReadOptions("[", "]")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("options", opts)
	if p.stream.LookAhead().BeginsGroup() {
		arg, err := p.ReadGroup()
		if err != nil {
			return nil, err
		}
		inv.AppendArgument("code", arg)
		return inv.Tokens(), nil
	}
	arg, err := p.readVerbatim(inv)
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("code", arg)
	return inv.Tokens(), nil
}

// parseLstinputlisting copies the listed source file.  The file name
// keeps its extension.
func parseLstinputlisting(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
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
		return p.engine.UpdateLinkToFile(link, inv)
	})
}
