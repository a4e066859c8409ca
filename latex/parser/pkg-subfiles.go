// pkg-subfiles.go - support for the subfiles package
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

const (
	beginDocument = "\\begin{document}"
	endDocument   = "\\end{document}"
)

func init() {
	addPackage("subfiles", addSubfilesMacros)
}

func addSubfilesMacros(env *Environment) {
	env.builtin.macros["\\subfile"] = macroFunc(parseSubfile)
}

// parseSubfile inlines the body of a document which uses the subfiles
// class.  The preamble and everything after \end{document} are
// omitted.
func parseSubfile(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadOne()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	link, err := p.EvaluateText(arg)
	if err != nil {
		return nil, err
	}

	text, source, err := p.engine.ContentOf(link, inv)
	if err != nil {
		return nil, err
	}
	err = p.countExpansion(inv.Location(), inv.Name())
	if err != nil {
		return nil, err
	}

	l := tokenizer.NewLexer(text, source, p.symbols)
	if strings.Contains(text, beginDocument) {
		l.ReadUntil(beginDocument)
		l.Limit(endDocument)
	}
	sub := p.child(tokenizer.NewStream(l), false)
	return sub.nested(inv.Location())
}

// stripDocument skips the rest of the preamble and ends the input at
// \end{document}.  This is used when the file being read itself uses
// the subfiles class.
func (p *Parser) stripDocument() error {
	_, err := p.ReadRawUntil(beginDocument)
	if err != nil {
		return err
	}
	p.stream.Limit(endDocument)
	return nil
}
