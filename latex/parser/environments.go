// environments.go -
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
	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

// EnvironmentHandler is implemented by the handlers for LaTeX
// environments.  Execute is called after \begin{name} has been read
// into inv.
type EnvironmentHandler interface {
	Execute(p *Parser, inv *Invocation) (tokenizer.TokenList, error)
}

type envFunc func(p *Parser, inv *Invocation) (tokenizer.TokenList, error)

func (ef envFunc) Execute(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	return ef(p, inv)
}

func parseBegin(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("name", arg)

	name, ok, err := p.tryEvaluate(arg)
	if err != nil {
		return nil, err
	} else if !ok {
		return inv.Tokens(), nil
	}

	env := p.env.LookupEnvironment(name)
	if env == nil {
		return inv.Tokens(), nil
	}
	return env.Execute(p, inv)
}

// verbatimEnv is used for environments where the body is copied
// without interpretation, up to the matching \end.
type verbatimEnv string

func (env verbatimEnv) Execute(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	marker := "\\end{" + string(env) + "}"
	body, ok := p.stream.ReadRawUntil(marker)
	if !ok {
		return nil, diag.New(diag.EndOfText, inv.Location(),
			"missing %s", marker).WithSnippet(inv.Text())
	}
	inv.AppendArgument("body", body)
	return inv.Tokens(), nil
}
