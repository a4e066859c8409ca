// files.go - inclusion of TeX files and other resources
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

// readLink reads the file name argument of \input, which can be
// given either in braces or, as in plain TeX, as a single word.
func (p *Parser) readLink() (tokenizer.TokenList, error) {
	lead := p.skipIgnored()
	next := p.stream.LookAhead()
	p.stream.PushBack(lead)
	if next.BeginsGroup() || next.IsEnd() || next.Category == tokenizer.Control {
		return p.ReadOne()
	}
	return p.readWord(), nil
}

// inline reads the named TeX file and rewrites its contents.
func (p *Parser) inline(link string, inv *Invocation) (tokenizer.TokenList, error) {
	text, source, err := p.engine.ContentOf(link, inv)
	if err != nil {
		return nil, err
	}
	err = p.countExpansion(inv.Location(), inv.Name())
	if err != nil {
		return nil, err
	}
	return p.RewriteSource(text, source)
}

func parseInput(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.readLink()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	link, err := p.EvaluateText(arg)
	if err != nil {
		return nil, err
	}
	return p.inline(link, inv)
}

func parseInclude(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadOne()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	link, err := p.EvaluateText(arg)
	if err != nil {
		return nil, err
	}
	if !p.engine.ShallInclude(link) {
		return nil, nil
	}
	res, err := p.inline(link, inv)
	if err != nil {
		return nil, err
	}
	return append(res,
		tokenizer.NewToken(tokenizer.Control, "\\clearpage"),
		tokenizer.NewToken(tokenizer.WhiteSpace, " ")), nil
}

func parseIncludeonly(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("list", arg)
	selection, ok, err := p.EvaluateList(arg)
	if err != nil {
		return nil, err
	} else if !ok || p.inMacroBody() {
		return inv.Tokens(), nil
	}
	p.engine.IncludeOnly(selection, inv)
	return nil, nil
}

func parseEndinput(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	if p.inMacroBody() {
		return inv.Tokens(), nil
	}
	source := inv.Location().Source
	p.engine.EndOfInput(source, inv)
	p.stream.Flush(source)
	return nil, nil
}

// relocate replaces the "link" argument of inv by the name returned
// from update.  If the link cannot be evaluated, the invocation is
// kept unchanged.
func (p *Parser) relocate(inv *Invocation, update func(string) (string, error)) (tokenizer.TokenList, error) {
	arg := inv.Argument("link")
	link, ok, err := p.tryEvaluate(arg)
	if err != nil {
		return nil, err
	} else if !ok {
		return inv.Tokens(), nil
	}
	newName, err := update(link)
	if err != nil {
		return nil, err
	}
	inv.Substitute("link", relinked(arg, newName))
	return inv.Tokens(), nil
}

// relocateList is like relocate, for comma-separated lists of links.
// If update returns the empty string for all list elements, the
// invocation is kept unchanged.
func (p *Parser) relocateList(inv *Invocation, update func(string) (string, error)) (tokenizer.TokenList, error) {
	arg := inv.Argument("link")
	links, ok, err := p.EvaluateList(arg)
	if err != nil {
		return nil, err
	} else if !ok {
		return inv.Tokens(), nil
	}

	changed := false
	newNames := make([]string, len(links))
	for i, link := range links {
		newName, err := update(link)
		if err != nil {
			return nil, err
		}
		if newName == "" {
			newName = link
		} else if newName != link {
			changed = true
		}
		newNames[i] = newName
	}
	if changed {
		inv.Substitute("link", relinked(arg, strings.Join(newNames, ",")))
	}
	return inv.Tokens(), nil
}

func parseBibliography(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	return p.relocateList(inv, func(link string) (string, error) {
		return p.engine.UpdateLinkToBibliography(link, inv)
	})
}

func parseBibliographystyle(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("link", arg)
	return p.relocate(inv, func(link string) (string, error) {
		return p.engine.UpdateLinkToBibliographyStyle(link, inv)
	})
}

// parseUsepackage handles \usepackage and \RequirePackage.  Packages
// found in the project are renamed, system packages are kept.
func parseUsepackage(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
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
	return p.relocateList(inv, func(name string) (string, error) {
		return p.engine.RelocateDependency(name, inv)
	})
}

func parseDocumentclass(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
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

	class, ok, err := p.tryEvaluate(arg)
	if err != nil {
		return nil, err
	}
	if ok && class == "subfiles" && !p.inMacroBody() {
		err = p.stripDocument()
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	return p.relocateList(inv, func(name string) (string, error) {
		return p.engine.RelocateDependency(name, inv)
	})
}
