// arguments.go - read macro arguments
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

// skipIgnored removes white space, new lines and comments from the
// front of the stream and returns them.
func (p *Parser) skipIgnored() tokenizer.TokenList {
	var lead tokenizer.TokenList
	for {
		tok := p.stream.LookAhead()
		if !tok.IsIgnored() {
			return lead
		}
		lead = append(lead, p.stream.Take())
	}
}

func (p *Parser) endOfText(what string) error {
	tok := p.stream.LookAhead()
	return diag.New(diag.EndOfText, tok.Pos, "%s", what)
}

func unexpected(tok *tokenizer.Token, format string, args ...interface{}) error {
	return diag.New(diag.UnexpectedToken, tok.Pos, format, args...).WithSnippet(tok.Text)
}

// ReadOptions reads an optional argument delimited by `open` and
// `close`.  If the next non-ignored token is not `open`, nothing is
// read and nil is returned.  Otherwise the result contains the leading
// ignored tokens and the argument including its delimiters.
func (p *Parser) ReadOptions(open, close string) (tokenizer.TokenList, error) {
	lead := p.skipIgnored()
	tok := p.stream.LookAhead()
	if tok.Text != open {
		p.stream.PushBack(lead)
		return nil, nil
	}
	p.stream.Take()

	res := append(lead, tok)
	depth := 0
	nested := 0
	for {
		tok := p.stream.Take()
		switch {
		case tok.IsEnd():
			return nil, diag.New(diag.EndOfText, res[len(lead)].Pos,
				"missing %q", close)
		case tok.BeginsGroup():
			depth++
		case tok.EndsGroup():
			depth--
		case depth == 0 && tok.Text == open:
			nested++
		case depth == 0 && tok.Text == close:
			if nested == 0 {
				return append(res, tok), nil
			}
			nested--
		}
		res = append(res, tok)
	}
}

// ReadGroup reads a braced argument, including the braces and any
// preceding ignored tokens.
func (p *Parser) ReadGroup() (tokenizer.TokenList, error) {
	lead := p.skipIgnored()
	tok := p.stream.Take()
	if tok.IsEnd() {
		return nil, p.endOfText("missing argument")
	}
	if !tok.BeginsGroup() {
		p.stream.PushBack(tokenizer.TokenList{tok})
		return nil, unexpected(tok, "expected group, found %q", tok.Text)
	}
	group, err := p.readBalanced(tok)
	if err != nil {
		return nil, err
	}
	return append(lead, group...), nil
}

// readBalanced reads raw tokens up to the group end matching open.
func (p *Parser) readBalanced(open *tokenizer.Token) (tokenizer.TokenList, error) {
	res := tokenizer.TokenList{open}
	depth := 1
	for depth > 0 {
		tok := p.stream.Take()
		switch {
		case tok.IsEnd():
			return nil, diag.New(diag.EndOfText, open.Pos, "group not closed")
		case tok.BeginsGroup():
			depth++
		case tok.EndsGroup():
			depth--
		}
		res = append(res, tok)
	}
	return res, nil
}

// ReadOne reads either a braced group or a single token, together
// with any preceding ignored tokens.
func (p *Parser) ReadOne() (tokenizer.TokenList, error) {
	lead := p.skipIgnored()
	tok := p.stream.Take()
	switch {
	case tok.IsEnd():
		return nil, p.endOfText("missing argument")
	case tok.BeginsGroup():
		group, err := p.readBalanced(tok)
		if err != nil {
			return nil, err
		}
		return append(lead, group...), nil
	case tok.EndsGroup():
		p.stream.PushBack(tokenizer.TokenList{tok})
		return nil, unexpected(tok, "missing argument")
	}
	return append(lead, tok), nil
}

// ReadMacroName reads a control token.  If expected is not empty, the
// token text must equal expected.
func (p *Parser) ReadMacroName(expected string) (tokenizer.TokenList, error) {
	lead := p.skipIgnored()
	tok := p.stream.Take()
	if tok.IsEnd() {
		return nil, p.endOfText("missing macro name")
	}
	if !tok.IsCommand() || (expected != "" && tok.Text != expected) {
		p.stream.PushBack(tokenizer.TokenList{tok})
		if expected != "" {
			return nil, unexpected(tok, "expected %s, found %q", expected, tok.Text)
		}
		return nil, unexpected(tok, "expected macro name, found %q", tok.Text)
	}
	return append(lead, tok), nil
}

// ReadRawUntil reads input up to and including marker, without
// interpreting comments or category changes on the way.
func (p *Parser) ReadRawUntil(marker string) (tokenizer.TokenList, error) {
	res, ok := p.stream.ReadRawUntil(marker)
	if !ok {
		return nil, p.endOfText("missing " + marker)
	}
	return res, nil
}

// ReadUntilGroup reads all tokens up to, but excluding, the next
// group start.
func (p *Parser) ReadUntilGroup() (tokenizer.TokenList, error) {
	var res tokenizer.TokenList
	for {
		tok := p.stream.LookAhead()
		switch {
		case tok.IsEnd():
			return nil, p.endOfText("missing group")
		case tok.BeginsGroup():
			return res, nil
		}
		res = append(res, p.stream.Take())
	}
}

// ReadStar reads an optional "*" directly following a macro name.
func (p *Parser) ReadStar() tokenizer.TokenList {
	tok := p.stream.LookAhead()
	if tok.Text != "*" {
		return nil
	}
	return tokenizer.TokenList{p.stream.Take()}
}

// readWord reads a file name given without braces, as in "\input foo".
func (p *Parser) readWord() tokenizer.TokenList {
	lead := p.skipIgnored()
	var word tokenizer.TokenList
	for {
		tok := p.stream.LookAhead()
		if tok.IsEnd() || tok.IsIgnored() || tok.Category == tokenizer.Control ||
			tok.BeginsGroup() || tok.EndsGroup() {
			break
		}
		word = append(word, p.stream.Take())
	}
	if word == nil {
		p.stream.PushBack(lead)
		return nil
	}
	return append(lead, word...)
}

// stripDelimiters removes leading ignored tokens and the outer
// delimiters of an argument read by ReadOptions.
func stripDelimiters(toks tokenizer.TokenList) tokenizer.TokenList {
	toks = toks[len(toks.Leading()):]
	if len(toks) < 2 {
		return nil
	}
	return toks[1 : len(toks)-1]
}

// relinked replaces the contents of an argument by text, keeping the
// leading ignored tokens and the braces.
func relinked(arg tokenizer.TokenList, text string) tokenizer.TokenList {
	lead := arg.Leading()
	res := lead.Copy()
	body := tokenizer.Lex(text, arg[len(lead)].Pos.Source)
	if arg.IsGroup() {
		res = append(res, arg[len(lead)])
		res = append(res, body...)
		res = append(res, arg[len(arg)-1])
	} else {
		res = append(res, body...)
	}
	return res
}
