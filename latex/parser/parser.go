// parser.go - rewrite LaTeX token streams
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

	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/scanner"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

// ExpansionLimit is the maximal number of macro expansions and file
// inclusions during one run.
const ExpansionLimit = 65536

// maxDepth bounds the nesting of included files.
const maxDepth = 128

type state struct {
	env        *Environment
	engine     Engine
	symbols    *tokenizer.SymbolTable
	expansions int
	depth      int

	// bodies counts the macro bodies currently being rewritten.
	bodies int
}

// A Parser reads tokens from a stream and produces the rewritten
// token list.  In rewrite mode, unknown content is copied to the output
// unchanged.  In evaluate mode, user macros are expanded and macro
// parameters are replaced by their values.
type Parser struct {
	*state
	stream   *tokenizer.Stream
	evaluate bool
}

// New returns a parser which uses the given engine to locate files.
// If env is nil, a new environment with the built-in macros is used.
func New(engine Engine, env *Environment) *Parser {
	if env == nil {
		env = NewEnvironment()
	}
	st := &state{
		env:     env,
		engine:  engine,
		symbols: tokenizer.NewSymbolTable(),
	}
	return &Parser{
		state:  st,
		stream: tokenizer.NewListStream(nil),
	}
}

// Env returns the definitions used by the parser.
func (p *Parser) Env() *Environment {
	return p.env
}

// Symbols returns the symbol table used to tokenize input.
func (p *Parser) Symbols() *tokenizer.SymbolTable {
	return p.symbols
}

// Stream returns the token stream the parser is reading from.
func (p *Parser) Stream() *tokenizer.Stream {
	return p.stream
}

func (p *Parser) child(stream *tokenizer.Stream, evaluate bool) *Parser {
	return &Parser{
		state:    p.state,
		stream:   stream,
		evaluate: evaluate,
	}
}

// inMacroBody reports whether the tokens being rewritten are part of a
// macro definition.  Commands which change the state of the run take
// no effect there.
func (p *Parser) inMacroBody() bool {
	return p.bodies > 0
}

// RewriteSource tokenizes text and rewrites the resulting tokens.
// The name `source` is used in the positions of all tokens.
func (p *Parser) RewriteSource(text, source string) (tokenizer.TokenList, error) {
	sub := p.child(tokenizer.NewStream(tokenizer.NewLexer(text, source, p.symbols)), false)
	return sub.nested(scanner.Position{Source: source, Line: 1, Column: 1})
}

// RewriteTokens rewrites a list of tokens.
func (p *Parser) RewriteTokens(toks tokenizer.TokenList) (tokenizer.TokenList, error) {
	return p.child(tokenizer.NewListStream(toks), false).Rewrite()
}

func (p *Parser) nested(pos scanner.Position) (tokenizer.TokenList, error) {
	if p.depth >= maxDepth {
		return nil, diag.New(diag.UnexpectedToken, pos, "files nested too deeply")
	}
	p.depth++
	defer func() { p.depth-- }()
	return p.Rewrite()
}

// Rewrite processes all tokens of the parser's stream.
func (p *Parser) Rewrite() (tokenizer.TokenList, error) {
	var res tokenizer.TokenList
	for {
		tok := p.stream.Take()
		if tok.IsEnd() {
			return res, nil
		}
		out, err := p.step(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, out...)
	}
}

func (p *Parser) step(tok *tokenizer.Token) (tokenizer.TokenList, error) {
	switch {
	case tok.BeginsGroup():
		return p.captureGroup(tok)
	case tok.Category == tokenizer.Control:
		return p.invoke(tok)
	case tok.IsParameter() && p.evaluate:
		val, ok := p.env.Binding(tok.Text)
		if !ok {
			return nil, diag.New(diag.UndefinedSymbol, tok.Pos,
				"parameter %s is not bound", tok.Text)
		}
		return val.Copy(), nil
	default:
		return tokenizer.TokenList{tok}, nil
	}
}

// captureGroup rewrites the tokens up to the group end matching open.
// The group forms a new scope.
func (p *Parser) captureGroup(open *tokenizer.Token) (tokenizer.TokenList, error) {
	p.env.OpenScope()
	defer p.env.CloseScope()

	res := tokenizer.TokenList{open}
	for {
		tok := p.stream.Take()
		if tok.IsEnd() {
			return nil, diag.New(diag.EndOfText, open.Pos, "group not closed")
		}
		if tok.EndsGroup() {
			return append(res, tok), nil
		}
		out, err := p.step(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, out...)
	}
}

func (p *Parser) invoke(tok *tokenizer.Token) (tokenizer.TokenList, error) {
	if tok.Name() == "" {
		return nil, diag.New(diag.UnexpectedToken, tok.Pos,
			"missing macro name after %q", tok.Text)
	}
	m := p.env.LookupMacro(tok.Text)
	if m == nil {
		return tokenizer.TokenList{tok}, nil
	}
	return m.Rewrite(p, NewInvocation(tok))
}

// countExpansion must be called before every macro expansion.
func (p *Parser) countExpansion(pos scanner.Position, name string) error {
	p.expansions++
	if p.expansions > ExpansionLimit {
		return diag.New(diag.UnexpectedToken, pos,
			"too many expansions, recursive definition of %s?", name)
	}
	return nil
}

// Evaluate resolves an argument: group delimiters are removed, user
// macros are expanded and parameters are replaced by their values.
func (p *Parser) Evaluate(toks tokenizer.TokenList) (tokenizer.TokenList, error) {
	return p.child(tokenizer.NewListStream(toks.StripGroup()), true).Rewrite()
}

// EvaluateText evaluates toks and concatenates the resulting tokens.
// Line breaks and comments are dropped, together with the white space
// around them, so that arguments which span several lines give the
// intended file name.  Other white space is kept.
func (p *Parser) EvaluateText(toks tokenizer.TokenList) (string, error) {
	res, err := p.Evaluate(toks)
	if err != nil {
		return "", err
	}
	return joinText(res), nil
}

func joinText(toks tokenizer.TokenList) string {
	isBreak := func(i int) bool {
		if i < 0 || i >= len(toks) {
			return true
		}
		cat := toks[i].Category
		return cat == tokenizer.NewLine || cat == tokenizer.Comment
	}
	var b strings.Builder
	for i, tok := range toks {
		switch tok.Category {
		case tokenizer.NewLine, tokenizer.Comment:
			continue
		case tokenizer.WhiteSpace:
			if isBreak(i-1) || isBreak(i+1) {
				continue
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// tryEvaluate is like EvaluateText, but reports undefined parameters
// by returning ok=false instead of an error.
func (p *Parser) tryEvaluate(toks tokenizer.TokenList) (string, bool, error) {
	res, err := p.EvaluateText(toks)
	if diag.IsKind(err, diag.UndefinedSymbol) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return res, true, nil
}

// EvaluateList evaluates a comma-separated list.  Empty entries are
// omitted.
func (p *Parser) EvaluateList(toks tokenizer.TokenList) ([]string, bool, error) {
	text, ok, err := p.tryEvaluate(toks)
	if !ok {
		return nil, false, err
	}
	return splitList(text), true, nil
}

func splitList(text string) []string {
	var res []string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}
