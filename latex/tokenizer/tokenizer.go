// tokenizer.go -
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

package tokenizer

import (
	"bytes"
	"unicode/utf8"

	"github.com/seehuhn/flatlatex/latex/scanner"
)

// A Lexer splits LaTeX input into tokens.  Characters are classified
// using a SymbolTable, which may be changed while the input is read.
type Lexer struct {
	scan    *scanner.Scanner
	symbols *SymbolTable
}

// NewLexer creates a lexer which reads the given text.  The name
// `source` is recorded in the positions of all tokens.
func NewLexer(text, source string, symbols *SymbolTable) *Lexer {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Lexer{
		scan:    scanner.New([]byte(text), source),
		symbols: symbols,
	}
}

// Lex splits text into tokens, using the default symbol table.
func Lex(text, source string) TokenList {
	l := NewLexer(text, source, nil)
	var res TokenList
	for {
		tok := l.Next()
		if tok.IsEnd() {
			break
		}
		res = append(res, tok)
	}
	return res
}

// Next returns the next token.  At the end of input, a token of
// category EndOfText is returned.
func (l *Lexer) Next() *Token {
	pos := l.scan.Pos()
	if !l.scan.Next() {
		return &Token{Category: EndOfText, Pos: pos}
	}
	buf := l.scan.Peek()
	c, size := utf8.DecodeRune(buf)
	cat := l.symbols.CategoryOf(c)

	var text string
	switch cat {
	case Control:
		text = l.readControl(size)
	case Comment:
		text = l.readComment()
	case WhiteSpace:
		text = l.readRun(func(c rune) bool {
			return l.symbols.CategoryOf(c) == WhiteSpace
		})
	case Parameter:
		l.scan.Skip(size)
		text = string(buf[:size]) + l.readRun(isDigit)
	default:
		text = string(buf[:size])
		l.scan.Skip(size)
	}
	return &Token{Category: cat, Text: text, Pos: pos}
}

// Source returns the name of the input the next token is read from.
func (l *Lexer) Source() string {
	return l.scan.Source()
}

// Discard drops the rest of the named input.
func (l *Lexer) Discard(source string) {
	l.scan.Discard(source)
}

// Limit ends the input just before the next occurrence of marker.  The
// return value is false if marker does not occur in the unread input.
func (l *Lexer) Limit(marker string) bool {
	return l.scan.Limit([]byte(marker))
}

func (l *Lexer) readControl(size int) string {
	head := string(l.scan.Peek()[:size])
	l.scan.Skip(size)
	if !l.scan.Next() {
		// malformed: nothing after the control character
		return head
	}
	buf := l.scan.Peek()
	c, size := utf8.DecodeRune(buf)
	if !l.symbols.IsLetter(c) {
		l.scan.Skip(size)
		return head + string(buf[:size])
	}
	return head + l.readRun(l.symbols.IsLetter)
}

// readRun reads the maximal run of characters satisfying pred.
func (l *Lexer) readRun(pred func(rune) bool) string {
	var res []byte
	for l.scan.Next() {
		buf := l.scan.Peek()

		pos := 0
		for pos < len(buf) {
			c, size := utf8.DecodeRune(buf[pos:])
			if !pred(c) {
				break
			}
			pos += size
		}
		res = append(res, buf[:pos]...)
		l.scan.Skip(pos)

		if pos < len(buf) {
			break
		}
	}
	return string(res)
}

// ReadDelimited reads raw input of the form `*|text|` or `|text|`, as
// used by \verb.  The second return value is false if the closing
// delimiter is missing.
func (l *Lexer) ReadDelimited() (*Token, bool) {
	pos := l.scan.Pos()
	var res []byte
	if !l.scan.Next() {
		return &Token{Category: EndOfText, Pos: pos}, false
	}
	buf := l.scan.Peek()
	if buf[0] == '*' {
		res = append(res, '*')
		l.scan.Skip(1)
		if !l.scan.Next() {
			return &Token{Category: Others, Text: string(res), Pos: pos}, false
		}
		buf = l.scan.Peek()
	}
	_, size := utf8.DecodeRune(buf)
	delim := string(buf[:size])
	res = append(res, delim...)
	l.scan.Skip(size)

	body, ok := l.readUntil([]byte(delim), false)
	res = append(res, body...)
	return &Token{Category: Others, Text: string(res), Pos: pos}, ok
}

// ReadDelimitedBy reads raw input up to and including the next
// occurrence of delim on the current line.
func (l *Lexer) ReadDelimitedBy(delim string) (*Token, bool) {
	pos := l.scan.Pos()
	body, ok := l.readUntil([]byte(delim), false)
	return &Token{Category: Others, Text: string(body), Pos: pos}, ok
}

// ReadUntil reads raw input up to and including the first occurrence
// of marker.  The second return value is false if the marker was not
// found before the end of input.
func (l *Lexer) ReadUntil(marker string) (*Token, bool) {
	pos := l.scan.Pos()
	body, ok := l.readUntil([]byte(marker), true)
	return &Token{Category: Others, Text: string(body), Pos: pos}, ok
}

func (l *Lexer) readUntil(marker []byte, crossLines bool) ([]byte, bool) {
	if !l.scan.Next() {
		return nil, false
	}
	buf := l.scan.Peek()
	if !crossLines {
		if nl := bytes.IndexByte(buf, '\n'); nl >= 0 {
			buf = buf[:nl]
		}
	}
	idx := bytes.Index(buf, marker)
	if idx < 0 {
		l.scan.Skip(len(buf))
		return buf, false
	}
	n := idx + len(marker)
	l.scan.Skip(n)
	return buf[:n], true
}
