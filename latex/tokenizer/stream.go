// stream.go - token streams with look-ahead and push-back
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

package tokenizer

import (
	"strings"

	"github.com/edwingeng/deque"

	"github.com/seehuhn/flatlatex/latex/scanner"
)

// A Stream is a cursor over a sequence of tokens.  Tokens are pulled
// from a Lexer on demand; tokens which were pushed back are returned
// first.
type Stream struct {
	lexer   *Lexer
	pending deque.Deque
	last    scanner.Position
}

// NewStream returns a stream which reads tokens from l.
func NewStream(l *Lexer) *Stream {
	return &Stream{
		lexer:   l,
		pending: deque.NewDeque(),
		last:    scanner.UnknownPosition,
	}
}

// NewListStream returns a stream over a fixed list of tokens.
func NewListStream(toks TokenList) *Stream {
	s := NewStream(nil)
	s.PushBack(toks)
	return s
}

// Take removes the next token from the stream and returns it.  At the
// end of the stream, a token of category EndOfText is returned.
func (s *Stream) Take() *Token {
	if !s.pending.Empty() {
		tok := s.pending.PopFront().(*Token)
		s.last = tok.Pos
		return tok
	}
	if s.lexer != nil {
		tok := s.lexer.Next()
		s.last = tok.Pos
		return tok
	}
	return &Token{Category: EndOfText, Pos: s.last}
}

// LookAhead returns the next token without removing it from the
// stream.
func (s *Stream) LookAhead() *Token {
	tok := s.Take()
	if !tok.IsEnd() {
		s.pending.PushFront(tok)
	}
	return tok
}

// PushBack prepends toks to the stream.  The first element of toks is
// the next token returned by .Take().
func (s *Stream) PushBack(toks TokenList) {
	for i := len(toks) - 1; i >= 0; i-- {
		s.pending.PushFront(toks[i])
	}
}

// IsEmpty checks whether all tokens have been consumed.
func (s *Stream) IsEmpty() bool {
	return s.LookAhead().IsEnd()
}

// Flush discards all remaining tokens which originate from the named
// source.
func (s *Stream) Flush(source string) {
	n := s.pending.Len()
	for i := 0; i < n; i++ {
		tok := s.pending.PopFront().(*Token)
		if tok.Pos.Source != source {
			s.pending.PushBack(tok)
		}
	}
	if s.lexer != nil {
		s.lexer.Discard(source)
	}
}

// Limit ends the input read from the lexer just before the next
// occurrence of marker.  Tokens which were pushed back are not
// affected.
func (s *Stream) Limit(marker string) bool {
	if s.lexer == nil {
		return false
	}
	return s.lexer.Limit(marker)
}

// ReadUntilText accumulates tokens until their concatenated text ends
// with marker.  The tokens forming the marker are included.  The
// second return value is false if the stream ended first.
func (s *Stream) ReadUntilText(marker string) (TokenList, bool) {
	var res TokenList
	var text strings.Builder
	for {
		tok := s.Take()
		if tok.IsEnd() {
			return res, false
		}
		res = append(res, tok)
		text.WriteString(tok.Text)
		if strings.HasSuffix(text.String(), marker) {
			return res, true
		}
	}
}

// ReadRawUntil reads input up to and including marker, without
// splitting it into tokens where possible.  This keeps characters like
// '%' from being interpreted.
func (s *Stream) ReadRawUntil(marker string) (TokenList, bool) {
	if !s.pending.Empty() || s.lexer == nil {
		return s.ReadUntilText(marker)
	}
	tok, ok := s.lexer.ReadUntil(marker)
	if tok.Text == "" {
		return nil, ok
	}
	return TokenList{tok}, ok
}

// ReadVerbatim reads the argument of \verb: an optional star, a
// delimiter character and everything up to the next occurrence of the
// delimiter.
func (s *Stream) ReadVerbatim() (TokenList, bool) {
	if s.pending.Empty() && s.lexer != nil {
		tok, ok := s.lexer.ReadDelimited()
		if tok.IsEnd() {
			return nil, false
		}
		return TokenList{tok}, ok
	}

	var res TokenList
	first := s.Take()
	if first.IsEnd() {
		return nil, false
	}
	res = append(res, first)
	if first.Text == "*" {
		first = s.Take()
		if first.IsEnd() {
			return res, false
		}
		res = append(res, first)
	}
	delim := first.Text
	if s.pending.Empty() && s.lexer != nil {
		tok, ok := s.lexer.ReadDelimitedBy(delim)
		if tok.Text != "" {
			res = append(res, tok)
		}
		return res, ok
	}
	for {
		tok := s.Take()
		if tok.IsEnd() || tok.Category == NewLine {
			if !tok.IsEnd() {
				s.PushBack(TokenList{tok})
			}
			return res, false
		}
		res = append(res, tok)
		if tok.Text == delim {
			return res, true
		}
	}
}
