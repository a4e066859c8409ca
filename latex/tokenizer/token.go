// token.go -
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
	"strings"
	"unicode/utf8"

	"github.com/seehuhn/flatlatex/latex/scanner"
)

// Token contains information about a single syntactic unit in the TeX
// source.
type Token struct {
	// Category describes which kind of token this is.
	Category Category

	// Text is the source text of the token.  For control tokens this
	// includes the leading backslash.
	Text string

	// Pos is the location of the first character of the token.
	Pos scanner.Position
}

// NewToken returns a token which does not come from any input file.
func NewToken(cat Category, text string) *Token {
	return &Token{
		Category: cat,
		Text:     text,
		Pos:      scanner.UnknownPosition,
	}
}

// Name returns the name of a control token, without the leading
// control character.
func (tok *Token) Name() string {
	if tok.Category != Control {
		return ""
	}
	_, size := utf8.DecodeRuneInString(tok.Text)
	return tok.Text[size:]
}

// IsCommand checks whether tok is a control token with a non-empty
// name.
func (tok *Token) IsCommand() bool {
	return tok.Category == Control && tok.Name() != ""
}

// IsParameter checks whether tok is a macro parameter like "#1".
func (tok *Token) IsParameter() bool {
	return tok.Category == Parameter
}

// BeginsGroup checks whether tok opens a group.
func (tok *Token) BeginsGroup() bool {
	return tok.Category == BeginGroup
}

// EndsGroup checks whether tok closes a group.
func (tok *Token) EndsGroup() bool {
	return tok.Category == EndGroup
}

// IsIgnored checks for white space, new lines and comments.
func (tok *Token) IsIgnored() bool {
	switch tok.Category {
	case WhiteSpace, NewLine, Comment:
		return true
	}
	return false
}

// IsCharacter checks whether tok is a name letter.
func (tok *Token) IsCharacter() bool {
	return tok.Category == Character
}

// IsEnd checks whether tok marks the end of the input.
func (tok *Token) IsEnd() bool {
	return tok.Category == EndOfText
}

func (tok *Token) String() string {
	return tok.Text
}

// TokenList is a sequence of tokens.
type TokenList []*Token

// String concatenates the texts of all tokens.
func (toks TokenList) String() string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Trim removes leading and trailing ignored tokens.
func (toks TokenList) Trim() TokenList {
	start := 0
	for start < len(toks) && toks[start].IsIgnored() {
		start++
	}
	end := len(toks)
	for end > start && toks[end-1].IsIgnored() {
		end--
	}
	return toks[start:end]
}

// IsGroup checks whether the list, after trimming, consists of exactly
// one group.
func (toks TokenList) IsGroup() bool {
	toks = toks.Trim()
	if len(toks) < 2 || !toks[0].BeginsGroup() || !toks[len(toks)-1].EndsGroup() {
		return false
	}
	depth := 0
	for i, tok := range toks {
		switch {
		case tok.BeginsGroup():
			depth++
		case tok.EndsGroup():
			depth--
			if depth == 0 && i < len(toks)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// StripGroup removes surrounding ignored tokens and, if what is left is
// a single group, the group delimiters.
func (toks TokenList) StripGroup() TokenList {
	if !toks.IsGroup() {
		return toks.Trim()
	}
	toks = toks.Trim()
	return toks[1 : len(toks)-1]
}

// Leading returns the ignored tokens at the start of the list.
func (toks TokenList) Leading() TokenList {
	n := 0
	for n < len(toks) && toks[n].IsIgnored() {
		n++
	}
	return toks[:n]
}

// Copy returns a copy of the list which can be appended to without
// affecting toks.
func (toks TokenList) Copy() TokenList {
	res := make(TokenList, len(toks))
	copy(res, toks)
	return res
}
