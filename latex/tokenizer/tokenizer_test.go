// tokenizer_test.go -
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMacroName(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"\\test", "\\test"},
		{"\\test o'clock", "\\test"},
		{"\\test4testing", "\\test"},
		{"\\t2", "\\t"},
		{"\\2t", "\\2"},
		{"\\{}", "\\{"},
		{"\\...", "\\."},
		{"\\ä", "\\ä"},
		{"\\", "\\"},
	}
	for i, testCase := range testCases {
		tok := NewLexer(testCase.in, "test data", nil).Next()
		if tok.Category != Control {
			t.Errorf("test %d: wrong category %s", i, tok.Category)
		}
		if tok.Text != testCase.out {
			t.Errorf("test %d: wrong macro name, expected %q, got %q",
				i, testCase.out, tok.Text)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []string{
		"",
		"plain text",
		"\\documentclass[a4paper]{article}\n% comment\n\\begin{document}\nHi!\n\\end{document}\n",
		"$x^2_i$ ~ #1#23 ## \\\\ \\ \t\r\n",
		"unicode: äöü \\ß {€}",
		"\\",
		"%",
		strings.Repeat("long line with \\macros and {groups} ", 50),
	}
	for i, text := range testCases {
		toks := Lex(text, "test")
		if got := toks.String(); got != text {
			t.Errorf("test %d: round trip failed, got %q", i, got)
		}
	}
}

func TestCategories(t *testing.T) {
	toks := Lex("\\a{b}$c^d_e~#12 \n&", "test")
	expected := []Category{
		Control, BeginGroup, Character, EndGroup, Math, Character,
		Superscript, Character, Subscript, Character, NonBreakingSpace,
		Parameter, WhiteSpace, NewLine, Others,
	}
	require.Len(t, toks, len(expected))
	for i, tok := range toks {
		assert.Equal(t, expected[i], tok.Category, "token %d %q", i, tok.Text)
	}
	assert.Equal(t, "#12", toks[11].Text)
	assert.True(t, toks[11].IsParameter())
	assert.Equal(t, "a", toks[0].Name())
	assert.True(t, toks[0].IsCommand())
}

func TestPositions(t *testing.T) {
	toks := Lex("ab\n  \\cd", "file.tex")
	require.Len(t, toks, 5)
	assert.Equal(t, "file.tex:1:1", toks[0].Pos.String())
	assert.Equal(t, "file.tex:1:3", toks[2].Pos.String())
	assert.Equal(t, "file.tex:2:1", toks[3].Pos.String())
	assert.Equal(t, "file.tex:2:3", toks[4].Pos.String())
}

func TestMakeAtLetter(t *testing.T) {
	symbols := NewSymbolTable()
	tok := NewLexer("\\my@macro", "test", symbols).Next()
	assert.Equal(t, "\\my", tok.Text)

	symbols.Assign(Character, '@')
	tok = NewLexer("\\my@macro", "test", symbols).Next()
	assert.Equal(t, "\\my@macro", tok.Text)

	symbols.Assign(Others, '@')
	assert.Equal(t, Others, symbols.CategoryOf('@'))
}

func TestSymbolTableClone(t *testing.T) {
	a := NewSymbolTable()
	b := a.Clone()
	b.Assign(Character, '@')
	assert.Equal(t, Others, a.CategoryOf('@'))
	assert.Equal(t, Character, b.CategoryOf('@'))
	assert.Equal(t, []rune{'\t', '\r', ' '}, a.Characters(WhiteSpace))
	assert.Panics(t, func() { a.Assign(EndOfText, 'x') })
}

func TestReadDelimited(t *testing.T) {
	testCases := []struct {
		in, out, next string
		ok            bool
	}{
		{"|%|x", "|%|", "x", true},
		{"*+a b+", "*+a b+", "", true},
		{"!unterminated\nnext", "!unterminated", "\n", false},
	}
	for i, testCase := range testCases {
		l := NewLexer(testCase.in, "test", nil)
		tok, ok := l.ReadDelimited()
		if ok != testCase.ok || tok.Text != testCase.out {
			t.Errorf("test %d: expected %q/%t, got %q/%t",
				i, testCase.out, testCase.ok, tok.Text, ok)
		}
		if next := l.Next(); next.Text != testCase.next {
			t.Errorf("test %d: wrong next token %q", i, next.Text)
		}
	}
}

func TestReadUntil(t *testing.T) {
	body := strings.Repeat("% not a comment {\n", 20)
	l := NewLexer(body+"\\end{verbatim}rest", "test", nil)
	tok, ok := l.ReadUntil("\\end{verbatim}")
	require.True(t, ok)
	assert.Equal(t, body+"\\end{verbatim}", tok.Text)
	assert.Equal(t, "r", l.Next().Text)

	l = NewLexer("no marker here", "test", nil)
	tok, ok = l.ReadUntil("\\end{verbatim}")
	assert.False(t, ok)
	assert.Equal(t, "no marker here", tok.Text)
}

func TestTokenListGroups(t *testing.T) {
	testCases := []struct {
		in      string
		isGroup bool
		strip   string
	}{
		{"{abc}", true, "abc"},
		{"  {a{b}c} \n", true, "a{b}c"},
		{"{a}{b}", false, "{a}{b}"},
		{"abc", false, "abc"},
		{"{", false, "{"},
	}
	for i, testCase := range testCases {
		toks := Lex(testCase.in, "test")
		assert.Equal(t, testCase.isGroup, toks.IsGroup(), "test %d", i)
		assert.Equal(t, testCase.strip, toks.StripGroup().String(), "test %d", i)
	}
}
