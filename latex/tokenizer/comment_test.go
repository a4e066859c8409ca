// comment_test.go -
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
	"testing"
)

func TestReadComment(t *testing.T) {
	l := NewLexer("% line 1\n% line 2 \t \n\t % line 3\n   xxx", "test", nil)
	expected := []struct {
		cat  Category
		text string
	}{
		{Comment, "% line 1"},
		{NewLine, "\n"},
		{Comment, "% line 2 \t "},
		{NewLine, "\n"},
		{WhiteSpace, "\t "},
		{Comment, "% line 3"},
		{NewLine, "\n"},
		{WhiteSpace, "   "},
		{Character, "x"},
	}
	for i, exp := range expected {
		tok := l.Next()
		if tok.Category != exp.cat || tok.Text != exp.text {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.cat, exp.text, tok.Category, tok.Text)
		}
	}
}

func TestEscapedPercent(t *testing.T) {
	toks := Lex(`50\% off % really`, "test")
	var comments []string
	for _, tok := range toks {
		if tok.Category == Comment {
			comments = append(comments, tok.Text)
		}
	}
	if len(comments) != 1 || comments[0] != "% really" {
		t.Errorf("wrong comments %q", comments)
	}
	if toks[2].Text != `\%` || toks[2].Category != Control {
		t.Errorf("wrong escaped percent token %q", toks[2].Text)
	}
}

func TestCommentAtEnd(t *testing.T) {
	toks := Lex("a%", "test")
	if len(toks) != 2 || toks[1].Text != "%" {
		t.Errorf("wrong tokens %v", toks)
	}
}
