// symbols.go - character categories
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
	"sort"
)

// Category describes the role of a character, like TeX's category
// codes.
type Category int

// The different character categories.
const (
	BeginGroup Category = iota
	EndGroup
	Control
	Comment
	Math
	NewLine
	NonBreakingSpace
	Parameter
	Subscript
	Superscript
	WhiteSpace
	Character
	Others
	EndOfText
)

var categoryNames = map[Category]string{
	BeginGroup:       "begin-group",
	EndGroup:         "end-group",
	Control:          "control",
	Comment:          "comment",
	Math:             "math",
	NewLine:          "new-line",
	NonBreakingSpace: "non-breaking-space",
	Parameter:        "parameter",
	Subscript:        "subscript",
	Superscript:      "superscript",
	WhiteSpace:       "white-spaces",
	Character:        "character",
	Others:           "others",
	EndOfText:        "end-of-text",
}

func (cat Category) String() string {
	if name, ok := categoryNames[cat]; ok {
		return name
	}
	return "invalid category"
}

// A SymbolTable maps characters to categories.  Each character
// belongs to exactly one category; characters which were never
// assigned are in category Others.
type SymbolTable struct {
	special map[rune]Category
}

// NewSymbolTable returns a symbol table with the plain TeX
// assignments.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		special: make(map[rune]Category),
	}
	st.Assign(Control, '\\')
	st.Assign(BeginGroup, '{')
	st.Assign(EndGroup, '}')
	st.Assign(Comment, '%')
	st.Assign(Math, '$')
	st.Assign(NewLine, '\n')
	st.Assign(NonBreakingSpace, '~')
	st.Assign(Parameter, '#')
	st.Assign(Subscript, '_')
	st.Assign(Superscript, '^')
	st.Assign(WhiteSpace, ' ', '\t', '\r')
	for c := 'A'; c <= 'Z'; c++ {
		st.Assign(Character, c)
	}
	for c := 'a'; c <= 'z'; c++ {
		st.Assign(Character, c)
	}
	return st
}

// Clone returns an independent copy of the symbol table.
func (st *SymbolTable) Clone() *SymbolTable {
	res := &SymbolTable{
		special: make(map[rune]Category, len(st.special)),
	}
	for c, cat := range st.special {
		res.special[c] = cat
	}
	return res
}

// Assign moves the given characters into category cat.
func (st *SymbolTable) Assign(cat Category, chars ...rune) {
	if cat == EndOfText {
		panic("end-of-text cannot be assigned to characters")
	}
	for _, c := range chars {
		if cat == Others {
			delete(st.special, c)
		} else {
			st.special[c] = cat
		}
	}
}

// CategoryOf returns the category of c.
func (st *SymbolTable) CategoryOf(c rune) Category {
	if cat, ok := st.special[c]; ok {
		return cat
	}
	return Others
}

// IsLetter checks whether c can be part of a command name.
func (st *SymbolTable) IsLetter(c rune) bool {
	return st.CategoryOf(c) == Character
}

// Characters lists the characters explicitly assigned to cat, in
// increasing order.
func (st *SymbolTable) Characters(cat Category) []rune {
	var res []rune
	for c, cc := range st.special {
		if cc == cat {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
