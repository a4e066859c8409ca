// invocation.go - captured call sites of macros
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
	"github.com/seehuhn/flatlatex/latex/scanner"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

// An Invocation records the tokens of a macro call: the macro name,
// followed by the arguments in the order they were read.  Arguments
// can be given names, so that handlers can replace them later.
type Invocation struct {
	slots []tokenizer.TokenList
	index map[string]int
}

// NewInvocation starts a new invocation with the given name tokens.
func NewInvocation(name ...*tokenizer.Token) *Invocation {
	return &Invocation{
		slots: []tokenizer.TokenList{name},
		index: make(map[string]int),
	}
}

// Append adds an unnamed slot.
func (inv *Invocation) Append(toks tokenizer.TokenList) {
	inv.slots = append(inv.slots, toks)
}

// AppendArgument adds a named slot.
func (inv *Invocation) AppendArgument(name string, toks tokenizer.TokenList) {
	inv.index[name] = len(inv.slots)
	inv.slots = append(inv.slots, toks)
}

// Argument returns the tokens of the named slot, or nil if there is no
// such slot.
func (inv *Invocation) Argument(name string) tokenizer.TokenList {
	idx, ok := inv.index[name]
	if !ok {
		return nil
	}
	return inv.slots[idx]
}

// Substitute replaces the contents of the named slot.  The method
// panics if no slot of this name exists.
func (inv *Invocation) Substitute(name string, toks tokenizer.TokenList) {
	idx, ok := inv.index[name]
	if !ok {
		panic("unknown argument " + name)
	}
	inv.slots[idx] = toks
}

// Name returns the name of the invoked macro, including the leading
// backslash.
func (inv *Invocation) Name() string {
	if len(inv.slots[0]) == 0 {
		return ""
	}
	return inv.slots[0][0].Text
}

// Tokens returns the name tokens followed by all slots.
func (inv *Invocation) Tokens() tokenizer.TokenList {
	var res tokenizer.TokenList
	for _, slot := range inv.slots {
		res = append(res, slot...)
	}
	return res
}

// Text returns the invocation as it appears in the output.
func (inv *Invocation) Text() string {
	return inv.Tokens().String()
}

// Location returns the position of the macro name.
func (inv *Invocation) Location() scanner.Position {
	if len(inv.slots[0]) == 0 {
		return scanner.UnknownPosition
	}
	return inv.slots[0][0].Pos
}
