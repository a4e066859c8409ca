// environment.go - macro definitions with lexical scopes
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
	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

type scope struct {
	macros       map[string]Macro
	environments map[string]EnvironmentHandler
	bindings     map[string]tokenizer.TokenList
}

func newScope() *scope {
	return &scope{
		macros:       make(map[string]Macro),
		environments: make(map[string]EnvironmentHandler),
		bindings:     make(map[string]tokenizer.TokenList),
	}
}

// An Environment maps macro names to definitions.  Definitions are
// organised in nested scopes: lookups search from the innermost scope
// outwards, new definitions go into the innermost scope.
//
// The two outermost scopes are never closed.  The first holds the
// built-in macros, the second holds global user definitions.
type Environment struct {
	scopes  *arraystack.Stack[*scope]
	builtin *scope
	global  *scope
}

// NewEnvironment returns an environment which contains all built-in
// macros and environments.
func NewEnvironment() *Environment {
	env := &Environment{
		scopes:  arraystack.New[*scope](),
		builtin: newScope(),
		global:  newScope(),
	}
	env.scopes.Push(env.builtin)
	env.scopes.Push(env.global)
	env.addBuiltinMacros()
	return env
}

// OpenScope starts a new, empty scope.
func (env *Environment) OpenScope() {
	env.scopes.Push(newScope())
}

// CloseScope discards the innermost scope, together with all
// definitions made in it.
func (env *Environment) CloseScope() {
	if env.scopes.Size() <= 2 {
		panic("unbalanced scopes")
	}
	env.scopes.Pop()
}

// Depth returns the number of open scopes.
func (env *Environment) Depth() int {
	return env.scopes.Size()
}

func (env *Environment) top() *scope {
	s, _ := env.scopes.Peek()
	return s
}

// Define adds a macro to the innermost scope.
func (env *Environment) Define(name string, m Macro) {
	env.top().macros[name] = m
}

// DefineGlobal adds a macro to the outermost user scope.
func (env *Environment) DefineGlobal(name string, m Macro) {
	env.global.macros[name] = m
}

// LookupMacro returns the definition of the named macro, or nil if
// the macro is undefined.
func (env *Environment) LookupMacro(name string) Macro {
	it := env.scopes.Iterator()
	for it.Next() {
		if m, ok := it.Value().macros[name]; ok {
			return m
		}
	}
	return nil
}

// IsBuiltin checks whether name refers to a built-in macro which has
// not been redefined.
func (env *Environment) IsBuiltin(name string) bool {
	it := env.scopes.Iterator()
	for it.Next() {
		if _, ok := it.Value().macros[name]; ok {
			return it.Value() == env.builtin
		}
	}
	return false
}

// DefineEnvironment adds an environment handler to the innermost scope.
func (env *Environment) DefineEnvironment(name string, h EnvironmentHandler) {
	env.top().environments[name] = h
}

// LookupEnvironment returns the handler for the named environment,
// or nil if no handler is defined.
func (env *Environment) LookupEnvironment(name string) EnvironmentHandler {
	it := env.scopes.Iterator()
	for it.Next() {
		if h, ok := it.Value().environments[name]; ok {
			return h
		}
	}
	return nil
}

// Bind assigns a value to a macro parameter like "#1" in the
// innermost scope.
func (env *Environment) Bind(param string, value tokenizer.TokenList) {
	env.top().bindings[param] = value
}

// Binding returns the value bound to a macro parameter.
func (env *Environment) Binding(param string) (tokenizer.TokenList, bool) {
	it := env.scopes.Iterator()
	for it.Next() {
		if val, ok := it.Value().bindings[param]; ok {
			return val, true
		}
	}
	return nil, false
}
