// macros.go -
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

package parser

import (
	"sort"
	"strconv"

	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

type pkgInitFunc func(env *Environment)

var pkgInit map[string]pkgInitFunc

// addPackage registers the macros provided by a LaTeX package.  All
// registered packages are loaded into every new Environment, since the
// rewritten commands must be recognised before the corresponding
// \usepackage is seen, for example in included class files.
func addPackage(name string, init pkgInitFunc) {
	if pkgInit == nil {
		pkgInit = make(map[string]pkgInitFunc)
	}
	pkgInit[name] = init
}

// Macro is the interface implemented by all macro definitions.
// Rewrite is called after the macro name has been read; the handler
// reads its arguments from the parser and returns the tokens to emit.
type Macro interface {
	Rewrite(p *Parser, inv *Invocation) (tokenizer.TokenList, error)
}

type macroFunc func(p *Parser, inv *Invocation) (tokenizer.TokenList, error)

func (mf macroFunc) Rewrite(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	return mf(p, inv)
}

func (env *Environment) addBuiltinMacros() {
	m := env.builtin.macros
	m["\\input"] = macroFunc(parseInput)
	m["\\include"] = macroFunc(parseInclude)
	m["\\includeonly"] = macroFunc(parseIncludeonly)
	m["\\endinput"] = macroFunc(parseEndinput)
	m["\\documentclass"] = macroFunc(parseDocumentclass)
	m["\\usepackage"] = macroFunc(parseUsepackage)
	m["\\RequirePackage"] = macroFunc(parseUsepackage)
	m["\\bibliography"] = macroFunc(parseBibliography)
	m["\\bibliographystyle"] = macroFunc(parseBibliographystyle)
	m["\\begin"] = macroFunc(parseBegin)

	m["\\def"] = macroFunc(parseDef)
	m["\\gdef"] = macroFunc(parseDef)
	m["\\newcommand"] = macroFunc(parseNewcommand)
	m["\\renewcommand"] = macroFunc(parseNewcommand)
	m["\\providecommand"] = macroFunc(parseNewcommand)
	m["\\verb"] = macroFunc(parseVerb)
	m["\\makeatletter"] = macroFunc(parseMakeat)
	m["\\makeatother"] = macroFunc(parseMakeat)

	env.builtin.environments["verbatim"] = verbatimEnv("verbatim")
	env.builtin.environments["verbatim*"] = verbatimEnv("verbatim*")

	var names []string
	for name := range pkgInit {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pkgInit[name](env)
	}
}

// expansionClass lists the built-in macros which insert the contents
// of other files.  User macros using them are expanded.
var expansionClass = map[string]bool{
	"\\input":   true,
	"\\include": true,
	"\\subfile": true,
}

// classify decides whether a user macro with the given body must be
// expanded.  This is the case if the body uses one of the macros in
// expansionClass, either directly or via another user macro which
// needs expansion.  Names which are not defined are assumed not to
// need expansion.
func classify(env *Environment, body tokenizer.TokenList) bool {
	for _, tok := range body {
		if !tok.IsCommand() {
			continue
		}
		if expansionClass[tok.Text] && env.IsBuiltin(tok.Text) {
			return true
		}
		if um, ok := env.LookupMacro(tok.Text).(*UserMacro); ok && um.Expands {
			return true
		}
	}
	return false
}

// A UserMacro is a macro defined in the input, using \def or one of
// the LaTeX variants.
type UserMacro struct {
	Name string

	// Signature is the parameter text of \def, for example "#1#2" or
	// "(#1,#2)".
	Signature tokenizer.TokenList

	Body tokenizer.TokenList

	// Default, if not nil, is the value of the optional first
	// argument of a macro defined by \newcommand.
	Default tokenizer.TokenList

	// Expands is set if invocations of the macro are replaced by the
	// macro body.
	Expands bool
}

// Rewrite implements the Macro interface.
func (um *UserMacro) Rewrite(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	args, err := um.readArgs(p, inv)
	if err != nil {
		return nil, err
	}

	if !p.evaluate && !um.Expands {
		for i := range args {
			name := "#" + strconv.Itoa(i+1)
			arg := inv.Argument(name)
			if arg == nil {
				continue
			}
			out, err := p.RewriteTokens(arg)
			if err != nil {
				return nil, err
			}
			inv.Substitute(name, out)
		}
		return inv.Tokens(), nil
	}

	err = p.countExpansion(inv.Location(), um.Name)
	if err != nil {
		return nil, err
	}
	p.env.OpenScope()
	for i, arg := range args {
		p.env.Bind("#"+strconv.Itoa(i+1), arg)
	}
	body := substitute(p.env, um.Body)
	p.env.CloseScope()

	p.stream.PushBack(body)
	return nil, nil
}

// readArgs reads the arguments of an invocation, following the macro
// signature.  The returned values are the arguments with outer braces
// removed.  The tokens as they appear in the input are stored in inv.
func (um *UserMacro) readArgs(p *Parser, inv *Invocation) ([]tokenizer.TokenList, error) {
	var args []tokenizer.TokenList
	sig := um.Signature
	for i := 0; i < len(sig); i++ {
		tok := sig[i]
		name := "#" + strconv.Itoa(len(args)+1)

		if tok.IsIgnored() {
			continue
		}
		if !tok.IsParameter() {
			next := p.stream.Take()
			if next.Text != tok.Text {
				if next.IsEnd() {
					return nil, p.endOfText("use of " + um.Name + " does not match its definition")
				}
				return nil, unexpected(next, "use of %s does not match its definition", um.Name)
			}
			inv.Append(tokenizer.TokenList{next})
			continue
		}

		if len(args) == 0 && um.Default != nil {
			opt, err := p.ReadOptions("[", "]")
			if err != nil {
				return nil, err
			}
			inv.AppendArgument(name, opt)
			if opt == nil {
				args = append(args, um.Default)
			} else {
				args = append(args, stripDelimiters(opt))
			}
			continue
		}

		if i+1 < len(sig) && !sig[i+1].IsParameter() && !sig[i+1].IsIgnored() {
			// delimited parameter
			delim := sig[i+1]
			var arg tokenizer.TokenList
			depth := 0
			for {
				next := p.stream.LookAhead()
				if next.IsEnd() {
					return nil, p.endOfText("missing " + delim.Text + " after argument of " + um.Name)
				}
				if depth == 0 && next.Text == delim.Text {
					break
				}
				if next.BeginsGroup() {
					depth++
				} else if next.EndsGroup() {
					depth--
				}
				arg = append(arg, p.stream.Take())
			}
			inv.AppendArgument(name, arg)
			if arg.IsGroup() {
				arg = arg.StripGroup()
			}
			args = append(args, arg)
			continue
		}

		arg, err := p.ReadOne()
		if err != nil {
			return nil, err
		}
		inv.AppendArgument(name, arg)
		args = append(args, arg.StripGroup())
	}
	return args, nil
}

// substitute replaces the parameters in body by the values bound in
// env.  A doubled parameter character "##" becomes a single one, so
// that nested definitions receive their own parameters.  Parameters
// without a value are kept.
func substitute(env *Environment, body tokenizer.TokenList) tokenizer.TokenList {
	var res tokenizer.TokenList
	for i := 0; i < len(body); i++ {
		tok := body[i]
		if !tok.IsParameter() {
			res = append(res, tok)
			continue
		}
		if tok.Text == "#" && i+1 < len(body) && body[i+1].IsParameter() {
			i++
			res = append(res, body[i])
			continue
		}
		if val, ok := env.Binding(tok.Text); ok {
			res = append(res, val...)
		} else {
			res = append(res, tok)
		}
	}
	return res
}

// parseDef handles \def and \gdef.  The new macro is stored, and the
// definition is copied to the output.  Unless the macro needs
// expansion, file references in the body are rewritten.
func parseDef(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	name, err := p.ReadMacroName("")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("name", name)
	sig, err := p.ReadUntilGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("signature", sig)
	body, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("body", body)

	um := &UserMacro{
		Name:      name.Trim().String(),
		Signature: sig[len(sig.Leading()):],
		Body:      body.StripGroup(),
	}
	um.Expands = classify(p.env, um.Body)
	if inv.Name() == "\\gdef" && !p.inMacroBody() {
		p.env.DefineGlobal(um.Name, um)
	} else {
		p.env.Define(um.Name, um)
	}

	if !um.Expands {
		inv.Substitute("body", p.rewriteBody(body))
	}
	return inv.Tokens(), nil
}

// rewriteBody rewrites the file references in a macro body.  If this
// fails, the body is returned unchanged.
func (p *Parser) rewriteBody(body tokenizer.TokenList) tokenizer.TokenList {
	lead := body.Leading()
	inner := body[len(lead)+1 : len(body)-1]

	p.env.OpenScope()
	p.bodies++
	out, err := p.RewriteTokens(inner)
	p.bodies--
	p.env.CloseScope()
	if err != nil {
		return body
	}

	res := lead.Copy()
	res = append(res, body[len(lead)])
	res = append(res, out...)
	return append(res, body[len(body)-1])
}

// parseNewcommand handles \newcommand, \renewcommand and
// \providecommand, with arguments {\name}[n][default]{body}.
func parseNewcommand(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	inv.Append(p.ReadStar())
	name, err := p.ReadOne()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("name", name)
	count, err := p.ReadOptions("[", "]")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("count", count)
	def, err := p.ReadOptions("[", "]")
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("default", def)
	body, err := p.ReadGroup()
	if err != nil {
		return nil, err
	}
	inv.AppendArgument("body", body)

	macroName := name.StripGroup().Trim().String()
	n := 0
	if count != nil {
		text, ok, err := p.tryEvaluate(stripDelimiters(count))
		if err != nil {
			return nil, err
		}
		if ok {
			n, err = strconv.Atoi(text)
			if err != nil || n < 0 || n > 9 {
				return nil, diag.New(diag.UnexpectedToken, inv.Location(),
					"invalid number of arguments %q", text).WithSnippet(inv.Text())
			}
		}
	}

	um := &UserMacro{
		Name: macroName,
		Body: body.StripGroup(),
	}
	for i := 1; i <= n; i++ {
		um.Signature = append(um.Signature,
			tokenizer.NewToken(tokenizer.Parameter, "#"+strconv.Itoa(i)))
	}
	if def != nil && n > 0 {
		um.Default = stripDelimiters(def)
	}
	um.Expands = classify(p.env, um.Body)

	if inv.Name() != "\\providecommand" || p.env.LookupMacro(macroName) == nil {
		p.env.Define(macroName, um)
	}

	if !um.Expands {
		inv.Substitute("body", p.rewriteBody(body))
	}
	return inv.Tokens(), nil
}

// parseVerb copies \verb|...| without interpreting the characters
// between the delimiters.
func parseVerb(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	arg, err := p.readVerbatim(inv)
	if err != nil {
		return nil, err
	}
	inv.Append(arg)
	return inv.Tokens(), nil
}

// readVerbatim reads a delimited argument like the one of \verb.  The
// closing delimiter must be on the same line.
func (p *Parser) readVerbatim(inv *Invocation) (tokenizer.TokenList, error) {
	arg, ok := p.stream.ReadVerbatim()
	if !ok {
		return nil, diag.New(diag.EndOfText, inv.Location(),
			"unterminated %s", inv.Name()).WithSnippet(inv.Text() + arg.String())
	}
	return arg, nil
}

// parseMakeat handles \makeatletter and \makeatother.
func parseMakeat(p *Parser, inv *Invocation) (tokenizer.TokenList, error) {
	if p.inMacroBody() {
		return inv.Tokens(), nil
	}
	if inv.Name() == "\\makeatletter" {
		p.symbols.Assign(tokenizer.Character, '@')
	} else {
		p.symbols.Assign(tokenizer.Others, '@')
	}
	return inv.Tokens(), nil
}
