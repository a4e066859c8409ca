// parser_test.go -
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
	"fmt"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seehuhn/flatlatex/latex/diag"
	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

// testEngine serves files from a map and renames resources by
// replacing "/" with "_".
type testEngine struct {
	files    map[string]string
	only     []string
	paths    []string
	events   []string
	packages map[string]bool
}

func newTestEngine(files map[string]string) *testEngine {
	return &testEngine{files: files}
}

func (e *testEngine) record(inv *Invocation) {
	e.events = append(e.events, inv.Location().String()+" "+inv.Name())
}

func (e *testEngine) ContentOf(link string, inv *Invocation) (string, string, error) {
	e.record(inv)
	if path.Ext(link) == "" {
		link += ".tex"
	}
	text, ok := e.files[link]
	if !ok {
		return "", "", diag.New(diag.TexFileNotFound, inv.Location(), "%s", link)
	}
	return text, link, nil
}

func (e *testEngine) rename(link string) string {
	return strings.ReplaceAll(link, "/", "_")
}

func (e *testEngine) UpdateLinkToGraphic(link string, inv *Invocation) (string, error) {
	e.record(inv)
	if link == "missing" {
		return "", diag.New(diag.GraphicNotFound, inv.Location(), "%s", link)
	}
	return e.rename(link), nil
}

func (e *testEngine) UpdateLinkToSVG(link string, inv *Invocation, svgPath string) (string, error) {
	e.record(inv)
	return e.rename(svgPath + link), nil
}

func (e *testEngine) UpdateLinkToBibliography(link string, inv *Invocation) (string, error) {
	e.record(inv)
	return e.rename(link), nil
}

func (e *testEngine) UpdateLinkToBibliographyStyle(link string, inv *Invocation) (string, error) {
	e.record(inv)
	return e.rename(link), nil
}

func (e *testEngine) UpdateLinkToIndexStyle(link string, inv *Invocation) (string, error) {
	e.record(inv)
	return e.rename(link), nil
}

func (e *testEngine) UpdateLinkToFile(link string, inv *Invocation) (string, error) {
	e.record(inv)
	return e.rename(link), nil
}

func (e *testEngine) RelocateDependency(name string, inv *Invocation) (string, error) {
	e.record(inv)
	if e.packages[name] {
		return e.rename(name), nil
	}
	return "", nil
}

func (e *testEngine) RecordGraphicPath(paths []string, inv *Invocation) {
	e.record(inv)
	e.paths = append(e.paths, paths...)
}

func (e *testEngine) IncludeOnly(selection []string, inv *Invocation) {
	e.record(inv)
	e.only = selection
}

func (e *testEngine) ShallInclude(link string) bool {
	if e.only == nil {
		return true
	}
	for _, name := range e.only {
		if name == link {
			return true
		}
	}
	return false
}

func (e *testEngine) EndOfInput(source string, inv *Invocation) {
	e.record(inv)
}

func rewrite(t *testing.T, e *testEngine, text string) string {
	t.Helper()
	p := New(e, nil)
	res, err := p.RewriteSource(text, "main.tex")
	require.NoError(t, err)
	return res.String()
}

func TestScenarios(t *testing.T) {
	testCases := []struct {
		name  string
		root  string
		files map[string]string
		out   string
	}{
		{
			name:  "simple input",
			root:  "blah \\input{foo} blah",
			files: map[string]string{"foo.tex": "bar"},
			out:   "blah bar blah",
		},
		{
			name: "nested input",
			root: "A \\input{foo} Z",
			files: map[string]string{
				"foo.tex": "B \\input{bar} Y",
				"bar.tex": "blah",
			},
			out: "A B blah Y Z",
		},
		{
			name: "graphics",
			root: "A \\includegraphics[width=3cm]{img/foo} Z",
			out:  "A \\includegraphics[width=3cm]{img_foo} Z",
		},
		{
			name: "include filter",
			root: "\\includeonly{foo,baz}\\include{foo}\\include{bar}\\include{baz}",
			files: map[string]string{
				"foo.tex": "foo",
				"bar.tex": "bar",
				"baz.tex": "baz",
			},
			out: "foo\\clearpage baz\\clearpage ",
		},
		{
			name: "end of input",
			root: "aaa\n\\endinput\nccc",
			out:  "aaa\n",
		},
		{
			name: "subfile",
			root: "\\subfile{part}",
			files: map[string]string{
				"part.tex": "\\documentclass[../main.tex]{subfiles}\\begin{document}Hi\\end{document}",
			},
			out: "Hi",
		},
		{
			name:  "multi-line input",
			root:  "\\input{foo/%\n bar/\n baz}!",
			files: map[string]string{"foo/bar/baz.tex": "X"},
			out:   "X!",
		},
		{
			name:  "input without braces",
			root:  "\\input foo Z",
			files: map[string]string{"foo.tex": "bar"},
			out:   "bar Z",
		},
		{
			name:  "endinput in included file",
			root:  "A\\input{foo}Z",
			files: map[string]string{"foo.tex": "B\\endinput C"},
			out:   "ABZ",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := newTestEngine(testCase.files)
			assert.Equal(t, testCase.out, rewrite(t, e, testCase.root))
		})
	}
}

func TestUnchanged(t *testing.T) {
	testCases := []string{
		"",
		"Hello, world!\n",
		"% comment \\input{foo}\ntext",
		"$\\alpha^2_{i}$ and \\unknown[x]{y} \\\\ ~ & #",
		"\\verb|\\input{foo}| and \\verb*+%+",
		"\\begin{verbatim}\n\\input{foo}\n% x\n\\end{verbatim}",
		"\\begin{comment}\\include{x}\\end{comment}",
		"{\\bf {nested} groups}",
		"\\usepackage[utf8]{inputenc}\\RequirePackage{amsmath,amssymb}",
		"\\documentclass[a4paper]{article}",
		"\\def\\x{\\y}\\x",
		"\\newcommand{\\R}{\\mathbb{R}}\\R",
		"50\\% of \\input",
	}
	for i, text := range testCases {
		e := newTestEngine(nil)
		p := New(e, nil)
		res, err := p.RewriteSource(text, "main.tex")
		if i == len(testCases)-1 {
			// "\input" at the end of the text lacks its argument
			assert.True(t, diag.IsKind(err, diag.EndOfText), "test %d: %v", i, err)
			continue
		}
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, text, res.String(), "test %d", i)
	}
}

func TestRewrites(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"\\includegraphics*[a][b]{x/y}", "\\includegraphics*[a][b]{x_y}"},
		{"\\includegraphics [width={2cm}] {a/b}", "\\includegraphics [width={2cm}] {a_b}"},
		{"\\includegraphics[trim={1 2 3 4}, clip]{dir/img.png}", "\\includegraphics[trim={1 2 3 4}, clip]{dir_img.png}"},
		{"\\includesvg[svgpath={img/}]{foo}", "\\includesvg[svgpath={img/}]{img_foo}"},
		{"\\bibliography{refs/a,refs/b}", "\\bibliography{refs_a,refs_b}"},
		{"\\bibliographystyle{style/my}", "\\bibliographystyle{style_my}"},
		{"\\addbibresource[label=x]{refs/all.bib}", "\\addbibresource[label=x]{refs_all.bib}"},
		{"\\makeindex[options=-s sty/idx.ist]", "\\makeindex[options=-s sty_idx.ist]"},
		{"\\makeindex", "\\makeindex"},
		{"\\usepackage{local/pkg,amsmath}", "\\usepackage{local_pkg,amsmath}"},
		{"\\documentclass{local/pkg}", "\\documentclass{local_pkg}"},
		{"\\begin{overpic}[width=5cm]{fig/a}x\\end{overpic}", "\\begin{overpic}[width=5cm]{fig_a}x\\end{overpic}"},
		{"\\lstinputlisting[language=Go]{src/main.go}", "\\lstinputlisting[language=Go]{src_main.go}"},
		{"\\mbox{\\includegraphics{a/b}}", "\\mbox{\\includegraphics{a_b}}"},
		{"\\def\\logo{\\includegraphics{img/logo}}", "\\def\\logo{\\includegraphics{img_logo}}"},
		{"\\def\\fig#1{\\includegraphics{#1}}\\fig{x}", "\\def\\fig#1{\\includegraphics{#1}}\\fig{x}"},
		{"\\newcommand{\\wrap}[1]{[#1]}\\wrap{\\includegraphics{a/b}}", "\\newcommand{\\wrap}[1]{[#1]}\\wrap{\\includegraphics{a_b}}"},
		{"\\includegraphics[a=[b]]{img/foo}", "\\includegraphics[a=[b]]{img_foo}"},
		{"\\includegraphics[a=[[b]c],d={]}][e]{x/y}", "\\includegraphics[a=[[b]c],d={]}][e]{x_y}"},
		{"\\makeindex[title=idx/style,options=-s idx/style]", "\\makeindex[title=idx/style,options=-s idx_style]"},
		{"\\makeindex[options={-sidx/style}]", "\\makeindex[options={-sidx_style}]"},
		{"\\verb|%| \\includegraphics{a/b}", "\\verb|%| \\includegraphics{a_b}"},
		{"\\lstinline[language=C]!%! \\includegraphics{a/b}", "\\lstinline[language=C]!%! \\includegraphics{a_b}"},
		{"\\includegraphics{my dir/a b}", "\\includegraphics{my dir_a b}"},
	}
	for i, testCase := range testCases {
		e := newTestEngine(nil)
		e.packages = map[string]bool{"local/pkg": true}
		p := New(e, nil)
		res, err := p.RewriteSource(testCase.in, "main.tex")
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, testCase.out, res.String(), "test %d", i)
	}
}

func TestExpandingMacros(t *testing.T) {
	files := map[string]string{
		"ch/one.tex": "first",
		"ch/two.tex": "second",
	}
	testCases := []struct{ in, out string }{
		{"\\def\\chapter#1{\\input{ch/#1}}\\chapter{one}/\\chapter{two}",
			"\\def\\chapter#1{\\input{ch/#1}}first/second"},
		{"\\newcommand{\\ch}[1][one]{(\\input{ch/#1})}\\ch \\ch[two]",
			"\\newcommand{\\ch}[1][one]{(\\input{ch/#1})}(first) (second)"},
		{"\\def\\a{\\input{ch/one}}\\def\\b{[\\a]}\\b",
			"\\def\\a{\\input{ch/one}}\\def\\b{[\\a]}[first]"},
		{"\\def\\dir{ch}\\input{\\dir/two}", "\\def\\dir{ch}second"},
		{"\\def\\pair(#1,#2){\\input{ch/#1}+\\input{ch/#2}}\\pair(one,two)",
			"\\def\\pair(#1,#2){\\input{ch/#1}+\\input{ch/#2}}first+second"},
	}
	for i, testCase := range testCases {
		e := newTestEngine(files)
		assert.Equal(t, testCase.out, rewrite(t, e, testCase.in), "test %d", i)
	}
}

func TestScopes(t *testing.T) {
	files := map[string]string{"a.tex": "A", "b.tex": "B"}
	e := newTestEngine(files)
	in := "\\def\\f{\\input{a}}{\\def\\f{\\input{b}}\\f}\\f"
	out := "\\def\\f{\\input{a}}{\\def\\f{\\input{b}}B}A"
	assert.Equal(t, out, rewrite(t, e, in))

	in = "{\\gdef\\g{\\input{a}}}\\g"
	out = "{\\gdef\\g{\\input{a}}}A"
	assert.Equal(t, out, rewrite(t, newTestEngine(files), in))

	env := NewEnvironment()
	depth := env.Depth()
	_, err := New(e, env).RewriteSource("{{{x}}", "main.tex")
	assert.True(t, diag.IsKind(err, diag.EndOfText))
	assert.Equal(t, depth, env.Depth())
}

func TestMakeAtLetter(t *testing.T) {
	e := newTestEngine(map[string]string{"a.tex": "A"})
	in := "\\makeatletter\\def\\my@in{\\input{a}}\\my@in\\makeatother"
	out := "\\makeatletter\\def\\my@in{\\input{a}}A\\makeatother"
	assert.Equal(t, out, rewrite(t, e, in))
}

func TestSubfileBody(t *testing.T) {
	testCases := []struct {
		name string
		root string
		part string
		out  string
	}{
		{
			name: "verb",
			root: "\\subfile{part}",
			part: "\\documentclass[main]{subfiles}\\begin{document}\\verb|%| \\includegraphics{img/foo}\n\\end{document}",
			out:  "\\verb|%| \\includegraphics{img_foo}\n",
		},
		{
			name: "verbatim",
			root: "\\subfile{part}",
			part: "\\documentclass{subfiles}\\begin{document}\\begin{verbatim}%\\end{verbatim}\\includegraphics{a/b}\\end{document}",
			out:  "\\begin{verbatim}%\\end{verbatim}\\includegraphics{a_b}",
		},
		{
			name: "makeatletter",
			root: "\\subfile{part}",
			part: "\\documentclass{subfiles}\\begin{document}\\makeatletter\\def\\my@in{\\input{a}}\\my@in\\end{document}",
			out:  "\\makeatletter\\def\\my@in{\\input{a}}A",
		},
		{
			name: "trailing text",
			root: "(\\subfile{part})",
			part: "\\documentclass{subfiles}\\begin{document}x\\end{document}\n\\includegraphics{missing}",
			out:  "(x)",
		},
		{
			name: "root uses subfiles",
			root: "\\documentclass[main]{subfiles}\\usepackage{x}\n\\begin{document}\\verb|%| \\includegraphics{img/foo}\n\\end{document}\n\\input{nothere}",
			out:  "\\verb|%| \\includegraphics{img_foo}\n",
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			e := newTestEngine(map[string]string{"part.tex": test.part, "a.tex": "A"})
			assert.Equal(t, test.out, rewrite(t, e, test.root))
		})
	}
}

func TestMacroBodyIsInert(t *testing.T) {
	e := newTestEngine(map[string]string{"a.tex": "A"})
	p := New(e, nil)
	in := "\\newcommand{\\foo}{\\makeatletter\\graphicspath{{img/}}\\includeonly{x}}"
	res, err := p.RewriteSource(in, "main.tex")
	require.NoError(t, err)
	assert.Equal(t, in, res.String())
	assert.False(t, p.Symbols().IsLetter('@'))
	assert.Empty(t, e.paths)
	assert.Nil(t, e.only)

	in = "\\def\\outer{\\gdef\\g{\\includegraphics{a/b}}}\\g"
	res, err = p.RewriteSource(in, "main.tex")
	require.NoError(t, err)
	assert.Equal(t, "\\def\\outer{\\gdef\\g{\\includegraphics{a_b}}}\\g", res.String())
	assert.NotNil(t, p.Env().LookupMacro("\\outer"))
	assert.Nil(t, p.Env().LookupMacro("\\g"))
}

func TestGraphicsPath(t *testing.T) {
	testCases := []struct {
		in    string
		paths []string
	}{
		{"\\graphicspath{{img/}{fig/}}", []string{"img/", "fig/"}},
		{"\\graphicspath{img/, fig/}", []string{"img/", "fig/"}},
		{"\\graphicspath{ {img/} }", []string{"img/"}},
	}
	for i, testCase := range testCases {
		e := newTestEngine(nil)
		assert.Equal(t, testCase.in, rewrite(t, e, testCase.in), "test %d", i)
		assert.Equal(t, testCase.paths, e.paths, "test %d", i)
	}
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		in   string
		kind diag.Kind
	}{
		{"\\input{nothere}", diag.TexFileNotFound},
		{"\\includegraphics{missing}", diag.GraphicNotFound},
		{"\\includegraphics x", diag.UnexpectedToken},
		{"\\begin{verbatim} no end", diag.EndOfText},
		{"\\verb|abc", diag.EndOfText},
		{"\\verb|abc\n|", diag.EndOfText},
		{"\\lstinline|abc\n|", diag.EndOfText},
		{"\\def\\p(#1){#1}\\p[x]", diag.UnexpectedToken},
		{"\\def\\loop{\\input{a}\\loop}\\loop", diag.UnexpectedToken},
		{"\\input{self}", diag.UnexpectedToken},
	}
	for i, testCase := range testCases {
		e := newTestEngine(map[string]string{"a.tex": "", "self.tex": "\\input{self}"})
		_, err := New(e, nil).RewriteSource(testCase.in, "main.tex")
		require.Error(t, err, "test %d", i)
		assert.True(t, diag.IsKind(err, testCase.kind), "test %d: %v", i, err)
	}
}

func TestEvaluate(t *testing.T) {
	p := New(newTestEngine(nil), nil)
	_, err := p.RewriteSource("\\def\\dir{img}\\def\\sub#1{#1/x}", "main.tex")
	require.NoError(t, err)

	texts := []struct {
		in, out string
	}{
		{"{\\sub{\\dir}/y}", "img/x/y"},
		{"{my file}", "my file"},
		{"{ a/%\n   b/\n  c }", "a/b/c"},
		{"{x \n y}", "xy"},
	}
	for _, test := range texts {
		text, err := p.EvaluateText(tokenizer.Lex(test.in, "arg"))
		require.NoError(t, err)
		assert.Equal(t, test.out, text, test.in)
	}

	_, err = p.EvaluateText(tokenizer.Lex("{#1}", "arg"))
	assert.True(t, diag.IsKind(err, diag.UndefinedSymbol))

	_, ok, err := p.tryEvaluate(tokenizer.Lex("{#1}", "arg"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSubstitute(t *testing.T) {
	testCases := []struct {
		body     string
		args     []string
		expected string
	}{
		{" abc ", nil, " abc "},
		{"xxx#1zzz", []string{"yyy"}, "xxxyyyzzz"},
		{"#1#2#3###5", []string{"1", "2", "3", "4", "5"}, "123#5"},
		{"\\def\\x##1{##1#1}", []string{"a"}, "\\def\\x#1{#1a}"},
		{"#2", []string{"a"}, "#2"},
	}

	for i, testCase := range testCases {
		env := NewEnvironment()
		env.OpenScope()
		for j, arg := range testCase.args {
			env.Bind(fmt.Sprintf("#%d", j+1), tokenizer.Lex(arg, "arg"))
		}
		got := substitute(env, tokenizer.Lex(testCase.body, "body")).String()
		if got != testCase.expected {
			t.Error("test case", i, "failed, got", got, "expected",
				testCase.expected)
		}
		env.CloseScope()
	}
}

func TestClassify(t *testing.T) {
	env := NewEnvironment()
	assert.True(t, classify(env, tokenizer.Lex("x\\input{y}", "t")))
	assert.True(t, classify(env, tokenizer.Lex("\\subfile{y}", "t")))
	assert.False(t, classify(env, tokenizer.Lex("\\includegraphics{y}", "t")))
	assert.False(t, classify(env, tokenizer.Lex("\\undefined", "t")))

	env.Define("\\inp", &UserMacro{Name: "\\inp", Expands: true})
	assert.True(t, classify(env, tokenizer.Lex("\\inp", "t")))

	env.Define("\\input", &UserMacro{Name: "\\input"})
	assert.False(t, classify(env, tokenizer.Lex("\\input{x}", "t")))
}
