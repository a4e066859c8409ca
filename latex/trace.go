// trace.go - report the modifications made to the input
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

package latex

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/seehuhn/flatlatex/latex/scanner"
)

// An Event records one modification of the input.
type Event struct {
	Pos     scanner.Position
	Command string
	Snippet string
}

// Display receives the modification events of a run.
type Display interface {
	Header(runID string)
	Event(ev Event)
	Footer(count int)
}

type tablePrinter struct {
	w      io.Writer
	header *color.Color
	pos    *color.Color
}

// NewTablePrinter returns a Display which writes one table row per
// event to w.
func NewTablePrinter(w io.Writer) Display {
	return &tablePrinter{
		w:      w,
		header: color.New(color.Bold),
		pos:    color.New(color.FgCyan),
	}
}

const rowFormat = "%-32s %5s %4s  %s\n"

func (tp *tablePrinter) Header(runID string) {
	tp.header.Fprintf(tp.w, "run %s\n", runID)
	tp.header.Fprintf(tp.w, rowFormat, "FILE", "LINE", "COL", "CODE")
}

func (tp *tablePrinter) Event(ev Event) {
	src := tp.pos.Sprint(fmt.Sprintf("%-32s", ev.Pos.Source))
	fmt.Fprintf(tp.w, "%s %5d %4d  %s\n", src, ev.Pos.Line, ev.Pos.Column, ev.Snippet)
}

func (tp *tablePrinter) Footer(count int) {
	tp.header.Fprintf(tp.w, "%d modification(s)\n", count)
}
