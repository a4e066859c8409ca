// comment.go -
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

// readComment reads the comment character and the rest of the line.
// The terminating newline is left in the input.
func (l *Lexer) readComment() string {
	var parts []byte
	for l.scan.Next() {
		buf := l.scan.Peek()

		pos := 0
		for pos < len(buf) && buf[pos] != '\n' {
			pos++
		}
		parts = append(parts, buf[:pos]...)
		l.scan.Skip(pos)
		if pos < len(buf) {
			break
		}
	}
	return string(parts)
}
