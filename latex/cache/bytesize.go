// bytesize.go - human readable memory sizes for the cache statistics
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

package cache

import "fmt"

// byteSize is a number of bytes, printed with binary prefixes.
type byteSize int64

var sizePrefixes = []string{"", "Ki", "Mi", "Gi", "Ti"}

func (x byteSize) String() string {
	if x < 1024 {
		return fmt.Sprintf("%dB", int64(x))
	}
	val := float64(x)
	i := 0
	for val >= 1024 && i < len(sizePrefixes)-1 {
		val /= 1024
		i++
	}
	return fmt.Sprintf("%.3g%sB", val, sizePrefixes[i])
}
