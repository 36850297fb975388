//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package text

import (
	"unicode/utf8"
)

// A Glyph is one screen cell produced from a line.
// Ch is zero for the right half of a wide glyph.
type Glyph struct {
	Ch   rune
	Byte int // offset of the character that produced this cell
}

// Expand converts s into the glyphs visible in the display columns
// [start, start+cols) (display_string). Tabs become spaces and control
// characters become caret pairs. A wide glyph that is cut by either edge
// of the window is shown as a space.
func Expand(s []byte, start, cols, tabsize int) []Glyph {
	glyphs := make([]Glyph, 0, cols)
	end := start + cols
	col := 0
	for i := 0; i < len(s) && col < end; {
		r, size := utf8.DecodeRune(s[i:])
		next, _ := advance(s[i:], col, tabsize)
		switch {
		case r == '\t':
			for c := col; c < next; c++ {
				if c >= start && c < end {
					glyphs = append(glyphs, Glyph{Ch: ' ', Byte: i})
				}
			}
		case IsControl(r):
			if col >= start && col < end {
				glyphs = append(glyphs, Glyph{Ch: '^', Byte: i})
			}
			if col+1 >= start && col+1 < end {
				glyphs = append(glyphs, Glyph{Ch: ControlRep(r), Byte: i})
			}
		case next-col == 2:
			if col >= start && next <= end {
				glyphs = append(glyphs, Glyph{Ch: r, Byte: i}, Glyph{Ch: 0, Byte: i})
			} else {
				for c := col; c < next; c++ {
					if c >= start && c < end {
						glyphs = append(glyphs, Glyph{Ch: ' ', Byte: i})
					}
				}
			}
		case next == col:
			// zero-width characters combine with the glyph before them
		default:
			if col >= start {
				glyphs = append(glyphs, Glyph{Ch: r, Byte: i})
			}
		}
		col = next
		i += size
	}
	return glyphs
}
