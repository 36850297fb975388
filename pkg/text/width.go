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

// Package text converts between the three ways a position in a line can
// be expressed: a byte offset into the line's data, a character step, and
// a display column. Tabs advance to the next tab stop, control characters
// are shown as two columns (^X) and wide glyphs take two columns.
// All page and column arithmetic in the editor is done with these
// functions so that it cannot drift.
package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// IsControl reports whether r is displayed in caret notation.
func IsControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// ControlRep returns the character that follows the caret for a control character.
func ControlRep(r rune) rune {
	switch {
	case r == 0x7f:
		return '?'
	case r < 0x20:
		return r + 64
	case r >= 0x80 && r < 0xa0:
		return r - 64
	}
	return r
}

// IsBlank reports whether r is a horizontal blank.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t' || unicode.Is(unicode.Zs, r)
}

// CharWidth returns the number of columns occupied by r when it is not a tab.
func CharWidth(r rune) int {
	if r == utf8.RuneError {
		return 1
	}
	if IsControl(r) {
		return 2
	}
	return runewidth.RuneWidth(r)
}

// advance returns the display column reached after the character at the
// start of s, when that character begins at column col, and the byte length
// of the character.
func advance(s []byte, col, tabsize int) (int, int) {
	r, size := utf8.DecodeRune(s)
	if r == '\t' {
		if tabsize < 1 {
			tabsize = 1
		}
		return col + tabsize - col%tabsize, size
	}
	return col + CharWidth(r), size
}

// Width returns the display width of s[:upto] (strnlenpt).
func Width(s []byte, upto int, tabsize int) int {
	if upto > len(s) {
		upto = len(s)
	}
	col := 0
	for i := 0; i < upto; {
		var size int
		col, size = advance(s[i:], col, tabsize)
		i += size
	}
	return col
}

// StringWidth returns the display width of the whole of s (strlenpt).
func StringWidth(s []byte, tabsize int) int {
	return Width(s, len(s), tabsize)
}

// Offset returns the largest byte offset in s whose display width is not
// greater than column (actual_x). Columns beyond the end clamp to len(s).
func Offset(s []byte, column int, tabsize int) int {
	col := 0
	i := 0
	for i < len(s) {
		next, size := advance(s[i:], col, tabsize)
		if next > column {
			break
		}
		col = next
		i += size
	}
	return i
}

// Left returns the offset of the character before x.
func Left(s []byte, x int) int {
	if x <= 0 {
		return 0
	}
	if x > len(s) {
		x = len(s)
	}
	_, size := utf8.DecodeLastRune(s[:x])
	return x - size
}

// Right returns the offset of the character after x.
func Right(s []byte, x int) int {
	if x >= len(s) {
		return len(s)
	}
	_, size := utf8.DecodeRune(s[x:])
	return x + size
}

// Indentation returns the leading blanks of s.
func Indentation(s []byte) []byte {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRune(s[i:])
		if !IsBlank(r) {
			break
		}
		i += size
	}
	return s[:i]
}
