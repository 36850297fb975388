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
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

func isWord(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
		b = b[size:]
	}
	return false
}

// NextWord returns the offset of the first word that starts after x,
// or -1 if the rest of the line holds no word.
func NextWord(s []byte, x int) int {
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 {
		var word []byte
		word, rest, state = uniseg.FirstWord(rest, state)
		if pos > x && isWord(word) {
			return pos
		}
		pos += len(word)
	}
	return -1
}

// PrevWord returns the offset of the start of the last word that begins
// before x, or -1 if there is none.
func PrevWord(s []byte, x int) int {
	state := -1
	pos := 0
	found := -1
	rest := s
	for len(rest) > 0 && pos < x {
		var word []byte
		word, rest, state = uniseg.FirstWord(rest, state)
		if isWord(word) {
			found = pos
		}
		pos += len(word)
	}
	return found
}
