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

package editor

import (
	"unicode/utf8"

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/text"
)

// breakPoint returns the offset at which a line wider than fill is
// broken, just after a blank. It prefers the last blank that starts at
// or before the fill column, then the first blank after it, and without
// any blank it breaks at the fill column. Blanks of the leading
// indentation are not break points. It returns -1 if the line fits.
func breakPoint(data []byte, fill, tabsize int) int {
	indent := len(text.Indentation(data))
	blank := -1
	col := 0
	i := 0
	for i < len(data) && col <= fill {
		r, size := utf8.DecodeRune(data[i:])
		if text.IsBlank(r) && i >= indent {
			blank = i
		}
		if r == '\t' {
			col += tabsize - col%tabsize
		} else {
			col += text.CharWidth(r)
		}
		i += size
	}
	if i == len(data) && col <= fill {
		return -1
	}
	if blank < 0 {
		for i < len(data) {
			r, size := utf8.DecodeRune(data[i:])
			if text.IsBlank(r) && i >= indent {
				blank = i
				break
			}
			i += size
		}
	}
	if blank < 0 {
		at := text.Offset(data, fill, tabsize)
		if at == 0 {
			at = text.Right(data, 0)
		}
		return at
	}
	// a run of blanks stays on the first line
	for {
		_, size := utf8.DecodeRune(data[blank:])
		next := blank + size
		if next >= len(data) {
			break
		}
		r, _ := utf8.DecodeRune(data[next:])
		if !text.IsBlank(r) {
			break
		}
		blank = next
	}
	_, size := utf8.DecodeRune(data[blank:])
	return blank + size
}

// wrap breaks l if it is wider than the fill column. Right after a wrap
// the broken-off text goes to the front of the next line when it fits
// there, so that a paragraph being typed keeps flowing.
func (e *Editor) wrap(b *Buffer, l *lines.Line) bool {
	tabsize := e.config.TabSize
	fill := e.config.WrapColumn(e.window.cols)
	if text.StringWidth(l.Data, tabsize) <= fill {
		return false
	}
	at := breakPoint(l.Data, fill, tabsize)
	if at <= len(text.Indentation(l.Data)) || at >= len(l.Data) {
		return false
	}
	before := here(b)
	moved := append([]byte(nil), l.Data[at:]...)
	r := &SplitRecord{At: Position{Line: l.Number, X: at}, Text: moved}
	next := l.Next()
	if e.prependWrap && next != nil && len(next.Data) > 0 {
		var joiner []byte
		if last, _ := utf8.DecodeLastRune(moved); !text.IsBlank(last) {
			joiner = []byte(" ")
		}
		prefix := append(append([]byte(nil), moved...), joiner...)
		combined := append(append([]byte(nil), prefix...), next.Data...)
		if text.StringWidth(combined, tabsize) <= fill {
			b.removeBytes(l, at, len(moved))
			b.insertBytes(next, 0, prefix)
			r.Prepended = true
			r.Joiner = joiner
			if b.current == l && b.currentX >= at {
				b.current = next
				b.currentX -= at
			}
		}
	}
	if !r.Prepended {
		var indent []byte
		if e.config.AutoIndent {
			indent = append([]byte(nil), text.Indentation(l.Data)...)
			if len(indent) >= at {
				indent = nil
			}
		}
		nl := b.splitLine(l, at, indent)
		r.Indent = indent
		if b.current == l && b.currentX >= at {
			b.current = nl
			b.currentX += len(indent) - at
		}
	}
	r.cursors = cursors{Before: before, After: here(b)}
	b.undo.push(r)
	e.prependWrap = true
	b.placewewant = b.xplustabs(tabsize)
	return true
}
