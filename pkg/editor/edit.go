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
	"bytes"
	"unicode/utf8"

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/text"
)

func here(b *Buffer) Position {
	return Position{Line: b.current.Number, X: b.currentX}
}

// InsertChar types a character at the cursor.
func (e *Editor) InsertChar(c rune) {
	e.InsertText(string(c))
}

// InsertText types text at the cursor. Newlines break the line.
func (e *Editor) InsertText(s string) {
	e.begin(true, false)
	b := e.Buffer()
	var buf [utf8.UTFMax]byte
	for _, c := range s {
		if c == '\n' {
			e.enter(b)
			continue
		}
		n := utf8.EncodeRune(buf[:], c)
		e.insert(b, buf[:n])
	}
}

// Tab types a tab, or spaces to the next tab stop.
func (e *Editor) Tab() {
	e.begin(true, false)
	b := e.Buffer()
	if e.config.TabsToSpaces {
		n := e.config.TabSize - b.xplustabs(e.config.TabSize)%e.config.TabSize
		e.insert(b, bytes.Repeat([]byte(" "), n))
		return
	}
	e.insert(b, []byte("\t"))
}

func (e *Editor) insert(b *Buffer, s []byte) {
	l, x := b.current, b.currentX
	before := here(b)
	b.insertBytes(l, x, s)
	b.currentX += len(s)
	magic := b.ensureMagic(e.config.NoNewlines)
	after := here(b)
	if r, ok := b.undo.last().(*AddRecord); ok && r.At.Line == l.Number && r.At.X+len(r.Text) == x && !magic {
		r.Text = append(r.Text, s...)
		r.After = after
	} else {
		b.undo.push(&AddRecord{
			cursors: cursors{Before: before, After: after},
			At:      before,
			Text:    append([]byte(nil), s...),
			Magic:   magic,
		})
	}
	b.placewewant = b.xplustabs(e.config.TabSize)
	wrapped := e.config.HardWrap && e.wrap(b, l)
	e.edited(b, l, wrapped || magic)
}

// edited schedules the screen update after a change to line l.
func (e *Editor) edited(b *Buffer, l *lines.Line, structural bool) {
	if b.resetMultis(l, structural) || structural || e.config.SoftWrap {
		e.window.refreshNeeded = true
		return
	}
	if !e.window.refreshNeeded {
		e.window.updateLine(b, b.current, b.currentX)
	}
}

// Delete removes the character under the cursor. At the end of a line it
// joins the next line to this one.
func (e *Editor) Delete() {
	e.begin(false, false)
	b := e.Buffer()
	e.delete(b, false, here(b))
}

// Backspace removes the character before the cursor.
func (e *Editor) Backspace() {
	e.begin(false, false)
	b := e.Buffer()
	before := here(b)
	old, oldPWW := b.current, b.placewewant
	if b.currentX > 0 {
		b.currentX = text.Left(b.current.Data, b.currentX)
	} else if prev := b.current.Prev(); prev != nil {
		b.current = prev
		b.currentX = len(prev.Data)
	} else {
		return
	}
	b.placewewant = b.xplustabs(e.config.TabSize)
	if !e.delete(b, true, before) {
		e.window.follow(b, old, oldPWW, false)
	}
}

// delete removes the character at the cursor and records it, extending
// the previous deletion when it goes the same way. It reports whether
// anything was removed.
func (e *Editor) delete(b *Buffer, backspace bool, before Position) bool {
	l, x := b.current, b.currentX
	if x < len(l.Data) {
		n := text.Right(l.Data, x) - x
		removed := b.removeBytes(l, x, n)
		after := here(b)
		r, ok := b.undo.last().(*DeleteRecord)
		switch {
		case ok && !backspace && !r.Backspace && r.At.Line == l.Number && r.At.X == x:
			r.Text = append(r.Text, removed...)
			r.After = after
		case ok && backspace && r.Backspace && r.At.Line == l.Number && x+n == r.At.X:
			r.Text = append(removed, r.Text...)
			r.At.X = x
			r.After = after
		default:
			b.undo.push(&DeleteRecord{
				cursors:   cursors{Before: before, After: after},
				At:        after,
				Text:      removed,
				Backspace: backspace,
			})
		}
		b.placewewant = b.xplustabs(e.config.TabSize)
		e.edited(b, l, false)
		return true
	}
	next := l.Next()
	if next == nil {
		return false
	}
	// the final line break stays while the magic line is kept
	if next == b.lines.Bot && len(next.Data) == 0 && len(l.Data) > 0 && !e.config.NoNewlines {
		return false
	}
	b.joinLine(l)
	at := Position{Line: l.Number, X: x}
	b.undo.push(&UnsplitRecord{
		cursors:   cursors{Before: before, After: at},
		At:        at,
		Backspace: backspace,
	})
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.edited(b, l, true)
	return true
}

// Enter breaks the line at the cursor. With auto-indent the new line
// starts with the indentation of the old one.
func (e *Editor) Enter() {
	e.begin(false, false)
	e.enter(e.Buffer())
}

func (e *Editor) enter(b *Buffer) {
	l, x := b.current, b.currentX
	var indent []byte
	if e.config.AutoIndent {
		indent = text.Indentation(l.Data)
		if len(indent) > x {
			indent = indent[:x]
		}
		indent = append([]byte(nil), indent...)
	}
	before := here(b)
	nl := b.splitLine(l, x, indent)
	b.current = nl
	b.currentX = len(indent)
	b.undo.push(&EnterRecord{
		cursors: cursors{Before: before, After: here(b)},
		At:      before,
		Indent:  indent,
	})
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.edited(b, l, true)
}

// Indent adds a tab to the start of the current line, or of every marked
// line that is not empty.
func (e *Editor) Indent() {
	e.indent(false)
}

// Unindent removes one tab's worth of indentation from the current line
// or the marked lines.
func (e *Editor) Unindent() {
	e.indent(true)
}

func (e *Editor) indent(unindent bool) {
	e.begin(false, false)
	b := e.Buffer()
	top, bot := b.current, b.current
	if t, _, bt, btX, ok := b.markRegion(); ok {
		top, bot = t, bt
		if btX == 0 && bt != t {
			bot = bt.Prev()
		}
	}
	tabsize := e.config.TabSize
	unit := []byte("\t")
	if e.config.TabsToSpaces {
		unit = bytes.Repeat([]byte(" "), tabsize)
	}
	before := here(b)
	var prefixes [][]byte
	changed := false
	err := e.withPartition(b, top, 0, bot, len(bot.Data), func() error {
		for l := b.lines.Top; l != nil; l = l.Next() {
			var prefix []byte
			switch {
			case unindent:
				if n := unindentLength(l.Data, tabsize); n > 0 {
					prefix = b.removeBytes(l, 0, n)
				}
			case len(l.Data) > 0:
				prefix = append([]byte(nil), unit...)
				b.insertBytes(l, 0, prefix)
			}
			if l == b.current && len(prefix) > 0 {
				if unindent {
					b.currentX -= len(prefix)
					if b.currentX < 0 {
						b.currentX = 0
					}
				} else {
					b.currentX += len(prefix)
				}
			}
			if len(prefix) > 0 {
				changed = true
				l.Multidata = nil
			}
			prefixes = append(prefixes, prefix)
		}
		return nil
	})
	if err != nil {
		e.report(err)
		return
	}
	if !changed {
		return
	}
	b.undo.push(&IndentRecord{
		cursors:  cursors{Before: before, After: here(b)},
		Top:      top.Number,
		Prefixes: prefixes,
		Unindent: unindent,
	})
	b.placewewant = b.xplustabs(tabsize)
	b.resetMultis(top, true)
	e.window.refreshNeeded = true
}

// unindentLength returns the length of the indentation that one unindent
// removes: a tab, or up to a tab's width of spaces.
func unindentLength(data []byte, tabsize int) int {
	n := 0
	for n < len(data) && n < tabsize && data[n] == ' ' {
		n++
	}
	if n < len(data) && n < tabsize && data[n] == '\t' {
		n++
	}
	return n
}
