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
	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/text"
	"github.com/timburks/pinot/pkg/types"
)

// moveTo places the cursor and updates the view. vertical motions keep
// the wanted column; the others reset it.
func (e *Editor) moveTo(l *lines.Line, x int, vertical bool) {
	b := e.Buffer()
	old, oldPWW := b.current, b.placewewant
	down := l.Number > old.Number || (l == old && x > b.currentX)
	b.current = l
	b.currentX = x
	if !vertical {
		b.placewewant = b.xplustabs(e.config.TabSize)
	}
	e.window.follow(b, old, oldPWW, down)
}

func (e *Editor) wanted(l *lines.Line) int {
	return text.Offset(l.Data, e.Buffer().placewewant, e.config.TabSize)
}

func (e *Editor) MoveLeft() {
	e.begin(false, false)
	b := e.Buffer()
	switch {
	case b.currentX > 0:
		e.moveTo(b.current, text.Left(b.current.Data, b.currentX), false)
	case b.current.Prev() != nil:
		p := b.current.Prev()
		e.moveTo(p, len(p.Data), false)
	}
}

func (e *Editor) MoveRight() {
	e.begin(false, false)
	b := e.Buffer()
	switch {
	case b.currentX < len(b.current.Data):
		e.moveTo(b.current, text.Right(b.current.Data, b.currentX), false)
	case b.current.Next() != nil:
		e.moveTo(b.current.Next(), 0, false)
	}
}

func (e *Editor) MoveUp() {
	e.begin(false, false)
	if p := e.Buffer().current.Prev(); p != nil {
		e.moveTo(p, e.wanted(p), true)
	}
}

func (e *Editor) MoveDown() {
	e.begin(false, false)
	if n := e.Buffer().current.Next(); n != nil {
		e.moveTo(n, e.wanted(n), true)
	}
}

// MoveHome goes to the start of the line, or to the end of its
// indentation when already at the start.
func (e *Editor) MoveHome() {
	e.begin(false, false)
	b := e.Buffer()
	x := 0
	if b.currentX == 0 {
		x = len(text.Indentation(b.current.Data))
	}
	e.moveTo(b.current, x, false)
}

func (e *Editor) MoveEnd() {
	e.begin(false, false)
	b := e.Buffer()
	e.moveTo(b.current, len(b.current.Data), false)
}

// NextWord moves to the start of the next word, crossing lines.
func (e *Editor) NextWord() {
	e.begin(false, false)
	b := e.Buffer()
	l, x := b.current, b.currentX
	for l != nil {
		if n := text.NextWord(l.Data, x); n >= 0 {
			e.moveTo(l, n, false)
			return
		}
		l, x = l.Next(), -1
	}
	e.moveTo(b.lines.Bot, len(b.lines.Bot.Data), false)
}

// PrevWord moves to the start of the word before the cursor.
func (e *Editor) PrevWord() {
	e.begin(false, false)
	b := e.Buffer()
	l, x := b.current, b.currentX
	for l != nil {
		if n := text.PrevWord(l.Data, x); n >= 0 {
			e.moveTo(l, n, false)
			return
		}
		l = l.Prev()
		if l != nil {
			x = len(l.Data) + 1
		}
	}
	e.moveTo(b.lines.Top, 0, false)
}

func (e *Editor) FirstLine() {
	e.begin(false, false)
	e.moveTo(e.Buffer().lines.Top, 0, false)
}

func (e *Editor) LastLine() {
	e.begin(false, false)
	bot := e.Buffer().lines.Bot
	e.moveTo(bot, len(bot.Data), false)
}

func (e *Editor) pageSize() int {
	n := e.window.rows - 2
	if e.window.softwrap() {
		n = e.window.maxrows - 2
	}
	if n < 1 {
		n = 1
	}
	return n
}

// PageUp moves the view and the cursor up a screen, keeping the cursor
// row.
func (e *Editor) PageUp() {
	e.begin(false, false)
	b := e.Buffer()
	if b.edittop == b.lines.Top {
		e.moveTo(b.lines.Top, e.wanted(b.lines.Top), true)
		return
	}
	for i := 0; i < e.pageSize() && b.edittop.Prev() != nil; i++ {
		b.edittop = b.edittop.Prev()
		if p := b.current.Prev(); p != nil {
			b.current = p
		}
	}
	b.currentX = e.wanted(b.current)
	e.window.refreshNeeded = true
}

// PageDown moves the view and the cursor down a screen.
func (e *Editor) PageDown() {
	e.begin(false, false)
	b := e.Buffer()
	if b.current.Next() == nil {
		return
	}
	for i := 0; i < e.pageSize() && b.current.Next() != nil; i++ {
		b.current = b.current.Next()
		b.edittop = b.edittop.Next()
	}
	b.currentX = e.wanted(b.current)
	e.window.refreshNeeded = true
}

// ScrollUp moves the view up one line. The cursor stays on its line
// unless that line would leave the window.
func (e *Editor) ScrollUp() {
	e.begin(false, false)
	b := e.Buffer()
	if b.edittop.Prev() == nil {
		return
	}
	old, oldPWW := b.current, b.placewewant
	if e.window.cursorRow(b) >= e.window.rows-1 {
		b.current = b.current.Prev()
		b.currentX = e.wanted(b.current)
	}
	e.window.Scroll(b, types.ScrollUp, 1)
	e.window.Redraw(b, old, oldPWW)
}

// ScrollDown moves the view down one line.
func (e *Editor) ScrollDown() {
	e.begin(false, false)
	b := e.Buffer()
	if b.edittop.Next() == nil {
		return
	}
	old, oldPWW := b.current, b.placewewant
	if b.current == b.edittop {
		b.current = b.current.Next()
		b.currentX = e.wanted(b.current)
	}
	e.window.Scroll(b, types.ScrollDown, 1)
	e.window.Redraw(b, old, oldPWW)
}

// GotoLine moves to line n and display column col, both counted from
// one. Negative values count back from the end. The line is centered.
func (e *Editor) GotoLine(n, col int) {
	e.begin(false, false)
	b := e.Buffer()
	last := b.lines.Bot.Number
	switch {
	case n < 0:
		n = last + n + 1
	case n == 0:
		n = 1
	}
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}
	l := b.lines.Find(n)
	if l == nil {
		return
	}
	if col < 0 {
		col = text.StringWidth(l.Data, e.config.TabSize) + col + 2
	}
	if col < 1 {
		col = 1
	}
	b.current = l
	b.currentX = text.Offset(l.Data, col-1, e.config.TabSize)
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.window.Update(b, Center)
	e.window.refreshNeeded = true
}

// CursorPosition reports where the cursor is.
func (e *Editor) CursorPosition() {
	b := e.Buffer()
	tabsize := e.config.TabSize
	line, last := b.current.Number, b.lines.Bot.Number
	col := b.xplustabs(tabsize) + 1
	cols := text.StringWidth(b.current.Data, tabsize) + 1
	char := 0
	for l := b.lines.Top; l != b.current; l = l.Next() {
		char += len([]rune(string(l.Data))) + 1
	}
	char += len([]rune(string(b.current.Data[:b.currentX])))
	e.SetMessage("line %d/%d (%d%%), col %d/%d (%d%%), char %d/%d (%d%%)",
		line, last, percent(line, last), col, cols, percent(col, cols),
		char, b.totsize, percent(char, b.totsize))
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return 100 * n / of
}
