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
	"fmt"

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/text"
	"github.com/timburks/pinot/pkg/types"
)

// Ways of placing the current line when the view is recomputed.
const (
	Center     = iota // the current line goes to the middle row
	Flowing           // the least movement that shows the current line
	Stationary        // the current line keeps its row
)

// The title bar takes the first row and the status bar the last.
const editTop = 1

type nullDisplay struct{}

func (nullDisplay) PaintRow(int, []types.Cell) {}
func (nullDisplay) Scroll(int, int, int, int) {}
func (nullDisplay) SetCursor(types.Point)      {}
func (nullDisplay) Flush()                    {}

// A Window is the view of the current buffer. It decides which lines are
// visible and repaints as few rows as it can after each command.
type Window struct {
	editor        *Editor
	display       types.Display
	size          types.Size
	rows          int // edit rows between the title and status bars
	cols          int
	maxrows       int  // lines shown whole by the last refresh
	refreshNeeded bool // every edit row must be repainted
}

func NewWindow(e *Editor) *Window {
	w := &Window{editor: e, display: nullDisplay{}}
	w.Layout(types.Size{Rows: 24, Cols: 80})
	return w
}

func (w *Window) GetSize() types.Size {
	return w.size
}

// GetRows returns the number of edit rows.
func (w *Window) GetRows() int {
	return w.rows
}

// Layout sets the window geometry.
func (w *Window) Layout(size types.Size) error {
	rows := size.Rows - 2
	if rows < 1 || size.Cols < 1 {
		return ErrTerminalTooSmall
	}
	w.size = size
	w.rows = rows
	w.cols = size.Cols
	w.refreshNeeded = true
	return nil
}

// recenter returns how an off-screen cursor is brought back into view.
func (w *Window) recenter() int {
	if w.editor.config.SmoothScroll {
		return Flowing
	}
	return Center
}

func (w *Window) softwrap() bool {
	return w.editor.config.SoftWrap
}

// rowsOf returns the number of rows l takes.
func (w *Window) rowsOf(l *lines.Line) int {
	if !w.softwrap() {
		return 1
	}
	return text.StringWidth(l.Data, w.editor.config.TabSize)/w.cols + 1
}

// chunk returns the row within the current line that holds the cursor.
func (w *Window) chunk(b *Buffer) int {
	if !w.softwrap() {
		return 0
	}
	return text.Width(b.current.Data, b.currentX, w.editor.config.TabSize) / w.cols
}

// lineRow returns the edit row where target starts: -1 when it is above
// the window and w.rows or more when it is below.
func (w *Window) lineRow(b *Buffer, target *lines.Line) int {
	if target.Number < b.edittop.Number {
		return -1
	}
	row := 0
	l := b.edittop
	for l != nil && l != target && row < w.rows {
		row += w.rowsOf(l)
		l = l.Next()
	}
	if l != target {
		return w.rows
	}
	return row
}

// cursorRow returns the edit row of the cursor, which may lie outside
// the window.
func (w *Window) cursorRow(b *Buffer) int {
	row := w.lineRow(b, b.current)
	if row < 0 || row >= w.rows {
		return row
	}
	return row + w.chunk(b)
}

func (w *Window) currentVisible(b *Buffer) bool {
	row := w.cursorRow(b)
	return row >= 0 && row < w.rows
}

// pageStart returns the first column shown of a line whose interesting
// column is col, when soft wrapping is off.
func (w *Window) pageStart(col int) int {
	cols := w.cols
	if w.softwrap() || col == 0 || col < cols-1 {
		return 0
	}
	if cols > 8 {
		return col - 7 - (col-8)%(cols-9)
	}
	return col - (cols - 2)
}

// computeMaxRows counts the lines that fit whole from the top line.
func (w *Window) computeMaxRows(b *Buffer) {
	n, row := 0, 0
	for l := b.edittop; l != nil; l = l.Next() {
		row += w.rowsOf(l)
		if row > w.rows {
			break
		}
		n++
	}
	if n == 0 {
		n = 1
	}
	w.maxrows = n
}

// Update chooses the top line so the current line sits where manner says.
func (w *Window) Update(b *Buffer, manner int) {
	var goal int
	switch manner {
	case Center:
		goal = w.rows / 2
	case Flowing:
		if b.current.Number >= b.edittop.Number {
			goal = w.rows - 1
		}
	default:
		goal = b.currentY
		if goal > w.rows-1 {
			goal = w.rows - 1
		}
	}
	goal -= w.chunk(b)
	top := b.current
	for goal > 0 && top.Prev() != nil {
		top = top.Prev()
		goal -= w.rowsOf(top)
	}
	if goal < 0 && top != b.current {
		top = top.Next()
	}
	b.edittop = top
	w.computeMaxRows(b)
}

// Scroll moves the top line n lines in direction, provided the current
// line stays in view, and repaints the rows that changed.
func (w *Window) Scroll(b *Buffer, direction, n int) {
	top := b.edittop
	moved := 0
	for moved < n {
		var next *lines.Line
		if direction == types.ScrollUp {
			next = top.Prev()
		} else {
			next = top.Next()
		}
		if next == nil {
			break
		}
		top = next
		moved++
	}
	if moved == 0 {
		return
	}
	old := b.edittop
	b.edittop = top
	if !w.currentVisible(b) {
		b.edittop = old
		return
	}
	w.computeMaxRows(b)
	if w.refreshNeeded {
		return
	}
	if moved >= w.rows || w.softwrap() {
		w.refreshNeeded = true
		return
	}
	w.display.Scroll(editTop, w.rows, direction, moved)

	n = moved
	if (direction == types.ScrollUp && b.edittop == b.lines.Top) ||
		(direction == types.ScrollDown && w.lineRow(b, b.lines.Bot) < w.rows) {
		n = w.rows
	}
	// the row next to the new ones may show a changed page or mark
	if n == 1 {
		n++
	} else {
		n += 2
	}
	if n > w.rows {
		n = w.rows
	}

	first := 0
	l := b.edittop
	if direction == types.ScrollDown {
		first = w.rows - n
		for i := 0; i < first && l != nil; i++ {
			l = l.Next()
		}
	}
	for row := first; row < first+n; row++ {
		if l == nil {
			w.display.PaintRow(editTop+row, nil)
			continue
		}
		w.paintLine(b, l, row, w.xFor(b, l))
		l = l.Next()
	}
}

func (w *Window) xFor(b *Buffer, l *lines.Line) int {
	if l == b.current {
		return b.currentX
	}
	return 0
}

// Redraw repaints after the cursor moved from old, whose wanted column
// was oldPWW. Only the rows that can have changed are painted unless the
// cursor left the window.
func (w *Window) Redraw(b *Buffer, old *lines.Line, oldPWW int) {
	if w.refreshNeeded {
		return
	}
	if !w.currentVisible(b) {
		w.Update(b, w.recenter())
		w.refreshNeeded = true
		return
	}
	marked := b.mark != nil
	if old != b.current && (marked || w.pageStart(oldPWW) != 0) {
		w.updateLine(b, old, 0)
	}
	if marked && old != b.current {
		from, to := old, b.current
		if from.Number > to.Number {
			from, to = to, from
		}
		for l := from.Next(); l != nil && l != to; l = l.Next() {
			w.updateLine(b, l, 0)
		}
	}
	w.updateLine(b, b.current, b.currentX)
}

// Refresh repaints every edit row.
func (w *Window) Refresh(b *Buffer) {
	if !w.currentVisible(b) {
		w.Update(b, w.recenter())
	}
	w.computeMaxRows(b)
	row := 0
	for l := b.edittop; l != nil && row < w.rows; l = l.Next() {
		row += w.paintLine(b, l, row, w.xFor(b, l))
	}
	for ; row < w.rows; row++ {
		w.display.PaintRow(editTop+row, nil)
	}
	w.refreshNeeded = false
}

// updateLine repaints l if it is visible. x is the cursor offset when l
// is the current line.
func (w *Window) updateLine(b *Buffer, l *lines.Line, x int) {
	row := w.lineRow(b, l)
	if row < 0 || row >= w.rows {
		return
	}
	w.paintLine(b, l, row, x)
}

// paintLine paints l starting at edit row and returns the rows used.
func (w *Window) paintLine(b *Buffer, l *lines.Line, row, x int) int {
	tabsize := w.editor.config.TabSize
	if w.softwrap() {
		n := w.rowsOf(l)
		for k := 0; k < n && row+k < w.rows; k++ {
			w.display.PaintRow(editTop+row+k, w.cells(b, l, k*w.cols, w.cols))
		}
		return n
	}
	start := 0
	if l == b.current {
		start = w.pageStart(text.Width(l.Data, x, tabsize))
	}
	cells := w.cells(b, l, start, w.cols)
	if start > 0 && len(cells) > 0 {
		cells[0] = types.Cell{Ch: '$'}
	}
	if text.StringWidth(l.Data, tabsize) > start+w.cols && len(cells) > 0 {
		cells[len(cells)-1] = types.Cell{Ch: '$'}
	}
	w.display.PaintRow(editTop+row, cells)
	return 1
}

// follow keeps the view on the cursor after a motion from old. With
// smooth scrolling a cursor just outside the window scrolls it.
func (w *Window) follow(b *Buffer, old *lines.Line, oldPWW int, down bool) {
	if w.refreshNeeded {
		return
	}
	if w.editor.config.SmoothScroll && !w.softwrap() {
		row := w.cursorRow(b)
		switch {
		case row < 0 && !down:
			if n := b.edittop.Number - b.current.Number; n < w.rows {
				w.Scroll(b, types.ScrollUp, n)
			}
		case row >= w.rows && down:
			if n := row - w.rows + 1; n < w.rows {
				w.Scroll(b, types.ScrollDown, n)
			}
		}
	}
	w.Redraw(b, old, oldPWW)
}

// cursor returns the screen position of the cursor and remembers its row.
func (w *Window) cursor(b *Buffer) types.Point {
	row := w.cursorRow(b)
	if row < 0 || row >= w.rows {
		w.Update(b, w.recenter())
		row = w.cursorRow(b)
	}
	b.currentY = row
	col := text.Width(b.current.Data, b.currentX, w.editor.config.TabSize)
	if w.softwrap() {
		col %= w.cols
	} else {
		col -= w.pageStart(col)
	}
	return types.Point{Row: editTop + row, Col: col}
}

func (w *Window) barCells(s string, reverse bool) []types.Cell {
	glyphs := text.Expand([]byte(s), 0, w.cols, w.editor.config.TabSize)
	cells := make([]types.Cell, w.cols)
	for i := range cells {
		cells[i] = types.Cell{Ch: ' ', Reverse: reverse}
	}
	for i, g := range glyphs {
		cells[i].Ch = g.Ch
	}
	return cells
}

// renderTitle paints the title bar: program name, file name and the
// modified flag.
func (w *Window) renderTitle(b *Buffer) {
	left := "  pinot"
	right := ""
	if b.modified {
		right = "Modified  "
	}
	name := b.GetName()
	if n := len(w.editor.buffers); n > 1 {
		name = fmt.Sprintf("%s (%d/%d)", name, w.editor.current+1, n)
	}
	title := left + " "
	for pad := (w.cols - len(name)) / 2; len(title) < pad; {
		title += " "
	}
	title += name
	for len(title) < w.cols-len(right) {
		title += " "
	}
	title += right
	w.display.PaintRow(0, w.barCells(title, true))
}

// renderStatus paints the status bar. A prompt is shown as typed, and a
// message is centered in brackets.
func (w *Window) renderStatus(s string, prompt bool) {
	row := w.size.Rows - 1
	switch {
	case prompt:
		w.display.PaintRow(row, w.barCells(s, false))
	case s == "":
		w.display.PaintRow(row, nil)
	default:
		s = "[ " + s + " ]"
		line := ""
		for pad := (w.cols - len(s)) / 2; len(line) < pad; {
			line += " "
		}
		cells := w.barCells(line+s, false)
		for i := len(line); i < len(line)+len(s) && i < len(cells); i++ {
			cells[i].Reverse = true
		}
		w.display.PaintRow(row, cells)
	}
}
