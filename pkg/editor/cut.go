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
	"errors"
	"io/fs"

	"github.com/timburks/pinot/pkg/lines"
)

// extract moves the text from (top, topX) to (bot, botX) onto the end of
// dest. The cursor is left where the text was. The mark and the top of
// the window move out of the removed text.
func (e *Editor) extract(b *Buffer, top *lines.Line, topX int, bot *lines.Line, botX int, dest *lines.Store) error {
	if top == bot && topX == botX {
		b.current = top
		b.currentX = topX
		return nil
	}
	topNumber, botNumber := top.Number, bot.Number
	// relocate decides, before the text is removed, where a position
	// will be once the gap line has replaced the removed text
	relocate := func(l *lines.Line, x int) func(gap *lines.Line) (*lines.Line, int) {
		switch {
		case l.Number < topNumber || l.Number > botNumber:
			return func(*lines.Line) (*lines.Line, int) { return l, x }
		case l == top && x <= topX:
			return func(gap *lines.Line) (*lines.Line, int) { return gap, x }
		case l == bot && x >= botX:
			return func(gap *lines.Line) (*lines.Line, int) { return gap, topX + x - botX }
		default:
			return func(gap *lines.Line) (*lines.Line, int) { return gap, topX }
		}
	}
	edittop := relocate(b.edittop, 0)
	var mark func(*lines.Line) (*lines.Line, int)
	if b.mark != nil {
		mark = relocate(b.mark, b.markX)
	}
	piece := &lines.Store{}
	var gap *lines.Line
	err := e.exclusive(func() error {
		var err error
		gap, err = b.lines.Extract(top, topX, bot, botX, piece)
		return err
	})
	if err != nil {
		return err
	}
	b.edittop, _ = edittop(gap)
	if mark != nil {
		b.mark, b.markX = mark(gap)
	}
	b.current = gap
	b.currentX = topX
	b.totsize -= piece.Size()
	b.modified = true
	dest.Join(piece)
	return nil
}

// insertCopy inserts a copy of src at (at, x), leaving the cursor after
// the inserted text.
func (e *Editor) insertCopy(b *Buffer, at *lines.Line, x int, src *lines.Store) (*lines.Line, int, error) {
	if src.Empty() {
		return at, x, nil
	}
	var first, last *lines.Line
	var end int
	err := e.exclusive(func() error {
		var err error
		first, last, end, err = b.lines.InsertCopy(at, x, src)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if b.edittop == at {
		b.edittop = first
	}
	if b.mark == at {
		if b.markX < x {
			b.mark = first
		} else {
			b.mark = last
			b.markX = end + b.markX - x
		}
	}
	b.current = last
	b.currentX = end
	b.totsize += src.Size()
	b.modified = true
	return last, end, nil
}

// SetMark sets the mark at the cursor, or clears it if it is set.
func (e *Editor) SetMark() {
	e.begin(false, false)
	b := e.Buffer()
	if b.mark == nil {
		b.mark = b.current
		b.markX = b.currentX
		e.SetMessage("Mark Set")
	} else {
		b.mark = nil
		e.SetMessage("Mark Unset")
		e.window.refreshNeeded = true
	}
}

// cutRange cuts text into the cut buffer and records it, extending the
// previous cut record when cuts follow each other.
func (e *Editor) cutRange(top *lines.Line, topX int, bot *lines.Line, botX int, toEnd bool) error {
	b := e.Buffer()
	if top == bot && topX == botX {
		return nil
	}
	keep := e.keepCutbuffer
	if !keep {
		e.cutbuffer.Free()
	}
	e.keepCutbuffer = true
	before := Position{Line: b.current.Number, X: b.currentX}
	at := Position{Line: top.Number, X: topX}
	piece := &lines.Store{}
	if err := e.extract(b, top, topX, bot, botX, piece); err != nil {
		return err
	}
	b.mark = nil
	magic := b.ensureMagic(e.config.NoNewlines)
	after := Position{Line: b.current.Number, X: b.currentX}
	if r, ok := b.undo.last().(*CutRecord); ok && keep && r.At == at && r.After == at && !magic {
		r.Text.Join(piece.Copy())
		r.ToEnd = r.ToEnd || toEnd
	} else {
		b.undo.push(&CutRecord{
			cursors: cursors{Before: before, After: after},
			At:      at,
			Text:    piece.Copy(),
			Magic:   magic,
			ToEnd:   toEnd,
		})
	}
	e.cutbuffer.Join(piece)
	b.resetMultis(b.current, true)
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.window.refreshNeeded = true
	return nil
}

// Cut removes the marked text, or without a mark the current line, into
// the cut buffer. With the cut-to-end setting it removes the rest of the
// line instead of the whole line.
func (e *Editor) Cut() error {
	e.begin(false, true)
	b := e.Buffer()
	if top, topX, bot, botX, ok := b.markRegion(); ok {
		e.keepCutbuffer = false
		return e.cutRange(top, topX, bot, botX, false)
	}
	l := b.current
	if e.config.CutToEnd {
		if b.currentX < len(l.Data) {
			return e.cutRange(l, b.currentX, l, len(l.Data), true)
		}
		if l.Next() == nil {
			return nil
		}
		return e.cutRange(l, b.currentX, l.Next(), 0, true)
	}
	if l.Next() != nil {
		return e.cutRange(l, 0, l.Next(), 0, false)
	}
	return e.cutRange(l, 0, l, len(l.Data), false)
}

// CutToEnd removes everything from the cursor to the end of the buffer.
func (e *Editor) CutToEnd() error {
	e.begin(false, true)
	b := e.Buffer()
	bot := b.lines.Bot
	return e.cutRange(b.current, b.currentX, bot, len(bot.Data), true)
}

// Copy puts the marked text, or the current line, into the cut buffer
// without changing the buffer.
func (e *Editor) Copy() error {
	e.begin(false, true)
	b := e.Buffer()
	if !e.keepCutbuffer {
		e.cutbuffer.Free()
	}
	e.keepCutbuffer = true
	if top, topX, bot, botX, ok := b.markRegion(); ok {
		err := e.withPartition(b, top, topX, bot, botX, func() error {
			e.cutbuffer.Join(b.lines.Copy())
			return nil
		})
		if err != nil {
			return err
		}
		b.mark = nil
		e.keepCutbuffer = false
		e.window.refreshNeeded = true
		e.SetMessage("Copied %d lines", bot.Number-top.Number+1)
		return nil
	}
	l := b.current
	e.cutbuffer.Join(lines.FromStrings(string(l.Data), ""))
	old, oldPWW := b.current, b.placewewant
	if l.Next() != nil {
		b.current = l.Next()
		b.currentX = 0
	}
	e.window.follow(b, old, oldPWW, true)
	return nil
}

// Uncut inserts the cut buffer at the cursor.
func (e *Editor) Uncut() error {
	e.begin(false, false)
	if e.cutbuffer.Empty() {
		return nil
	}
	return e.paste(e.cutbuffer, false)
}

// paste inserts a copy of text at the cursor and records it.
func (e *Editor) paste(text *lines.Store, file bool) error {
	b := e.Buffer()
	before := Position{Line: b.current.Number, X: b.currentX}
	if _, _, err := e.insertCopy(b, b.current, b.currentX, text); err != nil {
		e.report(err)
		return err
	}
	magic := b.ensureMagic(e.config.NoNewlines)
	r := UncutRecord{
		cursors: cursors{Before: before, After: Position{Line: b.current.Number, X: b.currentX}},
		At:      before,
		Text:    text.Copy(),
		Magic:   magic,
	}
	if file {
		b.undo.push(&InsertRecord{r})
	} else {
		b.undo.push(&r)
	}
	if l := b.lines.Find(before.Line); l != nil {
		b.resetMultis(l, true)
	}
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.window.refreshNeeded = true
	return nil
}

// InsertFile inserts the contents of a file at the cursor.
func (e *Editor) InsertFile(path string) error {
	e.begin(false, false)
	s, _, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.SetMessage("File \"%s\" not found", path)
		} else {
			e.SetMessage("%v", err)
		}
		return err
	}
	defer s.Free()
	if err := e.paste(s, true); err != nil {
		return err
	}
	e.SetMessage("Inserted %d lines", s.Count())
	return nil
}
