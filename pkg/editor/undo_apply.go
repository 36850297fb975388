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
	"fmt"

	"github.com/timburks/pinot/pkg/lines"
)

var errIrreversible = errors.New("cannot undo")

// Undo reverses the most recent edit that has not been undone.
func (e *Editor) Undo() {
	e.begin(false, false)
	b := e.Buffer()
	if !b.undo.CanUndo() {
		e.SetMessage("Nothing to undo")
		return
	}
	r := b.undo.records[b.undo.current-1]
	if err := r.undo(e, b); err != nil {
		if errors.Is(err, errIrreversible) {
			e.SetMessage("Cannot undo %s", r.Describe())
			return
		}
		e.report(err)
		return
	}
	b.undo.current--
	e.applied(b, r, r.span().Before)
	e.SetMessage("Undid %s", r.Describe())
}

// Redo repeats the most recently undone edit.
func (e *Editor) Redo() {
	e.begin(false, false)
	b := e.Buffer()
	if !b.undo.CanRedo() {
		e.SetMessage("Nothing to redo")
		return
	}
	r := b.undo.records[b.undo.current]
	if err := r.redo(e, b); err != nil {
		e.report(err)
		return
	}
	b.undo.current++
	e.applied(b, r, r.span().After)
	e.SetMessage("Redid %s", r.Describe())
}

// applied moves the cursor after an undo or redo and schedules the
// screen and highlighting updates.
func (e *Editor) applied(b *Buffer, r Record, p Position) {
	b.mark = nil
	l := b.lines.Find(p.Line)
	if l == nil {
		l = b.lines.Bot
	}
	b.current = l
	b.currentX = p.X
	if b.currentX > len(l.Data) {
		b.currentX = len(l.Data)
	}
	b.placewewant = b.xplustabs(e.config.TabSize)
	b.modified = true
	if top := b.lines.Find(r.anchor()); top != nil {
		b.resetMultis(top, true)
	}
	e.window.refreshNeeded = true
}

func (r *AddRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if r.Magic {
		b.dropMagic()
	}
	b.removeBytes(l, r.At.X, len(r.Text))
	return nil
}

func (r *AddRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.insertBytes(l, r.At.X, r.Text)
	if r.Magic {
		b.ensureMagic(false)
	}
	return nil
}

func (r *DeleteRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.insertBytes(l, r.At.X, r.Text)
	return nil
}

func (r *DeleteRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.removeBytes(l, r.At.X, len(r.Text))
	return nil
}

func (r *ReplaceRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.replaceBytes(l, r.At.X, len(r.New), r.Old)
	return nil
}

func (r *ReplaceRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.replaceBytes(l, r.At.X, len(r.Old), r.New)
	return nil
}

func (r *SplitRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	next := l.Next()
	if next == nil {
		return &anchorError{line: r.At.Line + 1}
	}
	if r.Prepended {
		b.removeBytes(next, 0, len(r.Text)+len(r.Joiner))
		b.insertBytes(l, r.At.X, r.Text)
		return nil
	}
	b.removeBytes(next, 0, len(r.Indent))
	b.joinLine(l)
	return nil
}

func (r *SplitRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if r.Prepended {
		next := l.Next()
		if next == nil {
			return &anchorError{line: r.At.Line + 1}
		}
		b.removeBytes(l, r.At.X, len(r.Text))
		b.insertBytes(next, 0, append(append([]byte(nil), r.Text...), r.Joiner...))
		return nil
	}
	b.splitLine(l, r.At.X, r.Indent)
	return nil
}

func (r *UnsplitRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.splitLine(l, r.At.X, nil)
	return nil
}

func (r *UnsplitRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if l.Next() == nil {
		return &anchorError{line: r.At.Line + 1}
	}
	b.joinLine(l)
	return nil
}

func (r *EnterRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	next := l.Next()
	if next == nil {
		return &anchorError{line: r.At.Line + 1}
	}
	b.removeBytes(next, 0, len(r.Indent))
	b.joinLine(l)
	return nil
}

func (r *EnterRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	b.splitLine(l, r.At.X, r.Indent)
	return nil
}

func (r *CutRecord) undo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if r.Magic {
		b.dropMagic()
	}
	_, _, err = e.insertCopy(b, l, r.At.X, r.Text)
	return err
}

func (r *CutRecord) redo(e *Editor, b *Buffer) error {
	top, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	end := endOf(r.At, r.Text)
	bot, err := b.line(end.Line)
	if err != nil {
		return err
	}
	removed := &lines.Store{}
	if err := e.extract(b, top, r.At.X, bot, end.X, removed); err != nil {
		return err
	}
	e.cutbuffer.Free()
	e.cutbuffer = removed
	if r.Magic {
		b.ensureMagic(false)
	}
	return nil
}

func (r *UncutRecord) undo(e *Editor, b *Buffer) error {
	top, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if r.Magic {
		b.dropMagic()
	}
	end := endOf(r.At, r.Text)
	bot, err := b.line(end.Line)
	if err != nil {
		return err
	}
	removed := &lines.Store{}
	defer removed.Free()
	return e.extract(b, top, r.At.X, bot, end.X, removed)
}

func (r *UncutRecord) redo(e *Editor, b *Buffer) error {
	l, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	if _, _, err := e.insertCopy(b, l, r.At.X, r.Text); err != nil {
		return err
	}
	if r.Magic {
		b.ensureMagic(false)
	}
	return nil
}

func (r *IndentRecord) undo(e *Editor, b *Buffer) error {
	return r.apply(b, r.Unindent)
}

func (r *IndentRecord) redo(e *Editor, b *Buffer) error {
	return r.apply(b, !r.Unindent)
}

// apply adds the prefixes to their lines, or removes them. Every line is
// found before any is changed.
func (r *IndentRecord) apply(b *Buffer, add bool) error {
	touched := make([]*lines.Line, len(r.Prefixes))
	for i := range r.Prefixes {
		l, err := b.line(r.Top + i)
		if err != nil {
			return err
		}
		touched[i] = l
	}
	for i, prefix := range r.Prefixes {
		if len(prefix) == 0 {
			continue
		}
		l := touched[i]
		if add {
			b.insertBytes(l, 0, prefix)
		} else {
			b.removeBytes(l, 0, len(prefix))
		}
		l.Multidata = nil
	}
	return nil
}

// swap replaces the text from At that was inserted as from with a copy
// of to.
func (r *FilterRecord) swap(e *Editor, b *Buffer, from, to *lines.Store) error {
	top, err := b.line(r.At.Line)
	if err != nil {
		return err
	}
	end := endOf(r.At, from)
	bot, err := b.line(end.Line)
	if err != nil {
		return err
	}
	removed := &lines.Store{}
	defer removed.Free()
	if err := e.extract(b, top, r.At.X, bot, end.X, removed); err != nil {
		return err
	}
	_, _, err = e.insertCopy(b, b.current, b.currentX, to)
	return err
}

func (r *FilterRecord) undo(e *Editor, b *Buffer) error {
	return r.swap(e, b, r.New, r.Old)
}

func (r *FilterRecord) redo(e *Editor, b *Buffer) error {
	return r.swap(e, b, r.Old, r.New)
}

func (r *OtherRecord) undo(e *Editor, b *Buffer) error {
	return fmt.Errorf("%w %s", errIrreversible, r.What)
}

func (r *OtherRecord) redo(e *Editor, b *Buffer) error {
	return nil
}
