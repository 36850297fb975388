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
)

// A Position is a line number and a byte offset in that line. Records
// refer to lines by number because the lines themselves may be replaced
// by later edits and their undoing.
type Position struct {
	Line int
	X    int
}

// cursors holds where the cursor was before and after an edit. Undoing
// the edit returns the cursor to Before, redoing it to After.
type cursors struct {
	Before Position
	After  Position
}

func (c *cursors) span() *cursors {
	return c
}

// A Record is one reversible edit in a buffer's history.
type Record interface {
	Describe() string
	anchor() int // number of the first line the edit touches
	span() *cursors
	undo(e *Editor, b *Buffer) error
	redo(e *Editor, b *Buffer) error
	release()
}

// AddRecord is typed text. Consecutive characters typed on the same line
// extend the same record.
type AddRecord struct {
	cursors
	At    Position
	Text  []byte
	Magic bool // typing into the magic line added a new one
}

// DeleteRecord is text removed within a line by Delete or Backspace.
// Repeated deletions extend the record only while they go the same way:
// forward deletions from the same offset, or backspaces ending where the
// previous one began.
type DeleteRecord struct {
	cursors
	At        Position
	Text      []byte
	Backspace bool
}

// ReplaceRecord is a search replacement.
type ReplaceRecord struct {
	cursors
	At  Position
	Old []byte
	New []byte
}

// SplitRecord is a line broken by wrapping. The text after the break
// either went to a new line, after Indent, or was prepended to the next
// line followed by Joiner.
type SplitRecord struct {
	cursors
	At        Position
	Text      []byte
	Indent    []byte
	Prepended bool
	Joiner    []byte
}

// UnsplitRecord is two lines joined by deleting the line break between
// them. At is the end of the first line before the join.
type UnsplitRecord struct {
	cursors
	At        Position
	Backspace bool
}

// EnterRecord is a line break typed at At. The new line started with
// Indent.
type EnterRecord struct {
	cursors
	At     Position
	Indent []byte
}

// CutRecord is text cut from At. Text is a private copy of everything the
// record removed. Consecutive line cuts extend the same record.
type CutRecord struct {
	cursors
	At    Position
	Text  *lines.Store
	Magic bool
	ToEnd bool
}

// UncutRecord is text pasted at At from the cut buffer.
type UncutRecord struct {
	cursors
	At    Position
	Text  *lines.Store
	Magic bool
}

// InsertRecord is a file inserted at At.
type InsertRecord struct {
	UncutRecord
}

// IndentRecord is the indentation added to, or removed from, the lines
// starting at Top. Prefixes holds the text for each line, empty for lines
// that were left alone.
type IndentRecord struct {
	cursors
	Top      int
	Prefixes [][]byte
	Unindent bool
}

// FilterRecord is text at At that an external formatter replaced.
type FilterRecord struct {
	cursors
	At  Position
	Old *lines.Store
	New *lines.Store
}

// OtherRecord marks a change that cannot be undone. Undo stops there.
type OtherRecord struct {
	cursors
	What string
}

func (r *AddRecord) Describe() string { return "addition" }
func (r *DeleteRecord) Describe() string { return "deletion" }
func (r *ReplaceRecord) Describe() string { return "replacement" }
func (r *SplitRecord) Describe() string { return "line wrap" }
func (r *UnsplitRecord) Describe() string { return "line join" }
func (r *EnterRecord) Describe() string { return "line break" }
func (r *CutRecord) Describe() string { return "text cut" }
func (r *UncutRecord) Describe() string { return "text uncut" }
func (r *InsertRecord) Describe() string { return "file insertion" }
func (r *IndentRecord) Describe() string {
	if r.Unindent {
		return "unindent"
	}
	return "indent"
}
func (r *FilterRecord) Describe() string { return "formatting" }
func (r *OtherRecord) Describe() string { return r.What }

func (r *AddRecord) anchor() int { return r.At.Line }
func (r *DeleteRecord) anchor() int { return r.At.Line }
func (r *ReplaceRecord) anchor() int { return r.At.Line }
func (r *SplitRecord) anchor() int { return r.At.Line }
func (r *UnsplitRecord) anchor() int { return r.At.Line }
func (r *EnterRecord) anchor() int { return r.At.Line }
func (r *CutRecord) anchor() int { return r.At.Line }
func (r *UncutRecord) anchor() int { return r.At.Line }
func (r *IndentRecord) anchor() int { return r.Top }
func (r *FilterRecord) anchor() int { return r.At.Line }
func (r *OtherRecord) anchor() int { return r.Before.Line }

func (r *AddRecord) release() {}
func (r *DeleteRecord) release() {}
func (r *ReplaceRecord) release() {}
func (r *SplitRecord) release() {}
func (r *UnsplitRecord) release() {}
func (r *EnterRecord) release() {}
func (r *IndentRecord) release() {}
func (r *OtherRecord) release() {}

func (r *CutRecord) release() {
	r.Text.Free()
}

func (r *UncutRecord) release() {
	r.Text.Free()
}

func (r *FilterRecord) release() {
	r.Old.Free()
	r.New.Free()
}

// endOf returns the position just after text inserted at at.
func endOf(at Position, text *lines.Store) Position {
	n := text.Count()
	end := Position{Line: at.Line + n - 1, X: len(text.Bot.Data)}
	if n == 1 {
		end.X += at.X
	}
	return end
}

// A Ledger is the undo history of a buffer. Records before current can be
// undone; records from current on can be redone.
type Ledger struct {
	records []Record
	current int
}

// push adds a record, abandoning anything that could have been redone.
func (l *Ledger) push(r Record) {
	for _, old := range l.records[l.current:] {
		old.release()
	}
	for i := l.current; i < len(l.records); i++ {
		l.records[i] = nil
	}
	l.records = append(l.records[:l.current], r)
	l.current = len(l.records)
}

// last returns the record that the next edit may extend, or nil when
// there is none or when edits have been undone.
func (l *Ledger) last() Record {
	if l.current == 0 || l.current != len(l.records) {
		return nil
	}
	return l.records[l.current-1]
}

func (l *Ledger) clear() {
	for _, r := range l.records {
		r.release()
	}
	l.records = nil
	l.current = 0
}

func (l *Ledger) CanUndo() bool {
	return l.current > 0
}

func (l *Ledger) CanRedo() bool {
	return l.current < len(l.records)
}

// Len returns the number of records, including those that can be redone.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Current returns the number of records that can be undone.
func (l *Ledger) Current() int {
	return l.current
}

// Records returns the history, oldest first.
func (l *Ledger) Records() []Record {
	return l.records
}
