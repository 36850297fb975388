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

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/search"
	"github.com/timburks/pinot/pkg/text"
)

// Lines replaced between polls of the cancel function.
const replacePoll = 64

func (e *Editor) compile(s string) (search.Pattern, error) {
	if s == "" {
		s = e.lastSearch
	}
	p, err := search.Compile(s, search.Options{
		Regexp:        e.config.Regexp,
		CaseSensitive: e.config.CaseSensitive,
	})
	if err != nil {
		return nil, err
	}
	e.lastSearch = s
	return p, nil
}

// Search moves the cursor to the next occurrence of s, wrapping around
// the buffer. An empty s repeats the last search.
func (e *Editor) Search(s string, backward bool) error {
	e.begin(false, false)
	p, err := e.compile(s)
	if err != nil {
		e.SetMessage("%v", err)
		return err
	}
	e.lastBackward = backward
	return e.find(p, backward)
}

// SearchAgain repeats the last search in the same direction.
func (e *Editor) SearchAgain() error {
	if e.lastSearch == "" {
		e.SetMessage("No current search pattern")
		return search.ErrEmptyPattern
	}
	return e.Search("", e.lastBackward)
}

func (e *Editor) find(p search.Pattern, backward bool) error {
	b := e.Buffer()
	x := b.currentX + 1
	if backward {
		x = b.currentX
	}
	return e.findFrom(p, x, backward, false)
}

// findFrom moves to the nearest match from offset x of the current line.
// With here set, a match at the cursor is a new occurrence.
func (e *Editor) findFrom(p search.Pattern, x int, backward, here bool) error {
	b := e.Buffer()
	m, err := search.FindNext(b.lines, b.current, x, p, backward, true, e.cancel)
	switch {
	case errors.Is(err, search.ErrCancelled):
		e.SetMessage("Cancelled")
		return err
	case err != nil:
		e.SetMessage("\"%s\" not found", p)
		return err
	}
	same := !here && m.Line == b.current && m.X == b.currentX
	e.moveTo(m.Line, m.X, false)
	switch {
	case same:
		e.SetMessage("This is the only occurrence")
	case m.Wrapped:
		e.SetMessage("Search Wrapped")
	}
	return nil
}

// replaceAt replaces n bytes of l at x and records the change.
func (e *Editor) replaceAt(b *Buffer, l *lines.Line, x, n int, with []byte) {
	at := Position{Line: l.Number, X: x}
	old := b.replaceBytes(l, x, n, with)
	b.undo.push(&ReplaceRecord{
		cursors: cursors{Before: at, After: at},
		At:      at,
		Old:     old,
		New:     append([]byte(nil), with...),
	})
}

// ReplaceOne replaces the occurrence of s under the cursor, if there is
// one, and moves on to the next occurrence.
func (e *Editor) ReplaceOne(s, with string) error {
	e.begin(false, false)
	p, err := e.compile(s)
	if err != nil {
		e.SetMessage("%v", err)
		return err
	}
	b := e.Buffer()
	l, x := b.current, b.currentX
	if start, end, ok := p.Find(l.Data, x); ok && start == x {
		repl := p.Replacement(l.Data, start, []byte(with))
		e.replaceAt(b, l, start, end-start, repl)
		b.currentX = start + len(repl)
		if end == start {
			b.currentX = text.Right(l.Data, b.currentX)
		}
		b.resetMultis(l, false)
		e.window.refreshNeeded = true
	}
	return e.findFrom(p, b.currentX, false, true)
}

// ReplaceAll replaces every occurrence of s in the marked region, or in
// the whole buffer, and returns how many were replaced. When cancelled
// the replacements made so far stay and can be undone.
func (e *Editor) ReplaceAll(s, with string) (int, error) {
	e.begin(false, false)
	p, err := e.compile(s)
	if err != nil {
		e.SetMessage("%v", err)
		return 0, err
	}
	b := e.Buffer()
	top, topX, bot, botX, marked := b.markRegion()
	if !marked {
		top, topX, bot, botX = b.lines.Top, 0, b.lines.Bot, len(b.lines.Bot.Data)
	}
	count := 0
	scanned := 0
	for l := top; l != nil; l = l.Next() {
		scanned++
		if scanned%replacePoll == 0 && e.cancelled() {
			e.finishReplace(b, top, l, count)
			e.SetMessage("Cancelled after %d replacements", count)
			return count, search.ErrCancelled
		}
		x := 0
		if l == top {
			x = topX
		}
		for {
			start, end, ok := p.Find(l.Data, x)
			if !ok || (l == bot && end > botX) {
				break
			}
			repl := p.Replacement(l.Data, start, []byte(with))
			e.replaceAt(b, l, start, end-start, repl)
			count++
			if l == bot {
				botX += len(repl) - (end - start)
			}
			x = start + len(repl)
			if end == start {
				if x >= len(l.Data) {
					break
				}
				x = text.Right(l.Data, x)
			}
		}
		if l == bot {
			break
		}
	}
	e.finishReplace(b, top, bot, count)
	if count == 1 {
		e.SetMessage("Replaced 1 occurrence")
	} else {
		e.SetMessage("Replaced %d occurrences", count)
	}
	return count, nil
}

func (e *Editor) finishReplace(b *Buffer, top, bot *lines.Line, count int) {
	if count == 0 {
		return
	}
	for l := top; l != nil; l = l.Next() {
		l.Multidata = nil
		if l == bot {
			break
		}
	}
	b.resetMultis(top, true)
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.window.refreshNeeded = true
}
