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
	"testing"

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/syntax"
)

// goEditor returns an editor on a Go buffer. Multi-line rule 1 of the Go
// syntax is the block comment.
func goEditor(text ...string) *Editor {
	e := NewEditor(nil)
	b := newBufferWithLines("x.go", lines.FromStrings(text...))
	b.bindSyntax("", nil)
	e.buffers[0] = b
	return e
}

const comment = 1

func checkStates(t *testing.T, e *Editor, expected ...int) {
	t.Helper()
	b := e.Buffer()
	n := 1
	for l := b.lines.Top; l != nil; l = l.Next() {
		if n > len(expected) {
			break
		}
		if got := b.multiState(l, comment); got != expected[n-1] {
			t.Errorf("Line %d: expected state %d, got %d", n, expected[n-1], got)
		}
		n++
	}
}

func TestMultiStates(t *testing.T) {
	e := goEditor("a /* b", "c", "d */ e", "f", "")
	if e.Buffer().GetSyntax().Name != "go" {
		t.Fatalf("Expected go syntax, got %s", e.Buffer().GetSyntax().Name)
	}
	checkStates(t, e, syntax.EndAfter, syntax.WholeLine, syntax.BeginBefore, syntax.None, syntax.None)
}

func TestResetMultisOnEdit(t *testing.T) {
	e := goEditor("a /* b", "c", "d */ e", "f", "")
	place(e, 1, 6)
	e.window.refreshNeeded = false
	e.InsertText(" */")
	checkStates(t, e, syntax.StartEndHere, syntax.None, syntax.None, syntax.None, syntax.None)
	if !e.window.refreshNeeded {
		t.Errorf("Closing a comment changes other lines, so the window must be refreshed")
	}

	e.window.refreshNeeded = false
	place(e, 4, 1)
	e.InsertText("g")
	if e.window.refreshNeeded {
		t.Errorf("An edit that changes no other line should not refresh")
	}
	e.Undo()
	e.Undo()
	checkStates(t, e, syntax.EndAfter, syntax.WholeLine, syntax.BeginBefore, syntax.None, syntax.None)
}

// The scan below an edit stops at the first line whose state holds.
func TestResetMultisStops(t *testing.T) {
	e := goEditor("/* a */", "b", "c", "d", "")
	b := e.Buffer()
	// a stale state past the stopping point survives
	b.lines.Find(4).Multidata[comment] = syntax.WholeLine
	place(e, 1, 7)
	e.InsertText("x")
	if got := b.lines.Find(4).Multidata[comment]; got != syntax.WholeLine {
		t.Errorf("The scan went past an unchanged line")
	}
	b.resetMultis(b.lines.Find(1), true)
	if got := b.lines.Find(4).Multidata[comment]; got != syntax.WholeLine {
		t.Errorf("The scan went past an unchanged line")
	}
}

func TestPrecalcCancel(t *testing.T) {
	text := make([]string, 300)
	for i := range text {
		text[i] = "x"
	}
	text[0] = "/*"
	e := goEditor(text...)
	b := e.Buffer()
	for l := b.lines.Top; l != nil; l = l.Next() {
		l.Multidata = nil
	}
	if b.precalcMultis(func() bool { return true }) {
		t.Errorf("Expected the precalculation to stop")
	}
	last := b.lines.Bot
	if len(last.Multidata) > 0 && last.Multidata[comment] != syntax.Unknown {
		t.Errorf("Expected the last line to be left unknown")
	}
	if got := b.multiState(last, comment); got != syntax.WholeLine {
		t.Errorf("Expected the last line inside the comment, got %d", got)
	}
	if !b.precalcMultis(nil) {
		t.Errorf("Expected the precalculation to finish")
	}
}

func TestMultiColors(t *testing.T) {
	e := goEditor("x /* a", "b */ y", "")
	display(t, e)
	b := e.Buffer()
	cells := e.window.cells(b, b.lines.Find(2), 0, 20)
	if cells[0].Color == cells[5].Color {
		t.Errorf("Expected the comment and the code after it to differ")
	}
}

func TestResetMultisStopsAtUncomputed(t *testing.T) {
	e := goEditor("a", "b", "c", "d", "")
	b := e.Buffer()
	for l := b.lines.Top; l != nil; l = l.Next() {
		l.Multidata = nil
	}
	place(e, 1, 1)
	e.InsertText(" /*")
	for n := 2; n <= 5; n++ {
		if data := b.lines.Find(n).Multidata; len(data) > 0 && data[comment] != syntax.Unknown {
			t.Errorf("Line %d was computed by the edit", n)
		}
	}
	checkStates(t, e, syntax.EndAfter, syntax.WholeLine, syntax.WholeLine, syntax.WholeLine, syntax.WholeLine)
}

func TestResetMultisCrossesUncomputedLines(t *testing.T) {
	e := goEditor("a", "b", "c", "d", "")
	b := e.Buffer()
	b.lines.Find(2).Multidata = nil
	b.lines.Find(3).Multidata = nil
	place(e, 1, 1)
	e.InsertText(" /*")
	if got := b.lines.Find(4).Multidata[comment]; got != syntax.WholeLine {
		t.Errorf("Expected line 4 inside the comment, got %d", got)
	}
	checkStates(t, e, syntax.EndAfter, syntax.WholeLine, syntax.WholeLine, syntax.WholeLine, syntax.WholeLine)
}
