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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/timburks/pinot/pkg/config"
	"github.com/timburks/pinot/pkg/lines"
)

func checkCutBuffer(t *testing.T, e *Editor, expected ...string) {
	t.Helper()
	if got := e.GetCutBuffer().Strings(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected cut buffer %q, got %q", expected, got)
	}
}

func TestCutMarkedText(t *testing.T) {
	e := newEditor(nil, "abc", "def", "ghi", "")
	mark(e, 1, 1)
	place(e, 2, 2)
	if err := e.Cut(); err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	check(t, e, "af", "ghi", "")
	checkCutBuffer(t, e, "bc", "de")
	checkCursor(t, e, 1, 1)
	if _, _, ok := e.Buffer().GetMark(); ok {
		t.Errorf("Cutting should clear the mark")
	}
	if err := e.Uncut(); err != nil {
		t.Fatalf("Uncut failed: %v", err)
	}
	check(t, e, "abc", "def", "ghi", "")
	checkCursor(t, e, 2, 2)
}

func TestCutLines(t *testing.T) {
	e := setup(t)
	place(e, 3, 7)
	e.Cut()
	e.Cut()
	checkCutBuffer(t, e,
		"Four score and seven years ago our fathers brought forth on this",
		"continent a new nation, conceived in liberty and dedicated to the",
		"")
	if n := e.Buffer().undo.Len(); n != 1 {
		t.Errorf("Consecutive cuts should share a record, got %d", n)
	}
	if lineText(e, 3) != "proposition that all men are created equal." {
		t.Errorf("Unexpected line after cut '%s'", lineText(e, 3))
	}
	e.Undo()
	final(t, e)
}

// A cut that does not follow another cut replaces the cut buffer.
func TestCutReplacesCutBuffer(t *testing.T) {
	e := newEditor(nil, "one", "two", "three", "")
	e.Cut()
	e.MoveDown()
	e.Cut()
	checkCutBuffer(t, e, "three", "")
	check(t, e, "two", "")
}

func TestCutLastLine(t *testing.T) {
	e := newEditor(nil, "one", "two")
	place(e, 2, 1)
	e.Cut()
	check(t, e, "one", "")
	checkCutBuffer(t, e, "two")
	e.Undo()
	check(t, e, "one", "two")
}

func TestCutToEndOfLine(t *testing.T) {
	c := config.Default()
	c.CutToEnd = true
	e := newEditor(c, "abcdef", "ghi", "")
	place(e, 1, 2)
	e.Cut()
	check(t, e, "ab", "ghi", "")
	e.Cut()
	check(t, e, "abghi", "")
	checkCutBuffer(t, e, "cdef", "")
	e.Undo()
	check(t, e, "abcdef", "ghi", "")
}

func TestCutKeepsOneEmptyLastLine(t *testing.T) {
	c := config.Default()
	c.CutToEnd = true
	e := newEditor(c, "abc", "def", "")
	place(e, 1, 1)
	e.Cut()
	check(t, e, "a", "def", "")

	e = newEditor(nil, "abc", "def", "")
	place(e, 1, 1)
	e.Cut()
	check(t, e, "def", "")
	place(e, 1, 0)
	e.CutToEnd()
	check(t, e, "")
	e.Undo()
	e.Undo()
	check(t, e, "abc", "def", "")
}

func TestCutToEnd(t *testing.T) {
	e := setup(t)
	place(e, 28, 7)
	e.CutToEnd()
	if n := e.Buffer().lines.Count(); n != 29 {
		t.Errorf("Expected 29 lines, got %d", n)
	}
	if lineText(e, 28) != "Abraham" || lineText(e, 29) != "" {
		t.Errorf("Unexpected last lines '%s' '%s'", lineText(e, 28), lineText(e, 29))
	}
	checkCutBuffer(t, e, " Lincoln", "November 19, 1863", "")
	e.Undo()
	final(t, e)
}

func TestCopy(t *testing.T) {
	e := setup(t)
	place(e, 1, 0)
	if err := e.Copy(); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	checkCutBuffer(t, e, "THE GETTYSBURG ADDRESS:", "")
	checkCursor(t, e, 2, 0)
	e.Uncut()
	if lineText(e, 2) != "THE GETTYSBURG ADDRESS:" || lineText(e, 3) != "" {
		t.Errorf("Unexpected lines after paste '%s' '%s'", lineText(e, 2), lineText(e, 3))
	}
	e.Undo()
	final(t, e)
}

func TestCopyMarked(t *testing.T) {
	e := newEditor(nil, "abc", "def", "")
	mark(e, 1, 1)
	place(e, 2, 1)
	e.Copy()
	checkCutBuffer(t, e, "bc", "d")
	check(t, e, "abc", "def", "")
	if e.Buffer().undo.Len() != 0 {
		t.Errorf("Copying should not be recorded")
	}
	if e.filepart {
		t.Errorf("Copy left a partition open")
	}
}

func TestPartitionGuard(t *testing.T) {
	e := newEditor(nil, "abc", "def", "")
	b := e.Buffer()
	err := e.withPartition(b, b.lines.Top, 1, b.lines.Top.Next(), 1, func() error {
		return e.withPartition(b, b.lines.Top, 0, b.lines.Top, 1, func() error {
			return nil
		})
	})
	if !errors.Is(err, lines.ErrPartitioned) {
		t.Errorf("Expected a nested partition to fail, got %v", err)
	}
	if e.filepart {
		t.Errorf("The partition is still marked open")
	}
	check(t, e, "abc", "def", "")
}

func TestInsertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insert.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e := newEditor(nil, "abc", "")
	place(e, 1, 1)
	if err := e.InsertFile(path); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	check(t, e, "aone", "two", "bc", "")
	if e.GetMessage() != "Inserted 3 lines" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
	e.Undo()
	check(t, e, "abc", "")
	if e.GetMessage() != "Undid file insertion" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
	if err := e.InsertFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}
