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
	"strings"
	"testing"

	"github.com/timburks/pinot/pkg/config"
	"github.com/timburks/pinot/pkg/search"
)

func TestSearch(t *testing.T) {
	e := setup(t)
	place(e, 1, 0)
	if err := e.Search("nation", false); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	checkCursor(t, e, 4, 16)
	if err := e.SearchAgain(); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	checkCursor(t, e, 7, strings.Index(lineText(e, 7), "nation"))
	if e.GetMessage() != "" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
}

func TestSearchBackwardWraps(t *testing.T) {
	e := setup(t)
	place(e, 1, 0)
	if err := e.Search("lincoln", true); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	checkCursor(t, e, 28, 8)
	if e.GetMessage() != "Search Wrapped" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
	if err := e.Search("Lincoln", false); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	checkCursor(t, e, 28, 8)
	if e.GetMessage() != "This is the only occurrence" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
}

func TestSearchNotFound(t *testing.T) {
	e := setup(t)
	place(e, 3, 2)
	err := e.Search("zebra", false)
	if !errors.Is(err, search.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
	if e.GetMessage() != "\"zebra\" not found" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
	checkCursor(t, e, 3, 2)

	e.config.Regexp = true
	if err := e.Search("(", false); err == nil {
		t.Errorf("Expected a bad pattern to fail")
	}
}

func TestSearchCaseSensitive(t *testing.T) {
	c := config.Default()
	c.CaseSensitive = true
	e := newEditor(c, "Go go GO", "")
	e.Search("GO", false)
	checkCursor(t, e, 1, 6)
}

func TestReplaceAll(t *testing.T) {
	e := setup(t)
	n, err := e.ReplaceAll("nation", "country")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 replacements, got %d", n)
	}
	if e.GetMessage() != "Replaced 5 occurrences" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
	if !strings.Contains(lineText(e, 4), "new country,") {
		t.Errorf("Unexpected line '%s'", lineText(e, 4))
	}
	for i := 0; i < n; i++ {
		e.Undo()
	}
	final(t, e)
}

func TestReplaceAllInRegion(t *testing.T) {
	e := newEditor(nil, "aaa", "aaa", "aaa", "")
	mark(e, 1, 1)
	place(e, 3, 2)
	n, _ := e.ReplaceAll("a", "xy")
	check(t, e, "axyxy", "xyxyxy", "xyxya", "")
	if n != 7 {
		t.Errorf("Expected 7 replacements, got %d", n)
	}
}

func TestReplaceExpression(t *testing.T) {
	c := config.Default()
	c.Regexp = true
	e := newEditor(c, "me@home you@work", "")
	e.ReplaceAll(`(\w+)@(\w+)`, "$2 for $1")
	check(t, e, "home for me work for you", "")
}

func TestReplaceEmptyMatches(t *testing.T) {
	c := config.Default()
	c.Regexp = true
	e := newEditor(c, "ab", "")
	n, _ := e.ReplaceAll(`x*`, "-")
	check(t, e, "-a-b-", "-")
	if n != 4 {
		t.Errorf("Expected 4 replacements, got %d", n)
	}
}

func TestReplaceOne(t *testing.T) {
	e := newEditor(nil, "cat cat cat", "")
	if err := e.ReplaceOne("cat", "dog"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	check(t, e, "dog cat cat", "")
	checkCursor(t, e, 1, 4)
	e.ReplaceOne("cat", "dog")
	check(t, e, "dog dog cat", "")
	checkCursor(t, e, 1, 8)
	e.Undo()
	check(t, e, "dog cat cat", "")
}

func TestReplaceOneAdjacent(t *testing.T) {
	e := newEditor(nil, "aa", "a", "")
	e.ReplaceOne("a", "b")
	check(t, e, "ba", "a", "")
	checkCursor(t, e, 1, 1)
	e.ReplaceOne("a", "b")
	check(t, e, "bb", "a", "")
	checkCursor(t, e, 2, 0)
}

func TestReplaceCancel(t *testing.T) {
	text := make([]string, 200)
	for i := range text {
		text[i] = "x"
	}
	e := newEditor(nil, append(text, "")...)
	e.SetCancel(func() bool { return true })
	n, err := e.ReplaceAll("x", "y")
	if !errors.Is(err, search.ErrCancelled) {
		t.Errorf("Expected the replace to be cancelled, got %v", err)
	}
	if n != 63 {
		t.Errorf("Expected 63 replacements before cancelling, got %d", n)
	}
	if e.filepart {
		t.Errorf("Cancelling left a partition open")
	}
	for i := 0; i < n; i++ {
		e.Undo()
	}
	check(t, e, append(text, "")...)
}
