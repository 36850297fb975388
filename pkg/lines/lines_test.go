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

package lines

import (
	"reflect"
	"testing"
)

func check(t *testing.T, s *Store, expected ...string) {
	t.Helper()
	if err := s.Check(); err != nil {
		t.Fatalf("Broken store: %v", err)
	}
	if got := s.Strings(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore()
	check(t, s, "")
	if s.Top != s.Bot || s.Top.Number != 1 {
		t.Errorf("Expected a single line numbered 1")
	}
}

func TestSpliceAndUnlink(t *testing.T) {
	s := FromStrings("a", "c")
	b := NewString("b", s.Top)
	Splice(s.Top, b, s.Top.Next())
	Renumber(b)
	check(t, s, "a", "b", "c")
	if b.Number != 2 || s.Bot.Number != 3 {
		t.Errorf("Unexpected numbering %d %d", b.Number, s.Bot.Number)
	}
	Unlink(b)
	Renumber(s.Top)
	check(t, s, "a", "c")
	if b.Prev() != nil || b.Next() != nil {
		t.Errorf("Unlinked line still has links")
	}
	if b.String() != "b" {
		t.Errorf("Unlink should keep the line's data")
	}
}

func TestRenumberLocality(t *testing.T) {
	s := FromStrings("1", "2", "3", "4", "5")
	third := s.Find(3)
	s.Top.Number = 100
	s.Top.Next().Number = 200
	third.Number = 0
	Renumber(third)
	if s.Top.Number != 100 || s.Top.Next().Number != 200 {
		t.Errorf("Renumber changed lines before its starting point")
	}
	if third.Number != 201 || s.Bot.Number != 203 {
		t.Errorf("Unexpected numbering %d %d", third.Number, s.Bot.Number)
	}
}

func TestCopyList(t *testing.T) {
	s := FromStrings("one", "two", "three")
	c := s.Copy()
	check(t, c, "one", "two", "three")
	c.Top.Data[0] = 'O'
	if s.Top.String() != "one" {
		t.Errorf("Copy shares data with the original")
	}
	c.Free()
	if !c.Empty() || c.Count() != 0 {
		t.Errorf("Expected an empty store after Free")
	}
	check(t, s, "one", "two", "three")
}

func TestFind(t *testing.T) {
	s := FromStrings("a", "b", "c", "d")
	for n := 1; n <= 4; n++ {
		if l := s.Find(n); l == nil || l.Number != n {
			t.Errorf("Find(%d) failed", n)
		}
	}
	if s.Find(0) != nil || s.Find(5) != nil {
		t.Errorf("Find should fail outside the store")
	}
}

func TestSize(t *testing.T) {
	s := FromStrings("ab", "日本", "")
	if n := s.Size(); n != 6 {
		t.Errorf("Expected 6 characters, got %d", n)
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	text := []string{"abc", "def", "ghi", "jkl"}
	for topN := 1; topN <= 4; topN++ {
		for botN := topN; botN <= 4; botN++ {
			for topX := 0; topX <= 3; topX++ {
				for botX := 0; botX <= 3; botX++ {
					if topN == botN && topX > botX {
						continue
					}
					s := FromStrings(text...)
					top, bot := s.Top, s.Bot
					p, err := s.Partition(s.Find(topN), topX, s.Find(botN), botX)
					if err != nil {
						t.Fatalf("Partition failed: %v", err)
					}
					if s.Count() != botN-topN+1 {
						t.Errorf("Partition holds %d lines", s.Count())
					}
					p.Unpartition()
					check(t, s, text...)
					if s.Top != top || s.Bot != bot {
						t.Errorf("Boundary lines were not restored")
					}
					if s.Partitioned() {
						t.Errorf("Store still partitioned")
					}
				}
			}
		}
	}
}

func TestPartitionContents(t *testing.T) {
	s := FromStrings("abc", "def", "ghi")
	p, err := s.Partition(s.Top, 1, s.Top.Next(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Strings(); !reflect.DeepEqual(got, []string{"bc", "de"}) {
		t.Errorf("Unexpected partition contents %q", got)
	}
	if _, err := s.Partition(s.Top, 0, s.Top, 0); err != ErrPartitioned {
		t.Errorf("Expected ErrPartitioned, got %v", err)
	}
	p.Unpartition()
	p.Unpartition()
	check(t, s, "abc", "def", "ghi")
}

func TestExtractIntoEmpty(t *testing.T) {
	s := FromStrings("abc", "def", "ghi")
	cut := &Store{}
	gap, err := s.Extract(s.Top, 1, s.Top.Next(), 2, cut)
	if err != nil {
		t.Fatal(err)
	}
	check(t, s, "af", "ghi")
	check(t, cut, "bc", "de")
	if gap != s.Top || gap.String() != "af" {
		t.Errorf("Unexpected gap line %q", gap.String())
	}
}

func TestExtractAppends(t *testing.T) {
	s := FromStrings("one", "two", "three", "four")
	cut := &Store{}
	if _, err := s.Extract(s.Top, 0, s.Top.Next(), 0, cut); err != nil {
		t.Fatal(err)
	}
	check(t, s, "two", "three", "four")
	check(t, cut, "one", "")
	if _, err := s.Extract(s.Top, 0, s.Top.Next(), 0, cut); err != nil {
		t.Fatal(err)
	}
	check(t, s, "three", "four")
	check(t, cut, "one", "two", "")
	if _, err := s.Extract(s.Top, 2, s.Top, 4, cut); err != nil {
		t.Fatal(err)
	}
	check(t, s, "the", "four")
	check(t, cut, "one", "two", "re")
}

func TestExtractNothing(t *testing.T) {
	s := FromStrings("abc")
	cut := &Store{}
	gap, err := s.Extract(s.Top, 1, s.Top, 1, cut)
	if err != nil || gap != s.Top || !cut.Empty() {
		t.Errorf("Expected an empty extraction to change nothing")
	}
}

func TestInsertCopy(t *testing.T) {
	s := FromStrings("abc", "ghi")
	src := FromStrings("X", "YY")
	first, last, end, err := s.InsertCopy(s.Top, 1, src)
	if err != nil {
		t.Fatal(err)
	}
	check(t, s, "aX", "YYbc", "ghi")
	if first != s.Top || last != s.Top.Next() || end != 2 {
		t.Errorf("Unexpected result %q %q %d", first, last, end)
	}
	// the source is left alone
	check(t, src, "X", "YY")

	first, last, end, err = s.InsertCopy(s.Bot, 3, FromStrings("!"))
	if err != nil {
		t.Fatal(err)
	}
	check(t, s, "aX", "YYbc", "ghi!")
	if first != last || end != 4 {
		t.Errorf("Expected a single line insertion ending at 4, got %d", end)
	}
}

func TestExtractThenInsertRestores(t *testing.T) {
	s := FromStrings("abc", "def", "ghi")
	cut := &Store{}
	gap, err := s.Extract(s.Top, 1, s.Top.Next(), 2, cut)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.InsertCopy(gap, 1, cut); err != nil {
		t.Fatal(err)
	}
	check(t, s, "abc", "def", "ghi")
}

func TestJoin(t *testing.T) {
	s := FromStrings("ab", "c")
	s.Join(FromStrings("d", "ef"))
	check(t, s, "ab", "cd", "ef")

	empty := &Store{}
	src := FromStrings("x")
	empty.Join(src)
	check(t, empty, "x")
	if !src.Empty() {
		t.Errorf("Join should leave the source empty")
	}
	empty.Join(&Store{})
	check(t, empty, "x")
}
