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

package search

import (
	"testing"

	"github.com/timburks/pinot/pkg/lines"
)

func TestCompile(t *testing.T) {
	if _, err := Compile("", Options{}); err != ErrEmptyPattern {
		t.Errorf("Expected ErrEmptyPattern, got %v", err)
	}
	if _, err := Compile("a(", Options{Regexp: true}); err == nil {
		t.Errorf("Expected an error for a bad regex")
	}
	p, err := Compile("a(", Options{})
	if err != nil {
		t.Fatalf("Literal patterns are always valid: %v", err)
	}
	if start, end, ok := p.Find([]byte("xa(y"), 0); !ok || start != 1 || end != 3 {
		t.Errorf("Literal match failed: %d %d %v", start, end, ok)
	}
}

func TestCase(t *testing.T) {
	data := []byte("Four score")
	insensitive, _ := Compile("four", Options{})
	if _, _, ok := insensitive.Find(data, 0); !ok {
		t.Errorf("Expected a case-insensitive match")
	}
	sensitive, _ := Compile("four", Options{CaseSensitive: true})
	if _, _, ok := sensitive.Find(data, 0); ok {
		t.Errorf("Expected no case-sensitive match")
	}
}

func TestFindLast(t *testing.T) {
	p, _ := Compile("ab", Options{})
	data := []byte("ab ab ab")
	cases := []struct {
		before int
		start  int
		ok     bool
	}{
		{0, 0, false},
		{1, 0, true},
		{3, 0, true},
		{4, 3, true},
		{9, 6, true},
	}
	for _, c := range cases {
		start, _, ok := p.FindLast(data, c.before)
		if ok != c.ok || (ok && start != c.start) {
			t.Errorf("FindLast(%d): expected %d %v, got %d %v", c.before, c.start, c.ok, start, ok)
		}
	}
}

func TestAnchors(t *testing.T) {
	p, _ := Compile("^ab", Options{Regexp: true})
	if _, _, ok := p.Find([]byte("abab"), 1); ok {
		t.Errorf("An anchored pattern should not match mid-line")
	}
}

func TestReplacement(t *testing.T) {
	p, _ := Compile(`(\w+)@(\w+)`, Options{Regexp: true})
	data := []byte("mail bob@home now")
	start, _, _ := p.Find(data, 0)
	if got := string(p.Replacement(data, start, []byte("$2:$1"))); got != "home:bob" {
		t.Errorf("Expected home:bob, got %s", got)
	}
	l, _ := Compile("$1", Options{})
	if got := string(l.Replacement([]byte("$1"), 0, []byte("$2"))); got != "$2" {
		t.Errorf("Literal replacements are not expanded, got %s", got)
	}
}

func TestFindNext(t *testing.T) {
	s := lines.FromStrings("one fish", "two fish", "red", "blue fish")
	p, _ := Compile("fish", Options{})
	second := s.Top.Next()

	m, err := FindNext(s, second, 0, p, false, false, nil)
	if err != nil || m.Line != second || m.X != 4 || m.Length != 4 || m.Wrapped {
		t.Errorf("Unexpected forward match %+v %v", m, err)
	}
	m, err = FindNext(s, second, 5, p, false, false, nil)
	if err != nil || m.Line != s.Bot || m.X != 5 {
		t.Errorf("Unexpected match after the cursor %+v %v", m, err)
	}
	if _, err = FindNext(s, s.Bot, 6, p, false, false, nil); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound without wrap, got %v", err)
	}
	m, err = FindNext(s, s.Bot, 6, p, false, true, nil)
	if err != nil || m.Line != s.Top || !m.Wrapped {
		t.Errorf("Expected a wrapped match on the first line, got %+v %v", m, err)
	}
	m, err = FindNext(s, second, 4, p, true, false, nil)
	if err != nil || m.Line != s.Top || m.X != 4 {
		t.Errorf("Unexpected backward match %+v %v", m, err)
	}
	m, err = FindNext(s, s.Top, 4, p, true, true, nil)
	if err != nil || m.Line != s.Bot || !m.Wrapped {
		t.Errorf("Expected a backward wrapped match on the last line, got %+v %v", m, err)
	}
}

func TestFindNextWrapsToStartLine(t *testing.T) {
	s := lines.FromStrings("fish a", "b")
	p, _ := Compile("fish", Options{})
	m, err := FindNext(s, s.Top, 2, p, false, true, nil)
	if err != nil || m.Line != s.Top || m.X != 0 || !m.Wrapped {
		t.Errorf("Expected the match before the cursor after wrapping, got %+v %v", m, err)
	}
	q, _ := Compile("zebra", Options{})
	if _, err := FindNext(s, s.Top, 0, q, false, true, nil); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFindNextCancel(t *testing.T) {
	text := make([]string, 1000)
	s := lines.FromStrings(text...)
	p, _ := Compile("never", Options{})
	polls := 0
	cancel := func() bool {
		polls++
		return true
	}
	if _, err := FindNext(s, s.Top, 0, p, false, true, cancel); err != ErrCancelled {
		t.Errorf("Expected ErrCancelled, got %v", err)
	}
	if polls != 1 {
		t.Errorf("Expected one poll, got %d", polls)
	}
}

func TestOverlappingMatches(t *testing.T) {
	p, _ := Compile("aa", Options{})
	data := []byte("aaaa")
	for from, want := range []int{0, 1, 2} {
		if start, end, ok := p.Find(data, from); !ok || start != want || end != want+2 {
			t.Errorf("Find(%d): expected %d, got %d %d %v", from, want, start, end, ok)
		}
	}
	if _, _, ok := p.Find(data, 3); ok {
		t.Errorf("Find(3): expected no match")
	}
	if start, _, ok := p.FindLast(data, 5); !ok || start != 2 {
		t.Errorf("FindLast: expected 2, got %d %v", start, ok)
	}
}

func TestBoundariesKeepContext(t *testing.T) {
	p, _ := Compile(`\bab`, Options{Regexp: true})
	data := []byte("xab ab")
	if start, _, ok := p.Find(data, 1); !ok || start != 4 {
		t.Errorf("Expected the match after the blank, got %d %v", start, ok)
	}
	r, _ := Compile(`(a)(a)`, Options{Regexp: true})
	if got := string(r.Replacement([]byte("aaa"), 1, []byte("$2-$1"))); got != "a-a" {
		t.Errorf("Unexpected replacement '%s'", got)
	}
}
