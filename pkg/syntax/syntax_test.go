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

package syntax

import (
	"reflect"
	"testing"

	"github.com/timburks/pinot/pkg/types"
)

func TestEvaluateBlockComment(t *testing.T) {
	r := Multi(`/\*`, `\*/`, types.ColorBlue)
	cases := []struct {
		data   string
		inside bool
		state  int
		spans  [][2]int
	}{
		{"x := 1", false, None, nil},
		{"a /* b */ c", false, StartEndHere, [][2]int{{2, 9}}},
		{"a /* b", false, EndAfter, [][2]int{{2, 6}}},
		{"still", true, WholeLine, [][2]int{{0, 5}}},
		{"end */ x", true, BeginBefore, [][2]int{{0, 6}}},
		{"end */ x /* y", true, EndAfter, [][2]int{{0, 6}, {9, 13}}},
		{"", false, None, nil},
		{"", true, WholeLine, [][2]int{{0, 0}}},
	}
	for _, c := range cases {
		state, spans := Evaluate([]byte(c.data), r, c.inside)
		if state != c.state {
			t.Errorf("%q (inside=%v): expected state %d, got %d", c.data, c.inside, c.state, state)
		}
		if !reflect.DeepEqual(spans, c.spans) {
			t.Errorf("%q (inside=%v): expected spans %v, got %v", c.data, c.inside, c.spans, spans)
		}
	}
}

func TestEvaluateSameDelimiters(t *testing.T) {
	r := Multi("`", "`", types.ColorYellow)
	if state, _ := Evaluate([]byte("s := `abc"), r, false); state != EndAfter {
		t.Errorf("Expected open raw string, got state %d", state)
	}
	if state, spans := Evaluate([]byte("abc`"), r, true); state != BeginBefore || spans[0] != [2]int{0, 4} {
		t.Errorf("Expected closed raw string, got state %d spans %v", state, spans)
	}
	if state, _ := Evaluate([]byte("`a` `b`"), r, false); state != StartEndHere {
		t.Errorf("Expected two closed raw strings, got state %d", state)
	}
}

func TestEndsInside(t *testing.T) {
	for state, expected := range map[int]bool{
		Unknown: false, None: false, BeginBefore: false,
		EndAfter: true, WholeLine: true, StartEndHere: false,
	} {
		if EndsInside(state) != expected {
			t.Errorf("EndsInside(%d) should be %v", state, expected)
		}
	}
}

func TestColors(t *testing.T) {
	g := Named("go")
	if g == nil || g.Multis() != 2 {
		t.Fatalf("Expected go syntax with two multi-line rules")
	}
	outside := func(int) bool { return false }
	colors := Colors([]byte(`x := "s" // c`), g, outside)
	for i, c := range colors {
		var expected types.Color
		switch {
		case i >= 5 && i < 8:
			expected = types.ColorYellow
		case i >= 9:
			expected = types.ColorBlue
		}
		if c != expected {
			t.Errorf("Byte %d: expected color %x, got %x", i, expected, c)
		}
	}
	inside := func(id int) bool { return id == 1 }
	for i, c := range Colors([]byte("comment */ x"), g, inside) {
		if i < 10 && c != types.ColorBlue {
			t.Errorf("Byte %d should be in the comment", i)
		}
		if i >= 10 && c != types.ColorDefault {
			t.Errorf("Byte %d should be plain", i)
		}
	}
	if Colors([]byte("abc"), nil, outside)[0] != types.ColorDefault {
		t.Errorf("No syntax should paint nothing")
	}
}

func TestSelect(t *testing.T) {
	cases := map[string]string{
		"main.go":   "go",
		"x.c":       "c",
		"run.bash":  "sh",
		"util.cxx":  "c",
		"notes.txt": "none",
		"":          "none",
	}
	for filename, expected := range cases {
		if s := Select(filename, nil); s.Name != expected {
			t.Errorf("Select(%q): expected %s, got %s", filename, expected, s.Name)
		}
	}
}
