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
)

func TestFormat(t *testing.T) {
	e := newEditor(nil, "package main", "", "func main(){", "x:=1", "_ = x", "}", "")
	place(e, 4, 2)
	if err := e.Format(); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	formatted := []string{"package main", "", "func main() {", "\tx := 1", "\t_ = x", "}", ""}
	check(t, e, formatted...)
	checkCursor(t, e, 4, 2)
	e.Undo()
	check(t, e, "package main", "", "func main(){", "x:=1", "_ = x", "}", "")
	e.Redo()
	check(t, e, formatted...)

	if err := e.Format(); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if e.GetMessage() != "Already formatted" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
}

func TestFormatError(t *testing.T) {
	e := newEditor(nil, "package main", "func {", "")
	if err := e.Format(); err == nil {
		t.Errorf("Expected bad source to fail")
	}
	check(t, e, "package main", "func {", "")
	if e.filepart {
		t.Errorf("A failed format left a partition open")
	}
}
