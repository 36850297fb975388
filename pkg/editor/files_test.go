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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/timburks/pinot/pkg/config"
)

func TestReadLinesFormats(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		format Format
		lines  []string
	}{
		{"unix", "a\nb\n", FormatUnix, []string{"a", "b", ""}},
		{"unix without final newline", "a\nb", FormatUnix, []string{"a", "b"}},
		{"dos", "a\r\nb\r\n", FormatDOS, []string{"a", "b", ""}},
		{"mac", "a\rb\r", FormatMac, []string{"a", "b", ""}},
		{"empty", "", FormatUnix, []string{""}},
		{"nul bytes", "a\x00b\n", FormatUnix, []string{"a\x00b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, format, err := ReadLines(strings.NewReader(tt.text))
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("Expected %s, got %s", tt.format, format)
			}
			if got := s.Strings(); !reflect.DeepEqual(got, tt.lines) {
				t.Errorf("Expected %q, got %q", tt.lines, got)
			}
			var buf bytes.Buffer
			if err := WriteLines(s, &buf, format); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if buf.String() != tt.text {
				t.Errorf("Expected %q written back, got %q", tt.text, buf.String())
			}
		})
	}
}

func TestWriteBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c := config.Default()
	c.Backup = true
	e := NewEditor(c)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	e.InsertText("new ")
	if !e.Buffer().GetModified() {
		t.Errorf("Typing should mark the buffer modified")
	}
	if err := e.WriteFile(""); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if e.Buffer().GetModified() {
		t.Errorf("Writing should clear the modified flag")
	}
	if got, _ := os.ReadFile(path); string(got) != "new old\n" {
		t.Errorf("Unexpected file contents %q", got)
	}
	if got, _ := os.ReadFile(path + "~"); string(got) != "old\n" {
		t.Errorf("Unexpected backup contents %q", got)
	}
	if e.GetMessage() != "Wrote 1 lines" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
}

func TestWriteRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.txt")
	e := newEditor(nil, "abc", "def", "")
	mark(e, 1, 1)
	place(e, 2, 2)
	if err := e.WriteRegion(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "bc\nde" {
		t.Errorf("Unexpected region %q", got)
	}
	check(t, e, "abc", "def", "")
	if e.filepart {
		t.Errorf("Writing a region left a partition open")
	}
}

func TestChangedOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e := NewEditor(nil)
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	if e.Buffer().ChangedOnDisk() {
		t.Errorf("A file just read has not changed")
	}
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	os.Chtimes(path, later, later)
	if !e.Buffer().ChangedOnDisk() {
		t.Errorf("Expected the change on disk to be seen")
	}
	e.Reload()
	check(t, e, "one", "two", "")
	e.Undo()
	if e.GetMessage() != "Cannot undo reload" {
		t.Errorf("Unexpected message '%s'", e.GetMessage())
	}
}
