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
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/timburks/pinot/pkg/syntax"
)

// Open reads a file into a new buffer placed after the current one, and
// makes it current. A file that does not exist opens as a new empty
// buffer with that name.
func (e *Editor) Open(path string) error {
	e.begin(false, false)
	s, format, err := readFile(path)
	isNew := errors.Is(err, fs.ErrNotExist)
	if err != nil && !isNew {
		e.SetMessage("%v", err)
		return err
	}
	b := newBufferWithLines(path, s)
	b.format = format
	b.ensureMagic(e.config.NoNewlines)
	if !isNew {
		b.stat, _ = statFile(path)
	}
	if e.scratch() {
		e.buffers[e.current] = b
	} else {
		e.buffers = append(e.buffers, nil)
		copy(e.buffers[e.current+2:], e.buffers[e.current+1:])
		e.buffers[e.current+1] = b
		e.current++
	}
	e.switched()
	if isNew {
		e.SetMessage("New File")
	} else {
		e.SetMessage("Read %d lines (%s)", b.lineCount(), b.format)
	}
	return nil
}

// scratch reports whether the editor holds only the untouched buffer it
// started with.
func (e *Editor) scratch() bool {
	if len(e.buffers) != 1 {
		return false
	}
	b := e.buffers[0]
	return b.Name == "" && !b.modified && b.lines.Top == b.lines.Bot && len(b.lines.Top.Data) == 0
}

// Close removes the current buffer and moves to the one after it. The
// last buffer cannot be closed.
func (e *Editor) Close() bool {
	e.begin(false, false)
	if len(e.buffers) == 1 {
		return false
	}
	e.buffers[e.current].undo.clear()
	e.buffers = append(e.buffers[:e.current], e.buffers[e.current+1:]...)
	if e.current == len(e.buffers) {
		e.current = 0
	}
	e.switched()
	return true
}

// NextBuffer switches to the following buffer, wrapping around.
func (e *Editor) NextBuffer() {
	e.begin(false, false)
	if len(e.buffers) == 1 {
		return
	}
	e.current = (e.current + 1) % len(e.buffers)
	e.switched()
}

// PrevBuffer switches to the preceding buffer, wrapping around.
func (e *Editor) PrevBuffer() {
	e.begin(false, false)
	if len(e.buffers) == 1 {
		return
	}
	e.current = (e.current + len(e.buffers) - 1) % len(e.buffers)
	e.switched()
}

// switched shows the buffer that just became current, with its own
// cursor and colors.
func (e *Editor) switched() {
	b := e.Buffer()
	b.bindSyntax(e.config.Syntax, e.cancel)
	e.window.Update(b, Stationary)
	e.window.refreshNeeded = true
	e.SetMessage("Switched to %s", b.GetName())
}

// Buffers returns the open buffers in ring order.
func (e *Editor) Buffers() []*Buffer {
	return e.buffers
}

// ModifiedBuffers returns the buffers with unsaved changes.
func (e *Editor) ModifiedBuffers() []*Buffer {
	var modified []*Buffer
	for _, b := range e.buffers {
		if b.modified {
			modified = append(modified, b)
		}
	}
	return modified
}

// EmergencySave writes every modified buffer to a .save file next to it
// and returns the names written.
func (e *Editor) EmergencySave() ([]string, error) {
	var saved []string
	var failed error
	for _, b := range e.ModifiedBuffers() {
		name := b.Name
		if name == "" {
			name = "pinot"
		}
		path := name + ".save"
		for i := 1; exists(path); i++ {
			path = fmt.Sprintf("%s.save.%d", name, i)
		}
		if err := writeFile(b.lines, path, b.format, false); err != nil {
			log.Printf("emergency save of %s failed: %v", name, err)
			failed = errors.Join(failed, err)
			continue
		}
		saved = append(saved, path)
	}
	return saved, failed
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// bindSyntax chooses the color rules for the buffer and recomputes the
// multi-line state of every line.
func (b *Buffer) bindSyntax(name string, cancel func() bool) {
	var s *syntax.Syntax
	if name != "" {
		s = syntax.Named(name)
	}
	if s == nil {
		s = syntax.Select(b.Name, b.lines.Top.Data)
	}
	b.syntax = s
	b.multis = make([]*syntax.Rule, s.Multis())
	for _, r := range s.Rules {
		if r.Multiline() {
			b.multis[r.ID] = r
		}
	}
	for l := b.lines.Top; l != nil; l = l.Next() {
		l.Multidata = nil
	}
	b.precalcMultis(cancel)
}
