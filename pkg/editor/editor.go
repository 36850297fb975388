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
	"log"

	"github.com/timburks/pinot/pkg/config"
	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/types"
)

var (
	// ErrTerminalTooSmall is returned when the screen has no room for a
	// single edit row.
	ErrTerminalTooSmall = errors.New("window is too small")
	// ErrUndoAnchor means an undo record refers to a line that no longer
	// exists.
	ErrUndoAnchor = errors.New("undo anchor not found")
	// ErrNoFileName is returned when a buffer without a name is written.
	ErrNoFileName = errors.New("no file name")
)

type anchorError struct {
	line int
}

func (a *anchorError) Error() string {
	return fmt.Sprintf("Internal error: line %d not found. Please save your work.", a.line)
}

func (a *anchorError) Unwrap() error {
	return ErrUndoAnchor
}

// The Editor is an editing session. There is typically only one editor
// in a pinot instance.
type Editor struct {
	config        *config.Config
	buffers       []*Buffer    // open buffers, in ring order
	current       int          // index of the current buffer
	window        *Window      // the view of the current buffer
	cutbuffer     *lines.Store // the most recent cut or copied text
	keepCutbuffer bool         // the previous command was a cut, so cuts accumulate
	filepart      bool         // a partition is open
	prependWrap   bool         // the previous command wrapped a line while typing
	message       string       // shown on the status bar
	prompt        string       // replaces the message while a prompt is open
	lastSearch    string
	lastBackward  bool
	cancel        func() bool // polled during long scans
}

func NewEditor(c *config.Config) *Editor {
	if c == nil {
		c = config.Default()
	}
	e := &Editor{config: c}
	e.cutbuffer = &lines.Store{}
	e.window = NewWindow(e)
	b := NewBuffer("")
	e.buffers = []*Buffer{b}
	b.bindSyntax(c.Syntax, nil)
	return e
}

func (e *Editor) GetConfig() *config.Config {
	return e.config
}

// Buffer returns the current buffer.
func (e *Editor) Buffer() *Buffer {
	return e.buffers[e.current]
}

func (e *Editor) GetWindow() *Window {
	return e.window
}

func (e *Editor) GetCutBuffer() *lines.Store {
	return e.cutbuffer
}

// SetCancel installs the function polled during long scans. It should
// report whether the user asked to stop.
func (e *Editor) SetCancel(cancel func() bool) {
	e.cancel = cancel
}

func (e *Editor) cancelled() bool {
	return e.cancel != nil && e.cancel()
}

func (e *Editor) SetMessage(format string, args ...interface{}) {
	e.message = fmt.Sprintf(format, args...)
}

func (e *Editor) GetMessage() string {
	return e.message
}

// SetPrompt shows text on the status bar in place of the message until it
// is cleared with an empty prompt.
func (e *Editor) SetPrompt(text string) {
	e.prompt = text
}

// SetDisplay attaches the editor to a display of the given size.
func (e *Editor) SetDisplay(d types.Display, size types.Size) error {
	e.window.display = d
	return e.SetSize(size)
}

// SetSize recomputes the window geometry after a resize.
func (e *Editor) SetSize(size types.Size) error {
	if err := e.window.Layout(size); err != nil {
		return err
	}
	b := e.Buffer()
	e.window.Update(b, Stationary)
	e.window.refreshNeeded = true
	return nil
}

// Render brings the display up to date and places the cursor.
func (e *Editor) Render() {
	w := e.window
	b := e.Buffer()
	if w.refreshNeeded {
		w.Refresh(b)
	}
	w.renderTitle(b)
	if e.prompt != "" {
		w.renderStatus(e.prompt, true)
	} else {
		w.renderStatus(e.message, false)
	}
	w.display.SetCursor(w.cursor(b))
	w.display.Flush()
}

// Refresh schedules a repaint of every edit row.
func (e *Editor) Refresh() {
	e.window.refreshNeeded = true
}

// begin resets the state that only survives between commands of the same
// kind. Typing keeps wrapped text flowing into the next line; consecutive
// cuts accumulate in the cut buffer.
func (e *Editor) begin(typing, cutting bool) {
	if !typing {
		e.prependWrap = false
	}
	if !cutting {
		e.keepCutbuffer = false
	}
	e.message = ""
}

// exclusive runs f while holding the session's partition.
func (e *Editor) exclusive(f func() error) error {
	if e.filepart {
		return lines.ErrPartitioned
	}
	e.filepart = true
	defer func() {
		e.filepart = false
	}()
	return f()
}

// withPartition narrows the buffer to the given range while f runs and
// always restores it, whatever f returns.
func (e *Editor) withPartition(b *Buffer, top *lines.Line, topX int, bot *lines.Line, botX int, f func() error) error {
	return e.exclusive(func() error {
		p, err := b.lines.Partition(top, topX, bot, botX)
		if err != nil {
			return err
		}
		defer p.Unpartition()
		return f()
	})
}

// report shows an internal error to the user and logs it.
func (e *Editor) report(err error) {
	log.Printf("%v", err)
	e.SetMessage("%v", err)
}
