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
	"go/format"
	"strings"

	"github.com/timburks/pinot/pkg/lines"
)

// Format runs the Go formatter over the marked region, or the whole
// buffer, and replaces the text with its output.
func (e *Editor) Format() error {
	e.begin(false, false)
	b := e.Buffer()
	top, topX, bot, botX, marked := b.markRegion()
	if !marked {
		top, topX, bot, botX = b.lines.Top, 0, b.lines.Bot, len(b.lines.Bot.Data)
	}
	var src []byte
	err := e.withPartition(b, top, topX, bot, botX, func() error {
		src = b.lines.Bytes([]byte("\n"))
		return nil
	})
	if err != nil {
		e.report(err)
		return err
	}
	out, err := format.Source(src)
	if err != nil {
		e.SetMessage("Cannot format: %v", err)
		return err
	}
	if bytes.Equal(out, src) {
		e.SetMessage("Already formatted")
		return nil
	}
	before := here(b)
	at := Position{Line: top.Number, X: topX}
	b.mark = nil
	old := &lines.Store{}
	if err := e.extract(b, top, topX, bot, botX, old); err != nil {
		e.report(err)
		return err
	}
	formatted := lines.FromStrings(strings.Split(string(out), "\n")...)
	if _, _, err := e.insertCopy(b, b.current, b.currentX, formatted); err != nil {
		e.report(err)
		return err
	}
	// the cursor stays on its line when that line still exists
	if l := b.lines.Find(before.Line); l != nil {
		b.current = l
		b.currentX = min(before.X, len(l.Data))
	}
	b.undo.push(&FilterRecord{
		cursors: cursors{Before: before, After: here(b)},
		At:      at,
		Old:     old,
		New:     formatted,
	})
	if l := b.lines.Find(at.Line); l != nil {
		b.resetMultis(l, true)
	}
	b.placewewant = b.xplustabs(e.config.TabSize)
	e.window.refreshNeeded = true
	e.SetMessage("Formatted %d lines", formatted.Count())
	return nil
}
