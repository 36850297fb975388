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
	"unicode/utf8"

	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/syntax"
	"github.com/timburks/pinot/pkg/text"
	"github.com/timburks/pinot/pkg/types"
)

// Line ending formats
type Format int

const (
	FormatUnix Format = iota
	FormatDOS
	FormatMac
)

func (f Format) String() string {
	switch f {
	case FormatDOS:
		return "DOS"
	case FormatMac:
		return "Mac"
	default:
		return "Unix"
	}
}

// A Buffer is an open file: its lines, the cursor and mark within them,
// and everything needed to show and undo changes to it.
type Buffer struct {
	Name        string
	lines       *lines.Store
	current     *lines.Line // cursor line
	currentX    int         // cursor byte offset in the cursor line
	currentY    int         // screen row of the cursor, relative to edittop
	placewewant int         // display column the cursor tries to keep when moving vertically
	edittop     *lines.Line // first line in the window
	totsize     int         // characters in the buffer, counting line breaks
	modified    bool
	mark        *lines.Line // nil when no mark is set
	markX       int
	format      Format
	stat        *fileStat // snapshot taken when the file was read or written
	undo        Ledger
	syntax      *syntax.Syntax
	multis      []*syntax.Rule // multi-line rules indexed by id
}

// NewBuffer returns an empty buffer holding only the magic line.
func NewBuffer(name string) *Buffer {
	return newBufferWithLines(name, lines.NewStore())
}

func newBufferWithLines(name string, s *lines.Store) *Buffer {
	b := &Buffer{Name: name, lines: s}
	b.current = s.Top
	b.edittop = s.Top
	b.totsize = s.Size()
	b.syntax = syntax.Default
	return b
}

func (b *Buffer) GetName() string {
	if b.Name == "" {
		return "New Buffer"
	}
	return b.Name
}

func (b *Buffer) GetLines() *lines.Store {
	return b.lines
}

func (b *Buffer) GetCurrent() *lines.Line {
	return b.current
}

// GetCursor returns the cursor as a 1-based line number and a byte offset.
func (b *Buffer) GetCursor() types.Point {
	return types.Point{Row: b.current.Number, Col: b.currentX}
}

func (b *Buffer) GetEditTop() *lines.Line {
	return b.edittop
}

// GetMark returns the mark, if one is set.
func (b *Buffer) GetMark() (*lines.Line, int, bool) {
	return b.mark, b.markX, b.mark != nil
}

func (b *Buffer) GetModified() bool {
	return b.modified
}

func (b *Buffer) GetFormat() Format {
	return b.format
}

func (b *Buffer) GetSyntax() *syntax.Syntax {
	return b.syntax
}

func (b *Buffer) GetUndo() *Ledger {
	return &b.undo
}

// Size returns the number of characters in the buffer.
func (b *Buffer) Size() int {
	return b.totsize
}

// Bytes returns the text of the buffer with Unix line endings.
func (b *Buffer) Bytes() []byte {
	return b.lines.Bytes([]byte("\n"))
}

// Strings returns the text of each line.
func (b *Buffer) Strings() []string {
	return b.lines.Strings()
}

// lineCount returns the number of lines, not counting the magic line.
func (b *Buffer) lineCount() int {
	n := b.lines.Count()
	if len(b.lines.Bot.Data) == 0 && n > 1 {
		n--
	}
	return n
}

func (b *Buffer) line(number int) (*lines.Line, error) {
	l := b.lines.Find(number)
	if l == nil {
		return nil, &anchorError{line: number}
	}
	return l, nil
}

func (b *Buffer) xplustabs(tabsize int) int {
	return text.Width(b.current.Data, b.currentX, tabsize)
}

// markRegion returns the marked text in document order.
func (b *Buffer) markRegion() (top *lines.Line, topX int, bot *lines.Line, botX int, ok bool) {
	if b.mark == nil {
		return nil, 0, nil, 0, false
	}
	if b.mark.Number < b.current.Number || (b.mark == b.current && b.markX < b.currentX) {
		return b.mark, b.markX, b.current, b.currentX, true
	}
	return b.current, b.currentX, b.mark, b.markX, true
}

// insertBytes inserts text into l at x.
func (b *Buffer) insertBytes(l *lines.Line, x int, text []byte) {
	data := make([]byte, 0, len(l.Data)+len(text))
	data = append(data, l.Data[:x]...)
	data = append(data, text...)
	data = append(data, l.Data[x:]...)
	l.Data = data
	b.totsize += utf8.RuneCount(text)
	if b.mark == l && b.markX > x {
		b.markX += len(text)
	}
	b.modified = true
}

// removeBytes removes n bytes of l at x and returns them.
func (b *Buffer) removeBytes(l *lines.Line, x, n int) []byte {
	removed := append([]byte(nil), l.Data[x:x+n]...)
	data := make([]byte, 0, len(l.Data)-n)
	data = append(data, l.Data[:x]...)
	data = append(data, l.Data[x+n:]...)
	l.Data = data
	b.totsize -= utf8.RuneCount(removed)
	if b.mark == l && b.markX > x {
		if b.markX < x+n {
			b.markX = x
		} else {
			b.markX -= n
		}
	}
	b.modified = true
	return removed
}

// replaceBytes replaces n bytes of l at x with text and returns the old
// bytes. Positions after the replaced bytes move with them.
func (b *Buffer) replaceBytes(l *lines.Line, x, n int, text []byte) []byte {
	old := append([]byte(nil), l.Data[x:x+n]...)
	data := make([]byte, 0, len(l.Data)-n+len(text))
	data = append(data, l.Data[:x]...)
	data = append(data, text...)
	data = append(data, l.Data[x+n:]...)
	l.Data = data
	b.totsize += utf8.RuneCount(text) - utf8.RuneCount(old)
	shift := func(p int) int {
		switch {
		case p >= x+n:
			return p + len(text) - n
		case p > x:
			return x
		}
		return p
	}
	if b.mark == l {
		b.markX = shift(b.markX)
	}
	if b.current == l {
		b.currentX = shift(b.currentX)
	}
	b.modified = true
	return old
}

// splitLine breaks l at x. The new line after it holds indent followed by
// the text that was after x.
func (b *Buffer) splitLine(l *lines.Line, x int, indent []byte) *lines.Line {
	data := make([]byte, 0, len(indent)+len(l.Data)-x)
	data = append(data, indent...)
	data = append(data, l.Data[x:]...)
	nl := lines.New(data, l)
	l.Data = append([]byte(nil), l.Data[:x]...)
	lines.Splice(l, nl, l.Next())
	lines.Renumber(nl)
	if b.lines.Bot == l {
		b.lines.Bot = nl
	}
	b.totsize += 1 + utf8.RuneCount(indent)
	if b.mark == l && b.markX > x {
		b.mark = nl
		b.markX += len(indent) - x
	}
	b.modified = true
	return nl
}

// joinLine appends the line after l to l and removes it. It returns the
// length l had before.
func (b *Buffer) joinLine(l *lines.Line) int {
	next := l.Next()
	x := len(l.Data)
	data := make([]byte, 0, x+len(next.Data))
	data = append(data, l.Data...)
	data = append(data, next.Data...)
	l.Data = data
	if b.mark == next {
		b.mark = l
		b.markX += x
	}
	if b.current == next {
		b.current = l
		b.currentX += x
	}
	if b.edittop == next {
		b.edittop = l
	}
	if b.lines.Bot == next {
		b.lines.Bot = l
	}
	lines.Delete(next)
	if l.Next() != nil {
		lines.Renumber(l.Next())
	}
	b.totsize--
	b.modified = true
	return x
}

// ensureMagic adds the empty last line when the buffer should end with a
// newline and does not. It reports whether a line was added.
func (b *Buffer) ensureMagic(noNewlines bool) bool {
	if noNewlines || len(b.lines.Bot.Data) == 0 {
		return false
	}
	b.lines.Append([]byte{})
	b.totsize++
	return true
}

// dropMagic removes an empty last line added by ensureMagic.
func (b *Buffer) dropMagic() {
	bot := b.lines.Bot
	prev := bot.Prev()
	if prev == nil || len(bot.Data) != 0 {
		return
	}
	if b.current == bot {
		b.current = prev
		b.currentX = len(prev.Data)
	}
	if b.mark == bot {
		b.mark = prev
		b.markX = len(prev.Data)
	}
	if b.edittop == bot {
		b.edittop = prev
	}
	b.lines.Bot = prev
	lines.Delete(bot)
	b.totsize--
}
