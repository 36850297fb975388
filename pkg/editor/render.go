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
	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/syntax"
	"github.com/timburks/pinot/pkg/text"
	"github.com/timburks/pinot/pkg/types"
)

// cells returns the painted cells of l for the display columns
// [start, start+cols), colored by the buffer's syntax. Marked text is
// shown in reverse.
func (w *Window) cells(b *Buffer, l *lines.Line, start, cols int) []types.Cell {
	glyphs := text.Expand(l.Data, start, cols, w.editor.config.TabSize)
	colors := syntax.Colors(l.Data, b.syntax, func(id int) bool {
		return b.startsInside(l, id)
	})
	from, to := -1, -1
	if top, topX, bot, botX, ok := b.markRegion(); ok && l.Number >= top.Number && l.Number <= bot.Number {
		from, to = 0, len(l.Data)
		if l == top {
			from = topX
		}
		if l == bot {
			to = botX
		}
	}
	cells := make([]types.Cell, len(glyphs))
	for i, g := range glyphs {
		c := types.Cell{Ch: g.Ch}
		if g.Byte < len(colors) {
			c.Color = colors[g.Byte]
		}
		if g.Byte >= from && g.Byte < to {
			c.Reverse = true
		}
		cells[i] = c
	}
	return cells
}
