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

// Package screen paints the editor on a terminal with termbox and
// delivers keyboard and resize events.
package screen

import (
	"github.com/nsf/termbox-go"
	"github.com/timburks/pinot/pkg/types"
)

// The Screen is the terminal. It implements types.Display.
type Screen struct {
	events  chan termbox.Event
	pending []termbox.Event // read while polling for interrupts
}

func NewScreen() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputAlt)
	s := &Screen{events: make(chan termbox.Event, 64)}
	go func() {
		for {
			event := termbox.PollEvent()
			if event.Type == termbox.EventInterrupt {
				close(s.events)
				return
			}
			s.events <- event
		}
	}()
	return s, nil
}

func (s *Screen) Close() {
	termbox.Interrupt()
	termbox.Close()
}

func (s *Screen) GetSize() types.Size {
	cols, rows := termbox.Size()
	return types.Size{Rows: rows, Cols: cols}
}

// PaintRow draws cells on a row and blanks the rest of it.
func (s *Screen) PaintRow(row int, cells []types.Cell) {
	cols, _ := termbox.Size()
	col := 0
	for _, c := range cells {
		if col >= cols {
			break
		}
		if c.Ch != 0 {
			fg, bg := attributes(c)
			termbox.SetCell(col, row, c.Ch, fg, bg)
		}
		col++
	}
	for ; col < cols; col++ {
		termbox.SetCell(col, row, ' ', termbox.ColorDefault, termbox.ColorDefault)
	}
}

func attributes(c types.Cell) (termbox.Attribute, termbox.Attribute) {
	fg := termbox.Attribute(c.Color)
	if c.Color == types.ColorDefault {
		fg = termbox.ColorDefault
	}
	if c.Reverse {
		fg |= termbox.AttrReverse
	}
	return fg, termbox.ColorDefault
}

// Scroll shifts rows top..top+height-1 of the back buffer by n rows.
// termbox sends only the cells that differ when it flushes.
func (s *Screen) Scroll(top, height, direction, n int) {
	cols, rows := termbox.Size()
	buffer := termbox.CellBuffer()
	if top+height > rows {
		height = rows - top
	}
	if n > height {
		n = height
	}
	row := func(r int) []termbox.Cell {
		return buffer[r*cols : (r+1)*cols]
	}
	blank := termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	if direction == types.ScrollDown {
		for r := top; r < top+height-n; r++ {
			copy(row(r), row(r+n))
		}
		for r := top + height - n; r < top+height; r++ {
			fill(row(r), blank)
		}
	} else {
		for r := top + height - 1; r >= top+n; r-- {
			copy(row(r), row(r-n))
		}
		for r := top; r < top+n; r++ {
			fill(row(r), blank)
		}
	}
}

func fill(cells []termbox.Cell, c termbox.Cell) {
	for i := range cells {
		cells[i] = c
	}
}

func (s *Screen) SetCursor(p types.Point) {
	termbox.SetCursor(p.Col, p.Row)
}

func (s *Screen) Flush() {
	termbox.Flush()
}

// GetNextEvent waits for the next key or resize.
func (s *Screen) GetNextEvent() *types.Event {
	for {
		var event termbox.Event
		if len(s.pending) > 0 {
			event = s.pending[0]
			s.pending = s.pending[1:]
		} else {
			var ok bool
			event, ok = <-s.events
			if !ok {
				return &types.Event{Type: types.EventInterrupt}
			}
		}
		switch event.Type {
		case termbox.EventKey:
			return &types.Event{
				Type: types.EventKey,
				Key:  key(event.Key),
				Ch:   event.Ch,
				Alt:  event.Mod&termbox.ModAlt != 0,
			}
		case termbox.EventResize:
			termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
			return &types.Event{
				Type: types.EventResize,
				Size: types.Size{Rows: event.Height, Cols: event.Width},
			}
		}
	}
}

// Interrupted reports whether ^C has been typed since the last call. Other
// input read while checking is kept for GetNextEvent.
func (s *Screen) Interrupted() bool {
	for {
		select {
		case event, ok := <-s.events:
			if !ok {
				return false
			}
			if event.Type == termbox.EventKey && event.Key == termbox.KeyCtrlC {
				return true
			}
			s.pending = append(s.pending, event)
		default:
			return false
		}
	}
}

func key(k termbox.Key) types.Key {
	switch k {
	case 0:
		return 0
	case termbox.KeyArrowDown:
		return types.KeyArrowDown
	case termbox.KeyArrowLeft:
		return types.KeyArrowLeft
	case termbox.KeyArrowRight:
		return types.KeyArrowRight
	case termbox.KeyArrowUp:
		return types.KeyArrowUp
	case termbox.KeyBackspace:
		return types.KeyBackspace
	case termbox.KeyBackspace2:
		return types.KeyBackspace2
	case termbox.KeyDelete:
		return types.KeyDelete
	case termbox.KeyInsert:
		return types.KeyInsert
	case termbox.KeyCtrlA:
		return types.KeyCtrlA
	case termbox.KeyCtrlB:
		return types.KeyCtrlB
	case termbox.KeyCtrlC:
		return types.KeyCtrlC
	case termbox.KeyCtrlD:
		return types.KeyCtrlD
	case termbox.KeyCtrlE:
		return types.KeyCtrlE
	case termbox.KeyCtrlF:
		return types.KeyCtrlF
	case termbox.KeyCtrlG:
		return types.KeyCtrlG
	case termbox.KeyCtrlJ:
		return types.KeyCtrlJ
	case termbox.KeyCtrlK:
		return types.KeyCtrlK
	case termbox.KeyCtrlL:
		return types.KeyCtrlL
	case termbox.KeyCtrlN:
		return types.KeyCtrlN
	case termbox.KeyCtrlO:
		return types.KeyCtrlO
	case termbox.KeyCtrlP:
		return types.KeyCtrlP
	case termbox.KeyCtrlQ:
		return types.KeyCtrlQ
	case termbox.KeyCtrlR:
		return types.KeyCtrlR
	case termbox.KeyCtrlS:
		return types.KeyCtrlS
	case termbox.KeyCtrlT:
		return types.KeyCtrlT
	case termbox.KeyCtrlU:
		return types.KeyCtrlU
	case termbox.KeyCtrlV:
		return types.KeyCtrlV
	case termbox.KeyCtrlW:
		return types.KeyCtrlW
	case termbox.KeyCtrlX:
		return types.KeyCtrlX
	case termbox.KeyCtrlY:
		return types.KeyCtrlY
	case termbox.KeyCtrlZ:
		return types.KeyCtrlZ
	case termbox.KeyCtrlBackslash:
		return types.KeyCtrlBackslash
	case termbox.KeyCtrl6:
		return types.KeyCtrl6
	case termbox.KeyCtrlUnderscore:
		return types.KeyCtrlUnderscore
	case termbox.KeyEnd:
		return types.KeyEnd
	case termbox.KeyEnter:
		return types.KeyEnter
	case termbox.KeyEsc:
		return types.KeyEsc
	case termbox.KeyHome:
		return types.KeyHome
	case termbox.KeyPgdn:
		return types.KeyPgdn
	case termbox.KeyPgup:
		return types.KeyPgup
	case termbox.KeySpace:
		return types.KeySpace
	case termbox.KeyTab:
		return types.KeyTab
	default:
		return types.KeyUnsupported
	}
}
