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

// Package types contains the values shared by the editor, the commander
// and the screen. Keeping them here lets the screen be replaced without
// touching the editing core.
package types

// Editor modes
const (
	ModeEdit           = 0
	ModeSearchForward  = 1
	ModeSearchBackward = 2
	ModeReplace        = 3
	ModeReplaceWith    = 4
	ModeCommand        = 5
	ModeLisp           = 6
	ModeGotoLine       = 7
	ModeInsertFile     = 8
	ModeWriteFile      = 9
	ModeConfirmExit    = 10
	ModeQuit           = 9999
)

// Scroll directions
const (
	ScrollUp   = 0
	ScrollDown = 1
)

// Event types
const (
	EventKey       = 0
	EventResize    = 1
	EventInterrupt = 2
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// An Event is a single input delivered by the screen. Terminal resizes
// arrive as events rather than interrupting whatever is running.
type Event struct {
	Type int
	Key  Key
	Ch   rune
	Alt  bool
	Size Size // set for resize events
}

type Color uint8

const (
	ColorDefault Color = 0
	ColorBlack   Color = 0x10
	ColorRed     Color = 0xa0
	ColorGreen   Color = 0x23
	ColorYellow  Color = 0xe3
	ColorBlue    Color = 0x16
	ColorMagenta Color = 0x5a
	ColorCyan    Color = 0x2d
	ColorWhite   Color = 0xff
)

// A Cell is one character cell of a painted row.
// Wide glyphs are followed by a cell with Ch == 0.
type Cell struct {
	Ch      rune
	Color   Color
	Reverse bool
}

// A Display paints rows of cells. It is implemented by the screen and by
// recording fakes in tests.
type Display interface {
	PaintRow(row int, cells []Cell)
	// Scroll moves the rows top..top+height-1 n rows in direction,
	// leaving blank rows behind.
	Scroll(top, height, direction, n int)
	SetCursor(p Point)
	Flush()
}
