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

package commander

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/timburks/pinot/pkg/editor"
	"github.com/timburks/pinot/pkg/types"
)

// The Commander converts user input into commands to the editor.
type Commander struct {
	editor      *editor.Editor
	mode        int    // editor mode
	debug       bool   // debug mode displays information about events (key codes, etc)
	input       string // prompt answer as it is being typed
	searchText  string // text to be replaced, kept while the replacement is typed
	exitAfter   bool   // close the buffer once it has been written
	lastCommand string // last line typed at the command prompt
}

func NewCommander(e *editor.Editor) *Commander {
	c := &Commander{editor: e, mode: types.ModeEdit}
	active = c
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) getModeName() string {
	switch c.mode {
	case types.ModeEdit:
		return "edit"
	case types.ModeSearchForward:
		return "search-forward"
	case types.ModeSearchBackward:
		return "search-backward"
	case types.ModeReplace:
		return "replace"
	case types.ModeReplaceWith:
		return "replace-with"
	case types.ModeCommand:
		return "command"
	case types.ModeLisp:
		return "lisp"
	case types.ModeGotoLine:
		return "goto-line"
	case types.ModeInsertFile:
		return "insert-file"
	case types.ModeWriteFile:
		return "write-file"
	case types.ModeConfirmExit:
		return "confirm-exit"
	case types.ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

func (c *Commander) IsRunning() bool {
	return c.mode != types.ModeQuit
}

func (c *Commander) ProcessEvent(event *types.Event) error {
	if c.debug {
		c.editor.SetMessage("event=%+v mode=%s", *event, c.getModeName())
	}
	switch event.Type {
	case types.EventKey:
		return c.processKey(event)
	case types.EventResize:
		return c.processResize(event)
	default:
		return nil
	}
}

func (c *Commander) processResize(event *types.Event) error {
	return c.editor.SetSize(event.Size)
}

func (c *Commander) processKey(event *types.Event) error {
	switch c.mode {
	case types.ModeEdit:
		return c.processKeyEditMode(event)
	case types.ModeConfirmExit:
		return c.processKeyConfirmMode(event)
	case types.ModeQuit:
		return nil
	default:
		return c.processKeyPromptMode(event)
	}
}

func (c *Commander) processKeyEditMode(event *types.Event) error {
	key := event.Key
	ch := event.Ch

	if event.Alt {
		return c.processAltKey(ch)
	}
	if key != 0 {
		switch key {
		case types.KeyEsc:
			break
		case types.KeyArrowUp, types.KeyCtrlP:
			c.parseEval("(up)")
		case types.KeyArrowDown, types.KeyCtrlN:
			c.parseEval("(down)")
		case types.KeyArrowLeft, types.KeyCtrlB:
			c.parseEval("(left)")
		case types.KeyArrowRight, types.KeyCtrlF:
			c.parseEval("(right)")
		case types.KeyHome, types.KeyCtrlA:
			c.parseEval("(home)")
		case types.KeyEnd, types.KeyCtrlE:
			c.parseEval("(end)")
		case types.KeyPgup, types.KeyCtrlY:
			c.parseEval("(page-up)")
		case types.KeyPgdn, types.KeyCtrlV:
			c.parseEval("(page-down)")
		case types.KeyBackspace, types.KeyBackspace2:
			c.parseEval("(backspace)")
		case types.KeyDelete, types.KeyCtrlD:
			c.parseEval("(delete)")
		case types.KeyEnter:
			c.parseEval("(enter)")
		case types.KeyTab:
			c.parseEval("(tab)")
		case types.KeySpace:
			c.editor.InsertChar(' ')
		case types.KeyCtrlK:
			c.parseEval("(cut)")
		case types.KeyCtrlU:
			c.parseEval("(uncut)")
		case types.KeyCtrl6:
			c.parseEval("(set-mark)")
		case types.KeyCtrlC:
			c.parseEval("(cursor-position)")
		case types.KeyCtrlT:
			c.parseEval("(format)")
		case types.KeyCtrlL:
			c.parseEval("(refresh)")
		case types.KeyCtrlX:
			c.parseEval("(exit)")
		case types.KeyCtrlW:
			c.prompt(types.ModeSearchForward, "")
		case types.KeyCtrlQ:
			c.prompt(types.ModeSearchBackward, "")
		case types.KeyCtrlBackslash:
			c.prompt(types.ModeReplace, "")
		case types.KeyCtrlUnderscore:
			c.prompt(types.ModeGotoLine, "")
		case types.KeyCtrlR:
			c.prompt(types.ModeInsertFile, "")
		case types.KeyCtrlO:
			c.prompt(types.ModeWriteFile, c.editor.Buffer().GetName())
		}
		return nil
	}
	if ch != 0 {
		c.editor.InsertChar(ch)
	}
	return nil
}

// processAltKey handles the meta-key shortcuts.
func (c *Commander) processAltKey(ch rune) error {
	switch ch {
	case 'u', 'U':
		c.parseEval("(undo)")
	case 'e', 'E':
		c.parseEval("(redo)")
	case 'w', 'W':
		c.parseEval("(search-again)")
	case '6', '^':
		c.parseEval("(copy)")
	case 't', 'T':
		c.parseEval("(cut-to-end)")
	case 'a', 'A':
		c.parseEval("(set-mark)")
	case '}':
		c.parseEval("(indent)")
	case '{':
		c.parseEval("(unindent)")
	case '\\', '|':
		c.parseEval("(first-line)")
	case '/', '?':
		c.parseEval("(last-line)")
	case '<', ',':
		c.parseEval("(prev-buffer)")
	case '>', '.':
		c.parseEval("(next-buffer)")
	case '-', '_':
		c.parseEval("(scroll-up)")
	case '=', '+':
		c.parseEval("(scroll-down)")
	case 'b', 'B', ' ':
		c.parseEval("(previous-word)")
	case 'f', 'F':
		c.parseEval("(next-word)")
	case 'c', 'C':
		c.parseEval("(copy-to-clipboard)")
	case 'v', 'V':
		c.parseEval("(paste-from-clipboard)")
	case 'r', 'R':
		c.parseEval("(reload)")
	case 'x', 'X':
		c.prompt(types.ModeCommand, "")
	case '(', ';':
		c.prompt(types.ModeLisp, "")
	}
	return nil
}

// prompt switches to a prompt mode with an initial answer.
func (c *Commander) prompt(mode int, initial string) {
	c.mode = mode
	c.input = initial
	c.showPrompt()
}

func (c *Commander) promptLabel() string {
	switch c.mode {
	case types.ModeSearchForward:
		return "Search: "
	case types.ModeSearchBackward:
		return "Search backward: "
	case types.ModeReplace:
		return "Search (to replace): "
	case types.ModeReplaceWith:
		return "Replace with: "
	case types.ModeCommand:
		return "Command: "
	case types.ModeLisp:
		return "Lisp: "
	case types.ModeGotoLine:
		return "Enter line number, column number: "
	case types.ModeInsertFile:
		return "File to insert: "
	case types.ModeWriteFile:
		if _, _, marked := c.editor.Buffer().GetMark(); marked {
			return "Write Selection to File: "
		}
		return "File Name to Write: "
	case types.ModeConfirmExit:
		return "Save modified buffer? (Y/N) "
	}
	return ""
}

func (c *Commander) showPrompt() {
	c.editor.SetPrompt(c.promptLabel() + c.input)
}

// endPrompt returns to editing.
func (c *Commander) endPrompt() {
	c.editor.SetPrompt("")
	c.input = ""
	if c.mode != types.ModeQuit {
		c.mode = types.ModeEdit
	}
}

func (c *Commander) processKeyPromptMode(event *types.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case types.KeyEsc, types.KeyCtrlC:
			c.exitAfter = false
			c.endPrompt()
			c.editor.SetMessage("Cancelled")
			return nil
		case types.KeyEnter:
			return c.performPrompt()
		case types.KeyBackspace, types.KeyBackspace2:
			if len(c.input) > 0 {
				runes := []rune(c.input)
				c.input = string(runes[:len(runes)-1])
			}
		case types.KeySpace:
			c.input += " "
		case types.KeyTab:
			c.input += "\t"
		}
	} else if ch != 0 && !event.Alt {
		c.input += string(ch)
	}
	c.showPrompt()
	return nil
}

// performPrompt acts on the answer to the open prompt.
func (c *Commander) performPrompt() error {
	mode, input := c.mode, c.input
	c.endPrompt()
	var err error
	switch mode {
	case types.ModeSearchForward:
		err = c.evalWith("(search input)", input)
	case types.ModeSearchBackward:
		err = c.evalWith("(search-backward input)", input)
	case types.ModeReplace:
		if input == "" {
			c.editor.SetMessage("Cancelled")
			return nil
		}
		c.searchText = input
		c.prompt(types.ModeReplaceWith, "")
	case types.ModeReplaceWith:
		err = c.evalWith("(replace-all input replacement)", c.searchText, input)
	case types.ModeGotoLine:
		line, col, perr := parseLineColumn(input)
		if perr != nil {
			c.editor.SetMessage("Invalid line or column number")
			return nil
		}
		c.editor.GotoLine(line, col)
	case types.ModeInsertFile:
		err = c.evalWith("(insert-file input)", input)
	case types.ModeWriteFile:
		if _, _, marked := c.editor.Buffer().GetMark(); marked {
			err = c.evalWith("(write-region input)", input)
		} else {
			err = c.evalWith("(write-file input)", input)
		}
		if err == nil && c.exitAfter {
			c.closeBuffer()
		}
		c.exitAfter = false
	case types.ModeCommand:
		c.performCommand(input)
	case types.ModeLisp:
		if result := c.parseEval(input); result != "" {
			c.editor.SetMessage("%s", result)
		}
	}
	return err
}

// parseLineColumn reads "line" or "line,column".
func parseLineColumn(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	line, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	col := 1
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		col, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, err
		}
	}
	return line, col, nil
}

// exit closes the current buffer, asking first whether to save it.
func (c *Commander) exit() {
	if c.editor.Buffer().GetModified() {
		c.mode = types.ModeConfirmExit
		c.showPrompt()
		return
	}
	c.closeBuffer()
}

func (c *Commander) processKeyConfirmMode(event *types.Event) error {
	switch {
	case event.Key == types.KeyEsc || event.Key == types.KeyCtrlC:
		c.endPrompt()
		c.editor.SetMessage("Cancelled")
	case event.Ch == 'y' || event.Ch == 'Y':
		c.endPrompt()
		c.exitAfter = true
		c.prompt(types.ModeWriteFile, c.editor.Buffer().GetName())
	case event.Ch == 'n' || event.Ch == 'N':
		c.endPrompt()
		c.closeBuffer()
	}
	return nil
}

// closeBuffer closes the current buffer, quitting after the last one.
func (c *Commander) closeBuffer() {
	if !c.editor.Close() {
		c.mode = types.ModeQuit
	}
}

// performCommand runs a line typed at the command prompt.
func (c *Commander) performCommand(command string) {
	e := c.editor
	if command == "" {
		command = c.lastCommand
	}
	c.lastCommand = command

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}
	if i, err := strconv.Atoi(parts[0]); err == nil {
		e.GotoLine(i, 1)
		return
	}
	switch parts[0] {
	case "q", "quit":
		c.exit()
	case "q!":
		c.closeBuffer()
	case "w":
		c.evalWith("(write-file input)", arg)
	case "wq":
		if c.evalWith("(write-file input)", arg) == nil {
			c.closeBuffer()
		}
	case "e", "edit":
		c.evalWith("(open input)", arg)
	case "r":
		c.evalWith("(insert-file input)", arg)
	case "fmt":
		c.parseEval("(format)")
	case "$":
		e.GotoLine(-1, 1)
	case "cursor":
		c.parseEval("(cursor-position)")
	case "next":
		c.parseEval("(next-buffer)")
	case "prev":
		c.parseEval("(prev-buffer)")
	case "buffers":
		var names []string
		for i, b := range e.Buffers() {
			name := b.GetName()
			if name == "" {
				name = "New Buffer"
			}
			names = append(names, fmt.Sprintf("%d:%s", i+1, name))
		}
		e.SetMessage("%s", strings.Join(names, " "))
	case "debug":
		switch arg {
		case "on":
			c.debug = true
		case "off":
			c.debug = false
			e.SetMessage("")
		}
	case "eval":
		if result := c.parseEval(string(e.Buffer().Bytes())); result != "" {
			e.SetMessage("%s", result)
		}
	default:
		log.Printf("unknown command %q", command)
		e.SetMessage("Unknown command: %s", parts[0])
	}
}
