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
	"errors"
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/steelseries/golisp"
	"github.com/timburks/pinot/pkg/editor"
)

// The primitives are global to the lisp runtime, so they act on the most
// recently created commander.
var active *Commander

var errNoCommander = errors.New("no editor is running")

// Names bound to prompt answers before a form is evaluated.
var argumentNames = []string{"input", "replacement"}

func init() {
	command("up", func(e *editor.Editor) error { e.MoveUp(); return nil })
	command("down", func(e *editor.Editor) error { e.MoveDown(); return nil })
	command("left", func(e *editor.Editor) error { e.MoveLeft(); return nil })
	command("right", func(e *editor.Editor) error { e.MoveRight(); return nil })
	command("home", func(e *editor.Editor) error { e.MoveHome(); return nil })
	command("end", func(e *editor.Editor) error { e.MoveEnd(); return nil })
	command("next-word", func(e *editor.Editor) error { e.NextWord(); return nil })
	command("previous-word", func(e *editor.Editor) error { e.PrevWord(); return nil })
	command("first-line", func(e *editor.Editor) error { e.FirstLine(); return nil })
	command("last-line", func(e *editor.Editor) error { e.LastLine(); return nil })
	command("page-up", func(e *editor.Editor) error { e.PageUp(); return nil })
	command("page-down", func(e *editor.Editor) error { e.PageDown(); return nil })
	command("scroll-up", func(e *editor.Editor) error { e.ScrollUp(); return nil })
	command("scroll-down", func(e *editor.Editor) error { e.ScrollDown(); return nil })
	command("cursor-position", func(e *editor.Editor) error { e.CursorPosition(); return nil })

	command("backspace", func(e *editor.Editor) error { e.Backspace(); return nil })
	command("delete", func(e *editor.Editor) error { e.Delete(); return nil })
	command("enter", func(e *editor.Editor) error { e.Enter(); return nil })
	command("tab", func(e *editor.Editor) error { e.Tab(); return nil })
	command("indent", func(e *editor.Editor) error { e.Indent(); return nil })
	command("unindent", func(e *editor.Editor) error { e.Unindent(); return nil })
	command("set-mark", func(e *editor.Editor) error { e.SetMark(); return nil })
	command("cut", (*editor.Editor).Cut)
	command("cut-to-end", (*editor.Editor).CutToEnd)
	command("copy", (*editor.Editor).Copy)
	command("uncut", (*editor.Editor).Uncut)
	command("undo", func(e *editor.Editor) error { e.Undo(); return nil })
	command("redo", func(e *editor.Editor) error { e.Redo(); return nil })
	command("format", (*editor.Editor).Format)
	command("search-again", (*editor.Editor).SearchAgain)

	command("next-buffer", func(e *editor.Editor) error { e.NextBuffer(); return nil })
	command("prev-buffer", func(e *editor.Editor) error { e.PrevBuffer(); return nil })
	command("reload", (*editor.Editor).Reload)
	command("refresh", func(e *editor.Editor) error { e.Refresh(); return nil })
	command("copy-to-clipboard", copyToClipboard)
	command("paste-from-clipboard", pasteFromClipboard)
	golisp.MakePrimitiveFunction("exit", "0", ExitImpl)

	stringCommand("insert-text", func(e *editor.Editor, s string) error { e.InsertText(s); return nil })
	stringCommand("search", func(e *editor.Editor, s string) error { return e.Search(s, false) })
	stringCommand("search-backward", func(e *editor.Editor, s string) error { return e.Search(s, true) })
	stringCommand("open", (*editor.Editor).Open)
	stringCommand("insert-file", (*editor.Editor).InsertFile)
	stringCommand("write-file", (*editor.Editor).WriteFile)
	stringCommand("write-region", (*editor.Editor).WriteRegion)
	stringCommand("message", func(e *editor.Editor, s string) error { e.SetMessage("%s", s); return nil })

	golisp.MakePrimitiveFunction("replace-all", "2", ReplaceAllImpl)
	golisp.MakePrimitiveFunction("replace", "2", ReplaceImpl)
	golisp.MakePrimitiveFunction("goto-line", "2", GotoLineImpl)
	golisp.MakePrimitiveFunction("buffer-text", "0", BufferTextImpl)
	golisp.MakePrimitiveFunction("line-number", "0", LineNumberImpl)
}

// command binds a lisp function with no arguments to an editor call.
func command(name string, f func(e *editor.Editor) error) {
	golisp.MakePrimitiveFunction(name, "0", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		if active == nil {
			return nil, errNoCommander
		}
		return nil, f(active.editor)
	})
}

// stringCommand binds a lisp function taking one string.
func stringCommand(name string, f func(e *editor.Editor, s string) error) {
	golisp.MakePrimitiveFunction(name, "1", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		if active == nil {
			return nil, errNoCommander
		}
		s, err := stringArg(name, golisp.Car(args))
		if err != nil {
			return nil, err
		}
		return nil, f(active.editor, s)
	})
}

func stringArg(name string, d *golisp.Data) (string, error) {
	if !golisp.StringP(d) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(d), nil
}

func intArg(name string, d *golisp.Data) (int, error) {
	if !golisp.IntegerP(d) {
		return 0, fmt.Errorf("%s requires an integer argument", name)
	}
	return int(golisp.IntegerValue(d)), nil
}

func ExitImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	active.exit()
	return nil, nil
}

func ReplaceAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	s, err := stringArg("replace-all", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	with, err := stringArg("replace-all", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	n, err := active.editor.ReplaceAll(s, with)
	return golisp.IntegerWithValue(int64(n)), err
}

func ReplaceImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	s, err := stringArg("replace", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	with, err := stringArg("replace", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	return nil, active.editor.ReplaceOne(s, with)
}

func GotoLineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	line, err := intArg("goto-line", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	col, err := intArg("goto-line", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	active.editor.GotoLine(line, col)
	return nil, nil
}

func BufferTextImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	return golisp.StringWithValue(string(active.editor.Buffer().Bytes())), nil
}

func LineNumberImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if active == nil {
		return nil, errNoCommander
	}
	return golisp.IntegerWithValue(int64(active.editor.Buffer().GetCurrent().Number)), nil
}

// copyToClipboard exports the cut buffer to the system clipboard.
func copyToClipboard(e *editor.Editor) error {
	cut := e.GetCutBuffer()
	if cut.Empty() {
		e.SetMessage("Cutbuffer is empty")
		return nil
	}
	if err := clipboard.WriteAll(string(cut.Bytes([]byte("\n")))); err != nil {
		e.SetMessage("Cannot copy to clipboard: %v", err)
		return err
	}
	e.SetMessage("Copied to clipboard")
	return nil
}

func pasteFromClipboard(e *editor.Editor) error {
	text, err := clipboard.ReadAll()
	if err != nil {
		e.SetMessage("Cannot paste from clipboard: %v", err)
		return err
	}
	e.InsertText(text)
	return nil
}

// evalWith binds args to the argument names and evaluates form.
func (c *Commander) evalWith(form string, args ...string) error {
	for i, arg := range args {
		golisp.Global.BindTo(golisp.SymbolWithName(argumentNames[i]), golisp.StringWithValue(arg))
	}
	_, err := c.Eval(form)
	return err
}

// Eval evaluates lisp source and returns the printed value, or nothing
// for an empty list.
func (c *Commander) Eval(source string) (string, error) {
	active = c
	value, err := golisp.ParseAndEval(source)
	if err != nil {
		log.Printf("ERR %+v", err)
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return golisp.String(value), nil
}

// parseEval evaluates source and returns its value or the error as text.
func (c *Commander) parseEval(source string) string {
	value, err := c.Eval(source)
	if err != nil {
		return err.Error()
	}
	return value
}
