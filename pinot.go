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

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/timburks/pinot/pkg/commander"
	"github.com/timburks/pinot/pkg/config"
	"github.com/timburks/pinot/pkg/editor"
	"github.com/timburks/pinot/pkg/screen"
	"github.com/timburks/pinot/pkg/types"
)

// A file named on the command line, with the position given by a
// preceding +LINE,COLUMN argument.
type file struct {
	name      string
	line, col int
}

func main() {
	var files []file
	var script string
	configPath := config.Path()
	line, col := 0, 0

	for i := 1; i < len(os.Args); i++ {
		argi := os.Args[i]
		switch {
		case argi == "--eval": // eval program
			i++
			if i < len(os.Args) {
				script = os.Args[i]
			} else {
				log.Output(1, "No file specified for --eval option")
				os.Exit(1)
			}
		case argi == "--config":
			i++
			if i < len(os.Args) {
				configPath = os.Args[i]
			} else {
				log.Output(1, "No file specified for --config option")
				os.Exit(1)
			}
		case strings.HasPrefix(argi, "+") && len(argi) > 1:
			var err error
			line, col, err = parsePosition(argi[1:])
			if err != nil {
				log.Output(1, fmt.Sprintf("Invalid line or column number: %s", argi))
				os.Exit(1)
			}
		default:
			files = append(files, file{name: argi, line: line, col: col})
			line, col = 0, 0
		}
	}

	c, err := config.Load(configPath)
	if err != nil {
		log.Output(1, err.Error())
		os.Exit(1)
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(c)

	// The commander converts user inputs into commands for the editor.
	cmd := commander.NewCommander(e)

	if script != "" {
		// Run a pinot script and exit.
		open(e, files)
		source, err := os.ReadFile(script)
		if err != nil {
			log.Output(1, err.Error())
			os.Exit(1)
		}
		value, err := cmd.Eval(string(source))
		if err != nil {
			log.Output(1, err.Error())
			os.Exit(1)
		}
		if value != "" {
			fmt.Println(value)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Output(1, "pinot needs a terminal")
		os.Exit(1)
	}
	if _, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && rows < 3 {
		log.Output(1, editor.ErrTerminalTooSmall.Error())
		os.Exit(1)
	}

	// Open a log file.
	home, _ := os.UserHomeDir()
	f, err := os.OpenFile(filepath.Join(home, ".pinotlog"), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		log.Output(1, err.Error())
		os.Exit(1)
	}
	log.SetOutput(f)
	defer f.Close()

	open(e, files)

	// Create a screen to manage display.
	s, err := screen.NewScreen()
	if err != nil {
		log.Output(1, err.Error())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			s.Close()
			log.Printf("panic: %v", r)
			saved, err := e.EmergencySave()
			for _, name := range saved {
				fmt.Fprintf(os.Stderr, "Buffer written to %s\n", name)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			os.Exit(1)
		}
	}()
	if err := e.SetDisplay(s, s.GetSize()); err != nil {
		s.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	e.SetCancel(s.Interrupted)

	// Run the main event loop.
	for cmd.IsRunning() {
		e.Render()
		event := s.GetNextEvent()
		if event.Type == types.EventInterrupt {
			break
		}
		if err := cmd.ProcessEvent(event); err != nil {
			log.Printf("%v", err)
		}
	}
	s.Close()
}

// open reads the named files into buffers, leaving the first current.
func open(e *editor.Editor, files []file) {
	for _, f := range files {
		if info, err := os.Stat(f.name); err == nil && info.IsDir() {
			log.Printf("%s is a directory", f.name)
			continue
		}
		if err := e.Open(f.name); err != nil {
			log.Printf("%v", err)
			continue
		}
		if f.line != 0 || f.col != 0 {
			e.GotoLine(f.line, f.col)
		}
	}
	if len(e.Buffers()) > 1 {
		e.NextBuffer()
	}
}

// parsePosition reads "LINE", "LINE,COLUMN" or ",COLUMN".
func parsePosition(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	line, col := 0, 0
	var err error
	if parts[0] != "" {
		if line, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, err
		}
	}
	if len(parts) == 2 && parts[1] != "" {
		if col, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, err
		}
	}
	return line, col, nil
}
