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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/timburks/pinot/pkg/lines"
)

// ReadLines reads text into a new store. The line ending format is taken
// from the first line break: LF, CR LF or a lone CR. Text that ends with
// a line break ends with an empty line.
func ReadLines(r io.Reader) (*lines.Store, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FormatUnix, err
	}
	format := detectFormat(data)
	s := &lines.Store{}
	for {
		i, width := nextBreak(data, format)
		if i < 0 {
			s.Append(append([]byte(nil), data...))
			break
		}
		s.Append(append([]byte(nil), data[:i]...))
		data = data[i+width:]
	}
	return s, format, nil
}

func detectFormat(data []byte) Format {
	i := bytes.IndexAny(data, "\r\n")
	switch {
	case i < 0 || data[i] == '\n':
		return FormatUnix
	case i+1 < len(data) && data[i+1] == '\n':
		return FormatDOS
	default:
		return FormatMac
	}
}

// nextBreak returns the offset and length of the next line break.
func nextBreak(data []byte, format Format) (int, int) {
	switch format {
	case FormatMac:
		return bytes.IndexByte(data, '\r'), 1
	case FormatDOS:
		i := bytes.IndexByte(data, '\n')
		if i > 0 && data[i-1] == '\r' {
			return i - 1, 2
		}
		return i, 1
	default:
		return bytes.IndexByte(data, '\n'), 1
	}
}

func (f Format) ending() []byte {
	switch f {
	case FormatDOS:
		return []byte("\r\n")
	case FormatMac:
		return []byte("\r")
	default:
		return []byte("\n")
	}
}

// WriteLines writes the lines of s separated by the format's line ending.
func WriteLines(s *lines.Store, w io.Writer, format Format) error {
	bw := bufio.NewWriter(w)
	ending := format.ending()
	for l := s.Top; l != nil; l = l.Next() {
		if _, err := bw.Write(l.Data); err != nil {
			return err
		}
		if l.Next() != nil {
			if _, err := bw.Write(ending); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// readFile reads a file into a store. A file that does not exist reads as
// an empty store and reports fs.ErrNotExist.
func readFile(path string) (*lines.Store, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lines.NewStore(), FormatUnix, err
		}
		return nil, FormatUnix, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	s, format, err := ReadLines(f)
	if err != nil {
		return nil, FormatUnix, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, format, nil
}

func writeFile(s *lines.Store, path string, format Format, backup bool) error {
	if backup {
		if old, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+"~", old, 0644); err != nil {
				log.Printf("backup of %s failed: %v", path, err)
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := WriteLines(s, f, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteFile saves the current buffer. An empty path saves it under its
// own name.
func (e *Editor) WriteFile(path string) error {
	e.begin(false, false)
	b := e.Buffer()
	if path == "" {
		path = b.Name
	}
	if path == "" {
		e.SetMessage("No file name")
		return ErrNoFileName
	}
	if err := writeFile(b.lines, path, b.format, e.config.Backup); err != nil {
		e.SetMessage("%v", err)
		return err
	}
	renamed := path != b.Name
	b.Name = path
	b.modified = false
	b.stat, _ = statFile(path)
	if renamed {
		b.bindSyntax(e.config.Syntax, e.cancel)
		e.window.refreshNeeded = true
	}
	e.SetMessage("Wrote %d lines", b.lineCount())
	return nil
}

// WriteRegion saves the marked text to path.
func (e *Editor) WriteRegion(path string) error {
	e.begin(false, false)
	b := e.Buffer()
	top, topX, bot, botX, ok := b.markRegion()
	if !ok {
		return e.WriteFile(path)
	}
	err := e.withPartition(b, top, topX, bot, botX, func() error {
		return writeFile(b.lines, path, b.format, false)
	})
	if err != nil {
		e.SetMessage("%v", err)
		return err
	}
	e.SetMessage("Wrote %d lines", bot.Number-top.Number+1)
	return nil
}

// ChangedOnDisk reports whether the file was modified by someone else
// since it was read or written.
func (b *Buffer) ChangedOnDisk() bool {
	if b.stat == nil || b.Name == "" {
		return false
	}
	st, err := statFile(b.Name)
	if err != nil {
		return true
	}
	return !st.same(b.stat)
}

// Reload replaces the contents of the current buffer with the file on
// disk. It cannot be undone.
func (e *Editor) Reload() error {
	e.begin(false, false)
	b := e.Buffer()
	s, format, err := readFile(b.Name)
	if err != nil {
		e.SetMessage("%v", err)
		return err
	}
	b.lines.Free()
	b.lines = s
	b.format = format
	b.ensureMagic(e.config.NoNewlines)
	b.totsize = s.Size()
	b.current = s.Top
	b.currentX = 0
	b.edittop = s.Top
	b.mark = nil
	b.modified = false
	b.placewewant = 0
	b.stat, _ = statFile(b.Name)
	b.undo.push(&OtherRecord{What: "reload"})
	b.bindSyntax(e.config.Syntax, e.cancel)
	e.window.refreshNeeded = true
	e.SetMessage("Reloaded %s", b.Name)
	return nil
}
