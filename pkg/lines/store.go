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

package lines

import (
	"bytes"
	"fmt"
)

// A Store is a list of lines with pointers to its first and last line
// (fileage and filebot). The zero Store is empty; buffers always hold at
// least one line, cut buffers may be empty.
type Store struct {
	Top  *Line
	Bot  *Line
	part *Partition
}

// NewStore returns a store holding a single empty line.
func NewStore() *Store {
	l := New([]byte{}, nil)
	return &Store{Top: l, Bot: l}
}

// FromStrings builds a store from the given lines of text.
func FromStrings(text ...string) *Store {
	if len(text) == 0 {
		return NewStore()
	}
	s := &Store{}
	for _, t := range text {
		s.Append([]byte(t))
	}
	return s
}

// Append adds a line holding data to the end of the store.
func (s *Store) Append(data []byte) *Line {
	l := New(data, s.Bot)
	if s.Bot == nil {
		s.Top = l
	} else {
		s.Bot.next = l
	}
	s.Bot = l
	return l
}

// Empty reports whether the store holds no lines at all.
func (s *Store) Empty() bool {
	return s == nil || s.Top == nil
}

// Count returns the number of lines in the store.
func (s *Store) Count() int {
	n := 0
	if s.Empty() {
		return n
	}
	for l := s.Top; l != nil; l = l.next {
		n++
	}
	return n
}

// Size returns the number of characters in the store, counting one for
// each line break.
func (s *Store) Size() int {
	if s.Empty() {
		return 0
	}
	n := 0
	for l := s.Top; l != nil; l = l.next {
		n += len(bytes.Runes(l.Data))
		if l.next != nil {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of the store.
func (s *Store) Copy() *Store {
	if s.Empty() {
		return &Store{}
	}
	c := &Store{Top: CopyList(s.Top)}
	c.Bot = c.Top
	for c.Bot.next != nil {
		c.Bot = c.Bot.next
	}
	Renumber(c.Top)
	return c
}

// Join moves the lines of src onto the end of s. The first line of src
// is joined to the last line of s. src is left empty.
func (s *Store) Join(src *Store) {
	if src.Empty() {
		return
	}
	if s.Empty() {
		s.Top = src.Top
		s.Bot = src.Bot
		Renumber(s.Top)
	} else {
		last := s.Bot
		first := src.Top
		last.Data = append(last.Data, first.Data...)
		last.next = first.next
		if last.next != nil {
			last.next.prev = last
			s.Bot = src.Bot
			Renumber(last.next)
		}
		first.next = nil
		first.Data = nil
	}
	src.Top = nil
	src.Bot = nil
}

// Free releases every line in the store and leaves it empty.
func (s *Store) Free() {
	if s.Empty() {
		return
	}
	FreeList(s.Top)
	s.Top = nil
	s.Bot = nil
}

// Find returns the line with the given number, or nil.
func (s *Store) Find(number int) *Line {
	if s.Empty() || number < s.Top.Number || number > s.Bot.Number {
		return nil
	}
	// walk from the nearer end
	if number-s.Top.Number <= s.Bot.Number-number {
		for l := s.Top; l != nil; l = l.next {
			if l.Number == number {
				return l
			}
		}
	} else {
		for l := s.Bot; l != nil; l = l.prev {
			if l.Number == number {
				return l
			}
		}
	}
	return nil
}

// Bytes joins the lines of the store with sep.
func (s *Store) Bytes(sep []byte) []byte {
	var b bytes.Buffer
	if s.Empty() {
		return b.Bytes()
	}
	for l := s.Top; l != nil; l = l.next {
		b.Write(l.Data)
		if l.next != nil {
			b.Write(sep)
		}
	}
	return b.Bytes()
}

// Strings returns the text of each line.
func (s *Store) Strings() []string {
	result := make([]string, 0)
	if s.Empty() {
		return result
	}
	for l := s.Top; l != nil; l = l.next {
		result = append(result, string(l.Data))
	}
	return result
}

// Check verifies the links and numbering of the store.
func (s *Store) Check() error {
	if s.Empty() {
		if s != nil && s.Bot != nil {
			return fmt.Errorf("empty store has a bottom line")
		}
		return nil
	}
	if s.Top.prev != nil {
		return fmt.Errorf("top line %d has a predecessor", s.Top.Number)
	}
	if s.Bot.next != nil {
		return fmt.Errorf("bottom line %d has a successor", s.Bot.Number)
	}
	var last *Line
	for l := s.Top; l != nil; l = l.next {
		if l.prev != last {
			return fmt.Errorf("line %d has a broken back link", l.Number)
		}
		if last != nil && l.Number != last.Number+1 {
			return fmt.Errorf("line %d follows line %d", l.Number, last.Number)
		}
		last = l
	}
	if last != s.Bot {
		return fmt.Errorf("walking forward ends at line %d, not the bottom line", last.Number)
	}
	for l := s.Bot; l != nil; l = l.prev {
		if l.prev == nil && l != s.Top {
			return fmt.Errorf("walking backward ends at line %d, not the top line", l.Number)
		}
	}
	return nil
}
