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

// Package lines implements the doubly-linked list of text lines that
// holds the contents of a buffer, and the partition primitives used to
// treat a range of a buffer as if it were a small buffer of its own.
//
// None of these functions fail under correct use. A broken precondition
// is a programming error and panics.
package lines

// A Line is one line of text, without its line ending.
type Line struct {
	Data      []byte
	Number    int   // 1-based; renumbered after structural changes
	Multidata []int // cached multi-line highlight state, one slot per rule id
	prev      *Line
	next      *Line
}

// New returns a line holding data whose predecessor is prev (make_new_node).
// The caller links prev to it.
func New(data []byte, prev *Line) *Line {
	l := &Line{Data: data, prev: prev}
	if prev != nil {
		l.Number = prev.Number + 1
	} else {
		l.Number = 1
	}
	return l
}

// NewString is New for string data.
func NewString(s string, prev *Line) *Line {
	return New([]byte(s), prev)
}

func (l *Line) Prev() *Line {
	return l.prev
}

func (l *Line) Next() *Line {
	return l.next
}

func (l *Line) String() string {
	return string(l.Data)
}

// Copy returns an unlinked copy of l with its own data.
func Copy(l *Line) *Line {
	return &Line{
		Data:   append([]byte(nil), l.Data...),
		Number: l.Number,
	}
}

// Splice links l between before and after. Either neighbour may be nil.
func Splice(before, l, after *Line) {
	if before != nil && before.next != after {
		panic("lines: splice neighbours are not adjacent")
	}
	if after != nil && after.prev != before {
		panic("lines: splice neighbours are not adjacent")
	}
	l.prev = before
	l.next = after
	if before != nil {
		before.next = l
	}
	if after != nil {
		after.prev = l
	}
}

// Unlink removes l from its list, joining its neighbours. l keeps its data.
func Unlink(l *Line) {
	if l.prev != nil {
		l.prev.next = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	}
	l.prev = nil
	l.next = nil
}

// Delete unlinks l and releases its contents.
func Delete(l *Line) {
	Unlink(l)
	l.Data = nil
	l.Multidata = nil
}

// CopyList returns a deep copy of the list that starts at head.
func CopyList(head *Line) *Line {
	if head == nil {
		return nil
	}
	top := Copy(head)
	last := top
	for l := head.next; l != nil; l = l.next {
		c := Copy(l)
		c.prev = last
		last.next = c
		last = c
	}
	return top
}

// FreeList releases every line from head to the end of its list.
func FreeList(head *Line) {
	for head != nil {
		next := head.next
		head.prev = nil
		head.next = nil
		head.Data = nil
		head.Multidata = nil
		head = next
	}
}

// Renumber gives from and every line after it the number one greater than
// its predecessor. Lines before from are not touched.
func Renumber(from *Line) {
	if from == nil {
		panic("lines: renumber of nil line")
	}
	n := 1
	if from.prev != nil {
		n = from.prev.Number + 1
	}
	for l := from; l != nil; l = l.next {
		l.Number = n
		n++
	}
}
