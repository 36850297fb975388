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
	"errors"
)

// ErrPartitioned is returned when a partition is requested while another
// one is still open.
var ErrPartitioned = errors.New("lines: a partition is already active")

// A Partition records what was cut away from a store so that it can be
// restored exactly. While it is open, the store's Top..Bot is only the
// text between the partition bounds.
type Partition struct {
	store   *Store
	top     *Line // the store's Top, when it differs from the partition top
	bot     *Line // the store's Bot, when it differs from the partition bottom
	topPrev *Line
	botNext *Line
	topData []byte
	botData []byte
}

// Partitioned reports whether the store has an open partition.
func (s *Store) Partitioned() bool {
	return s.part != nil
}

// Partition narrows the store to the text from (top, topX) to (bot, botX).
// top must not come after bot. Only one partition may be open at a time.
func (s *Store) Partition(top *Line, topX int, bot *Line, botX int) (*Partition, error) {
	if s.part != nil {
		return nil, ErrPartitioned
	}
	if topX < 0 || topX > len(top.Data) || botX < 0 || botX > len(bot.Data) {
		panic("lines: partition offset out of range")
	}
	if top == bot && topX > botX {
		panic("lines: partition bounds out of order")
	}
	p := &Partition{store: s}
	if top != s.Top {
		p.top = s.Top
		s.Top = top
	}
	if bot != s.Bot {
		p.bot = s.Bot
		s.Bot = bot
	}
	p.topPrev = top.prev
	top.prev = nil
	p.topData = append([]byte(nil), top.Data[:topX]...)

	p.botNext = bot.next
	bot.next = nil
	p.botData = append([]byte(nil), bot.Data[botX:]...)

	bot.Data = append([]byte(nil), bot.Data[:botX]...)
	top.Data = append([]byte(nil), top.Data[topX:]...)

	s.part = p
	return p, nil
}

// Unpartition reattaches the text outside the partition. The store's
// current Top and Bot receive the saved text, so the lines inside the
// partition may have been replaced in the meantime. Calling it twice is
// harmless.
func (p *Partition) Unpartition() {
	if p == nil || p.store == nil {
		return
	}
	s := p.store
	s.Top.prev = p.topPrev
	if p.topPrev != nil {
		p.topPrev.next = s.Top
	}
	s.Top.Data = append(p.topData, s.Top.Data...)

	s.Bot.next = p.botNext
	if p.botNext != nil {
		p.botNext.prev = s.Bot
	}
	s.Bot.Data = append(s.Bot.Data, p.botData...)

	if p.top != nil {
		s.Top = p.top
	}
	if p.bot != nil {
		s.Bot = p.bot
	}
	s.part = nil
	p.store = nil
}

// Extract moves the text from (top, topX) to (bot, botX) onto the end of
// dest, joining it with the last line of dest. A single new line holding
// the text before topX and after botX takes its place, and is returned.
func (s *Store) Extract(top *Line, topX int, bot *Line, botX int, dest *Store) (*Line, error) {
	if top == bot && topX == botX {
		return top, nil
	}
	p, err := s.Partition(top, topX, bot, botX)
	if err != nil {
		return nil, err
	}
	excised := &Store{Top: s.Top, Bot: s.Bot}
	dest.Join(excised)
	gap := New([]byte{}, nil)
	s.Top = gap
	s.Bot = gap
	p.Unpartition()
	Renumber(gap)
	return gap, nil
}

// InsertCopy inserts a copy of src at offset x of line at. It returns the
// first and last lines holding the inserted text and the offset just past
// it. The line at is replaced when src is not empty.
func (s *Store) InsertCopy(at *Line, x int, src *Store) (first, last *Line, end int, err error) {
	if src.Empty() {
		return at, at, x, nil
	}
	p, err := s.Partition(at, x, at, x)
	if err != nil {
		return nil, nil, 0, err
	}
	FreeList(s.Top)
	c := src.Copy()
	s.Top = c.Top
	s.Bot = c.Bot
	first = s.Top
	last = s.Bot
	end = len(last.Data)
	if first == last {
		end += x
	}
	p.Unpartition()
	Renumber(first)
	return first, last, end, nil
}
