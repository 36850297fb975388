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

// Package search compiles search patterns and finds their next
// occurrence in a list of lines.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	ErrEmptyPattern = errors.New("search: empty pattern")
	ErrNotFound     = errors.New("search: not found")
	ErrCancelled    = errors.New("search: cancelled")
)

type Options struct {
	Regexp        bool
	CaseSensitive bool
}

// A Pattern finds matches within one line of text.
type Pattern interface {
	// Find returns the first match starting at or after from.
	Find(data []byte, from int) (start, end int, ok bool)
	// FindLast returns the last match starting before before.
	FindLast(data []byte, before int) (start, end int, ok bool)
	// Replacement returns the text that replaces the match starting at start.
	Replacement(data []byte, start int, template []byte) []byte
	String() string
}

// Compile builds a pattern from the text typed at the search prompt.
func Compile(text string, options Options) (Pattern, error) {
	if text == "" {
		return nil, ErrEmptyPattern
	}
	expr := text
	if !options.Regexp {
		expr = regexp.QuoteMeta(text)
	}
	if !options.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("bad regex %q: %w", text, err)
	}
	m := matcher{
		re:    re,
		first: regexp.MustCompile(`\A(` + expr + `)`),
		after: regexp.MustCompile(`\A(?s:.)(` + expr + `)`),
		text:  text,
	}
	if options.Regexp {
		return &expression{m}, nil
	}
	return &literal{m}, nil
}

type matcher struct {
	re    *regexp.Regexp
	first *regexp.Regexp // matches only at the start of the line
	after *regexp.Regexp // matches only after the first rune of its input
	text  string
}

func (m *matcher) String() string {
	return m.text
}

// matchAt returns the submatch indices of a match starting exactly at x.
// The rune before x stays part of the input, so anchors and word
// boundaries see the text around x.
func (m *matcher) matchAt(data []byte, x int) []int {
	if x == 0 {
		loc := m.first.FindSubmatchIndex(data)
		if loc == nil {
			return nil
		}
		return loc[2:]
	}
	_, size := utf8.DecodeLastRune(data[:x])
	p := x - size
	loc := m.after.FindSubmatchIndex(data[p:])
	if loc == nil {
		return nil
	}
	loc = loc[2:]
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += p
		}
	}
	return loc
}

// Find tries every rune offset from from, so a match may overlap an
// earlier one.
func (m *matcher) Find(data []byte, from int) (int, int, bool) {
	if from > len(data) || !m.re.Match(data) {
		return 0, 0, false
	}
	for x := from; ; {
		if loc := m.matchAt(data, x); loc != nil {
			return loc[0], loc[1], true
		}
		if x >= len(data) {
			return 0, 0, false
		}
		_, size := utf8.DecodeRune(data[x:])
		x += size
	}
}

func (m *matcher) FindLast(data []byte, before int) (int, int, bool) {
	if before > len(data)+1 {
		before = len(data) + 1
	}
	if before <= 0 || !m.re.Match(data) {
		return 0, 0, false
	}
	var starts []int
	for x := 0; x < before; {
		starts = append(starts, x)
		if x >= len(data) {
			break
		}
		_, size := utf8.DecodeRune(data[x:])
		x += size
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if loc := m.matchAt(data, starts[i]); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

type literal struct {
	matcher
}

func (l *literal) Replacement(data []byte, start int, template []byte) []byte {
	return append([]byte(nil), template...)
}

type expression struct {
	matcher
}

// Replacement expands $1-style references to the groups of the match.
func (e *expression) Replacement(data []byte, start int, template []byte) []byte {
	if loc := e.matchAt(data, start); loc != nil {
		return e.re.Expand(nil, template, data, loc)
	}
	return append([]byte(nil), template...)
}
