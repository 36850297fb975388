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

// Package syntax holds the color rules that highlight a buffer. Rules
// that match within one line are applied directly; rules that can span
// lines keep a per-line state so that a line can be painted without
// rescanning the file from the top.
package syntax

import (
	"regexp"

	"github.com/timburks/pinot/pkg/types"
)

// Multi-line states cached for each line, one per multi-line rule.
const (
	Unknown      = -1 // not yet computed, or invalidated by an edit
	None         = 0  // no part of the line is inside the region
	BeginBefore  = 1  // a region that began earlier ends on this line
	EndAfter     = 2  // a region starts on this line and continues past it
	WholeLine    = 3  // the whole line is inside a region
	StartEndHere = 4  // regions start and end on this line only
)

// EndsInside reports whether a line in state leaves the next line inside the region.
func EndsInside(state int) bool {
	return state == EndAfter || state == WholeLine
}

// A Rule colors text matching Start, or for multi-line rules the text from
// Start through End.
type Rule struct {
	ID    int // slot in the line cache; -1 for single-line rules
	Start *regexp.Regexp
	End   *regexp.Regexp
	Color types.Color
}

func (r *Rule) Multiline() bool {
	return r.End != nil
}

// A Syntax is an ordered list of rules bound to files by name.
type Syntax struct {
	Name       string
	Extensions *regexp.Regexp
	Rules      []*Rule
	multis     int
}

// New returns a syntax, numbering its multi-line rules.
func New(name string, extensions string, rules ...*Rule) *Syntax {
	s := &Syntax{Name: name, Rules: rules}
	if extensions != "" {
		s.Extensions = regexp.MustCompile(extensions)
	}
	for _, r := range rules {
		if r.Multiline() {
			r.ID = s.multis
			s.multis++
		} else {
			r.ID = -1
		}
	}
	return s
}

// Multis returns the number of multi-line rules.
func (s *Syntax) Multis() int {
	if s == nil {
		return 0
	}
	return s.multis
}

// Single returns a single-line rule.
func Single(pattern string, color types.Color) *Rule {
	return &Rule{Start: regexp.MustCompile(pattern), Color: color}
}

// Multi returns a rule for regions that may span lines.
func Multi(start, end string, color types.Color) *Rule {
	return &Rule{Start: regexp.MustCompile(start), End: regexp.MustCompile(end), Color: color}
}

// Evaluate computes the state of a line for a multi-line rule, given
// whether the line starts inside a region, and the byte spans to paint.
func Evaluate(data []byte, r *Rule, startsInside bool) (int, [][2]int) {
	var spans [][2]int
	pos := 0
	closed := false
	if startsInside {
		loc := r.End.FindIndex(data)
		if loc == nil {
			return WholeLine, [][2]int{{0, len(data)}}
		}
		spans = append(spans, [2]int{0, loc[1]})
		pos = loc[1]
		closed = true
	}
	for pos <= len(data) {
		s := r.Start.FindIndex(data[pos:])
		if s == nil {
			break
		}
		start := pos + s[0]
		after := pos + s[1]
		e := r.End.FindIndex(data[after:])
		if e == nil {
			spans = append(spans, [2]int{start, len(data)})
			return EndAfter, spans
		}
		end := after + e[1]
		spans = append(spans, [2]int{start, end})
		if end <= pos {
			end = pos + 1
		}
		pos = end
	}
	switch {
	case startsInside && closed:
		return BeginBefore, spans
	case len(spans) > 0:
		return StartEndHere, spans
	default:
		return None, spans
	}
}

// Colors returns the color of each byte of data. startsInside reports, for
// each multi-line rule id, whether the line begins inside that rule's region.
func Colors(data []byte, s *Syntax, startsInside func(id int) bool) []types.Color {
	colors := make([]types.Color, len(data))
	if s == nil {
		return colors
	}
	paint := func(from, to int, c types.Color) {
		for k := from; k < to && k < len(colors); k++ {
			colors[k] = c
		}
	}
	for _, r := range s.Rules {
		if r.Multiline() {
			_, spans := Evaluate(data, r, startsInside(r.ID))
			for _, span := range spans {
				paint(span[0], span[1], r.Color)
			}
		} else {
			for _, m := range r.Start.FindAllIndex(data, -1) {
				paint(m[0], m[1], r.Color)
			}
		}
	}
	return colors
}
