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

package search

import (
	"github.com/timburks/pinot/pkg/lines"
)

// how many lines are scanned between checks for cancellation
const pollInterval = 64

// A Match is an occurrence of a pattern.
type Match struct {
	Line    *lines.Line
	X       int
	Length  int
	Wrapped bool // the search passed the end (or start) of the store
}

// FindNext finds the nearest occurrence of p from (line, x). Searching
// forward, a match may start at x; searching backward, it must start
// before x. With wrap set the search continues from the other end of the
// store and stops once it is back at the starting line. cancel is polled
// periodically and may be nil.
func FindNext(s *lines.Store, line *lines.Line, x int, p Pattern, backward, wrap bool, cancel func() bool) (Match, error) {
	l := line
	wrapped := false
	scanned := 0
	for {
		if cancel != nil && scanned%pollInterval == pollInterval-1 && cancel() {
			return Match{}, ErrCancelled
		}
		scanned++
		var start, end int
		var ok bool
		switch {
		case l == line && !wrapped && backward:
			start, end, ok = p.FindLast(l.Data, x)
		case l == line && !wrapped:
			start, end, ok = p.Find(l.Data, x)
		case l == line && backward:
			// back where we started, from the other side
			start, end, ok = p.FindLast(l.Data, len(l.Data)+1)
			ok = ok && start >= x
		case l == line:
			start, end, ok = p.Find(l.Data, 0)
			ok = ok && start < x
		case backward:
			start, end, ok = p.FindLast(l.Data, len(l.Data)+1)
		default:
			start, end, ok = p.Find(l.Data, 0)
		}
		if ok {
			return Match{Line: l, X: start, Length: end - start, Wrapped: wrapped}, nil
		}
		if wrapped && l == line {
			return Match{}, ErrNotFound
		}
		if backward {
			l = l.Prev()
		} else {
			l = l.Next()
		}
		if l == nil {
			if !wrap {
				return Match{}, ErrNotFound
			}
			wrapped = true
			if backward {
				l = s.Bot
			} else {
				l = s.Top
			}
		}
	}
}
