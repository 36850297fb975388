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
	"github.com/timburks/pinot/pkg/lines"
	"github.com/timburks/pinot/pkg/syntax"
)

// Lines between polls of the cancel function while precalculating.
const precalcPoll = 128

// ensureMultis sizes the state cache of l for the buffer's multi-line
// rules. New slots are unknown.
func (b *Buffer) ensureMultis(l *lines.Line) {
	n := len(b.multis)
	if len(l.Multidata) == n {
		return
	}
	l.Multidata = make([]int, n)
	for i := range l.Multidata {
		l.Multidata[i] = syntax.Unknown
	}
}

// multiState returns the state of l for rule id. Unknown states are
// computed from the nearest known state above.
func (b *Buffer) multiState(l *lines.Line, id int) int {
	b.ensureMultis(l)
	if s := l.Multidata[id]; s != syntax.Unknown {
		return s
	}
	var pending []*lines.Line
	p := l
	for p != nil {
		b.ensureMultis(p)
		if p.Multidata[id] != syntax.Unknown {
			break
		}
		pending = append(pending, p)
		p = p.Prev()
	}
	inside := p != nil && syntax.EndsInside(p.Multidata[id])
	for i := len(pending) - 1; i >= 0; i-- {
		q := pending[i]
		s, _ := syntax.Evaluate(q.Data, b.multis[id], inside)
		q.Multidata[id] = s
		inside = syntax.EndsInside(s)
	}
	return l.Multidata[id]
}

// startsInside reports whether l begins inside a region of rule id.
func (b *Buffer) startsInside(l *lines.Line, id int) bool {
	if id < 0 || id >= len(b.multis) {
		return false
	}
	p := l.Prev()
	return p != nil && syntax.EndsInside(b.multiState(p, id))
}

// resetMultis recomputes the states of l after an edit. When l now ends
// differently, or force is set, the lines below are recomputed until one
// keeps its cached state. It reports whether any line other than l
// changed state. The scan stops early at lines whose states were never
// computed, unless known states follow them.
func (b *Buffer) resetMultis(l *lines.Line, force bool) bool {
	if len(b.multis) == 0 || l == nil {
		return false
	}
	b.ensureMultis(l)
	changed := false
	for id, r := range b.multis {
		old := l.Multidata[id]
		s, _ := syntax.Evaluate(l.Data, r, b.startsInside(l, id))
		l.Multidata[id] = s
		if !force && old != syntax.Unknown && syntax.EndsInside(old) == syntax.EndsInside(s) {
			continue
		}
		inside := syntax.EndsInside(s)
		inRun := false
		for n := l.Next(); n != nil; n = n.Next() {
			b.ensureMultis(n)
			cached := n.Multidata[id]
			if cached == syntax.Unknown {
				if !inRun && b.unknownToEnd(n, id) {
					break
				}
				inRun = true
			} else {
				inRun = false
			}
			ns, _ := syntax.Evaluate(n.Data, r, inside)
			if ns == cached {
				break
			}
			n.Multidata[id] = ns
			if cached != syntax.Unknown {
				changed = true
			}
			inside = syntax.EndsInside(ns)
		}
	}
	return changed
}

// unknownToEnd reports whether no line from l on has a state for rule id.
// Such lines are computed from the lines above when they are needed.
func (b *Buffer) unknownToEnd(l *lines.Line, id int) bool {
	for ; l != nil; l = l.Next() {
		if len(l.Multidata) == len(b.multis) && l.Multidata[id] != syntax.Unknown {
			return false
		}
	}
	return true
}

// precalcMultis computes the states of every line. It polls cancel and
// stops early when it returns true, leaving the rest to be computed
// when painted. It reports whether it finished.
func (b *Buffer) precalcMultis(cancel func() bool) bool {
	if len(b.multis) == 0 {
		return true
	}
	n := 0
	for l := b.lines.Top; l != nil; l = l.Next() {
		n++
		if cancel != nil && n%precalcPoll == 0 && cancel() {
			return false
		}
		for id := range b.multis {
			b.multiState(l, id)
		}
	}
	return true
}
