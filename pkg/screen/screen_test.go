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

package screen

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/timburks/pinot/pkg/types"
)

func TestKeys(t *testing.T) {
	for _, tc := range []struct {
		in  termbox.Key
		out types.Key
	}{
		{0, 0},
		{termbox.KeyCtrlH, types.KeyBackspace},
		{termbox.KeyCtrlI, types.KeyTab},
		{termbox.KeyCtrlM, types.KeyEnter},
		{termbox.KeyCtrl7, types.KeyCtrlUnderscore},
		{termbox.KeyCtrl4, types.KeyCtrlBackslash},
		{termbox.KeyCtrlX, types.KeyCtrlX},
		{termbox.KeyF1, types.KeyUnsupported},
	} {
		if got := key(tc.in); got != tc.out {
			t.Errorf("Key %d: expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestAttributes(t *testing.T) {
	fg, bg := attributes(types.Cell{Ch: 'x'})
	if fg != termbox.ColorDefault || bg != termbox.ColorDefault {
		t.Errorf("Expected default colors, got %v %v", fg, bg)
	}
	fg, _ = attributes(types.Cell{Ch: 'x', Color: types.ColorBlue, Reverse: true})
	if fg&termbox.AttrReverse == 0 || fg&^termbox.AttrReverse != termbox.Attribute(types.ColorBlue) {
		t.Errorf("Unexpected attributes %v", fg)
	}
}
