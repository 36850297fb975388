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

// Package commander converts key events and scripts into commands for the
// editor. Most keys evaluate a short lisp form such as "(cut)"; the forms
// are primitives bound to the editor in lisp.go, so the same commands can
// be typed at the lisp prompt or run from a script with --eval.
package commander
