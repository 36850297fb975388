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

// Package editor implements the core text editing functions of pinot.
// An editor holds a ring of buffers, each a list of lines with its own
// cursor, mark and undo history, and a window that keeps the screen in
// step with the current buffer while repainting as little as it can.
//
// Structural edits such as cut, paste and file insertion go through the
// partition functions of the lines package. Only one partition may be
// open at a time in an editor session.
package editor
