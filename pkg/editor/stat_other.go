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

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package editor

import (
	"os"
)

type fileStat struct {
	mtime int64
	size  int64
}

func statFile(path string) (*fileStat, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileStat{mtime: fi.ModTime().UnixNano(), size: fi.Size()}, nil
}

func (s *fileStat) same(o *fileStat) bool {
	return *s == *o
}
