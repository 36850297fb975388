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

//go:build linux || darwin || freebsd || netbsd || openbsd

package editor

import (
	"golang.org/x/sys/unix"
)

// A fileStat identifies a version of a file on disk.
type fileStat struct {
	dev   uint64
	ino   uint64
	mtime int64
	size  int64
}

func statFile(path string) (*fileStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, err
	}
	return &fileStat{
		dev:   uint64(st.Dev),
		ino:   uint64(st.Ino),
		mtime: st.Mtim.Nano(),
		size:  st.Size,
	}, nil
}

func (s *fileStat) same(o *fileStat) bool {
	return *s == *o
}
