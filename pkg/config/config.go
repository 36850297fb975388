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

// Package config holds the editor settings and reads them from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	TabSize       int    `toml:"tabsize"`
	Fill          int    `toml:"fill"`
	SoftWrap      bool   `toml:"softwrap"`
	HardWrap      bool   `toml:"hardwrap"`
	AutoIndent    bool   `toml:"autoindent"`
	NoNewlines    bool   `toml:"nonewlines"`
	SmoothScroll  bool   `toml:"smoothscroll"`
	CutToEnd      bool   `toml:"cuttoend"`
	Regexp        bool   `toml:"regexp"`
	CaseSensitive bool   `toml:"casesensitive"`
	TabsToSpaces  bool   `toml:"tabstospaces"`
	Backup        bool   `toml:"backup"`
	Syntax        string `toml:"syntax"`
}

// Default returns the settings used when no file overrides them.
func Default() *Config {
	return &Config{
		TabSize:      8,
		Fill:         72,
		HardWrap:     true,
		SmoothScroll: true,
	}
}

// Path returns the default location of the settings file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pinot", "pinot.toml")
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("reading %s: unknown setting %q", path, undecoded[0].String())
	}
	return c, c.Validate()
}

// Validate checks that the numeric settings are usable.
func (c *Config) Validate() error {
	if c.TabSize < 1 {
		return fmt.Errorf("tabsize must be positive, not %d", c.TabSize)
	}
	if c.Fill == 0 {
		return errors.New("fill must not be zero")
	}
	return nil
}

// WrapColumn returns the column at which hard wrapping breaks lines. A
// negative fill counts back from the width of the window.
func (c *Config) WrapColumn(cols int) int {
	fill := c.Fill
	if fill < 0 {
		fill += cols
	}
	if fill < 0 {
		fill = 0
	}
	return fill
}
